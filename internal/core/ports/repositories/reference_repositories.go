package repositories

import (
	"context"

	"github.com/caravel-trade/caravel-backend/internal/core/domain"
)

// CategoryRepositoryFacade defines persistence operations for categories.
type CategoryRepositoryFacade interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
}

// CounterpartyRepositoryFacade defines persistence operations for counterparties.
type CounterpartyRepositoryFacade interface {
	SaveCounterparty(ctx context.Context, counterparty domain.Counterparty) error
	FindCounterpartyByID(ctx context.Context, counterpartyID string) (*domain.Counterparty, error)
	ListCounterparties(ctx context.Context) ([]domain.Counterparty, error)
}

// ClientRepositoryFacade defines persistence operations for clients.
type ClientRepositoryFacade interface {
	SaveClient(ctx context.Context, client domain.Client) error
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context) ([]domain.Client, error)
}

// VehicleRepositoryFacade defines persistence operations for vehicles.
type VehicleRepositoryFacade interface {
	SaveVehicle(ctx context.Context, vehicle domain.Vehicle) error
	FindVehicleByID(ctx context.Context, vehicleID string) (*domain.Vehicle, error)
	ListVehicles(ctx context.Context) ([]domain.Vehicle, error)
}

// BranchRepositoryFacade defines read operations for branches and the
// branch-operate permission table.
type BranchRepositoryFacade interface {
	FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error)

	// HasOperatePermission reports whether the user may mutate accounts
	// belonging to the branch.
	HasOperatePermission(ctx context.Context, userID, branchID string) (bool, error)
}
