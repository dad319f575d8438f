package services

import (
	"context"
	"io"

	"github.com/caravel-trade/caravel-backend/internal/core/domain"
	"github.com/caravel-trade/caravel-backend/internal/dto"
)

// CategorySvcFacade exposes category lookups and management.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, userID string) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
}

// CounterpartySvcFacade exposes counterparty lookups and management.
type CounterpartySvcFacade interface {
	CreateCounterparty(ctx context.Context, req dto.CreateCounterpartyRequest, userID string) (*domain.Counterparty, error)
	GetCounterpartyByID(ctx context.Context, counterpartyID string) (*domain.Counterparty, error)
	ListCounterparties(ctx context.Context) ([]domain.Counterparty, error)
}

// ClientSvcFacade exposes client lookups and management.
type ClientSvcFacade interface {
	CreateClient(ctx context.Context, req dto.CreateClientRequest, userID string) (*domain.Client, error)
	GetClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context) ([]domain.Client, error)

	// ImportClientsFromExcel creates one client per data row of the uploaded
	// workbook's first sheet (name, phone). Returns the number imported.
	ImportClientsFromExcel(ctx context.Context, r io.Reader, creatorUserID string) (int, error)
}

// VehicleSvcFacade exposes vehicle lookups and management.
type VehicleSvcFacade interface {
	CreateVehicle(ctx context.Context, req dto.CreateVehicleRequest, userID string) (*domain.Vehicle, error)
	GetVehicleByID(ctx context.Context, vehicleID string) (*domain.Vehicle, error)
	ListVehicles(ctx context.Context) ([]domain.Vehicle, error)
}
