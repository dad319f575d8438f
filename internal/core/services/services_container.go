package services

import (
	"github.com/caravel-trade/caravel-backend/internal/core/ports/gateways"
	portsrepo "github.com/caravel-trade/caravel-backend/internal/core/ports/repositories"
	portssvc "github.com/caravel-trade/caravel-backend/internal/core/ports/services"
	"github.com/caravel-trade/caravel-backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, vehicleCost gateways.VehicleCostGateway) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		repos.AccountRepo,
		repos.BalanceRepo,
		repos.CategoryRepo,
		repos.BranchRepo,
		vehicleCost,
	)

	container.Account = NewAccountService(repos.AccountRepo, repos.BalanceRepo)
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Counterparty = NewCounterpartyService(repos.CounterpartyRepo)
	container.Client = NewClientService(repos.ClientRepo)
	container.Vehicle = NewVehicleService(repos.VehicleRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Auth = NewAuthService(repos.UserRepo, cfg)
	container.Reporting = NewReportingService(repos.AccountRepo, repos.BalanceRepo, repos.TransactionRepo)

	return container
}
