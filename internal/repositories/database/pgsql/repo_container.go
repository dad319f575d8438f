package pgsql

import (
	portsrepo "github.com/caravel-trade/caravel-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo:  newPgxTransactionRepository(dbPool),
		AccountRepo:      newPgxAccountRepository(dbPool),
		BalanceRepo:      newPgxBalanceRepository(dbPool),
		CategoryRepo:     newPgxCategoryRepository(dbPool),
		CounterpartyRepo: newPgxCounterpartyRepository(dbPool),
		ClientRepo:       newPgxClientRepository(dbPool),
		VehicleRepo:      newPgxVehicleRepository(dbPool),
		BranchRepo:       newPgxBranchRepository(dbPool),
		UserRepo:         newPgxUserRepository(dbPool),
	}
}
