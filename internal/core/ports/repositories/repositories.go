package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// It keeps the service container constructor's dependency list flat.
type RepositoryProvider struct {
	TransactionRepo  TransactionRepositoryWithTx
	AccountRepo      AccountRepositoryFacade
	BalanceRepo      BalanceRepositoryFacade
	CategoryRepo     CategoryRepositoryFacade
	CounterpartyRepo CounterpartyRepositoryFacade
	ClientRepo       ClientRepositoryFacade
	VehicleRepo      VehicleRepositoryFacade
	BranchRepo       BranchRepositoryFacade
	UserRepo         UserRepositoryFacade
}
