package services

// ServiceContainer holds instances of all application services. It is the
// entry point handlers use to reach service functionality.
type ServiceContainer struct {
	Transaction  TransactionSvcFacade
	Account      AccountSvcFacade
	Category     CategorySvcFacade
	Counterparty CounterpartySvcFacade
	Client       ClientSvcFacade
	Vehicle      VehicleSvcFacade
	User         UserSvcFacade
	Auth         AuthSvcFacade
	Reporting    ReportingSvcFacade
}
