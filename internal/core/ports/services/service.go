package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used by the provider facade.
type ServiceContainer struct {
	Currency    CurrencySvcFacade
	Account     AccountSvcFacade
	Transaction TransactionSvc
}
