package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes dependency injection cleaner by providing a single container.
type RepositoryProvider struct {
	TenantRepo    TenantRepository
	AccountRepo   AccountRepositoryFacade
	VoucherRepo   VoucherRepositoryFacade
	ReportingRepo ReportingRepository
	PayrollRepo   PayrollRepository
}
