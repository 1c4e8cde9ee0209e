package services

import (
	portsrepo "github.com/nairabooks/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/nairabooks/ledger_backend/internal/core/ports/services"
	"github.com/nairabooks/ledger_backend/internal/utils/accounting"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. Services depend on each other only through
// their facades, so the wiring order below is the full dependency graph.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo, repos.VoucherRepo)
	container.Posting = NewPostingService(repos.VoucherRepo, repos.AccountRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, accounting.CodePrefixClassifier())
	container.Tenant = NewTenantService(repos.TenantRepo, container.Account)
	container.Payroll = NewPayrollService(repos.PayrollRepo, repos.TenantRepo, container.Account, container.Posting)

	return container
}
