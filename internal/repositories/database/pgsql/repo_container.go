package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/nairabooks/ledger_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider creates and initializes all repository implementations
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TenantRepo:    newPgxTenantRepository(dbPool),
		AccountRepo:   newPgxAccountRepository(dbPool),
		VoucherRepo:   newPgxVoucherRepository(dbPool),
		ReportingRepo: newPgxReportingRepository(dbPool),
		PayrollRepo:   newPgxPayrollRepository(dbPool),
	}
}
