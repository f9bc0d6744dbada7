package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/zenapticlabs/expense-management-server/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ExchangeRateRepo: newPgxExchangeRateRepository(dbPool),
		ReportRepo:       newPgxReportRepository(dbPool),
		ItemRepo:         newPgxItemRepository(dbPool),
		LookupRepo:       newPgxLookupRepository(dbPool),
		UserRepo:         newPgxUserRepository(dbPool),
	}
}
