package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/Pyrocube-Network/EconomyApi/internal/core/ports/repositories"
)

// NewRepositoryProvider returns repositories backed by dbPool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:  newPgxAccountRepository(dbPool),
		CurrencyRepo: newPgxCurrencyRepository(dbPool),
	}
}
