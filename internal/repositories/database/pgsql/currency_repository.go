package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Pyrocube-Network/EconomyApi/internal/apperrors"
	"github.com/Pyrocube-Network/EconomyApi/internal/core/domain"
	portsrepo "github.com/Pyrocube-Network/EconomyApi/internal/core/ports/repositories"
	"github.com/Pyrocube-Network/EconomyApi/internal/models"
	"github.com/Pyrocube-Network/EconomyApi/internal/utils/mapping"
)

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for currency data.
func newPgxCurrencyRepository(pool *pgxpool.Pool) *PgxCurrencyRepository {
	return &PgxCurrencyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

const currencyColumns = `currency_id, symbol, precision, conversion_rate, is_primary, starting_balance, display_names, created_at, last_updated_at`

func scanCurrency(row pgx.Row) (models.Currency, error) {
	var currency models.Currency
	err := row.Scan(
		&currency.CurrencyID,
		&currency.Symbol,
		&currency.Precision,
		&currency.ConversionRate,
		&currency.IsPrimary,
		&currency.StartingBalance,
		&currency.DisplayNames,
		&currency.CreatedAt,
		&currency.LastUpdatedAt,
	)
	return currency, err
}

// SaveCurrency inserts a currency definition.
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	modelCurr := mapping.ToModelCurrency(currency)

	query := `
		INSERT INTO economy_currencies (` + currencyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelCurr.CurrencyID,
		modelCurr.Symbol,
		modelCurr.Precision,
		modelCurr.ConversionRate,
		modelCurr.IsPrimary,
		modelCurr.StartingBalance,
		modelCurr.DisplayNames,
		modelCurr.CreatedAt,
		modelCurr.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: currency %s", apperrors.ErrDuplicate, modelCurr.CurrencyID)
		}
		return fmt.Errorf("failed to save currency %s: %w", modelCurr.CurrencyID, err)
	}
	return nil
}

// FindCurrencyByID retrieves a currency definition by its identifier.
func (r *PgxCurrencyRepository) FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM economy_currencies WHERE currency_id = $1;`

	modelCurr, err := scanCurrency(r.Pool.QueryRow(ctx, query, currencyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: currency %s", apperrors.ErrNotFound, currencyID)
		}
		return nil, fmt.Errorf("failed to find currency %s: %w", currencyID, err)
	}

	domainCurr := mapping.ToDomainCurrency(modelCurr)
	return &domainCurr, nil
}

// ListCurrencies retrieves all currency definitions ordered by identifier.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM economy_currencies ORDER BY currency_id;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	modelCurrencies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Currency, error) {
		return scanCurrency(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan currencies: %w", err)
	}
	return mapping.ToDomainCurrencySlice(modelCurrencies), nil
}

// DeleteCurrency removes a currency definition. Balances held in it are kept.
func (r *PgxCurrencyRepository) DeleteCurrency(ctx context.Context, currencyID string) error {
	ct, err := r.Pool.Exec(ctx, `DELETE FROM economy_currencies WHERE currency_id = $1;`, currencyID)
	if err != nil {
		return fmt.Errorf("failed to delete currency %s: %w", currencyID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: currency %s", apperrors.ErrNotFound, currencyID)
	}
	return nil
}
