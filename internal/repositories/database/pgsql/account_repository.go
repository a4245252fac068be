package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Pyrocube-Network/EconomyApi/internal/apperrors"
	"github.com/Pyrocube-Network/EconomyApi/internal/core/domain"
	portsrepo "github.com/Pyrocube-Network/EconomyApi/internal/core/ports/repositories"
	"github.com/Pyrocube-Network/EconomyApi/internal/models"
	"github.com/Pyrocube-Network/EconomyApi/internal/utils/mapping"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account and balance data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var modelAcc models.Account
	if err := row.Scan(
		&modelAcc.AccountID,
		&modelAcc.Name,
		&modelAcc.CreatedAt,
		&modelAcc.LastUpdatedAt,
	); err != nil {
		return nil, err
	}
	domainAcc := mapping.ToDomainAccount(modelAcc)
	return &domainAcc, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	query := `
		SELECT account_id, name, created_at, last_updated_at
		FROM economy_accounts
		WHERE account_id = $1;
	`
	account, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return account, nil
}

// ListAccountIDs retrieves every account id.
func (r *PgxAccountRepository) ListAccountIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.Pool.Query(ctx, `SELECT account_id FROM economy_accounts ORDER BY account_id::text;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query account ids: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("failed to scan account ids: %w", err)
	}
	return ids, nil
}

// FindBalance retrieves the stored balance of one cell.
func (r *PgxAccountRepository) FindBalance(ctx context.Context, accountID uuid.UUID, currencyID string) (decimal.Decimal, bool, error) {
	query := `
		SELECT b.amount
		FROM economy_accounts a
		LEFT JOIN economy_balances b ON b.account_id = a.account_id AND b.currency_id = $2
		WHERE a.account_id = $1;
	`
	var amount decimal.NullDecimal
	if err := r.Pool.QueryRow(ctx, query, accountID, currencyID).Scan(&amount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, false, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return decimal.Zero, false, fmt.Errorf("failed to find balance %s/%s: %w", accountID, currencyID, err)
	}
	return amount.Decimal, amount.Valid, nil
}

// ListHeldCurrencies retrieves the currency ids with a stored balance.
func (r *PgxAccountRepository) ListHeldCurrencies(ctx context.Context, accountID uuid.UUID) ([]string, error) {
	query := `
		SELECT b.currency_id
		FROM economy_accounts a
		LEFT JOIN economy_balances b ON b.account_id = a.account_id
		WHERE a.account_id = $1
		ORDER BY b.currency_id;
	`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query held currencies of %s: %w", accountID, err)
	}
	found, err := pgx.CollectRows(rows, pgx.RowTo[*string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan held currencies of %s: %w", accountID, err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}

	held := make([]string, 0, len(found))
	for _, id := range found {
		// An account without balances yields one row with a NULL currency.
		if id != nil {
			held = append(held, *id)
		}
	}
	return held, nil
}

// FindOrCreateAccount inserts the account unless it exists and returns the stored row.
func (r *PgxAccountRepository) FindOrCreateAccount(ctx context.Context, accountID uuid.UUID, now time.Time) (*domain.Account, bool, error) {
	modelAcc := mapping.ToModelAccount(domain.Account{
		AccountID:   accountID,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	})

	insert := `
		INSERT INTO economy_accounts (account_id, name, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (account_id) DO NOTHING
		RETURNING account_id, name, created_at, last_updated_at;
	`
	account, err := scanAccount(r.Pool.QueryRow(ctx, insert,
		modelAcc.AccountID,
		modelAcc.Name,
		modelAcc.CreatedAt,
		modelAcc.LastUpdatedAt,
	))
	if err == nil {
		return account, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("failed to create account %s: %w", accountID, err)
	}

	// Lost the race or the account already existed.
	account, err = r.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, false, err
	}
	return account, false, nil
}

// UpdateAccountName sets or clears the account name.
func (r *PgxAccountRepository) UpdateAccountName(ctx context.Context, accountID uuid.UUID, name *string, now time.Time) error {
	query := `
		UPDATE economy_accounts
		SET name = $2, last_updated_at = $3
		WHERE account_id = $1;
	`
	ct, err := r.Pool.Exec(ctx, query, accountID, name, now)
	if err != nil {
		return fmt.Errorf("failed to update name of account %s: %w", accountID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return nil
}

// RekeyAccount changes the primary key; balances follow through ON UPDATE CASCADE.
func (r *PgxAccountRepository) RekeyAccount(ctx context.Context, oldID, newID uuid.UUID, now time.Time) error {
	query := `
		UPDATE economy_accounts
		SET account_id = $2, last_updated_at = $3
		WHERE account_id = $1;
	`
	ct, err := r.Pool.Exec(ctx, query, oldID, newID, now)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, newID)
		}
		return fmt.Errorf("failed to rekey account %s to %s: %w", oldID, newID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, oldID)
	}
	return nil
}

// DeleteAccount removes the account; balances go with it through ON DELETE CASCADE.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID uuid.UUID) (bool, error) {
	ct, err := r.Pool.Exec(ctx, `DELETE FROM economy_accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		return false, fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// UpdateBalance locks the cell row, applies fn and upserts the result in one transaction.
func (r *PgxAccountRepository) UpdateBalance(ctx context.Context, accountID uuid.UUID, currencyID string, fn domain.BalanceFunc, now time.Time) (decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	// Holding the account row shared keeps a concurrent rekey or delete out.
	var locked uuid.UUID
	err = tx.QueryRow(ctx, `SELECT account_id FROM economy_accounts WHERE account_id = $1 FOR SHARE;`, accountID).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return decimal.Zero, fmt.Errorf("failed to lock account %s: %w", accountID, err)
	}

	var current models.Balance
	exists := true
	err = tx.QueryRow(ctx, `
		SELECT amount FROM economy_balances
		WHERE account_id = $1 AND currency_id = $2
		FOR UPDATE;
	`, accountID, currencyID).Scan(&current.Amount)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("failed to lock balance %s/%s: %w", accountID, currencyID, err)
		}
		exists = false
	}

	next, err := fn(current.Amount, exists)
	if err != nil {
		return decimal.Zero, err
	}

	upsert := `
		INSERT INTO economy_balances (account_id, currency_id, amount, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (account_id, currency_id) DO UPDATE SET
			amount = EXCLUDED.amount,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := tx.Exec(ctx, upsert, accountID, currencyID, next, now); err != nil {
		return decimal.Zero, fmt.Errorf("failed to store balance %s/%s: %w", accountID, currencyID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return decimal.Zero, err
	}
	return next, nil
}
