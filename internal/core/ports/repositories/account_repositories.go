package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Pyrocube-Network/EconomyApi/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID uuid.UUID) (*domain.Account, error)

	// ListAccountIDs retrieves the identifiers of every stored account.
	ListAccountIDs(ctx context.Context) ([]uuid.UUID, error)

	// FindBalance retrieves the stored balance of one cell. exists is false
	// when the cell was never written. Returns ErrNotFound if the account is missing.
	FindBalance(ctx context.Context, accountID uuid.UUID, currencyID string) (amount decimal.Decimal, exists bool, err error)

	// ListHeldCurrencies retrieves the currency ids with a stored balance.
	ListHeldCurrencies(ctx context.Context, accountID uuid.UUID) ([]string, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// FindOrCreateAccount atomically returns the stored account, creating it
	// if absent. created reports whether this call created it.
	FindOrCreateAccount(ctx context.Context, accountID uuid.UUID, now time.Time) (account *domain.Account, created bool, err error)

	// UpdateAccountName sets or clears the account name.
	UpdateAccountName(ctx context.Context, accountID uuid.UUID, name *string, now time.Time) error

	// RekeyAccount moves the account and all its balances to newID.
	// Returns ErrNotFound for a missing account and ErrDuplicate if newID is taken.
	RekeyAccount(ctx context.Context, oldID, newID uuid.UUID, now time.Time) error

	// DeleteAccount removes the account and all its balances.
	DeleteAccount(ctx context.Context, accountID uuid.UUID) (bool, error)
}

// BalanceWriter defines balance mutations
type BalanceWriter interface {
	// UpdateBalance applies fn to the current value of a cell and stores the
	// result atomically. Nothing is written when fn fails; its error is
	// returned unchanged.
	UpdateBalance(ctx context.Context, accountID uuid.UUID, currencyID string, fn domain.BalanceFunc, now time.Time) (decimal.Decimal, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	BalanceWriter
}
