package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Pyrocube-Network/EconomyApi/internal/core/domain"
	"github.com/Pyrocube-Network/EconomyApi/pkg/economy"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// ListAccountIDs retrieves the identifiers of all accounts.
	ListAccountIDs(ctx context.Context) ([]uuid.UUID, error)

	// Balance retrieves the balance of a cell. Unwritten cells report the
	// currency's starting balance for owner.
	Balance(ctx context.Context, accountID uuid.UUID, currency economy.Currency, owner economy.Account) (decimal.Decimal, error)

	// HeldCurrencies lists currency ids with a stored balance.
	HeldCurrencies(ctx context.Context, accountID uuid.UUID) ([]string, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// GetOrCreate returns the account, creating it on first access.
	GetOrCreate(ctx context.Context, accountID uuid.UUID) (*domain.Account, error)

	// SetName sets or clears the account name.
	SetName(ctx context.Context, accountID uuid.UUID, name *string) error

	// Rekey moves an account to a new identifier. onCommit runs while the
	// record locks are still held.
	Rekey(ctx context.Context, oldID, newID uuid.UUID, onCommit func()) error

	// Delete removes the account with all balances and metadata.
	Delete(ctx context.Context, accountID uuid.UUID) (bool, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
