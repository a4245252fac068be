package repositories

import (
	"context"

	"github.com/Pyrocube-Network/EconomyApi/internal/core/domain"
)

// CurrencyReader defines read operations for currency data
type CurrencyReader interface {
	// FindCurrencyByID retrieves a specific currency definition.
	FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error)

	// ListCurrencies retrieves all stored currency definitions.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriter defines write operations for currency data
type CurrencyWriter interface {
	// SaveCurrency persists a new currency. Returns ErrDuplicate on an id collision.
	SaveCurrency(ctx context.Context, currency domain.Currency) error

	// DeleteCurrency removes a currency definition. Stored balances are kept.
	DeleteCurrency(ctx context.Context, currencyID string) error
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces
// This is a facade for clients that need access to all operations
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}
