package services

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/Pyrocube-Network/EconomyApi/pkg/economy"
)

// CurrencyReaderSvc defines lookups against the registered currencies
type CurrencyReaderSvc interface {
	// Find performs an exact, case-sensitive lookup.
	Find(currencyID string) (economy.Currency, bool)

	// FindByDisplayName matches a localized display name, ignoring case.
	FindByDisplayName(name string, value decimal.Decimal, locale language.Tag) (economy.Currency, bool)

	// Primary returns the primary currency, or a deterministic fallback.
	Primary() (economy.Currency, error)

	// List returns every registered currency ordered by identifier.
	List() []economy.Currency
}

// CurrencyWriterSvc defines registration operations
type CurrencyWriterSvc interface {
	// Register adds a currency. Fails on a duplicate id or a second primary.
	Register(ctx context.Context, currency economy.Currency) error

	// Unregister removes a currency. Returns false if it was not registered.
	Unregister(ctx context.Context, currency economy.Currency) (bool, error)

	// Restore loads persisted currency definitions into the registry.
	Restore(ctx context.Context) error
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}
