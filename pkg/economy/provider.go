// Package economy defines the contracts plugins use to work with accounts,
// currencies and balance-changing transactions, independent of any storage.
package economy

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/Pyrocube-Network/EconomyApi/pkg/future"
)

// AccountAccessor resolves accounts, creating them on first access.
type AccountAccessor interface {
	Get(ctx context.Context, id uuid.UUID) *future.Future[Account]
}

// Provider is the entry point into an economy implementation.
type Provider interface {
	AccountAccessor() AccountAccessor
	RetrieveAccountIDs(ctx context.Context) *future.Future[[]uuid.UUID]

	// PrimaryCurrency fails with KindUnknownCurrency only when no currency
	// is registered at all.
	PrimaryCurrency() (Currency, error)
	PrimaryCurrencyID() (string, error)
	FindCurrency(id string) (Currency, bool)
	FindCurrencyByDisplayName(name string, value decimal.Decimal, locale language.Tag) (Currency, bool)
	Currencies() []Currency

	// RegisterCurrency resolves false with an error for a duplicate
	// identifier or a second primary currency.
	RegisterCurrency(ctx context.Context, currency Currency) *future.Future[bool]
	// UnregisterCurrency resolves false when the currency is not registered.
	UnregisterCurrency(ctx context.Context, currency Currency) *future.Future[bool]
}
