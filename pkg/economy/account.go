package economy

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Pyrocube-Network/EconomyApi/pkg/future"
)

// Account is a handle on a stored account. Every I/O method dispatches
// asynchronously and never blocks the caller.
type Account interface {
	Identifier() uuid.UUID
	// SetIdentifier rekeys the account and resolves with the new identifier.
	SetIdentifier(ctx context.Context, id uuid.UUID) *future.Future[uuid.UUID]
	Name() (string, bool)
	// SetName sets or, with nil, clears the name.
	SetName(ctx context.Context, name *string) *future.Future[bool]
	// RetrieveBalance resolves with the stored balance, or the currency's
	// starting balance if the account never held it.
	RetrieveBalance(ctx context.Context, currency Currency) *future.Future[decimal.Decimal]
	// DoTransaction applies tx and resolves with the new balance.
	DoTransaction(ctx context.Context, tx Transaction) *future.Future[decimal.Decimal]
	// DeleteAccount removes every balance and the metadata of the account.
	DeleteAccount(ctx context.Context) *future.Future[bool]
	// RetrieveHeldCurrencies lists currency ids with a stored balance.
	RetrieveHeldCurrencies(ctx context.Context) *future.Future[[]string]
}

// TransactionOption adjusts the transaction built by the balance helpers.
type TransactionOption func(*Builder)

// WithTransactionReason attaches a reason to the transaction.
func WithTransactionReason(reason string) TransactionOption {
	return func(b *Builder) {
		b.WithReason(reason)
	}
}

// WithdrawBalance removes amount of currency from account.
func WithdrawBalance(ctx context.Context, account Account, amount decimal.Decimal, currency Currency, opts ...TransactionOption) *future.Future[decimal.Decimal] {
	if currency == nil {
		return future.Failed[decimal.Decimal](UnknownCurrencyError(""))
	}
	b := NewTransactionBuilder().WithType(Withdrawal).WithCurrency(currency).WithAmount(amount)
	return submit(ctx, account, b, opts)
}

// DepositBalance adds amount of currency to account.
func DepositBalance(ctx context.Context, account Account, amount decimal.Decimal, currency Currency, opts ...TransactionOption) *future.Future[decimal.Decimal] {
	if currency == nil {
		return future.Failed[decimal.Decimal](UnknownCurrencyError(""))
	}
	b := NewTransactionBuilder().WithType(Deposit).WithCurrency(currency).WithAmount(amount)
	return submit(ctx, account, b, opts)
}

// ResetBalance sets the balance of currency back to its starting balance.
func ResetBalance(ctx context.Context, account Account, currency Currency, opts ...TransactionOption) *future.Future[decimal.Decimal] {
	if currency == nil {
		return future.Failed[decimal.Decimal](UnknownCurrencyError(""))
	}
	b := NewTransactionBuilder().WithType(Set).WithCurrency(currency).WithAmount(currency.StartingBalance(account))
	return submit(ctx, account, b, opts)
}

func submit(ctx context.Context, account Account, b *Builder, opts []TransactionOption) *future.Future[decimal.Decimal] {
	for _, opt := range opts {
		opt(b)
	}
	tx, err := b.Build()
	if err != nil {
		return future.Failed[decimal.Decimal](err)
	}
	return account.DoTransaction(ctx, tx)
}
