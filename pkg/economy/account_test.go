package economy_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pyrocube-Network/EconomyApi/pkg/economy"
	"github.com/Pyrocube-Network/EconomyApi/pkg/future"
)

// recordingAccount captures the transactions handed to DoTransaction.
type recordingAccount struct {
	id  uuid.UUID
	txs []economy.Transaction
}

func (a *recordingAccount) Identifier() uuid.UUID { return a.id }

func (a *recordingAccount) SetIdentifier(_ context.Context, id uuid.UUID) *future.Future[uuid.UUID] {
	a.id = id
	return future.Resolved(id)
}

func (a *recordingAccount) Name() (string, bool) { return "", false }

func (a *recordingAccount) SetName(context.Context, *string) *future.Future[bool] {
	return future.Resolved(true)
}

func (a *recordingAccount) RetrieveBalance(context.Context, economy.Currency) *future.Future[decimal.Decimal] {
	return future.Resolved(decimal.Zero)
}

func (a *recordingAccount) DoTransaction(_ context.Context, tx economy.Transaction) *future.Future[decimal.Decimal] {
	a.txs = append(a.txs, tx)
	return future.Resolved(tx.Amount())
}

func (a *recordingAccount) DeleteAccount(context.Context) *future.Future[bool] {
	return future.Resolved(true)
}

func (a *recordingAccount) RetrieveHeldCurrencies(context.Context) *future.Future[[]string] {
	return future.Resolved([]string{})
}

// unnamedCurrency reports an empty identifier so the builder rejects it.
type unnamedCurrency struct {
	*economy.StandardCurrency
}

func (unnamedCurrency) Identifier() string { return "" }

func TestBalanceHelpers(t *testing.T) {
	ctx := context.Background()
	acc := &recordingAccount{id: uuid.New()}
	c := gold(t)

	_, err := economy.WithdrawBalance(ctx, acc, decimal.NewFromInt(30), c, economy.WithTransactionReason("fee")).Result()
	require.NoError(t, err)
	_, err = economy.DepositBalance(ctx, acc, decimal.RequireFromString("15.50"), c).Result()
	require.NoError(t, err)
	reset, err := economy.ResetBalance(ctx, acc, c).Result()
	require.NoError(t, err)

	require.Len(t, acc.txs, 3)
	assert.Equal(t, economy.Withdrawal, acc.txs[0].Type())
	reason, ok := acc.txs[0].Reason()
	assert.True(t, ok)
	assert.Equal(t, "fee", reason)

	assert.Equal(t, economy.Deposit, acc.txs[1].Type())
	_, ok = acc.txs[1].Reason()
	assert.False(t, ok)

	assert.Equal(t, economy.Set, acc.txs[2].Type())
	assert.Equal(t, "gold", acc.txs[2].CurrencyID())
	assert.True(t, decimal.NewFromInt(100).Equal(reset))
}

func TestBalanceHelpers_BuilderFailureResolvesFailed(t *testing.T) {
	acc := &recordingAccount{id: uuid.New()}
	c := unnamedCurrency{gold(t)}

	f := economy.DepositBalance(context.Background(), acc, decimal.NewFromInt(1), c)
	_, err := f.Result()

	assert.ErrorIs(t, err, economy.KindInvalidTransaction)
	assert.Empty(t, acc.txs)
}

func TestBalanceHelpers_NilCurrency(t *testing.T) {
	ctx := context.Background()
	acc := &recordingAccount{id: uuid.New()}

	futures := []*future.Future[decimal.Decimal]{
		economy.WithdrawBalance(ctx, acc, decimal.NewFromInt(1), nil),
		economy.DepositBalance(ctx, acc, decimal.NewFromInt(1), nil),
		economy.ResetBalance(ctx, acc, nil),
	}
	for _, f := range futures {
		_, err := f.Result()
		assert.ErrorIs(t, err, economy.KindUnknownCurrency)
	}
	assert.Empty(t, acc.txs)
}
