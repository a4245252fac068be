package economy_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pyrocube-Network/EconomyApi/pkg/economy"
)

func TestBuilder_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		builder *economy.Builder
		field   string
	}{
		{
			name:    "missing currency",
			builder: economy.NewTransactionBuilder().WithType(economy.Deposit).WithAmount(decimal.NewFromInt(1)),
			field:   "currencyID",
		},
		{
			name:    "missing type",
			builder: economy.NewTransactionBuilder().WithCurrencyID("gold").WithAmount(decimal.NewFromInt(1)),
			field:   "transactionType",
		},
		{
			name:    "missing amount",
			builder: economy.NewTransactionBuilder().WithCurrencyID("gold").WithType(economy.Set),
			field:   "transactionAmount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			require.Error(t, err)
			assert.True(t, errors.Is(err, economy.KindInvalidTransaction))
			assert.Contains(t, err.Error(), tt.field)
			assert.Panics(t, func() { tt.builder.MustBuild() })
		})
	}
}

func TestBuilder_InvalidType(t *testing.T) {
	_, err := economy.NewTransactionBuilder().
		WithCurrencyID("gold").
		WithType(economy.TransactionType("REFUND")).
		WithAmount(decimal.NewFromInt(1)).
		Build()

	require.Error(t, err)
	kind, ok := economy.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, economy.KindInvalidTransaction, kind)
}

func TestBuilder_Build(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tx, err := economy.NewTransactionBuilder().
		WithCurrencyID("gold").
		WithType(economy.Withdrawal).
		WithAmount(decimal.RequireFromString("12.50")).
		WithTimestamp(ts).
		WithReason("shop purchase").
		Build()

	require.NoError(t, err)
	assert.Equal(t, "gold", tx.CurrencyID())
	assert.Equal(t, economy.Withdrawal, tx.Type())
	assert.True(t, decimal.RequireFromString("12.5").Equal(tx.Amount()))
	assert.Equal(t, ts, tx.Timestamp())
	reason, ok := tx.Reason()
	assert.True(t, ok)
	assert.Equal(t, "shop purchase", reason)
}

func TestBuilder_DefaultsTimestampAndReason(t *testing.T) {
	before := time.Now().UTC()
	tx := economy.NewTransactionBuilder().
		WithCurrencyID("gold").
		WithType(economy.Deposit).
		WithAmount(decimal.NewFromInt(5)).
		MustBuild()

	assert.False(t, tx.Timestamp().Before(before))
	_, ok := tx.Reason()
	assert.False(t, ok)
}

func TestBuilder_CopyIsIndependent(t *testing.T) {
	base := economy.NewTransactionBuilder().
		WithCurrencyID("gold").
		WithType(economy.Deposit).
		WithAmount(decimal.NewFromInt(5))

	cp := base.Copy().WithAmount(decimal.NewFromInt(7)).WithCurrencyID("silver")

	orig := base.MustBuild()
	copied := cp.MustBuild()
	assert.Equal(t, "gold", orig.CurrencyID())
	assert.True(t, decimal.NewFromInt(5).Equal(orig.Amount()))
	assert.Equal(t, "silver", copied.CurrencyID())
	assert.True(t, decimal.NewFromInt(7).Equal(copied.Amount()))
}

func TestTransaction_ToBuilder(t *testing.T) {
	tx := economy.NewTransactionBuilder().
		WithCurrencyID("gold").
		WithType(economy.Set).
		WithAmount(decimal.NewFromInt(100)).
		WithReason("reset").
		MustBuild()

	again := tx.ToBuilder().MustBuild()
	assert.Equal(t, tx.CurrencyID(), again.CurrencyID())
	assert.Equal(t, tx.Type(), again.Type())
	assert.Equal(t, tx.Timestamp(), again.Timestamp())
	reason, _ := again.Reason()
	assert.Equal(t, "reset", reason)
}

func TestTransactionType_Valid(t *testing.T) {
	assert.True(t, economy.Withdrawal.Valid())
	assert.True(t, economy.Deposit.Valid())
	assert.True(t, economy.Set.Valid())
	assert.False(t, economy.TransactionType("withdrawal").Valid())
}
