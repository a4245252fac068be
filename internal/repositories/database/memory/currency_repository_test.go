package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pyrocube-Network/EconomyApi/internal/apperrors"
	"github.com/Pyrocube-Network/EconomyApi/internal/core/domain"
)

func TestMemoryCurrencyRepository(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryCurrencyRepository()

	gold := domain.Currency{
		CurrencyID:     "gold",
		Precision:      2,
		ConversionRate: decimal.NewFromInt(1),
		IsPrimary:      true,
		DisplayNames:   map[string]domain.DisplayName{"en": {Singular: "Gold", Plural: "Gold"}},
	}
	silver := domain.Currency{CurrencyID: "silver", Precision: 2, ConversionRate: decimal.RequireFromString("0.3")}

	require.NoError(t, repo.SaveCurrency(ctx, silver))
	require.NoError(t, repo.SaveCurrency(ctx, gold))
	assert.ErrorIs(t, repo.SaveCurrency(ctx, gold), apperrors.ErrDuplicate)

	list, err := repo.ListCurrencies(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "gold", list[0].CurrencyID)
	assert.Equal(t, "silver", list[1].CurrencyID)

	found, err := repo.FindCurrencyByID(ctx, "gold")
	require.NoError(t, err)
	found.DisplayNames["de"] = domain.DisplayName{Singular: "Gold", Plural: "Gold"}
	again, err := repo.FindCurrencyByID(ctx, "gold")
	require.NoError(t, err)
	assert.Len(t, again.DisplayNames, 1)

	require.NoError(t, repo.DeleteCurrency(ctx, "gold"))
	assert.ErrorIs(t, repo.DeleteCurrency(ctx, "gold"), apperrors.ErrNotFound)
	_, err = repo.FindCurrencyByID(ctx, "gold")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
