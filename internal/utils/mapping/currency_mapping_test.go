package mapping

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/Pyrocube-Network/EconomyApi/internal/apperrors"
	"github.com/Pyrocube-Network/EconomyApi/internal/core/domain"
	"github.com/Pyrocube-Network/EconomyApi/internal/dto"
	"github.com/Pyrocube-Network/EconomyApi/pkg/economy"
)

func TestEconomyCurrencyRoundTrip(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	gold := economy.MustStandardCurrency("gold", "G", 2, decimal.RequireFromString("1.5"),
		economy.AsPrimary(),
		economy.WithStartingBalance(decimal.NewFromInt(100)),
		economy.WithNames(language.English, "Gold Coin", "Gold Coins"),
		economy.WithNames(language.German, "Goldmünze", "Goldmünzen"),
	)

	d := FromEconomyCurrency(gold, now)
	assert.Equal(t, "gold", d.CurrencyID)
	assert.True(t, d.IsPrimary)
	assert.True(t, decimal.NewFromInt(100).Equal(d.StartingBalance))
	assert.Equal(t, domain.DisplayName{Singular: "Goldmünze", Plural: "Goldmünzen"}, d.DisplayNames["de"])
	assert.Equal(t, now, d.CreatedAt)

	back, err := ToEconomyCurrency(ToDomainCurrency(ToModelCurrency(d)))
	require.NoError(t, err)
	assert.Equal(t, "G", back.Symbol())
	assert.Equal(t, int32(2), back.Precision())
	assert.True(t, back.IsPrimary())
	assert.True(t, gold.ConversionRate().Equal(back.ConversionRate()))
	assert.Equal(t, "Gold Coins", back.DisplayName(decimal.NewFromInt(3), language.English))
	assert.Equal(t, "Goldmünze", back.DisplayName(decimal.NewFromInt(1), language.German))
}

func TestToEconomyCurrency_Invalid(t *testing.T) {
	_, err := ToEconomyCurrency(domain.Currency{CurrencyID: "gold", ConversionRate: decimal.Zero})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = ToEconomyCurrency(domain.Currency{
		CurrencyID:     "gold",
		ConversionRate: decimal.NewFromInt(1),
		DisplayNames:   map[string]domain.DisplayName{"not a tag!": {Singular: "a", Plural: "b"}},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestFromCurrencyDefinition(t *testing.T) {
	now := time.Now()
	def := dto.CurrencyDefinition{
		ID:              "silver",
		Symbol:          "S",
		Precision:       2,
		ConversionRate:  "0.3",
		StartingBalance: "5",
		Names:           []dto.CurrencyNameDefinition{{Locale: "en", Singular: "Silver Coin", Plural: "Silver Coins"}},
	}

	d, err := FromCurrencyDefinition(def, now)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("0.3").Equal(d.ConversionRate))
	assert.True(t, decimal.NewFromInt(5).Equal(d.StartingBalance))
	assert.Equal(t, "Silver Coins", d.DisplayNames["en"].Plural)

	def.StartingBalance = ""
	d, err = FromCurrencyDefinition(def, now)
	require.NoError(t, err)
	assert.True(t, d.StartingBalance.IsZero())

	def.ConversionRate = "lots"
	_, err = FromCurrencyDefinition(def, now)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
