package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/Pyrocube-Network/EconomyApi/pkg/economy"
)

func goldCurrency(t *testing.T) *economy.StandardCurrency {
	t.Helper()
	c, err := economy.NewStandardCurrency("gold", "G", 2, decimal.NewFromInt(1),
		economy.AsPrimary(),
		economy.WithStartingBalance(decimal.NewFromInt(100)),
		economy.WithNames(language.English, "Gold Coin", "Gold Coins"),
		economy.WithNames(language.German, "Goldmünze", "Goldmünzen"),
	)
	require.NoError(t, err)
	return c
}

func silverCurrency(t *testing.T) *economy.StandardCurrency {
	t.Helper()
	c, err := economy.NewStandardCurrency("silver", "S", 2, decimal.RequireFromString("0.3"),
		economy.WithNames(language.English, "Silver Coin", "Silver Coins"),
	)
	require.NoError(t, err)
	return c
}

// wrappedCurrency hides its StandardCurrency so lookups treat it as a
// third-party implementation.
type wrappedCurrency struct {
	*economy.StandardCurrency
}

func wrapped(t *testing.T, id, singular, plural string) wrappedCurrency {
	t.Helper()
	c, err := economy.NewStandardCurrency(id, "?", 0, decimal.NewFromInt(1),
		economy.WithNames(language.English, singular, plural),
	)
	require.NoError(t, err)
	return wrappedCurrency{c}
}

var defaultTestTime = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
