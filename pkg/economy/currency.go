package economy

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Currency describes a unit of value held by accounts.
type Currency interface {
	// Identifier is the unique, case-sensitive key of the currency.
	Identifier() string
	Symbol() string
	// DisplayName returns the singular name when value <= 1 and the plural
	// name otherwise.
	DisplayName(value decimal.Decimal, locale language.Tag) string
	// Precision is the number of fractional digits balances retain.
	Precision() int32
	IsPrimary() bool
	// StartingBalance is the balance a fresh or reset account holds.
	StartingBalance(account Account) decimal.Decimal
	// ConversionRate is relative to an implicit base and always positive.
	ConversionRate() decimal.Decimal
	// Parse reads a formatted amount. Failures are *Error of KindParseFailure.
	Parse(formatted string, locale language.Tag) (decimal.Decimal, error)
	Format(amount decimal.Decimal, locale language.Tag) string
	FormatPrecision(amount decimal.Decimal, locale language.Tag, precision int32) string
}

// Convert returns amount of from expressed in to, rounded half-up to the
// precision of to.
func Convert(from, to Currency, amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(from.ConversionRate()).DivRound(to.ConversionRate(), to.Precision())
}

// FoldName returns the Unicode case fold of a display name. Names are
// compared on their folds.
func FoldName(name string) string {
	return cases.Fold().String(name)
}

// FindByDisplayName returns the first currency whose display name for value
// and locale equals name, ignoring case.
func FindByDisplayName(currencies []Currency, name string, value decimal.Decimal, locale language.Tag) (Currency, bool) {
	folded := FoldName(name)
	for _, c := range currencies {
		if FoldName(c.DisplayName(value, locale)) == folded {
			return c, true
		}
	}
	return nil, false
}

// IsSingular reports whether value takes the singular display name.
func IsSingular(value decimal.Decimal) bool {
	return value.LessThanOrEqual(decimal.NewFromInt(1))
}
