package economy

import (
	"slices"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

type displayNames struct {
	singular string
	plural   string
}

// StandardCurrency is a value-backed Currency with localized names and
// locale-aware formatting.
type StandardCurrency struct {
	id              string
	symbol          string
	precision       int32
	rate            decimal.Decimal
	primary         bool
	startingBalance decimal.Decimal
	startingFunc    func(Account) decimal.Decimal

	nameTags []language.Tag
	names    []displayNames
	matcher  language.Matcher
}

var _ Currency = (*StandardCurrency)(nil)

// CurrencyOption configures a StandardCurrency.
type CurrencyOption func(*StandardCurrency)

// WithNames sets the singular and plural display names for locale. The first
// locale given is the fallback for unmatched locales unless English is set.
func WithNames(locale language.Tag, singular, plural string) CurrencyOption {
	return func(c *StandardCurrency) {
		for i, tag := range c.nameTags {
			if tag == locale {
				c.names[i] = displayNames{singular: singular, plural: plural}
				return
			}
		}
		c.nameTags = append(c.nameTags, locale)
		c.names = append(c.names, displayNames{singular: singular, plural: plural})
	}
}

func WithStartingBalance(balance decimal.Decimal) CurrencyOption {
	return func(c *StandardCurrency) {
		c.startingBalance = balance
	}
}

// WithStartingBalanceFunc overrides the starting balance per account.
func WithStartingBalanceFunc(fn func(Account) decimal.Decimal) CurrencyOption {
	return func(c *StandardCurrency) {
		c.startingFunc = fn
	}
}

func AsPrimary() CurrencyOption {
	return func(c *StandardCurrency) {
		c.primary = true
	}
}

// NewStandardCurrency validates and builds a currency. The identifier must be
// non-empty, precision non-negative and rate positive.
func NewStandardCurrency(id, symbol string, precision int32, rate decimal.Decimal, opts ...CurrencyOption) (*StandardCurrency, error) {
	if id == "" {
		return nil, InvalidCurrencyError(id, "identifier is empty")
	}
	if precision < 0 {
		return nil, InvalidCurrencyError(id, "precision is negative")
	}
	if !rate.IsPositive() {
		return nil, InvalidCurrencyError(id, "conversion rate must be positive")
	}

	c := &StandardCurrency{
		id:        id,
		symbol:    symbol,
		precision: precision,
		rate:      rate,
	}
	for _, opt := range opts {
		opt(c)
	}
	if len(c.nameTags) > 0 {
		if i := slices.Index(c.nameTags, language.English); i > 0 {
			c.nameTags[0], c.nameTags[i] = c.nameTags[i], c.nameTags[0]
			c.names[0], c.names[i] = c.names[i], c.names[0]
		}
		c.matcher = language.NewMatcher(c.nameTags)
	}
	return c, nil
}

// MustStandardCurrency is like NewStandardCurrency but panics on invalid input.
func MustStandardCurrency(id, symbol string, precision int32, rate decimal.Decimal, opts ...CurrencyOption) *StandardCurrency {
	c, err := NewStandardCurrency(id, symbol, precision, rate, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *StandardCurrency) Identifier() string {
	return c.id
}

func (c *StandardCurrency) Symbol() string {
	return c.symbol
}

// DisplayName falls back to the identifier when no names are configured.
func (c *StandardCurrency) DisplayName(value decimal.Decimal, locale language.Tag) string {
	if len(c.names) == 0 {
		return c.id
	}
	n := c.names[0]
	if locale != language.Und {
		_, idx, conf := c.matcher.Match(locale)
		if conf != language.No {
			n = c.names[idx]
		}
	}
	if IsSingular(value) {
		return n.singular
	}
	return n.plural
}

// Locales lists the locales the currency has names for.
func (c *StandardCurrency) Locales() []language.Tag {
	return append([]language.Tag(nil), c.nameTags...)
}

func (c *StandardCurrency) Precision() int32 {
	return c.precision
}

func (c *StandardCurrency) IsPrimary() bool {
	return c.primary
}

func (c *StandardCurrency) StartingBalance(account Account) decimal.Decimal {
	if c.startingFunc != nil {
		return c.startingFunc(account)
	}
	return c.startingBalance
}

// DefaultStartingBalance returns the starting balance without any per-account
// override applied.
func (c *StandardCurrency) DefaultStartingBalance() decimal.Decimal {
	return c.startingBalance
}

func (c *StandardCurrency) ConversionRate() decimal.Decimal {
	return c.rate
}

func (c *StandardCurrency) Parse(formatted string, locale language.Tag) (decimal.Decimal, error) {
	return ParseAmount(formatted, locale, c.symbol)
}

func (c *StandardCurrency) Format(amount decimal.Decimal, locale language.Tag) string {
	return c.FormatPrecision(amount, locale, c.precision)
}

func (c *StandardCurrency) FormatPrecision(amount decimal.Decimal, locale language.Tag, precision int32) string {
	return c.symbol + FormatAmount(amount, locale, precision)
}

func (c *StandardCurrency) String() string {
	return c.id
}
