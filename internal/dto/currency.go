package dto

// CurrencyNameDefinition is one localized name pair of a configured currency.
type CurrencyNameDefinition struct {
	Locale   string `mapstructure:"locale" validate:"required,bcp47_language_tag"`
	Singular string `mapstructure:"singular" validate:"required"`
	Plural   string `mapstructure:"plural" validate:"required"`
}

// CurrencyDefinition describes a currency registered at startup from the
// currencies file. Decimal values are kept as strings so no float parsing
// happens on the way in.
type CurrencyDefinition struct {
	ID              string                   `mapstructure:"id" validate:"required,max=64"`
	Symbol          string                   `mapstructure:"symbol" validate:"max=8"`
	Precision       int32                    `mapstructure:"precision" validate:"min=0,max=18"`
	ConversionRate  string                   `mapstructure:"conversion_rate" validate:"required,numeric"`
	StartingBalance string                   `mapstructure:"starting_balance" validate:"omitempty,numeric"`
	Primary         bool                     `mapstructure:"primary"`
	Names           []CurrencyNameDefinition `mapstructure:"names" validate:"dive"`
}

// CurrencyFile is the top-level shape of the currencies file.
type CurrencyFile struct {
	Currencies []CurrencyDefinition `mapstructure:"currencies" validate:"required,min=1,unique=ID,dive"`
}
