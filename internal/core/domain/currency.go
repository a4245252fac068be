package domain

import "github.com/shopspring/decimal"

// DisplayName holds the singular and plural names of a currency for one locale.
type DisplayName struct {
	Singular string `json:"singular"`
	Plural   string `json:"plural"`
}

// Currency is the persisted definition of a registered currency.
type Currency struct {
	CurrencyID      string                 `json:"currencyID"` // Primary Key, case-sensitive
	Symbol          string                 `json:"symbol"`
	Precision       int32                  `json:"precision"`
	ConversionRate  decimal.Decimal        `json:"conversionRate"`
	IsPrimary       bool                   `json:"isPrimary"`
	StartingBalance decimal.Decimal        `json:"startingBalance"`
	DisplayNames    map[string]DisplayName `json:"displayNames"` // keyed by BCP 47 tag
	AuditFields
}
