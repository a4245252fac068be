package models

import "github.com/shopspring/decimal"

// CurrencyName is the JSON shape of one entry in economy_currencies.display_names.
type CurrencyName struct {
	Singular string `json:"singular"`
	Plural   string `json:"plural"`
}

// Currency is a row of economy_currencies.
type Currency struct {
	CurrencyID      string                  `db:"currency_id"`
	Symbol          string                  `db:"symbol"`
	Precision       int32                   `db:"precision"`
	ConversionRate  decimal.Decimal         `db:"conversion_rate"`
	IsPrimary       bool                    `db:"is_primary"`
	StartingBalance decimal.Decimal         `db:"starting_balance"`
	DisplayNames    map[string]CurrencyName `db:"display_names"` // jsonb
	AuditFields
}
