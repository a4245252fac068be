package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is a row of economy_accounts.
type Account struct {
	AccountID   uuid.UUID `db:"account_id"`
	Name        *string   `db:"name"` // Nullable
	AuditFields
}

// Balance is a row of economy_balances.
type Balance struct {
	AccountID  uuid.UUID       `db:"account_id"`
	CurrencyID string          `db:"currency_id"`
	Amount     decimal.Decimal `db:"amount"`
	UpdatedAt  time.Time       `db:"updated_at"`
}
