package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account represents a stored economy account.
type Account struct {
	AccountID   uuid.UUID `json:"accountID"`
	Name        *string   `json:"name,omitempty"` // Nullable
	AuditFields
}

// Balance is the stored value of one (account, currency) cell.
type Balance struct {
	AccountID  uuid.UUID       `json:"accountID"`
	CurrencyID string          `json:"currencyID"`
	Amount     decimal.Decimal `json:"amount"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// BalanceFunc computes the next balance of a cell from its current value.
// exists is false when the cell has never been written.
type BalanceFunc func(current decimal.Decimal, exists bool) (decimal.Decimal, error)
