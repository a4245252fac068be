package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionOutcome records whether an applied transaction committed.
type TransactionOutcome string

const (
	OutcomeApplied  TransactionOutcome = "APPLIED"
	OutcomeRejected TransactionOutcome = "REJECTED"
)

// TransactionEvent describes a transaction after the processor handled it.
type TransactionEvent struct {
	ReferenceID     string             `json:"referenceID"`
	AccountID       uuid.UUID          `json:"accountID"`
	CurrencyID      string             `json:"currencyID"`
	Type            string             `json:"type"`
	Amount          decimal.Decimal    `json:"amount"`
	PreviousBalance decimal.Decimal    `json:"previousBalance"`
	NewBalance      decimal.Decimal    `json:"newBalance"`
	Reason          *string            `json:"reason,omitempty"` // Nullable
	Outcome         TransactionOutcome `json:"outcome"`
	Timestamp       time.Time          `json:"timestamp"` // as requested by the caller
	AppliedAt       time.Time          `json:"appliedAt"`
}

// Delta returns the signed change the transaction made to the balance.
func (e TransactionEvent) Delta() decimal.Decimal {
	return e.NewBalance.Sub(e.PreviousBalance)
}

// IsCredit reports whether the transaction increased the balance.
func (e TransactionEvent) IsCredit() bool {
	return e.Delta().IsPositive()
}
