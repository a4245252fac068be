package publisher

import (
	"time"

	"github.com/Pyrocube-Network/EconomyApi/internal/core/domain"
)

// TransactionEvent is the wire form of a processed transaction. Amounts are
// decimal strings so consumers never see binary floats.
type TransactionEvent struct {
	ReferenceID     string    `json:"reference_id"`
	AccountID       string    `json:"account_id"`
	CurrencyID      string    `json:"currency_id"`
	Type            string    `json:"type"`
	Amount          string    `json:"amount"`
	PreviousBalance string    `json:"previous_balance"`
	NewBalance      string    `json:"new_balance"`
	Delta           string    `json:"delta"`
	Reason          *string   `json:"reason,omitempty"`
	Outcome         string    `json:"outcome"`
	Timestamp       time.Time `json:"timestamp"`
	AppliedAt       time.Time `json:"applied_at"`
}

func newTransactionEvent(e domain.TransactionEvent) TransactionEvent {
	return TransactionEvent{
		ReferenceID:     e.ReferenceID,
		AccountID:       e.AccountID.String(),
		CurrencyID:      e.CurrencyID,
		Type:            e.Type,
		Amount:          e.Amount.String(),
		PreviousBalance: e.PreviousBalance.String(),
		NewBalance:      e.NewBalance.String(),
		Delta:           e.Delta().String(),
		Reason:          e.Reason,
		Outcome:         string(e.Outcome),
		Timestamp:       e.Timestamp,
		AppliedAt:       e.AppliedAt,
	}
}
