package economy

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType selects how a transaction changes a balance.
type TransactionType string

const (
	Withdrawal TransactionType = "WITHDRAWAL"
	Deposit    TransactionType = "DEPOSIT"
	Set        TransactionType = "SET"
)

// Valid reports whether t is one of the defined transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case Withdrawal, Deposit, Set:
		return true
	}
	return false
}

// Transaction is an immutable balance change request. Build one with
// NewTransactionBuilder.
type Transaction struct {
	amount     decimal.Decimal
	currencyID string
	timestamp  time.Time
	txType     TransactionType
	reason     *string
}

func (t Transaction) Amount() decimal.Decimal {
	return t.amount
}

func (t Transaction) CurrencyID() string {
	return t.currencyID
}

func (t Transaction) Timestamp() time.Time {
	return t.timestamp
}

func (t Transaction) Type() TransactionType {
	return t.txType
}

// Reason returns the optional free-form reason.
func (t Transaction) Reason() (string, bool) {
	if t.reason == nil {
		return "", false
	}
	return *t.reason, true
}

// ToBuilder returns a builder initialised with every field of t.
func (t Transaction) ToBuilder() *Builder {
	b := &Builder{timestamp: t.timestamp}
	b.WithCurrencyID(t.currencyID).WithType(t.txType).WithAmount(t.amount)
	if t.reason != nil {
		b.WithReason(*t.reason)
	}
	return b
}

// Builder assembles a Transaction. Currency, type and amount are required.
type Builder struct {
	amount     *decimal.Decimal
	currencyID *string
	timestamp  time.Time
	txType     *TransactionType
	reason     *string
}

func NewTransactionBuilder() *Builder {
	return &Builder{}
}

// WithCurrency sets the currency id from c.
func (b *Builder) WithCurrency(c Currency) *Builder {
	return b.WithCurrencyID(c.Identifier())
}

func (b *Builder) WithCurrencyID(id string) *Builder {
	b.currencyID = &id
	return b
}

// WithTimestamp sets the timestamp. A zero time means creation time.
func (b *Builder) WithTimestamp(ts time.Time) *Builder {
	b.timestamp = ts
	return b
}

func (b *Builder) WithType(t TransactionType) *Builder {
	b.txType = &t
	return b
}

func (b *Builder) WithReason(reason string) *Builder {
	b.reason = &reason
	return b
}

func (b *Builder) WithAmount(amount decimal.Decimal) *Builder {
	b.amount = &amount
	return b
}

// Copy returns an independent builder with the same fields.
func (b *Builder) Copy() *Builder {
	cp := *b
	return &cp
}

// Build validates the builder and returns the Transaction. A missing
// required field fails with KindInvalidTransaction naming the field.
func (b *Builder) Build() (Transaction, error) {
	if b.currencyID == nil || *b.currencyID == "" {
		return Transaction{}, MissingFieldError("currencyID")
	}
	if b.txType == nil {
		return Transaction{}, MissingFieldError("transactionType")
	}
	if !b.txType.Valid() {
		return Transaction{}, InvalidTransactionTypeError(*b.txType)
	}
	if b.amount == nil {
		return Transaction{}, MissingFieldError("transactionAmount")
	}

	ts := b.timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return Transaction{
		amount:     *b.amount,
		currencyID: *b.currencyID,
		timestamp:  ts,
		txType:     *b.txType,
		reason:     b.reason,
	}, nil
}

// MustBuild is like Build but panics on a missing field.
func (b *Builder) MustBuild() Transaction {
	tx, err := b.Build()
	if err != nil {
		panic(err)
	}
	return tx
}
