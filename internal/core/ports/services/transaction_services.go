package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Pyrocube-Network/EconomyApi/pkg/economy"
)

// TransactionSvc applies balance-changing transactions
type TransactionSvc interface {
	// Apply executes tx against the (account, currency) cell and returns the
	// new balance. owner supplies the starting balance of unwritten cells.
	Apply(ctx context.Context, accountID uuid.UUID, owner economy.Account, tx economy.Transaction) (decimal.Decimal, error)
}
