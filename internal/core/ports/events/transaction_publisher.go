package events

import (
	"context"

	"github.com/Pyrocube-Network/EconomyApi/internal/core/domain"
)

// TransactionPublisher emits processed transactions to an audit stream.
type TransactionPublisher interface {
	PublishTransaction(ctx context.Context, event domain.TransactionEvent) error
	Close() error
}
