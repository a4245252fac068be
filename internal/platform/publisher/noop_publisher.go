package publisher

import (
	"context"

	"github.com/Pyrocube-Network/EconomyApi/internal/core/domain"
	portsevt "github.com/Pyrocube-Network/EconomyApi/internal/core/ports/events"
)

// NoopTransactionPublisher discards events. Used when no brokers are configured.
type NoopTransactionPublisher struct{}

var _ portsevt.TransactionPublisher = NoopTransactionPublisher{}

func (NoopTransactionPublisher) PublishTransaction(context.Context, domain.TransactionEvent) error {
	return nil
}

func (NoopTransactionPublisher) Close() error {
	return nil
}
