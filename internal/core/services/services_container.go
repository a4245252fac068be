package services

import (
	"time"

	portsevt "github.com/Pyrocube-Network/EconomyApi/internal/core/ports/events"
	portsrepo "github.com/Pyrocube-Network/EconomyApi/internal/core/ports/repositories"
	portssvc "github.com/Pyrocube-Network/EconomyApi/internal/core/ports/services"
	"github.com/Pyrocube-Network/EconomyApi/internal/platform/config"
	"github.com/Pyrocube-Network/EconomyApi/internal/platform/metrics"
)

type containerOptions struct {
	publisher portsevt.TransactionPublisher
	metrics   *metrics.EconomyMetrics
	now       func() time.Time
	locks     *LockTable
}

// ContainerOption is a functional option for the service container
type ContainerOption func(*containerOptions)

func WithPublisher(p portsevt.TransactionPublisher) ContainerOption {
	return func(o *containerOptions) {
		o.publisher = p
	}
}

func WithMetrics(m *metrics.EconomyMetrics) ContainerOption {
	return func(o *containerOptions) {
		o.metrics = m
	}
}

func WithClock(now func() time.Time) ContainerOption {
	return func(o *containerOptions) {
		o.now = now
	}
}

// WithLockTable shares locks with the caller instead of creating a fresh table.
func WithLockTable(locks *LockTable) ContainerOption {
	return func(o *containerOptions) {
		o.locks = locks
	}
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, options ...ContainerOption) (*portssvc.ServiceContainer, error) {
	opts := containerOptions{now: time.Now}
	for _, option := range options {
		option(&opts)
	}

	// Account and transaction services must agree on record and cell locks
	locks := opts.locks
	if locks == nil {
		locks = NewLockTable()
	}

	container := &portssvc.ServiceContainer{}
	container.Currency = NewCurrencyService(
		repos.CurrencyRepo,
		WithCurrencyMetrics(opts.metrics),
		WithCurrencyClock(opts.now),
	)
	container.Account = NewAccountService(
		repos.AccountRepo,
		WithAccountLockTable(locks),
		WithAccountMetrics(opts.metrics),
		WithAccountClock(opts.now),
	)

	transactions, err := NewTransactionService(
		repos.AccountRepo,
		container.Currency,
		WithTransactionLockTable(locks),
		WithOverdraft(cfg.AllowOverdraft),
		WithTransactionPublisher(opts.publisher),
		WithTransactionMetrics(opts.metrics),
		WithTransactionClock(opts.now),
	)
	if err != nil {
		return nil, err
	}
	container.Transaction = transactions

	return container, nil
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade  = (*accountService)(nil)
	_ portssvc.CurrencySvcFacade = (*currencyService)(nil)
	_ portssvc.TransactionSvc    = (*transactionService)(nil)
)
