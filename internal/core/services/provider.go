package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/Pyrocube-Network/EconomyApi/internal/core/domain"
	portssvc "github.com/Pyrocube-Network/EconomyApi/internal/core/ports/services"
	"github.com/Pyrocube-Network/EconomyApi/internal/middleware"
	"github.com/Pyrocube-Network/EconomyApi/internal/platform/metrics"
	"github.com/Pyrocube-Network/EconomyApi/pkg/economy"
	"github.com/Pyrocube-Network/EconomyApi/pkg/future"
)

const (
	defaultPoolSize         = 16
	defaultOperationTimeout = 30 * time.Second
)

// EconomyProvider is the facade plugins talk to. Lookups answer directly
// from the registry; everything touching storage runs on the worker pool.
type EconomyProvider struct {
	BaseService
	services *portssvc.ServiceContainer
	pool     *future.Pool
	metrics  *metrics.EconomyMetrics

	poolSize int64
	timeout  time.Duration
}

// ProviderOption is a functional option for configuring the provider
type ProviderOption func(*EconomyProvider)

// WithPoolSize bounds the number of operations running at once.
func WithPoolSize(size int64) ProviderOption {
	return func(p *EconomyProvider) {
		p.poolSize = size
	}
}

// WithOperationTimeout bounds every dispatched operation. Zero disables it.
func WithOperationTimeout(d time.Duration) ProviderOption {
	return func(p *EconomyProvider) {
		p.timeout = d
	}
}

func WithProviderMetrics(m *metrics.EconomyMetrics) ProviderOption {
	return func(p *EconomyProvider) {
		p.metrics = m
	}
}

// NewEconomyProvider creates the provider over the given services.
func NewEconomyProvider(services *portssvc.ServiceContainer, options ...ProviderOption) *EconomyProvider {
	p := &EconomyProvider{
		services: services,
		poolSize: defaultPoolSize,
		timeout:  defaultOperationTimeout,
	}
	for _, option := range options {
		option(p)
	}
	p.pool = future.NewPool(p.poolSize,
		future.WithTimeout(p.timeout),
		future.WithErrorMapper(toEconomyError),
	)
	p.LogDebug(context.Background(), "Economy provider started",
		slog.Int64("workers", p.pool.Size()),
		slog.Duration("operation_timeout", p.timeout))
	return p
}

var (
	_ economy.Provider        = (*EconomyProvider)(nil)
	_ economy.AccountAccessor = (*EconomyProvider)(nil)
)

// dispatch runs fn on the pool with an operation-scoped logger. Failures
// leave as *economy.Error.
func dispatch[T any](p *EconomyProvider, ctx context.Context, operation string, fn func(ctx context.Context) (T, error)) *future.Future[T] {
	ctx = middleware.WithOperationLogger(ctx, operation)
	return future.Go(p.pool, ctx, func(ctx context.Context) (T, error) {
		val, err := fn(ctx)
		if err != nil {
			err = toEconomyError(err)
			kind := errorKind(err)
			p.metrics.OperationFailed(operation, kind)
			p.LogDebug(ctx, "Operation failed", slog.String("kind", kind), slog.String("error", err.Error()))
		}
		return val, err
	})
}

// Close stops accepting work and waits for running operations.
func (p *EconomyProvider) Close() {
	p.pool.Close()
}

func (p *EconomyProvider) AccountAccessor() economy.AccountAccessor {
	return p
}

// Get returns a handle on the account, creating the account on first access.
func (p *EconomyProvider) Get(ctx context.Context, id uuid.UUID) *future.Future[economy.Account] {
	account := dispatch(p, ctx, "account.get", func(ctx context.Context) (*domain.Account, error) {
		return p.services.Account.GetOrCreate(ctx, id)
	})
	return future.Then(account, func(a *domain.Account) (economy.Account, error) {
		return newAccountHandle(p, a), nil
	})
}

func (p *EconomyProvider) RetrieveAccountIDs(ctx context.Context) *future.Future[[]uuid.UUID] {
	return dispatch(p, ctx, "account.list", p.services.Account.ListAccountIDs)
}

func (p *EconomyProvider) PrimaryCurrency() (economy.Currency, error) {
	return p.services.Currency.Primary()
}

func (p *EconomyProvider) PrimaryCurrencyID() (string, error) {
	c, err := p.services.Currency.Primary()
	if err != nil {
		return "", err
	}
	return c.Identifier(), nil
}

func (p *EconomyProvider) FindCurrency(id string) (economy.Currency, bool) {
	return p.services.Currency.Find(id)
}

func (p *EconomyProvider) FindCurrencyByDisplayName(name string, value decimal.Decimal, locale language.Tag) (economy.Currency, bool) {
	return p.services.Currency.FindByDisplayName(name, value, locale)
}

func (p *EconomyProvider) Currencies() []economy.Currency {
	return p.services.Currency.List()
}

func (p *EconomyProvider) RegisterCurrency(ctx context.Context, currency economy.Currency) *future.Future[bool] {
	return dispatch(p, ctx, "currency.register", func(ctx context.Context) (bool, error) {
		if err := p.services.Currency.Register(ctx, currency); err != nil {
			return false, err
		}
		return true, nil
	})
}

func (p *EconomyProvider) UnregisterCurrency(ctx context.Context, currency economy.Currency) *future.Future[bool] {
	return dispatch(p, ctx, "currency.unregister", func(ctx context.Context) (bool, error) {
		return p.services.Currency.Unregister(ctx, currency)
	})
}

// ParseAmount parses text with the named currency's locale rules.
func (p *EconomyProvider) ParseAmount(ctx context.Context, currencyID, text string, locale language.Tag) *future.Future[decimal.Decimal] {
	currency, ok := p.services.Currency.Find(currencyID)
	if !ok {
		return future.Failed[decimal.Decimal](economy.UnknownCurrencyError(currencyID))
	}
	return dispatch(p, ctx, "currency.parse", func(context.Context) (decimal.Decimal, error) {
		return currency.Parse(text, locale)
	})
}

// Convert converts amount between two registered currencies.
func (p *EconomyProvider) Convert(fromID, toID string, amount decimal.Decimal) (decimal.Decimal, error) {
	from, ok := p.services.Currency.Find(fromID)
	if !ok {
		return decimal.Zero, economy.UnknownCurrencyError(fromID)
	}
	to, ok := p.services.Currency.Find(toID)
	if !ok {
		return decimal.Zero, economy.UnknownCurrencyError(toID)
	}
	return economy.Convert(from, to, amount), nil
}
