package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Pyrocube-Network/EconomyApi/internal/core/domain"
	"github.com/Pyrocube-Network/EconomyApi/pkg/economy"
	"github.com/Pyrocube-Network/EconomyApi/pkg/future"
)

// accountHandle is the economy.Account handed to plugins. It holds no
// balances; every read goes to the store.
type accountHandle struct {
	provider *EconomyProvider

	mu   sync.RWMutex
	id   uuid.UUID
	name *string
}

func newAccountHandle(p *EconomyProvider, account *domain.Account) *accountHandle {
	h := &accountHandle{provider: p, id: account.AccountID}
	if account.Name != nil {
		name := *account.Name
		h.name = &name
	}
	return h
}

var _ economy.Account = (*accountHandle)(nil)

// withAccountID runs fn with the handle's current id. An operation that
// raced a rekey of this handle and missed the account is retried once
// against the new id.
func withAccountID[T any](h *accountHandle, fn func(id uuid.UUID) (T, error)) (T, error) {
	id := h.Identifier()
	val, err := fn(id)
	if err == nil {
		return val, nil
	}
	if kind, _ := economy.KindOf(err); kind == economy.KindAccountNotFound {
		if current := h.Identifier(); current != id {
			return fn(current)
		}
	}
	return val, err
}

func (h *accountHandle) Identifier() uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.id
}

func (h *accountHandle) SetIdentifier(ctx context.Context, id uuid.UUID) *future.Future[uuid.UUID] {
	return dispatch(h.provider, ctx, "account.set_identifier", func(ctx context.Context) (uuid.UUID, error) {
		_, err := withAccountID(h, func(current uuid.UUID) (struct{}, error) {
			return struct{}{}, h.provider.services.Account.Rekey(ctx, current, id, func() {
				h.mu.Lock()
				h.id = id
				h.mu.Unlock()
			})
		})
		if err != nil {
			return uuid.Nil, err
		}
		return id, nil
	})
}

func (h *accountHandle) Name() (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.name == nil {
		return "", false
	}
	return *h.name, true
}

func (h *accountHandle) SetName(ctx context.Context, name *string) *future.Future[bool] {
	var next *string
	if name != nil {
		v := *name
		next = &v
	}
	return dispatch(h.provider, ctx, "account.set_name", func(ctx context.Context) (bool, error) {
		_, err := withAccountID(h, func(id uuid.UUID) (struct{}, error) {
			return struct{}{}, h.provider.services.Account.SetName(ctx, id, next)
		})
		if err != nil {
			return false, err
		}
		h.mu.Lock()
		h.name = next
		h.mu.Unlock()
		return true, nil
	})
}

func (h *accountHandle) RetrieveBalance(ctx context.Context, currency economy.Currency) *future.Future[decimal.Decimal] {
	if currency == nil {
		return future.Failed[decimal.Decimal](economy.UnknownCurrencyError(""))
	}
	return dispatch(h.provider, ctx, "account.balance", func(ctx context.Context) (decimal.Decimal, error) {
		return withAccountID(h, func(id uuid.UUID) (decimal.Decimal, error) {
			return h.provider.services.Account.Balance(ctx, id, currency, h)
		})
	})
}

func (h *accountHandle) DoTransaction(ctx context.Context, tx economy.Transaction) *future.Future[decimal.Decimal] {
	return dispatch(h.provider, ctx, "account.transaction", func(ctx context.Context) (decimal.Decimal, error) {
		return withAccountID(h, func(id uuid.UUID) (decimal.Decimal, error) {
			return h.provider.services.Transaction.Apply(ctx, id, h, tx)
		})
	})
}

func (h *accountHandle) DeleteAccount(ctx context.Context) *future.Future[bool] {
	return dispatch(h.provider, ctx, "account.delete", func(ctx context.Context) (bool, error) {
		id := h.Identifier()
		deleted, err := h.provider.services.Account.Delete(ctx, id)
		if err != nil || deleted {
			return deleted, err
		}
		// Delete reports a missing id as false; the handle may have been
		// rekeyed while this call waited for the record lock.
		if current := h.Identifier(); current != id {
			return h.provider.services.Account.Delete(ctx, current)
		}
		return false, nil
	})
}

func (h *accountHandle) RetrieveHeldCurrencies(ctx context.Context) *future.Future[[]string] {
	return dispatch(h.provider, ctx, "account.held_currencies", func(ctx context.Context) ([]string, error) {
		return withAccountID(h, func(id uuid.UUID) ([]string, error) {
			return h.provider.services.Account.HeldCurrencies(ctx, id)
		})
	})
}
