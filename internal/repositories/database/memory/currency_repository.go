package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/Pyrocube-Network/EconomyApi/internal/apperrors"
	"github.com/Pyrocube-Network/EconomyApi/internal/core/domain"
	portsrepo "github.com/Pyrocube-Network/EconomyApi/internal/core/ports/repositories"
)

// MemoryCurrencyRepository keeps currency definitions in process memory.
type MemoryCurrencyRepository struct {
	mu         sync.RWMutex
	currencies map[string]domain.Currency
}

func newMemoryCurrencyRepository() *MemoryCurrencyRepository {
	return &MemoryCurrencyRepository{currencies: make(map[string]domain.Currency)}
}

var _ portsrepo.CurrencyRepositoryFacade = (*MemoryCurrencyRepository)(nil)

func copyCurrency(c domain.Currency) domain.Currency {
	c.DisplayNames = maps.Clone(c.DisplayNames)
	return c
}

func (r *MemoryCurrencyRepository) FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.currencies[currencyID]
	if !ok {
		return nil, fmt.Errorf("%w: currency %s", apperrors.ErrNotFound, currencyID)
	}
	cp := copyCurrency(c)
	return &cp, nil
}

func (r *MemoryCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Currency, 0, len(r.currencies))
	for _, c := range r.currencies {
		out = append(out, copyCurrency(c))
	}
	slices.SortFunc(out, func(a, b domain.Currency) int {
		return strings.Compare(a.CurrencyID, b.CurrencyID)
	})
	return out, nil
}

func (r *MemoryCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.currencies[currency.CurrencyID]; exists {
		return fmt.Errorf("%w: currency %s", apperrors.ErrDuplicate, currency.CurrencyID)
	}
	r.currencies[currency.CurrencyID] = copyCurrency(currency)
	return nil
}

func (r *MemoryCurrencyRepository) DeleteCurrency(ctx context.Context, currencyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.currencies[currencyID]; !exists {
		return fmt.Errorf("%w: currency %s", apperrors.ErrNotFound, currencyID)
	}
	delete(r.currencies, currencyID)
	return nil
}
