package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/Pyrocube-Network/EconomyApi/internal/apperrors"
	portsrepo "github.com/Pyrocube-Network/EconomyApi/internal/core/ports/repositories"
	portssvc "github.com/Pyrocube-Network/EconomyApi/internal/core/ports/services"
	"github.com/Pyrocube-Network/EconomyApi/internal/platform/metrics"
	"github.com/Pyrocube-Network/EconomyApi/internal/utils/mapping"
	"github.com/Pyrocube-Network/EconomyApi/pkg/economy"
)

type nameIndexKey struct {
	locale   string
	singular bool
}

// currencyService is the currency registry. Registration is serialized
// against lookups by mu; the display-name index is rebuilt lazily after
// every change.
type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
	metrics      *metrics.EconomyMetrics
	now          func() time.Time

	mu         sync.RWMutex
	currencies map[string]economy.Currency
	primaryID  string

	indexMu   sync.Mutex
	nameIndex map[nameIndexKey]map[string]economy.Currency
}

// CurrencyServiceOption is a functional option for configuring the currency service
type CurrencyServiceOption func(*currencyService)

// WithCurrencyMetrics records the registered currency count.
func WithCurrencyMetrics(m *metrics.EconomyMetrics) CurrencyServiceOption {
	return func(s *currencyService) {
		s.metrics = m
	}
}

func WithCurrencyClock(now func() time.Time) CurrencyServiceOption {
	return func(s *currencyService) {
		s.now = now
	}
}

// NewCurrencyService creates the registry persisting through currencyRepo.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade, options ...CurrencyServiceOption) portssvc.CurrencySvcFacade {
	svc := &currencyService{
		currencyRepo: currencyRepo,
		now:          time.Now,
		currencies:   make(map[string]economy.Currency),
		nameIndex:    make(map[nameIndexKey]map[string]economy.Currency),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func validateCurrency(c economy.Currency) error {
	if c == nil {
		return economy.InvalidCurrencyError("", "currency is nil")
	}
	if c.Identifier() == "" {
		return economy.InvalidCurrencyError("", "identifier is empty")
	}
	if c.Precision() < 0 {
		return economy.InvalidCurrencyError(c.Identifier(), "precision is negative")
	}
	if !c.ConversionRate().IsPositive() {
		return economy.InvalidCurrencyError(c.Identifier(), "conversion rate must be positive")
	}
	return nil
}

// changed must be called with mu held for writing.
func (s *currencyService) changed() {
	s.nameIndex = make(map[nameIndexKey]map[string]economy.Currency)
	s.metrics.SetRegisteredCurrencies(len(s.currencies))
}

func (s *currencyService) Register(ctx context.Context, currency economy.Currency) error {
	if err := validateCurrency(currency); err != nil {
		return err
	}
	id := currency.Identifier()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.currencies[id]; exists {
		return economy.DuplicateCurrencyError(id)
	}
	if currency.IsPrimary() && s.primaryID != "" {
		return economy.PrimaryTakenError(s.primaryID)
	}

	if err := s.currencyRepo.SaveCurrency(ctx, mapping.FromEconomyCurrency(currency, s.now().UTC())); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return economy.DuplicateCurrencyError(id).WithCause(err)
		}
		s.LogError(ctx, err, "Failed to persist currency", slog.String("currency_id", id))
		return toEconomyError(err)
	}

	s.currencies[id] = currency
	if currency.IsPrimary() {
		s.primaryID = id
	}
	s.changed()
	s.LogInfo(ctx, "Currency registered",
		slog.String("currency_id", id),
		slog.Bool("primary", currency.IsPrimary()))
	return nil
}

func (s *currencyService) Unregister(ctx context.Context, currency economy.Currency) (bool, error) {
	if currency == nil {
		return false, nil
	}
	id := currency.Identifier()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.currencies[id]; !exists {
		return false, nil
	}
	if id == s.primaryID {
		return false, economy.PrimaryInUseError(id)
	}

	if err := s.currencyRepo.DeleteCurrency(ctx, id); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to delete currency", slog.String("currency_id", id))
		return false, toEconomyError(err)
	}

	delete(s.currencies, id)
	s.changed()
	s.LogInfo(ctx, "Currency unregistered", slog.String("currency_id", id))
	return true, nil
}

// Restore loads persisted definitions. Entries already registered are kept;
// invalid entries and extra primaries are logged and skipped.
func (s *currencyService) Restore(ctx context.Context) error {
	stored, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return fmt.Errorf("failed to list currencies in service: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range stored {
		if _, exists := s.currencies[d.CurrencyID]; exists {
			continue
		}
		c, err := mapping.ToEconomyCurrency(d)
		if err != nil {
			s.LogError(ctx, err, "Skipping stored currency", slog.String("currency_id", d.CurrencyID))
			continue
		}
		if c.IsPrimary() && s.primaryID != "" {
			s.LogError(ctx, economy.PrimaryTakenError(s.primaryID), "Skipping stored currency",
				slog.String("currency_id", d.CurrencyID))
			continue
		}
		s.currencies[c.Identifier()] = c
		if c.IsPrimary() {
			s.primaryID = c.Identifier()
		}
	}
	s.changed()
	s.LogInfo(ctx, "Currencies restored", slog.Int("count", len(s.currencies)))
	return nil
}

func (s *currencyService) Find(currencyID string) (economy.Currency, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.currencies[currencyID]
	return c, ok
}

// sortedLocked returns the registered currencies ordered by id; mu must be held.
func (s *currencyService) sortedLocked() []economy.Currency {
	out := make([]economy.Currency, 0, len(s.currencies))
	for _, c := range s.currencies {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b economy.Currency) int {
		return strings.Compare(a.Identifier(), b.Identifier())
	})
	return out
}

func (s *currencyService) List() []economy.Currency {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked()
}

// Primary returns the currency declaring itself primary. Without one, the
// currency with the smallest identifier stands in.
func (s *currencyService) Primary() (economy.Currency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.primaryID != "" {
		return s.currencies[s.primaryID], nil
	}
	if len(s.currencies) == 0 {
		return nil, economy.NoCurrencyError()
	}
	return s.sortedLocked()[0], nil
}

// FindByDisplayName answers StandardCurrency names from the index and scans
// the remaining currencies, whose names may depend on more than plurality.
// The match with the smallest identifier wins.
func (s *currencyService) FindByDisplayName(name string, value decimal.Decimal, locale language.Tag) (economy.Currency, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := nameIndexKey{locale: locale.String(), singular: economy.IsSingular(value)}
	var best economy.Currency
	if c, ok := s.indexFor(key)[economy.FoldName(name)]; ok {
		best = c
	}

	var others []economy.Currency
	for _, c := range s.currencies {
		if _, std := c.(*economy.StandardCurrency); !std {
			others = append(others, c)
		}
	}
	slices.SortFunc(others, func(a, b economy.Currency) int {
		return strings.Compare(a.Identifier(), b.Identifier())
	})
	if c, ok := economy.FindByDisplayName(others, name, value, locale); ok {
		if best == nil || c.Identifier() < best.Identifier() {
			best = c
		}
	}
	return best, best != nil
}

// indexFor returns the name index for key, building it on first use.
// mu must be held for reading.
func (s *currencyService) indexFor(key nameIndexKey) map[string]economy.Currency {
	s.indexMu.Lock()
	defer s.indexMu.Unlock()

	if idx, ok := s.nameIndex[key]; ok {
		return idx
	}

	value := decimal.NewFromInt(2)
	if key.singular {
		value = decimal.NewFromInt(1)
	}
	locale := language.Make(key.locale)

	idx := make(map[string]economy.Currency)
	for _, c := range s.sortedLocked() {
		if _, std := c.(*economy.StandardCurrency); !std {
			continue
		}
		n := economy.FoldName(c.DisplayName(value, locale))
		if _, taken := idx[n]; !taken {
			idx[n] = c
		}
	}
	s.nameIndex[key] = idx
	return idx
}
