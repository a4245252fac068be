package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Pyrocube-Network/EconomyApi/internal/apperrors"
	"github.com/Pyrocube-Network/EconomyApi/internal/core/domain"
	portsrepo "github.com/Pyrocube-Network/EconomyApi/internal/core/ports/repositories"
)

type accountEntry struct {
	mu       sync.Mutex
	account  domain.Account
	balances map[string]domain.Balance
	deleted  bool
}

// MemoryAccountRepository keeps accounts and balances in process memory.
// The map lock guards membership; each entry lock guards its contents.
type MemoryAccountRepository struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*accountEntry
}

// newMemoryAccountRepository creates a new repository for account data.
func newMemoryAccountRepository() *MemoryAccountRepository {
	return &MemoryAccountRepository{accounts: make(map[uuid.UUID]*accountEntry)}
}

// Ensure MemoryAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*MemoryAccountRepository)(nil)

func copyAccount(a domain.Account) *domain.Account {
	cp := a
	if a.Name != nil {
		name := *a.Name
		cp.Name = &name
	}
	return &cp
}

func (r *MemoryAccountRepository) entry(accountID uuid.UUID) *accountEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.accounts[accountID]
}

// lockEntry returns the locked entry of a live account or ErrNotFound.
func (r *MemoryAccountRepository) lockEntry(accountID uuid.UUID) (*accountEntry, error) {
	e := r.entry(accountID)
	if e == nil {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	e.mu.Lock()
	if e.deleted || e.account.AccountID != accountID {
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return e, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *MemoryAccountRepository) FindAccountByID(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	e, err := r.lockEntry(accountID)
	if err != nil {
		return nil, err
	}
	defer e.mu.Unlock()
	return copyAccount(e.account), nil
}

// ListAccountIDs returns every account id ordered by its string form.
func (r *MemoryAccountRepository) ListAccountIDs(ctx context.Context) ([]uuid.UUID, error) {
	r.mu.RLock()
	ids := make([]uuid.UUID, 0, len(r.accounts))
	for id := range r.accounts {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		return strings.Compare(a.String(), b.String())
	})
	return ids, nil
}

// FindBalance retrieves the stored balance of one cell.
func (r *MemoryAccountRepository) FindBalance(ctx context.Context, accountID uuid.UUID, currencyID string) (decimal.Decimal, bool, error) {
	e, err := r.lockEntry(accountID)
	if err != nil {
		return decimal.Zero, false, err
	}
	defer e.mu.Unlock()

	b, ok := e.balances[currencyID]
	if !ok {
		return decimal.Zero, false, nil
	}
	return b.Amount, true, nil
}

// ListHeldCurrencies returns the currency ids with a stored balance, sorted.
func (r *MemoryAccountRepository) ListHeldCurrencies(ctx context.Context, accountID uuid.UUID) ([]string, error) {
	e, err := r.lockEntry(accountID)
	if err != nil {
		return nil, err
	}
	defer e.mu.Unlock()

	ids := make([]string, 0, len(e.balances))
	for id := range e.balances {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

// FindOrCreateAccount returns the stored account, creating it if absent.
func (r *MemoryAccountRepository) FindOrCreateAccount(ctx context.Context, accountID uuid.UUID, now time.Time) (*domain.Account, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.accounts[accountID]; ok {
		e.mu.Lock()
		defer e.mu.Unlock()
		return copyAccount(e.account), false, nil
	}

	e := &accountEntry{
		account: domain.Account{
			AccountID: accountID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		},
		balances: make(map[string]domain.Balance),
	}
	r.accounts[accountID] = e
	return copyAccount(e.account), true, nil
}

// UpdateAccountName sets or clears the account name.
func (r *MemoryAccountRepository) UpdateAccountName(ctx context.Context, accountID uuid.UUID, name *string, now time.Time) error {
	e, err := r.lockEntry(accountID)
	if err != nil {
		return err
	}
	defer e.mu.Unlock()

	if name != nil {
		n := *name
		name = &n
	}
	e.account.Name = name
	e.account.LastUpdatedAt = now
	return nil
}

// RekeyAccount moves the account and its balances to newID.
func (r *MemoryAccountRepository) RekeyAccount(ctx context.Context, oldID, newID uuid.UUID, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.accounts[oldID]
	if !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, oldID)
	}
	if oldID == newID {
		return nil
	}
	if _, taken := r.accounts[newID]; taken {
		return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, newID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.account.AccountID = newID
	e.account.LastUpdatedAt = now
	for id, b := range e.balances {
		b.AccountID = newID
		e.balances[id] = b
	}
	delete(r.accounts, oldID)
	r.accounts[newID] = e
	return nil
}

// DeleteAccount removes the account and all its balances.
func (r *MemoryAccountRepository) DeleteAccount(ctx context.Context, accountID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.accounts[accountID]
	if !ok {
		return false, nil
	}
	e.mu.Lock()
	e.deleted = true
	e.balances = nil
	e.mu.Unlock()
	delete(r.accounts, accountID)
	return true, nil
}

// UpdateBalance applies fn to one cell under the entry lock.
func (r *MemoryAccountRepository) UpdateBalance(ctx context.Context, accountID uuid.UUID, currencyID string, fn domain.BalanceFunc, now time.Time) (decimal.Decimal, error) {
	e, err := r.lockEntry(accountID)
	if err != nil {
		return decimal.Zero, err
	}
	defer e.mu.Unlock()

	current, exists := e.balances[currencyID]
	next, err := fn(current.Amount, exists)
	if err != nil {
		return decimal.Zero, err
	}
	e.balances[currencyID] = domain.Balance{
		AccountID:  accountID,
		CurrencyID: currencyID,
		Amount:     next,
		UpdatedAt:  now,
	}
	return next, nil
}
