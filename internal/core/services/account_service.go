package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/Pyrocube-Network/EconomyApi/internal/core/domain"
	portsrepo "github.com/Pyrocube-Network/EconomyApi/internal/core/ports/repositories"
	portssvc "github.com/Pyrocube-Network/EconomyApi/internal/core/ports/services"
	"github.com/Pyrocube-Network/EconomyApi/internal/platform/metrics"
	"github.com/Pyrocube-Network/EconomyApi/pkg/economy"
)

// accountService implements the account store operations on top of an
// AccountRepositoryFacade.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	locks       *LockTable
	metrics     *metrics.EconomyMetrics
	now         func() time.Time
	creates     singleflight.Group
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountMetrics counts created accounts.
func WithAccountMetrics(m *metrics.EconomyMetrics) AccountServiceOption {
	return func(s *accountService) {
		s.metrics = m
	}
}

// WithAccountLockTable shares a lock table with the transaction processor.
func WithAccountLockTable(locks *LockTable) AccountServiceOption {
	return func(s *accountService) {
		s.locks = locks
	}
}

func WithAccountClock(now func() time.Time) AccountServiceOption {
	return func(s *accountService) {
		s.now = now
	}
}

// NewAccountService creates a new account service with the given options
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: accountRepo,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	if svc.locks == nil {
		svc.locks = NewLockTable()
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// GetOrCreate collapses concurrent first accesses to one id into a single
// repository call, so exactly one caller observes the creation.
func (s *accountService) GetOrCreate(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	ch := s.creates.DoChan(accountID.String(), func() (any, error) {
		// The shared call must not die with whichever caller started it.
		callCtx := context.WithoutCancel(ctx)
		account, created, err := s.accountRepo.FindOrCreateAccount(callCtx, accountID, s.now().UTC())
		if err != nil {
			s.LogError(callCtx, err, "Failed to find or create account", slog.String("account_id", accountID.String()))
			return nil, accountError(err, accountID)
		}
		if created {
			s.metrics.AccountCreated()
			s.LogInfo(callCtx, "Account created", slog.String("account_id", accountID.String()))
		}
		return account, nil
	})

	select {
	case <-ctx.Done():
		return nil, toEconomyError(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		account := *res.Val.(*domain.Account)
		return &account, nil
	}
}

func (s *accountService) SetName(ctx context.Context, accountID uuid.UUID, name *string) error {
	unlock, err := s.locks.LockRecordShared(ctx, accountID)
	if err != nil {
		return toEconomyError(err)
	}
	defer unlock()

	if err := s.accountRepo.UpdateAccountName(ctx, accountID, name, s.now().UTC()); err != nil {
		return accountError(err, accountID)
	}
	s.LogDebug(ctx, "Account name updated", slog.String("account_id", accountID.String()))
	return nil
}

func (s *accountService) ListAccountIDs(ctx context.Context) ([]uuid.UUID, error) {
	ids, err := s.accountRepo.ListAccountIDs(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list account ids")
		return nil, toEconomyError(err)
	}
	return ids, nil
}

func (s *accountService) Balance(ctx context.Context, accountID uuid.UUID, currency economy.Currency, owner economy.Account) (decimal.Decimal, error) {
	unlock, err := s.locks.LockRecordShared(ctx, accountID)
	if err != nil {
		return decimal.Zero, toEconomyError(err)
	}
	defer unlock()

	amount, exists, err := s.accountRepo.FindBalance(ctx, accountID, currency.Identifier())
	if err != nil {
		return decimal.Zero, accountError(err, accountID)
	}
	if !exists {
		return currency.StartingBalance(owner), nil
	}
	return amount, nil
}

func (s *accountService) HeldCurrencies(ctx context.Context, accountID uuid.UUID) ([]string, error) {
	unlock, err := s.locks.LockRecordShared(ctx, accountID)
	if err != nil {
		return nil, toEconomyError(err)
	}
	defer unlock()

	held, err := s.accountRepo.ListHeldCurrencies(ctx, accountID)
	if err != nil {
		return nil, accountError(err, accountID)
	}
	return held, nil
}

func (s *accountService) Rekey(ctx context.Context, oldID, newID uuid.UUID, onCommit func()) error {
	if oldID == newID {
		if _, err := s.accountRepo.FindAccountByID(ctx, oldID); err != nil {
			return accountError(err, oldID)
		}
		if onCommit != nil {
			onCommit()
		}
		return nil
	}

	unlock, err := s.locks.LockRecords(ctx, oldID, newID)
	if err != nil {
		return toEconomyError(err)
	}
	defer unlock()

	if err := s.accountRepo.RekeyAccount(ctx, oldID, newID, s.now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to rekey account",
			slog.String("account_id", oldID.String()),
			slog.String("new_account_id", newID.String()))
		return rekeyError(err, oldID, newID)
	}
	if onCommit != nil {
		onCommit()
	}
	s.LogInfo(ctx, "Account rekeyed",
		slog.String("account_id", oldID.String()),
		slog.String("new_account_id", newID.String()))
	return nil
}

// rekeyError attributes ErrDuplicate to the target id and everything else to the source.
func rekeyError(err error, oldID, newID uuid.UUID) error {
	if _, ok := economy.AsError(err); ok {
		return err
	}
	wrapped := accountError(err, oldID)
	if kind, _ := economy.KindOf(wrapped); kind == economy.KindAccountExists {
		return accountError(err, newID)
	}
	return wrapped
}

func (s *accountService) Delete(ctx context.Context, accountID uuid.UUID) (bool, error) {
	unlock, err := s.locks.LockRecords(ctx, accountID)
	if err != nil {
		return false, toEconomyError(err)
	}
	defer unlock()

	deleted, err := s.accountRepo.DeleteAccount(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID.String()))
		return false, toEconomyError(fmt.Errorf("failed to delete account %s: %w", accountID, err))
	}
	if deleted {
		s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID.String()))
	}
	return deleted, nil
}
