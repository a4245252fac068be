package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
	"github.com/shopspring/decimal"

	"github.com/Pyrocube-Network/EconomyApi/internal/core/domain"
	portsevt "github.com/Pyrocube-Network/EconomyApi/internal/core/ports/events"
	portsrepo "github.com/Pyrocube-Network/EconomyApi/internal/core/ports/repositories"
	portssvc "github.com/Pyrocube-Network/EconomyApi/internal/core/ports/services"
	"github.com/Pyrocube-Network/EconomyApi/internal/platform/metrics"
	"github.com/Pyrocube-Network/EconomyApi/pkg/economy"
)

// transactionService applies transactions one cell at a time. Every
// read-modify-write of a cell runs under that cell's lock.
type transactionService struct {
	BaseService
	accountRepo    portsrepo.AccountRepositoryFacade
	currencies     portssvc.CurrencyReaderSvc
	locks          *LockTable
	publisher      portsevt.TransactionPublisher
	metrics        *metrics.EconomyMetrics
	allowOverdraft bool
	now            func() time.Time
	newReference   func() string
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithOverdraft lets withdrawals and SET take balances below zero.
func WithOverdraft(allow bool) TransactionServiceOption {
	return func(s *transactionService) {
		s.allowOverdraft = allow
	}
}

// WithTransactionPublisher streams every applied transaction.
func WithTransactionPublisher(p portsevt.TransactionPublisher) TransactionServiceOption {
	return func(s *transactionService) {
		s.publisher = p
	}
}

func WithTransactionMetrics(m *metrics.EconomyMetrics) TransactionServiceOption {
	return func(s *transactionService) {
		s.metrics = m
	}
}

// WithTransactionLockTable shares a lock table with the account service.
func WithTransactionLockTable(locks *LockTable) TransactionServiceOption {
	return func(s *transactionService) {
		s.locks = locks
	}
}

func WithTransactionClock(now func() time.Time) TransactionServiceOption {
	return func(s *transactionService) {
		s.now = now
	}
}

// WithReferenceGenerator replaces the nanoid generator used for event references.
func WithReferenceGenerator(gen func() string) TransactionServiceOption {
	return func(s *transactionService) {
		s.newReference = gen
	}
}

// NewTransactionService creates the transaction processor.
func NewTransactionService(accountRepo portsrepo.AccountRepositoryFacade, currencies portssvc.CurrencyReaderSvc, options ...TransactionServiceOption) (portssvc.TransactionSvc, error) {
	svc := &transactionService{
		accountRepo: accountRepo,
		currencies:  currencies,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	if svc.locks == nil {
		svc.locks = NewLockTable()
	}
	if svc.newReference == nil {
		gen, err := nanoid.Standard(21)
		if err != nil {
			return nil, fmt.Errorf("failed to create reference generator: %w", err)
		}
		svc.newReference = gen
	}
	return svc, nil
}

var _ portssvc.TransactionSvc = (*transactionService)(nil)

func (s *transactionService) Apply(ctx context.Context, accountID uuid.UUID, owner economy.Account, tx economy.Transaction) (decimal.Decimal, error) {
	start := s.now()

	currency, ok := s.currencies.Find(tx.CurrencyID())
	if !ok {
		return decimal.Zero, economy.UnknownCurrencyError(tx.CurrencyID())
	}
	if tx.Amount().IsNegative() && (tx.Type() != economy.Set || !s.allowOverdraft) {
		return decimal.Zero, economy.NegativeAmountError(tx.Amount())
	}
	amount := tx.Amount().Round(currency.Precision())

	unlock, err := s.locks.LockCell(ctx, accountID, currency.Identifier())
	if err != nil {
		return decimal.Zero, toEconomyError(err)
	}
	defer unlock()

	var previous decimal.Decimal
	next, err := s.accountRepo.UpdateBalance(ctx, accountID, currency.Identifier(),
		func(current decimal.Decimal, exists bool) (decimal.Decimal, error) {
			if !exists {
				current = currency.StartingBalance(owner)
			}
			previous = current

			switch tx.Type() {
			case economy.Deposit:
				return current.Add(amount), nil
			case economy.Withdrawal:
				result := current.Sub(amount)
				if result.IsNegative() && !s.allowOverdraft {
					return decimal.Zero, economy.InsufficientFundsError(current, amount)
				}
				return result, nil
			case economy.Set:
				return amount, nil
			}
			return decimal.Zero, economy.InvalidTransactionTypeError(tx.Type())
		}, s.now().UTC())

	if err != nil {
		s.metrics.ObserveTransaction(currency.Identifier(), string(tx.Type()), string(domain.OutcomeRejected), s.now().Sub(start))
		wrapped := accountError(err, accountID)
		if kind, _ := economy.KindOf(wrapped); kind == economy.KindStorage {
			s.LogError(ctx, err, "Failed to apply transaction",
				slog.String("account_id", accountID.String()),
				slog.String("currency_id", currency.Identifier()))
		}
		return decimal.Zero, wrapped
	}

	s.metrics.ObserveTransaction(currency.Identifier(), string(tx.Type()), string(domain.OutcomeApplied), s.now().Sub(start))
	s.publish(ctx, accountID, tx, amount, previous, next)
	return next, nil
}

// publish emits the applied transaction while the cell lock is still held,
// which keeps events of one cell in commit order. Failures are logged only.
func (s *transactionService) publish(ctx context.Context, accountID uuid.UUID, tx economy.Transaction, amount, previous, next decimal.Decimal) {
	event := domain.TransactionEvent{
		ReferenceID:     s.newReference(),
		AccountID:       accountID,
		CurrencyID:      tx.CurrencyID(),
		Type:            string(tx.Type()),
		Amount:          amount,
		PreviousBalance: previous,
		NewBalance:      next,
		Outcome:         domain.OutcomeApplied,
		Timestamp:       tx.Timestamp(),
		AppliedAt:       s.now().UTC(),
	}
	if reason, ok := tx.Reason(); ok {
		event.Reason = &reason
	}

	s.LogDebug(ctx, "Transaction applied",
		slog.String("reference_id", event.ReferenceID),
		slog.String("account_id", accountID.String()),
		slog.String("currency_id", event.CurrencyID),
		slog.String("type", event.Type),
		slog.Bool("credit", event.IsCredit()),
		slog.String("new_balance", next.String()))

	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishTransaction(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to publish transaction event", slog.String("reference_id", event.ReferenceID))
	}
}
