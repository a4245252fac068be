package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/Pyrocube-Network/EconomyApi/internal/core/domain"
)

type mockCurrencyRepo struct {
	mock.Mock
}

func (m *mockCurrencyRepo) FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyID)
	if c := args.Get(0); c != nil {
		return c.(*domain.Currency), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCurrencyRepo) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if cs := args.Get(0); cs != nil {
		return cs.([]domain.Currency), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCurrencyRepo) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	return m.Called(ctx, currency).Error(0)
}

func (m *mockCurrencyRepo) DeleteCurrency(ctx context.Context, currencyID string) error {
	return m.Called(ctx, currencyID).Error(0)
}

type mockAccountRepo struct {
	mock.Mock
}

func (m *mockAccountRepo) FindAccountByID(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if a := args.Get(0); a != nil {
		return a.(*domain.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAccountRepo) ListAccountIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if ids := args.Get(0); ids != nil {
		return ids.([]uuid.UUID), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAccountRepo) FindBalance(ctx context.Context, accountID uuid.UUID, currencyID string) (decimal.Decimal, bool, error) {
	args := m.Called(ctx, accountID, currencyID)
	return args.Get(0).(decimal.Decimal), args.Bool(1), args.Error(2)
}

func (m *mockAccountRepo) ListHeldCurrencies(ctx context.Context, accountID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, accountID)
	if held := args.Get(0); held != nil {
		return held.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAccountRepo) FindOrCreateAccount(ctx context.Context, accountID uuid.UUID, now time.Time) (*domain.Account, bool, error) {
	args := m.Called(ctx, accountID, now)
	if a := args.Get(0); a != nil {
		return a.(*domain.Account), args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *mockAccountRepo) UpdateAccountName(ctx context.Context, accountID uuid.UUID, name *string, now time.Time) error {
	return m.Called(ctx, accountID, name, now).Error(0)
}

func (m *mockAccountRepo) RekeyAccount(ctx context.Context, oldID, newID uuid.UUID, now time.Time) error {
	return m.Called(ctx, oldID, newID, now).Error(0)
}

func (m *mockAccountRepo) DeleteAccount(ctx context.Context, accountID uuid.UUID) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *mockAccountRepo) UpdateBalance(ctx context.Context, accountID uuid.UUID, currencyID string, fn domain.BalanceFunc, now time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, currencyID, fn, now)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishTransaction(ctx context.Context, event domain.TransactionEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockPublisher) Close() error {
	return m.Called().Error(0)
}
