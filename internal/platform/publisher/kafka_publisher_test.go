package publisher

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Pyrocube-Network/EconomyApi/internal/core/domain"
)

type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *mockWriter) Close() error {
	return m.Called().Error(0)
}

func TestKafkaTransactionPublisher_PublishTransaction(t *testing.T) {
	w := new(mockWriter)
	p := &KafkaTransactionPublisher{writer: w}

	accountID := uuid.New()
	reason := "quest reward"
	applied := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	event := domain.TransactionEvent{
		ReferenceID:     "V1StGXR8_Z5jdHi",
		AccountID:       accountID,
		CurrencyID:      "gold",
		Type:            "DEPOSIT",
		Amount:          decimal.RequireFromString("15.50"),
		PreviousBalance: decimal.RequireFromString("70.00"),
		NewBalance:      decimal.RequireFromString("85.50"),
		Reason:          &reason,
		Outcome:         domain.OutcomeApplied,
		Timestamp:       applied,
		AppliedAt:       applied,
	}

	var written []kafka.Message
	w.On("WriteMessages", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		written = args.Get(1).([]kafka.Message)
	}).Return(nil).Once()

	require.NoError(t, p.PublishTransaction(context.Background(), event))
	require.Len(t, written, 1)
	assert.Equal(t, accountID.String(), string(written[0].Key))

	var payload TransactionEvent
	require.NoError(t, json.Unmarshal(written[0].Value, &payload))
	assert.Equal(t, "85.5", payload.NewBalance)
	assert.Equal(t, "15.5", payload.Delta)
	assert.Equal(t, "gold", payload.CurrencyID)
	require.NotNil(t, payload.Reason)
	assert.Equal(t, reason, *payload.Reason)
	w.AssertExpectations(t)
}

func TestKafkaTransactionPublisher_WriteError(t *testing.T) {
	w := new(mockWriter)
	p := &KafkaTransactionPublisher{writer: w}

	w.On("WriteMessages", mock.Anything, mock.Anything).Return(assert.AnError).Once()
	w.On("Close").Return(nil).Once()

	err := p.PublishTransaction(context.Background(), domain.TransactionEvent{ReferenceID: "ref", AccountID: uuid.New()})
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, p.Close())
	w.AssertExpectations(t)
}
