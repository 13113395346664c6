package event

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func (m *MockChannel) Close() error {
	return m.Called().Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestNewRabbitMQEventPublisherValidation(t *testing.T) {
	_, err := NewRabbitMQEventPublisher(nil, "credit-engine", testLogger())
	assert.Error(t, err)
}

func TestPublishCreditRequestSubmitted(t *testing.T) {
	ctx := context.Background()
	ch := new(MockChannel)
	var published amqp.Publishing

	ch.On("PublishWithContext", ctx, "credit-engine", RoutingKeySubmitted, false, false, mock.AnythingOfType("amqp091.Publishing")).
		Run(func(args mock.Arguments) { published = args.Get(5).(amqp.Publishing) }).
		Return(nil)
	ch.On("Close").Return(nil)

	p := newPublisher(func() (amqpChannel, error) { return ch, nil }, "credit-engine", testLogger())
	event := CreditRequestSubmittedEvent{
		CreditRequestID: 7,
		UserID:          "user-1",
		Amount:          300000,
		TermMonths:      36,
		InterestRate:    12.9,
		MonthlyPayment:  10094,
		ScoringResult:   97,
		ScoringPassed:   true,
		Timestamp:       time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC),
	}

	require.NoError(t, p.PublishCreditRequestSubmitted(ctx, event))
	ch.AssertExpectations(t)

	assert.Equal(t, "application/json", published.ContentType)
	assert.Equal(t, amqp.Persistent, published.DeliveryMode)
	assert.Equal(t, publisherAppID, published.AppId)
	assert.Equal(t, RoutingKeySubmitted, published.Type)
	_, err := uuid.Parse(published.MessageId)
	assert.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(published.Body, &decoded))
	assert.Equal(t, float64(7), decoded["creditRequestId"])
	assert.Equal(t, float64(36), decoded["term"])
	assert.Equal(t, true, decoded["scoringPassed"])
}

func TestPublishCreditRequestStatusChanged(t *testing.T) {
	ctx := context.Background()

	t.Run("publish failure is returned", func(t *testing.T) {
		ch := new(MockChannel)
		ch.On("PublishWithContext", ctx, "credit-engine", RoutingKeyStatusChanged, false, false, mock.Anything).Return(errors.New("channel closed"))
		ch.On("Close").Return(nil)

		p := newPublisher(func() (amqpChannel, error) { return ch, nil }, "credit-engine", testLogger())
		err := p.PublishCreditRequestStatusChanged(ctx, CreditRequestStatusChangedEvent{CreditRequestID: 1, OldStatus: "PENDING", NewStatus: "APPROVED"})

		assert.ErrorContains(t, err, "failed to publish message")
		ch.AssertExpectations(t)
	})

	t.Run("channel open failure is returned", func(t *testing.T) {
		p := newPublisher(func() (amqpChannel, error) { return nil, amqp.ErrClosed }, "credit-engine", testLogger())
		err := p.PublishCreditRequestStatusChanged(ctx, CreditRequestStatusChangedEvent{CreditRequestID: 1})

		assert.ErrorIs(t, err, amqp.ErrClosed)
	})
}

func TestNoopPublisher(t *testing.T) {
	p := NewNoopPublisher(testLogger())
	assert.NoError(t, p.PublishCreditRequestSubmitted(context.Background(), CreditRequestSubmittedEvent{CreditRequestID: 1}))
	assert.NoError(t, p.PublishCreditRequestStatusChanged(context.Background(), CreditRequestStatusChangedEvent{CreditRequestID: 1}))
}
