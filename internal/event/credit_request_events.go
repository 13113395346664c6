package event

import (
	"context"
	"time"
)

const (
	RoutingKeySubmitted     = "credit_request.submitted"
	RoutingKeyStatusChanged = "credit_request.status_changed"
)

type CreditRequestSubmittedEvent struct {
	CreditRequestID int64     `json:"creditRequestId"`
	UserID          string    `json:"userId"`
	Amount          float64   `json:"amount"`
	TermMonths      int       `json:"term"`
	InterestRate    float64   `json:"interestRate"`
	MonthlyPayment  int64     `json:"monthlyPayment"`
	TotalPayment    int64     `json:"totalPayment"`
	ScoringResult   int       `json:"scoringResult"`
	ScoringPassed   bool      `json:"scoringPassed"`
	Timestamp       time.Time `json:"timestamp"`
}

type CreditRequestStatusChangedEvent struct {
	CreditRequestID int64     `json:"creditRequestId"`
	UserID          string    `json:"userId"`
	OldStatus       string    `json:"oldStatus"`
	NewStatus       string    `json:"newStatus"`
	Timestamp       time.Time `json:"timestamp"`
}

func (p *RabbitMQEventPublisher) PublishCreditRequestSubmitted(ctx context.Context, event CreditRequestSubmittedEvent) error {
	return p.publish(ctx, RoutingKeySubmitted, event)
}

func (p *RabbitMQEventPublisher) PublishCreditRequestStatusChanged(ctx context.Context, event CreditRequestStatusChangedEvent) error {
	return p.publish(ctx, RoutingKeyStatusChanged, event)
}
