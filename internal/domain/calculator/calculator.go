// Package calculator serves loan calculations on top of the amortization
// engine: cached schedules, product comparison and per-user history.
package calculator

import (
	"context"
	"credit-engine/internal/domain/amortization"
	"time"
)

const (
	MaxCompareItems     = 5
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type Result struct {
	Terms          amortization.Terms
	MonthlyPayment int64
	Totals         amortization.Totals
	Schedule       []amortization.PaymentEntry
	Chart          []amortization.ChartPoint
	Breakdown      []amortization.BreakdownSlice
	Cached         bool
}

// CompareItem names either a preset code or explicit terms.
type CompareItem struct {
	Preset string
	Terms  amortization.Terms
}

type Comparison struct {
	Label          string
	Preset         string
	Terms          amortization.Terms
	MonthlyPayment int64
	TotalPayment   int64
	Overpayment    int64
}

type Calculation struct {
	ID             int64
	UserID         string
	Amount         float64
	TermMonths     int
	InterestRate   float64
	MonthlyPayment int64
	TotalPayment   int64
	Schedule       []amortization.PaymentEntry
	CreatedAt      time.Time
}

type Repository interface {
	Save(ctx context.Context, calc *Calculation) (*Calculation, error)

	ListByUser(ctx context.Context, userID string, limit int) ([]Calculation, error)
}

type ScheduleCache interface {
	Get(ctx context.Context, t amortization.Terms) ([]amortization.PaymentEntry, bool, error)

	Set(ctx context.Context, t amortization.Terms, schedule []amortization.PaymentEntry) error
}
