// Package amortization computes fixed-rate annuity repayment schedules.
//
// Every function in this package is pure: no I/O, no shared state. All
// currency outputs are whole units rounded half away from zero, per entry.
package amortization

import (
	"credit-engine/internal/pkg/apperrors"
	"fmt"
	"math"
)

type Terms struct {
	Principal         float64
	AnnualRatePercent float64
	TermMonths        int
}

type PaymentEntry struct {
	Month         int   `json:"month"`
	Payment       int64 `json:"payment"`
	Principal     int64 `json:"principal"`
	Interest      int64 `json:"interest"`
	RemainingDebt int64 `json:"remainingDebt"`
}

type Totals struct {
	TotalPayment   int64 `json:"totalPayment"`
	TotalPrincipal int64 `json:"totalPrincipal"`
	TotalInterest  int64 `json:"totalInterest"`
}

// NewTerms returns terms that satisfy the engine preconditions.
func NewTerms(principal, annualRatePercent float64, termMonths int) (Terms, error) {
	t := Terms{Principal: principal, AnnualRatePercent: annualRatePercent, TermMonths: termMonths}
	if err := t.check(); err != nil {
		return Terms{}, err
	}
	return t, nil
}

func (t Terms) check() error {
	switch {
	case !isFinite(t.Principal) || t.Principal <= 0:
		return apperrors.NewValidationError("amount", "principal must be greater than zero")
	case !isFinite(t.AnnualRatePercent) || t.AnnualRatePercent <= 0:
		return apperrors.NewValidationError("interestRate", "annual rate must be greater than zero")
	case t.TermMonths < 1:
		return apperrors.NewValidationError("term", "term must be at least one month")
	}

	// Rates small enough to vanish in (1+r)^n - 1 leave the annuity undefined.
	payment := annuityPayment(t.Principal, t.AnnualRatePercent/100/12, t.TermMonths)
	if !isFinite(payment) || payment <= 0 || payment > math.MaxInt64/2 {
		return apperrors.NewValidationError("interestRate", "annual rate is outside the range the annuity formula can represent")
	}
	return nil
}

func (t Terms) Schedule() []PaymentEntry {
	return ComputeSchedule(t.Principal, t.AnnualRatePercent, t.TermMonths)
}

// ComputeSchedule returns one entry per month, in order. Interest is taken
// from the unrounded running balance; each reported field is rounded on its
// own, so principal+interest may differ from payment by one unit.
//
// It panics when called with terms NewTerms would reject.
func ComputeSchedule(principal, annualRatePercent float64, termMonths int) []PaymentEntry {
	if err := (Terms{Principal: principal, AnnualRatePercent: annualRatePercent, TermMonths: termMonths}).check(); err != nil {
		panic(fmt.Sprintf("amortization: invalid terms (principal=%v rate=%v term=%d): %v",
			principal, annualRatePercent, termMonths, err))
	}

	monthlyRate := annualRatePercent / 100 / 12
	payment := annuityPayment(principal, monthlyRate, termMonths)

	schedule := make([]PaymentEntry, 0, termMonths)
	remaining := principal
	for month := 1; month <= termMonths; month++ {
		interest := remaining * monthlyRate
		principalPart := payment - interest
		remaining -= principalPart

		schedule = append(schedule, PaymentEntry{
			Month:         month,
			Payment:       round(payment),
			Principal:     round(principalPart),
			Interest:      round(interest),
			RemainingDebt: max(0, round(remaining)),
		})
	}
	return schedule
}

// ComputeTotals sums each field independently. The result can differ from
// payment*term because rounding happens per entry.
func ComputeTotals(schedule []PaymentEntry) Totals {
	var totals Totals
	for _, entry := range schedule {
		totals.TotalPayment += entry.Payment
		totals.TotalPrincipal += entry.Principal
		totals.TotalInterest += entry.Interest
	}
	return totals
}

func MonthlyPayment(principal, annualRatePercent float64, termMonths int) int64 {
	t := Terms{Principal: principal, AnnualRatePercent: annualRatePercent, TermMonths: termMonths}
	if err := t.check(); err != nil {
		panic(fmt.Sprintf("amortization: invalid terms: %v", err))
	}
	return round(annuityPayment(principal, annualRatePercent/100/12, termMonths))
}

func TotalPayment(monthlyPayment int64, termMonths int) int64 {
	return monthlyPayment * int64(termMonths)
}

func annuityPayment(principal, monthlyRate float64, termMonths int) float64 {
	growth := math.Pow(1+monthlyRate, float64(termMonths))
	if !(growth-1 > 0) {
		return math.NaN()
	}
	return principal * monthlyRate * growth / (growth - 1)
}

func round(v float64) int64 {
	return int64(math.Round(v))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
