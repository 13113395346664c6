package dto

import (
	"credit-engine/internal/domain/amortization"
	"credit-engine/internal/domain/calculator"
	"credit-engine/internal/pkg/money"
	"strconv"
	"strings"
	"time"
)

type LoanTermsRequest struct {
	Amount       float64 `json:"amount"`
	Term         int     `json:"term"`
	InterestRate float64 `json:"interestRate"`
}

func (r LoanTermsRequest) Terms() amortization.Terms {
	return amortization.Terms{Principal: r.Amount, AnnualRatePercent: r.InterestRate, TermMonths: r.Term}
}

type CompareRequest struct {
	Items []CompareItemRequest `json:"items"`
}

// CompareItemRequest carries either a preset code or explicit terms.
type CompareItemRequest struct {
	Preset       string  `json:"preset,omitempty"`
	Amount       float64 `json:"amount,omitempty"`
	Term         int     `json:"term,omitempty"`
	InterestRate float64 `json:"interestRate,omitempty"`
}

func (r *CompareRequest) CompareItems() []calculator.CompareItem {
	items := make([]calculator.CompareItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = calculator.CompareItem{
			Preset: strings.TrimSpace(item.Preset),
			Terms:  amortization.Terms{Principal: item.Amount, AnnualRatePercent: item.InterestRate, TermMonths: item.Term},
		}
	}
	return items
}

type SaveCalculationRequest struct {
	LoanTermsRequest
	IncludeSchedule bool `json:"includeSchedule"`
}

type PaymentEntryResponse struct {
	Month         int    `json:"month"`
	Payment       string `json:"payment"`
	Principal     string `json:"principal"`
	Interest      string `json:"interest"`
	RemainingDebt string `json:"remainingDebt"`
}

type ChartPointResponse struct {
	Month     int   `json:"month"`
	Principal int64 `json:"principal"`
	Interest  int64 `json:"interest"`
}

type BreakdownResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Label string `json:"label"`
	Fill  string `json:"fill"`
}

type ScheduleResponse struct {
	Amount         string                 `json:"amount"`
	Term           int                    `json:"term"`
	InterestRate   string                 `json:"interestRate"`
	MonthlyPayment string                 `json:"monthlyPayment"`
	TotalPayment   string                 `json:"totalPayment"`
	TotalPrincipal string                 `json:"totalPrincipal"`
	TotalInterest  string                 `json:"totalInterest"`
	Currency       string                 `json:"currency"`
	Cached         bool                   `json:"cached"`
	Schedule       []PaymentEntryResponse `json:"schedule"`
	Chart          []ChartPointResponse   `json:"chart"`
	Breakdown      []BreakdownResponse    `json:"breakdown"`
}

func NewScheduleResponse(res *calculator.Result) ScheduleResponse {
	resp := ScheduleResponse{
		Amount:         amount(res.Terms.Principal),
		Term:           res.Terms.TermMonths,
		InterestRate:   rate(res.Terms.AnnualRatePercent),
		MonthlyPayment: wholeUnits(res.MonthlyPayment),
		TotalPayment:   wholeUnits(res.Totals.TotalPayment),
		TotalPrincipal: wholeUnits(res.Totals.TotalPrincipal),
		TotalInterest:  wholeUnits(res.Totals.TotalInterest),
		Currency:       money.Currency,
		Cached:         res.Cached,
		Schedule:       newPaymentEntries(res.Schedule),
		Chart:          make([]ChartPointResponse, len(res.Chart)),
		Breakdown:      make([]BreakdownResponse, len(res.Breakdown)),
	}
	for i, p := range res.Chart {
		resp.Chart[i] = ChartPointResponse{Month: p.Month, Principal: p.Principal, Interest: p.Interest}
	}
	for i, b := range res.Breakdown {
		resp.Breakdown[i] = BreakdownResponse{Name: b.Name, Value: wholeUnits(b.Value), Label: money.FormatRUB(b.Value), Fill: b.Color}
	}
	return resp
}

func newPaymentEntries(schedule []amortization.PaymentEntry) []PaymentEntryResponse {
	entries := make([]PaymentEntryResponse, len(schedule))
	for i, e := range schedule {
		entries[i] = PaymentEntryResponse{
			Month:         e.Month,
			Payment:       wholeUnits(e.Payment),
			Principal:     wholeUnits(e.Principal),
			Interest:      wholeUnits(e.Interest),
			RemainingDebt: wholeUnits(e.RemainingDebt),
		}
	}
	return entries
}

type ComparisonResponse struct {
	Label          string `json:"label"`
	Preset         string `json:"preset,omitempty"`
	Amount         string `json:"amount"`
	Term           int    `json:"term"`
	InterestRate   string `json:"interestRate"`
	MonthlyPayment string `json:"monthlyPayment"`
	TotalPayment   string `json:"totalPayment"`
	Overpayment    string `json:"overpayment"`
}

func NewComparisonResponses(comparisons []calculator.Comparison) []ComparisonResponse {
	resp := make([]ComparisonResponse, len(comparisons))
	for i, c := range comparisons {
		resp[i] = ComparisonResponse{
			Label:          c.Label,
			Preset:         c.Preset,
			Amount:         amount(c.Terms.Principal),
			Term:           c.Terms.TermMonths,
			InterestRate:   rate(c.Terms.AnnualRatePercent),
			MonthlyPayment: wholeUnits(c.MonthlyPayment),
			TotalPayment:   wholeUnits(c.TotalPayment),
			Overpayment:    wholeUnits(c.Overpayment),
		}
	}
	return resp
}

type PresetResponse struct {
	Code           string `json:"code"`
	Name           string `json:"name"`
	Amount         string `json:"amount"`
	Term           int    `json:"term"`
	InterestRate   string `json:"interestRate"`
	MonthlyPayment string `json:"monthlyPayment"`
}

func NewPresetResponses(presets []amortization.Preset) []PresetResponse {
	resp := make([]PresetResponse, len(presets))
	for i, p := range presets {
		resp[i] = PresetResponse{
			Code:           p.Code,
			Name:           p.Name,
			Amount:         amount(p.Amount),
			Term:           p.TermMonths,
			InterestRate:   rate(p.Rate),
			MonthlyPayment: wholeUnits(amortization.MonthlyPayment(p.Amount, p.Rate, p.TermMonths)),
		}
	}
	return resp
}

type CalculationResponse struct {
	ID             string                 `json:"id"`
	Amount         string                 `json:"amount"`
	Term           int                    `json:"term"`
	InterestRate   string                 `json:"interestRate"`
	MonthlyPayment string                 `json:"monthlyPayment"`
	TotalPayment   string                 `json:"totalPayment"`
	Schedule       []PaymentEntryResponse `json:"schedule,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
}

func NewCalculationResponse(c *calculator.Calculation) CalculationResponse {
	resp := CalculationResponse{
		ID:             strconv.FormatInt(c.ID, 10),
		Amount:         amount(c.Amount),
		Term:           c.TermMonths,
		InterestRate:   rate(c.InterestRate),
		MonthlyPayment: wholeUnits(c.MonthlyPayment),
		TotalPayment:   wholeUnits(c.TotalPayment),
		CreatedAt:      c.CreatedAt,
	}
	if len(c.Schedule) > 0 {
		resp.Schedule = newPaymentEntries(c.Schedule)
	}
	return resp
}

func NewCalculationResponses(calcs []calculator.Calculation) []CalculationResponse {
	resp := make([]CalculationResponse, len(calcs))
	for i := range calcs {
		resp[i] = NewCalculationResponse(&calcs[i])
	}
	return resp
}
