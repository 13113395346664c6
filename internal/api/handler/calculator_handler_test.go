package handler

import (
	"credit-engine/internal/api/handler/dto"
	mw "credit-engine/internal/api/middleware"
	"credit-engine/internal/domain/amortization"
	"credit-engine/internal/domain/calculator"
	"credit-engine/internal/pkg/apperrors"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCalculatorHandlerListPresets(t *testing.T) {
	h := NewCalculatorHandler(new(MockCalculatorService), logger)
	rec := httptest.NewRecorder()

	h.ListPresets(rec, httptest.NewRequest(http.MethodGet, "/calculator/presets", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var presets []dto.PresetResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &presets))
	require.Len(t, presets, len(amortization.Presets))
	assert.Equal(t, "consumer", presets[0].Code)
	assert.Equal(t, "10094", presets[0].MonthlyPayment)
	assert.Equal(t, "37279", presets[2].MonthlyPayment)
}

func TestCalculatorHandlerCalculateSchedule(t *testing.T) {
	terms := amortization.Terms{Principal: 100_000, AnnualRatePercent: 10, TermMonths: 12}

	t.Run("returns the computed schedule", func(t *testing.T) {
		mockService := new(MockCalculatorService)
		schedule := terms.Schedule()
		totals := amortization.ComputeTotals(schedule)
		mockService.On("Calculate", mock.Anything, terms).Return(&calculator.Result{
			Terms:          terms,
			MonthlyPayment: schedule[0].Payment,
			Totals:         totals,
			Schedule:       schedule,
			Chart:          amortization.ChartSeries(schedule),
			Breakdown:      amortization.Breakdown(totals.TotalPrincipal, totals.TotalInterest),
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/calculator/schedule", strings.NewReader(`{"amount":100000,"term":12,"interestRate":10}`))
		rec := httptest.NewRecorder()
		NewCalculatorHandler(mockService, logger).CalculateSchedule(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp dto.ScheduleResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "8792", resp.MonthlyPayment)
		assert.Equal(t, "100000.00", resp.Amount)
		assert.Equal(t, "RUB", resp.Currency)
		assert.Len(t, resp.Schedule, 12)
		assert.Equal(t, "0", resp.Schedule[11].RemainingDebt)
		require.Len(t, resp.Breakdown, 2)
		assert.Contains(t, resp.Breakdown[0].Label, "₽")
		mockService.AssertExpectations(t)
	})

	t.Run("maps out-of-range terms to 400", func(t *testing.T) {
		mockService := new(MockCalculatorService)
		bad := amortization.Terms{Principal: 5, AnnualRatePercent: 10, TermMonths: 12}
		mockService.On("Calculate", mock.Anything, bad).
			Return(nil, apperrors.NewValidationError("amount", "amount must be between 10000 and 5000000"))

		req := httptest.NewRequest(http.MethodPost, "/calculator/schedule", strings.NewReader(`{"amount":5,"term":12,"interestRate":10}`))
		rec := httptest.NewRecorder()
		NewCalculatorHandler(mockService, logger).CalculateSchedule(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"field":"amount"`)
		mockService.AssertExpectations(t)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		mockService := new(MockCalculatorService)
		req := httptest.NewRequest(http.MethodPost, "/calculator/schedule", strings.NewReader(`{"amount":"lots"}`))
		rec := httptest.NewRecorder()
		NewCalculatorHandler(mockService, logger).CalculateSchedule(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "Calculate", mock.Anything, mock.Anything)
	})
}

func TestCalculatorHandlerCompare(t *testing.T) {
	mockService := new(MockCalculatorService)
	items := []calculator.CompareItem{
		{Preset: "express"},
		{Terms: amortization.Terms{Principal: 200_000, AnnualRatePercent: 10, TermMonths: 24}},
	}
	mockService.On("Compare", mock.Anything, items).Return([]calculator.Comparison{
		{Label: "Express loan", Preset: "express", Terms: amortization.Terms{Principal: 100_000, AnnualRatePercent: 15.9, TermMonths: 12}, MonthlyPayment: 9_068, TotalPayment: 108_816, Overpayment: 8_816},
		{Label: "Option 2", Terms: items[1].Terms, MonthlyPayment: 9_229, TotalPayment: 221_496, Overpayment: 21_496},
	}, nil)

	body := `{"items":[{"preset":"express"},{"amount":200000,"term":24,"interestRate":10}]}`
	rec := httptest.NewRecorder()
	NewCalculatorHandler(mockService, logger).Compare(rec, httptest.NewRequest(http.MethodPost, "/calculator/compare", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []dto.ComparisonResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "15.9", resp[0].InterestRate)
	assert.Equal(t, "9068", resp[0].MonthlyPayment)
	assert.Equal(t, "Option 2", resp[1].Label)
	assert.Equal(t, "21496", resp[1].Overpayment)
	mockService.AssertExpectations(t)
}

func TestCalculatorHandlerSaveCalculation(t *testing.T) {
	terms := amortization.Terms{Principal: 100_000, AnnualRatePercent: 10, TermMonths: 12}
	body := `{"amount":100000,"term":12,"interestRate":10,"includeSchedule":true}`

	t.Run("requires a principal", func(t *testing.T) {
		mockService := new(MockCalculatorService)
		rec := httptest.NewRecorder()
		NewCalculatorHandler(mockService, logger).SaveCalculation(rec, httptest.NewRequest(http.MethodPost, "/calculator/history", strings.NewReader(body)))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		mockService.AssertNotCalled(t, "SaveCalculation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("saves for the caller", func(t *testing.T) {
		mockService := new(MockCalculatorService)
		mockService.On("SaveCalculation", mock.Anything, "user-1", terms, true).Return(&calculator.Calculation{
			ID: 3, UserID: "user-1", Amount: 100_000, TermMonths: 12, InterestRate: 10,
			MonthlyPayment: 8_792, TotalPayment: 105_504, Schedule: terms.Schedule(),
			CreatedAt: time.Date(2026, time.October, 18, 10, 0, 0, 0, time.UTC),
		}, nil)

		req := withPrincipal(httptest.NewRequest(http.MethodPost, "/calculator/history", strings.NewReader(body)), "user-1", mw.RoleClient)
		rec := httptest.NewRecorder()
		NewCalculatorHandler(mockService, logger).SaveCalculation(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp dto.CalculationResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "3", resp.ID)
		assert.Equal(t, "105504", resp.TotalPayment)
		assert.Len(t, resp.Schedule, 12)
		mockService.AssertExpectations(t)
	})
}

func TestCalculatorHandlerListHistory(t *testing.T) {
	t.Run("passes the limit through", func(t *testing.T) {
		mockService := new(MockCalculatorService)
		mockService.On("ListHistory", mock.Anything, "user-1", 5).Return([]calculator.Calculation{
			{ID: 2, UserID: "user-1", Amount: 200_000, TermMonths: 24, InterestRate: 10, MonthlyPayment: 9_229, TotalPayment: 221_496},
		}, nil)

		req := withPrincipal(httptest.NewRequest(http.MethodGet, "/calculator/history?limit=5", nil), "user-1", mw.RoleClient)
		rec := httptest.NewRecorder()
		NewCalculatorHandler(mockService, logger).ListHistory(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp []dto.CalculationResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Empty(t, resp[0].Schedule)
		mockService.AssertExpectations(t)
	})

	t.Run("rejects a bad limit", func(t *testing.T) {
		mockService := new(MockCalculatorService)
		req := withPrincipal(httptest.NewRequest(http.MethodGet, "/calculator/history?limit=ten", nil), "user-1", mw.RoleClient)
		rec := httptest.NewRecorder()
		NewCalculatorHandler(mockService, logger).ListHistory(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"field":"limit"`)
	})
}
