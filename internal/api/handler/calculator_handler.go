package handler

import (
	"credit-engine/internal/api/handler/dto"
	"credit-engine/internal/domain/amortization"
	"credit-engine/internal/domain/calculator"
	"credit-engine/internal/pkg/apperrors"
	"fmt"
	"log/slog"
	"net/http"
)

type CalculatorHandler struct {
	service calculator.Service
	logger  *slog.Logger
}

func NewCalculatorHandler(s calculator.Service, l *slog.Logger) *CalculatorHandler {
	return &CalculatorHandler{
		service: s,
		logger:  l.With("component", "CalculatorHandler"),
	}
}

// ListPresets returns the loan product presets.
//
// @Summary List loan presets
// @Tags Calculator
// @Produce json
// @Success 200 {array} dto.PresetResponse "Loan product presets"
// @Router /calculator/presets [get]
func (h *CalculatorHandler) ListPresets(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, dto.NewPresetResponses(amortization.Presets))
}

// CalculateSchedule computes an annuity repayment schedule.
//
// @Summary Calculate a repayment schedule
// @Description Computes the monthly payment, month-by-month schedule, totals, chart series and principal/interest breakdown for the given terms.
// @Tags Calculator
// @Accept json
// @Produce json
// @Param request body dto.LoanTermsRequest true "Loan terms"
// @Success 200 {object} dto.ScheduleResponse "Schedule successfully computed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload or terms out of range"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /calculator/schedule [post]
func (h *CalculatorHandler) CalculateSchedule(w http.ResponseWriter, r *http.Request) {
	var req dto.LoanTermsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	result, err := h.service.Calculate(r.Context(), req.Terms())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewScheduleResponse(result))
}

// Compare compares up to five loan offers side by side.
//
// @Summary Compare loan offers
// @Description Each item is either a preset code or explicit terms. Presets are trusted product definitions and skip the range checks.
// @Tags Calculator
// @Accept json
// @Produce json
// @Param request body dto.CompareRequest true "Offers to compare"
// @Success 200 {array} dto.ComparisonResponse "Comparison rows in request order"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload or terms out of range"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /calculator/compare [post]
func (h *CalculatorHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var req dto.CompareRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	comparisons, err := h.service.Compare(r.Context(), req.CompareItems())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewComparisonResponses(comparisons))
}

// SaveCalculation stores a calculation in the caller's history.
//
// @Summary Save a calculation
// @Description Recomputes the payment server-side and stores it, optionally with a schedule snapshot.
// @Tags Calculator
// @Accept json
// @Produce json
// @Param request body dto.SaveCalculationRequest true "Loan terms"
// @Success 201 {object} dto.CalculationResponse "Calculation saved"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload or terms out of range"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /calculator/history [post]
// @Security BearerAuth
func (h *CalculatorHandler) SaveCalculation(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.SaveCalculationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	calc, err := h.service.SaveCalculation(r.Context(), principal.UserID, req.Terms(), req.IncludeSchedule)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.NewCalculationResponse(calc))
}

// ListHistory returns the caller's saved calculations, newest first.
//
// @Summary List saved calculations
// @Tags Calculator
// @Produce json
// @Param limit query int false "Maximum number of entries (default 20, max 100)"
// @Success 200 {array} dto.CalculationResponse "Saved calculations"
// @Failure 400 {object} dto.ErrorResponse "Invalid limit"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /calculator/history [get]
// @Security BearerAuth
func (h *CalculatorHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		respondError(w, err)
		return
	}

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		respondError(w, err)
		return
	}

	calcs, err := h.service.ListHistory(r.Context(), principal.UserID, limit)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCalculationResponses(calcs))
}
