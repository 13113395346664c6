package dto

import (
	"credit-engine/internal/pkg/apperrors"
	"time"

	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type TokenRequest struct {
	Subject string `json:"sub"`
	Role    string `json:"role"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func wholeUnits(v int64) string {
	return decimal.NewFromInt(v).String()
}

func amount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func rate(v float64) string {
	return decimal.NewFromFloat(v).String()
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, newFieldError(field, "date must use YYYY-MM-DD format")
	}
	return t, nil
}

func newFieldError(field, message string) error {
	return apperrors.NewValidationError(field, message)
}
