package handler

import (
	"credit-engine/internal/api/handler/dto"
	"credit-engine/internal/pkg/apperrors"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
		field   string
	}{
		{name: "validation error carries field", err: apperrors.NewValidationError("phone", "phone must be in +7XXXXXXXXXX format"), status: http.StatusBadRequest, message: "phone must be in +7XXXXXXXXXX format", field: "phone"},
		{name: "invalid argument", err: fmt.Errorf("%w: bad json", apperrors.ErrInvalidArgument), status: http.StatusBadRequest, message: "invalid argument: bad json"},
		{name: "not found", err: fmt.Errorf("%w: id 5", apperrors.ErrNotFound), status: http.StatusNotFound, message: "Resource not found."},
		{name: "unauthorized", err: apperrors.ErrUnauthorized, status: http.StatusUnauthorized, message: "Unauthorized"},
		{name: "forbidden", err: apperrors.ErrForbidden, status: http.StatusForbidden, message: "Forbidden"},
		{name: "status locked", err: fmt.Errorf("%w: request is ISSUED", apperrors.ErrStatusLocked), status: http.StatusConflict, message: apperrors.ErrStatusLocked.Error()},
		{name: "conflict", err: apperrors.ErrConflict, status: http.StatusConflict, message: "resource conflict"},
		{name: "unexpected", err: errors.New("boom"), status: http.StatusInternalServerError, message: "An unexpected error occurred."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body.Error.Message)
			assert.Equal(t, tt.field, body.Error.Field)
		})
	}
}

func TestGetIDFromURL(t *testing.T) {
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "requestID", "42")
	id, err := getIDFromURL(req, "requestID")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"abc", "0", "-3"} {
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "requestID", raw)
		_, err := getIDFromURL(req, "requestID")
		assert.Error(t, err, raw)
	}
}

func TestQueryInt(t *testing.T) {
	v, err := queryInt(httptest.NewRequest(http.MethodGet, "/?limit=15", nil), "limit", 0)
	require.NoError(t, err)
	assert.Equal(t, 15, v)

	v, err = queryInt(httptest.NewRequest(http.MethodGet, "/", nil), "limit", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	_, err = queryInt(httptest.NewRequest(http.MethodGet, "/?limit=-1", nil), "limit", 0)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
