package handler

import (
	"credit-engine/internal/api/handler/dto"
	mw "credit-engine/internal/api/middleware"
	"credit-engine/internal/domain/creditrequest"
	"credit-engine/internal/domain/scoring"
	"credit-engine/internal/pkg/apperrors"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const validApplicationBody = `{
	"amount": 300000,
	"term": 36,
	"interestRate": 12.9,
	"firstName": "Ivan",
	"lastName": "Petrov",
	"birthDate": "1991-03-04",
	"passportNumber": "4510123456",
	"passportIssuedBy": "Department of Internal Affairs",
	"passportIssuedDate": "2011-04-01",
	"passportRegistration": "Moscow, Tverskaya 1",
	"employmentType": "EMPLOYED",
	"workExperience": 48,
	"monthlyIncome": 100000,
	"phone": "+79001234567",
	"address": "Moscow, Tverskaya 1",
	"hasInsurance": false
}`

func storedCreditRequest(id int64, userID string, status creditrequest.Status) *creditrequest.CreditRequest {
	created := time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC)
	return &creditrequest.CreditRequest{
		ID: id, UserID: userID, Status: status,
		Amount: 300_000, TermMonths: 36, InterestRate: 12.9, MonthlyPayment: 10_094, TotalPayment: 363_384,
		FirstName: "Ivan", LastName: "Petrov",
		BirthDate:          time.Date(1991, time.March, 4, 0, 0, 0, 0, time.UTC),
		PassportNumber:     "4510123456",
		PassportIssuedDate: time.Date(2011, time.April, 1, 0, 0, 0, 0, time.UTC),
		EmploymentType:     scoring.EmploymentEmployed,
		ScoringResult:      97, ScoringPassed: true,
		CreatedAt: created, UpdatedAt: created,
	}
}

func TestCreditRequestHandlerSubmit(t *testing.T) {
	t.Run("submits for the caller", func(t *testing.T) {
		mockService := new(MockCreditRequestService)
		mockService.On("Submit", mock.Anything, "user-1", mock.MatchedBy(func(app creditrequest.Application) bool {
			return app.Amount == 300_000 && app.TermMonths == 36 &&
				app.BirthDate.Equal(time.Date(1991, time.March, 4, 0, 0, 0, 0, time.UTC)) &&
				app.WorkExperienceMonths != nil && *app.WorkExperienceMonths == 48
		})).Return(storedCreditRequest(1, "user-1", creditrequest.StatusPending), nil)

		req := withPrincipal(httptest.NewRequest(http.MethodPost, "/credit-requests", strings.NewReader(validApplicationBody)), "user-1", mw.RoleClient)
		rec := httptest.NewRecorder()
		NewCreditRequestHandler(mockService, logger).Submit(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp dto.CreditRequestResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "1", resp.ID)
		assert.Equal(t, "PENDING", resp.Status)
		assert.Equal(t, "10094", resp.MonthlyPayment)
		assert.Equal(t, "1991-03-04", resp.BirthDate)
		assert.Equal(t, 97, resp.ScoringResult)
		assert.True(t, resp.ScoringPassed)
		mockService.AssertExpectations(t)
	})

	t.Run("reports malformed dates by field", func(t *testing.T) {
		mockService := new(MockCreditRequestService)
		body := strings.Replace(validApplicationBody, `"1991-03-04"`, `"04.03.1991"`, 1)

		req := withPrincipal(httptest.NewRequest(http.MethodPost, "/credit-requests", strings.NewReader(body)), "user-1", mw.RoleClient)
		rec := httptest.NewRecorder()
		NewCreditRequestHandler(mockService, logger).Submit(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"field":"birthDate"`)
		mockService.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("passes service validation errors through", func(t *testing.T) {
		mockService := new(MockCreditRequestService)
		mockService.On("Submit", mock.Anything, "user-1", mock.Anything).
			Return(nil, apperrors.NewValidationError("phone", "phone must be in +7XXXXXXXXXX format"))

		req := withPrincipal(httptest.NewRequest(http.MethodPost, "/credit-requests", strings.NewReader(validApplicationBody)), "user-1", mw.RoleClient)
		rec := httptest.NewRecorder()
		NewCreditRequestHandler(mockService, logger).Submit(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"field":"phone"`)
	})
}

func TestCreditRequestHandlerGet(t *testing.T) {
	tests := []struct {
		name   string
		caller string
		role   string
		status int
	}{
		{name: "owner sees own request", caller: "user-1", role: mw.RoleClient, status: http.StatusOK},
		{name: "admin sees any request", caller: "officer", role: mw.RoleAdmin, status: http.StatusOK},
		{name: "other client gets not found", caller: "user-2", role: mw.RoleClient, status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockCreditRequestService)
			mockService.On("Get", mock.Anything, int64(7)).Return(storedCreditRequest(7, "user-1", creditrequest.StatusPending), nil)

			req := httptest.NewRequest(http.MethodGet, "/credit-requests/7", nil)
			req = withPrincipal(withURLParam(req, "requestID", "7"), tt.caller, tt.role)
			rec := httptest.NewRecorder()
			NewCreditRequestHandler(mockService, logger).Get(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			mockService.AssertExpectations(t)
		})
	}

	t.Run("invalid id", func(t *testing.T) {
		mockService := new(MockCreditRequestService)
		req := httptest.NewRequest(http.MethodGet, "/credit-requests/abc", nil)
		req = withPrincipal(withURLParam(req, "requestID", "abc"), "user-1", mw.RoleClient)
		rec := httptest.NewRecorder()
		NewCreditRequestHandler(mockService, logger).Get(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreditRequestHandlerListMine(t *testing.T) {
	mockService := new(MockCreditRequestService)
	mockService.On("ListForUser", mock.Anything, "user-1").Return([]creditrequest.CreditRequest{
		*storedCreditRequest(2, "user-1", creditrequest.StatusApproved),
		*storedCreditRequest(1, "user-1", creditrequest.StatusRejected),
	}, nil)

	req := withPrincipal(httptest.NewRequest(http.MethodGet, "/credit-requests", nil), "user-1", mw.RoleClient)
	rec := httptest.NewRecorder()
	NewCreditRequestHandler(mockService, logger).ListMine(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []dto.CreditRequestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "APPROVED", resp[0].Status)
	mockService.AssertExpectations(t)
}

func TestAdminHandlerListCreditRequests(t *testing.T) {
	t.Run("parses the status filter", func(t *testing.T) {
		mockService := new(MockCreditRequestService)
		approved := creditrequest.StatusApproved
		mockService.On("List", mock.Anything, creditrequest.Filter{Status: &approved, Limit: 10, Offset: 5}).
			Return([]creditrequest.CreditRequest{*storedCreditRequest(4, "user-3", approved)}, nil)

		rec := httptest.NewRecorder()
		NewAdminHandler(mockService, logger).ListCreditRequests(rec, httptest.NewRequest(http.MethodGet, "/admin/credit-requests?status=approved&limit=10&offset=5", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		mockService := new(MockCreditRequestService)
		rec := httptest.NewRecorder()
		NewAdminHandler(mockService, logger).ListCreditRequests(rec, httptest.NewRequest(http.MethodGet, "/admin/credit-requests?status=LOST", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"field":"status"`)
	})
}

func TestAdminHandlerUpdateStatus(t *testing.T) {
	t.Run("updates the status", func(t *testing.T) {
		mockService := new(MockCreditRequestService)
		mockService.On("UpdateStatus", mock.Anything, int64(7), creditrequest.StatusApproved).
			Return(storedCreditRequest(7, "user-1", creditrequest.StatusApproved), nil)

		req := withURLParam(httptest.NewRequest(http.MethodPost, "/admin/credit-requests/7/status", strings.NewReader(`{"status":"APPROVED"}`)), "requestID", "7")
		rec := httptest.NewRecorder()
		NewAdminHandler(mockService, logger).UpdateStatus(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"APPROVED"`)
		mockService.AssertExpectations(t)
	})

	t.Run("issued requests are locked", func(t *testing.T) {
		mockService := new(MockCreditRequestService)
		mockService.On("UpdateStatus", mock.Anything, int64(7), creditrequest.StatusCanceled).
			Return(nil, fmt.Errorf("%w: request is ISSUED", apperrors.ErrStatusLocked))

		req := withURLParam(httptest.NewRequest(http.MethodPost, "/admin/credit-requests/7/status", strings.NewReader(`{"status":"CANCELED"}`)), "requestID", "7")
		rec := httptest.NewRecorder()
		NewAdminHandler(mockService, logger).UpdateStatus(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("unknown status", func(t *testing.T) {
		mockService := new(MockCreditRequestService)
		req := withURLParam(httptest.NewRequest(http.MethodPost, "/admin/credit-requests/7/status", strings.NewReader(`{"status":"ARCHIVED"}`)), "requestID", "7")
		rec := httptest.NewRecorder()
		NewAdminHandler(mockService, logger).UpdateStatus(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing request", func(t *testing.T) {
		mockService := new(MockCreditRequestService)
		mockService.On("UpdateStatus", mock.Anything, int64(99), creditrequest.StatusRejected).Return(nil, apperrors.ErrNotFound)

		req := withURLParam(httptest.NewRequest(http.MethodPost, "/admin/credit-requests/99/status", strings.NewReader(`{"status":"rejected"}`)), "requestID", "99")
		rec := httptest.NewRecorder()
		NewAdminHandler(mockService, logger).UpdateStatus(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAdminHandlerGetStatistics(t *testing.T) {
	mockService := new(MockCreditRequestService)
	mockService.On("Statistics", mock.Anything).Return(&creditrequest.Statistics{TotalRequests: 10, ApprovedRequests: 4, RejectedRequests: 3}, nil)

	rec := httptest.NewRecorder()
	NewAdminHandler(mockService, logger).GetStatistics(rec, httptest.NewRequest(http.MethodGet, "/admin/statistics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.StatisticsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(10), resp.TotalRequests)
	assert.Equal(t, int64(3), resp.OtherRequests)
	mockService.AssertExpectations(t)
}
