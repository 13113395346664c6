package handler

import (
	"bytes"
	"context"
	mw "credit-engine/internal/api/middleware"
	"credit-engine/internal/domain/amortization"
	"credit-engine/internal/domain/calculator"
	"credit-engine/internal/domain/creditrequest"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
)

var logger = slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

type MockCalculatorService struct {
	mock.Mock
}

func (m *MockCalculatorService) Calculate(ctx context.Context, terms amortization.Terms) (*calculator.Result, error) {
	args := m.Called(ctx, terms)
	if res, ok := args.Get(0).(*calculator.Result); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCalculatorService) Compare(ctx context.Context, items []calculator.CompareItem) ([]calculator.Comparison, error) {
	args := m.Called(ctx, items)
	if res, ok := args.Get(0).([]calculator.Comparison); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCalculatorService) SaveCalculation(ctx context.Context, userID string, terms amortization.Terms, includeSchedule bool) (*calculator.Calculation, error) {
	args := m.Called(ctx, userID, terms, includeSchedule)
	if res, ok := args.Get(0).(*calculator.Calculation); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCalculatorService) ListHistory(ctx context.Context, userID string, limit int) ([]calculator.Calculation, error) {
	args := m.Called(ctx, userID, limit)
	if res, ok := args.Get(0).([]calculator.Calculation); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCreditRequestService struct {
	mock.Mock
}

func (m *MockCreditRequestService) Submit(ctx context.Context, userID string, app creditrequest.Application) (*creditrequest.CreditRequest, error) {
	args := m.Called(ctx, userID, app)
	if res, ok := args.Get(0).(*creditrequest.CreditRequest); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCreditRequestService) Get(ctx context.Context, id int64) (*creditrequest.CreditRequest, error) {
	args := m.Called(ctx, id)
	if res, ok := args.Get(0).(*creditrequest.CreditRequest); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCreditRequestService) ListForUser(ctx context.Context, userID string) ([]creditrequest.CreditRequest, error) {
	args := m.Called(ctx, userID)
	if res, ok := args.Get(0).([]creditrequest.CreditRequest); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCreditRequestService) List(ctx context.Context, filter creditrequest.Filter) ([]creditrequest.CreditRequest, error) {
	args := m.Called(ctx, filter)
	if res, ok := args.Get(0).([]creditrequest.CreditRequest); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCreditRequestService) UpdateStatus(ctx context.Context, id int64, status creditrequest.Status) (*creditrequest.CreditRequest, error) {
	args := m.Called(ctx, id, status)
	if res, ok := args.Get(0).(*creditrequest.CreditRequest); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCreditRequestService) Statistics(ctx context.Context) (*creditrequest.Statistics, error) {
	args := m.Called(ctx)
	if res, ok := args.Get(0).(*creditrequest.Statistics); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func withPrincipal(req *http.Request, userID, role string) *http.Request {
	return req.WithContext(mw.WithPrincipal(req.Context(), mw.Principal{UserID: userID, Role: role}))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
