package calculator

import (
	"context"
	"credit-engine/internal/domain/amortization"
	"credit-engine/internal/infrastructure/monitoring"
	"credit-engine/internal/pkg/apperrors"
	"fmt"
	"log/slog"
	"math"
)

type Service interface {
	Calculate(ctx context.Context, terms amortization.Terms) (*Result, error)

	Compare(ctx context.Context, items []CompareItem) ([]Comparison, error)

	SaveCalculation(ctx context.Context, userID string, terms amortization.Terms, includeSchedule bool) (*Calculation, error)

	ListHistory(ctx context.Context, userID string, limit int) ([]Calculation, error)
}

type service struct {
	repo   Repository
	cache  ScheduleCache
	limits amortization.Limits
	logger *slog.Logger
}

// NewService accepts a nil cache; schedules are then computed on every call.
func NewService(repo Repository, cache ScheduleCache, limits amortization.Limits, logger *slog.Logger) Service {
	return &service{
		repo:   repo,
		cache:  cache,
		limits: limits,
		logger: logger.With("component", "CalculatorService"),
	}
}

func (s *service) Calculate(ctx context.Context, terms amortization.Terms) (*Result, error) {
	if err := s.limits.Validate(terms); err != nil {
		return nil, err
	}

	schedule, cached := s.schedule(ctx, terms)
	totals := amortization.ComputeTotals(schedule)

	return &Result{
		Terms:          terms,
		MonthlyPayment: schedule[0].Payment,
		Totals:         totals,
		Schedule:       schedule,
		Chart:          amortization.ChartSeries(schedule),
		Breakdown:      amortization.Breakdown(totals.TotalPrincipal, totals.TotalInterest),
		Cached:         cached,
	}, nil
}

// schedule is cache-aside; cache errors are logged and never surface.
func (s *service) schedule(ctx context.Context, terms amortization.Terms) ([]amortization.PaymentEntry, bool) {
	if s.cache != nil {
		schedule, ok, err := s.cache.Get(ctx, terms)
		if err != nil {
			s.logger.WarnContext(ctx, "Schedule cache read failed", "error", err)
		}
		monitoring.RecordScheduleCache(ok)
		if ok {
			return schedule, true
		}
	}

	schedule := terms.Schedule()
	monitoring.RecordScheduleComputed()

	if s.cache != nil {
		if err := s.cache.Set(ctx, terms, schedule); err != nil {
			s.logger.WarnContext(ctx, "Schedule cache write failed", "error", err)
		}
	}
	return schedule, false
}

func (s *service) Compare(ctx context.Context, items []CompareItem) ([]Comparison, error) {
	if len(items) == 0 {
		return nil, apperrors.NewValidationError("items", "at least one loan is required for comparison")
	}
	if len(items) > MaxCompareItems {
		return nil, apperrors.NewValidationError("items", fmt.Sprintf("at most %d loans can be compared", MaxCompareItems))
	}

	comparisons := make([]Comparison, 0, len(items))
	for i, item := range items {
		c := Comparison{Terms: item.Terms, Label: fmt.Sprintf("Option %d", i+1)}

		if item.Preset != "" {
			preset, ok := amortization.PresetByCode(item.Preset)
			if !ok {
				return nil, apperrors.NewValidationError("preset", fmt.Sprintf("unknown preset %q", item.Preset))
			}
			c.Terms = preset.Terms()
			c.Preset = preset.Code
			c.Label = preset.Name
		} else if err := s.limits.Validate(item.Terms); err != nil {
			return nil, err
		}

		c.MonthlyPayment = amortization.MonthlyPayment(c.Terms.Principal, c.Terms.AnnualRatePercent, c.Terms.TermMonths)
		c.TotalPayment = amortization.TotalPayment(c.MonthlyPayment, c.Terms.TermMonths)
		c.Overpayment = c.TotalPayment - int64(math.Round(c.Terms.Principal))
		comparisons = append(comparisons, c)
	}

	s.logger.DebugContext(ctx, "Compared loans", "count", len(comparisons))
	return comparisons, nil
}

func (s *service) SaveCalculation(ctx context.Context, userID string, terms amortization.Terms, includeSchedule bool) (*Calculation, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: saving a calculation requires a user", apperrors.ErrUnauthorized)
	}
	if err := s.limits.Validate(terms); err != nil {
		return nil, err
	}

	schedule := terms.Schedule()
	totals := amortization.ComputeTotals(schedule)

	calc := &Calculation{
		UserID:         userID,
		Amount:         terms.Principal,
		TermMonths:     terms.TermMonths,
		InterestRate:   terms.AnnualRatePercent,
		MonthlyPayment: schedule[0].Payment,
		TotalPayment:   totals.TotalPayment,
	}
	if includeSchedule {
		calc.Schedule = schedule
	}

	saved, err := s.repo.Save(ctx, calc)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to save calculation", "userID", userID, "error", err)
		return nil, fmt.Errorf("%w: failed to save calculation: %w", apperrors.ErrInternalServer, err)
	}

	monitoring.RecordCalculationSaved()
	s.logger.InfoContext(ctx, "Calculation saved", "calculationID", saved.ID, "userID", userID)
	return saved, nil
}

func (s *service) ListHistory(ctx context.Context, userID string, limit int) ([]Calculation, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	limit = min(limit, maxHistoryLimit)

	history, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list calculation history", "userID", userID, "error", err)
		return nil, fmt.Errorf("%w: failed to list calculations: %w", apperrors.ErrInternalServer, err)
	}
	return history, nil
}
