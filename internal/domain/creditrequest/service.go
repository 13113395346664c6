package creditrequest

import (
	"context"
	"credit-engine/internal/domain/amortization"
	"credit-engine/internal/event"
	"credit-engine/internal/infrastructure/monitoring"
	"credit-engine/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

type Service interface {
	Submit(ctx context.Context, userID string, app Application) (*CreditRequest, error)

	Get(ctx context.Context, id int64) (*CreditRequest, error)

	ListForUser(ctx context.Context, userID string) ([]CreditRequest, error)

	List(ctx context.Context, filter Filter) ([]CreditRequest, error)

	UpdateStatus(ctx context.Context, id int64, status Status) (*CreditRequest, error)

	Statistics(ctx context.Context) (*Statistics, error)
}

type Options struct {
	Limits              amortization.Limits
	AcceptanceThreshold int
	Now                 func() time.Time
}

type service struct {
	repo      Repository
	pub       event.EventPublisher
	limits    amortization.Limits
	threshold int
	now       func() time.Time
	logger    *slog.Logger
}

func NewService(repo Repository, pub event.EventPublisher, opts Options, logger *slog.Logger) Service {
	if opts.AcceptanceThreshold <= 0 {
		opts.AcceptanceThreshold = DefaultAcceptanceThreshold
	}
	if opts.Limits == (amortization.Limits{}) {
		opts.Limits = amortization.DefaultLimits
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if pub == nil {
		pub = event.NewNoopPublisher(logger)
	}
	return &service{
		repo:      repo,
		pub:       pub,
		limits:    opts.Limits,
		threshold: opts.AcceptanceThreshold,
		now:       opts.Now,
		logger:    logger.With("component", "CreditRequestService"),
	}
}

func (s *service) Submit(ctx context.Context, userID string, app Application) (*CreditRequest, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: submitting a credit request requires a user", apperrors.ErrUnauthorized)
	}

	now := s.now()
	if err := app.Validate(s.limits, now); err != nil {
		s.logger.WarnContext(ctx, "Rejected invalid credit application", "userID", userID, "error", err)
		return nil, err
	}

	terms := app.Terms()
	monthly := amortization.MonthlyPayment(terms.Principal, terms.AnnualRatePercent, terms.TermMonths)
	inputs := app.ScoringInputs(now)
	score := inputs.Score()
	passed := score >= s.threshold

	req := &CreditRequest{
		UserID:               userID,
		Status:               StatusPending,
		Amount:               app.Amount,
		TermMonths:           app.TermMonths,
		InterestRate:         app.InterestRate,
		MonthlyPayment:       monthly,
		TotalPayment:         amortization.TotalPayment(monthly, terms.TermMonths),
		FirstName:            app.FirstName,
		LastName:             app.LastName,
		MiddleName:           app.MiddleName,
		BirthDate:            app.BirthDate,
		PassportNumber:       app.PassportNumber,
		PassportIssuedBy:     app.PassportIssuedBy,
		PassportIssuedDate:   app.PassportIssuedDate,
		PassportRegistration: app.PassportRegistration,
		EmploymentType:       inputs.EmploymentType,
		EmployerName:         app.EmployerName,
		JobTitle:             app.JobTitle,
		WorkExperienceMonths: app.WorkExperienceMonths,
		MonthlyIncome:        app.MonthlyIncome,
		Phone:                app.Phone,
		Address:              app.Address,
		HasInsurance:         app.HasInsurance,
		InsuranceProgramID:   app.InsuranceProgramID,
		ScoringResult:        score,
		ScoringPassed:        passed,
	}

	created, err := s.repo.Create(ctx, req)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to save credit request", "userID", userID, "error", err)
		return nil, fmt.Errorf("%w: failed to save credit request: %w", apperrors.ErrInternalServer, err)
	}

	decision := "failed"
	if passed {
		decision = "passed"
	}
	monitoring.RecordCreditRequest(decision, score)
	s.logger.InfoContext(ctx, "Credit request submitted", "creditRequestID", created.ID, "userID", userID, "score", score, "passed", passed)

	pubErr := s.pub.PublishCreditRequestSubmitted(ctx, event.CreditRequestSubmittedEvent{
		CreditRequestID: created.ID,
		UserID:          created.UserID,
		Amount:          created.Amount,
		TermMonths:      created.TermMonths,
		InterestRate:    created.InterestRate,
		MonthlyPayment:  created.MonthlyPayment,
		TotalPayment:    created.TotalPayment,
		ScoringResult:   created.ScoringResult,
		ScoringPassed:   created.ScoringPassed,
		Timestamp:       now,
	})
	if pubErr != nil {
		s.logger.WarnContext(ctx, "Failed to publish credit request submitted event", "creditRequestID", created.ID, "error", pubErr)
	}

	return created, nil
}

func (s *service) Get(ctx context.Context, id int64) (*CreditRequest, error) {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: credit request %d not found", apperrors.ErrNotFound, id)
		}
		s.logger.ErrorContext(ctx, "Failed to get credit request", "creditRequestID", id, "error", err)
		return nil, fmt.Errorf("%w: failed to get credit request %d: %w", apperrors.ErrInternalServer, id, err)
	}
	return req, nil
}

func (s *service) ListForUser(ctx context.Context, userID string) ([]CreditRequest, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	reqs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list credit requests for user", "userID", userID, "error", err)
		return nil, fmt.Errorf("%w: failed to list credit requests: %w", apperrors.ErrInternalServer, err)
	}
	return reqs, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]CreditRequest, error) {
	reqs, err := s.repo.List(ctx, filter.normalized())
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list credit requests", "error", err)
		return nil, fmt.Errorf("%w: failed to list credit requests: %w", apperrors.ErrInternalServer, err)
	}
	return reqs, nil
}

func (s *service) UpdateStatus(ctx context.Context, id int64, status Status) (updated *CreditRequest, err error) {
	if _, err = ParseStatus(string(status)); err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to begin transaction", "error", err)
		return nil, fmt.Errorf("%w: could not begin transaction: %w", apperrors.ErrInternalServer, err)
	}

	defer func() {
		if p := recover(); p != nil {
			s.logger.ErrorContext(ctx, "Panic occurred during status update", "creditRequestID", id, "error", p)
			_ = s.repo.RollbackTx(ctx, tx)
			panic(p)
		} else if err != nil {
			_ = s.repo.RollbackTx(ctx, tx)
		}
	}()

	current, err := s.repo.FindByIDForUpdate(ctx, tx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: credit request %d not found", apperrors.ErrNotFound, id)
		}
		s.logger.ErrorContext(ctx, "Failed to lock credit request", "creditRequestID", id, "error", err)
		return nil, fmt.Errorf("%w: could not load credit request: %w", apperrors.ErrInternalServer, err)
	}

	if err = CheckTransition(current.Status, status); err != nil {
		s.logger.WarnContext(ctx, "Refused status change", "creditRequestID", id, "from", current.Status, "to", status)
		return nil, err
	}

	oldStatus := current.Status
	if err = s.repo.UpdateStatusInTx(ctx, tx, id, status); err != nil {
		s.logger.ErrorContext(ctx, "Failed to update credit request status", "creditRequestID", id, "error", err)
		return nil, fmt.Errorf("%w: could not update status: %w", apperrors.ErrInternalServer, err)
	}

	if delta := DeltaForTransition(oldStatus, status); !delta.IsZero() {
		if err = s.repo.ApplyStatisticsDeltaInTx(ctx, tx, delta); err != nil {
			s.logger.ErrorContext(ctx, "Failed to update statistics", "creditRequestID", id, "error", err)
			return nil, fmt.Errorf("%w: could not update statistics: %w", apperrors.ErrInternalServer, err)
		}
	}

	if err = s.repo.CommitTx(ctx, tx); err != nil {
		s.logger.ErrorContext(ctx, "Failed to commit transaction", "creditRequestID", id, "error", err)
		return nil, fmt.Errorf("%w: could not commit transaction: %w", apperrors.ErrInternalServer, err)
	}

	now := s.now()
	current.Status = status
	current.UpdatedAt = now
	s.logger.InfoContext(ctx, "Credit request status updated", "creditRequestID", id, "from", oldStatus, "to", status)

	if oldStatus != status {
		monitoring.RecordStatusTransition(string(oldStatus), string(status))
		pubErr := s.pub.PublishCreditRequestStatusChanged(ctx, event.CreditRequestStatusChangedEvent{
			CreditRequestID: id,
			UserID:          current.UserID,
			OldStatus:       string(oldStatus),
			NewStatus:       string(status),
			Timestamp:       now,
		})
		if pubErr != nil {
			s.logger.WarnContext(ctx, "Failed to publish status changed event", "creditRequestID", id, "error", pubErr)
		}
	}

	return current, nil
}

func (s *service) Statistics(ctx context.Context) (*Statistics, error) {
	stats, err := s.repo.GetStatistics(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load statistics", "error", err)
		return nil, fmt.Errorf("%w: failed to load statistics: %w", apperrors.ErrInternalServer, err)
	}
	return stats, nil
}
