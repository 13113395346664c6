package postgres

import (
	"context"
	"credit-engine/internal/domain/creditrequest"
	"credit-engine/internal/domain/scoring"
	"credit-engine/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
)

const creditRequestColumns = `id, user_id, status, amount, term, interest_rate, monthly_payment, total_payment,
        first_name, last_name, middle_name, birth_date, passport_number, passport_issued_by, passport_issued_date, passport_registration,
        employment_type, employer_name, job_title, work_experience, monthly_income,
        phone, address, has_insurance, insurance_program_id, scoring_result, scoring_passed, created_at, updated_at`

const (
	insertCreditRequestSQL = `
        INSERT INTO credit_requests (user_id, status, amount, term, interest_rate, monthly_payment, total_payment,
        first_name, last_name, middle_name, birth_date, passport_number, passport_issued_by, passport_issued_date, passport_registration,
        employment_type, employer_name, job_title, work_experience, monthly_income,
        phone, address, has_insurance, insurance_program_id, scoring_result, scoring_passed, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	incrementTotalRequestsSQL = `
        INSERT INTO statistics (id, total_requests, approved_requests, rejected_requests, updated_at)
        VALUES (1, 1, 0, 0, NOW())
        ON CONFLICT (id) DO UPDATE SET total_requests = statistics.total_requests + 1, updated_at = NOW()`

	selectCreditRequestByIDSQL = `SELECT ` + creditRequestColumns + `
        FROM credit_requests
        WHERE id = $1`

	selectCreditRequestForUpdateSQL = selectCreditRequestByIDSQL + `
        FOR UPDATE`

	selectCreditRequestsByUserSQL = `SELECT ` + creditRequestColumns + `
        FROM credit_requests
        WHERE user_id = $1
        ORDER BY created_at DESC, id DESC`

	selectCreditRequestsSQL = `SELECT ` + creditRequestColumns + `
        FROM credit_requests
        WHERE ($1::text IS NULL OR status = $1)
        ORDER BY created_at DESC, id DESC
        LIMIT $2 OFFSET $3`

	updateCreditRequestStatusSQL = `UPDATE credit_requests SET status = $1, updated_at = NOW() WHERE id = $2`

	applyStatisticsDeltaSQL = `
        UPDATE statistics
        SET approved_requests = approved_requests + $1,
            rejected_requests = rejected_requests + $2,
            updated_at = NOW()
        WHERE id = 1`

	selectStatisticsSQL = `SELECT total_requests, approved_requests, rejected_requests, updated_at FROM statistics WHERE id = 1`

	countStatisticsSQL = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status = 'APPROVED'),
               COUNT(*) FILTER (WHERE status = 'REJECTED')
        FROM credit_requests`

	ensureStatisticsRowSQL = `
        INSERT INTO statistics (id, total_requests, approved_requests, rejected_requests, updated_at)
        VALUES (1, 0, 0, 0, NOW())
        ON CONFLICT (id) DO NOTHING`

	lockStatisticsSQL = selectStatisticsSQL + ` FOR UPDATE`

	overwriteStatisticsSQL = `
        UPDATE statistics
        SET total_requests = $1,
            approved_requests = $2,
            rejected_requests = $3,
            updated_at = NOW()
        WHERE id = 1`
)

type CreditRequestRepository struct {
	txManager
	db     DBPool
	logger *slog.Logger
}

var (
	_ creditrequest.Repository      = (*CreditRequestRepository)(nil)
	_ creditrequest.StatisticsStore = (*CreditRequestRepository)(nil)
)

func NewCreditRequestRepository(db DBPool, logger *slog.Logger) *CreditRequestRepository {
	logger = logger.With("component", "CreditRequestRepository")
	return &CreditRequestRepository{
		txManager: txManager{db: db, logger: logger},
		db:        db,
		logger:    logger,
	}
}

func (r *CreditRequestRepository) Create(ctx context.Context, req *creditrequest.CreditRequest) (created *creditrequest.CreditRequest, err error) {
	start := time.Now()
	defer func() { observe("CreateCreditRequest", start, err) }()

	tx, err := r.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = r.RollbackTx(ctx, tx)
		}
	}()

	result := *req
	err = tx.QueryRow(ctx, insertCreditRequestSQL,
		result.UserID, string(result.Status), result.Amount, result.TermMonths, result.InterestRate,
		result.MonthlyPayment, result.TotalPayment,
		result.FirstName, result.LastName, result.MiddleName, result.BirthDate,
		result.PassportNumber, result.PassportIssuedBy, result.PassportIssuedDate, result.PassportRegistration,
		string(result.EmploymentType), result.EmployerName, result.JobTitle, result.WorkExperienceMonths, result.MonthlyIncome,
		result.Phone, result.Address, result.HasInsurance, result.InsuranceProgramID,
		result.ScoringResult, result.ScoringPassed,
	).Scan(&result.ID, &result.CreatedAt, &result.UpdatedAt)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert credit request", "error", err)
		return nil, translateDBError(err, r.logger)
	}

	if _, err = tx.Exec(ctx, incrementTotalRequestsSQL); err != nil {
		r.logger.ErrorContext(ctx, "Failed to increment total requests", "error", err)
		return nil, fmt.Errorf("%w: failed to update statistics: %w", apperrors.ErrDatabase, err)
	}

	if err = r.CommitTx(ctx, tx); err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "Credit request created in DB", "credit_request_id", result.ID)
	return &result, nil
}

func (r *CreditRequestRepository) GetByID(ctx context.Context, id int64) (req *creditrequest.CreditRequest, err error) {
	start := time.Now()
	defer func() { observe("GetCreditRequestByID", start, err) }()

	req, err = scanCreditRequest(r.db.QueryRow(ctx, selectCreditRequestByIDSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Credit request not found", "credit_request_id", id)
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get credit request by ID", "credit_request_id", id, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return req, nil
}

func (r *CreditRequestRepository) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*creditrequest.CreditRequest, error) {
	req, err := scanCreditRequest(tx.QueryRow(ctx, selectCreditRequestForUpdateSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.InfoContext(ctx, "No credit request found for update", "credit_request_id", id)
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to find/lock credit request", "credit_request_id", id, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return req, nil
}

func (r *CreditRequestRepository) ListByUser(ctx context.Context, userID string) (reqs []creditrequest.CreditRequest, err error) {
	start := time.Now()
	defer func() { observe("ListCreditRequestsByUser", start, err) }()

	rows, err := r.db.Query(ctx, selectCreditRequestsByUserSQL, userID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query credit requests for user", "user_id", userID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return r.collect(ctx, rows)
}

func (r *CreditRequestRepository) List(ctx context.Context, filter creditrequest.Filter) (reqs []creditrequest.CreditRequest, err error) {
	start := time.Now()
	defer func() { observe("ListCreditRequests", start, err) }()

	var status *string
	if filter.Status != nil {
		s := string(*filter.Status)
		status = &s
	}

	rows, err := r.db.Query(ctx, selectCreditRequestsSQL, status, filter.Limit, filter.Offset)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query credit requests", "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return r.collect(ctx, rows)
}

func (r *CreditRequestRepository) collect(ctx context.Context, rows pgx.Rows) ([]creditrequest.CreditRequest, error) {
	defer rows.Close()

	reqs := make([]creditrequest.CreditRequest, 0)
	for rows.Next() {
		req, err := scanCreditRequest(rows)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan credit request row", "error", err)
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		reqs = append(reqs, *req)
	}

	if err := rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating credit request rows", "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return reqs, nil
}

func (r *CreditRequestRepository) UpdateStatusInTx(ctx context.Context, tx pgx.Tx, id int64, status creditrequest.Status) error {
	cmdTag, err := tx.Exec(ctx, updateCreditRequestStatusSQL, string(status), id)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update credit request status", "credit_request_id", id, "status", status, "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() != 1 {
		r.logger.ErrorContext(ctx, "Credit request status update affected zero rows", "credit_request_id", id)
		return fmt.Errorf("%w: credit request status update affected zero rows", apperrors.ErrDatabase)
	}
	return nil
}

func (r *CreditRequestRepository) ApplyStatisticsDeltaInTx(ctx context.Context, tx pgx.Tx, delta creditrequest.StatisticsDelta) error {
	cmdTag, err := tx.Exec(ctx, applyStatisticsDeltaSQL, delta.Approved, delta.Rejected)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to apply statistics delta", "approved", delta.Approved, "rejected", delta.Rejected, "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() != 1 {
		r.logger.ErrorContext(ctx, "Statistics row is missing")
		return fmt.Errorf("%w: statistics row is missing", apperrors.ErrDatabase)
	}
	return nil
}

// GetStatistics returns zero counters before the first request is stored.
func (r *CreditRequestRepository) GetStatistics(ctx context.Context) (stats *creditrequest.Statistics, err error) {
	start := time.Now()
	defer func() { observe("GetStatistics", start, err) }()

	var s creditrequest.Statistics
	err = r.db.QueryRow(ctx, selectStatisticsSQL).Scan(&s.TotalRequests, &s.ApprovedRequests, &s.RejectedRequests, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return &creditrequest.Statistics{}, nil
	}
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to read statistics", "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return &s, nil
}

// ReconcileStatistics takes the row lock before counting. Writers that
// already touched the counters commit first and are counted; writers that
// have not yet touched them wait and apply their delta on top of the repair.
func (r *CreditRequestRepository) ReconcileStatistics(ctx context.Context) (stored, counted *creditrequest.Statistics, err error) {
	start := time.Now()
	defer func() { observe("ReconcileStatistics", start, err) }()

	tx, err := r.BeginTx(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err != nil {
			_ = r.RollbackTx(ctx, tx)
		}
	}()

	if _, err = tx.Exec(ctx, ensureStatisticsRowSQL); err != nil {
		r.logger.ErrorContext(ctx, "Failed to ensure statistics row", "error", err)
		return nil, nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	var before creditrequest.Statistics
	err = tx.QueryRow(ctx, lockStatisticsSQL).Scan(&before.TotalRequests, &before.ApprovedRequests, &before.RejectedRequests, &before.UpdatedAt)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to lock statistics", "error", err)
		return nil, nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	var actual creditrequest.Statistics
	if err = tx.QueryRow(ctx, countStatisticsSQL).Scan(&actual.TotalRequests, &actual.ApprovedRequests, &actual.RejectedRequests); err != nil {
		r.logger.ErrorContext(ctx, "Failed to count credit requests", "error", err)
		return nil, nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	if !before.Equal(actual) {
		if _, err = tx.Exec(ctx, overwriteStatisticsSQL, actual.TotalRequests, actual.ApprovedRequests, actual.RejectedRequests); err != nil {
			r.logger.ErrorContext(ctx, "Failed to overwrite statistics", "error", err)
			return nil, nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
	}

	if err = r.CommitTx(ctx, tx); err != nil {
		return nil, nil, err
	}
	return &before, &actual, nil
}

func scanCreditRequest(row scanner) (*creditrequest.CreditRequest, error) {
	var (
		req            creditrequest.CreditRequest
		status         string
		employmentType string
	)
	err := row.Scan(
		&req.ID, &req.UserID, &status, &req.Amount, &req.TermMonths, &req.InterestRate, &req.MonthlyPayment, &req.TotalPayment,
		&req.FirstName, &req.LastName, &req.MiddleName, &req.BirthDate,
		&req.PassportNumber, &req.PassportIssuedBy, &req.PassportIssuedDate, &req.PassportRegistration,
		&employmentType, &req.EmployerName, &req.JobTitle, &req.WorkExperienceMonths, &req.MonthlyIncome,
		&req.Phone, &req.Address, &req.HasInsurance, &req.InsuranceProgramID,
		&req.ScoringResult, &req.ScoringPassed, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	req.Status = creditrequest.Status(status)
	req.EmploymentType = scoring.EmploymentType(employmentType)
	return &req, nil
}
