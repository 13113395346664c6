package postgres

import (
	"context"
	"credit-engine/internal/domain/amortization"
	"credit-engine/internal/domain/calculator"
	"credit-engine/internal/pkg/apperrors"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

const (
	insertCalculationSQL = `
        INSERT INTO calculator_history (user_id, amount, term, interest_rate, monthly_payment, total_payment, schedule, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
        RETURNING id, created_at`

	selectCalculationsByUserSQL = `
        SELECT id, user_id, amount, term, interest_rate, monthly_payment, total_payment, schedule, created_at
        FROM calculator_history
        WHERE user_id = $1
        ORDER BY created_at DESC, id DESC
        LIMIT $2`
)

type CalculationRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ calculator.Repository = (*CalculationRepository)(nil)

func NewCalculationRepository(db DBPool, logger *slog.Logger) *CalculationRepository {
	return &CalculationRepository{
		db:     db,
		logger: logger.With("component", "CalculationRepository"),
	}
}

func (r *CalculationRepository) Save(ctx context.Context, calc *calculator.Calculation) (saved *calculator.Calculation, err error) {
	start := time.Now()
	defer func() { observe("SaveCalculation", start, err) }()

	var schedule []byte
	if len(calc.Schedule) > 0 {
		schedule, err = json.Marshal(calc.Schedule)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to encode schedule: %w", apperrors.ErrInternalServer, err)
		}
	}

	result := *calc
	err = r.db.QueryRow(ctx, insertCalculationSQL,
		result.UserID, result.Amount, result.TermMonths, result.InterestRate,
		result.MonthlyPayment, result.TotalPayment, schedule,
	).Scan(&result.ID, &result.CreatedAt)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to save calculation", "user_id", calc.UserID, "error", err)
		return nil, translateDBError(err, r.logger)
	}

	r.logger.InfoContext(ctx, "Calculation saved", "calculation_id", result.ID, "user_id", result.UserID)
	return &result, nil
}

func (r *CalculationRepository) ListByUser(ctx context.Context, userID string, limit int) (calcs []calculator.Calculation, err error) {
	start := time.Now()
	defer func() { observe("ListCalculationsByUser", start, err) }()

	rows, err := r.db.Query(ctx, selectCalculationsByUserSQL, userID, limit)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query calculation history", "user_id", userID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	calcs = make([]calculator.Calculation, 0)
	for rows.Next() {
		var (
			c        calculator.Calculation
			schedule []byte
		)
		if err = rows.Scan(&c.ID, &c.UserID, &c.Amount, &c.TermMonths, &c.InterestRate,
			&c.MonthlyPayment, &c.TotalPayment, &schedule, &c.CreatedAt); err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan calculation row", "error", err)
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		if len(schedule) > 0 {
			var entries []amortization.PaymentEntry
			if jsonErr := json.Unmarshal(schedule, &entries); jsonErr != nil {
				r.logger.WarnContext(ctx, "Discarding unreadable stored schedule", "calculation_id", c.ID, "error", jsonErr)
			} else {
				c.Schedule = entries
			}
		}
		calcs = append(calcs, c)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating calculation rows", "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return calcs, nil
}
