package creditrequest

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type Repository interface {
	// Create stores the request and bumps the total counter atomically.
	Create(ctx context.Context, req *CreditRequest) (*CreditRequest, error)

	GetByID(ctx context.Context, id int64) (*CreditRequest, error)

	ListByUser(ctx context.Context, userID string) ([]CreditRequest, error)

	List(ctx context.Context, filter Filter) ([]CreditRequest, error)

	FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*CreditRequest, error)

	UpdateStatusInTx(ctx context.Context, tx pgx.Tx, id int64, status Status) error

	ApplyStatisticsDeltaInTx(ctx context.Context, tx pgx.Tx, delta StatisticsDelta) error

	GetStatistics(ctx context.Context) (*Statistics, error)

	BeginTx(ctx context.Context) (pgx.Tx, error)

	CommitTx(ctx context.Context, tx pgx.Tx) error

	RollbackTx(ctx context.Context, tx pgx.Tx) error
}

// StatisticsStore is the narrow view used by reconciliation.
type StatisticsStore interface {
	// ReconcileStatistics recounts credit requests while holding the lock on
	// the stored counters and overwrites them when they differ. It returns the
	// counters as stored before the repair and as counted.
	ReconcileStatistics(ctx context.Context) (stored, counted *Statistics, err error)
}
