package batch

import (
	"context"
	"credit-engine/internal/domain/creditrequest"
	"credit-engine/internal/infrastructure/monitoring"
	"fmt"
	"log/slog"
	"time"
)

const (
	recountInSync   = "in_sync"
	recountRepaired = "repaired"
	recountFailed   = "failed"
)

// StatisticsReconcileJob recounts credit request totals and repairs the
// stored counters when they drifted.
type StatisticsReconcileJob struct {
	store  creditrequest.StatisticsStore
	logger *slog.Logger
}

func NewStatisticsReconcileJob(store creditrequest.StatisticsStore, logger *slog.Logger) *StatisticsReconcileJob {
	if store == nil || logger == nil {
		panic("StatisticsReconcileJob dependencies cannot be nil")
	}
	return &StatisticsReconcileJob{
		store:  store,
		logger: logger.With("job", "StatisticsReconcile"),
	}
}

func (j *StatisticsReconcileJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting statistics reconciliation job.")

	stored, counted, err := j.store.ReconcileStatistics(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to reconcile statistics, aborting job.", slog.Any("error", err))
		monitoring.RecordStatisticsRecount(recountFailed)
		return fmt.Errorf("cannot run job, failed to reconcile statistics: %w", err)
	}

	summaryLog := j.logger.With(
		slog.Int64("stored_total", stored.TotalRequests),
		slog.Int64("stored_approved", stored.ApprovedRequests),
		slog.Int64("stored_rejected", stored.RejectedRequests),
		slog.Int64("counted_total", counted.TotalRequests),
		slog.Int64("counted_approved", counted.ApprovedRequests),
		slog.Int64("counted_rejected", counted.RejectedRequests),
		slog.Duration("duration", time.Since(startTime)),
	)

	if stored.Equal(*counted) {
		monitoring.RecordStatisticsRecount(recountInSync)
		summaryLog.InfoContext(ctx, "Statistics reconciliation job finished, counters already in sync.")
		return nil
	}

	monitoring.RecordStatisticsRecount(recountRepaired)
	summaryLog.WarnContext(ctx, "Statistics reconciliation job finished, drifted counters were overwritten.")
	return nil
}
