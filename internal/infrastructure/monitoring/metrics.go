package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	SchedulesComputed  prometheus.Counter
	ScheduleCache      *prometheus.CounterVec
	CreditRequests     *prometheus.CounterVec
	StatusTransitions  *prometheus.CounterVec
	Scores             prometheus.Histogram
	CalculationsSaved  prometheus.Counter
	StatisticsRecounts *prometheus.CounterVec
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "credit_engine_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Business = BusinessMetrics{
		SchedulesComputed: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "credit_engine_schedules_computed_total",
				Help: "Total number of amortization schedules computed by the engine.",
			},
		),
		ScheduleCache: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credit_engine_schedule_cache_total",
				Help: "Schedule cache lookups by result.",
			},
			[]string{"result"},
		),
		CreditRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credit_engine_credit_requests_total",
				Help: "Credit requests submitted, labelled by scoring decision.",
			},
			[]string{"decision"},
		),
		StatusTransitions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credit_engine_status_transitions_total",
				Help: "Credit request status changes.",
			},
			[]string{"from", "to"},
		),
		Scores: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "credit_engine_credit_score",
				Help:    "Distribution of computed credit scores.",
				Buckets: prometheus.LinearBuckets(0, 10, 11),
			},
		),
		CalculationsSaved: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "credit_engine_calculations_saved_total",
				Help: "Total number of calculations saved to user history.",
			},
		),
		StatisticsRecounts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credit_engine_statistics_recounts_total",
				Help: "Statistics reconciliation runs by outcome.",
			},
			[]string{"status"},
		),
	}
)

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordScheduleComputed() {
	Business.SchedulesComputed.Inc()
}

func RecordScheduleCache(hit bool) {
	if hit {
		Business.ScheduleCache.WithLabelValues("hit").Inc()
		return
	}
	Business.ScheduleCache.WithLabelValues("miss").Inc()
}

func RecordCreditRequest(decision string, score int) {
	Business.CreditRequests.WithLabelValues(decision).Inc()
	Business.Scores.Observe(float64(score))
}

func RecordStatusTransition(from, to string) {
	Business.StatusTransitions.WithLabelValues(from, to).Inc()
}

func RecordCalculationSaved() {
	Business.CalculationsSaved.Inc()
}

func RecordStatisticsRecount(status string) {
	Business.StatisticsRecounts.WithLabelValues(status).Inc()
}
