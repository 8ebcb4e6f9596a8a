package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики жизненного цикла запусков. Инкрементируются воркером
// и диспетчером, экспортируются на /metrics каждого сервиса.
var (
	// RunsSubmitted — количество принятых запусков.
	RunsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rota_runs_submitted_total",
		Help: "Total solver runs submitted",
	})

	// RunsCompleted — количество успешно завершённых запусков.
	RunsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rota_runs_completed_total",
		Help: "Total solver runs completed successfully",
	})

	// RunsFailed — количество запусков, завершившихся ошибкой.
	RunsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rota_runs_failed_total",
		Help: "Total solver runs failed",
	})

	// RunsStopped — количество остановленных запусков.
	RunsStopped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rota_runs_stopped_total",
		Help: "Total solver runs stopped by request",
	})

	// SolveDuration — время решения в секундах.
	SolveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rota_solve_duration_seconds",
		Help:    "Wall-clock duration of solver runs",
		Buckets: prometheus.ExponentialBuckets(1, 2, 14),
	})
)
