package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shaiso/Rota/internal/domain"
	"github.com/shaiso/Rota/internal/lifecycle"
	"github.com/shaiso/Rota/internal/mq"
	"github.com/shaiso/Rota/internal/progress"
	"github.com/shaiso/Rota/internal/registry"
	"github.com/shaiso/Rota/internal/solver"
	"github.com/shaiso/Rota/internal/telemetry"
)

// defaultExpectedSeconds — ожидаемая длительность решения,
// если кейс не задаёт constants.solver.max_time_in_seconds.
const defaultExpectedSeconds = 300

// Runner обрабатывает задания решателя из очереди.
//
// Каждое задание проходит полный жизненный цикл: starting → running
// (с оценкой прогресса) → ровно одна терминальная запись (completed
// или failed). Подтверждение сообщения происходит только после
// успешной терминальной записи — при сбое записи сообщение
// возвращается в очередь для повторной доставки.
type Runner struct {
	machine  *lifecycle.Machine
	solver   solver.Solver
	registry *registry.Registry
	logger   *slog.Logger

	// singleRun — завершить работу после первого задания.
	// Используется в режиме «один контейнер — один запуск».
	singleRun bool
	done      chan struct{}
	doneOnce  sync.Once
}

// Config — конфигурация Runner.
type Config struct {
	Machine   *lifecycle.Machine
	Solver    solver.Solver
	Registry  *registry.Registry
	Logger    *slog.Logger
	SingleRun bool
}

// NewRunner создаёт Runner.
func NewRunner(cfg Config) *Runner {
	return &Runner{
		machine:   cfg.Machine,
		solver:    cfg.Solver,
		registry:  cfg.Registry,
		logger:    cfg.Logger,
		singleRun: cfg.SingleRun,
		done:      make(chan struct{}),
	}
}

// Done закрывается после обработки задания в режиме singleRun.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// HandleJob — обработчик для mq.Consumer.
//
// Возвращает ошибку только если терминальная запись статуса не
// удалась: в этом случае задание вернётся в очередь. Ошибка самого
// решателя терминальна (запуск помечен failed) и повторения не
// требует.
func (r *Runner) HandleJob(ctx context.Context, job *mq.JobMessage) error {
	err := r.Process(ctx, job)

	if r.singleRun {
		r.doneOnce.Do(func() { close(r.done) })
	}

	return err
}

// Process выполняет одно задание от начала до терминальной записи.
func (r *Runner) Process(ctx context.Context, job *mq.JobMessage) error {
	logger := telemetry.WithRunID(r.logger, job.RunID)

	if err := r.machine.Transition(ctx, job.RunID, domain.RunStatusStarting, 0, "Worker picked up case"); err != nil {
		logger.Warn("failed to record starting status", "error", err)
	}

	expected := job.Case.ExpectedDurationSeconds(defaultExpectedSeconds)
	est := progress.NewEstimator(r.machine, job.RunID, expected, logger)
	est.Start(ctx)
	defer est.Stop()

	start := time.Now()
	result, solveErr := r.solver.Solve(ctx, job.Case)
	elapsed := time.Since(start)

	// Оценщик останавливается до терминальной записи, чтобы
	// запоздалый тик не конкурировал с ней
	est.Stop()

	if solveErr != nil {
		// Отмена контекста — это остановка самого воркера, а не ошибка
		// solver'а: запись остаётся нетерминальной, сообщение вернётся
		// в очередь и свежий воркер продолжит run
		if ctx.Err() != nil {
			logger.Warn("solve interrupted by shutdown, leaving run for redelivery",
				"duration", elapsed,
			)
			return ctx.Err()
		}

		logger.Error("solve failed", "error", solveErr, "duration", elapsed)

		if err := r.machine.Fail(ctx, job.RunID, solveErr.Error()); err != nil {
			return fmt.Errorf("record failure: %w", err)
		}
		telemetry.RunsFailed.Inc()
		return nil
	}

	folder, num, err := r.publishResult(ctx, job, result, elapsed)
	if err != nil {
		logger.Error("failed to publish result", "error", err)

		if ferr := r.machine.Fail(ctx, job.RunID, fmt.Sprintf("failed to store result: %v", err)); ferr != nil {
			return fmt.Errorf("record failure: %w", ferr)
		}
		telemetry.RunsFailed.Inc()
		return nil
	}

	if err := r.machine.Complete(ctx, job.RunID, folder); err != nil {
		return fmt.Errorf("record completion: %w", err)
	}

	telemetry.RunsCompleted.Inc()
	telemetry.SolveDuration.Observe(elapsed.Seconds())

	logger.Info("run completed",
		"folder", folder,
		"result_number", num,
		"duration", elapsed,
		"solutions", len(result.Tables),
	)

	return nil
}

// publishResult сохраняет артефакты решения в новую папку результата.
func (r *Runner) publishResult(ctx context.Context, job *mq.JobMessage, result *domain.SolveResult, elapsed time.Duration) (string, int, error) {
	folder, num, err := r.registry.NextFolder(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("allocate folder: %w", err)
	}

	files, solutions, err := buildArtifacts(job.Case, result)
	if err != nil {
		return "", 0, fmt.Errorf("build artifacts: %w", err)
	}

	meta := &domain.ResultMeta{
		RunID:          job.RunID,
		CreatedAt:      time.Now().UTC(),
		SolutionsCount: len(solutions),
		FolderName:     folder,
		ResultNumber:   num,
		RuntimeSeconds: elapsed.Seconds(),
	}

	if err := r.registry.Upload(ctx, folder, files, meta); err != nil {
		return "", 0, fmt.Errorf("upload: %w", err)
	}

	return folder, num, nil
}
