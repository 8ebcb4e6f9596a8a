package cancel

import (
	"context"
	"log/slog"
	"time"

	"github.com/shaiso/Rota/internal/domain"
	"github.com/shaiso/Rota/internal/lifecycle"
	"github.com/shaiso/Rota/internal/telemetry"
)

// WorkerProc — работающий экземпляр воркера, найденный локатором.
type WorkerProc struct {
	// ID — идентификатор процесса (container id).
	ID string

	// RunID — запуск, который обрабатывает воркер.
	RunID string

	// StartedAt — время запуска воркера.
	StartedAt time.Time
}

// Locator перечисляет и останавливает работающие воркеры.
type Locator interface {
	List(ctx context.Context) ([]WorkerProc, error)
	Stop(ctx context.Context, id string) error
}

// Controller реализует кооперативную остановку запуска.
//
// Остановка best-effort: статус stopped записывается всегда, даже
// если воркер не найден или перечисление не удалось. Потерянный
// воркер доработает впустую, но клиент увидит консистентный статус.
type Controller struct {
	machine *lifecycle.Machine
	locator Locator
	logger  *slog.Logger
}

// NewController создаёт Controller.
func NewController(machine *lifecycle.Machine, locator Locator, logger *slog.Logger) *Controller {
	return &Controller{
		machine: machine,
		locator: locator,
		logger:  logger,
	}
}

// StopRun останавливает запуск: находит обрабатывающий его воркер,
// посылает ему сигнал остановки и помечает запуск stopped.
//
// Возвращает lifecycle.ErrRunNotFound, если запуск неизвестен.
// Для уже терминального запуска возвращает его без изменений.
func (c *Controller) StopRun(ctx context.Context, runID string) (*domain.Run, error) {
	logger := telemetry.WithRunID(c.logger, runID)

	workers, err := c.locator.List(ctx)
	if err != nil {
		// Перечисление упало — воркер не остановим, но статус
		// всё равно переводим: деградированный успех
		logger.Warn("failed to list workers, marking stopped anyway", "error", err)
		workers = nil
	}

	stopped := false
	for _, w := range workers {
		if w.RunID != runID {
			continue
		}

		logger.Info("stopping worker", "worker_id", w.ID)
		if err := c.locator.Stop(ctx, w.ID); err != nil {
			logger.Warn("failed to stop worker", "worker_id", w.ID, "error", err)
			continue
		}
		stopped = true
	}

	if !stopped {
		logger.Info("no running worker found for run")
	}

	run, err := c.machine.Stop(ctx, runID)
	if err != nil {
		return nil, err
	}

	if run.Status == domain.RunStatusStopped {
		telemetry.RunsStopped.Inc()
	}

	return run, nil
}
