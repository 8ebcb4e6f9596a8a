package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shaiso/Rota/internal/domain"
	"github.com/shaiso/Rota/internal/mq"
	"github.com/shaiso/Rota/internal/statusstore"
)

// ErrRunNotFound — запуск с указанным идентификатором не найден.
var ErrRunNotFound = errors.New("run not found")

// JobPublisher публикует задание в очередь воркеров.
type JobPublisher interface {
	PublishJob(ctx context.Context, job *mq.JobMessage) error
}

// Dispatcher принимает кейсы, создаёт записи статуса и ставит
// задания в очередь.
//
// Submit — точка атомарности: после успешного возврата задание
// гарантированно в очереди и статус queued наблюдаем (из кэша или
// долговременного хранилища).
type Dispatcher struct {
	store     *statusstore.Store
	publisher JobPublisher
	logger    *slog.Logger
}

// New создаёт Dispatcher.
func New(store *statusstore.Store, publisher JobPublisher, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// Submit регистрирует новый запуск и публикует задание.
//
// Отказ долговременной записи статуса не блокирует постановку:
// воркер создаст запись заново при первом переходе. Отказ публикации
// фатален — запуск помечается failed и ошибка возвращается клиенту.
func (d *Dispatcher) Submit(ctx context.Context, c *domain.SchedulingCase) (*domain.Run, error) {
	runID := uuid.NewString()
	run := domain.NewRun(runID)

	// Кэш заполняется до публикации: статус queued виден немедленно,
	// даже если долговременное хранилище отстаёт
	d.store.Seed(run)

	if err := d.store.Write(ctx, run); err != nil {
		d.logger.Warn("failed to write initial status, relying on cache",
			"run_id", runID,
			"error", err,
		)
	}

	job := &mq.JobMessage{
		RunID:     runID,
		Case:      c,
		CreatedAt: time.Now().UTC(),
	}

	if err := d.publisher.PublishJob(ctx, job); err != nil {
		d.logger.Error("failed to publish job", "run_id", runID, "error", err)

		run.MarkFailed(fmt.Sprintf("failed to enqueue job: %v", err))
		if werr := d.store.Write(ctx, run); werr != nil {
			d.logger.Error("failed to mark run failed", "run_id", runID, "error", werr)
		}

		return nil, fmt.Errorf("publish job: %w", err)
	}

	d.logger.Info("run submitted", "run_id", runID)

	return run, nil
}

// Status возвращает текущий статус запуска.
func (d *Dispatcher) Status(ctx context.Context, runID string) (*domain.Run, error) {
	run, err := d.store.Read(ctx, runID)
	if err != nil {
		if errors.Is(err, statusstore.ErrNotFound) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("read status: %w", err)
	}

	return run, nil
}
