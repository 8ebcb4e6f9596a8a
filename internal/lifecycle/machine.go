package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shaiso/Rota/internal/domain"
	"github.com/shaiso/Rota/internal/statusstore"
)

// Ошибки lifecycle.
var (
	// ErrRunNotFound — run не найден в status store.
	ErrRunNotFound = errors.New("run not found")
)

// Machine — машина состояний run'а.
//
// Единственная точка, через которую диспетчер, воркер, эстиматор и
// контроллер остановки мутируют статус. Правила:
//
//   - терминальный run не изменяется никогда;
//   - пока run нетерминальный, progress монотонно не убывает;
//   - нарушение правил молча игнорируется (availability важнее
//     строгой согласованности — писатели не координируются).
type Machine struct {
	store  *statusstore.Store
	logger *slog.Logger
}

// New создаёт Machine поверх status store.
func New(store *statusstore.Store, logger *slog.Logger) *Machine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Machine{store: store, logger: logger}
}

// Transition переводит run в новый статус с обновлением прогресса.
//
// Если запись ещё не видна (eventual consistency: воркер может принять
// сообщение раньше, чем запись диспетчера станет читаемой), создаётся
// свежая запись — submit гарантированно был, раз сообщение дошло.
func (m *Machine) Transition(ctx context.Context, runID string, status domain.RunStatus, progress int, message string) error {
	run, err := m.store.Read(ctx, runID)
	if err != nil {
		if !errors.Is(err, statusstore.ErrNotFound) {
			return fmt.Errorf("read run %s: %w", runID, err)
		}
		run = domain.NewRun(runID)
	}

	if run.IsFinished() {
		m.logger.Debug("transition ignored: run is terminal",
			"run_id", runID,
			"current", run.Status,
			"requested", status,
		)
		return nil
	}

	if !status.IsTerminal() && progress < run.Progress {
		m.logger.Debug("transition ignored: progress regression",
			"run_id", runID,
			"current", run.Progress,
			"requested", progress,
		)
		return nil
	}

	run.Apply(status, progress, message)
	return m.store.Write(ctx, run)
}

// Complete переводит run в completed с progress=100 и ссылкой на
// папку результатов. Эта запись — единственная, достигающая 100.
func (m *Machine) Complete(ctx context.Context, runID, resultRef string) error {
	run, err := m.currentOrNew(ctx, runID)
	if err != nil {
		return err
	}
	if run.IsFinished() {
		return nil
	}

	run.MarkCompleted(resultRef)
	return m.store.Write(ctx, run)
}

// Fail переводит run в failed с progress=-1 и текстом ошибки.
func (m *Machine) Fail(ctx context.Context, runID, errMsg string) error {
	run, err := m.currentOrNew(ctx, runID)
	if err != nil {
		return err
	}
	if run.IsFinished() {
		return nil
	}

	run.MarkFailed(errMsg)
	return m.store.Write(ctx, run)
}

// Stop переводит run в stopped. Для неизвестного run возвращает
// ErrRunNotFound — клиент должен получить not_found, а не фантомную
// запись.
func (m *Machine) Stop(ctx context.Context, runID string) (*domain.Run, error) {
	run, err := m.store.Read(ctx, runID)
	if err != nil {
		if errors.Is(err, statusstore.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, fmt.Errorf("read run %s: %w", runID, err)
	}

	if run.IsFinished() {
		return run, nil
	}

	run.MarkStopped()
	if err := m.store.Write(ctx, run); err != nil {
		return nil, err
	}

	return run, nil
}

// currentOrNew читает run, создавая свежую запись при NotFound.
func (m *Machine) currentOrNew(ctx context.Context, runID string) (*domain.Run, error) {
	run, err := m.store.Read(ctx, runID)
	if err != nil {
		if errors.Is(err, statusstore.ErrNotFound) {
			return domain.NewRun(runID), nil
		}
		return nil, fmt.Errorf("read run %s: %w", runID, err)
	}
	return run, nil
}
