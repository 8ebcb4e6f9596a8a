package statusstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shaiso/Rota/internal/domain"
	"github.com/shaiso/Rota/internal/storage"
)

// Ошибки status store.
var (
	// ErrNotFound — run не найден ни в хранилище, ни в локальном кэше.
	ErrNotFound = errors.New("run not found")
)

// statusKey возвращает ключ записи статуса в ObjectStore.
func statusKey(runID string) string {
	return fmt.Sprintf("runs/%s/status.json", runID)
}

// Store — durable-хранилище записей о run'ах.
//
// Источник истины — ObjectStore (runs/<id>/status.json). Локальный кэш
// закрывает окно между submit и первой durable-записью: из-за eventual
// consistency клиент может успеть спросить статус раньше, чем запись
// станет видимой. Как только durable-запись читается, кэш не участвует.
type Store struct {
	objects storage.ObjectStore
	cache   *localCache
	logger  *slog.Logger
}

// New создаёт Store поверх ObjectStore.
func New(objects storage.ObjectStore, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		objects: objects,
		cache:   newLocalCache(defaultCacheSize),
		logger:  logger,
	}
}

// Write сохраняет запись run перезаписью (last-write-wins).
func (s *Store) Write(ctx context.Context, run *domain.Run) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshal status: %w", err)
	}

	if err := s.objects.Put(ctx, statusKey(run.RunID), data, "application/json"); err != nil {
		return fmt.Errorf("write status %s: %w", run.RunID, err)
	}

	s.logger.Debug("status written",
		"run_id", run.RunID,
		"status", run.Status,
		"progress", run.Progress,
	)

	return nil
}

// Read возвращает запись run.
//
// Сначала durable-хранилище; при его NotFound — локальный кэш.
// Если записи нет нигде — ErrNotFound.
func (s *Store) Read(ctx context.Context, runID string) (*domain.Run, error) {
	data, err := s.objects.Get(ctx, statusKey(runID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			if run, ok := s.cache.get(runID); ok {
				s.logger.Debug("status served from local cache", "run_id", runID)
				return run, nil
			}
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, fmt.Errorf("read status %s: %w", runID, err)
	}

	var run domain.Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("unmarshal status %s: %w", runID, err)
	}

	return &run, nil
}

// Seed кладёт свежесозданный run в локальный кэш.
// Вызывается диспетчером при submit, до того как durable-запись
// станет видимой.
func (s *Store) Seed(run *domain.Run) {
	s.cache.put(run)
}
