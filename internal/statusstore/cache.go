package statusstore

import (
	"sync"

	"github.com/shaiso/Rota/internal/domain"
)

// defaultCacheSize — максимум записей в локальном кэше.
// Кэш живёт только от submit до первой видимой durable-записи,
// поэтому маленького ограничения достаточно.
const defaultCacheSize = 1024

// localCache — ограниченный по размеру кэш записей run.
// Вытеснение FIFO: при переполнении удаляется самая старая запись.
type localCache struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]*domain.Run
	order   []string
}

func newLocalCache(maxSize int) *localCache {
	return &localCache{
		maxSize: maxSize,
		entries: make(map[string]*domain.Run),
	}
}

func (c *localCache) put(run *domain.Run) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cp := *run
	if _, exists := c.entries[run.RunID]; !exists {
		c.order = append(c.order, run.RunID)
	}
	c.entries[run.RunID] = &cp

	for len(c.order) > c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

func (c *localCache) get(runID string) (*domain.Run, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	run, ok := c.entries[runID]
	if !ok {
		return nil, false
	}
	cp := *run
	return &cp, true
}
