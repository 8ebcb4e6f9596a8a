package storage

import (
	"context"
	"errors"
	"time"
)

// Общие ошибки хранилища.
var (
	// ErrNotFound — объект не найден по ключу.
	ErrNotFound = errors.New("object not found")
)

// ObjectInfo — описание объекта в хранилище.
type ObjectInfo struct {
	// Key — полный ключ объекта ("result_3/metadata.json").
	Key string

	// Size — размер в байтах.
	Size int64

	// ContentType — MIME-тип, если бэкенд его хранит.
	ContentType string

	// LastModified — время последней записи.
	LastModified time.Time
}

// ObjectStore — абстракция key-value blob-хранилища.
//
// Контракт консистентности: запись видна чтениям "скоро"
// (eventual read-after-write); вызывающий код не должен полагаться
// на немедленную видимость. Реализации: FSStore (локальная файловая
// система), MemoryStore (тесты), S3Store (S3-совместимое хранилище).
type ObjectStore interface {
	// Put записывает объект с перезаписью существующего.
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// Get возвращает содержимое объекта или ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// List возвращает объекты, ключи которых начинаются с prefix.
	// Пустой prefix — все объекты.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)

	// Delete удаляет объект. Удаление отсутствующего ключа — не ошибка.
	Delete(ctx context.Context, key string) error
}
