// Package storage предоставляет абстракцию blob-хранилища.
//
// Структура:
//   - store.go  — интерфейс ObjectStore и общие типы
//   - fs.go     — хранилище на локальной файловой системе
//   - memory.go — хранилище в памяти (тесты, локальные эксперименты)
//   - s3.go     — S3-совместимое хранилище (MinIO, AWS S3)
//
// Поверх ObjectStore строятся StatusStore (записи runs/<id>/status.json)
// и ResultRegistry (папки result_<N> с артефактами solver'а).
package storage
