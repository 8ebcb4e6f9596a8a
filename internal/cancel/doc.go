// Package cancel реализует кооперативную остановку запусков:
// поиск воркера, обрабатывающего запуск, его остановка и перевод
// статуса в stopped. Остановка best-effort: статус записывается
// даже если воркер не найден.
package cancel
