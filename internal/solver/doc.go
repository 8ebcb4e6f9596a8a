// Package solver определяет интерфейс решателя расписаний и
// HTTP-клиент к внешнему solver-сервису.
package solver
