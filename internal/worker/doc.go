// Package worker выполняет задания решателя: ведёт жизненный цикл
// запуска, запускает оценку прогресса, сохраняет артефакты результата
// и гарантирует ровно одну терминальную запись статуса на попытку.
package worker
