package solver

import (
	"context"
	"errors"

	"github.com/shaiso/Rota/internal/domain"
)

// ErrSolver — ошибка решателя (невалидный кейс, недостижимое решение,
// внутренний сбой). Оборачивается конкретной причиной.
var ErrSolver = errors.New("solver error")

// Solver решает задачу составления расписания.
//
// Solve блокирует до завершения или отмены контекста. Отмена контекста
// прерывает решение; частичные результаты не возвращаются.
type Solver interface {
	Solve(ctx context.Context, c *domain.SchedulingCase) (*domain.SolveResult, error)
}
