package domain

// RunStatus — статус выполнения run.
//
// Жизненный цикл:
//
//	queued → starting → running → completed
//	                            ↘ failed
//	(или) → stopped (из любого нетерминального статуса)
type RunStatus string

const (
	// RunStatusQueued — run поставлен в очередь, ожидает воркера.
	RunStatusQueued RunStatus = "queued"

	// RunStatusStarting — воркер принял сообщение и готовит solver.
	RunStatusStarting RunStatus = "starting"

	// RunStatusRunning — solver выполняется.
	RunStatusRunning RunStatus = "running"

	// RunStatusCompleted — run успешно завершён, результаты загружены.
	RunStatusCompleted RunStatus = "completed"

	// RunStatusFailed — run завершился с ошибкой.
	RunStatusFailed RunStatus = "failed"

	// RunStatusStopped — run остановлен пользователем.
	RunStatusStopped RunStatus = "stopped"
)

// IsTerminal возвращает true, если статус финальный (run завершён).
// После терминального статуса запись run больше не изменяется.
func (s RunStatus) IsTerminal() bool {
	switch s {
	case RunStatusCompleted, RunStatusFailed, RunStatusStopped:
		return true
	default:
		return false
	}
}

// Значения progress с особым смыслом.
const (
	// ProgressFailed — progress при ошибке.
	ProgressFailed = -1

	// ProgressDone — progress при успешном завершении.
	// Достигается только финальной записью воркера, никогда эстиматором.
	ProgressDone = 100
)
