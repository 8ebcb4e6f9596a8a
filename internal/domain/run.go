package domain

import (
	"time"
)

// Run — запись о состоянии одного запуска оптимизации.
//
// Run создаётся диспетчером при POST /solve и дальше мутируется
// воркером (starting → running → completed/failed), эстиматором
// прогресса (progress) и контроллером остановки (stopped).
//
// Единственный источник истины — StatusStore; все компоненты пишут
// перезаписью целой записи (last-write-wins, без блокировок).
type Run struct {
	// RunID — непрозрачный уникальный идентификатор.
	// Генерируется один раз при submit и не меняется.
	RunID string `json:"run_id"`

	// Status — текущий статус выполнения.
	Status RunStatus `json:"status"`

	// Progress — прогресс 0..100, либо -1 при ошибке.
	// Пока статус нетерминальный, значение монотонно не убывает.
	Progress int `json:"progress"`

	// Message — короткое описание текущей активности.
	Message string `json:"message"`

	// CreatedAt — время создания run. Неизменяемо.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt — время последней записи.
	UpdatedAt time.Time `json:"updated_at"`

	// CompletedAt — время входа в терминальный статус.
	// Устанавливается ровно один раз.
	CompletedAt *time.Time `json:"completed_at"`

	// ResultRef — имя папки результатов (result_<N>).
	// Заполняется только при status=completed.
	ResultRef string `json:"result_ref,omitempty"`

	// Error — текст ошибки. Заполняется только при status=failed.
	Error string `json:"error,omitempty"`
}

// NewRun создаёт run в статусе queued.
func NewRun(runID string) *Run {
	now := time.Now().UTC()
	return &Run{
		RunID:     runID,
		Status:    RunStatusQueued,
		Progress:  0,
		Message:   "Case queued for processing",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsFinished возвращает true, если run завершён (в любом терминальном статусе).
func (r *Run) IsFinished() bool {
	return r.Status.IsTerminal()
}

// Apply применяет переход статуса и помечает время обновления.
// Проверка допустимости перехода делается в lifecycle, не здесь.
func (r *Run) Apply(status RunStatus, progress int, message string) {
	now := time.Now().UTC()
	r.Status = status
	r.Progress = progress
	r.Message = message
	r.UpdatedAt = now

	if status.IsTerminal() && r.CompletedAt == nil {
		r.CompletedAt = &now
	}
}

// MarkCompleted переводит run в completed с указанием папки результатов.
func (r *Run) MarkCompleted(resultRef string) {
	r.ResultRef = resultRef
	r.Apply(RunStatusCompleted, ProgressDone, "Optimization completed successfully")
}

// MarkFailed переводит run в failed с текстом ошибки.
func (r *Run) MarkFailed(errMsg string) {
	r.Error = errMsg
	r.Apply(RunStatusFailed, ProgressFailed, errMsg)
}

// MarkStopped переводит run в stopped.
// Progress сохраняется каким был — клиенту важен только статус.
func (r *Run) MarkStopped() {
	r.Apply(RunStatusStopped, r.Progress, "Stopped by user request")
}
