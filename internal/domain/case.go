package domain

// SchedulingCase — входной документ для solver'а.
//
// Структура соответствует формату, который принимает внешний
// optimization-сервис. Для оркестрации содержимое непрозрачно,
// кроме пары мест: списка смен/врачей (для нормализации решений)
// и constants.solver.max_time_in_seconds (оценка длительности).
type SchedulingCase struct {
	// Constants — настройки solver'а (max_time_in_seconds, num_threads и т.д.).
	Constants map[string]any `json:"constants"`

	// Calendar — календарь периода планирования.
	Calendar map[string]any `json:"calendar"`

	// Shifts — список смен, которые нужно покрыть.
	Shifts []Shift `json:"shifts"`

	// Providers — список врачей с их ограничениями.
	Providers []Provider `json:"providers"`

	// Run — параметры запуска (количество решений k и т.д.).
	Run map[string]any `json:"run,omitempty"`
}

// Shift — одна смена в расписании.
type Shift struct {
	ID    string `json:"id"`
	Date  string `json:"date"`
	Type  string `json:"type,omitempty"`
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// Provider — врач/сотрудник, которому назначаются смены.
// Ограничения (days_off, days_on и прочее) использует только solver,
// поэтому здесь они сохраняются как есть.
type Provider struct {
	Name    string         `json:"name"`
	DaysOff []map[string]any `json:"days_off,omitempty"`
	DaysOn  []map[string]any `json:"days_on,omitempty"`
}

// ExpectedDurationSeconds возвращает оценку длительности решения
// из constants.solver.max_time_in_seconds. Используется эстиматором
// прогресса. Если оценки нет — defaultSec.
func (c *SchedulingCase) ExpectedDurationSeconds(defaultSec int) int {
	solverCfg, ok := c.Constants["solver"].(map[string]any)
	if !ok {
		return defaultSec
	}

	// JSON числа декодируются как float64
	switch v := solverCfg["max_time_in_seconds"].(type) {
	case float64:
		if v > 0 {
			return int(v)
		}
	case int:
		if v > 0 {
			return v
		}
	}

	return defaultSec
}
