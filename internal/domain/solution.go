package domain

// SolutionTable — одна таблица решения, как её возвращает solver.
//
// Assignment хранит пары индексов (shift, provider) в координатах
// списков Shifts и Providers этой таблицы. Нормализацию в удобный
// для клиента вид делает воркер (см. Normalize).
type SolutionTable struct {
	// Assignment — пары [индекс смены, индекс врача].
	Assignment [][2]int `json:"assignment"`

	// Shifts — смены в порядке индексации Assignment.
	Shifts []Shift `json:"shifts"`

	// Providers — врачи в порядке индексации Assignment.
	Providers []Provider `json:"providers"`
}

// TableStats — статистика solver'а по одной таблице.
type TableStats struct {
	Objective float64 `json:"objective"`
	WallTimeS float64 `json:"wall_time_s,omitempty"`
}

// SolveMeta — метаданные результата solver'а.
type SolveMeta struct {
	// PerTable — статистика по каждой таблице (индексы совпадают с Tables).
	PerTable []TableStats `json:"per_table,omitempty"`

	// SolverStats — сырая статистика solver'а (конфликты, ветвления и т.д.).
	SolverStats map[string]any `json:"solver_stats,omitempty"`

	// RuntimeSeconds — полное время решения.
	RuntimeSeconds float64 `json:"runtime_seconds,omitempty"`
}

// SolveResult — полный ответ solver'а: таблицы решений плюс метаданные.
type SolveResult struct {
	Tables []SolutionTable `json:"tables"`
	Meta   SolveMeta       `json:"meta"`
}

// Assignment — нормализованное назначение: врач на смену.
type Assignment struct {
	ShiftID      string `json:"shift_id"`
	ProviderName string `json:"provider_name"`
	Date         string `json:"date"`
	ShiftType    string `json:"shift_type"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
}

// Solution — нормализованное решение: список назначений и значение цели.
type Solution struct {
	Assignments    []Assignment `json:"assignments"`
	ObjectiveValue float64      `json:"objective_value"`
}

// Normalize разворачивает индексные пары таблиц в списки назначений.
// Пары с индексами вне диапазона пропускаются.
func (r *SolveResult) Normalize() []Solution {
	solutions := make([]Solution, 0, len(r.Tables))

	for i, table := range r.Tables {
		assignments := make([]Assignment, 0, len(table.Assignment))

		for _, pair := range table.Assignment {
			s, p := pair[0], pair[1]
			if s < 0 || s >= len(table.Shifts) || p < 0 || p >= len(table.Providers) {
				continue
			}

			shift := table.Shifts[s]
			provider := table.Providers[p]
			assignments = append(assignments, Assignment{
				ShiftID:      shift.ID,
				ProviderName: provider.Name,
				Date:         shift.Date,
				ShiftType:    shift.Type,
				StartTime:    shift.Start,
				EndTime:      shift.End,
			})
		}

		var objective float64
		if i < len(r.Meta.PerTable) {
			objective = r.Meta.PerTable[i].Objective
		}

		solutions = append(solutions, Solution{
			Assignments:    assignments,
			ObjectiveValue: objective,
		})
	}

	return solutions
}
