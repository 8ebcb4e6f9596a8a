package worker

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"github.com/shaiso/Rota/internal/domain"
)

// buildArtifacts формирует файлы папки результата:
//   - result.json — нормализованные решения с целевой функцией
//   - schedule.csv — назначения лучшего решения в табличном виде
//   - input_case.json — исходный кейс для воспроизводимости
//
// metadata.json к ним не относится: его пишет registry последним,
// как маркер завершённости папки.
func buildArtifacts(c *domain.SchedulingCase, result *domain.SolveResult) (map[string][]byte, []domain.Solution, error) {
	solutions := result.Normalize()

	resultJSON, err := json.MarshalIndent(map[string]any{
		"solutions":       solutions,
		"solutions_count": len(solutions),
		"solver_stats":    result.Meta.SolverStats,
	}, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("marshal result: %w", err)
	}

	caseJSON, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("marshal case: %w", err)
	}

	files := map[string][]byte{
		"result.json":     resultJSON,
		"input_case.json": caseJSON,
	}

	if len(solutions) > 0 {
		files["schedule.csv"] = scheduleCSV(&solutions[0])
	}

	return files, solutions, nil
}

// scheduleCSV сериализует назначения решения в CSV.
func scheduleCSV(sol *domain.Solution) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"shift_id", "provider_name", "date", "shift_type", "start_time", "end_time"})
	for _, a := range sol.Assignments {
		w.Write([]string{
			a.ShiftID,
			a.ProviderName,
			a.Date,
			a.ShiftType,
			a.StartTime,
			a.EndTime,
		})
	}
	w.Flush()

	return buf.Bytes()
}
