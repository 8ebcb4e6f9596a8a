package domain

import (
	"testing"
)

// --- RunStatus ---

func TestRunStatus_IsTerminal(t *testing.T) {
	terminal := []RunStatus{RunStatusCompleted, RunStatusFailed, RunStatusStopped}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
	}

	active := []RunStatus{RunStatusQueued, RunStatusStarting, RunStatusRunning}
	for _, s := range active {
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

// --- Run ---

func TestNewRun(t *testing.T) {
	run := NewRun("run-1")

	if run.Status != RunStatusQueued {
		t.Errorf("expected queued, got %s", run.Status)
	}
	if run.Progress != 0 {
		t.Errorf("expected progress 0, got %d", run.Progress)
	}
	if run.CreatedAt.IsZero() || run.UpdatedAt.IsZero() {
		t.Error("timestamps should be set")
	}
	if run.CompletedAt != nil {
		t.Error("CompletedAt should be nil for a fresh run")
	}
}

func TestRun_CompletedAtSetOnce(t *testing.T) {
	run := NewRun("run-1")
	run.MarkFailed("boom")

	first := *run.CompletedAt

	// A second terminal apply must not move the completion time
	run.Apply(RunStatusStopped, run.Progress, "late stop")
	if !run.CompletedAt.Equal(first) {
		t.Error("CompletedAt must be set exactly once")
	}
}

func TestRun_MarkCompleted(t *testing.T) {
	run := NewRun("run-1")
	run.MarkCompleted("result_3")

	if run.Status != RunStatusCompleted {
		t.Errorf("expected completed, got %s", run.Status)
	}
	if run.Progress != ProgressDone {
		t.Errorf("expected 100, got %d", run.Progress)
	}
	if run.ResultRef != "result_3" {
		t.Errorf("expected result_3, got %s", run.ResultRef)
	}
}

func TestRun_MarkStoppedKeepsProgress(t *testing.T) {
	run := NewRun("run-1")
	run.Apply(RunStatusRunning, 37, "Solving")
	run.MarkStopped()

	if run.Progress != 37 {
		t.Errorf("expected progress 37, got %d", run.Progress)
	}
}

// --- SchedulingCase ---

func TestExpectedDurationSeconds(t *testing.T) {
	c := &SchedulingCase{
		Constants: map[string]any{
			"solver": map[string]any{"max_time_in_seconds": float64(600)},
		},
	}
	if got := c.ExpectedDurationSeconds(300); got != 600 {
		t.Errorf("expected 600, got %d", got)
	}
}

func TestExpectedDurationSeconds_Default(t *testing.T) {
	cases := []*SchedulingCase{
		{},
		{Constants: map[string]any{}},
		{Constants: map[string]any{"solver": "not a map"}},
		{Constants: map[string]any{"solver": map[string]any{}}},
		{Constants: map[string]any{"solver": map[string]any{"max_time_in_seconds": float64(0)}}},
	}

	for i, c := range cases {
		if got := c.ExpectedDurationSeconds(300); got != 300 {
			t.Errorf("case %d: expected default 300, got %d", i, got)
		}
	}
}

// --- SolveResult ---

func TestNormalize(t *testing.T) {
	result := &SolveResult{
		Tables: []SolutionTable{
			{
				Assignment: [][2]int{{0, 0}, {1, 0}},
				Shifts: []Shift{
					{ID: "s1", Date: "2026-09-01", Type: "day", Start: "08:00", End: "16:00"},
					{ID: "s2", Date: "2026-09-02", Type: "day", Start: "08:00", End: "16:00"},
				},
				Providers: []Provider{{Name: "Dr. Ortega"}},
			},
		},
		Meta: SolveMeta{PerTable: []TableStats{{Objective: 7.0}}},
	}

	solutions := result.Normalize()
	if len(solutions) != 1 {
		t.Fatalf("expected 1 solution, got %d", len(solutions))
	}

	sol := solutions[0]
	if len(sol.Assignments) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(sol.Assignments))
	}
	if sol.Assignments[0].ShiftID != "s1" || sol.Assignments[0].ProviderName != "Dr. Ortega" {
		t.Errorf("unexpected first assignment: %+v", sol.Assignments[0])
	}
	if sol.ObjectiveValue != 7.0 {
		t.Errorf("expected objective 7.0, got %f", sol.ObjectiveValue)
	}
}

func TestNormalize_SkipsOutOfRangePairs(t *testing.T) {
	result := &SolveResult{
		Tables: []SolutionTable{
			{
				Assignment: [][2]int{{0, 0}, {5, 0}, {0, 9}, {-1, 0}},
				Shifts:     []Shift{{ID: "s1"}},
				Providers:  []Provider{{Name: "Dr. Ortega"}},
			},
		},
	}

	solutions := result.Normalize()
	if len(solutions[0].Assignments) != 1 {
		t.Errorf("expected 1 valid assignment, got %d", len(solutions[0].Assignments))
	}
}
