package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shaiso/Rota/internal/domain"
	"github.com/shaiso/Rota/internal/lifecycle"
	"github.com/shaiso/Rota/internal/mq"
	"github.com/shaiso/Rota/internal/registry"
	"github.com/shaiso/Rota/internal/solver"
	"github.com/shaiso/Rota/internal/statusstore"
	"github.com/shaiso/Rota/internal/storage"
)

// fakeSolver возвращает заранее заданный результат или ошибку.
type fakeSolver struct {
	result *domain.SolveResult
	err    error
}

func (f *fakeSolver) Solve(_ context.Context, _ *domain.SchedulingCase) (*domain.SolveResult, error) {
	return f.result, f.err
}

func testCase() *domain.SchedulingCase {
	return &domain.SchedulingCase{
		Constants: map[string]any{
			"solver": map[string]any{"max_time_in_seconds": float64(10)},
		},
		Shifts: []domain.Shift{
			{ID: "s1", Date: "2026-09-01", Type: "day", Start: "08:00", End: "16:00"},
			{ID: "s2", Date: "2026-09-01", Type: "night", Start: "16:00", End: "00:00"},
			{ID: "s3", Date: "2026-09-02", Type: "day", Start: "08:00", End: "16:00"},
		},
		Providers: []domain.Provider{
			{Name: "Dr. Ortega"},
			{Name: "Dr. Lindqvist"},
		},
	}
}

func testResult() *domain.SolveResult {
	c := testCase()
	return &domain.SolveResult{
		Tables: []domain.SolutionTable{
			{
				Assignment: [][2]int{{0, 0}, {1, 1}, {2, 0}},
				Shifts:     c.Shifts,
				Providers:  c.Providers,
			},
		},
		Meta: domain.SolveMeta{
			PerTable:       []domain.TableStats{{Objective: 12.5}},
			RuntimeSeconds: 3.2,
		},
	}
}

type testEnv struct {
	runner  *Runner
	store   *statusstore.Store
	objects *storage.MemoryStore
}

func newTestEnv(s solver.Solver) *testEnv {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	objects := storage.NewMemoryStore()
	store := statusstore.New(objects, logger)

	runner := NewRunner(Config{
		Machine:  lifecycle.New(store, logger),
		Solver:   s,
		Registry: registry.New(objects, logger),
		Logger:   logger,
	})

	return &testEnv{runner: runner, store: store, objects: objects}
}

func job(runID string) *mq.JobMessage {
	return &mq.JobMessage{
		RunID:     runID,
		Case:      testCase(),
		CreatedAt: time.Now().UTC(),
	}
}

func TestProcess_Success(t *testing.T) {
	env := newTestEnv(&fakeSolver{result: testResult()})
	ctx := context.Background()

	if err := env.runner.Process(ctx, job("run-1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	run, err := env.store.Read(ctx, "run-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run.Status != domain.RunStatusCompleted {
		t.Errorf("expected completed, got %s", run.Status)
	}
	if run.Progress != domain.ProgressDone {
		t.Errorf("expected progress 100, got %d", run.Progress)
	}
	if run.ResultRef != "result_1" {
		t.Errorf("expected result_1, got %s", run.ResultRef)
	}

	// Folder must contain all artifacts plus the metadata marker
	for _, key := range []string{
		"result_1/result.json",
		"result_1/schedule.csv",
		"result_1/input_case.json",
		"result_1/metadata.json",
	} {
		if _, err := env.objects.Get(ctx, key); err != nil {
			t.Errorf("%s should exist: %v", key, err)
		}
	}
}

func TestProcess_SolverFailure(t *testing.T) {
	env := newTestEnv(&fakeSolver{err: errors.New("infeasible model")})
	ctx := context.Background()

	// Solver failure is terminal, not retriable: no error back to the queue
	if err := env.runner.Process(ctx, job("run-1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	run, err := env.store.Read(ctx, "run-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run.Status != domain.RunStatusFailed {
		t.Errorf("expected failed, got %s", run.Status)
	}
	if run.Progress != domain.ProgressFailed {
		t.Errorf("expected progress -1, got %d", run.Progress)
	}
	if run.Error == "" {
		t.Error("error text should be set")
	}

	// No result folder should be left behind
	objects, _ := env.objects.List(ctx, "result_1/")
	if len(objects) != 0 {
		t.Errorf("no result folder expected, found %d objects", len(objects))
	}
}

func TestProcess_RedeliveryGetsFreshFolder(t *testing.T) {
	env := newTestEnv(&fakeSolver{result: testResult()})
	ctx := context.Background()

	if err := env.runner.Process(ctx, job("run-1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Redelivered message: a new folder is allocated, the run record
	// stays frozen on the first terminal write
	if err := env.runner.Process(ctx, job("run-1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := env.objects.Get(ctx, "result_2/metadata.json"); err != nil {
		t.Errorf("second delivery should produce result_2: %v", err)
	}

	run, _ := env.store.Read(ctx, "run-1")
	if run.ResultRef != "result_1" {
		t.Errorf("first terminal write must win, got %s", run.ResultRef)
	}
}

// blockingSolver висит до отмены контекста, как настоящий solver
// при остановке воркера.
type blockingSolver struct {
	started chan struct{}
}

func (b *blockingSolver) Solve(ctx context.Context, _ *domain.SchedulingCase) (*domain.SolveResult, error) {
	close(b.started)
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestProcess_ShutdownLeavesRunRetriable(t *testing.T) {
	s := &blockingSolver{started: make(chan struct{})}
	env := newTestEnv(s)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)

	go func() {
		errCh <- env.runner.Process(ctx, job("run-1"))
	}()

	<-s.started
	cancel()

	err := <-errCh
	// Остановка процесса — не ошибка solver'а: Process должен вернуть
	// ошибку, чтобы сообщение вернулось в очередь
	if err == nil {
		t.Fatal("expected error so the message gets requeued")
	}

	run, readErr := env.store.Read(context.Background(), "run-1")
	if readErr != nil {
		t.Fatalf("unexpected error: %v", readErr)
	}
	if run.IsFinished() {
		t.Errorf("run must stay non-terminal for redelivery, got %s", run.Status)
	}
	if run.Error != "" {
		t.Errorf("no failure must be recorded, got %q", run.Error)
	}
}

func TestBuildArtifacts(t *testing.T) {
	files, solutions, err := buildArtifacts(testCase(), testResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(solutions) != 1 {
		t.Fatalf("expected 1 solution, got %d", len(solutions))
	}
	if len(solutions[0].Assignments) != 3 {
		t.Errorf("expected 3 assignments, got %d", len(solutions[0].Assignments))
	}
	if solutions[0].ObjectiveValue != 12.5 {
		t.Errorf("expected objective 12.5, got %f", solutions[0].ObjectiveValue)
	}

	for _, name := range []string{"result.json", "schedule.csv", "input_case.json"} {
		if _, ok := files[name]; !ok {
			t.Errorf("expected file %s", name)
		}
	}
}
