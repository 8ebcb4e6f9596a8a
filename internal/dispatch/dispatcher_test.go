package dispatch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shaiso/Rota/internal/domain"
	"github.com/shaiso/Rota/internal/mq"
	"github.com/shaiso/Rota/internal/statusstore"
	"github.com/shaiso/Rota/internal/storage"
)

// fakePublisher записывает попытки публикации.
type fakePublisher struct {
	jobs []*mq.JobMessage
	err  error
}

func (f *fakePublisher) PublishJob(_ context.Context, job *mq.JobMessage) error {
	f.jobs = append(f.jobs, job)
	return f.err
}

func testDispatcher(pub *fakePublisher) (*Dispatcher, *statusstore.Store) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := statusstore.New(storage.NewMemoryStore(), logger)
	return New(store, pub, logger), store
}

func testCase() *domain.SchedulingCase {
	return &domain.SchedulingCase{
		Shifts:    []domain.Shift{{ID: "s1"}},
		Providers: []domain.Provider{{Name: "Dr. Ortega"}},
	}
}

func TestSubmit(t *testing.T) {
	pub := &fakePublisher{}
	d, store := testDispatcher(pub)
	ctx := context.Background()

	run, err := d.Submit(ctx, testCase())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if run.RunID == "" {
		t.Error("run_id should be assigned")
	}
	if run.Status != domain.RunStatusQueued {
		t.Errorf("expected queued, got %s", run.Status)
	}
	if run.Progress != 0 {
		t.Errorf("expected progress 0, got %d", run.Progress)
	}

	if len(pub.jobs) != 1 {
		t.Fatalf("expected 1 published job, got %d", len(pub.jobs))
	}
	if pub.jobs[0].RunID != run.RunID {
		t.Errorf("job run_id mismatch: %s vs %s", pub.jobs[0].RunID, run.RunID)
	}
	if pub.jobs[0].Case == nil {
		t.Error("job should carry the case")
	}

	// Status must be readable right after submit
	got, err := store.Read(ctx, run.RunID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != domain.RunStatusQueued {
		t.Errorf("expected queued, got %s", got.Status)
	}
}

func TestSubmit_UniqueRunIDs(t *testing.T) {
	d, _ := testDispatcher(&fakePublisher{})
	ctx := context.Background()

	a, _ := d.Submit(ctx, testCase())
	b, _ := d.Submit(ctx, testCase())

	if a.RunID == b.RunID {
		t.Error("run ids must be unique")
	}
}

func TestSubmit_PublishFailure(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	d, store := testDispatcher(pub)
	ctx := context.Background()

	_, err := d.Submit(ctx, testCase())
	if err == nil {
		t.Fatal("expected error")
	}

	if len(pub.jobs) != 1 {
		t.Fatalf("expected 1 publish attempt, got %d", len(pub.jobs))
	}

	// The run the client almost got must be visible as failed
	run, err := store.Read(ctx, pub.jobs[0].RunID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run.Status != domain.RunStatusFailed {
		t.Errorf("expected failed, got %s", run.Status)
	}
	if run.Progress != domain.ProgressFailed {
		t.Errorf("expected progress -1, got %d", run.Progress)
	}
}

func TestStatus_Unknown(t *testing.T) {
	d, _ := testDispatcher(&fakePublisher{})

	_, err := d.Status(context.Background(), "ghost")
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}
