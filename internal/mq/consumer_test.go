package mq

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shaiso/Rota/internal/domain"
)

// fakeAcknowledger фиксирует ack/nack одного сообщения.
type fakeAcknowledger struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (f *fakeAcknowledger) Ack(_ uint64, _ bool) error {
	f.acked = true
	return nil
}

func (f *fakeAcknowledger) Nack(_ uint64, _ bool, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

func (f *fakeAcknowledger) Reject(_ uint64, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

func testConsumer(handler Handler) *Consumer {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewConsumer(nil, logger, ConsumerConfig{
		Queue:   QueueSolverJobs,
		Handler: handler,
	})
}

func validJobBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(JobMessage{
		RunID: "run-1",
		Case: &domain.SchedulingCase{
			Shifts:    []domain.Shift{{ID: "s1"}},
			Providers: []domain.Provider{{Name: "Dr. Ortega"}},
		},
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("marshal job: %v", err)
	}
	return body
}

func TestHandleDelivery_AckAfterSuccess(t *testing.T) {
	var got *JobMessage
	c := testConsumer(func(_ context.Context, job *JobMessage) error {
		got = job
		return nil
	})

	ack := &fakeAcknowledger{}
	c.handleDelivery(context.Background(), amqp.Delivery{
		Acknowledger: ack,
		Body:         validJobBody(t),
	})

	if !ack.acked {
		t.Error("message should be acked")
	}
	if got == nil || got.RunID != "run-1" {
		t.Errorf("handler should receive the job, got %+v", got)
	}
}

func TestHandleDelivery_NackRequeueOnHandlerError(t *testing.T) {
	c := testConsumer(func(_ context.Context, _ *JobMessage) error {
		return errors.New("terminal write failed")
	})

	ack := &fakeAcknowledger{}
	c.handleDelivery(context.Background(), amqp.Delivery{
		Acknowledger: ack,
		Body:         validJobBody(t),
	})

	if !ack.nacked || !ack.requeue {
		t.Error("handler failure should requeue the message")
	}
}

func TestHandleDelivery_MalformedBodyToDLQ(t *testing.T) {
	called := false
	c := testConsumer(func(_ context.Context, _ *JobMessage) error {
		called = true
		return nil
	})

	ack := &fakeAcknowledger{}
	c.handleDelivery(context.Background(), amqp.Delivery{
		Acknowledger: ack,
		Body:         []byte("not json"),
	})

	if called {
		t.Error("handler must not run for malformed messages")
	}
	if !ack.nacked || ack.requeue {
		t.Error("malformed message should be nacked without requeue")
	}
}

func TestHandleDelivery_MissingFieldsToDLQ(t *testing.T) {
	c := testConsumer(func(_ context.Context, _ *JobMessage) error {
		t.Error("handler must not run")
		return nil
	})

	ack := &fakeAcknowledger{}
	c.handleDelivery(context.Background(), amqp.Delivery{
		Acknowledger: ack,
		Body:         []byte(`{"run_id": ""}`),
	})

	if !ack.nacked || ack.requeue {
		t.Error("incomplete message should be nacked without requeue")
	}
}
