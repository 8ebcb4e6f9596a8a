package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shaiso/Rota/internal/domain"
)

// JobMessage — тело сообщения в очереди solver.jobs.
//
// Формат фиксирован внешним контрактом: {"run_id": ..., "case": ...}.
// Сообщение неизменяемо после публикации и может быть доставлено
// больше одного раза — потребитель обязан переживать редоставку.
type JobMessage struct {
	// RunID — идентификатор run'а.
	RunID string `json:"run_id"`

	// Case — входной документ для solver'а.
	Case *domain.SchedulingCase `json:"case"`

	// CreatedAt — время постановки в очередь.
	CreatedAt time.Time `json:"created_at"`
}

// Publisher публикует задания в RabbitMQ.
type Publisher struct {
	conn   *Connection
	logger *slog.Logger
}

// NewPublisher создаёт Publisher.
func NewPublisher(conn *Connection, logger *slog.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: logger,
	}
}

// PublishJob публикует задание для solver-воркера.
// Потребитель: worker.Runner.
func (p *Publisher) PublishJob(ctx context.Context, job *JobMessage) error {
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}

	return p.conn.WithChannel(func(ch *amqp.Channel) error {
		err := ch.PublishWithContext(
			ctx,
			string(ExchangeSolver),
			string(RoutingKeyJobs),
			false,
			false,
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent, // сообщение переживёт рестарт RabbitMQ
				MessageId:    job.RunID,
				Timestamp:    job.CreatedAt,
				Body:         body,
			},
		)
		if err != nil {
			return fmt.Errorf("publish job %s: %w", job.RunID, err)
		}

		p.logger.Debug("published job",
			"run_id", job.RunID,
			"size", len(body),
		)

		return nil
	})
}
