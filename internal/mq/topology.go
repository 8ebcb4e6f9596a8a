package mq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange — тип для имени обменника.
type Exchange string

// Queue — тип для имени очереди.
type Queue string

// RoutingKey — тип для ключа маршрутизации.
type RoutingKey string

// Exchanges — имена обменников.
const (
	ExchangeSolver Exchange = "rota.solver"
	ExchangeDLQ    Exchange = "rota.dlq"
)

// Queues — имена очередей.
const (
	// QueueSolverJobs — задания для solver-воркеров.
	QueueSolverJobs Queue = "solver.jobs"

	// QueueDLQJobs — задания, которые не удалось обработать.
	QueueDLQJobs Queue = "dlq.jobs"
)

// Routing keys.
const (
	RoutingKeyJobs    RoutingKey = "jobs"
	RoutingKeyDLQJobs RoutingKey = "jobs"
)

// SetupTopology объявляет обменники, очереди и привязки.
// Идемпотентно: повторный вызов на существующей топологии — no-op.
func SetupTopology(conn *Connection) error {
	return conn.WithChannel(func(ch *amqp.Channel) error {
		for _, ex := range []Exchange{ExchangeSolver, ExchangeDLQ} {
			err := ch.ExchangeDeclare(
				string(ex), // name
				"direct",   // type
				true,       // durable
				false,      // auto-deleted
				false,      // internal
				false,      // no-wait
				nil,        // arguments
			)
			if err != nil {
				return fmt.Errorf("declare exchange %s: %w", ex, err)
			}
		}

		// solver.jobs — с DLQ: битые сообщения уходят туда, а не крутятся вечно
		dlqArgs := amqp.Table{
			"x-dead-letter-exchange":    string(ExchangeDLQ),
			"x-dead-letter-routing-key": string(RoutingKeyDLQJobs),
		}

		queues := []struct {
			name Queue
			args amqp.Table
		}{
			{QueueSolverJobs, dlqArgs},
			{QueueDLQJobs, nil},
		}

		for _, q := range queues {
			_, err := ch.QueueDeclare(
				string(q.name), // name
				true,           // durable
				false,          // delete when unused
				false,          // exclusive
				false,          // no-wait
				q.args,         // arguments
			)
			if err != nil {
				return fmt.Errorf("declare queue %s: %w", q.name, err)
			}
		}

		bindings := []struct {
			queue      Queue
			routingKey RoutingKey
			exchange   Exchange
		}{
			{QueueSolverJobs, RoutingKeyJobs, ExchangeSolver},
			{QueueDLQJobs, RoutingKeyDLQJobs, ExchangeDLQ},
		}

		for _, b := range bindings {
			err := ch.QueueBind(
				string(b.queue),
				string(b.routingKey),
				string(b.exchange),
				false, // no-wait
				nil,   // arguments
			)
			if err != nil {
				return fmt.Errorf("bind queue %s to %s: %w", b.queue, b.exchange, err)
			}
		}

		return nil
	})
}
