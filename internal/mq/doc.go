// Package mq реализует обмен заданиями через RabbitMQ.
//
// Топология: exchange rota.solver с очередью solver.jobs для заданий
// решателя и exchange rota.dlq с очередью dlq.jobs для сообщений,
// которые не удалось разобрать. Доставка at-least-once: подтверждение
// только после терминальной записи статуса.
package mq
