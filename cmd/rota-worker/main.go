// Rota Worker — выполняет задания решателя.
//
// Worker:
//   - Получает задания из RabbitMQ (prefetch=1)
//   - Ведёт жизненный цикл запуска и оценку прогресса
//   - Вызывает solver-сервис и сохраняет артефакты результата
//   - ack только после терминальной записи статуса
//
// Workers масштабируются горизонтально.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shaiso/Rota/internal/config"
	"github.com/shaiso/Rota/internal/lifecycle"
	"github.com/shaiso/Rota/internal/mq"
	"github.com/shaiso/Rota/internal/registry"
	"github.com/shaiso/Rota/internal/solver"
	"github.com/shaiso/Rota/internal/statusstore"
	"github.com/shaiso/Rota/internal/telemetry"
	"github.com/shaiso/Rota/internal/worker"
)

func main() {
	// Инициализируем structured logging
	logger := telemetry.SetupLogger()
	logger.Info("starting rota-worker")

	cfg := config.Load()

	// graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Хранилище объектов
	objects, err := cfg.NewObjectStore(ctx)
	if err != nil {
		logger.Error("failed to create object store", "error", err)
		os.Exit(1)
	}
	logger.Info("object store ready", "backend", cfg.StoreBackend)

	statusStore := statusstore.New(objects, logger)
	machine := lifecycle.New(statusStore, logger)
	resultRegistry := registry.New(objects, logger)

	// RabbitMQ
	mqConn, err := mq.NewConnection(cfg.AMQPURL, logger)
	if err != nil {
		logger.Error("failed to connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer mqConn.Close()
	logger.Info("RabbitMQ connected")

	if err := mq.SetupTopology(mqConn); err != nil {
		logger.Error("failed to setup topology", "error", err)
		os.Exit(1)
	}

	// Создаём runner
	runner := worker.NewRunner(worker.Config{
		Machine:   machine,
		Solver:    solver.NewHTTPSolver(cfg.SolverURL, logger),
		Registry:  resultRegistry,
		Logger:    logger,
		SingleRun: cfg.WorkerSingleRun,
	})

	consumer := mq.NewConsumer(mqConn, logger, mq.ConsumerConfig{
		Queue:   mq.QueueSolverJobs,
		Handler: runner.HandleJob,
	})

	// Запускаем consumer
	go func() {
		if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
			logger.Error("consumer error", "error", err)
			cancel()
		}
	}()

	// HTTP mux: /healthz + /metrics
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		// Worker без брокера бесполезен: пока соединение не
		// восстановлено, отвечаем 503
		if !mqConn.IsConnected() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("mq disconnected"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	port := ":" + cfg.WorkerPort

	go func() {
		logger.Info("listening", "addr", port)
		if err := http.ListenAndServe(port, mux); err != nil {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	// В режиме single-run завершаемся после первого задания
	if cfg.WorkerSingleRun {
		select {
		case <-runner.Done():
			logger.Info("single run finished")
		case <-ctx.Done():
		}
	} else {
		// Ожидаем сигнал завершения
		<-ctx.Done()
	}

	consumer.Stop()
	logger.Info("rota-worker stopped")
}
