// Rota API — приём кейсов и read path системы.
//
// API:
//   - Принимает кейсы (POST /solve) и публикует задания в RabbitMQ
//   - Отдаёт статусы запусков из хранилища объектов
//   - Останавливает запуски по запросу
//   - Управляет папками результатов (список, скачивание, удаление)
//
// API stateless и масштабируется горизонтально.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shaiso/Rota/internal/api"
	"github.com/shaiso/Rota/internal/cancel"
	"github.com/shaiso/Rota/internal/config"
	"github.com/shaiso/Rota/internal/dispatch"
	"github.com/shaiso/Rota/internal/lifecycle"
	"github.com/shaiso/Rota/internal/mq"
	"github.com/shaiso/Rota/internal/registry"
	"github.com/shaiso/Rota/internal/statusstore"
	"github.com/shaiso/Rota/internal/telemetry"
)

var (
	startTime = time.Now()
	reqTotal  = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rota_api_http_requests_total",
		Help: "Total HTTP requests handled by rota_api",
	})
)

func main() {
	// Инициализируем structured logging
	logger := telemetry.SetupLogger()
	logger.Info("starting rota-api")

	cfg := config.Load()

	// graceful shutdown
	ctx, cancelCtx := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancelCtx()

	// Хранилище объектов: статусы и результаты
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

	publisher := mq.NewPublisher(mqConn, logger)
	dispatcher := dispatch.New(statusStore, publisher, logger)

	// Локатор воркеров для остановки запусков. Без Docker API
	// остановка деградирует до записи статуса.
	var locator cancel.Locator
	if dl, err := cancel.NewDockerLocator(logger); err != nil {
		logger.Warn("docker not available, stop requests will only mark status", "error", err)
		locator = noopLocator{}
	} else {
		locator = dl
	}
	control := cancel.NewController(machine, locator, logger)

	// Создаём API handler
	handler := api.NewHandler(api.Config{
		Dispatcher: dispatcher,
		Control:    control,
		Registry:   resultRegistry,
		Logger:     logger,
	})

	mux := http.NewServeMux()

	// Health и metrics
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		reqTotal.Inc()
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "ok %s", time.Since(startTime))
	})
	mux.Handle("/metrics", promhttp.Handler())

	// Регистрируем API маршруты
	handler.RegisterRoutes(mux)

	addr := ":" + cfg.APIPort

	// Создаём HTTP сервер с возможностью graceful shutdown
	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Запускаем сервер в горутине
	go func() {
		logger.Info("listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Ожидаем сигнал завершения
	<-ctx.Done()
	logger.Info("shutting down")

	// Graceful shutdown с таймаутом 10 секунд
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("stopped")
}

// noopLocator — заглушка локатора, когда Docker API недоступен.
type noopLocator struct{}

func (noopLocator) List(context.Context) ([]cancel.WorkerProc, error) { return nil, nil }
func (noopLocator) Stop(context.Context, string) error                { return nil }
