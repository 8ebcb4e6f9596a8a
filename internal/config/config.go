package config

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/shaiso/Rota/internal/mq"
	"github.com/shaiso/Rota/internal/storage"
)

// Config — конфигурация сервисов Rota из переменных окружения.
type Config struct {
	// AMQPURL — адрес RabbitMQ.
	AMQPURL string

	// StoreBackend — бэкенд хранилища объектов: fs, s3 или memory.
	StoreBackend string

	// StoreDir — корневой каталог для бэкенда fs.
	StoreDir string

	// S3 — параметры бэкенда s3.
	S3 storage.S3Config

	// SolverURL — адрес solver-сервиса.
	SolverURL string

	// APIPort — порт HTTP API.
	APIPort string

	// WorkerPort — порт служебного HTTP воркера (metrics, healthz).
	WorkerPort string

	// WorkerSingleRun — завершать воркер после первого задания.
	WorkerSingleRun bool
}

// Load читает конфигурацию из окружения.
//
// Файл .env подхватывается, если он есть; его отсутствие не ошибка.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AMQPURL:      getEnv("AMQP_URL", mq.DefaultURL()),
		StoreBackend: getEnv("STORE_BACKEND", "fs"),
		StoreDir:     getEnv("STORE_DIR", "./data"),
		S3: storage.S3Config{
			Endpoint:  getEnv("S3_ENDPOINT", "localhost:9000"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			Bucket:    getEnv("S3_BUCKET", "rota"),
			UseSSL:    getBool("S3_USE_SSL", false),
		},
		SolverURL:       getEnv("SOLVER_URL", "http://localhost:8090"),
		APIPort:         getEnv("API_PORT", "8080"),
		WorkerPort:      getEnv("WORKER_PORT", "8081"),
		WorkerSingleRun: getBool("WORKER_SINGLE_RUN", false),
	}
}

// NewObjectStore создаёт хранилище объектов по конфигурации.
func (c *Config) NewObjectStore(ctx context.Context) (storage.ObjectStore, error) {
	switch c.StoreBackend {
	case "fs":
		return storage.NewFSStore(c.StoreDir)
	case "s3":
		return storage.NewS3Store(ctx, c.S3)
	case "memory":
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
