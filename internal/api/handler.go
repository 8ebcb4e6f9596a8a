package api

import (
	"log/slog"

	"github.com/shaiso/Rota/internal/cancel"
	"github.com/shaiso/Rota/internal/dispatch"
	"github.com/shaiso/Rota/internal/registry"
)

// Handler — главный обработчик API с зависимостями.
type Handler struct {
	dispatcher *dispatch.Dispatcher
	control    *cancel.Controller
	registry   *registry.Registry
	logger     *slog.Logger
}

// Config — конфигурация для создания Handler.
type Config struct {
	Dispatcher *dispatch.Dispatcher
	Control    *cancel.Controller
	Registry   *registry.Registry
	Logger     *slog.Logger
}

// NewHandler создаёт новый Handler.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		dispatcher: cfg.Dispatcher,
		control:    cfg.Control,
		registry:   cfg.Registry,
		logger:     cfg.Logger,
	}
}
