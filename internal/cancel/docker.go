package cancel

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"
)

// RunIDLabel — метка контейнера воркера с идентификатором запуска.
const RunIDLabel = "rota.run_id"

// DockerLocator находит воркеры среди запущенных контейнеров
// по метке rota.run_id.
type DockerLocator struct {
	cli    *client.Client
	logger *slog.Logger
}

// NewDockerLocator создаёт DockerLocator с клиентом из окружения
// (DOCKER_HOST и т.д.).
func NewDockerLocator(logger *slog.Logger) (*DockerLocator, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("create docker client: %w", err)
	}

	return &DockerLocator{cli: cli, logger: logger}, nil
}

// List возвращает работающие контейнеры-воркеры.
func (l *DockerLocator) List(ctx context.Context) ([]WorkerProc, error) {
	containers, err := l.cli.ContainerList(ctx, container.ListOptions{
		Filters: filters.NewArgs(filters.Arg("label", RunIDLabel)),
	})
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}

	procs := make([]WorkerProc, 0, len(containers))
	for _, c := range containers {
		runID := c.Labels[RunIDLabel]
		if runID == "" {
			continue
		}

		procs = append(procs, WorkerProc{
			ID:    c.ID,
			RunID: runID,
		})
	}

	return procs, nil
}

// Stop останавливает контейнер воркера.
func (l *DockerLocator) Stop(ctx context.Context, id string) error {
	if err := l.cli.ContainerStop(ctx, id, container.StopOptions{}); err != nil {
		return fmt.Errorf("stop container %s: %w", id, err)
	}

	l.logger.Info("worker container stopped", "container_id", id)
	return nil
}
