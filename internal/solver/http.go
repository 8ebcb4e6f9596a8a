package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/shaiso/Rota/internal/domain"
)

// HTTPSolver вызывает внешний solver-сервис по HTTP.
//
// Сервис принимает POST {base}/solve с телом SchedulingCase и
// возвращает SolveResult. Таймаут не задаётся на клиенте: решение
// может занимать десятки минут, ограничение — через контекст.
type HTTPSolver struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewHTTPSolver создаёт HTTPSolver.
func NewHTTPSolver(baseURL string, logger *slog.Logger) *HTTPSolver {
	return &HTTPSolver{
		baseURL: baseURL,
		client:  &http.Client{},
		logger:  logger,
	}
}

// Solve отправляет кейс решателю и ждёт результата.
func (s *HTTPSolver) Solve(ctx context.Context, c *domain.SchedulingCase) (*domain.SolveResult, error) {
	body, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal case: %v", ErrSolver, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/solve", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrSolver, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	s.logger.Info("solve started", "url", s.baseURL)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSolver, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: solver returned %d: %s", ErrSolver, resp.StatusCode, msg)
	}

	var result domain.SolveResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decode result: %v", ErrSolver, err)
	}

	s.logger.Info("solve finished",
		"duration", time.Since(start),
		"tables", len(result.Tables),
	)

	return &result, nil
}
