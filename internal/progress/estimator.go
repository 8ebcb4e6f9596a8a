package progress

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shaiso/Rota/internal/domain"
	"github.com/shaiso/Rota/internal/lifecycle"
)

// Пороговые значения кривой прогресса.
const (
	// longRunThreshold — граница "долгого" запуска: для него потолок
	// ниже, чтобы хвост сходимости solver'а не выглядел зависанием на 99%.
	longRunThreshold = 120 * time.Second

	capLong  = 95
	capShort = 99

	// joinTimeout — сколько ждать завершения тикера при Stop.
	joinTimeout = 3 * time.Second
)

// Estimator — фоновый генератор прогресса на время работы solver'а.
//
// Solver не умеет сообщать прогресс, а запуск может длиться часами.
// Эстиматор раз в несколько секунд пишет в status store оценку по
// времени: вогнутая ступенчатая кривая — быстрый рост в начале,
// замедление к концу, потолок ниже 100. Настоящие 100% пишет только
// финальная запись воркера.
//
// Остановка кооперативная: Stop взводит cancel и дожидается выхода
// тикера (с ограничением по времени), чтобы отставший тик не
// перегнал терминальную запись.
type Estimator struct {
	machine  *lifecycle.Machine
	runID    string
	expected time.Duration
	logger   *slog.Logger

	interval time.Duration
	maxPct   int

	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

// NewEstimator создаёт эстиматор для run с ожидаемой длительностью.
func NewEstimator(machine *lifecycle.Machine, runID string, expectedSeconds int, logger *slog.Logger) *Estimator {
	if logger == nil {
		logger = slog.Default()
	}
	if expectedSeconds <= 0 {
		expectedSeconds = 300
	}
	expected := time.Duration(expectedSeconds) * time.Second

	return &Estimator{
		machine:  machine,
		runID:    runID,
		expected: expected,
		logger:   logger,
		interval: tickInterval(expected),
		maxPct:   progressCap(expected),
		done:     make(chan struct{}),
	}
}

// Start запускает фоновый тикер. Вызывается ровно один раз.
func (e *Estimator) Start(ctx context.Context) {
	ctx, e.cancel = context.WithCancel(ctx)

	e.logger.Debug("progress estimator started",
		"run_id", e.runID,
		"expected", e.expected,
		"interval", e.interval,
		"cap", e.maxPct,
	)

	go e.loop(ctx)
}

// Stop кооперативно останавливает тикер и дожидается его выхода.
// Идемпотентен: повторные вызовы — no-op.
func (e *Estimator) Stop() {
	e.stopOnce.Do(func() {
		if e.cancel != nil {
			e.cancel()
		}

		select {
		case <-e.done:
		case <-time.After(joinTimeout):
			e.logger.Warn("progress estimator did not stop in time", "run_id", e.runID)
		}
	})
}

// loop — основной цикл тикера.
func (e *Estimator) loop(ctx context.Context) {
	defer close(e.done)

	started := time.Now()
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pct := Estimate(time.Since(started), e.expected, e.maxPct)
			msg := fmt.Sprintf("Solving optimization... %d%%", pct)

			// Монотонность и защиту от записи в терминальный run
			// обеспечивает lifecycle; здесь просто пишем оценку.
			if err := e.machine.Transition(ctx, e.runID, domain.RunStatusRunning, pct, msg); err != nil {
				e.logger.Warn("progress update failed", "run_id", e.runID, "error", err)
			}
		}
	}
}

// tickInterval подбирает частоту обновлений под ожидаемую длительность:
// короткие запуски обновляются чаще, многочасовые — реже.
func tickInterval(expected time.Duration) time.Duration {
	switch {
	case expected <= time.Minute:
		return 2 * time.Second
	case expected <= 10*time.Minute:
		return 5 * time.Second
	default:
		return 10 * time.Second
	}
}

// progressCap возвращает потолок кривой для данной длительности.
func progressCap(expected time.Duration) int {
	if expected > longRunThreshold {
		return capLong
	}
	return capShort
}

// Кривая прогресса: вогнутая ломаная по долям ожидаемой длительности.
// Быстрый рост в первой четверти, замедление к концу.
var curve = []struct {
	frac float64
	pct  int
}{
	{0.0, 0},
	{0.25, 45},
	{0.5, 68},
	{0.75, 83},
	{1.0, 90},
}

// Estimate возвращает оценку прогресса для прошедшего времени.
//
// До истечения ожидаемой длительности — линейная интерполяция по
// кривой; после — медленный доползающий рост (+1 за каждые лишние
// 20% длительности), ограниченный потолком maxPct. Функция
// неубывающая по elapsed.
func Estimate(elapsed, expected time.Duration, maxPct int) int {
	if elapsed <= 0 {
		return 0
	}

	frac := float64(elapsed) / float64(expected)

	if frac >= 1.0 {
		last := curve[len(curve)-1].pct
		crawl := int((frac - 1.0) / 0.2)
		return min(last+crawl, maxPct)
	}

	for i := 1; i < len(curve); i++ {
		if frac <= curve[i].frac {
			lo, hi := curve[i-1], curve[i]
			span := hi.frac - lo.frac
			pct := float64(lo.pct) + (frac-lo.frac)/span*float64(hi.pct-lo.pct)
			return min(int(pct), maxPct)
		}
	}

	return min(curve[len(curve)-1].pct, maxPct)
}
