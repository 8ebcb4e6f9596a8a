package api

import (
	"encoding/json"
	"net/http"

	"github.com/shaiso/Rota/internal/domain"
	"github.com/shaiso/Rota/internal/telemetry"
)

// SubmitCase принимает кейс и ставит его в очередь решателя.
// POST /api/v1/solve
func (h *Handler) SubmitCase(w http.ResponseWriter, r *http.Request) {
	var c domain.SchedulingCase
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	if len(c.Shifts) == 0 {
		BadRequest(w, "case has no shifts")
		return
	}
	if len(c.Providers) == 0 {
		BadRequest(w, "case has no providers")
		return
	}

	run, err := h.dispatcher.Submit(r.Context(), &c)
	if HandleServiceError(w, h.logger, err, "") {
		return
	}

	telemetry.RunsSubmitted.Inc()

	JSON(w, http.StatusAccepted, RunFromDomain(run))
}

// GetStatus возвращает текущий статус запуска.
// GET /api/v1/status/{run_id}
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	runID := r.PathValue("run_id")
	if runID == "" {
		BadRequest(w, "missing run_id")
		return
	}

	run, err := h.dispatcher.Status(r.Context(), runID)
	if HandleServiceError(w, h.logger, err, "run not found") {
		return
	}

	JSON(w, http.StatusOK, RunFromDomain(run))
}

// StopRun останавливает выполнение запуска.
// POST /api/v1/runs/{run_id}/stop
func (h *Handler) StopRun(w http.ResponseWriter, r *http.Request) {
	runID := r.PathValue("run_id")
	if runID == "" {
		BadRequest(w, "missing run_id")
		return
	}

	run, err := h.control.StopRun(r.Context(), runID)
	if HandleServiceError(w, h.logger, err, "run not found") {
		return
	}

	JSON(w, http.StatusOK, RunFromDomain(run))
}
