package api

import (
	"net/http"
)

// RegisterRoutes регистрирует все маршруты API.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Middleware chain
	chain := Chain(
		Recovery(h.logger),
		Logging(h.logger),
	)

	// Runs
	mux.Handle("POST /api/v1/solve", chain(http.HandlerFunc(h.SubmitCase)))
	mux.Handle("GET /api/v1/status/{run_id}", chain(http.HandlerFunc(h.GetStatus)))
	mux.Handle("POST /api/v1/runs/{run_id}/stop", chain(http.HandlerFunc(h.StopRun)))

	// Results
	mux.Handle("GET /api/v1/results/folders", chain(http.HandlerFunc(h.ListResultFolders)))
	mux.Handle("GET /api/v1/results/{name}/download", chain(http.HandlerFunc(h.DownloadResultFolder)))
	mux.Handle("DELETE /api/v1/results/{name}", chain(http.HandlerFunc(h.DeleteResultFolder)))
}
