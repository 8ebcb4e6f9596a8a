package api

import (
	"fmt"
	"net/http"
)

// ListResultFolders возвращает список папок результатов,
// отсортированный по номеру по убыванию.
// GET /api/v1/results/folders
func (h *Handler) ListResultFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := h.registry.ListFolders(r.Context())
	if HandleServiceError(w, h.logger, err, "") {
		return
	}

	result := make([]ResultFolderResponse, len(folders))
	for i, f := range folders {
		result[i] = FolderFromDomain(f)
	}

	JSON(w, http.StatusOK, result)
}

// DownloadResultFolder отдаёт zip-архив папки результатов.
// GET /api/v1/results/{name}/download
func (h *Handler) DownloadResultFolder(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		BadRequest(w, "missing folder name")
		return
	}

	data, err := h.registry.Archive(r.Context(), name)
	if HandleServiceError(w, h.logger, err, "result folder not found") {
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".zip"))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// DeleteResultFolder удаляет папку результатов со всем содержимым.
// DELETE /api/v1/results/{name}
func (h *Handler) DeleteResultFolder(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		BadRequest(w, "missing folder name")
		return
	}

	deleted, err := h.registry.DeleteFolder(r.Context(), name)
	if HandleServiceError(w, h.logger, err, "result folder not found") {
		return
	}

	JSON(w, http.StatusOK, DeleteFolderResponse{
		Name:         name,
		FilesDeleted: deleted,
	})
}
