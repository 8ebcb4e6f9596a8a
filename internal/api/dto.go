package api

import (
	"time"

	"github.com/shaiso/Rota/internal/domain"
)

// Run DTOs

// RunResponse — ответ со статусом запуска.
//
// Формат совпадает с записью статуса в хранилище: клиенты читают
// одно и то же представление из API и из status.json.
type RunResponse struct {
	RunID       string     `json:"run_id"`
	Status      string     `json:"status"`
	Progress    int        `json:"progress"`
	Message     string     `json:"message"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at"`
	ResultRef   string     `json:"result_ref,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// RunFromDomain конвертирует domain.Run в RunResponse.
func RunFromDomain(r *domain.Run) RunResponse {
	return RunResponse{
		RunID:       r.RunID,
		Status:      string(r.Status),
		Progress:    r.Progress,
		Message:     r.Message,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		CompletedAt: r.CompletedAt,
		ResultRef:   r.ResultRef,
		Error:       r.Error,
	}
}

// Result DTOs

// ResultFolderResponse — сводка по папке результатов.
type ResultFolderResponse struct {
	Name           string    `json:"name"`
	Created        time.Time `json:"created"`
	SolutionsCount int       `json:"solutions_count"`
	FileCount      int       `json:"file_count"`
	TotalSize      int64     `json:"total_size"`
	RuntimeSeconds float64   `json:"runtime_seconds"`
}

// FolderFromDomain конвертирует domain.ResultFolder в ResultFolderResponse.
func FolderFromDomain(f domain.ResultFolder) ResultFolderResponse {
	return ResultFolderResponse{
		Name:           f.Name,
		Created:        f.Created,
		SolutionsCount: f.SolutionsCount,
		FileCount:      f.FileCount,
		TotalSize:      f.TotalSize,
		RuntimeSeconds: f.RuntimeSeconds,
	}
}

// DeleteFolderResponse — ответ на удаление папки результатов.
type DeleteFolderResponse struct {
	Name         string `json:"name"`
	FilesDeleted int    `json:"files_deleted"`
}
