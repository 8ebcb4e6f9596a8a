package domain

import "time"

// ResultMeta — содержимое metadata.json в папке результатов.
//
// Пишется в папку последним файлом: его наличие — маркер того,
// что папка загружена целиком.
type ResultMeta struct {
	RunID          string    `json:"run_id"`
	CreatedAt      time.Time `json:"created_at"`
	SolutionsCount int       `json:"solutions_count"`
	FolderName     string    `json:"folder_name"`
	ResultNumber   int       `json:"result_number"`
	RuntimeSeconds float64   `json:"runtime_seconds,omitempty"`
}

// ResultFolder — сводка по папке результатов для листинга.
//
// Если metadata.json отсутствует или не парсится, папка всё равно
// попадает в листинг с нулевыми полями метаданных.
type ResultFolder struct {
	Name           string    `json:"name"`
	Created        time.Time `json:"created"`
	SolutionsCount int       `json:"solutions_count"`
	FileCount      int       `json:"file_count"`
	TotalSize      int64     `json:"total_size"`
	RuntimeSeconds float64   `json:"runtime_seconds"`
}
