package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/shaiso/Rota/internal/domain"
	"github.com/shaiso/Rota/internal/storage"
)

// Ошибки реестра результатов.
var (
	// ErrFolderNotFound — папка результатов не найдена.
	ErrFolderNotFound = errors.New("result folder not found")
)

// folderPattern распознаёт имена папок результатов.
// Строчный вариант result_<N> — текущий формат; Result_<N> оставлен
// ради папок, созданных ранними версиями системы.
var folderPattern = regexp.MustCompile(`^[Rr]esult_(\d+)$`)

// metadataFile — имя файла метаданных в папке результатов.
const metadataFile = "metadata.json"

// Registry — реестр папок результатов в ObjectStore.
//
// Папка — префикс result_<N>/ с файлами solver'а и metadata.json,
// который пишется последним и служит маркером полноты папки.
//
// Выделение номера (scan-then-allocate) НЕ атомарно: два воркера,
// завершившиеся одновременно, могут выбрать один номер. Завершения
// редки, коллизия косметическая (файлы лягут в общую папку), поэтому
// компромисс принят вместо внешнего счётчика.
type Registry struct {
	objects storage.ObjectStore
	logger  *slog.Logger
}

// New создаёт Registry поверх ObjectStore.
func New(objects storage.ObjectStore, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{objects: objects, logger: logger}
}

// NextFolder возвращает имя и номер следующей папки результатов:
// max(N)+1 по существующим папкам, либо 1, если их нет.
func (r *Registry) NextFolder(ctx context.Context) (string, int, error) {
	objects, err := r.objects.List(ctx, "")
	if err != nil {
		return "", 0, fmt.Errorf("list folders: %w", err)
	}

	maxNum := 0
	for _, obj := range objects {
		folder, _, ok := strings.Cut(obj.Key, "/")
		if !ok {
			continue
		}
		if num, ok := parseFolderNumber(folder); ok && num > maxNum {
			maxNum = num
		}
	}

	num := maxNum + 1
	return fmt.Sprintf("result_%d", num), num, nil
}

// parseFolderNumber извлекает N из result_<N> / Result_<N>.
func parseFolderNumber(name string) (int, bool) {
	m := folderPattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	num, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return num, true
}

// Upload загружает файлы в папку name, затем metadata.json последним.
//
// Ошибка загрузки отдельного файла логируется и пропускается:
// частичный результат полезнее отсутствующего. Ошибка записи
// metadata.json — это ошибка всей загрузки: без маркера папка
// считается незавершённой.
func (r *Registry) Upload(ctx context.Context, name string, files map[string][]byte, meta *domain.ResultMeta) error {
	filenames := make([]string, 0, len(files))
	for fn := range files {
		filenames = append(filenames, fn)
	}
	sort.Strings(filenames)

	for _, fn := range filenames {
		key := name + "/" + fn
		if err := r.objects.Put(ctx, key, files[fn], contentTypeFor(fn)); err != nil {
			r.logger.Warn("failed to upload result file, skipping",
				"folder", name,
				"file", fn,
				"error", err,
			)
			continue
		}
		r.logger.Debug("uploaded result file", "key", key, "size", len(files[fn]))
	}

	metaBytes, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	if err := r.objects.Put(ctx, name+"/"+metadataFile, metaBytes, "application/json"); err != nil {
		return fmt.Errorf("upload metadata for %s: %w", name, err)
	}

	r.logger.Info("result folder uploaded",
		"folder", name,
		"files", len(files)+1,
		"run_id", meta.RunID,
	)

	return nil
}

// ListFolders возвращает сводки по всем папкам результатов,
// отсортированные по номеру по убыванию.
//
// Папка с битым или отсутствующим metadata.json не выпадает из
// списка — отдаётся с нулевыми полями метаданных.
func (r *Registry) ListFolders(ctx context.Context) ([]domain.ResultFolder, error) {
	objects, err := r.objects.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}

	type folderAgg struct {
		fileCount int
		totalSize int64
	}

	byFolder := make(map[string]*folderAgg)
	for _, obj := range objects {
		folder, _, ok := strings.Cut(obj.Key, "/")
		if !ok {
			continue
		}
		if _, matches := parseFolderNumber(folder); !matches {
			continue
		}
		agg, ok := byFolder[folder]
		if !ok {
			agg = &folderAgg{}
			byFolder[folder] = agg
		}
		agg.fileCount++
		agg.totalSize += obj.Size
	}

	folders := make([]domain.ResultFolder, 0, len(byFolder))
	for name, agg := range byFolder {
		summary := domain.ResultFolder{
			Name:      name,
			FileCount: agg.fileCount,
			TotalSize: agg.totalSize,
		}

		meta, err := r.readMetadata(ctx, name)
		if err != nil {
			r.logger.Warn("listing folder with degraded metadata", "folder", name, "error", err)
		} else {
			summary.Created = meta.CreatedAt
			summary.SolutionsCount = meta.SolutionsCount
			summary.RuntimeSeconds = meta.RuntimeSeconds
		}

		folders = append(folders, summary)
	}

	sort.Slice(folders, func(i, j int) bool {
		ni, _ := parseFolderNumber(folders[i].Name)
		nj, _ := parseFolderNumber(folders[j].Name)
		return ni > nj
	})

	return folders, nil
}

// readMetadata читает и парсит metadata.json папки.
func (r *Registry) readMetadata(ctx context.Context, name string) (*domain.ResultMeta, error) {
	data, err := r.objects.Get(ctx, name+"/"+metadataFile)
	if err != nil {
		return nil, err
	}

	var meta domain.ResultMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}

	return &meta, nil
}

// DeleteFolder удаляет все объекты под префиксом папки.
// Возвращает количество удалённых; пустой префикс — ErrFolderNotFound.
func (r *Registry) DeleteFolder(ctx context.Context, name string) (int, error) {
	objects, err := r.objects.List(ctx, name+"/")
	if err != nil {
		return 0, fmt.Errorf("list folder %s: %w", name, err)
	}

	if len(objects) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrFolderNotFound, name)
	}

	deleted := 0
	for _, obj := range objects {
		if err := r.objects.Delete(ctx, obj.Key); err != nil {
			r.logger.Warn("failed to delete object, skipping", "key", obj.Key, "error", err)
			continue
		}
		deleted++
	}

	r.logger.Info("result folder deleted", "folder", name, "deleted", deleted)
	return deleted, nil
}

// contentTypeFor возвращает MIME-тип по расширению файла.
func contentTypeFor(filename string) string {
	switch {
	case strings.HasSuffix(filename, ".json"):
		return "application/json"
	case strings.HasSuffix(filename, ".csv"):
		return "text/csv"
	case strings.HasSuffix(filename, ".log"), strings.HasSuffix(filename, ".txt"):
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
