package registry

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"
)

// Archive собирает zip-архив всех файлов папки результатов.
// Имена внутри архива — относительно папки. Пустой префикс —
// ErrFolderNotFound.
func (r *Registry) Archive(ctx context.Context, name string) ([]byte, error) {
	objects, err := r.objects.List(ctx, name+"/")
	if err != nil {
		return nil, fmt.Errorf("list folder %s: %w", name, err)
	}

	if len(objects) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrFolderNotFound, name)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, obj := range objects {
		data, err := r.objects.Get(ctx, obj.Key)
		if err != nil {
			r.logger.Warn("failed to read object for archive, skipping", "key", obj.Key, "error", err)
			continue
		}

		relative := strings.TrimPrefix(obj.Key, name+"/")
		if relative == "" {
			continue
		}

		w, err := zw.Create(relative)
		if err != nil {
			return nil, fmt.Errorf("create zip entry %s: %w", relative, err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("write zip entry %s: %w", relative, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}

	return buf.Bytes(), nil
}
