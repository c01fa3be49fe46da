package storage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jwebster45206/shop-engine/pkg/catalog"
)

// ListCatalogs maps catalog names to their filenames. Unreadable files are
// skipped with a warning.
func (f *FileStorage) ListCatalogs(ctx context.Context) (map[string]string, error) {
	dir := filepath.Join(f.dataDir, catalogsDir)
	catalogs := make(map[string]string)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			f.logger.Warn("Failed to read catalog file", "path", path, "error", err)
			return nil
		}

		c, err := catalog.Decode(data, false)
		if err != nil {
			f.logger.Warn("Failed to decode catalog file", "path", path, "error", err)
			return nil
		}

		catalogs[c.Name] = filepath.Base(path)
		return nil
	})
	if err != nil {
		f.logger.Error("Failed to walk catalogs directory", "error", err)
		return nil, fmt.Errorf("failed to list catalogs: %w", err)
	}

	return catalogs, nil
}

// GetCatalog loads and validates a catalog file.
func (f *FileStorage) GetCatalog(ctx context.Context, filename string) (*catalog.Catalog, error) {
	path := filepath.Join(f.dataDir, catalogsDir, filename)
	f.logger.Debug("Loading catalog", "filename", filename, "full_path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("catalog not found: %s", filename)
		}
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	c, err := catalog.Decode(data, false)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", filename, err)
	}

	return c, nil
}
