package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jwebster45206/shop-engine/pkg/storage"
)

const (
	catalogsDir = "catalogs"
	partyDir    = "party"
)

// FileStorage implements storage.Storage over a data directory laid out as
// <dataDir>/catalogs/*.json and <dataDir>/party/*.json.
type FileStorage struct {
	logger  *slog.Logger
	dataDir string
}

var _ storage.Storage = (*FileStorage)(nil)

func NewFileStorage(dataDir string, logger *slog.Logger) *FileStorage {
	if dataDir == "" {
		dataDir = "./data"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStorage{
		logger:  logger,
		dataDir: dataDir,
	}
}

// Ping checks that the catalogs directory is readable.
func (f *FileStorage) Ping(ctx context.Context) error {
	path := filepath.Join(f.dataDir, catalogsDir)
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("data directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data directory unavailable: %s is not a directory", path)
	}
	return nil
}

func (f *FileStorage) Close() error {
	return nil
}
