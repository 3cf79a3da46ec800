package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oreline/careers-api/pkg/logger"
	"github.com/oreline/careers-api/pkg/metrics"
	"go.uber.org/zap"
)

const diskBackend = "disk"

// DiskStore writes files into a single local directory
type DiskStore struct {
	dir string
}

// NewDiskStore creates dir if needed
func NewDiskStore(dir string) (*DiskStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("uploads directory is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}

	logger.Info("Disk storage initialized", zap.String("dir", dir))

	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) Backend() string {
	return diskBackend
}

func (s *DiskStore) Dir() string {
	return s.dir
}

// Save writes data to dir/name. Existing files are never overwritten.
func (s *DiskStore) Save(ctx context.Context, name string, data []byte, _ string) (string, error) {
	start := time.Now()
	operation := "save"

	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, name)
	err := writeExclusive(path, data)
	duration := metrics.MeasureDuration(start)

	if err != nil {
		metrics.StorageRequestDuration.WithLabelValues(diskBackend, operation, "error").Observe(duration)
		metrics.StorageRequestTotal.WithLabelValues(diskBackend, operation, "error").Inc()
		logger.LogAPICall(ctx, "disk_storage", operation, "error", duration,
			zap.Error(err),
			zap.String("path", path),
		)
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%s: %w", name, ErrExists)
		}
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	metrics.StorageRequestDuration.WithLabelValues(diskBackend, operation, "success").Observe(duration)
	metrics.StorageRequestTotal.WithLabelValues(diskBackend, operation, "success").Inc()
	metrics.StoredBytes.WithLabelValues(diskBackend).Add(float64(len(data)))
	logger.LogAPICall(ctx, "disk_storage", operation, "success", duration,
		zap.String("path", path),
		zap.Int("size_bytes", len(data)),
	)

	return path, nil
}

// CheckWritable verifies the directory accepts new files
func (s *DiskStore) CheckWritable() error {
	f, err := os.CreateTemp(s.dir, ".healthcheck-*")
	if err != nil {
		return fmt.Errorf("uploads directory not writable: %w", err)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		return err
	}
	return os.Remove(name)
}

func writeExclusive(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}
