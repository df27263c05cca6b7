// Package blob is the path-addressed byte store backing the file
// registry. Objects live under one root directory keyed by the storage
// keys the file service generates.
package blob

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"file-exchange-api/config"
)

type Store struct {
	logger *zap.Logger
	root   string
}

func New(logger *zap.Logger, cfg config.Storage) (*Store, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	return &Store{
		logger: logger,
		root:   cfg.UploadDir,
	}, nil
}

func (s *Store) Save(key string, r io.Reader) (int64, error) {
	path, err := s.path(key)
	if err != nil {
		return 0, err
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create object dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create object: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, r)
	if err != nil {
		return n, fmt.Errorf("failed to write object: %w", err)
	}

	s.logger.Debug("object stored", zap.String("key", key), zap.Int64("size", n))

	return n, nil
}

func (s *Store) Open(key string) (io.ReadCloser, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// Path resolves a key to the on-disk location, for handlers that serve
// the file directly.
func (s *Store) Path(key string) (string, error) {
	return s.path(key)
}

func (s *Store) path(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if strings.Contains(key, "..") || clean == "/" {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.root, clean), nil
}
