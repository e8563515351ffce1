package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore implements Store on the local filesystem under one base
// directory, the default backend for a self-hosted deployment.
type LocalStore struct {
	baseDir string
}

// NewLocalStore creates the base directory if needed and returns a store
// rooted there.
func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o770); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", baseDir, err)
	}
	return &LocalStore{baseDir: baseDir}, nil
}

func (s *LocalStore) Write(ctx context.Context, path string, data []byte) error {
	full := filepath.Join(s.baseDir, path)
	if err := os.WriteFile(full, data, 0o640); err != nil {
		return fmt.Errorf("write blob %s: %w", path, err)
	}
	return nil
}

func (s *LocalStore) Read(ctx context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, path))
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", path, err)
	}
	return data, nil
}

func (s *LocalStore) Delete(ctx context.Context, path string) error {
	if err := os.Remove(filepath.Join(s.baseDir, path)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete blob %s: %w", path, err)
	}
	return nil
}

func (s *LocalStore) CreateDir(ctx context.Context, path string) error {
	if err := os.MkdirAll(filepath.Join(s.baseDir, path), 0o770); err != nil {
		return fmt.Errorf("create dir %s: %w", path, err)
	}
	return nil
}

func (s *LocalStore) RemoveDir(ctx context.Context, path string) error {
	if err := os.Remove(filepath.Join(s.baseDir, path)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove dir %s: %w", path, err)
	}
	return nil
}
