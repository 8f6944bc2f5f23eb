package infra

import (
	"fmt"
	"os"

	"github.com/doelab/doe-gateway/internal/ports"
)

// FileScratchStore keeps per-request scratch files in a single private
// directory. Uniqueness under concurrent Acquire calls comes from
// os.CreateTemp, which creates and opens the file atomically.
type FileScratchStore struct {
	dir string
}

func NewFileScratchStore(dir string) (ports.ScratchStore, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("scratch dir %s: %w", dir, err)
	}
	return &FileScratchStore{dir: dir}, nil
}

func (s *FileScratchStore) Acquire(pattern string) (string, error) {
	f, err := os.CreateTemp(s.dir, pattern)
	if err != nil {
		return "", fmt.Errorf("create scratch file: %w", err)
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return path, nil
}

func (s *FileScratchStore) Release(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove scratch file: %w", err)
	}
	return nil
}
