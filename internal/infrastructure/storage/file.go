// Package storage implements the file backed session snapshot.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/99minutos/auth-gateway/internal/core/domain"
	"github.com/99minutos/auth-gateway/internal/core/session"
)

const (
	dirPerm  = 0o755
	filePerm = 0o600
)

// FileSnapshot stores the session table as a CSV file. Writes go to a temp
// file in the same directory and are renamed over the target, so readers
// never observe a partial snapshot.
type FileSnapshot struct {
	path string
}

// NewFileSnapshot returns a persister for path. The parent directory is
// created on the first save.
func NewFileSnapshot(path string) *FileSnapshot {
	return &FileSnapshot{path: path}
}

// Load reads the snapshot. A missing file yields no sessions and no error.
func (f *FileSnapshot) Load(_ context.Context) ([]domain.Session, error) {
	file, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open session file: %w", err)
	}
	defer file.Close()

	return session.ReadSnapshot(file)
}

// Save rewrites the whole snapshot.
func (f *FileSnapshot) Save(_ context.Context, sessions []domain.Session) error {
	var buf bytes.Buffer
	if err := session.WriteSnapshot(&buf, sessions); err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close session file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

// Ping checks that the snapshot directory exists or can be created.
func (f *FileSnapshot) Ping(_ context.Context) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("session dir: %w", err)
	}
	return nil
}
