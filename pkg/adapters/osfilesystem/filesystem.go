// Package osfilesystem stores rendered assets on the local disk.
package osfilesystem

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/user/placeholder/pkg/ports"
)

const (
	dirPerm  fs.FileMode = 0o755
	filePerm fs.FileMode = 0o644
)

// FileSystem implements ports.FileSystem on the os package.
type FileSystem struct{}

// New creates a new FileSystem.
func New() *FileSystem {
	return &FileSystem{}
}

// WriteFile writes data, creating missing parent directories first.
func (f *FileSystem) WriteFile(path string, data []byte) error {
	if err := f.ensureParent(path); err != nil {
		return err
	}
	return os.WriteFile(path, data, filePerm)
}

func (f *FileSystem) MkdirAll(path string) error {
	return os.MkdirAll(path, dirPerm)
}

func (f *FileSystem) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

func (f *FileSystem) Remove(path string) error {
	return os.Remove(path)
}

// Rename moves oldpath over newpath. Both must be on the same volume for
// the replacement to be atomic.
func (f *FileSystem) Rename(oldpath, newpath string) error {
	if err := f.ensureParent(newpath); err != nil {
		return err
	}
	return os.Rename(oldpath, newpath)
}

func (f *FileSystem) ensureParent(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, dirPerm)
}

// Ensure FileSystem implements ports.FileSystem
var _ ports.FileSystem = (*FileSystem)(nil)
