package mocks

import (
	"fmt"
	"sync"

	"github.com/user/placeholder/pkg/ports"
)

// FileSystem is an in-memory ports.FileSystem. Each *Func field, when set,
// replaces the default behavior of its method.
type FileSystem struct {
	mu    sync.Mutex
	files map[string][]byte
	dirs  map[string]bool

	WriteFileFunc func(path string, data []byte) error
	MkdirAllFunc  func(path string) error
	ExistsFunc    func(path string) (bool, error)
	RemoveFunc    func(path string) error
	RenameFunc    func(oldpath, newpath string) error

	// Recorded calls
	Writes  []string
	Renames [][2]string
	Removes []string
}

var _ ports.FileSystem = (*FileSystem)(nil)

// NewFileSystem creates an empty in-memory file system.
func NewFileSystem() *FileSystem {
	return &FileSystem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

func (m *FileSystem) WriteFile(path string, data []byte) error {
	m.mu.Lock()
	m.Writes = append(m.Writes, path)
	m.mu.Unlock()
	if m.WriteFileFunc != nil {
		return m.WriteFileFunc(path, data)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = append([]byte(nil), data...)
	return nil
}

func (m *FileSystem) MkdirAll(path string) error {
	if m.MkdirAllFunc != nil {
		return m.MkdirAllFunc(path)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path] = true
	return nil
}

func (m *FileSystem) Exists(path string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(path)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, isFile := m.files[path]
	return isFile || m.dirs[path], nil
}

func (m *FileSystem) Remove(path string) error {
	m.mu.Lock()
	m.Removes = append(m.Removes, path)
	m.mu.Unlock()
	if m.RemoveFunc != nil {
		return m.RemoveFunc(path)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, path)
	delete(m.dirs, path)
	return nil
}

func (m *FileSystem) Rename(oldpath, newpath string) error {
	m.mu.Lock()
	m.Renames = append(m.Renames, [2]string{oldpath, newpath})
	m.mu.Unlock()
	if m.RenameFunc != nil {
		return m.RenameFunc(oldpath, newpath)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[oldpath]
	if !ok {
		return fmt.Errorf("rename %s: file not found", oldpath)
	}
	m.files[newpath] = data
	delete(m.files, oldpath)
	return nil
}

// GetFile returns a stored file.
func (m *FileSystem) GetFile(path string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path]
	return data, ok
}

// Files returns a copy of every stored file keyed by path.
func (m *FileSystem) Files() map[string][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	files := make(map[string][]byte, len(m.files))
	for k, v := range m.files {
		files[k] = v
	}
	return files
}
