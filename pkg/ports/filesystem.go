package ports

// FileSystem is the storage used for delivered assets, debug artifacts and
// summaries. Writers create missing parent directories.
type FileSystem interface {
	WriteFile(path string, data []byte) error
	MkdirAll(path string) error
	Exists(path string) (bool, error)
	Remove(path string) error

	// Rename moves oldpath over newpath. Delivery relies on it to publish a
	// finished temporary file in one step.
	Rename(oldpath, newpath string) error
}
