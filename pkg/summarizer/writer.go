package summarizer

import (
	"fmt"
	"io"

	"github.com/user/placeholder/pkg/ports"
)

// Formatter renders a Summary as text.
type Formatter interface {
	Format(summary *Summary) string
}

// Writer stores formatted summaries through a ports.FileSystem.
type Writer struct {
	formatter Formatter
	fs        ports.FileSystem
}

// NewWriter creates a new Writer.
func NewWriter(formatter Formatter, fs ports.FileSystem) *Writer {
	return &Writer{
		formatter: formatter,
		fs:        fs,
	}
}

// Write formats the summary and writes it to path. Parent directories are
// created by the file system.
func (w *Writer) Write(path string, summary *Summary) error {
	content := w.formatter.Format(summary)
	if err := w.fs.WriteFile(path, []byte(content)); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

// Print formats the summary to out.
func (w *Writer) Print(out io.Writer, summary *Summary) error {
	if _, err := io.WriteString(out, w.formatter.Format(summary)); err != nil {
		return fmt.Errorf("print summary: %w", err)
	}
	return nil
}
