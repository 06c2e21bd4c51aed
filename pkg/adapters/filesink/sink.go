// Package filesink writes render intermediates to a debug directory.
//
// Layout under the render directory:
//
//	still.png
//	frames/frame-0000.png ...
//	chunks/chunk-0000.bin ...
//	session.json
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/placeholder/pkg/ports"
)

// Sink saves debug output to files.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a sink rooted at baseDir.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// ForRender returns a sink writing into a subdirectory named after a render
// ID, so concurrent renders never share files.
func (s *Sink) ForRender(id string) *Sink {
	return New(filepath.Join(s.baseDir, id), s.fs, s.renderer)
}

// Dir returns the directory this sink writes into.
func (s *Sink) Dir() string {
	return s.baseDir
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveStill saves the painted still as PNG.
func (s *Sink) SaveStill(img image.Image) error {
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode still: %w", err)
	}
	return s.fs.WriteFile(filepath.Join(s.baseDir, "still.png"), data)
}

// SaveFrame saves a painted video frame as PNG.
func (s *Sink) SaveFrame(index int, img image.Image) error {
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode frame %d: %w", index, err)
	}
	return s.write("frames", fmt.Sprintf("frame-%04d.png", index), data)
}

// SaveChunk saves an encoder chunk exactly as emitted.
func (s *Sink) SaveChunk(seq int, data []byte) error {
	return s.write("chunks", fmt.Sprintf("chunk-%04d.bin", seq), data)
}

// SaveSessionJSON saves the recorder session report.
func (s *Sink) SaveSessionJSON(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "session.json"), data)
}

func (s *Sink) write(sub, name string, data []byte) error {
	dir := filepath.Join(s.baseDir, sub)
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	return s.fs.WriteFile(filepath.Join(dir, name), data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
