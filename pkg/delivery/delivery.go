// Package delivery writes finished assets to disk and tracks whether a
// render is in flight.
package delivery

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/user/placeholder/pkg/adapters/logger"
	"github.com/user/placeholder/pkg/pipeline"
	"github.com/user/placeholder/pkg/ports"
)

// ErrEmptyAsset is returned when Save is given an asset without data.
var ErrEmptyAsset = errors.New("delivery: asset has no data")

// Delivery saves encoded assets through a ports.FileSystem.
type Delivery struct {
	fs        ports.FileSystem
	outputDir string
	logger    ports.Logger
}

// New creates a Delivery that places relative filenames under outputDir.
func New(fs ports.FileSystem, outputDir string, log ports.Logger) *Delivery {
	if log == nil {
		log = logger.NewNoop()
	}
	return &Delivery{
		fs:        fs,
		outputDir: outputDir,
		logger:    log.WithComponent("delivery"),
	}
}

// DefaultFilename returns placeholder-{w}x{h}.{ext} for stills and
// placeholder-{w}x{h}-{duration}s.{ext} for videos.
func DefaultFilename(asset pipeline.EncodedAsset) string {
	ext := asset.Ext
	if ext == "" {
		ext = "bin"
	}
	if asset.Kind == pipeline.KindVideo {
		return fmt.Sprintf("placeholder-%dx%d-%ss.%s", asset.Width, asset.Height, pipeline.FormatSeconds(asset.Duration), ext)
	}
	return fmt.Sprintf("placeholder-%dx%d.%s", asset.Width, asset.Height, ext)
}

// Resolve returns the destination path for filename. An empty name selects
// the default filename; a relative name is placed under the output directory.
func (d *Delivery) Resolve(asset pipeline.EncodedAsset, filename string) string {
	if filename == "" {
		filename = DefaultFilename(asset)
	}
	if filepath.IsAbs(filename) || d.outputDir == "" {
		return filename
	}
	return filepath.Join(d.outputDir, filename)
}

// Save writes asset to a temporary sibling of the destination and renames it
// into place, so a reader never sees a partially written file. The temporary
// file is removed on every failure.
func (d *Delivery) Save(asset pipeline.EncodedAsset, filename string) (string, error) {
	if len(asset.Data) == 0 {
		return "", ErrEmptyAsset
	}

	path := d.Resolve(asset, filename)
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := d.fs.MkdirAll(dir); err != nil {
			return "", fmt.Errorf("create output directory: %w", err)
		}
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()[:8]))
	if err := d.fs.WriteFile(tmp, asset.Data); err != nil {
		d.discard(tmp)
		return "", fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := d.fs.Rename(tmp, path); err != nil {
		d.discard(tmp)
		return "", fmt.Errorf("rename to %s: %w", path, err)
	}

	d.logger.Debug("Output saved to %s", path)
	return path, nil
}

func (d *Delivery) discard(tmp string) {
	exists, err := d.fs.Exists(tmp)
	if err == nil && !exists {
		return
	}
	if err := d.fs.Remove(tmp); err != nil {
		d.logger.Warn("Failed to remove temporary file %s: %v", tmp, err)
	}
}
