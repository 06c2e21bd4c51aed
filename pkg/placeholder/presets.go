package placeholder

import (
	"fmt"
	"strings"
)

// SizePreset is a named pair of dimensions.
type SizePreset struct {
	Name   string
	Width  int
	Height int
}

// SizePresets lists the quick presets in display order.
var SizePresets = []SizePreset{
	{Name: "HD", Width: 1280, Height: 720},
	{Name: "Full HD", Width: 1920, Height: 1080},
	{Name: "4K", Width: 3840, Height: 2160},
	{Name: "Square", Width: 500, Height: 500},
	{Name: "Instagram Story", Width: 1080, Height: 1920},
	{Name: "YouTube Thumbnail", Width: 1280, Height: 720},
	{Name: "Facebook Cover", Width: 1200, Height: 630},
	{Name: "Twitter Header", Width: 1500, Height: 500},
}

// Slug returns the preset name as used on the command line, e.g. "full-hd".
func (p SizePreset) Slug() string {
	return strings.ReplaceAll(strings.ToLower(p.Name), " ", "-")
}

// FindPreset looks a preset up by name or slug, ignoring case, spaces,
// dashes and underscores.
func FindPreset(name string) (SizePreset, error) {
	key := normalize(name)
	for _, p := range SizePresets {
		if normalize(p.Name) == key {
			return p, nil
		}
	}
	return SizePreset{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidConfig, name)
}

func normalize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(s))
}
