// Package ggrenderer provides a renderer implementation using the gg library.
package ggrenderer

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/user/placeholder/pkg/ports"
)

// MaxSurfaceDimension is the largest width or height a canvas may have.
const MaxSurfaceDimension = 16384

// ErrInvalidSize is returned for non-positive or oversized canvases.
var ErrInvalidSize = errors.New("ggrenderer: invalid canvas size")

// Renderer implements ports.Renderer using the gg library.
type Renderer struct {
	mu    sync.Mutex
	fonts map[fontKey]*opentype.Font
}

type fontKey struct {
	path string
	bold bool
}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{fonts: make(map[fontKey]*opentype.Font)}
}

// CreateCanvas creates a new drawing canvas cleared to bg.
func (r *Renderer) CreateCanvas(width, height int, bg color.Color) (ports.Canvas, error) {
	if width <= 0 || height <= 0 || width > MaxSurfaceDimension || height > MaxSurfaceDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(bg)
	dc.Clear()
	return &Canvas{
		dc:       dc,
		renderer: r,
		faces:    make(map[faceKey]font.Face),
	}, nil
}

// EncodeImage encodes an image to the specified format.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatJPEG:
		opts := &jpeg.Options{Quality: quality}
		if err := jpeg.Encode(&buf, img, opts); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	case ports.FormatPNG:
		enc := png.Encoder{CompressionLevel: png.DefaultCompression}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}

	return buf.Bytes(), nil
}

// ResizeImage resizes an image to the specified dimensions.
func (r *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// font returns the parsed font for a style, falling back to the embedded
// Go fonts when the custom font cannot be loaded.
func (r *Renderer) font(path string, bold bool) (*opentype.Font, error) {
	key := fontKey{path: path, bold: bold}

	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.fonts[key]; ok {
		return f, nil
	}

	fallback := goregular.TTF
	if bold {
		fallback = gobold.TTF
	}

	var f *opentype.Font
	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			f, _ = opentype.Parse(data)
		}
	}
	if f == nil {
		var err error
		if f, err = opentype.Parse(fallback); err != nil {
			return nil, fmt.Errorf("parse font: %w", err)
		}
	}

	r.fonts[key] = f
	return f, nil
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)

// Canvas implements ports.Canvas using gg.Context.
// A Canvas is owned by one render and is not safe for concurrent use.
type Canvas struct {
	dc       *gg.Context
	renderer *Renderer
	faces    map[faceKey]font.Face
}

type faceKey struct {
	path string
	bold bool
	size float64
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (int, int) {
	return c.dc.Width(), c.dc.Height()
}

// Fill paints the whole canvas.
func (c *Canvas) Fill(col color.Color) {
	c.dc.SetColor(col)
	c.dc.Clear()
}

// DrawRect draws a filled rectangle.
func (c *Canvas) DrawRect(x, y, w, h float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Fill()
}

// DrawText draws text with its vertical middle at y.
func (c *Canvas) DrawText(text string, x, y float64, style ports.TextStyle) {
	c.applyFace(style)
	c.dc.SetColor(style.Color)

	ax := 0.0
	switch style.Align {
	case ports.AlignCenter:
		ax = 0.5
	case ports.AlignRight:
		ax = 1.0
	}

	c.dc.DrawStringAnchored(text, x, y, ax, 0.5)
}

// MeasureText returns the rendered width and height of text.
func (c *Canvas) MeasureText(text string, style ports.TextStyle) (float64, float64) {
	c.applyFace(style)
	return c.dc.MeasureString(text)
}

// ToImage returns the canvas as an image.Image.
func (c *Canvas) ToImage() image.Image {
	return c.dc.Image()
}

func (c *Canvas) applyFace(style ports.TextStyle) {
	size := style.FontSize
	if size < 1 {
		size = 1
	}

	key := faceKey{path: style.FontPath, bold: style.Bold, size: size}
	face, ok := c.faces[key]
	if !ok {
		f, err := c.renderer.font(style.FontPath, style.Bold)
		if err != nil {
			return
		}
		face, err = opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return
		}
		c.faces[key] = face
	}
	c.dc.SetFontFace(face)
}

// Ensure Canvas implements ports.Canvas
var _ ports.Canvas = (*Canvas)(nil)
