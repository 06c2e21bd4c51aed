package mocks

import (
	"image"
	"image/color"
	"sync"

	"github.com/user/placeholder/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	mu sync.Mutex

	CreateCanvasFunc func(width, height int, bg color.Color) (ports.Canvas, error)
	EncodeImageFunc  func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
	ResizeImageFunc  func(img image.Image, width, height int) image.Image

	// Recorded calls for verification
	Canvases    []*Canvas
	EncodeCalls int
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) (ports.Canvas, error) {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	c := NewCanvas(width, height)
	m.mu.Lock()
	m.Canvases = append(m.Canvases, c)
	m.mu.Unlock()
	return c, nil
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	m.mu.Lock()
	m.EncodeCalls++
	m.mu.Unlock()
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	b := img.Bounds()
	return []byte{byte(format), byte(b.Dx()), byte(b.Dy())}, nil
}

func (m *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

var _ ports.Renderer = (*Renderer)(nil)

// TextCall records a call to Canvas.DrawText.
type TextCall struct {
	Text  string
	X, Y  float64
	Style ports.TextStyle
}

// RectCall records a call to Canvas.DrawRect.
type RectCall struct {
	X, Y, W, H float64
	Color      color.Color
}

// Canvas is a mock implementation of ports.Canvas that records paint calls.
type Canvas struct {
	width  int
	height int

	Fills []color.Color
	Rects []RectCall
	Texts []TextCall
}

// NewCanvas creates a new mock Canvas.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{width: width, height: height}
}

func (m *Canvas) Size() (int, int) {
	return m.width, m.height
}

func (m *Canvas) Fill(c color.Color) {
	m.Fills = append(m.Fills, c)
}

func (m *Canvas) DrawRect(x, y, w, h float64, c color.Color) {
	m.Rects = append(m.Rects, RectCall{X: x, Y: y, W: w, H: h, Color: c})
}

func (m *Canvas) DrawText(text string, x, y float64, style ports.TextStyle) {
	m.Texts = append(m.Texts, TextCall{Text: text, X: x, Y: y, Style: style})
}

// MeasureText approximates a monospace face: 0.6em per rune, 1em high.
func (m *Canvas) MeasureText(text string, style ports.TextStyle) (float64, float64) {
	return float64(len([]rune(text))) * style.FontSize * 0.6, style.FontSize
}

func (m *Canvas) ToImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, m.width, m.height))
}

// Reset clears the recorded calls.
func (m *Canvas) Reset() {
	m.Fills = nil
	m.Rects = nil
	m.Texts = nil
}

var _ ports.Canvas = (*Canvas)(nil)
