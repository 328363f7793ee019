// Package record implements render.Canvas as an in-memory operation log.
// Saving writes the log as JSON. It backs tests and the "record" CLI
// backend used to inspect label geometry.
package record

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/letterpack/letterpack/internal/layout"
	"github.com/letterpack/letterpack/internal/render"
	"github.com/letterpack/letterpack/internal/text"
)

// Operation kinds
const (
	KindPage = "page"
	KindText = "text"
	KindLine = "line"
	KindRect = "rect"
)

// Op is one drawing call with the state it was drawn in
type Op struct {
	Seq       int          `json:"seq"`
	Page      int          `json:"page"`
	Kind      string       `json:"kind"`
	X         float64      `json:"x"`
	Y         float64      `json:"y"`
	X2        float64      `json:"x2,omitempty"`
	Y2        float64      `json:"y2,omitempty"`
	Width     float64      `json:"w,omitempty"`
	Height    float64      `json:"h,omitempty"`
	Text      string       `json:"text,omitempty"`
	Font      string       `json:"font,omitempty"`
	Size      float64      `json:"size,omitempty"`
	Fill      render.Color `json:"fill"`
	Stroke    render.Color `json:"stroke"`
	LineWidth float64      `json:"line_width,omitempty"`
	// Dash is nil for solid strokes
	Dash []float64 `json:"dash,omitempty"`
}

// Document is the saved form of a recording
type Document struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Pages  int     `json:"pages"`
	Ops    []Op    `json:"ops"`
}

// Canvas records drawing calls
type Canvas struct {
	width  float64
	height float64
	pages  int
	ops    []Op
	shaper *text.TextShaper

	font      string
	size      float64
	fill      render.Color
	stroke    render.Color
	lineWidth float64
	dash      []float64
}

var _ render.Canvas = (*Canvas)(nil)

// New creates an empty A4 recording
func New() *Canvas {
	return &Canvas{
		width:     layout.MM(layout.A4WidthMM),
		height:    layout.MM(layout.A4HeightMM),
		shaper:    text.NewTextShaper(),
		font:      render.DefaultFont,
		size:      12,
		lineWidth: 1,
	}
}

func (c *Canvas) add(op Op) {
	op.Seq = len(c.ops)
	op.Page = c.pages
	op.Fill = c.fill
	op.Stroke = c.stroke
	if op.Kind == KindLine || op.Kind == KindRect {
		op.LineWidth = c.lineWidth
		if c.dash != nil {
			op.Dash = append([]float64(nil), c.dash...)
		}
	}
	c.ops = append(c.ops, op)
}

func (c *Canvas) PageSize() (float64, float64) { return c.width, c.height }

func (c *Canvas) BeginPage() {
	c.pages++
	c.add(Op{Kind: KindPage})
}

func (c *Canvas) EndPage() {}

func (c *Canvas) PageCount() int { return c.pages }

func (c *Canvas) SetFont(name string, size float64) { c.font, c.size = name, size }

func (c *Canvas) SetFillColor(col render.Color) { c.fill = col }

func (c *Canvas) SetStrokeColor(col render.Color) { c.stroke = col }

func (c *Canvas) SetLineWidth(w float64) { c.lineWidth = w }

func (c *Canvas) SetDash(on, off float64) { c.dash = []float64{on, off} }

func (c *Canvas) ClearDash() { c.dash = nil }

func (c *Canvas) DrawText(x, y float64, s string) {
	if s == "" {
		return
	}
	c.add(Op{
		Kind:  KindText,
		X:     x,
		Y:     y,
		Width: c.MeasureText(s, c.font, c.size),
		Text:  s,
		Font:  c.font,
		Size:  c.size,
	})
}

func (c *Canvas) DrawTextRight(x, y float64, s string) {
	c.DrawText(x-c.MeasureText(s, c.font, c.size), y, s)
}

// MeasureText estimates widths: full-width glyphs take one em, others half
func (c *Canvas) MeasureText(s, font string, size float64) float64 {
	return c.shaper.MeasureText(s, &text.Font{Family: font, Size: size})
}

func (c *Canvas) DrawLine(x1, y1, x2, y2 float64) {
	c.add(Op{Kind: KindLine, X: x1, Y: y1, X2: x2, Y2: y2})
}

func (c *Canvas) DrawRect(x, y, w, h float64) {
	c.add(Op{Kind: KindRect, X: x, Y: y, Width: w, Height: h})
}

func (c *Canvas) Err() error { return nil }

// Save writes the recording as indented JSON
func (c *Canvas) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c.Document()); err != nil {
		return fmt.Errorf("writing recording: %w", err)
	}
	return nil
}

// Load reads a recording written by Save
func Load(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("reading recording: %w", err)
	}
	return doc, nil
}

// Document returns a snapshot of the recording
func (c *Canvas) Document() Document {
	ops := make([]Op, len(c.ops))
	copy(ops, c.ops)
	return Document{Width: c.width, Height: c.height, Pages: c.pages, Ops: ops}
}
