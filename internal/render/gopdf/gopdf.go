// Package gopdf implements render.Canvas with signintech/gopdf. Unlike the
// fpdf backend it has no built-in faces, so at least one TrueType font is
// required.
package gopdf

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/signintech/gopdf"

	"github.com/letterpack/letterpack/internal/render"
)

// ErrFontRequired is returned when no face is supplied
var ErrFontRequired = errors.New("gopdf: a TrueType font is required")

// Options configures the canvas
type Options struct {
	Title   string
	Creator string
	Faces   []render.Face
	// CreationDate fixes the document timestamp; zero means now
	CreationDate time.Time
}

// Canvas is a render.Canvas backed by gopdf
type Canvas struct {
	pdf    *gopdf.GoPdf
	width  float64
	height float64
	pages  int
	faces  map[string]bool
	// primary is the first registered face
	primary string

	fontName string
	fontSize float64
	err      error
}

var _ render.Canvas = (*Canvas)(nil)

// New creates an A4 canvas and registers every face
func New(opts Options) (*Canvas, error) {
	if len(opts.Faces) == 0 {
		return nil, ErrFontRequired
	}

	size := *gopdf.PageSizeA4
	p := &gopdf.GoPdf{}
	p.Start(gopdf.Config{PageSize: size})
	info := gopdf.PdfInfo{Title: opts.Title, Creator: opts.Creator, Producer: "letterpack"}
	if !opts.CreationDate.IsZero() {
		info.CreationDate = opts.CreationDate
	}
	p.SetInfo(info)

	c := &Canvas{pdf: p, width: size.W, height: size.H, faces: map[string]bool{}}
	for _, face := range opts.Faces {
		var err error
		if face.Data != nil {
			err = p.AddTTFFontData(face.Name, face.Data)
		} else {
			err = p.AddTTFFont(face.Name, face.Path)
		}
		if err != nil {
			return nil, fmt.Errorf("registering font %s: %w", face.Name, err)
		}
		c.faces[face.Name] = true
	}
	c.primary = opts.Faces[0].Name
	c.fontName = c.primary
	c.fontSize = 12
	c.applyFont()
	if c.err != nil {
		return nil, c.err
	}
	return c, nil
}

func (c *Canvas) fail(err error) {
	if err != nil && c.err == nil {
		c.err = err
	}
}

// flip converts a bottom-left origin y to gopdf's top-left origin
func (c *Canvas) flip(y float64) float64 {
	return c.height - y
}

func (c *Canvas) PageSize() (float64, float64) { return c.width, c.height }

func (c *Canvas) BeginPage() {
	c.pdf.AddPage()
	c.pages++
	c.applyFont()
}

func (c *Canvas) EndPage() {}

func (c *Canvas) PageCount() int { return c.pages }

// resolve maps names gopdf cannot draw, such as the fpdf built-in, to the
// primary face
func (c *Canvas) resolve(name string) string {
	if c.faces[name] {
		return name
	}
	return c.primary
}

func (c *Canvas) SetFont(name string, size float64) {
	c.fontName, c.fontSize = c.resolve(name), size
	c.applyFont()
}

func (c *Canvas) applyFont() {
	c.fail(c.pdf.SetFont(c.fontName, "", c.fontSize))
}

func (c *Canvas) SetFillColor(col render.Color) {
	r, g, b := col.RGB255()
	c.pdf.SetFillColor(uint8(r), uint8(g), uint8(b))
	c.pdf.SetTextColor(uint8(r), uint8(g), uint8(b))
}

func (c *Canvas) SetStrokeColor(col render.Color) {
	r, g, b := col.RGB255()
	c.pdf.SetStrokeColor(uint8(r), uint8(g), uint8(b))
}

func (c *Canvas) SetLineWidth(w float64) { c.pdf.SetLineWidth(w) }

func (c *Canvas) SetDash(on, off float64) {
	c.pdf.SetCustomLineType([]float64{on, off}, 0)
}

func (c *Canvas) ClearDash() {
	c.pdf.SetLineType("solid")
}

func (c *Canvas) DrawText(x, y float64, s string) {
	if s == "" {
		return
	}
	c.pdf.SetXY(x, c.flip(y))
	c.fail(c.pdf.Text(s))
}

func (c *Canvas) DrawTextRight(x, y float64, s string) {
	c.DrawText(x-c.MeasureText(s, c.fontName, c.fontSize), y, s)
}

func (c *Canvas) MeasureText(s, font string, size float64) float64 {
	font = c.resolve(font)
	if font != c.fontName || size != c.fontSize {
		name, cur := c.fontName, c.fontSize
		c.fail(c.pdf.SetFont(font, "", size))
		defer func() { c.fail(c.pdf.SetFont(name, "", cur)) }()
	}
	w, err := c.pdf.MeasureTextWidth(s)
	c.fail(err)
	return w
}

func (c *Canvas) DrawLine(x1, y1, x2, y2 float64) {
	c.pdf.Line(x1, c.flip(y1), x2, c.flip(y2))
}

func (c *Canvas) DrawRect(x, y, w, h float64) {
	c.pdf.RectFromUpperLeftWithStyle(x, c.flip(y+h), w, h, "D")
}

func (c *Canvas) Err() error { return c.err }

func (c *Canvas) Save(w io.Writer) error {
	if c.err != nil {
		return c.err
	}
	if _, err := c.pdf.WriteTo(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}
