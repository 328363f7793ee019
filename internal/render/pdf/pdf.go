package pdf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"codeberg.org/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/letterpack/letterpack/internal/render"
)

// Renderer is a render.Canvas backed by fpdf
type Renderer struct {
	pdf    *fpdf.Fpdf
	width  float64
	height float64
	pages  int

	// current font, restored after MeasureText
	fontName string
	fontSize float64

	logger *zap.Logger
}

// RenderOptions contains options for rendering
type RenderOptions struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
	Producer string
	// Faces are registered under their Name before drawing
	Faces []render.Face
	// CreationDate fixes the document timestamps; zero means now
	CreationDate time.Time
	// Logger receives font registration and page events at debug level
	Logger *zap.Logger
}

var _ render.Canvas = (*Renderer)(nil)

// NewRenderer creates a new A4 portrait PDF canvas
func NewRenderer(options RenderOptions) (*Renderer, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(options.Title, true)
	pdf.SetAuthor(options.Author, true)
	pdf.SetSubject(options.Subject, true)
	pdf.SetKeywords(options.Keywords, true)
	pdf.SetCreator(options.Creator, true)
	pdf.SetProducer(options.Producer, true)
	if !options.CreationDate.IsZero() {
		pdf.SetCreationDate(options.CreationDate)
		pdf.SetModificationDate(options.CreationDate)
		pdf.SetCatalogSort(true)
	}

	w, h := pdf.GetPageSize()
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Renderer{pdf: pdf, width: w, height: h, logger: logger}
	if err := r.registerFonts(options.Faces); err != nil {
		return nil, err
	}
	r.SetFont(render.DefaultFont, 12)
	return r, nil
}

// registerFonts registers fonts with the PDF document
func (r *Renderer) registerFonts(faces []render.Face) error {
	for _, face := range faces {
		data := face.Data
		if data == nil && face.Path != "" {
			b, err := os.ReadFile(face.Path)
			if err != nil {
				return fmt.Errorf("reading font %s: %w", face.Path, err)
			}
			data = b
		}
		r.pdf.AddUTF8FontFromBytes(face.Name, "", data)
		if err := r.pdf.Error(); err != nil {
			return fmt.Errorf("registering font %s: %w", face.Name, err)
		}
		r.logger.Debug("Registered font", zap.String("name", face.Name), zap.Int("bytes", len(data)))
	}
	return nil
}

// flip converts a bottom-left origin y to fpdf's top-left origin
func (r *Renderer) flip(y float64) float64 {
	return r.height - y
}

func (r *Renderer) PageSize() (float64, float64) { return r.width, r.height }

func (r *Renderer) BeginPage() {
	r.pdf.AddPage()
	r.pages++
	r.logger.Debug("Rendering page", zap.Int("page", r.pages))
}

func (r *Renderer) EndPage() {}

func (r *Renderer) PageCount() int { return r.pages }

func (r *Renderer) SetFont(name string, size float64) {
	r.fontName, r.fontSize = name, size
	r.pdf.SetFont(name, "", size)
}

func (r *Renderer) SetFillColor(c render.Color) {
	red, green, blue := c.RGB255()
	r.pdf.SetFillColor(red, green, blue)
	r.pdf.SetTextColor(red, green, blue)
}

func (r *Renderer) SetStrokeColor(c render.Color) {
	red, green, blue := c.RGB255()
	r.pdf.SetDrawColor(red, green, blue)
}

func (r *Renderer) SetLineWidth(w float64) { r.pdf.SetLineWidth(w) }

func (r *Renderer) SetDash(on, off float64) {
	r.pdf.SetDashPattern([]float64{on, off}, 0)
}

func (r *Renderer) ClearDash() {
	r.pdf.SetDashPattern([]float64{}, 0)
}

func (r *Renderer) DrawText(x, y float64, s string) {
	if s == "" {
		return
	}
	r.pdf.Text(x, r.flip(y), s)
}

func (r *Renderer) DrawTextRight(x, y float64, s string) {
	r.DrawText(x-r.pdf.GetStringWidth(s), y, s)
}

func (r *Renderer) MeasureText(s, font string, size float64) float64 {
	if font == r.fontName && size == r.fontSize {
		return r.pdf.GetStringWidth(s)
	}
	name, cur := r.fontName, r.fontSize
	r.pdf.SetFont(font, "", size)
	w := r.pdf.GetStringWidth(s)
	r.pdf.SetFont(name, "", cur)
	return w
}

func (r *Renderer) DrawLine(x1, y1, x2, y2 float64) {
	r.pdf.Line(x1, r.flip(y1), x2, r.flip(y2))
}

func (r *Renderer) DrawRect(x, y, w, h float64) {
	r.pdf.Rect(x, r.flip(y+h), w, h, "D")
}

func (r *Renderer) Err() error { return r.pdf.Error() }

// Save writes the document. fpdf always emits at least one page, so a
// document without pages is written as a single blank page.
func (r *Renderer) Save(w io.Writer) error {
	if err := r.pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

// SaveFile writes the document to path, creating parent directories
func (r *Renderer) SaveFile(path string) error {
	outputDir := filepath.Dir(path)
	if _, err := os.Stat(outputDir); os.IsNotExist(err) {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	return r.pdf.OutputFileAndClose(path)
}
