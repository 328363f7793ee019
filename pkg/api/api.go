// Package api is the public entry point for rendering letterpack labels.
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/letterpack/letterpack/internal/config"
	"github.com/letterpack/letterpack/internal/label"
	"github.com/letterpack/letterpack/internal/model"
	"github.com/letterpack/letterpack/internal/render"
	gopdfcanvas "github.com/letterpack/letterpack/internal/render/gopdf"
	"github.com/letterpack/letterpack/internal/render/pdf"
	"github.com/letterpack/letterpack/internal/render/record"
	"github.com/letterpack/letterpack/internal/res"
)

// Generator errors
var (
	// ErrNoLabels is returned when a batch has no label pairs
	ErrNoLabels = errors.New("api: no labels to render")
	// ErrUnknownBackend is returned for an unsupported Options.Backend
	ErrUnknownBackend = errors.New("api: unknown backend")
)

// Generator is the main API for rendering label documents
type Generator struct {
	options Options
	logger  *zap.Logger
}

// New creates a new generator with default options
func New() *Generator {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a new generator with the specified options
func NewWithOptions(options Options) *Generator {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{options: options, logger: logger}
}

// Options returns a copy of the generator options
func (g *Generator) Options() Options {
	return g.options
}

// session is everything one document needs
type session struct {
	cfg      *config.Config
	canvas   render.Canvas
	renderer *label.Renderer
}

// layout returns the layout to draw with. mode, when set, wins over both the
// option and the loaded layout.
func (g *Generator) layout(mode string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case g.options.Layout != nil:
		cp := *g.options.Layout
		cfg = &cp
	default:
		loaded, err := config.Load(g.options.LayoutPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if mode == "" {
		mode = g.options.LayoutMode
	}
	if mode != "" {
		cfg.Layout.LayoutMode = mode
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	source := g.options.LayoutPath
	if source == "" {
		source = "defaults"
	}
	g.logger.Debug("Layout loaded",
		zap.String("source", source),
		zap.String("mode", cfg.Layout.LayoutMode))
	return cfg, nil
}

func (g *Generator) fonts(ctx context.Context) (render.FontSet, error) {
	opts := []res.FontOption{res.WithFontDirs(g.options.FontDirectories...)}
	if g.options.DisableSystemFonts {
		opts = append(opts, res.WithCandidates(), res.WithBoldCandidates())
	}
	set, err := res.NewFontResolver(opts...).Resolve(ctx, g.options.FontPath, g.options.BoldFontPath)
	if err != nil {
		return set, err
	}

	names := set.Names()
	g.logger.Debug("Fonts resolved",
		zap.String("regular", names.Regular),
		zap.String("bold", names.Bold))
	if set.Regular == nil {
		g.logger.Warn("No Japanese font found, falling back to " + render.DefaultFont)
	}
	return set, nil
}

func (g *Generator) newCanvas(fonts render.FontSet) (render.Canvas, error) {
	o := g.options
	switch o.Backend {
	case BackendPDF, "":
		backendLogger := zap.NewNop()
		if o.Debug {
			backendLogger = g.logger.Named("pdf")
		}
		return pdf.NewRenderer(pdf.RenderOptions{
			Title:        o.Title,
			Author:       o.Author,
			Subject:      o.Subject,
			Keywords:     o.Keywords,
			Creator:      "letterpack",
			Producer:     "letterpack",
			Faces:        fonts.Faces(),
			CreationDate: o.CreationDate,
			Logger:       backendLogger,
		})
	case BackendGoPDF:
		return gopdfcanvas.New(gopdfcanvas.Options{
			Title:        o.Title,
			Creator:      "letterpack",
			Faces:        fonts.Faces(),
			CreationDate: o.CreationDate,
		})
	case BackendRecord:
		return record.New(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, o.Backend)
	}
}

func (g *Generator) open(ctx context.Context, mode string) (*session, error) {
	cfg, err := g.layout(mode)
	if err != nil {
		return nil, err
	}
	fonts, err := g.fonts(ctx)
	if err != nil {
		return nil, err
	}
	canvas, err := g.newCanvas(fonts)
	if err != nil {
		return nil, fmt.Errorf("failed to create canvas: %w", err)
	}
	return &session{
		cfg:      cfg,
		canvas:   canvas,
		renderer: label.NewRenderer(cfg, fonts.Names()),
	}, nil
}

// Generate renders one label pair and writes the document to output. In
// grid_4up mode the pair is repeated in all four quadrants.
func (g *Generator) Generate(ctx context.Context, pair model.LabelPair, output io.Writer) error {
	s, err := g.open(ctx, "")
	if err != nil {
		return err
	}
	if err := s.renderer.Write(s.canvas, pair, output); err != nil {
		return fmt.Errorf("failed to render label: %w", err)
	}
	g.logger.Debug("Label rendered", zap.String("to", pair.To.Name), zap.String("from", pair.From.Name))
	return nil
}

// GenerateBatch renders pairs four to a page and writes the document to
// output. It returns the number of pages written. The layout is validated in
// grid_4up mode whatever mode it is configured with.
func (g *Generator) GenerateBatch(ctx context.Context, pairs []model.LabelPair, output io.Writer) (int, error) {
	if len(pairs) == 0 {
		return 0, ErrNoLabels
	}
	// batches always tile quadrants
	s, err := g.open(ctx, config.ModeGrid4Up)
	if err != nil {
		return 0, err
	}
	if err := label.NewBatchRenderer(s.renderer).Write(s.canvas, pairs, output); err != nil {
		return 0, fmt.Errorf("failed to render labels: %w", err)
	}
	pages := s.canvas.PageCount()
	g.logger.Debug("Labels rendered", zap.Int("labels", len(pairs)), zap.Int("pages", pages))
	return pages, nil
}

// GenerateBytes renders one label pair and returns the document bytes
func (g *Generator) GenerateBytes(ctx context.Context, pair model.LabelPair) ([]byte, error) {
	var buf bytes.Buffer
	if err := g.Generate(ctx, pair, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateBatchBytes renders pairs and returns the document bytes and page count
func (g *Generator) GenerateBatchBytes(ctx context.Context, pairs []model.LabelPair) ([]byte, int, error) {
	var buf bytes.Buffer
	pages, err := g.GenerateBatch(ctx, pairs, &buf)
	if err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), pages, nil
}

// GenerateToFile renders one label pair to outputPath. No file is written
// when rendering fails.
func (g *Generator) GenerateToFile(ctx context.Context, pair model.LabelPair, outputPath string) error {
	data, err := g.GenerateBytes(ctx, pair)
	if err != nil {
		return err
	}
	return writeFile(outputPath, data)
}

// GenerateBatchToFile renders pairs to outputPath and returns the page count
func (g *Generator) GenerateBatchToFile(ctx context.Context, pairs []model.LabelPair, outputPath string) (int, error) {
	data, pages, err := g.GenerateBatchBytes(ctx, pairs)
	if err != nil {
		return 0, err
	}
	return pages, writeFile(outputPath, data)
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// WithOptions returns a new generator with the specified options
func (g *Generator) WithOptions(options Options) *Generator {
	return NewWithOptions(options)
}

// WithOption returns a new generator with the specified option set
func (g *Generator) WithOption(option Option) *Generator {
	newOptions := g.options
	newOptions.FontDirectories = append([]string(nil), g.options.FontDirectories...)
	option(&newOptions)
	return NewWithOptions(newOptions)
}

// AddFontDirectory adds a directory to search for fonts
func (g *Generator) AddFontDirectory(dir string) *Generator {
	return g.WithOption(WithFontDirectory(dir))
}

// SetBackend sets the drawing backend
func (g *Generator) SetBackend(b Backend) *Generator {
	return g.WithOption(WithBackend(b))
}

// SetDebug sets the debug mode
func (g *Generator) SetDebug(debug bool) *Generator {
	return g.WithOption(WithDebug(debug))
}

// SetTitle sets the document title
func (g *Generator) SetTitle(title string) *Generator {
	return g.WithOption(WithTitle(title))
}
