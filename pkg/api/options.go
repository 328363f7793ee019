package api

import (
	"time"

	"go.uber.org/zap"

	"github.com/letterpack/letterpack/internal/config"
	"github.com/letterpack/letterpack/internal/layout"
)

// Options represents configuration options for the label generator
type Options struct {
	// Layout is used as-is when set; otherwise LayoutPath is loaded, and
	// built-in defaults apply when both are empty
	Layout     *config.Config
	LayoutPath string
	// LayoutMode overrides layout.layout_mode when not empty
	LayoutMode string

	// Fonts
	FontPath        string
	BoldFontPath    string
	FontDirectories []string
	// When true only FontPath, BoldFontPath and FontDirectories are considered
	DisableSystemFonts bool

	// Drawing backend
	Backend Backend

	// Rendering options
	Debug bool

	// Document metadata
	Title    string
	Author   string
	Subject  string
	Keywords string
	// CreationDate fixes document timestamps; zero means now
	CreationDate time.Time

	Logger *zap.Logger
}

// Option is a function that modifies Options
type Option func(*Options)

// Backend selects the drawing implementation
type Backend string

const (
	// BackendPDF draws with fpdf and can fall back to Helvetica
	BackendPDF Backend = "pdf"
	// BackendGoPDF draws with gopdf and needs a TrueType font
	BackendGoPDF Backend = "gopdf"
	// BackendRecord writes the drawing operations as JSON
	BackendRecord Backend = "record"
)

// Layout modes accepted by WithLayoutMode
const (
	LayoutModeCenter  = config.ModeCenter
	LayoutModeGrid4Up = config.ModeGrid4Up
)

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		Backend:         BackendPDF,
		FontDirectories: []string{},
		Title:           "Letterpack label",
		Logger:          zap.NewNop(),
	}
}

// WithLayout uses an already loaded layout
func WithLayout(cfg *config.Config) Option {
	return func(o *Options) {
		o.Layout = cfg
	}
}

// WithLayoutFile loads the layout from a YAML file
func WithLayoutFile(path string) Option {
	return func(o *Options) {
		o.LayoutPath = path
	}
}

// WithLayoutMode overrides the layout mode (center or grid_4up)
func WithLayoutMode(mode string) Option {
	return func(o *Options) {
		o.LayoutMode = mode
	}
}

// WithFont sets the regular font file or URL
func WithFont(path string) Option {
	return func(o *Options) {
		o.FontPath = path
	}
}

// WithBoldFont sets the bold font used for postal digits
func WithBoldFont(path string) Option {
	return func(o *Options) {
		o.BoldFontPath = path
	}
}

// WithFontDirectory adds a directory to search for fonts
func WithFontDirectory(dir string) Option {
	return func(o *Options) {
		o.FontDirectories = append(o.FontDirectories, dir)
	}
}

// WithoutSystemFonts disables probing of platform font paths
func WithoutSystemFonts() Option {
	return func(o *Options) {
		o.DisableSystemFonts = true
	}
}

// WithBackend sets the drawing backend
func WithBackend(b Backend) Option {
	return func(o *Options) {
		o.Backend = b
	}
}

// WithDebug logs the PDF backend's font and page events on the logger
func WithDebug(debug bool) Option {
	return func(o *Options) {
		o.Debug = debug
	}
}

// WithTitle sets the document title
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// WithAuthor sets the document author
func WithAuthor(author string) Option {
	return func(o *Options) {
		o.Author = author
	}
}

// WithSubject sets the document subject
func WithSubject(subject string) Option {
	return func(o *Options) {
		o.Subject = subject
	}
}

// WithKeywords sets the document keywords
func WithKeywords(keywords string) Option {
	return func(o *Options) {
		o.Keywords = keywords
	}
}

// WithCreationDate fixes the document timestamps, making output reproducible
func WithCreationDate(t time.Time) Option {
	return func(o *Options) {
		o.CreationDate = t
	}
}

// WithLogger sets the logger debug events are written to
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// Page size in points (1/72 inch). Labels are always laid out on A4.
const (
	PageSizeA4Width  = layout.A4WidthMM * layout.PointsPerMM
	PageSizeA4Height = layout.A4HeightMM * layout.PointsPerMM
)
