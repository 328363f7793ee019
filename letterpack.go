// Package letterpack renders Japanese Letter Pack shipping labels to PDF.
package letterpack

import (
	"github.com/letterpack/letterpack/internal/model"
	"github.com/letterpack/letterpack/pkg/api"
)

type Generator = api.Generator
type Options = api.Options
type Option = api.Option
type Backend = api.Backend
type Address = model.Address
type LabelPair = model.LabelPair

func New() *Generator                           { return api.New() }
func NewWithOptions(options Options) *Generator { return api.NewWithOptions(options) }
func DefaultOptions() Options                   { return api.DefaultOptions() }

// NewLabelPair validates both parties; recipients without an honorific get 様
func NewLabelPair(to, from Address) (LabelPair, error) { return model.NewLabelPair(to, from, true) }

var (
	WithLayout         = api.WithLayout
	WithLayoutFile     = api.WithLayoutFile
	WithLayoutMode     = api.WithLayoutMode
	WithFont           = api.WithFont
	WithBoldFont       = api.WithBoldFont
	WithFontDirectory  = api.WithFontDirectory
	WithoutSystemFonts = api.WithoutSystemFonts
	WithBackend        = api.WithBackend
	WithDebug          = api.WithDebug
	WithTitle          = api.WithTitle
	WithAuthor         = api.WithAuthor
	WithSubject        = api.WithSubject
	WithKeywords       = api.WithKeywords
	WithCreationDate   = api.WithCreationDate
	WithLogger         = api.WithLogger

	ErrNoLabels = api.ErrNoLabels
)

const (
	BackendPDF    = api.BackendPDF
	BackendGoPDF  = api.BackendGoPDF
	BackendRecord = api.BackendRecord

	LayoutModeCenter  = api.LayoutModeCenter
	LayoutModeGrid4Up = api.LayoutModeGrid4Up

	PageSizeA4Width  = api.PageSizeA4Width
	PageSizeA4Height = api.PageSizeA4Height
)
