package res

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/image/font/sfnt"

	"github.com/letterpack/letterpack/internal/render"
)

// Font errors
var (
	ErrFontNotFound    = errors.New("res: font not found")
	ErrUnsupportedFont = errors.New("res: unsupported font format")
)

// platformFonts lists Japanese-capable TrueType fonts probed when no font is
// given explicitly, most preferred first
var platformFonts = map[string][]string{
	"linux": {
		"/usr/share/fonts/opentype/ipaexfont-gothic/ipaexg.ttf",
		"/usr/share/fonts/truetype/ipaexfont-gothic/ipaexg.ttf",
		"/usr/share/fonts/ipa-gothic/ipag.ttf",
		"/usr/share/fonts/opentype/ipafont-gothic/ipag.ttf",
		"/usr/share/fonts/truetype/fonts-japanese-gothic.ttf",
		"/usr/share/fonts/truetype/takao-gothic/TakaoGothic.ttf",
		"/usr/share/fonts/truetype/noto/NotoSansJP-Regular.ttf",
	},
	"darwin": {
		"/Library/Fonts/ipaexg.ttf",
		"/System/Library/Fonts/Supplemental/Osaka.ttf",
		"/Library/Fonts/Arial Unicode.ttf",
	},
	"windows": {
		`C:\Windows\Fonts\ipaexg.ttf`,
		`C:\Windows\Fonts\msgothic.ttf`,
		`C:\Windows\Fonts\YuGothR.ttf`,
	},
}

var platformBoldFonts = map[string][]string{
	"linux": {
		"/usr/share/fonts/truetype/noto/NotoSansJP-Bold.ttf",
		"/usr/share/fonts/truetype/fonts-japanese-gothic-bold.ttf",
	},
	"windows": {
		`C:\Windows\Fonts\YuGothB.ttf`,
	},
}

// filePatterns match Japanese fonts inside configured font directories
var filePatterns = []string{"ipaexg*.ttf", "ipag*.ttf", "*Gothic*.ttf", "NotoSans*JP*.ttf"}

// FontResolver finds the regular and bold faces a label is drawn with
type FontResolver struct {
	loader         *Loader
	candidates     []string
	boldCandidates []string
}

// FontOption configures a FontResolver
type FontOption func(*FontResolver)

// WithFontDirs adds directories searched for fonts before platform paths
func WithFontDirs(dirs ...string) FontOption {
	return func(r *FontResolver) {
		for _, d := range dirs {
			r.loader.AddSearchPath(d)
		}
	}
}

// WithCandidates replaces the platform regular font candidates
func WithCandidates(paths ...string) FontOption {
	return func(r *FontResolver) { r.candidates = paths }
}

// WithBoldCandidates replaces the platform bold font candidates
func WithBoldCandidates(paths ...string) FontOption {
	return func(r *FontResolver) { r.boldCandidates = paths }
}

// NewFontResolver creates a resolver probing the paths of the running platform
func NewFontResolver(opts ...FontOption) *FontResolver {
	r := &FontResolver{
		loader:         NewLoader(),
		candidates:     platformFonts[runtime.GOOS],
		boldCandidates: platformBoldFonts[runtime.GOOS],
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the faces to draw with. An explicit regular or bold font
// that cannot be loaded is an error. Without an explicit font the first
// usable candidate wins; when none is usable the set is empty and backends
// fall back to render.DefaultFont.
func (r *FontResolver) Resolve(ctx context.Context, regular, bold string) (render.FontSet, error) {
	var set render.FontSet

	if regular != "" {
		face, err := r.load(ctx, regular)
		if err != nil {
			return set, err
		}
		set.Regular = face
	} else {
		set.Regular = r.probe(ctx, r.regularCandidates())
	}

	if bold != "" {
		face, err := r.load(ctx, bold)
		if err != nil {
			return set, err
		}
		set.Bold = face
	} else if set.Regular != nil {
		set.Bold = r.probe(ctx, r.boldCandidates)
	}

	if set.Bold != nil && set.Regular != nil && set.Bold.Name == set.Regular.Name {
		set.Bold.Name += "-Bold"
	}
	return set, nil
}

func (r *FontResolver) regularCandidates() []string {
	var out []string
	for _, dir := range r.loader.SearchPaths() {
		for _, pattern := range filePatterns {
			matches, _ := filepath.Glob(filepath.Join(dir, pattern))
			out = append(out, matches...)
		}
	}
	return append(out, r.candidates...)
}

func (r *FontResolver) probe(ctx context.Context, paths []string) *render.Face {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if face, err := r.load(ctx, p); err == nil {
			return face
		}
	}
	return nil
}

func (r *FontResolver) load(ctx context.Context, name string) (*render.Face, error) {
	res, err := r.loader.LoadFont(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFontNotFound, name)
		}
		return nil, fmt.Errorf("loading font %s: %w", name, err)
	}
	family, err := ValidateFont(res.Data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &render.Face{Name: faceName(family, res.URL), Path: res.URL, Data: res.Data}, nil
}

// ValidateFont checks that data is a single TrueType-outline font both PDF
// backends can embed and returns its family name
func ValidateFont(data []byte) (string, error) {
	if len(data) < 4 {
		return "", fmt.Errorf("%w: file too short", ErrUnsupportedFont)
	}
	switch {
	case bytes.HasPrefix(data, []byte("OTTO")):
		return "", fmt.Errorf("%w: CFF outlines are not supported, use a .ttf", ErrUnsupportedFont)
	case bytes.HasPrefix(data, []byte("ttcf")):
		return "", fmt.Errorf("%w: font collections are not supported, use a .ttf", ErrUnsupportedFont)
	}

	f, err := sfnt.Parse(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedFont, err)
	}
	family, err := f.Name(nil, sfnt.NameIDFamily)
	if err != nil || family == "" {
		return "", nil
	}
	return family, nil
}

// faceName builds a backend font name without spaces
func faceName(family, path string) string {
	if family == "" {
		family = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return strings.ReplaceAll(family, " ", "")
}
