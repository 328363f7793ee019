package render

// DefaultFont is the built-in face every PDF backend can fall back to
const DefaultFont = "Helvetica"

// Face is a TrueType/OpenType font program registered with a backend under Name
type Face struct {
	Name string
	Path string
	Data []byte
}

// Fonts names the faces a label is drawn with. Bold is optional.
type Fonts struct {
	Regular string
	Bold    string
}

// DefaultFonts uses the built-in face for everything
func DefaultFonts() Fonts {
	return Fonts{Regular: DefaultFont}
}

// BoldOrRegular returns the bold face when one was resolved
func (f Fonts) BoldOrRegular() string {
	if f.Bold != "" {
		return f.Bold
	}
	return f.Regular
}

// FontSet is the resolved regular and optional bold face
type FontSet struct {
	Regular *Face
	Bold    *Face
}

// Faces returns the non-nil faces for backend registration
func (s FontSet) Faces() []Face {
	var out []Face
	if s.Regular != nil {
		out = append(out, *s.Regular)
	}
	if s.Bold != nil {
		out = append(out, *s.Bold)
	}
	return out
}

// Names returns the face names, falling back to DefaultFont
func (s FontSet) Names() Fonts {
	f := DefaultFonts()
	if s.Regular != nil {
		f.Regular = s.Regular.Name
	}
	if s.Bold != nil {
		f.Bold = s.Bold.Name
	}
	return f
}
