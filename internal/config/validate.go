package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/letterpack/letterpack/internal/layout"
)

// postalBoxCount is the number of digit boxes in a Japanese postal code row
const postalBoxCount = 7

// postalGapCount is the number of box_spacing gaps across the row: six
// between boxes plus three taken by the connector between the groups
const postalGapCount = 9

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Use YAML tag names for field names in errors
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks every field against its range and, when all ranges hold,
// checks that the address section content fits inside the label. Every
// violation is reported, not only the first.
func (c *Config) Validate() error {
	var violations []Violation

	if err := validatorInstance().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validating config: %w", err)
		}
		for _, e := range verrs {
			violations = append(violations, Violation{
				Field:   fieldPath(e.Namespace()),
				Rule:    e.Tag(),
				Param:   e.Param(),
				Value:   e.Value(),
				Message: describe(e),
			})
		}
	}

	if len(violations) == 0 {
		violations = append(violations, c.checkFit()...)
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// SectionSize returns the width and height in points of one address section
// (half a label) for the configured layout mode
func (c *Config) SectionSize() (width, height float64) {
	if c.Layout.IsGrid() {
		return layout.MM(layout.A4WidthMM) / 2, layout.MM(layout.A4HeightMM) / 4
	}
	return layout.MM(c.Layout.LabelWidth), layout.MM(c.Layout.LabelHeight) / 2
}

// Reference content the layout must hold whatever the record
const (
	// captionChars is the length of the お届け先 and ご依頼主 captions
	captionChars = 4
	// nameChars is the name length kept clear of the honorific space
	nameChars = 4
	// phoneChars is "( " + a 13 character hyphenated number + " )"
	phoneChars = 17
	// narrowAdvance bounds the advance of ASCII glyphs, in ems
	narrowAdvance = 0.6
)

const fitEpsilon = 1e-9

// sectionGeometry holds the vertical positions of an address section,
// measured downwards from its top edge in points
type sectionGeometry struct {
	caption   float64 // caption baseline
	postal    float64 // postal mark baseline
	rowTop    float64 // highest point of the boxes and their digits
	rowBottom float64 // lowest point of the boxes and their digits
	firstLine float64 // top of the first address line glyphs
	name      float64 // name baseline
	phone     float64 // "Tel." baseline
	textTop   float64 // highest glyph top of every text element
	bottom    float64 // lowest drawn element
}

func (c *Config) geometry() sectionGeometry {
	sp := c.Spacing
	f := c.Fonts
	var g sectionGeometry

	g.caption = layout.MM(c.Layout.Margin) + sp.SectionSpacing
	g.postal = g.caption + sp.SectionSpacing

	box := layout.MM(c.PostalBox.BoxSize)
	boxBottom := g.postal - sp.PostalBoxOffsetY
	digitBase := boxBottom - (box-f.PostalCode)/2 - c.PostalBox.TextVerticalOffset
	g.rowTop = min(boxBottom-box, digitBase-f.PostalCode)
	g.rowBottom = max(boxBottom, digitBase)

	g.firstLine = g.postal + sp.AddressLineHeight - f.Address
	g.name = g.postal + float64(c.Address.MaxLines)*sp.AddressLineHeight + sp.AddressNameGap
	g.phone = g.name + sp.NamePhoneGap

	g.textTop = min(
		g.caption-f.Label,
		g.postal-f.PostalCode,
		g.firstLine,
		g.name-max(f.Name, f.HonorificSize()),
		g.phone-f.Phone,
	)
	g.bottom = max(g.phone+sp.SectionSpacing, g.name+sp.DottedLineTextOffset)
	return g
}

// ContentHeight returns the vertical extent in points that one address
// section needs, margins included
func (c *Config) ContentHeight() float64 {
	return c.geometry().bottom + layout.MM(c.Layout.Margin)
}

// PostalRowWidth returns the width in points of the seven postal boxes
// including the group connector
func (c *Config) PostalRowWidth() float64 {
	pb := c.PostalBox
	return postalBoxCount*layout.MM(pb.BoxSize) + postalGapCount*layout.MM(pb.BoxSpacing)
}

// digitOverhang is how far a digit one em wide sticks out of its box
func (c *Config) digitOverhang() float64 {
	return max(0, (c.Fonts.PostalCode-layout.MM(c.PostalBox.BoxSize))/2)
}

func fit(field, message string, limit, got any) Violation {
	return Violation{Field: field, Rule: "fit", Param: fmt.Sprint(limit), Value: got, Message: message}
}

func pt(v float64) string { return fmt.Sprintf("%.1fpt", v) }

// checkFit reports every element of an address section that would leave
// the section, or collide with its neighbour, for the configured mode
func (c *Config) checkFit() []Violation {
	var out []Violation
	width, height := c.SectionSize()
	margin := layout.MM(c.Layout.Margin)
	inner := width - 2*margin
	g := c.geometry()

	if need := g.bottom + margin; need > height+fitEpsilon {
		out = append(out, fit("spacing",
			fmt.Sprintf("address section content must fit in %.1fpt", height), pt(height), pt(need)))
	}
	if g.textTop < -fitEpsilon {
		out = append(out, fit("spacing.section_spacing",
			"text must start below the top of the section", pt(0), pt(g.textTop)))
	}

	left := margin + c.Spacing.PostalBoxOffsetX - c.digitOverhang()
	right := margin + c.Spacing.PostalBoxOffsetX + c.PostalRowWidth() + c.digitOverhang()
	if limit := width - margin; right > limit+fitEpsilon {
		out = append(out, fit("postal_box",
			fmt.Sprintf("postal code boxes must end before %.1fpt", limit), pt(limit), pt(right)))
	}
	if left < -fitEpsilon {
		out = append(out, fit("spacing.postal_box_offset_x",
			"postal code boxes must start inside the section", pt(0), pt(left)))
	}
	if g.rowTop < -fitEpsilon {
		out = append(out, fit("spacing.postal_box_offset_y",
			"postal code boxes must stay below the top of the section", pt(0), pt(g.rowTop)))
	}
	if g.rowBottom > g.firstLine+fitEpsilon {
		out = append(out, fit("spacing.postal_box_offset_y",
			"postal code boxes must end above the first address line", pt(g.firstLine), pt(g.rowBottom)))
	}

	// address glyphs are full width: one em per character
	if need := float64(c.Address.MaxLength) * c.Fonts.Address; need > inner+fitEpsilon {
		out = append(out, fit("address.max_length",
			fmt.Sprintf("a full address line needs %.1fpt, more than the section width", need), pt(inner), c.Address.MaxLength))
	}

	if need := layout.MM(c.Sama.Offset) + c.Fonts.HonorificSize(); need > layout.MM(c.Sama.Width)+fitEpsilon {
		out = append(out, fit("sama.width",
			"honorific space must hold the offset and one honorific glyph", pt(need), c.Sama.Width))
	}
	if need := nameChars*c.Fonts.Name + layout.MM(c.Sama.Width); need > inner+fitEpsilon {
		out = append(out, fit("sama.width",
			fmt.Sprintf("the name line must hold %d characters before the honorific space", nameChars), pt(inner), pt(need)))
	}

	if need := c.Phone.OffsetX + phoneChars*narrowAdvance*c.Fonts.Phone; need > inner+fitEpsilon {
		out = append(out, fit("phone.offset_x",
			"the phone number must end inside the section", pt(inner), pt(need)))
	}

	if need := max(captionChars*c.Fonts.Label, c.Fonts.PostalCode); need > inner+fitEpsilon {
		out = append(out, fit("fonts.label",
			"the caption must fit the section width", pt(inner), pt(need)))
	}

	if margin*2 >= width {
		out = append(out, fit("layout.margin", "margins must leave room for content", pt(width/2), c.Layout.Margin))
	}
	return out
}

// ValidateFor validates a copy of c laid out in mode
func (c *Config) ValidateFor(mode string) error {
	cp := *c
	cp.Layout.LayoutMode = mode
	return cp.Validate()
}

// fieldPath drops the root struct name from a validator namespace
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// describe returns a human-readable validation message
func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	case "lt":
		return "must be less than " + e.Param()
	default:
		return "invalid value"
	}
}
