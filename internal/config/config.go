// Package config holds the label layout parameters: page geometry,
// typography, spacing and the drawing style of every label element.
// Lengths tagged unit:"mm" are millimetres, unit:"pt" are PDF points.
package config

// Layout modes
const (
	ModeCenter  = "center"
	ModeGrid4Up = "grid_4up"
)

// Config is the complete label layout
type Config struct {
	Layout     LayoutConfig     `yaml:"layout"`
	Fonts      FontsConfig      `yaml:"fonts"`
	Spacing    SpacingConfig    `yaml:"spacing"`
	PostalBox  PostalBoxConfig  `yaml:"postal_box"`
	Address    AddressConfig    `yaml:"address"`
	DottedLine DottedLineConfig `yaml:"dotted_line"`
	Sama       SamaConfig       `yaml:"sama"`
	Border     BorderConfig     `yaml:"border"`
	Phone      PhoneConfig      `yaml:"phone"`
}

// LayoutConfig places the label on the page
type LayoutConfig struct {
	LabelWidth       float64 `yaml:"label_width" validate:"gt=0,lte=210" unit:"mm"`
	LabelHeight      float64 `yaml:"label_height" validate:"gt=0,lte=297" unit:"mm"`
	Margin           float64 `yaml:"margin" validate:"gte=0,lte=30" unit:"mm"`
	DrawBorder       bool    `yaml:"draw_border"`
	LayoutMode       string  `yaml:"layout_mode" validate:"oneof=center grid_4up"`
	DividerLineWidth float64 `yaml:"divider_line_width" validate:"gt=0,lte=5" unit:"pt"`
}

// FontsConfig holds font sizes in points
type FontsConfig struct {
	Label      float64 `yaml:"label" validate:"gt=0,lte=72" unit:"pt"`
	PostalCode float64 `yaml:"postal_code" validate:"gt=0,lte=72" unit:"pt"`
	Address    float64 `yaml:"address" validate:"gt=0,lte=72" unit:"pt"`
	Name       float64 `yaml:"name" validate:"gt=0,lte=72" unit:"pt"`
	// Honorific falls back to Name-2 (at least 1) when unset
	Honorific *float64 `yaml:"honorific,omitempty" validate:"omitempty,gt=0,lte=72" unit:"pt"`
	Phone     float64  `yaml:"phone" validate:"gt=0,lte=72" unit:"pt"`
}

// SpacingConfig holds vertical advances and offsets in points
type SpacingConfig struct {
	SectionSpacing       float64 `yaml:"section_spacing" validate:"gte=0,lte=100" unit:"pt"`
	AddressLineHeight    float64 `yaml:"address_line_height" validate:"gt=0,lte=100" unit:"pt"`
	AddressNameGap       float64 `yaml:"address_name_gap" validate:"gte=0,lte=100" unit:"pt"`
	NamePhoneGap         float64 `yaml:"name_phone_gap" validate:"gte=0,lte=100" unit:"pt"`
	PostalBoxOffsetX     float64 `yaml:"postal_box_offset_x" validate:"gte=-50,lte=100" unit:"pt"`
	PostalBoxOffsetY     float64 `yaml:"postal_box_offset_y" validate:"gte=-50,lte=50" unit:"pt"`
	DottedLineTextOffset float64 `yaml:"dotted_line_text_offset" validate:"gte=0,lte=20" unit:"pt"`
}

// PostalBoxConfig draws the seven postal code boxes
type PostalBoxConfig struct {
	BoxSize            float64 `yaml:"box_size" validate:"gt=0,lte=20" unit:"mm"`
	BoxSpacing         float64 `yaml:"box_spacing" validate:"gte=0,lte=10" unit:"mm"`
	LineWidth          float64 `yaml:"line_width" validate:"gt=0,lte=5" unit:"pt"`
	TextVerticalOffset float64 `yaml:"text_vertical_offset" validate:"gte=-10,lte=10" unit:"pt"`
}

// AddressConfig bounds the address block
type AddressConfig struct {
	MaxLength int `yaml:"max_length" validate:"gte=1,lte=100" unit:"chars"`
	MaxLines  int `yaml:"max_lines" validate:"gte=1,lte=10" unit:"lines"`
}

// DottedLineConfig styles the fill-in rules
type DottedLineConfig struct {
	DashLength  float64 `yaml:"dash_length" validate:"gt=0,lte=10" unit:"mm"`
	DashSpacing float64 `yaml:"dash_spacing" validate:"gt=0,lte=10" unit:"mm"`
	ColorR      float64 `yaml:"color_r" validate:"gte=0,lte=1"`
	ColorG      float64 `yaml:"color_g" validate:"gte=0,lte=1"`
	ColorB      float64 `yaml:"color_b" validate:"gte=0,lte=1"`
}

// SamaConfig reserves space for the honorific after the name
type SamaConfig struct {
	Width  float64 `yaml:"width" validate:"gte=0,lte=30" unit:"mm"`
	Offset float64 `yaml:"offset" validate:"gte=0,lte=20" unit:"mm"`
}

// BorderConfig styles the optional label outline
type BorderConfig struct {
	ColorR    float64 `yaml:"color_r" validate:"gte=0,lte=1"`
	ColorG    float64 `yaml:"color_g" validate:"gte=0,lte=1"`
	ColorB    float64 `yaml:"color_b" validate:"gte=0,lte=1"`
	LineWidth float64 `yaml:"line_width" validate:"gt=0,lte=5" unit:"pt"`
}

// PhoneConfig positions the phone number
type PhoneConfig struct {
	OffsetX float64 `yaml:"offset_x" validate:"gte=0,lte=200" unit:"pt"`
}

// Default returns the built-in layout. It always passes Validate.
func Default() *Config {
	return &Config{
		Layout: LayoutConfig{
			LabelWidth:       105,
			LabelHeight:      122,
			Margin:           5,
			DrawBorder:       true,
			LayoutMode:       ModeCenter,
			DividerLineWidth: 1.0,
		},
		Fonts: FontsConfig{
			Label:      9,
			PostalCode: 13,
			Address:    11,
			Name:       14,
			Phone:      13,
		},
		Spacing: SpacingConfig{
			SectionSpacing:       14,
			AddressLineHeight:    16,
			AddressNameGap:       22,
			NamePhoneGap:         26,
			PostalBoxOffsetX:     15,
			PostalBoxOffsetY:     -2,
			DottedLineTextOffset: 4,
		},
		PostalBox: PostalBoxConfig{
			BoxSize:            5,
			BoxSpacing:         1,
			LineWidth:          0.5,
			TextVerticalOffset: 2,
		},
		Address: AddressConfig{
			MaxLength: 22,
			MaxLines:  3,
		},
		DottedLine: DottedLineConfig{
			DashLength:  2,
			DashSpacing: 2,
			ColorR:      0.5,
			ColorG:      0.5,
			ColorB:      0.5,
		},
		Sama: SamaConfig{
			Width:  8,
			Offset: 2,
		},
		Border: BorderConfig{
			ColorR:    0.8,
			ColorG:    0.8,
			ColorB:    0.8,
			LineWidth: 0.5,
		},
		Phone: PhoneConfig{
			OffsetX: 30,
		},
	}
}

// HonorificSize returns the explicit honorific font size, or the name size
// minus two points floored at 1.
func (f FontsConfig) HonorificSize() float64 {
	if f.Honorific != nil {
		return *f.Honorific
	}
	return max(f.Name-2, 1)
}

// IsGrid reports whether the same label is tiled into all four quadrants
func (l LayoutConfig) IsGrid() bool {
	return l.LayoutMode == ModeGrid4Up
}
