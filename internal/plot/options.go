package plot

import (
	"regexp"
	"strings"
)

// LegendPlacement is the side of the plot area the legend is laid out on
type LegendPlacement string

const (
	PlacementBelow  LegendPlacement = "below"
	PlacementAbove  LegendPlacement = "above"
	PlacementLeft   LegendPlacement = "left"
	PlacementRight  LegendPlacement = "right"
	PlacementCenter LegendPlacement = "center"
)

// Valid reports whether p is a known placement
func (p LegendPlacement) Valid() bool {
	switch p {
	case PlacementBelow, PlacementAbove, PlacementLeft, PlacementRight, PlacementCenter:
		return true
	}
	return false
}

// LegendLocation is the legend's pixel offset from its anchor
type LegendLocation struct {
	X int `json:"x" cbor:"x"`
	Y int `json:"y" cbor:"y"`
}

// Defaults shared by every chart
const (
	DefaultTickFormat        = "0.0"
	DefaultXRangePadding     = 0.1
	DefaultXLabelOrientation = 1.0
	DefaultLegendPlacement   = PlacementBelow
	DefaultLineWidth         = 2.0
	DefaultXTooltipName      = "Group"
)

// AxisStyle holds the x-axis and grid formatting common to all charts. Nil
// pointers take the defaults.
type AxisStyle struct {
	// XRangePadding is the fraction of the x range left empty at both ends
	XRangePadding *float64
	// XLabelOrientation rotates x tick labels, in radians
	XLabelOrientation *float64
	// GridLineColour colours the vertical grid; empty hides it
	GridLineColour string
}

func (s *AxisStyle) applyDefaults() {
	if s.XRangePadding == nil {
		s.XRangePadding = Float(DefaultXRangePadding)
	}
	if s.XLabelOrientation == nil {
		s.XLabelOrientation = Float(DefaultXLabelOrientation)
	}
}

func (s AxisStyle) validate() error {
	if s.XRangePadding != nil && (*s.XRangePadding < 0 || *s.XRangePadding >= 1) {
		return &OptionError{Option: "x_range_padding", Value: *s.XRangePadding, Reason: "must be in [0, 1)"}
	}
	if s.GridLineColour != "" && !IsHexColour(s.GridLineColour) {
		return &OptionError{Option: "grid_line_colour", Value: s.GridLineColour, Reason: "not a hex colour"}
	}
	return nil
}

// Float returns a pointer to v, for optional numeric fields
func Float(v float64) *float64 { return &v }

// String returns a pointer to s, for optional text fields where the empty
// string is meaningful
func String(s string) *string { return &s }

// labelOr returns *label, or fallback when label is unset
func labelOr(label *string, fallback string) string {
	if label == nil {
		return fallback
	}
	return *label
}

var hexColour = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// IsHexColour reports whether s is a #rgb, #rrggbb or #rrggbbaa colour
func IsHexColour(s string) bool {
	return hexColour.MatchString(strings.TrimSpace(s))
}

func validateSize(height, width int) error {
	if height <= 0 {
		return &OptionError{Option: "plot_height", Value: height, Reason: "must be positive"}
	}
	if width <= 0 {
		return &OptionError{Option: "plot_width", Value: width, Reason: "must be positive"}
	}
	return nil
}

func validateLegend(p LegendPlacement) error {
	if !p.Valid() {
		return &OptionError{Option: "legend_placement", Value: p, Reason: "must be one of below, above, left, right, center"}
	}
	return nil
}

func validateFormat(option, format string) error {
	if _, err := ParseNumeral(format); err != nil {
		return &OptionError{Option: option, Value: format, Reason: err.Error()}
	}
	return nil
}

func validateColours(option string, colours []string) error {
	for _, c := range colours {
		if !IsHexColour(c) {
			return &OptionError{Option: option, Value: c, Reason: "not a hex colour"}
		}
	}
	return nil
}
