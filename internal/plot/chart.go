package plot

// Renderer-independent descriptions of configured charts. They hold plain
// values only, so the same inputs always produce equal descriptions.

// SeriesKind tells renderers how to draw a series
type SeriesKind string

const (
	KindBar  SeriesKind = "bar"
	KindLine SeriesKind = "line"
)

// XAxisKind tells renderers how to lay out x values
type XAxisKind string

const (
	XCategory XAxisKind = "category"
	XTime     XAxisKind = "time"
	XValue    XAxisKind = "value"
)

// Range is a closed axis interval
type Range struct {
	Min float64 `json:"min" cbor:"min"`
	Max float64 `json:"max" cbor:"max"`
}

// XAxis describes the shared horizontal axis
type XAxis struct {
	Label            string    `json:"label" cbor:"label"`
	Kind             XAxisKind `json:"kind" cbor:"kind"`
	RangePadding     float64   `json:"range_padding" cbor:"range_padding"`
	LabelOrientation float64   `json:"label_orientation" cbor:"label_orientation"`
	GridLineColour   string    `json:"grid_line_colour,omitempty" cbor:"grid_line_colour,omitempty"`
}

// Axis describes a vertical axis. A nil Range lets the renderer pick one.
type Axis struct {
	Label      string `json:"label" cbor:"label"`
	Range      *Range `json:"range,omitempty" cbor:"range,omitempty"`
	TickFormat string `json:"tick_format" cbor:"tick_format"`
}

// LegendItem is one legend entry
type LegendItem struct {
	Label  string     `json:"label" cbor:"label"`
	Colour string     `json:"colour" cbor:"colour"`
	Kind   SeriesKind `json:"kind" cbor:"kind"`
}

// Legend describes the legend box
type Legend struct {
	Show      bool            `json:"show" cbor:"show"`
	Items     []LegendItem    `json:"items" cbor:"items"`
	Placement LegendPlacement `json:"placement" cbor:"placement"`
	Location  LegendLocation  `json:"location" cbor:"location"`
}

// Frame holds what every chart has: title, canvas size, axes and legend
type Frame struct {
	Title  string `json:"title" cbor:"title"`
	Height int    `json:"height" cbor:"height"`
	Width  int    `json:"width" cbor:"width"`
	X      XAxis  `json:"x_axis" cbor:"x_axis"`
	Y      Axis   `json:"y_axis" cbor:"y_axis"`
	Legend Legend `json:"legend" cbor:"legend"`
}

// Series is one line or set of bars over the x values. Nil values are gaps.
type Series struct {
	Name   string     `json:"name" cbor:"name"`
	Kind   SeriesKind `json:"kind" cbor:"kind"`
	Colour string     `json:"colour" cbor:"colour"`
	Width  float64    `json:"width" cbor:"width"`
	Alpha  float64    `json:"alpha" cbor:"alpha"`
	Values []*float64 `json:"values" cbor:"values"`
}

// FactorKey is one position of the nested (group, category) x axis
type FactorKey struct {
	Group    string `json:"group" cbor:"group"`
	Category string `json:"category" cbor:"category"`
}

// DualAxisChart is a paired bar chart on the left axis with a line on the
// right axis, sharing the group axis
type DualAxisChart struct {
	Frame
	Right Axis `json:"right_axis" cbor:"right_axis"`

	Groups     []string    `json:"groups" cbor:"groups"`
	Categories [2]string   `json:"categories" cbor:"categories"`
	Keys       []FactorKey `json:"keys" cbor:"keys"`

	// BarValues follows Keys; First and Second hold the same values split
	// by category, one per group
	BarValues  []*float64 `json:"bar_values" cbor:"bar_values"`
	First      []*float64 `json:"first" cbor:"first"`
	Second     []*float64 `json:"second" cbor:"second"`
	BarColours []string   `json:"bar_colours" cbor:"bar_colours"`
	BarWidth   float64    `json:"bar_width" cbor:"bar_width"`

	LineValues []*float64 `json:"line_values" cbor:"line_values"`
	LineColour string     `json:"line_colour" cbor:"line_colour"`
	LineWidth  float64    `json:"line_width" cbor:"line_width"`
	MarkerSize float64    `json:"marker_size" cbor:"marker_size"`

	BarTooltip  Tooltip `json:"bar_tooltip" cbor:"bar_tooltip"`
	LineTooltip Tooltip `json:"line_tooltip" cbor:"line_tooltip"`
}

// SeriesChart is a chart of one or more series over a shared x axis: the
// single line, multi-line and grouped bar charts
type SeriesChart struct {
	Frame
	Kind     SeriesKind `json:"kind" cbor:"kind"`
	XValues  []string   `json:"x_values" cbor:"x_values"`
	Series   []Series   `json:"series" cbor:"series"`
	BarWidth float64    `json:"bar_width,omitempty" cbor:"bar_width,omitempty"`
	Tooltip  Tooltip    `json:"tooltip" cbor:"tooltip"`

	// Warnings lists substitutions made while resolving options
	Warnings []string `json:"warnings,omitempty" cbor:"warnings,omitempty"`
}

func values(vs []float64) []*float64 {
	out := make([]*float64, len(vs))
	for i, v := range vs {
		out[i] = value(v)
	}
	return out
}

func value(v float64) *float64 {
	if v != v {
		return nil
	}
	return &v
}
