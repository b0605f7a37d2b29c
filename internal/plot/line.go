package plot

import (
	"fmt"

	"plotkit/internal/dataset"
	"plotkit/internal/logger"
	"plotkit/internal/palette"
)

// LineOptions configures SingleLine
type LineOptions struct {
	Title  string
	Height int
	Width  int

	// Colour is an explicit hex colour. When empty the colour is looked up
	// from ColourName and ColourCode in the Material palette.
	Colour     string
	ColourName string
	ColourCode string
	LineWidth  float64

	ShowLegend      bool
	LegendLabel     string
	LegendLocation  LegendLocation
	LegendPlacement LegendPlacement

	// Axis labels default to the column names; set to "" to hide
	XAxisLabel *string
	YAxisLabel *string

	YTickFormat    string
	XTooltipName   string
	YTooltipName   string
	YTooltipFormat string

	Axis AxisStyle
}

// DefaultLineOptions returns the documented defaults
func DefaultLineOptions() LineOptions {
	o := LineOptions{}
	o.applyDefaults()
	return o
}

func (o *LineOptions) applyDefaults() {
	if o.Height == 0 {
		o.Height = 350
	}
	if o.Width == 0 {
		o.Width = 700
	}
	if o.ColourName == "" {
		o.ColourName = palette.DefaultFamily
	}
	if o.ColourCode == "" {
		o.ColourCode = palette.DefaultShade
	}
	if o.LineWidth == 0 {
		o.LineWidth = DefaultLineWidth
	}
	if o.LegendPlacement == "" {
		o.LegendPlacement = DefaultLegendPlacement
	}
	if o.YTickFormat == "" {
		o.YTickFormat = DefaultTickFormat
	}
	o.Axis.applyDefaults()
}

// Validate checks every option value. Unknown palette colours are not an
// error: they are replaced by the default colour when the chart is built.
func (o LineOptions) Validate() error {
	if err := validateSize(o.Height, o.Width); err != nil {
		return err
	}
	if o.Colour != "" {
		if err := validateColours("colour", []string{o.Colour}); err != nil {
			return err
		}
	}
	if o.LineWidth <= 0 {
		return &OptionError{Option: "line_width", Value: o.LineWidth, Reason: "must be positive"}
	}
	if err := validateFormat("y_num_tick_formatter", o.YTickFormat); err != nil {
		return err
	}
	if err := validateFormat("y_tooltip_format", o.YTooltipFormat); err != nil {
		return err
	}
	if err := validateLegend(o.LegendPlacement); err != nil {
		return err
	}
	return o.Axis.validate()
}

// SingleLine configures one line of y over x. Date and numeric x columns are
// drawn in ascending order; other x columns keep row order.
func SingleLine(ds *dataset.Dataset, x, y string, opts LineOptions) (*SeriesChart, error) {
	opts.applyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := ds.Require(x, y); err != nil {
		return nil, fmt.Errorf("failed to configure line chart: %w", err)
	}

	xs, _ := ds.Strings(x)
	ys, err := ds.Floats(y)
	if err != nil {
		return nil, fmt.Errorf("failed to read line values: %w", err)
	}

	kind := xKind(xs, true)
	order := xOrder(xs, kind)
	xValues := make([]string, len(order))
	yValues := make([]float64, len(order))
	for i, row := range order {
		xValues[i] = xs[row]
		yValues[i] = ys[row]
	}

	var warnings []string
	colour := opts.Colour
	if colour == "" {
		var lookupErr error
		colour, lookupErr = palette.Resolve(opts.ColourName, opts.ColourCode)
		if lookupErr != nil {
			msg := fmt.Sprintf("%v; using %s %s", lookupErr, palette.DefaultFamily, palette.DefaultShade)
			log.Warn("Colour not found, using default", logger.Fields{"colour_name": opts.ColourName, "colour_code": opts.ColourCode})
			warnings = append(warnings, msg)
		}
	}

	xLabel := labelOr(opts.XAxisLabel, x)
	yLabel := labelOr(opts.YAxisLabel, y)
	name := opts.LegendLabel
	if name == "" {
		name = y
	}

	series := []Series{{
		Name:   name,
		Kind:   KindLine,
		Colour: colour,
		Width:  opts.LineWidth,
		Alpha:  1,
		Values: values(yValues),
	}}

	chart := &SeriesChart{
		Frame: Frame{
			Title:  opts.Title,
			Height: opts.Height,
			Width:  opts.Width,
			X:      xAxis(xLabel, kind, opts.Axis),
			Y:      Axis{Label: yLabel, TickFormat: opts.YTickFormat},
			Legend: Legend{
				Show:      opts.ShowLegend,
				Items:     legendItems(series),
				Placement: opts.LegendPlacement,
				Location:  opts.LegendLocation,
			},
		},
		Kind:    KindLine,
		XValues: xValues,
		Series:  series,
		Tooltip: Tooltip{
			Fields: []TooltipField{
				{Label: nameOr(opts.XTooltipName, x), Field: FieldX},
				{Label: nameOr(opts.YTooltipName, y), Field: FieldY, Format: opts.YTooltipFormat},
			},
		},
		Warnings: warnings,
	}

	log.Debug("Configured line chart", logger.Fields{"points": len(xValues), "x_kind": kind, "colour": colour})
	return chart, nil
}

// MultiLineOptions configures MultipleLines
type MultiLineOptions struct {
	Title  string
	Height int
	Width  int

	// Colours overrides the palette; otherwise one Material family per
	// category in Shade
	Colours   []string
	Shade     string
	LineWidth float64
	// LineAlpha is the line opacity in (0, 1]
	LineAlpha float64

	ShowLegend      bool
	LegendLocation  LegendLocation
	LegendPlacement LegendPlacement

	XAxisLabel *string
	YAxisLabel *string

	YTickFormat         string
	XTooltipName        string
	YTooltipName        string
	CategoryTooltipName string
	YTooltipFormat      string

	Axis AxisStyle
}

// DefaultMultiLineOptions returns the documented defaults
func DefaultMultiLineOptions() MultiLineOptions {
	o := MultiLineOptions{}
	o.applyDefaults()
	return o
}

func (o *MultiLineOptions) applyDefaults() {
	if o.Height == 0 {
		o.Height = 400
	}
	if o.Width == 0 {
		o.Width = 700
	}
	if o.Shade == "" {
		o.Shade = "500"
	}
	if o.LineWidth == 0 {
		o.LineWidth = DefaultLineWidth
	}
	if o.LineAlpha == 0 {
		o.LineAlpha = 1
	}
	if o.LegendPlacement == "" {
		o.LegendPlacement = DefaultLegendPlacement
	}
	if o.YTickFormat == "" {
		o.YTickFormat = DefaultTickFormat
	}
	o.Axis.applyDefaults()
}

// Validate checks every option value
func (o MultiLineOptions) Validate() error {
	if err := validateSize(o.Height, o.Width); err != nil {
		return err
	}
	if err := validateShade(o.Shade, o.Colours); err != nil {
		return err
	}
	if o.LineWidth <= 0 {
		return &OptionError{Option: "line_width", Value: o.LineWidth, Reason: "must be positive"}
	}
	if o.LineAlpha <= 0 || o.LineAlpha > 1 {
		return &OptionError{Option: "line_alpha", Value: o.LineAlpha, Reason: "must be in (0, 1]"}
	}
	if err := validateFormat("y_num_tick_formatter", o.YTickFormat); err != nil {
		return err
	}
	if err := validateFormat("y_tooltip_format", o.YTooltipFormat); err != nil {
		return err
	}
	if err := validateLegend(o.LegendPlacement); err != nil {
		return err
	}
	return o.Axis.validate()
}

// MultipleLines configures one line per distinct value of category. The
// dataset is pivoted on x; x values and categories are sorted naturally.
func MultipleLines(ds *dataset.Dataset, x, y, category string, opts MultiLineOptions) (*SeriesChart, error) {
	opts.applyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := ds.Require(x, y, category); err != nil {
		return nil, fmt.Errorf("failed to configure multi-line chart: %w", err)
	}

	p, err := ds.Pivot(x, category, y)
	if err != nil {
		return nil, fmt.Errorf("failed to pivot %s by %s: %w", y, category, err)
	}
	colours, err := categoryColours(len(p.Categories), opts.Colours, opts.Shade)
	if err != nil {
		return nil, err
	}

	series := pivotSeries(p, KindLine, colours, opts.LineWidth, opts.LineAlpha)
	chart := &SeriesChart{
		Frame: Frame{
			Title:  opts.Title,
			Height: opts.Height,
			Width:  opts.Width,
			X:      xAxis(labelOr(opts.XAxisLabel, x), xKind(p.Index, true), opts.Axis),
			Y:      Axis{Label: labelOr(opts.YAxisLabel, y), TickFormat: opts.YTickFormat},
			Legend: Legend{
				Show:      opts.ShowLegend,
				Items:     legendItems(series),
				Placement: opts.LegendPlacement,
				Location:  opts.LegendLocation,
			},
		},
		Kind:    KindLine,
		XValues: p.Index,
		Series:  series,
		Tooltip: categoryTooltip(x, y, category, opts.XTooltipName, opts.CategoryTooltipName, opts.YTooltipName, opts.YTooltipFormat),
	}

	log.Debug("Configured multi-line chart", logger.Fields{"categories": len(series), "points": len(p.Index)})
	return chart, nil
}

func xAxis(label string, kind XAxisKind, style AxisStyle) XAxis {
	return XAxis{
		Label:            label,
		Kind:             kind,
		RangePadding:     *style.XRangePadding,
		LabelOrientation: *style.XLabelOrientation,
		GridLineColour:   style.GridLineColour,
	}
}

func categoryTooltip(x, y, category, xName, categoryName, yName, yFormat string) Tooltip {
	return Tooltip{
		Fields: []TooltipField{
			{Label: nameOr(xName, x), Field: FieldX},
			{Label: nameOr(categoryName, category), Field: FieldCategory},
			{Label: nameOr(yName, y), Field: FieldY, Format: yFormat},
		},
	}
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
