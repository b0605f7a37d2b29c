package plot

import (
	"fmt"

	"plotkit/internal/dataset"
	"plotkit/internal/logger"
)

// MultiBarOptions configures MultipleBars
type MultiBarOptions struct {
	Title  string
	Height int
	Width  int

	Colours []string
	Shade   string
	// BarWidth is the fraction of each x slot the group of bars fills
	BarWidth float64

	ShowLegend      bool
	LegendLocation  LegendLocation
	LegendPlacement LegendPlacement

	XAxisLabel *string
	YAxisLabel *string

	// YTickFormat formats the y axis ticks
	YTickFormat         string
	XTooltipName        string
	YTooltipName        string
	CategoryTooltipName string
	YTooltipFormat      string

	Axis AxisStyle
}

// DefaultMultiBarOptions returns the documented defaults
func DefaultMultiBarOptions() MultiBarOptions {
	o := MultiBarOptions{ShowLegend: true}
	o.applyDefaults()
	return o
}

func (o *MultiBarOptions) applyDefaults() {
	if o.Height == 0 {
		o.Height = 400
	}
	if o.Width == 0 {
		o.Width = 700
	}
	if o.Shade == "" {
		o.Shade = "500"
	}
	if o.BarWidth == 0 {
		o.BarWidth = 0.9
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
func (o MultiBarOptions) Validate() error {
	if err := validateSize(o.Height, o.Width); err != nil {
		return err
	}
	if err := validateShade(o.Shade, o.Colours); err != nil {
		return err
	}
	if o.BarWidth <= 0 || o.BarWidth > 1 {
		return &OptionError{Option: "bar_width", Value: o.BarWidth, Reason: "must be in (0, 1]"}
	}
	if err := validateFormat("y_axis_format", o.YTickFormat); err != nil {
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

// MultipleBars configures grouped bars: one x slot per distinct x value and
// one bar per category inside it
func MultipleBars(ds *dataset.Dataset, x, y, category string, opts MultiBarOptions) (*SeriesChart, error) {
	opts.applyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := ds.Require(x, y, category); err != nil {
		return nil, fmt.Errorf("failed to configure multi-bar chart: %w", err)
	}

	p, err := ds.Pivot(x, category, y)
	if err != nil {
		return nil, fmt.Errorf("failed to pivot %s by %s: %w", y, category, err)
	}
	colours, err := categoryColours(len(p.Categories), opts.Colours, opts.Shade)
	if err != nil {
		return nil, err
	}

	series := pivotSeries(p, KindBar, colours, 0, 1)
	chart := &SeriesChart{
		Frame: Frame{
			Title:  opts.Title,
			Height: opts.Height,
			Width:  opts.Width,
			X:      xAxis(labelOr(opts.XAxisLabel, x), XCategory, opts.Axis),
			Y:      Axis{Label: labelOr(opts.YAxisLabel, y), Range: barRange(series), TickFormat: opts.YTickFormat},
			Legend: Legend{
				Show:      opts.ShowLegend,
				Items:     legendItems(series),
				Placement: opts.LegendPlacement,
				Location:  opts.LegendLocation,
			},
		},
		Kind:     KindBar,
		XValues:  p.Index,
		Series:   series,
		BarWidth: opts.BarWidth,
		Tooltip:  categoryTooltip(x, y, category, opts.XTooltipName, opts.CategoryTooltipName, opts.YTooltipName, opts.YTooltipFormat),
	}

	log.Debug("Configured multi-bar chart", logger.Fields{"categories": len(series), "slots": len(p.Index)})
	return chart, nil
}

// barRange applies the left-axis padding rule to every bar value
func barRange(series []Series) *Range {
	var all []*float64
	for _, s := range series {
		all = append(all, s.Values...)
	}
	return leftRange(all, nil, nil)
}
