package plot

import (
	"fmt"
	"math"

	"plotkit/internal/dataset"
	"plotkit/internal/logger"
)

var log = logger.Component("plot")

// DualAxisColumns names the dataset columns a dual-axis chart reads
type DualAxisColumns struct {
	// Group values become the x-axis clusters
	Group string
	// BarCategory must hold exactly two distinct values, one per bar
	BarCategory string
	BarValue    string
	LineValue   string
}

// DualAxisOptions configures DualAxisBarLine. Start from
// DefaultDualAxisOptions and override fields; nil pointers take the
// computed default.
type DualAxisOptions struct {
	Title  string
	Height int
	Width  int

	// Axis labels default to the bar and line value column names
	LeftAxisLabel  *string
	RightAxisLabel *string
	XAxisLabel     string

	BarColours []string
	BarWidth   float64
	LineColour string
	LineWidth  float64
	MarkerSize float64

	MinLeftY  *float64
	MaxLeftY  *float64
	MinRightY *float64
	MaxRightY *float64

	// YTickFormat formats the left axis ticks; RightTickFormat the right
	YTickFormat     string
	RightTickFormat string

	XTooltipName      string
	BarTooltipName    *string
	LineTooltipName   *string
	BarTooltipFormat  string
	LineTooltipFormat string

	LegendLocation  LegendLocation
	LegendPlacement LegendPlacement

	Axis AxisStyle
}

// DefaultDualAxisOptions returns the documented defaults
func DefaultDualAxisOptions() DualAxisOptions {
	o := DualAxisOptions{}
	o.applyDefaults()
	return o
}

func (o *DualAxisOptions) applyDefaults() {
	if o.Height == 0 {
		o.Height = 400
	}
	if o.Width == 0 {
		o.Width = 700
	}
	if len(o.BarColours) == 0 {
		o.BarColours = []string{"#8c9eff", "#536dfe"}
	}
	if o.BarWidth == 0 {
		o.BarWidth = 0.9
	}
	if o.LineColour == "" {
		o.LineColour = "#ffca28"
	}
	if o.LineWidth == 0 {
		o.LineWidth = DefaultLineWidth
	}
	if o.MarkerSize == 0 {
		o.MarkerSize = 7
	}
	if o.YTickFormat == "" {
		o.YTickFormat = DefaultTickFormat
	}
	if o.XTooltipName == "" {
		o.XTooltipName = DefaultXTooltipName
	}
	if o.LegendPlacement == "" {
		o.LegendPlacement = DefaultLegendPlacement
	}
	o.Axis.applyDefaults()
}

// Validate checks every option value
func (o DualAxisOptions) Validate() error {
	if err := validateSize(o.Height, o.Width); err != nil {
		return err
	}
	if len(o.BarColours) != 2 {
		return &OptionError{Option: "bar_colours", Value: o.BarColours, Reason: "exactly two colours required"}
	}
	if err := validateColours("bar_colours", o.BarColours); err != nil {
		return err
	}
	if err := validateColours("line_colour", []string{o.LineColour}); err != nil {
		return err
	}
	if o.BarWidth <= 0 || o.BarWidth > 1 {
		return &OptionError{Option: "bar_width", Value: o.BarWidth, Reason: "must be in (0, 1]"}
	}
	if o.LineWidth <= 0 {
		return &OptionError{Option: "line_width", Value: o.LineWidth, Reason: "must be positive"}
	}
	if o.MarkerSize <= 0 {
		return &OptionError{Option: "circle_size", Value: o.MarkerSize, Reason: "must be positive"}
	}
	if o.MinLeftY != nil && o.MaxLeftY != nil && *o.MinLeftY >= *o.MaxLeftY {
		return &OptionError{Option: "min_left_y_range", Value: *o.MinLeftY, Reason: "must be below max_left_y_range"}
	}
	if o.MinRightY != nil && o.MaxRightY != nil && *o.MinRightY >= *o.MaxRightY {
		return &OptionError{Option: "min_right_y_range", Value: *o.MinRightY, Reason: "must be below max_right_y_range"}
	}
	for option, format := range map[string]string{
		"y_num_tick_formatter": o.YTickFormat,
		"right_tick_formatter": o.RightTickFormat,
		"bar_tooltip_format":   o.BarTooltipFormat,
		"line_tooltip_format":  o.LineTooltipFormat,
	} {
		if err := validateFormat(option, format); err != nil {
			return err
		}
	}
	if err := validateLegend(o.LegendPlacement); err != nil {
		return err
	}
	return o.Axis.validate()
}

// DualAxisBarLine configures a paired bar chart on the left axis and a line
// on the right axis over the same groups. The two bar categories are taken
// in first-seen row order; the dataset is not modified.
func DualAxisBarLine(ds *dataset.Dataset, cols DualAxisColumns, opts DualAxisOptions) (*DualAxisChart, error) {
	opts.applyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := ds.Require(cols.Group, cols.BarCategory, cols.BarValue, cols.LineValue); err != nil {
		return nil, fmt.Errorf("failed to configure dual-axis chart: %w", err)
	}

	categories, _ := ds.Unique(cols.BarCategory)
	if len(categories) != 2 {
		return nil, &ConfigurationError{Column: cols.BarCategory, Found: categories, Want: 2}
	}
	groups, _ := ds.Unique(cols.Group)

	groupCol, _ := ds.Strings(cols.Group)
	catCol, _ := ds.Strings(cols.BarCategory)
	bars, err := ds.Floats(cols.BarValue)
	if err != nil {
		return nil, fmt.Errorf("failed to read bar values: %w", err)
	}
	lines, err := ds.Floats(cols.LineValue)
	if err != nil {
		return nil, fmt.Errorf("failed to read line values: %w", err)
	}

	groupIndex := make(map[string]int, len(groups))
	for i, g := range groups {
		groupIndex[g] = i
	}

	first := make([]*float64, len(groups))
	second := make([]*float64, len(groups))
	lineByGroup := make([]*float64, len(groups))
	lineFromFirst := make([]bool, len(groups))
	seen := make(map[FactorKey]bool, len(groupCol))

	for row := range groupCol {
		key := FactorKey{Group: groupCol[row], Category: catCol[row]}
		if seen[key] {
			return nil, &dataset.DuplicateEntryError{Index: key.Group, Category: key.Category}
		}
		seen[key] = true

		g := groupIndex[key.Group]
		isFirst := key.Category == categories[0]
		if isFirst {
			first[g] = value(bars[row])
		} else {
			second[g] = value(bars[row])
		}
		// the line value is read from the first category's row when present
		if !lineFromFirst[g] && (isFirst || lineByGroup[g] == nil) {
			lineByGroup[g] = value(lines[row])
			lineFromFirst[g] = isFirst
		}
	}

	keys := make([]FactorKey, 0, 2*len(groups))
	barValues := make([]*float64, 0, 2*len(groups))
	colours := make([]string, 0, 2*len(groups))
	for g, group := range groups {
		keys = append(keys,
			FactorKey{Group: group, Category: categories[0]},
			FactorKey{Group: group, Category: categories[1]},
		)
		barValues = append(barValues, first[g], second[g])
		colours = append(colours, opts.BarColours...)
	}

	leftLabel := labelOr(opts.LeftAxisLabel, cols.BarValue)
	rightLabel := labelOr(opts.RightAxisLabel, cols.LineValue)

	chart := &DualAxisChart{
		Frame: Frame{
			Title:  opts.Title,
			Height: opts.Height,
			Width:  opts.Width,
			X: XAxis{
				Label:            opts.XAxisLabel,
				Kind:             XCategory,
				RangePadding:     *opts.Axis.XRangePadding,
				LabelOrientation: *opts.Axis.XLabelOrientation,
				GridLineColour:   opts.Axis.GridLineColour,
			},
			Y: Axis{
				Label:      leftLabel,
				Range:      leftRange(barValues, opts.MinLeftY, opts.MaxLeftY),
				TickFormat: opts.YTickFormat,
			},
			Legend: Legend{
				Show: true,
				Items: []LegendItem{
					{Label: leftLabel + ": " + categories[0], Colour: opts.BarColours[0], Kind: KindBar},
					{Label: leftLabel + ": " + categories[1], Colour: opts.BarColours[1], Kind: KindBar},
					{Label: rightLabel, Colour: opts.LineColour, Kind: KindLine},
				},
				Placement: opts.LegendPlacement,
				Location:  opts.LegendLocation,
			},
		},
		Right: Axis{
			Label:      rightLabel,
			Range:      rightRange(lineByGroup, opts.MinRightY, opts.MaxRightY),
			TickFormat: opts.RightTickFormat,
		},
		Groups:     groups,
		Categories: [2]string{categories[0], categories[1]},
		Keys:       keys,
		BarValues:  barValues,
		First:      first,
		Second:     second,
		BarColours: colours,
		BarWidth:   opts.BarWidth,
		LineValues: lineByGroup,
		LineColour: opts.LineColour,
		LineWidth:  opts.LineWidth,
		MarkerSize: opts.MarkerSize,
		BarTooltip: Tooltip{
			Exclusive: true,
			Fields: []TooltipField{
				{Label: opts.XTooltipName, Field: FieldX},
				{Label: labelOr(opts.BarTooltipName, leftLabel), Field: FieldBar, Format: opts.BarTooltipFormat},
				{Label: labelOr(opts.LineTooltipName, rightLabel), Field: FieldLine, Format: opts.LineTooltipFormat},
			},
		},
		LineTooltip: Tooltip{
			Exclusive: true,
			Fields: []TooltipField{
				{Label: opts.XTooltipName, Field: FieldX},
				{Label: labelOr(opts.LineTooltipName, rightLabel), Field: FieldLine, Format: opts.LineTooltipFormat},
			},
		},
	}

	log.Debug("Configured dual-axis chart", logger.Fields{
		"groups":     len(groups),
		"categories": categories,
		"left":       chart.Y.Range,
		"right":      chart.Right.Range,
	})
	return chart, nil
}

// leftRange pads the bar extremes by 10% away from zero and always keeps
// zero in range
func leftRange(vs []*float64, min, max *float64) *Range {
	lo, hi, ok := extremes(vs)
	r := &Range{}
	if ok {
		r.Min = math.Min(0, math.Min(lo*0.9, lo*1.1))
		r.Max = math.Max(0, math.Max(hi*0.9, hi*1.1))
	}
	return override(r, min, max)
}

// rightRange pads the line extremes by 10% without forcing zero in
func rightRange(vs []*float64, min, max *float64) *Range {
	lo, hi, ok := extremes(vs)
	r := &Range{}
	if ok {
		r.Min = math.Min(lo*1.1, lo*0.9)
		r.Max = math.Max(hi*1.1, hi*0.9)
	}
	return override(r, min, max)
}

func override(r *Range, min, max *float64) *Range {
	if min != nil {
		r.Min = *min
	}
	if max != nil {
		r.Max = *max
	}
	return r
}

func extremes(vs []*float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		if v == nil {
			continue
		}
		lo = math.Min(lo, *v)
		hi = math.Max(hi, *v)
		ok = true
	}
	return lo, hi, ok
}
