package main

import (
	"github.com/spf13/cobra"

	"plotkit/internal/plot"
)

type frameFlags struct {
	title  string
	height int
	width  int
}

func (f *frameFlags) register(cmd *cobra.Command, height, width int) {
	cmd.Flags().StringVar(&f.title, "title", "", "Chart title")
	cmd.Flags().IntVar(&f.height, "height", height, "Chart height in pixels")
	cmd.Flags().IntVar(&f.width, "width", width, "Chart width in pixels")
}

type legendFlags struct {
	show      bool
	placement string
	x         int
	y         int
}

func (f *legendFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.placement, "legend-placement", string(plot.DefaultLegendPlacement), "Legend placement: below, above, left, right or center")
	cmd.Flags().IntVar(&f.x, "legend-x", 0, "Legend horizontal offset in pixels")
	cmd.Flags().IntVar(&f.y, "legend-y", 0, "Legend vertical offset in pixels")
}

func (f legendFlags) location() plot.LegendLocation {
	return plot.LegendLocation{X: f.x, Y: f.y}
}

// registerToggle adds --legend for charts whose legend is optional
func (f *legendFlags) registerToggle(cmd *cobra.Command, show bool) {
	cmd.Flags().BoolVar(&f.show, "legend", show, "Show the legend")
	f.register(cmd)
}

type axisFlags struct {
	padding     float64
	orientation float64
	grid        string
	xLabel      string
	yLabel      string
	tickFormat  string
}

func (f *axisFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.padding, "x-padding", plot.DefaultXRangePadding, "Fraction of the x range left empty at both ends")
	cmd.Flags().Float64Var(&f.orientation, "x-label-orientation", plot.DefaultXLabelOrientation, "Rotation of x tick labels in radians")
	cmd.Flags().StringVar(&f.grid, "grid-colour", "", "Vertical grid line colour; empty hides the grid")
	cmd.Flags().StringVar(&f.xLabel, "x-label", "", "X axis label (defaults to the x column)")
	cmd.Flags().StringVar(&f.yLabel, "y-label", "", "Y axis label (defaults to the y column)")
	cmd.Flags().StringVar(&f.tickFormat, "y-format", plot.DefaultTickFormat, "Numeral format of the y axis ticks")
}

func (f axisFlags) style() plot.AxisStyle {
	return plot.AxisStyle{
		XRangePadding:     plot.Float(f.padding),
		XLabelOrientation: plot.Float(f.orientation),
		GridLineColour:    f.grid,
	}
}

type tooltipFlags struct {
	xName        string
	yName        string
	categoryName string
	yFormat      string
}

func (f *tooltipFlags) register(cmd *cobra.Command, categories bool) {
	cmd.Flags().StringVar(&f.xName, "x-tooltip-name", "", "Name of the x value in tooltips")
	cmd.Flags().StringVar(&f.yName, "y-tooltip-name", "", "Name of the y value in tooltips")
	cmd.Flags().StringVar(&f.yFormat, "y-tooltip-format", "", "Numeral format of the y value in tooltips")
	if categories {
		cmd.Flags().StringVar(&f.categoryName, "category-tooltip-name", "", "Name of the category in tooltips")
	}
}

// stringFlag returns the flag value only when it was set, so an explicit
// empty value can be told apart from the default
func stringFlag(cmd *cobra.Command, name, value string) *string {
	if cmd.Flags().Changed(name) {
		return plot.String(value)
	}
	return nil
}

func floatFlag(cmd *cobra.Command, name string, value float64) *float64 {
	if cmd.Flags().Changed(name) {
		return plot.Float(value)
	}
	return nil
}

func newDualAxisCmd(a *app) *cobra.Command {
	var (
		frame      frameFlags
		legend     legendFlags
		axis       axisFlags
		output     outputFlags
		cols       plot.DualAxisColumns
		opts       plot.DualAxisOptions
		leftY      [2]float64
		rightY     [2]float64
		rightLabel string
		barName    string
		lineName   string
	)
	defaults := plot.DefaultDualAxisOptions()

	cmd := &cobra.Command{
		Use:   "dual-axis <source>",
		Short: "Paired bars on the left axis with a line on the right axis",
		Long: `Draws two bars per group, one for each value of the bar category column,
with a line of the line value column on a second axis. The source is a CSV or
XLSX file or an http(s) URL.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			opts.Title, opts.Height, opts.Width = frame.title, frame.height, frame.width
			opts.LeftAxisLabel = stringFlag(cmd, "y-label", axis.yLabel)
			opts.RightAxisLabel = stringFlag(cmd, "right-label", rightLabel)
			opts.XAxisLabel = axis.xLabel
			opts.YTickFormat = axis.tickFormat
			opts.MinLeftY = floatFlag(cmd, "min-left-y", leftY[0])
			opts.MaxLeftY = floatFlag(cmd, "max-left-y", leftY[1])
			opts.MinRightY = floatFlag(cmd, "min-right-y", rightY[0])
			opts.MaxRightY = floatFlag(cmd, "max-right-y", rightY[1])
			opts.BarTooltipName = stringFlag(cmd, "bar-tooltip-name", barName)
			opts.LineTooltipName = stringFlag(cmd, "line-tooltip-name", lineName)
			opts.LegendPlacement = plot.LegendPlacement(legend.placement)
			opts.LegendLocation = legend.location()
			opts.Axis = axis.style()

			chart, err := plot.DualAxisBarLine(ds, cols, opts)
			if err != nil {
				return err
			}
			return a.emit(cmd.Context(), chart, output)
		},
	}

	frame.register(cmd, defaults.Height, defaults.Width)
	legend.register(cmd)
	axis.register(cmd)
	output.register(cmd, "dual_axis")

	f := cmd.Flags()
	f.StringVar(&cols.Group, "group", "", "Column whose values are the x axis groups")
	f.StringVar(&cols.BarCategory, "bar-category", "", "Column holding the two bar categories")
	f.StringVar(&cols.BarValue, "bar-value", "", "Column of bar heights")
	f.StringVar(&cols.LineValue, "line-value", "", "Column of line values")
	for _, name := range []string{"group", "bar-category", "bar-value", "line-value"} {
		cmd.MarkFlagRequired(name)
	}

	f.StringVar(&rightLabel, "right-label", "", "Right axis label (defaults to the line value column)")

	f.StringSliceVar(&opts.BarColours, "bar-colours", defaults.BarColours, "Two hex colours for the bars")
	f.Float64Var(&opts.BarWidth, "bar-width", defaults.BarWidth, "Fraction of each slot the bars fill")
	f.StringVar(&opts.LineColour, "line-colour", defaults.LineColour, "Hex colour of the line")
	f.Float64Var(&opts.LineWidth, "line-width", defaults.LineWidth, "Line width in pixels")
	f.Float64Var(&opts.MarkerSize, "marker-size", defaults.MarkerSize, "Line marker diameter in pixels")
	f.Float64Var(&leftY[0], "min-left-y", 0, "Lower bound of the left axis")
	f.Float64Var(&leftY[1], "max-left-y", 0, "Upper bound of the left axis")
	f.Float64Var(&rightY[0], "min-right-y", 0, "Lower bound of the right axis")
	f.Float64Var(&rightY[1], "max-right-y", 0, "Upper bound of the right axis")
	f.StringVar(&opts.RightTickFormat, "right-format", "", "Numeral format of the right axis ticks")
	f.StringVar(&opts.XTooltipName, "x-tooltip-name", defaults.XTooltipName, "Name of the group in tooltips")
	f.StringVar(&barName, "bar-tooltip-name", "", "Name of the bar value in tooltips")
	f.StringVar(&lineName, "line-tooltip-name", "", "Name of the line value in tooltips")
	f.StringVar(&opts.BarTooltipFormat, "bar-tooltip-format", "", "Numeral format of bar values in tooltips")
	f.StringVar(&opts.LineTooltipFormat, "line-tooltip-format", "", "Numeral format of line values in tooltips")
	return cmd
}

func newLineCmd(a *app) *cobra.Command {
	var (
		frame   frameFlags
		legend  legendFlags
		axis    axisFlags
		tips    tooltipFlags
		output  outputFlags
		x, y    string
		opts    plot.LineOptions
		defvals = plot.DefaultLineOptions()
	)

	cmd := &cobra.Command{
		Use:   "line <source>",
		Short: "A single line of one column over another",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			opts.Title, opts.Height, opts.Width = frame.title, frame.height, frame.width
			opts.ShowLegend = legend.show
			opts.LegendPlacement = plot.LegendPlacement(legend.placement)
			opts.LegendLocation = legend.location()
			opts.XAxisLabel = stringFlag(cmd, "x-label", axis.xLabel)
			opts.YAxisLabel = stringFlag(cmd, "y-label", axis.yLabel)
			opts.YTickFormat = axis.tickFormat
			opts.XTooltipName, opts.YTooltipName, opts.YTooltipFormat = tips.xName, tips.yName, tips.yFormat
			opts.Axis = axis.style()

			chart, err := plot.SingleLine(ds, x, y, opts)
			if err != nil {
				return err
			}
			return a.emit(cmd.Context(), chart, output)
		},
	}

	frame.register(cmd, defvals.Height, defvals.Width)
	legend.registerToggle(cmd, false)
	axis.register(cmd)
	tips.register(cmd, false)
	output.register(cmd, "line_chart")

	f := cmd.Flags()
	f.StringVarP(&x, "x", "x", "", "Column drawn on the x axis")
	f.StringVarP(&y, "y", "y", "", "Column drawn on the y axis")
	cmd.MarkFlagRequired("x")
	cmd.MarkFlagRequired("y")
	f.StringVar(&opts.Colour, "colour", "", "Hex colour of the line; overrides --colour-name")
	f.StringVar(&opts.ColourName, "colour-name", defvals.ColourName, "Material palette family")
	f.StringVar(&opts.ColourCode, "colour-code", defvals.ColourCode, "Material palette shade")
	f.Float64Var(&opts.LineWidth, "line-width", defvals.LineWidth, "Line width in pixels")
	f.StringVar(&opts.LegendLabel, "legend-label", "", "Legend entry (defaults to the y column)")
	return cmd
}

func newMultiLineCmd(a *app) *cobra.Command {
	var (
		frame       frameFlags
		legend      legendFlags
		axis        axisFlags
		tips        tooltipFlags
		output      outputFlags
		x, y, group string
		opts        plot.MultiLineOptions
		defvals     = plot.DefaultMultiLineOptions()
	)

	cmd := &cobra.Command{
		Use:   "multi-line <source>",
		Short: "One line per value of a category column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			opts.Title, opts.Height, opts.Width = frame.title, frame.height, frame.width
			opts.ShowLegend = legend.show
			opts.LegendPlacement = plot.LegendPlacement(legend.placement)
			opts.LegendLocation = legend.location()
			opts.XAxisLabel = stringFlag(cmd, "x-label", axis.xLabel)
			opts.YAxisLabel = stringFlag(cmd, "y-label", axis.yLabel)
			opts.YTickFormat = axis.tickFormat
			opts.XTooltipName, opts.YTooltipName, opts.YTooltipFormat = tips.xName, tips.yName, tips.yFormat
			opts.CategoryTooltipName = tips.categoryName
			opts.Axis = axis.style()

			chart, err := plot.MultipleLines(ds, x, y, group, opts)
			if err != nil {
				return err
			}
			return a.emit(cmd.Context(), chart, output)
		},
	}

	frame.register(cmd, defvals.Height, defvals.Width)
	legend.registerToggle(cmd, false)
	axis.register(cmd)
	tips.register(cmd, true)
	output.register(cmd, "multiple_line_chart")

	f := cmd.Flags()
	f.StringVarP(&x, "x", "x", "", "Column drawn on the x axis")
	f.StringVarP(&y, "y", "y", "", "Column drawn on the y axis")
	f.StringVarP(&group, "category", "c", "", "Column splitting the rows into lines")
	for _, name := range []string{"x", "y", "category"} {
		cmd.MarkFlagRequired(name)
	}
	f.StringSliceVar(&opts.Colours, "colours", nil, "Hex colours, one per category; overrides the palette")
	f.StringVar(&opts.Shade, "shade", defvals.Shade, "Material palette shade of the line colours")
	f.Float64Var(&opts.LineWidth, "line-width", defvals.LineWidth, "Line width in pixels")
	f.Float64Var(&opts.LineAlpha, "line-alpha", defvals.LineAlpha, "Line opacity in (0, 1]")
	return cmd
}

func newMultiBarCmd(a *app) *cobra.Command {
	var (
		frame       frameFlags
		legend      legendFlags
		axis        axisFlags
		tips        tooltipFlags
		output      outputFlags
		x, y, group string
		opts        plot.MultiBarOptions
		defvals     = plot.DefaultMultiBarOptions()
	)

	cmd := &cobra.Command{
		Use:   "multi-bar <source>",
		Short: "Grouped bars, one per value of a category column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			opts.Title, opts.Height, opts.Width = frame.title, frame.height, frame.width
			opts.ShowLegend = legend.show
			opts.LegendPlacement = plot.LegendPlacement(legend.placement)
			opts.LegendLocation = legend.location()
			opts.XAxisLabel = stringFlag(cmd, "x-label", axis.xLabel)
			opts.YAxisLabel = stringFlag(cmd, "y-label", axis.yLabel)
			opts.YTickFormat = axis.tickFormat
			opts.XTooltipName, opts.YTooltipName, opts.YTooltipFormat = tips.xName, tips.yName, tips.yFormat
			opts.CategoryTooltipName = tips.categoryName
			opts.Axis = axis.style()

			chart, err := plot.MultipleBars(ds, x, y, group, opts)
			if err != nil {
				return err
			}
			return a.emit(cmd.Context(), chart, output)
		},
	}

	frame.register(cmd, defvals.Height, defvals.Width)
	legend.registerToggle(cmd, defvals.ShowLegend)
	axis.register(cmd)
	tips.register(cmd, true)
	output.register(cmd, "multiple_bar_chart")

	f := cmd.Flags()
	f.StringVarP(&x, "x", "x", "", "Column whose values are the bar groups")
	f.StringVarP(&y, "y", "y", "", "Column of bar heights")
	f.StringVarP(&group, "category", "c", "", "Column splitting each group into bars")
	for _, name := range []string{"x", "y", "category"} {
		cmd.MarkFlagRequired(name)
	}
	f.StringSliceVar(&opts.Colours, "colours", nil, "Hex colours, one per category; overrides the palette")
	f.StringVar(&opts.Shade, "shade", defvals.Shade, "Material palette shade of the bar colours")
	f.Float64Var(&opts.BarWidth, "bar-width", defvals.BarWidth, "Fraction of each x slot the bars fill")
	return cmd
}
