package render

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"plotkit/internal/logger"
	"plotkit/internal/plot"
)

// ECharts builds standalone go-echarts charts and pages
type ECharts struct {
	Theme      string
	AssetsHost string
}

// NewECharts creates a go-echarts renderer. Empty values keep the go-echarts
// defaults.
func NewECharts(theme, assetsHost string) *ECharts {
	return &ECharts{Theme: theme, AssetsHost: assetsHost}
}

// Charter builds the go-echarts chart of a configured chart
func (e *ECharts) Charter(c Chart) (components.Charter, error) {
	switch chart := c.(type) {
	case *plot.DualAxisChart:
		return e.dualAxis(chart), nil
	case *plot.SeriesChart:
		if chart.Kind == plot.KindBar {
			return e.bars(chart), nil
		}
		return e.lines(chart), nil
	}
	return nil, &UnsupportedChartError{Chart: c}
}

// Render writes a standalone HTML page holding one chart
func (e *ECharts) Render(w io.Writer, c Chart) error {
	charter, err := e.Charter(c)
	if err != nil {
		return err
	}
	if r, ok := charter.(interface{ Render(io.Writer) error }); ok {
		if err := r.Render(w); err != nil {
			return fmt.Errorf("failed to render chart: %w", err)
		}
		return nil
	}
	return e.RenderPage(w, "", c)
}

// RenderPage writes a page with the charts laid out in order
func (e *ECharts) RenderPage(w io.Writer, title string, cs ...Chart) error {
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	if title != "" {
		page.PageTitle = title
	}
	if e.AssetsHost != "" {
		page.AssetsHost = e.AssetsHost
	}
	for _, c := range cs {
		charter, err := e.Charter(c)
		if err != nil {
			return err
		}
		page.AddCharts(charter)
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	log.Debug("Rendered go-echarts page", logger.Fields{"charts": len(cs), "bytes": buf.Len()})
	_, err := w.Write(buf.Bytes())
	return err
}

func (e *ECharts) globals(f plot.Frame, tips [][]string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		PageTitle: f.Title,
		Width:     px(f.Width),
		Height:    px(f.Height),
		Theme:     e.Theme,
	}
	if e.AssetsHost != "" {
		initOpts.AssetsHost = e.AssetsHost
	}
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(initOpts),
		charts.WithTitleOpts(opts.Title{Title: f.Title, Left: "center"}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "item",
			Formatter: types.FuncStr(opts.FuncOpts(tooltipJS(tips))),
		}),
		charts.WithLegendOpts(echartsLegend(f.Legend)),
		charts.WithXAxisOpts(echartsXAxis(f.X)),
		charts.WithYAxisOpts(echartsYAxis(f.Y)),
	}
}

func echartsLegend(l plot.Legend) opts.Legend {
	legend := opts.Legend{Show: opts.Bool(l.Show)}
	for key, v := range legendOption(l) {
		var s string
		switch x := v.(type) {
		case string:
			s = x
		case int:
			s = strconv.Itoa(x)
		default:
			continue
		}
		switch key {
		case "left":
			legend.Left = s
		case "right":
			legend.Right = s
		case "top":
			legend.Top = s
		case "bottom":
			legend.Bottom = s
		case "orient":
			legend.Orient = s
		}
	}
	return legend
}

func echartsXAxis(x plot.XAxis) opts.XAxis {
	axis := opts.XAxis{
		Name:      x.Label,
		Type:      "category",
		AxisLabel: &opts.AxisLabel{Rotate: float64(degrees(x.LabelOrientation))},
	}
	if x.GridLineColour != "" {
		axis.SplitLine = &opts.SplitLine{
			Show:      opts.Bool(true),
			LineStyle: &opts.LineStyle{Color: x.GridLineColour},
		}
	}
	return axis
}

func echartsYAxis(a plot.Axis) opts.YAxis {
	axis := opts.YAxis{
		Name: a.Label,
		Type: "value",
		AxisLabel: &opts.AxisLabel{
			Formatter: types.FuncStr(opts.FuncOpts(plot.NumeralJS(a.TickFormat))),
		},
	}
	if a.Range != nil {
		axis.Min = a.Range.Min
		axis.Max = a.Range.Max
	} else {
		axis.Scale = opts.Bool(true)
	}
	return axis
}

func (e *ECharts) dualAxis(c *plot.DualAxisChart) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(e.globals(c.Frame, dualTooltips(c))...)

	right := echartsYAxis(c.Right)
	right.Position = "right"
	right.SplitLine = &opts.SplitLine{Show: opts.Bool(false)}
	bar.ExtendYAxis(right)

	items := c.Legend.Items
	bar.SetXAxis(c.Groups).
		AddSeries(items[0].Label, barData(c.First), charts.WithItemStyleOpts(opts.ItemStyle{Color: c.BarColours[0]})).
		AddSeries(items[1].Label, barData(c.Second), charts.WithItemStyleOpts(opts.ItemStyle{Color: c.BarColours[1]})).
		SetSeriesOptions(charts.WithBarChartOpts(opts.BarChart{
			BarGap:         "0%",
			BarCategoryGap: barGap(c.BarWidth),
		}))

	line := charts.NewLine()
	line.SetXAxis(c.Groups).
		AddSeries(items[2].Label, lineData(c.LineValues),
			charts.WithLineChartOpts(opts.LineChart{
				YAxisIndex: 1,
				Symbol:     "circle",
				SymbolSize: c.MarkerSize,
				ShowSymbol: opts.Bool(true),
			}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: c.LineColour, Width: float32(c.LineWidth)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: c.LineColour}),
		)
	bar.Overlap(line)
	return bar
}

func (e *ECharts) bars(c *plot.SeriesChart) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(e.globals(c.Frame, seriesTooltips(c))...)
	bar.SetXAxis(c.XValues)
	for _, s := range c.Series {
		bar.AddSeries(s.Name, barData(s.Values),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: rgba(s.Colour, s.Alpha)}))
	}
	bar.SetSeriesOptions(charts.WithBarChartOpts(opts.BarChart{
		BarGap:         "0%",
		BarCategoryGap: barGap(c.BarWidth),
	}))
	return bar
}

func (e *ECharts) lines(c *plot.SeriesChart) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(e.globals(c.Frame, seriesTooltips(c))...)
	line.SetXAxis(c.XValues)
	for _, s := range c.Series {
		colour := rgba(s.Colour, s.Alpha)
		line.AddSeries(s.Name, lineData(s.Values),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: colour, Width: float32(s.Width)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: colour}),
		)
	}
	return line
}

func barData(vs []*float64) []opts.BarData {
	out := make([]opts.BarData, len(vs))
	for i, v := range vs {
		if v != nil {
			out[i] = opts.BarData{Value: *v}
		}
	}
	return out
}

func lineData(vs []*float64) []opts.LineData {
	out := make([]opts.LineData, len(vs))
	for i, v := range vs {
		if v != nil {
			out[i] = opts.LineData{Value: *v}
		}
	}
	return out
}

func px(n int) string {
	return strconv.Itoa(n) + "px"
}
