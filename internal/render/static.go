package render

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"plotkit/internal/dataset"
	"plotkit/internal/logger"
	"plotkit/internal/plot"
)

// ImageFormat is a static image encoding
type ImageFormat string

const (
	PNG ImageFormat = "png"
	SVG ImageFormat = "svg"
)

// RenderImage draws a configured chart as a static image
func RenderImage(w io.Writer, c Chart, format ImageFormat) error {
	graph, err := StaticChart(c)
	if err != nil {
		return err
	}

	provider := chart.PNG
	switch format {
	case PNG:
	case SVG:
		provider = chart.SVG
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}

	if err := graph.Render(provider, w); err != nil {
		return fmt.Errorf("failed to render %s chart: %w", format, err)
	}
	log.Debug("Rendered static chart", logger.Fields{"format": format, "title": graph.Title, "series": len(graph.Series)})
	return nil
}

// StaticChart lays a configured chart out as a go-chart chart
func StaticChart(c Chart) (*chart.Chart, error) {
	switch v := c.(type) {
	case *plot.DualAxisChart:
		return staticDualAxis(v), nil
	case *plot.SeriesChart:
		return staticSeries(v)
	}
	return nil, &UnsupportedChartError{Chart: c}
}

// barSeries draws grouped bars centred on each x position. Values holds one
// row per bar in the group; nil values leave a gap.
type barSeries struct {
	Name      string
	Positions []float64
	Values    [][]*float64
	Colours   []drawing.Color
	Width     float64
	Axis      chart.YAxisType
}

func (bs barSeries) GetName() string           { return bs.Name }
func (bs barSeries) GetStyle() chart.Style     { return chart.Style{} }
func (bs barSeries) GetYAxis() chart.YAxisType { return bs.Axis }
func (bs barSeries) Len() int                  { return len(bs.Positions) }
func (bs barSeries) Validate() error {
	if len(bs.Values) != len(bs.Colours) {
		return fmt.Errorf("bar series %q has %d value rows for %d colours", bs.Name, len(bs.Values), len(bs.Colours))
	}
	return nil
}

func (bs barSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	if len(bs.Values) == 0 {
		return
	}
	slot := float64(xrange.Translate(1) - xrange.Translate(0))
	group := slot * bs.Width
	bar := group / float64(len(bs.Values))

	base := math.Max(yrange.GetMin(), math.Min(0, yrange.GetMax()))
	y0 := canvasBox.Bottom - yrange.Translate(base)

	for i, pos := range bs.Positions {
		left := float64(canvasBox.Left+xrange.Translate(pos)) - group/2
		for k, row := range bs.Values {
			if i >= len(row) || row[i] == nil {
				continue
			}
			v := math.Max(yrange.GetMin(), math.Min(*row[i], yrange.GetMax()))
			y1 := canvasBox.Bottom - yrange.Translate(v)
			x0 := int(math.Round(left + float64(k)*bar))
			x1 := int(math.Round(left + float64(k+1)*bar))

			r.SetFillColor(bs.Colours[k])
			r.SetStrokeColor(bs.Colours[k])
			r.SetStrokeWidth(0)
			r.MoveTo(x0, y0)
			r.LineTo(x1, y0)
			r.LineTo(x1, y1)
			r.LineTo(x0, y1)
			r.Close()
			r.Fill()
		}
	}
}

// legendOnlySeries contributes a legend entry without drawing anything
type legendOnlySeries struct {
	name  string
	style chart.Style
}

func (ls legendOnlySeries) GetName() string           { return ls.name }
func (ls legendOnlySeries) GetStyle() chart.Style     { return ls.style }
func (ls legendOnlySeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (ls legendOnlySeries) Len() int                  { return 0 }
func (ls legendOnlySeries) Validate() error           { return nil }
func (ls legendOnlySeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
}

// legend draws the legend items on the side picked by the placement. Items
// come from a separate chart so the drawn series stay out of the legend.
func legend(l plot.Legend) chart.Renderable {
	entries := &chart.Chart{}
	for _, item := range l.Items {
		style := chart.Style{StrokeColor: colour(item.Colour, 1), StrokeWidth: 2}
		if item.Kind == plot.KindBar {
			style.StrokeWidth = 8
			style.FillColor = style.StrokeColor
		}
		entries.Series = append(entries.Series, legendOnlySeries{name: item.Label, style: style})
	}
	switch l.Placement {
	case plot.PlacementBelow:
		return chart.LegendThin(entries)
	case plot.PlacementLeft:
		return chart.LegendLeft(entries)
	}
	return chart.Legend(entries)
}

func colour(hex string, alpha float64) drawing.Color {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return drawing.ColorBlack
	}
	c := drawing.Color{R: r, G: g, B: b, A: 255}
	if alpha > 0 && alpha < 1 {
		c = c.WithAlpha(uint8(math.Round(alpha * 255)))
	}
	return c
}

func baseChart(f plot.Frame) chart.Chart {
	padding := chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}
	if f.Legend.Show && f.Legend.Placement == plot.PlacementBelow {
		padding.Bottom = 60
	}
	return chart.Chart{
		Title:      f.Title,
		TitleStyle: chart.Style{FontSize: 14, FontColor: drawing.ColorBlack},
		Background: chart.Style{Padding: padding},
		Height:     f.Height,
		Width:      f.Width,
	}
}

// categoryXAxis places one tick per category at positions 0..n-1. go-chart
// takes the x range from the ticks, so unlabelled ticks mark the padded ends.
func categoryXAxis(x plot.XAxis, values []string) chart.XAxis {
	n := float64(len(values))
	pad := 0.5 + x.RangePadding*n/2
	ticks := make([]chart.Tick, 0, len(values)+2)
	ticks = append(ticks, chart.Tick{Value: -pad})
	for i, v := range values {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: v})
	}
	ticks = append(ticks, chart.Tick{Value: n - 1 + pad})

	axis := staticXAxis(x)
	axis.Range = &chart.ContinuousRange{Min: -pad, Max: n - 1 + pad}
	axis.Ticks = ticks
	return axis
}

func staticXAxis(x plot.XAxis) chart.XAxis {
	axis := chart.XAxis{
		Name:      x.Label,
		NameStyle: chart.Style{FontSize: 11},
		Style:     chart.Style{FontSize: 10},
		TickStyle: chart.Style{TextRotationDegrees: float64(degrees(x.LabelOrientation))},
	}
	if x.GridLineColour != "" {
		axis.GridMajorStyle = chart.Style{StrokeColor: colour(x.GridLineColour, 1), StrokeWidth: 1}
	}
	return axis
}

func staticYAxis(a plot.Axis, r plot.Range) chart.YAxis {
	if r.Max <= r.Min {
		r.Max = r.Min + 1
	}
	format := a.TickFormat
	return chart.YAxis{
		Name:      a.Label,
		NameStyle: chart.Style{FontSize: 11},
		Style:     chart.Style{FontSize: 10},
		Range:     &chart.ContinuousRange{Min: r.Min, Max: r.Max},
		ValueFormatter: func(v interface{}) string {
			if f, ok := v.(float64); ok {
				return plot.FormatNumber(f, format)
			}
			return fmt.Sprint(v)
		},
	}
}

// lineSegments splits a line at its gaps
func lineSegments(name string, xs []float64, vs []*float64, style chart.Style, axis chart.YAxisType) []chart.Series {
	var out []chart.Series
	var seg *chart.ContinuousSeries
	for i, v := range vs {
		if v == nil || i >= len(xs) {
			seg = nil
			continue
		}
		if seg == nil {
			seg = &chart.ContinuousSeries{Name: name, Style: style, YAxis: axis}
			out = append(out, seg)
		}
		seg.XValues = append(seg.XValues, xs[i])
		seg.YValues = append(seg.YValues, *v)
	}
	return out
}

func positions(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

func staticDualAxis(c *plot.DualAxisChart) *chart.Chart {
	graph := baseChart(c.Frame)
	graph.XAxis = categoryXAxis(c.X, c.Groups)
	graph.YAxisSecondary = staticYAxis(c.Y, *c.Y.Range)
	graph.YAxis = staticYAxis(c.Right, *c.Right.Range)

	xs := positions(len(c.Groups))
	graph.Series = []chart.Series{barSeries{
		Name:      c.Y.Label,
		Positions: xs,
		Values:    [][]*float64{c.First, c.Second},
		Colours:   []drawing.Color{colour(c.BarColours[0], 1), colour(c.BarColours[1], 1)},
		Width:     c.BarWidth,
		Axis:      chart.YAxisSecondary,
	}}

	lineColour := colour(c.LineColour, 1)
	style := chart.Style{
		StrokeColor: lineColour,
		StrokeWidth: c.LineWidth,
		DotColor:    lineColour,
		DotWidth:    c.MarkerSize / 2,
	}
	graph.Series = append(graph.Series, lineSegments(c.Right.Label, xs, c.LineValues, style, chart.YAxisPrimary)...)

	if c.Legend.Show {
		graph.Elements = []chart.Renderable{legend(c.Legend)}
	}
	return &graph
}

func staticSeries(c *plot.SeriesChart) (*chart.Chart, error) {
	graph := baseChart(c.Frame)

	xs := positions(len(c.XValues))
	switch c.X.Kind {
	case plot.XTime, plot.XValue:
		var err error
		xs, err = continuousX(c.X.Kind, c.XValues)
		if err != nil {
			return nil, err
		}
		graph.XAxis = staticXAxis(c.X)
		graph.XAxis.Range = paddedRange(xs, c.X.RangePadding)
		if c.X.Kind == plot.XTime {
			graph.XAxis.ValueFormatter = func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return time.Unix(0, int64(f)).UTC().Format("2006-01-02")
				}
				return fmt.Sprint(v)
			}
		}
	default:
		graph.XAxis = categoryXAxis(c.X, c.XValues)
	}

	yRange := seriesRange(c.Series)
	if c.Y.Range != nil {
		yRange = *c.Y.Range
	}
	graph.YAxis = staticYAxis(c.Y, yRange)

	if c.Kind == plot.KindBar {
		bars := barSeries{Name: c.Y.Label, Positions: xs, Width: c.BarWidth, Axis: chart.YAxisPrimary}
		for _, s := range c.Series {
			bars.Values = append(bars.Values, s.Values)
			bars.Colours = append(bars.Colours, colour(s.Colour, s.Alpha))
		}
		graph.Series = []chart.Series{bars}
	} else {
		for _, s := range c.Series {
			style := chart.Style{StrokeColor: colour(s.Colour, s.Alpha), StrokeWidth: s.Width}
			graph.Series = append(graph.Series, lineSegments(s.Name, xs, s.Values, style, chart.YAxisPrimary)...)
		}
	}

	if c.Legend.Show {
		graph.Elements = []chart.Renderable{legend(c.Legend)}
	}
	return &graph, nil
}

func continuousX(kind plot.XAxisKind, values []string) ([]float64, error) {
	xs := make([]float64, len(values))
	for i, v := range values {
		if kind == plot.XTime {
			t, err := dataset.ParseTime(v)
			if err != nil {
				return nil, fmt.Errorf("failed to read x value %q: %w", v, err)
			}
			xs[i] = float64(t.UnixNano())
			continue
		}
		var f float64
		if _, err := fmt.Sscan(v, &f); err != nil {
			return nil, fmt.Errorf("failed to read x value %q: %w", v, err)
		}
		xs[i] = f
	}
	return xs, nil
}

func paddedRange(xs []float64, padding float64) *chart.ContinuousRange {
	if len(xs) == 0 {
		return &chart.ContinuousRange{Min: 0, Max: 1}
	}
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	span := hi - lo
	if span == 0 {
		span = math.Max(math.Abs(lo), 1)
	}
	return &chart.ContinuousRange{Min: lo - span*padding/2, Max: hi + span*padding/2}
}

// seriesRange spans every value with 5% headroom
func seriesRange(series []plot.Series) plot.Range {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, v := range s.Values {
			if v != nil {
				lo = math.Min(lo, *v)
				hi = math.Max(hi, *v)
			}
		}
	}
	if math.IsInf(lo, 1) {
		return plot.Range{Min: 0, Max: 1}
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = math.Max(math.Abs(hi)*0.05, 1)
	}
	return plot.Range{Min: lo - pad, Max: hi + pad}
}
