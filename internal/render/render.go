// Package render turns configured chart descriptions into output: embeddable
// ECharts snippets, standalone go-echarts pages, static PNG/SVG images and
// composed HTML pages.
package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"plotkit/internal/logger"
	"plotkit/internal/plot"
)

var log = logger.Component("render")

// Chart is a configured chart description: *plot.DualAxisChart or
// *plot.SeriesChart
type Chart interface{}

// UnsupportedChartError is returned for chart values no renderer knows
type UnsupportedChartError struct {
	Chart Chart
}

func (e *UnsupportedChartError) Error() string {
	return fmt.Sprintf("unsupported chart type %T", e.Chart)
}

// dualTooltips renders the hover text of every data point, indexed by
// series then data index: first category bars, second category bars, line.
func dualTooltips(c *plot.DualAxisChart) [][]string {
	out := make([][]string, 3)
	for s := range out {
		out[s] = make([]string, len(c.Groups))
	}
	for g, group := range c.Groups {
		out[0][g] = c.BarTooltip.Render(map[string]interface{}{
			plot.FieldX:    group,
			plot.FieldBar:  c.First[g],
			plot.FieldLine: c.LineValues[g],
		})
		out[1][g] = c.BarTooltip.Render(map[string]interface{}{
			plot.FieldX:    group,
			plot.FieldBar:  c.Second[g],
			plot.FieldLine: c.LineValues[g],
		})
		out[2][g] = c.LineTooltip.Render(map[string]interface{}{
			plot.FieldX:    group,
			plot.FieldLine: c.LineValues[g],
		})
	}
	return out
}

func seriesTooltips(c *plot.SeriesChart) [][]string {
	out := make([][]string, len(c.Series))
	for s, series := range c.Series {
		out[s] = make([]string, len(series.Values))
		for i, v := range series.Values {
			out[s][i] = c.Tooltip.Render(map[string]interface{}{
				plot.FieldX:        c.XValues[i],
				plot.FieldCategory: series.Name,
				plot.FieldY:        v,
			})
		}
	}
	return out
}

// rgba applies alpha to a #rrggbb colour. Opaque colours are returned as is.
func rgba(hex string, alpha float64) string {
	if alpha <= 0 || alpha >= 1 {
		return hex
	}
	r, g, b, ok := parseHex(hex)
	if !ok {
		return hex
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", r, g, b, strconv.FormatFloat(alpha, 'f', -1, 64))
}

func parseHex(hex string) (r, g, b uint8, ok bool) {
	h := strings.TrimPrefix(hex, "#")
	if len(h) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}

// degrees converts a label orientation in radians to whole degrees
func degrees(radians float64) int {
	return int(math.Round(radians * 180 / math.Pi))
}

// barGap is the empty share of a category slot for a bar width fraction
func barGap(width float64) string {
	if width <= 0 || width > 1 {
		width = 0.8
	}
	return strconv.FormatFloat(math.Round((1-width)*100), 'f', -1, 64) + "%"
}

// data converts series values to ECharts data, with "-" for gaps
func data(vs []*float64) []interface{} {
	out := make([]interface{}, len(vs))
	for i, v := range vs {
		if v == nil {
			out[i] = "-"
			continue
		}
		out[i] = *v
	}
	return out
}

// slug turns a title into an element id fragment
func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
