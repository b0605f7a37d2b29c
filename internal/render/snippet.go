package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"plotkit/internal/plot"
)

// Snippet is an embeddable ECharts chart fragment.
// Div holds the single root <div id="..." style="..."></div>, Script the
// <script> block that initializes the chart in that div and HTML both,
// wrapped in a container for template substitution.
type Snippet struct {
	ID     string
	Title  string
	Div    string
	Script string
	HTML   string
}

// NewSnippet builds the snippet of a configured chart. The id is reduced to
// lowercase letters, digits and dashes; an empty id is derived from the chart
// title.
func NewSnippet(c Chart, id string) (Snippet, error) {
	frame, err := frameOf(c)
	if err != nil {
		return Snippet{}, err
	}
	id = slug(id)
	if id == "" {
		id = "chart"
		if s := slug(frame.Title); s != "" {
			id += "-" + s
		}
	}

	option, err := OptionJS(c)
	if err != nil {
		return Snippet{}, err
	}

	div := fmt.Sprintf("<div id=\"%s\" style=\"width:%dpx;height:%dpx;\"></div>", id, frame.Width, frame.Height)
	script := fmt.Sprintf(`<script>(function(){var el=document.getElementById('%s');if(!el)return;var c=echarts.init(el);var option=%s;c.setOption(option);window.addEventListener('resize',function(){c.resize();});})();</script>`, id, option)
	html := fmt.Sprintf("<div class=\"chart-container\">\n\t%s\n</div>\n%s", div, script)

	return Snippet{ID: id, Title: frame.Title, Div: div, Script: script, HTML: html}, nil
}

// OptionJS returns the ECharts option of a chart as a JavaScript object
// literal. Formatters are inlined as functions.
func OptionJS(c Chart) (string, error) {
	funcs := &jsFuncs{}
	var option map[string]interface{}
	switch chart := c.(type) {
	case *plot.DualAxisChart:
		option = dualOption(chart, funcs)
	case *plot.SeriesChart:
		option = seriesOption(chart, funcs)
	default:
		return "", &UnsupportedChartError{Chart: c}
	}

	optJSON, err := json.Marshal(option)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chart option: %w", err)
	}
	return funcs.inline(string(optJSON)), nil
}

func frameOf(c Chart) (plot.Frame, error) {
	switch chart := c.(type) {
	case *plot.DualAxisChart:
		return chart.Frame, nil
	case *plot.SeriesChart:
		return chart.Frame, nil
	}
	return plot.Frame{}, &UnsupportedChartError{Chart: c}
}

// jsFuncs collects JavaScript functions that JSON cannot carry. Each one is
// marshalled as a placeholder string and swapped back in afterwards.
type jsFuncs struct {
	list []string
}

func (f *jsFuncs) add(js string) string {
	key := fmt.Sprintf("__plotkit_fn_%d__", len(f.list))
	f.list = append(f.list, js)
	return key
}

func (f *jsFuncs) inline(s string) string {
	for i, js := range f.list {
		s = strings.Replace(s, fmt.Sprintf("\"__plotkit_fn_%d__\"", i), js, 1)
	}
	return s
}

// tooltipJS looks up the pre-rendered hover text of the hovered point
func tooltipJS(tips [][]string) string {
	table, _ := json.Marshal(tips)
	return fmt.Sprintf("function (p) { var t = %s; return (t[p.seriesIndex] || [])[p.dataIndex] || ''; }", table)
}

func tooltipOption(tips [][]string, funcs *jsFuncs) map[string]interface{} {
	return map[string]interface{}{
		"trigger":   "item",
		"confine":   true,
		"formatter": funcs.add(tooltipJS(tips)),
	}
}

func titleOption(title string) map[string]interface{} {
	return map[string]interface{}{"text": title, "left": "center"}
}

func legendOption(l plot.Legend) map[string]interface{} {
	entries := make([]interface{}, len(l.Items))
	for i, item := range l.Items {
		entry := map[string]interface{}{"name": item.Label}
		if item.Kind == plot.KindBar {
			entry["icon"] = "roundRect"
		}
		entries[i] = entry
	}

	m := map[string]interface{}{"show": l.Show, "data": entries}
	x, y := l.Location.X, l.Location.Y
	switch l.Placement {
	case plot.PlacementAbove:
		m["top"] = 30 + y
		m["left"] = horizontal(x)
	case plot.PlacementLeft:
		m["left"] = x
		m["top"] = vertical(y)
		m["orient"] = "vertical"
	case plot.PlacementRight:
		m["right"] = x
		m["top"] = vertical(y)
		m["orient"] = "vertical"
	case plot.PlacementCenter:
		m["left"] = horizontal(x)
		m["top"] = vertical(y)
	default:
		m["bottom"] = y
		m["left"] = horizontal(x)
	}
	return m
}

func horizontal(x int) interface{} {
	if x == 0 {
		return "center"
	}
	return x
}

func vertical(y int) interface{} {
	if y == 0 {
		return "middle"
	}
	return y
}

// gridOption leaves room for the legend on its side of the plot area
func gridOption(l plot.Legend) map[string]interface{} {
	m := map[string]interface{}{"left": 60, "right": 60, "top": 60, "bottom": 40, "containLabel": true}
	if !l.Show {
		return m
	}
	switch l.Placement {
	case plot.PlacementAbove:
		m["top"] = 90
	case plot.PlacementLeft:
		m["left"] = 180
	case plot.PlacementRight:
		m["right"] = 180
	case plot.PlacementBelow:
		m["bottom"] = 80
	}
	return m
}

func xAxisOption(x plot.XAxis, values []string, bars bool) map[string]interface{} {
	splitLine := map[string]interface{}{"show": x.GridLineColour != ""}
	if x.GridLineColour != "" {
		splitLine["lineStyle"] = map[string]interface{}{"color": x.GridLineColour}
	}
	return map[string]interface{}{
		"type":         "category",
		"data":         values,
		"name":         x.Label,
		"nameLocation": "middle",
		"nameGap":      45,
		"boundaryGap":  bars || x.RangePadding > 0,
		"axisLabel":    map[string]interface{}{"rotate": degrees(x.LabelOrientation)},
		"splitLine":    splitLine,
	}
}

func yAxisOption(a plot.Axis, position string, funcs *jsFuncs) map[string]interface{} {
	m := map[string]interface{}{
		"type":         "value",
		"name":         a.Label,
		"position":     position,
		"nameLocation": "middle",
		"nameGap":      55,
		"axisLabel":    map[string]interface{}{"formatter": funcs.add(plot.NumeralJS(a.TickFormat))},
	}
	if a.Range != nil {
		m["min"] = a.Range.Min
		m["max"] = a.Range.Max
	} else {
		m["scale"] = true
	}
	if position == "right" {
		m["splitLine"] = map[string]interface{}{"show": false}
	}
	return m
}

func dualOption(c *plot.DualAxisChart, funcs *jsFuncs) map[string]interface{} {
	items := c.Legend.Items
	bar := func(name string, vs []*float64, colour string) map[string]interface{} {
		return map[string]interface{}{
			"name":           name,
			"type":           "bar",
			"yAxisIndex":     0,
			"data":           data(vs),
			"itemStyle":      map[string]interface{}{"color": colour},
			"barGap":         "0%",
			"barCategoryGap": barGap(c.BarWidth),
		}
	}

	return map[string]interface{}{
		"title":   titleOption(c.Title),
		"tooltip": tooltipOption(dualTooltips(c), funcs),
		"legend":  legendOption(c.Legend),
		"grid":    gridOption(c.Legend),
		"xAxis":   []interface{}{xAxisOption(c.X, c.Groups, true)},
		"yAxis": []interface{}{
			yAxisOption(c.Y, "left", funcs),
			yAxisOption(c.Right, "right", funcs),
		},
		"series": []interface{}{
			bar(items[0].Label, c.First, c.BarColours[0]),
			bar(items[1].Label, c.Second, c.BarColours[1]),
			map[string]interface{}{
				"name":       items[2].Label,
				"type":       "line",
				"yAxisIndex": 1,
				"data":       data(c.LineValues),
				"symbol":     "circle",
				"symbolSize": c.MarkerSize,
				"lineStyle":  map[string]interface{}{"width": c.LineWidth, "color": c.LineColour},
				"itemStyle":  map[string]interface{}{"color": c.LineColour},
			},
		},
	}
}

func seriesOption(c *plot.SeriesChart, funcs *jsFuncs) map[string]interface{} {
	series := make([]interface{}, len(c.Series))
	for i, s := range c.Series {
		colour := rgba(s.Colour, s.Alpha)
		m := map[string]interface{}{
			"name":      s.Name,
			"type":      string(s.Kind),
			"data":      data(s.Values),
			"itemStyle": map[string]interface{}{"color": colour},
		}
		if s.Kind == plot.KindBar {
			m["barGap"] = "0%"
			m["barCategoryGap"] = barGap(c.BarWidth)
		} else {
			m["showSymbol"] = false
			m["lineStyle"] = map[string]interface{}{"width": s.Width, "color": colour}
		}
		series[i] = m
	}

	return map[string]interface{}{
		"title":   titleOption(c.Title),
		"tooltip": tooltipOption(seriesTooltips(c), funcs),
		"legend":  legendOption(c.Legend),
		"grid":    gridOption(c.Legend),
		"xAxis":   []interface{}{xAxisOption(c.X, c.XValues, c.Kind == plot.KindBar)},
		"yAxis":   []interface{}{yAxisOption(c.Y, "left", funcs)},
		"series":  series,
	}
}
