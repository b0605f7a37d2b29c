package plot

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"plotkit/internal/dataset"
	"plotkit/internal/palette"
)

// xKind picks the axis layout for a column's values
func xKind(values []string, allowContinuous bool) XAxisKind {
	if !allowContinuous || len(values) == 0 {
		return XCategory
	}
	if allParse(values, func(s string) error { _, err := dataset.ParseTime(s); return err }) {
		return XTime
	}
	if allParse(values, func(s string) error { _, err := strconv.ParseFloat(s, 64); return err }) {
		return XValue
	}
	return XCategory
}

func allParse(values []string, parse func(string) error) bool {
	for _, v := range values {
		if parse(v) != nil {
			return false
		}
	}
	return true
}

// xOrder returns row indexes ordered by x for continuous axes and in row
// order for categorical ones
func xOrder(xs []string, kind XAxisKind) []int {
	order := make([]int, len(xs))
	for i := range order {
		order[i] = i
	}
	switch kind {
	case XTime:
		ts := make([]time.Time, len(xs))
		for i, x := range xs {
			ts[i], _ = dataset.ParseTime(x)
		}
		sort.SliceStable(order, func(a, b int) bool { return ts[order[a]].Before(ts[order[b]]) })
	case XValue:
		fs := make([]float64, len(xs))
		for i, x := range xs {
			fs[i], _ = strconv.ParseFloat(x, 64)
		}
		sort.SliceStable(order, func(a, b int) bool { return fs[order[a]] < fs[order[b]] })
	}
	return order
}

// categoryColours assigns one colour per category: a prefix of the explicit
// list when given, otherwise of the Material palette in the given shade
func categoryColours(n int, explicit []string, shade string) ([]string, error) {
	var colours []string
	var err error
	if len(explicit) > 0 {
		colours, err = palette.TakeFrom(n, explicit)
	} else {
		colours, err = palette.Take(n, shade)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to assign colours to %d categories: %w", n, err)
	}
	return colours, nil
}

// pivotSeries turns a pivot into one series per category
func pivotSeries(p *dataset.Pivot, kind SeriesKind, colours []string, width, alpha float64) []Series {
	out := make([]Series, len(p.Categories))
	for c, name := range p.Categories {
		out[c] = Series{
			Name:   name,
			Kind:   kind,
			Colour: colours[c],
			Width:  width,
			Alpha:  alpha,
			Values: values(p.Values[c]),
		}
	}
	return out
}

func legendItems(series []Series) []LegendItem {
	items := make([]LegendItem, len(series))
	for i, s := range series {
		items[i] = LegendItem{Label: s.Name, Colour: s.Colour, Kind: s.Kind}
	}
	return items
}

func validateShade(shade string, explicit []string) error {
	if len(explicit) > 0 {
		return validateColours("colours", explicit)
	}
	if len(palette.Categorical(shade)) == 0 {
		return &OptionError{Option: "colour_code", Value: shade, Reason: "no colour family has this shade"}
	}
	return nil
}
