package plot

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"plotkit/internal/dataset"
	"plotkit/internal/palette"

	"github.com/google/go-cmp/cmp"
)

func dailySales(t *testing.T) *dataset.Dataset {
	return records(t,
		[]string{"date", "sales"},
		[]string{"2020-01-03", "130"},
		[]string{"2020-01-01", "100"},
		[]string{"2020-01-02", "120"},
	)
}

func salesByStore(t *testing.T, stores int) *dataset.Dataset {
	t.Helper()
	rows := [][]string{{"date", "store", "sales"}}
	for s := 1; s <= stores; s++ {
		for d := 1; d <= 2; d++ {
			rows = append(rows, []string{fmt.Sprintf("2020-01-0%d", d), fmt.Sprint(s), fmt.Sprint(s*100 + d)})
		}
	}
	return records(t, rows...)
}

func TestSingleLineDefaults(t *testing.T) {
	chart, err := SingleLine(dailySales(t), "date", "sales", DefaultLineOptions())
	if err != nil {
		t.Fatalf("SingleLine returned error: %v", err)
	}

	if chart.Height != 350 || chart.Width != 700 {
		t.Errorf("Expected 350x700, got %dx%d", chart.Height, chart.Width)
	}
	if chart.Legend.Show {
		t.Error("Legend should be hidden by default")
	}
	if chart.X.Kind != XTime {
		t.Errorf("Expected time axis, got %s", chart.X.Kind)
	}
	if diff := cmp.Diff([]string{"2020-01-01", "2020-01-02", "2020-01-03"}, chart.XValues); diff != "" {
		t.Errorf("Dates should be ascending (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{100, 120, 130}, floats(chart.Series[0].Values)); diff != "" {
		t.Errorf("Values should follow the dates (-want +got):\n%s", diff)
	}

	s := chart.Series[0]
	if s.Colour != "#ffca28" || s.Width != 2 || s.Name != "sales" {
		t.Errorf("Unexpected default series: %+v", s)
	}
	if chart.X.Label != "date" || chart.Y.Label != "sales" {
		t.Errorf("Axis labels should default to column names: %q, %q", chart.X.Label, chart.Y.Label)
	}
	if chart.X.LabelOrientation != 1 || chart.X.RangePadding != 0.1 || chart.X.GridLineColour != "" {
		t.Errorf("Unexpected x axis defaults: %+v", chart.X)
	}
	if len(chart.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", chart.Warnings)
	}
}

func TestSingleLineOptional(t *testing.T) {
	opts := DefaultLineOptions()
	opts.ShowLegend = true
	opts.ColourName = "amber"
	opts.ColourCode = "600"
	opts.Width = 900
	opts.Height = 450
	opts.LegendPlacement = PlacementRight
	opts.LineWidth = 1.5
	opts.YTickFormat = "0.0a"
	opts.YAxisLabel = String("Total Sales")
	opts.XAxisLabel = String("")

	chart, err := SingleLine(dailySales(t), "date", "sales", opts)
	if err != nil {
		t.Fatalf("SingleLine returned error: %v", err)
	}
	if chart.Series[0].Colour != "#ffb300" {
		t.Errorf("Expected amber 600, got %s", chart.Series[0].Colour)
	}
	if chart.X.Label != "" || chart.Y.Label != "Total Sales" {
		t.Errorf("Labels not applied: %q, %q", chart.X.Label, chart.Y.Label)
	}
	if !chart.Legend.Show || chart.Legend.Placement != PlacementRight {
		t.Errorf("Legend not applied: %+v", chart.Legend)
	}
}

func TestSingleLineUnknownColour(t *testing.T) {
	opts := DefaultLineOptions()
	opts.ColourName = "magenta"

	chart, err := SingleLine(dailySales(t), "date", "sales", opts)
	if err != nil {
		t.Fatalf("Unknown colour must not fail the chart: %v", err)
	}
	if chart.Series[0].Colour != palette.MustLookup("amber", "400") {
		t.Errorf("Expected default colour, got %s", chart.Series[0].Colour)
	}
	if len(chart.Warnings) != 1 || !strings.Contains(chart.Warnings[0], "magenta") {
		t.Errorf("Expected a warning naming the colour, got %v", chart.Warnings)
	}
}

func TestSingleLineExplicitColour(t *testing.T) {
	opts := DefaultLineOptions()
	opts.Colour = "#123456"

	chart, err := SingleLine(dailySales(t), "date", "sales", opts)
	if err != nil {
		t.Fatalf("SingleLine returned error: %v", err)
	}
	if chart.Series[0].Colour != "#123456" {
		t.Errorf("Expected explicit colour, got %s", chart.Series[0].Colour)
	}
}

func TestSingleLineCategoricalKeepsRowOrder(t *testing.T) {
	ds := records(t,
		[]string{"month", "sales"},
		[]string{"Mar", "3"},
		[]string{"Jan", "1"},
	)
	chart, err := SingleLine(ds, "month", "sales", LineOptions{})
	if err != nil {
		t.Fatalf("SingleLine returned error: %v", err)
	}
	if chart.X.Kind != XCategory {
		t.Errorf("Expected category axis, got %s", chart.X.Kind)
	}
	if diff := cmp.Diff([]string{"Mar", "Jan"}, chart.XValues); diff != "" {
		t.Errorf("Row order should be kept (-want +got):\n%s", diff)
	}
}

func TestSingleLineMissingColumn(t *testing.T) {
	_, err := SingleLine(dailySales(t), "date", "revenue", DefaultLineOptions())
	var schemaErr *dataset.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Expected *dataset.SchemaError, got %v", err)
	}
	if !errors.Is(err, dataset.ErrSchema) {
		t.Errorf("Wrapped schema error should match dataset.ErrSchema: %v", err)
	}
}

func TestMultipleLines(t *testing.T) {
	chart, err := MultipleLines(salesByStore(t, 3), "date", "sales", "store", DefaultMultiLineOptions())
	if err != nil {
		t.Fatalf("MultipleLines returned error: %v", err)
	}

	if len(chart.Series) != 3 {
		t.Fatalf("Expected 3 series, got %d", len(chart.Series))
	}
	want, _ := palette.Take(3, "500")
	for i, s := range chart.Series {
		if s.Colour != want[i] {
			t.Errorf("series %d colour = %s, want %s", i, s.Colour, want[i])
		}
		if s.Name != fmt.Sprint(i+1) {
			t.Errorf("series %d name = %s", i, s.Name)
		}
	}
	if diff := cmp.Diff([]float64{201, 202}, floats(chart.Series[1].Values)); diff != "" {
		t.Errorf("Store 2 values mismatch (-want +got):\n%s", diff)
	}
	if chart.Legend.Show {
		t.Error("Legend should be hidden by default")
	}
	if chart.X.Kind != XTime {
		t.Errorf("Expected time axis, got %s", chart.X.Kind)
	}
}

func TestMultipleLinesOptions(t *testing.T) {
	opts := DefaultMultiLineOptions()
	opts.ShowLegend = true
	opts.LineAlpha = 0.5
	opts.LineWidth = 1.5
	opts.Colours = []string{"#000000", "#111111"}

	chart, err := MultipleLines(salesByStore(t, 2), "date", "sales", "store", opts)
	if err != nil {
		t.Fatalf("MultipleLines returned error: %v", err)
	}
	if chart.Series[1].Colour != "#111111" || chart.Series[0].Alpha != 0.5 || chart.Series[0].Width != 1.5 {
		t.Errorf("Options not applied: %+v", chart.Series)
	}

	_, err = MultipleLines(salesByStore(t, 3), "date", "sales", "store", opts)
	var exhausted *palette.ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("Expected *palette.ExhaustedError with 2 colours for 3 stores, got %v", err)
	}

	opts.LineAlpha = 2
	if _, err := MultipleLines(salesByStore(t, 2), "date", "sales", "store", opts); err == nil {
		t.Error("Expected error for line alpha above 1")
	}
}

func TestMultipleLinesPaletteExhausted(t *testing.T) {
	n := len(palette.Categorical("500"))

	if _, err := MultipleLines(salesByStore(t, n), "date", "sales", "store", DefaultMultiLineOptions()); err != nil {
		t.Fatalf("Expected %d categories to fit the palette, got %v", n, err)
	}

	_, err := MultipleLines(salesByStore(t, n+1), "date", "sales", "store", DefaultMultiLineOptions())
	var exhausted *palette.ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("Expected *palette.ExhaustedError, got %v", err)
	}
	if exhausted.Requested != n+1 || exhausted.Available != n {
		t.Errorf("Unexpected error fields: %+v", exhausted)
	}
}

func TestDefaultLineOptions(t *testing.T) {
	want := LineOptions{
		Height:          350,
		Width:           700,
		ColourName:      "amber",
		ColourCode:      "400",
		LineWidth:       2,
		LegendPlacement: PlacementBelow,
		YTickFormat:     "0.0",
		Axis:            AxisStyle{XRangePadding: Float(0.1), XLabelOrientation: Float(1)},
	}
	if diff := cmp.Diff(want, DefaultLineOptions()); diff != "" {
		t.Errorf("Defaults mismatch (-want +got):\n%s", diff)
	}

	wantMulti := MultiLineOptions{
		Height:          400,
		Width:           700,
		Shade:           "500",
		LineWidth:       2,
		LineAlpha:       1,
		LegendPlacement: PlacementBelow,
		YTickFormat:     "0.0",
		Axis:            AxisStyle{XRangePadding: Float(0.1), XLabelOrientation: Float(1)},
	}
	if diff := cmp.Diff(wantMulti, DefaultMultiLineOptions()); diff != "" {
		t.Errorf("Multi-line defaults mismatch (-want +got):\n%s", diff)
	}
}
