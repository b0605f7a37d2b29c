package plot

import (
	"errors"
	"math"
	"testing"

	"plotkit/internal/dataset"
	"plotkit/internal/palette"

	"github.com/google/go-cmp/cmp"
)

func yearlySales(t *testing.T) *dataset.Dataset {
	return records(t,
		[]string{"year", "store", "sales"},
		[]string{"2019", "2", "2000000"},
		[]string{"2018", "1", "1000000"},
		[]string{"2019", "1", "1500000"},
		[]string{"2018", "2", "1200000"},
		[]string{"2020", "1", "1700000"},
	)
}

func TestMultipleBars(t *testing.T) {
	opts := DefaultMultiBarOptions()
	opts.YTooltipFormat = "{0,0}"
	opts.YTickFormat = "0.0a"

	chart, err := MultipleBars(yearlySales(t), "year", "sales", "store", opts)
	if err != nil {
		t.Fatalf("MultipleBars returned error: %v", err)
	}

	if chart.Kind != KindBar || chart.X.Kind != XCategory {
		t.Errorf("Expected bars on a category axis, got %s on %s", chart.Kind, chart.X.Kind)
	}
	if diff := cmp.Diff([]string{"2018", "2019", "2020"}, chart.XValues); diff != "" {
		t.Errorf("Years mismatch (-want +got):\n%s", diff)
	}
	if len(chart.Series) != 2 {
		t.Fatalf("Expected 2 series, got %d", len(chart.Series))
	}
	if v := chart.Series[1].Values[2]; v != nil {
		t.Errorf("Store 2 has no 2020 row, expected a gap, got %v", *v)
	}
	if !chart.Legend.Show {
		t.Error("Legend should be shown by default")
	}
	if chart.Y.TickFormat != "0.0a" {
		t.Errorf("Expected tick format 0.0a, got %q", chart.Y.TickFormat)
	}
	if chart.Y.Range == nil || chart.Y.Range.Min != 0 || math.Abs(chart.Y.Range.Max-2200000) > 1e-6 {
		t.Errorf("Unexpected y range: %+v", chart.Y.Range)
	}

	got := chart.Tooltip.Render(map[string]interface{}{
		FieldX:        "2019",
		FieldCategory: "1",
		FieldY:        1500000.0,
	})
	want := "<b>year : </b> 2019 <br><b>store : </b> 1 <br><b>sales : </b> 1,500,000 <br>"
	if got != want {
		t.Errorf("Tooltip =\n%s\nwant\n%s", got, want)
	}
}

func TestMultipleBarsPalettePrefix(t *testing.T) {
	first, err := MultipleBars(yearlySales(t), "year", "sales", "store", DefaultMultiBarOptions())
	if err != nil {
		t.Fatalf("MultipleBars returned error: %v", err)
	}
	second, _ := MultipleBars(yearlySales(t), "year", "sales", "store", DefaultMultiBarOptions())

	want, _ := palette.Take(2, "500")
	got := []string{first.Series[0].Colour, first.Series[1].Colour}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Colours should be a palette prefix (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Repeated calls differ (-first +second):\n%s", diff)
	}
}

func TestMultipleBarsErrors(t *testing.T) {
	_, err := MultipleBars(yearlySales(t), "year", "sales", "region", DefaultMultiBarOptions())
	var schemaErr *dataset.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Errorf("Expected *dataset.SchemaError, got %v", err)
	}

	opts := DefaultMultiBarOptions()
	opts.Shade = "A200"
	opts.Colours = nil
	chart, err := MultipleBars(yearlySales(t), "year", "sales", "store", opts)
	if err != nil {
		t.Fatalf("A200 shade should work: %v", err)
	}
	if chart.Series[0].Colour != palette.MustLookup("red", "A200") {
		t.Errorf("Expected red A200 first, got %s", chart.Series[0].Colour)
	}

	opts.Shade = "950"
	_, err = MultipleBars(yearlySales(t), "year", "sales", "store", opts)
	var optErr *OptionError
	if !errors.As(err, &optErr) {
		t.Errorf("Expected *OptionError for unknown shade, got %v", err)
	}

	dup := records(t,
		[]string{"year", "store", "sales"},
		[]string{"2019", "1", "1"},
		[]string{"2019", "1", "2"},
	)
	_, err = MultipleBars(dup, "year", "sales", "store", DefaultMultiBarOptions())
	var dupErr *dataset.DuplicateEntryError
	if !errors.As(err, &dupErr) {
		t.Errorf("Expected *dataset.DuplicateEntryError, got %v", err)
	}
}

func TestDefaultMultiBarOptions(t *testing.T) {
	want := MultiBarOptions{
		Height:          400,
		Width:           700,
		Shade:           "500",
		BarWidth:        0.9,
		ShowLegend:      true,
		LegendPlacement: PlacementBelow,
		YTickFormat:     "0.0",
		Axis:            AxisStyle{XRangePadding: Float(0.1), XLabelOrientation: Float(1)},
	}
	if diff := cmp.Diff(want, DefaultMultiBarOptions()); diff != "" {
		t.Errorf("Defaults mismatch (-want +got):\n%s", diff)
	}
}
