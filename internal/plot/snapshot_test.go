package plot

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSnapshotRoundTrip(t *testing.T) {
	chart, err := DualAxisBarLine(scenario(t), scenarioColumns, DefaultDualAxisOptions())
	if err != nil {
		t.Fatalf("DualAxisBarLine returned error: %v", err)
	}

	for _, format := range []SnapshotFormat{SnapshotJSON, SnapshotCBOR} {
		t.Run(string(format), func(t *testing.T) {
			b, err := EncodeSnapshot(chart, format)
			if err != nil {
				t.Fatalf("EncodeSnapshot returned error: %v", err)
			}

			var decoded DualAxisChart
			if err := DecodeSnapshot(b, &decoded); err != nil {
				t.Fatalf("DecodeSnapshot returned error: %v", err)
			}
			if diff := cmp.Diff(chart, &decoded); diff != "" {
				t.Errorf("Snapshot changed the chart (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSnapshotDeterministic(t *testing.T) {
	first, _ := MultipleBars(yearlySales(t), "year", "sales", "store", DefaultMultiBarOptions())
	second, _ := MultipleBars(yearlySales(t), "year", "sales", "store", DefaultMultiBarOptions())

	a, err := EncodeSnapshot(first, SnapshotCBOR)
	if err != nil {
		t.Fatalf("EncodeSnapshot returned error: %v", err)
	}
	b, _ := EncodeSnapshot(second, SnapshotCBOR)
	if !bytes.Equal(a, b) {
		t.Error("Equal charts should encode to equal bytes")
	}
}

func TestSnapshotJSONFields(t *testing.T) {
	chart, _ := SingleLine(dailySales(t), "date", "sales", DefaultLineOptions())

	b, err := EncodeSnapshot(chart, SnapshotJSON)
	if err != nil {
		t.Fatalf("EncodeSnapshot returned error: %v", err)
	}
	for _, want := range []string{`"height": 350`, `"width": 700`, `"colour": "#ffca28"`, `"tick_format": "0.0"`} {
		if !strings.Contains(string(b), want) {
			t.Errorf("JSON snapshot missing %s", want)
		}
	}

	if _, err := EncodeSnapshot(chart, "yaml"); err == nil {
		t.Error("Expected error for unknown format")
	}
	if err := DecodeSnapshot([]byte{0xFF, 9, 0}, &SeriesChart{}); err == nil {
		t.Error("Expected error for unknown version")
	}
}

func TestTooltipRender(t *testing.T) {
	tip := Tooltip{
		Exclusive: true,
		Fields: []TooltipField{
			{Label: "Group", Field: FieldX},
			{Label: "Rate", Field: FieldBar, Format: "{0 %}"},
			{Label: "Profit", Field: FieldLine},
		},
	}

	got := tip.Render(map[string]interface{}{
		FieldX:    "<Email>",
		FieldBar:  Float(0.25),
		FieldLine: (*float64)(nil),
	})
	want := "<b>Group : </b> &lt;Email&gt; <br><b>Rate : </b> 25 % <br><b>Profit : </b>  <br>"
	if got != want {
		t.Errorf("Render =\n%s\nwant\n%s", got, want)
	}
	if strings.Contains(got, "<style>") {
		t.Error("Rendered tooltips should not carry the style rule")
	}
	if !strings.HasPrefix(tip.HTML(), "<style>") {
		t.Error("Exclusive tooltip template should start with the style rule")
	}
}
