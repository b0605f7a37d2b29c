package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-echarts/go-echarts/v2/charts"
)

func TestEChartsDualAxis(t *testing.T) {
	e := NewECharts("white", "")
	charter, err := e.Charter(dualChart(t))
	if err != nil {
		t.Fatalf("Charter returned error: %v", err)
	}
	if _, ok := charter.(*charts.Bar); !ok {
		t.Fatalf("Dual-axis chart should be a bar chart with an overlapped line, got %T", charter)
	}

	var buf bytes.Buffer
	if err := e.Render(&buf, dualChart(t)); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"echarts.min.js", "TruePositiveRate: Email", "yAxisIndex", "#ffca28"} {
		if !strings.Contains(out, want) {
			t.Errorf("Page missing %q", want)
		}
	}
}

func TestEChartsSeries(t *testing.T) {
	e := NewECharts("", "")
	if charter, _ := e.Charter(barChart(t)); charter == nil {
		t.Fatal("Expected a bar chart")
	} else if _, ok := charter.(*charts.Bar); !ok {
		t.Errorf("Grouped bars should be a bar chart, got %T", charter)
	}
	if charter, _ := e.Charter(lineChart(t)); charter == nil {
		t.Fatal("Expected a line chart")
	} else if _, ok := charter.(*charts.Line); !ok {
		t.Errorf("Lines should be a line chart, got %T", charter)
	}
}

func TestEChartsRenderPage(t *testing.T) {
	e := NewECharts("", "https://example.com/assets/")

	var buf bytes.Buffer
	if err := e.RenderPage(&buf, "Sales", lineChart(t), barChart(t)); err != nil {
		t.Fatalf("RenderPage returned error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "https://example.com/assets/echarts.min.js") {
		t.Error("Page should load echarts from the assets host")
	}
	if !strings.Contains(out, "Daily sales") || !strings.Contains(out, "Yearly sales") {
		t.Error("Page should hold both charts")
	}

	if err := e.RenderPage(&buf, "bad", 1); err == nil {
		t.Error("Expected error for an unsupported chart")
	}
}
