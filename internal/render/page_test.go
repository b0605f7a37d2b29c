package render

import (
	"bytes"
	"strings"
	"testing"

	"plotkit/internal/table"
)

func TestPage(t *testing.T) {
	p := NewPage("Gallery", "", false)

	md, err := p.Markdown("## Sales\n\nDaily **sales** by store")
	if err != nil {
		t.Fatalf("Markdown returned error: %v", err)
	}
	first, err := p.Chart(lineChart(t))
	if err != nil {
		t.Fatalf("Chart returned error: %v", err)
	}
	second, err := p.Chart(lineChart(t))
	if err != nil {
		t.Fatalf("Chart returned error: %v", err)
	}
	tbl, err := table.New(records(t, []string{"store", "sales"}, []string{"1", "<100>"}), table.DefaultOptions())
	if err != nil {
		t.Fatalf("table.New returned error: %v", err)
	}
	tb, err := p.Table(tbl)
	if err != nil {
		t.Fatalf("Table returned error: %v", err)
	}

	p.AddRow(md)
	p.AddRow(first, tb)
	p.AddRow(Separator())
	p.AddRow(second)
	if p.Rows() != 4 {
		t.Errorf("Rows = %d, want 4", p.Rows())
	}

	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<title>Gallery</title>",
		DefaultAssetsHost + "echarts.min.js",
		`<h2 id="sales">Sales</h2>`,
		"<strong>sales</strong>",
		`id="chart-daily-sales"`,
		`id="chart-daily-sales-2"`,
		"&lt;100&gt;",
		"<hr>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Page missing %q", want)
		}
	}
	if got := strings.Count(out, `<div class="row">`); got != 4 {
		t.Errorf("Expected 4 rows, got %d", got)
	}
}

func TestPageMinify(t *testing.T) {
	build := func(minified bool) string {
		p := NewPage("Sales", "", minified)
		block, err := p.Chart(barChart(t))
		if err != nil {
			t.Fatalf("Chart returned error: %v", err)
		}
		p.AddRow(block)

		var buf bytes.Buffer
		if err := p.Render(&buf); err != nil {
			t.Fatalf("Render returned error: %v", err)
		}
		return buf.String()
	}

	plain, minified := build(false), build(true)
	if len(minified) >= len(plain) {
		t.Errorf("Minified page (%d bytes) should be smaller than plain (%d bytes)", len(minified), len(plain))
	}
	if !strings.Contains(minified, "echarts.init(el)") {
		t.Error("Minified page should keep the chart script")
	}
}
