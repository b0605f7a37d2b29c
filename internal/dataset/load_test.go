package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

const salesCSV = "date,store,sales\n2020-01-01,1,100\n2020-01-01,2,150\n2020-01-02,1,120\n"

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	if err := os.WriteFile(path, []byte(salesCSV), 0644); err != nil {
		t.Fatalf("Failed to write CSV: %v", err)
	}

	ds, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV returned error: %v", err)
	}
	if ds.Len() != 3 {
		t.Errorf("Expected 3 rows, got %d", ds.Len())
	}

	if _, err := LoadCSV(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.xlsx")

	f := excelize.NewFile()
	rows := [][]interface{}{
		{"year", "store", "sales"},
		{2019, 1, 10.5},
		{2020, 1, 12},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("Failed to write row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save workbook: %v", err)
	}
	f.Close()

	ds, err := LoadXLSX(path, "")
	if err != nil {
		t.Fatalf("LoadXLSX returned error: %v", err)
	}
	sales, err := ds.Floats("sales")
	if err != nil {
		t.Fatalf("Floats returned error: %v", err)
	}
	if diff := cmp.Diff([]float64{10.5, 12}, sales); diff != "" {
		t.Errorf("Sales mismatch (-want +got):\n%s", diff)
	}

	if _, err := LoadXLSX(path, "Nope"); err == nil {
		t.Error("Expected error for unknown sheet")
	}
}

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sales.csv":
			w.Header().Set("Content-Type", "text/csv")
			w.Write([]byte(salesCSV))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	fetcher := NewFetcher(5*time.Second, 0)
	ctx := context.Background()

	ds, err := fetcher.Fetch(ctx, server.URL+"/sales.csv")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	stores, _ := ds.Unique("store")
	if diff := cmp.Diff([]string{"1", "2"}, stores); diff != "" {
		t.Errorf("Stores mismatch (-want +got):\n%s", diff)
	}

	if _, err := fetcher.Fetch(ctx, server.URL+"/missing.csv"); err == nil {
		t.Error("Expected error for 404 response")
	}

	viaLoad, err := Load(ctx, fetcher, server.URL+"/sales.csv")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if viaLoad.Len() != 3 {
		t.Errorf("Expected 3 rows via Load, got %d", viaLoad.Len())
	}
}

func TestIsWorkbook(t *testing.T) {
	tests := map[string]bool{
		"data.xlsx":                       true,
		"https://host/data.XLSX?dl=1":     true,
		"data.csv":                        false,
		"https://host/export.csv#section": false,
	}
	for in, want := range tests {
		if got := isWorkbook(in); got != want {
			t.Errorf("isWorkbook(%q) = %v, want %v", in, got, want)
		}
	}
}
