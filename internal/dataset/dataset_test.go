package dataset

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sample(t *testing.T) *Dataset {
	t.Helper()
	ds, err := FromRecords([][]string{
		{"group", "category", "bar", "line"},
		{"A", "x", "1", "10"},
		{"A", "y", "2", "20"},
		{"B", "x", "3", "30"},
		{"B", "y", "4", "40"},
	})
	if err != nil {
		t.Fatalf("Failed to build dataset: %v", err)
	}
	return ds
}

func TestFromRecords(t *testing.T) {
	ds := sample(t)

	if ds.Len() != 4 {
		t.Errorf("Expected 4 rows, got %d", ds.Len())
	}
	if diff := cmp.Diff([]string{"group", "category", "bar", "line"}, ds.Columns()); diff != "" {
		t.Errorf("Columns mismatch (-want +got):\n%s", diff)
	}
	if !ds.IsNumeric("bar") || ds.IsNumeric("group") {
		t.Error("Expected bar to be numeric and group not")
	}

	if _, err := FromRecords(nil); err == nil {
		t.Error("Expected error for empty records")
	}
}

func TestRequire(t *testing.T) {
	ds := sample(t)

	if err := ds.Require("group", "bar"); err != nil {
		t.Errorf("Require returned error for present columns: %v", err)
	}

	err := ds.Require("group", "missing")
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Expected *SchemaError, got %v", err)
	}
	if schemaErr.Column != "missing" {
		t.Errorf("Expected column 'missing', got %q", schemaErr.Column)
	}
	if !strings.Contains(err.Error(), "available: group, category, bar, line") {
		t.Errorf("Error should list available columns: %s", err)
	}
}

func TestFloats(t *testing.T) {
	ds, err := FromRecords([][]string{
		{"name", "value"},
		{"a", "1.5"},
		{"b", "NaN"},
		{"c", "3"},
	})
	if err != nil {
		t.Fatalf("Failed to build dataset: %v", err)
	}

	values, err := ds.Floats("value")
	if err != nil {
		t.Fatalf("Floats returned error: %v", err)
	}
	if values[0] != 1.5 || !math.IsNaN(values[1]) || values[2] != 3 {
		t.Errorf("Unexpected values: %v", values)
	}

	_, err = ds.Floats("name")
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Expected *SchemaError for text column, got %v", err)
	}
	if schemaErr.Row != 0 || schemaErr.Value != "a" {
		t.Errorf("Unexpected error detail: %+v", schemaErr)
	}
}

func TestUniqueFirstSeen(t *testing.T) {
	ds, _ := FromRecords([][]string{
		{"k"},
		{"y"}, {"x"}, {"y"}, {"z"}, {"x"},
	})

	got, err := ds.Unique("k")
	if err != nil {
		t.Fatalf("Unique returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"y", "x", "z"}, got); diff != "" {
		t.Errorf("Unique order mismatch (-want +got):\n%s", diff)
	}
}

func TestWhereAndFilter(t *testing.T) {
	ds := sample(t)

	xs, err := ds.Where("category", "x")
	if err != nil {
		t.Fatalf("Where returned error: %v", err)
	}
	bars, _ := xs.Floats("bar")
	if diff := cmp.Diff([]float64{1, 3}, bars); diff != "" {
		t.Errorf("Where(x) bars mismatch (-want +got):\n%s", diff)
	}

	none, err := ds.Where("category", "q")
	if err != nil {
		t.Fatalf("Where returned error: %v", err)
	}
	if none.Len() != 0 || len(none.Columns()) != 4 {
		t.Errorf("Expected empty dataset with header, got %d rows %v", none.Len(), none.Columns())
	}

	nothing, err := ds.FilterFloat("bar", func(v float64) bool { return v > 100 })
	if err != nil {
		t.Fatalf("FilterFloat returned error: %v", err)
	}
	if err := nothing.Require("group", "category", "bar"); err != nil {
		t.Errorf("Empty filter result should keep its columns: %v", err)
	}
	if bars, err := nothing.Floats("bar"); err != nil || len(bars) != 0 {
		t.Errorf("Floats on an empty result = %v, %v", bars, err)
	}

	small, err := ds.FilterFloat("bar", func(v float64) bool { return v < 3 })
	if err != nil {
		t.Fatalf("FilterFloat returned error: %v", err)
	}
	if small.Len() != 2 {
		t.Errorf("Expected 2 rows with bar < 3, got %d", small.Len())
	}

	bs := ds.Filter(func(row map[string]string) bool { return row["group"] == "B" })
	groups, _ := bs.Strings("group")
	if diff := cmp.Diff([]string{"B", "B"}, groups); diff != "" {
		t.Errorf("Filter mismatch (-want +got):\n%s", diff)
	}
}

func TestSortByDoesNotMutate(t *testing.T) {
	ds, _ := FromRecords([][]string{
		{"name", "n"},
		{"c", "3"},
		{"a", "1"},
		{"b", "2"},
	})
	before := ds.Records()

	sorted, err := ds.SortBy("name")
	if err != nil {
		t.Fatalf("SortBy returned error: %v", err)
	}
	names, _ := sorted.Strings("name")
	if diff := cmp.Diff([]string{"a", "b", "c"}, names); diff != "" {
		t.Errorf("Sorted order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(before, ds.Records()); diff != "" {
		t.Errorf("SortBy mutated the receiver (-before +after):\n%s", diff)
	}

	if _, err := ds.SortBy("nope"); err == nil {
		t.Error("Expected SchemaError for unknown sort column")
	}
}

func TestSelectRenameDrop(t *testing.T) {
	ds := sample(t)

	sel, err := ds.Select("line", "group")
	if err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"line", "group"}, sel.Columns()); diff != "" {
		t.Errorf("Select columns mismatch (-want +got):\n%s", diff)
	}

	renamed, err := ds.Rename(map[string]string{"bar": "value"})
	if err != nil {
		t.Fatalf("Rename returned error: %v", err)
	}
	if !renamed.Has("value") || renamed.Has("bar") {
		t.Errorf("Rename did not apply: %v", renamed.Columns())
	}
	if !ds.Has("bar") {
		t.Error("Rename mutated the receiver")
	}
	if _, err := ds.Rename(map[string]string{"nope": "x"}); err == nil {
		t.Error("Expected SchemaError when renaming a missing column")
	}

	dropped, err := ds.Drop("line")
	if err != nil {
		t.Fatalf("Drop returned error: %v", err)
	}
	if dropped.Has("line") {
		t.Error("Drop did not remove the column")
	}
}

func TestRecordsRendering(t *testing.T) {
	ds, _ := FromRecords([][]string{
		{"name", "rate"},
		{"a", "0.5"},
		{"b", "0.25"},
	})

	want := [][]string{{"name", "rate"}, {"a", "0.5"}, {"b", "0.25"}}
	if diff := cmp.Diff(want, ds.Records()); diff != "" {
		t.Errorf("Records mismatch (-want +got):\n%s", diff)
	}
	if got := ds.Row(1)["rate"]; got != "0.25" {
		t.Errorf("Row(1)[rate] = %q, want 0.25", got)
	}
}

func TestNew(t *testing.T) {
	ds, err := New(
		Column{Name: "name", Strings: []string{"a", "b"}},
		Column{Name: "value", Floats: []float64{1.5, 2}},
		Column{Name: "count", Ints: []int{3, 4}},
	)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if ds.Len() != 2 || !ds.IsNumeric("value") || !ds.IsNumeric("count") {
		t.Errorf("Unexpected dataset: %v", ds.Records())
	}
	if _, err := New(); err == nil {
		t.Error("Expected error for no columns")
	}
}
