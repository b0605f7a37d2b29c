// Package dataset provides the tabular data model the chart configurators
// read from: an ordered set of rows with named columns, backed by a gota
// DataFrame. Every operation returns a new Dataset; the receiver is never
// modified.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Dataset is an immutable table of rows keyed by column name
type Dataset struct {
	df dataframe.DataFrame
}

var (
	ErrSchema         = errors.New("dataset schema mismatch")
	ErrDuplicateEntry = errors.New("duplicate pivot entry")
)

// SchemaError reports a referenced column that is missing, or a value that
// cannot be read as the type the caller asked for
type SchemaError struct {
	Column    string
	Available []string
	Row       int
	Value     string
	Reason    string
}

func (e *SchemaError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("column %q: %s (row %d, value %q)", e.Column, e.Reason, e.Row, e.Value)
	}
	return fmt.Sprintf("column %q not found (available: %s)", e.Column, strings.Join(e.Available, ", "))
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchema }

// FromRecords builds a Dataset from string records whose first row is the
// header. Column types are detected from the values.
func FromRecords(records [][]string) (*Dataset, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("failed to load records: missing header row")
	}
	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to load records: %w", df.Err)
	}
	return &Dataset{df: df}, nil
}

// ReadCSV parses CSV with a header row
func ReadCSV(r io.Reader) (*Dataset, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.WithLazyQuotes(true),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", df.Err)
	}
	return &Dataset{df: df}, nil
}

// New builds a Dataset column by column. Every column must have the same
// length.
func New(columns ...Column) (*Dataset, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("failed to build dataset: no columns")
	}
	ss := make([]series.Series, 0, len(columns))
	for _, c := range columns {
		ss = append(ss, c.series())
	}
	df := dataframe.New(ss...)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to build dataset: %w", df.Err)
	}
	return &Dataset{df: df}, nil
}

// Column is a named column of values used with New
type Column struct {
	Name    string
	Strings []string
	Floats  []float64
	Ints    []int
}

func (c Column) series() series.Series {
	switch {
	case c.Floats != nil:
		return series.New(c.Floats, series.Float, c.Name)
	case c.Ints != nil:
		return series.New(c.Ints, series.Int, c.Name)
	default:
		return series.New(c.Strings, series.String, c.Name)
	}
}

// Len returns the number of rows
func (d *Dataset) Len() int {
	return d.df.Nrow()
}

// Columns returns the column names in order
func (d *Dataset) Columns() []string {
	return d.df.Names()
}

// Has reports whether the column exists
func (d *Dataset) Has(column string) bool {
	for _, name := range d.df.Names() {
		if name == column {
			return true
		}
	}
	return false
}

// Require returns a SchemaError for the first column that does not exist
func (d *Dataset) Require(columns ...string) error {
	for _, c := range columns {
		if !d.Has(c) {
			return &SchemaError{Column: c, Available: d.Columns()}
		}
	}
	return nil
}

// IsNumeric reports whether the column was detected as int or float
func (d *Dataset) IsNumeric(column string) bool {
	if !d.Has(column) {
		return false
	}
	t := d.df.Col(column).Type()
	return t == series.Int || t == series.Float
}

// Strings returns the column values rendered as strings. Floats use their
// shortest representation and missing floats render empty.
func (d *Dataset) Strings(column string) ([]string, error) {
	if err := d.Require(column); err != nil {
		return nil, err
	}
	return d.cells(column), nil
}

// Floats returns the column values as float64. Missing values (empty, NA,
// NaN) become NaN; any other non-numeric value is a SchemaError.
func (d *Dataset) Floats(column string) ([]float64, error) {
	if err := d.Require(column); err != nil {
		return nil, err
	}
	s := d.df.Col(column)
	out := make([]float64, s.Len())
	for i := 0; i < s.Len(); i++ {
		el := s.Elem(i)
		if el.IsNA() {
			out[i] = math.NaN()
			continue
		}
		v := el.Float()
		if math.IsNaN(v) {
			raw := strings.TrimSpace(el.String())
			if raw != "" && !isMissing(raw) {
				return nil, &SchemaError{Column: column, Row: i, Value: raw, Reason: "value is not numeric"}
			}
		}
		out[i] = v
	}
	return out, nil
}

// Unique returns the distinct values of a column in first-seen row order
func (d *Dataset) Unique(column string) ([]string, error) {
	values, err := d.Strings(column)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out, nil
}

// Records returns the header row followed by every data row as strings
func (d *Dataset) Records() [][]string {
	names := d.Columns()
	cols := make([][]string, len(names))
	for i, name := range names {
		cols[i] = d.cells(name)
	}
	records := make([][]string, 0, d.Len()+1)
	records = append(records, names)
	for row := 0; row < d.Len(); row++ {
		rec := make([]string, len(names))
		for i := range names {
			rec[i] = cols[i][row]
		}
		records = append(records, rec)
	}
	return records
}

// Row returns row i as a column → string map
func (d *Dataset) Row(i int) map[string]string {
	row := make(map[string]string, d.df.Ncol())
	for _, name := range d.df.Names() {
		row[name] = d.cells(name)[i]
	}
	return row
}

// Where keeps the rows whose column renders equal to value
func (d *Dataset) Where(column, value string) (*Dataset, error) {
	if err := d.Require(column); err != nil {
		return nil, err
	}
	values := d.cells(column)
	var idx []int
	for i, v := range values {
		if v == value {
			idx = append(idx, i)
		}
	}
	return d.subset(idx), nil
}

// Filter keeps the rows for which keep returns true
func (d *Dataset) Filter(keep func(row map[string]string) bool) *Dataset {
	records := d.Records()
	header := records[0]
	var idx []int
	for i, rec := range records[1:] {
		row := make(map[string]string, len(header))
		for c, name := range header {
			row[name] = rec[c]
		}
		if keep(row) {
			idx = append(idx, i)
		}
	}
	return d.subset(idx)
}

// FilterFloat keeps the rows whose numeric column satisfies keep. Rows with
// missing values are dropped.
func (d *Dataset) FilterFloat(column string, keep func(v float64) bool) (*Dataset, error) {
	values, err := d.Floats(column)
	if err != nil {
		return nil, err
	}
	var idx []int
	for i, v := range values {
		if !math.IsNaN(v) && keep(v) {
			idx = append(idx, i)
		}
	}
	return d.subset(idx), nil
}

// subset returns the rows at idx, keeping the header when idx is empty
func (d *Dataset) subset(idx []int) *Dataset {
	if len(idx) == 0 {
		names := d.Columns()
		cols := make([]series.Series, len(names))
		for i, name := range names {
			cols[i] = series.New([]string{}, d.df.Col(name).Type(), name)
		}
		return &Dataset{df: dataframe.New(cols...)}
	}
	return &Dataset{df: d.df.Subset(idx)}
}

// SortBy orders rows by the given columns ascending. Sorting is stable.
func (d *Dataset) SortBy(columns ...string) (*Dataset, error) {
	if err := d.Require(columns...); err != nil {
		return nil, err
	}
	orders := make([]dataframe.Order, 0, len(columns))
	for _, c := range columns {
		orders = append(orders, dataframe.Sort(c))
	}
	df := d.df.Arrange(orders...)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to sort by %v: %w", columns, df.Err)
	}
	return &Dataset{df: df}, nil
}

// Select keeps only the given columns, in the given order
func (d *Dataset) Select(columns ...string) (*Dataset, error) {
	if err := d.Require(columns...); err != nil {
		return nil, err
	}
	df := d.df.Select(columns)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to select %v: %w", columns, df.Err)
	}
	return &Dataset{df: df}, nil
}

// Rename renames columns according to old → new
func (d *Dataset) Rename(names map[string]string) (*Dataset, error) {
	df := d.df
	for oldName, newName := range names {
		if !d.Has(oldName) {
			return nil, &SchemaError{Column: oldName, Available: d.Columns()}
		}
		df = df.Rename(newName, oldName)
		if df.Err != nil {
			return nil, fmt.Errorf("failed to rename %q: %w", oldName, df.Err)
		}
	}
	return &Dataset{df: df}, nil
}

// Drop removes a column
func (d *Dataset) Drop(column string) (*Dataset, error) {
	if err := d.Require(column); err != nil {
		return nil, err
	}
	df := d.df.Drop(column)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to drop %q: %w", column, df.Err)
	}
	return &Dataset{df: df}, nil
}

func isMissing(raw string) bool {
	switch strings.ToLower(raw) {
	case "na", "nan", "null", "none", "<nil>":
		return true
	}
	return false
}
