package dataset

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"plotkit/internal/logger"

	"github.com/go-gota/gota/series"
)

// TimeLayouts are the date formats accepted by Times, tried in order
var TimeLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseTime parses a date or timestamp in one of TimeLayouts
func ParseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range TimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", value)
}

// Times parses every value of the column as a date
func (d *Dataset) Times(column string) ([]time.Time, error) {
	values, err := d.Strings(column)
	if err != nil {
		return nil, err
	}
	out := make([]time.Time, len(values))
	for i, v := range values {
		t, err := ParseTime(v)
		if err != nil {
			return nil, &SchemaError{Column: column, Row: i, Value: v, Reason: "value is not a date"}
		}
		out[i] = t
	}
	return out, nil
}

// IsTime reports whether every value of the column parses as a date
func (d *Dataset) IsTime(column string) bool {
	_, err := d.Times(column)
	return err == nil && d.Len() > 0
}

// cells renders a column the way it reads in the source: integers without a
// decimal point, floats in their shortest form
func (d *Dataset) cells(column string) []string {
	s := d.df.Col(column)
	if s.Type() != series.Float {
		return s.Records()
	}
	out := make([]string, s.Len())
	for i := 0; i < s.Len(); i++ {
		v := s.Elem(i).Float()
		if math.IsNaN(v) {
			out[i] = ""
			continue
		}
		out[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return out
}

// Melt unpivots valueVars into two columns: varName holding the source column
// name and valueName holding its value. Rows are emitted one value column at
// a time, in the order given, each in source row order.
func (d *Dataset) Melt(idVars, valueVars []string, varName, valueName string) (*Dataset, error) {
	if err := d.Require(idVars...); err != nil {
		return nil, err
	}
	if err := d.Require(valueVars...); err != nil {
		return nil, err
	}
	if len(valueVars) == 0 {
		return nil, fmt.Errorf("failed to melt: no value columns")
	}

	header := append(append([]string{}, idVars...), varName, valueName)
	records := [][]string{header}

	ids := make([][]string, len(idVars))
	for i, c := range idVars {
		ids[i] = d.cells(c)
	}
	for _, vv := range valueVars {
		values := d.cells(vv)
		for row := 0; row < d.Len(); row++ {
			rec := make([]string, 0, len(header))
			for i := range idVars {
				rec = append(rec, ids[i][row])
			}
			rec = append(rec, vv, values[row])
			records = append(records, rec)
		}
	}

	out, err := FromRecords(records)
	if err != nil {
		return nil, fmt.Errorf("failed to melt: %w", err)
	}
	log.Debug("Melted dataset", logger.Fields{"rows": out.Len(), "value_vars": valueVars})
	return out, nil
}

// Pivot is a wide view of a long dataset: one row per index value, one column
// per category. Values[c][i] is the value for Categories[c] at Index[i], NaN
// when the pair is absent.
type Pivot struct {
	Index      []string
	Categories []string
	Values     [][]float64
}

// DuplicateEntryError reports an index/category pair that occurs twice
type DuplicateEntryError struct {
	Index    string
	Category string
}

func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("duplicate entry for index %q and category %q", e.Index, e.Category)
}

func (e *DuplicateEntryError) Is(target error) bool { return target == ErrDuplicateEntry }

// Pivot reshapes the dataset so each distinct category becomes a column.
// Index values and categories are sorted in natural order: chronologically
// for dates, numerically for numbers, lexically otherwise.
func (d *Dataset) Pivot(index, category, value string) (*Pivot, error) {
	if err := d.Require(index, category, value); err != nil {
		return nil, err
	}
	keys, _ := d.Strings(index)
	cats, _ := d.Strings(category)
	values, err := d.Floats(value)
	if err != nil {
		return nil, err
	}

	idx, _ := d.Unique(index)
	categories, _ := d.Unique(category)
	SortNatural(idx)
	SortNatural(categories)

	rowOf := make(map[string]int, len(idx))
	for i, k := range idx {
		rowOf[k] = i
	}
	colOf := make(map[string]int, len(categories))
	for i, c := range categories {
		colOf[c] = i
	}

	grid := make([][]float64, len(categories))
	seen := make([][]bool, len(categories))
	for c := range grid {
		grid[c] = make([]float64, len(idx))
		seen[c] = make([]bool, len(idx))
		for i := range grid[c] {
			grid[c][i] = math.NaN()
		}
	}
	for row := range keys {
		c, i := colOf[cats[row]], rowOf[keys[row]]
		if seen[c][i] {
			return nil, &DuplicateEntryError{Index: keys[row], Category: cats[row]}
		}
		seen[c][i] = true
		grid[c][i] = values[row]
	}

	return &Pivot{Index: idx, Categories: categories, Values: grid}, nil
}

// SortNatural sorts values in place: chronologically when every value is a
// date, numerically when every value is a number, lexically otherwise
func SortNatural(values []string) {
	if times, ok := allTimes(values); ok {
		sort.SliceStable(values, func(i, j int) bool { return times[values[i]].Before(times[values[j]]) })
		return
	}
	if nums, ok := allNumbers(values); ok {
		sort.SliceStable(values, func(i, j int) bool { return nums[values[i]] < nums[values[j]] })
		return
	}
	sort.Strings(values)
}

func allTimes(values []string) (map[string]time.Time, bool) {
	out := make(map[string]time.Time, len(values))
	for _, v := range values {
		t, err := ParseTime(v)
		if err != nil {
			return nil, false
		}
		out[v] = t
	}
	return out, len(values) > 0
}

func allNumbers(values []string) (map[string]float64, bool) {
	out := make(map[string]float64, len(values))
	for _, v := range values {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, false
		}
		out[v] = f
	}
	return out, len(values) > 0
}
