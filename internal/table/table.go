// Package table describes styled, scrollable data tables and renders them as
// HTML fragments or plain text.
package table

import (
	"bytes"
	"fmt"
	"html/template"

	"plotkit/internal/dataset"
	"plotkit/internal/plot"
)

// Default styles
const (
	DefaultHeaderStyle = "color: #757575; font-family: Courier; font-weight:800"
	DefaultTableStyle  = "color: #757575; font-family: Courier; font-weight:normal"
	DefaultHeight      = 120
)

// Options configures a table
type Options struct {
	// HeaderStyle is the inline CSS of the header row
	HeaderStyle string
	// TableStyle is the inline CSS wrapped around every cell
	TableStyle string
	// Height of the scrollable body in pixels
	Height int
	// Formats maps a column to a numeral format for its cells
	Formats map[string]string
	// Titles maps a column to its displayed heading
	Titles map[string]string
}

// DefaultOptions returns the documented defaults
func DefaultOptions() Options {
	o := Options{}
	o.applyDefaults()
	return o
}

func (o *Options) applyDefaults() {
	if o.HeaderStyle == "" {
		o.HeaderStyle = DefaultHeaderStyle
	}
	if o.TableStyle == "" {
		o.TableStyle = DefaultTableStyle
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
}

// Validate checks option values
func (o Options) Validate() error {
	if o.Height <= 0 {
		return &plot.OptionError{Option: "height", Value: o.Height, Reason: "must be positive"}
	}
	for col, format := range o.Formats {
		if _, err := plot.ParseNumeral(format); err != nil {
			return &plot.OptionError{Option: "format[" + col + "]", Value: format, Reason: err.Error()}
		}
	}
	return nil
}

// Column maps a dataset column to a displayed column
type Column struct {
	Field  string
	Title  string
	Format string
}

// Table is a dataset laid out for display: every column with its cells
// already formatted
type Table struct {
	Columns     []Column
	Rows        [][]string
	HeaderStyle string
	TableStyle  string
	Height      int
}

// New maps every dataset column to a display column. Columns listed in
// opts.Formats are read as numbers and formatted; the rest are shown as they
// read in the dataset.
func New(ds *dataset.Dataset, opts Options) (*Table, error) {
	opts.applyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	for col := range opts.Formats {
		if err := ds.Require(col); err != nil {
			return nil, fmt.Errorf("failed to configure table: %w", err)
		}
	}

	names := ds.Columns()
	cells := make([][]string, len(names))
	columns := make([]Column, len(names))
	for i, name := range names {
		title := name
		if t, ok := opts.Titles[name]; ok {
			title = t
		}
		columns[i] = Column{Field: name, Title: title, Format: opts.Formats[name]}

		format, ok := opts.Formats[name]
		if !ok {
			cells[i], _ = ds.Strings(name)
			continue
		}
		values, err := ds.Floats(name)
		if err != nil {
			return nil, fmt.Errorf("failed to format column %q: %w", name, err)
		}
		cells[i] = make([]string, len(values))
		for r, v := range values {
			cells[i][r] = plot.FormatNumber(v, format)
		}
	}

	rows := make([][]string, ds.Len())
	for r := range rows {
		rows[r] = make([]string, len(names))
		for c := range names {
			rows[r][c] = cells[c][r]
		}
	}

	return &Table{
		Columns:     columns,
		Rows:        rows,
		HeaderStyle: opts.HeaderStyle,
		TableStyle:  opts.TableStyle,
		Height:      opts.Height,
	}, nil
}

var fragment = template.Must(template.New("table").Funcs(template.FuncMap{
	"safeCSS": func(s string) template.CSS {
		return template.CSS(s)
	},
}).Parse(`<div class="plotkit-table">
<table style="border-collapse: collapse; width: 100%">
<thead style="{{safeCSS .HeaderStyle}}"><tr>{{range .Columns}}<th style="text-align: left; padding: 2px 8px">{{.Title}}</th>{{end}}</tr></thead>
</table>
<div style="max-height: {{.Height}}px; overflow-y: auto">
<table style="border-collapse: collapse; width: 100%">
<tbody>{{range .Rows}}
<tr>{{range .}}<td style="padding: 2px 8px"><div style="{{safeCSS $.TableStyle}}">{{.}}</div></td>{{end}}</tr>{{end}}
</tbody>
</table>
</div>
</div>`))

// HTML renders the table as a fragment with a fixed header and a scrollable
// body. Cell values are escaped.
func (t *Table) HTML() (template.HTML, error) {
	var buf bytes.Buffer
	if err := fragment.Execute(&buf, t); err != nil {
		return "", fmt.Errorf("failed to render table: %w", err)
	}
	return template.HTML(buf.String()), nil
}
