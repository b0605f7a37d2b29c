package plot

import (
	"fmt"
	"html"
	"strings"
)

// Data fields a tooltip can show
const (
	FieldX        = "x"
	FieldCategory = "category"
	FieldY        = "y"
	FieldBar      = "bar_values"
	FieldLine     = "line_values"
)

// exclusiveStyle hides every tooltip but the first when layers overlap
const exclusiveStyle = "<style>.bk-tooltip>div:not(:first-child) {display:none;}</style>"

// TooltipField is one "label : value" line of a tooltip
type TooltipField struct {
	Label  string `json:"label" cbor:"label"`
	Field  string `json:"field" cbor:"field"`
	Format string `json:"format,omitempty" cbor:"format,omitempty"`
}

// Tooltip is the hover text of one chart layer. Exclusive tooltips never
// stack on top of another layer's tooltip.
type Tooltip struct {
	Fields    []TooltipField `json:"fields" cbor:"fields"`
	Exclusive bool           `json:"exclusive" cbor:"exclusive"`
}

// HTML returns the tooltip template: one bold label per line followed by
// the field reference and its format, e.g. "<b>Profit : </b> @line_values{0.0} <br>"
func (t Tooltip) HTML() string {
	var b strings.Builder
	if t.Exclusive {
		b.WriteString(exclusiveStyle)
	}
	for _, f := range t.Fields {
		fmt.Fprintf(&b, "<b>%s : </b> @%s%s <br>", f.Label, f.Field, f.Format)
	}
	return b.String()
}

// Render fills the template with one data point. Numbers are formatted with
// each field's numeral format; everything else is HTML-escaped as is.
func (t Tooltip) Render(data map[string]interface{}) string {
	var b strings.Builder
	for _, f := range t.Fields {
		fmt.Fprintf(&b, "<b>%s : </b> %s <br>", html.EscapeString(f.Label), renderValue(data[f.Field], f.Format))
	}
	return b.String()
}

func renderValue(v interface{}, format string) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		return FormatNumber(x, format)
	case *float64:
		if x == nil {
			return ""
		}
		return FormatNumber(*x, format)
	case string:
		return html.EscapeString(x)
	default:
		return html.EscapeString(fmt.Sprint(x))
	}
}
