package plot

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Numeral is a parsed numeral.js style format such as "0.0", "0,0", "0.0a"
// or "0 %". Tooltip formats may wrap the pattern in braces: "{0 %}".
type Numeral struct {
	Decimals     int
	Thousands    bool
	Percent      bool
	PercentSpace bool
	Abbreviate   bool
	AbbrevSpace  bool
	plain        bool
}

var abbreviations = []struct {
	limit  float64
	suffix string
}{
	{1e12, "t"},
	{1e9, "b"},
	{1e6, "m"},
	{1e3, "k"},
}

// ParseNumeral parses a numeral format. The empty format means the value is
// shown as is.
func ParseNumeral(format string) (Numeral, error) {
	f := strings.TrimSpace(format)
	f = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(f, "{"), "}"))
	if f == "" {
		return Numeral{plain: true}, nil
	}
	if !strings.HasPrefix(f, "0") {
		return Numeral{}, fmt.Errorf("numeral format %q must start with 0", format)
	}

	var n Numeral
	afterPoint := false
	for i, r := range f {
		switch r {
		case '0':
			if afterPoint {
				n.Decimals++
			}
		case '.':
			if afterPoint {
				return Numeral{}, fmt.Errorf("numeral format %q has two decimal points", format)
			}
			afterPoint = true
		case ',':
			n.Thousands = true
		case '%':
			n.Percent = true
			n.PercentSpace = i > 0 && f[i-1] == ' '
		case 'a':
			n.Abbreviate = true
			n.AbbrevSpace = i > 0 && f[i-1] == ' '
		case ' ':
		default:
			return Numeral{}, fmt.Errorf("numeral format %q has unsupported character %q", format, r)
		}
	}
	if n.Decimals > 9 {
		return Numeral{}, fmt.Errorf("numeral format %q has more than 9 decimals", format)
	}
	return n, nil
}

// Format renders v. NaN renders as the empty string.
func (n Numeral) Format(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	if n.plain {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	if n.Percent {
		v *= 100
	}

	suffix := ""
	if n.Abbreviate {
		for _, a := range abbreviations {
			if math.Abs(v) >= a.limit {
				v /= a.limit
				suffix = a.suffix
				if n.AbbrevSpace {
					suffix = " " + suffix
				}
				break
			}
		}
	}

	var out string
	if n.Thousands {
		out = humanize.FormatFloat("#,###."+strings.Repeat("#", n.Decimals), v)
	} else {
		out = strconv.FormatFloat(v, 'f', n.Decimals, 64)
	}

	out += suffix
	if n.Percent {
		if n.PercentSpace {
			out += " "
		}
		out += "%"
	}
	return out
}

// FormatNumber renders v with a numeral format. An unparseable format falls
// back to the plain value.
func FormatNumber(v float64, format string) string {
	n, err := ParseNumeral(format)
	if err != nil {
		n = Numeral{plain: true}
	}
	return n.Format(v)
}

// NumeralJS returns a JavaScript function expression that formats a value
// the same way Format does, for axis labels and tooltips rendered in the
// browser
func NumeralJS(format string) string {
	n, err := ParseNumeral(format)
	if err != nil || n.plain {
		return "function (value) { return value; }"
	}

	var b strings.Builder
	b.WriteString("function (value) { ")
	b.WriteString("if (value === null || value === undefined || value === '-' || isNaN(value)) { return ''; } ")
	b.WriteString("var v = Number(value); var s = ''; ")
	if n.Percent {
		b.WriteString("v = v * 100; ")
	}
	if n.Abbreviate {
		sp := ""
		if n.AbbrevSpace {
			sp = " "
		}
		b.WriteString("var a = Math.abs(v); ")
		for i, a := range abbreviations {
			if i > 0 {
				b.WriteString("else ")
			}
			fmt.Fprintf(&b, "if (a >= %g) { v = v / %g; s = '%s%s'; } ", a.limit, a.limit, sp, a.suffix)
		}
	}
	fmt.Fprintf(&b, "var out = v.toFixed(%d); ", n.Decimals)
	if n.Thousands {
		b.WriteString(`var parts = out.split('.'); parts[0] = parts[0].replace(/\B(?=(\d{3})+(?!\d))/g, ','); out = parts.join('.'); `)
	}
	b.WriteString("out = out + s; ")
	if n.Percent {
		if n.PercentSpace {
			b.WriteString("out = out + ' %'; ")
		} else {
			b.WriteString("out = out + '%'; ")
		}
	}
	b.WriteString("return out; }")
	return b.String()
}
