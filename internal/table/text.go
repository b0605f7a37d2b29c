package table

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// WriteText prints the table with box borders for terminals. At most limit
// rows are printed; limit <= 0 prints every row.
func (t *Table) WriteText(w io.Writer, limit int) {
	tw := tablewriter.NewWriter(w)

	header := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c.Title
	}
	tw.SetHeader(header)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)

	rows := t.Rows
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	tw.AppendBulk(rows)
	tw.Render()
}
