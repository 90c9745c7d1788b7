package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const columnGap = "  "

type column struct {
	header string
	right  bool
}

// table lays out rows in aligned columns measured by terminal cell width.
type table struct {
	columns []column
	rows    [][]string
}

func newTable(columns ...column) *table {
	return &table{columns: columns}
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) widths() []int {
	widths := make([]int, len(t.columns))
	for i, c := range t.columns {
		widths[i] = runewidth.StringWidth(c.header)
	}
	for _, row := range t.rows {
		for i := range t.columns {
			if i < len(row) {
				widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
			}
		}
	}
	return widths
}

func (t *table) lines() []string {
	if len(t.columns) == 0 {
		return nil
	}
	widths := t.widths()
	headers := make([]string, len(t.columns))
	for i, c := range t.columns {
		headers[i] = c.header
	}

	out := make([]string, 0, len(t.rows)+1)
	out = append(out, t.format(headers, widths))
	for _, row := range t.rows {
		out = append(out, t.format(row, widths))
	}
	return out
}

func (t *table) format(cells []string, widths []int) string {
	parts := make([]string, len(t.columns))
	for i, c := range t.columns {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if c.right {
			parts[i] = runewidth.FillLeft(cell, widths[i])
		} else {
			parts[i] = runewidth.FillRight(cell, widths[i])
		}
	}
	return strings.TrimRight(strings.Join(parts, columnGap), " ")
}
