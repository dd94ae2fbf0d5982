package reader

import (
	"context"
	"fmt"
	"strings"

	"tabbed/tab"
)

// Peek is a non-streaming preview convenience: a wrapper over Read
// with indices computed as range(autostart+start, autostart+start+count).
// It returns the rows alongside a plain-text rendering of them.
func (r *Reader) Peek(start, count int, opts ReadOptions) ([]tab.Row, string, error) {
	a := r.autostart() + start
	b := a + count
	indices := make([]int, 0, count)
	for i := a; i < b; i++ {
		indices = append(indices, i)
	}
	opts.Indices = indices

	cur, err := r.Read(opts)
	if err != nil {
		return nil, "", err
	}

	var rows []tab.Row
	ctx := context.Background()
	for {
		chunk, err := cur.Next(ctx)
		if err != nil {
			break
		}
		rows = append(rows, chunk...)
	}

	return rows, renderRows(r.Header().Names, rows), nil
}

// renderRows produces a simple fixed-width text table.
func renderRows(header []string, rows []tab.Row) string {
	widths := make([]int, len(header))
	for i, name := range header {
		widths[i] = len(name)
	}
	cells := make([][]string, len(rows))
	for r, row := range rows {
		cells[r] = make([]string, len(header))
		for i, name := range header {
			v, _ := row.Get(name)
			s := v.String()
			cells[r][i] = s
			if len(s) > widths[i] {
				widths[i] = len(s)
			}
		}
	}

	var b strings.Builder
	writeRow(&b, header, widths)
	writeSeparator(&b, widths)
	for _, row := range cells {
		writeRow(&b, row, widths)
	}
	return b.String()
}

func writeRow(b *strings.Builder, fields []string, widths []int) {
	for i, f := range fields {
		fmt.Fprintf(b, "%-*s  ", widths[i], f)
	}
	b.WriteByte('\n')
}

func writeSeparator(b *strings.Builder, widths []int) {
	for _, w := range widths {
		b.WriteString(strings.Repeat("-", w))
		b.WriteString("  ")
	}
	b.WriteByte('\n')
}
