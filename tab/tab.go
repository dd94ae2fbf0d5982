// Package tab implements the row-predicate and column-projection
// engine ("Tabulator") that filters and reshapes decoded rows.
package tab

import (
	"fmt"
	"regexp"

	"tabbed/cell"
)

// Row is a decoded, named row. It preserves the order in which its
// columns were set (the header order for a freshly decoded row, the
// projection order for one returned by Tabulator.Apply) so that order
// is recoverable from the row itself, not just from the Tabulator that
// produced it.
type Row struct {
	Names []string
	cells map[string]cell.Cell
}

// NewRow builds an empty Row with capacity hinted by n.
func NewRow(n int) Row {
	return Row{cells: make(map[string]cell.Cell, n)}
}

// Get looks up a column's Cell by name.
func (r Row) Get(name string) (cell.Cell, bool) {
	v, ok := r.cells[name]
	return v, ok
}

// Set assigns name's Cell, appending name to Names the first time it
// is set.
func (r *Row) Set(name string, v cell.Cell) {
	if r.cells == nil {
		r.cells = map[string]cell.Cell{}
	}
	if _, exists := r.cells[name]; !exists {
		r.Names = append(r.Names, name)
	}
	r.cells[name] = v
}

// Len reports the number of columns in the row.
func (r Row) Len() int { return len(r.Names) }

// Tab is a single row-inclusion predicate bound to a column.
type Tab interface {
	// Eval reports whether row satisfies this predicate. Column is the
	// name this Tab is bound to.
	Eval(row Row) bool
	Column() string
}

// Accepting is the identity Tab: it accepts every row. Used as the
// empty Tabulator's implicit behavior and exposed for callers that
// want to explicitly keep a column's Tab slot without filtering.
type Accepting struct{ column string }

func NewAccepting(column string) Accepting { return Accepting{column: column} }
func (a Accepting) Eval(Row) bool          { return true }
func (a Accepting) Column() string         { return a.column }

// Equality tests row[name] == target.
type Equality struct {
	column string
	target cell.Cell
}

func NewEquality(column string, target cell.Cell) Equality {
	return Equality{column: column, target: target}
}
func (e Equality) Column() string { return e.column }
func (e Equality) Eval(row Row) bool {
	v, ok := row.Get(e.column)
	if !ok {
		return false
	}
	return v.Equal(e.target)
}

// Membership tests row[name] is a member of a fixed set.
type Membership struct {
	column string
	set    []cell.Cell
}

func NewMembership(column string, set []cell.Cell) Membership {
	return Membership{column: column, set: set}
}
func (m Membership) Column() string { return m.column }
func (m Membership) Eval(row Row) bool {
	v, ok := row.Get(m.column)
	if !ok {
		return false
	}
	for _, c := range m.set {
		if v.Equal(c) {
			return true
		}
	}
	return false
}

// Regex searches row[name]'s text form for a pattern. A non-text cell
// is coerced to its String() form before the search rather than
// rejected outright.
type Regex struct {
	column  string
	pattern *regexp.Regexp
}

func NewRegex(column string, pattern *regexp.Regexp) Regex {
	return Regex{column: column, pattern: pattern}
}
func (r Regex) Column() string { return r.column }
func (r Regex) Eval(row Row) bool {
	v, ok := row.Get(r.column)
	if !ok {
		return false
	}
	return r.pattern.MatchString(v.String())
}

// Calling wraps a caller-supplied predicate over the full row.
type Calling struct {
	column string
	fn     func(row Row, column string) bool
}

func NewCalling(column string, fn func(row Row, column string) bool) Calling {
	return Calling{column: column, fn: fn}
}
func (c Calling) Column() string    { return c.column }
func (c Calling) Eval(row Row) bool { return c.fn(row, c.column) }

// Tabulator is the composed container of row predicates plus column
// projection. Evaluating it on a row applies every Tab (logical AND)
// and, if all hold, projects the configured columns in order.
type Tabulator struct {
	header  []string
	rowTabs []Tab
	columns []string
}

// New builds an identity Tabulator: no predicates, full projection in
// header order.
func New(header []string) *Tabulator {
	cp := make([]string, len(header))
	copy(cp, header)
	return &Tabulator{header: header, columns: cp}
}

// Tabs returns this Tabulator's row predicates.
func (t *Tabulator) Tabs() []Tab { return t.rowTabs }

// Columns returns this Tabulator's column projection, in order.
func (t *Tabulator) Columns() []string { return t.columns }

// Apply evaluates every Tab against row (logical AND). If the row is
// rejected, ok is false. Otherwise it returns the row projected onto
// this Tabulator's columns, in order.
func (t *Tabulator) Apply(row Row) (Row, bool) {
	for _, tb := range t.rowTabs {
		if !tb.Eval(row) {
			return Row{}, false
		}
	}
	out := NewRow(len(t.columns))
	for _, name := range t.columns {
		if v, ok := row.Get(name); ok {
			out.Set(name, v)
		}
	}
	return out, true
}

// SetColumns validates and sets the projection list directly (names
// must be a subset of the header).
func (t *Tabulator) SetColumns(names []string) error {
	valid := make(map[string]bool, len(t.header))
	for _, h := range t.header {
		valid[h] = true
	}
	for _, n := range names {
		if !valid[n] {
			return fmt.Errorf("tab: column %q is not in the header", n)
		}
	}
	t.columns = append([]string(nil), names...)
	return nil
}

// SetColumnsByIndex resolves column indices against the header.
func (t *Tabulator) SetColumnsByIndex(indices []int) error {
	names := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(t.header) {
			return fmt.Errorf("tab: column index %d out of range", idx)
		}
		names = append(names, t.header[idx])
	}
	return t.SetColumns(names)
}

// SetColumnsByRegex projects every header name matching pattern, in
// header order.
func (t *Tabulator) SetColumnsByRegex(pattern *regexp.Regexp) error {
	var names []string
	for _, h := range t.header {
		if pattern.MatchString(h) {
			names = append(names, h)
		}
	}
	return t.SetColumns(names)
}

// AddTab appends a row predicate bound to a header column.
func (t *Tabulator) AddTab(tb Tab) error {
	found := false
	for _, h := range t.header {
		if h == tb.Column() {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("tab: column %q is not in the header", tb.Column())
	}
	t.rowTabs = append(t.rowTabs, tb)
	return nil
}
