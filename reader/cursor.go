package reader

import (
	"context"
	"fmt"
	"io"
	"log"

	"tabbed/cell"
	"tabbed/tab"
)

const defaultChunkSize = 200_000

// ReadOptions configures one read pass.
type ReadOptions struct {
	// Start is the first data line to read. Zero value (nil) means
	// "autostart": the line following the header, or the line
	// following metadata, or 0.
	Start *int
	// Skips is a set of line numbers to omit from the read.
	Skips []int
	// Indices, if non-nil, restricts the read to exactly these line
	// numbers (in addition to Skips/Start filtering).
	Indices []int
	// ChunkSize is the number of rows buffered before a chunk is
	// emitted. Defaults to 200,000.
	ChunkSize int
	// SkipBlanks omits rows whose fields are all empty.
	SkipBlanks bool
	// Castings overrides specific columns' cast hints.
	Castings map[string]cell.Hint
	// RaiseCast stops the read on the first casting failure instead of
	// logging it and falling back to Text.
	RaiseCast bool
	// RaiseRagged stops the read on the first ragged row instead of
	// logging it and truncating/padding the row.
	RaiseRagged bool
}

// DefaultReadOptions returns the read() defaults.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{ChunkSize: defaultChunkSize, SkipBlanks: true}
}

// Cursor is the stateful, lazy chunked sequence read() returns: it
// owns the stream cursor, the FIFO buffer, the poll-derived type
// table, and the tabulator reference for one pass.
type Cursor struct {
	r          *Reader
	opts       ReadOptions
	header     []string
	tabulator  *tab.Tabulator
	typecasts  map[string]cell.Hint
	skips      map[int]bool
	indices    map[int]bool
	hasIndices bool

	passID string
	line   int
	fifo   []tab.Row
	done   bool
}

// Read begins a new read pass and returns its Cursor. The error log is
// reset at the start of the pass.
func (r *Reader) Read(opts ReadOptions) (*Cursor, error) {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = defaultChunkSize
	}

	header := r.Header()
	r.errors = newErrorLog()

	typecasts := r.Typecasts(5)
	for name, hint := range opts.Castings {
		typecasts[name] = hint
	}

	skips := map[int]bool{}
	for _, n := range opts.Skips {
		skips[n] = true
	}

	var indices map[int]bool
	if opts.Indices != nil {
		indices = map[int]bool{}
		for _, n := range opts.Indices {
			indices[n] = true
		}
	}

	start := r.autostart()
	if opts.Start != nil {
		start = *opts.Start
	}
	if start < 0 {
		return nil, ErrInvalidStart
	}

	if err := r.src.Rewind(); err != nil {
		return nil, fmt.Errorf("reader: %w", err)
	}
	for i := 0; i < start; i++ {
		if _, err := r.src.ReadLine(); err != nil {
			if err == io.EOF {
				return nil, ErrInvalidStart
			}
			return nil, fmt.Errorf("reader: %w", err)
		}
	}

	return &Cursor{
		r:          r,
		opts:       opts,
		header:     header.Names,
		tabulator:  r.tabulator,
		typecasts:  typecasts,
		skips:      skips,
		indices:    indices,
		hasIndices: indices != nil,
		passID:     newPassID(),
		line:       start,
	}, nil
}

// autostart locates the first line of the data section: the line
// following the header if a header line was found, else the line
// following the metadata block if metadata was detected, else 0.
func (r *Reader) autostart() int {
	header := r.Header()
	if header.Line != nil {
		return *header.Line + 1
	}
	meta := r.Metadata()
	if meta.End != nil {
		return *meta.End + 1
	}
	return 0
}

// Next advances the cursor, returning the next chunk of filtered,
// projected rows. It returns io.EOF once the final (possibly partial)
// chunk has been emitted and the underlying stream has been rewound
// to zero for the next caller. A cancelled ctx aborts between row
// reads with ctx.Err().
func (c *Cursor) Next(ctx context.Context) ([]tab.Row, error) {
	if c.done {
		return nil, io.EOF
	}

	for len(c.fifo) < c.opts.ChunkSize {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		raw, err := c.r.src.ReadLine()
		if err == io.EOF {
			c.done = true
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reader: %w", err)
		}

		line := c.line
		c.line++

		if c.skips[line] {
			continue
		}
		if c.hasIndices && !c.indices[line] {
			continue
		}

		fields, err := c.r.split(raw, c.r.snf.Dialect())
		if err != nil {
			fields = []string{raw}
		}

		if c.opts.SkipBlanks && allBlank(fields) {
			continue
		}

		fields, err = c.ragged(line, fields)
		if err != nil {
			c.done = true
			c.r.src.Rewind()
			return nil, err
		}
		row, err := c.recast(line, fields)
		if err != nil {
			c.done = true
			c.r.src.Rewind()
			return nil, err
		}

		projected, ok := c.tabulator.Apply(row)
		if !ok {
			continue
		}
		c.fifo = append(c.fifo, projected)
	}

	if len(c.fifo) == 0 && c.done {
		c.r.src.Rewind()
		return nil, io.EOF
	}

	chunk := c.fifo
	c.fifo = nil
	return chunk, nil
}

func allBlank(fields []string) bool {
	for _, f := range fields {
		if f != "" {
			return false
		}
	}
	return true
}

// ragged logs a field-count mismatch against the header and
// truncates/pads fields to the header's width so downstream recast
// always has a name for every value. If RaiseRagged is set, it instead
// returns an error and leaves fields untouched, aborting the pass.
func (c *Cursor) ragged(line int, fields []string) ([]string, error) {
	if len(fields) == len(c.header) {
		return fields, nil
	}
	msg := fmt.Sprintf("Unexpected line length on row %d", line)
	if c.opts.RaiseRagged {
		return nil, fmt.Errorf("reader: %s", msg)
	}
	log.Printf("[RAGGED pass=%s] %s", c.passID, msg)
	c.r.errors.Ragged = append(c.r.errors.Ragged, msg)

	out := make([]string, len(c.header))
	copy(out, fields)
	return out, nil
}

// recast converts each raw field string to a Cell using the column's
// committed type hint, falling back to Text on any casting failure
// and logging the failure. If RaiseCast is set, a casting failure
// instead returns an error and aborts the pass.
func (c *Cursor) recast(line int, fields []string) (tab.Row, error) {
	row := tab.NewRow(len(c.header))
	for i, name := range c.header {
		var raw string
		if i < len(fields) {
			raw = fields[i]
		}
		hint := c.typecasts[name]
		v := cell.Convert(raw, &hint)
		if v.Kind == cell.Text && hint.Kind != cell.Text && raw != "" {
			msg := fmt.Sprintf("Casting error occurred on line = %d, column = '%s'", line, name)
			if c.opts.RaiseCast {
				return tab.Row{}, fmt.Errorf("reader: %s", msg)
			}
			log.Printf("[CASTING pass=%s] %s", c.passID, msg)
			c.r.errors.Casting = append(c.r.errors.Casting, msg)
		}
		row.Set(name, v)
	}
	return row, nil
}
