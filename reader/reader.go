// Package reader orchestrates the sniffer, cell parser, and tabulator
// into an iterative, chunked read of a delimited text file's data
// section.
package reader

import (
	"fmt"
	"log"
	"regexp"
	"sync"

	"github.com/google/uuid"

	"tabbed/cell"
	"tabbed/dialect"
	"tabbed/sniffer"
	"tabbed/tab"
)

// Reader wires a Sniffer, Tabulator, and line source together and
// exposes a chunked read of the data section following any metadata
// and header lines.
type Reader struct {
	src       sniffer.LineSource
	snf       *sniffer.Sniffer
	split     Splitter
	mu        sync.RWMutex
	header    sniffer.Header
	explicit  bool // true once the caller has set an explicit header
	tabulator *tab.Tabulator
	strict    bool // comparisons reject rows whose cell Kind cannot be compared with the operand instead of keeping them
	errors    *ErrorLog
}

// New constructs a Reader over src, running the Sniffer once to
// derive an initial header and dialect.
func New(src sniffer.LineSource) (*Reader, error) {
	snf, err := sniffer.New(src)
	if err != nil {
		return nil, fmt.Errorf("reader: %w", err)
	}
	r := &Reader{
		src:    src,
		snf:    snf,
		split:  DefaultSplit,
		errors: newErrorLog(),
	}
	r.header = snf.Header(0)
	r.tabulator = tab.New(r.header.Names)
	return r, nil
}

// SetSplitter overrides the field splitter used to parse each data
// line (the default is DefaultSplit, which wraps encoding/csv).
func (r *Reader) SetSplitter(s Splitter) { r.split = s }

// Sniffer exposes the embedded Sniffer for direct structural
// inspection or reconfiguration (start/amount/skips/candidates).
// Header() re-derives from the Sniffer on every call unless the caller
// has set an explicit header via SetHeader.
func (r *Reader) Sniffer() *sniffer.Sniffer { return r.snf }

// Dialect mirrors the Sniffer's current dialect.
func (r *Reader) Dialect() dialect.Dialect { return r.snf.Dialect() }

// SetDialect patches the Sniffer's dialect (e.g. when detection
// failed or guessed wrong).
func (r *Reader) SetDialect(d dialect.Dialect) { r.snf.SetDialect(d) }

// Header returns this Reader's current header. Unless the caller has
// set an explicit header via SetHeader, it is re-derived from the
// Sniffer on every call.
func (r *Reader) Header() sniffer.Header {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.explicit {
		r.header = r.snf.Header(0)
	}
	return r.header
}

// SetHeader adopts an explicit header. value may be an int (re-sniff
// a single line at that offset and adopt it), a []string (adopt
// directly; must match the sniffed row width), or nil (revert to
// tracking the Sniffer's derived header). Any change resets the
// Tabulator to an identity tabulator.
func (r *Reader) SetHeader(value any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	hadTabs := len(r.tabulator.Tabs()) > 0

	switch v := value.(type) {
	case int:
		single, err := sniffer.New(r.src)
		if err != nil {
			return fmt.Errorf("reader: %w", err)
		}
		if err := single.SetStart(v); err != nil {
			return err
		}
		if err := single.SetAmount(1); err != nil {
			return err
		}
		rows := single.Rows(r.snf.Dialect().Delimiter)
		if len(rows) == 0 {
			return fmt.Errorf("reader: no row at line %d", v)
		}
		line := v
		r.header = sniffer.Header{Line: &line, Names: normalizeNames(rows[0])}
		r.explicit = true
	case []string:
		width := r.lastSampledWidth()
		if width != 0 && len(v) != width {
			return ErrHeaderColumnMismatch
		}
		r.header = sniffer.Header{Line: nil, Names: normalizeNames(v)}
		r.explicit = true
	case nil:
		r.explicit = false
		r.header = r.snf.Header(0)
	default:
		return fmt.Errorf("reader: unsupported header value type %T", value)
	}

	r.tabulator = tab.New(r.header.Names)
	if hadTabs {
		log.Printf("[TABULATOR_RESET] header changed, previous row predicates were dropped")
	}
	return nil
}

func (r *Reader) lastSampledWidth() int {
	rows := r.snf.Rows(0)
	if len(rows) == 0 {
		return 0
	}
	return len(rows[len(rows)-1])
}

func normalizeNames(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = sniffer.SpacesToUnderscores(n)
	}
	return out
}

// Metadata mirrors the Sniffer's derived metadata bounds for the
// current header.
func (r *Reader) Metadata() sniffer.Metadata {
	return r.snf.Metadata(r.Header(), 0)
}

// Tabulator returns the currently active Tabulator.
func (r *Reader) Tabulator() *tab.Tabulator { return r.tabulator }

// Errors returns the error log from the most recent read pass.
func (r *Reader) Errors() *ErrorLog { return r.errors }

// Typecasts polls the Sniffer (poll rows from the sample tail) and
// returns the per-column cast hint committed for each header column.
func (r *Reader) Typecasts(poll int) map[string]cell.Hint {
	types, _ := r.snf.Types(poll)
	header := r.Header()
	out := make(map[string]cell.Hint, len(header.Names))
	for i, name := range header.Names {
		if i >= len(types) {
			break
		}
		out[name] = cell.Hint{Kind: types[i].Kind, Format: types[i].Format}
	}
	return out
}

// SetStrict controls how row predicates treat a cell whose Kind
// cannot be compared with a comparison operand's Kind (e.g. a Text
// cell against a numeric operand; Integer, Float and Complex compare
// with each other). Permissive (the default) keeps such rows;
// strict rejects them. It takes effect on the next call to Tab.
func (r *Reader) SetStrict(strict bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strict = strict
}

// Tab reconstructs the Tabulator from a column projection and a set
// of name=value row predicates. Predicate comparisons default to
// permissive Kind matching; see SetStrict.
func (r *Reader) Tab(columns any, predicates map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := tab.New(r.header.Names)
	if err := tab.FromKeywords(t, predicates, r.strict); err != nil {
		return err
	}
	if err := applyColumns(t, columns); err != nil {
		return err
	}
	r.tabulator = t
	return nil
}

func applyColumns(t *tab.Tabulator, columns any) error {
	switch v := columns.(type) {
	case nil:
		return nil
	case []string:
		return t.SetColumns(v)
	case []int:
		return t.SetColumnsByIndex(v)
	case *regexp.Regexp:
		return t.SetColumnsByRegex(v)
	default:
		return fmt.Errorf("reader: unsupported columns value type %T", columns)
	}
}

// Close releases the underlying line source.
func (r *Reader) Close() error {
	if c, ok := r.src.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// Len reports the total line count of the input.
func (r *Reader) Len() (int, error) {
	return r.snf.LineCount()
}

// newPassID mints a correlation ID for one read pass's structured log
// lines; it is never embedded in the public error log strings.
func newPassID() string {
	return uuid.New().String()
}
