package reader

import (
	"encoding/csv"
	"strings"

	"tabbed/dialect"
)

// Splitter turns one raw line into its delimited fields. Reader
// accepts an injected Splitter so callers can supply a custom field
// splitter for dialects DefaultSplit doesn't handle.
type Splitter func(line string, d dialect.Dialect) ([]string, error)

// DefaultSplit is the Splitter used unless a caller overrides it. It
// wraps encoding/csv, configured from d, so quoted fields containing
// the delimiter are split correctly.
func DefaultSplit(line string, d dialect.Dialect) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = d.Delimiter
	if d.Quote != 0 {
		r.LazyQuotes = true
	}
	r.FieldsPerRecord = -1
	record, err := r.Read()
	if err != nil {
		return nil, err
	}
	return record, nil
}
