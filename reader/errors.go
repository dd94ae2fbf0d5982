package reader

import "errors"

// ErrInvalidStart is returned when a caller-supplied start line is
// negative or past the end of the input.
var ErrInvalidStart = errors.New("reader: start line is out of range")

// ErrHeaderColumnMismatch is returned when a caller supplies an
// explicit header name list whose length doesn't match the sniffed
// row width.
var ErrHeaderColumnMismatch = errors.New("reader: header column count does not match the sniffed row width")

// ErrorLog is a live-appendable pair of diagnostic lists, reset at the
// start of every read pass. Errors are diagnostic, not fatal by
// default: a row is still emitted (recast to Text on a casting
// failure, truncated/padded on a ragged failure) unless the caller
// opted into raise-on-error behavior.
type ErrorLog struct {
	Casting []string
	Ragged  []string
}

func newErrorLog() *ErrorLog {
	return &ErrorLog{}
}
