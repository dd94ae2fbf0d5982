// Package cell converts raw field strings into typed values and back,
// and discovers the date/time/datetime format that a column's values
// share.
package cell

import (
	"fmt"
	"math/cmplx"
	"strconv"
	"strings"
	"time"
)

// Kind tags the variant a Cell holds.
type Kind int

const (
	Text Kind = iota
	Integer
	Float
	Complex
	Date
	Time
	DateTime
)

func (k Kind) String() string {
	switch k {
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Complex:
		return "complex"
	case Date:
		return "date"
	case Time:
		return "time"
	case DateTime:
		return "datetime"
	default:
		return "text"
	}
}

// IsNumeric reports whether k is one of the numeric variants.
func (k Kind) IsNumeric() bool {
	switch k {
	case Integer, Float, Complex:
		return true
	}
	return false
}

// Orderable reports whether k supports a total order. Complex has no
// natural ordering, so it is numeric but not orderable.
func (k Kind) Orderable() bool {
	return k == Integer || k == Float
}

// timeZeroDate is the sentinel date a bare time-of-day is anchored to.
var timeZeroDate = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)

// Cell is a single tagged, typed value decoded from one raw field.
type Cell struct {
	Kind  Kind
	Int   int64
	Flt   float64
	Cplx  complex128
	Tm    time.Time
	Txt   string
}

// Of constructs Cells of each variant. The zero Cell is a valid empty
// Text.
func OfInt(v int64) Cell           { return Cell{Kind: Integer, Int: v} }
func OfFloat(v float64) Cell       { return Cell{Kind: Float, Flt: v} }
func OfComplex(v complex128) Cell  { return Cell{Kind: Complex, Cplx: v} }
func OfText(v string) Cell         { return Cell{Kind: Text, Txt: v} }
func OfDate(t time.Time) Cell      { return Cell{Kind: Date, Tm: t} }
func OfTime(t time.Time) Cell      { return Cell{Kind: Time, Tm: t} }
func OfDateTime(t time.Time) Cell  { return Cell{Kind: DateTime, Tm: t} }

// String renders a Cell as text, used for regex matching against
// non-text cells. Numbers use Go's formatting (a complex value renders
// as "(1+2i)") and date-like cells use time.Time's String form, so the
// result is not necessarily the original field text.
func (c Cell) String() string {
	switch c.Kind {
	case Integer:
		return strconv.FormatInt(c.Int, 10)
	case Float:
		return strconv.FormatFloat(c.Flt, 'g', -1, 64)
	case Complex:
		return fmt.Sprintf("%v", c.Cplx)
	case Date, Time, DateTime:
		return c.Tm.String()
	default:
		return c.Txt
	}
}

// Equal compares two Cells. Integer/Float/Complex compare equal across
// Kind by promoting both to a common complex representation, so a
// Float cell of 4.0 equals an Integer cell of 4; any other
// cross-variant comparison (e.g. text vs numeric, date vs numeric) is
// never equal. Callers that need a text keyword to match a numeric
// cell must parse the keyword with Convert first.
func (c Cell) Equal(other Cell) bool {
	if c.Kind == other.Kind {
		switch c.Kind {
		case Integer:
			return c.Int == other.Int
		case Float:
			return c.Flt == other.Flt
		case Complex:
			return c.Cplx == other.Cplx
		case Date, Time, DateTime:
			return c.Tm.Equal(other.Tm)
		default:
			return c.Txt == other.Txt
		}
	}
	if c.Kind.IsNumeric() && other.Kind.IsNumeric() {
		return c.asComplex() == other.asComplex()
	}
	return false
}

// Less orders two Cells. Integer/Float compare across Kind by
// promoting both to float64, so a Float cell of 3.2 orders against an
// Integer cell of 0 directly; Complex has no natural order and, like
// any other cross-variant pairing, reports false (callers must guard
// with a Kind/Orderable check).
func (c Cell) Less(other Cell) bool {
	if c.Kind == other.Kind {
		switch c.Kind {
		case Integer:
			return c.Int < other.Int
		case Float:
			return c.Flt < other.Flt
		case Date, Time, DateTime:
			return c.Tm.Before(other.Tm)
		case Text:
			return c.Txt < other.Txt
		default:
			return false
		}
	}
	if c.Kind.Orderable() && other.Kind.Orderable() {
		return c.asFloat() < other.asFloat()
	}
	return false
}

// asFloat returns c's value as a float64; only meaningful for Integer
// and Float cells.
func (c Cell) asFloat() float64 {
	if c.Kind == Integer {
		return float64(c.Int)
	}
	return c.Flt
}

// asComplex returns c's value promoted to complex128; only meaningful
// for Integer/Float/Complex cells.
func (c Cell) asComplex() complex128 {
	switch c.Kind {
	case Complex:
		return c.Cplx
	case Integer:
		return complex(float64(c.Int), 0)
	default:
		return complex(c.Flt, 0)
	}
}

// Classify reports which variant s would decode to, without doing the
// (more expensive) actual conversion.
func Classify(s string) Kind {
	if isNumeric(s) {
		return numericKind(s)
	}
	if FindFormat(s, dateFormats()) != "" {
		return Date
	}
	if FindFormat(s, timeFormats()) != "" {
		return Time
	}
	if FindFormat(s, datetimeFormats()) != "" {
		return DateTime
	}
	return Text
}

// Hint carries a previously-committed column type and, for date-like
// kinds, the format string discovered for that column, so that per-row
// decoding skips the catalogue walk.
type Hint struct {
	Kind   Kind
	Format string
}

// Convert decodes one raw field into a Cell. If hint is non-nil, its
// Kind/Format are tried first; on any failure Convert silently falls
// back to full auto-classification and never returns an error: a
// malformed cell degrades to Text rather than aborting a read.
func Convert(s string, hint *Hint) Cell {
	if hint != nil {
		if c, ok := convertHinted(s, *hint); ok {
			return c
		}
	}
	return autoConvert(s)
}

func convertHinted(s string, h Hint) (Cell, bool) {
	switch h.Kind {
	case Integer:
		if isNumeric(s) {
			c := asNumeric(s)
			if c.Kind == Integer {
				return c, true
			}
		}
	case Float:
		if isNumeric(s) {
			c := asNumeric(s)
			if c.Kind == Float || c.Kind == Integer {
				return Cell{Kind: Float, Flt: toFloat(c)}, true
			}
		}
	case Complex:
		if isNumeric(s) {
			c := asNumeric(s)
			return toComplexCell(c), true
		}
	case Date, Time, DateTime:
		if h.Format == "" {
			return Cell{}, false
		}
		t, err := time.Parse(h.Format, s)
		if err != nil {
			return Cell{}, false
		}
		if h.Kind == Time {
			t = time.Date(timeZeroDate.Year(), timeZeroDate.Month(), timeZeroDate.Day(),
				t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
		}
		return Cell{Kind: h.Kind, Tm: t}, true
	}
	return Cell{}, false
}

func toFloat(c Cell) float64 {
	if c.Kind == Integer {
		return float64(c.Int)
	}
	return c.Flt
}

func toComplexCell(c Cell) Cell {
	switch c.Kind {
	case Complex:
		return c
	case Float:
		return Cell{Kind: Complex, Cplx: complex(c.Flt, 0)}
	case Integer:
		return Cell{Kind: Complex, Cplx: complex(float64(c.Int), 0)}
	default:
		return c
	}
}

func autoConvert(s string) Cell {
	if isNumeric(s) {
		return asNumeric(s)
	}
	if fmtStr := FindFormat(s, dateFormats()); fmtStr != "" {
		if t, err := time.Parse(fmtStr, s); err == nil {
			return Cell{Kind: Date, Tm: t}
		}
	}
	if fmtStr := FindFormat(s, timeFormats()); fmtStr != "" {
		if t, err := time.Parse(fmtStr, s); err == nil {
			t = time.Date(timeZeroDate.Year(), timeZeroDate.Month(), timeZeroDate.Day(),
				t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
			return Cell{Kind: Time, Tm: t}
		}
	}
	if fmtStr := FindFormat(s, datetimeFormats()); fmtStr != "" {
		if t, err := time.Parse(fmtStr, s); err == nil {
			return Cell{Kind: DateTime, Tm: t}
		}
	}
	return Cell{Kind: Text, Txt: s}
}

// IsNumericString reports whether s would classify as Integer, Float,
// or Complex. Exported for callers (the sniffer's header/metadata
// heuristics) that need the numeric test without a full Classify.
func IsNumericString(s string) bool {
	return isNumeric(s)
}

// isNumeric reports whether s parses as int, float, or complex.
func isNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	if isComplexLiteral(s) {
		if _, err := parseComplex(s); err == nil {
			return true
		}
	}
	return false
}

func numericKind(s string) Kind {
	c := asNumeric(s)
	return c.Kind
}

// asNumeric converts a numeric string per this selection order:
// imaginary marker -> complex; '.' or scientific exponent -> float;
// else integer.
func asNumeric(s string) Cell {
	s = strings.TrimSpace(s)
	if isComplexLiteral(s) {
		if z, err := parseComplex(s); err == nil {
			return Cell{Kind: Complex, Cplx: z}
		}
	}
	if strings.ContainsAny(s, ".") || hasExponent(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return Cell{Kind: Float, Flt: f}
		}
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Cell{Kind: Integer, Int: i}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Cell{Kind: Float, Flt: f}
	}
	return Cell{Kind: Text, Txt: s}
}

func hasExponent(s string) bool {
	for i, r := range s {
		if (r == 'e' || r == 'E') && i > 0 && i < len(s)-1 {
			return true
		}
	}
	return false
}

func isComplexLiteral(s string) bool {
	return strings.ContainsAny(s, "ij") || strings.ContainsAny(s, "IJ")
}

// parseComplex parses a "1+2j"/"3j"-style complex literal, normalising
// the trailing imaginary marker to Go's "i" before delegating to
// strconv.ParseComplex.
func parseComplex(s string) (complex128, error) {
	norm := strings.NewReplacer("j", "i", "J", "i").Replace(strings.TrimSpace(s))
	z, err := strconv.ParseComplex(norm, 128)
	if err != nil {
		return 0, err
	}
	if cmplx.IsNaN(z) {
		return 0, fmt.Errorf("cell: not a complex literal: %q", s)
	}
	return z, nil
}
