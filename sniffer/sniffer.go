// Package sniffer owns a bounded, parametrised sample of a delimited
// text file and derives its dialect, split rows, header location,
// metadata bounds, and per-column types.
package sniffer

import (
	"io"

	"github.com/minio/highwayhash"

	"tabbed/dialect"
)

// LineSource is the byte-stream contract this package requires:
// forward line reads, absolute rewind-to-zero, and line-count
// introspection. *stream.Source satisfies this interface.
type LineSource interface {
	ReadLine() (string, error)
	Rewind() error
	LineCount() (int, error)
}

// highwayKey is a fixed, arbitrary 32-byte key. Sample hashing here is
// for content-identity comparison, not authentication, so a fixed key
// is appropriate (every Sniffer hashes under the same key, making
// hashes comparable across instances).
var highwayKey = make([]byte, 32)

// Sample is a bounded, reproducible slice of the file: a sequence of
// raw lines plus the line numbers they originated from.
type Sample struct {
	Lines      []string
	LineNums   []int
	ContentSum [16]byte
}

// sampleSum hashes the joined sample text with HighwayHash-128, giving
// two Samples drawn with identical (start, amount, skips) over the
// same bytes an identical, comparable fingerprint.
func sampleSum(lines []string) [16]byte {
	h, err := highwayhash.New128(highwayKey)
	if err != nil {
		// highwayKey is always exactly 32 bytes, so New128 cannot fail.
		panic(err)
	}
	h.Write([]byte(joinLines(lines)))
	var out [16]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Sniffer owns the sample window and dialect for one input stream.
type Sniffer struct {
	src LineSource

	start  int
	amount int
	skips  map[int]bool

	dialect    dialect.Dialect
	dialectOK  bool
	candidates []rune

	sample     Sample
	generation int
}

const defaultAmount = 100

// New constructs a Sniffer over src with the default sample window
// (start=0, amount=100, no skips) and performs the initial resample.
func New(src LineSource) (*Sniffer, error) {
	s := &Sniffer{
		src:        src,
		start:      0,
		amount:     defaultAmount,
		skips:      map[int]bool{},
		candidates: dialect.DefaultCandidates,
	}
	if err := s.resample(); err != nil {
		return nil, err
	}
	return s, nil
}

// Generation returns the resample counter, bumped once per successful
// resample. Callers that cache state derived from the sample can
// compare this against the generation they last observed instead of
// relying on a global change-notification hook.
func (s *Sniffer) Generation() int {
	return s.generation
}

// Start returns the current sample start line.
func (s *Sniffer) Start() int { return s.start }

// Amount returns the current sample amount.
func (s *Sniffer) Amount() int { return s.amount }

// Skips returns the current sample skip set, sorted.
func (s *Sniffer) Skips() []int {
	out := make([]int, 0, len(s.skips))
	for k := range s.skips {
		out = append(out, k)
	}
	sortInts(out)
	return out
}

// SetStart sets the sample start line and resamples. start is clamped
// to line_count-1.
func (s *Sniffer) SetStart(n int) error {
	s.start = n
	return s.resample()
}

// SetAmount sets the sample amount and resamples. amount is clamped to
// line_count-start.
func (s *Sniffer) SetAmount(n int) error {
	s.amount = n
	return s.resample()
}

// SetSkips sets the sample line numbers to skip and resamples.
func (s *Sniffer) SetSkips(skips []int) error {
	m := make(map[int]bool, len(skips))
	for _, n := range skips {
		m[n] = true
	}
	s.skips = m
	return s.resample()
}

// SetCandidates overrides the dialect detector's candidate delimiter
// set and re-detects the dialect against the current sample.
func (s *Sniffer) SetCandidates(candidates []rune) {
	s.candidates = candidates
	s.detectDialect()
}

// Dialect returns the currently inferred (or patched) Dialect.
func (s *Sniffer) Dialect() dialect.Dialect { return s.dialect }

// SetDialect patches the Dialect directly, overriding detection.
func (s *Sniffer) SetDialect(d dialect.Dialect) {
	s.dialect = d
	s.dialectOK = true
}

// DialectDetected reports whether dialect detection succeeded (as
// opposed to a caller-supplied override after a detection failure).
func (s *Sniffer) DialectDetected() bool { return s.dialectOK }

// LineCount recomputes the file's total line count by rewinding,
// scanning to completion, and rewinding again.
func (s *Sniffer) LineCount() (int, error) {
	return s.src.LineCount()
}

// Sample returns the currently materialised sample.
func (s *Sniffer) Sample() Sample { return s.sample }

// resample re-materialises the sample after start/amount/skips
// change, clamping start and amount to the file's actual line count,
// and re-runs dialect detection against the new sample.
func (s *Sniffer) resample() error {
	lineCount, err := s.src.LineCount()
	if err != nil {
		return err
	}

	if lineCount > 0 && s.start > lineCount-1 {
		s.start = lineCount - 1
	}
	if s.start < 0 {
		s.start = 0
	}
	remaining := lineCount - s.start
	if remaining < 0 {
		remaining = 0
	}
	if s.amount > remaining {
		s.amount = remaining
	}

	if err := s.src.Rewind(); err != nil {
		return err
	}
	for i := 0; i < s.start; i++ {
		if _, err := s.src.ReadLine(); err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
	}

	var lines []string
	var nums []int
	lineNo := s.start
	for len(lines) < s.amount {
		line, err := s.src.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if !s.skips[lineNo] {
			lines = append(lines, line)
			nums = append(nums, lineNo)
		}
		lineNo++
	}

	if err := s.src.Rewind(); err != nil {
		return err
	}

	s.sample = Sample{Lines: lines, LineNums: nums, ContentSum: sampleSum(lines)}
	s.generation++
	s.detectDialect()
	return nil
}

func joinLines(lines []string) string {
	total := 0
	for _, l := range lines {
		total += len(l) + 1
	}
	buf := make([]byte, 0, total)
	for _, l := range lines {
		buf = append(buf, l...)
		buf = append(buf, '\n')
	}
	return string(buf)
}

func (s *Sniffer) detectDialect() {
	d, ok := dialect.Detect(joinLines(s.sample.Lines), s.candidates)
	s.dialect = d
	s.dialectOK = ok
}

func sortInts(a []int) {
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && a[j-1] > a[j]; j-- {
			a[j-1], a[j] = a[j], a[j-1]
		}
	}
}
