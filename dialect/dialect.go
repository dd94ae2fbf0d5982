// Package dialect infers the delimiter/quote/escape conventions of a
// sampled chunk of a delimited text file, scoring candidate delimiters
// by field-count consistency across sample lines rather than relying
// on any single fixed format assumption.
package dialect

import "strings"

// DefaultCandidates is the delimiter set scanned when no candidate set
// is supplied explicitly.
var DefaultCandidates = []rune{',', ';', '|', '\t'}

// Dialect describes one file's delimited-text conventions.
type Dialect struct {
	Delimiter rune
	Quote     rune
	Escape    rune // zero rune means "no escape"
	Strict    bool
}

// HasEscape reports whether this Dialect carries an escape rune.
// Escape = '' is normalised to "none" at construction, i.e. the zero
// rune always means "no escape character".
func (d Dialect) HasEscape() bool {
	return d.Escape != 0
}

// New constructs a Dialect, normalising an empty escape to "none".
func New(delimiter, quote, escape rune, strict bool) Dialect {
	return Dialect{Delimiter: delimiter, Quote: quote, Escape: escape, Strict: strict}
}

// Detect infers a Dialect from a sample string by scoring each
// candidate delimiter on how consistently it splits the sample's
// non-blank lines, and picking the best-scoring, highest-field-count
// candidate. If no candidate's most common per-line field count is at
// least two, Detect returns the zero Dialect and ok=false so the caller
// can fall back to an explicit override.
func Detect(sample string, candidates []rune) (Dialect, bool) {
	if len(candidates) == 0 {
		candidates = DefaultCandidates
	}

	lines := nonBlankLines(sample)
	if len(lines) == 0 {
		return Dialect{}, false
	}

	var best rune
	bestScore := -1.0
	bestFields := 0
	for _, d := range candidates {
		score, fields := consistency(lines, d)
		if fields < 2 {
			continue
		}
		if score > bestScore || (score == bestScore && fields > bestFields) {
			best = d
			bestScore = score
			bestFields = fields
		}
	}

	if bestScore < 0 {
		return Dialect{}, false
	}

	return Dialect{Delimiter: best, Quote: '"', Escape: 0, Strict: false}, true
}

// consistency scores a delimiter by the fraction of lines whose field
// count equals the most common field count, and reports that most
// common field count.
func consistency(lines []string, delimiter rune) (float64, int) {
	counts := map[int]int{}
	for _, line := range lines {
		n := strings.Count(line, string(delimiter)) + 1
		counts[n]++
	}

	mode, modeCount := 0, 0
	for n, c := range counts {
		if c > modeCount || (c == modeCount && n > mode) {
			mode, modeCount = n, c
		}
	}
	if len(lines) == 0 {
		return 0, mode
	}
	return float64(modeCount) / float64(len(lines)), mode
}

func nonBlankLines(sample string) []string {
	raw := strings.Split(sample, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
