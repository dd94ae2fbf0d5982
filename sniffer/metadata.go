package sniffer

// Metadata derives the Metadata bounds from the current sample and
// a previously-derived Header.
func (s *Sniffer) Metadata(header Header, delimiter rune) Metadata {
	rows := s.Rows(delimiter)
	nums := s.sample.LineNums

	if header.Line != nil {
		end := *header.Line - 1
		return Metadata{Start: 0, End: &end}
	}

	if len(rows) == 0 {
		return Metadata{Start: 0, End: nil}
	}
	last := rows[len(rows)-1]

	var endIdx int
	found := false
	switch numericShape(last) {
	case allNumeric:
		endIdx, found = maxCandidate(
			cand(mislenRow(rows)),
			cand(nonnumRow(rows)),
		)
	case someNumeric:
		endIdx, found = maxCandidate(
			cand(mislenRow(rows)),
			cand(disjointRow(rows)),
			cand(nonnumRow(rows)),
		)
	default: // allString
		endIdx, found = maxCandidate(
			cand(mislenRow(rows)),
			cand(disjointRow(rows)),
		)
	}

	if !found {
		return Metadata{Start: 0, End: nil}
	}
	end := nums[endIdx]
	return Metadata{Start: 0, End: &end}
}

type rowShape int

const (
	allString rowShape = iota
	someNumeric
	allNumeric
)

func numericShape(row []string) rowShape {
	numeric := 0
	for _, f := range row {
		if fieldIsNumeric(f) {
			numeric++
		}
	}
	switch {
	case numeric == 0:
		return allString
	case numeric == len(row):
		return allNumeric
	default:
		return someNumeric
	}
}

// mislenRow is the largest-indexed row (excluding the last) whose
// length differs from the last row's length.
func mislenRow(rows [][]string) (int, bool) {
	last := rows[len(rows)-1]
	for i := len(rows) - 2; i >= 0; i-- {
		if len(rows[i]) != len(last) {
			return i, true
		}
	}
	return 0, false
}

// disjointRow is the largest-indexed row (excluding the last) whose
// field-value set shares nothing with any row strictly below it. No
// empty-cell requirement here, unlike header Case B's use of the same
// shape of search: that stricter rule is reserved for header
// detection only.
func disjointRow(rows [][]string) (int, bool) {
	for i := len(rows) - 2; i >= 0; i-- {
		if disjointFromBelow(rows, i) {
			return i, true
		}
	}
	return 0, false
}

// nonnumRow is the largest-indexed row (excluding the last) with no
// stringed-numeric cells and no empty cells. No length-match
// requirement here, unlike header Case A.
func nonnumRow(rows [][]string) (int, bool) {
	for i := len(rows) - 2; i >= 0; i-- {
		row := rows[i]
		if rowHasNumeric(row) || rowHasEmpty(row) {
			continue
		}
		return i, true
	}
	return 0, false
}

func fieldIsNumeric(s string) bool {
	return rowHasNumeric([]string{s})
}

type rowCandidate struct {
	idx   int
	found bool
}

func cand(idx int, found bool) rowCandidate { return rowCandidate{idx, found} }

// maxCandidate returns the largest index among the found candidates.
func maxCandidate(candidates ...rowCandidate) (int, bool) {
	best, found := 0, false
	for _, c := range candidates {
		if c.found && (!found || c.idx > best) {
			best, found = c.idx, true
		}
	}
	return best, found
}
