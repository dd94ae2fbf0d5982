package sniffer

import "tabbed/cell"

// Header derives the Header from the current sample. Case A
// (numeric-bearing last row) searches for the highest, fully
// non-numeric, non-empty, length-matching row; Case B (all-string last
// row) searches for the highest row disjoint from every row strictly
// below it, additionally requiring a length match that, if it fails,
// falls back to no header. The length-match requirement is kept strict
// for headers even though metadata detection applies a looser rule.
func (s *Sniffer) Header(delimiter rune) Header {
	rows := s.Rows(delimiter)
	nums := s.sample.LineNums

	if len(rows) == 0 {
		return newHeader(nil, nil, nil)
	}
	last := rows[len(rows)-1]

	if rowHasNumeric(last) {
		if idx, ok := headerCaseA(rows); ok {
			line := nums[idx]
			return newHeader(&line, rows[idx], nil)
		}
	} else {
		if idx, ok := headerCaseB(rows); ok {
			line := nums[idx]
			return newHeader(&line, rows[idx], nil)
		}
	}

	return newHeader(nil, SyntheticNames(len(last)), nil)
}

// headerCaseA searches bottom-up for the header candidate in the
// numeric-last-row case.
func headerCaseA(rows [][]string) (int, bool) {
	last := rows[len(rows)-1]
	for i := len(rows) - 2; i >= 0; i-- {
		row := rows[i]
		if len(row) != len(last) {
			continue
		}
		if rowHasNumeric(row) || rowHasEmpty(row) {
			continue
		}
		return i, true
	}
	return 0, false
}

// headerCaseB searches bottom-up for the header candidate in the
// all-string-last-row case. The first disjoint, non-empty
// candidate found (searching bottom to top, excluding the last row)
// determines the outcome: if its length doesn't match the last row,
// the search stops and no header is reported, rather than continuing
// to look for a different candidate.
func headerCaseB(rows [][]string) (int, bool) {
	last := rows[len(rows)-1]
	for i := len(rows) - 2; i >= 0; i-- {
		row := rows[i]
		if rowHasEmpty(row) {
			continue
		}
		if !disjointFromBelow(rows, i) {
			continue
		}
		if len(row) != len(last) {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

func rowHasNumeric(row []string) bool {
	for _, field := range row {
		if cell.IsNumericString(field) {
			return true
		}
	}
	return false
}

func rowHasEmpty(row []string) bool {
	for _, field := range row {
		if field == "" {
			return true
		}
	}
	return false
}

// disjointFromBelow reports whether rows[i]'s field-value set shares
// nothing with any rows[j], j > i.
func disjointFromBelow(rows [][]string, i int) bool {
	set := toSet(rows[i])
	for j := i + 1; j < len(rows); j++ {
		for _, v := range rows[j] {
			if set[v] {
				return false
			}
		}
	}
	return true
}

func toSet(row []string) map[string]bool {
	set := make(map[string]bool, len(row))
	for _, v := range row {
		set[v] = true
	}
	return set
}
