package cell

import (
	"sync"
	"time"
)

// Format catalogues are built lazily and cached for the process
// lifetime: immutable tables, never mutated after first observation.
var (
	dateFormatsOnce sync.Once
	dateFormatsV    []string

	timeFormatsOnce sync.Once
	timeFormatsV    []string

	datetimeFormatsOnce sync.Once
	datetimeFormatsV    []string
)

// DateFormats returns the 48-entry date format catalogue: the
// cartesian product of month token {%m, %b, %B}, separator
// {' ', '/', '-', '.'}, year token {%Y, %y}, in both month-first and
// day-first orderings.
func DateFormats() []string {
	dateFormatsOnce.Do(func() {
		dateFormatsV = dateFormats()
	})
	return dateFormatsV
}

// TimeFormats returns the time format catalogue: the cartesian
// product of hour token {15, 3}, microsecond separator
// {"", ":000000", ".000000"}, am/pm suffix {"", " PM"}, restricted so
// the 24-hour token never pairs with an am/pm suffix.
func TimeFormats() []string {
	timeFormatsOnce.Do(func() {
		timeFormatsV = timeFormats()
	})
	return timeFormatsV
}

// DateTimeFormats returns the cartesian product of DateFormats() and
// TimeFormats(), joined by a single space.
func DateTimeFormats() []string {
	datetimeFormatsOnce.Do(func() {
		datetimeFormatsV = datetimeFormats()
	})
	return datetimeFormatsV
}

// Go's reference-time layout tokens, built as the cartesian product of
// month/separator/year (and similarly for time and datetime) forms.
func dateFormats() []string {
	months := []string{"1", "Jan", "January"}
	seps := []string{" ", "/", "-", "."}
	years := []string{"2006", "06"}

	var fmts []string
	for _, mth := range months {
		for _, sep := range seps {
			for _, yr := range years {
				fmts = append(fmts, mth+sep+"2"+sep+yr)  // month-first: m sep d sep y
				fmts = append(fmts, "2"+sep+mth+sep+yr)  // day-first:   d sep m sep y
			}
		}
	}
	return fmts
}

func timeFormats() []string {
	type hourSpec struct {
		token      string
		allowsDiurnal bool
	}
	hours := []hourSpec{{"15", false}, {"3", true}}
	microseps := []string{"", ":000000", ".000000"}
	diurnals := []string{"", " PM"}

	var fmts []string
	for _, hrs := range hours {
		for _, micro := range microseps {
			for _, di := range diurnals {
				if di != "" && !hrs.allowsDiurnal {
					continue
				}
				fmts = append(fmts, hrs.token+":04:05"+micro+di)
			}
		}
	}
	return fmts
}

func datetimeFormats() []string {
	dates, times := dateFormats(), timeFormats()
	fmts := make([]string, 0, len(dates)*len(times))
	for _, d := range dates {
		for _, t := range times {
			fmts = append(fmts, d+" "+t)
		}
	}
	return fmts
}

// FindFormat returns the first catalogue entry that parses s exactly,
// or "" if none does. Catalogue order is part of the contract so that
// independent implementations agree on ties.
func FindFormat(s string, catalogue []string) string {
	for _, fmtStr := range catalogue {
		if _, err := time.Parse(fmtStr, s); err == nil {
			return fmtStr
		}
	}
	return ""
}
