package dialect

import "testing"

func TestDetectCommaDelimited(t *testing.T) {
	sample := "a,b,c\n1,2,3\n4,5,6\n"
	d, ok := Detect(sample, nil)
	if !ok {
		t.Fatal("expected detection to succeed")
	}
	if d.Delimiter != ',' {
		t.Errorf("delimiter = %q, want ','", d.Delimiter)
	}
}

func TestDetectPrefersMostConsistentCandidate(t *testing.T) {
	// Semicolons split every line into 3 consistent fields; commas only
	// appear inside one field's decimal, which is less consistent.
	sample := "name;count;area\nfoo;1;3.5\nbar;2;1,5\n"
	d, ok := Detect(sample, nil)
	if !ok {
		t.Fatal("expected detection to succeed")
	}
	if d.Delimiter != ';' {
		t.Errorf("delimiter = %q, want ';'", d.Delimiter)
	}
}

func TestDetectFailsOnSingleColumn(t *testing.T) {
	sample := "onlyvalue\nanothervalue\n"
	_, ok := Detect(sample, []rune{',', ';'})
	if ok {
		t.Error("expected detection to fail when no candidate yields >=2 fields")
	}
}

func TestHasEscapeNormalisesEmpty(t *testing.T) {
	d := New(',', '"', 0, false)
	if d.HasEscape() {
		t.Error("expected zero-rune escape to mean no escape")
	}
	d2 := New(',', '"', '\\', false)
	if !d2.HasEscape() {
		t.Error("expected a non-zero escape rune to report HasEscape")
	}
}
