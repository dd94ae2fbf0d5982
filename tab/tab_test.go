package tab

import (
	"regexp"
	"testing"

	"tabbed/cell"
)

func rowOf(name string, v cell.Cell) Row {
	row := NewRow(1)
	row.Set(name, v)
	return row
}

func TestCompoundComparisonKeepsExpectedRows(t *testing.T) {
	header := []string{"count"}
	tb := New(header)
	if err := FromKeywords(tb, map[string]any{"count": ">=4 and <18"}, true); err != nil {
		t.Fatal(err)
	}

	counts := []int64{22, 2, 13, 15, 4, 19, 4, 21, 5, 24, 18, 1}
	var kept []int
	for i, c := range counts {
		row := rowOf("count", cell.OfInt(c))
		if _, ok := tb.Apply(row); ok {
			kept = append(kept, i)
		}
	}

	want := []int{2, 3, 4, 6, 8}
	if len(kept) != len(want) {
		t.Fatalf("kept = %v, want %v", kept, want)
	}
	for i := range want {
		if kept[i] != want[i] {
			t.Errorf("kept = %v, want %v", kept, want)
			break
		}
	}
}

func TestCompoundComparisonOrJoiner(t *testing.T) {
	header := []string{"count"}
	tb := New(header)
	if err := FromKeywords(tb, map[string]any{"count": "<5 or >95"}, true); err != nil {
		t.Fatal(err)
	}
	for _, tc := range []struct {
		v    int64
		want bool
	}{
		{1, true},
		{50, false},
		{99, true},
	} {
		_, ok := tb.Apply(rowOf("count", cell.OfInt(tc.v)))
		if ok != tc.want {
			t.Errorf("count=%d: ok=%v, want %v", tc.v, ok, tc.want)
		}
	}
}

func TestTooManyComparisonsRejected(t *testing.T) {
	_, err := NewComparison("count", ">=1 and <10 and >0", true)
	if err == nil {
		t.Fatal("expected an error for a triple comparison")
	}
}

func TestRegexProjectionOrder(t *testing.T) {
	header := []string{"oranges", "pears", "peaches", "plums"}
	tb := New(header)
	pattern := regexp.MustCompile(`^pe`)
	if err := tb.SetColumnsByRegex(pattern); err != nil {
		t.Fatal(err)
	}
	want := []string{"pears", "peaches"}
	got := tb.Columns()
	if len(got) != len(want) {
		t.Fatalf("columns = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("columns = %v, want %v", got, want)
			break
		}
	}
}

func TestEqualityMatchesParsedKeywordForm(t *testing.T) {
	header := []string{"count"}
	tb := New(header)
	if err := FromKeywords(tb, map[string]any{"count": "4"}, true); err != nil {
		t.Fatal(err)
	}
	if _, ok := tb.Apply(rowOf("count", cell.OfInt(4))); !ok {
		t.Error("expected count=4 keyword to match an integer cell 4")
	}
	if _, ok := tb.Apply(rowOf("count", cell.OfInt(5))); ok {
		t.Error("expected count=4 keyword not to match an integer cell 5")
	}
}

func TestMembershipTab(t *testing.T) {
	header := []string{"fruit"}
	tb := New(header)
	if err := FromKeywords(tb, map[string]any{"fruit": []any{"apple", "pear"}}, true); err != nil {
		t.Fatal(err)
	}
	if _, ok := tb.Apply(rowOf("fruit", cell.OfText("pear"))); !ok {
		t.Error("expected pear to be a member")
	}
	if _, ok := tb.Apply(rowOf("fruit", cell.OfText("plum"))); ok {
		t.Error("expected plum not to be a member")
	}
}

func TestApplyPreservesProjectionOrderOnRow(t *testing.T) {
	header := []string{"oranges", "pears", "peaches", "plums"}
	tb := New(header)
	if err := tb.SetColumns([]string{"plums", "oranges", "peaches"}); err != nil {
		t.Fatal(err)
	}

	in := NewRow(len(header))
	for _, name := range header {
		in.Set(name, cell.OfText(name))
	}

	out, ok := tb.Apply(in)
	if !ok {
		t.Fatal("expected row to be kept")
	}
	want := []string{"plums", "oranges", "peaches"}
	if len(out.Names) != len(want) {
		t.Fatalf("row names = %v, want %v", out.Names, want)
	}
	for i := range want {
		if out.Names[i] != want[i] {
			t.Errorf("row names = %v, want %v", out.Names, want)
			break
		}
	}
}

func TestRejectUnknownColumn(t *testing.T) {
	header := []string{"count"}
	tb := New(header)
	err := FromKeywords(tb, map[string]any{"missing": "1"}, true)
	if err == nil {
		t.Fatal("expected an error for a predicate on a column not in the header")
	}
}
