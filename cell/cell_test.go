package cell

import (
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Kind
	}{
		{"integer", "42", Integer},
		{"negative integer", "-7", Integer},
		{"float", "3.14", Float},
		{"scientific notation", "1e10", Float},
		{"complex", "1+2j", Complex},
		{"date", "08/23/1917", Date},
		{"time", "11:03:29", Time},
		{"datetime", "08/23/1917 11:03:29", DateTime},
		{"text", "red", Text},
		{"dash placeholder", "-", Text},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.in); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCrossKindNumericComparison(t *testing.T) {
	if !OfFloat(4.0).Equal(OfInt(4)) {
		t.Error("expected Float(4.0) to equal Integer(4)")
	}
	if !OfInt(4).Equal(OfFloat(4.0)) {
		t.Error("expected Integer(4) to equal Float(4.0)")
	}
	if OfFloat(4.5).Equal(OfInt(4)) {
		t.Error("expected Float(4.5) not to equal Integer(4)")
	}
	if !OfFloat(3.2).Less(OfInt(10)) {
		t.Error("expected Float(3.2) < Integer(10)")
	}
	if !OfInt(0).Less(OfFloat(0.5)) {
		t.Error("expected Integer(0) < Float(0.5)")
	}
	if OfText("4").Equal(OfInt(4)) {
		t.Error("expected Text(\"4\") not to equal Integer(4) without an explicit Convert")
	}
	if OfComplex(complex(4, 0)).Less(OfInt(10)) {
		t.Error("expected Complex to never be Orderable-comparable")
	}
}

func TestConvertFallsBackSilently(t *testing.T) {
	hint := &Hint{Kind: Integer}
	c := Convert("-", hint)
	if c.Kind != Text || c.Txt != "-" {
		t.Errorf("Convert(\"-\", integer hint) = %+v, want Text(\"-\")", c)
	}
}

func TestConvertHintFastPath(t *testing.T) {
	fmtStr := FindFormat("08/23/1917 11:03:29", DateTimeFormats())
	if fmtStr == "" {
		t.Fatal("expected to find a datetime format for fixture string")
	}
	hint := &Hint{Kind: DateTime, Format: fmtStr}
	c := Convert("08/23/1917 11:03:30", hint)
	if c.Kind != DateTime {
		t.Errorf("Convert with datetime hint produced Kind=%v, want DateTime", c.Kind)
	}
}

func TestDateFormatsCatalogueSize(t *testing.T) {
	if n := len(DateFormats()); n != 48 {
		t.Errorf("len(DateFormats()) = %d, want 48", n)
	}
}

func TestRoundTripDateTime(t *testing.T) {
	fixture := time.Date(1917, time.August, 23, 11, 3, 29, 0, time.UTC)
	for _, fmtStr := range DateTimeFormats()[:6] {
		rendered := fixture.Format(fmtStr)
		reparsed, err := time.Parse(fmtStr, rendered)
		if err != nil {
			t.Fatalf("format %q: time.Parse(%q) failed: %v", fmtStr, rendered, err)
		}
		c := Convert(rendered, &Hint{Kind: DateTime, Format: fmtStr})
		if c.Kind != DateTime || !c.Tm.Equal(reparsed) {
			t.Errorf("round trip for format %q: rendered=%q got=%+v", fmtStr, rendered, c)
		}
	}
}
