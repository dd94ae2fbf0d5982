package sniffer

import (
	"io"
	"testing"
)

// memSource is an in-memory LineSource for tests.
type memSource struct {
	lines []string
	pos   int
}

func newMemSource(lines []string) *memSource {
	return &memSource{lines: lines}
}

func (m *memSource) ReadLine() (string, error) {
	if m.pos >= len(m.lines) {
		return "", io.EOF
	}
	line := m.lines[m.pos]
	m.pos++
	return line, nil
}

func (m *memSource) Rewind() error {
	m.pos = 0
	return nil
}

func (m *memSource) LineCount() (int, error) {
	return len(m.lines), nil
}

func TestHeaderCaseA(t *testing.T) {
	// Scientific-dump shape: non-numeric header row, numeric data below.
	lines := []string{
		"# instrument dump",
		"group,count,area",
		"a,1,2.5",
		"b,2,3.5",
		"c,3,4.5",
	}
	s, err := New(newMemSource(lines))
	if err != nil {
		t.Fatal(err)
	}
	h := s.Header(',')
	if h.Line == nil {
		t.Fatal("expected a header line, got none")
	}
	if *h.Line != 1 {
		t.Errorf("header line = %d, want 1", *h.Line)
	}
	want := []string{"group", "count", "area"}
	for i, name := range want {
		if h.Names[i] != name {
			t.Errorf("header name[%d] = %q, want %q", i, h.Names[i], name)
		}
	}
}

func TestHeaderCaseBDisjoint(t *testing.T) {
	// Log-export shape: all-string rows, header names never recur below.
	lines := []string{
		"host,status,message",
		"web1,ok,started",
		"web1,fail,timeout",
		"web1,ok,started",
		"web1,fail,timeout",
	}
	s, err := New(newMemSource(lines))
	if err != nil {
		t.Fatal(err)
	}
	h := s.Header(',')
	if h.Line == nil {
		t.Fatal("expected a header line, got none")
	}
	if *h.Line != 0 {
		t.Errorf("header line = %d, want 0", *h.Line)
	}
}

func TestHeaderSynthesizedWhenNoneFound(t *testing.T) {
	lines := []string{
		"a,b,c",
		"a,b,c",
		"a,b,c",
	}
	s, err := New(newMemSource(lines))
	if err != nil {
		t.Fatal(err)
	}
	h := s.Header(',')
	if h.Line != nil {
		t.Errorf("expected no header line, got %d", *h.Line)
	}
	if len(h.Names) != 3 || h.Names[0] != "Column_0" {
		t.Errorf("expected synthesized names, got %v", h.Names)
	}
}

func TestMetadataFollowsHeader(t *testing.T) {
	lines := []string{
		"meta line 1",
		"meta line 2",
		"group,count,area",
		"a,1,2.5",
	}
	s, err := New(newMemSource(lines))
	if err != nil {
		t.Fatal(err)
	}
	h := s.Header(',')
	m := s.Metadata(h, ',')
	if m.End == nil || *m.End != 1 {
		if m.End == nil {
			t.Fatalf("expected metadata end = 1, got nil")
		}
		t.Errorf("metadata end = %d, want 1", *m.End)
	}
}

func TestResampleClampsStart(t *testing.T) {
	lines := []string{"a", "b", "c"}
	s, err := New(newMemSource(lines))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetStart(100); err != nil {
		t.Fatal(err)
	}
	if s.Start() != len(lines)-1 {
		t.Errorf("start = %d, want %d", s.Start(), len(lines)-1)
	}
}

func TestTypesMostCommon(t *testing.T) {
	lines := []string{
		"group,count,area",
		"a,1,2.5",
		"b,2,3.5",
		"c,3,4.5",
		"d,4,text",
		"e,5,5.5",
	}
	s, err := New(newMemSource(lines))
	if err != nil {
		t.Fatal(err)
	}
	types, inconsistent := s.Types(5)
	if len(types) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(types))
	}
	if !inconsistent {
		t.Errorf("expected inconsistent=true since one area value is text")
	}
}

func TestSampleResampleDeterminism(t *testing.T) {
	lines := []string{"a,1", "b,2", "c,3"}
	s1, _ := New(newMemSource(lines))
	s2, _ := New(newMemSource(lines))
	if s1.Sample().ContentSum != s2.Sample().ContentSum {
		t.Errorf("expected identical content sums for identical input")
	}
}
