package sniffer

import "strings"

// Rows splits the sample's lines into field lists using delimiter (or
// this Sniffer's detected Dialect delimiter if delimiter is zero),
// stripping a trailing delimiter and double-quote characters from
// each field.
func (s *Sniffer) Rows(delimiter rune) [][]string {
	if delimiter == 0 {
		delimiter = s.dialect.Delimiter
	}
	out := make([][]string, len(s.sample.Lines))
	for i, line := range s.sample.Lines {
		out[i] = splitRow(line, delimiter)
	}
	return out
}

func splitRow(line string, delimiter rune) []string {
	line = strings.TrimSuffix(line, string(delimiter))
	fields := strings.Split(line, string(delimiter))
	for i, f := range fields {
		fields[i] = strings.ReplaceAll(f, `"`, "")
	}
	return fields
}
