// Package tabconfig collects the module's configuration surface into one
// tagged struct, loadable from a YAML file and overlaid on built-in
// defaults.
package tabconfig

import (
	"os"

	"gopkg.in/yaml.v3"

	"tabbed/cell"
)

// SnifferOptions defines the sample window used for all structural
// decisions (dialect/header/metadata detection).
type SnifferOptions struct {
	Start  int   `json:"start,omitempty" yaml:"start,omitempty"`
	Amount int   `json:"amount,omitempty" yaml:"amount,omitempty"`
	Skips  []int `json:"skips,omitempty" yaml:"skips,omitempty"`
}

// DialectOptions overrides detection when it fails or disagrees with a
// known source format.
type DialectOptions struct {
	Delimiter string `json:"delimiter,omitempty" yaml:"delimiter,omitempty"`
	Quote     string `json:"quote,omitempty" yaml:"quote,omitempty"`
	Escape    string `json:"escape,omitempty" yaml:"escape,omitempty"`
	Strict    bool   `json:"strict,omitempty" yaml:"strict,omitempty"`
}

// ReadOptions is the full configuration surface for a reader, collecting
// every option named by the module's options table plus the candidate
// delimiter set used by dialect detection.
type ReadOptions struct {
	Start       int      `json:"start,omitempty" yaml:"start,omitempty"`
	Skips       []int    `json:"skips,omitempty" yaml:"skips,omitempty"`
	Indices     []int    `json:"indices,omitempty" yaml:"indices,omitempty"`
	ChunkSize   int      `json:"chunkSize,omitempty" yaml:"chunk_size,omitempty"`
	SkipEmpty   bool     `json:"skipEmpty" yaml:"skip_empty"`
	Poll        int      `json:"poll,omitempty" yaml:"poll,omitempty"`
	RaiseRagged bool           `json:"raiseRagged,omitempty" yaml:"raise_ragged,omitempty"`
	RaiseCast   bool           `json:"raiseCast,omitempty" yaml:"raise_cast,omitempty"`
	Candidates  string         `json:"candidates,omitempty" yaml:"candidates,omitempty"`
	Sniffer     SnifferOptions `json:"sniffer,omitempty" yaml:"sniffer,omitempty"`
	Dialect     DialectOptions `json:"dialect,omitempty" yaml:"dialect,omitempty"`
}

// defaultCandidates is the candidate delimiter set dialect detection
// scans when none is supplied explicitly.
const defaultCandidates = ",;|\t"

// defaultOptions defines the built-in defaults.
var defaultOptions = ReadOptions{
	ChunkSize:  200_000,
	SkipEmpty:  true,
	Poll:       5,
	Candidates: defaultCandidates,
}

// DefaultReadOptions returns a copy of the built-in defaults.
func DefaultReadOptions() ReadOptions {
	return defaultOptions
}

// Load reads a YAML file at path and layers it over the built-in
// defaults: defaults first, then only the keys present in the file are
// assigned over them. If the file does not exist or fails to parse,
// Load returns the defaults and the stat/parse error, letting the
// caller decide whether a missing config file is fatal.
func Load(path string) (ReadOptions, error) {
	opts := DefaultReadOptions()

	if _, err := os.Stat(path); err != nil {
		return opts, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return opts, err
	}

	var m map[string]any
	if err := yaml.Unmarshal(b, &m); err != nil {
		return opts, err
	}

	if v, ok := m["start"]; ok {
		if vi, oki := v.(int); oki {
			opts.Start = vi
		}
	}
	if v, ok := m["skips"]; ok {
		opts.Skips = toIntSlice(v)
	}
	if v, ok := m["indices"]; ok {
		opts.Indices = toIntSlice(v)
	}
	if v, ok := m["chunk_size"]; ok {
		if vi, oki := v.(int); oki {
			opts.ChunkSize = vi
		}
	}
	if v, ok := m["skip_empty"]; ok {
		if vb, okb := v.(bool); okb {
			opts.SkipEmpty = vb
		}
	}
	if v, ok := m["poll"]; ok {
		if vi, oki := v.(int); oki {
			opts.Poll = vi
		}
	}
	if v, ok := m["raise_ragged"]; ok {
		if vb, okb := v.(bool); okb {
			opts.RaiseRagged = vb
		}
	}
	if v, ok := m["raise_cast"]; ok {
		if vb, okb := v.(bool); okb {
			opts.RaiseCast = vb
		}
	}
	if v, ok := m["candidates"]; ok {
		if vs, oks := v.(string); oks {
			opts.Candidates = vs
		}
	}
	if v, ok := m["sniffer"]; ok {
		if sm, okm := v.(map[string]any); okm {
			if vi, oki := sm["start"].(int); oki {
				opts.Sniffer.Start = vi
			}
			if vi, oki := sm["amount"].(int); oki {
				opts.Sniffer.Amount = vi
			}
			if sv, oks := sm["skips"]; oks {
				opts.Sniffer.Skips = toIntSlice(sv)
			}
		}
	}
	if v, ok := m["dialect"]; ok {
		if dm, okm := v.(map[string]any); okm {
			if vs, oks := dm["delimiter"].(string); oks {
				opts.Dialect.Delimiter = vs
			}
			if vs, oks := dm["quote"].(string); oks {
				opts.Dialect.Quote = vs
			}
			if vs, oks := dm["escape"].(string); oks {
				opts.Dialect.Escape = vs
			}
			if vb, okb := dm["strict"].(bool); okb {
				opts.Dialect.Strict = vb
			}
		}
	}

	return opts, nil
}

func toIntSlice(v any) []int {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]int, 0, len(arr))
	for _, e := range arr {
		if vi, oki := e.(int); oki {
			out = append(out, vi)
		}
	}
	return out
}

// CandidateRunes parses the Candidates string into the rune slice
// dialect.Detect expects.
func (o ReadOptions) CandidateRunes() []rune {
	if o.Candidates == "" {
		return []rune(defaultCandidates)
	}
	return []rune(o.Candidates)
}

// TypecastHint adapts a column's configured cast override, if any, into
// a cell.Hint; present only to give SnifferOptions/ReadOptions callers a
// single conversion point rather than duplicating the Kind switch.
func TypecastHint(kind string) cell.Hint {
	switch kind {
	case "integer":
		return cell.Hint{Kind: cell.Integer}
	case "float":
		return cell.Hint{Kind: cell.Float}
	case "complex":
		return cell.Hint{Kind: cell.Complex}
	case "date":
		return cell.Hint{Kind: cell.Date}
	case "time":
		return cell.Hint{Kind: cell.Time}
	case "datetime":
		return cell.Hint{Kind: cell.DateTime}
	default:
		return cell.Hint{Kind: cell.Text}
	}
}
