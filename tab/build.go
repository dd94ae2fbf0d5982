package tab

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"tabbed/cell"
)

var comparisonOperators = []string{"<=", ">=", "==", "!=", "<", ">"}

func looksLikeComparison(s string) bool {
	for _, op := range comparisonOperators {
		if strings.Contains(s, op) {
			return true
		}
	}
	return false
}

// FromKeywords builds row predicates for a Tabulator from a set of
// name -> value keyword arguments: a comparison-operator string
// becomes Comparison, a bare Cell-compatible scalar becomes Equality
// (going through the cell parser so a stringed numeric keyword matches
// a numeric cell), a slice becomes Membership, a compiled regex
// becomes Regex, and a (Row, string) bool func becomes Calling. strict
// controls Comparison's cross-Kind fallback.
func FromKeywords(t *Tabulator, predicates map[string]any, strict bool) error {
	for name, value := range predicates {
		tb, err := buildTab(name, value, strict)
		if err != nil {
			return err
		}
		if err := t.AddTab(tb); err != nil {
			return err
		}
	}
	return nil
}

func buildTab(column string, value any, strict bool) (Tab, error) {
	switch v := value.(type) {
	case string:
		if looksLikeComparison(v) {
			return NewComparison(column, v, strict)
		}
		return NewEquality(column, cell.Convert(v, nil)), nil
	case *regexp.Regexp:
		return NewRegex(column, v), nil
	case func(Row, string) bool:
		return NewCalling(column, v), nil
	case []any:
		set := make([]cell.Cell, 0, len(v))
		for _, item := range v {
			c, err := nativeCell(item)
			if err != nil {
				return nil, fmt.Errorf("tab: column %q: %w", column, err)
			}
			set = append(set, c)
		}
		return NewMembership(column, set), nil
	default:
		c, err := nativeCell(value)
		if err != nil {
			return nil, fmt.Errorf("tab: unsupported predicate value for column %q: %T", column, value)
		}
		return NewEquality(column, c), nil
	}
}

// nativeCell converts a Go-native scalar directly into a Cell, without
// going through the string parser (used for Equality/Membership
// values supplied as real Go types rather than raw field strings).
func nativeCell(v any) (cell.Cell, error) {
	switch x := v.(type) {
	case string:
		return cell.Convert(x, nil), nil
	case int:
		return cell.OfInt(int64(x)), nil
	case int64:
		return cell.OfInt(x), nil
	case float64:
		return cell.OfFloat(x), nil
	case complex128:
		return cell.OfComplex(x), nil
	case time.Time:
		return cell.OfDateTime(x), nil
	default:
		return cell.Cell{}, fmt.Errorf("unsupported value type %T", v)
	}
}
