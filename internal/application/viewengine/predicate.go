package viewengine

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// AllValue is the filter sentinel meaning "no filter".
const AllValue = "all"

// Predicate is a named, pure test over a record.
type Predicate struct {
	Name  string
	Match func(Record) bool
}

// Where wraps an arbitrary function as a Predicate.
// A nil fn never matches.
func Where(name string, fn func(Record) bool) Predicate {
	if fn == nil {
		fn = func(Record) bool { return false }
	}
	return Predicate{Name: name, Match: fn}
}

// TextMatch matches when the trimmed, case-insensitive term is a substring
// of the named fields' renderings joined with no separator, so a term may
// span adjacent fields. An empty term matches every record.
// PRE: none
// POST: unknown fields contribute no text
func TextMatch(fields []string, term string) Predicate {
	needle := strings.ToLower(strings.TrimSpace(term))
	names := append([]string(nil), fields...)
	return Predicate{
		Name: fmt.Sprintf("text(%s~%q)", strings.Join(names, ","), needle),
		Match: func(r Record) bool {
			if needle == "" {
				return true
			}
			var text strings.Builder
			for _, f := range names {
				text.WriteString(r.String(f))
			}
			return strings.Contains(strings.ToLower(text.String()), needle)
		},
	}
}

// FieldEquals matches records whose field strictly equals value.
// The string "all" matches everything.
// PRE: none
// POST: missing fields never match
func FieldEquals(field string, value any) Predicate {
	return Predicate{
		Name: fmt.Sprintf("%s=%v", field, value),
		Match: func(r Record) bool {
			if s, ok := value.(string); ok && s == AllValue {
				return true
			}
			v, ok := r.Get(field)
			if !ok {
				return false
			}
			return valuesEqual(v, value)
		},
	}
}

// FieldIn matches records whose field equals any of values.
// An empty values list, or one containing "all", matches everything.
func FieldIn(field string, values ...any) Predicate {
	vals := append([]any(nil), values...)
	return Predicate{
		Name: fmt.Sprintf("%s in %v", field, vals),
		Match: func(r Record) bool {
			if len(vals) == 0 {
				return true
			}
			v, ok := r.Get(field)
			for _, want := range vals {
				if s, isStr := want.(string); isStr && s == AllValue {
					return true
				}
				if ok && valuesEqual(v, want) {
					return true
				}
			}
			return false
		},
	}
}

// DateInRange matches when the field's instant lies in [start, end].
// A zero bound is open on that side.
// PRE: none
// POST: missing or unparsable dates never match
func DateInRange(field string, start, end time.Time) Predicate {
	return Predicate{
		Name: fmt.Sprintf("%s in [%s,%s]", field, FormatValue(start), FormatValue(end)),
		Match: func(r Record) bool {
			t, ok := r.Time(field)
			if !ok {
				return false
			}
			if !start.IsZero() && t.Before(start) {
				return false
			}
			if !end.IsZero() && t.After(end) {
				return false
			}
			return true
		},
	}
}

// NumberInRange matches when the numeric field lies in [min, max].
// Non-numeric values never match.
func NumberInRange(field string, min, max float64) Predicate {
	return Predicate{
		Name: fmt.Sprintf("%s in [%v,%v]", field, min, max),
		Match: func(r Record) bool {
			n, ok := r.Number(field)
			return ok && n >= min && n <= max
		},
	}
}

// Not inverts p.
func Not(p Predicate) Predicate {
	return Predicate{
		Name:  "not(" + p.Name + ")",
		Match: func(r Record) bool { return !p.matches(r) },
	}
}

// Any matches when at least one p matches (false for none).
func Any(ps ...Predicate) Predicate {
	list := append([]Predicate(nil), ps...)
	return Predicate{
		Name: "any" + names(list),
		Match: func(r Record) bool {
			for _, p := range list {
				if p.matches(r) {
					return true
				}
			}
			return false
		},
	}
}

// matches evaluates p, treating a nil Match as "no match".
func (p Predicate) matches(r Record) bool {
	if p.Match == nil {
		return false
	}
	return p.Match(r)
}

// matchAll short-circuits on the first failing predicate.
func matchAll(ps []Predicate, r Record) bool {
	for _, p := range ps {
		if !p.matches(r) {
			return false
		}
	}
	return true
}

func names(ps []Predicate) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.Name
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// valuesEqual is strict equality across the value kinds records carry:
// numbers compare numerically regardless of Go type, times by instant,
// everything else with == when the dynamic types match.
func valuesEqual(a, b any) bool {
	if isNumeric(a) && isNumeric(b) {
		x, _ := toNumber(a)
		y, _ := toNumber(b)
		return x == y
	}
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if !reflect.TypeOf(a).Comparable() {
		return false
	}
	return a == b
}
