package viewengine

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// SortKind selects how a SortKey compares field values.
type SortKind uint8

const (
	// SortAuto compares numbers numerically, times by instant, strings
	// case-insensitively, and bools false-before-true.
	SortAuto SortKind = iota
	SortString
	SortNumber
	// SortDate parses both values to instants before comparing.
	SortDate
)

// SortKey orders records by one field.
// Compare, when set, replaces the Kind-based comparison of present values.
type SortKey struct {
	Field   string
	Desc    bool
	Kind    SortKind
	Compare func(a, b any) int
}

// Asc sorts field ascending with automatic comparison.
func Asc(field string) SortKey { return SortKey{Field: field} }

// Desc sorts field descending with automatic comparison.
func Desc(field string) SortKey { return SortKey{Field: field, Desc: true} }

// DateAsc sorts field ascending by parsed instant.
func DateAsc(field string) SortKey { return SortKey{Field: field, Kind: SortDate} }

// DateDesc sorts field descending by parsed instant.
func DateDesc(field string) SortKey { return SortKey{Field: field, Desc: true, Kind: SortDate} }

// NumberAsc sorts field ascending numerically.
func NumberAsc(field string) SortKey { return SortKey{Field: field, Kind: SortNumber} }

// NumberDesc sorts field descending numerically.
func NumberDesc(field string) SortKey { return SortKey{Field: field, Desc: true, Kind: SortNumber} }

// CompareBy returns a comparator applying keys in order, each breaking the
// previous key's ties. Values the key cannot interpret sort after
// interpretable ones regardless of direction.
// PRE: none
// POST: comparator follows the cmp.Compare sign convention
func CompareBy(keys ...SortKey) func(a, b Record) int {
	list := append([]SortKey(nil), keys...)
	return func(a, b Record) int {
		for _, k := range list {
			if c := k.compare(a, b); c != 0 {
				return c
			}
		}
		return 0
	}
}

// SortRecords returns a stably sorted copy of records.
// PRE: none
// POST: input slice is untouched; equal records keep their relative order
func SortRecords(records []Record, keys ...SortKey) []Record {
	out := slices.Clone(records)
	if len(keys) == 0 {
		return out
	}
	slices.SortStableFunc(out, CompareBy(keys...))
	return out
}

func (k SortKey) compare(a, b Record) int {
	av, aok := k.extract(a)
	bv, bok := k.extract(b)
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	}
	var c int
	if k.Compare != nil {
		c = k.Compare(av, bv)
	} else {
		c = compareValues(k.Kind, av, bv)
	}
	if k.Desc {
		return -c
	}
	return c
}

// extract reads the field and reports whether it is usable for this key's kind.
func (k SortKey) extract(r Record) (any, bool) {
	v, ok := r.Get(k.Field)
	if !ok {
		return nil, false
	}
	if k.Compare != nil {
		return v, true
	}
	switch k.Kind {
	case SortDate:
		t, ok := ParseTime(v)
		return t, ok
	case SortNumber:
		n, ok := toNumber(v)
		return n, ok
	case SortString:
		return FormatValue(v), true
	}
	return v, true
}

func compareValues(kind SortKind, a, b any) int {
	switch kind {
	case SortDate:
		ta, _ := ParseTime(a)
		tb, _ := ParseTime(b)
		return ta.Compare(tb)
	case SortNumber:
		x, _ := toNumber(a)
		y, _ := toNumber(b)
		return cmp.Compare(x, y)
	case SortString:
		return compareStrings(FormatValue(a), FormatValue(b))
	}
	return compareAuto(a, b)
}

func compareAuto(a, b any) int {
	if isNumeric(a) && isNumeric(b) {
		x, _ := toNumber(a)
		y, _ := toNumber(b)
		return cmp.Compare(x, y)
	}
	_, aTime := a.(time.Time)
	_, bTime := b.(time.Time)
	if aTime || bTime {
		// A time against a date string compares as instants when both parse.
		x, xok := ParseTime(a)
		y, yok := ParseTime(b)
		if xok && yok {
			return x.Compare(y)
		}
	}
	if x, ok := a.(bool); ok {
		if y, ok := b.(bool); ok {
			return compareBools(x, y)
		}
	}
	return compareStrings(FormatValue(a), FormatValue(b))
}

func compareStrings(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func compareBools(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	}
	return 1
}
