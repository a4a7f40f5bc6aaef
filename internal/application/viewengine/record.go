package viewengine

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
	"time"
)

// IDField is the field name under which a record's ID is always readable.
const IDField = "id"

// Record is an immutable snapshot of an application entity.
// Fields are addressed by name; values are strings, numbers, bools,
// time.Time, or []Record for nested sub-collections.
// INVARIANT: the field map is never mutated after construction.
type Record struct {
	ID     string
	fields map[string]any
}

// NewRecord builds a Record from a copy of fields.
// PRE: none
// POST: returned record does not alias fields
func NewRecord(id string, fields map[string]any) Record {
	return Record{ID: id, fields: maps.Clone(fields)}
}

// Get returns the raw value of a field.
// PRE: none
// POST: ok is false when the field is absent or nil
func (r Record) Get(name string) (any, bool) {
	if name == IDField {
		return r.ID, r.ID != ""
	}
	v, ok := r.fields[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// String returns the field's display string, or "" if absent.
func (r Record) String(name string) string {
	v, ok := r.Get(name)
	if !ok {
		return ""
	}
	return FormatValue(v)
}

// Number returns the field as a float64.
// Numeric strings are accepted; anything else reports ok=false.
func (r Record) Number(name string) (float64, bool) {
	v, ok := r.Get(name)
	if !ok {
		return 0, false
	}
	return toNumber(v)
}

// Time returns the field parsed as an instant.
// Zero times and unparsable strings report ok=false.
func (r Record) Time(name string) (time.Time, bool) {
	v, ok := r.Get(name)
	if !ok {
		return time.Time{}, false
	}
	return ParseTime(v)
}

// Children returns a nested sub-collection, or nil.
func (r Record) Children(name string) []Record {
	v, ok := r.Get(name)
	if !ok {
		return nil
	}
	children, _ := v.([]Record)
	return children
}

// Fields returns a copy of the record's field map (without the ID).
func (r Record) Fields() map[string]any {
	return maps.Clone(r.fields)
}

// FormatValue renders a field value as display text.
// Times render as YYYY-MM-DD when they fall on midnight, RFC3339 otherwise.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		if x.IsZero() {
			return ""
		}
		if IsDateOnly(x) {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.RFC3339)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(x)
	case []Record:
		return ""
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// toNumber converts any Go numeric type, or a numeric string, to float64.
func toNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// isNumeric reports whether v holds a Go numeric type (strings excluded).
func isNumeric(v any) bool {
	if _, ok := v.(string); ok {
		return false
	}
	_, ok := toNumber(v)
	return ok
}

// timeLayouts are tried in order when parsing string dates.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateTime,
	"2006-01-02 15:04",
	time.DateOnly,
}

// IsDateOnly reports whether t carries only a calendar date: midnight UTC,
// which is what date-only strings parse to and how loaders store whole days.
func IsDateOnly(t time.Time) bool {
	if t.Location() != time.UTC {
		return false
	}
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

// ParseTime parses a field value into an instant.
// PRE: none
// POST: ok is false for zero times, empty strings and unknown layouts
func ParseTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, !x.IsZero()
	case *time.Time:
		if x == nil || x.IsZero() {
			return time.Time{}, false
		}
		return *x, true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
