// Package table is the filtering, sorting, paging and selection engine shared
// by the public vehicle search and the admin data tables.
//
// Everything here works on Record values and returns new slices; nothing
// mutates its input, so the same functions back both HTTP handlers and the
// client-side view state.
package table

import (
	"strconv"
	"strings"
)

// Record is a uniquely identified row whose fields are addressed by their
// JSON names.
type Record interface {
	RecordID() string
	FieldValue(name string) (any, bool)
}

// IDs returns the identifiers of records in order.
func IDs[T Record](records []T) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.RecordID())
	}
	return out
}

// Number reports the numeric value of v when v holds a Go number.
// Strings are never numeric, even when they look like one.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// Text renders a field value the way it is compared and exported.
func Text(v any) string {
	if v == nil {
		return ""
	}
	if n, ok := Number(v); ok {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case []string:
		return strings.Join(t, ", ")
	case interface{ String() string }:
		return t.String()
	}
	return ""
}
