package table

import (
	"strconv"
	"strings"
)

// Op is a criterion operator.
type Op string

const (
	OpEq       Op = "eq"       // exact string match
	OpRange    Op = "range"    // inclusive numeric bounds, either optional
	OpContains Op = "contains" // case-insensitive substring
	OpSearch   Op = "search"   // contains on any of Fields
)

// Criterion is one field-level constraint. A criterion whose value (or both
// bounds) is empty constrains nothing.
type Criterion struct {
	Field  string   `json:"field,omitempty"`
	Op     Op       `json:"op"`
	Value  string   `json:"value,omitempty"`
	Min    string   `json:"min,omitempty"`
	Max    string   `json:"max,omitempty"`
	Fields []string `json:"fields,omitempty"`
}

func Eq(field, value string) Criterion {
	return Criterion{Field: field, Op: OpEq, Value: value}
}

func Range(field, min, max string) Criterion {
	return Criterion{Field: field, Op: OpRange, Min: min, Max: max}
}

func Contains(field, value string) Criterion {
	return Criterion{Field: field, Op: OpContains, Value: value}
}

// Search matches when value is contained in any of fields.
func Search(value string, fields ...string) Criterion {
	return Criterion{Op: OpSearch, Value: value, Fields: fields}
}

// Vacuous reports whether the criterion holds for every record.
func (c Criterion) Vacuous() bool {
	switch c.Op {
	case OpRange:
		_, hasMin := parseBound(c.Min)
		_, hasMax := parseBound(c.Max)
		return !hasMin && !hasMax
	case OpSearch:
		return strings.TrimSpace(c.Value) == "" || len(c.Fields) == 0
	case OpEq, OpContains:
		return strings.TrimSpace(c.Value) == ""
	}
	// unknown operators never constrain
	return true
}

// Match evaluates the criterion against r.
func (c Criterion) Match(r Record) bool {
	if c.Vacuous() {
		return true
	}
	switch c.Op {
	case OpEq:
		v, ok := r.FieldValue(c.Field)
		return ok && Text(v) == strings.TrimSpace(c.Value)
	case OpContains:
		v, ok := r.FieldValue(c.Field)
		return ok && containsFold(Text(v), c.Value)
	case OpSearch:
		for _, f := range c.Fields {
			if v, ok := r.FieldValue(f); ok && containsFold(Text(v), c.Value) {
				return true
			}
		}
		return false
	case OpRange:
		v, ok := r.FieldValue(c.Field)
		if !ok {
			return false
		}
		n, ok := Number(v)
		if !ok {
			return false
		}
		if min, ok := parseBound(c.Min); ok && n < min {
			return false
		}
		if max, ok := parseBound(c.Max); ok && n > max {
			return false
		}
		return true
	}
	return true
}

// Predicate decides whether a record stays in the result.
type Predicate func(Record) bool

// Compose AND-combines criteria; vacuous criteria are dropped first, so an
// empty or all-vacuous set matches everything.
func Compose(criteria ...Criterion) Predicate {
	active := make([]Criterion, 0, len(criteria))
	for _, c := range criteria {
		if !c.Vacuous() {
			active = append(active, c)
		}
	}
	return func(r Record) bool {
		for _, c := range active {
			if !c.Match(r) {
				return false
			}
		}
		return true
	}
}

// Filter returns the subsequence of records matching every criterion.
func Filter[T Record](records []T, criteria ...Criterion) []T {
	pred := Compose(criteria...)
	out := make([]T, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

func parseBound(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(sub)))
}
