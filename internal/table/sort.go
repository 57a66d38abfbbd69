package table

import (
	"cmp"
	"slices"
	"strings"
)

// Direction is asc or desc.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection accepts asc/desc and their long forms; anything else is asc.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "desc", "descending":
		return Desc
	}
	return Asc
}

// SortSpec orders by a single field. An empty Field keeps input order.
type SortSpec struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// By is shorthand for a SortSpec.
func By(field string, dir Direction) SortSpec {
	return SortSpec{Field: field, Direction: dir}
}

// Compare orders two field values: numerically when both are numbers,
// otherwise as case-sensitive strings.
func Compare(a, b any) int {
	na, aok := Number(a)
	nb, bok := Number(b)
	if aok && bok {
		return cmp.Compare(na, nb)
	}
	return strings.Compare(Text(a), Text(b))
}

// Sort returns a stably ordered copy of records. Descending negates the
// comparator rather than reversing the ascending result, so ties keep their
// input order in both directions.
func Sort[T Record](records []T, spec SortSpec) []T {
	out := slices.Clone(records)
	if spec.Field == "" {
		return out
	}
	sign := 1
	if spec.Direction == Desc {
		sign = -1
	}
	slices.SortStableFunc(out, func(a, b T) int {
		av, _ := a.FieldValue(spec.Field)
		bv, _ := b.FieldValue(spec.Field)
		return sign * Compare(av, bv)
	})
	return out
}
