package store

import (
	"fmt"
	"strings"
)

// Filter restricts search candidates by their metadata. Every key must
// match (logical AND); a document missing a filter key is excluded.
type Filter map[string]condition

type condKind int

const (
	condExact condKind = iota
	condOneOf
	condOps
)

// condition is the compiled form of one filter value. The shape of the
// raw value decides the kind once, at construction, rather than being
// re-inspected for every candidate.
type condition struct {
	kind  condKind
	exact any
	oneOf []any

	gte, lte, gt, lt any
	in, nin          []any
}

// NewFilter compiles a filter specification. Each value is interpreted by
// shape: a map carrying $gte/$lte/$gt/$lt/$in/$nin operators, a plain list
// (membership), or a scalar (exact equality).
func NewFilter(spec map[string]any) (Filter, error) {
	f := make(Filter, len(spec))
	for key, value := range spec {
		cond, err := compileCondition(value)
		if err != nil {
			return nil, fmt.Errorf("filter key %q: %w", key, err)
		}
		f[key] = cond
	}
	return f, nil
}

func compileCondition(value any) (condition, error) {
	if ops, ok := value.(map[string]any); ok {
		cond := condition{kind: condOps}
		for op, operand := range ops {
			switch op {
			case "$gte":
				cond.gte = operand
			case "$lte":
				cond.lte = operand
			case "$gt":
				cond.gt = operand
			case "$lt":
				cond.lt = operand
			case "$in":
				list, ok := asList(operand)
				if !ok {
					return condition{}, fmt.Errorf("$in requires a list, got %T", operand)
				}
				cond.in = list
			case "$nin":
				list, ok := asList(operand)
				if !ok {
					return condition{}, fmt.Errorf("$nin requires a list, got %T", operand)
				}
				cond.nin = list
			default:
				return condition{}, fmt.Errorf("unknown filter operator: %q", op)
			}
		}
		return cond, nil
	}

	if list, ok := asList(value); ok {
		return condition{kind: condOneOf, oneOf: list}, nil
	}
	return condition{kind: condExact, exact: value}, nil
}

// Matches reports whether the document metadata satisfies every condition.
func (f Filter) Matches(metadata map[string]any) bool {
	for key, cond := range f {
		value, ok := metadata[key]
		if !ok {
			return false
		}
		if !cond.matches(value) {
			return false
		}
	}
	return true
}

func (c condition) matches(value any) bool {
	switch c.kind {
	case condExact:
		return valuesEqual(value, c.exact)
	case condOneOf:
		return containsValue(c.oneOf, value)
	case condOps:
		if c.gte != nil {
			if cmp, ok := compareValues(value, c.gte); !ok || cmp < 0 {
				return false
			}
		}
		if c.lte != nil {
			if cmp, ok := compareValues(value, c.lte); !ok || cmp > 0 {
				return false
			}
		}
		if c.gt != nil {
			if cmp, ok := compareValues(value, c.gt); !ok || cmp <= 0 {
				return false
			}
		}
		if c.lt != nil {
			if cmp, ok := compareValues(value, c.lt); !ok || cmp >= 0 {
				return false
			}
		}
		if c.in != nil && !containsValue(c.in, value) {
			return false
		}
		if c.nin != nil && containsValue(c.nin, value) {
			return false
		}
		return true
	}
	return false
}

// asList normalizes the slice shapes a filter can carry. JSON decoding
// yields []any; Go callers commonly pass typed slices.
func asList(v any) ([]any, bool) {
	switch list := v.(type) {
	case []any:
		return list, true
	case []string:
		out := make([]any, len(list))
		for i, item := range list {
			out[i] = item
		}
		return out, true
	case []int:
		out := make([]any, len(list))
		for i, item := range list {
			out[i] = item
		}
		return out, true
	case []float64:
		out := make([]any, len(list))
		for i, item := range list {
			out[i] = item
		}
		return out, true
	}
	return nil, false
}

// asNumber coerces the numeric kinds that survive YAML and JSON decoding.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func valuesEqual(a, b any) bool {
	if na, ok := asNumber(a); ok {
		nb, ok := asNumber(b)
		return ok && na == nb
	}
	return a == b
}

func containsValue(list []any, v any) bool {
	for _, item := range list {
		if valuesEqual(v, item) {
			return true
		}
	}
	return false
}

// compareValues orders two scalars: numerically when both coerce to a
// number, lexically when both are strings. Incomparable pairs fail the
// condition rather than matching by accident.
func compareValues(a, b any) (int, bool) {
	if na, ok := asNumber(a); ok {
		nb, ok := asNumber(b)
		if !ok {
			return 0, false
		}
		switch {
		case na < nb:
			return -1, true
		case na > nb:
			return 1, true
		}
		return 0, true
	}

	sa, okA := a.(string)
	sb, okB := b.(string)
	if okA && okB {
		return strings.Compare(sa, sb), true
	}
	return 0, false
}
