package vectorstore

import (
	"reflect"
	"strings"
)

// matchesFilter evaluates a metadata filter against a document. An
// empty filter matches everything. Every field condition must hold.
func matchesFilter(doc Document, filter Filter) bool {
	if len(filter) == 0 {
		return true
	}
	for field, cond := range filter {
		value, present := doc.Metadata[field]
		if !matchesCondition(value, present, cond) {
			return false
		}
	}
	return true
}

func matchesCondition(value any, present bool, cond any) bool {
	ops, ok := cond.(map[string]any)
	if !ok {
		// Bare value means equality.
		return present && equal(value, cond)
	}
	for op, operand := range ops {
		if !applyOperator(value, present, op, operand) {
			return false
		}
	}
	return true
}

func applyOperator(value any, present bool, op string, operand any) bool {
	switch op {
	case "$eq":
		return present && equal(value, operand)
	case "$ne":
		return !present || !equal(value, operand)
	case "$gt":
		return present && compareNumeric(value, operand, func(a, b float64) bool { return a > b })
	case "$gte":
		return present && compareNumeric(value, operand, func(a, b float64) bool { return a >= b })
	case "$lt":
		return present && compareNumeric(value, operand, func(a, b float64) bool { return a < b })
	case "$lte":
		return present && compareNumeric(value, operand, func(a, b float64) bool { return a <= b })
	case "$in":
		return present && containsValue(operand, value)
	case "$nin":
		return !present || !containsValue(operand, value)
	case "$exists":
		want, _ := operand.(bool)
		return present == want
	case "$contains":
		return present && contains(value, operand)
	case "$all":
		return present && containsAll(value, operand)
	case "$textSearch":
		text, tok := value.(string)
		needle, nok := operand.(string)
		return present && tok && nok &&
			strings.Contains(strings.ToLower(text), strings.ToLower(needle))
	default:
		// Unknown operators never match; surfacing a typo as an empty
		// result beats silently matching everything.
		return false
	}
}

// equal compares values, treating all numeric types as comparable.
func equal(a, b any) bool {
	if af, aok := toFloat(a); aok {
		bf, bok := toFloat(b)
		return bok && af == bf
	}
	return reflect.DeepEqual(a, b)
}

func compareNumeric(a, b any, cmp func(a, b float64) bool) bool {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	return aok && bok && cmp(af, bf)
}

func toFloat(v any) (float64, bool) {
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
	default:
		return 0, false
	}
}

// containsValue reports whether the list operand contains the value.
func containsValue(operand, value any) bool {
	items := toSlice(operand)
	for _, item := range items {
		if equal(value, item) {
			return true
		}
	}
	return false
}

// contains reports substring match for strings and membership for
// slices.
func contains(value, operand any) bool {
	if s, ok := value.(string); ok {
		needle, nok := operand.(string)
		return nok && strings.Contains(s, needle)
	}
	for _, item := range toSlice(value) {
		if equal(item, operand) {
			return true
		}
	}
	return false
}

// containsAll reports whether the slice value contains every operand
// item.
func containsAll(value, operand any) bool {
	items := toSlice(value)
	for _, want := range toSlice(operand) {
		found := false
		for _, item := range items {
			if equal(item, want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func toSlice(v any) []any {
	switch s := v.(type) {
	case []any:
		return s
	case []string:
		out := make([]any, len(s))
		for i, item := range s {
			out[i] = item
		}
		return out
	default:
		return nil
	}
}
