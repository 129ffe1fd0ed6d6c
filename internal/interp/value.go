package interp

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is any runtime value the interpreter produces or consumes: a
// number, a string, a boolean, void, a callable (function or class), or an
// instance. Go's `any` stands in for the tagged union described by the
// spec; stringify and truthy below recover the tag-specific behavior
// instead of a pervasive boxed-value type.
type Value = any

// Void is the sole representative of the void value. A Go `nil` stored in
// a Value is always this.
var Void Value = nil

// stringify renders v the way `print` does: numbers drop a trailing
// ".0", strings are printed bare, instances/functions/classes get a
// `<kind 'name'>` form.
func stringify(v Value) string {
	switch val := v.(type) {
	case nil:
		return "void"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		text := strconv.FormatFloat(val, 'f', -1, 64)
		return strings.TrimSuffix(text, ".0")
	case string:
		return val
	case *Instance:
		return fmt.Sprintf("<instance of '%s'>", val.Class.Name)
	case *Function:
		return fmt.Sprintf("<function '%s'>", val.name())
	case *Class:
		return fmt.Sprintf("<class '%s'>", val.Name)
	case *NativeFunction:
		return fmt.Sprintf("<function '%s'>", val.NameStr)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// truthy implements the language's truthiness rule: void and boolean
// false are falsey, everything else (including 0 and "") is truthy.
func truthy(v Value) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// valuesEqual implements structural, cross-kind-safe equality: values of
// different dynamic kinds are never equal, and NaN follows host float
// semantics (NaN != NaN).
func valuesEqual(a, b Value) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	default:
		return a == b
	}
}
