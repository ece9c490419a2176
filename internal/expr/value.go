package expr

import (
	"strconv"
	"strings"

	"github.com/harrison/lsf/internal/scalar"
)

type valueKind int

const (
	kindBool valueKind = iota
	kindInt
	kindString
	kindScalar
	kindList
)

func (k valueKind) String() string {
	switch k {
	case kindBool:
		return "bool"
	case kindInt:
		return "int"
	case kindString:
		return "string"
	case kindScalar:
		return "scalar"
	case kindList:
		return "list"
	}
	return "?"
}

// Value is a field or literal value during evaluation.
type Value struct {
	kind valueKind
	b    bool
	n    int64
	s    string
	sc   scalar.Value
	list []Value
}

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: kindBool, b: b} }

// Int returns an integer Value.
func Int(n int64) Value { return Value{kind: kindInt, n: n} }

// String returns a string Value.
func String(s string) Value { return Value{kind: kindString, s: s} }

// Scalar returns a typed Value that compares against strings through its
// parser.
func Scalar(v scalar.Value) Value { return Value{kind: kindScalar, sc: v} }

func list(items []Value) Value { return Value{kind: kindList, list: items} }

// truthy follows the usual rules: zero, empty and false are false. Typed
// scalars are always true.
func (v Value) truthy() bool {
	switch v.kind {
	case kindBool:
		return v.b
	case kindInt:
		return v.n != 0
	case kindString:
		return v.s != ""
	case kindList:
		return len(v.list) > 0
	}
	return true
}

func (v Value) describe() string {
	switch v.kind {
	case kindBool:
		return strconv.FormatBool(v.b)
	case kindInt:
		return strconv.FormatInt(v.n, 10)
	case kindString:
		return strconv.Quote(v.s)
	case kindScalar:
		return v.sc.Kind.String() + "(" + strconv.FormatInt(v.sc.N, 10) + ")"
	case kindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.describe()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return "?"
}
