// Package scalar implements the typed attribute values lsf compares against
// user input: timestamps, user and group identities, and byte sizes.
//
// A Value holds the canonical integer form of an attribute together with its
// Kind. Comparisons accept either another integer or a human-entered string
// ("2w", "Jul 4 2014", "root", "10k"); strings are converted by the Kind's
// parser before the integers are compared, never compared lexically.
//
// Parsing and name lookups are memoized in a Session, which lives for one
// run of the tool:
//
//	sess := scalar.NewSession()
//	ok, err := sess.Compare(scalar.Size(2048), scalar.OpEQ, scalar.Text("2k"))
package scalar

import (
	"fmt"
	"strconv"
)

// Kind identifies which parser and formatter a Value uses.
type Kind int

const (
	// KindTime is a unix timestamp in seconds.
	KindTime Kind = iota
	// KindUser is a numeric user id.
	KindUser
	// KindGroup is a numeric group id.
	KindGroup
	// KindSize is a byte count.
	KindSize
)

// String returns the name used in "is not a valid ..." messages.
func (k Kind) String() string {
	switch k {
	case KindTime:
		return "DATETIME"
	case KindUser:
		return "username or UID"
	case KindGroup:
		return "group name or GID"
	case KindSize:
		return "FILESIZE"
	default:
		return "value"
	}
}

// Value is a canonical attribute value tagged with its Kind.
type Value struct {
	Kind Kind
	N    int64
}

// Time wraps a unix timestamp.
func Time(unix int64) Value { return Value{Kind: KindTime, N: unix} }

// User wraps a user id.
func User(uid uint32) Value { return Value{Kind: KindUser, N: int64(uid)} }

// Group wraps a group id.
func Group(gid uint32) Value { return Value{Kind: KindGroup, N: int64(gid)} }

// Size wraps a byte count.
func Size(n int64) Value { return Value{Kind: KindSize, N: n} }

// Op is a relational operator.
type Op int

const (
	OpLT Op = iota
	OpLE
	OpGT
	OpGE
	OpEQ
	OpNE
)

var opSymbols = [...]string{"<", "<=", ">", ">=", "==", "!="}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opSymbols) {
		return "?"
	}
	return opSymbols[o]
}

// ParseOp maps an operator symbol to an Op.
func ParseOp(symbol string) (Op, bool) {
	for i, s := range opSymbols {
		if s == symbol {
			return Op(i), true
		}
	}
	return 0, false
}

// Apply evaluates a <op> b.
func (o Op) Apply(a, b int64) bool {
	switch o {
	case OpLT:
		return a < b
	case OpLE:
		return a <= b
	case OpGT:
		return a > b
	case OpGE:
		return a >= b
	case OpEQ:
		return a == b
	case OpNE:
		return a != b
	}
	return false
}

// Operand is the right-hand side of a comparison: either a native integer
// or text that must be parsed for the left-hand Kind.
type Operand struct {
	n      int64
	text   string
	isText bool
}

// Native returns an integer operand.
func Native(n int64) Operand { return Operand{n: n} }

// Text returns a string operand.
func Text(s string) Operand { return Operand{text: s, isText: true} }

func (o Operand) String() string {
	if o.isText {
		return strconv.Quote(o.text)
	}
	return strconv.FormatInt(o.n, 10)
}

// ParseError reports a string that could not be converted for a Kind.
type ParseError struct {
	Input string
	Kind  Kind
	Err   error // lookup failure, if any
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("'%s' is not a valid %s", e.Input, e.Kind)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
