package expr

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/harrison/lsf/internal/scalar"
)

type node interface {
	eval(c *evalContext) (Value, error)
	String() string
}

type evalContext struct {
	sess *scalar.Session
	env  Env
}

type literalNode struct{ v Value }

func (n *literalNode) eval(*evalContext) (Value, error) { return n.v, nil }
func (n *literalNode) String() string                  { return n.v.describe() }

type fieldNode struct{ name string }

func (n *fieldNode) eval(c *evalContext) (Value, error) {
	v, ok := c.env.Lookup(n.name)
	if !ok {
		return Value{}, fmt.Errorf("name '%s' is not defined", n.name)
	}
	return v, nil
}

func (n *fieldNode) String() string { return n.name }

type listNode struct{ items []node }

func (n *listNode) eval(c *evalContext) (Value, error) {
	items := make([]Value, len(n.items))
	for i, item := range n.items {
		v, err := item.eval(c)
		if err != nil {
			return Value{}, err
		}
		items[i] = v
	}
	return list(items), nil
}

func (n *listNode) String() string {
	parts := make([]string, len(n.items))
	for i, item := range n.items {
		parts[i] = item.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

type indexNode struct {
	target node
	i      int
}

func (n *indexNode) eval(c *evalContext) (Value, error) {
	v, err := n.target.eval(c)
	if err != nil {
		return Value{}, err
	}
	switch v.kind {
	case kindString:
		i, ok := resolveIndex(n.i, len(v.s))
		if !ok {
			return Value{}, &IndexError{Kind: "string", Index: n.i}
		}
		return String(v.s[i : i+1]), nil
	case kindList:
		i, ok := resolveIndex(n.i, len(v.list))
		if !ok {
			return Value{}, &IndexError{Kind: "list", Index: n.i}
		}
		return v.list[i], nil
	}
	return Value{}, fmt.Errorf("%s value is not indexable", v.kind)
}

func (n *indexNode) String() string { return fmt.Sprintf("%s[%d]", n.target, n.i) }

func resolveIndex(i, length int) (int, bool) {
	if i < 0 {
		i += length
	}
	return i, i >= 0 && i < length
}

type notNode struct{ x node }

func (n *notNode) eval(c *evalContext) (Value, error) {
	v, err := n.x.eval(c)
	if err != nil {
		return Value{}, err
	}
	return Bool(!v.truthy()), nil
}

func (n *notNode) String() string { return "not " + n.x.String() }

type logicalNode struct {
	and         bool
	left, right node
}

func (n *logicalNode) eval(c *evalContext) (Value, error) {
	l, err := n.left.eval(c)
	if err != nil {
		return Value{}, err
	}
	if l.truthy() != n.and {
		return Bool(l.truthy()), nil
	}
	r, err := n.right.eval(c)
	if err != nil {
		return Value{}, err
	}
	return Bool(r.truthy()), nil
}

func (n *logicalNode) String() string {
	op := "or"
	if n.and {
		op = "and"
	}
	return "(" + n.left.String() + " " + op + " " + n.right.String() + ")"
}

type compareNode struct {
	op          string
	left, right node
	re          *regexp.Regexp // precompiled when the pattern is a literal
}

func (n *compareNode) String() string {
	return n.left.String() + " " + n.op + " " + n.right.String()
}

func (n *compareNode) eval(c *evalContext) (Value, error) {
	l, err := n.left.eval(c)
	if err != nil {
		return Value{}, err
	}
	r, err := n.right.eval(c)
	if err != nil {
		return Value{}, err
	}
	switch n.op {
	case "=~", "!~":
		ok, err := n.match(l, r)
		if err != nil {
			return Value{}, err
		}
		return Bool(ok == (n.op == "=~")), nil
	case "in":
		ok, err := contains(c.sess, r, l)
		return Bool(ok), err
	}
	op, _ := scalar.ParseOp(n.op)
	ok, err := compare(c.sess, l, op, r)
	return Bool(ok), err
}

func (n *compareNode) match(l, r Value) (bool, error) {
	if l.kind != kindString {
		return false, fmt.Errorf("%s needs a string on the left, got %s", n.op, l.kind)
	}
	re := n.re
	if re == nil {
		if r.kind != kindString {
			return false, fmt.Errorf("%s needs a string pattern, got %s", n.op, r.kind)
		}
		var err error
		if re, err = regexp.Compile(r.s); err != nil {
			return false, err
		}
	}
	return re.MatchString(l.s), nil
}

// flip mirrors an operator so that a op b == b flip(op) a.
func flip(op scalar.Op) scalar.Op {
	switch op {
	case scalar.OpLT:
		return scalar.OpGT
	case scalar.OpLE:
		return scalar.OpGE
	case scalar.OpGT:
		return scalar.OpLT
	case scalar.OpGE:
		return scalar.OpLE
	}
	return op
}

// compare applies op to a and b. A typed scalar on either side converts the
// other side with the scalar's parser, so uid == "root" and size > "1k"
// both work.
func compare(sess *scalar.Session, a Value, op scalar.Op, b Value) (bool, error) {
	if a.kind != kindScalar && b.kind == kindScalar {
		return compare(sess, b, flip(op), a)
	}
	switch a.kind {
	case kindScalar:
		switch b.kind {
		case kindScalar:
			return op.Apply(a.sc.N, b.sc.N), nil
		case kindString:
			return sess.Compare(a.sc, op, scalar.Text(b.s))
		case kindInt:
			return sess.Compare(a.sc, op, scalar.Native(b.n))
		}
	case kindInt:
		if b.kind == kindInt {
			return op.Apply(a.n, b.n), nil
		}
	case kindString:
		if b.kind == kindString {
			return op.Apply(int64(strings.Compare(a.s, b.s)), 0), nil
		}
	case kindBool:
		if b.kind == kindBool && (op == scalar.OpEQ || op == scalar.OpNE) {
			return op.Apply(int64(boolInt(a.b)), int64(boolInt(b.b))), nil
		}
	case kindList:
		if b.kind == kindList && (op == scalar.OpEQ || op == scalar.OpNE) {
			eq, err := listEqual(sess, a.list, b.list)
			return eq == (op == scalar.OpEQ), err
		}
	}
	if op == scalar.OpEQ || op == scalar.OpNE {
		// mismatched kinds are never equal
		return op == scalar.OpNE, nil
	}
	return false, fmt.Errorf("cannot compare %s %s %s", a.kind, op, b.kind)
}

func listEqual(sess *scalar.Session, a, b []Value) (bool, error) {
	if len(a) != len(b) {
		return false, nil
	}
	for i := range a {
		eq, err := compare(sess, a[i], scalar.OpEQ, b[i])
		if err != nil || !eq {
			return false, err
		}
	}
	return true, nil
}

// contains implements "needle in haystack" for lists and substrings.
func contains(sess *scalar.Session, haystack, needle Value) (bool, error) {
	switch haystack.kind {
	case kindList:
		for _, item := range haystack.list {
			eq, err := compare(sess, needle, scalar.OpEQ, item)
			if err != nil {
				return false, err
			}
			if eq {
				return true, nil
			}
		}
		return false, nil
	case kindString:
		if needle.kind != kindString {
			return false, fmt.Errorf("'in <string>' requires string as left operand, not %s", needle.kind)
		}
		return strings.Contains(haystack.s, needle.s), nil
	}
	return false, fmt.Errorf("argument of type %s is not iterable", haystack.kind)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
