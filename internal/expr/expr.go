// Package expr compiles and evaluates the boolean filter expressions given
// to --filter, e.g.
//
//	size > "10k" and name =~ "\.go$" and not uid == "root"
//
// The language is deliberately small: field names, string and integer
// literals, lists, indexing, comparisons, regex matches, "in", and the
// boolean connectives. Typed fields (times, sizes, users, groups) parse the
// other side of a comparison with the same rules as the command-line
// predicates.
package expr

import (
	"fmt"
	"strings"

	"github.com/harrison/lsf/internal/scalar"
)

// SyntaxError reports an expression that does not parse.
type SyntaxError struct {
	Src string
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid expression %q at offset %d: %s", e.Src, e.Pos, e.Msg)
}

// IndexError reports an index past either end of a string or list value.
// Whether it occurs depends on the record, not on the expression.
type IndexError struct {
	Kind  string
	Index int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s index %d out of range", e.Kind, e.Index)
}

// Env resolves field names to values for one record.
type Env interface {
	Lookup(name string) (Value, bool)
}

// MapEnv is an Env backed by a map.
type MapEnv map[string]Value

func (m MapEnv) Lookup(name string) (Value, bool) {
	v, ok := m[name]
	return v, ok
}

// Program is a compiled expression, safe to evaluate repeatedly.
type Program struct {
	src  string
	root node
}

// Compile parses src. When known is non-nil, identifiers it rejects are
// reported at compile time instead of at evaluation.
func Compile(src string, known func(string) bool) (*Program, error) {
	if strings.TrimSpace(src) == "" {
		return nil, &SyntaxError{Src: src, Msg: "empty expression"}
	}
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks, known: known}
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.errorf(t, "unexpected %s", t)
	}
	return &Program{src: src, root: root}, nil
}

// Eval runs the program against env and reports whether the result is true.
func (p *Program) Eval(sess *scalar.Session, env Env) (bool, error) {
	v, err := p.root.eval(&evalContext{sess: sess, env: env})
	if err != nil {
		return false, err
	}
	return v.truthy(), nil
}

// Source returns the expression as written.
func (p *Program) Source() string {
	return p.src
}

// String returns the parsed form, fully parenthesized.
func (p *Program) String() string {
	return p.root.String()
}
