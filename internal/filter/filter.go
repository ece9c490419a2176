// Package filter holds the predicates registered from the command line and
// evaluates them as a short-circuit conjunction over records.
package filter

import (
	"fmt"
	"strings"

	"github.com/harrison/lsf/internal/record"
	"github.com/harrison/lsf/internal/scalar"
)

// Pseudo-fields accepted by Register in addition to record fields.
const (
	FieldExpr   = "expr"
	FieldIgnore = "ignore"
)

// ConfigError reports an operand rejected at registration time.
type ConfigError struct {
	Field   string
	Operand string
	Err     error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s filter '%s': %v", e.Field, e.Operand, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// EvalError reports an expression that failed on a real record. It aborts
// the run.
type EvalError struct {
	Path string
	Expr string
	Err  error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("expression '%s' failed on %s: %v", e.Expr, e.Path, e.Err)
}

func (e *EvalError) Unwrap() error {
	return e.Err
}

// Predicate is one registered test.
type Predicate struct {
	Field   string
	Op      string
	Operand string // as given, without the inverting '+'

	test func(rec *record.Record) (bool, error)
}

// String renders the predicate as "field op operand", the form used in
// exclusion traces.
func (p *Predicate) String() string {
	return fmt.Sprintf("%s %s %s", p.Field, p.Op, p.Operand)
}

// Debugger receives each record a predicate excluded.
type Debugger interface {
	Excluded(rec *record.Record, p *Predicate)
}

// Set is an ordered conjunction of predicates.
type Set struct {
	sess  *scalar.Session
	preds []*Predicate
}

// NewSet returns an empty set that parses operands with sess.
func NewSet(sess *scalar.Session) *Set {
	return &Set{sess: sess}
}

// Len returns the number of registered predicates.
func (s *Set) Len() int {
	return len(s.preds)
}

// Predicates returns the registered predicates in registration order.
func (s *Set) Predicates() []*Predicate {
	return append([]*Predicate(nil), s.preds...)
}

// Register validates operand for field and appends the predicate. A leading
// '+' selects the field's alternate comparison.
func (s *Set) Register(field, operand string) error {
	value, inverted := SplitPlus(operand)
	if field == FieldExpr {
		// expressions have no alternate comparison
		value, inverted = operand, false
	}
	if value == "" {
		return &ConfigError{Field: field, Operand: operand, Err: errEmptyOperand}
	}
	p, err := s.build(field, value, inverted)
	if err != nil {
		return &ConfigError{Field: field, Operand: operand, Err: err}
	}
	s.preds = append(s.preds, p)
	return nil
}

func (s *Set) build(field, value string, inverted bool) (*Predicate, error) {
	switch field {
	case FieldExpr:
		return s.expression(value)
	case FieldIgnore:
		return ignoreFile(value, inverted)
	}
	f, ok := record.LookupField(field)
	if !ok || len(field) == 1 {
		return nil, fmt.Errorf("unknown field %q", field)
	}
	switch f {
	case record.FieldUID, record.FieldGID:
		return s.identity(f, value, inverted)
	case record.FieldType:
		return typeCodes(value, inverted)
	case record.FieldAtime, record.FieldMtime, record.FieldCtime:
		return s.timestamp(f, value, inverted)
	case record.FieldSize:
		return s.size(value, inverted)
	case record.FieldName, record.FieldPath, record.FieldFullPath:
		return pattern(f, value, inverted)
	}
	return nil, fmt.Errorf("field %s cannot be filtered", f)
}

// Evaluate tests rec against every predicate in order and stops at the
// first failure, which it returns.
func (s *Set) Evaluate(rec *record.Record) (bool, *Predicate, error) {
	for _, p := range s.preds {
		ok, err := p.test(rec)
		if err != nil {
			return false, p, err
		}
		if !ok {
			return false, p, nil
		}
	}
	return true, nil, nil
}

// Apply returns the records that pass every predicate, in input order.
// Excluded records are reported to dbg when it is non-nil.
func (s *Set) Apply(recs []*record.Record, dbg Debugger) ([]*record.Record, error) {
	if len(s.preds) == 0 {
		return recs, nil
	}
	kept := make([]*record.Record, 0, len(recs))
	for _, rec := range recs {
		ok, p, err := s.Evaluate(rec)
		if err != nil {
			return kept, err
		}
		if ok {
			kept = append(kept, rec)
			continue
		}
		if dbg != nil {
			dbg.Excluded(rec, p)
		}
	}
	return kept, nil
}

// SplitPlus strips a leading '+' and reports whether it was there. Sort
// specs and execute commands share the convention.
func SplitPlus(operand string) (string, bool) {
	if strings.HasPrefix(operand, "+") {
		return operand[1:], true
	}
	return operand, false
}
