package filter

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/RoaringBitmap/roaring"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/harrison/lsf/internal/expr"
	"github.com/harrison/lsf/internal/record"
	"github.com/harrison/lsf/internal/scalar"
)

var errEmptyOperand = errors.New("missing value after '+'")

func (s *Set) identity(f record.Field, value string, inverted bool) (*Predicate, error) {
	kind := scalar.KindUser
	if f == record.FieldGID {
		kind = scalar.KindGroup
	}
	ids := roaring.New()
	names := strings.Split(value, ",")
	if len(names) > 1 && names[len(names)-1] == "" {
		names = names[:len(names)-1]
	}
	for _, name := range names {
		n, err := s.sess.Parse(kind, name)
		if err != nil {
			return nil, err
		}
		ids.Add(uint32(n))
	}
	op := "in"
	if inverted {
		op = "not in"
	}
	return &Predicate{
		Field:   f.Word(),
		Op:      op,
		Operand: value,
		test: func(rec *record.Record) (bool, error) {
			id := rec.UID
			if f == record.FieldGID {
				id = rec.GID
			}
			return ids.Contains(id) != inverted, nil
		},
	}, nil
}

// typeCodes excludes the listed types, or with '+' everything else.
func typeCodes(value string, inverted bool) (*Predicate, error) {
	letters, err := record.ParseValueList(value, record.TypeWords)
	if err != nil {
		return nil, err
	}
	listed := make(map[byte]bool, len(letters))
	for i := 0; i < len(letters); i++ {
		listed[letters[i]] = true
	}
	op := "not in"
	if inverted {
		op = "in"
	}
	return &Predicate{
		Field:   record.FieldType.Word(),
		Op:      op,
		Operand: value,
		test: func(rec *record.Record) (bool, error) {
			return listed[rec.Type.Letter()] == inverted, nil
		},
	}, nil
}

// timestamp keeps entries newer than the operand, or with '+' older.
func (s *Set) timestamp(f record.Field, value string, inverted bool) (*Predicate, error) {
	limit, err := s.sess.Parse(scalar.KindTime, value)
	if err != nil {
		return nil, err
	}
	return comparison(f, value, limit, scalar.OpGT, scalar.OpLT, inverted), nil
}

// size keeps entries smaller than the operand, or with '+' larger.
func (s *Set) size(value string, inverted bool) (*Predicate, error) {
	limit, err := s.sess.Parse(scalar.KindSize, value)
	if err != nil {
		return nil, err
	}
	return comparison(record.FieldSize, value, limit, scalar.OpLT, scalar.OpGT, inverted), nil
}

func comparison(f record.Field, value string, limit int64, op, alt scalar.Op, inverted bool) *Predicate {
	if inverted {
		op = alt
	}
	return &Predicate{
		Field:   f.Word(),
		Op:      op.String(),
		Operand: value,
		test: func(rec *record.Record) (bool, error) {
			v, _ := rec.Int(f)
			return op.Apply(v, limit), nil
		},
	}
}

// pattern keeps entries whose field contains a match, or with '+' those
// that do not.
func pattern(f record.Field, value string, inverted bool) (*Predicate, error) {
	re, err := regexp.Compile(value)
	if err != nil {
		return nil, fmt.Errorf("'%s' is not a valid regular expression: %w", value, err)
	}
	op := "~"
	if inverted {
		op = "!~"
	}
	return &Predicate{
		Field:   f.Word(),
		Op:      op,
		Operand: value,
		test: func(rec *record.Record) (bool, error) {
			text, _ := rec.Text(f)
			return re.MatchString(text) != inverted, nil
		},
	}, nil
}

// ignoreFile drops entries matched by a gitignore-style pattern file, or
// with '+' keeps only those.
func ignoreFile(path string, inverted bool) (*Predicate, error) {
	patterns, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ignore file: %w", err)
	}
	op := "unmatched by"
	if inverted {
		op = "matched by"
	}
	return &Predicate{
		Field:   "path",
		Op:      op,
		Operand: path,
		test: func(rec *record.Record) (bool, error) {
			return patterns.MatchesPath(filepath.Clean(rec.Path)) == inverted, nil
		},
	}, nil
}

// expression compiles src and proves it against a sample record so that
// unknown names and bad literals fail before any traversal. Index faults
// depend on the record's text, so the sample does not reject them.
func (s *Set) expression(src string) (*Predicate, error) {
	prog, err := expr.Compile(src, knownName)
	if err != nil {
		return nil, err
	}
	if _, err := prog.Eval(s.sess, recordEnv{record.Sample()}); err != nil {
		var ierr *expr.IndexError
		if !errors.As(err, &ierr) {
			return nil, err
		}
	}
	return &Predicate{
		Field:   "expression",
		Op:      "is",
		Operand: src,
		test: func(rec *record.Record) (bool, error) {
			ok, err := prog.Eval(s.sess, recordEnv{rec})
			if err != nil {
				return false, &EvalError{Path: rec.Path, Expr: src, Err: err}
			}
			return ok, nil
		},
	}, nil
}
