// Package order sorts records by a list of field keys.
package order

import (
	"slices"

	"github.com/harrison/lsf/internal/record"
)

// Spec is an ordered key list with one reverse flag applied to every key.
type Spec struct {
	Keys    []record.Field
	Reverse bool
}

// ParseSpec reads a sort spec such as "sm" or "+size,mtime". A leading '+'
// sorts descending. Name is appended as the final key when absent so that
// otherwise equal records come out in name order.
func ParseSpec(text string) (Spec, error) {
	var spec Spec
	if len(text) > 0 && text[0] == '+' {
		spec.Reverse = true
		text = text[1:]
	}
	keys, err := record.ParseFields(text)
	if err != nil {
		return Spec{}, err
	}
	spec.Keys = keys
	return spec.withName(), nil
}

// Default sorts by name.
func Default() Spec {
	return Spec{Keys: []record.Field{record.FieldName}}
}

func (s Spec) withName() Spec {
	if !slices.Contains(s.Keys, record.FieldName) {
		s.Keys = append(s.Keys, record.FieldName)
	}
	return s
}

// Letters renders the spec in its command-line form.
func (s Spec) Letters() string {
	letters := record.Letters(s.Keys)
	if s.Reverse {
		return "+" + letters
	}
	return letters
}

// Sort orders recs in place. Records equal on every key keep their input
// order, in both directions.
func Sort(recs []*record.Record, spec Spec) {
	slices.SortStableFunc(recs, func(a, b *record.Record) int {
		for _, f := range spec.Keys {
			if c := a.Compare(b, f); c != 0 {
				if spec.Reverse {
					return -c
				}
				return c
			}
		}
		return 0
	})
}
