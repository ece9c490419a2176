package record

import (
	"fmt"
	"strings"
)

// Field addresses one attribute of a Record in display and sort specs.
type Field int

const (
	FieldMode Field = iota
	FieldInode
	FieldDevice
	FieldNlink
	FieldUID
	FieldGID
	FieldSize
	FieldAtime
	FieldMtime
	FieldCtime
	FieldPath
	FieldName
	FieldFullPath
	FieldTarget
	FieldType
)

// fieldWords is the declared field order; each word's first byte is the
// field's letter.
var fieldWords = [...]string{
	"Mode", "inode", "dev", "Nlink", "uid", "gid", "size", "atime",
	"mtime", "ctime", "path", "name", "filepath", "target", "Typecode",
}

var fieldAliases = map[string]Field{
	"device":     FieldDevice,
	"link-count": FieldNlink,
	"links":      FieldNlink,
	"fullpath":   FieldFullPath,
}

// TimeFields are the fields accepted by the time display option.
var TimeFields = []Field{FieldAtime, FieldMtime, FieldCtime}

// FieldWords returns the canonical field names in declared order.
func FieldWords() []string {
	return append([]string(nil), fieldWords[:]...)
}

// Word returns the canonical name of f.
func (f Field) Word() string {
	if f < 0 || int(f) >= len(fieldWords) {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fieldWords[f]
}

// Letter returns the single-letter abbreviation of f.
func (f Field) Letter() byte {
	return f.Word()[0]
}

func (f Field) String() string {
	return f.Word()
}

// LookupField resolves a full field name (any case, aliases allowed) or a
// single letter.
func LookupField(name string) (Field, bool) {
	if len(name) == 1 {
		return FieldByLetter(name[0])
	}
	for i, w := range fieldWords {
		if strings.EqualFold(w, name) {
			return Field(i), true
		}
	}
	f, ok := fieldAliases[strings.ToLower(name)]
	return f, ok
}

// FieldByLetter matches a letter exactly, then falls back to the first
// field in declared order whose letter matches ignoring case.
func FieldByLetter(c byte) (Field, bool) {
	for i, w := range fieldWords {
		if w[0] == c {
			return Field(i), true
		}
	}
	lc := lowerByte(c)
	for i, w := range fieldWords {
		if lowerByte(w[0]) == lc {
			return Field(i), true
		}
	}
	return 0, false
}

// fieldLetters lists every field letter, for error messages.
func fieldLetters() string {
	var b strings.Builder
	for _, w := range fieldWords {
		b.WriteByte(w[0])
	}
	return b.String()
}

// ParseFields reads a field list: comma-separated names ("Mode,size,name")
// or a run of letters ("Msn").
func ParseFields(spec string) ([]Field, error) {
	if spec == "" {
		return nil, errMissingValue
	}
	if !strings.Contains(spec, ",") {
		fields := make([]Field, 0, len(spec))
		for i := 0; i < len(spec); i++ {
			f, ok := FieldByLetter(spec[i])
			if !ok {
				return nil, lettersError(spec, fieldLetters(), isFieldWord(spec))
			}
			fields = append(fields, f)
		}
		return fields, nil
	}
	words := splitWords(spec)
	fields := make([]Field, 0, len(words))
	for _, w := range words {
		f, ok := LookupField(w)
		if !ok || len(w) == 1 {
			return nil, fmt.Errorf("'%s' not in [%s]", w, strings.Join(fieldWords[:], ", "))
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// Letters renders fields as a letter spec.
func Letters(fields []Field) string {
	var b strings.Builder
	for _, f := range fields {
		b.WriteByte(f.Letter())
	}
	return b.String()
}

func isFieldWord(s string) bool {
	if len(s) < 2 {
		return false
	}
	_, ok := LookupField(s)
	return ok
}

func lowerByte(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
