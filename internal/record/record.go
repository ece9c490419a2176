// Package record holds the metadata snapshot lsf takes of each filesystem
// entry, and the field table used to address its attributes by name or
// letter.
package record

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/lsf/internal/scalar"
)

// Record is an lstat snapshot of one entry plus derived path fields.
// Records are never modified after Stat returns them.
type Record struct {
	Mode   uint32
	Inode  uint64
	Device uint64
	Nlink  uint64
	UID    uint32
	GID    uint32
	Size   int64
	Atime  int64
	Mtime  int64
	Ctime  int64

	Dir    string // containing directory as given, "" for a bare name
	Name   string
	Path   string
	Target string // link target, "" unless Type is a link
	Type   Type
}

// StatError reports an entry that could not be stat'ed.
type StatError struct {
	Path string
	Err  error
}

func (e *StatError) Error() string {
	return fmt.Sprintf("cannot stat file %s: %v", e.Path, e.Err)
}

func (e *StatError) Unwrap() error {
	return e.Err
}

// Stat snapshots path without following a final symbolic link.
func Stat(path string) (*Record, error) {
	rec, err := lstat(path)
	if err != nil {
		return nil, &StatError{Path: path, Err: err}
	}
	rec.Path = path
	rec.Dir, rec.Name = split(path)
	rec.Type = TypeFromMode(rec.Mode)
	if rec.Type == TypeLink {
		var broken bool
		rec.Target, broken = linkTarget(path, rec.Dir)
		if broken {
			rec.Type = TypeBrokenLink
		}
	}
	return rec, nil
}

// split separates the directory and base name the way dirname/basename do:
// a path ending in a separator, "/" included, has an empty name.
func split(path string) (dir, name string) {
	dir, name = filepath.Split(path)
	if trimmed := strings.TrimRight(dir, string(filepath.Separator)); trimmed != "" {
		dir = trimmed
	} else if dir != "" {
		dir = string(filepath.Separator)
	}
	return dir, name
}

// linkTarget resolves a symlink to an absolute path, shortened to a bare
// name when the target sits in the link's own directory. A link that does
// not resolve is reported as broken, with its raw text made absolute.
func linkTarget(path, dir string) (target string, broken bool) {
	if dir == "" {
		dir = "."
	}
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		broken = true
		raw, rerr := os.Readlink(path)
		if rerr != nil {
			return "", true
		}
		if !filepath.IsAbs(raw) {
			raw = filepath.Join(dir, raw)
		}
		resolved = raw
	}
	if abs, err := filepath.Abs(resolved); err == nil {
		resolved = abs
	}
	if realDir(filepath.Dir(resolved)) == realDir(dir) {
		resolved = filepath.Base(resolved)
	}
	return resolved, broken
}

func realDir(dir string) string {
	if r, err := filepath.EvalSymlinks(dir); err == nil {
		dir = r
	}
	if a, err := filepath.Abs(dir); err == nil {
		dir = a
	}
	return dir
}

// ModeString renders the type and permission bits, e.g. "-rwxr-xr-x".
func (r *Record) ModeString() string {
	const chars = "rwxrwxrwx"
	var b strings.Builder
	b.WriteByte(r.Type.ModeChar())
	for i, mask := 0, uint32(0o400); mask != 0; i, mask = i+1, mask>>1 {
		if r.Mode&mask != 0 {
			b.WriteByte(chars[i])
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

// Scalar returns the typed value of a field that has one.
func (r *Record) Scalar(f Field) (scalar.Value, bool) {
	switch f {
	case FieldUID:
		return scalar.User(r.UID), true
	case FieldGID:
		return scalar.Group(r.GID), true
	case FieldSize:
		return scalar.Size(r.Size), true
	case FieldAtime:
		return scalar.Time(r.Atime), true
	case FieldMtime:
		return scalar.Time(r.Mtime), true
	case FieldCtime:
		return scalar.Time(r.Ctime), true
	}
	return scalar.Value{}, false
}

// Int returns the numeric value of a field. The mode and type fields
// report raw mode bits.
func (r *Record) Int(f Field) (int64, bool) {
	switch f {
	case FieldMode:
		return int64(r.Mode), true
	case FieldInode:
		return int64(r.Inode), true
	case FieldDevice:
		return int64(r.Device), true
	case FieldNlink:
		return int64(r.Nlink), true
	case FieldType:
		return int64(r.Mode & modeTypeMask), true
	}
	if v, ok := r.Scalar(f); ok {
		return v.N, true
	}
	return 0, false
}

// Text returns the value of a string field.
func (r *Record) Text(f Field) (string, bool) {
	switch f {
	case FieldPath:
		return r.Dir, true
	case FieldName:
		return r.Name, true
	case FieldFullPath:
		return r.Path, true
	case FieldTarget:
		return r.Target, true
	}
	return "", false
}

// Compare orders r and o by field f.
func (r *Record) Compare(o *Record, f Field) int {
	if a, ok := r.Text(f); ok {
		b, _ := o.Text(f)
		return strings.Compare(a, b)
	}
	a, _ := r.Int(f)
	b, _ := o.Int(f)
	return cmp.Compare(a, b)
}

// Sample returns a plausible regular-file record for validating
// expressions before any real entry has been seen.
func Sample() *Record {
	return &Record{
		Mode:  modeRegular | 0o644,
		Inode: 1,
		Nlink: 1,
		Size:  1,
		Dir:   ".",
		Name:  "sample",
		Path:  "sample",
		Type:  TypeRegular,
	}
}
