package filter

import (
	"github.com/harrison/lsf/internal/expr"
	"github.com/harrison/lsf/internal/record"
	"github.com/harrison/lsf/internal/scalar"
)

// recordEnv exposes a record's fields to expressions. The mode is its
// display string, so mode[0] == "l" selects links.
type recordEnv struct {
	rec *record.Record
}

var envFields = map[string]func(r *record.Record) expr.Value{
	"mode":     func(r *record.Record) expr.Value { return expr.String(r.ModeString()) },
	"inode":    func(r *record.Record) expr.Value { return expr.Int(int64(r.Inode)) },
	"dev":      func(r *record.Record) expr.Value { return expr.Int(int64(r.Device)) },
	"nlink":    func(r *record.Record) expr.Value { return expr.Int(int64(r.Nlink)) },
	"uid":      func(r *record.Record) expr.Value { return expr.Scalar(scalar.User(r.UID)) },
	"gid":      func(r *record.Record) expr.Value { return expr.Scalar(scalar.Group(r.GID)) },
	"size":     func(r *record.Record) expr.Value { return expr.Scalar(scalar.Size(r.Size)) },
	"atime":    func(r *record.Record) expr.Value { return expr.Scalar(scalar.Time(r.Atime)) },
	"mtime":    func(r *record.Record) expr.Value { return expr.Scalar(scalar.Time(r.Mtime)) },
	"ctime":    func(r *record.Record) expr.Value { return expr.Scalar(scalar.Time(r.Ctime)) },
	"path":     func(r *record.Record) expr.Value { return expr.String(r.Dir) },
	"name":     func(r *record.Record) expr.Value { return expr.String(r.Name) },
	"filepath": func(r *record.Record) expr.Value { return expr.String(r.Path) },
	"target":   func(r *record.Record) expr.Value { return expr.String(r.Target) },
	"type":     func(r *record.Record) expr.Value { return expr.String(string(r.Type.Letter())) },
}

var envAliases = map[string]string{
	"Mode":     "mode",
	"Nlink":    "nlink",
	"device":   "dev",
	"fullpath": "filepath",
}

func resolveName(name string) (func(r *record.Record) expr.Value, bool) {
	if alias, ok := envAliases[name]; ok {
		name = alias
	}
	fn, ok := envFields[name]
	return fn, ok
}

func knownName(name string) bool {
	_, ok := resolveName(name)
	return ok
}

func (e recordEnv) Lookup(name string) (expr.Value, bool) {
	fn, ok := resolveName(name)
	if !ok {
		return expr.Value{}, false
	}
	return fn(e.rec), true
}
