package cmd

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/harrison/lsf/internal/filter"
)

// predicateFlag registers a filter each time the flag is given, so a bad
// operand is rejected while the command line is still being parsed.
type predicateFlag struct {
	field   string
	filters *filter.Set
	values  []string
}

var _ pflag.Value = (*predicateFlag)(nil)

func (f *predicateFlag) String() string {
	return strings.Join(f.values, " ")
}

func (f *predicateFlag) Set(value string) error {
	if err := f.filters.Register(f.field, value); err != nil {
		return err
	}
	f.values = append(f.values, value)
	return nil
}

func (f *predicateFlag) Type() string {
	switch f.field {
	case "atime", "mtime", "ctime":
		return "DATETIME"
	case "size":
		return "FILESIZE"
	case "name", "path", "filepath":
		return "REGEX"
	case "Typecode":
		return "FILETYPES"
	case filter.FieldExpr:
		return "EXPRESSION"
	case filter.FieldIgnore:
		return "FILE"
	}
	return "LIST"
}

// predicateFlags lists the filter flags in help order.
var predicateFlags = []struct {
	name, shorthand, field, usage string
}{
	{"accessed", "a", "atime", "show only files accessed since DATETIME (or prior to +DATETIME)"},
	{"created", "c", "ctime", "show only files created since DATETIME (or prior to +DATETIME)"},
	{"exclude", "e", "Typecode", "list of FILETYPES to exclude (or +FILETYPES to include only)"},
	{"filter", "F", filter.FieldExpr, `expression for file selection (e.g. 'uid == 0 or size < "10m"')`},
	{"group", "g", "gid", "show only files owned by the listed group names and/or gids (+ to invert)"},
	{"modified", "m", "mtime", "show only files modified since DATETIME (or prior to +DATETIME)"},
	{"name", "n", "name", "show only files whose name matches REGEX (+ to invert)"},
	{"path", "p", "path", "show only files whose directory path matches REGEX (+ to invert)"},
	{"regex", "r", "filepath", "show only files whose full path matches REGEX (+ to invert)"},
	{"size", "s", "size", "show only files smaller than FILESIZE (or larger than +FILESIZE)"},
	{"user", "u", "uid", "show only files owned by the listed usernames and/or uids (+ to invert)"},
	{"exclude-from", "", filter.FieldIgnore, "skip files matched by the gitignore-style patterns in FILE (+FILE to keep only those)"},
}

func addPredicateFlags(flags *pflag.FlagSet, filters *filter.Set) {
	for _, pf := range predicateFlags {
		flags.VarP(&predicateFlag{field: pf.field, filters: filters}, pf.name, pf.shorthand, pf.usage)
	}
}
