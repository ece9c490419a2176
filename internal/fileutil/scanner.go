package fileutil

import (
	"fmt"
	"os"
	"strings"
)

// ListOptions configures directory listing
type ListOptions struct {
	// All includes hidden entries
	All bool
}

// ListDirectory returns the child paths of dir in name order.
func ListDirectory(dir string, opts ListOptions) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	children := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !opts.All && IsHidden(name) {
			continue
		}
		children = append(children, JoinPath(dir, name))
	}
	return children, nil
}

// JoinPath appends name to dir with a single separator and no cleaning.
func JoinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	if strings.HasSuffix(dir, string(os.PathSeparator)) {
		return dir + name
	}
	return dir + string(os.PathSeparator) + name
}

// IsHidden reports whether name is a dot file.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
