// Package fileutil lists directory entries the way lsf walks them.
//
// # Listing
//
// ListDirectory returns the children of one directory as paths built on the
// directory text the caller gave, so "." lists as "./a", "./b" and "/tmp/"
// lists as "/tmp/a". Entries come back in byte order of their names.
// Hidden entries (names starting with ".") are skipped unless
// ListOptions.All is set.
//
//	children, err := fileutil.ListDirectory("src", fileutil.ListOptions{})
//	if err != nil {
//	    // permission denied, not a directory, ...
//	}
//	for _, child := range children {
//	    fmt.Println(child) // src/main.go
//	}
//
// The listing does not recurse and does not stat the children. Callers that
// recurse decide which children are directories from their own lstat
// snapshot, so symbolic links to directories are never followed.
//
// # Joining
//
// JoinPath appends a name to a directory without cleaning the result,
// matching what the user typed. IsHidden reports dot names.
package fileutil
