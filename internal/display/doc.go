// Package display renders lsf listings: one line per record with the
// selected fields, a "Directory" header per group, per-group totals and a
// grand total.
//
// # Lines
//
// Fields are written space-separated in the order requested. Empty text
// fields and zero inode, device and link counts are left out, so a
// regular file shows no "-> target" column:
//
//	-rw-r--r-- 1 alice staff       1500 Oct 13 12:00 data.bin
//	lrwxrwxrwx 1 alice staff          8 Oct 13 12:00 current -> data.bin
//
// # Group output
//
// Unless quiet, each group is framed:
//
//	Directory ./src
//
//	...lines...
//
//	Total of 2 files, 1508 bytes (1.47 Kbytes)
//
// The header is left out in merge mode, where the pool spans directories.
// Finish prints the grand total when more than one group was shown.
//
// # Colors
//
// Headers, totals and the names of directories and links are colored with
// fatih/color. ColorAuto enables color only when the writer is a terminal
// (mattn/go-isatty) and NO_COLOR is unset.
package display
