//go:build !linux

package record

import (
	"io/fs"
	"os"
)

// lstat falls back to os.Lstat where the raw stat layout is not wired.
// Inode, device, link count and owner are reported as zero.
func lstat(path string) (*Record, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, err
	}
	mtime := info.ModTime().Unix()
	return &Record{
		Mode:  modeBits(info.Mode()),
		Nlink: 1,
		Size:  info.Size(),
		Atime: mtime,
		Mtime: mtime,
		Ctime: mtime,
	}, nil
}

func modeBits(m fs.FileMode) uint32 {
	bits := uint32(m.Perm())
	switch {
	case m&fs.ModeDir != 0:
		bits |= modeDir
	case m&fs.ModeSymlink != 0:
		bits |= modeLink
	case m&fs.ModeNamedPipe != 0:
		bits |= modeFIFO
	case m&fs.ModeSocket != 0:
		bits |= modeSocket
	case m&fs.ModeCharDevice != 0:
		bits |= modeChar
	case m&fs.ModeDevice != 0:
		bits |= modeBlock
	default:
		bits |= modeRegular
	}
	return bits
}
