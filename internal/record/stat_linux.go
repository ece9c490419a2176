//go:build linux

package record

import "golang.org/x/sys/unix"

func lstat(path string) (*Record, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return nil, err
	}
	atime, _ := st.Atim.Unix()
	mtime, _ := st.Mtim.Unix()
	ctime, _ := st.Ctim.Unix()
	return &Record{
		Mode:   st.Mode,
		Inode:  st.Ino,
		Device: uint64(st.Dev),
		Nlink:  uint64(st.Nlink),
		UID:    st.Uid,
		GID:    st.Gid,
		Size:   st.Size,
		Atime:  atime,
		Mtime:  mtime,
		Ctime:  ctime,
	}, nil
}
