//go:build linux

package storage

import (
	"io/fs"
	"syscall"
	"time"
)

// fileTimes reports creation and access times. Linux stat has no birth time,
// so the inode change time stands in for creation.
func fileTimes(info fs.FileInfo) (created, accessed time.Time) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.ModTime(), info.ModTime()
	}
	return time.Unix(st.Ctim.Unix()), time.Unix(st.Atim.Unix())
}
