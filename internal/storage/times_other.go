//go:build !linux && !darwin

package storage

import (
	"io/fs"
	"time"
)

// fileTimes falls back to the modification time where the platform stat is
// not available.
func fileTimes(info fs.FileInfo) (created, accessed time.Time) {
	return info.ModTime(), info.ModTime()
}
