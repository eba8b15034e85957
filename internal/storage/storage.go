// Package storage reads a local directory tree as a storage bucket: listing a
// location, ordering it, and resolving breadcrumb segments to paths.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/LFroesch/shelf/internal/utils"
)

// ErrNotFound is returned when a set of segments does not name a folder.
var ErrNotFound = errors.New("folder not found")

// Entry is one item in a listing.
type Entry struct {
	Name       string
	Path       string
	IsDir      bool
	Size       int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
	AccessedAt time.Time
}

// Key orders a listing.
type Key int

const (
	ByName Key = iota
	ByCreated
	ByUpdated
	ByAccessed
)

// List reads dir. Hidden entries are skipped unless showHidden is set, and
// well-known clutter (.DS_Store, Thumbs.db) is always skipped.
func List(dir string, showHidden bool) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", filepath.Base(dir), err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		if !showHidden && strings.HasPrefix(name, ".") {
			continue
		}
		if utils.ShouldIgnore(name) {
			continue
		}

		path := filepath.Join(dir, name)
		// Follow symlinks so linked folders can be browsed into.
		info, err := os.Stat(path)
		if err != nil {
			info, err = de.Info()
			if err != nil {
				continue
			}
		}
		entries = append(entries, newEntry(path, info))
	}
	return entries, nil
}

func newEntry(path string, info fs.FileInfo) Entry {
	created, accessed := fileTimes(info)
	return Entry{
		Name:       info.Name(),
		Path:       path,
		IsDir:      info.IsDir(),
		Size:       info.Size(),
		CreatedAt:  created,
		UpdatedAt:  info.ModTime(),
		AccessedAt: accessed,
	}
}

// Sort orders entries in place: folders first, then by key. Time keys put the
// most recent first; names compare case-insensitively.
func Sort(entries []Entry, key Key) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}

		var ta, tb time.Time
		switch key {
		case ByCreated:
			ta, tb = a.CreatedAt, b.CreatedAt
		case ByUpdated:
			ta, tb = a.UpdatedAt, b.UpdatedAt
		case ByAccessed:
			ta, tb = a.AccessedAt, b.AccessedAt
		}
		if !ta.Equal(tb) {
			return ta.After(tb)
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
}

// Time returns the entry's timestamp for key. ByName reports the
// modification time.
func (e Entry) Time(key Key) time.Time {
	switch key {
	case ByCreated:
		return e.CreatedAt
	case ByAccessed:
		return e.AccessedAt
	default:
		return e.UpdatedAt
	}
}

// Resolve joins segments below root and checks the result is a folder inside
// root. Each segment must be a single folder name; "." and ".." are rejected
// so the segments always spell out the folder they resolve to.
func Resolve(root string, segments []string) (string, error) {
	for _, seg := range segments {
		if !validSegment(seg) {
			return "", fmt.Errorf("%s: invalid folder name %q: %w", strings.Join(segments, "/"), seg, ErrNotFound)
		}
	}
	path := Join(root, segments)
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s: %w", strings.Join(segments, "/"), ErrNotFound)
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", strings.Join(segments, "/"), ErrNotFound)
		}
		return "", fmt.Errorf("cannot open %s: %w", strings.Join(segments, "/"), err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a folder: %w", strings.Join(segments, "/"), ErrNotFound)
	}
	return path, nil
}

func validSegment(seg string) bool {
	if seg == "" || seg == "." || seg == ".." {
		return false
	}
	return !strings.ContainsAny(seg, `/`+string(filepath.Separator))
}

// Join builds the path for segments below root without touching the disk.
func Join(root string, segments []string) string {
	return filepath.Join(append([]string{root}, segments...)...)
}

// NearestExisting drops trailing segments until they name an existing folder.
func NearestExisting(root string, segments []string) []string {
	for n := len(segments); n > 0; n-- {
		if _, err := Resolve(root, segments[:n]); err == nil {
			return segments[:n]
		}
	}
	return nil
}
