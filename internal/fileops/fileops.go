package fileops

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidName is returned for folder names that cannot be created as a
// single child of the current location.
var ErrInvalidName = errors.New("invalid name")

// ValidateName checks a user-supplied folder name
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	switch {
	case trimmed == "":
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	case trimmed == "." || trimmed == "..":
		return fmt.Errorf("%w: %q is reserved", ErrInvalidName, trimmed)
	case strings.ContainsAny(trimmed, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, trimmed)
	}
	return nil
}

// CreateDir creates a new directory
func CreateDir(dir, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	path := filepath.Join(dir, strings.TrimSpace(name))
	if err := os.Mkdir(path, 0755); err != nil {
		return fmt.Errorf("cannot create folder: %w", err)
	}
	return nil
}

// CopyFileOrDir copies a file or directory from src to dst
func CopyFileOrDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	if srcInfo.IsDir() {
		return copyDir(src, dst)
	}
	return copyFile(src, dst, srcInfo.Mode().Perm())
}

// copyFile streams a single file, keeping its permission bits
func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// copyDir copies a directory recursively
func copyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		if err := CopyFileOrDir(srcPath, dstPath); err != nil {
			return err
		}
	}

	return nil
}

// CopyMultiple copies each source into destDir under its own base name.
// Copying stops at the first failure; the error names the file.
func CopyMultiple(sources []string, destDir string) error {
	for _, srcPath := range sources {
		destPath := filepath.Join(destDir, filepath.Base(srcPath))
		if filepath.Clean(srcPath) == filepath.Clean(destPath) {
			continue
		}
		if err := CopyFileOrDir(srcPath, destPath); err != nil {
			return fmt.Errorf("cannot upload %s: %w", filepath.Base(srcPath), err)
		}
	}
	return nil
}
