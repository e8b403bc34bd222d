// Package storage persists uploaded files under a single trusted root
// directory and refuses to resolve any reference that escapes it.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrInvalidPath indicates a reference that escapes the trusted root.
	ErrInvalidPath = errors.New("invalid file path")
	// ErrFileNotFound indicates a well-formed reference with no file behind it.
	ErrFileNotFound = errors.New("file not found")
)

// LocalStore stores uploads on the local filesystem. References handed out by
// Save are slash separated and carry the root directory name as their first
// element, so they can be persisted and later resolved back to a real path.
type LocalStore struct {
	Root string
}

// NewLocalStore returns a store rooted at the given directory.
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{Root: root}
}

// Save writes src into <root>/<category>/<filename> and returns the reference
// to store. The filename must not contain path separators.
func (s *LocalStore) Save(category, filename string, src io.Reader) (string, error) {
	dir := filepath.Join(s.Root, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	dst := filepath.Join(dir, filename)
	if filepath.Dir(dst) != filepath.Clean(dir) {
		return "", ErrInvalidPath
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer func() {
		_ = out.Close()
	}()

	if _, err := io.Copy(out, src); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}

	ref := filepath.Join(filepath.Base(filepath.Clean(s.Root)), category, filename)
	return filepath.ToSlash(ref), nil
}

// Resolve turns a stored reference back into an absolute path. The reference
// is validated lexically before the filesystem is consulted: anything that
// escapes the root is rejected with ErrInvalidPath whether or not a file
// exists at the target.
func (s *LocalStore) Resolve(ref string) (string, error) {
	root, err := filepath.Abs(s.Root)
	if err != nil {
		return "", fmt.Errorf("resolve storage root: %w", err)
	}

	abs := filepath.Clean(filepath.Join(filepath.Dir(root), filepath.FromSlash(ref)))

	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrInvalidPath
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrFileNotFound
		}
		return "", err
	}
	if info.IsDir() {
		return "", ErrFileNotFound
	}

	return abs, nil
}

// Remove deletes the file behind a stored reference.
func (s *LocalStore) Remove(ref string) error {
	abs, err := s.Resolve(ref)
	if err != nil {
		return err
	}
	return os.Remove(abs)
}
