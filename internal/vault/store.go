package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by ReadText when no file exists at the path.
var ErrNotFound = errors.New("vault: file not found")

// Store is the document-store capability the sync engine consumes. Paths
// are slash-separated and relative to the store root.
type Store interface {
	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// ReadText returns the file content, or ErrNotFound.
	ReadText(path string) (string, error)

	// WriteText replaces the file at path durably: the content is written
	// to a temporary file and atomically renamed over the canonical path,
	// so a crash never leaves a half-written file.
	WriteText(path, text string) error

	// CreateIfAbsent writes the file only if nothing exists at path at
	// write time, returning the path either way.
	CreateIfAbsent(path, text string) (string, error)

	// EnsureFolder creates the folder (and parents) if absent. Idempotent.
	EnsureFolder(path string) error
}

// DirStore implements Store over a directory on the local filesystem.
type DirStore struct {
	root string
}

// NewDirStore returns a DirStore rooted at dir.
func NewDirStore(dir string) *DirStore {
	return &DirStore{root: dir}
}

// Root returns the store's root directory.
func (s *DirStore) Root() string { return s.root }

func (s *DirStore) abs(path string) string {
	return filepath.Join(s.root, filepath.FromSlash(path))
}

func (s *DirStore) Exists(path string) bool {
	_, err := os.Stat(s.abs(path))
	return err == nil
}

func (s *DirStore) ReadText(path string) (string, error) {
	b, err := os.ReadFile(s.abs(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", err
	}
	return string(b), nil
}

func (s *DirStore) WriteText(path, text string) error {
	target := s.abs(path)
	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func (s *DirStore) CreateIfAbsent(path, text string) (string, error) {
	f, err := os.OpenFile(s.abs(path), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return path, nil
		}
		return "", err
	}
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

func (s *DirStore) EnsureFolder(path string) error {
	return os.MkdirAll(s.abs(path), 0o755)
}
