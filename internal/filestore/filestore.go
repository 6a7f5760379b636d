// Package filestore keeps uploaded document bytes on disk, keyed by filename
// with create-if-absent semantics.
package filestore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"docrag/internal/ragerr"
)

// Store writes uploads under a single directory. Save refuses to overwrite:
// an existing file of the same name is a conflict, matching the metadata
// store's uniqueness rule.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save writes data to a new file named name and returns its path. Names that
// would escape the upload directory are rejected.
func (s *Store) Save(name string, data []byte) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", ragerr.New(ragerr.KindValidation, "invalid filename %q", name)
	}
	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", ragerr.Wrap(ragerr.KindConflict, err, "file %q already exists", name)
		}
		return "", ragerr.Wrap(ragerr.KindStore, err, "create file %q", name)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		os.Remove(path)
		return "", ragerr.Wrap(ragerr.KindStore, err, "write file %q", name)
	}
	return path, nil
}

// Remove deletes the stored file; removing a missing file is not an error.
func (s *Store) Remove(name string) error {
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
