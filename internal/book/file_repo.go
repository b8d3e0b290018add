package book

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileRepo keeps the collection in a single JSON file.
type FileRepo struct {
	path string
}

func NewFileRepo(path string) *FileRepo {
	return &FileRepo{path: path}
}

// Path returns the backing file location.
func (r *FileRepo) Path() string {
	return r.path
}

func (r *FileRepo) Load(ctx context.Context) ([]Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		var created bool
		created, err = r.create()
		if err != nil {
			return nil, err
		}
		if created {
			return []Book{}, nil
		}
		// Someone else created it between our read and create.
		data, err = os.ReadFile(r.path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}

	books, err := unmarshalCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.path, err)
	}
	return books, nil
}

func (r *FileRepo) Save(ctx context.Context, books []Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := marshalCollection(books)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.path, err)
	}

	tmp, err := r.writeTemp(data)
	if err != nil {
		return err
	}
	if err := os.Rename(tmp, r.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", r.path, err)
	}
	return nil
}

// create publishes an empty array at path unless a file is already there.
// The link is the atomic step: readers see either no file or "[]".
func (r *FileRepo) create() (bool, error) {
	tmp, err := r.writeTemp([]byte("[]"))
	if err != nil {
		return false, err
	}
	defer os.Remove(tmp)

	if err := os.Link(tmp, r.path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("create %s: %w", r.path, err)
	}
	return true, nil
}

func (r *FileRepo) writeTemp(data []byte) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(r.path), "."+filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("write %s: %w", r.path, err)
	}
	name := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(name)
		return "", fmt.Errorf("write %s: %w", r.path, err)
	}
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		os.Remove(name)
		return "", fmt.Errorf("write %s: %w", r.path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("write %s: %w", r.path, err)
	}
	return name, nil
}
