package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nikhilr05/civicreport/internal/httperr"
)

// LocalStore writes evidence files under a fixed uploads directory and
// returns root-relative URLs; the directory is served statically by the
// HTTP layer.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the uploads directory if absent.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %q: %w", dir, err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Store(_ context.Context, data []byte, filename string) (string, error) {
	if err := validate(data); err != nil {
		return "", err
	}

	name := objectName(filename)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", httperr.NewUpload(err)
	}

	return "/uploads/" + name, nil
}
