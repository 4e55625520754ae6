package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/nikhilr05/civicreport/internal/config"
	"github.com/nikhilr05/civicreport/internal/httperr"
)

// EvidenceStore turns uploaded photo bytes into a durable, publicly
// retrievable URL. Callers never branch on which backend is active.
type EvidenceStore interface {
	Store(ctx context.Context, data []byte, filename string) (string, error)
}

// NewFromConfig selects the backend once at startup.
func NewFromConfig(cfg config.StorageConfig) (EvidenceStore, error) {
	switch cfg.Backend {
	case "local":
		return NewLocalStore(cfg.UploadDir)
	case "minio":
		return NewMinioStore(cfg.Minio)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// objectName builds a collision-resistant name so concurrent uploads of
// identically named files never overwrite each other.
func objectName(filename string) string {
	return uuid.NewString() + filepath.Ext(filename)
}

func validate(data []byte) error {
	if len(data) == 0 {
		return httperr.NewUpload(fmt.Errorf("empty evidence payload"))
	}
	return nil
}
