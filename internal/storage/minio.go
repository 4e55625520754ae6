package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/nikhilr05/civicreport/internal/config"
	"github.com/nikhilr05/civicreport/internal/httperr"
)

// evidenceFolder is the fixed logical folder all evidence objects live
// under inside the bucket.
const evidenceFolder = "issues"

// MinioStore keeps evidence in a fixed object storage bucket and
// returns direct public URLs.
type MinioStore struct {
	client *minio.Client
	cfg    config.MinioConfig
}

// NewMinioStore connects to MinIO and creates the bucket if it does
// not exist yet.
func NewMinioStore(cfg config.MinioConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MinIO: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %q: %w", cfg.Bucket, err)
		}
	}

	return &MinioStore{client: client, cfg: cfg}, nil
}

func (s *MinioStore) Store(ctx context.Context, data []byte, filename string) (string, error) {
	if err := validate(data); err != nil {
		return "", err
	}

	object := fmt.Sprintf("%s/%s", evidenceFolder, objectName(filename))
	_, err := s.client.PutObject(ctx, s.cfg.Bucket, object,
		bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		return "", httperr.NewUpload(err)
	}

	scheme := "http"
	if s.cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.Endpoint, s.cfg.Bucket, object), nil
}
