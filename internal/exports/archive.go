package exports

import (
	"bytes"
	"context"
	"fmt"

	"leadreach_backend/platform/config"
	"leadreach_backend/platform/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Archiver stores a copy of each generated export in object storage.
type Archiver struct {
	client *minio.Client
	bucket string
	log    *logger.Logger
}

func NewArchiver(cfg config.StorageConfig, log *logger.Logger) (*Archiver, error) {
	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &Archiver{
		client: client,
		bucket: cfg.GetMinIOBucketExports(),
		log:    log,
	}, nil
}

// EnsureBucket creates the export bucket when it does not exist yet.
func (a *Archiver) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %q: %w", a.bucket, err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %q: %w", a.bucket, err)
	}
	return nil
}

// Store uploads an export snapshot under the given object name.
func (a *Archiver) Store(ctx context.Context, objectName string, data []byte, contentType string) error {
	_, err := a.client.PutObject(ctx, a.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		a.log.ExternalAPIError("minio", "put object", err)
		return fmt.Errorf("store export %q: %w", objectName, err)
	}
	return nil
}
