package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jonathan/resume-builder/internal/config"
)

// minioStore implements System on an S3 compatible bucket.
type minioStore struct {
	client *minio.Client
	bucket string
	logger *slog.Logger
}

// NewMinIO connects to the configured endpoint and makes sure the bucket
// exists, creating it when AutoCreateBucket is set.
func NewMinIO(ctx context.Context, cfg config.S3Config, logger *slog.Logger) (System, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if !cfg.AutoCreateBucket {
			return nil, fmt.Errorf("bucket %q does not exist (auto create disabled)", cfg.Bucket)
		}
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("make bucket %q: %w", cfg.Bucket, err)
		}
	}

	logger.Info("storage initialized", "backend", "s3", "endpoint", cfg.Endpoint, "bucket", cfg.Bucket)
	return &minioStore{
		client: client,
		bucket: cfg.Bucket,
		logger: logger.With("system", "storage"),
	}, nil
}

func (m *minioStore) Store(ctx context.Context, key string, data []byte) error {
	key, err := objectKey(key)
	if err != nil {
		return err
	}

	opts := minio.PutObjectOptions{ContentType: http.DetectContentType(data)}
	if _, err := m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(data), int64(len(data)), opts); err != nil {
		return fmt.Errorf("put object %q: %w", key, err)
	}
	return nil
}

func (m *minioStore) Retrieve(ctx context.Context, key string) ([]byte, error) {
	key, err := objectKey(key)
	if err != nil {
		return nil, err
	}

	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %q: %w", key, err)
	}
	defer obj.Close()

	// GetObject is lazy; a missing key surfaces on the first read.
	data, err := io.ReadAll(obj)
	if err != nil {
		if IsNoSuchKey(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read object %q: %w", key, err)
	}
	return data, nil
}

func (m *minioStore) Delete(ctx context.Context, key string) error {
	key, err := objectKey(key)
	if err != nil {
		return err
	}

	if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		if IsNoSuchKey(err) {
			return nil
		}
		return fmt.Errorf("remove object %q: %w", key, err)
	}
	return nil
}

func (m *minioStore) DeletePrefix(ctx context.Context, prefix string) error {
	prefix, err := objectKey(prefix)
	if err != nil {
		return err
	}
	prefix += "/"

	objCh := m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	keys := make([]string, 0, 32)
	for object := range objCh {
		if object.Err != nil {
			return fmt.Errorf("list objects under %q: %w", prefix, object.Err)
		}
		if object.Key != "" {
			keys = append(keys, object.Key)
		}
	}

	var errs []error
	for _, key := range keys {
		if err := m.Delete(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		m.logger.Error("delete objects under prefix failed", "prefix", prefix, "failed_count", len(errs))
		return fmt.Errorf("delete objects under %q: %w", prefix, errors.Join(errs...))
	}
	return nil
}

func (m *minioStore) Exists(ctx context.Context, key string) (bool, error) {
	key, err := objectKey(key)
	if err != nil {
		return false, err
	}

	if _, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{}); err != nil {
		if IsNoSuchKey(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat object %q: %w", key, err)
	}
	return true, nil
}

// objectKey normalizes a key into bucket form and rejects traversal.
func objectKey(key string) (string, error) {
	key = strings.Trim(strings.TrimSpace(key), "/")
	if key == "" {
		return "", ErrInvalidKey
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return "", ErrInvalidKey
		}
	}
	return key, nil
}
