package storage

import (
	"context"
	"fmt"
	"log/slog"
	"path"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/config"
)

// System defines the storage operations for binary artifacts.
type System interface {
	// Store saves data at the specified key, overwriting existing contents.
	// Returns ErrInvalidKey if the key is empty or contains path traversal.
	Store(ctx context.Context, key string, data []byte) error

	// Retrieve returns the data stored at the specified key.
	// Returns ErrNotFound if the key does not exist.
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Delete deletes the data at the specified key.
	// Returns nil if the key does not exist.
	Delete(ctx context.Context, key string) error

	// DeletePrefix deletes every key below prefix. A prefix names a directory:
	// "a/b" removes "a/b/c" but not "a/bc".
	DeletePrefix(ctx context.Context, prefix string) error

	// Exists reports whether a key exists and is accessible.
	Exists(ctx context.Context, key string) (bool, error)
}

// New creates the storage system selected by cfg.Backend.
func New(ctx context.Context, cfg *config.StorageConfig, logger *slog.Logger) (System, error) {
	switch cfg.Backend {
	case "", config.StorageBackendLocal:
		return NewFilesystem(cfg.LocalPath, logger)
	case config.StorageBackendS3:
		return NewMinIO(ctx, cfg.S3, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// ScreenshotsPrefix is where preview screenshots of a resume are kept.
func ScreenshotsPrefix(userID, resumeID uuid.UUID) string {
	return path.Join("uploads", userID.String(), "screenshots", resumeID.String())
}

// PDFsPrefix is where exported PDFs of a resume are kept.
func PDFsPrefix(userID, resumeID uuid.UUID) string {
	return path.Join("uploads", userID.String(), "pdfs", resumeID.String())
}

// ResumePrefixes lists every prefix holding artifacts of a resume.
func ResumePrefixes(userID, resumeID uuid.UUID) []string {
	return []string{
		ScreenshotsPrefix(userID, resumeID),
		PDFsPrefix(userID, resumeID),
	}
}
