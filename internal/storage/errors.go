// Package storage keeps the binary artifacts that belong to a resume, such as
// preview screenshots and exported PDFs. The System interface has a
// filesystem backend for development and an S3 compatible backend.
package storage

import (
	"errors"
	"strings"

	"github.com/minio/minio-go/v7"
)

// Storage errors returned by System implementations.
var (
	// ErrNotFound indicates the requested key does not exist in storage.
	ErrNotFound = errors.New("storage: key not found")

	// ErrPermissionDenied indicates insufficient permissions to access the key.
	ErrPermissionDenied = errors.New("storage: permission denied")

	// ErrInvalidKey indicates the key is empty or escapes the storage root.
	ErrInvalidKey = errors.New("storage: invalid key")
)

// IsNoSuchKey reports whether an S3 error means the object does not exist.
func IsNoSuchKey(err error) bool {
	if err == nil {
		return false
	}

	var minioErr minio.ErrorResponse
	if errors.As(err, &minioErr) {
		switch strings.ToLower(strings.TrimSpace(minioErr.Code)) {
		case "nosuchkey", "notfound":
			return true
		}
	}

	// Some gateways flatten the error into its message.
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "nosuchkey") ||
		strings.Contains(lower, "specified key does not exist")
}
