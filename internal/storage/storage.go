package storage

import (
	"context"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage defines the interface for object storage operations.
type FileStorage interface {
	// Upload writes an object server-side. Used by the upload endpoint, which
	// receives the bytes itself rather than handing the client a presigned URL.
	Upload(ctx context.Context, objectKey string, data []byte, contentType string) error

	// Download fetches an object into memory. The download endpoint needs the
	// raw bytes to optionally re-encode them before streaming to the client.
	Download(ctx context.Context, objectKey string) ([]byte, error)

	// PublicURL returns the stable public URL for an object key.
	PublicURL(objectKey string) string

	// ObjectKeyFromURL extracts the object key from a public URL produced by
	// this storage backend. Returns false when the URL does not belong to it.
	ObjectKeyFromURL(rawURL string) (string, bool)

	// GeneratePresignedUploadURL creates a temporary URL that allows PUT requests
	// for uploading an object directly to the storage provider.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET requests
	// for downloading/viewing an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}
