// Package media stores uploaded product images, either in S3 or on the
// local file system.
package media

import (
	"context"
	"io"
)

// Store persists an uploaded file and returns the public URL or path it is
// served from.
type Store interface {
	// Put writes the file body under key and returns its location.
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}
