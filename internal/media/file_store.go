package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// fileStore implements Store on the local file system. Files land in a
// directory the router serves under /media/.
type fileStore struct {
	dir    string
	logger zerolog.Logger
}

// NewFileStore creates a local file system media store rooted at dir.
func NewFileStore(dir string, logger zerolog.Logger) Store {
	return &fileStore{
		dir:    dir,
		logger: logger.With().Str("component", "media-file-store").Logger(),
	}
}

// Put writes the file body under key and returns the path it is served from.
func (s *fileStore) Put(_ context.Context, key, _ string, body io.Reader) (string, error) {
	path := filepath.Join(s.dir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("failed to create media file")
		return "", fmt.Errorf("failed to create media file %s: %w", path, err)
	}
	defer file.Close()

	written, err := io.Copy(file, body)
	if err != nil {
		return "", fmt.Errorf("failed to write media file %s: %w", path, err)
	}

	s.logger.Info().
		Str("path", path).
		Int64("bytes", written).
		Msg("media file stored")

	return "/media/" + key, nil
}
