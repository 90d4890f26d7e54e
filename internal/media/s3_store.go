package media

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// s3Store implements Store on AWS S3.
type s3Store struct {
	client *s3.Client
	bucket string
	region string
	prefix string
	logger zerolog.Logger
}

// NewS3Store creates an S3-backed media store.
func NewS3Store(ctx context.Context, bucket, region, prefix string, logger zerolog.Logger) (Store, error) {
	logger = logger.With().Str("component", "media-s3-store").Logger()

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 media store initialised")

	return &s3Store{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
		prefix: prefix,
		logger: logger,
	}, nil
}

// Put uploads the file body to S3 and returns its public URL.
func (s *s3Store) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	fullKey := s.prefix + key

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(fullKey),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", fullKey).
			Msg("failed to upload media to S3")
		return "", fmt.Errorf("failed to upload media to S3 (bucket=%s, key=%s): %w", s.bucket, fullKey, err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, fullKey)

	s.logger.Info().
		Str("bucket", s.bucket).
		Str("key", fullKey).
		Msg("media uploaded to S3")

	return url, nil
}

// fallbackStore tries S3 first and falls back to the local file system when
// the upload fails, so an S3 outage degrades to local storage instead of
// failing the dashboard request.
type fallbackStore struct {
	s3Store   Store
	fileStore Store
	s3Enabled bool
	logger    zerolog.Logger
}

// NewFallbackStore creates a store that tries S3 first, then the local file
// system. If s3Store is nil only the file store is used.
func NewFallbackStore(s3Store, fileStore Store, s3Enabled bool, logger zerolog.Logger) Store {
	return &fallbackStore{
		s3Store:   s3Store,
		fileStore: fileStore,
		s3Enabled: s3Enabled,
		logger:    logger.With().Str("component", "media-fallback-store").Logger(),
	}
}

// Put attempts the S3 upload first, then falls back to local storage.
func (s *fallbackStore) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	if s.s3Enabled && s.s3Store != nil {
		url, err := s.s3Store.Put(ctx, key, contentType, body)
		if err == nil {
			return url, nil
		}

		s.logger.Warn().
			Err(err).
			Str("key", key).
			Msg("S3 upload failed, falling back to local file system")

		// The body may be partially consumed; a seekable body can retry.
		seeker, ok := body.(io.Seeker)
		if !ok {
			return "", fmt.Errorf("S3 upload failed and body is not seekable: %w", err)
		}
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return "", fmt.Errorf("failed to rewind upload body: %w", err)
		}
	}

	return s.fileStore.Put(ctx, key, contentType, body)
}
