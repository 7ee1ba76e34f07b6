package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

var errStorageDisabled = errors.New("video storage is not configured; set HIRELINE_S3_* to enable uploads")

// VideoStorage uploads candidate videos to S3-compatible object storage and
// hands back public retrieval URLs. Keys are write-once: uploads refuse to
// overwrite an existing object instead of upserting.
type VideoStorage struct {
	bucket     string
	region     string
	publicBase string
	client     *s3.Client
	log        zerolog.Logger
	disabled   bool
}

func NewVideoStorage(ctx context.Context, cfg *Config, log zerolog.Logger) (*VideoStorage, error) {
	logger := log.With().Str("component", "video-storage").Logger()
	storage := &VideoStorage{
		bucket:     strings.TrimSpace(cfg.S3Bucket),
		region:     cfg.S3Region,
		publicBase: strings.TrimRight(cfg.S3PublicBaseURL, "/"),
		log:        logger,
	}

	accessKey := strings.TrimSpace(cfg.S3AccessKeyID)
	secretKey := strings.TrimSpace(cfg.S3SecretKey)
	if storage.bucket == "" || accessKey == "" || secretKey == "" {
		logger.Warn().Msg("S3 bucket or credentials not set; video uploads will be disabled until configured")
		storage.disabled = true
		return storage, nil
	}

	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if cfg.S3Endpoint != "" {
			return aws.Endpoint{
				URL:           cfg.S3Endpoint,
				PartitionID:   "aws",
				SigningRegion: cfg.S3Region,
			}, nil
		}
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
		awsconfig.WithEndpointResolverWithOptions(resolver),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	storage.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.S3UsePathStyle
	})
	return storage, nil
}

// Enabled reports whether the storage backend is configured.
func (s *VideoStorage) Enabled() bool {
	return !s.disabled
}

// Upload stores one object and returns its public URL. If-None-Match makes
// the write fail on a key collision rather than overwrite.
func (s *VideoStorage) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	if s.disabled {
		return "", errStorageDisabled
	}
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String("max-age=3600"),
		IfNoneMatch:   aws.String("*"),
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return s.PublicURL(key), nil
}

// PublicURL builds the stable retrieval URL for a stored key.
func (s *VideoStorage) PublicURL(key string) string {
	if s.publicBase != "" {
		return s.publicBase + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
