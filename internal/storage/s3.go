package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/letterpack/letterpack/internal/settings"
)

// putObjectAPI is the part of *s3.Client the sink uses
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads documents to an S3-compatible bucket (AWS S3, MinIO, etc.)
type S3Sink struct {
	client putObjectAPI
	bucket string
	prefix string
	logger *zap.Logger
}

// S3Option is a functional option for configuring S3Sink
type S3Option func(*S3Sink)

// WithLogger sets a custom logger for S3Sink
func WithLogger(logger *zap.Logger) S3Option {
	return func(s *S3Sink) {
		s.logger = logger
	}
}

// WithClient replaces the S3 client
func WithClient(client putObjectAPI) S3Option {
	return func(s *S3Sink) {
		s.client = client
	}
}

// NewS3Sink creates an S3Sink from configuration. Static credentials are used
// when both keys are set, otherwise the default AWS credential chain.
func NewS3Sink(ctx context.Context, cfg *settings.StorageConfig, opts ...S3Option) (*S3Sink, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}

	sink := &S3Sink{
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(sink)
	}
	if sink.client != nil {
		return sink, nil
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	endpoint := cfg.Endpoint
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}
	sink.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return sink, nil
}

// Bucket returns the bucket name
func (s *S3Sink) Bucket() string {
	return s.bucket
}

// Put uploads r under prefix/key and returns its s3:// URL
func (s *S3Sink) Put(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}
	fullKey := strings.TrimPrefix(path.Join(s.prefix, key), "/")

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(fullKey),
		Body:   r,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	location := "s3://" + s.bucket + "/" + fullKey
	s.logger.Debug("Uploaded object", zap.String("location", location))
	return location, nil
}
