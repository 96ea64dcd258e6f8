package services

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appConfig "github.com/kendall-kelly/marketplace-api/config"
)

// ObjectStore is the blob storage the image service writes to
type ObjectStore interface {
	// PutObject stores body under key. It fails if key already exists.
	PutObject(ctx context.Context, key string, body io.Reader, contentType string) error
	// PublicURL returns the URL clients use to fetch key
	PublicURL(key string) string
}

// S3Service stores objects in an S3 (or S3-compatible) bucket
type S3Service struct {
	client *s3.Client
	bucket string
	cfg    *appConfig.Config
}

// NewS3Service builds an S3 client from the application configuration.
// Static credentials are used when both keys are set, otherwise the default
// AWS credential chain applies.
func NewS3Service(ctx context.Context, cfg *appConfig.Config) (*S3Service, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)))
	}

	awsConfig, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		// S3-compatible endpoints (MinIO, LocalStack) need path-style addressing
		if cfg.AWSEndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.AWSEndpointURL)
			o.UsePathStyle = true
		}
	})

	return &S3Service{
		client: client,
		bucket: cfg.AWSS3Bucket,
		cfg:    cfg,
	}, nil
}

// PutObject uploads body to the bucket under key
func (s *S3Service) PutObject(ctx context.Context, key string, body io.Reader, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
		IfNoneMatch: aws.String("*"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}
	return nil
}

// PublicURL returns the public URL of key
func (s *S3Service) PublicURL(key string) string {
	return s.cfg.PublicObjectURL(key)
}
