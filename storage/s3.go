// Package storage file: storage/s3.go
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"catering-admin/config"
	"catering-admin/logger"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-xray-sdk-go/xray"
)

// make sure S3Storage satisfies BlobStore
var _ BlobStore = (*S3Storage)(nil)

// S3Storage stores objects in any S3-compatible service (AWS S3, MinIO,
// Supabase storage's S3 endpoint).
type S3Storage struct {
	client    s3iface.S3API
	region    string
	publicURL string
	buckets   map[Bucket]string
}

// S3Option configures S3Storage.
type S3Option func(*S3Storage)

// WithS3Client swaps the SDK client, mainly for tests.
func WithS3Client(client s3iface.S3API) S3Option {
	return func(s *S3Storage) { s.client = client }
}

// WithTracing instruments the SDK client with X-Ray subsegments.
func WithTracing() S3Option {
	return func(s *S3Storage) {
		if c, ok := s.client.(*s3.S3); ok {
			xray.AWS(c.Client)
		}
	}
}

// NewS3Storage builds the S3 client from configuration.
func NewS3Storage(cfg config.StorageConfig, opts ...S3Option) (*S3Storage, error) {
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("storage access key and secret key are required")
	}

	awsCfg := aws.NewConfig().
		WithRegion(cfg.Region).
		WithCredentials(credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")).
		WithS3ForcePathStyle(cfg.UsePathStyle)
	if cfg.Endpoint != "" {
		awsCfg = awsCfg.WithEndpoint(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	s := &S3Storage{
		client:    s3.New(sess),
		region:    cfg.Region,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		buckets: map[Bucket]string{
			BucketMenuImages:   cfg.MenuBucket,
			BucketAdminAvatars: cfg.AvatarBucket,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// bucketName maps a logical bucket onto the configured bucket name.
func (s *S3Storage) bucketName(b Bucket) string {
	if name := s.buckets[b]; name != "" {
		return name
	}
	return string(b)
}

// Upload writes data under key. Without Overwrite an existing key is an error.
func (s *S3Storage) Upload(ctx context.Context, bucket Bucket, key string, data []byte, opts UploadOptions) error {
	name := s.bucketName(bucket)

	if !opts.Overwrite {
		_, err := s.client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(name),
			Key:    aws.String(key),
		})
		if err == nil {
			return fmt.Errorf("%s/%s: %w", name, key, ErrObjectExists)
		}
		if !isNotFound(err) {
			return fmt.Errorf("check %s/%s: %w", name, key, err)
		}
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(name),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if opts.ContentType != "" {
		input.ContentType = aws.String(opts.ContentType)
	}

	if _, err := s.client.PutObjectWithContext(ctx, input); err != nil {
		return fmt.Errorf("put %s/%s: %w", name, key, err)
	}
	logger.Debug.Printf("[S3Storage.Upload] Stored %s/%s (%d bytes)", name, key, len(data))
	return nil
}

// PublicURL returns the public object URL. A configured public base wins
// over the virtual-hosted AWS URL.
func (s *S3Storage) PublicURL(bucket Bucket, key string) string {
	name := s.bucketName(bucket)
	if s.publicURL != "" {
		return s.publicURL + "/" + name + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", name, s.region, key)
}

func isNotFound(err error) bool {
	var reqErr awserr.RequestFailure
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode() == http.StatusNotFound
	}
	return false
}
