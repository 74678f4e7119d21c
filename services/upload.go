// Package services file: services/upload.go
package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"catering-admin/apperr"
	"catering-admin/logger"
	"catering-admin/storage"

	"github.com/gabriel-vasile/mimetype"
)

// MaxUploadSize is the largest accepted image, in bytes.
const MaxUploadSize = 5 << 20

// FileUpload is a file chosen in a form, read into memory.
// Data holds at most MaxUploadSize+1 bytes.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// NewFileUpload reads a multipart file. When the browser sent no usable
// content type the type is sniffed from the bytes.
func NewFileUpload(fh *multipart.FileHeader) (*FileUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	ct := fh.Header.Get("Content-Type")
	if ct == "" || ct == "application/octet-stream" {
		ct = mimetype.Detect(data).String()
	}
	return &FileUpload{Filename: fh.Filename, ContentType: ct, Size: fh.Size, Data: data}, nil
}

// UploadPipeline validates an image, stores it and resolves its public URL.
type UploadPipeline struct {
	store   storage.BlobStore
	metrics MetricsPublisher
	now     func() time.Time
}

// NewUploadPipeline creates a pipeline writing to store.
func NewUploadPipeline(store storage.BlobStore, metrics MetricsPublisher) *UploadPipeline {
	if metrics == nil {
		metrics = NopPublisher{}
	}
	return &UploadPipeline{store: store, metrics: metrics, now: time.Now}
}

// Upload runs type check, size check, key derivation, upload and URL
// resolution in that order and stops at the first failure.
func (p *UploadPipeline) Upload(ctx context.Context, bucket storage.Bucket, file *FileUpload) (string, error) {
	if !strings.HasPrefix(file.ContentType, "image/") {
		return "", apperr.ErrInvalidFileType
	}
	if file.Size > MaxUploadSize || len(file.Data) > MaxUploadSize {
		return "", apperr.ErrFileTooLarge
	}

	key := ObjectKey(p.now(), file.Filename)
	err := p.store.Upload(ctx, bucket, key, file.Data, storage.UploadOptions{
		ContentType: file.ContentType,
		Overwrite:   true,
	})
	if err != nil {
		logger.Error.Printf("[UploadPipeline.Upload] %s/%s failed: %v", bucket, key, err)
		p.metrics.Publish(ctx, MetricUploadFailures, 1, UnitCount, map[string]string{"Bucket": string(bucket)})
		return "", apperr.Upload(string(bucket), err)
	}

	p.metrics.Publish(ctx, MetricUploadBytes, float64(len(file.Data)), UnitBytes, map[string]string{"Bucket": string(bucket)})
	logger.Info.Printf("[UploadPipeline.Upload] Stored %s/%s", bucket, key)
	return p.store.PublicURL(bucket, key), nil
}

// ObjectKey builds "<unix-nanos>-<filename>" with every whitespace character
// removed from the filename.
func ObjectKey(now time.Time, filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" {
		base = "upload"
	}
	return fmt.Sprintf("%d-%s", now.UnixNano(), strings.Join(strings.Fields(base), ""))
}
