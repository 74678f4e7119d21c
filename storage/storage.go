// Package storage uploads files to object storage and resolves their public URLs.
// File: storage/storage.go
package storage

import (
	"context"
	"errors"
)

// Bucket is the logical bucket an upload belongs to.
type Bucket string

const (
	BucketMenuImages   Bucket = "menu-images"
	BucketAdminAvatars Bucket = "admin-avatars"
)

// ErrObjectExists is returned when overwrite is off and the key is taken.
var ErrObjectExists = errors.New("object already exists")

// UploadOptions controls a single upload.
type UploadOptions struct {
	ContentType string
	Overwrite   bool
}

// BlobStore is the object storage contract used by the upload pipeline.
type BlobStore interface {
	Upload(ctx context.Context, bucket Bucket, key string, data []byte, opts UploadOptions) error
	// PublicURL never fails; it only formats a URL.
	PublicURL(bucket Bucket, key string) string
}
