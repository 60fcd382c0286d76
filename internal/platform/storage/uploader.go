package storage

import (
	"context"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
)

// BucketUploader writes image bytes into a Cloud Storage bucket and returns
// a publicly retrievable URL. No delete API is exposed: dropping an image
// from a car only removes the URL reference, the blob stays behind.
type BucketUploader struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

// NewBucketUploader wraps a bucket handle.
func NewBucketUploader(bucket *gcs.BucketHandle, bucketName string) *BucketUploader {
	return &BucketUploader{bucket: bucket, bucketName: bucketName}
}

// Upload streams r into the object at key and returns its download URL.
func (u *BucketUploader) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	w := u.bucket.Object(key).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize %s: %w", key, err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucketName, key), nil
}
