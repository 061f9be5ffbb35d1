package storage

import "context"

// UploadOptions conveys upload destination metadata.
type UploadOptions struct {
	Bucket    string
	KeyPrefix string
}

// Service writes catalog exports to remote object storage.
type Service interface {
	// PutObject stores body under key and returns its s3:// location.
	PutObject(ctx context.Context, bucket, key string, body []byte, contentType string) (string, error)
}
