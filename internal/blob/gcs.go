package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
)

// GCSStorage stores blobs in a Google Cloud Storage bucket.
type GCSStorage struct {
	BucketName string
	Client     *storage.Client
	MaxBytes   int64
}

// NewGCSStorage creates a cloud storage client for the given bucket.
// maxBytes <= 0 falls back to DefaultMaxBytes.
func NewGCSStorage(ctx context.Context, bucketName string, maxBytes int64) (*GCSStorage, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud storage client: %v", err)
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &GCSStorage{
		BucketName: bucketName,
		Client:     client,
		MaxBytes:   maxBytes,
	}, nil
}

// Upload rejects oversized payloads before touching the network, then
// writes the object and returns its public URL.
func (g *GCSStorage) Upload(ctx context.Context, data []byte, objectPath string) (string, error) {
	if int64(len(data)) > g.MaxBytes {
		return "", ErrFileTooLarge
	}

	obj := g.Client.Bucket(g.BucketName).Object(objectPath)
	wc := obj.NewWriter(ctx)
	if _, err := io.Copy(wc, bytes.NewReader(data)); err != nil {
		_ = wc.Close()
		return "", &UploadError{Path: objectPath, Err: err}
	}
	if err := wc.Close(); err != nil {
		return "", &UploadError{Path: objectPath, Err: err}
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.BucketName, objectPath), nil
}

func (g *GCSStorage) Delete(ctx context.Context, objectPath string) error {
	err := g.Client.Bucket(g.BucketName).Object(objectPath).Delete(ctx)
	if err == storage.ErrObjectNotExist {
		return ErrNotFound
	}
	return err
}

var _ Storage = (*GCSStorage)(nil)
