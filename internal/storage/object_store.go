package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"time"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// ObjectStore provides access to the blob storage holding uploaded
// event documents.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// NewFromEnv builds the object store selected by OBJECT_STORE
// ("gcs" by default, or "minio").
func NewFromEnv(ctx context.Context) (ObjectStore, error) {
	switch backend := os.Getenv("OBJECT_STORE"); backend {
	case "", "gcs":
		return NewGCSStoreFromEnv(ctx)
	case "minio":
		return NewMinioStoreFromEnv()
	default:
		return nil, fmt.Errorf("unknown object store backend %q", backend)
	}
}

// GCSStore implements ObjectStore on Google Cloud Storage.
type GCSStore struct {
	client *gcs.Client
	bucket string
}

// NewGCSStoreFromEnv builds a GCS store from base64 encoded service
// account JSON in GCP_SERVICE_ACCOUNT_CREDENTIALS and GCS_BUCKET.
func NewGCSStoreFromEnv(ctx context.Context) (*GCSStore, error) {
	encoded := os.Getenv("GCP_SERVICE_ACCOUNT_CREDENTIALS")
	if encoded == "" {
		return nil, fmt.Errorf("GCP_SERVICE_ACCOUNT_CREDENTIALS not set")
	}
	bucket := os.Getenv("GCS_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("GCS_BUCKET not set")
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode service account json: %w", err)
	}

	client, err := gcs.NewClient(ctx, option.WithCredentialsJSON(decoded))
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient: %w", err)
	}

	return &GCSStore{client: client, bucket: bucket}, nil
}

func (s *GCSStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return fmt.Errorf("write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close object writer: %w", err)
	}
	return nil
}

func (s *GCSStore) Get(ctx context.Context, key string) ([]byte, error) {
	r, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("open object: %w", err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read object: %w", err)
	}
	return data, nil
}

func (s *GCSStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Bucket(s.bucket).Object(key).Delete(ctx); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

func (s *GCSStore) SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	url, err := s.client.Bucket(s.bucket).SignedURL(key, &gcs.SignedURLOptions{
		Method:  "GET",
		Expires: time.Now().Add(expiry),
	})
	if err != nil {
		return "", fmt.Errorf("sign url: %w", err)
	}
	return url, nil
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}
