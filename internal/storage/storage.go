// Package storage writes materialized image variants to blob storage and
// derives the public URLs they are served from.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goalline/sportscache/internal/adapter"
	"github.com/goalline/sportscache/internal/domain"
)

// BlobStorage defines the blob operations the materializer depends on
//
//go:generate mockgen -source=storage.go -destination=../mocks/storage.go -package=mocks -mock_names=BlobStorage=MockBlobStorage
type BlobStorage interface {
	// Upload writes an object, replacing any existing object at the path
	Upload(ctx context.Context, path string, contentType string, data []byte) error
	// PublicURL returns the URL an uploaded object is publicly served from
	PublicURL(path string) string
}

// Config holds blob storage settings
type Config struct {
	// Endpoint is the storage service base URL
	Endpoint string
	// Bucket is the public bucket all variants live in
	Bucket string
	// ServiceKey authorizes writes
	ServiceKey string
	// Timeout bounds a single upload
	Timeout time.Duration
}

type httpStorage struct {
	http adapter.HTTPClient
	cfg  Config
}

// NewHTTPStorage creates a blob storage client on top of the shared HTTP adapter.
// The endpoint is expected to speak the storage object API: writes go to
// /storage/v1/object/{bucket}/{path}, public reads come from
// /storage/v1/object/public/{bucket}/{path}.
func NewHTTPStorage(httpClient adapter.HTTPClient, cfg Config) BlobStorage {
	return &httpStorage{
		http: httpClient,
		cfg:  cfg,
	}
}

// Upload writes an object, replacing any existing object at the path
func (s *httpStorage) Upload(ctx context.Context, path string, contentType string, data []byte) error {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s",
		strings.TrimRight(s.cfg.Endpoint, "/"), s.cfg.Bucket, strings.TrimLeft(path, "/"))

	headers := map[string]string{
		"Authorization": "Bearer " + s.cfg.ServiceKey,
		// Replace rather than fail when a refresh re-writes an existing variant
		"x-upsert":      "true",
		"Cache-Control": "max-age=31536000",
	}

	if _, err := s.http.Post(ctx, endpoint, contentType, headers, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrStorageWriteFailure, path, err)
	}

	return nil
}

// PublicURL returns the URL an uploaded object is publicly served from
func (s *httpStorage) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		strings.TrimRight(s.cfg.Endpoint, "/"), s.cfg.Bucket, strings.TrimLeft(path, "/"))
}
