package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	gstorage "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/gradpath/gradpath-backend/internal/clients/gcp"
	"github.com/gradpath/gradpath-backend/internal/logger"
)

type gcsStore struct {
	log    *logger.Logger
	client *gstorage.Client
	bucket string
}

func newGCSStore(log *logger.Logger, cfg Config) (*gcsStore, error) {
	ctx := context.Background()
	client, err := newGCSClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &gcsStore{
		log:    log,
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

func newGCSClient(ctx context.Context, cfg Config) (*gstorage.Client, error) {
	if cfg.EmulatorHost != "" {
		// The client library routes to the emulator through this env var.
		endpoint := strings.TrimRight(cfg.EmulatorHost, "/")
		_ = os.Setenv("STORAGE_EMULATOR_HOST", endpoint)
		return gstorage.NewClient(ctx, option.WithoutAuthentication())
	}
	opts := gcp.ClientOptionsFromEnv()
	opts = append(opts, option.WithScopes(gstorage.ScopeReadWrite))
	return gstorage.NewClient(ctx, opts...)
}

func (s *gcsStore) Save(ctx context.Context, key string, file io.Reader) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	if ct := contentTypeForKey(key); ct != "" {
		w.ContentType = ct
	}
	if _, err := io.Copy(w, file); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return nil
}

// Open must not cancel its context before the caller drains the reader,
// otherwise every read returns 0 bytes. The cancel rides along on Close.
func (s *gcsStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	ctx2, cancel := context.WithTimeout(ctx, 2*time.Minute)
	r, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx2)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to open GCS reader: %w", err)
	}
	return &readCloserWithCancel{ReadCloser: r, cancel: cancel}, nil
}

func (s *gcsStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	o := s.client.Bucket(s.bucket).Object(key)
	if err := o.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete GCS object %q in bucket %q: %w", key, s.bucket, err)
	}
	return nil
}

type readCloserWithCancel struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (r *readCloserWithCancel) Close() error {
	err := r.ReadCloser.Close()
	if r.cancel != nil {
		r.cancel()
	}
	return err
}

func contentTypeForKey(key string) string {
	s := strings.ToLower(strings.TrimSpace(key))
	switch {
	case strings.HasSuffix(s, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(s, ".csv"):
		return "text/csv"
	case strings.HasSuffix(s, ".txt"):
		return "text/plain"
	default:
		return ""
	}
}
