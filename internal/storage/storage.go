// Package storage persists generated label documents to a local directory or
// an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/letterpack/letterpack/internal/settings"
)

// ContentTypePDF is the content type of rendered labels
const ContentTypePDF = "application/pdf"

// ErrInvalidKey is returned for empty or escaping object keys
var ErrInvalidKey = errors.New("storage: invalid object key")

// Sink stores a document under key and returns where it was written
type Sink interface {
	Put(ctx context.Context, key, contentType string, r io.Reader) (string, error)
}

// NewObjectKey builds a unique key of the form prefix/2006/01/02/<uuid><ext>
func NewObjectKey(prefix, ext string, now time.Time) string {
	name := uuid.NewString() + ext
	return path.Join(strings.Trim(prefix, "/"), now.UTC().Format("2006/01/02"), name)
}

// ParseS3URL splits s3://bucket/key. ok is false for anything else.
func ParseS3URL(s string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(s, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", false
	}
	return bucket, key, true
}

// New builds the sink configured in cfg. It returns nil when no driver is set.
func New(ctx context.Context, cfg *settings.StorageConfig, opts ...S3Option) (Sink, error) {
	switch cfg.Driver {
	case "":
		return nil, nil
	case "local":
		return NewLocalSink(cfg.Dir)
	case "s3":
		return NewS3Sink(ctx, cfg, opts...)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}

// LocalSink writes documents below a directory
type LocalSink struct {
	dir string
}

// NewLocalSink creates dir when missing
func NewLocalSink(dir string) (*LocalSink, error) {
	if dir == "" {
		return nil, errors.New("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}
	return &LocalSink{dir: dir}, nil
}

// Put writes r to dir/key, creating intermediate directories
func (s *LocalSink) Put(ctx context.Context, key, _ string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean := filepath.Clean(filepath.FromSlash(key))
	if key == "" || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	dst := filepath.Join(s.dir, clean)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("writing %s: %w", dst, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return dst, nil
}
