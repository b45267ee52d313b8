package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hr-blob-backend/internal/shared/storage/blob"
)

// Store implements blob.Store on the local filesystem. Buckets are
// directories under baseDir and keys are relative paths inside them.
type Store struct {
	baseDir string
	baseURL string
}

// New creates a local store rooted at baseDir. baseURL, when non-empty, is
// used to build public object URLs; otherwise file:// URLs are returned.
func New(baseDir, baseURL string) *Store {
	return &Store{baseDir: baseDir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *Store) resolve(bucket, key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	if bucket == "" || strings.ContainsAny(bucket, `/\`) {
		return "", fmt.Errorf("invalid bucket %q", bucket)
	}
	return filepath.Join(s.baseDir, bucket, clean), nil
}

// Get reads the object at bucket/key.
func (s *Store) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fullPath, err := s.resolve(bucket, key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, blob.ErrNotFound
		}
		return nil, fmt.Errorf("read %s/%s: %w", bucket, key, err)
	}
	return data, nil
}

// Put writes the object at bucket/key, creating parent directories and
// overwriting any existing file.
func (s *Store) Put(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_ = contentType
	fullPath, err := s.resolve(bucket, key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s/%s: %w", bucket, key, err)
	}
	return nil
}

// Exists reports whether an object is present at bucket/key.
func (s *Store) Exists(ctx context.Context, bucket, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fullPath, err := s.resolve(bucket, key)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s/%s: %w", bucket, key, err)
	}
	return true, nil
}

// EnsureBucket creates the bucket directory if it does not exist.
func (s *Store) EnsureBucket(ctx context.Context, bucket string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if bucket == "" || strings.ContainsAny(bucket, `/\`) {
		return false, fmt.Errorf("invalid bucket %q", bucket)
	}
	dir := filepath.Join(s.baseDir, bucket)
	if _, err := os.Stat(dir); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("mkdir bucket %s: %w", bucket, err)
	}
	return true, nil
}

// URL returns the externally visible location of an object.
func (s *Store) URL(bucket, key string) string {
	if s.baseURL != "" {
		return s.baseURL + "/" + bucket + "/" + key
	}
	abs, err := filepath.Abs(filepath.Join(s.baseDir, bucket, filepath.FromSlash(key)))
	if err != nil {
		return "file://" + filepath.ToSlash(filepath.Join(s.baseDir, bucket, key))
	}
	return "file://" + filepath.ToSlash(abs)
}

var _ blob.Store = (*Store)(nil)
