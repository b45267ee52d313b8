package blob

import "context"

// ErrNotFound is returned by Get when no object exists at the given key.
var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "object not found" }

// Store defines the contract for reading and writing binary objects in
// named buckets. The underlying stores offer no conditional writes and no
// versioning: every Put unconditionally overwrites whatever is at the key.
// Callers that read, modify, and write back an object get last-writer-wins
// semantics and must not assume otherwise.
type Store interface {
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	Put(ctx context.Context, bucket, key string, data []byte, contentType string) error
	Exists(ctx context.Context, bucket, key string) (bool, error)
	EnsureBucket(ctx context.Context, bucket string) (created bool, err error)
	URL(bucket, key string) string
}
