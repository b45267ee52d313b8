package blob

import (
	"context"
	"sync"
)

// Memory is an in-memory Store used by tests.
type Memory struct {
	mu      sync.RWMutex
	buckets map[string]map[string][]byte

	// FailPut, when set, is consulted before every Put; a non-nil return
	// aborts the write. Lets tests inject storage failures.
	FailPut func(bucket, key string) error
	// FailGet works the same way for reads.
	FailGet func(bucket, key string) error
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{buckets: make(map[string]map[string][]byte)}
}

func (m *Memory) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.FailGet != nil {
		if err := m.FailGet(bucket, key); err != nil {
			return nil, err
		}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.buckets[bucket][key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *Memory) Put(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.FailPut != nil {
		if err := m.FailPut(bucket, key); err != nil {
			return err
		}
	}
	_ = contentType
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.buckets[bucket] == nil {
		m.buckets[bucket] = make(map[string][]byte)
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	m.buckets[bucket][key] = stored
	return nil
}

func (m *Memory) Exists(ctx context.Context, bucket, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.buckets[bucket][key]
	return ok, nil
}

func (m *Memory) EnsureBucket(ctx context.Context, bucket string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.buckets[bucket]; ok {
		return false, nil
	}
	m.buckets[bucket] = make(map[string][]byte)
	return true, nil
}

func (m *Memory) URL(bucket, key string) string {
	return "memory://" + bucket + "/" + key
}

var _ Store = (*Memory)(nil)
