package collections

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"hr-blob-backend/internal/shared/metrics"
	"hr-blob-backend/internal/shared/storage/blob"
)

// Store is a whole-document CRUD engine over one blob bucket. Each kind is
// persisted as a single JSON array object at a fixed key; every mutation
// reads the full array, edits it in memory and writes it back.
//
// The blob layer offers no conditional writes, so two concurrent mutations
// of the same kind can both read the same array and the later write silently
// discards the earlier one (lost update, last writer wins). The store adds
// no locking of its own; callers needing stronger guarantees must serialize
// above this layer.
type Store struct {
	Blob   blob.Store
	Bucket string
	Now    func() time.Time // defaults to time.Now
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// load reads the full array for a kind. A missing object reads as an empty
// collection; the first write creates it.
func (s *Store) load(ctx context.Context, kind Kind) ([]Record, error) {
	data, err := s.Blob.Get(ctx, s.Bucket, kind.StorageKey())
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("load %s: %w", kind.Name, err)
	}
	metrics.IncCollectionRead()

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptData, kind.StorageKey(), err)
	}
	return records, nil
}

// save writes the full array back, unconditionally overwriting the object.
func (s *Store) save(ctx context.Context, kind Kind, records []Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", kind.Name, err)
	}
	if err := s.Blob.Put(ctx, s.Bucket, kind.StorageKey(), data, "application/json"); err != nil {
		return fmt.Errorf("save %s: %w", kind.Name, err)
	}
	metrics.IncCollectionWrite()
	return nil
}

// List returns all records of a kind in insertion order.
func (s *Store) List(ctx context.Context, kind Kind) ([]Record, error) {
	return s.load(ctx, kind)
}

// Get returns the record with the given id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, kind Kind, id string) (Record, error) {
	records, err := s.load(ctx, kind)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.ID() == id {
			return rec, nil
		}
	}
	return nil, ErrNotFound
}

// Insert validates the draft, assigns a fresh id and timestamps, and appends
// it to the collection.
func (s *Store) Insert(ctx context.Context, kind Kind, draft map[string]any) (Record, error) {
	return s.InsertWithID(ctx, kind, uuid.NewString(), draft)
}

// InsertWithID is Insert with a caller-supplied (server-generated) id. Used
// by the documents service, which derives the asset key from the record id
// before the record exists.
func (s *Store) InsertWithID(ctx context.Context, kind Kind, id string, draft map[string]any) (Record, error) {
	if missing := missingFields(kind, draft); len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	records, err := s.load(ctx, kind)
	if err != nil {
		return nil, err
	}

	rec := make(Record, len(draft)+3)
	for k, v := range draft {
		rec[k] = v
	}
	for k, v := range kind.Defaults {
		if _, ok := rec[k]; !ok {
			rec[k] = v
		}
	}

	now := Timestamp(s.now())
	rec["id"] = id
	rec["created_at"] = now
	rec["updated_at"] = now

	records = append(records, rec)
	if err := s.save(ctx, kind, records); err != nil {
		return nil, err
	}
	return rec, nil
}

// Update merges the patch into the record with the given id. Only fields
// present in the patch change; id and created_at are immutable, and
// updated_at is refreshed on every accepted mutation.
func (s *Store) Update(ctx context.Context, kind Kind, id string, patch map[string]any) (Record, error) {
	records, err := s.load(ctx, kind)
	if err != nil {
		return nil, err
	}

	idx := indexOf(records, id)
	if idx < 0 {
		return nil, ErrNotFound
	}

	rec := records[idx].Clone()
	for k, v := range patch {
		switch k {
		case "id", "created_at", "updated_at":
			continue
		}
		rec[k] = v
	}
	rec["updated_at"] = Timestamp(s.now())
	records[idx] = rec

	if err := s.save(ctx, kind, records); err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes the record with the given id and returns it.
func (s *Store) Delete(ctx context.Context, kind Kind, id string) (Record, error) {
	records, err := s.load(ctx, kind)
	if err != nil {
		return nil, err
	}

	idx := indexOf(records, id)
	if idx < 0 {
		return nil, ErrNotFound
	}

	removed := records[idx]
	records = append(records[:idx], records[idx+1:]...)

	if err := s.save(ctx, kind, records); err != nil {
		return nil, err
	}
	return removed, nil
}

func indexOf(records []Record, id string) int {
	for i := range records {
		if records[i].ID() == id {
			return i
		}
	}
	return -1
}

// missingFields returns required fields that are absent, nil, or blank
// strings in the draft.
func missingFields(kind Kind, draft map[string]any) []string {
	var missing []string
	for _, field := range kind.Required {
		v, ok := draft[field]
		if !ok || v == nil {
			missing = append(missing, field)
			continue
		}
		if str, isStr := v.(string); isStr && strings.TrimSpace(str) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}
