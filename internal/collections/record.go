package collections

import "time"

// Record is one stored entity. Records are open maps: fields beyond a kind's
// required set are copied from the request verbatim and never validated
// against a schema. The store owns id, created_at and updated_at.
type Record map[string]any

// ID returns the record's identifier, or "" if unset.
func (r Record) ID() string {
	id, _ := r["id"].(string)
	return id
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

const timeLayout = "2006-01-02T15:04:05.000000"

// Timestamp renders t in the stored textual format: UTC, microsecond
// precision, trailing Z.
func Timestamp(t time.Time) string {
	return t.UTC().Format(timeLayout) + "Z"
}
