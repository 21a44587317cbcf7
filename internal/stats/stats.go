// Package stats persists a small usage counter next to the HTTP server —
// files compressed, files decompressed, and bytes in/out — the way the
// original web UI's stats.json sidecar did. It has no bearing on engine
// correctness; it exists purely for the /stats endpoint.
package stats

import (
	"encoding/json"
	"os"
	"sync"
)

// Counters is the persisted usage snapshot.
type Counters struct {
	Compressed   int   `json:"compressed"`
	Decompressed int   `json:"decompressed"`
	BytesIn      int64 `json:"bytes_in"`
	BytesOut     int64 `json:"bytes_out"`
}

// Store guards a Counters value backed by a JSON file on disk. The JSON
// file is the whole persistence mechanism — there's no database, matching
// the scale of the thing being counted.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore returns a Store backed by path. The file is created lazily on
// first write; reads against a missing file report zeroed counters.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the current counters, returning a zero value if the file
// doesn't exist or is unreadable/corrupt.
func (s *Store) Load() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() Counters {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Counters{}
	}
	var c Counters
	if err := json.Unmarshal(data, &c); err != nil {
		return Counters{}
	}
	return c
}

func (s *Store) save(c Counters) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// RecordCompress increments the compressed counter and adds to the
// before/after byte totals.
func (s *Store) RecordCompress(in, out int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.load()
	c.Compressed++
	c.BytesIn += int64(in)
	c.BytesOut += int64(out)
	return s.save(c)
}

// RecordDecompress increments the decompressed counter.
func (s *Store) RecordDecompress(in, out int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.load()
	c.Decompressed++
	c.BytesIn += int64(in)
	c.BytesOut += int64(out)
	return s.save(c)
}

// Reset deletes the stats file, returning the service to a zeroed state.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
