package store

import (
	"context"
	"sort"
	"sync"

	"github.com/i474232898/weather-records-api/internal/weather"
)

// MemoryStore is a concurrency-safe in-memory implementation of Store.
// It backs the unit tests and the zero-dependency dev mode; the durable
// implementation lives in sql.go.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[int]weather.Record
	nextID int
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:   make(map[int]weather.Record),
		nextID: 1,
	}
}

// Save stores a copy of the record under a freshly assigned id.
func (s *MemoryStore) Save(_ context.Context, rec weather.Record) (weather.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = s.nextID
	s.nextID++

	// Copy the series so later caller mutations cannot leak into the store.
	temps := make([]float64, len(rec.Temperatures))
	copy(temps, rec.Temperatures)
	rec.Temperatures = temps

	s.data[rec.ID] = rec
	return rec, nil
}

// FindByID returns the record with the given id, or ErrNotFound.
func (s *MemoryStore) FindByID(_ context.Context, id int) (weather.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.data[id]
	if !ok {
		return weather.Record{}, ErrNotFound
	}
	return rec, nil
}

// Query filters, orders and pages the stored records per the spec.
func (s *MemoryStore) Query(_ context.Context, spec weather.QuerySpec) ([]weather.Record, int64, error) {
	s.mu.RLock()
	matches := make([]weather.Record, 0, len(s.data))
	for _, rec := range s.data {
		if spec.Matches(rec) {
			matches = append(matches, rec)
		}
	}
	s.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		return spec.Less(matches[i], matches[j])
	})

	total := int64(len(matches))

	start := spec.Page * spec.Size
	if start >= len(matches) {
		return []weather.Record{}, total, nil
	}
	end := start + spec.Size
	if end > len(matches) {
		end = len(matches)
	}
	return matches[start:end], total, nil
}

// Maintain is a no-op for the in-memory store.
func (s *MemoryStore) Maintain(context.Context) error { return nil }

// Count returns the number of stored records.
func (s *MemoryStore) Count(context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.data)), nil
}
