package mockapi

import (
	"context"
	"sort"
	"sync"

	domain "rest-user-client/internal/domain/user"
)

// MemoryStore keeps fixture users in a mutex-guarded map. It is the hermetic
// backend for tests and the default for the standalone server.
type MemoryStore struct {
	mu     sync.Mutex
	users  map[int64]domain.Record
	nextID int64
}

// NewMemoryStore creates a memory store, assigning ids 1..n to the seed
// records in order.
func NewMemoryStore(seed ...domain.Record) *MemoryStore {
	s := &MemoryStore{users: make(map[int64]domain.Record)}
	for _, rec := range seed {
		s.nextID++
		s.users[s.nextID] = scrubID(rec)
	}
	return s
}

// List implements Store, returning records ordered by id.
func (s *MemoryStore) List(ctx context.Context) ([]domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	records := make([]domain.Record, 0, len(ids))
	for _, id := range ids {
		records = append(records, s.withID(id))
	}
	return records, nil
}

// Get implements Store.
func (s *MemoryStore) Get(ctx context.Context, id int64) (domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return nil, ErrNotFound
	}
	return s.withID(id), nil
}

// Create implements Store, assigning the next id.
func (s *MemoryStore) Create(ctx context.Context, rec domain.Record) (domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	s.users[s.nextID] = scrubID(rec)
	return s.withID(s.nextID), nil
}

// Update implements Store, replacing the payload stored under id.
func (s *MemoryStore) Update(ctx context.Context, id int64, rec domain.Record) (domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return nil, ErrNotFound
	}
	s.users[id] = scrubID(rec)
	return s.withID(id), nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}

// withID returns a copy of the stored payload with the id injected.
// Callers must hold s.mu.
func (s *MemoryStore) withID(id int64) domain.Record {
	stored := s.users[id]
	out := make(domain.Record, len(stored)+1)
	for k, v := range stored {
		out[k] = v
	}
	out["id"] = id
	return out
}
