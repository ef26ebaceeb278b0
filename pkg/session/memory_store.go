package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Store in memory. Intended for tests and local
// development; records honor their TTL but are only evicted on access.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
}

type memoryRecord struct {
	content   []byte
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]memoryRecord)}
}

func (m *MemoryStore) Load(ctx context.Context, id string) ([]byte, error) {
	m.mu.RLock()
	rec, ok := m.records[id]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}

	if !rec.expiresAt.IsZero() && time.Now().After(rec.expiresAt) {
		m.mu.Lock()
		delete(m.records, id)
		m.mu.Unlock()
		return nil, ErrSessionNotFound
	}

	content := make([]byte, len(rec.content))
	copy(content, rec.content)
	return content, nil
}

func (m *MemoryStore) Save(ctx context.Context, id string, content []byte, ttl time.Duration) error {
	rec := memoryRecord{content: make([]byte, len(content))}
	copy(rec.content, content)
	if ttl > 0 {
		rec.expiresAt = time.Now().Add(ttl)
	}

	m.mu.Lock()
	m.records[id] = rec
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	delete(m.records, id)
	m.mu.Unlock()
	return nil
}
