package cache

import (
	"context"
	"sync"
	"time"
)

type memoryRecord struct {
	data     []byte
	storedAt time.Time
}

// MemoryBackend keeps cache records in process memory. It is the
// backend of choice for tests and for single-shot CLI runs where
// persistence across restarts does not matter.
type MemoryBackend struct {
	mu       sync.RWMutex
	records  map[string]memoryRecord
	capacity int
}

// NewMemoryBackend creates an in-memory backend. A capacity above zero
// bounds the number of records; the oldest record is evicted when the
// bound is exceeded.
func NewMemoryBackend(capacity int) *MemoryBackend {
	return &MemoryBackend{
		records:  make(map[string]memoryRecord),
		capacity: capacity,
	}
}

func memoryKey(kind Kind, username string) string {
	return string(kind) + "|" + username
}

func (m *MemoryBackend) Get(_ context.Context, kind Kind, username string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[memoryKey(kind, username)]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(rec.data))
	copy(out, rec.data)
	return out, nil
}

func (m *MemoryBackend) Put(_ context.Context, kind Kind, username string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	m.records[memoryKey(kind, username)] = memoryRecord{data: stored, storedAt: time.Now()}

	if m.capacity > 0 && len(m.records) > m.capacity {
		m.evictOldest()
	}
	return nil
}

func (m *MemoryBackend) Delete(_ context.Context, kind Kind, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.records, memoryKey(kind, username))
	return nil
}

func (m *MemoryBackend) Close() error {
	return nil
}

// evictOldest drops the record with the earliest store time.
// Caller must hold the write lock.
func (m *MemoryBackend) evictOldest() {
	var oldestKey string
	var oldestAt time.Time
	for key, rec := range m.records {
		if oldestKey == "" || rec.storedAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = rec.storedAt
		}
	}
	if oldestKey != "" {
		delete(m.records, oldestKey)
	}
}
