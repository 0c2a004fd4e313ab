package store

import (
	"context"
	"sync"
)

// MemoryStore keeps documents in memory. It is used by tests and as a scratch
// backend.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[Kind][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[Kind][]byte)}
}

func (s *MemoryStore) Load(ctx context.Context, kind Kind) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[kind]
	if !ok {
		return nil, nil
	}

	return append([]byte(nil), doc...), nil
}

func (s *MemoryStore) Save(ctx context.Context, kind Kind, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[kind] = append([]byte(nil), data...)
	return nil
}
