package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/jh-117/meeting-agenda-builder-sub000/internal/domain/entities"
)

// MemoryStore is a simple in-memory session store with expiration
type MemoryStore struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]*memoryItem
}

type memoryItem struct {
	value      string
	expireTime time.Time
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	store := &MemoryStore{
		ttl:   ttl,
		items: make(map[string]*memoryItem),
	}

	// Start cleanup goroutine to remove expired items
	go store.cleanupExpired()

	return store
}

// Put stores a session, resetting its expiration
func (ms *MemoryStore) Put(_ context.Context, session *entities.EditSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.items[session.ID] = &memoryItem{
		value:      string(data),
		expireTime: time.Now().Add(ms.ttl),
	}
	return nil
}

// Get retrieves a session by id
func (ms *MemoryStore) Get(_ context.Context, id string) (*entities.EditSession, error) {
	ms.mu.RLock()
	item, exists := ms.items[id]
	ms.mu.RUnlock()

	if !exists || time.Now().After(item.expireTime) {
		return nil, entities.ErrSessionNotFound
	}

	var session entities.EditSession
	if err := json.Unmarshal([]byte(item.value), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Delete removes a session
func (ms *MemoryStore) Delete(_ context.Context, id string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.items, id)
	return nil
}

// cleanupExpired periodically removes expired items
func (ms *MemoryStore) cleanupExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		ms.mu.Lock()
		now := time.Now()
		for key, item := range ms.items {
			if now.After(item.expireTime) {
				delete(ms.items, key)
			}
		}
		ms.mu.Unlock()
	}
}
