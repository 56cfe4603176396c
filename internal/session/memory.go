package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryEngine keeps session entries in-process. Expired entries are
// dropped lazily on read and by a periodic sweep.
type MemoryEngine struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	stop    chan struct{}
}

func NewMemoryEngine() *MemoryEngine {
	e := &MemoryEngine{
		entries: make(map[string]memoryEntry),
		stop:    make(chan struct{}),
	}
	go e.sweep()
	return e
}

func (e *MemoryEngine) Get(ctx context.Context, key string) (string, bool, error) {
	e.mu.RLock()
	entry, ok := e.entries[key]
	e.mu.RUnlock()

	if !ok {
		return "", false, nil
	}
	if time.Now().After(entry.expiresAt) {
		e.mu.Lock()
		delete(e.entries, key)
		e.mu.Unlock()
		return "", false, nil
	}
	return entry.value, true, nil
}

func (e *MemoryEngine) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	e.mu.Lock()
	e.entries[key] = memoryEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	e.mu.Unlock()
	return nil
}

func (e *MemoryEngine) Delete(ctx context.Context, key string) error {
	e.mu.Lock()
	delete(e.entries, key)
	e.mu.Unlock()
	return nil
}

func (e *MemoryEngine) Close() error {
	close(e.stop)
	return nil
}

func (e *MemoryEngine) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-e.stop:
			return
		case now := <-ticker.C:
			e.mu.Lock()
			for key, entry := range e.entries {
				if now.After(entry.expiresAt) {
					delete(e.entries, key)
				}
			}
			e.mu.Unlock()
		}
	}
}
