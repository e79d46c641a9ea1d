package utils

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type Cache[T any] struct {
	value      T
	cachedAt   time.Time
	expiration time.Time
	mutex      sync.RWMutex
}

// NewCache initializes a new cache with an empty value.
func NewCache[T any]() *Cache[T] {
	var zero T
	return &Cache[T]{
		value: zero,
	}
}

// Set sets a new value in the cache with an expiration time.
func (c *Cache[T]) Set(value T, duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.value = value
	c.cachedAt = time.Now()
	c.expiration = time.Now().Add(duration)
}

// Get retrieves the cached value, checking if it's valid based on refreshAfter.
func (c *Cache[T]) Get(refreshAfter time.Time) (T, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if time.Now().After(c.expiration) || c.cachedAt.After(refreshAfter) {
		var zero T
		return zero, false
	}
	return c.value, true
}

// Clear removes the cached value.
func (c *Cache[T]) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	var zero T
	c.value = zero
	c.expiration = time.Time{}
}

// ResponseCache stores serialized responses by key. Invalidate drops every
// entry and starts a new generation; SetAt with an older generation is a no-op
// for readers, so a value computed before an invalidation never resurfaces.
type ResponseCache interface {
	Get(ctx context.Context, key string, result interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Generation(ctx context.Context) (int64, error)
	SetAt(ctx context.Context, generation int64, key string, value interface{}, expiration time.Duration) error
	Invalidate(ctx context.Context) error
}

// MemoryCache is the in-process ResponseCache, one Cache per key.
type MemoryCache struct {
	entries    map[string]*Cache[[]byte]
	generation int64
	mutex      sync.Mutex
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]*Cache[[]byte])}
}

func (m *MemoryCache) Get(_ context.Context, key string, result interface{}) (bool, error) {
	m.mutex.Lock()
	entry, ok := m.entries[key]
	m.mutex.Unlock()
	if !ok {
		return false, nil
	}

	data, found := entry.Get(time.Now())
	if !found {
		m.mutex.Lock()
		if _, live := entry.Get(time.Now()); !live && m.entries[key] == entry {
			delete(m.entries, key)
			entry.Clear()
		}
		m.mutex.Unlock()
		return false, nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		return false, err
	}
	return true, nil
}

func (m *MemoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	generation, err := m.Generation(ctx)
	if err != nil {
		return err
	}
	return m.SetAt(ctx, generation, key, value, expiration)
}

func (m *MemoryCache) Generation(_ context.Context) (int64, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.generation, nil
}

// SetAt stores value only while generation is still the current one.
func (m *MemoryCache) SetAt(_ context.Context, generation int64, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	if generation != m.generation {
		return nil
	}
	entry, ok := m.entries[key]
	if !ok {
		entry = NewCache[[]byte]()
		m.entries[key] = entry
	}
	entry.Set(data, expiration)
	return nil
}

func (m *MemoryCache) Invalidate(_ context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.generation++
	m.entries = make(map[string]*Cache[[]byte])
	return nil
}

// Size returns the number of keys held. Expired keys are dropped on read.
func (m *MemoryCache) Size() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.entries)
}
