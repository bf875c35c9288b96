package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Store is an in-process TTL map shared by every cached repository.
// Concurrent misses for one key share a single loader call.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	flight  singleflight.Group
	now     func() time.Time

	hits   atomic.Uint64
	misses atomic.Uint64
}

// Stats is a point-in-time view of the store.
type Stats struct {
	Entries int
	Hits    uint64
	Misses  uint64
}

// NewStore returns a store whose entries live for ttl. A ttl <= 0 keeps
// entries until they are invalidated.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	n := len(s.entries)
	s.mu.RUnlock()
	return Stats{Entries: n, Hits: s.hits.Load(), Misses: s.misses.Load()}
}

func (s *Store) get(key string) (any, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if ok && !e.expiresAt.IsZero() && !e.expiresAt.After(s.now()) {
		s.mu.Lock()
		if cur, still := s.entries[key]; still && cur.expiresAt.Equal(e.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		ok = false
	}
	return e.value, ok
}

func (s *Store) set(key string, value any) {
	var expiresAt time.Time
	if s.ttl > 0 {
		expiresAt = s.now().Add(s.ttl)
	}
	s.mu.Lock()
	s.entries[key] = entry{value: value, expiresAt: expiresAt}
	s.mu.Unlock()
}

func (s *Store) delete(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	s.flight.Forget(key)
}

func (s *Store) deletePrefix(prefix string) {
	s.mu.Lock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
			s.flight.Forget(key)
		}
	}
	s.mu.Unlock()
}

func (s *Store) load(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if v, ok := s.get(key); ok {
		s.hits.Add(1)
		return v, nil
	}
	s.misses.Add(1)

	v, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.get(key); ok {
			return cached, nil
		}
		loaded, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		s.set(key, loaded)
		return loaded, nil
	})
	return v, err
}

// Namespace is a typed view over a Store. Keys are prefixed with the
// namespace name so invalidation never reaches another repository's entries.
type Namespace[V any] struct {
	store  *Store
	prefix string
}

func NewNamespace[V any](store *Store, name string) Namespace[V] {
	return Namespace[V]{store: store, prefix: name + ":"}
}

// Load returns the cached value for key or runs loader once for all
// concurrent callers. Loader errors are not cached.
func (n Namespace[V]) Load(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	var zero V
	full := n.prefix + key
	v, err := n.store.load(ctx, full, func(ctx context.Context) (any, error) {
		return loader(ctx)
	})
	if err != nil {
		return zero, err
	}
	typed, ok := v.(V)
	if !ok {
		return zero, fmt.Errorf("cache key %q holds %T", full, v)
	}
	return typed, nil
}

func (n Namespace[V]) Forget(key string) {
	n.store.delete(n.prefix + key)
}

// Invalidate drops every entry in the namespace.
func (n Namespace[V]) Invalidate() {
	n.store.deletePrefix(n.prefix)
}

// Lookup caches a repository answer that may legitimately be "not found",
// so misses are remembered as well as hits.
type Lookup[V any] struct {
	Value V
	Found bool
}
