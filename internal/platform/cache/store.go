package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	value     any
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !e.expiresAt.After(now)
}

// Store is an in-process TTL cache. Concurrent loads of one key share a single loader call.
// A zero ttl keeps entries until they are deleted.
type Store struct {
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	flight     singleflight.Group

	mu      sync.RWMutex
	entries map[string]entry
}

type Option func(*Store)

// WithMaxEntries bounds the store; inserting past the bound first drops expired entries,
// then the entry closest to expiry.
func WithMaxEntries(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxEntries = n
		}
	}
}

func NewStore(ttl time.Duration, opts ...Option) *Store {
	s := &Store{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if e.expired(s.now()) {
		s.mu.Lock()
		if current, still := s.entries[key]; still && current.expired(s.now()) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}

	e := entry{value: value}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[key]; !exists && s.maxEntries > 0 && len(s.entries) >= s.maxEntries {
		s.evictLocked()
	}
	s.entries[key] = e
}

func (s *Store) Delete(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// DeletePrefix drops every key starting with prefix. An empty prefix is a no-op.
func (s *Store) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}

	s.mu.Lock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
}

// Len counts stored entries, expired ones included until they are swept.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Sweep removes expired entries and reports how many were dropped.
func (s *Store) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

func (s *Store) evictLocked() {
	now := s.now()
	for key, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, key)
		}
	}
	if len(s.entries) < s.maxEntries {
		return
	}

	var (
		victim    string
		victimExp time.Time
		found     bool
	)
	for key, e := range s.entries {
		if !found || e.expiresAt.Before(victimExp) {
			victim, victimExp, found = key, e.expiresAt, true
		}
	}
	if found {
		delete(s.entries, victim)
	}
}
