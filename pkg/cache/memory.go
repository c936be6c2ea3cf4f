package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type item[V any] struct {
	key       string
	value     V
	expiresAt time.Time
}

func (it *item[V]) expired(now time.Time) bool {
	return !it.expiresAt.IsZero() && now.After(it.expiresAt)
}

// Stats reports cache effectiveness counters.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Entries   int
}

// Memory is an in-process LRU cache with lazy TTL expiry.
// Expired entries are dropped when touched or evicted; there is no
// background goroutine.
type Memory[V any] struct {
	mu         sync.Mutex
	items      map[string]*list.Element
	order      *list.List
	defaultTTL time.Duration
	maxEntries int
	now        func() time.Time
	onEvict    func(key string, value V)
	stats      Stats
	closed     bool
	group      singleflight.Group
}

// MemoryOption configures a Memory cache.
type MemoryOption func(*memoryConfig)

type memoryConfig struct {
	defaultTTL time.Duration
	maxEntries int
	now        func() time.Time
}

// WithDefaultTTL sets the expiry applied when Set receives a zero TTL.
// Zero or negative means entries never expire. Default: never.
func WithDefaultTTL(d time.Duration) MemoryOption {
	return func(c *memoryConfig) {
		c.defaultTTL = d
	}
}

// WithMaxEntries bounds the cache size. The least recently used entry is
// evicted when the bound is reached. Zero means unlimited.
func WithMaxEntries(n int) MemoryOption {
	return func(c *memoryConfig) {
		if n >= 0 {
			c.maxEntries = n
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(c *memoryConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// NewMemory creates an in-memory cache.
//
//	memo := cache.NewMemory[string](cache.WithMaxEntries(4096))
//	defer memo.Close()
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	cfg := &memoryConfig{now: time.Now}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Memory[V]{
		items:      make(map[string]*list.Element),
		order:      list.New(),
		defaultTTL: cfg.defaultTTL,
		maxEntries: cfg.maxEntries,
		now:        cfg.now,
	}
}

// OnEvict registers a callback for entries removed by eviction, expiry,
// Delete or Clear.
func (m *Memory[V]) OnEvict(fn func(key string, value V)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onEvict = fn
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V
	el, ok := m.items[key]
	if !ok {
		m.stats.Misses++
		return zero, ErrNotFound
	}
	it := el.Value.(*item[V])
	if it.expired(m.now()) {
		m.remove(el)
		m.stats.Misses++
		return zero, ErrNotFound
	}
	m.order.MoveToFront(el)
	m.stats.Hits++
	return it.value, nil
}

func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if ttl == 0 {
		ttl = m.defaultTTL
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = m.now().Add(ttl)
	}

	if el, ok := m.items[key]; ok {
		it := el.Value.(*item[V])
		it.value = value
		it.expiresAt = expiresAt
		m.order.MoveToFront(el)
		return nil
	}

	if m.maxEntries > 0 && len(m.items) >= m.maxEntries {
		if oldest := m.order.Back(); oldest != nil {
			m.remove(oldest)
			m.stats.Evictions++
		}
	}

	m.items[key] = m.order.PushFront(&item[V]{key: key, value: value, expiresAt: expiresAt})
	return nil
}

func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if el, ok := m.items[key]; ok {
		m.remove(el)
	}
	return nil
}

func (m *Memory[V]) Has(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.items[key]
	if !ok {
		return false, nil
	}
	if el.Value.(*item[V]).expired(m.now()) {
		m.remove(el)
		return false, nil
	}
	return true, nil
}

func (m *Memory[V]) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	for el := m.order.Front(); el != nil; {
		next := el.Next()
		m.remove(el)
		el = next
	}
	return nil
}

// Close marks the cache closed. Reads keep working; writes fail with ErrClosed.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Stats returns a snapshot of the counters.
func (m *Memory[V]) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.stats
	s.Entries = len(m.items)
	return s
}

func (m *Memory[V]) flight() *singleflight.Group {
	return &m.group
}

// remove unlinks el. Caller holds m.mu.
func (m *Memory[V]) remove(el *list.Element) {
	m.order.Remove(el)
	it := el.Value.(*item[V])
	delete(m.items, it.key)
	if m.onEvict != nil {
		m.onEvict(it.key, it.value)
	}
}

var _ Cache[any] = (*Memory[any])(nil)
