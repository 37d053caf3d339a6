package staging

import (
	"context"
	"sync"
	"time"
)

// memorySweepInterval bounds how often SetItem scans for expired items.
const memorySweepInterval = time.Minute

// Memory keeps staged items in process memory. It is used when no redis
// address is configured and in tests. Expired items are dropped on read and
// by a sweep that runs on writes.
type Memory struct {
	mu        sync.Mutex
	ttl       time.Duration
	now       func() time.Time
	items     map[string]memoryItem
	lastSweep time.Time
}

type memoryItem struct {
	value     []byte
	expiresAt time.Time
}

var _ Provider = (*Memory)(nil)

// NewMemory returns an in-memory provider. A zero ttl never expires items.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]memoryItem),
	}
}

func (m *Memory) Scope(namespace string) Store {
	return &memoryScope{parent: m, namespace: namespace}
}

type memoryScope struct {
	parent    *Memory
	namespace string
}

func (s *memoryScope) SetItem(_ context.Context, key string, value []byte) error {
	m := s.parent
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweep(now)

	item := memoryItem{value: append([]byte(nil), value...)}
	if m.ttl > 0 {
		item.expiresAt = now.Add(m.ttl)
	}
	m.items[scopedKey(s.namespace, key)] = item
	return nil
}

func (s *memoryScope) GetItem(_ context.Context, key string) ([]byte, bool, error) {
	m := s.parent
	m.mu.Lock()
	defer m.mu.Unlock()

	k := scopedKey(s.namespace, key)
	item, ok := m.items[k]
	if !ok {
		return nil, false, nil
	}
	if item.expired(m.now()) {
		delete(m.items, k)
		return nil, false, nil
	}
	return append([]byte(nil), item.value...), true, nil
}

func (s *memoryScope) RemoveItem(_ context.Context, key string) error {
	m := s.parent
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, scopedKey(s.namespace, key))
	return nil
}

// Len returns the number of items held, expired or not.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// sweep drops expired items. The caller holds m.mu.
func (m *Memory) sweep(now time.Time) {
	if m.ttl <= 0 || now.Sub(m.lastSweep) < memorySweepInterval {
		return
	}
	m.lastSweep = now
	for k, item := range m.items {
		if item.expired(now) {
			delete(m.items, k)
		}
	}
}

func (i memoryItem) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && now.After(i.expiresAt)
}
