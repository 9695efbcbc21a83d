package cache

import (
	"sync"
	"time"

	"github.com/jonathan/ats-analyzer/internal/types"
)

// DefaultMemoryCapacity bounds the in-process tier.
const DefaultMemoryCapacity = 256

// memoryEntry is one stored value with its timing metadata.
type memoryEntry struct {
	result   *types.AnalysisResult
	storedAt time.Time
	ttl      time.Duration
}

// Memory is the fast in-process tier: a bounded map with FIFO eviction.
// Eviction order is insertion order only; a read never refreshes an entry's
// position. Safe for concurrent use.
type Memory struct {
	mu       sync.Mutex
	entries  map[string]memoryEntry
	order    []string
	capacity int
	now      func() time.Time
}

// NewMemory creates an in-process tier with the given capacity.
func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &Memory{
		entries:  make(map[string]memoryEntry, capacity),
		capacity: capacity,
		now:      time.Now,
	}
}

// Get returns the stored result with its age and TTL. Expired entries are
// removed and reported as misses.
func (m *Memory) Get(key string) (result *types.AnalysisResult, age, ttl time.Duration, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.entries[key]
	if !exists {
		return nil, 0, 0, false
	}

	age = m.now().Sub(entry.storedAt)
	if age >= entry.ttl {
		delete(m.entries, key)
		m.removeFromOrder(key)
		return nil, 0, 0, false
	}

	return entry.result, age, entry.ttl, true
}

// Set stores a value, evicting the oldest-inserted key when over capacity.
// Overwriting an existing key keeps its original insertion position.
func (m *Memory) Set(key string, result *types.AnalysisResult, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; !exists {
		if len(m.entries) >= m.capacity {
			oldest := m.order[0]
			m.order = m.order[1:]
			delete(m.entries, oldest)
		}
		m.order = append(m.order, key)
	}

	m.entries[key] = memoryEntry{
		result:   result,
		storedAt: m.now(),
		ttl:      ttl,
	}
}

// Delete removes a key.
func (m *Memory) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.entries[key]; exists {
		delete(m.entries, key)
		m.removeFromOrder(key)
	}
}

// Len returns the number of live entries (including not-yet-collected
// expired ones).
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memory) removeFromOrder(key string) {
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			return
		}
	}
}
