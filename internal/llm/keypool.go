package llm

import (
	"errors"
	"sync"
)

// KeyPool holds an ordered list of API credentials with a rotation cursor
// and per-key failure counters. The cursor is mutated only under the mutex;
// a slightly stale read by an in-flight request costs at most one extra
// retry, never corruption.
type KeyPool struct {
	mu       sync.Mutex
	keys     []string
	cursor   int
	failures []int
}

// ErrNoKeys is returned when a pool is constructed without credentials.
var ErrNoKeys = errors.New("key pool requires at least one API key")

// NewKeyPool creates a pool from ordered credentials.
func NewKeyPool(keys []string) (*KeyPool, error) {
	cleaned := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			cleaned = append(cleaned, k)
		}
	}
	if len(cleaned) == 0 {
		return nil, ErrNoKeys
	}
	return &KeyPool{
		keys:     cleaned,
		failures: make([]int, len(cleaned)),
	}, nil
}

// Len returns the number of credentials in the pool.
func (p *KeyPool) Len() int {
	return len(p.keys)
}

// Current returns the credential at the cursor and its index.
func (p *KeyPool) Current() (string, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.keys[p.cursor], p.cursor
}

// Rotate advances the cursor to the next credential and returns it with its
// index. Rotation wraps around.
func (p *KeyPool) Rotate() (string, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cursor = (p.cursor + 1) % len(p.keys)
	return p.keys[p.cursor], p.cursor
}

// MarkFailure increments the failure counter for the key at index.
func (p *KeyPool) MarkFailure(index int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if index >= 0 && index < len(p.failures) {
		p.failures[index]++
	}
}

// Failures returns a copy of the per-key failure counters.
func (p *KeyPool) Failures() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]int, len(p.failures))
	copy(out, p.failures)
	return out
}
