package cache

import (
	"context"
	"fmt"
	"time"
)

// StoredValue is a durable-tier hit with its timing metadata. Age is
// computed against the entry's actual stored TTL, not a fixed assumption.
type StoredValue struct {
	Data     []byte
	StoredAt time.Time
	TTL      time.Duration
}

// Store is the durable second tier: simple get/set/delete with TTL. The
// cache must tolerate the store being completely unavailable; every error
// is degraded to a miss by the tiered layer.
type Store interface {
	Get(ctx context.Context, key string) (*StoredValue, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// StoreError wraps a durable-store failure. It is logged and treated as a
// miss, never surfaced to analysis callers.
type StoreError struct {
	Op    string
	Cause error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("cache store %s failed: %v", e.Op, e.Cause)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}
