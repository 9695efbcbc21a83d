package cache

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/jonathan/ats-analyzer/internal/types"
)

// Default tier TTLs and the staleness trigger.
const (
	DefaultMemoryTTL      = 10 * time.Minute
	DefaultStoreTTL       = 24 * time.Hour
	DefaultStaleFraction  = 0.8
	defaultRefreshTimeout = 60 * time.Second
)

// Producer computes a value on a cache miss or background refresh.
type Producer func(ctx context.Context) (*types.AnalysisResult, error)

// Tiered combines the in-process tier with an optional durable store. Store
// failures are logged and treated as misses; a nil store degrades to
// memory-only caching. Concurrent identical computes are collapsed, but two
// requests racing across processes may both compute; last writer wins since
// this is a best-effort cache, not a source of truth.
type Tiered struct {
	mem           *Memory
	store         Store
	log           *zap.Logger
	group         singleflight.Group
	memoryTTL     time.Duration
	storeTTL      time.Duration
	staleFraction float64
}

// Options configures a Tiered cache.
type Options struct {
	Capacity      int
	MemoryTTL     time.Duration
	StoreTTL      time.Duration
	StaleFraction float64
}

// NewTiered creates a two-tier cache. store may be nil.
func NewTiered(store Store, log *zap.Logger, opts *Options) *Tiered {
	if opts == nil {
		opts = &Options{}
	}
	if opts.MemoryTTL <= 0 {
		opts.MemoryTTL = DefaultMemoryTTL
	}
	if opts.StoreTTL <= 0 {
		opts.StoreTTL = DefaultStoreTTL
	}
	if opts.StaleFraction <= 0 || opts.StaleFraction >= 1 {
		opts.StaleFraction = DefaultStaleFraction
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Tiered{
		mem:           NewMemory(opts.Capacity),
		store:         store,
		log:           log,
		memoryTTL:     opts.MemoryTTL,
		storeTTL:      opts.StoreTTL,
		staleFraction: opts.StaleFraction,
	}
}

// Get checks tier 1, then the durable tier. A durable hit re-warms tier 1.
func (t *Tiered) Get(ctx context.Context, key string) (*types.AnalysisResult, bool) {
	result, _, _, stale, ok := t.lookup(ctx, key)
	if !ok {
		return nil, false
	}
	_ = stale
	return result, true
}

// Set writes to both tiers. Durable-tier failures are logged and swallowed.
func (t *Tiered) Set(ctx context.Context, key string, result *types.AnalysisResult) {
	t.mem.Set(key, result, t.memoryTTL)

	if t.store == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		t.log.Warn("failed to encode cache value", zap.Error(err))
		return
	}
	if err := t.store.Set(ctx, key, data, t.storeTTL); err != nil {
		t.log.Warn("durable cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// GetOrCompute returns the cached value when fresh. A stale hit (older than
// the stale fraction of its own stored TTL) is returned immediately while a
// background refresh is issued; the caller never blocks on the refresh and
// refresh failures are swallowed. A miss computes synchronously, collapsed
// across concurrent callers with the same key.
func (t *Tiered) GetOrCompute(ctx context.Context, key string, producer Producer) (*types.AnalysisResult, error) {
	result, _, _, stale, ok := t.lookup(ctx, key)
	if ok {
		if stale {
			t.refreshInBackground(key, producer)
		}
		return result, nil
	}

	v, err, _ := t.group.Do(key, func() (any, error) {
		computed, err := producer(ctx)
		if err != nil {
			return nil, err
		}
		t.Set(ctx, key, computed)
		return computed, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*types.AnalysisResult), nil
}

// lookup resolves a key through both tiers, reporting staleness relative to
// the serving entry's own TTL.
func (t *Tiered) lookup(ctx context.Context, key string) (result *types.AnalysisResult, age, ttl time.Duration, stale, ok bool) {
	if result, age, ttl, ok = t.mem.Get(key); ok {
		return result, age, ttl, t.isStale(age, ttl), true
	}

	if t.store == nil {
		return nil, 0, 0, false, false
	}

	stored, found, err := t.store.Get(ctx, key)
	if err != nil {
		t.log.Warn("durable cache read failed, treating as miss", zap.String("key", key), zap.Error(err))
		return nil, 0, 0, false, false
	}
	if !found {
		return nil, 0, 0, false, false
	}

	var decoded types.AnalysisResult
	if err := json.Unmarshal(stored.Data, &decoded); err != nil {
		t.log.Warn("durable cache entry corrupt, treating as miss", zap.String("key", key), zap.Error(err))
		return nil, 0, 0, false, false
	}

	// Re-warm tier 1 so the next lookup stays in process.
	t.mem.Set(key, &decoded, t.memoryTTL)

	age = time.Since(stored.StoredAt)
	return &decoded, age, stored.TTL, t.isStale(age, stored.TTL), true
}

// isStale compares an entry's age to the configured fraction of the TTL it
// was actually stored with.
func (t *Tiered) isStale(age, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return float64(age) >= t.staleFraction*float64(ttl)
}

// refreshInBackground issues a fire-and-forget recompute. Failures are
// logged and swallowed; the stale value remains valid until natural expiry.
func (t *Tiered) refreshInBackground(key string, producer Producer) {
	go func() {
		_, err, _ := t.group.Do("refresh:"+key, func() (any, error) {
			ctx, cancel := context.WithTimeout(context.Background(), defaultRefreshTimeout)
			defer cancel()

			computed, err := producer(ctx)
			if err != nil {
				return nil, err
			}
			t.Set(ctx, key, computed)
			return computed, nil
		})
		if err != nil {
			t.log.Warn("background cache refresh failed", zap.String("key", key), zap.Error(err))
		}
	}()
}
