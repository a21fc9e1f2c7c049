package feedcache

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/karlseguin/ccache/v3"

	"hubstat/internal/logging"
	"hubstat/internal/pipeline"
)

// Cache events reported to the EventRecorder.
const (
	EventHit        = "hit"
	EventMiss       = "miss"
	EventInvalidate = "invalidate"
)

const defaultMaxEntries = 16

// Loader produces a fresh pipeline result. (*pipeline.Pipeline).Run fits.
type Loader func(ctx context.Context) pipeline.Result

// EventRecorder receives cache hit, miss and invalidate events.
type EventRecorder interface {
	ObserveCacheEvent(event string)
}

type entry struct {
	result   pipeline.Result
	storedAt time.Time
}

// Cache memoizes successful pipeline results per endpoint for a fixed TTL.
// Failures are never stored, so the next lookup retries the feed.
type Cache struct {
	store    *ccache.Cache[*entry]
	ttl      time.Duration
	clock    clockwork.Clock
	logger   *slog.Logger
	recorder EventRecorder
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the clock used for expiry.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Cache) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithLogger sets the cache logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRecorder attaches a cache event recorder.
func WithRecorder(recorder EventRecorder) Option {
	return func(c *Cache) {
		c.recorder = recorder
	}
}

// New creates a cache. A ttl <= 0 disables memoization; every Get loads.
func New(ttl time.Duration, maxEntries int, opts ...Option) *Cache {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	c := &Cache{
		store: ccache.New(ccache.Configure[*entry]().
			MaxSize(int64(maxEntries)).
			ItemsToPrune(1)),
		ttl:    ttl,
		clock:  clockwork.NewRealClock(),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logging.NewComponentLogger(c.logger, "feedcache")
	return c
}

// Enabled reports whether results are memoized at all.
func (c *Cache) Enabled() bool {
	return c != nil && c.ttl > 0
}

// Get returns the cached result for key when it is younger than the TTL,
// otherwise it calls load. The boolean reports a cache hit.
func (c *Cache) Get(ctx context.Context, key string, load Loader) (pipeline.Result, bool) {
	if !c.Enabled() {
		return load(ctx), false
	}

	now := c.clock.Now()
	if item := c.store.Get(key); item != nil {
		cached := item.Value()
		if now.Sub(cached.storedAt) < c.ttl {
			c.event(EventHit)
			c.logger.Debug("feed cache hit",
				logging.String(logging.FieldFeedURL, key),
				logging.Duration("age", now.Sub(cached.storedAt)),
			)
			return cached.result, true
		}
		c.store.Delete(key)
	}

	c.event(EventMiss)
	result := load(ctx)
	if result.OK() {
		// ccache expiry uses wall time; freshness is judged against c.clock above.
		c.store.Set(key, &entry{result: result, storedAt: c.clock.Now()}, c.ttl+time.Minute)
	}
	return result, false
}

// Invalidate drops the entry for key.
func (c *Cache) Invalidate(key string) {
	if !c.Enabled() {
		return
	}
	if c.store.Delete(key) {
		c.logger.Info("feed cache entry invalidated", logging.String(logging.FieldFeedURL, key))
	}
	c.event(EventInvalidate)
}

// Clear drops every entry.
func (c *Cache) Clear() {
	if !c.Enabled() {
		return
	}
	c.store.Clear()
	c.logger.Info("feed cache cleared")
	c.event(EventInvalidate)
}

// Len reports the number of stored entries.
func (c *Cache) Len() int {
	if !c.Enabled() {
		return 0
	}
	return c.store.ItemCount()
}

// Close stops the cache's background worker.
func (c *Cache) Close() {
	c.store.Stop()
}

func (c *Cache) event(name string) {
	if c.recorder != nil {
		c.recorder.ObserveCacheEvent(name)
	}
}
