package api

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/shandysiswandi/authn8-mcp/internal/authn8/entity"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/clock"
)

// DefaultCacheTTL is how long a fetched account list is served from memory.
const DefaultCacheTTL = 60 * time.Second

// accountCache holds the last fetched account list. The whole list is
// replaced on refresh; it is never patched in place.
type accountCache struct {
	mu        sync.Mutex
	ttl       time.Duration
	clock     clock.Clocker
	accounts  []entity.Account
	fetchedAt time.Time
	filled    bool
}

func newAccountCache(ttl time.Duration, clk clock.Clocker) *accountCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if clk == nil {
		clk = clock.New()
	}

	return &accountCache{ttl: ttl, clock: clk}
}

// isValid must be called with mu held.
func (c *accountCache) isValid() bool {
	return c.filled && c.clock.Now().Sub(c.fetchedAt) < c.ttl
}

// getOrFetch returns a copy of the cached accounts while they are fresh,
// otherwise calls fetch and replaces the cache with its result. The freshness
// check, the fetch and the replacement run under one lock so concurrent
// callers trigger at most one fetch per expiry. hit reports whether the
// cached list was served.
func (c *accountCache) getOrFetch(
	ctx context.Context,
	fetch func(context.Context) ([]entity.Account, error),
) (accounts []entity.Account, hit bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isValid() {
		return slices.Clone(c.accounts), true, nil
	}

	fresh, err := fetch(ctx)
	if err != nil {
		return nil, false, err
	}

	c.accounts = slices.Clone(fresh)
	c.fetchedAt = c.clock.Now()
	c.filled = true

	return slices.Clone(c.accounts), false, nil
}
