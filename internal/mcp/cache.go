package mcp

import (
	"fmt"

	"github.com/maypok86/otter"
)

// resultCacheSize bounds the number of serialized responses kept around.
const resultCacheSize = 512

// resultCache memoizes serialized fuzzy-search responses. Queries repeat a
// lot in practice (hosts retry with the same arguments), and the underlying
// index is immutable between rebuilds, so cached responses stay valid until
// Clear is called on refresh.
type resultCache struct {
	cache otter.Cache[string, string]
}

func newResultCache() (*resultCache, error) {
	cache, err := otter.MustBuilder[string, string](resultCacheSize).Build()
	if err != nil {
		return nil, fmt.Errorf("building result cache: %w", err)
	}
	return &resultCache{cache: cache}, nil
}

func (c *resultCache) key(query string, limit int) string {
	return fmt.Sprintf("%s|%d", query, limit)
}

func (c *resultCache) get(query string, limit int) (string, bool) {
	return c.cache.Get(c.key(query, limit))
}

func (c *resultCache) set(query string, limit int, payload string) {
	c.cache.Set(c.key(query, limit), payload)
}

func (c *resultCache) clear() {
	c.cache.Clear()
}

func (c *resultCache) close() {
	c.cache.Close()
}
