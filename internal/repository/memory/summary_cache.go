package memory

import (
	"time"

	"prep-tool-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

const allSessionsKey = "sessions:all"

// SummaryCache memoises the full session listing between writes.
type SummaryCache struct {
	cache *cache.Cache
}

func NewSummaryCache(ttl time.Duration) *SummaryCache {
	return &SummaryCache{cache: cache.New(ttl, 2*ttl)}
}

func (c *SummaryCache) Get() ([]*entity.Session, bool) {
	if x, found := c.cache.Get(allSessionsKey); found {
		return x.([]*entity.Session), true
	}
	return nil, false
}

func (c *SummaryCache) Set(sessions []*entity.Session) {
	c.cache.Set(allSessionsKey, sessions, cache.DefaultExpiration)
}

func (c *SummaryCache) Invalidate() {
	c.cache.Delete(allSessionsKey)
}
