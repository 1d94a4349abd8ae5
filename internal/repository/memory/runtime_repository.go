package memory

import (
	"hash/fnv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

const lockStripes = 64

// RuntimeRepository holds live per-viewer panel instances (practice, rehearsal,
// pitch timers, editor drafts). Entries expire after the idle TTL, which is how
// an abandoned panel is torn down.
type RuntimeRepository struct {
	cache *cache.Cache
	locks [lockStripes]sync.Mutex
}

func NewRuntimeRepository(idleTTL time.Duration) *RuntimeRepository {
	// Purge expired instances every 10 minutes
	cleanup := 10 * time.Minute
	if idleTTL < cleanup {
		cleanup = idleTTL
	}
	return &RuntimeRepository{cache: cache.New(idleTTL, cleanup)}
}

func (r *RuntimeRepository) Save(key string, instance interface{}) {
	r.cache.Set(key, instance, cache.DefaultExpiration)
}

func (r *RuntimeRepository) Get(key string) (interface{}, bool) {
	return r.cache.Get(key)
}

func (r *RuntimeRepository) Delete(key string) {
	r.cache.Delete(key)
}

// Lock serialises access to one instance and returns the unlock func. Keys
// share a fixed set of stripes, so unrelated keys may occasionally wait on
// each other.
func (r *RuntimeRepository) Lock(key string) func() {
	h := fnv.New32a()
	h.Write([]byte(key))
	mu := &r.locks[h.Sum32()%lockStripes]
	mu.Lock()
	return mu.Unlock
}
