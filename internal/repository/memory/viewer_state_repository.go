package memory

import (
	"context"

	"prep-tool-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// ViewerStateRepository keeps per-viewer state in process memory.
// Used when no Redis is configured; contents are lost on restart.
type ViewerStateRepository struct {
	cache *cache.Cache
}

func NewViewerStateRepository() contract.ViewerStateRepository {
	return &ViewerStateRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (r *ViewerStateRepository) key(viewerId, key string) string {
	return viewerId + ":" + key
}

func (r *ViewerStateRepository) Get(_ context.Context, viewerId, key string) (string, bool, error) {
	if x, found := r.cache.Get(r.key(viewerId, key)); found {
		if s, ok := x.(string); ok {
			return s, true, nil
		}
	}
	return "", false, nil
}

func (r *ViewerStateRepository) Set(_ context.Context, viewerId, key, value string) error {
	r.cache.Set(r.key(viewerId, key), value, cache.NoExpiration)
	return nil
}

func (r *ViewerStateRepository) Delete(_ context.Context, viewerId, key string) error {
	r.cache.Delete(r.key(viewerId, key))
	return nil
}
