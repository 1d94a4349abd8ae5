package contract

import "context"

// ViewerStateRepository is a key -> JSON string store scoped per viewer.
// Implementations may lose data at any time; callers treat a miss as an empty default.
type ViewerStateRepository interface {
	Get(ctx context.Context, viewerId, key string) (string, bool, error)
	Set(ctx context.Context, viewerId, key, value string) error
	Delete(ctx context.Context, viewerId, key string) error
}
