// Package asset stores binary assets (post images) keyed by an opaque id.
// Keys are chosen by the caller; here they are post ids.
package asset

import "context"

// Store is the create/delete contract the feed service depends on. Create
// returns a retrievable reference (URL) for the stored payload.
type Store interface {
	Create(ctx context.Context, payload []byte, contentType, key string) (string, error)
	Delete(ctx context.Context, key string) error
}
