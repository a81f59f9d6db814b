// Package cache stores last-known-good snapshots of datastore reads,
// keyed by logical query. Entries have no expiry: staleness is reported
// to the caller through StoredAt, never enforced here.
package cache

import (
	"context"
	"time"
)

// Entry is an immutable snapshot of one logical query result.
// Overwritten wholesale on every successful fetch; last writer wins.
type Entry struct {
	Key      string    `json:"key"`
	Value    []byte    `json:"value"`
	StoredAt time.Time `json:"stored_at"`
}

// Store is the snapshot store. Get returns nil (not an error) when no
// snapshot exists for the key.
type Store interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, value []byte) error
}
