package cart

import (
	"time"

	"gamestore/internal/domain"
)

// Snapshot serializes the cart into its durable form.
func (c *Cart) Snapshot() domain.CartSnapshot {
	return domain.CartSnapshot{
		Version:      domain.CartSnapshotVersion,
		Items:        c.Items(),
		LastModified: c.lastModified.UnixMilli(),
	}
}

// FromSnapshot rebuilds a cart from its durable form. Unknown future
// versions and empty snapshots yield a fresh cart; version 0 snapshots
// (pre-versioning) load as-is since the entry shape is unchanged.
func FromSnapshot(snap domain.CartSnapshot) *Cart {
	c := New()
	if snap.Version > domain.CartSnapshotVersion || snap.LastModified <= 0 {
		return c
	}
	c.items = make([]domain.CartEntry, len(snap.Items))
	copy(c.items, snap.Items)
	c.lastModified = time.UnixMilli(snap.LastModified)
	return c
}
