// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package chunk

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/ggpaint/grid"
)

// Cache errors.
var (
	// ErrCacheFull is returned when no free slot exists for an insert.
	// The caller must treat this as data loss for the rejected chunk;
	// the cache is a bounded backstop, not a guarantee.
	ErrCacheFull = errors.New("chunk: snapshot cache full")
)

// Cache is the cold tier: a fixed arena of evicted chunk snapshots held
// as plain CPU pixel buffers.
//
// Slot selection is first-fit by design, not LRU: the first free slot is
// reused, and a full cache rejects new entries no matter how stale the
// existing ones are. Recency ordering would change which chunk is lost
// when the cache overflows, and the data-loss contract is defined in
// terms of this policy.
type Cache struct {
	slots []cacheSlot
}

type cacheSlot struct {
	coord  grid.Coord
	snap   *image.RGBA
	active bool
}

// NewCache creates a cache with the given fixed capacity.
func NewCache(capacity int) (*Cache, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("chunk: cache capacity must be >= 1, got %d", capacity)
	}
	return &Cache{slots: make([]cacheSlot, capacity)}, nil
}

// Capacity returns the fixed number of slots.
func (c *Cache) Capacity() int {
	return len(c.slots)
}

// Len returns the number of occupied slots.
func (c *Cache) Len() int {
	n := 0
	for i := range c.slots {
		if c.slots[i].active {
			n++
		}
	}
	return n
}

// Insert stores a snapshot in the first free slot. On ErrCacheFull no
// state is mutated and the snapshot is not retained.
//
// The caller guarantees the coordinate is not already cached (uniqueness
// is maintained by the activation protocol, which removes a coordinate
// from the cache before it becomes resident).
func (c *Cache) Insert(coord grid.Coord, snap *image.RGBA) error {
	if snap == nil || snap.Bounds().Dx() != Size || snap.Bounds().Dy() != Size {
		return ErrSnapshotSize
	}
	for i := range c.slots {
		if !c.slots[i].active {
			c.slots[i] = cacheSlot{coord: coord, snap: snap, active: true}
			return nil
		}
	}
	return ErrCacheFull
}

// Take removes and returns the snapshot for a coordinate. Ownership
// transfers to the caller; the slot becomes free.
func (c *Cache) Take(coord grid.Coord) (*image.RGBA, bool) {
	for i := range c.slots {
		if c.slots[i].active && c.slots[i].coord == coord {
			snap := c.slots[i].snap
			c.slots[i] = cacheSlot{}
			return snap, true
		}
	}
	return nil, false
}

// Peek returns the snapshot for a coordinate without removing it. The
// snapshot must not be mutated.
func (c *Cache) Peek(coord grid.Coord) (*image.RGBA, bool) {
	for i := range c.slots {
		if c.slots[i].active && c.slots[i].coord == coord {
			return c.slots[i].snap, true
		}
	}
	return nil, false
}

// Contains reports whether a coordinate is cached, without removing it.
func (c *Cache) Contains(coord grid.Coord) bool {
	for i := range c.slots {
		if c.slots[i].active && c.slots[i].coord == coord {
			return true
		}
	}
	return false
}

// Each calls fn for every cached snapshot. The snapshot must not be
// mutated; the save path reads it in place.
func (c *Cache) Each(fn func(grid.Coord, *image.RGBA)) {
	for i := range c.slots {
		if c.slots[i].active {
			fn(c.slots[i].coord, c.slots[i].snap)
		}
	}
}

// Clear frees every slot.
func (c *Cache) Clear() {
	for i := range c.slots {
		c.slots[i] = cacheSlot{}
	}
}
