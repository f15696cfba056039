// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package chunk

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/gogpu/ggpaint/grid"
)

// Pool errors.
var (
	// ErrPoolSaturated is returned when every slot is occupied. It marks
	// a configuration problem: the pool must be sized for the padded
	// viewport window it is asked to keep resident.
	ErrPoolSaturated = errors.New("chunk: active pool saturated")
)

// Pool is the hot tier: a fixed arena of chunk slots.
//
// Slots are allocated first-fit and addressed by stable pointers into a
// slice that is never resized, so a *Chunk handed out during a tick stays
// valid for that tick even as other slots activate and deactivate.
//
// Pool is not safe for concurrent use; the canvas is frame-driven and
// single-threaded.
type Pool struct {
	slots []Chunk
	bg    color.RGBA
}

// NewPool creates a pool sized for a square view of the given radius:
// capacity (2*radius+1)^2. A radius of 1 yields the minimal 3x3 window
// of 9 slots.
func NewPool(radius int) (*Pool, error) {
	if radius < 1 {
		return nil, fmt.Errorf("chunk: pool radius must be >= 1, got %d", radius)
	}
	d := 2*radius + 1
	return &Pool{slots: make([]Chunk, d*d), bg: Background}, nil
}

// SetBackground changes the color newly activated chunks are filled
// with. Already resident chunks are unaffected.
func (p *Pool) SetBackground(c color.RGBA) {
	p.bg = c
}

// Capacity returns the fixed number of slots.
func (p *Pool) Capacity() int {
	return len(p.slots)
}

// Len returns the number of active slots.
func (p *Pool) Len() int {
	n := 0
	for i := range p.slots {
		if p.slots[i].active {
			n++
		}
	}
	return n
}

// Find returns the resident chunk for a coordinate, or nil.
// Linear scan: the pool holds tens of entries and runs at frame rate,
// not in a per-pixel loop.
func (p *Pool) Find(c grid.Coord) *Chunk {
	for i := range p.slots {
		if p.slots[i].active && p.slots[i].coord == c {
			return &p.slots[i]
		}
	}
	return nil
}

// Alloc activates the first free slot for the coordinate, blank-filled.
// Returns ErrPoolSaturated when no slot is free; the caller must surface
// this rather than dropping the draw silently.
func (p *Pool) Alloc(c grid.Coord) (*Chunk, error) {
	for i := range p.slots {
		if !p.slots[i].active {
			p.slots[i].activate(c, p.bg)
			return &p.slots[i], nil
		}
	}
	return nil, ErrPoolSaturated
}

// Evict deactivates the chunk's slot and releases its GPU texture. The
// caller is responsible for migrating modified content to the cache
// first; Evict itself discards.
func (p *Pool) Evict(ch *Chunk) {
	if ch == nil || !ch.active {
		return
	}
	ch.deactivate()
}

// Each calls fn for every active chunk. fn may call Evict on the chunk
// it was given.
func (p *Pool) Each(fn func(*Chunk)) {
	for i := range p.slots {
		if p.slots[i].active {
			fn(&p.slots[i])
		}
	}
}

// Reset evicts every slot without migration. Used by load, which replaces
// the whole canvas state.
func (p *Pool) Reset() {
	for i := range p.slots {
		if p.slots[i].active {
			p.slots[i].deactivate()
		}
	}
}
