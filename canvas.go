// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggpaint

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/ggpaint/chunk"
	"github.com/gogpu/ggpaint/grid"
	"github.com/gogpu/ggpaint/history"
)

// Canvas errors.
var (
	// ErrCanvasClosed is returned when operating on a closed canvas.
	ErrCanvasClosed = errors.New("ggpaint: canvas is closed")
)

// Canvas implements history.Target so the undo log can capture and
// restore chunk content through the activation protocol.
var _ history.Target = (*Canvas)(nil)

// TickReport summarizes one viewport sweep.
type TickReport struct {
	// Activated is the number of chunks brought into residency.
	Activated int

	// Evicted is the number of chunks removed from residency.
	Evicted int

	// Lost lists modified chunks whose content was dropped because the
	// snapshot cache was full. Their pixels are gone.
	Lost []grid.Coord
}

// Canvas is an infinite 2D paintable surface backed by two bounded
// storage tiers: a pool of resident chunks and a cache of evicted
// snapshots. Every painted position belongs to exactly one chunk, and a
// chunk lives in at most one tier at a time.
//
// Canvas is frame-driven and not safe for concurrent use.
type Canvas struct {
	opts  options
	pool  *chunk.Pool
	cache *chunk.Cache
	hist  *history.Log

	lostTotal int
	satLatch  bool // one saturation warning until the pool recovers
	closed    bool
}

// New creates a canvas. With no options it holds an 11x11 resident
// window, 512 cached snapshots and 100 undo steps.
func New(opts ...Option) (*Canvas, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	pool, err := chunk.NewPool(o.poolRadius)
	if err != nil {
		return nil, err
	}
	pool.SetBackground(o.background)

	cache, err := chunk.NewCache(o.cacheCapacity)
	if err != nil {
		return nil, err
	}

	if o.historyDepth < 1 {
		return nil, fmt.Errorf("ggpaint: history depth must be >= 1, got %d", o.historyDepth)
	}
	if o.loadPadding < 0 {
		return nil, fmt.Errorf("ggpaint: load padding must be >= 0, got %d", o.loadPadding)
	}

	c := &Canvas{
		opts:  o,
		pool:  pool,
		cache: cache,
		hist:  history.NewLog(o.historyDepth),
	}
	Logger().Debug("ggpaint: canvas created",
		"poolSlots", pool.Capacity(),
		"cacheSlots", cache.Capacity(),
		"historyDepth", o.historyDepth)
	return c, nil
}

// ChunkSize returns the chunk edge length in pixels and world units.
func (c *Canvas) ChunkSize() int { return chunk.Size }

// Resident returns the number of chunks currently in the pool.
func (c *Canvas) Resident() int { return c.pool.Len() }

// Cached returns the number of snapshots currently in the cache.
func (c *Canvas) Cached() int { return c.cache.Len() }

// LostChunks returns how many modified chunks have been dropped over the
// canvas lifetime because the cache was full.
func (c *Canvas) LostChunks() int { return c.lostTotal }

// Acquire returns the resident chunk containing the world position,
// activating it if needed. Content previously evicted to the cache is
// rehydrated; otherwise the chunk starts blank.
func (c *Canvas) Acquire(p grid.Point) (*chunk.Chunk, error) {
	if c.closed {
		return nil, ErrCanvasClosed
	}
	return c.acquire(grid.FromWorld(p, chunk.Size))
}

// acquire runs the activation protocol for one coordinate:
// find resident, else allocate a slot, then hydrate from the cache or
// start blank.
func (c *Canvas) acquire(coord grid.Coord) (*chunk.Chunk, error) {
	if ch := c.pool.Find(coord); ch != nil {
		return ch, nil
	}

	ch, err := c.pool.Alloc(coord)
	if err != nil {
		if errors.Is(err, chunk.ErrPoolSaturated) && !c.satLatch {
			c.satLatch = true
			Logger().Warn("ggpaint: active pool saturated",
				"capacity", c.pool.Capacity(), "coord", coord)
		}
		return nil, err
	}
	c.satLatch = false

	if snap, ok := c.cache.Take(coord); ok {
		if err := ch.Restore(snap); err != nil {
			c.pool.Evict(ch)
			return nil, err
		}
		Logger().Debug("ggpaint: chunk rehydrated", "coord", coord)
	} else {
		Logger().Debug("ggpaint: chunk activated blank", "coord", coord)
	}
	return ch, nil
}

// evict removes a chunk from the pool, migrating modified content to
// the cache. Returns true when modified content had to be dropped.
func (c *Canvas) evict(ch *chunk.Chunk) bool {
	lost := false
	if ch.Modified() {
		if err := c.cache.Insert(ch.Coord(), ch.Snapshot()); err != nil {
			lost = true
			c.lostTotal++
			Logger().Warn("ggpaint: chunk content lost",
				"coord", ch.Coord(), "err", err)
		}
	}
	c.pool.Evict(ch)
	return lost
}

// Tick sweeps residency against the visible world rectangle: chunks
// outside the padded window are evicted first, then every uncovered
// window coordinate is activated. Evicting first frees slots for the
// activations of the same sweep.
//
// Activation can still fail with chunk.ErrPoolSaturated when the window
// holds more chunks than the pool has slots; the report remains valid
// for the work done up to that point.
func (c *Canvas) Tick(visible grid.Rect) (TickReport, error) {
	var rep TickReport
	if c.closed {
		return rep, ErrCanvasClosed
	}

	win := grid.WindowFor(visible, chunk.Size, c.opts.loadPadding)

	c.pool.Each(func(ch *chunk.Chunk) {
		coord := ch.Coord()
		if win.Contains(coord) {
			return
		}
		if c.evict(ch) {
			rep.Lost = append(rep.Lost, coord)
		}
		rep.Evicted++
	})

	var sweepErr error
	win.Each(func(coord grid.Coord) {
		if sweepErr != nil {
			return
		}
		if c.pool.Find(coord) != nil {
			return
		}
		if _, err := c.acquire(coord); err != nil {
			sweepErr = err
			return
		}
		rep.Activated++
	})
	return rep, sweepErr
}

// Touch returns the resident chunk for a coordinate, recording its
// pre-draw content in the open gesture. This is the entry point for all
// painting: acquire first, capture second, so the snapshot reflects the
// hydrated content just before the first modification.
//
// Without an open gesture Touch only acquires; the change will not be
// undoable.
func (c *Canvas) Touch(coord grid.Coord) (*chunk.Chunk, error) {
	if c.closed {
		return nil, ErrCanvasClosed
	}
	ch, err := c.acquire(coord)
	if err != nil {
		return nil, err
	}
	if c.hist.Recording() {
		if err := c.hist.Touch(c, coord); err != nil {
			return nil, err
		}
	}
	return ch, nil
}

// Paint writes one pixel at a world position through the full protocol:
// chunk activation, history capture, modification tracking.
func (c *Canvas) Paint(p grid.Point, col color.RGBA) error {
	coord := grid.FromWorld(p, chunk.Size)
	ch, err := c.Touch(coord)
	if err != nil {
		return err
	}
	local := grid.Local(p, coord, chunk.Size)
	ch.Pix().SetRGBA(int(local.X), int(local.Y), col)
	ch.MarkModified()
	return nil
}

// SampleColor reads the color at a world position from whichever tier
// holds the chunk. Positions in chunks that were never painted (or whose
// content was lost) read as the background color.
func (c *Canvas) SampleColor(p grid.Point) (color.RGBA, error) {
	if c.closed {
		return color.RGBA{}, ErrCanvasClosed
	}
	coord := grid.FromWorld(p, chunk.Size)
	local := grid.Local(p, coord, chunk.Size)
	x, y := int(local.X), int(local.Y)

	if ch := c.pool.Find(coord); ch != nil {
		return ch.At(x, y), nil
	}
	if snap, ok := c.cache.Peek(coord); ok {
		return snap.RGBAAt(x, y), nil
	}
	return c.opts.background, nil
}

// BeginGesture opens an undoable action. All chunks touched until
// EndGesture undo and redo as one unit. A gesture already open is
// committed first.
func (c *Canvas) BeginGesture() {
	if c.closed {
		return
	}
	c.hist.Begin()
}

// EndGesture commits the open action to the undo log. A gesture that
// touched nothing is discarded. Committing clears the redo log.
func (c *Canvas) EndGesture() {
	if c.closed {
		return
	}
	c.hist.End()
}

// Undo reverts the most recent action, activating its chunks as needed.
// Returns false when there is nothing to undo. An open gesture is
// committed first.
func (c *Canvas) Undo() (bool, error) {
	if c.closed {
		return false, ErrCanvasClosed
	}
	c.hist.End()
	return c.hist.Undo(c)
}

// Redo re-applies the most recently undone action. Returns false when
// there is nothing to redo.
func (c *Canvas) Redo() (bool, error) {
	if c.closed {
		return false, ErrCanvasClosed
	}
	c.hist.End()
	return c.hist.Redo(c)
}

// UndoDepth returns the number of committed actions available to undo.
func (c *Canvas) UndoDepth() int { return c.hist.UndoLen() }

// RedoDepth returns the number of undone actions available to redo.
func (c *Canvas) RedoDepth() int { return c.hist.RedoLen() }

// Capture returns a copy of the chunk's current content for the undo
// log, activating the chunk if it is not resident.
func (c *Canvas) Capture(coord grid.Coord) (*image.RGBA, error) {
	ch, err := c.acquire(coord)
	if err != nil {
		return nil, err
	}
	return ch.Snapshot(), nil
}

// Restore overwrites a chunk with logged content, activating it if it
// is not resident.
func (c *Canvas) Restore(coord grid.Coord, snap *image.RGBA) error {
	ch, err := c.acquire(coord)
	if err != nil {
		return err
	}
	return ch.Restore(snap)
}

// Render composes the world rectangle into a single RGBA image, reading
// resident chunks, cached snapshots and background fill as needed. The
// origin of the returned image corresponds to r.Min.
func (c *Canvas) Render(r grid.Rect) (*image.RGBA, error) {
	if c.closed {
		return nil, ErrCanvasClosed
	}
	w := int(r.Max.X - r.Min.X)
	h := int(r.Max.Y - r.Min.Y)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("ggpaint: empty render rect %+v", r)
	}

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), &image.Uniform{c.opts.background}, image.Point{}, draw.Src)

	win := grid.WindowFor(r, chunk.Size, 0)
	win.Each(func(coord grid.Coord) {
		var src *image.RGBA
		if ch := c.pool.Find(coord); ch != nil {
			src = ch.Pix()
		} else if snap, ok := c.cache.Peek(coord); ok {
			src = snap
		} else {
			return
		}

		// Destination rect of this chunk inside the output image.
		origin := coord.Origin(chunk.Size)
		dst := image.Rect(
			int(origin.X-r.Min.X),
			int(origin.Y-r.Min.Y),
			int(origin.X-r.Min.X)+chunk.Size,
			int(origin.Y-r.Min.Y)+chunk.Size,
		)
		draw.Draw(out, dst, src, image.Point{}, draw.Src)
	})
	return out, nil
}

// Close releases all chunks, snapshots and history. The canvas must not
// be used afterwards. Close is idempotent.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.pool.Reset()
	c.cache.Clear()
	c.hist.Clear()
	c.closed = true
	Logger().Debug("ggpaint: canvas closed")
	return nil
}
