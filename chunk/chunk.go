// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package chunk implements the two storage tiers of the infinite canvas:
// a fixed-capacity pool of resident chunks (the hot tier, drawable and
// mirrored to a GPU texture) and a fixed-capacity cache of evicted pixel
// snapshots (the cold tier).
//
// A given grid coordinate lives in at most one tier at a time, and at most
// once within that tier. The pool and cache only provide the containers;
// the activation and eviction protocol that upholds this invariant lives
// in the root ggpaint package.
package chunk

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ggpaint/grid"
)

// Size is the edge length of a chunk in pixels and world units.
// One chunk covers Size x Size world units and owns an RGBA raster of the
// same dimensions. The value is a build-time constant; the save format
// records it so that files written with a different size are rejected.
const Size = 512

// Background is the color blank chunks are flood-filled with.
var Background = color.RGBA{R: 245, G: 245, B: 245, A: 255}

// Chunk errors.
var (
	// ErrNotActive is returned when a drawing operation targets a chunk
	// slot that is not currently resident.
	ErrNotActive = errors.New("chunk: chunk is not active")

	// ErrSnapshotSize is returned when a restored snapshot does not match
	// the chunk dimensions.
	ErrSnapshotSize = errors.New("chunk: snapshot size mismatch")
)

// textureDestroyer matches the Destroy method of gogpu textures.
type textureDestroyer interface {
	Destroy()
}

// Chunk is one resident tile of the canvas.
//
// The CPU pixmap is the canonical copy of the chunk's content, stored
// row-major top-to-bottom; snapshots taken for the cache, the undo log and
// the save file all share this orientation, so content never flips on a
// round trip. The GPU texture is a mirror that is re-uploaded lazily when
// the pixmap has changed.
//
// Chunks are owned by a Pool slot and must not be retained across a
// viewport sweep; the slot may be evicted and reused for another
// coordinate.
type Chunk struct {
	coord  grid.Coord
	pix    *image.RGBA
	tex    any  // lazily created GPU texture
	dirty  bool // pixmap newer than texture
	active bool
	mod    bool // content differs from blank since last hydration
}

// Coord returns the grid coordinate the chunk is resident for.
func (c *Chunk) Coord() grid.Coord {
	return c.coord
}

// Active reports whether the slot currently holds a resident chunk.
func (c *Chunk) Active() bool {
	return c.active
}

// Modified reports whether the chunk has been drawn to since it was
// created blank. Modified chunks migrate to the cache on eviction;
// unmodified ones are discarded, since blank content is reproducible.
func (c *Chunk) Modified() bool {
	return c.mod
}

// Pix returns the chunk's pixel raster for drawing. Callers that mutate
// it must call MarkModified.
func (c *Chunk) Pix() *image.RGBA {
	return c.pix
}

// MarkModified flags the chunk as containing user content and schedules
// a GPU re-upload. The flag is never cleared by reads; it is reset only
// when the chunk is rehydrated or evicted.
func (c *Chunk) MarkModified() {
	c.mod = true
	c.dirty = true
}

// At returns the pixel at chunk-local coordinates. Out-of-bounds
// positions return the zero color.
func (c *Chunk) At(x, y int) color.RGBA {
	if c.pix == nil || x < 0 || y < 0 || x >= Size || y >= Size {
		return color.RGBA{}
	}
	return c.pix.RGBAAt(x, y)
}

// Snapshot returns a copy of the chunk's current pixel content. The copy
// is independent: later drawing does not affect it.
func (c *Chunk) Snapshot() *image.RGBA {
	snap := image.NewRGBA(image.Rect(0, 0, Size, Size))
	copy(snap.Pix, c.pix.Pix)
	return snap
}

// Restore overwrites the chunk's content with a snapshot and marks it
// modified, so the restored content survives a later eviction.
func (c *Chunk) Restore(snap *image.RGBA) error {
	if !c.active {
		return ErrNotActive
	}
	if snap == nil || snap.Bounds().Dx() != Size || snap.Bounds().Dy() != Size {
		return ErrSnapshotSize
	}
	copy(c.pix.Pix, snap.Pix)
	c.MarkModified()
	return nil
}

// Flush uploads the pixmap to the GPU texture if it changed, creating
// the texture on first use. Returns the texture for drawing.
//
// Flush mirrors the dirty-upload cycle of ggcanvas: the texture is
// created through the host's TextureCreator and updated in place when it
// supports gpucontext.TextureUpdater.
func (c *Chunk) Flush(creator gpucontext.TextureCreator) (any, error) {
	if !c.active {
		return nil, ErrNotActive
	}
	if !c.dirty && c.tex != nil {
		return c.tex, nil
	}
	if creator == nil {
		// Headless operation: the pixmap stays canonical, nothing to
		// upload. The dirty flag stays set so a later creator sees the
		// pending content.
		return nil, nil
	}

	if c.tex == nil {
		tex, err := creator.NewTextureFromRGBA(Size, Size, c.pix.Pix)
		if err != nil {
			return nil, err
		}
		c.tex = tex
		c.dirty = false
		return c.tex, nil
	}

	if updater, ok := c.tex.(gpucontext.TextureUpdater); ok {
		if err := updater.UpdateData(c.pix.Pix); err != nil {
			return nil, err
		}
		c.dirty = false
		return c.tex, nil
	}

	// Texture cannot be updated in place: recreate.
	c.releaseTexture()
	tex, err := creator.NewTextureFromRGBA(Size, Size, c.pix.Pix)
	if err != nil {
		return nil, err
	}
	c.tex = tex
	c.dirty = false
	return c.tex, nil
}

// activate readies the slot for a coordinate with blank content.
func (c *Chunk) activate(coord grid.Coord, bg color.RGBA) {
	c.coord = coord
	c.active = true
	c.mod = false
	c.dirty = true
	if c.pix == nil {
		c.pix = image.NewRGBA(image.Rect(0, 0, Size, Size))
	}
	draw.Draw(c.pix, c.pix.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)
}

// deactivate releases the slot. The pixmap is kept for reuse; the GPU
// texture is destroyed.
func (c *Chunk) deactivate() {
	c.active = false
	c.mod = false
	c.dirty = false
	c.releaseTexture()
}

func (c *Chunk) releaseTexture() {
	if c.tex == nil {
		return
	}
	if d, ok := c.tex.(textureDestroyer); ok {
		d.Destroy()
	}
	c.tex = nil
}
