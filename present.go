// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggpaint

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ggpaint/chunk"
	"github.com/gogpu/ggpaint/grid"
)

// Presentation errors.
var (
	// ErrInvalidDrawContext is returned when the draw context cannot
	// provide a texture creator and none was configured on the canvas.
	ErrInvalidDrawContext = errors.New("ggpaint: draw context provides no texture creator")

	// ErrInvalidTexture is returned when a created texture does not
	// implement gpucontext.Texture and so cannot be drawn.
	ErrInvalidTexture = errors.New("ggpaint: texture does not implement gpucontext.Texture")
)

// Flush uploads every dirty resident chunk to its GPU texture using the
// creator configured with WithTextureCreator. Without a creator Flush is
// a no-op: pixmaps stay canonical and the upload happens on the next
// Present.
func (c *Canvas) Flush() error {
	if c.closed {
		return ErrCanvasClosed
	}
	if c.opts.creator == nil {
		return nil
	}
	var flushErr error
	c.pool.Each(func(ch *chunk.Chunk) {
		if flushErr != nil {
			return
		}
		if _, err := ch.Flush(c.opts.creator); err != nil {
			flushErr = fmt.Errorf("ggpaint: chunk %v flush failed: %w", ch.Coord(), err)
		}
	})
	return flushErr
}

// Present draws every resident chunk to the host surface. view is the
// world position of the surface's top-left corner; each chunk lands at
// its world origin minus the view offset.
//
// The dc parameter should be obtained from gogpu.Context.AsTextureDrawer().
// Textures are created through the canvas creator when one is configured,
// falling back to the draw context's own.
//
// Example:
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    canvas.Present(dc.AsTextureDrawer(), camera)
//	})
func (c *Canvas) Present(dc gpucontext.TextureDrawer, view grid.Point) error {
	if c.closed {
		return ErrCanvasClosed
	}

	creator := c.opts.creator
	if creator == nil {
		creator = dc.TextureCreator()
	}
	if creator == nil {
		return ErrInvalidDrawContext
	}

	var presentErr error
	c.pool.Each(func(ch *chunk.Chunk) {
		if presentErr != nil {
			return
		}
		tex, err := ch.Flush(creator)
		if err != nil {
			presentErr = fmt.Errorf("ggpaint: chunk %v flush failed: %w", ch.Coord(), err)
			return
		}
		gpuTex, ok := tex.(gpucontext.Texture)
		if !ok {
			presentErr = ErrInvalidTexture
			return
		}
		origin := ch.Coord().Origin(chunk.Size)
		if err := dc.DrawTexture(gpuTex, float32(origin.X-view.X), float32(origin.Y-view.Y)); err != nil {
			presentErr = fmt.Errorf("ggpaint: chunk %v draw failed: %w", ch.Coord(), err)
		}
	})
	return presentErr
}
