// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggpaint

import (
	"image/color"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ggpaint/chunk"
	"github.com/gogpu/ggpaint/history"
)

// Default canvas parameters.
const (
	// DefaultPoolRadius is the default half-extent of the resident window.
	// A radius r yields a pool of (2r+1)^2 chunk slots, enough to cover
	// the viewport plus the activation padding on every side.
	DefaultPoolRadius = 5

	// DefaultCacheCapacity is the default number of evicted chunk
	// snapshots kept in memory.
	DefaultCacheCapacity = 512

	// DefaultLoadPadding is the number of extra chunk rings kept resident
	// around the visible region.
	DefaultLoadPadding = 1
)

// Option configures a Canvas during creation.
// Use functional options to customize Canvas behavior.
//
// Example:
//
//	// Default in-memory canvas
//	c, err := ggpaint.New()
//
//	// Small canvas for a constrained device
//	c, err := ggpaint.New(ggpaint.WithPoolRadius(2), ggpaint.WithCacheCapacity(64))
type Option func(*options)

// options holds optional configuration for Canvas creation.
type options struct {
	poolRadius    int
	cacheCapacity int
	historyDepth  int
	loadPadding   int
	background    color.RGBA
	creator       gpucontext.TextureCreator
}

// defaultOptions returns the default canvas options.
func defaultOptions() options {
	return options{
		poolRadius:    DefaultPoolRadius,
		cacheCapacity: DefaultCacheCapacity,
		historyDepth:  history.DefaultDepth,
		loadPadding:   DefaultLoadPadding,
		background:    chunk.Background,
	}
}

// WithPoolRadius sets the half-extent of the resident chunk window. The
// pool holds (2r+1)^2 slots. Values below 1 are rejected by New.
func WithPoolRadius(r int) Option {
	return func(o *options) {
		o.poolRadius = r
	}
}

// WithCacheCapacity sets how many evicted chunk snapshots are kept.
// When the cache is full, further modified evictions are dropped and
// reported as data loss.
func WithCacheCapacity(n int) Option {
	return func(o *options) {
		o.cacheCapacity = n
	}
}

// WithHistoryDepth bounds the undo log. Committing past the bound
// silently discards the oldest action.
func WithHistoryDepth(n int) Option {
	return func(o *options) {
		o.historyDepth = n
	}
}

// WithLoadPadding sets how many chunk rings beyond the visible region
// stay resident, so panning does not immediately fault.
func WithLoadPadding(n int) Option {
	return func(o *options) {
		o.loadPadding = n
	}
}

// WithBackground sets the color blank chunks are filled with.
func WithBackground(c color.RGBA) Option {
	return func(o *options) {
		o.background = c
	}
}

// WithTextureCreator sets the texture creator used to mirror resident
// chunks to the GPU. Without one the canvas runs headless: pixmaps stay
// canonical and uploads are deferred until a creator is available.
//
// A *gpu.Backend satisfies the creator interface:
//
//	backend := gpu.NewBackend()
//	if err := backend.Init(); err == nil {
//	    c, _ = ggpaint.New(ggpaint.WithTextureCreator(backend))
//	}
func WithTextureCreator(tc gpucontext.TextureCreator) Option {
	return func(o *options) {
		o.creator = tc
	}
}
