// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ggpaint is an infinite 2D paintable canvas engine.
//
// The canvas has no edges: world positions are float64 pairs, and the
// plane is tiled into 512x512 pixel chunks that come into existence the
// first time they are painted. Storage is bounded by two fixed-capacity
// tiers:
//
//   - an active pool of resident chunks, drawable and mirrored to GPU
//     textures, sized to cover the viewport plus a padding ring
//   - a snapshot cache holding the pixels of evicted modified chunks
//
// A chunk lives in at most one tier at a time. When the cache is full,
// evicted content is dropped and the loss is reported; neither tier
// ever grows.
//
// # Painting
//
//	c, err := ggpaint.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	c.BeginGesture()
//	brush.StrokeSegment(c, grid.Pt(10, 10), grid.Pt(300, 40), brush.Params{
//	    Radius: 8,
//	    Color:  color.RGBA{R: 20, G: 20, B: 200, A: 255},
//	})
//	c.EndGesture()
//
//	c.Undo() // the whole stroke reverts as one unit
//
// Each frame, call Tick with the visible world rectangle to sweep chunk
// residency, then Present to draw the resident chunks:
//
//	c.Tick(grid.Rect{Min: camera, Max: camera.Add(grid.Pt(w, h))})
//	c.Present(dc.AsTextureDrawer(), camera)
//
// # Persistence
//
// Save and Load stream painted chunks in a little-endian binary format
// keyed by chunk coordinate. Files record the chunk size and are
// rejected on mismatch, so content never shifts or rescales across
// builds.
//
// By default ggpaint produces no log output; see SetLogger.
package ggpaint
