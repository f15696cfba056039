// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package grid maps continuous world positions onto the discrete chunk
// grid of an infinite canvas.
//
// The world is tiled into square chunks of a fixed edge length S. A world
// position p belongs to the chunk whose coordinate is floor(p/S) on each
// axis, so every chunk covers the half-open square
// [x*S, (x+1)*S) x [y*S, (y+1)*S). Floor division (not truncation) keeps
// negative positions on the correct side of the origin: with S=512, the
// world position -1 is in chunk -1, not chunk 0.
package grid

import "math"

// Coord identifies one chunk on the infinite grid.
type Coord struct {
	X, Y int32
}

// FromWorld returns the coordinate of the chunk containing p for chunks
// of edge length size.
func FromWorld(p Point, size int) Coord {
	s := float64(size)
	return Coord{
		X: int32(math.Floor(p.X / s)),
		Y: int32(math.Floor(p.Y / s)),
	}
}

// Origin returns the world position of the chunk's top-left corner.
func (c Coord) Origin(size int) Point {
	s := float64(size)
	return Point{X: float64(c.X) * s, Y: float64(c.Y) * s}
}

// Local converts a world position to coordinates relative to the chunk's
// own pixel buffer. For any p whose grid mapping is c, both components
// are in [0, size).
func Local(p Point, c Coord, size int) Point {
	o := c.Origin(size)
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Window is an inclusive axis-aligned range of chunk coordinates.
type Window struct {
	Min, Max Coord
}

// WindowFor returns the padded window of chunks overlapped by the world
// rectangle r. The padding widens the window by pad chunks on every side,
// which is how the canvas avoids pop-in at the viewport edge.
func WindowFor(r Rect, size, pad int) Window {
	lo := FromWorld(r.Min, size)
	hi := FromWorld(r.Max, size)
	p := int32(pad)
	return Window{
		Min: Coord{X: lo.X - p, Y: lo.Y - p},
		Max: Coord{X: hi.X + p, Y: hi.Y + p},
	}
}

// Contains reports whether c falls inside the window.
func (w Window) Contains(c Coord) bool {
	return c.X >= w.Min.X && c.X <= w.Max.X && c.Y >= w.Min.Y && c.Y <= w.Max.Y
}

// Count returns the number of coordinates in the window.
func (w Window) Count() int {
	if w.Max.X < w.Min.X || w.Max.Y < w.Min.Y {
		return 0
	}
	return int(w.Max.X-w.Min.X+1) * int(w.Max.Y-w.Min.Y+1)
}

// Each calls fn for every coordinate in the window, row by row.
func (w Window) Each(fn func(Coord)) {
	for y := w.Min.Y; y <= w.Max.Y; y++ {
		for x := w.Min.X; x <= w.Max.X; x++ {
			fn(Coord{X: x, Y: y})
		}
	}
}
