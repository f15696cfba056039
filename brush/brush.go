// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package brush paints onto a chunked canvas: round-capped stroke
// segments and stamped text. All marks go through the canvas Touch
// protocol, so chunks activate on demand and every touched chunk joins
// the open undo gesture.
package brush

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/gogpu/ggpaint/chunk"
	"github.com/gogpu/ggpaint/grid"
)

// Brush errors.
var (
	// ErrBadRadius is returned for non-positive stroke radii.
	ErrBadRadius = errors.New("brush: radius must be positive")
)

// Canvas is the painting surface the brush draws on. *ggpaint.Canvas
// implements it.
type Canvas interface {
	// ChunkSize returns the chunk edge length in pixels.
	ChunkSize() int

	// Touch returns the resident chunk for a coordinate, activating it
	// and recording it in the open gesture.
	Touch(coord grid.Coord) (*chunk.Chunk, error)
}

// Params configures a stroke.
type Params struct {
	// Radius is the stroke half-width in world units.
	Radius float64

	// Color is the paint color.
	Color color.RGBA
}

// Dot paints a filled circle at a world position.
func Dot(c Canvas, p grid.Point, params Params) error {
	return StrokeSegment(c, p, p, params)
}

// StrokeSegment paints a round-capped segment from p0 to p1. A segment
// crossing chunk borders is painted into every chunk it overlaps, each
// of which is touched for undo.
func StrokeSegment(c Canvas, p0, p1 grid.Point, params Params) error {
	if params.Radius <= 0 {
		return fmt.Errorf("%w: got %v", ErrBadRadius, params.Radius)
	}

	// Coverage mask over the capsule's padded bounding box.
	bounds := grid.RectAround(params.Radius+1, p0, p1)
	minX := int(math.Floor(bounds.Min.X))
	minY := int(math.Floor(bounds.Min.Y))
	w := int(math.Ceil(bounds.Max.X)) - minX
	h := int(math.Ceil(bounds.Max.Y)) - minY
	if w <= 0 || h <= 0 {
		return nil
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z := vector.NewRasterizer(w, h)
	capsulePath(z, p0.Sub(grid.Pt(float64(minX), float64(minY))),
		p1.Sub(grid.Pt(float64(minX), float64(minY))), params.Radius)
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	return blitMask(c, mask, minX, minY, params.Color)
}

// blitMask paints src color through an alpha mask whose origin sits at
// world position (minX, minY), touching every overlapped chunk.
func blitMask(c Canvas, mask *image.Alpha, minX, minY int, col color.RGBA) error {
	size := c.ChunkSize()
	w := mask.Bounds().Dx()
	h := mask.Bounds().Dy()

	win := grid.WindowFor(grid.Rect{
		Min: grid.Pt(float64(minX), float64(minY)),
		Max: grid.Pt(float64(minX+w-1), float64(minY+h-1)),
	}, size, 0)

	src := image.NewUniform(col)
	var paintErr error
	win.Each(func(coord grid.Coord) {
		if paintErr != nil {
			return
		}
		ch, err := c.Touch(coord)
		if err != nil {
			paintErr = err
			return
		}

		// Intersection of the mask box with this chunk, in world ints.
		ox := int(coord.X) * size
		oy := int(coord.Y) * size
		isect := image.Rect(minX, minY, minX+w, minY+h).
			Intersect(image.Rect(ox, oy, ox+size, oy+size))
		if isect.Empty() {
			return
		}

		dst := isect.Sub(image.Pt(ox, oy))
		maskPt := isect.Min.Sub(image.Pt(minX, minY))
		draw.DrawMask(ch.Pix(), dst, src, image.Point{}, mask, maskPt, draw.Over)
		ch.MarkModified()
	})
	return paintErr
}

// kappa approximates a quarter circle with one cubic Bezier.
const kappa = 0.5522847498

// capsulePath appends the outline of a round-capped segment to the
// rasterizer. p0 and p1 are in rasterizer coordinates.
func capsulePath(z *vector.Rasterizer, p0, p1 grid.Point, r float64) {
	dx := p1.X - p0.X
	dy := p1.Y - p0.Y
	if dx == 0 && dy == 0 {
		circlePath(z, p0, r)
		return
	}
	phi := math.Atan2(dy, dx)

	start := arcPoint(p0, r, phi+math.Pi/2)
	z.MoveTo(float32(start.X), float32(start.Y))
	z.LineTo(float32(p1.X+r*math.Cos(phi+math.Pi/2)), float32(p1.Y+r*math.Sin(phi+math.Pi/2)))
	quarterArc(z, p1, r, phi+math.Pi/2, -math.Pi/2)
	quarterArc(z, p1, r, phi, -math.Pi/2)
	z.LineTo(float32(p0.X+r*math.Cos(phi-math.Pi/2)), float32(p0.Y+r*math.Sin(phi-math.Pi/2)))
	quarterArc(z, p0, r, phi-math.Pi/2, -math.Pi/2)
	quarterArc(z, p0, r, phi-math.Pi, -math.Pi/2)
	z.ClosePath()
}

// circlePath appends a full circle.
func circlePath(z *vector.Rasterizer, c grid.Point, r float64) {
	start := arcPoint(c, r, 0)
	z.MoveTo(float32(start.X), float32(start.Y))
	for i := 0; i < 4; i++ {
		quarterArc(z, c, r, -float64(i)*math.Pi/2, -math.Pi/2)
	}
	z.ClosePath()
}

// arcPoint returns the point at angle a on the circle around c.
func arcPoint(c grid.Point, r, a float64) grid.Point {
	return grid.Pt(c.X+r*math.Cos(a), c.Y+r*math.Sin(a))
}

// quarterArc appends a quarter-circle cubic from angle a sweeping s
// (|s| = pi/2) around center c. The rasterizer pen must already sit at
// the arc's start point.
func quarterArc(z *vector.Rasterizer, c grid.Point, r, a, s float64) {
	sign := 1.0
	if s < 0 {
		sign = -1.0
	}
	p0 := arcPoint(c, r, a)
	p3 := arcPoint(c, r, a+s)
	k := kappa * r * sign
	z.CubeTo(
		float32(p0.X-k*math.Sin(a)), float32(p0.Y+k*math.Cos(a)),
		float32(p3.X+k*math.Sin(a+s)), float32(p3.Y-k*math.Cos(a+s)),
		float32(p3.X), float32(p3.Y),
	)
}
