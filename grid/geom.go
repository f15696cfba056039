// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package grid

import "math"

// Point represents a position in continuous world space.
type Point struct {
	X, Y float64
}

// Pt is a shorthand constructor for Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect is an axis-aligned rectangle in world space, defined by its
// minimum and maximum corners.
type Rect struct {
	Min, Max Point
}

// RectAround returns the axis-aligned bounding box of the given points,
// expanded by margin on every side. It is the usual way to turn an
// unprojected viewport (four screen corners in world space) or a stroke
// segment into a rectangle of affected world area.
func RectAround(margin float64, pts ...Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r.Min.X = math.Min(r.Min.X, p.X)
		r.Min.Y = math.Min(r.Min.Y, p.Y)
		r.Max.X = math.Max(r.Max.X, p.X)
		r.Max.Y = math.Max(r.Max.Y, p.Y)
	}
	r.Min.X -= margin
	r.Min.Y -= margin
	r.Max.X += margin
	r.Max.Y += margin
	return r
}
