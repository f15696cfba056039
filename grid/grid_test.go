// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package grid

import "testing"

func TestFromWorld(t *testing.T) {
	const size = 512

	tests := []struct {
		name string
		p    Point
		want Coord
	}{
		{"origin", Pt(0, 0), Coord{0, 0}},
		{"inside first chunk", Pt(10, 10), Coord{0, 0}},
		{"last position of first chunk", Pt(511.9, 511.9), Coord{0, 0}},
		{"edge belongs to next chunk", Pt(512, 0), Coord{1, 0}},
		{"negative maps below zero", Pt(-1, -1), Coord{-1, -1}},
		{"negative edge", Pt(-512, -512), Coord{-1, -1}},
		{"one past negative edge", Pt(-512.1, 0), Coord{-2, 0}},
		{"mixed signs", Pt(-1000, 1000), Coord{-2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromWorld(tt.p, size); got != tt.want {
				t.Errorf("FromWorld(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestOriginLocalRoundTrip(t *testing.T) {
	const size = 512

	pts := []Point{
		Pt(0, 0), Pt(10, 10), Pt(511, 0), Pt(-1, -1),
		Pt(-513, 700), Pt(1023.5, -0.5),
	}

	for _, p := range pts {
		c := FromWorld(p, size)
		l := Local(p, c, size)
		if l.X < 0 || l.X >= size || l.Y < 0 || l.Y >= size {
			t.Errorf("Local(%v, %v) = %v, want components in [0, %d)", p, c, l, size)
		}
		back := c.Origin(size).Add(l)
		if back != p {
			t.Errorf("Origin+Local round trip for %v gave %v", p, back)
		}
	}
}

func TestWindowFor(t *testing.T) {
	const size = 512

	// A rect covering chunks (0,0)..(1,1), padded by 1 in each direction.
	r := Rect{Min: Pt(10, 10), Max: Pt(600, 600)}
	w := WindowFor(r, size, 1)

	want := Window{Min: Coord{-1, -1}, Max: Coord{2, 2}}
	if w != want {
		t.Fatalf("WindowFor = %+v, want %+v", w, want)
	}
	if got := w.Count(); got != 16 {
		t.Errorf("Count() = %d, want 16", got)
	}

	if !w.Contains(Coord{0, 0}) || !w.Contains(Coord{-1, 2}) {
		t.Error("Contains() = false for coordinate inside window")
	}
	if w.Contains(Coord{3, 0}) || w.Contains(Coord{0, -2}) {
		t.Error("Contains() = true for coordinate outside window")
	}
}

func TestWindowEach(t *testing.T) {
	w := Window{Min: Coord{-1, -1}, Max: Coord{1, 1}}

	seen := make(map[Coord]int)
	w.Each(func(c Coord) { seen[c]++ })

	if len(seen) != 9 {
		t.Fatalf("Each visited %d coordinates, want 9", len(seen))
	}
	for c, n := range seen {
		if n != 1 {
			t.Errorf("coordinate %v visited %d times, want 1", c, n)
		}
		if !w.Contains(c) {
			t.Errorf("Each visited %v outside window", c)
		}
	}
}

func TestRectAround(t *testing.T) {
	r := RectAround(5, Pt(10, 20), Pt(-3, 8))
	want := Rect{Min: Pt(-8, 3), Max: Pt(15, 25)}
	if r != want {
		t.Errorf("RectAround = %+v, want %+v", r, want)
	}

	if got := RectAround(1); got != (Rect{}) {
		t.Errorf("RectAround with no points = %+v, want zero rect", got)
	}
}
