// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggpaint

import (
	"errors"
	"image/color"
	"testing"

	"github.com/gogpu/ggpaint/chunk"
	"github.com/gogpu/ggpaint/grid"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

// viewAt returns a 1x1 world rect inside the chunk at (cx, cy).
func viewAt(cx, cy int) grid.Rect {
	x := float64(cx*chunk.Size) + 1
	y := float64(cy*chunk.Size) + 1
	return grid.Rect{Min: grid.Pt(x, y), Max: grid.Pt(x+1, y+1)}
}

func TestPaintAndSample(t *testing.T) {
	c, err := New(WithPoolRadius(1), WithCacheCapacity(4))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	tests := []struct {
		name string
		pos  grid.Point
	}{
		{"origin chunk", grid.Pt(1, 1)},
		{"negative chunk", grid.Pt(-1, -1)},
		{"chunk boundary", grid.Pt(float64(chunk.Size), 0)},
		{"far from origin", grid.Pt(1e6, -1e6)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := c.Paint(tt.pos, red); err != nil {
				t.Fatalf("Paint: %v", err)
			}
			got, err := c.SampleColor(tt.pos)
			if err != nil {
				t.Fatalf("SampleColor: %v", err)
			}
			if got != red {
				t.Errorf("SampleColor(%v) = %v, want %v", tt.pos, got, red)
			}
		})
	}

	// An untouched position reads the background.
	got, err := c.SampleColor(grid.Pt(50, 50))
	if err != nil {
		t.Fatal(err)
	}
	if got != chunk.Background {
		t.Errorf("untouched position = %v, want background %v", got, chunk.Background)
	}
}

func TestAcquireRehydrates(t *testing.T) {
	// Padding 0 keeps sweep windows at a single chunk, leaving slots
	// free for the explicit Acquire below.
	c, err := New(WithPoolRadius(1), WithCacheCapacity(4), WithLoadPadding(0))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	pos := grid.Pt(1, 1)
	if err := c.Paint(pos, red); err != nil {
		t.Fatal(err)
	}

	// Sweep the viewport far away: chunk (0,0) is evicted to the cache.
	if _, err := c.Tick(viewAt(100, 100)); err != nil {
		t.Fatal(err)
	}
	if c.Cached() != 1 {
		t.Fatalf("Cached() = %d, want 1", c.Cached())
	}

	// Acquiring the coordinate again must pull the content back out of
	// the cache, leaving it in exactly one tier.
	ch, err := c.Acquire(pos)
	if err != nil {
		t.Fatal(err)
	}
	if !ch.Modified() {
		t.Error("rehydrated chunk should be modified")
	}
	if c.Cached() != 0 {
		t.Errorf("Cached() = %d after rehydration, want 0", c.Cached())
	}
	got, _ := c.SampleColor(pos)
	if got != red {
		t.Errorf("SampleColor after rehydration = %v, want %v", got, red)
	}
}

func TestTickEvictsBeforeActivating(t *testing.T) {
	c, err := New(WithPoolRadius(1), WithCacheCapacity(16))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	// Fill all nine slots.
	if _, err := c.Tick(viewAt(5, 0)); err != nil {
		t.Fatal(err)
	}
	if c.Resident() != 9 {
		t.Fatalf("Resident() = %d, want 9", c.Resident())
	}

	// Shifting the window by one chunk needs three slots that are only
	// free if the out-of-window column is evicted first.
	rep, err := c.Tick(viewAt(6, 0))
	if err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if rep.Evicted != 3 || rep.Activated != 3 {
		t.Errorf("report = %d evicted, %d activated, want 3 and 3", rep.Evicted, rep.Activated)
	}
	if c.Resident() != 9 {
		t.Errorf("Resident() = %d, want 9", c.Resident())
	}
}

func TestTickSaturation(t *testing.T) {
	c, err := New(WithPoolRadius(1), WithCacheCapacity(4))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	// A viewport spanning two chunk columns needs a 4x3 window, one more
	// than the nine slots the pool holds.
	wide := grid.Rect{
		Min: grid.Pt(1, 1),
		Max: grid.Pt(float64(chunk.Size)+2, 2),
	}
	_, err = c.Tick(wide)
	if !errors.Is(err, chunk.ErrPoolSaturated) {
		t.Errorf("Tick on oversized window: err = %v, want ErrPoolSaturated", err)
	}
}

func TestCacheOverflowLosesContent(t *testing.T) {
	c, err := New(WithPoolRadius(1), WithCacheCapacity(2))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	// Three modified chunks, cache room for two.
	positions := []grid.Point{
		grid.Pt(1, 1),
		grid.Pt(float64(chunk.Size)+1, 1),
		grid.Pt(float64(2*chunk.Size)+1, 1),
	}
	for _, pos := range positions {
		if err := c.Paint(pos, red); err != nil {
			t.Fatal(err)
		}
	}

	rep, err := c.Tick(viewAt(100, 100))
	if err != nil {
		t.Fatal(err)
	}
	if len(rep.Lost) != 1 {
		t.Fatalf("len(rep.Lost) = %d, want 1", len(rep.Lost))
	}
	if c.LostChunks() != 1 {
		t.Errorf("LostChunks() = %d, want 1", c.LostChunks())
	}
	if c.Cached() != 2 {
		t.Errorf("Cached() = %d, want 2 (cache never grows)", c.Cached())
	}

	// The first two evictions reached the cache; the third is gone and
	// reads as background.
	for i, pos := range positions {
		got, _ := c.SampleColor(pos)
		want := red
		if i == 2 {
			want = chunk.Background
		}
		if got != want {
			t.Errorf("chunk %d after overflow = %v, want %v", i, got, want)
		}
	}
}

func TestGestureUndoRedo(t *testing.T) {
	c, err := New(WithPoolRadius(1), WithCacheCapacity(4))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	// One gesture spanning two chunks.
	a := grid.Pt(float64(chunk.Size)-1, 1)
	b := grid.Pt(float64(chunk.Size)+1, 1)
	c.BeginGesture()
	if err := c.Paint(a, red); err != nil {
		t.Fatal(err)
	}
	if err := c.Paint(b, blue); err != nil {
		t.Fatal(err)
	}
	c.EndGesture()

	if c.UndoDepth() != 1 {
		t.Fatalf("UndoDepth() = %d, want 1 (one gesture, not one per chunk)", c.UndoDepth())
	}

	ok, err := c.Undo()
	if err != nil || !ok {
		t.Fatalf("Undo: ok=%v err=%v", ok, err)
	}
	for _, pos := range []grid.Point{a, b} {
		if got, _ := c.SampleColor(pos); got != chunk.Background {
			t.Errorf("after undo %v = %v, want background", pos, got)
		}
	}

	ok, err = c.Redo()
	if err != nil || !ok {
		t.Fatalf("Redo: ok=%v err=%v", ok, err)
	}
	if got, _ := c.SampleColor(a); got != red {
		t.Errorf("after redo = %v, want %v", got, red)
	}
	if got, _ := c.SampleColor(b); got != blue {
		t.Errorf("after redo = %v, want %v", got, blue)
	}
}

func TestUndoAcrossEviction(t *testing.T) {
	// Padding 0: the sweep occupies one slot, so undo can reactivate
	// the evicted chunk.
	c, err := New(WithPoolRadius(1), WithCacheCapacity(4), WithLoadPadding(0))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	pos := grid.Pt(1, 1)
	c.BeginGesture()
	if err := c.Paint(pos, red); err != nil {
		t.Fatal(err)
	}
	c.EndGesture()

	// Evict the painted chunk, then undo: the log must reactivate it.
	if _, err := c.Tick(viewAt(100, 100)); err != nil {
		t.Fatal(err)
	}

	ok, err := c.Undo()
	if err != nil || !ok {
		t.Fatalf("Undo: ok=%v err=%v", ok, err)
	}
	if got, _ := c.SampleColor(pos); got != chunk.Background {
		t.Errorf("after undo = %v, want background", got)
	}

	ok, err = c.Redo()
	if err != nil || !ok {
		t.Fatalf("Redo: ok=%v err=%v", ok, err)
	}
	if got, _ := c.SampleColor(pos); got != red {
		t.Errorf("after redo = %v, want %v", got, red)
	}
}

func TestPaintWithoutGestureNotUndoable(t *testing.T) {
	c, err := New(WithPoolRadius(1), WithCacheCapacity(4))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.Paint(grid.Pt(1, 1), red); err != nil {
		t.Fatal(err)
	}
	if c.UndoDepth() != 0 {
		t.Errorf("UndoDepth() = %d, want 0", c.UndoDepth())
	}
	ok, err := c.Undo()
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("Undo on empty log should return false")
	}
}

func TestRender(t *testing.T) {
	c, err := New(WithPoolRadius(1), WithCacheCapacity(4), WithBackground(color.RGBA{A: 255}))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.Paint(grid.Pt(10, 20), red); err != nil {
		t.Fatal(err)
	}

	img, err := c.Render(grid.Rect{Min: grid.Pt(0, 0), Max: grid.Pt(32, 32)})
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 32 {
		t.Fatalf("bounds = %v, want 32x32", img.Bounds())
	}
	if got := img.RGBAAt(10, 20); got != red {
		t.Errorf("painted pixel = %v, want %v", got, red)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{A: 255}) {
		t.Errorf("background pixel = %v, want opaque black", got)
	}

	// A render offset into negative world space stays aligned.
	img, err = c.Render(grid.Rect{Min: grid.Pt(-6, 14), Max: grid.Pt(26, 46)})
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(16, 6); got != red {
		t.Errorf("offset render pixel = %v, want %v", got, red)
	}
}

func TestClosedCanvas(t *testing.T) {
	c, err := New(WithPoolRadius(1), WithCacheCapacity(4))
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close: %v, want nil", err)
	}

	if err := c.Paint(grid.Pt(0, 0), red); !errors.Is(err, ErrCanvasClosed) {
		t.Errorf("Paint on closed canvas: %v, want ErrCanvasClosed", err)
	}
	if _, err := c.Tick(viewAt(0, 0)); !errors.Is(err, ErrCanvasClosed) {
		t.Errorf("Tick on closed canvas: %v, want ErrCanvasClosed", err)
	}
	if _, err := c.SampleColor(grid.Pt(0, 0)); !errors.Is(err, ErrCanvasClosed) {
		t.Errorf("SampleColor on closed canvas: %v, want ErrCanvasClosed", err)
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New(WithPoolRadius(0)); err == nil {
		t.Error("New with radius 0 should fail")
	}
	if _, err := New(WithCacheCapacity(0)); err == nil {
		t.Error("New with cache capacity 0 should fail")
	}
	if _, err := New(WithHistoryDepth(0)); err == nil {
		t.Error("New with history depth 0 should fail")
	}
}
