// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package history implements the canvas's grouped undo/redo log.
//
// One user gesture (a brush stroke, a text stamp) becomes one Action: a
// set of before-snapshots, one per distinct chunk the gesture touched,
// captured the first time each chunk is touched within the gesture. Both
// stacks are bounded; the undo stack drops its oldest action when full,
// and committing a new action clears the redo stack entirely.
package history

import (
	"errors"
	"image"

	"github.com/gogpu/ggpaint/grid"
)

// DefaultDepth is the default capacity of each stack.
const DefaultDepth = 100

// Log errors.
var (
	// ErrNoOpenAction is returned by Touch outside a Begin/End pair. It
	// marks a caller-discipline bug; the canvas treats it as a defensive
	// no-op and logs it at debug level.
	ErrNoOpenAction = errors.New("history: no open action")
)

// Target is the canvas-side surface the log captures from and restores
// to. Capture must return the chunk's current content (activating it if
// necessary); Restore must overwrite the chunk's content and mark it
// modified.
type Target interface {
	Capture(grid.Coord) (*image.RGBA, error)
	Restore(grid.Coord, *image.RGBA) error
}

// touch is one chunk's before-snapshot within an action.
type touch struct {
	coord grid.Coord
	snap  *image.RGBA
}

// Action groups the before-snapshots of one gesture.
type Action struct {
	touches []touch
}

// Size returns the number of distinct chunks the action covers.
func (a *Action) Size() int {
	return len(a.touches)
}

func (a *Action) has(c grid.Coord) bool {
	for i := range a.touches {
		if a.touches[i].coord == c {
			return true
		}
	}
	return false
}

// Log holds the bounded undo and redo stacks and the action currently
// being recorded, if any.
//
// The open action is an explicit field owned by the log, not shared
// module state; there is exactly one recording gesture at a time.
type Log struct {
	undo  []*Action
	redo  []*Action
	open  *Action
	depth int
}

// NewLog creates a log whose stacks each hold at most depth actions.
// A depth below 1 falls back to DefaultDepth.
func NewLog(depth int) *Log {
	if depth < 1 {
		depth = DefaultDepth
	}
	return &Log{depth: depth}
}

// Depth returns the per-stack capacity.
func (l *Log) Depth() int {
	return l.depth
}

// UndoLen returns the number of undoable actions.
func (l *Log) UndoLen() int {
	return len(l.undo)
}

// RedoLen returns the number of redoable actions.
func (l *Log) RedoLen() int {
	return len(l.redo)
}

// Recording reports whether a gesture is currently open.
func (l *Log) Recording() bool {
	return l.open != nil
}

// Begin opens a new action. An already-open action is sealed first; that
// should not occur under correct caller discipline, but a stray Begin
// must not leak the previous gesture's snapshots.
func (l *Log) Begin() {
	if l.open != nil {
		l.End()
	}
	l.open = &Action{}
}

// Touch records the before-state of the chunk at c into the open action.
// Only the first touch of a coordinate within the action captures; later
// touches of the same chunk are no-ops, preserving "before the gesture
// started" rather than "before the latest stroke sample".
func (l *Log) Touch(t Target, c grid.Coord) error {
	if l.open == nil {
		return ErrNoOpenAction
	}
	if l.open.has(c) {
		return nil
	}
	snap, err := t.Capture(c)
	if err != nil {
		return err
	}
	l.open.touches = append(l.open.touches, touch{coord: c, snap: snap})
	return nil
}

// End seals the open action. An action that captured nothing is
// discarded; otherwise it is pushed onto the undo stack (dropping the
// oldest action if the stack is at capacity) and the redo stack is
// cleared, since a new edit invalidates all forward history.
func (l *Log) End() {
	a := l.open
	l.open = nil
	if a == nil || len(a.touches) == 0 {
		return
	}
	l.undo = push(l.undo, a, l.depth)
	l.redo = nil
}

// Undo reverses the most recent action. It captures the current state of
// every touched chunk as the mirror redo action, restores the stored
// before-snapshots, and pushes the mirror onto the redo stack. Returns
// false without error when the undo stack is empty.
func (l *Log) Undo(t Target) (bool, error) {
	if len(l.undo) == 0 {
		return false, nil
	}
	a := l.undo[len(l.undo)-1]
	mirror, err := l.apply(t, a)
	if err != nil {
		return false, err
	}
	l.undo = l.undo[:len(l.undo)-1]
	l.redo = push(l.redo, mirror, l.depth)
	return true, nil
}

// Redo re-applies the most recently undone action, symmetrically to
// Undo. Returns false without error when the redo stack is empty.
func (l *Log) Redo(t Target) (bool, error) {
	if len(l.redo) == 0 {
		return false, nil
	}
	a := l.redo[len(l.redo)-1]
	mirror, err := l.apply(t, a)
	if err != nil {
		return false, err
	}
	l.redo = l.redo[:len(l.redo)-1]
	l.undo = push(l.undo, mirror, l.depth)
	return true, nil
}

// apply builds the mirror of a from the target's current state, then
// restores a's snapshots. The mirror is built in full before any chunk
// is overwritten, so a capture failure leaves the canvas untouched.
func (l *Log) apply(t Target, a *Action) (*Action, error) {
	mirror := &Action{touches: make([]touch, 0, len(a.touches))}
	for i := range a.touches {
		cur, err := t.Capture(a.touches[i].coord)
		if err != nil {
			return nil, err
		}
		mirror.touches = append(mirror.touches, touch{coord: a.touches[i].coord, snap: cur})
	}
	for i := range a.touches {
		if err := t.Restore(a.touches[i].coord, a.touches[i].snap); err != nil {
			return nil, err
		}
	}
	return mirror, nil
}

// Clear drops all history, including any open action. Used by load,
// which replaces the canvas wholesale.
func (l *Log) Clear() {
	l.undo = nil
	l.redo = nil
	l.open = nil
}

// push appends a to the stack, dropping the oldest entry when the stack
// is at capacity (ring-buffer semantics, not an error).
func push(stack []*Action, a *Action, depth int) []*Action {
	if len(stack) >= depth {
		n := copy(stack, stack[len(stack)-depth+1:])
		stack = stack[:n]
	}
	return append(stack, a)
}
