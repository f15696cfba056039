// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggpaint

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/gogpu/ggpaint/canvasfile"
	"github.com/gogpu/ggpaint/chunk"
	"github.com/gogpu/ggpaint/grid"
)

// Save writes every chunk that carries user content: resident modified
// chunks first, then cached snapshots. Unmodified resident chunks are
// skipped; blank content is reproducible and would only bloat the file.
func (c *Canvas) Save(w io.Writer) error {
	if c.closed {
		return ErrCanvasClosed
	}

	enc, err := canvasfile.NewEncoder(w, chunk.Size)
	if err != nil {
		return err
	}

	var saveErr error
	saved := 0
	c.pool.Each(func(ch *chunk.Chunk) {
		if saveErr != nil || !ch.Modified() {
			return
		}
		if err := enc.WriteRecord(ch.Coord(), ch.Pix()); err != nil {
			saveErr = fmt.Errorf("ggpaint: saving chunk %v: %w", ch.Coord(), err)
			return
		}
		saved++
	})
	if saveErr != nil {
		return saveErr
	}

	c.cache.Each(func(coord grid.Coord, snap *image.RGBA) {
		if saveErr != nil {
			return
		}
		if err := enc.WriteRecord(coord, snap); err != nil {
			saveErr = fmt.Errorf("ggpaint: saving cached chunk %v: %w", coord, err)
			return
		}
		saved++
	})
	if saveErr != nil {
		return saveErr
	}

	Logger().Info("ggpaint: canvas saved", "chunks", saved)
	return nil
}

// Load replaces the canvas content with the stream's. The stream is
// read and validated in full before any state changes, so a corrupt
// file never leaves the canvas half-loaded. On success the pool, cache
// and history are reset and the loaded chunks land in the cache, where
// the next Tick activates the visible ones.
//
// Records beyond the cache capacity are dropped with a warning; the
// cache is never grown.
func (c *Canvas) Load(r io.Reader) error {
	if c.closed {
		return ErrCanvasClosed
	}

	dec, err := canvasfile.NewDecoder(r, chunk.Size)
	if err != nil {
		return err
	}

	type record struct {
		coord grid.Coord
		snap  *image.RGBA
	}
	var records []record
	for {
		coord, snap, err := dec.ReadRecord()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("ggpaint: load: %w", err)
		}
		records = append(records, record{coord: coord, snap: snap})
	}

	c.pool.Reset()
	c.cache.Clear()
	c.hist.Clear()

	dropped := 0
	for _, rec := range records {
		if err := c.cache.Insert(rec.coord, rec.snap); err != nil {
			dropped++
			continue
		}
	}
	if dropped > 0 {
		c.lostTotal += dropped
		Logger().Warn("ggpaint: load dropped chunks beyond cache capacity",
			"dropped", dropped, "capacity", c.cache.Capacity())
	}

	Logger().Info("ggpaint: canvas loaded",
		"chunks", len(records)-dropped, "dropped", dropped)
	return nil
}

// SaveFile saves the canvas to a file, creating or truncating it.
func (c *Canvas) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := c.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadFile loads canvas content from a file.
func (c *Canvas) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return c.Load(f)
}
