// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package canvasfile implements the binary save format of the infinite
// canvas.
//
// The format is a little-endian header followed by a flat record stream:
//
//	Header:  u32 magic ("CANV"), u32 version, u32 chunkSize
//	Record*: i32 gridX, i32 gridY, u8 pixels[chunkSize*chunkSize*4]
//
// Pixels are RGBA8, row-major, top-to-bottom — the same orientation every
// in-memory snapshot uses. There is no record count or terminator; the
// reader consumes records until end of stream. The chunk size is recorded
// so a file written with a different build-time chunk edge is rejected
// instead of silently misread.
package canvasfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/gogpu/ggpaint/grid"
)

const (
	// Magic identifies a canvas file ("CANV").
	Magic uint32 = 0x43414E56

	// Version is the current format version. Version 1 was the flat
	// format without the chunk-size field.
	Version uint32 = 2
)

// Format errors.
var (
	// ErrBadMagic is returned when the stream does not start with the
	// canvas magic; the file is not a canvas save.
	ErrBadMagic = errors.New("canvasfile: bad magic")

	// ErrBadVersion is returned for an unsupported format version.
	ErrBadVersion = errors.New("canvasfile: unsupported version")

	// ErrChunkSizeMismatch is returned when the file was written with a
	// different chunk edge length than this build uses.
	ErrChunkSizeMismatch = errors.New("canvasfile: chunk size mismatch")

	// ErrTruncatedRecord is returned when the stream ends inside a
	// record.
	ErrTruncatedRecord = errors.New("canvasfile: truncated record")
)

// header is the fixed file preamble.
type header struct {
	Magic     uint32
	Version   uint32
	ChunkSize uint32
}

// Encoder writes a canvas file to an underlying stream.
type Encoder struct {
	w    io.Writer
	size int
}

// NewEncoder writes the header for chunks of the given edge length and
// returns an encoder for the record stream.
func NewEncoder(w io.Writer, chunkSize int) (*Encoder, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("canvasfile: invalid chunk size %d", chunkSize)
	}
	h := header{Magic: Magic, Version: Version, ChunkSize: uint32(chunkSize)}
	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return nil, fmt.Errorf("canvasfile: write header: %w", err)
	}
	return &Encoder{w: w, size: chunkSize}, nil
}

// WriteRecord appends one chunk record. The snapshot must match the
// encoder's chunk size.
func (e *Encoder) WriteRecord(coord grid.Coord, snap *image.RGBA) error {
	if snap == nil || snap.Bounds().Dx() != e.size || snap.Bounds().Dy() != e.size {
		return fmt.Errorf("canvasfile: record for %v: snapshot is not %dx%d", coord, e.size, e.size)
	}
	if err := binary.Write(e.w, binary.LittleEndian, [2]int32{coord.X, coord.Y}); err != nil {
		return fmt.Errorf("canvasfile: write record coord: %w", err)
	}
	if _, err := e.w.Write(snap.Pix[:e.size*e.size*4]); err != nil {
		return fmt.Errorf("canvasfile: write record pixels: %w", err)
	}
	return nil
}

// Decoder reads a canvas file from an underlying stream.
type Decoder struct {
	r    io.Reader
	size int
}

// NewDecoder validates the header against the expected chunk size and
// returns a decoder for the record stream. Validation failures are
// reported before any record is consumed, so the caller can abort a load
// without having mutated any state.
func NewDecoder(r io.Reader, chunkSize int) (*Decoder, error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("canvasfile: read header: %w", err)
	}
	if h.Magic != Magic {
		return nil, fmt.Errorf("%w: 0x%08X", ErrBadMagic, h.Magic)
	}
	if h.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, h.Version)
	}
	if int(h.ChunkSize) != chunkSize {
		return nil, fmt.Errorf("%w: file %d, build %d", ErrChunkSizeMismatch, h.ChunkSize, chunkSize)
	}
	return &Decoder{r: r, size: chunkSize}, nil
}

// ReadRecord reads the next chunk record. It returns io.EOF at a clean
// end of stream and ErrTruncatedRecord when the stream ends mid-record.
func (d *Decoder) ReadRecord() (grid.Coord, *image.RGBA, error) {
	var xy [2]int32
	if err := binary.Read(d.r, binary.LittleEndian, &xy); err != nil {
		if errors.Is(err, io.EOF) {
			return grid.Coord{}, nil, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return grid.Coord{}, nil, ErrTruncatedRecord
		}
		return grid.Coord{}, nil, fmt.Errorf("canvasfile: read record coord: %w", err)
	}
	coord := grid.Coord{X: xy[0], Y: xy[1]}

	snap := image.NewRGBA(image.Rect(0, 0, d.size, d.size))
	if _, err := io.ReadFull(d.r, snap.Pix); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return coord, nil, ErrTruncatedRecord
		}
		return coord, nil, fmt.Errorf("canvasfile: read record pixels: %w", err)
	}
	return coord, snap, nil
}
