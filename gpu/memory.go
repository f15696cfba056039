// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"fmt"
	"sync/atomic"
)

// MemoryStats reports GPU texture memory usage for the backend.
type MemoryStats struct {
	// UsedBytes is the memory held by live textures.
	UsedBytes uint64

	// TextureCount is the number of live textures.
	TextureCount int
}

// String returns a human-readable string of memory stats.
func (s MemoryStats) String() string {
	return fmt.Sprintf("Memory[%d KB, %d textures]", s.UsedBytes/1024, s.TextureCount)
}

// memCounter tracks live texture bytes and count with atomics so that
// texture create and destroy never contend with the backend lock.
type memCounter struct {
	bytes atomic.Int64
	count atomic.Int64
}

func (b *Backend) trackTexture(size int64) {
	b.mem.bytes.Add(size)
	b.mem.count.Add(1)
}

func (b *Backend) untrackTexture(size int64) {
	b.mem.bytes.Add(-size)
	b.mem.count.Add(-1)
}

// Memory returns current texture memory usage.
func (b *Backend) Memory() MemoryStats {
	return MemoryStats{
		UsedBytes:    uint64(max(b.mem.bytes.Load(), 0)),
		TextureCount: int(max(b.mem.count.Load(), 0)),
	}
}
