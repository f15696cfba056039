// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"
)

// Backend creates textures for hosts that hand out a
// gpucontext.TextureCreator.
var _ gpucontext.TextureCreator = (*Backend)(nil)

// Texture can be updated in place through gpucontext.
var _ gpucontext.TextureUpdater = (*Texture)(nil)

// Texture-related errors.
var (
	// ErrTextureReleased is returned when operating on a released texture.
	ErrTextureReleased = errors.New("gpu: texture has been released")

	// ErrTextureSizeMismatch is returned when pixel data does not match
	// the texture dimensions.
	ErrTextureSizeMismatch = errors.New("gpu: pixel data does not match texture size")

	// ErrInvalidDimensions is returned for non-positive texture dimensions.
	ErrInvalidDimensions = errors.New("gpu: invalid texture dimensions")
)

// Format represents the pixel format of a GPU texture.
type Format uint8

const (
	// FormatRGBA8 is the standard RGBA format with 8 bits per channel.
	FormatRGBA8 Format = iota

	// FormatBGRA8 is BGRA format, often used for surface presentation.
	FormatBGRA8
)

// String returns a human-readable name for the format.
func (f Format) String() string {
	switch f {
	case FormatRGBA8:
		return "RGBA8"
	case FormatBGRA8:
		return "BGRA8"
	default:
		return fmt.Sprintf("Unknown(%d)", f)
	}
}

// BytesPerPixel returns the number of bytes per pixel for the format.
func (f Format) BytesPerPixel() int { return 4 }

// ToWGPUFormat converts to the wgpu texture format.
func (f Format) ToWGPUFormat() gputypes.TextureFormat {
	switch f {
	case FormatBGRA8:
		return gputypes.TextureFormatBGRA8Unorm
	default:
		return gputypes.TextureFormatRGBA8Unorm
	}
}

// DefaultTextureUsage is the usage for textures created without specific
// flags: sampled in the blit pass and written through the queue.
const DefaultTextureUsage = gputypes.TextureUsageCopyDst | gputypes.TextureUsageTextureBinding

// TextureConfig holds configuration for creating a new texture.
type TextureConfig struct {
	// Width is the texture width in pixels.
	Width int

	// Height is the texture height in pixels.
	Height int

	// Format is the pixel format.
	Format Format

	// Label is an optional debug label.
	Label string

	// Usage flags (default: CopyDst | TextureBinding).
	Usage gputypes.TextureUsage
}

// Texture is a GPU mirror of a chunk pixmap.
//
// The texture is logical until the wgpu texture path is complete: pixel
// data is staged host side and the queue write is issued by the present
// pass. Texture is safe for concurrent read access; Upload and Destroy
// must be synchronized externally.
type Texture struct {
	mu sync.RWMutex

	textureID core.TextureID
	viewID    core.TextureViewID

	width  int
	height int
	format Format

	staging   []byte
	sizeBytes uint64
	label     string

	backend  *Backend
	released atomic.Bool
}

// CreateTexture creates a new texture on the backend. A nil backend
// produces a logical texture without GPU resources, which keeps the
// paint engine usable headless.
func (b *Backend) CreateTexture(config TextureConfig) (*Texture, error) {
	if config.Width <= 0 || config.Height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if b != nil && !b.Initialized() {
		return nil, ErrNotInitialized
	}

	usage := config.Usage
	if usage == 0 {
		usage = DefaultTextureUsage
	}
	_ = usage // applied when the wgpu texture descriptor is issued

	t := &Texture{
		width:     config.Width,
		height:    config.Height,
		format:    config.Format,
		sizeBytes: uint64(config.Width) * uint64(config.Height) * uint64(config.Format.BytesPerPixel()),
		label:     config.Label,
		backend:   b,
	}
	if b != nil {
		b.trackTexture(int64(t.sizeBytes))
	}
	return t, nil
}

// NewTextureFromRGBA creates an RGBA texture of the given size and
// uploads data into it.
func (b *Backend) NewTextureFromRGBA(width, height int, data []byte) (gpucontext.Texture, error) {
	tex, err := b.CreateTexture(TextureConfig{
		Width:  width,
		Height: height,
		Format: FormatRGBA8,
	})
	if err != nil {
		return nil, err
	}
	if err := tex.Upload(data); err != nil {
		tex.Destroy()
		return nil, err
	}
	return tex, nil
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.height }

// Format returns the pixel format.
func (t *Texture) Format() Format { return t.format }

// SizeBytes returns the texture size in bytes.
func (t *Texture) SizeBytes() uint64 { return t.sizeBytes }

// Label returns the debug label.
func (t *Texture) Label() string { return t.label }

// Released reports whether Destroy has been called.
func (t *Texture) Released() bool { return t.released.Load() }

// TextureID returns the underlying wgpu texture ID. Zero for logical
// textures.
func (t *Texture) TextureID() core.TextureID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.textureID
}

// ViewID returns the texture view ID. Zero for logical textures.
func (t *Texture) ViewID() core.TextureViewID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.viewID
}

// Upload replaces the texture contents with data, which must be exactly
// Width*Height*BytesPerPixel bytes in row-major order.
func (t *Texture) Upload(data []byte) error {
	if t.released.Load() {
		return ErrTextureReleased
	}
	if uint64(len(data)) != t.sizeBytes {
		return fmt.Errorf("%w: want %d bytes, got %d", ErrTextureSizeMismatch, t.sizeBytes, len(data))
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.staging == nil {
		t.staging = make([]byte, t.sizeBytes)
	}
	copy(t.staging, data)
	return nil
}

// UpdateData replaces the texture contents in place.
func (t *Texture) UpdateData(data []byte) error {
	return t.Upload(data)
}

// Staging returns the last uploaded pixel data, or nil if nothing has
// been uploaded. The present pass writes it through the queue.
func (t *Texture) Staging() []byte {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.staging
}

// Destroy releases the texture. Safe to call more than once.
func (t *Texture) Destroy() {
	if t.released.Swap(true) {
		return
	}

	t.mu.Lock()
	b := t.backend
	t.textureID = core.TextureID{}
	t.viewID = core.TextureViewID{}
	t.staging = nil
	t.backend = nil
	t.mu.Unlock()

	if b != nil {
		b.untrackTexture(int64(t.sizeBytes))
	}
}

// String returns a string representation of the texture.
func (t *Texture) String() string {
	status := "active"
	if t.released.Load() {
		status = "released"
	}
	return fmt.Sprintf("Texture[%s %dx%d %s %d bytes %s]",
		t.label, t.width, t.height, t.format, t.sizeBytes, status)
}
