// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestFormatString(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatRGBA8, "RGBA8"},
		{FormatBGRA8, "BGRA8"},
		{Format(99), "Unknown(99)"},
	}
	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestCreateTextureValidation(t *testing.T) {
	var b *Backend

	if _, err := b.CreateTexture(TextureConfig{Width: 0, Height: 16}); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("zero width: err = %v, want ErrInvalidDimensions", err)
	}
	if _, err := b.CreateTexture(TextureConfig{Width: 16, Height: -1}); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("negative height: err = %v, want ErrInvalidDimensions", err)
	}

	tex, err := b.CreateTexture(TextureConfig{Width: 8, Height: 4, Format: FormatRGBA8, Label: "test"})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	if got, want := tex.SizeBytes(), uint64(8*4*4); got != want {
		t.Errorf("SizeBytes() = %d, want %d", got, want)
	}
	if !tex.TextureID().IsZero() {
		t.Error("logical texture should have a zero texture ID")
	}
}

func TestTextureUpload(t *testing.T) {
	var b *Backend
	tex, err := b.CreateTexture(TextureConfig{Width: 2, Height: 2, Format: FormatRGBA8})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}

	if err := tex.Upload(make([]byte, 3)); !errors.Is(err, ErrTextureSizeMismatch) {
		t.Errorf("short upload: err = %v, want ErrTextureSizeMismatch", err)
	}

	data := []byte{
		1, 2, 3, 4, 5, 6, 7, 8,
		9, 10, 11, 12, 13, 14, 15, 16,
	}
	if err := tex.Upload(data); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !bytes.Equal(tex.Staging(), data) {
		t.Error("Staging() does not match uploaded data")
	}

	// Staging must be a copy, not an alias.
	data[0] = 99
	if tex.Staging()[0] == 99 {
		t.Error("Staging() aliases the caller's buffer")
	}

	tex.Destroy()
	if !tex.Released() {
		t.Error("Released() = false after Destroy")
	}
	if err := tex.Upload(data); !errors.Is(err, ErrTextureReleased) {
		t.Errorf("upload after destroy: err = %v, want ErrTextureReleased", err)
	}
	tex.Destroy() // must be safe to call twice
}

func TestMemoryTracking(t *testing.T) {
	b := NewBackend()

	tex, err := b.CreateTexture(TextureConfig{Width: 4, Height: 4, Format: FormatRGBA8})
	if err == nil {
		t.Fatal("CreateTexture on uninitialized backend should fail")
	}
	_ = tex

	// Logical textures on a nil backend do not touch the counter.
	if got := b.Memory(); got.TextureCount != 0 || got.UsedBytes != 0 {
		t.Errorf("Memory() = %v, want empty", got)
	}
}

func TestBlitShaderSource(t *testing.T) {
	src := BlitShaderSource()
	if src == "" {
		t.Fatal("blit shader source is empty")
	}
	for _, entry := range []string{"vs_main", "fs_main", "textureSample"} {
		if !strings.Contains(src, entry) {
			t.Errorf("blit shader missing %q", entry)
		}
	}
}

func TestSPIRVWords(t *testing.T) {
	// SPIR-V magic number 0x07230203 in little-endian bytes.
	b := []byte{0x03, 0x02, 0x23, 0x07, 0xFF, 0x00, 0x00, 0x00}
	words := spirvWords(b)
	if len(words) != 2 {
		t.Fatalf("len(words) = %d, want 2", len(words))
	}
	if words[0] != 0x07230203 {
		t.Errorf("words[0] = %#x, want 0x07230203", words[0])
	}
	if words[1] != 0xFF {
		t.Errorf("words[1] = %#x, want 0xff", words[1])
	}
}
