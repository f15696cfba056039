// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
)

// blitShaderWGSL is the textured quad shader used to present chunk
// textures on the host surface.
//
//go:embed shaders/blit.wgsl
var blitShaderWGSL string

// BlitShaderSource returns the WGSL source of the blit shader.
func BlitShaderSource() string { return blitShaderWGSL }

// CompileBlitShader compiles the embedded blit shader to SPIR-V words.
func CompileBlitShader() ([]uint32, error) {
	return CompileShader(blitShaderWGSL)
}

// CompileShader compiles WGSL source to a SPIR-V uint32 slice.
func CompileShader(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("gpu: shader compilation failed: %w", err)
	}
	return spirvWords(spirvBytes), nil
}

// spirvWords converts SPIR-V bytes to little-endian 32-bit words.
func spirvWords(b []byte) []uint32 {
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) |
			uint32(b[i*4+1])<<8 |
			uint32(b[i*4+2])<<16 |
			uint32(b[i*4+3])<<24
	}
	return words
}
