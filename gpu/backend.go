// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpu provides the wgpu-backed texture tier of the paint canvas.
//
// The backend owns the GPU instance, adapter, device and queue. Resident
// chunks mirror their pixel content into textures created here; the
// embedded blit shader presents those textures to the host surface.
package gpu

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"
)

// Backend errors.
var (
	// ErrNoGPU is returned when no suitable GPU adapter is available.
	ErrNoGPU = errors.New("gpu: no suitable GPU adapter found")

	// ErrNotInitialized is returned when operations require an
	// initialized backend.
	ErrNotInitialized = errors.New("gpu: backend not initialized")
)

// Info describes the selected GPU.
type Info struct {
	// Name is the GPU name (e.g. "NVIDIA GeForce RTX 3080").
	Name string
	// Vendor is the GPU vendor.
	Vendor string
	// DeviceType is the kind of GPU (discrete, integrated, ...).
	DeviceType gputypes.DeviceType
	// Backend is the graphics API in use (Vulkan, Metal, DX12).
	Backend gputypes.Backend
}

// String returns a human-readable description of the GPU.
func (i *Info) String() string {
	return fmt.Sprintf("%s (%s, %s)", i.Name, i.DeviceType, i.Backend)
}

// Backend manages the GPU resources used by the chunk texture tier.
//
// The backend must be initialized with Init before textures can be
// created, and closed with Close to release the device.
type Backend struct {
	mu sync.RWMutex

	instance *core.Instance
	adapter  core.AdapterID
	device   core.DeviceID
	queue    core.QueueID

	info *Info
	blit []uint32 // compiled blit shader, SPIR-V words
	mem  memCounter

	initialized bool
}

// NewBackend creates an uninitialized backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Init brings up the GPU: instance, adapter, device, queue, and the
// compiled blit shader. Init is idempotent.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	b.instance = core.NewInstance(&gputypes.InstanceDescriptor{
		Backends: gputypes.BackendsPrimary,
	})

	adapterID, err := b.instance.RequestAdapter(&gputypes.RequestAdapterOptions{
		PowerPreference: gputypes.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoGPU, err)
	}
	b.adapter = adapterID

	if info, err := core.GetAdapterInfo(adapterID); err == nil {
		b.info = &Info{
			Name:       info.Name,
			Vendor:     info.Vendor,
			DeviceType: info.DeviceType,
			Backend:    info.Backend,
		}
		logger().Info("gpu: adapter selected", "gpu", b.info.String())
	}

	deviceID, err := core.RequestDevice(adapterID, &gputypes.DeviceDescriptor{
		Label:          "ggpaint-device",
		RequiredLimits: gputypes.DefaultLimits(),
	})
	if err != nil {
		b.releaseLocked()
		return fmt.Errorf("gpu: device creation failed: %w", err)
	}
	b.device = deviceID

	queueID, err := core.GetDeviceQueue(deviceID)
	if err != nil {
		b.releaseLocked()
		return fmt.Errorf("gpu: queue retrieval failed: %w", err)
	}
	b.queue = queueID

	words, err := CompileBlitShader()
	if err != nil {
		b.releaseLocked()
		return fmt.Errorf("gpu: blit shader: %w", err)
	}
	b.blit = words

	b.initialized = true
	logger().Info("gpu: backend initialized")
	return nil
}

// Initialized reports whether Init has completed successfully.
func (b *Backend) Initialized() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.initialized
}

// Device returns the wgpu device ID. Zero before Init.
func (b *Backend) Device() core.DeviceID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.device
}

// Queue returns the wgpu queue ID. Zero before Init.
func (b *Backend) Queue() core.QueueID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.queue
}

// GPUInfo returns information about the selected adapter, or nil before
// Init.
func (b *Backend) GPUInfo() *Info {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.info
}

// BlitShader returns the compiled blit shader as SPIR-V words.
func (b *Backend) BlitShader() []uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.blit
}

// Close releases all GPU resources in reverse order of creation. The
// backend must not be used afterwards.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	b.releaseLocked()
	b.initialized = false
	logger().Debug("gpu: backend closed")
}

// releaseLocked drops device and adapter. Caller must hold b.mu.
func (b *Backend) releaseLocked() {
	// Queue is released with the device.
	if !b.device.IsZero() {
		if err := core.DeviceDrop(b.device); err != nil {
			logger().Warn("gpu: device release failed", "err", err)
		}
		b.device = core.DeviceID{}
	}
	if !b.adapter.IsZero() {
		if err := core.AdapterDrop(b.adapter); err != nil {
			logger().Warn("gpu: adapter release failed", "err", err)
		}
		b.adapter = core.AdapterID{}
	}
	b.instance = nil
	b.queue = core.QueueID{}
	b.info = nil
	b.blit = nil
}
