// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vkr

import (
	vk "github.com/devblok/vulkan"

	"github.com/devblok/korugfx/gfx"
)

const hostMemory = vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit

// NewBuffer creates, configures, allocates and binds a new buffer.
func NewBuffer(dc *DeviceContext, size vk.DeviceSize, usage vk.BufferUsageFlagBits, prop vk.MemoryPropertyFlagBits) (*Buffer, error) {
	buffer, err := dc.driver.CreateBuffer(dc.device, &vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        size,
		Usage:       vk.BufferUsageFlags(usage),
		SharingMode: vk.SharingModeExclusive,
	})
	if err != nil {
		return nil, gfx.Wrapf(err, "creating %d byte buffer", size)
	}

	req := dc.driver.BufferMemoryRequirements(dc.device, buffer)
	memory, err := dc.allocator.Malloc(req, prop)
	if err != nil {
		dc.driver.DestroyBuffer(dc.device, buffer)
		return nil, err
	}

	if err := dc.driver.BindBufferMemory(dc.device, buffer, memory.Get(), 0); err != nil {
		memory.Release()
		dc.driver.DestroyBuffer(dc.device, buffer)
		return nil, err
	}

	return &Buffer{
		dc:     dc,
		buffer: buffer,
		memory: memory,
		size:   size,
	}, nil
}

// Buffer implements a generic vulkan buffer.
type Buffer struct {
	dc     *DeviceContext
	buffer vk.Buffer
	memory *Memory
	size   vk.DeviceSize
}

// Mem returns the Memory that the buffer is based on.
func (b *Buffer) Mem() *Memory {
	return b.memory
}

// Get returns the vulkan Buffer handle.
func (b *Buffer) Get() vk.Buffer {
	return b.buffer
}

// Size returns the requested size of the buffer.
func (b *Buffer) Size() vk.DeviceSize {
	return b.size
}

// Release destroys the buffer and memory asociated with it.
func (b *Buffer) Release() {
	b.dc.driver.DestroyBuffer(b.dc.device, b.buffer)
	b.memory.Release()
}

// vertexBuffer holds vertices followed by indices in device local memory.
type vertexBuffer struct {
	*Buffer
	indexOffset vk.DeviceSize
	indexed     bool
}

func newVertexBuffer(dc *DeviceContext, info gfx.BufferInfo) (*vertexBuffer, error) {
	if len(info.Vertices) == 0 {
		return nil, gfx.Failuref("vk.CreateBuffer(): no vertex data")
	}
	vertexSize := vk.DeviceSize(len(info.Vertices))
	size := vertexSize + vk.DeviceSize(len(info.Indices))

	staging, err := NewBuffer(dc, size, vk.BufferUsageTransferSrcBit, hostMemory)
	if err != nil {
		return nil, err
	}
	defer staging.Release()

	mapped, err := staging.Mem().Map()
	if err != nil {
		return nil, err
	}
	copy(mapped, info.Vertices)
	copy(mapped[vertexSize:], info.Indices)
	staging.Mem().Unmap()

	usage := vk.BufferUsageTransferDstBit | vk.BufferUsageVertexBufferBit | vk.BufferUsageIndexBufferBit
	buffer, err := NewBuffer(dc, size, usage, vk.MemoryPropertyDeviceLocalBit)
	if err != nil {
		return nil, err
	}

	if err := dc.copyBuffer(staging.Get(), buffer.Get(), size); err != nil {
		buffer.Release()
		return nil, err
	}

	return &vertexBuffer{
		Buffer:      buffer,
		indexOffset: vertexSize,
		indexed:     len(info.Indices) > 0,
	}, nil
}

// uniformBuffer is one host visible buffer holding a region per frame
// slot, slot k starts at k times size. It stays mapped until released.
type uniformBuffer struct {
	*Buffer
	binding uint32
	size    vk.DeviceSize
	frames  uint32
	mapped  []byte
}

func newUniformBuffer(dc *DeviceContext, info gfx.UniformBufferInfo) (*uniformBuffer, error) {
	if info.Size == 0 {
		return nil, gfx.Failuref("vk.CreateBuffer(): uniform buffer size is 0")
	}
	size := vk.DeviceSize(info.Size)
	frames := dc.maxFramesInFlight

	buffer, err := NewBuffer(dc, size*vk.DeviceSize(frames), uniformBufferUsage(info.Type), hostMemory)
	if err != nil {
		return nil, err
	}

	mapped, err := buffer.Mem().Map()
	if err != nil {
		buffer.Release()
		return nil, err
	}

	return &uniformBuffer{
		Buffer:  buffer,
		binding: info.Binding,
		size:    size,
		frames:  frames,
		mapped:  mapped,
	}, nil
}

// slot returns the mapped region of frame slot k.
func (ub *uniformBuffer) slot(k uint32) []byte {
	offset := vk.DeviceSize(k%ub.frames) * ub.size
	return ub.mapped[offset : offset+ub.size]
}

func (ub *uniformBuffer) write(k uint32, data []byte) error {
	if vk.DeviceSize(len(data)) > ub.size {
		return gfx.Failuref("vk.MapMemory(): %d bytes do not fit in a %d byte uniform buffer", len(data), ub.size)
	}
	copy(ub.slot(k), data)
	return nil
}
