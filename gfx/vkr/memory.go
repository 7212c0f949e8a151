// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vkr

import (
	vk "github.com/devblok/vulkan"

	"github.com/devblok/korugfx/gfx"
)

// Memory defines a usable memory region.
type Memory struct {
	allocator *MemoryAllocator
	memory    vk.DeviceMemory
	size      vk.DeviceSize
	mapped    []byte
}

// Get returns the vulkan memory handle.
func (m *Memory) Get() vk.DeviceMemory {
	return m.memory
}

// Len returns the length of assigned memory.
func (m *Memory) Len() vk.DeviceSize {
	return m.size
}

// Map maps the entire memory region, mapping an already mapped
// region returns the existing mapping.
func (m *Memory) Map() ([]byte, error) {
	if m.mapped != nil {
		return m.mapped, nil
	}
	mapped, err := m.allocator.driver.MapMemory(m.allocator.device, m.memory, 0, m.size)
	if err != nil {
		return nil, err
	}
	m.mapped = mapped
	return mapped, nil
}

// Unmap removes the memory mapping if it was mapped.
func (m *Memory) Unmap() {
	if m.mapped != nil {
		m.allocator.driver.UnmapMemory(m.allocator.device, m.memory)
		m.mapped = nil
	}
}

// Release frees memory after unmapping it if previously mapped.
func (m *Memory) Release() {
	if m.memory == nil {
		return
	}
	m.Unmap()
	m.allocator.free(m.memory)
	m.memory = nil
}

// NewMemoryAllocator creates a new memory allocator. Allocates for the logical device,
// reads memory properties of the physical device to influence allocation.
func NewMemoryAllocator(driver Driver, device vk.Device, phyDevice vk.PhysicalDevice) *MemoryAllocator {
	return &MemoryAllocator{
		driver:        driver,
		device:        device,
		memProperties: driver.PhysicalDeviceMemoryProperties(phyDevice),
	}
}

// MemoryAllocator is responsible returning usable
// memory for any resources that may need it.
type MemoryAllocator struct {
	driver        Driver
	device        vk.Device
	memProperties vk.PhysicalDeviceMemoryProperties
	live          int
}

// Malloc returns a usable memory chunk ready for use.
func (ma *MemoryAllocator) Malloc(req vk.MemoryRequirements, prop vk.MemoryPropertyFlagBits) (*Memory, error) {
	memTypeIdx, err := ma.findMemoryType(req.MemoryTypeBits, vk.MemoryPropertyFlags(prop))
	if err != nil {
		return nil, err
	}

	mai := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  req.Size,
		MemoryTypeIndex: memTypeIdx,
	}

	memory, err := ma.driver.AllocateMemory(ma.device, &mai)
	if err != nil {
		return nil, gfx.Wrapf(err, "allocating %d bytes", req.Size)
	}
	ma.live++

	return &Memory{
		allocator: ma,
		memory:    memory,
		size:      req.Size,
	}, nil
}

// Live returns the number of allocations not yet released.
func (ma *MemoryAllocator) Live() int {
	return ma.live
}

// Release reports allocations that were never freed. Memory itself is
// reclaimed with the device.
func (ma *MemoryAllocator) Release() {
	if ma.live > 0 {
		logger.WithField("allocations", ma.live).Warn("memory allocator released with live allocations")
	}
}

func (ma *MemoryAllocator) free(memory vk.DeviceMemory) {
	ma.driver.FreeMemory(ma.device, memory)
	ma.live--
}

func (ma *MemoryAllocator) findMemoryType(filter uint32, prop vk.MemoryPropertyFlags) (uint32, error) {
	for idx := uint32(0); idx < ma.memProperties.MemoryTypeCount; idx++ {
		if filter&(1<<idx) != 0 && (ma.memProperties.MemoryTypes[idx].PropertyFlags&prop) == prop {
			return idx, nil
		}
	}
	return 0, gfx.Failuref("suitable memory type not found for filter %#x and properties %#x", filter, prop)
}
