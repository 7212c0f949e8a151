// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package gfx defines the engine facing rendering api. Every graphics
// api is implemented as a Backend, selected by name when a Context is
// created. The engine only ever talks to the Context and the handles it
// gives out, never to the native api directly.
package gfx

import "unsafe"

// Releasable defines any memory-occupying item that can be freed.
type Releasable interface {

	// Release releases memory occupied by the implementing structure.
	Release()
}

// Window is the windowing system collaborator. The rendering layer never
// polls events, it only needs a surface, the size of the drawable area
// and to be told when the window was resized.
type Window interface {

	// CreateSurface creates a native presentation surface for the
	// given native api instance.
	CreateSurface(instance interface{}) (unsafe.Pointer, error)

	// FramebufferSize returns the drawable area in pixels.
	FramebufferSize() (width, height int)

	// ConsumeResize reports whether the window was resized since
	// the last call and clears the flag.
	ConsumeResize() bool
}

// Extent2D is a size in pixels.
type Extent2D struct {
	Width, Height uint32
}

// Offset2D is a position in pixels.
type Offset2D struct {
	X, Y int32
}

// Rect2D is an area in pixels.
type Rect2D struct {
	Offset Offset2D
	Extent Extent2D
}

// Viewport describes the viewport transform.
type Viewport struct {
	X, Y, Width, Height float32
	MinDepth, MaxDepth  float32
}

// Color is a linear RGBA color.
type Color struct {
	R, G, B, A float32
}

// PhysicalDeviceType identifies the kind of GPU.
type PhysicalDeviceType int

// Physical device types
const (
	PhysicalDeviceTypeUnknown PhysicalDeviceType = iota
	PhysicalDeviceTypeOther
	PhysicalDeviceTypeIntegrated
	PhysicalDeviceTypeDiscrete
	PhysicalDeviceTypeVirtual
	PhysicalDeviceTypeCPU
)

func (t PhysicalDeviceType) String() string {
	switch t {
	case PhysicalDeviceTypeOther:
		return "other"
	case PhysicalDeviceTypeIntegrated:
		return "integrated"
	case PhysicalDeviceTypeDiscrete:
		return "discrete"
	case PhysicalDeviceTypeVirtual:
		return "virtual"
	case PhysicalDeviceTypeCPU:
		return "cpu"
	default:
		return "unknown"
	}
}

// PhysicalDeviceInfo is a snapshot of a GPU's properties. The Device
// handle is what RenderInit takes to select it.
type PhysicalDeviceInfo struct {
	Device PhysicalDevice `json:"-"`

	Name          string
	Type          PhysicalDeviceType
	APIVersion    uint32
	DriverVersion uint32
	VendorID      uint32
	DeviceID      uint32
	Memory        uint64
	Extensions    []string
}

// MarshalText implements encoding.TextMarshaler.
func (t PhysicalDeviceType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
