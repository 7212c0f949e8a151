// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx

// Handle references a backend object. It is tagged with the name of the
// backend that created it, so a backend only has to check the tag and
// assert the native object once when the handle is passed back to it.
type Handle struct {
	backend string
	native  interface{}
}

// NewHandle tags a native object with its backend name.
func NewHandle(backend string, native interface{}) Handle {
	return Handle{
		backend: backend,
		native:  native,
	}
}

// Backend returns the name of the backend that created the handle.
func (h Handle) Backend() string {
	return h.backend
}

// Native returns the backend object.
func (h Handle) Native() interface{} {
	return h.native
}

// IsNil reports whether the handle references nothing.
func (h Handle) IsNil() bool {
	return h.native == nil
}

// Typed handles, one per kind of backend object.
type (
	PhysicalDevice   struct{ Handle }
	WindowSurface    struct{ Handle }
	RenderPass       struct{ Handle }
	Shader           struct{ Handle }
	Pipeline         struct{ Handle }
	Buffer           struct{ Handle }
	UniformBuffer    struct{ Handle }
	Texture          struct{ Handle }
	DescriptorLayout struct{ Handle }
)
