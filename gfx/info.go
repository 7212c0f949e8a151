// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx

import "unsafe"

// ContextInfo configures a graphics Context.
type ContextInfo struct {
	// Backend is the registered backend name, e.g. "vulkan".
	Backend string

	// ApplicationName is reported to the driver.
	ApplicationName string

	// Validation requests the api validation layers. Missing layers
	// are logged and otherwise ignored.
	Validation bool

	// ProcAddr is the api loader entry point provided by the window
	// system, nil uses the default system loader.
	ProcAddr unsafe.Pointer

	// Extensions are the instance extensions the window system requires.
	Extensions []string
}

// RenderInitInfo selects the device to render with.
type RenderInitInfo struct {
	Device PhysicalDevice

	// MaxFramesInFlight is the number of frames the CPU may record
	// ahead of the GPU, 0 is treated as 1.
	MaxFramesInFlight uint32

	// ProbeWindow is used to find a queue family able to present.
	ProbeWindow Window
}

// RenderPassAttachment describes one attachment of a render pass.
type RenderPassAttachment struct {
	Type           AttachmentType
	Format         ImageFormat
	Samples        SampleCount
	LoadOp         LoadOp
	StoreOp        StoreOp
	StencilLoadOp  LoadOp
	StencilStoreOp StoreOp
	InitialLayout  ImageLayout
	FinalLayout    ImageLayout
}

// RenderPassInfo is an ordered list of attachments.
type RenderPassInfo struct {
	Attachments []RenderPassAttachment
}

// ShaderInfo holds compiled SPIR-V bytecode for a shader pair.
type ShaderInfo struct {
	Vertex   []byte
	Fragment []byte
}

// VertexBinding describes a vertex buffer binding.
type VertexBinding struct {
	Binding uint32
	Stride  uint32
}

// VertexAttribute describes one attribute within a vertex binding.
type VertexAttribute struct {
	Binding  uint32
	Location uint32
	Type     VertexDataType
	Offset   uint32
}

// DescriptorBinding describes one binding of a descriptor layout.
type DescriptorBinding struct {
	Binding uint32
	Type    DescriptorType
	Stage   ShaderStage
	Count   uint32
}

// DescriptorLayoutInfo is the list of bindings of a descriptor layout.
type DescriptorLayoutInfo struct {
	Bindings []DescriptorBinding
}

// PushConstantRange describes a push constant block.
type PushConstantRange struct {
	Stage  ShaderStage
	Offset uint32
	Size   uint32
}

// PipelineInfo describes a graphics pipeline.
type PipelineInfo struct {
	// Specification is the fixed function state, nil uses
	// the default specification of the Context.
	Specification *PipelineSpecification

	Shader            Shader
	VertexBindings    []VertexBinding
	VertexAttributes  []VertexAttribute
	DescriptorLayouts []DescriptorLayout
	PushConstants     []PushConstantRange

	// RenderPass is optional, when empty the render pass of Surface is used.
	RenderPass RenderPass
	Surface    WindowSurface
}

// BufferInfo describes a static vertex buffer with optional indices.
type BufferInfo struct {
	Type     BufferType
	Vertices []byte
	Indices  []byte
}

// UniformBufferInfo describes a per-frame uniform or storage buffer.
// Size is the size of a single frame's region.
type UniformBufferInfo struct {
	Type    BufferType
	Binding uint32
	Size    uint64
}

// ImageData is decoded pixel data.
type ImageData struct {
	Pixels   []byte
	Width    uint32
	Height   uint32
	Channels uint32
}

// TextureInfo describes a sampled texture. Image must be RGBA.
type TextureInfo struct {
	Image     ImageData
	MinFilter TextureFilter
	MagFilter TextureFilter
	WrapMode  TextureMode
}

// DescriptorUpdate binds a resource to a binding of every frame's
// descriptor set. Buffer descriptors use UniformBuffer, image
// descriptors use Texture.
type DescriptorUpdate struct {
	Binding       uint32
	Type          DescriptorType
	Count         uint32
	UniformBuffer UniformBuffer
	Texture       Texture
}
