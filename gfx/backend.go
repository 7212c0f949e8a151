// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx

// Backend is the set of entry points one graphics api implements.
// Backends receive already validated arguments from the Context,
// handles passed to them carry the backend's own tag.
type Backend interface {
	// Name returns the name the backend is registered with.
	Name() string

	// CreateContext creates the api instance and discovers devices.
	CreateContext(info ContextInfo) error

	// PhysicalDevices fills dst with device information and returns
	// the number written. A nil dst returns the device count.
	PhysicalDevices(dst []PhysicalDeviceInfo) (int, error)

	// RenderInit creates the logical device on the selected device.
	RenderInit(info RenderInitInfo) error

	// Shutdown destroys everything in reverse order of creation.
	Shutdown()

	CreateWindowSurface(w Window) (WindowSurface, error)
	DestroyWindowSurface(ws WindowSurface)

	CreateRenderPass(info RenderPassInfo) (RenderPass, error)
	DestroyRenderPass(rp RenderPass)

	CreateShaderFromBytes(info ShaderInfo) (Shader, error)
	CreateShaderFromSource(vertex, fragment string) (Shader, error)
	DestroyShader(s Shader)

	CreateDescriptorLayout(info DescriptorLayoutInfo) (DescriptorLayout, error)
	DestroyDescriptorLayout(dl DescriptorLayout)
	UpdateDescriptorLayout(dl DescriptorLayout, updates []DescriptorUpdate) error

	CreatePipeline(info PipelineInfo, spec PipelineSpecification) (Pipeline, error)
	DestroyPipeline(p Pipeline)

	CreateBuffer(info BufferInfo) (Buffer, error)
	DestroyBuffer(b Buffer)

	CreateUniformBuffer(info UniformBufferInfo) (UniformBuffer, error)
	DestroyUniformBuffer(ub UniformBuffer)
	UpdateUniformBuffer(ws WindowSurface, ub UniformBuffer, data []byte) error

	CreateTexture(info TextureInfo) (Texture, error)
	DestroyTexture(t Texture)

	// Frame sequence, all of them act on the window's current frame.
	BeginNextFrame(ws WindowSurface) error
	BeginCommandRecording(ws WindowSurface) error
	BeginRenderPass(ws WindowSurface)
	SetClearColor(ws WindowSurface, c Color)
	BindPipeline(ws WindowSurface, p Pipeline)
	BindVertexBuffer(ws WindowSurface, b Buffer)
	BindIndexBuffer(ws WindowSurface, b Buffer)
	BindDescriptorLayout(ws WindowSurface, p Pipeline, dl DescriptorLayout)
	Draw(ws WindowSurface, vertexCount uint32)
	DrawIndexed(ws WindowSurface, indexCount uint32)
	DrawInstanced(ws WindowSurface, vertexCount, instanceCount, firstInstance uint32)
	DrawIndexedInstanced(ws WindowSurface, indexCount, instanceCount, firstInstance uint32)
	SetStencilReference(ws WindowSurface, reference uint32)
	SetStencilMask(ws WindowSurface, compareMask, writeMask uint32)
	EndRenderPass(ws WindowSurface)
	EndCommandRecording(ws WindowSurface) error
	DrawSubmit(ws WindowSurface) error
}

// BackendFactory creates a new, uninitialised backend.
type BackendFactory func() Backend
