// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx

import (
	"fmt"
	"io/ioutil"

	log "github.com/sirupsen/logrus"
)

// NewContext creates a graphics context with the backend registered
// under info.Backend.
func NewContext(info ContextInfo) (*Context, error) {
	backend := Get(info.Backend)
	if backend == nil {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, info.Backend)
	}
	return NewContextWithBackend(backend, info)
}

// NewContextWithBackend creates a graphics context around an already
// constructed backend.
func NewContextWithBackend(backend Backend, info ContextInfo) (*Context, error) {
	if err := backend.CreateContext(info); err != nil {
		return nil, err
	}
	return &Context{
		backend:     backend,
		name:        backend.Name(),
		log:         log.WithField("backend", backend.Name()),
		defaultSpec: DefaultPipelineSpecification(),
	}, nil
}

// Context is the engine's handle to a graphics backend. It owns the
// backend for its whole life, checks arguments before they reach the
// backend and keeps the default pipeline specification. A Context is
// not safe for concurrent use, all rendering happens on one thread.
type Context struct {
	backend Backend
	name    string
	log     *log.Entry

	initialized bool
	closed      bool

	defaultSpec PipelineSpecification
}

// Backend returns the backend in use.
func (c *Context) Backend() Backend {
	return c.backend
}

// EnumeratePhysicalDevices fills dst and returns the number of entries
// written, with a nil dst it returns the number of devices.
func (c *Context) EnumeratePhysicalDevices(dst []PhysicalDeviceInfo) (int, error) {
	return c.backend.PhysicalDevices(dst)
}

// PhysicalDevices returns information about every device.
func (c *Context) PhysicalDevices() ([]PhysicalDeviceInfo, error) {
	count, err := c.backend.PhysicalDevices(nil)
	if err != nil {
		return nil, err
	}
	devices := make([]PhysicalDeviceInfo, count)
	written, err := c.backend.PhysicalDevices(devices)
	if err != nil {
		return nil, err
	}
	return devices[:written], nil
}

// RenderInit creates the logical device, queues and command pool
// on the selected device. It must succeed before anything is created.
func (c *Context) RenderInit(info RenderInitInfo) error {
	if err := c.owns(info.Device.Handle); err != nil {
		return err
	}
	if info.ProbeWindow == nil {
		return Failuref("RenderInit(): probe window is nil")
	}
	if info.MaxFramesInFlight == 0 {
		info.MaxFramesInFlight = 1
	}
	if err := c.backend.RenderInit(info); err != nil {
		return err
	}
	c.initialized = true
	return nil
}

// Close shuts the backend down. Calling it more than once has no effect.
func (c *Context) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.initialized = false
	c.backend.Shutdown()
}

// DefaultPipelineSpecification returns a copy of the specification
// used for pipelines created without one.
func (c *Context) DefaultPipelineSpecification() PipelineSpecification {
	return c.defaultSpec.Clone()
}

// SetDefaultPipelineSpecification replaces the default specification.
func (c *Context) SetDefaultPipelineSpecification(spec PipelineSpecification) {
	c.defaultSpec = spec.Clone()
}

func (c *Context) owns(h Handle) error {
	if h.IsNil() {
		return fmt.Errorf("%w: empty handle", ErrInvalidHandle)
	}
	if h.Backend() != c.name {
		return fmt.Errorf("%w: handle of backend %q used with %q", ErrInvalidHandle, h.Backend(), c.name)
	}
	return nil
}

func (c *Context) ready() error {
	if !c.initialized {
		return ErrNotInitialized
	}
	return nil
}

// usable checks a handle passed to a call that has no error result.
func (c *Context) usable(op string, h Handle) bool {
	if !c.initialized {
		return false
	}
	if err := c.owns(h); err != nil {
		c.log.Warnf("%s(): %s", op, err.Error())
		return false
	}
	return true
}

// CreateWindowSurface creates the swapchain and per-frame resources of w.
func (c *Context) CreateWindowSurface(w Window) (WindowSurface, error) {
	if err := c.ready(); err != nil {
		return WindowSurface{}, err
	}
	if w == nil {
		return WindowSurface{}, Failuref("CreateWindowSurface(): window is nil")
	}
	return c.backend.CreateWindowSurface(w)
}

// DestroyWindowSurface destroys the window's rendering resources.
func (c *Context) DestroyWindowSurface(ws WindowSurface) {
	if c.usable("DestroyWindowSurface", ws.Handle) {
		c.backend.DestroyWindowSurface(ws)
	}
}

// CreateRenderPass creates a render pass from an ordered attachment list.
func (c *Context) CreateRenderPass(info RenderPassInfo) (RenderPass, error) {
	if err := c.ready(); err != nil {
		return RenderPass{}, err
	}
	if len(info.Attachments) == 0 {
		return RenderPass{}, Failuref("CreateRenderPass(): no attachments")
	}
	return c.backend.CreateRenderPass(info)
}

// DestroyRenderPass destroys a render pass.
func (c *Context) DestroyRenderPass(rp RenderPass) {
	if c.usable("DestroyRenderPass", rp.Handle) {
		c.backend.DestroyRenderPass(rp)
	}
}

// CreateShaderFromBytes creates a shader pair from SPIR-V bytecode.
func (c *Context) CreateShaderFromBytes(info ShaderInfo) (Shader, error) {
	if err := c.ready(); err != nil {
		return Shader{}, err
	}
	if len(info.Vertex) == 0 || len(info.Fragment) == 0 {
		return Shader{}, Failuref("CreateShaderFromBytes(): empty shader bytecode")
	}
	return c.backend.CreateShaderFromBytes(info)
}

// CreateShaderFromFile creates a shader pair from SPIR-V files.
func (c *Context) CreateShaderFromFile(vertexPath, fragmentPath string) (Shader, error) {
	vert, err := ioutil.ReadFile(vertexPath)
	if err != nil {
		return Shader{}, Failuref("CreateShaderFromFile(): %s", err.Error())
	}
	frag, err := ioutil.ReadFile(fragmentPath)
	if err != nil {
		return Shader{}, Failuref("CreateShaderFromFile(): %s", err.Error())
	}
	return c.CreateShaderFromBytes(ShaderInfo{Vertex: vert, Fragment: frag})
}

// CreateShaderFromSource creates a shader pair from source code,
// only for backends that can compile it.
func (c *Context) CreateShaderFromSource(vertex, fragment string) (Shader, error) {
	if err := c.ready(); err != nil {
		return Shader{}, err
	}
	return c.backend.CreateShaderFromSource(vertex, fragment)
}

// DestroyShader destroys a shader pair. Shaders are only needed
// while pipelines get created.
func (c *Context) DestroyShader(s Shader) {
	if c.usable("DestroyShader", s.Handle) {
		c.backend.DestroyShader(s)
	}
}

// CreateDescriptorLayout creates a descriptor layout with one
// descriptor set per frame in flight.
func (c *Context) CreateDescriptorLayout(info DescriptorLayoutInfo) (DescriptorLayout, error) {
	if err := c.ready(); err != nil {
		return DescriptorLayout{}, err
	}
	if len(info.Bindings) == 0 {
		return DescriptorLayout{}, Failuref("CreateDescriptorLayout(): no descriptor bindings")
	}
	return c.backend.CreateDescriptorLayout(info)
}

// DestroyDescriptorLayout destroys a descriptor layout and its sets.
func (c *Context) DestroyDescriptorLayout(dl DescriptorLayout) {
	if c.usable("DestroyDescriptorLayout", dl.Handle) {
		c.backend.DestroyDescriptorLayout(dl)
	}
}

// UpdateDescriptorLayout writes the updates into every frame's descriptor set.
// Sets of frames still executing on the GPU are written too, so updates should
// happen before rendering starts or while no frame is in flight.
func (c *Context) UpdateDescriptorLayout(dl DescriptorLayout, updates []DescriptorUpdate) error {
	if err := c.ready(); err != nil {
		return err
	}
	if err := c.owns(dl.Handle); err != nil {
		return err
	}
	if len(updates) == 0 {
		return Failuref("UpdateDescriptorLayout(): no updates")
	}
	for i, u := range updates {
		var err error
		if u.Type.IsBuffer() {
			err = c.owns(u.UniformBuffer.Handle)
		} else {
			err = c.owns(u.Texture.Handle)
		}
		if err != nil {
			return fmt.Errorf("UpdateDescriptorLayout(): update %d: %w", i, err)
		}
	}
	return c.backend.UpdateDescriptorLayout(dl, updates)
}

// CreatePipeline creates a graphics pipeline. Without a specification
// the context default is used.
func (c *Context) CreatePipeline(info PipelineInfo) (Pipeline, error) {
	if err := c.ready(); err != nil {
		return Pipeline{}, err
	}
	if err := c.owns(info.Shader.Handle); err != nil {
		return Pipeline{}, fmt.Errorf("CreatePipeline(): shader: %w", err)
	}
	if info.RenderPass.IsNil() {
		if err := c.owns(info.Surface.Handle); err != nil {
			return Pipeline{}, fmt.Errorf("CreatePipeline(): no render pass and no window surface: %w", err)
		}
	} else if err := c.owns(info.RenderPass.Handle); err != nil {
		return Pipeline{}, fmt.Errorf("CreatePipeline(): render pass: %w", err)
	}
	for i, dl := range info.DescriptorLayouts {
		if err := c.owns(dl.Handle); err != nil {
			return Pipeline{}, fmt.Errorf("CreatePipeline(): descriptor layout %d: %w", i, err)
		}
	}

	spec := c.defaultSpec.Clone()
	if info.Specification != nil {
		spec = info.Specification.Clone()
	}
	return c.backend.CreatePipeline(info, spec)
}

// DestroyPipeline destroys a pipeline and its layout.
func (c *Context) DestroyPipeline(p Pipeline) {
	if c.usable("DestroyPipeline", p.Handle) {
		c.backend.DestroyPipeline(p)
	}
}

// CreateBuffer uploads vertex and index data into device local memory.
func (c *Context) CreateBuffer(info BufferInfo) (Buffer, error) {
	if err := c.ready(); err != nil {
		return Buffer{}, err
	}
	if info.Type&(BufferTypeVertex|BufferTypeIndex) == 0 {
		return Buffer{}, Failuref("CreateBuffer(): type %#x has no vertex or index usage", uint32(info.Type))
	}
	if info.Type&(BufferTypeUniform|BufferTypeStorage) != 0 {
		return Buffer{}, Failuref("CreateBuffer(): type %#x mixes uniform or storage usage", uint32(info.Type))
	}
	if len(info.Vertices) == 0 {
		return Buffer{}, Failuref("CreateBuffer(): no vertex data")
	}
	if info.Type&BufferTypeIndex != 0 && len(info.Indices) == 0 {
		return Buffer{}, Failuref("CreateBuffer(): index usage without index data")
	}
	return c.backend.CreateBuffer(info)
}

// DestroyBuffer destroys a vertex/index buffer.
func (c *Context) DestroyBuffer(b Buffer) {
	if c.usable("DestroyBuffer", b.Handle) {
		c.backend.DestroyBuffer(b)
	}
}

// CreateUniformBuffer creates a uniform or storage buffer with one
// region of info.Size bytes per frame in flight.
func (c *Context) CreateUniformBuffer(info UniformBufferInfo) (UniformBuffer, error) {
	if err := c.ready(); err != nil {
		return UniformBuffer{}, err
	}
	if info.Type&(BufferTypeUniform|BufferTypeStorage) == 0 {
		return UniformBuffer{}, Failuref("CreateUniformBuffer(): type %#x has no uniform or storage usage", uint32(info.Type))
	}
	if info.Type&(BufferTypeVertex|BufferTypeIndex) != 0 {
		return UniformBuffer{}, Failuref("CreateUniformBuffer(): type %#x mixes vertex or index usage", uint32(info.Type))
	}
	if info.Size == 0 {
		return UniformBuffer{}, Failuref("CreateUniformBuffer(): size is 0")
	}
	return c.backend.CreateUniformBuffer(info)
}

// DestroyUniformBuffer destroys a uniform buffer.
func (c *Context) DestroyUniformBuffer(ub UniformBuffer) {
	if c.usable("DestroyUniformBuffer", ub.Handle) {
		c.backend.DestroyUniformBuffer(ub)
	}
}

// UpdateUniformBuffer writes data into the region of the window's current frame.
func (c *Context) UpdateUniformBuffer(ws WindowSurface, ub UniformBuffer, data []byte) error {
	if err := c.ready(); err != nil {
		return err
	}
	if err := c.owns(ws.Handle); err != nil {
		return err
	}
	if err := c.owns(ub.Handle); err != nil {
		return err
	}
	if len(data) == 0 {
		return Failuref("UpdateUniformBuffer(): no data")
	}
	return c.backend.UpdateUniformBuffer(ws, ub, data)
}

// CreateTexture uploads RGBA pixels into a sampled texture.
func (c *Context) CreateTexture(info TextureInfo) (Texture, error) {
	if err := c.ready(); err != nil {
		return Texture{}, err
	}
	img := info.Image
	if img.Width == 0 || img.Height == 0 {
		return Texture{}, Failuref("CreateTexture(): image is %dx%d", img.Width, img.Height)
	}
	if img.Channels != 4 {
		return Texture{}, Failuref("CreateTexture(): image has %d channels, need 4", img.Channels)
	}
	if uint64(len(img.Pixels)) != uint64(img.Width)*uint64(img.Height)*4 {
		return Texture{}, Failuref("CreateTexture(): %d bytes of pixels for a %dx%d image", len(img.Pixels), img.Width, img.Height)
	}
	return c.backend.CreateTexture(info)
}

// DestroyTexture destroys a texture, its view and sampler.
func (c *Context) DestroyTexture(t Texture) {
	if c.usable("DestroyTexture", t.Handle) {
		c.backend.DestroyTexture(t)
	}
}

// BeginNextFrame waits for the window's current frame slot and acquires
// the next image. A minimised window skips the frame.
func (c *Context) BeginNextFrame(ws WindowSurface) error {
	if err := c.ready(); err != nil {
		return err
	}
	if err := c.owns(ws.Handle); err != nil {
		return err
	}
	return c.backend.BeginNextFrame(ws)
}

// BeginCommandRecording starts recording the frame's command buffer.
func (c *Context) BeginCommandRecording(ws WindowSurface) error {
	if err := c.ready(); err != nil {
		return err
	}
	if err := c.owns(ws.Handle); err != nil {
		return err
	}
	return c.backend.BeginCommandRecording(ws)
}

// BeginRenderPass begins the window's render pass.
func (c *Context) BeginRenderPass(ws WindowSurface) {
	if c.usable("BeginRenderPass", ws.Handle) {
		c.backend.BeginRenderPass(ws)
	}
}

// SetClearColor sets the color the window is cleared with.
func (c *Context) SetClearColor(ws WindowSurface, color Color) {
	if c.usable("SetClearColor", ws.Handle) {
		c.backend.SetClearColor(ws, color)
	}
}

// BindPipeline binds a pipeline.
func (c *Context) BindPipeline(ws WindowSurface, p Pipeline) {
	if c.usable("BindPipeline", ws.Handle) && c.usable("BindPipeline", p.Handle) {
		c.backend.BindPipeline(ws, p)
	}
}

// BindVertexBuffer binds the vertex part of a buffer.
func (c *Context) BindVertexBuffer(ws WindowSurface, b Buffer) {
	if c.usable("BindVertexBuffer", ws.Handle) && c.usable("BindVertexBuffer", b.Handle) {
		c.backend.BindVertexBuffer(ws, b)
	}
}

// BindIndexBuffer binds the index part of a buffer.
func (c *Context) BindIndexBuffer(ws WindowSurface, b Buffer) {
	if c.usable("BindIndexBuffer", ws.Handle) && c.usable("BindIndexBuffer", b.Handle) {
		c.backend.BindIndexBuffer(ws, b)
	}
}

// BindDescriptorLayout binds the current frame's descriptor set.
func (c *Context) BindDescriptorLayout(ws WindowSurface, p Pipeline, dl DescriptorLayout) {
	if c.usable("BindDescriptorLayout", ws.Handle) && c.usable("BindDescriptorLayout", p.Handle) &&
		c.usable("BindDescriptorLayout", dl.Handle) {
		c.backend.BindDescriptorLayout(ws, p, dl)
	}
}

// Draw draws vertexCount vertices.
func (c *Context) Draw(ws WindowSurface, vertexCount uint32) {
	if c.usable("Draw", ws.Handle) {
		c.backend.Draw(ws, vertexCount)
	}
}

// DrawIndexed draws indexCount indices.
func (c *Context) DrawIndexed(ws WindowSurface, indexCount uint32) {
	if c.usable("DrawIndexed", ws.Handle) {
		c.backend.DrawIndexed(ws, indexCount)
	}
}

// DrawInstanced draws instanceCount instances of vertexCount vertices.
func (c *Context) DrawInstanced(ws WindowSurface, vertexCount, instanceCount, firstInstance uint32) {
	if c.usable("DrawInstanced", ws.Handle) {
		c.backend.DrawInstanced(ws, vertexCount, instanceCount, firstInstance)
	}
}

// DrawIndexedInstanced draws instanceCount instances of indexCount indices.
func (c *Context) DrawIndexedInstanced(ws WindowSurface, indexCount, instanceCount, firstInstance uint32) {
	if c.usable("DrawIndexedInstanced", ws.Handle) {
		c.backend.DrawIndexedInstanced(ws, indexCount, instanceCount, firstInstance)
	}
}

// SetStencilReference sets the dynamic stencil reference.
func (c *Context) SetStencilReference(ws WindowSurface, reference uint32) {
	if c.usable("SetStencilReference", ws.Handle) {
		c.backend.SetStencilReference(ws, reference)
	}
}

// SetStencilMask sets the dynamic stencil compare and write masks.
func (c *Context) SetStencilMask(ws WindowSurface, compareMask, writeMask uint32) {
	if c.usable("SetStencilMask", ws.Handle) {
		c.backend.SetStencilMask(ws, compareMask, writeMask)
	}
}

// EndRenderPass ends the window's render pass.
func (c *Context) EndRenderPass(ws WindowSurface) {
	if c.usable("EndRenderPass", ws.Handle) {
		c.backend.EndRenderPass(ws)
	}
}

// EndCommandRecording finishes the frame's command buffer.
func (c *Context) EndCommandRecording(ws WindowSurface) error {
	if err := c.ready(); err != nil {
		return err
	}
	if err := c.owns(ws.Handle); err != nil {
		return err
	}
	return c.backend.EndCommandRecording(ws)
}

// DrawSubmit submits the frame and presents it.
func (c *Context) DrawSubmit(ws WindowSurface) error {
	if err := c.ready(); err != nil {
		return err
	}
	if err := c.owns(ws.Handle); err != nil {
		return err
	}
	return c.backend.DrawSubmit(ws)
}
