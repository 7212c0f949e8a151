// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package vkr implements the vulkan renderer.
package vkr

import (
	"unsafe"

	vk "github.com/devblok/vulkan"
	log "github.com/sirupsen/logrus"

	"github.com/devblok/korugfx/gfx"
)

// Name is the name the backend is registered with.
const Name = "vulkan"

var logger = log.WithField("backend", Name)

func init() {
	gfx.Register(Name, func() gfx.Backend {
		return NewBackend(NativeDriver{})
	})
}

// debugReport forwards validation layer messages to the logger.
func debugReport(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
	object uint, location uint, messageCode int32, pLayerPrefix string,
	pMessage string, pUserData unsafe.Pointer) vk.Bool32 {

	entry := logger.WithFields(log.Fields{
		"layer": pLayerPrefix,
		"code":  messageCode,
	})
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		entry.Error(pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit|vk.DebugReportPerformanceWarningBit) != 0:
		entry.Warn(pMessage)
	default:
		entry.Debug(pMessage)
	}
	return vk.Bool32(vk.False)
}

// Backend implements gfx.Backend on top of a Driver.
type Backend struct {
	driver   Driver
	dc       *DeviceContext
	surfaces []*Surface
}

var _ gfx.Backend = (*Backend)(nil)

// NewBackend creates an uninitialised backend issuing calls through driver.
func NewBackend(driver Driver) *Backend {
	return &Backend{driver: driver}
}

// DeviceContext returns the device context, nil before CreateContext.
func (b *Backend) DeviceContext() *DeviceContext {
	return b.dc
}

// Name implements gfx.Backend.
func (b *Backend) Name() string {
	return Name
}

// CreateContext implements gfx.Backend.
func (b *Backend) CreateContext(info gfx.ContextInfo) error {
	dc, err := NewDeviceContext(b.driver, info)
	if err != nil {
		return err
	}
	b.dc = dc
	return nil
}

// PhysicalDevices implements gfx.Backend.
func (b *Backend) PhysicalDevices(dst []gfx.PhysicalDeviceInfo) (int, error) {
	if b.dc == nil {
		return 0, gfx.ErrNotInitialized
	}
	return b.dc.PhysicalDevices(dst)
}

// RenderInit implements gfx.Backend.
func (b *Backend) RenderInit(info gfx.RenderInitInfo) error {
	if b.dc == nil {
		return gfx.ErrNotInitialized
	}
	pd, ok := info.Device.Native().(vk.PhysicalDevice)
	if !ok {
		return gfx.ErrInvalidHandle
	}
	return b.dc.Initialize(pd, info.MaxFramesInFlight, info.ProbeWindow)
}

// Shutdown implements gfx.Backend. Surfaces still alive are destroyed first.
func (b *Backend) Shutdown() {
	if b.dc == nil {
		return
	}
	for idx := len(b.surfaces) - 1; idx >= 0; idx-- {
		b.surfaces[idx].destroy()
	}
	b.surfaces = nil
	b.dc.Shutdown()
	b.dc = nil
}

func handle(native interface{}) gfx.Handle {
	return gfx.NewHandle(Name, native)
}

func asSurface(ws gfx.WindowSurface) (*Surface, error) {
	if s, ok := ws.Native().(*Surface); ok && s.state != SurfaceDestroyed {
		return s, nil
	}
	return nil, gfx.ErrInvalidHandle
}

func asRenderPass(rp gfx.RenderPass) (*renderPass, error) {
	if p, ok := rp.Native().(*renderPass); ok {
		return p, nil
	}
	return nil, gfx.ErrInvalidHandle
}

func asShader(sh gfx.Shader) (*shader, error) {
	if s, ok := sh.Native().(*shader); ok {
		return s, nil
	}
	return nil, gfx.ErrInvalidHandle
}

func asPipeline(p gfx.Pipeline) (*pipeline, error) {
	if native, ok := p.Native().(*pipeline); ok {
		return native, nil
	}
	return nil, gfx.ErrInvalidHandle
}

func asBuffer(buf gfx.Buffer) (*vertexBuffer, error) {
	if vb, ok := buf.Native().(*vertexBuffer); ok {
		return vb, nil
	}
	return nil, gfx.ErrInvalidHandle
}

func asUniformBuffer(buf gfx.UniformBuffer) (*uniformBuffer, error) {
	if ub, ok := buf.Native().(*uniformBuffer); ok {
		return ub, nil
	}
	return nil, gfx.ErrInvalidHandle
}

func asTexture(t gfx.Texture) (*texture, error) {
	if tex, ok := t.Native().(*texture); ok {
		return tex, nil
	}
	return nil, gfx.ErrInvalidHandle
}

func asDescriptorLayout(dl gfx.DescriptorLayout) (*descriptorLayout, error) {
	if layout, ok := dl.Native().(*descriptorLayout); ok {
		return layout, nil
	}
	return nil, gfx.ErrInvalidHandle
}

// rejected logs a handle that could not be used by a verb without an error return.
func rejected(op string, err error) {
	logger.WithError(err).WithField("op", op).Warn("call ignored")
}

// CreateWindowSurface implements gfx.Backend.
func (b *Backend) CreateWindowSurface(w gfx.Window) (gfx.WindowSurface, error) {
	s, err := newSurface(b.dc, w)
	if err != nil {
		return gfx.WindowSurface{}, err
	}
	b.surfaces = append(b.surfaces, s)
	return gfx.WindowSurface{Handle: handle(s)}, nil
}

// DestroyWindowSurface implements gfx.Backend.
func (b *Backend) DestroyWindowSurface(ws gfx.WindowSurface) {
	s, err := asSurface(ws)
	if err != nil {
		rejected("DestroyWindowSurface", err)
		return
	}
	s.destroy()
	for idx, live := range b.surfaces {
		if live == s {
			b.surfaces = append(b.surfaces[:idx], b.surfaces[idx+1:]...)
			break
		}
	}
}

// CreateRenderPass implements gfx.Backend.
func (b *Backend) CreateRenderPass(info gfx.RenderPassInfo) (gfx.RenderPass, error) {
	rp, err := newRenderPass(b.dc, info)
	if err != nil {
		return gfx.RenderPass{}, err
	}
	return gfx.RenderPass{Handle: handle(rp)}, nil
}

// DestroyRenderPass implements gfx.Backend.
func (b *Backend) DestroyRenderPass(rp gfx.RenderPass) {
	native, err := asRenderPass(rp)
	if err != nil {
		rejected("DestroyRenderPass", err)
		return
	}
	b.dc.waitIdle()
	native.Release()
}

// CreateShaderFromBytes implements gfx.Backend.
func (b *Backend) CreateShaderFromBytes(info gfx.ShaderInfo) (gfx.Shader, error) {
	s, err := newShader(b.dc, info)
	if err != nil {
		return gfx.Shader{}, err
	}
	return gfx.Shader{Handle: handle(s)}, nil
}

// CreateShaderFromSource implements gfx.Backend. Shaders have to be
// compiled to SPIR-V ahead of time.
func (b *Backend) CreateShaderFromSource(vertex, fragment string) (gfx.Shader, error) {
	return gfx.Shader{}, gfx.Failuref("vk.CreateShaderModule(): shaders can only be created from SPIR-V")
}

// DestroyShader implements gfx.Backend.
func (b *Backend) DestroyShader(sh gfx.Shader) {
	s, err := asShader(sh)
	if err != nil {
		rejected("DestroyShader", err)
		return
	}
	s.Release()
}

// CreateDescriptorLayout implements gfx.Backend.
func (b *Backend) CreateDescriptorLayout(info gfx.DescriptorLayoutInfo) (gfx.DescriptorLayout, error) {
	dl, err := newDescriptorLayout(b.dc, info)
	if err != nil {
		return gfx.DescriptorLayout{}, err
	}
	return gfx.DescriptorLayout{Handle: handle(dl)}, nil
}

// DestroyDescriptorLayout implements gfx.Backend.
func (b *Backend) DestroyDescriptorLayout(dl gfx.DescriptorLayout) {
	layout, err := asDescriptorLayout(dl)
	if err != nil {
		rejected("DestroyDescriptorLayout", err)
		return
	}
	b.dc.waitIdle()
	layout.Release()
}

// UpdateDescriptorLayout implements gfx.Backend. Every frame slot's set
// is rewritten immediately.
func (b *Backend) UpdateDescriptorLayout(dl gfx.DescriptorLayout, updates []gfx.DescriptorUpdate) error {
	layout, err := asDescriptorLayout(dl)
	if err != nil {
		return err
	}

	buffers := make([]*uniformBuffer, len(updates))
	textures := make([]*texture, len(updates))
	for idx, u := range updates {
		if u.Type.IsBuffer() {
			if buffers[idx], err = asUniformBuffer(u.UniformBuffer); err != nil {
				return err
			}
		} else if textures[idx], err = asTexture(u.Texture); err != nil {
			return err
		}
	}
	layout.update(updates, buffers, textures)
	return nil
}

// CreatePipeline implements gfx.Backend.
func (b *Backend) CreatePipeline(info gfx.PipelineInfo, spec gfx.PipelineSpecification) (gfx.Pipeline, error) {
	s, err := asShader(info.Shader)
	if err != nil {
		return gfx.Pipeline{}, err
	}

	target := pipelineTarget{
		shader:     s,
		bindings:   info.VertexBindings,
		attributes: info.VertexAttributes,
		push:       info.PushConstants,
	}
	for _, dl := range info.DescriptorLayouts {
		layout, err := asDescriptorLayout(dl)
		if err != nil {
			return gfx.Pipeline{}, err
		}
		target.layouts = append(target.layouts, layout.layout)
	}

	switch {
	case !info.RenderPass.IsNil():
		rp, err := asRenderPass(info.RenderPass)
		if err != nil {
			return gfx.Pipeline{}, err
		}
		target.renderPass = rp.pass
	case !info.Surface.IsNil():
		surface, err := asSurface(info.Surface)
		if err != nil {
			return gfx.Pipeline{}, err
		}
		target.renderPass = surface.renderPass
	default:
		return gfx.Pipeline{}, gfx.Failuref("vk.CreateGraphicsPipelines(): no render pass or window surface")
	}

	p, err := newPipeline(b.dc, target, spec)
	if err != nil {
		return gfx.Pipeline{}, err
	}
	return gfx.Pipeline{Handle: handle(p)}, nil
}

// DestroyPipeline implements gfx.Backend.
func (b *Backend) DestroyPipeline(p gfx.Pipeline) {
	native, err := asPipeline(p)
	if err != nil {
		rejected("DestroyPipeline", err)
		return
	}
	b.dc.waitIdle()
	native.Release()
}

// CreateBuffer implements gfx.Backend.
func (b *Backend) CreateBuffer(info gfx.BufferInfo) (gfx.Buffer, error) {
	vb, err := newVertexBuffer(b.dc, info)
	if err != nil {
		return gfx.Buffer{}, err
	}
	return gfx.Buffer{Handle: handle(vb)}, nil
}

// DestroyBuffer implements gfx.Backend.
func (b *Backend) DestroyBuffer(buf gfx.Buffer) {
	vb, err := asBuffer(buf)
	if err != nil {
		rejected("DestroyBuffer", err)
		return
	}
	b.dc.waitIdle()
	vb.Release()
}

// CreateUniformBuffer implements gfx.Backend.
func (b *Backend) CreateUniformBuffer(info gfx.UniformBufferInfo) (gfx.UniformBuffer, error) {
	ub, err := newUniformBuffer(b.dc, info)
	if err != nil {
		return gfx.UniformBuffer{}, err
	}
	return gfx.UniformBuffer{Handle: handle(ub)}, nil
}

// DestroyUniformBuffer implements gfx.Backend.
func (b *Backend) DestroyUniformBuffer(buf gfx.UniformBuffer) {
	ub, err := asUniformBuffer(buf)
	if err != nil {
		rejected("DestroyUniformBuffer", err)
		return
	}
	b.dc.waitIdle()
	ub.Release()
}

// UpdateUniformBuffer implements gfx.Backend, data goes to the region
// of the surface's current frame slot.
func (b *Backend) UpdateUniformBuffer(ws gfx.WindowSurface, buf gfx.UniformBuffer, data []byte) error {
	s, err := asSurface(ws)
	if err != nil {
		return err
	}
	ub, err := asUniformBuffer(buf)
	if err != nil {
		return err
	}
	return ub.write(s.frame, data)
}

// CreateTexture implements gfx.Backend.
func (b *Backend) CreateTexture(info gfx.TextureInfo) (gfx.Texture, error) {
	tex, err := newTexture(b.dc, info)
	if err != nil {
		return gfx.Texture{}, err
	}
	return gfx.Texture{Handle: handle(tex)}, nil
}

// DestroyTexture implements gfx.Backend.
func (b *Backend) DestroyTexture(t gfx.Texture) {
	tex, err := asTexture(t)
	if err != nil {
		rejected("DestroyTexture", err)
		return
	}
	b.dc.waitIdle()
	tex.Release()
}

// BeginNextFrame implements gfx.Backend.
func (b *Backend) BeginNextFrame(ws gfx.WindowSurface) error {
	s, err := asSurface(ws)
	if err != nil {
		return err
	}
	return s.acquireNextFrame()
}

// BeginCommandRecording implements gfx.Backend.
func (b *Backend) BeginCommandRecording(ws gfx.WindowSurface) error {
	s, err := asSurface(ws)
	if err != nil {
		return err
	}
	return s.beginCommandRecording()
}

// BeginRenderPass implements gfx.Backend.
func (b *Backend) BeginRenderPass(ws gfx.WindowSurface) {
	if s, err := asSurface(ws); err == nil {
		s.beginRenderPass()
	} else {
		rejected("BeginRenderPass", err)
	}
}

// SetClearColor implements gfx.Backend.
func (b *Backend) SetClearColor(ws gfx.WindowSurface, c gfx.Color) {
	if s, err := asSurface(ws); err == nil {
		s.setClearColor(c)
	} else {
		rejected("SetClearColor", err)
	}
}

// BindPipeline implements gfx.Backend.
func (b *Backend) BindPipeline(ws gfx.WindowSurface, p gfx.Pipeline) {
	s, err := asSurface(ws)
	if err != nil {
		rejected("BindPipeline", err)
		return
	}
	native, err := asPipeline(p)
	if err != nil {
		rejected("BindPipeline", err)
		return
	}
	s.bindPipeline(native)
}

// BindVertexBuffer implements gfx.Backend.
func (b *Backend) BindVertexBuffer(ws gfx.WindowSurface, buf gfx.Buffer) {
	s, err := asSurface(ws)
	if err != nil {
		rejected("BindVertexBuffer", err)
		return
	}
	vb, err := asBuffer(buf)
	if err != nil {
		rejected("BindVertexBuffer", err)
		return
	}
	s.bindVertexBuffer(vb)
}

// BindIndexBuffer implements gfx.Backend.
func (b *Backend) BindIndexBuffer(ws gfx.WindowSurface, buf gfx.Buffer) {
	s, err := asSurface(ws)
	if err != nil {
		rejected("BindIndexBuffer", err)
		return
	}
	vb, err := asBuffer(buf)
	if err != nil {
		rejected("BindIndexBuffer", err)
		return
	}
	s.bindIndexBuffer(vb)
}

// BindDescriptorLayout implements gfx.Backend, the set of the current
// frame slot is bound.
func (b *Backend) BindDescriptorLayout(ws gfx.WindowSurface, p gfx.Pipeline, dl gfx.DescriptorLayout) {
	s, err := asSurface(ws)
	if err != nil {
		rejected("BindDescriptorLayout", err)
		return
	}
	native, err := asPipeline(p)
	if err != nil {
		rejected("BindDescriptorLayout", err)
		return
	}
	layout, err := asDescriptorLayout(dl)
	if err != nil {
		rejected("BindDescriptorLayout", err)
		return
	}
	s.bindDescriptorSet(native, layout)
}

// Draw implements gfx.Backend.
func (b *Backend) Draw(ws gfx.WindowSurface, vertexCount uint32) {
	b.DrawInstanced(ws, vertexCount, 1, 0)
}

// DrawIndexed implements gfx.Backend.
func (b *Backend) DrawIndexed(ws gfx.WindowSurface, indexCount uint32) {
	b.DrawIndexedInstanced(ws, indexCount, 1, 0)
}

// DrawInstanced implements gfx.Backend.
func (b *Backend) DrawInstanced(ws gfx.WindowSurface, vertexCount, instanceCount, firstInstance uint32) {
	if s, err := asSurface(ws); err == nil {
		s.draw(vertexCount, instanceCount, firstInstance)
	} else {
		rejected("Draw", err)
	}
}

// DrawIndexedInstanced implements gfx.Backend.
func (b *Backend) DrawIndexedInstanced(ws gfx.WindowSurface, indexCount, instanceCount, firstInstance uint32) {
	if s, err := asSurface(ws); err == nil {
		s.drawIndexed(indexCount, instanceCount, firstInstance)
	} else {
		rejected("DrawIndexed", err)
	}
}

// SetStencilReference implements gfx.Backend.
func (b *Backend) SetStencilReference(ws gfx.WindowSurface, reference uint32) {
	if s, err := asSurface(ws); err == nil {
		s.setStencilReference(reference)
	} else {
		rejected("SetStencilReference", err)
	}
}

// SetStencilMask implements gfx.Backend.
func (b *Backend) SetStencilMask(ws gfx.WindowSurface, compareMask, writeMask uint32) {
	if s, err := asSurface(ws); err == nil {
		s.setStencilMask(compareMask, writeMask)
	} else {
		rejected("SetStencilMask", err)
	}
}

// EndRenderPass implements gfx.Backend.
func (b *Backend) EndRenderPass(ws gfx.WindowSurface) {
	if s, err := asSurface(ws); err == nil {
		s.endRenderPass()
	} else {
		rejected("EndRenderPass", err)
	}
}

// EndCommandRecording implements gfx.Backend.
func (b *Backend) EndCommandRecording(ws gfx.WindowSurface) error {
	s, err := asSurface(ws)
	if err != nil {
		return err
	}
	return s.endCommandRecording()
}

// DrawSubmit implements gfx.Backend.
func (b *Backend) DrawSubmit(ws gfx.WindowSurface) error {
	s, err := asSurface(ws)
	if err != nil {
		return err
	}
	return s.submitAndPresent()
}
