// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx_test

import (
	"unsafe"

	"github.com/devblok/korugfx/gfx"
)

const stubName = "stub"

func init() {
	gfx.Register(stubName, func() gfx.Backend { return &stubBackend{} })
}

// stubBackend records what reaches the backend after the Context checks.
type stubBackend struct {
	calls    []string
	devices  []gfx.PhysicalDeviceInfo
	spec     gfx.PipelineSpecification
	shutdown int
}

func (s *stubBackend) handle() gfx.Handle {
	return gfx.NewHandle(stubName, new(int))
}

func (s *stubBackend) record(name string) { s.calls = append(s.calls, name) }

func (s *stubBackend) Name() string { return stubName }

func (s *stubBackend) CreateContext(gfx.ContextInfo) error {
	s.record("CreateContext")
	s.devices = []gfx.PhysicalDeviceInfo{
		{Device: gfx.PhysicalDevice{Handle: s.handle()}, Name: "first", Type: gfx.PhysicalDeviceTypeDiscrete},
		{Device: gfx.PhysicalDevice{Handle: s.handle()}, Name: "second", Type: gfx.PhysicalDeviceTypeIntegrated},
	}
	return nil
}

func (s *stubBackend) PhysicalDevices(dst []gfx.PhysicalDeviceInfo) (int, error) {
	if dst == nil {
		return len(s.devices), nil
	}
	return copy(dst, s.devices), nil
}

func (s *stubBackend) RenderInit(gfx.RenderInitInfo) error { s.record("RenderInit"); return nil }
func (s *stubBackend) Shutdown()                           { s.shutdown++ }

func (s *stubBackend) CreateWindowSurface(gfx.Window) (gfx.WindowSurface, error) {
	s.record("CreateWindowSurface")
	return gfx.WindowSurface{Handle: s.handle()}, nil
}
func (s *stubBackend) DestroyWindowSurface(gfx.WindowSurface) { s.record("DestroyWindowSurface") }

func (s *stubBackend) CreateRenderPass(gfx.RenderPassInfo) (gfx.RenderPass, error) {
	s.record("CreateRenderPass")
	return gfx.RenderPass{Handle: s.handle()}, nil
}
func (s *stubBackend) DestroyRenderPass(gfx.RenderPass) { s.record("DestroyRenderPass") }

func (s *stubBackend) CreateShaderFromBytes(gfx.ShaderInfo) (gfx.Shader, error) {
	s.record("CreateShaderFromBytes")
	return gfx.Shader{Handle: s.handle()}, nil
}
func (s *stubBackend) CreateShaderFromSource(string, string) (gfx.Shader, error) {
	return gfx.Shader{}, gfx.Failuref("no compiler")
}
func (s *stubBackend) DestroyShader(gfx.Shader) { s.record("DestroyShader") }

func (s *stubBackend) CreateDescriptorLayout(gfx.DescriptorLayoutInfo) (gfx.DescriptorLayout, error) {
	s.record("CreateDescriptorLayout")
	return gfx.DescriptorLayout{Handle: s.handle()}, nil
}
func (s *stubBackend) DestroyDescriptorLayout(gfx.DescriptorLayout) {
	s.record("DestroyDescriptorLayout")
}
func (s *stubBackend) UpdateDescriptorLayout(gfx.DescriptorLayout, []gfx.DescriptorUpdate) error {
	s.record("UpdateDescriptorLayout")
	return nil
}

func (s *stubBackend) CreatePipeline(_ gfx.PipelineInfo, spec gfx.PipelineSpecification) (gfx.Pipeline, error) {
	s.record("CreatePipeline")
	s.spec = spec
	return gfx.Pipeline{Handle: s.handle()}, nil
}
func (s *stubBackend) DestroyPipeline(gfx.Pipeline) { s.record("DestroyPipeline") }

func (s *stubBackend) CreateBuffer(gfx.BufferInfo) (gfx.Buffer, error) {
	s.record("CreateBuffer")
	return gfx.Buffer{Handle: s.handle()}, nil
}
func (s *stubBackend) DestroyBuffer(gfx.Buffer) { s.record("DestroyBuffer") }

func (s *stubBackend) CreateUniformBuffer(gfx.UniformBufferInfo) (gfx.UniformBuffer, error) {
	s.record("CreateUniformBuffer")
	return gfx.UniformBuffer{Handle: s.handle()}, nil
}
func (s *stubBackend) DestroyUniformBuffer(gfx.UniformBuffer) { s.record("DestroyUniformBuffer") }
func (s *stubBackend) UpdateUniformBuffer(gfx.WindowSurface, gfx.UniformBuffer, []byte) error {
	s.record("UpdateUniformBuffer")
	return nil
}

func (s *stubBackend) CreateTexture(gfx.TextureInfo) (gfx.Texture, error) {
	s.record("CreateTexture")
	return gfx.Texture{Handle: s.handle()}, nil
}
func (s *stubBackend) DestroyTexture(gfx.Texture) { s.record("DestroyTexture") }

func (s *stubBackend) BeginNextFrame(gfx.WindowSurface) error {
	s.record("BeginNextFrame")
	return nil
}
func (s *stubBackend) BeginCommandRecording(gfx.WindowSurface) error {
	s.record("BeginCommandRecording")
	return nil
}
func (s *stubBackend) BeginRenderPass(gfx.WindowSurface)            { s.record("BeginRenderPass") }
func (s *stubBackend) SetClearColor(gfx.WindowSurface, gfx.Color)   { s.record("SetClearColor") }
func (s *stubBackend) BindPipeline(gfx.WindowSurface, gfx.Pipeline) { s.record("BindPipeline") }
func (s *stubBackend) BindVertexBuffer(gfx.WindowSurface, gfx.Buffer) {
	s.record("BindVertexBuffer")
}
func (s *stubBackend) BindIndexBuffer(gfx.WindowSurface, gfx.Buffer) { s.record("BindIndexBuffer") }
func (s *stubBackend) BindDescriptorLayout(gfx.WindowSurface, gfx.Pipeline, gfx.DescriptorLayout) {
	s.record("BindDescriptorLayout")
}
func (s *stubBackend) Draw(gfx.WindowSurface, uint32)        { s.record("Draw") }
func (s *stubBackend) DrawIndexed(gfx.WindowSurface, uint32) { s.record("DrawIndexed") }
func (s *stubBackend) DrawInstanced(gfx.WindowSurface, uint32, uint32, uint32) {
	s.record("DrawInstanced")
}
func (s *stubBackend) DrawIndexedInstanced(gfx.WindowSurface, uint32, uint32, uint32) {
	s.record("DrawIndexedInstanced")
}
func (s *stubBackend) SetStencilReference(gfx.WindowSurface, uint32) {
	s.record("SetStencilReference")
}
func (s *stubBackend) SetStencilMask(gfx.WindowSurface, uint32, uint32) { s.record("SetStencilMask") }
func (s *stubBackend) EndRenderPass(gfx.WindowSurface)                  { s.record("EndRenderPass") }
func (s *stubBackend) EndCommandRecording(gfx.WindowSurface) error {
	s.record("EndCommandRecording")
	return nil
}
func (s *stubBackend) DrawSubmit(gfx.WindowSurface) error {
	s.record("DrawSubmit")
	return nil
}

type stubWindow struct{}

func (stubWindow) CreateSurface(interface{}) (unsafe.Pointer, error) { return nil, nil }
func (stubWindow) FramebufferSize() (int, int)                       { return 800, 600 }
func (stubWindow) ConsumeResize() bool                               { return false }
