// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vkr

import (
	"fmt"
	"unsafe"

	vk "github.com/devblok/vulkan"

	"github.com/devblok/korugfx/gfx"
)

// fakeObject backs a fake native handle. The driver keeps every object
// alive so handle values stay unique for the whole test.
type fakeObject struct {
	kind string
	id   int
}

// fakeDriver is a Driver that records calls instead of talking to a GPU.
// Queries answer from the configurable fields below.
type fakeDriver struct {
	calls   []string
	objects []*fakeObject
	live    map[string]int

	layers       []string
	devices      int
	families     []vk.QueueFamilyProperties
	present      map[uint32]bool
	extensions   []string
	anisotropy   bool
	sampleCounts vk.SampleCountFlags
	depthFormats map[vk.Format]bool
	formats      []vk.SurfaceFormat
	modes        []vk.PresentMode
	caps         vk.SurfaceCapabilities

	acquireResults []vk.Result
	presentResults []vk.Result
	failPipeline   bool
	// failFramebuffer counts CreateFramebuffer calls down, the call
	// that brings it to zero fails.
	failFramebuffer int
	failSubmit      bool

	buffers       map[vk.Buffer]vk.DeviceSize
	memory        map[vk.DeviceMemory][]byte
	instanceInfo  *vk.InstanceCreateInfo
	deviceInfo    *vk.DeviceCreateInfo
	swapchainInfo *vk.SwapchainCreateInfo
	pipelineInfo  *vk.GraphicsPipelineCreateInfo
	poolInfo      *vk.DescriptorPoolCreateInfo
	samplerInfo   *vk.SamplerCreateInfo
	writes        []vk.WriteDescriptorSet
	barriers      []vk.ImageMemoryBarrier
	images        uint32
	nextImage     uint32
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		live:    make(map[string]int),
		layers:  []string{validationLayer},
		devices: 1,
		families: []vk.QueueFamilyProperties{
			{QueueFlags: vk.QueueFlags(vk.QueueGraphicsBit | vk.QueueTransferBit), QueueCount: 1},
		},
		present:      map[uint32]bool{0: true},
		extensions:   []string{vk.KhrSwapchainExtensionName},
		anisotropy:   true,
		sampleCounts: vk.SampleCountFlags(vk.SampleCount1Bit | vk.SampleCount2Bit | vk.SampleCount4Bit | vk.SampleCount8Bit),
		depthFormats: map[vk.Format]bool{vk.FormatD32Sfloat: true},
		formats: []vk.SurfaceFormat{
			{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
			{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		},
		modes: []vk.PresentMode{vk.PresentModeFifo, vk.PresentModeMailbox},
		caps: vk.SurfaceCapabilities{
			MinImageCount:           2,
			MaxImageCount:           3,
			CurrentExtent:           vk.Extent2D{Width: vk.MaxUint32, Height: vk.MaxUint32},
			MinImageExtent:          vk.Extent2D{Width: 1, Height: 1},
			MaxImageExtent:          vk.Extent2D{Width: 4096, Height: 4096},
			MaxImageArrayLayers:     1,
			CurrentTransform:        vk.SurfaceTransformIdentityBit,
			SupportedCompositeAlpha: vk.CompositeAlphaFlags(vk.CompositeAlphaOpaqueBit),
		},
		buffers: make(map[vk.Buffer]vk.DeviceSize),
		memory:  make(map[vk.DeviceMemory][]byte),
	}
}

func (f *fakeDriver) record(format string, args ...interface{}) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeDriver) object(kind string) unsafe.Pointer {
	obj := &fakeObject{kind: kind, id: len(f.objects)}
	f.objects = append(f.objects, obj)
	f.live[kind]++
	return unsafe.Pointer(obj)
}

func (f *fakeDriver) destroy(kind string) {
	f.record("Destroy%s", kind)
	f.live[kind]--
}

// count returns how many times call was recorded.
func (f *fakeDriver) count(call string) int {
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

// since returns the calls recorded after mark.
func (f *fakeDriver) since(mark int) []string {
	return append([]string(nil), f.calls[mark:]...)
}

func (f *fakeDriver) Init(unsafe.Pointer) error {
	f.record("Init")
	return nil
}

func (f *fakeDriver) InitInstance(vk.Instance) error {
	f.record("InitInstance")
	return nil
}

func (f *fakeDriver) InstanceLayers() ([]string, error) {
	return f.layers, nil
}

func (f *fakeDriver) CreateInstance(info *vk.InstanceCreateInfo) (vk.Instance, error) {
	f.record("CreateInstance")
	f.instanceInfo = info
	return vk.Instance(f.object("Instance")), nil
}

func (f *fakeDriver) DestroyInstance(vk.Instance) { f.destroy("Instance") }

func (f *fakeDriver) CreateDebugReportCallback(vk.Instance, *vk.DebugReportCallbackCreateInfo) (vk.DebugReportCallback, error) {
	f.record("CreateDebugReportCallback")
	return vk.DebugReportCallback(f.object("DebugReportCallback")), nil
}

func (f *fakeDriver) DestroyDebugReportCallback(vk.Instance, vk.DebugReportCallback) {
	f.destroy("DebugReportCallback")
}

func (f *fakeDriver) EnumeratePhysicalDevices(vk.Instance) ([]vk.PhysicalDevice, error) {
	devices := make([]vk.PhysicalDevice, 0, f.devices)
	for idx := 0; idx < f.devices; idx++ {
		devices = append(devices, vk.PhysicalDevice(f.object("PhysicalDevice")))
	}
	return devices, nil
}

func (f *fakeDriver) CreateWindowSurface(vk.Instance, gfx.Window) (vk.Surface, error) {
	f.record("CreateSurface")
	return vk.Surface(f.object("Surface")), nil
}

func (f *fakeDriver) DestroySurface(vk.Instance, vk.Surface) { f.destroy("Surface") }

func (f *fakeDriver) PhysicalDeviceProperties(vk.PhysicalDevice) vk.PhysicalDeviceProperties {
	var props vk.PhysicalDeviceProperties
	copy(props.DeviceName[:], "Fake GPU\x00")
	props.DeviceType = vk.PhysicalDeviceTypeDiscreteGpu
	props.ApiVersion = vk.MakeVersion(1, 1, 0)
	props.VendorID = 0x10de
	props.DeviceID = 42
	props.Limits.FramebufferColorSampleCounts = f.sampleCounts
	props.Limits.FramebufferDepthSampleCounts = f.sampleCounts
	props.Limits.MaxSamplerAnisotropy = 16
	return props
}

func (f *fakeDriver) PhysicalDeviceFeatures(vk.PhysicalDevice) vk.PhysicalDeviceFeatures {
	var features vk.PhysicalDeviceFeatures
	if f.anisotropy {
		features.SamplerAnisotropy = vk.True
	}
	return features
}

// PhysicalDeviceMemoryProperties reports a device local type and a host
// visible coherent type.
func (f *fakeDriver) PhysicalDeviceMemoryProperties(vk.PhysicalDevice) vk.PhysicalDeviceMemoryProperties {
	var props vk.PhysicalDeviceMemoryProperties
	props.MemoryTypeCount = 2
	props.MemoryTypes[0].PropertyFlags = vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit)
	props.MemoryTypes[1].PropertyFlags = vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit)
	props.MemoryTypes[1].HeapIndex = 1
	props.MemoryHeapCount = 2
	props.MemoryHeaps[0].Size = 1 << 30
	props.MemoryHeaps[1].Size = 1 << 28
	return props
}

func (f *fakeDriver) QueueFamilies(vk.PhysicalDevice) []vk.QueueFamilyProperties {
	return f.families
}

func (f *fakeDriver) DeviceExtensions(vk.PhysicalDevice) ([]string, error) {
	return f.extensions, nil
}

func (f *fakeDriver) FormatProperties(_ vk.PhysicalDevice, format vk.Format) vk.FormatProperties {
	var props vk.FormatProperties
	if f.depthFormats[format] {
		props.OptimalTilingFeatures = vk.FormatFeatureFlags(vk.FormatFeatureDepthStencilAttachmentBit)
	}
	return props
}

func (f *fakeDriver) SurfaceSupport(_ vk.PhysicalDevice, family uint32, _ vk.Surface) (bool, error) {
	f.record("SurfaceSupport %d", family)
	return f.present[family], nil
}

func (f *fakeDriver) SurfaceCapabilities(vk.PhysicalDevice, vk.Surface) (vk.SurfaceCapabilities, error) {
	return f.caps, nil
}

func (f *fakeDriver) SurfaceFormats(vk.PhysicalDevice, vk.Surface) ([]vk.SurfaceFormat, error) {
	return f.formats, nil
}

func (f *fakeDriver) SurfacePresentModes(vk.PhysicalDevice, vk.Surface) ([]vk.PresentMode, error) {
	return f.modes, nil
}

func (f *fakeDriver) CreateDevice(_ vk.PhysicalDevice, info *vk.DeviceCreateInfo) (vk.Device, error) {
	f.record("CreateDevice")
	f.deviceInfo = info
	return vk.Device(f.object("Device")), nil
}

func (f *fakeDriver) DestroyDevice(vk.Device) { f.destroy("Device") }

func (f *fakeDriver) DeviceQueue(vk.Device, uint32) vk.Queue {
	return vk.Queue(f.object("Queue"))
}

func (f *fakeDriver) DeviceWaitIdle(vk.Device) error {
	f.record("DeviceWaitIdle")
	return nil
}

func (f *fakeDriver) QueueWaitIdle(vk.Queue) error {
	f.record("QueueWaitIdle")
	return nil
}

func (f *fakeDriver) QueueSubmit(vk.Queue, []vk.SubmitInfo, vk.Fence) error {
	f.record("QueueSubmit")
	if f.failSubmit {
		return failed("vk.QueueSubmit()", vk.ErrorDeviceLost)
	}
	return nil
}

func (f *fakeDriver) QueuePresent(vk.Queue, *vk.PresentInfo) vk.Result {
	f.record("QueuePresent")
	if len(f.presentResults) == 0 {
		return vk.Success
	}
	res := f.presentResults[0]
	f.presentResults = f.presentResults[1:]
	return res
}

func (f *fakeDriver) CreateSwapchain(_ vk.Device, info *vk.SwapchainCreateInfo) (vk.Swapchain, error) {
	f.record("CreateSwapchain")
	f.swapchainInfo = info
	f.images = info.MinImageCount
	return vk.Swapchain(f.object("Swapchain")), nil
}

func (f *fakeDriver) DestroySwapchain(vk.Device, vk.Swapchain) { f.destroy("Swapchain") }

func (f *fakeDriver) SwapchainImages(vk.Device, vk.Swapchain) ([]vk.Image, error) {
	images := make([]vk.Image, 0, f.images)
	for idx := uint32(0); idx < f.images; idx++ {
		images = append(images, vk.Image(f.object("SwapchainImage")))
	}
	return images, nil
}

func (f *fakeDriver) AcquireNextImage(vk.Device, vk.Swapchain, vk.Semaphore) (uint32, vk.Result) {
	f.record("AcquireNextImage")
	res := vk.Success
	if len(f.acquireResults) > 0 {
		res = f.acquireResults[0]
		f.acquireResults = f.acquireResults[1:]
	}
	index := f.nextImage % f.images
	f.nextImage++
	return index, res
}

func (f *fakeDriver) CreateImage(vk.Device, *vk.ImageCreateInfo) (vk.Image, error) {
	f.record("CreateImage")
	return vk.Image(f.object("Image")), nil
}

func (f *fakeDriver) DestroyImage(vk.Device, vk.Image) { f.destroy("Image") }

func (f *fakeDriver) ImageMemoryRequirements(vk.Device, vk.Image) vk.MemoryRequirements {
	return vk.MemoryRequirements{Size: 4096, Alignment: 256, MemoryTypeBits: 0x3}
}

func (f *fakeDriver) BindImageMemory(vk.Device, vk.Image, vk.DeviceMemory, vk.DeviceSize) error {
	return nil
}

func (f *fakeDriver) CreateImageView(vk.Device, *vk.ImageViewCreateInfo) (vk.ImageView, error) {
	f.record("CreateImageView")
	return vk.ImageView(f.object("ImageView")), nil
}

func (f *fakeDriver) DestroyImageView(vk.Device, vk.ImageView) { f.destroy("ImageView") }

func (f *fakeDriver) CreateBuffer(_ vk.Device, info *vk.BufferCreateInfo) (vk.Buffer, error) {
	f.record("CreateBuffer")
	buffer := vk.Buffer(f.object("Buffer"))
	f.buffers[buffer] = info.Size
	return buffer, nil
}

func (f *fakeDriver) DestroyBuffer(_ vk.Device, buffer vk.Buffer) {
	delete(f.buffers, buffer)
	f.destroy("Buffer")
}

func (f *fakeDriver) BufferMemoryRequirements(_ vk.Device, buffer vk.Buffer) vk.MemoryRequirements {
	return vk.MemoryRequirements{Size: f.buffers[buffer], Alignment: 256, MemoryTypeBits: 0x3}
}

func (f *fakeDriver) BindBufferMemory(vk.Device, vk.Buffer, vk.DeviceMemory, vk.DeviceSize) error {
	return nil
}

func (f *fakeDriver) AllocateMemory(_ vk.Device, info *vk.MemoryAllocateInfo) (vk.DeviceMemory, error) {
	f.record("AllocateMemory %d", info.MemoryTypeIndex)
	memory := vk.DeviceMemory(f.object("Memory"))
	f.memory[memory] = make([]byte, info.AllocationSize)
	return memory, nil
}

func (f *fakeDriver) FreeMemory(_ vk.Device, memory vk.DeviceMemory) {
	delete(f.memory, memory)
	f.destroy("Memory")
}

func (f *fakeDriver) MapMemory(_ vk.Device, memory vk.DeviceMemory, offset, size vk.DeviceSize) ([]byte, error) {
	data, ok := f.memory[memory]
	if !ok {
		return nil, gfx.Failuref("vk.MapMemory(): unknown memory")
	}
	return data[offset : offset+size], nil
}

func (f *fakeDriver) UnmapMemory(vk.Device, vk.DeviceMemory) {}

func (f *fakeDriver) CreateRenderPass(vk.Device, *vk.RenderPassCreateInfo) (vk.RenderPass, error) {
	f.record("CreateRenderPass")
	return vk.RenderPass(f.object("RenderPass")), nil
}

func (f *fakeDriver) DestroyRenderPass(vk.Device, vk.RenderPass) { f.destroy("RenderPass") }

func (f *fakeDriver) CreateFramebuffer(vk.Device, *vk.FramebufferCreateInfo) (vk.Framebuffer, error) {
	f.record("CreateFramebuffer")
	if f.failFramebuffer > 0 {
		f.failFramebuffer--
		if f.failFramebuffer == 0 {
			return nil, failed("vk.CreateFramebuffer()", vk.ErrorOutOfDeviceMemory)
		}
	}
	return vk.Framebuffer(f.object("Framebuffer")), nil
}

func (f *fakeDriver) DestroyFramebuffer(vk.Device, vk.Framebuffer) { f.destroy("Framebuffer") }

func (f *fakeDriver) CreateCommandPool(vk.Device, *vk.CommandPoolCreateInfo) (vk.CommandPool, error) {
	f.record("CreateCommandPool")
	return vk.CommandPool(f.object("CommandPool")), nil
}

func (f *fakeDriver) DestroyCommandPool(vk.Device, vk.CommandPool) { f.destroy("CommandPool") }

func (f *fakeDriver) AllocateCommandBuffers(_ vk.Device, info *vk.CommandBufferAllocateInfo) ([]vk.CommandBuffer, error) {
	f.record("AllocateCommandBuffers %d", info.CommandBufferCount)
	buffers := make([]vk.CommandBuffer, 0, info.CommandBufferCount)
	for idx := uint32(0); idx < info.CommandBufferCount; idx++ {
		buffers = append(buffers, vk.CommandBuffer(f.object("CommandBuffer")))
	}
	return buffers, nil
}

func (f *fakeDriver) FreeCommandBuffers(_ vk.Device, _ vk.CommandPool, buffers []vk.CommandBuffer) {
	f.record("FreeCommandBuffers %d", len(buffers))
	f.live["CommandBuffer"] -= len(buffers)
}

func (f *fakeDriver) CreateSemaphore(vk.Device) (vk.Semaphore, error) {
	return vk.Semaphore(f.object("Semaphore")), nil
}

func (f *fakeDriver) DestroySemaphore(vk.Device, vk.Semaphore) { f.destroy("Semaphore") }

func (f *fakeDriver) CreateFence(vk.Device, *vk.FenceCreateInfo) (vk.Fence, error) {
	return vk.Fence(f.object("Fence")), nil
}

func (f *fakeDriver) DestroyFence(vk.Device, vk.Fence) { f.destroy("Fence") }

func (f *fakeDriver) WaitForFence(vk.Device, vk.Fence) error {
	f.record("WaitForFence")
	return nil
}

func (f *fakeDriver) ResetFence(vk.Device, vk.Fence) error {
	f.record("ResetFence")
	return nil
}

func (f *fakeDriver) CreateShaderModule(vk.Device, *vk.ShaderModuleCreateInfo) (vk.ShaderModule, error) {
	f.record("CreateShaderModule")
	return vk.ShaderModule(f.object("ShaderModule")), nil
}

func (f *fakeDriver) DestroyShaderModule(vk.Device, vk.ShaderModule) { f.destroy("ShaderModule") }

func (f *fakeDriver) CreateDescriptorSetLayout(vk.Device, *vk.DescriptorSetLayoutCreateInfo) (vk.DescriptorSetLayout, error) {
	f.record("CreateDescriptorSetLayout")
	return vk.DescriptorSetLayout(f.object("DescriptorSetLayout")), nil
}

func (f *fakeDriver) DestroyDescriptorSetLayout(vk.Device, vk.DescriptorSetLayout) {
	f.destroy("DescriptorSetLayout")
}

func (f *fakeDriver) CreateDescriptorPool(_ vk.Device, info *vk.DescriptorPoolCreateInfo) (vk.DescriptorPool, error) {
	f.record("CreateDescriptorPool")
	f.poolInfo = info
	return vk.DescriptorPool(f.object("DescriptorPool")), nil
}

func (f *fakeDriver) DestroyDescriptorPool(vk.Device, vk.DescriptorPool) { f.destroy("DescriptorPool") }

func (f *fakeDriver) AllocateDescriptorSet(vk.Device, vk.DescriptorPool, vk.DescriptorSetLayout) (vk.DescriptorSet, error) {
	f.record("AllocateDescriptorSet")
	return vk.DescriptorSet(f.object("DescriptorSet")), nil
}

func (f *fakeDriver) UpdateDescriptorSets(_ vk.Device, writes []vk.WriteDescriptorSet) {
	f.record("UpdateDescriptorSets")
	f.writes = writes
}

func (f *fakeDriver) CreatePipelineLayout(vk.Device, *vk.PipelineLayoutCreateInfo) (vk.PipelineLayout, error) {
	f.record("CreatePipelineLayout")
	return vk.PipelineLayout(f.object("PipelineLayout")), nil
}

func (f *fakeDriver) DestroyPipelineLayout(vk.Device, vk.PipelineLayout) { f.destroy("PipelineLayout") }

func (f *fakeDriver) CreateGraphicsPipeline(_ vk.Device, info *vk.GraphicsPipelineCreateInfo) (vk.Pipeline, error) {
	f.record("CreateGraphicsPipeline")
	f.pipelineInfo = info
	if f.failPipeline {
		return nil, gfx.Failuref("vk.CreateGraphicsPipelines(): ErrorInvalidShader")
	}
	return vk.Pipeline(f.object("Pipeline")), nil
}

func (f *fakeDriver) DestroyPipeline(vk.Device, vk.Pipeline) { f.destroy("Pipeline") }

func (f *fakeDriver) CreateSampler(_ vk.Device, info *vk.SamplerCreateInfo) (vk.Sampler, error) {
	f.record("CreateSampler")
	f.samplerInfo = info
	return vk.Sampler(f.object("Sampler")), nil
}

func (f *fakeDriver) DestroySampler(vk.Device, vk.Sampler) { f.destroy("Sampler") }

func (f *fakeDriver) BeginCommandBuffer(vk.CommandBuffer, *vk.CommandBufferBeginInfo) error {
	f.record("BeginCommandBuffer")
	return nil
}

func (f *fakeDriver) EndCommandBuffer(vk.CommandBuffer) error {
	f.record("EndCommandBuffer")
	return nil
}

func (f *fakeDriver) ResetCommandBuffer(vk.CommandBuffer) error {
	f.record("ResetCommandBuffer")
	return nil
}

func (f *fakeDriver) CmdPipelineBarrier(_ vk.CommandBuffer, _, _ vk.PipelineStageFlags, barriers []vk.ImageMemoryBarrier) {
	f.record("CmdPipelineBarrier")
	f.barriers = append(f.barriers, barriers...)
}

func (f *fakeDriver) CmdCopyBuffer(vk.CommandBuffer, vk.Buffer, vk.Buffer, []vk.BufferCopy) {
	f.record("CmdCopyBuffer")
}

func (f *fakeDriver) CmdCopyBufferToImage(vk.CommandBuffer, vk.Buffer, vk.Image, vk.ImageLayout, []vk.BufferImageCopy) {
	f.record("CmdCopyBufferToImage")
}

func (f *fakeDriver) CmdBeginRenderPass(vk.CommandBuffer, *vk.RenderPassBeginInfo) {
	f.record("CmdBeginRenderPass")
}

func (f *fakeDriver) CmdEndRenderPass(vk.CommandBuffer) { f.record("CmdEndRenderPass") }

func (f *fakeDriver) CmdBindPipeline(vk.CommandBuffer, vk.Pipeline) { f.record("CmdBindPipeline") }

func (f *fakeDriver) CmdSetViewport(vk.CommandBuffer, vk.Viewport) { f.record("CmdSetViewport") }

func (f *fakeDriver) CmdSetScissor(vk.CommandBuffer, vk.Rect2D) { f.record("CmdSetScissor") }

func (f *fakeDriver) CmdBindVertexBuffer(vk.CommandBuffer, vk.Buffer, vk.DeviceSize) {
	f.record("CmdBindVertexBuffer")
}

func (f *fakeDriver) CmdBindIndexBuffer(_ vk.CommandBuffer, _ vk.Buffer, offset vk.DeviceSize) {
	f.record("CmdBindIndexBuffer %d", offset)
}

func (f *fakeDriver) CmdBindDescriptorSet(vk.CommandBuffer, vk.PipelineLayout, vk.DescriptorSet) {
	f.record("CmdBindDescriptorSet")
}

func (f *fakeDriver) CmdDraw(_ vk.CommandBuffer, vertexCount, instanceCount, _, firstInstance uint32) {
	f.record("CmdDraw %d %d %d", vertexCount, instanceCount, firstInstance)
}

func (f *fakeDriver) CmdDrawIndexed(_ vk.CommandBuffer, indexCount, instanceCount, _ uint32, _ int32, firstInstance uint32) {
	f.record("CmdDrawIndexed %d %d %d", indexCount, instanceCount, firstInstance)
}

func (f *fakeDriver) CmdSetStencilReference(_ vk.CommandBuffer, reference uint32) {
	f.record("CmdSetStencilReference %d", reference)
}

func (f *fakeDriver) CmdSetStencilCompareMask(_ vk.CommandBuffer, mask uint32) {
	f.record("CmdSetStencilCompareMask %#x", mask)
}

func (f *fakeDriver) CmdSetStencilWriteMask(_ vk.CommandBuffer, mask uint32) {
	f.record("CmdSetStencilWriteMask %#x", mask)
}

var _ Driver = (*fakeDriver)(nil)

// testWindow is a window whose size the test controls.
type testWindow struct {
	width, height int
	resized       bool
}

func (w *testWindow) CreateSurface(interface{}) (unsafe.Pointer, error) { return nil, nil }

func (w *testWindow) FramebufferSize() (int, int) { return w.width, w.height }

func (w *testWindow) ConsumeResize() bool {
	resized := w.resized
	w.resized = false
	return resized
}

func (w *testWindow) resize(width, height int) {
	w.width, w.height = width, height
	w.resized = true
}
