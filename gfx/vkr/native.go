// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vkr

import (
	"math"
	"unsafe"

	vk "github.com/devblok/vulkan"

	"github.com/devblok/korugfx/gfx"
)

// NativeDriver implements Driver with the vulkan loader.
type NativeDriver struct{}

var _ Driver = NativeDriver{}

type sliceHeader struct {
	Data uintptr
	Len  int
	Cap  int
}

// failed wraps the error of a non-success result. The vulkan error stays
// reachable with errors.Is and errors.Cause.
func failed(call string, res vk.Result) error {
	return gfx.Wrapf(vk.Error(res), "%s", call)
}

// Init implements Driver.
func (NativeDriver) Init(procAddr unsafe.Pointer) error {
	if procAddr == nil {
		if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
			return gfx.Wrapf(err, "vk.SetDefaultGetInstanceProcAddr()")
		}
	} else {
		vk.SetGetInstanceProcAddr(procAddr)
	}
	if err := vk.Init(); err != nil {
		return gfx.Wrapf(err, "vk.Init()")
	}
	return nil
}

// InitInstance implements Driver.
func (NativeDriver) InitInstance(instance vk.Instance) error {
	if err := vk.InitInstance(instance); err != nil {
		return gfx.Wrapf(err, "vk.InitInstance()")
	}
	return nil
}

// InstanceLayers implements Driver.
func (NativeDriver) InstanceLayers() ([]string, error) {
	var count uint32
	if err := failed("vk.EnumerateInstanceLayerProperties()", vk.EnumerateInstanceLayerProperties(&count, nil)); err != nil {
		return nil, err
	}
	props := make([]vk.LayerProperties, count)
	if err := failed("vk.EnumerateInstanceLayerProperties()", vk.EnumerateInstanceLayerProperties(&count, props)); err != nil {
		return nil, err
	}
	layers := make([]string, 0, count)
	for idx := range props[:count] {
		props[idx].Deref()
		layers = append(layers, vk.ToString(props[idx].LayerName[:]))
	}
	return layers, nil
}

// CreateInstance implements Driver.
func (NativeDriver) CreateInstance(info *vk.InstanceCreateInfo) (vk.Instance, error) {
	var instance vk.Instance
	return instance, failed("vk.CreateInstance()", vk.CreateInstance(info, nil, &instance))
}

// DestroyInstance implements Driver.
func (NativeDriver) DestroyInstance(instance vk.Instance) {
	vk.DestroyInstance(instance, nil)
}

// CreateDebugReportCallback implements Driver.
func (NativeDriver) CreateDebugReportCallback(instance vk.Instance, info *vk.DebugReportCallbackCreateInfo) (vk.DebugReportCallback, error) {
	var callback vk.DebugReportCallback
	return callback, failed("vk.CreateDebugReportCallback()", vk.CreateDebugReportCallback(instance, info, nil, &callback))
}

// DestroyDebugReportCallback implements Driver.
func (NativeDriver) DestroyDebugReportCallback(instance vk.Instance, callback vk.DebugReportCallback) {
	vk.DestroyDebugReportCallback(instance, callback, nil)
}

// EnumeratePhysicalDevices implements Driver.
func (NativeDriver) EnumeratePhysicalDevices(instance vk.Instance) ([]vk.PhysicalDevice, error) {
	var count uint32
	if err := failed("vk.EnumeratePhysicalDevices()", vk.EnumeratePhysicalDevices(instance, &count, nil)); err != nil {
		return nil, err
	}
	devices := make([]vk.PhysicalDevice, count)
	if err := failed("vk.EnumeratePhysicalDevices()", vk.EnumeratePhysicalDevices(instance, &count, devices)); err != nil {
		return nil, err
	}
	return devices[:count], nil
}

// CreateWindowSurface implements Driver.
func (NativeDriver) CreateWindowSurface(instance vk.Instance, w gfx.Window) (vk.Surface, error) {
	ptr, err := w.CreateSurface(instance)
	if err != nil {
		return vk.NullSurface, gfx.Wrapf(err, "CreateSurface()")
	}
	return vk.SurfaceFromPointer(uintptr(ptr)), nil
}

// DestroySurface implements Driver.
func (NativeDriver) DestroySurface(instance vk.Instance, surface vk.Surface) {
	vk.DestroySurface(instance, surface, nil)
}

// PhysicalDeviceProperties implements Driver.
func (NativeDriver) PhysicalDeviceProperties(pd vk.PhysicalDevice) vk.PhysicalDeviceProperties {
	var props vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(pd, &props)
	props.Deref()
	props.Limits.Deref()
	return props
}

// PhysicalDeviceFeatures implements Driver.
func (NativeDriver) PhysicalDeviceFeatures(pd vk.PhysicalDevice) vk.PhysicalDeviceFeatures {
	var features vk.PhysicalDeviceFeatures
	vk.GetPhysicalDeviceFeatures(pd, &features)
	features.Deref()
	return features
}

// PhysicalDeviceMemoryProperties implements Driver.
func (NativeDriver) PhysicalDeviceMemoryProperties(pd vk.PhysicalDevice) vk.PhysicalDeviceMemoryProperties {
	var props vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(pd, &props)
	props.Deref()
	for idx := uint32(0); idx < props.MemoryTypeCount; idx++ {
		props.MemoryTypes[idx].Deref()
	}
	for idx := uint32(0); idx < props.MemoryHeapCount; idx++ {
		props.MemoryHeaps[idx].Deref()
	}
	return props
}

// QueueFamilies implements Driver.
func (NativeDriver) QueueFamilies(pd vk.PhysicalDevice) []vk.QueueFamilyProperties {
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(pd, &count, nil)
	families := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(pd, &count, families)
	for idx := range families {
		families[idx].Deref()
	}
	return families
}

// DeviceExtensions implements Driver.
func (NativeDriver) DeviceExtensions(pd vk.PhysicalDevice) ([]string, error) {
	var count uint32
	if err := failed("vk.EnumerateDeviceExtensionProperties()", vk.EnumerateDeviceExtensionProperties(pd, "", &count, nil)); err != nil {
		return nil, err
	}
	props := make([]vk.ExtensionProperties, count)
	if err := failed("vk.EnumerateDeviceExtensionProperties()", vk.EnumerateDeviceExtensionProperties(pd, "", &count, props)); err != nil {
		return nil, err
	}
	extensions := make([]string, 0, count)
	for idx := range props[:count] {
		props[idx].Deref()
		extensions = append(extensions, vk.ToString(props[idx].ExtensionName[:]))
	}
	return extensions, nil
}

// FormatProperties implements Driver.
func (NativeDriver) FormatProperties(pd vk.PhysicalDevice, format vk.Format) vk.FormatProperties {
	var props vk.FormatProperties
	vk.GetPhysicalDeviceFormatProperties(pd, format, &props)
	props.Deref()
	return props
}

// SurfaceSupport implements Driver.
func (NativeDriver) SurfaceSupport(pd vk.PhysicalDevice, family uint32, surface vk.Surface) (bool, error) {
	var supported vk.Bool32
	if err := failed("vk.GetPhysicalDeviceSurfaceSupport()", vk.GetPhysicalDeviceSurfaceSupport(pd, family, surface, &supported)); err != nil {
		return false, err
	}
	return supported.B(), nil
}

// SurfaceCapabilities implements Driver.
func (NativeDriver) SurfaceCapabilities(pd vk.PhysicalDevice, surface vk.Surface) (vk.SurfaceCapabilities, error) {
	var caps vk.SurfaceCapabilities
	if err := failed("vk.GetPhysicalDeviceSurfaceCapabilities()", vk.GetPhysicalDeviceSurfaceCapabilities(pd, surface, &caps)); err != nil {
		return caps, err
	}
	caps.Deref()
	caps.CurrentExtent.Deref()
	caps.MinImageExtent.Deref()
	caps.MaxImageExtent.Deref()
	return caps, nil
}

// SurfaceFormats implements Driver.
func (NativeDriver) SurfaceFormats(pd vk.PhysicalDevice, surface vk.Surface) ([]vk.SurfaceFormat, error) {
	var count uint32
	if err := failed("vk.GetPhysicalDeviceSurfaceFormats()", vk.GetPhysicalDeviceSurfaceFormats(pd, surface, &count, nil)); err != nil {
		return nil, err
	}
	formats := make([]vk.SurfaceFormat, count)
	if err := failed("vk.GetPhysicalDeviceSurfaceFormats()", vk.GetPhysicalDeviceSurfaceFormats(pd, surface, &count, formats)); err != nil {
		return nil, err
	}
	for idx := range formats[:count] {
		formats[idx].Deref()
	}
	return formats[:count], nil
}

// SurfacePresentModes implements Driver.
func (NativeDriver) SurfacePresentModes(pd vk.PhysicalDevice, surface vk.Surface) ([]vk.PresentMode, error) {
	var count uint32
	if err := failed("vk.GetPhysicalDeviceSurfacePresentModes()", vk.GetPhysicalDeviceSurfacePresentModes(pd, surface, &count, nil)); err != nil {
		return nil, err
	}
	modes := make([]vk.PresentMode, count)
	if err := failed("vk.GetPhysicalDeviceSurfacePresentModes()", vk.GetPhysicalDeviceSurfacePresentModes(pd, surface, &count, modes)); err != nil {
		return nil, err
	}
	return modes[:count], nil
}

// CreateDevice implements Driver.
func (NativeDriver) CreateDevice(pd vk.PhysicalDevice, info *vk.DeviceCreateInfo) (vk.Device, error) {
	var dev vk.Device
	return dev, failed("vk.CreateDevice()", vk.CreateDevice(pd, info, nil, &dev))
}

// DestroyDevice implements Driver.
func (NativeDriver) DestroyDevice(dev vk.Device) {
	vk.DestroyDevice(dev, nil)
}

// DeviceQueue implements Driver.
func (NativeDriver) DeviceQueue(dev vk.Device, family uint32) vk.Queue {
	var queue vk.Queue
	vk.GetDeviceQueue(dev, family, 0, &queue)
	return queue
}

// DeviceWaitIdle implements Driver.
func (NativeDriver) DeviceWaitIdle(dev vk.Device) error {
	return failed("vk.DeviceWaitIdle()", vk.DeviceWaitIdle(dev))
}

// QueueWaitIdle implements Driver.
func (NativeDriver) QueueWaitIdle(queue vk.Queue) error {
	return failed("vk.QueueWaitIdle()", vk.QueueWaitIdle(queue))
}

// QueueSubmit implements Driver.
func (NativeDriver) QueueSubmit(queue vk.Queue, submits []vk.SubmitInfo, fence vk.Fence) error {
	return failed("vk.QueueSubmit()", vk.QueueSubmit(queue, uint32(len(submits)), submits, fence))
}

// QueuePresent implements Driver.
func (NativeDriver) QueuePresent(queue vk.Queue, info *vk.PresentInfo) vk.Result {
	return vk.QueuePresent(queue, info)
}

// CreateSwapchain implements Driver.
func (NativeDriver) CreateSwapchain(dev vk.Device, info *vk.SwapchainCreateInfo) (vk.Swapchain, error) {
	var swapchain vk.Swapchain
	return swapchain, failed("vk.CreateSwapchain()", vk.CreateSwapchain(dev, info, nil, &swapchain))
}

// DestroySwapchain implements Driver.
func (NativeDriver) DestroySwapchain(dev vk.Device, swapchain vk.Swapchain) {
	vk.DestroySwapchain(dev, swapchain, nil)
}

// SwapchainImages implements Driver.
func (NativeDriver) SwapchainImages(dev vk.Device, swapchain vk.Swapchain) ([]vk.Image, error) {
	var count uint32
	if err := failed("vk.GetSwapchainImages()", vk.GetSwapchainImages(dev, swapchain, &count, nil)); err != nil {
		return nil, err
	}
	images := make([]vk.Image, count)
	if err := failed("vk.GetSwapchainImages()", vk.GetSwapchainImages(dev, swapchain, &count, images)); err != nil {
		return nil, err
	}
	return images[:count], nil
}

// AcquireNextImage implements Driver.
func (NativeDriver) AcquireNextImage(dev vk.Device, swapchain vk.Swapchain, semaphore vk.Semaphore) (uint32, vk.Result) {
	var index uint32
	res := vk.AcquireNextImage(dev, swapchain, math.MaxUint64, semaphore, nil, &index)
	return index, res
}

// CreateImage implements Driver.
func (NativeDriver) CreateImage(dev vk.Device, info *vk.ImageCreateInfo) (vk.Image, error) {
	var image vk.Image
	return image, failed("vk.CreateImage()", vk.CreateImage(dev, info, nil, &image))
}

// DestroyImage implements Driver.
func (NativeDriver) DestroyImage(dev vk.Device, image vk.Image) {
	vk.DestroyImage(dev, image, nil)
}

// ImageMemoryRequirements implements Driver.
func (NativeDriver) ImageMemoryRequirements(dev vk.Device, image vk.Image) vk.MemoryRequirements {
	var req vk.MemoryRequirements
	vk.GetImageMemoryRequirements(dev, image, &req)
	req.Deref()
	return req
}

// BindImageMemory implements Driver.
func (NativeDriver) BindImageMemory(dev vk.Device, image vk.Image, memory vk.DeviceMemory, offset vk.DeviceSize) error {
	return failed("vk.BindImageMemory()", vk.BindImageMemory(dev, image, memory, offset))
}

// CreateImageView implements Driver.
func (NativeDriver) CreateImageView(dev vk.Device, info *vk.ImageViewCreateInfo) (vk.ImageView, error) {
	var view vk.ImageView
	return view, failed("vk.CreateImageView()", vk.CreateImageView(dev, info, nil, &view))
}

// DestroyImageView implements Driver.
func (NativeDriver) DestroyImageView(dev vk.Device, view vk.ImageView) {
	vk.DestroyImageView(dev, view, nil)
}

// CreateBuffer implements Driver.
func (NativeDriver) CreateBuffer(dev vk.Device, info *vk.BufferCreateInfo) (vk.Buffer, error) {
	var buffer vk.Buffer
	return buffer, failed("vk.CreateBuffer()", vk.CreateBuffer(dev, info, nil, &buffer))
}

// DestroyBuffer implements Driver.
func (NativeDriver) DestroyBuffer(dev vk.Device, buffer vk.Buffer) {
	vk.DestroyBuffer(dev, buffer, nil)
}

// BufferMemoryRequirements implements Driver.
func (NativeDriver) BufferMemoryRequirements(dev vk.Device, buffer vk.Buffer) vk.MemoryRequirements {
	var req vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(dev, buffer, &req)
	req.Deref()
	return req
}

// BindBufferMemory implements Driver.
func (NativeDriver) BindBufferMemory(dev vk.Device, buffer vk.Buffer, memory vk.DeviceMemory, offset vk.DeviceSize) error {
	return failed("vk.BindBufferMemory()", vk.BindBufferMemory(dev, buffer, memory, offset))
}

// AllocateMemory implements Driver.
func (NativeDriver) AllocateMemory(dev vk.Device, info *vk.MemoryAllocateInfo) (vk.DeviceMemory, error) {
	var memory vk.DeviceMemory
	return memory, failed("vk.AllocateMemory()", vk.AllocateMemory(dev, info, nil, &memory))
}

// FreeMemory implements Driver.
func (NativeDriver) FreeMemory(dev vk.Device, memory vk.DeviceMemory) {
	vk.FreeMemory(dev, memory, nil)
}

// MapMemory implements Driver. The returned slice aliases the mapping
// and must not be used after UnmapMemory.
func (NativeDriver) MapMemory(dev vk.Device, memory vk.DeviceMemory, offset, size vk.DeviceSize) ([]byte, error) {
	var mapped unsafe.Pointer
	if err := failed("vk.MapMemory()", vk.MapMemory(dev, memory, offset, size, 0, &mapped)); err != nil {
		return nil, err
	}
	return *(*[]byte)(unsafe.Pointer(&sliceHeader{
		Data: uintptr(mapped),
		Len:  int(size),
		Cap:  int(size),
	})), nil
}

// UnmapMemory implements Driver.
func (NativeDriver) UnmapMemory(dev vk.Device, memory vk.DeviceMemory) {
	vk.UnmapMemory(dev, memory)
}

// CreateRenderPass implements Driver.
func (NativeDriver) CreateRenderPass(dev vk.Device, info *vk.RenderPassCreateInfo) (vk.RenderPass, error) {
	var pass vk.RenderPass
	return pass, failed("vk.CreateRenderPass()", vk.CreateRenderPass(dev, info, nil, &pass))
}

// DestroyRenderPass implements Driver.
func (NativeDriver) DestroyRenderPass(dev vk.Device, pass vk.RenderPass) {
	vk.DestroyRenderPass(dev, pass, nil)
}

// CreateFramebuffer implements Driver.
func (NativeDriver) CreateFramebuffer(dev vk.Device, info *vk.FramebufferCreateInfo) (vk.Framebuffer, error) {
	var framebuffer vk.Framebuffer
	return framebuffer, failed("vk.CreateFramebuffer()", vk.CreateFramebuffer(dev, info, nil, &framebuffer))
}

// DestroyFramebuffer implements Driver.
func (NativeDriver) DestroyFramebuffer(dev vk.Device, framebuffer vk.Framebuffer) {
	vk.DestroyFramebuffer(dev, framebuffer, nil)
}

// CreateCommandPool implements Driver.
func (NativeDriver) CreateCommandPool(dev vk.Device, info *vk.CommandPoolCreateInfo) (vk.CommandPool, error) {
	var pool vk.CommandPool
	return pool, failed("vk.CreateCommandPool()", vk.CreateCommandPool(dev, info, nil, &pool))
}

// DestroyCommandPool implements Driver.
func (NativeDriver) DestroyCommandPool(dev vk.Device, pool vk.CommandPool) {
	vk.DestroyCommandPool(dev, pool, nil)
}

// AllocateCommandBuffers implements Driver.
func (NativeDriver) AllocateCommandBuffers(dev vk.Device, info *vk.CommandBufferAllocateInfo) ([]vk.CommandBuffer, error) {
	buffers := make([]vk.CommandBuffer, info.CommandBufferCount)
	if err := failed("vk.AllocateCommandBuffers()", vk.AllocateCommandBuffers(dev, info, buffers)); err != nil {
		return nil, err
	}
	return buffers, nil
}

// FreeCommandBuffers implements Driver.
func (NativeDriver) FreeCommandBuffers(dev vk.Device, pool vk.CommandPool, buffers []vk.CommandBuffer) {
	vk.FreeCommandBuffers(dev, pool, uint32(len(buffers)), buffers)
}

// CreateSemaphore implements Driver.
func (NativeDriver) CreateSemaphore(dev vk.Device) (vk.Semaphore, error) {
	var semaphore vk.Semaphore
	sci := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}
	return semaphore, failed("vk.CreateSemaphore()", vk.CreateSemaphore(dev, &sci, nil, &semaphore))
}

// DestroySemaphore implements Driver.
func (NativeDriver) DestroySemaphore(dev vk.Device, semaphore vk.Semaphore) {
	vk.DestroySemaphore(dev, semaphore, nil)
}

// CreateFence implements Driver.
func (NativeDriver) CreateFence(dev vk.Device, info *vk.FenceCreateInfo) (vk.Fence, error) {
	var fence vk.Fence
	return fence, failed("vk.CreateFence()", vk.CreateFence(dev, info, nil, &fence))
}

// DestroyFence implements Driver.
func (NativeDriver) DestroyFence(dev vk.Device, fence vk.Fence) {
	vk.DestroyFence(dev, fence, nil)
}

// WaitForFence implements Driver, it waits without a timeout.
func (NativeDriver) WaitForFence(dev vk.Device, fence vk.Fence) error {
	return failed("vk.WaitForFences()", vk.WaitForFences(dev, 1, []vk.Fence{fence}, vk.True, math.MaxUint64))
}

// ResetFence implements Driver.
func (NativeDriver) ResetFence(dev vk.Device, fence vk.Fence) error {
	return failed("vk.ResetFences()", vk.ResetFences(dev, 1, []vk.Fence{fence}))
}

// CreateShaderModule implements Driver.
func (NativeDriver) CreateShaderModule(dev vk.Device, info *vk.ShaderModuleCreateInfo) (vk.ShaderModule, error) {
	var module vk.ShaderModule
	return module, failed("vk.CreateShaderModule()", vk.CreateShaderModule(dev, info, nil, &module))
}

// DestroyShaderModule implements Driver.
func (NativeDriver) DestroyShaderModule(dev vk.Device, module vk.ShaderModule) {
	vk.DestroyShaderModule(dev, module, nil)
}

// CreateDescriptorSetLayout implements Driver.
func (NativeDriver) CreateDescriptorSetLayout(dev vk.Device, info *vk.DescriptorSetLayoutCreateInfo) (vk.DescriptorSetLayout, error) {
	var layout vk.DescriptorSetLayout
	return layout, failed("vk.CreateDescriptorSetLayout()", vk.CreateDescriptorSetLayout(dev, info, nil, &layout))
}

// DestroyDescriptorSetLayout implements Driver.
func (NativeDriver) DestroyDescriptorSetLayout(dev vk.Device, layout vk.DescriptorSetLayout) {
	vk.DestroyDescriptorSetLayout(dev, layout, nil)
}

// CreateDescriptorPool implements Driver.
func (NativeDriver) CreateDescriptorPool(dev vk.Device, info *vk.DescriptorPoolCreateInfo) (vk.DescriptorPool, error) {
	var pool vk.DescriptorPool
	return pool, failed("vk.CreateDescriptorPool()", vk.CreateDescriptorPool(dev, info, nil, &pool))
}

// DestroyDescriptorPool implements Driver.
func (NativeDriver) DestroyDescriptorPool(dev vk.Device, pool vk.DescriptorPool) {
	vk.DestroyDescriptorPool(dev, pool, nil)
}

// AllocateDescriptorSet implements Driver.
func (NativeDriver) AllocateDescriptorSet(dev vk.Device, pool vk.DescriptorPool, layout vk.DescriptorSetLayout) (vk.DescriptorSet, error) {
	dsai := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     pool,
		DescriptorSetCount: 1,
		PSetLayouts:        []vk.DescriptorSetLayout{layout},
	}
	var set vk.DescriptorSet
	return set, failed("vk.AllocateDescriptorSets()", vk.AllocateDescriptorSets(dev, &dsai, &set))
}

// UpdateDescriptorSets implements Driver.
func (NativeDriver) UpdateDescriptorSets(dev vk.Device, writes []vk.WriteDescriptorSet) {
	vk.UpdateDescriptorSets(dev, uint32(len(writes)), writes, 0, nil)
}

// CreatePipelineLayout implements Driver.
func (NativeDriver) CreatePipelineLayout(dev vk.Device, info *vk.PipelineLayoutCreateInfo) (vk.PipelineLayout, error) {
	var layout vk.PipelineLayout
	return layout, failed("vk.CreatePipelineLayout()", vk.CreatePipelineLayout(dev, info, nil, &layout))
}

// DestroyPipelineLayout implements Driver.
func (NativeDriver) DestroyPipelineLayout(dev vk.Device, layout vk.PipelineLayout) {
	vk.DestroyPipelineLayout(dev, layout, nil)
}

// CreateGraphicsPipeline implements Driver.
func (NativeDriver) CreateGraphicsPipeline(dev vk.Device, info *vk.GraphicsPipelineCreateInfo) (vk.Pipeline, error) {
	pipelines := make([]vk.Pipeline, 1)
	if err := failed("vk.CreateGraphicsPipelines()", vk.CreateGraphicsPipelines(dev, nil, 1, []vk.GraphicsPipelineCreateInfo{*info}, nil, pipelines)); err != nil {
		return nil, err
	}
	return pipelines[0], nil
}

// DestroyPipeline implements Driver.
func (NativeDriver) DestroyPipeline(dev vk.Device, pipeline vk.Pipeline) {
	vk.DestroyPipeline(dev, pipeline, nil)
}

// CreateSampler implements Driver.
func (NativeDriver) CreateSampler(dev vk.Device, info *vk.SamplerCreateInfo) (vk.Sampler, error) {
	var sampler vk.Sampler
	return sampler, failed("vk.CreateSampler()", vk.CreateSampler(dev, info, nil, &sampler))
}

// DestroySampler implements Driver.
func (NativeDriver) DestroySampler(dev vk.Device, sampler vk.Sampler) {
	vk.DestroySampler(dev, sampler, nil)
}

// BeginCommandBuffer implements Driver.
func (NativeDriver) BeginCommandBuffer(cmd vk.CommandBuffer, info *vk.CommandBufferBeginInfo) error {
	return failed("vk.BeginCommandBuffer()", vk.BeginCommandBuffer(cmd, info))
}

// EndCommandBuffer implements Driver.
func (NativeDriver) EndCommandBuffer(cmd vk.CommandBuffer) error {
	return failed("vk.EndCommandBuffer()", vk.EndCommandBuffer(cmd))
}

// ResetCommandBuffer implements Driver.
func (NativeDriver) ResetCommandBuffer(cmd vk.CommandBuffer) error {
	return failed("vk.ResetCommandBuffer()", vk.ResetCommandBuffer(cmd, 0))
}

// CmdPipelineBarrier implements Driver.
func (NativeDriver) CmdPipelineBarrier(cmd vk.CommandBuffer, src, dst vk.PipelineStageFlags, barriers []vk.ImageMemoryBarrier) {
	vk.CmdPipelineBarrier(cmd, src, dst, 0, 0, nil, 0, nil, uint32(len(barriers)), barriers)
}

// CmdCopyBuffer implements Driver.
func (NativeDriver) CmdCopyBuffer(cmd vk.CommandBuffer, src, dst vk.Buffer, regions []vk.BufferCopy) {
	vk.CmdCopyBuffer(cmd, src, dst, uint32(len(regions)), regions)
}

// CmdCopyBufferToImage implements Driver.
func (NativeDriver) CmdCopyBufferToImage(cmd vk.CommandBuffer, src vk.Buffer, dst vk.Image, layout vk.ImageLayout, regions []vk.BufferImageCopy) {
	vk.CmdCopyBufferToImage(cmd, src, dst, layout, uint32(len(regions)), regions)
}

// CmdBeginRenderPass implements Driver.
func (NativeDriver) CmdBeginRenderPass(cmd vk.CommandBuffer, info *vk.RenderPassBeginInfo) {
	vk.CmdBeginRenderPass(cmd, info, vk.SubpassContentsInline)
}

// CmdEndRenderPass implements Driver.
func (NativeDriver) CmdEndRenderPass(cmd vk.CommandBuffer) {
	vk.CmdEndRenderPass(cmd)
}

// CmdBindPipeline implements Driver.
func (NativeDriver) CmdBindPipeline(cmd vk.CommandBuffer, pipeline vk.Pipeline) {
	vk.CmdBindPipeline(cmd, vk.PipelineBindPointGraphics, pipeline)
}

// CmdSetViewport implements Driver.
func (NativeDriver) CmdSetViewport(cmd vk.CommandBuffer, viewport vk.Viewport) {
	vk.CmdSetViewport(cmd, 0, 1, []vk.Viewport{viewport})
}

// CmdSetScissor implements Driver.
func (NativeDriver) CmdSetScissor(cmd vk.CommandBuffer, scissor vk.Rect2D) {
	vk.CmdSetScissor(cmd, 0, 1, []vk.Rect2D{scissor})
}

// CmdBindVertexBuffer implements Driver.
func (NativeDriver) CmdBindVertexBuffer(cmd vk.CommandBuffer, buffer vk.Buffer, offset vk.DeviceSize) {
	vk.CmdBindVertexBuffers(cmd, 0, 1, []vk.Buffer{buffer}, []vk.DeviceSize{offset})
}

// CmdBindIndexBuffer implements Driver, indices are 32 bit.
func (NativeDriver) CmdBindIndexBuffer(cmd vk.CommandBuffer, buffer vk.Buffer, offset vk.DeviceSize) {
	vk.CmdBindIndexBuffer(cmd, buffer, offset, vk.IndexTypeUint32)
}

// CmdBindDescriptorSet implements Driver.
func (NativeDriver) CmdBindDescriptorSet(cmd vk.CommandBuffer, layout vk.PipelineLayout, set vk.DescriptorSet) {
	vk.CmdBindDescriptorSets(cmd, vk.PipelineBindPointGraphics, layout, 0, 1, []vk.DescriptorSet{set}, 0, nil)
}

// CmdDraw implements Driver.
func (NativeDriver) CmdDraw(cmd vk.CommandBuffer, vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	vk.CmdDraw(cmd, vertexCount, instanceCount, firstVertex, firstInstance)
}

// CmdDrawIndexed implements Driver.
func (NativeDriver) CmdDrawIndexed(cmd vk.CommandBuffer, indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	vk.CmdDrawIndexed(cmd, indexCount, instanceCount, firstIndex, vertexOffset, firstInstance)
}

// CmdSetStencilReference implements Driver.
func (NativeDriver) CmdSetStencilReference(cmd vk.CommandBuffer, reference uint32) {
	vk.CmdSetStencilReference(cmd, vk.StencilFaceFlags(vk.StencilFrontAndBack), reference)
}

// CmdSetStencilCompareMask implements Driver.
func (NativeDriver) CmdSetStencilCompareMask(cmd vk.CommandBuffer, mask uint32) {
	vk.CmdSetStencilCompareMask(cmd, vk.StencilFaceFlags(vk.StencilFrontAndBack), mask)
}

// CmdSetStencilWriteMask implements Driver.
func (NativeDriver) CmdSetStencilWriteMask(cmd vk.CommandBuffer, mask uint32) {
	vk.CmdSetStencilWriteMask(cmd, vk.StencilFaceFlags(vk.StencilFrontAndBack), mask)
}
