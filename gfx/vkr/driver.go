// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vkr

import (
	"unsafe"

	"github.com/devblok/korugfx/gfx"
	vk "github.com/devblok/vulkan"
)

// Driver is the set of native vulkan calls the renderer makes. Queries
// return dereferenced values and two-call enumerations are done inside,
// so callers never deal with counts. NativeDriver calls the real api.
type Driver interface {
	// Init loads the api, procAddr is the loader entry point provided
	// by the window system or nil for the default system loader.
	Init(procAddr unsafe.Pointer) error
	InitInstance(instance vk.Instance) error
	InstanceLayers() ([]string, error)
	CreateInstance(info *vk.InstanceCreateInfo) (vk.Instance, error)
	DestroyInstance(instance vk.Instance)
	CreateDebugReportCallback(instance vk.Instance, info *vk.DebugReportCallbackCreateInfo) (vk.DebugReportCallback, error)
	DestroyDebugReportCallback(instance vk.Instance, callback vk.DebugReportCallback)
	EnumeratePhysicalDevices(instance vk.Instance) ([]vk.PhysicalDevice, error)
	CreateWindowSurface(instance vk.Instance, w gfx.Window) (vk.Surface, error)
	DestroySurface(instance vk.Instance, surface vk.Surface)

	PhysicalDeviceProperties(pd vk.PhysicalDevice) vk.PhysicalDeviceProperties
	PhysicalDeviceFeatures(pd vk.PhysicalDevice) vk.PhysicalDeviceFeatures
	PhysicalDeviceMemoryProperties(pd vk.PhysicalDevice) vk.PhysicalDeviceMemoryProperties
	QueueFamilies(pd vk.PhysicalDevice) []vk.QueueFamilyProperties
	DeviceExtensions(pd vk.PhysicalDevice) ([]string, error)
	FormatProperties(pd vk.PhysicalDevice, format vk.Format) vk.FormatProperties
	SurfaceSupport(pd vk.PhysicalDevice, family uint32, surface vk.Surface) (bool, error)
	SurfaceCapabilities(pd vk.PhysicalDevice, surface vk.Surface) (vk.SurfaceCapabilities, error)
	SurfaceFormats(pd vk.PhysicalDevice, surface vk.Surface) ([]vk.SurfaceFormat, error)
	SurfacePresentModes(pd vk.PhysicalDevice, surface vk.Surface) ([]vk.PresentMode, error)

	CreateDevice(pd vk.PhysicalDevice, info *vk.DeviceCreateInfo) (vk.Device, error)
	DestroyDevice(dev vk.Device)
	DeviceQueue(dev vk.Device, family uint32) vk.Queue
	DeviceWaitIdle(dev vk.Device) error
	QueueWaitIdle(queue vk.Queue) error
	QueueSubmit(queue vk.Queue, submits []vk.SubmitInfo, fence vk.Fence) error
	QueuePresent(queue vk.Queue, info *vk.PresentInfo) vk.Result

	CreateSwapchain(dev vk.Device, info *vk.SwapchainCreateInfo) (vk.Swapchain, error)
	DestroySwapchain(dev vk.Device, swapchain vk.Swapchain)
	SwapchainImages(dev vk.Device, swapchain vk.Swapchain) ([]vk.Image, error)
	AcquireNextImage(dev vk.Device, swapchain vk.Swapchain, semaphore vk.Semaphore) (uint32, vk.Result)

	CreateImage(dev vk.Device, info *vk.ImageCreateInfo) (vk.Image, error)
	DestroyImage(dev vk.Device, image vk.Image)
	ImageMemoryRequirements(dev vk.Device, image vk.Image) vk.MemoryRequirements
	BindImageMemory(dev vk.Device, image vk.Image, memory vk.DeviceMemory, offset vk.DeviceSize) error
	CreateImageView(dev vk.Device, info *vk.ImageViewCreateInfo) (vk.ImageView, error)
	DestroyImageView(dev vk.Device, view vk.ImageView)

	CreateBuffer(dev vk.Device, info *vk.BufferCreateInfo) (vk.Buffer, error)
	DestroyBuffer(dev vk.Device, buffer vk.Buffer)
	BufferMemoryRequirements(dev vk.Device, buffer vk.Buffer) vk.MemoryRequirements
	BindBufferMemory(dev vk.Device, buffer vk.Buffer, memory vk.DeviceMemory, offset vk.DeviceSize) error

	AllocateMemory(dev vk.Device, info *vk.MemoryAllocateInfo) (vk.DeviceMemory, error)
	FreeMemory(dev vk.Device, memory vk.DeviceMemory)
	MapMemory(dev vk.Device, memory vk.DeviceMemory, offset, size vk.DeviceSize) ([]byte, error)
	UnmapMemory(dev vk.Device, memory vk.DeviceMemory)

	CreateRenderPass(dev vk.Device, info *vk.RenderPassCreateInfo) (vk.RenderPass, error)
	DestroyRenderPass(dev vk.Device, pass vk.RenderPass)
	CreateFramebuffer(dev vk.Device, info *vk.FramebufferCreateInfo) (vk.Framebuffer, error)
	DestroyFramebuffer(dev vk.Device, framebuffer vk.Framebuffer)

	CreateCommandPool(dev vk.Device, info *vk.CommandPoolCreateInfo) (vk.CommandPool, error)
	DestroyCommandPool(dev vk.Device, pool vk.CommandPool)
	AllocateCommandBuffers(dev vk.Device, info *vk.CommandBufferAllocateInfo) ([]vk.CommandBuffer, error)
	FreeCommandBuffers(dev vk.Device, pool vk.CommandPool, buffers []vk.CommandBuffer)

	CreateSemaphore(dev vk.Device) (vk.Semaphore, error)
	DestroySemaphore(dev vk.Device, semaphore vk.Semaphore)
	CreateFence(dev vk.Device, info *vk.FenceCreateInfo) (vk.Fence, error)
	DestroyFence(dev vk.Device, fence vk.Fence)
	WaitForFence(dev vk.Device, fence vk.Fence) error
	ResetFence(dev vk.Device, fence vk.Fence) error

	CreateShaderModule(dev vk.Device, info *vk.ShaderModuleCreateInfo) (vk.ShaderModule, error)
	DestroyShaderModule(dev vk.Device, module vk.ShaderModule)
	CreateDescriptorSetLayout(dev vk.Device, info *vk.DescriptorSetLayoutCreateInfo) (vk.DescriptorSetLayout, error)
	DestroyDescriptorSetLayout(dev vk.Device, layout vk.DescriptorSetLayout)
	CreateDescriptorPool(dev vk.Device, info *vk.DescriptorPoolCreateInfo) (vk.DescriptorPool, error)
	DestroyDescriptorPool(dev vk.Device, pool vk.DescriptorPool)
	AllocateDescriptorSet(dev vk.Device, pool vk.DescriptorPool, layout vk.DescriptorSetLayout) (vk.DescriptorSet, error)
	UpdateDescriptorSets(dev vk.Device, writes []vk.WriteDescriptorSet)
	CreatePipelineLayout(dev vk.Device, info *vk.PipelineLayoutCreateInfo) (vk.PipelineLayout, error)
	DestroyPipelineLayout(dev vk.Device, layout vk.PipelineLayout)
	CreateGraphicsPipeline(dev vk.Device, info *vk.GraphicsPipelineCreateInfo) (vk.Pipeline, error)
	DestroyPipeline(dev vk.Device, pipeline vk.Pipeline)
	CreateSampler(dev vk.Device, info *vk.SamplerCreateInfo) (vk.Sampler, error)
	DestroySampler(dev vk.Device, sampler vk.Sampler)

	BeginCommandBuffer(cmd vk.CommandBuffer, info *vk.CommandBufferBeginInfo) error
	EndCommandBuffer(cmd vk.CommandBuffer) error
	ResetCommandBuffer(cmd vk.CommandBuffer) error
	CmdPipelineBarrier(cmd vk.CommandBuffer, src, dst vk.PipelineStageFlags, barriers []vk.ImageMemoryBarrier)
	CmdCopyBuffer(cmd vk.CommandBuffer, src, dst vk.Buffer, regions []vk.BufferCopy)
	CmdCopyBufferToImage(cmd vk.CommandBuffer, src vk.Buffer, dst vk.Image, layout vk.ImageLayout, regions []vk.BufferImageCopy)
	CmdBeginRenderPass(cmd vk.CommandBuffer, info *vk.RenderPassBeginInfo)
	CmdEndRenderPass(cmd vk.CommandBuffer)
	CmdBindPipeline(cmd vk.CommandBuffer, pipeline vk.Pipeline)
	CmdSetViewport(cmd vk.CommandBuffer, viewport vk.Viewport)
	CmdSetScissor(cmd vk.CommandBuffer, scissor vk.Rect2D)
	CmdBindVertexBuffer(cmd vk.CommandBuffer, buffer vk.Buffer, offset vk.DeviceSize)
	CmdBindIndexBuffer(cmd vk.CommandBuffer, buffer vk.Buffer, offset vk.DeviceSize)
	CmdBindDescriptorSet(cmd vk.CommandBuffer, layout vk.PipelineLayout, set vk.DescriptorSet)
	CmdDraw(cmd vk.CommandBuffer, vertexCount, instanceCount, firstVertex, firstInstance uint32)
	CmdDrawIndexed(cmd vk.CommandBuffer, indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32)
	CmdSetStencilReference(cmd vk.CommandBuffer, reference uint32)
	CmdSetStencilCompareMask(cmd vk.CommandBuffer, mask uint32)
	CmdSetStencilWriteMask(cmd vk.CommandBuffer, mask uint32)
}
