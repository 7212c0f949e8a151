// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vkr

import (
	vk "github.com/devblok/vulkan"
	log "github.com/sirupsen/logrus"

	"github.com/devblok/korugfx/gfx"
)

// SurfaceState is the lifecycle state of a window surface.
type SurfaceState int

// Surface states
const (
	SurfaceUninitialized SurfaceState = iota
	SurfaceReady
	SurfaceInvalidated
	SurfaceFailed
	SurfaceDestroyed
)

func (s SurfaceState) String() string {
	switch s {
	case SurfaceUninitialized:
		return "uninitialized"
	case SurfaceReady:
		return "ready"
	case SurfaceInvalidated:
		return "invalidated"
	case SurfaceFailed:
		return "failed"
	case SurfaceDestroyed:
		return "destroyed"
	}
	return "unknown"
}

// frameSync is the synchronisation of one frame slot.
type frameSync struct {
	imageAvailable vk.Semaphore
	renderFinished vk.Semaphore
	inFlight       vk.Fence
}

// Surface is a window's swapchain together with the per frame slot
// command buffers and synchronisation used to draw into it.
type Surface struct {
	dc     *DeviceContext
	window gfx.Window
	state  SurfaceState

	surface     vk.Surface
	format      vk.SurfaceFormat
	presentMode vk.PresentMode
	depthFormat vk.Format
	renderPass  vk.RenderPass

	// Size dependent, recreated on rebuild.
	extent       vk.Extent2D
	swapchain    vk.Swapchain
	images       []vk.Image
	views        []vk.ImageView
	depth        *Image
	framebuffers []vk.Framebuffer

	commandBuffers []vk.CommandBuffer
	sync           []frameSync

	frame      uint32
	imageIndex uint32
	acquired   bool
	clearColor gfx.Color
	rebuilds   int
}

func newSurface(dc *DeviceContext, window gfx.Window) (*Surface, error) {
	s := &Surface{
		dc:         dc,
		window:     window,
		clearColor: gfx.Color{A: 1},
	}
	if err := s.create(); err != nil {
		s.destroy()
		return nil, err
	}
	return s, nil
}

// State returns the lifecycle state.
func (s *Surface) State() SurfaceState {
	return s.state
}

// Extent returns the current swapchain image size.
func (s *Surface) Extent() gfx.Extent2D {
	return gfx.Extent2D{Width: s.extent.Width, Height: s.extent.Height}
}

func (s *Surface) create() error {
	dc := s.dc
	surface, err := dc.driver.CreateWindowSurface(dc.instance, s.window)
	if err != nil {
		return err
	}
	s.surface = surface

	supported, err := dc.driver.SurfaceSupport(dc.physicalDevice, dc.presentFamily, surface)
	if err != nil {
		return err
	}
	if !supported {
		return gfx.Failuref("vk.GetPhysicalDeviceSurfaceSupport(): queue family %d can not present to the surface", dc.presentFamily)
	}

	caps, err := s.negotiate()
	if err != nil {
		return err
	}

	if s.depthFormat, err = dc.depthFormat(); err != nil {
		return err
	}
	if s.renderPass, err = windowRenderPass(dc, s.format.Format, s.depthFormat); err != nil {
		return err
	}

	if err := s.createFrames(); err != nil {
		return err
	}

	if width, height := s.window.FramebufferSize(); width == 0 || height == 0 {
		s.state = SurfaceInvalidated
		return nil
	}
	if err := s.createSwapchain(caps); err != nil {
		return err
	}
	s.state = SurfaceReady
	return nil
}

// negotiate picks the surface format and present mode and returns the
// current surface capabilities.
func (s *Surface) negotiate() (vk.SurfaceCapabilities, error) {
	dc := s.dc
	formats, err := dc.driver.SurfaceFormats(dc.physicalDevice, s.surface)
	if err != nil {
		return vk.SurfaceCapabilities{}, err
	}
	if len(formats) == 0 {
		return vk.SurfaceCapabilities{}, gfx.Failuref("vk.GetPhysicalDeviceSurfaceFormats(): no surface formats")
	}
	modes, err := dc.driver.SurfacePresentModes(dc.physicalDevice, s.surface)
	if err != nil {
		return vk.SurfaceCapabilities{}, err
	}
	if len(modes) == 0 {
		return vk.SurfaceCapabilities{}, gfx.Failuref("vk.GetPhysicalDeviceSurfacePresentModes(): no present modes")
	}
	caps, err := dc.driver.SurfaceCapabilities(dc.physicalDevice, s.surface)
	if err != nil {
		return vk.SurfaceCapabilities{}, err
	}

	// The render pass is built for the first format, rebuilds keep it.
	if s.renderPass == nil {
		s.format = chooseSurfaceFormat(formats)
	} else if !hasSurfaceFormat(formats, s.format) {
		logger.WithFields(log.Fields{
			"format":     s.format.Format,
			"colorSpace": s.format.ColorSpace,
		}).Error("surface no longer supports the swapchain format")
		return vk.SurfaceCapabilities{}, gfx.Failuref("vk.GetPhysicalDeviceSurfaceFormats(): format %d is no longer supported", s.format.Format)
	}
	s.presentMode = choosePresentMode(modes)
	return caps, nil
}

func hasSurfaceFormat(formats []vk.SurfaceFormat, format vk.SurfaceFormat) bool {
	for _, f := range formats {
		if f.Format == format.Format && f.ColorSpace == format.ColorSpace {
			return true
		}
	}
	return false
}

func chooseSurfaceFormat(formats []vk.SurfaceFormat) vk.SurfaceFormat {
	for _, f := range formats {
		if f.Format == vk.FormatB8g8r8a8Srgb && f.ColorSpace == vk.ColorSpaceSrgbNonlinear {
			return f
		}
	}
	return formats[0]
}

func choosePresentMode(modes []vk.PresentMode) vk.PresentMode {
	for _, m := range modes {
		if m == vk.PresentModeMailbox {
			return m
		}
	}
	return vk.PresentModeFifo
}

func chooseExtent(caps vk.SurfaceCapabilities, width, height int) vk.Extent2D {
	if caps.CurrentExtent.Width != vk.MaxUint32 {
		return caps.CurrentExtent
	}
	return vk.Extent2D{
		Width:  clamp(uint32(width), caps.MinImageExtent.Width, caps.MaxImageExtent.Width),
		Height: clamp(uint32(height), caps.MinImageExtent.Height, caps.MaxImageExtent.Height),
	}
}

func clamp(v, min, max uint32) uint32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func imageCount(caps vk.SurfaceCapabilities) uint32 {
	count := caps.MinImageCount + 1
	if caps.MaxImageCount > 0 && count > caps.MaxImageCount {
		count = caps.MaxImageCount
	}
	return count
}

func compositeAlpha(caps vk.SurfaceCapabilities) vk.CompositeAlphaFlagBits {
	for _, flag := range []vk.CompositeAlphaFlagBits{
		vk.CompositeAlphaOpaqueBit,
		vk.CompositeAlphaPreMultipliedBit,
		vk.CompositeAlphaPostMultipliedBit,
		vk.CompositeAlphaInheritBit,
	} {
		if caps.SupportedCompositeAlpha&vk.CompositeAlphaFlags(flag) != 0 {
			return flag
		}
	}
	return vk.CompositeAlphaOpaqueBit
}

// createSwapchain creates the swapchain and everything sized after it.
func (s *Surface) createSwapchain(caps vk.SurfaceCapabilities) error {
	dc := s.dc
	width, height := s.window.FramebufferSize()
	s.extent = chooseExtent(caps, width, height)

	info := vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          s.surface,
		MinImageCount:    imageCount(caps),
		ImageFormat:      s.format.Format,
		ImageColorSpace:  s.format.ColorSpace,
		ImageExtent:      s.extent,
		ImageArrayLayers: 1,
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		ImageSharingMode: vk.SharingModeExclusive,
		PreTransform:     caps.CurrentTransform,
		CompositeAlpha:   compositeAlpha(caps),
		PresentMode:      s.presentMode,
		Clipped:          vk.True,
	}
	if dc.graphicsFamily != dc.presentFamily {
		info.ImageSharingMode = vk.SharingModeConcurrent
		info.QueueFamilyIndexCount = 2
		info.PQueueFamilyIndices = []uint32{dc.graphicsFamily, dc.presentFamily}
	}

	swapchain, err := dc.driver.CreateSwapchain(dc.device, &info)
	if err != nil {
		return err
	}
	s.swapchain = swapchain

	if s.images, err = dc.driver.SwapchainImages(dc.device, swapchain); err != nil {
		return err
	}
	for idx, image := range s.images {
		view, err := createImageView(dc, image, s.format.Format, vk.ImageAspectFlags(vk.ImageAspectColorBit))
		if err != nil {
			return gfx.Wrapf(err, "swapchain image %d", idx)
		}
		s.views = append(s.views, view)
	}

	aspect := vk.ImageAspectDepthBit
	if hasStencil(s.depthFormat) {
		aspect |= vk.ImageAspectStencilBit
	}
	if s.depth, err = NewImage(dc, ImageInfo{
		Width:  s.extent.Width,
		Height: s.extent.Height,
		Format: s.depthFormat,
		Tiling: vk.ImageTilingOptimal,
		Usage:  vk.ImageUsageDepthStencilAttachmentBit,
		Aspect: aspect,
	}); err != nil {
		return err
	}
	if err := dc.transitionLayout(s.depth.Get(), s.depthFormat, vk.ImageLayoutUndefined, vk.ImageLayoutDepthStencilAttachmentOptimal); err != nil {
		return err
	}

	for _, view := range s.views {
		attachments := []vk.ImageView{view, s.depth.View()}
		framebuffer, err := dc.driver.CreateFramebuffer(dc.device, &vk.FramebufferCreateInfo{
			SType:           vk.StructureTypeFramebufferCreateInfo,
			RenderPass:      s.renderPass,
			AttachmentCount: uint32(len(attachments)),
			PAttachments:    attachments,
			Width:           s.extent.Width,
			Height:          s.extent.Height,
			Layers:          1,
		})
		if err != nil {
			return err
		}
		s.framebuffers = append(s.framebuffers, framebuffer)
	}

	logger.WithFields(map[string]interface{}{
		"width":  s.extent.Width,
		"height": s.extent.Height,
		"images": len(s.images),
	}).Debug("swapchain created")
	return nil
}

// createFrames allocates one command buffer and one sync triple per slot.
func (s *Surface) createFrames() error {
	dc := s.dc
	buffers, err := dc.driver.AllocateCommandBuffers(dc.device, &vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        dc.commandPool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: dc.maxFramesInFlight,
	})
	if err != nil {
		return err
	}
	s.commandBuffers = buffers

	for idx := uint32(0); idx < dc.maxFramesInFlight; idx++ {
		var sync frameSync
		if sync.imageAvailable, err = dc.driver.CreateSemaphore(dc.device); err != nil {
			return err
		}
		if sync.renderFinished, err = dc.driver.CreateSemaphore(dc.device); err != nil {
			dc.driver.DestroySemaphore(dc.device, sync.imageAvailable)
			return err
		}
		if sync.inFlight, err = dc.driver.CreateFence(dc.device, &vk.FenceCreateInfo{
			SType: vk.StructureTypeFenceCreateInfo,
			Flags: vk.FenceCreateFlags(vk.FenceCreateSignaledBit),
		}); err != nil {
			dc.driver.DestroySemaphore(dc.device, sync.imageAvailable)
			dc.driver.DestroySemaphore(dc.device, sync.renderFinished)
			return err
		}
		s.sync = append(s.sync, sync)
	}
	return nil
}

// rebuild recreates the size dependent objects. A window without area
// leaves the surface invalidated until an acquire sees a non-zero size.
// A failed rebuild leaves no size dependent objects and fails the surface.
func (s *Surface) rebuild() error {
	if width, height := s.window.FramebufferSize(); width == 0 || height == 0 {
		s.state = SurfaceInvalidated
		return nil
	}

	// The new swapchain follows the current size.
	s.window.ConsumeResize()
	s.dc.waitIdle()
	s.destroySwapchain()

	caps, err := s.negotiate()
	if err == nil {
		err = s.createSwapchain(caps)
	}
	if err != nil {
		s.destroySwapchain()
		return s.fail(err)
	}
	s.state = SurfaceReady
	s.rebuilds++
	return nil
}

// fail marks the surface unusable. Later acquires return ErrFailure
// until the surface is destroyed.
func (s *Surface) fail(err error) error {
	s.state = SurfaceFailed
	s.acquired = false
	logger.WithError(err).Error("window surface failed")
	return err
}

func (s *Surface) destroySwapchain() {
	dc := s.dc
	for _, framebuffer := range s.framebuffers {
		dc.driver.DestroyFramebuffer(dc.device, framebuffer)
	}
	s.framebuffers = nil
	if s.depth != nil {
		s.depth.Release()
		s.depth = nil
	}
	for _, view := range s.views {
		dc.driver.DestroyImageView(dc.device, view)
	}
	s.views = nil
	s.images = nil
	if s.swapchain != nil {
		dc.driver.DestroySwapchain(dc.device, s.swapchain)
		s.swapchain = nil
	}
}

// destroy releases everything the surface owns.
func (s *Surface) destroy() {
	if s.state == SurfaceDestroyed {
		return
	}
	dc := s.dc
	dc.waitIdle()
	s.destroySwapchain()

	if s.renderPass != nil {
		dc.driver.DestroyRenderPass(dc.device, s.renderPass)
		s.renderPass = nil
	}
	for _, sync := range s.sync {
		dc.driver.DestroySemaphore(dc.device, sync.imageAvailable)
		dc.driver.DestroySemaphore(dc.device, sync.renderFinished)
		dc.driver.DestroyFence(dc.device, sync.inFlight)
	}
	s.sync = nil
	if len(s.commandBuffers) > 0 {
		dc.driver.FreeCommandBuffers(dc.device, dc.commandPool, s.commandBuffers)
		s.commandBuffers = nil
	}
	if s.surface != nil {
		dc.driver.DestroySurface(dc.instance, s.surface)
		s.surface = nil
	}
	s.acquired = false
	s.state = SurfaceDestroyed
}
