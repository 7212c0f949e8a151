// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vkr

import (
	vk "github.com/devblok/vulkan"

	"github.com/devblok/korugfx/gfx"
)

// acquireNextFrame waits for the current slot and acquires a swapchain
// image. A window without area skips the frame without touching the device.
func (s *Surface) acquireNextFrame() error {
	s.acquired = false
	switch s.state {
	case SurfaceUninitialized, SurfaceFailed, SurfaceDestroyed:
		return gfx.Failuref("vk.AcquireNextImage(): surface is %s", s.state)
	}
	if width, height := s.window.FramebufferSize(); width == 0 || height == 0 {
		if s.state == SurfaceReady {
			s.state = SurfaceInvalidated
		}
		return nil
	}
	if s.state == SurfaceInvalidated {
		if err := s.rebuild(); err != nil {
			return err
		}
	}

	dc := s.dc
	sync := s.sync[s.frame]
	if err := dc.driver.WaitForFence(dc.device, sync.inFlight); err != nil {
		return err
	}

	index, res := dc.driver.AcquireNextImage(dc.device, s.swapchain, sync.imageAvailable)
	switch res {
	case vk.Success, vk.Suboptimal:
	case vk.ErrorOutOfDate:
		return s.rebuild()
	default:
		return unexpected("vk.AcquireNextImage()", res)
	}

	if err := dc.driver.ResetFence(dc.device, sync.inFlight); err != nil {
		return err
	}
	s.imageIndex = index
	s.acquired = true
	return nil
}

func (s *Surface) commandBuffer() vk.CommandBuffer {
	return s.commandBuffers[s.frame]
}

func (s *Surface) beginCommandRecording() error {
	if !s.acquired {
		return nil
	}
	cmd := s.commandBuffer()
	if err := s.dc.driver.ResetCommandBuffer(cmd); err != nil {
		return s.fail(err)
	}
	if err := s.dc.driver.BeginCommandBuffer(cmd, &vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	}); err != nil {
		return s.fail(err)
	}
	return nil
}

func (s *Surface) setClearColor(c gfx.Color) {
	s.clearColor = c
}

func (s *Surface) beginRenderPass() {
	if !s.acquired {
		return
	}
	cmd := s.commandBuffer()

	clearValues := make([]vk.ClearValue, 2)
	clearValues[0].SetColor([]float32{s.clearColor.R, s.clearColor.G, s.clearColor.B, s.clearColor.A})
	clearValues[1].SetDepthStencil(1, 0)

	area := vk.Rect2D{
		Offset: vk.Offset2D{X: 0, Y: 0},
		Extent: s.extent,
	}
	s.dc.driver.CmdBeginRenderPass(cmd, &vk.RenderPassBeginInfo{
		SType:           vk.StructureTypeRenderPassBeginInfo,
		RenderPass:      s.renderPass,
		Framebuffer:     s.framebuffers[s.imageIndex],
		RenderArea:      area,
		ClearValueCount: uint32(len(clearValues)),
		PClearValues:    clearValues,
	})
	s.dc.driver.CmdSetViewport(cmd, vk.Viewport{
		X:        0,
		Y:        0,
		Width:    float32(s.extent.Width),
		Height:   float32(s.extent.Height),
		MinDepth: 0,
		MaxDepth: 1,
	})
	s.dc.driver.CmdSetScissor(cmd, area)
}

func (s *Surface) bindPipeline(p *pipeline) {
	if !s.acquired {
		return
	}
	s.dc.driver.CmdBindPipeline(s.commandBuffer(), p.pipeline)
}

func (s *Surface) bindVertexBuffer(vb *vertexBuffer) {
	if !s.acquired {
		return
	}
	s.dc.driver.CmdBindVertexBuffer(s.commandBuffer(), vb.Get(), 0)
}

func (s *Surface) bindIndexBuffer(vb *vertexBuffer) {
	if !s.acquired {
		return
	}
	s.dc.driver.CmdBindIndexBuffer(s.commandBuffer(), vb.Get(), vb.indexOffset)
}

func (s *Surface) bindDescriptorSet(p *pipeline, dl *descriptorLayout) {
	if !s.acquired {
		return
	}
	s.dc.driver.CmdBindDescriptorSet(s.commandBuffer(), p.layout, dl.sets[s.frame])
}

func (s *Surface) draw(vertexCount, instanceCount, firstInstance uint32) {
	if !s.acquired {
		return
	}
	s.dc.driver.CmdDraw(s.commandBuffer(), vertexCount, instanceCount, 0, firstInstance)
}

func (s *Surface) drawIndexed(indexCount, instanceCount, firstInstance uint32) {
	if !s.acquired {
		return
	}
	s.dc.driver.CmdDrawIndexed(s.commandBuffer(), indexCount, instanceCount, 0, 0, firstInstance)
}

func (s *Surface) setStencilReference(reference uint32) {
	if !s.acquired {
		return
	}
	s.dc.driver.CmdSetStencilReference(s.commandBuffer(), reference)
}

func (s *Surface) setStencilMask(compareMask, writeMask uint32) {
	if !s.acquired {
		return
	}
	s.dc.driver.CmdSetStencilCompareMask(s.commandBuffer(), compareMask)
	s.dc.driver.CmdSetStencilWriteMask(s.commandBuffer(), writeMask)
}

func (s *Surface) endRenderPass() {
	if !s.acquired {
		return
	}
	s.dc.driver.CmdEndRenderPass(s.commandBuffer())
}

func (s *Surface) endCommandRecording() error {
	if !s.acquired {
		return nil
	}
	if err := s.dc.driver.EndCommandBuffer(s.commandBuffer()); err != nil {
		return s.fail(err)
	}
	return nil
}

// submitAndPresent submits the slot's commands, presents the acquired
// image and moves on to the next slot.
func (s *Surface) submitAndPresent() error {
	if !s.acquired {
		return nil
	}
	s.acquired = false
	dc := s.dc
	sync := s.sync[s.frame]

	submit := []vk.SubmitInfo{{
		SType:              vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{sync.imageAvailable},
		PWaitDstStageMask: []vk.PipelineStageFlags{
			vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		},
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{s.commandBuffer()},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{sync.renderFinished},
	}}
	// The slot fence was reset on acquire and stays unsignaled.
	if err := dc.driver.QueueSubmit(dc.graphicsQueue, submit, sync.inFlight); err != nil {
		return s.fail(err)
	}

	res := dc.driver.QueuePresent(dc.presentQueue, &vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{sync.renderFinished},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{s.swapchain},
		PImageIndices:      []uint32{s.imageIndex},
	})
	s.frame = (s.frame + 1) % uint32(len(s.sync))

	resized := s.window.ConsumeResize()
	switch {
	case res == vk.ErrorOutOfDate || res == vk.Suboptimal || resized:
		return s.rebuild()
	case res != vk.Success:
		return unexpected("vk.QueuePresent()", res)
	}
	return nil
}

// unexpected turns a result the frame loop does not handle into a failure.
func unexpected(call string, res vk.Result) error {
	if err := failed(call, res); err != nil {
		return err
	}
	return gfx.Failuref("%s: unexpected result %d", call, res)
}
