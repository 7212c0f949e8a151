// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vkr

import (
	vk "github.com/devblok/vulkan"

	"github.com/devblok/korugfx/gfx"
)

// beginSingleTimeCommands allocates a one time command buffer from the
// context pool and starts recording it.
func (dc *DeviceContext) beginSingleTimeCommands() (vk.CommandBuffer, error) {
	buffers, err := dc.driver.AllocateCommandBuffers(dc.device, &vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		Level:              vk.CommandBufferLevelPrimary,
		CommandPool:        dc.commandPool,
		CommandBufferCount: 1,
	})
	if err != nil {
		return nil, err
	}
	cmd := buffers[0]

	if err := dc.driver.BeginCommandBuffer(cmd, &vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	}); err != nil {
		dc.driver.FreeCommandBuffers(dc.device, dc.commandPool, buffers)
		return nil, err
	}
	return cmd, nil
}

// endSingleTimeCommands submits cmd to the graphics queue and blocks until
// the queue is idle. Uploads therefore also wait for every frame in flight.
func (dc *DeviceContext) endSingleTimeCommands(cmd vk.CommandBuffer) error {
	defer dc.driver.FreeCommandBuffers(dc.device, dc.commandPool, []vk.CommandBuffer{cmd})

	if err := dc.driver.EndCommandBuffer(cmd); err != nil {
		return err
	}

	submit := []vk.SubmitInfo{{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    []vk.CommandBuffer{cmd},
	}}
	if err := dc.driver.QueueSubmit(dc.graphicsQueue, submit, nil); err != nil {
		return err
	}
	return dc.driver.QueueWaitIdle(dc.graphicsQueue)
}

// singleTime records with record and executes the commands synchronously.
func (dc *DeviceContext) singleTime(record func(cmd vk.CommandBuffer)) error {
	cmd, err := dc.beginSingleTimeCommands()
	if err != nil {
		return err
	}
	record(cmd)
	return dc.endSingleTimeCommands(cmd)
}

func (dc *DeviceContext) transitionLayout(img vk.Image, format vk.Format, old, new vk.ImageLayout) error {
	barrier := vk.ImageMemoryBarrier{
		SType:               vk.StructureTypeImageMemoryBarrier,
		OldLayout:           old,
		NewLayout:           new,
		SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
		DstQueueFamilyIndex: vk.QueueFamilyIgnored,
		Image:               img,
		SubresourceRange: vk.ImageSubresourceRange{
			BaseMipLevel:   0,
			LevelCount:     1,
			BaseArrayLayer: 0,
			LayerCount:     1,
			AspectMask:     vk.ImageAspectFlags(vk.ImageAspectColorBit),
		},
	}

	if new == vk.ImageLayoutDepthStencilAttachmentOptimal {
		aspect := vk.ImageAspectFlags(vk.ImageAspectDepthBit)
		if hasStencil(format) {
			aspect |= vk.ImageAspectFlags(vk.ImageAspectStencilBit)
		}
		barrier.SubresourceRange.AspectMask = aspect
	}

	var srcStage, dstStage vk.PipelineStageFlags
	switch {
	case old == vk.ImageLayoutUndefined && new == vk.ImageLayoutTransferDstOptimal:
		barrier.SrcAccessMask = 0
		barrier.DstAccessMask = vk.AccessFlags(vk.AccessTransferWriteBit)
		srcStage = vk.PipelineStageFlags(vk.PipelineStageTopOfPipeBit)
		dstStage = vk.PipelineStageFlags(vk.PipelineStageTransferBit)
	case old == vk.ImageLayoutTransferDstOptimal && new == vk.ImageLayoutShaderReadOnlyOptimal:
		barrier.SrcAccessMask = vk.AccessFlags(vk.AccessTransferWriteBit)
		barrier.DstAccessMask = vk.AccessFlags(vk.AccessShaderReadBit)
		srcStage = vk.PipelineStageFlags(vk.PipelineStageTransferBit)
		dstStage = vk.PipelineStageFlags(vk.PipelineStageFragmentShaderBit)
	case old == vk.ImageLayoutUndefined && new == vk.ImageLayoutDepthStencilAttachmentOptimal:
		barrier.SrcAccessMask = 0
		barrier.DstAccessMask = vk.AccessFlags(vk.AccessDepthStencilAttachmentReadBit | vk.AccessDepthStencilAttachmentWriteBit)
		srcStage = vk.PipelineStageFlags(vk.PipelineStageTopOfPipeBit)
		dstStage = vk.PipelineStageFlags(vk.PipelineStageEarlyFragmentTestsBit)
	default:
		return gfx.Failuref("vk.CmdPipelineBarrier(): unsupported layout transition %d to %d", old, new)
	}

	return dc.singleTime(func(cmd vk.CommandBuffer) {
		dc.driver.CmdPipelineBarrier(cmd, srcStage, dstStage, []vk.ImageMemoryBarrier{barrier})
	})
}

func (dc *DeviceContext) copyBuffer(src, dst vk.Buffer, size vk.DeviceSize) error {
	return dc.singleTime(func(cmd vk.CommandBuffer) {
		dc.driver.CmdCopyBuffer(cmd, src, dst, []vk.BufferCopy{{Size: size}})
	})
}

func (dc *DeviceContext) copyBufferToImage(buf vk.Buffer, img vk.Image, width, height uint32) error {
	region := vk.BufferImageCopy{
		ImageOffset: vk.Offset3D{},
		ImageExtent: vk.Extent3D{
			Width:  width,
			Height: height,
			Depth:  1,
		},
		ImageSubresource: vk.ImageSubresourceLayers{
			AspectMask:     vk.ImageAspectFlags(vk.ImageAspectColorBit),
			MipLevel:       0,
			BaseArrayLayer: 0,
			LayerCount:     1,
		},
	}
	return dc.singleTime(func(cmd vk.CommandBuffer) {
		dc.driver.CmdCopyBufferToImage(cmd, buf, img, vk.ImageLayoutTransferDstOptimal, []vk.BufferImageCopy{region})
	})
}
