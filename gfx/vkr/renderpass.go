// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vkr

import (
	vk "github.com/devblok/vulkan"

	"github.com/devblok/korugfx/gfx"
)

// renderPass is a single subpass render pass.
type renderPass struct {
	dc   *DeviceContext
	pass vk.RenderPass
}

// renderPassCreateInfo translates info into a single graphics subpass.
func renderPassCreateInfo(info gfx.RenderPassInfo, maxSamples vk.SampleCountFlagBits) (*vk.RenderPassCreateInfo, error) {
	if len(info.Attachments) == 0 {
		return nil, gfx.Failuref("vk.CreateRenderPass(): no attachments")
	}

	var (
		attachments   = make([]vk.AttachmentDescription, 0, len(info.Attachments))
		colorRefs     []vk.AttachmentReference
		depthRef      *vk.AttachmentReference
		resolveRefs   []vk.AttachmentReference
		multisampling bool
	)
	for idx, a := range info.Attachments {
		samples := sampleCount(a.Samples, maxSamples)
		if samples != vk.SampleCount1Bit {
			multisampling = true
		}
		attachments = append(attachments, vk.AttachmentDescription{
			Format:         imageFormat(a.Format),
			Samples:        samples,
			LoadOp:         loadOp(a.LoadOp),
			StoreOp:        storeOp(a.StoreOp),
			StencilLoadOp:  loadOp(a.StencilLoadOp),
			StencilStoreOp: storeOp(a.StencilStoreOp),
			InitialLayout:  imageLayout(a.InitialLayout),
			FinalLayout:    imageLayout(a.FinalLayout),
		})

		switch a.Type {
		case gfx.AttachmentColor:
			colorRefs = append(colorRefs, vk.AttachmentReference{
				Attachment: uint32(idx),
				Layout:     vk.ImageLayoutColorAttachmentOptimal,
			})
		case gfx.AttachmentDepth:
			if depthRef != nil {
				return nil, gfx.Failuref("vk.CreateRenderPass(): attachment %d is a second depth attachment", idx)
			}
			depthRef = &vk.AttachmentReference{
				Attachment: uint32(idx),
				Layout:     vk.ImageLayoutDepthStencilAttachmentOptimal,
			}
		case gfx.AttachmentResolve:
			resolveRefs = append(resolveRefs, vk.AttachmentReference{
				Attachment: uint32(idx),
				Layout:     imageLayout(a.FinalLayout),
			})
		default:
			return nil, gfx.Failuref("vk.CreateRenderPass(): attachment %d has unknown type %d", idx, a.Type)
		}
	}

	if hasResolve := len(resolveRefs) > 0; hasResolve != multisampling {
		return nil, gfx.Failuref("vk.CreateRenderPass(): resolve attachments (%t) must match multisampling (%t)", hasResolve, multisampling)
	}

	subpass := vk.SubpassDescription{
		PipelineBindPoint:       vk.PipelineBindPointGraphics,
		ColorAttachmentCount:    uint32(len(colorRefs)),
		PColorAttachments:       colorRefs,
		PResolveAttachments:     resolveRefs,
		PDepthStencilAttachment: depthRef,
	}

	return &vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: uint32(len(attachments)),
		PAttachments:    attachments,
		SubpassCount:    1,
		PSubpasses:      []vk.SubpassDescription{subpass},
		DependencyCount: 1,
		PDependencies:   []vk.SubpassDependency{externalDependency()},
	}, nil
}

func externalDependency() vk.SubpassDependency {
	return vk.SubpassDependency{
		SrcSubpass:    vk.SubpassExternal,
		DstSubpass:    0,
		SrcStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		SrcAccessMask: 0,
		DstStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		DstAccessMask: vk.AccessFlags(vk.AccessColorAttachmentReadBit | vk.AccessColorAttachmentWriteBit),
	}
}

func newRenderPass(dc *DeviceContext, info gfx.RenderPassInfo) (*renderPass, error) {
	rpci, err := renderPassCreateInfo(info, dc.maxUsableSampleCount())
	if err != nil {
		return nil, err
	}
	pass, err := dc.driver.CreateRenderPass(dc.device, rpci)
	if err != nil {
		return nil, err
	}
	return &renderPass{dc: dc, pass: pass}, nil
}

// windowRenderPass creates the presenting pass of a window surface, a
// cleared color attachment and a cleared depth attachment.
func windowRenderPass(dc *DeviceContext, colorFormat, depthFormat vk.Format) (vk.RenderPass, error) {
	attachments := []vk.AttachmentDescription{
		{
			Format:         colorFormat,
			Samples:        vk.SampleCount1Bit,
			LoadOp:         vk.AttachmentLoadOpClear,
			StoreOp:        vk.AttachmentStoreOpStore,
			StencilLoadOp:  vk.AttachmentLoadOpDontCare,
			StencilStoreOp: vk.AttachmentStoreOpDontCare,
			InitialLayout:  vk.ImageLayoutUndefined,
			FinalLayout:    vk.ImageLayoutPresentSrc,
		},
		{
			Format:         depthFormat,
			Samples:        vk.SampleCount1Bit,
			LoadOp:         vk.AttachmentLoadOpClear,
			StoreOp:        vk.AttachmentStoreOpDontCare,
			StencilLoadOp:  vk.AttachmentLoadOpDontCare,
			StencilStoreOp: vk.AttachmentStoreOpDontCare,
			InitialLayout:  vk.ImageLayoutUndefined,
			FinalLayout:    vk.ImageLayoutDepthStencilAttachmentOptimal,
		},
	}

	subpass := vk.SubpassDescription{
		PipelineBindPoint:    vk.PipelineBindPointGraphics,
		ColorAttachmentCount: 1,
		PColorAttachments: []vk.AttachmentReference{{
			Attachment: 0,
			Layout:     vk.ImageLayoutColorAttachmentOptimal,
		}},
		PDepthStencilAttachment: &vk.AttachmentReference{
			Attachment: 1,
			Layout:     vk.ImageLayoutDepthStencilAttachmentOptimal,
		},
	}

	return dc.driver.CreateRenderPass(dc.device, &vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: uint32(len(attachments)),
		PAttachments:    attachments,
		SubpassCount:    1,
		PSubpasses:      []vk.SubpassDescription{subpass},
		DependencyCount: 1,
		PDependencies:   []vk.SubpassDependency{externalDependency()},
	})
}

// Release destroys the render pass.
func (rp *renderPass) Release() {
	rp.dc.driver.DestroyRenderPass(rp.dc.device, rp.pass)
}
