// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vkr

import (
	vk "github.com/devblok/vulkan"

	"github.com/devblok/korugfx/core"
	"github.com/devblok/korugfx/gfx"
)

// shader is a vertex and fragment module pair.
type shader struct {
	dc       *DeviceContext
	vertex   vk.ShaderModule
	fragment vk.ShaderModule
}

func newShader(dc *DeviceContext, info gfx.ShaderInfo) (*shader, error) {
	vertex, err := createShaderModule(dc, "vertex", info.Vertex)
	if err != nil {
		return nil, err
	}
	fragment, err := createShaderModule(dc, "fragment", info.Fragment)
	if err != nil {
		dc.driver.DestroyShaderModule(dc.device, vertex)
		return nil, err
	}
	return &shader{
		dc:       dc,
		vertex:   vertex,
		fragment: fragment,
	}, nil
}

func createShaderModule(dc *DeviceContext, stage string, code []byte) (vk.ShaderModule, error) {
	if len(code) == 0 || len(code)%4 != 0 {
		return nil, gfx.Failuref("vk.CreateShaderModule(): %s shader code of %d bytes is not SPIR-V", stage, len(code))
	}
	return dc.driver.CreateShaderModule(dc.device, &vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(code)),
		PCode:    core.SliceUint32(code),
	})
}

// Release destroys both modules.
func (s *shader) Release() {
	s.dc.driver.DestroyShaderModule(s.dc.device, s.vertex)
	s.dc.driver.DestroyShaderModule(s.dc.device, s.fragment)
}

// pipeline is a graphics pipeline with the layout it was built with.
type pipeline struct {
	dc       *DeviceContext
	pipeline vk.Pipeline
	layout   vk.PipelineLayout
}

// pipelineTarget is everything a pipeline is built from besides the
// fixed function specification.
type pipelineTarget struct {
	shader         *shader
	bindings       []gfx.VertexBinding
	attributes     []gfx.VertexAttribute
	layouts        []vk.DescriptorSetLayout
	push           []gfx.PushConstantRange
	renderPass     vk.RenderPass
	maxSamples     vk.SampleCountFlagBits
	pipelineLayout vk.PipelineLayout
}

func newPipeline(dc *DeviceContext, target pipelineTarget, spec gfx.PipelineSpecification) (*pipeline, error) {
	layout, err := dc.driver.CreatePipelineLayout(dc.device, pipelineLayoutInfo(target))
	if err != nil {
		return nil, err
	}

	target.pipelineLayout = layout
	target.maxSamples = dc.maxUsableSampleCount()
	native, err := dc.driver.CreateGraphicsPipeline(dc.device, pipelineCreateInfo(target, spec))
	if err != nil {
		dc.driver.DestroyPipelineLayout(dc.device, layout)
		return nil, err
	}

	return &pipeline{
		dc:       dc,
		pipeline: native,
		layout:   layout,
	}, nil
}

func pipelineLayoutInfo(target pipelineTarget) *vk.PipelineLayoutCreateInfo {
	ranges := make([]vk.PushConstantRange, 0, len(target.push))
	for _, r := range target.push {
		ranges = append(ranges, vk.PushConstantRange{
			StageFlags: shaderStage(r.Stage),
			Offset:     r.Offset,
			Size:       r.Size,
		})
	}
	return &vk.PipelineLayoutCreateInfo{
		SType:                  vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount:         uint32(len(target.layouts)),
		PSetLayouts:            target.layouts,
		PushConstantRangeCount: uint32(len(ranges)),
		PPushConstantRanges:    ranges,
	}
}

// defaultBlendAttachment writes all components with straight alpha blending.
func defaultBlendAttachment() vk.PipelineColorBlendAttachmentState {
	return vk.PipelineColorBlendAttachmentState{
		ColorWriteMask:      colorComponents(gfx.ColorWriteAll),
		BlendEnable:         vk.True,
		SrcColorBlendFactor: vk.BlendFactorSrcAlpha,
		DstColorBlendFactor: vk.BlendFactorOneMinusSrcAlpha,
		ColorBlendOp:        vk.BlendOpAdd,
		SrcAlphaBlendFactor: vk.BlendFactorSrcAlpha,
		DstAlphaBlendFactor: vk.BlendFactorOneMinusSrcAlpha,
		AlphaBlendOp:        vk.BlendOpAdd,
	}
}

func stencilState(s gfx.StencilState) vk.StencilOpState {
	return vk.StencilOpState{
		FailOp:      stencilOp(s.FailOp),
		PassOp:      stencilOp(s.PassOp),
		DepthFailOp: stencilOp(s.DepthFailOp),
		CompareOp:   compareOp(s.CompareOp),
		CompareMask: s.CompareMask,
		WriteMask:   s.WriteMask,
		Reference:   s.Reference,
	}
}

func bool32(b bool) vk.Bool32 {
	if b {
		return vk.True
	}
	return vk.False
}

// pipelineCreateInfo translates spec into native pipeline state.
func pipelineCreateInfo(target pipelineTarget, spec gfx.PipelineSpecification) *vk.GraphicsPipelineCreateInfo {
	stages := []vk.PipelineShaderStageCreateInfo{
		{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  vk.ShaderStageVertexBit,
			Module: target.shader.vertex,
			PName:  core.SafeString("main"),
		},
		{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  vk.ShaderStageFragmentBit,
			Module: target.shader.fragment,
			PName:  core.SafeString("main"),
		},
	}

	bindings := make([]vk.VertexInputBindingDescription, 0, len(target.bindings))
	for _, b := range target.bindings {
		bindings = append(bindings, vk.VertexInputBindingDescription{
			Binding:   b.Binding,
			Stride:    b.Stride,
			InputRate: vk.VertexInputRateVertex,
		})
	}
	attributes := make([]vk.VertexInputAttributeDescription, 0, len(target.attributes))
	for _, a := range target.attributes {
		attributes = append(attributes, vk.VertexInputAttributeDescription{
			Binding:  a.Binding,
			Location: a.Location,
			Format:   vertexFormat(a.Type),
			Offset:   a.Offset,
		})
	}

	samples := sampleCount(spec.Multisampling.RasterizationSamples, target.maxSamples)
	if samples > target.maxSamples {
		logger.WithFields(map[string]interface{}{
			"requested": samples,
			"max":       target.maxSamples,
		}).Warn("sample count is above the device maximum, clamped")
		samples = target.maxSamples
	}

	blendAttachments := make([]vk.PipelineColorBlendAttachmentState, 0, len(spec.ColorBlend.Attachments))
	for _, a := range spec.ColorBlend.Attachments {
		blendAttachments = append(blendAttachments, vk.PipelineColorBlendAttachmentState{
			ColorWriteMask:      colorComponents(a.ColorWriteMask),
			BlendEnable:         bool32(a.BlendEnable),
			SrcColorBlendFactor: blendFactor(a.SrcColorBlendFactor),
			DstColorBlendFactor: blendFactor(a.DstColorBlendFactor),
			ColorBlendOp:        blendOp(a.ColorBlendOp),
			SrcAlphaBlendFactor: blendFactor(a.SrcAlphaBlendFactor),
			DstAlphaBlendFactor: blendFactor(a.DstAlphaBlendFactor),
			AlphaBlendOp:        blendOp(a.AlphaBlendOp),
		})
	}
	if len(blendAttachments) == 0 {
		blendAttachments = append(blendAttachments, defaultBlendAttachment())
	}

	dynamic := []vk.DynamicState{
		vk.DynamicStateViewport,
		vk.DynamicStateScissor,
	}
	if spec.DepthStencil.EnableStencil {
		dynamic = append(dynamic,
			vk.DynamicStateStencilReference,
			vk.DynamicStateStencilCompareMask,
			vk.DynamicStateStencilWriteMask,
		)
	}

	var sampleMask []vk.SampleMask
	for _, m := range spec.Multisampling.SampleMask {
		sampleMask = append(sampleMask, vk.SampleMask(m))
	}

	stencil := stencilState(spec.DepthStencil.Stencil)
	viewport := spec.Viewport
	scissor := spec.Scissor

	return &vk.GraphicsPipelineCreateInfo{
		SType:      vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount: uint32(len(stages)),
		PStages:    stages,
		PVertexInputState: &vk.PipelineVertexInputStateCreateInfo{
			SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
			VertexBindingDescriptionCount:   uint32(len(bindings)),
			PVertexBindingDescriptions:      bindings,
			VertexAttributeDescriptionCount: uint32(len(attributes)),
			PVertexAttributeDescriptions:    attributes,
		},
		PInputAssemblyState: &vk.PipelineInputAssemblyStateCreateInfo{
			SType:                  vk.StructureTypePipelineInputAssemblyStateCreateInfo,
			Topology:               topology(spec.InputAssembly.Topology),
			PrimitiveRestartEnable: bool32(spec.InputAssembly.PrimitiveRestartEnable),
		},
		PViewportState: &vk.PipelineViewportStateCreateInfo{
			SType:         vk.StructureTypePipelineViewportStateCreateInfo,
			ViewportCount: 1,
			PViewports: []vk.Viewport{{
				X:        viewport.X,
				Y:        viewport.Y,
				Width:    viewport.Width,
				Height:   viewport.Height,
				MinDepth: viewport.MinDepth,
				MaxDepth: viewport.MaxDepth,
			}},
			ScissorCount: 1,
			PScissors: []vk.Rect2D{{
				Offset: vk.Offset2D{X: scissor.Offset.X, Y: scissor.Offset.Y},
				Extent: vk.Extent2D{Width: scissor.Extent.Width, Height: scissor.Extent.Height},
			}},
		},
		PRasterizationState: &vk.PipelineRasterizationStateCreateInfo{
			SType:                   vk.StructureTypePipelineRasterizationStateCreateInfo,
			DepthClampEnable:        bool32(spec.Rasterizer.DepthClampEnable),
			RasterizerDiscardEnable: bool32(spec.Rasterizer.RasterizerDiscardEnable),
			PolygonMode:             vk.PolygonModeFill,
			LineWidth:               spec.Rasterizer.LineWidth,
			CullMode:                cullMode(spec.Rasterizer.CullMode),
			FrontFace:               frontFace(spec.Rasterizer.FrontFace),
			DepthBiasEnable:         bool32(spec.Rasterizer.DepthBiasEnable),
			DepthBiasConstantFactor: spec.Rasterizer.DepthBiasConstantFactor,
			DepthBiasClamp:          spec.Rasterizer.DepthBiasClamp,
			DepthBiasSlopeFactor:    spec.Rasterizer.DepthBiasSlopeFactor,
		},
		PMultisampleState: &vk.PipelineMultisampleStateCreateInfo{
			SType:                 vk.StructureTypePipelineMultisampleStateCreateInfo,
			RasterizationSamples:  samples,
			SampleShadingEnable:   bool32(spec.Multisampling.SampleShadingEnable),
			MinSampleShading:      spec.Multisampling.MinSampleShading,
			PSampleMask:           sampleMask,
			AlphaToCoverageEnable: bool32(spec.Multisampling.AlphaToCoverageEnable),
			AlphaToOneEnable:      bool32(spec.Multisampling.AlphaToOneEnable),
		},
		PDepthStencilState: &vk.PipelineDepthStencilStateCreateInfo{
			SType:                 vk.StructureTypePipelineDepthStencilStateCreateInfo,
			DepthTestEnable:       bool32(spec.DepthStencil.EnableDepth),
			DepthWriteEnable:      bool32(spec.DepthStencil.EnableDepth),
			DepthCompareOp:        compareOp(spec.DepthStencil.DepthOpCompare),
			DepthBoundsTestEnable: vk.False,
			StencilTestEnable:     bool32(spec.DepthStencil.EnableStencil),
			Front:                 stencil,
			Back:                  stencil,
			MinDepthBounds:        0,
			MaxDepthBounds:        1,
		},
		PColorBlendState: &vk.PipelineColorBlendStateCreateInfo{
			SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
			LogicOpEnable:   bool32(spec.ColorBlend.LogicOpEnable),
			LogicOp:         vk.LogicOpCopy,
			AttachmentCount: uint32(len(blendAttachments)),
			PAttachments:    blendAttachments,
			BlendConstants:  spec.ColorBlend.BlendConstants,
		},
		PDynamicState: &vk.PipelineDynamicStateCreateInfo{
			SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
			DynamicStateCount: uint32(len(dynamic)),
			PDynamicStates:    dynamic,
		},
		Layout:     target.pipelineLayout,
		RenderPass: target.renderPass,
	}
}

// Release destroys the pipeline and its layout.
func (p *pipeline) Release() {
	p.dc.driver.DestroyPipeline(p.dc.device, p.pipeline)
	p.dc.driver.DestroyPipelineLayout(p.dc.device, p.layout)
}
