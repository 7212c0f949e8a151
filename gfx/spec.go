// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx

// InputAssembly configures primitive assembly.
type InputAssembly struct {
	Topology               Topology
	PrimitiveRestartEnable bool
}

// Rasterizer configures polygon rasterization.
type Rasterizer struct {
	DepthClampEnable        bool
	RasterizerDiscardEnable bool
	LineWidth               float32
	CullMode                CullMode
	FrontFace               FrontFace
	DepthBiasEnable         bool
	DepthBiasConstantFactor float32
	DepthBiasClamp          float32
	DepthBiasSlopeFactor    float32
}

// Multisampling configures the multisample state. A sample count the
// device cannot do is lowered to the highest one it can.
type Multisampling struct {
	SampleShadingEnable   bool
	RasterizationSamples  SampleCount
	MinSampleShading      float32
	SampleMask            []uint32
	AlphaToCoverageEnable bool
	AlphaToOneEnable      bool
}

// ColorBlendAttachment is the blend state of one color attachment.
type ColorBlendAttachment struct {
	ColorWriteMask      ColorWriteMask
	BlendEnable         bool
	SrcColorBlendFactor BlendFactor
	DstColorBlendFactor BlendFactor
	ColorBlendOp        BlendOp
	SrcAlphaBlendFactor BlendFactor
	DstAlphaBlendFactor BlendFactor
	AlphaBlendOp        BlendOp
}

// ColorBlend configures blending. When Attachments is empty a single
// straight alpha blend attachment writing every component is used.
type ColorBlend struct {
	LogicOpEnable  bool
	Attachments    []ColorBlendAttachment
	BlendConstants [4]float32
}

// StencilState configures the stencil test for both faces.
type StencilState struct {
	CompareMask uint32
	WriteMask   uint32
	Reference   uint32
	CompareOp   CompareOp
	DepthFailOp StencilOp
	FailOp      StencilOp
	PassOp      StencilOp
}

// DepthStencil configures depth and stencil testing.
type DepthStencil struct {
	EnableDepth    bool
	DepthOpCompare CompareOp
	EnableStencil  bool
	Stencil        StencilState
}

// PipelineSpecification is the fixed function state of a pipeline.
// It is a value, copy it to derive variations.
type PipelineSpecification struct {
	InputAssembly InputAssembly
	Viewport      Viewport
	Scissor       Rect2D
	Rasterizer    Rasterizer
	Multisampling Multisampling
	ColorBlend    ColorBlend
	DepthStencil  DepthStencil
}

// Clone returns a deep copy of the specification.
func (ps PipelineSpecification) Clone() PipelineSpecification {
	if ps.Multisampling.SampleMask != nil {
		ps.Multisampling.SampleMask = append([]uint32(nil), ps.Multisampling.SampleMask...)
	}
	if ps.ColorBlend.Attachments != nil {
		ps.ColorBlend.Attachments = append([]ColorBlendAttachment(nil), ps.ColorBlend.Attachments...)
	}
	return ps
}

// DefaultPipelineSpecification returns the specification every new
// Context starts with.
func DefaultPipelineSpecification() PipelineSpecification {
	return PipelineSpecification{
		InputAssembly: InputAssembly{
			Topology: TopologyTriangle,
		},
		Viewport: Viewport{
			Width:    800,
			Height:   600,
			MinDepth: 0,
			MaxDepth: 1,
		},
		Scissor: Rect2D{
			Extent: Extent2D{Width: 800, Height: 600},
		},
		Rasterizer: Rasterizer{
			LineWidth: 1,
			CullMode:  CullModeBack,
			FrontFace: FrontFaceClockwise,
		},
		Multisampling: Multisampling{
			RasterizationSamples: SampleCount1,
			MinSampleShading:     1,
		},
		DepthStencil: DepthStencil{
			DepthOpCompare: CompareOpNever,
			Stencil: StencilState{
				CompareOp:   CompareOpNever,
				DepthFailOp: StencilOpKeep,
				FailOp:      StencilOpKeep,
				PassOp:      StencilOpKeep,
			},
		},
	}
}
