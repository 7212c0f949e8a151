// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx

// Topology is the primitive assembly mode.
type Topology int

// Topologies
const (
	TopologyPoint Topology = iota
	TopologyLine
	TopologyLineStrip
	TopologyTriangle
	TopologyTriangleStrip
)

// CullMode selects which faces get culled.
type CullMode int

// Cull modes
const (
	CullModeDisable CullMode = iota
	CullModeFront
	CullModeBack
	CullModeBoth
)

// FrontFace selects the winding order of front facing triangles.
type FrontFace int

// Front faces
const (
	FrontFaceClockwise FrontFace = iota
	FrontFaceCounterClockwise
)

// ImageFormat is the pixel format of an image or attachment.
type ImageFormat int

// Image formats
const (
	ImageFormatNone ImageFormat = iota
	ImageFormatRGB
	ImageFormatRGBA
	ImageFormatRGBA8
	ImageFormatRGBA16F
	ImageFormatRGBA32F
	ImageFormatSRGB
	ImageFormatSRGBA
	ImageFormatSRGBA8
	ImageFormatSRGBA16F
	ImageFormatSRGBA32F
	ImageFormatRedInt
	ImageFormatDepth24Stencil8
)

// AttachmentType is the role of an attachment in a render pass.
type AttachmentType int

// Attachment types
const (
	AttachmentColor AttachmentType = iota
	AttachmentDepth
	AttachmentResolve
)

// LoadOp is what happens to attachment contents at the start of a pass.
type LoadOp int

// Load operations
const (
	LoadOpLoad LoadOp = iota
	LoadOpClear
	LoadOpDontCare
)

// StoreOp is what happens to attachment contents at the end of a pass.
type StoreOp int

// Store operations
const (
	StoreOpStore StoreOp = iota
	StoreOpDontCare
)

// ImageLayout is the memory layout an image is in.
type ImageLayout int

// Image layouts
const (
	ImageLayoutUndefined ImageLayout = iota
	ImageLayoutPresent
	ImageLayoutColorAttachment
	ImageLayoutDepthStencilAttachment
	ImageLayoutShaderReadOnly
	ImageLayoutTransferDst
)

// SampleCount is the number of samples per pixel. SampleCountMax
// requests the highest count the device supports.
type SampleCount int

// Sample counts
const (
	SampleCount1 SampleCount = iota
	SampleCount2
	SampleCount4
	SampleCount8
	SampleCount16
	SampleCount32
	SampleCount64
	SampleCountMax
)

// BlendFactor is a color blend factor.
type BlendFactor int

// Blend factors
const (
	BlendFactorZero BlendFactor = iota
	BlendFactorOne
	BlendFactorSrcColor
	BlendFactorOneMinusSrcColor
	BlendFactorDstColor
	BlendFactorOneMinusDstColor
	BlendFactorSrcAlpha
	BlendFactorOneMinusSrcAlpha
	BlendFactorDstAlpha
	BlendFactorOneMinusDstAlpha
	BlendFactorConstantColor
	BlendFactorOneMinusConstantColor
	BlendFactorConstantAlpha
	BlendFactorOneMinusConstantAlpha
	BlendFactorSrcAlphaSaturate
	BlendFactorSrc1Color
	BlendFactorOneMinusSrc1Color
	BlendFactorSrc1Alpha
	BlendFactorOneMinusSrc1Alpha
)

// BlendOp is a color blend operation.
type BlendOp int

// Blend operations
const (
	BlendOpAdd BlendOp = iota
	BlendOpSubtract
	BlendOpReverseSubtract
	BlendOpMin
	BlendOpMax
)

// CompareOp is a depth or stencil comparison.
type CompareOp int

// Compare operations
const (
	CompareOpNever CompareOp = iota
	CompareOpLess
	CompareOpEqual
	CompareOpLessOrEqual
	CompareOpGreater
	CompareOpNotEqual
	CompareOpGreaterOrEqual
	CompareOpAlways
)

// StencilOp is the action taken on the stencil buffer.
type StencilOp int

// Stencil operations
const (
	StencilOpKeep StencilOp = iota
	StencilOpZero
	StencilOpReplace
	StencilOpIncrementAndClamp
	StencilOpDecrementAndClamp
	StencilOpInvert
	StencilOpIncrementAndWrap
	StencilOpDecrementAndWrap
)

// ColorWriteMask selects the color components written by a blend attachment.
type ColorWriteMask struct {
	R, G, B, A bool
}

// ColorWriteAll writes every component.
var ColorWriteAll = ColorWriteMask{R: true, G: true, B: true, A: true}

// VertexDataType is the type of a single vertex attribute.
type VertexDataType int

// Vertex data types
const (
	VertexDataNone VertexDataType = iota
	VertexDataFloat
	VertexDataDouble
	VertexDataInt
	VertexDataUnsignedInt
	VertexDataBool
	VertexDataVec2
	VertexDataVec3
	VertexDataVec4
	VertexDataVec2i
	VertexDataVec3i
	VertexDataVec4i
	VertexDataVec2ui
	VertexDataVec3ui
	VertexDataVec4ui
	VertexDataVec2d
	VertexDataVec3d
	VertexDataVec4d
)

// DescriptorType is the kind of resource bound to a descriptor binding.
type DescriptorType int

// Descriptor types
const (
	DescriptorSampler DescriptorType = iota
	DescriptorCombinedImageSampler
	DescriptorSampledImage
	DescriptorUniformBuffer
	DescriptorStorageBuffer
)

// IsBuffer reports whether the descriptor refers to a buffer.
func (d DescriptorType) IsBuffer() bool {
	return d == DescriptorUniformBuffer || d == DescriptorStorageBuffer
}

// BufferType is a set of buffer usage flags.
type BufferType uint32

// Buffer types
const (
	BufferTypeVertex BufferType = 1 << iota
	BufferTypeIndex
	BufferTypeUniform
	BufferTypeStorage
)

// ShaderStage selects the shader stages a binding is visible to.
type ShaderStage int

// Shader stages
const (
	ShaderStageAll ShaderStage = iota
	ShaderStageVertex
	ShaderStageFragment
)

// TextureFilter is the texture sampling filter.
type TextureFilter int

// Texture filters
const (
	TextureFilterNearest TextureFilter = iota
	TextureFilterLinear
)

// TextureMode is the addressing mode outside of the [0,1] range.
type TextureMode int

// Texture modes
const (
	TextureModeRepeat TextureMode = iota
	TextureModeMirrorRepeat
	TextureModeClampToEdge
	TextureModeClampToBorder
)
