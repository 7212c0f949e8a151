// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vkr

import (
	vk "github.com/devblok/vulkan"

	"github.com/devblok/korugfx/gfx"
)

// Translators from engine enums to vulkan enums. All of them are total,
// an unknown value is logged and replaced with a safe default.

func unknown(enum string, value int, fallback string) {
	logger.Warnf("unknown %s %d, using %s", enum, value, fallback)
}

func topology(t gfx.Topology) vk.PrimitiveTopology {
	switch t {
	case gfx.TopologyPoint:
		return vk.PrimitiveTopologyPointList
	case gfx.TopologyLine:
		return vk.PrimitiveTopologyLineList
	case gfx.TopologyLineStrip:
		return vk.PrimitiveTopologyLineStrip
	case gfx.TopologyTriangle:
		return vk.PrimitiveTopologyTriangleList
	case gfx.TopologyTriangleStrip:
		return vk.PrimitiveTopologyTriangleStrip
	}
	unknown("topology", int(t), "triangle list")
	return vk.PrimitiveTopologyTriangleList
}

func cullMode(c gfx.CullMode) vk.CullModeFlags {
	switch c {
	case gfx.CullModeDisable:
		return vk.CullModeFlags(vk.CullModeNone)
	case gfx.CullModeFront:
		return vk.CullModeFlags(vk.CullModeFrontBit)
	case gfx.CullModeBack:
		return vk.CullModeFlags(vk.CullModeBackBit)
	case gfx.CullModeBoth:
		return vk.CullModeFlags(vk.CullModeFrontAndBack)
	}
	unknown("cull mode", int(c), "none")
	return vk.CullModeFlags(vk.CullModeNone)
}

func frontFace(f gfx.FrontFace) vk.FrontFace {
	switch f {
	case gfx.FrontFaceClockwise:
		return vk.FrontFaceClockwise
	case gfx.FrontFaceCounterClockwise:
		return vk.FrontFaceCounterClockwise
	}
	unknown("front face", int(f), "clockwise")
	return vk.FrontFaceClockwise
}

func imageFormat(f gfx.ImageFormat) vk.Format {
	switch f {
	case gfx.ImageFormatNone:
		return vk.FormatUndefined
	case gfx.ImageFormatRGB:
		return vk.FormatR8g8b8Unorm
	case gfx.ImageFormatRGBA, gfx.ImageFormatRGBA8:
		return vk.FormatR8g8b8a8Unorm
	case gfx.ImageFormatRGBA16F, gfx.ImageFormatSRGBA16F:
		return vk.FormatR16g16b16a16Sfloat
	case gfx.ImageFormatRGBA32F, gfx.ImageFormatSRGBA32F:
		return vk.FormatR32g32b32a32Sfloat
	case gfx.ImageFormatSRGB:
		return vk.FormatR8g8b8Srgb
	case gfx.ImageFormatSRGBA, gfx.ImageFormatSRGBA8:
		return vk.FormatR8g8b8a8Srgb
	case gfx.ImageFormatRedInt:
		return vk.FormatR8Sint
	case gfx.ImageFormatDepth24Stencil8:
		return vk.FormatD24UnormS8Uint
	}
	unknown("image format", int(f), "undefined")
	return vk.FormatUndefined
}

func loadOp(op gfx.LoadOp) vk.AttachmentLoadOp {
	switch op {
	case gfx.LoadOpLoad:
		return vk.AttachmentLoadOpLoad
	case gfx.LoadOpClear:
		return vk.AttachmentLoadOpClear
	case gfx.LoadOpDontCare:
		return vk.AttachmentLoadOpDontCare
	}
	unknown("load op", int(op), "dont care")
	return vk.AttachmentLoadOpDontCare
}

func storeOp(op gfx.StoreOp) vk.AttachmentStoreOp {
	switch op {
	case gfx.StoreOpStore:
		return vk.AttachmentStoreOpStore
	case gfx.StoreOpDontCare:
		return vk.AttachmentStoreOpDontCare
	}
	unknown("store op", int(op), "dont care")
	return vk.AttachmentStoreOpDontCare
}

func imageLayout(l gfx.ImageLayout) vk.ImageLayout {
	switch l {
	case gfx.ImageLayoutUndefined:
		return vk.ImageLayoutUndefined
	case gfx.ImageLayoutPresent:
		return vk.ImageLayoutPresentSrc
	case gfx.ImageLayoutColorAttachment:
		return vk.ImageLayoutColorAttachmentOptimal
	case gfx.ImageLayoutDepthStencilAttachment:
		return vk.ImageLayoutDepthStencilAttachmentOptimal
	case gfx.ImageLayoutShaderReadOnly:
		return vk.ImageLayoutShaderReadOnlyOptimal
	case gfx.ImageLayoutTransferDst:
		return vk.ImageLayoutTransferDstOptimal
	}
	unknown("image layout", int(l), "undefined")
	return vk.ImageLayoutUndefined
}

func colorComponents(m gfx.ColorWriteMask) vk.ColorComponentFlags {
	var flags vk.ColorComponentFlagBits
	if m.R {
		flags |= vk.ColorComponentRBit
	}
	if m.G {
		flags |= vk.ColorComponentGBit
	}
	if m.B {
		flags |= vk.ColorComponentBBit
	}
	if m.A {
		flags |= vk.ColorComponentABit
	}
	return vk.ColorComponentFlags(flags)
}

var blendFactors = map[gfx.BlendFactor]vk.BlendFactor{
	gfx.BlendFactorZero:                  vk.BlendFactorZero,
	gfx.BlendFactorOne:                   vk.BlendFactorOne,
	gfx.BlendFactorSrcColor:              vk.BlendFactorSrcColor,
	gfx.BlendFactorOneMinusSrcColor:      vk.BlendFactorOneMinusSrcColor,
	gfx.BlendFactorDstColor:              vk.BlendFactorDstColor,
	gfx.BlendFactorOneMinusDstColor:      vk.BlendFactorOneMinusDstColor,
	gfx.BlendFactorSrcAlpha:              vk.BlendFactorSrcAlpha,
	gfx.BlendFactorOneMinusSrcAlpha:      vk.BlendFactorOneMinusSrcAlpha,
	gfx.BlendFactorDstAlpha:              vk.BlendFactorDstAlpha,
	gfx.BlendFactorOneMinusDstAlpha:      vk.BlendFactorOneMinusDstAlpha,
	gfx.BlendFactorConstantColor:         vk.BlendFactorConstantColor,
	gfx.BlendFactorOneMinusConstantColor: vk.BlendFactorOneMinusConstantColor,
	gfx.BlendFactorConstantAlpha:         vk.BlendFactorConstantAlpha,
	gfx.BlendFactorOneMinusConstantAlpha: vk.BlendFactorOneMinusConstantAlpha,
	gfx.BlendFactorSrcAlphaSaturate:      vk.BlendFactorSrcAlphaSaturate,
	gfx.BlendFactorSrc1Color:             vk.BlendFactorSrc1Color,
	gfx.BlendFactorOneMinusSrc1Color:     vk.BlendFactorOneMinusSrc1Color,
	gfx.BlendFactorSrc1Alpha:             vk.BlendFactorSrc1Alpha,
	gfx.BlendFactorOneMinusSrc1Alpha:     vk.BlendFactorOneMinusSrc1Alpha,
}

func blendFactor(f gfx.BlendFactor) vk.BlendFactor {
	if factor, ok := blendFactors[f]; ok {
		return factor
	}
	unknown("blend factor", int(f), "zero")
	return vk.BlendFactorZero
}

func blendOp(op gfx.BlendOp) vk.BlendOp {
	switch op {
	case gfx.BlendOpAdd:
		return vk.BlendOpAdd
	case gfx.BlendOpSubtract:
		return vk.BlendOpSubtract
	case gfx.BlendOpReverseSubtract:
		return vk.BlendOpReverseSubtract
	case gfx.BlendOpMin:
		return vk.BlendOpMin
	case gfx.BlendOpMax:
		return vk.BlendOpMax
	}
	unknown("blend op", int(op), "add")
	return vk.BlendOpAdd
}

func compareOp(op gfx.CompareOp) vk.CompareOp {
	switch op {
	case gfx.CompareOpNever:
		return vk.CompareOpNever
	case gfx.CompareOpLess:
		return vk.CompareOpLess
	case gfx.CompareOpEqual:
		return vk.CompareOpEqual
	case gfx.CompareOpLessOrEqual:
		return vk.CompareOpLessOrEqual
	case gfx.CompareOpGreater:
		return vk.CompareOpGreater
	case gfx.CompareOpNotEqual:
		return vk.CompareOpNotEqual
	case gfx.CompareOpGreaterOrEqual:
		return vk.CompareOpGreaterOrEqual
	case gfx.CompareOpAlways:
		return vk.CompareOpAlways
	}
	unknown("compare op", int(op), "never")
	return vk.CompareOpNever
}

func stencilOp(op gfx.StencilOp) vk.StencilOp {
	switch op {
	case gfx.StencilOpKeep:
		return vk.StencilOpKeep
	case gfx.StencilOpZero:
		return vk.StencilOpZero
	case gfx.StencilOpReplace:
		return vk.StencilOpReplace
	case gfx.StencilOpIncrementAndClamp:
		return vk.StencilOpIncrementAndClamp
	case gfx.StencilOpDecrementAndClamp:
		return vk.StencilOpDecrementAndClamp
	case gfx.StencilOpInvert:
		return vk.StencilOpInvert
	case gfx.StencilOpIncrementAndWrap:
		return vk.StencilOpIncrementAndWrap
	case gfx.StencilOpDecrementAndWrap:
		return vk.StencilOpDecrementAndWrap
	}
	unknown("stencil op", int(op), "keep")
	return vk.StencilOpKeep
}

var vertexFormats = map[gfx.VertexDataType]vk.Format{
	gfx.VertexDataFloat:       vk.FormatR32Sfloat,
	gfx.VertexDataDouble:      vk.FormatR64Sfloat,
	gfx.VertexDataInt:         vk.FormatR32Sint,
	gfx.VertexDataUnsignedInt: vk.FormatR32Uint,
	gfx.VertexDataBool:        vk.FormatR8Sint,
	gfx.VertexDataVec2:        vk.FormatR32g32Sfloat,
	gfx.VertexDataVec3:        vk.FormatR32g32b32Sfloat,
	gfx.VertexDataVec4:        vk.FormatR32g32b32a32Sfloat,
	gfx.VertexDataVec2i:       vk.FormatR32g32Sint,
	gfx.VertexDataVec3i:       vk.FormatR32g32b32Sint,
	gfx.VertexDataVec4i:       vk.FormatR32g32b32a32Sint,
	gfx.VertexDataVec2ui:      vk.FormatR32g32Uint,
	gfx.VertexDataVec3ui:      vk.FormatR32g32b32Uint,
	gfx.VertexDataVec4ui:      vk.FormatR32g32b32a32Uint,
	gfx.VertexDataVec2d:       vk.FormatR64g64Sfloat,
	gfx.VertexDataVec3d:       vk.FormatR64g64b64Sfloat,
	gfx.VertexDataVec4d:       vk.FormatR64g64b64a64Sfloat,
}

func vertexFormat(t gfx.VertexDataType) vk.Format {
	if format, ok := vertexFormats[t]; ok {
		return format
	}
	if t == gfx.VertexDataNone {
		logger.Warn("vertex attribute has no data type, format is undefined")
		return vk.FormatUndefined
	}
	unknown("vertex data type", int(t), "undefined")
	return vk.FormatUndefined
}

// sampleCount translates s, max is the highest count the device can do
// and the result of gfx.SampleCountMax.
func sampleCount(s gfx.SampleCount, max vk.SampleCountFlagBits) vk.SampleCountFlagBits {
	switch s {
	case gfx.SampleCount1:
		return vk.SampleCount1Bit
	case gfx.SampleCount2:
		return vk.SampleCount2Bit
	case gfx.SampleCount4:
		return vk.SampleCount4Bit
	case gfx.SampleCount8:
		return vk.SampleCount8Bit
	case gfx.SampleCount16:
		return vk.SampleCount16Bit
	case gfx.SampleCount32:
		return vk.SampleCount32Bit
	case gfx.SampleCount64:
		return vk.SampleCount64Bit
	case gfx.SampleCountMax:
		return max
	}
	unknown("sample count", int(s), "1")
	return vk.SampleCount1Bit
}

func descriptorType(d gfx.DescriptorType) vk.DescriptorType {
	switch d {
	case gfx.DescriptorSampler:
		return vk.DescriptorTypeSampler
	case gfx.DescriptorCombinedImageSampler:
		return vk.DescriptorTypeCombinedImageSampler
	case gfx.DescriptorSampledImage:
		return vk.DescriptorTypeSampledImage
	case gfx.DescriptorUniformBuffer:
		return vk.DescriptorTypeUniformBuffer
	case gfx.DescriptorStorageBuffer:
		return vk.DescriptorTypeStorageBuffer
	}
	unknown("descriptor type", int(d), "sampler")
	return vk.DescriptorTypeSampler
}

// uniformBufferUsage returns the usage of a per-frame buffer type.
func uniformBufferUsage(t gfx.BufferType) vk.BufferUsageFlagBits {
	switch {
	case t&gfx.BufferTypeUniform != 0:
		return vk.BufferUsageUniformBufferBit
	case t&gfx.BufferTypeStorage != 0:
		return vk.BufferUsageStorageBufferBit
	}
	unknown("uniform buffer type", int(t), "uniform")
	return vk.BufferUsageUniformBufferBit
}

func shaderStage(s gfx.ShaderStage) vk.ShaderStageFlags {
	switch s {
	case gfx.ShaderStageAll:
		return vk.ShaderStageFlags(vk.ShaderStageAll)
	case gfx.ShaderStageVertex:
		return vk.ShaderStageFlags(vk.ShaderStageVertexBit)
	case gfx.ShaderStageFragment:
		return vk.ShaderStageFlags(vk.ShaderStageFragmentBit)
	}
	unknown("shader stage", int(s), "all")
	return vk.ShaderStageFlags(vk.ShaderStageAll)
}

func textureFilter(f gfx.TextureFilter) vk.Filter {
	switch f {
	case gfx.TextureFilterNearest:
		return vk.FilterNearest
	case gfx.TextureFilterLinear:
		return vk.FilterLinear
	}
	unknown("texture filter", int(f), "nearest")
	return vk.FilterNearest
}

func textureMode(m gfx.TextureMode) vk.SamplerAddressMode {
	switch m {
	case gfx.TextureModeRepeat:
		return vk.SamplerAddressModeRepeat
	case gfx.TextureModeMirrorRepeat:
		return vk.SamplerAddressModeMirroredRepeat
	case gfx.TextureModeClampToEdge:
		return vk.SamplerAddressModeClampToEdge
	case gfx.TextureModeClampToBorder:
		return vk.SamplerAddressModeClampToBorder
	}
	unknown("texture mode", int(m), "repeat")
	return vk.SamplerAddressModeRepeat
}

func physicalDeviceType(t vk.PhysicalDeviceType) gfx.PhysicalDeviceType {
	switch t {
	case vk.PhysicalDeviceTypeOther:
		return gfx.PhysicalDeviceTypeOther
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return gfx.PhysicalDeviceTypeIntegrated
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return gfx.PhysicalDeviceTypeDiscrete
	case vk.PhysicalDeviceTypeVirtualGpu:
		return gfx.PhysicalDeviceTypeVirtual
	case vk.PhysicalDeviceTypeCpu:
		return gfx.PhysicalDeviceTypeCPU
	}
	return gfx.PhysicalDeviceTypeUnknown
}
