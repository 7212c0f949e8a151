// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vkr

import (
	"testing"

	vk "github.com/devblok/vulkan"
	qt "github.com/frankban/quicktest"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/devblok/korugfx/gfx"
)

func TestTranslateKnownValues(t *testing.T) {
	c := qt.New(t)
	c.Assert(topology(gfx.TopologyLineStrip), qt.Equals, vk.PrimitiveTopologyLineStrip)
	c.Assert(cullMode(gfx.CullModeBoth), qt.Equals, vk.CullModeFlags(vk.CullModeFrontAndBack))
	c.Assert(frontFace(gfx.FrontFaceCounterClockwise), qt.Equals, vk.FrontFaceCounterClockwise)
	c.Assert(imageFormat(gfx.ImageFormatRGBA16F), qt.Equals, vk.FormatR16g16b16a16Sfloat)
	c.Assert(imageFormat(gfx.ImageFormatSRGBA), qt.Equals, vk.FormatR8g8b8a8Srgb)
	c.Assert(loadOp(gfx.LoadOpLoad), qt.Equals, vk.AttachmentLoadOpLoad)
	c.Assert(storeOp(gfx.StoreOpStore), qt.Equals, vk.AttachmentStoreOpStore)
	c.Assert(imageLayout(gfx.ImageLayoutPresent), qt.Equals, vk.ImageLayoutPresentSrc)
	c.Assert(blendFactor(gfx.BlendFactorOneMinusSrc1Alpha), qt.Equals, vk.BlendFactorOneMinusSrc1Alpha)
	c.Assert(blendOp(gfx.BlendOpReverseSubtract), qt.Equals, vk.BlendOpReverseSubtract)
	c.Assert(compareOp(gfx.CompareOpGreaterOrEqual), qt.Equals, vk.CompareOpGreaterOrEqual)
	c.Assert(stencilOp(gfx.StencilOpDecrementAndWrap), qt.Equals, vk.StencilOpDecrementAndWrap)
	c.Assert(vertexFormat(gfx.VertexDataVec4ui), qt.Equals, vk.FormatR32g32b32a32Uint)
	c.Assert(sampleCount(gfx.SampleCount16, vk.SampleCount4Bit), qt.Equals, vk.SampleCount16Bit)
	c.Assert(sampleCount(gfx.SampleCountMax, vk.SampleCount4Bit), qt.Equals, vk.SampleCount4Bit)
	c.Assert(descriptorType(gfx.DescriptorStorageBuffer), qt.Equals, vk.DescriptorTypeStorageBuffer)
	c.Assert(uniformBufferUsage(gfx.BufferTypeStorage), qt.Equals, vk.BufferUsageStorageBufferBit)
	c.Assert(shaderStage(gfx.ShaderStageFragment), qt.Equals, vk.ShaderStageFlags(vk.ShaderStageFragmentBit))
	c.Assert(textureFilter(gfx.TextureFilterLinear), qt.Equals, vk.FilterLinear)
	c.Assert(textureMode(gfx.TextureModeMirrorRepeat), qt.Equals, vk.SamplerAddressModeMirroredRepeat)
	c.Assert(physicalDeviceType(vk.PhysicalDeviceTypeCpu), qt.Equals, gfx.PhysicalDeviceTypeCPU)
	c.Assert(colorComponents(gfx.ColorWriteMask{G: true, A: true}), qt.Equals,
		vk.ColorComponentFlags(vk.ColorComponentGBit|vk.ColorComponentABit))
}

func TestTranslateUnknownValues(t *testing.T) {
	c := qt.New(t)
	hook := test.NewGlobal()

	c.Assert(topology(gfx.Topology(99)), qt.Equals, vk.PrimitiveTopologyTriangleList)
	c.Assert(cullMode(gfx.CullMode(99)), qt.Equals, vk.CullModeFlags(vk.CullModeNone))
	c.Assert(frontFace(gfx.FrontFace(99)), qt.Equals, vk.FrontFaceClockwise)
	c.Assert(imageFormat(gfx.ImageFormat(99)), qt.Equals, vk.FormatUndefined)
	c.Assert(loadOp(gfx.LoadOp(99)), qt.Equals, vk.AttachmentLoadOpDontCare)
	c.Assert(storeOp(gfx.StoreOp(99)), qt.Equals, vk.AttachmentStoreOpDontCare)
	c.Assert(imageLayout(gfx.ImageLayout(99)), qt.Equals, vk.ImageLayoutUndefined)
	c.Assert(blendFactor(gfx.BlendFactor(99)), qt.Equals, vk.BlendFactorZero)
	c.Assert(blendOp(gfx.BlendOp(99)), qt.Equals, vk.BlendOpAdd)
	c.Assert(sampleCount(gfx.SampleCount(99), vk.SampleCount8Bit), qt.Equals, vk.SampleCount1Bit)
	c.Assert(descriptorType(gfx.DescriptorType(99)), qt.Equals, vk.DescriptorTypeSampler)
	c.Assert(shaderStage(gfx.ShaderStage(99)), qt.Equals, vk.ShaderStageFlags(vk.ShaderStageAll))
	c.Assert(textureFilter(gfx.TextureFilter(99)), qt.Equals, vk.FilterNearest)
	c.Assert(textureMode(gfx.TextureMode(99)), qt.Equals, vk.SamplerAddressModeRepeat)
	c.Assert(vertexFormat(gfx.VertexDataType(99)), qt.Equals, vk.FormatUndefined)
	c.Assert(warnings(hook), qt.HasLen, 15)

	hook.Reset()
	c.Assert(vertexFormat(gfx.VertexDataNone), qt.Equals, vk.FormatUndefined)
	c.Assert(physicalDeviceType(vk.PhysicalDeviceType(99)), qt.Equals, gfx.PhysicalDeviceTypeUnknown)
	c.Assert(warnings(hook), qt.HasLen, 1)
}
