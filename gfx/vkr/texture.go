// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vkr

import (
	vk "github.com/devblok/vulkan"

	"github.com/devblok/korugfx/gfx"
)

const textureFormat = vk.FormatR8g8b8a8Srgb

// texture is a sampled image uploaded from RGBA8 pixels.
type texture struct {
	*Image
	sampler vk.Sampler
}

func newTexture(dc *DeviceContext, info gfx.TextureInfo) (*texture, error) {
	img := info.Image
	size := vk.DeviceSize(img.Width) * vk.DeviceSize(img.Height) * 4
	if img.Channels != 4 || size == 0 || vk.DeviceSize(len(img.Pixels)) != size {
		return nil, gfx.Failuref("vk.CreateImage(): expected %dx%d RGBA8 pixels, got %d bytes with %d channels",
			img.Width, img.Height, len(img.Pixels), img.Channels)
	}

	staging, err := NewBuffer(dc, size, vk.BufferUsageTransferSrcBit, hostMemory)
	if err != nil {
		return nil, err
	}
	defer staging.Release()

	mapped, err := staging.Mem().Map()
	if err != nil {
		return nil, err
	}
	copy(mapped, img.Pixels)
	staging.Mem().Unmap()

	image, err := NewImage(dc, ImageInfo{
		Width:  img.Width,
		Height: img.Height,
		Format: textureFormat,
		Tiling: vk.ImageTilingOptimal,
		Usage:  vk.ImageUsageTransferDstBit | vk.ImageUsageSampledBit,
		Aspect: vk.ImageAspectColorBit,
	})
	if err != nil {
		return nil, err
	}

	if err := dc.transitionLayout(image.Get(), textureFormat, vk.ImageLayoutUndefined, vk.ImageLayoutTransferDstOptimal); err != nil {
		image.Release()
		return nil, err
	}
	if err := dc.copyBufferToImage(staging.Get(), image.Get(), img.Width, img.Height); err != nil {
		image.Release()
		return nil, err
	}
	if err := dc.transitionLayout(image.Get(), textureFormat, vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutShaderReadOnlyOptimal); err != nil {
		image.Release()
		return nil, err
	}

	sampler, err := dc.driver.CreateSampler(dc.device, samplerInfo(dc, info))
	if err != nil {
		image.Release()
		return nil, err
	}

	return &texture{
		Image:   image,
		sampler: sampler,
	}, nil
}

func samplerInfo(dc *DeviceContext, info gfx.TextureInfo) *vk.SamplerCreateInfo {
	mode := textureMode(info.WrapMode)
	sci := &vk.SamplerCreateInfo{
		SType:                   vk.StructureTypeSamplerCreateInfo,
		MagFilter:               textureFilter(info.MagFilter),
		MinFilter:               textureFilter(info.MinFilter),
		AddressModeU:            mode,
		AddressModeV:            mode,
		AddressModeW:            mode,
		AnisotropyEnable:        vk.False,
		MaxAnisotropy:           1,
		BorderColor:             vk.BorderColorIntOpaqueBlack,
		UnnormalizedCoordinates: vk.False,
		CompareEnable:           vk.False,
		CompareOp:               vk.CompareOpAlways,
		MipmapMode:              vk.SamplerMipmapModeLinear,
	}
	if dc.anisotropy {
		sci.AnisotropyEnable = vk.True
		sci.MaxAnisotropy = dc.properties.Limits.MaxSamplerAnisotropy
	}
	return sci
}

// Release destroys the sampler and the image.
func (t *texture) Release() {
	t.dc.driver.DestroySampler(t.dc.device, t.sampler)
	t.Image.Release()
}
