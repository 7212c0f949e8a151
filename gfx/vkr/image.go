// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vkr

import (
	vk "github.com/devblok/vulkan"
)

// ImageInfo describes a 2D image with a single mip level.
type ImageInfo struct {
	Width, Height uint32
	Format        vk.Format
	Tiling        vk.ImageTiling
	Usage         vk.ImageUsageFlagBits
	Aspect        vk.ImageAspectFlagBits
}

// NewImage creates a device local image, binds its memory and creates a view.
func NewImage(dc *DeviceContext, info ImageInfo) (*Image, error) {
	image, err := dc.driver.CreateImage(dc.device, &vk.ImageCreateInfo{
		SType:     vk.StructureTypeImageCreateInfo,
		ImageType: vk.ImageType2d,
		Extent: vk.Extent3D{
			Width:  info.Width,
			Height: info.Height,
			Depth:  1,
		},
		MipLevels:     1,
		ArrayLayers:   1,
		Format:        info.Format,
		Tiling:        info.Tiling,
		InitialLayout: vk.ImageLayoutUndefined,
		Usage:         vk.ImageUsageFlags(info.Usage),
		SharingMode:   vk.SharingModeExclusive,
		Samples:       vk.SampleCount1Bit,
	})
	if err != nil {
		return nil, err
	}

	req := dc.driver.ImageMemoryRequirements(dc.device, image)
	memory, err := dc.allocator.Malloc(req, vk.MemoryPropertyDeviceLocalBit)
	if err != nil {
		dc.driver.DestroyImage(dc.device, image)
		return nil, err
	}

	if err := dc.driver.BindImageMemory(dc.device, image, memory.Get(), 0); err != nil {
		memory.Release()
		dc.driver.DestroyImage(dc.device, image)
		return nil, err
	}

	view, err := createImageView(dc, image, info.Format, vk.ImageAspectFlags(info.Aspect))
	if err != nil {
		memory.Release()
		dc.driver.DestroyImage(dc.device, image)
		return nil, err
	}

	return &Image{
		dc:     dc,
		image:  image,
		view:   view,
		format: info.Format,
		memory: memory,
	}, nil
}

// Image implements and abstracts vulkan image primitive.
type Image struct {
	dc     *DeviceContext
	image  vk.Image
	view   vk.ImageView
	format vk.Format
	memory *Memory
}

// Get returns the vulkan image handle.
func (i *Image) Get() vk.Image {
	return i.image
}

// View returns the image view covering the whole image.
func (i *Image) View() vk.ImageView {
	return i.view
}

// Mem returns the underlying memory of the Image.
func (i *Image) Mem() *Memory {
	return i.memory
}

// Release destroys the view, the image and its memory.
func (i *Image) Release() {
	i.dc.driver.DestroyImageView(i.dc.device, i.view)
	i.dc.driver.DestroyImage(i.dc.device, i.image)
	i.memory.Release()
}

func createImageView(dc *DeviceContext, image vk.Image, format vk.Format, aspect vk.ImageAspectFlags) (vk.ImageView, error) {
	return dc.driver.CreateImageView(dc.device, &vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    image,
		ViewType: vk.ImageViewType2d,
		Format:   format,
		Components: vk.ComponentMapping{
			R: vk.ComponentSwizzleIdentity,
			G: vk.ComponentSwizzleIdentity,
			B: vk.ComponentSwizzleIdentity,
			A: vk.ComponentSwizzleIdentity,
		},
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:     aspect,
			BaseMipLevel:   0,
			LevelCount:     1,
			BaseArrayLayer: 0,
			LayerCount:     1,
		},
	})
}
