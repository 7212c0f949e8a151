// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vkr

import (
	vk "github.com/devblok/vulkan"

	"github.com/devblok/korugfx/gfx"
)

// descriptorLayout is a set layout with one descriptor set per frame slot,
// all allocated from a pool sized for exactly those sets.
type descriptorLayout struct {
	dc     *DeviceContext
	layout vk.DescriptorSetLayout
	pool   vk.DescriptorPool
	sets   []vk.DescriptorSet
}

func newDescriptorLayout(dc *DeviceContext, info gfx.DescriptorLayoutInfo) (*descriptorLayout, error) {
	frames := dc.maxFramesInFlight

	bindings := make([]vk.DescriptorSetLayoutBinding, 0, len(info.Bindings))
	poolSizes := make([]vk.DescriptorPoolSize, 0, len(info.Bindings))
	for _, b := range info.Bindings {
		count := b.Count
		if count == 0 {
			count = 1
		}
		bindings = append(bindings, vk.DescriptorSetLayoutBinding{
			Binding:         b.Binding,
			DescriptorType:  descriptorType(b.Type),
			DescriptorCount: count,
			StageFlags:      shaderStage(b.Stage),
		})
		poolSizes = append(poolSizes, vk.DescriptorPoolSize{
			Type:            descriptorType(b.Type),
			DescriptorCount: frames,
		})
	}

	layout, err := dc.driver.CreateDescriptorSetLayout(dc.device, &vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: uint32(len(bindings)),
		PBindings:    bindings,
	})
	if err != nil {
		return nil, err
	}

	pool, err := dc.driver.CreateDescriptorPool(dc.device, &vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		MaxSets:       frames,
		PoolSizeCount: uint32(len(poolSizes)),
		PPoolSizes:    poolSizes,
	})
	if err != nil {
		dc.driver.DestroyDescriptorSetLayout(dc.device, layout)
		return nil, err
	}

	dl := &descriptorLayout{
		dc:     dc,
		layout: layout,
		pool:   pool,
		sets:   make([]vk.DescriptorSet, frames),
	}
	for idx := range dl.sets {
		set, err := dc.driver.AllocateDescriptorSet(dc.device, pool, layout)
		if err != nil {
			dl.Release()
			return nil, err
		}
		dl.sets[idx] = set
	}
	return dl, nil
}

// update writes every update into the set of every frame slot. Slot k of
// a uniform buffer is bound to set k.
func (dl *descriptorLayout) update(updates []gfx.DescriptorUpdate, buffers []*uniformBuffer, textures []*texture) {
	writes := make([]vk.WriteDescriptorSet, 0, len(updates)*len(dl.sets))
	for k, set := range dl.sets {
		for idx, u := range updates {
			count := u.Count
			if count == 0 {
				count = 1
			}
			write := vk.WriteDescriptorSet{
				SType:           vk.StructureTypeWriteDescriptorSet,
				DstSet:          set,
				DstBinding:      u.Binding,
				DstArrayElement: 0,
				DescriptorType:  descriptorType(u.Type),
				DescriptorCount: count,
			}
			if u.Type.IsBuffer() {
				ub := buffers[idx]
				write.PBufferInfo = []vk.DescriptorBufferInfo{{
					Buffer: ub.Get(),
					Offset: vk.DeviceSize(k) * ub.size,
					Range:  ub.size,
				}}
			} else {
				tex := textures[idx]
				write.PImageInfo = []vk.DescriptorImageInfo{{
					ImageLayout: vk.ImageLayoutShaderReadOnlyOptimal,
					ImageView:   tex.View(),
					Sampler:     tex.sampler,
				}}
			}
			writes = append(writes, write)
		}
	}
	dl.dc.driver.UpdateDescriptorSets(dl.dc.device, writes)
}

// Release destroys the pool, which frees the sets, and the layout.
func (dl *descriptorLayout) Release() {
	dl.dc.driver.DestroyDescriptorPool(dl.dc.device, dl.pool)
	dl.dc.driver.DestroyDescriptorSetLayout(dl.dc.device, dl.layout)
}
