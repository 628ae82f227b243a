package vkctx

import (
	vk "github.com/vulkan-go/vulkan"
)

// DeleteList collects Vulkan handles whose destruction must wait until the
// GPU can no longer be using them. Handles queued while a frame is being
// recorded are moved onto that frame's list when its render pass ends, and
// destroyed only after the frame's fence has signalled.
type DeleteList struct {
	descriptorPools []vk.DescriptorPool
	shaderModules   []vk.ShaderModule
	buffers         []vk.Buffer
	bufferViews     []vk.BufferView
	images          []vk.Image
	imageViews      []vk.ImageView
	deviceMemory    []vk.DeviceMemory
	samplers        []vk.Sampler
	pipelineCaches  []vk.PipelineCache
}

func (dl *DeleteList) QueueDeleteDescriptorPool(pool vk.DescriptorPool) {
	dl.descriptorPools = append(dl.descriptorPools, pool)
}

func (dl *DeleteList) QueueDeleteShaderModule(module vk.ShaderModule) {
	dl.shaderModules = append(dl.shaderModules, module)
}

func (dl *DeleteList) QueueDeleteBuffer(buffer vk.Buffer) {
	dl.buffers = append(dl.buffers, buffer)
}

func (dl *DeleteList) QueueDeleteBufferView(view vk.BufferView) {
	dl.bufferViews = append(dl.bufferViews, view)
}

func (dl *DeleteList) QueueDeleteImage(image vk.Image) {
	dl.images = append(dl.images, image)
}

func (dl *DeleteList) QueueDeleteImageView(view vk.ImageView) {
	dl.imageViews = append(dl.imageViews, view)
}

func (dl *DeleteList) QueueDeleteDeviceMemory(memory vk.DeviceMemory) {
	dl.deviceMemory = append(dl.deviceMemory, memory)
}

func (dl *DeleteList) QueueDeleteSampler(sampler vk.Sampler) {
	dl.samplers = append(dl.samplers, sampler)
}

func (dl *DeleteList) QueueDeletePipelineCache(cache vk.PipelineCache) {
	dl.pipelineCaches = append(dl.pipelineCaches, cache)
}

// Count returns the number of handles currently queued across all
// categories.
func (dl *DeleteList) Count() int {
	return len(dl.descriptorPools) + len(dl.shaderModules) +
		len(dl.buffers) + len(dl.bufferViews) +
		len(dl.images) + len(dl.imageViews) +
		len(dl.deviceMemory) + len(dl.samplers) + len(dl.pipelineCaches)
}

// Take moves the entire contents of src into dl, leaving src empty. The
// receiver must itself be empty: a frame slot's list is only refilled after
// its previous contents were destroyed, and a non-empty receiver means
// queued handles would be destroyed a frame too early.
func (dl *DeleteList) Take(src *DeleteList) {
	if dl.Count() != 0 {
		panic("vkctx: DeleteList.Take into a non-empty list")
	}
	*dl = *src
	*src = DeleteList{}
}

// PerformDeletes destroys every queued handle and empties the list. Views
// are destroyed before the buffers and images they were created from, so a
// view queued in the same frame as its parent is never left dangling.
func (dl *DeleteList) PerformDeletes(device vk.Device) {
	for _, pool := range dl.descriptorPools {
		vk.DestroyDescriptorPool(device, pool, nil)
	}
	dl.descriptorPools = nil
	for _, module := range dl.shaderModules {
		vk.DestroyShaderModule(device, module, nil)
	}
	dl.shaderModules = nil
	for _, view := range dl.bufferViews {
		vk.DestroyBufferView(device, view, nil)
	}
	dl.bufferViews = nil
	for _, buffer := range dl.buffers {
		vk.DestroyBuffer(device, buffer, nil)
	}
	dl.buffers = nil
	for _, view := range dl.imageViews {
		vk.DestroyImageView(device, view, nil)
	}
	dl.imageViews = nil
	for _, image := range dl.images {
		vk.DestroyImage(device, image, nil)
	}
	dl.images = nil
	for _, memory := range dl.deviceMemory {
		vk.FreeMemory(device, memory, nil)
	}
	dl.deviceMemory = nil
	for _, sampler := range dl.samplers {
		vk.DestroySampler(device, sampler, nil)
	}
	dl.samplers = nil
	for _, cache := range dl.pipelineCaches {
		vk.DestroyPipelineCache(device, cache, nil)
	}
	dl.pipelineCaches = nil
}
