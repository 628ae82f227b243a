package vkctx

import (
	vk "github.com/vulkan-go/vulkan"
)

// SamplerKey identifies a sampler configuration. It is comparable, so it can
// key a map directly.
type SamplerKey struct {
	MagFilter    vk.Filter
	MinFilter    vk.Filter
	MipmapMode   vk.SamplerMipmapMode
	AddressModeU vk.SamplerAddressMode
	AddressModeV vk.SamplerAddressMode
	MaxLod       float32
}

// SamplerCache deduplicates samplers by configuration. A sampler is created
// on first request and lives until DeviceLost or Destroy routes it through
// the context's deferred delete list.
type SamplerCache struct {
	ctx   *Context
	cache map[SamplerKey]vk.Sampler
}

func NewSamplerCache(ctx *Context) *SamplerCache {
	return &SamplerCache{
		ctx:   ctx,
		cache: make(map[SamplerKey]vk.Sampler),
	}
}

// GetOrCreateSampler returns the cached sampler for key, creating it on
// first use.
func (s *SamplerCache) GetOrCreateSampler(key SamplerKey) (vk.Sampler, error) {
	if sampler, ok := s.cache[key]; ok {
		return sampler, nil
	}

	createInfo := vk.SamplerCreateInfo{
		SType:                   vk.StructureTypeSamplerCreateInfo,
		MagFilter:               key.MagFilter,
		MinFilter:               key.MinFilter,
		MipmapMode:              key.MipmapMode,
		AddressModeU:            key.AddressModeU,
		AddressModeV:            key.AddressModeV,
		AddressModeW:            vk.SamplerAddressModeRepeat,
		MaxLod:                  key.MaxLod,
		BorderColor:             vk.BorderColorFloatOpaqueBlack,
		UnnormalizedCoordinates: vk.False,
	}

	var sampler vk.Sampler
	err := checkResult("create sampler", vk.CreateSampler(s.ctx.device.VKDevice, &createInfo, nil, &sampler))
	if err != nil {
		return vk.NullSampler, err
	}

	s.cache[key] = sampler
	return sampler, nil
}

// Size returns the number of cached samplers.
func (s *SamplerCache) Size() int {
	return len(s.cache)
}

// DeviceLost queues every cached sampler for deferred deletion and detaches
// the cache from its context.
func (s *SamplerCache) DeviceLost() {
	for _, sampler := range s.cache {
		s.ctx.Delete().QueueDeleteSampler(sampler)
	}
	s.cache = make(map[SamplerKey]vk.Sampler)
	s.ctx = nil
}

// DeviceRestore points the cache at the context built after a device loss.
func (s *SamplerCache) DeviceRestore(ctx *Context) {
	s.ctx = ctx
}

// Destroy queues every cached sampler for deferred deletion.
func (s *SamplerCache) Destroy() {
	for _, sampler := range s.cache {
		s.ctx.Delete().QueueDeleteSampler(sampler)
	}
	s.cache = nil
}
