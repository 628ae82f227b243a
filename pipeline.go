package vkctx

import (
	vk "github.com/vulkan-go/vulkan"
)

type PipelineCache struct {
	Device          *Device
	VKPipelineCache vk.PipelineCache
}

func (d *Device) CreatePipelineCache() (*PipelineCache, error) {
	var pipelineCacheCreate = vk.PipelineCacheCreateInfo{}
	pipelineCacheCreate.SType = vk.StructureTypePipelineCacheCreateInfo

	var pipelineCache vk.PipelineCache

	if err := checkResult("create pipeline cache", vk.CreatePipelineCache(d.VKDevice, &pipelineCacheCreate, nil, &pipelineCache)); err != nil {
		return nil, err
	}

	var ret PipelineCache
	ret.Device = d
	ret.VKPipelineCache = pipelineCache
	return &ret, nil
}

func (p *PipelineCache) Destroy() {
	vk.DestroyPipelineCache(p.Device.VKDevice, p.VKPipelineCache, nil)
}

type GraphicsPipeline struct {
	Device     *Device
	VKPipeline vk.Pipeline
}

func (g *GraphicsPipeline) Destroy() {
	vk.DestroyPipeline(g.Device.VKDevice, g.VKPipeline, nil)
}

// CreateGraphicsPipelines realizes a batch of pipeline configs against the
// given render pass. A nil cache is allowed.
func (d *Device) CreateGraphicsPipelines(pc *PipelineCache, renderPass vk.RenderPass, extent vk.Extent2D, configs ...*GraphicsPipelineConfig) ([]*GraphicsPipeline, error) {

	ci := make([]vk.GraphicsPipelineCreateInfo, len(configs))

	for i, gconfig := range configs {
		config, err := gconfig.VKGraphicsPipelineCreateInfo(extent)
		if err != nil {
			return nil, err
		}
		config.RenderPass = renderPass
		ci[i] = config
	}

	cache := vk.NullPipelineCache
	if pc != nil {
		cache = pc.VKPipelineCache
	}

	pipelines := make([]vk.Pipeline, len(configs))
	if err := checkResult("create graphics pipelines", vk.CreateGraphicsPipelines(
		d.VKDevice, cache,
		uint32(len(ci)), ci,
		nil, pipelines)); err != nil {
		return nil, err
	}

	ret := make([]*GraphicsPipeline, len(pipelines))
	for i := range pipelines {
		ret[i] = &GraphicsPipeline{Device: d, VKPipeline: pipelines[i]}
	}

	return ret, nil
}

// CreateGraphicsPipeline is CreateGraphicsPipelines for the single config case.
func (d *Device) CreateGraphicsPipeline(pc *PipelineCache, renderPass vk.RenderPass, extent vk.Extent2D, config *GraphicsPipelineConfig) (*GraphicsPipeline, error) {
	pipelines, err := d.CreateGraphicsPipelines(pc, renderPass, extent, config)
	if err != nil {
		return nil, err
	}
	return pipelines[0], nil
}

type ComputePipeline struct {
	Device                          *Device
	VKPipeline                      vk.Pipeline
	VKPipelineShaderStageCreateInfo vk.PipelineShaderStageCreateInfo
	VKPipelineLayout                vk.PipelineLayout
}

func (c *ComputePipeline) SetPipelineLayout(layout *PipelineLayout) {
	c.VKPipelineLayout = layout.VKPipelineLayout
}

func (c *ComputePipeline) SetShaderStage(entryPoint string, shaderModule *ShaderModule) {
	c.VKPipelineShaderStageCreateInfo = shaderModule.VKPipelineShaderStageCreateInfo(vk.ShaderStageComputeBit, entryPoint)
}

func (c *ComputePipeline) Destroy() {
	vk.DestroyPipeline(c.Device.VKDevice, c.VKPipeline, nil)
}

func (d *Device) CreateComputePipelines(pc *PipelineCache, cp ...*ComputePipeline) error {

	pipelines := make([]vk.Pipeline, len(cp))

	ci := make([]vk.ComputePipelineCreateInfo, len(cp))

	for i, p := range cp {
		var pipelineCreateInfo = vk.ComputePipelineCreateInfo{}
		pipelineCreateInfo.SType = vk.StructureTypeComputePipelineCreateInfo
		pipelineCreateInfo.Stage = p.VKPipelineShaderStageCreateInfo
		pipelineCreateInfo.Layout = p.VKPipelineLayout
		ci[i] = pipelineCreateInfo
	}

	cache := vk.NullPipelineCache
	if pc != nil {
		cache = pc.VKPipelineCache
	}

	if err := checkResult("create compute pipelines", vk.CreateComputePipelines(
		d.VKDevice, cache,
		uint32(len(ci)), ci,
		nil, pipelines)); err != nil {
		return err
	}

	for i := range pipelines {
		cp[i].Device = d
		cp[i].VKPipeline = pipelines[i]
	}

	return nil

}
