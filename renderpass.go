package vkctx

import (
	vk "github.com/vulkan-go/vulkan"
)

// surfaceRenderPassCreateInfo builds the create info for the surface render
// pass. With clear set the attachments load cleared, otherwise they load
// their previous contents so a frame can be composed across several passes.
func (c *Context) surfaceRenderPassCreateInfo(includeDepth, clear bool) vk.RenderPassCreateInfo {
	colorLoadOp := vk.AttachmentLoadOpClear
	colorInitialLayout := vk.ImageLayoutUndefined
	if !clear {
		colorLoadOp = vk.AttachmentLoadOpLoad
		colorInitialLayout = vk.ImageLayoutPresentSrc
	}

	attachmentDescriptions := []vk.AttachmentDescription{{
		Format:         c.swapchain.Format,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         colorLoadOp,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  colorInitialLayout,
		FinalLayout:    vk.ImageLayoutPresentSrc,
	}}

	colorAttachments := []vk.AttachmentReference{{
		Attachment: 0,
		Layout:     vk.ImageLayoutColorAttachmentOptimal,
	}}

	subpassDescriptions := []vk.SubpassDescription{{
		PipelineBindPoint:    vk.PipelineBindPointGraphics,
		ColorAttachmentCount: 1,
		PColorAttachments:    colorAttachments,
	}}

	if includeDepth {
		depthLoadOp := vk.AttachmentLoadOpClear
		depthInitialLayout := vk.ImageLayoutUndefined
		if !clear {
			depthLoadOp = vk.AttachmentLoadOpLoad
			depthInitialLayout = vk.ImageLayoutDepthStencilAttachmentOptimal
		}
		attachmentDescriptions = append(attachmentDescriptions, vk.AttachmentDescription{
			Format:         c.depth.Format,
			Samples:        vk.SampleCount1Bit,
			LoadOp:         depthLoadOp,
			StoreOp:        vk.AttachmentStoreOpDontCare,
			StencilLoadOp:  depthLoadOp,
			StencilStoreOp: vk.AttachmentStoreOpDontCare,
			InitialLayout:  depthInitialLayout,
			FinalLayout:    vk.ImageLayoutDepthStencilAttachmentOptimal,
		})
		subpassDescriptions[0].PDepthStencilAttachment = &vk.AttachmentReference{
			Attachment: 1,
			Layout:     vk.ImageLayoutDepthStencilAttachmentOptimal,
		}
	}

	dependency := vk.SubpassDependency{
		SrcSubpass:    vk.SubpassExternal,
		DstSubpass:    0,
		SrcStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		SrcAccessMask: 0,
		DstStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		DstAccessMask: vk.AccessFlags(vk.AccessColorAttachmentReadBit | vk.AccessColorAttachmentWriteBit),
	}

	return vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: uint32(len(attachmentDescriptions)),
		PAttachments:    attachmentDescriptions,
		SubpassCount:    1,
		PSubpasses:      subpassDescriptions,
		DependencyCount: 1,
		PDependencies:   []vk.SubpassDependency{dependency},
	}
}

// InitSurfaceRenderPass creates the render pass used for drawing to the
// surface framebuffers.
func (c *Context) InitSurfaceRenderPass(includeDepth, clear bool) error {
	createInfo := c.surfaceRenderPassCreateInfo(includeDepth, clear)

	var renderPass vk.RenderPass
	err := checkResult("create surface render pass", vk.CreateRenderPass(c.device.VKDevice, &createInfo, nil, &renderPass))
	if err != nil {
		return err
	}

	c.renderPass = renderPass
	c.renderPassHasDepth = includeDepth
	c.renderPassClears = clear
	return nil
}

func (c *Context) DestroySurfaceRenderPass() {
	if c.renderPass == vk.NullRenderPass {
		return
	}
	vk.DestroyRenderPass(c.device.VKDevice, c.renderPass, nil)
	c.renderPass = vk.NullRenderPass
}

// InitFramebuffers creates one framebuffer per swapchain image, all sharing
// the depth buffer when the render pass has one.
func (c *Context) InitFramebuffers(includeDepth bool) error {
	c.framebuffers = make([]vk.Framebuffer, len(c.swapchainViews))
	for i, view := range c.swapchainViews {
		attachments := []vk.ImageView{view.VKImageView}
		if includeDepth {
			attachments = append(attachments, c.depth.View.VKImageView)
		}
		fbCreateInfo := vk.FramebufferCreateInfo{
			SType:           vk.StructureTypeFramebufferCreateInfo,
			RenderPass:      c.renderPass,
			Layers:          1,
			AttachmentCount: uint32(len(attachments)),
			PAttachments:    attachments,
			Width:           c.swapchain.Extent.Width,
			Height:          c.swapchain.Extent.Height,
		}
		err := checkResult("create framebuffer", vk.CreateFramebuffer(c.device.VKDevice, &fbCreateInfo, nil, &c.framebuffers[i]))
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Context) DestroyFramebuffers() {
	for i := range c.framebuffers {
		vk.DestroyFramebuffer(c.device.VKDevice, c.framebuffers[i], nil)
	}
	c.framebuffers = nil
}
