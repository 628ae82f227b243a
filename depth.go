package vkctx

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// depthStencilFormats lists depth formats in preference order. Stencil
// capable formats come first so a combined attachment is available on
// hardware that has one.
var depthStencilFormats = []vk.Format{
	vk.FormatD24UnormS8Uint,
	vk.FormatD32SfloatS8Uint,
	vk.FormatD16UnormS8Uint,
	vk.FormatD32Sfloat,
	vk.FormatD16Unorm,
}

// firstDepthStencilFormat returns the first candidate usable as a depth
// stencil attachment, plus the tiling to create it with. Linear tiling wins
// over optimal when a format supports both.
func firstDepthStencilFormat(candidates []vk.Format, supported func(vk.Format) (linear, optimal bool)) (vk.Format, vk.ImageTiling, bool) {
	for _, format := range candidates {
		linear, optimal := supported(format)
		if linear {
			return format, vk.ImageTilingLinear, true
		}
		if optimal {
			return format, vk.ImageTilingOptimal, true
		}
	}
	return vk.FormatUndefined, vk.ImageTilingOptimal, false
}

// DepthStencilFormat picks the format and tiling for a surface depth buffer
// on this device.
func (p *PhysicalDevice) DepthStencilFormat() (vk.Format, vk.ImageTiling, error) {
	want := vk.FormatFeatureFlags(vk.FormatFeatureDepthStencilAttachmentBit)
	format, tiling, ok := firstDepthStencilFormat(depthStencilFormats, func(f vk.Format) (bool, bool) {
		props := p.FormatProperties(f)
		return props.LinearTilingFeatures&want != 0, props.OptimalTilingFeatures&want != 0
	})
	if !ok {
		return vk.FormatUndefined, vk.ImageTilingOptimal, ErrNoDepthFormat
	}
	return format, tiling, nil
}

func hasStencilComponent(format vk.Format) bool {
	switch format {
	case vk.FormatD16UnormS8Uint, vk.FormatD24UnormS8Uint, vk.FormatD32SfloatS8Uint, vk.FormatS8Uint:
		return true
	}
	return false
}

// DepthStencil is the depth buffer shared by all surface framebuffers.
type DepthStencil struct {
	Format vk.Format
	Aspect vk.ImageAspectFlags
	Image  *BoundImage
	View   *ImageView
}

// InitDepthStencilBuffer creates the depth buffer sized to the current
// swapchain and records its layout transition on cmd.
func (c *Context) InitDepthStencilBuffer(cmd *CommandBuffer) error {
	format, tiling, err := c.physicalDevice.DepthStencilFormat()
	if err != nil {
		return err
	}

	aspect := vk.ImageAspectFlags(vk.ImageAspectDepthBit)
	if hasStencilComponent(format) {
		aspect |= vk.ImageAspectFlags(vk.ImageAspectStencilBit)
	}

	img, err := c.device.CreateBoundImage(c.swapchain.Extent, format, tiling,
		vk.ImageUsageFlags(vk.ImageUsageDepthStencilAttachmentBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit))
	if err != nil {
		return fmt.Errorf("create depth buffer: %w", err)
	}

	view, err := img.CreateImageViewWithAspectMask(aspect)
	if err != nil {
		img.Destroy()
		img.DeviceMemory.Destroy()
		return fmt.Errorf("create depth buffer view: %w", err)
	}

	TransitionImageLayout(cmd, img.VKImage, aspect, vk.ImageLayoutUndefined, vk.ImageLayoutDepthStencilAttachmentOptimal)

	c.depth = &DepthStencil{
		Format: format,
		Aspect: aspect,
		Image:  img,
		View:   view,
	}

	return nil
}

// DestroyDepthStencilBuffer destroys the depth buffer immediately. The
// device must be idle.
func (c *Context) DestroyDepthStencilBuffer() {
	if c.depth == nil {
		return
	}
	c.depth.View.Destroy()
	c.depth.Image.Destroy()
	c.depth.Image.DeviceMemory.Destroy()
	c.depth = nil
}
