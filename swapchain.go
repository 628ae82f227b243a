package vkctx

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

type Swapchain struct {
	Extent      vk.Extent2D
	Format      vk.Format
	ColorSpace  vk.ColorSpace
	Device      *Device
	VKSwapchain vk.Swapchain
}

func (s *Swapchain) Destroy() {
	vk.DestroySwapchain(s.Device.VKDevice, s.VKSwapchain, nil)
}

func (s *Swapchain) GetImages() ([]*Image, error) {
	var imageCount uint32
	err := vk.Error(vk.GetSwapchainImages(s.Device.VKDevice, s.VKSwapchain, &imageCount, nil))
	if err != nil {
		return nil, err
	}

	swapchainImages := make([]vk.Image, imageCount)
	err = vk.Error(vk.GetSwapchainImages(s.Device.VKDevice, s.VKSwapchain, &imageCount, swapchainImages))

	ret := make([]*Image, imageCount)
	for i := range swapchainImages {
		ret[i] = &Image{}
		ret[i].Device = s.Device
		ret[i].VKImage = swapchainImages[i]
		ret[i].VKFormat = s.Format
	}

	return ret, err
}

type CreateSwapchainOptions struct {
	OldSwapchain              *Swapchain
	ActualSize                vk.Extent2D
	DesiredNumSwapchainImages int
	Flags                     Flags
}

// choosePresentMode picks the present mode for a new swapchain. Modes the
// caller asked for through flags are considered in priority order: mailbox,
// then immediate, then FIFO-relaxed, each only when the surface reports it.
// FIFO is the fallback and is always available.
func choosePresentMode(modes VKPresentModes, flags Flags) vk.PresentMode {
	if flags&FlagPresentMailbox != 0 && modes.Contains(vk.PresentModeMailbox) {
		return vk.PresentModeMailbox
	}
	if flags&FlagPresentImmediate != 0 && modes.Contains(vk.PresentModeImmediate) {
		return vk.PresentModeImmediate
	}
	if flags&FlagPresentFifoRelaxed != 0 && modes.Contains(vk.PresentModeFifoRelaxed) {
		return vk.PresentModeFifoRelaxed
	}
	return vk.PresentModeFifo
}

// clampImageCount bounds the desired image count by the surface limits. A
// max of zero means the surface imposes no upper limit.
func clampImageCount(desired, min, max uint32) uint32 {
	if desired < min {
		desired = min
	}
	if max > 0 && desired > max {
		desired = max
	}
	return desired
}

// chooseSurfaceFormat picks the swapchain format from the Deref'd surface
// format list. A single undefined entry means the surface accepts anything.
func chooseSurfaceFormat(formats []vk.SurfaceFormat) vk.SurfaceFormat {
	if len(formats) == 1 && formats[0].Format == vk.FormatUndefined {
		return vk.SurfaceFormat{
			Format:     vk.FormatB8g8r8a8Unorm,
			ColorSpace: formats[0].ColorSpace,
		}
	}
	for _, f := range formats {
		if f.Format == vk.FormatB8g8r8a8Unorm {
			return f
		}
	}
	return formats[0]
}

func clampExtent(desired, min, max vk.Extent2D) vk.Extent2D {
	if desired.Width < min.Width {
		desired.Width = min.Width
	}
	if desired.Height < min.Height {
		desired.Height = min.Height
	}
	if max.Width > 0 && desired.Width > max.Width {
		desired.Width = max.Width
	}
	if max.Height > 0 && desired.Height > max.Height {
		desired.Height = max.Height
	}
	return desired
}

func (p *Device) DefaultNumSwapchainImages(surface vk.Surface) (int, error) {
	caps, err := p.PhysicalDevice.GetSurfaceCapabilities(surface)
	if err != nil {
		return 0, err
	}
	caps.Deref()

	return int(caps.MinImageCount) + 1, nil
}

func (p *Device) CreateSwapchain(surface vk.Surface, graphicsQueue, presentQueue *Queue, options *CreateSwapchainOptions) (*Swapchain, error) {

	var flags Flags
	if options != nil {
		flags = options.Flags
	}

	modes, err := p.PhysicalDevice.GetSurfacePresentModes(surface)
	if err != nil {
		return nil, err
	}

	presentMode := choosePresentMode(modes, flags)

	surfaceFormats, err := p.PhysicalDevice.GetSurfaceFormats(surface)
	if err != nil {
		return nil, err
	}
	if len(surfaceFormats) == 0 {
		return nil, fmt.Errorf("surface reports no formats")
	}

	formats := make([]vk.SurfaceFormat, len(surfaceFormats))
	for i := range surfaceFormats {
		surfaceFormats[i].Deref()
		formats[i] = surfaceFormats[i]
	}
	format := chooseSurfaceFormat(formats)

	caps, err := p.PhysicalDevice.GetSurfaceCapabilities(surface)
	if err != nil {
		return nil, err
	}
	caps.Deref()

	var swapchainSize vk.Extent2D

	caps.CurrentExtent.Deref()
	caps.MinImageExtent.Deref()
	caps.MaxImageExtent.Deref()
	if caps.CurrentExtent.Width == vk.MaxUint32 {
		actual := caps.MinImageExtent
		if options != nil {
			actual = options.ActualSize
		}
		swapchainSize = clampExtent(actual, caps.MinImageExtent, caps.MaxImageExtent)
	} else {
		swapchainSize = caps.CurrentExtent
	}

	desired := 0
	if options != nil {
		desired = options.DesiredNumSwapchainImages
	}
	if desired == 0 {
		desired = int(caps.MinImageCount) + 1
	}
	imageCount := clampImageCount(uint32(desired), caps.MinImageCount, caps.MaxImageCount)

	preTransform := caps.CurrentTransform
	if caps.SupportedTransforms&vk.SurfaceTransformFlags(vk.SurfaceTransformIdentityBit) != 0 {
		preTransform = vk.SurfaceTransformIdentityBit
	}

	var swapchain vk.Swapchain

	createInfo := &vk.SwapchainCreateInfo{
		SType:           vk.StructureTypeSwapchainCreateInfo,
		Surface:         surface,
		MinImageCount:   imageCount,
		ImageFormat:     format.Format,
		ImageColorSpace: format.ColorSpace,
		ImageExtent: vk.Extent2D{
			Width:  swapchainSize.Width,
			Height: swapchainSize.Height,
		},
		PresentMode:      presentMode,
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		ImageArrayLayers: 1,
		Clipped:          vk.True,
		PreTransform:     preTransform,
		CompositeAlpha:   vk.CompositeAlphaOpaqueBit,
		OldSwapchain:     vk.NullSwapchain,
	}

	if options != nil {
		if options.OldSwapchain != nil {
			createInfo.OldSwapchain = options.OldSwapchain.VKSwapchain
		}

	}

	if graphicsQueue.QueueFamily.Index != presentQueue.QueueFamily.Index {
		createInfo.QueueFamilyIndexCount = 2
		createInfo.PQueueFamilyIndices = []uint32{uint32(graphicsQueue.QueueFamily.Index), uint32(presentQueue.QueueFamily.Index)}
		createInfo.ImageSharingMode = vk.SharingModeConcurrent
	} else {
		createInfo.QueueFamilyIndexCount = 0
		createInfo.PQueueFamilyIndices = nil
		createInfo.ImageSharingMode = vk.SharingModeExclusive
	}

	err = vk.Error(vk.CreateSwapchain(p.VKDevice, createInfo, nil, &swapchain))
	if err != nil {
		return nil, err
	}

	var ret Swapchain
	ret.VKSwapchain = swapchain
	ret.Device = p
	ret.Extent = vk.Extent2D{
		Width:  swapchainSize.Width,
		Height: swapchainSize.Height,
	}
	ret.Format = format.Format
	ret.ColorSpace = format.ColorSpace

	return &ret, nil

}
