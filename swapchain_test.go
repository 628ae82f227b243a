package vkctx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func TestChoosePresentModePriority(t *testing.T) {
	all := VKPresentModes{
		vk.PresentModeMailbox,
		vk.PresentModeImmediate,
		vk.PresentModeFifoRelaxed,
		vk.PresentModeFifo,
	}

	flags := FlagPresentMailbox | FlagPresentImmediate | FlagPresentFifoRelaxed

	assert.Equal(t, vk.PresentModeMailbox, choosePresentMode(all, flags))

	assert.Equal(t, vk.PresentModeImmediate, choosePresentMode(VKPresentModes{vk.PresentModeImmediate, vk.PresentModeFifo}, flags))

	assert.Equal(t, vk.PresentModeFifoRelaxed, choosePresentMode(VKPresentModes{vk.PresentModeFifoRelaxed, vk.PresentModeFifo}, flags))

	assert.Equal(t, vk.PresentModeFifo, choosePresentMode(VKPresentModes{vk.PresentModeFifo}, flags))
}

func TestChoosePresentModeRespectsFlags(t *testing.T) {
	all := VKPresentModes{
		vk.PresentModeMailbox,
		vk.PresentModeImmediate,
		vk.PresentModeFifoRelaxed,
		vk.PresentModeFifo,
	}

	assert.Equal(t, vk.PresentModeFifo, choosePresentMode(all, 0))
	assert.Equal(t, vk.PresentModeImmediate, choosePresentMode(all, FlagPresentImmediate))
	assert.Equal(t, vk.PresentModeFifoRelaxed, choosePresentMode(all, FlagPresentFifoRelaxed))

	// A requested mode the surface does not support falls through.
	assert.Equal(t, vk.PresentModeFifo, choosePresentMode(VKPresentModes{vk.PresentModeFifo}, FlagPresentMailbox))
}

func TestClampImageCount(t *testing.T) {
	assert.Equal(t, uint32(2), clampImageCount(1, 2, 8))
	assert.Equal(t, uint32(8), clampImageCount(9, 2, 8))
	assert.Equal(t, uint32(3), clampImageCount(3, 2, 8))

	// A max of zero means no upper limit.
	assert.Equal(t, uint32(64), clampImageCount(64, 2, 0))
}

func TestChooseSurfaceFormat(t *testing.T) {
	anything := []vk.SurfaceFormat{{
		Format:     vk.FormatUndefined,
		ColorSpace: vk.ColorSpaceSrgbNonlinear,
	}}
	got := chooseSurfaceFormat(anything)
	assert.Equal(t, vk.FormatB8g8r8a8Unorm, got.Format)
	assert.Equal(t, vk.ColorSpaceSrgbNonlinear, got.ColorSpace)

	preferred := []vk.SurfaceFormat{
		{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
	}
	assert.Equal(t, vk.FormatB8g8r8a8Unorm, chooseSurfaceFormat(preferred).Format)

	fallback := []vk.SurfaceFormat{
		{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		{Format: vk.FormatR5g6b5UnormPack16, ColorSpace: vk.ColorSpaceSrgbNonlinear},
	}
	assert.Equal(t, vk.FormatR8g8b8a8Unorm, chooseSurfaceFormat(fallback).Format)
}

func TestClampExtent(t *testing.T) {
	min := vk.Extent2D{Width: 100, Height: 100}
	max := vk.Extent2D{Width: 2000, Height: 1000}

	got := clampExtent(vk.Extent2D{Width: 800, Height: 600}, min, max)
	assert.Equal(t, vk.Extent2D{Width: 800, Height: 600}, got)

	got = clampExtent(vk.Extent2D{Width: 10, Height: 10}, min, max)
	assert.Equal(t, min, got)

	got = clampExtent(vk.Extent2D{Width: 4000, Height: 4000}, min, max)
	assert.Equal(t, max, got)

	// Zero max leaves the dimension unbounded.
	got = clampExtent(vk.Extent2D{Width: 4000, Height: 4000}, min, vk.Extent2D{})
	assert.Equal(t, vk.Extent2D{Width: 4000, Height: 4000}, got)
}
