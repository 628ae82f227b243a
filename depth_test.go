package vkctx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func TestFirstDepthStencilFormatPrefersEarlierCandidates(t *testing.T) {
	format, tiling, ok := firstDepthStencilFormat(depthStencilFormats, func(f vk.Format) (bool, bool) {
		return false, true
	})

	assert.True(t, ok)
	assert.Equal(t, vk.FormatD24UnormS8Uint, format)
	assert.Equal(t, vk.ImageTilingOptimal, tiling)
}

func TestFirstDepthStencilFormatLinearWinsOverOptimal(t *testing.T) {
	format, tiling, ok := firstDepthStencilFormat(depthStencilFormats, func(f vk.Format) (bool, bool) {
		return true, true
	})

	assert.True(t, ok)
	assert.Equal(t, vk.FormatD24UnormS8Uint, format)
	assert.Equal(t, vk.ImageTilingLinear, tiling)
}

func TestFirstDepthStencilFormatSkipsUnsupported(t *testing.T) {
	format, tiling, ok := firstDepthStencilFormat(depthStencilFormats, func(f vk.Format) (bool, bool) {
		if f == vk.FormatD32Sfloat {
			return false, true
		}
		return false, false
	})

	assert.True(t, ok)
	assert.Equal(t, vk.FormatD32Sfloat, format)
	assert.Equal(t, vk.ImageTilingOptimal, tiling)
}

func TestFirstDepthStencilFormatNoneSupported(t *testing.T) {
	format, _, ok := firstDepthStencilFormat(depthStencilFormats, func(f vk.Format) (bool, bool) {
		return false, false
	})

	assert.False(t, ok)
	assert.Equal(t, vk.FormatUndefined, format)
}

func TestHasStencilComponent(t *testing.T) {
	assert.True(t, hasStencilComponent(vk.FormatD24UnormS8Uint))
	assert.True(t, hasStencilComponent(vk.FormatD32SfloatS8Uint))
	assert.True(t, hasStencilComponent(vk.FormatD16UnormS8Uint))
	assert.True(t, hasStencilComponent(vk.FormatS8Uint))

	assert.False(t, hasStencilComponent(vk.FormatD32Sfloat))
	assert.False(t, hasStencilComponent(vk.FormatD16Unorm))
}
