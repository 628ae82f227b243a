package vkctx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasLayer(t *testing.T) {
	layers := []LayerInfo{
		{Name: "VK_LAYER_KHRONOS_validation"},
		{Name: "VK_LAYER_MESA_overlay"},
	}
	assert.True(t, HasLayer(layers, "VK_LAYER_KHRONOS_validation"))
	assert.False(t, HasLayer(layers, "VK_LAYER_LUNARG_api_dump"))
	assert.False(t, HasLayer(nil, "VK_LAYER_KHRONOS_validation"))
}

func TestHasExtension(t *testing.T) {
	extensions := []ExtensionInfo{
		{Name: "VK_KHR_surface", SpecVersion: 25},
		{Name: "VK_EXT_debug_report", SpecVersion: 10},
	}
	assert.True(t, HasExtension(extensions, "VK_EXT_debug_report"))
	assert.False(t, HasExtension(extensions, "VK_KHR_swapchain"))
	assert.False(t, HasExtension(nil, "VK_KHR_surface"))
}
