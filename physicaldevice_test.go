package vkctx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func TestPresentModesContains(t *testing.T) {
	modes := VKPresentModes{vk.PresentModeFifo, vk.PresentModeMailbox}

	assert.True(t, modes.Contains(vk.PresentModeFifo))
	assert.True(t, modes.Contains(vk.PresentModeMailbox))
	assert.False(t, modes.Contains(vk.PresentModeImmediate))

	assert.Len(t, modes.Filter(vk.PresentModeMailbox), 1)
	assert.Empty(t, VKPresentModes{}.Filter(vk.PresentModeFifo))
}

func TestMemoryTypeSliceCounts(t *testing.T) {
	hostVisible := vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit)
	hostCoherent := vk.MemoryPropertyFlags(vk.MemoryPropertyHostCoherentBit)
	deviceLocal := vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit)

	types := MemoryTypeSlice{
		{PropertyFlags: deviceLocal},
		{PropertyFlags: hostVisible | hostCoherent},
		{PropertyFlags: hostVisible},
		{PropertyFlags: deviceLocal | hostVisible | hostCoherent},
	}

	assert.Equal(t, 3, types.NumHostVisible())
	assert.Equal(t, 2, types.NumHostCoherent())
	assert.Equal(t, 2, types.NumDeviceLocal())

	both := types.Filter(func(p vk.MemoryPropertyFlagBits) bool {
		return p&vk.MemoryPropertyDeviceLocalBit != 0 && p&vk.MemoryPropertyHostVisibleBit != 0
	})
	assert.Len(t, both, 1)
}
