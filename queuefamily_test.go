package vkctx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func fakeFamily(index int, flags vk.QueueFlagBits) *QueueFamily {
	return &QueueFamily{
		Index: index,
		VKQueueFamilyProperties: vk.QueueFamilyProperties{
			QueueFlags: vk.QueueFlags(flags),
		},
	}
}

func TestQueueFamilyPredicates(t *testing.T) {
	q := fakeFamily(0, vk.QueueGraphicsBit|vk.QueueComputeBit|vk.QueueTransferBit)
	assert.True(t, q.IsGraphics())
	assert.True(t, q.IsCompute())
	assert.True(t, q.IsTransfer())

	q = fakeFamily(1, vk.QueueTransferBit)
	assert.False(t, q.IsGraphics())
	assert.False(t, q.IsCompute())
	assert.True(t, q.IsTransfer())
}

func TestQueueFamilyFilters(t *testing.T) {
	families := QueueFamilySlice{
		fakeFamily(0, vk.QueueGraphicsBit|vk.QueueComputeBit|vk.QueueTransferBit),
		fakeFamily(1, vk.QueueComputeBit|vk.QueueTransferBit),
		fakeFamily(2, vk.QueueTransferBit),
	}

	graphics := families.FilterGraphics()
	assert.Len(t, graphics, 1)
	assert.Equal(t, 0, graphics[0].Index)

	compute := families.FilterCompute()
	assert.Len(t, compute, 2)

	assert.Empty(t, QueueFamilySlice{}.FilterGraphics())
}
