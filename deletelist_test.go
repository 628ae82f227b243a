package vkctx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func TestDeleteListCount(t *testing.T) {
	var dl DeleteList
	assert.Equal(t, 0, dl.Count())

	dl.QueueDeleteBuffer(vk.NullBuffer)
	dl.QueueDeleteBufferView(vk.NullBufferView)
	dl.QueueDeleteImage(vk.NullImage)
	dl.QueueDeleteImageView(vk.NullImageView)
	dl.QueueDeleteDeviceMemory(vk.NullDeviceMemory)
	dl.QueueDeleteShaderModule(vk.NullShaderModule)
	dl.QueueDeleteDescriptorPool(vk.NullDescriptorPool)
	dl.QueueDeleteSampler(vk.NullSampler)
	dl.QueueDeletePipelineCache(vk.NullPipelineCache)

	assert.Equal(t, 9, dl.Count())
}

func TestDeleteListTakeMovesContents(t *testing.T) {
	var src, dst DeleteList
	src.QueueDeleteBuffer(vk.NullBuffer)
	src.QueueDeleteSampler(vk.NullSampler)
	src.QueueDeleteSampler(vk.NullSampler)
	require.Equal(t, 3, src.Count())

	dst.Take(&src)

	assert.Equal(t, 3, dst.Count())
	assert.Equal(t, 0, src.Count())
}

func TestDeleteListTakeTwiceFromSameSource(t *testing.T) {
	var src, a, b DeleteList
	src.QueueDeleteImage(vk.NullImage)

	a.Take(&src)
	b.Take(&src)

	assert.Equal(t, 1, a.Count())
	assert.Equal(t, 0, b.Count())
}

func TestDeleteListTakeIntoNonEmptyPanics(t *testing.T) {
	var src, dst DeleteList
	src.QueueDeleteBuffer(vk.NullBuffer)
	dst.QueueDeleteImage(vk.NullImage)

	require.Panics(t, func() { dst.Take(&src) })
}
