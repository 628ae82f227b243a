package vkctx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func TestBeginSurfaceRenderPassWhileOpen(t *testing.T) {
	c := &Context{renderPassOpen: true}

	_, err := c.BeginSurfaceRenderPass(nil)

	require.ErrorIs(t, err, ErrRenderPassOpen)
}

func TestEndSurfaceRenderPassWithoutBegin(t *testing.T) {
	c := &Context{}

	err := c.EndSurfaceRenderPass()

	require.ErrorIs(t, err, ErrNoRenderPass)
}

func TestFrameSlotParity(t *testing.T) {
	c := &Context{}

	assert.Same(t, &c.frames[0], c.frame())

	c.curFrame = 1
	assert.Same(t, &c.frames[1], c.frame())

	c.curFrame = 2
	assert.Same(t, &c.frames[0], c.frame())

	c.curFrame = 7
	assert.Same(t, &c.frames[1], c.frame())
	assert.Equal(t, 7, c.FrameIndex())
}

func TestSurfaceCommandBufferOnlyWhileOpen(t *testing.T) {
	c := &Context{}
	assert.Nil(t, c.SurfaceCommandBuffer())

	cb := &CommandBuffer{}
	c.frames[0].cmdBuf = cb
	c.renderPassOpen = true

	assert.Same(t, cb, c.SurfaceCommandBuffer())
}

func TestQueueBeforeSurfaceRenderOrder(t *testing.T) {
	c := &Context{}

	a := &CommandBuffer{}
	b := &CommandBuffer{}
	c.QueueBeforeSurfaceRender(a)
	c.QueueBeforeSurfaceRender(b)

	require.Len(t, c.cmdQueue, 2)
	assert.Same(t, a, c.cmdQueue[0])
	assert.Same(t, b, c.cmdQueue[1])
}

func TestDeleteQueuesOnGlobalList(t *testing.T) {
	c := &Context{}

	c.Delete().QueueDeleteBuffer(vk.NullBuffer)
	c.Delete().QueueDeleteSampler(vk.NullSampler)

	assert.Equal(t, 2, c.globalDelete.Count())
}
