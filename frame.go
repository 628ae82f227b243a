package vkctx

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// InflightFrames is how many frames may be recorded before the oldest must
// have finished on the GPU. Frame state is double buffered and indexed by
// the low bit of the frame counter.
const InflightFrames = 2

// frameData is the per slot state of the frame pipeline. Each slot owns a
// fence that signals when its submission has finished, a pair of command
// buffers and the delete list flushed once that fence has signalled.
type frameData struct {
	fence           vk.Fence
	hasInitCommands bool
	cmdInit         *CommandBuffer
	cmdBuf          *CommandBuffer
	deleteList      DeleteList
}

func (f *frameData) init(device *Device, pool *CommandPool) error {
	buffers, err := pool.AllocateBuffers(2)
	if err != nil {
		return err
	}
	f.cmdInit = buffers[0]
	f.cmdBuf = buffers[1]

	f.fence, err = device.VKCreateFence(true)
	if err != nil {
		return err
	}

	return nil
}

func (f *frameData) destroy(device *Device, pool *CommandPool) {
	if f.cmdInit != nil {
		pool.FreeBuffer(f.cmdInit)
		f.cmdInit = nil
	}
	if f.cmdBuf != nil {
		pool.FreeBuffer(f.cmdBuf)
		f.cmdBuf = nil
	}
	if f.fence != vk.NullFence {
		device.VKDestroyFence(f.fence)
		f.fence = vk.NullFence
	}
	f.deleteList.PerformDeletes(device.VKDevice)
	f.hasInitCommands = false
}

func (c *Context) frame() *frameData {
	return &c.frames[c.curFrame&1]
}

// FrameIndex returns the frame counter. The low bit selects the frame slot,
// so applications double buffering their own resources can index them the
// same way.
func (c *Context) FrameIndex() int {
	return c.curFrame
}

// Delete returns the deferred delete list. Handles queued on it stay alive
// until the GPU can no longer be reading them and are destroyed when their
// frame slot comes around again.
func (c *Context) Delete() *DeleteList {
	return &c.globalDelete
}

// GetInitCommandBuffer returns the current frame's init command buffer,
// beginning it on first use. Anything recorded on it runs on the GPU before
// this frame's surface render pass.
func (c *Context) GetInitCommandBuffer() (*CommandBuffer, error) {
	f := c.frame()
	if !f.hasInitCommands {
		if err := f.cmdInit.BeginOneTime(); err != nil {
			return nil, err
		}
		f.hasInitCommands = true
	}
	return f.cmdInit, nil
}

// QueueBeforeSurfaceRender schedules a recorded command buffer to run ahead
// of the surface render pass in the current frame's submission. The buffer
// must stay valid until the frame slot's fence has signalled.
func (c *Context) QueueBeforeSurfaceRender(cmd *CommandBuffer) {
	c.cmdQueue = append(c.cmdQueue, cmd)
}

// SurfaceCommandBuffer returns the command buffer recording the open surface
// render pass, or nil when no pass is open.
func (c *Context) SurfaceCommandBuffer() *CommandBuffer {
	if !c.renderPassOpen {
		return nil
	}
	return c.frame().cmdBuf
}

// BeginSurfaceRenderPass starts the surface render pass for the next frame.
// It waits for the frame slot's previous submission, flushes the slot's
// delete list, acquires a swapchain image and begins recording. The returned
// command buffer remains owned by the context.
//
// An ErrOutOfDate return means the swapchain no longer matches the surface;
// recreate it and call BeginSurfaceRenderPass again.
func (c *Context) BeginSurfaceRenderPass(clearValues []vk.ClearValue) (*CommandBuffer, error) {
	if c.renderPassOpen {
		return nil, ErrRenderPassOpen
	}

	f := c.frame()

	if err := c.device.WaitForFence(f.fence); err != nil {
		return nil, err
	}

	f.deleteList.PerformDeletes(c.device.VKDevice)

	var imageIndex uint32
	res := vk.AcquireNextImage(c.device.VKDevice, c.swapchain.VKSwapchain, vk.MaxUint64, c.acquireSemaphore, vk.NullFence, &imageIndex)
	switch res {
	case vk.Success, vk.Suboptimal:
	default:
		return nil, checkResult("acquire next image", res)
	}
	c.boundImageIndex = imageIndex

	if err := f.cmdBuf.BeginOneTime(); err != nil {
		return nil, err
	}

	beginInfo := vk.RenderPassBeginInfo{
		SType:       vk.StructureTypeRenderPassBeginInfo,
		RenderPass:  c.renderPass,
		Framebuffer: c.framebuffers[imageIndex],
		RenderArea: vk.Rect2D{
			Extent: c.swapchain.Extent,
		},
		ClearValueCount: uint32(len(clearValues)),
		PClearValues:    clearValues,
	}
	vk.CmdBeginRenderPass(f.cmdBuf.VK(), &beginInfo, vk.SubpassContentsInline)

	c.renderPassOpen = true

	return f.cmdBuf, nil
}

// EndSurfaceRenderPass finishes the open surface render pass, submits the
// frame's work in one batch and presents the acquired image. Queued command
// buffers go first in the submission, then the init buffer if it was used,
// then the render pass buffer. The frame slot's fence guards the whole batch
// and the slot's delete list takes over everything queued on Delete since
// the previous frame.
func (c *Context) EndSurfaceRenderPass() error {
	if !c.renderPassOpen {
		return ErrNoRenderPass
	}

	f := c.frame()

	vk.CmdEndRenderPass(f.cmdBuf.VK())
	if err := f.cmdBuf.End(); err != nil {
		return err
	}

	f.deleteList.Take(&c.globalDelete)

	cmdBuffers := make([]vk.CommandBuffer, 0, len(c.cmdQueue)+2)
	for _, cb := range c.cmdQueue {
		cmdBuffers = append(cmdBuffers, cb.VKCommandBuffer)
	}
	c.cmdQueue = c.cmdQueue[:0]

	if f.hasInitCommands {
		if err := f.cmdInit.End(); err != nil {
			return err
		}
		cmdBuffers = append(cmdBuffers, f.cmdInit.VKCommandBuffer)
		f.hasInitCommands = false
	}

	cmdBuffers = append(cmdBuffers, f.cmdBuf.VKCommandBuffer)

	err := checkResult("reset frame fence", vk.ResetFences(c.device.VKDevice, 1, []vk.Fence{f.fence}))
	if err != nil {
		return err
	}

	waitSemaphores := []vk.Semaphore{c.acquireSemaphore}
	waitStages := []vk.PipelineStageFlags{vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit)}
	signalSemaphores := []vk.Semaphore{c.renderCompleteSemaphore}

	submitInfo := []vk.SubmitInfo{{
		SType:                vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount:   1,
		PWaitSemaphores:      waitSemaphores,
		PWaitDstStageMask:    waitStages,
		CommandBufferCount:   uint32(len(cmdBuffers)),
		PCommandBuffers:      cmdBuffers,
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    signalSemaphores,
	}}

	c.renderPassOpen = false

	err = checkResult("submit frame", vk.QueueSubmit(c.graphicsQueue.VKQueue, 1, submitInfo, f.fence))
	if err != nil {
		return err
	}

	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    signalSemaphores,
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{c.swapchain.VKSwapchain},
		PImageIndices:      []uint32{c.boundImageIndex},
	}

	res := vk.QueuePresent(c.presentQueue.VKQueue, &presentInfo)

	c.curFrame++

	switch res {
	case vk.Success:
		return nil
	case vk.Suboptimal, vk.ErrorOutOfDate:
		return fmt.Errorf("present: %w", ErrOutOfDate)
	default:
		return checkResult("present", res)
	}
}
