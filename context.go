package vkctx

import (
	"fmt"
	"log"

	"github.com/vulkan-go/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"
)

// Flags select optional context behavior. The present mode flags are
// requests; swapchain creation falls back to FIFO when the surface does not
// support a requested mode.
type Flags uint32

const (
	// FlagValidate enables the Khronos validation layer and debug reporting.
	FlagValidate Flags = 1 << iota
	// FlagPresentMailbox requests triple buffered presentation.
	FlagPresentMailbox
	// FlagPresentImmediate requests unthrottled presentation with tearing.
	FlagPresentImmediate
	// FlagPresentFifoRelaxed requests vsync that tears when a frame is late.
	FlagPresentFifoRelaxed
)

// DeviceInfo is an immutable snapshot of the device a context was created
// on, captured by CreateDevice.
type DeviceInfo struct {
	Name              string
	Properties        vk.PhysicalDeviceProperties
	MemoryProperties  vk.PhysicalDeviceMemoryProperties
	AvailableFeatures vk.PhysicalDeviceFeatures
	EnabledFeatures   vk.PhysicalDeviceFeatures
}

// Context owns the life cycle of a rendering context: instance, device,
// surface, swapchain, the frame pipeline and the deferred delete lists.
// Start from NewContext; the zero value is not usable.
//
// The expected call order is SetWindow, CreateInstance, InitSurface,
// CreateDevice, InitObjects, then the frame loop of BeginSurfaceRenderPass
// and EndSurfaceRenderPass, and finally Destroy. All calls belong on one
// thread.
type Context struct {
	flags Flags

	app      *App
	instance *Instance

	window  *glfw.Window
	surface vk.Surface

	physicalDevice *PhysicalDevice
	device         *Device
	deviceInfo     DeviceInfo

	graphicsQueue *Queue
	presentQueue  *Queue

	cmdPool *CommandPool

	swapchain       *Swapchain
	swapchainImages []*Image
	swapchainViews  []*ImageView

	depth *DepthStencil

	renderPass         vk.RenderPass
	renderPassHasDepth bool
	renderPassClears   bool
	framebuffers       []vk.Framebuffer

	acquireSemaphore        vk.Semaphore
	renderCompleteSemaphore vk.Semaphore

	frames   [InflightFrames]frameData
	curFrame int

	cmdQueue []*CommandBuffer

	globalDelete DeleteList

	renderPassOpen  bool
	boundImageIndex uint32

	curWidth  int
	curHeight int
}

// NewContext prepares a context for the given application identity. Nothing
// talks to the driver yet; the loader must already be initialized, either by
// glfw or by InitializeHeadless.
func NewContext(name string, version Version, flags Flags) (*Context, error) {
	c := &Context{
		flags: flags,
		app:   &App{Name: name, Version: version},
	}
	return c, nil
}

// SetWindow binds the GLFW window the context will present to. It must be
// called before CreateInstance so the window system's required instance
// extensions can be enabled; any of them missing from the loader is fatal.
func (c *Context) SetWindow(window *glfw.Window) error {
	if c.instance != nil {
		return fmt.Errorf("window must be set before the instance is created")
	}

	c.window = window

	supported, err := SupportedExtensions()
	if err != nil {
		return fmt.Errorf("error getting supported extensions: %w", err)
	}

	for _, ext := range window.GetRequiredInstanceExtensions() {
		found := false
		for _, s := range supported {
			if s == ext {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("extension '%s' required by the window system is not supported by vulkan", ext)
		}
		c.app.EnableExtension(ext)
	}

	c.curWidth, c.curHeight = window.GetFramebufferSize()

	return nil
}

// CreateInstance creates the Vulkan instance with the layers and extensions
// accumulated so far. FlagValidate asks for the validation layer; when the
// loader does not have it the request is logged and dropped rather than
// failing the whole context.
func (c *Context) CreateInstance() error {
	if c.instance != nil {
		return fmt.Errorf("instance already created")
	}

	validating := false
	if c.flags&FlagValidate != 0 {
		if err := c.app.EnableDebugging(); err != nil {
			log.Printf("validation requested but not available: %v", err)
		} else {
			validating = true
		}
	}

	instance, err := c.app.CreateInstance()
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	c.instance = instance

	if validating {
		if err := c.instance.UseDefaultDebugCallback(); err != nil {
			log.Printf("unable to register debug callback: %v", err)
		}
	}

	return nil
}

// InitSurface creates the presentation surface for the bound window and
// records its framebuffer size.
func (c *Context) InitSurface() error {
	if c.instance == nil {
		return fmt.Errorf("instance must be created before the surface")
	}
	if c.window == nil {
		return fmt.Errorf("no window has been set")
	}

	surface, err := c.window.CreateWindowSurface(c.instance.VKInstance, nil)
	if err != nil {
		return fmt.Errorf("create window surface: %w", err)
	}
	c.surface = vk.SurfaceFromPointer(surface)

	c.curWidth, c.curHeight = c.window.GetFramebufferSize()

	return nil
}

// InitSurfaceFromHandle adopts a surface the embedder created through some
// other window system. The context takes ownership and destroys it with the
// rest of its objects.
func (c *Context) InitSurfaceFromHandle(surface vk.Surface, width, height int) {
	c.surface = surface
	c.curWidth = width
	c.curHeight = height
}

// ReinitSurface replaces the surface after the window system invalidated it.
// With a window bound the surface is recreated and the size read back from
// the window; on the handle path the supplied dimensions are adopted and the
// embedder is expected to call InitSurfaceFromHandle again if the handle
// itself changed.
func (c *Context) ReinitSurface(width, height int) error {
	if c.window == nil {
		c.curWidth = width
		c.curHeight = height
		return nil
	}

	if c.surface != vk.NullSurface {
		vk.DestroySurface(c.instance.VKInstance, c.surface, nil)
		c.surface = vk.NullSurface
	}

	return c.InitSurface()
}

// CreateDevice picks the physical device at index and creates the logical
// device and its queue. With a surface bound the queue family must support
// both graphics and present; without one any graphics family will do.
func (c *Context) CreateDevice(index int) error {
	if c.instance == nil {
		return fmt.Errorf("instance must be created before the device")
	}
	if c.device != nil {
		return fmt.Errorf("device already created")
	}

	physicalDevices, err := c.instance.PhysicalDevices()
	if err != nil {
		return fmt.Errorf("error getting devices: %w", err)
	}
	if len(physicalDevices) == 0 {
		return fmt.Errorf("no devices found")
	}
	if index < 0 || index >= len(physicalDevices) {
		return fmt.Errorf("physical device index %d out of range, have %d devices", index, len(physicalDevices))
	}

	pdevice := physicalDevices[index]

	queues, err := pdevice.QueueFamilies()
	if err != nil {
		return fmt.Errorf("unable to load device queue families: %w", err)
	}

	var gqueues QueueFamilySlice
	if c.surface != vk.NullSurface {
		gqueues = queues.FilterGraphicsAndPresent(c.surface)
	} else {
		gqueues = queues.FilterGraphics()
	}
	if len(gqueues) == 0 {
		return ErrNoSuitableQueue
	}

	var enabledExtensions []string
	if c.surface != vk.NullSurface {
		enabledExtensions = []string{"VK_KHR_swapchain"}
	}

	device, err := pdevice.CreateLogicalDeviceWithOptions(gqueues[:1], &CreateDeviceOptions{
		EnabledExtensions: enabledExtensions,
	})
	if err != nil {
		return fmt.Errorf("unable to create device: %w", err)
	}

	c.physicalDevice = pdevice
	c.device = device

	queue := device.GetQueue(gqueues[0])
	c.graphicsQueue = queue
	c.presentQueue = queue

	available := pdevice.VKPhysicalDeviceFeatures()
	available.Deref()
	enabled := device.EnabledFeatures
	enabled.Deref()
	memProps := pdevice.VKPhysicalDeviceMemoryProperties()
	memProps.Deref()

	c.deviceInfo = DeviceInfo{
		Name:              pdevice.DeviceName,
		Properties:        pdevice.VKPhysicalDeviceProperties,
		MemoryProperties:  memProps,
		AvailableFeatures: available,
		EnabledFeatures:   enabled,
	}

	return nil
}

// InitObjects builds everything needed to draw: command pool, frame slots,
// semaphores, swapchain, optionally the depth buffer, then the surface
// render pass and framebuffers. The layout transitions it needs are recorded
// on the first frame's init command buffer and run ahead of the first frame.
func (c *Context) InitObjects(depthPresent bool) error {
	if c.device == nil {
		return fmt.Errorf("no device has been created")
	}
	if c.surface == vk.NullSurface {
		return fmt.Errorf("no surface has been created")
	}

	var err error

	c.cmdPool, err = c.device.CreateCommandPool(c.graphicsQueue.QueueFamily)
	if err != nil {
		return err
	}

	for i := range c.frames {
		if err := c.frames[i].init(c.device, c.cmdPool); err != nil {
			return err
		}
	}

	c.acquireSemaphore, err = c.device.VKCreateSemaphore()
	if err != nil {
		return err
	}
	c.renderCompleteSemaphore, err = c.device.VKCreateSemaphore()
	if err != nil {
		return err
	}

	initCmd, err := c.GetInitCommandBuffer()
	if err != nil {
		return err
	}

	if err := c.InitSwapchain(initCmd); err != nil {
		return err
	}

	if depthPresent {
		if err := c.InitDepthStencilBuffer(initCmd); err != nil {
			return err
		}
	}

	if err := c.InitSurfaceRenderPass(depthPresent, true); err != nil {
		return err
	}

	return c.InitFramebuffers(depthPresent)
}

// DestroyObjects tears down what InitObjects built, draining the GPU first
// and flushing every delete list. The device, surface and instance survive,
// so the objects can be built again.
func (c *Context) DestroyObjects() {
	if c.device == nil {
		return
	}

	c.WaitUntilQueueIdle()

	c.DestroyFramebuffers()
	c.DestroySurfaceRenderPass()
	c.DestroyDepthStencilBuffer()
	c.DestroySwapchain()

	if c.acquireSemaphore != vk.NullSemaphore {
		c.device.VKDestroySemaphore(c.acquireSemaphore)
		c.acquireSemaphore = vk.NullSemaphore
	}
	if c.renderCompleteSemaphore != vk.NullSemaphore {
		c.device.VKDestroySemaphore(c.renderCompleteSemaphore)
		c.renderCompleteSemaphore = vk.NullSemaphore
	}

	for i := range c.frames {
		c.frames[i].destroy(c.device, c.cmdPool)
	}

	c.globalDelete.PerformDeletes(c.device.VKDevice)

	if c.cmdPool != nil {
		c.cmdPool.Destroy()
		c.cmdPool = nil
	}

	c.cmdQueue = nil
	c.renderPassOpen = false
	c.curFrame = 0
}

// InitSwapchain creates the swapchain for the current surface size plus one
// view per image, and records an undefined to present-src transition for
// every image on cmd so the first presentation starts from a known layout.
func (c *Context) InitSwapchain(cmd *CommandBuffer) error {
	options := &CreateSwapchainOptions{
		ActualSize: vk.Extent2D{Width: uint32(c.curWidth), Height: uint32(c.curHeight)},
		Flags:      c.flags,
	}

	swapchain, err := c.device.CreateSwapchain(c.surface, c.graphicsQueue, c.presentQueue, options)
	if err != nil {
		return fmt.Errorf("create swapchain: %w", err)
	}
	c.swapchain = swapchain
	c.curWidth = int(swapchain.Extent.Width)
	c.curHeight = int(swapchain.Extent.Height)

	images, err := swapchain.GetImages()
	if err != nil {
		return err
	}
	c.swapchainImages = images

	c.swapchainViews = make([]*ImageView, len(images))
	for i, image := range images {
		view, err := image.CreateImageView()
		if err != nil {
			return err
		}
		c.swapchainViews[i] = view
	}

	for _, image := range images {
		TransitionImageLayout(cmd, image.VKImage, vk.ImageAspectFlags(vk.ImageAspectColorBit),
			vk.ImageLayoutUndefined, vk.ImageLayoutPresentSrc)
	}

	return nil
}

// DestroySwapchain destroys the image views and then the swapchain. The
// images themselves belong to the swapchain and die with it.
func (c *Context) DestroySwapchain() {
	for _, view := range c.swapchainViews {
		view.Destroy()
	}
	c.swapchainViews = nil
	c.swapchainImages = nil

	if c.swapchain != nil {
		c.swapchain.Destroy()
		c.swapchain = nil
	}
}

// RecreateSwapchain rebuilds the swapchain and everything sized by it,
// typically after ErrOutOfDate or a window resize. The GPU is drained first;
// the render pass keeps its previous depth and clear configuration.
func (c *Context) RecreateSwapchain(width, height int) error {
	c.WaitUntilQueueIdle()

	depthPresent := c.renderPassHasDepth
	clear := c.renderPassClears

	c.DestroyFramebuffers()
	c.DestroySurfaceRenderPass()
	c.DestroyDepthStencilBuffer()
	c.DestroySwapchain()

	c.curWidth = width
	c.curHeight = height

	initCmd, err := c.GetInitCommandBuffer()
	if err != nil {
		return err
	}

	if err := c.InitSwapchain(initCmd); err != nil {
		return err
	}

	if depthPresent {
		if err := c.InitDepthStencilBuffer(initCmd); err != nil {
			return err
		}
	}

	if err := c.InitSurfaceRenderPass(depthPresent, clear); err != nil {
		return err
	}

	return c.InitFramebuffers(depthPresent)
}

// WaitUntilQueueIdle drains the graphics queue and then the whole device.
func (c *Context) WaitUntilQueueIdle() {
	if c.graphicsQueue != nil {
		c.graphicsQueue.WaitIdle()
	}
	if c.device != nil {
		c.device.WaitIdle()
	}
}

// Destroy tears down the whole context in reverse creation order. It is safe
// to call after a partial bootstrap; stages that never ran are skipped.
func (c *Context) Destroy() {
	c.DestroyObjects()

	if c.surface != vk.NullSurface && c.instance != nil {
		vk.DestroySurface(c.instance.VKInstance, c.surface, nil)
		c.surface = vk.NullSurface
	}

	if c.device != nil {
		c.device.Destroy()
		c.device = nil
	}

	if c.instance != nil {
		c.instance.Destroy()
		c.instance = nil
	}
}

// Instance returns the instance wrapper, or nil before CreateInstance.
func (c *Context) Instance() *Instance {
	return c.instance
}

// Device returns the logical device wrapper, or nil before CreateDevice.
func (c *Context) Device() *Device {
	return c.device
}

// PhysicalDevice returns the physical device the context was created on.
func (c *Context) PhysicalDevice() *PhysicalDevice {
	return c.physicalDevice
}

// DeviceInfo returns the snapshot captured when the device was created.
func (c *Context) DeviceInfo() DeviceInfo {
	return c.deviceInfo
}

// GraphicsQueue returns the combined graphics and present queue.
func (c *Context) GraphicsQueue() *Queue {
	return c.graphicsQueue
}

// Surface returns the presentation surface handle.
func (c *Context) Surface() vk.Surface {
	return c.surface
}

// Swapchain returns the current swapchain, or nil before InitObjects.
func (c *Context) Swapchain() *Swapchain {
	return c.swapchain
}

// SurfaceRenderPass returns the render pass that draws to the surface
// framebuffers.
func (c *Context) SurfaceRenderPass() vk.RenderPass {
	return c.renderPass
}

// Width returns the current swapchain width in pixels.
func (c *Context) Width() int {
	return c.curWidth
}

// Height returns the current swapchain height in pixels.
func (c *Context) Height() int {
	return c.curHeight
}
