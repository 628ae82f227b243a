/*
Package vkctx manages the lifecycle of a Vulkan rendering context for go
applications. Vulkan is a very powerful graphics and compute framework, but
everything OpenGL used to manage silently - device selection, swapchains,
frame pacing, object lifetimes - is now up to the implementing application.
This package takes over that bookkeeping while staying out of the way of the
actual rendering.

The central object is the Context. It owns the instance, the physical and
logical device, the presentation surface and swapchain, and a two slot frame
pipeline that overlaps CPU recording of one frame with GPU execution of the
previous one. A typical application runs through:

	1. NewContext to name the application and choose flags (validation,
	   preferred present modes)
	2. SetWindow to bind a GLFW window and enable the instance extensions
	   presentation requires
	3. CreateInstance, InitSurface, CreateDevice
	4. InitObjects to build the swapchain, depth buffer, render pass,
	   framebuffers and per frame resources
	5. a frame loop of BeginSurfaceRenderPass / record commands /
	   EndSurfaceRenderPass, recreating the swapchain when a resize makes
	   it out of date
	6. Destroy

Native Vulkan terms
	Instance 	the vulkan runtime instance
	PhysicalDevice	the physical hardware device
	Device		the logical device which is the target of most of the vulkan apis
	Queue 		a queue which work (command buffers) may be submitted to
	DeviceMemory	an allocation of memory on the host or device for use by buffers and images
	Buffer		a description of some bit of data (vertex, index, or other)
	Image		a description of some image
	ImageView	a way of describing how an image is utilized or viewed
	DescriptorSet 	a mapping of data for use by shaders
	Swapchain	a grouping of images which are used to display graphical data

Object lifetimes are the sharp edge of Vulkan: a buffer may not be destroyed
while a submitted frame still reads it. The Context carries a DeleteList for
exactly this; queue a handle on Delete() at any time and it is destroyed only
after the fence of the frame that last could have used it has signalled.

Beyond lifecycle management the package carries a small toolkit in the same
spirit: a PushBuffer for per frame transient data, a SamplerCache, WGSL
shader compilation via naga, staged image and buffer upload helpers, and a
pipeline config builder. All wrapper objects expose their native Vulkan
handles in fields prefixed with VK, so applications are never limited to
what this package wraps.
*/
package vkctx
