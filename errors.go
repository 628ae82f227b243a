package vkctx

import (
	"errors"
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// Sentinel errors returned by context and frame operations. Callers are
// expected to test for these with errors.Is and react per error:
//
//   - ErrOutOfDate means the swapchain no longer matches the surface
//     (typically after a resize). Recreate the swapchain and retry.
//   - ErrDeviceLost means the device stopped making progress. The context
//     is unusable and must be destroyed.
//
// Everything else is a plain initialization or usage failure.
var (
	ErrOutOfDate       = errors.New("swapchain out of date")
	ErrDeviceLost      = errors.New("device lost")
	ErrNoSuitableQueue = errors.New("no queue family with graphics and present support")
	ErrNoDepthFormat   = errors.New("no supported depth/stencil format")
	ErrRenderPassOpen  = errors.New("surface render pass already begun this frame")
	ErrNoRenderPass    = errors.New("no surface render pass begun this frame")
)

// checkResult converts a non-success VkResult into an error, mapping the
// results that carry recovery semantics onto the matching sentinel so they
// survive wrapping.
func checkResult(op string, ret vk.Result) error {
	switch ret {
	case vk.Success:
		return nil
	case vk.ErrorOutOfDate:
		return fmt.Errorf("%s: %w", op, ErrOutOfDate)
	case vk.ErrorDeviceLost:
		return fmt.Errorf("%s: %w", op, ErrDeviceLost)
	default:
		return fmt.Errorf("%s: %w", op, vk.Error(ret))
	}
}
