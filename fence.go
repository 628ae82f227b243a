package vkctx

import (
	"fmt"
	"time"

	vk "github.com/vulkan-go/vulkan"
)

// fenceTimeout bounds every frame fence wait. A fence that has not signalled
// after this long means the device has stopped making progress.
const fenceTimeout = 10 * time.Second

type Fence struct {
	Device  *Device
	VKFence vk.Fence
}

func (d *Device) VKGetFenceStatus(f vk.Fence) vk.Result {
	return vk.GetFenceStatus(d.VKDevice, f)
}

func (d *Device) VKDestroyFence(f vk.Fence) {
	vk.DestroyFence(d.VKDevice, f, nil)
}

func (d *Device) VKCreateFence(signaled bool) (vk.Fence, error) {
	var fence vk.Fence
	var fenceCreateInfo = vk.FenceCreateInfo{}
	fenceCreateInfo.SType = vk.StructureTypeFenceCreateInfo
	if signaled {
		fenceCreateInfo.Flags = vk.FenceCreateFlags(vk.FenceCreateSignaledBit)
	} else {
		fenceCreateInfo.Flags = 0

	}
	err := vk.Error(vk.CreateFence(d.VKDevice, &fenceCreateInfo, nil, &fence))
	if err != nil {
		return nil, err
	}
	return fence, nil
}

// CreateFence creates a fence, presignalled or not. Frame slot fences are
// created presignalled so the first wait on a slot returns immediately.
func (d *Device) CreateFence(presignalled bool) (*Fence, error) {

	fence, err := d.VKCreateFence(presignalled)
	if err != nil {
		return nil, err
	}

	var ret Fence
	ret.VKFence = fence
	ret.Device = d
	return &ret, nil

}

// WaitForFence blocks until the fence signals, bounded by fenceTimeout.
// A timeout is reported as ErrDeviceLost.
func (d *Device) WaitForFence(f vk.Fence) error {
	ret := vk.WaitForFences(d.VKDevice, 1, []vk.Fence{f}, vk.True, uint64(fenceTimeout.Nanoseconds()))
	if ret == vk.Timeout {
		return fmt.Errorf("fence wait timed out after %v: %w", fenceTimeout, ErrDeviceLost)
	}
	return checkResult("vkWaitForFences", ret)
}

// WaitAndResetFence waits for the fence with the bounded timeout, then
// resets it to the unsignalled state.
func (d *Device) WaitAndResetFence(f vk.Fence) error {
	err := d.WaitForFence(f)
	if err != nil {
		return err
	}
	return checkResult("vkResetFences", vk.ResetFences(d.VKDevice, 1, []vk.Fence{f}))
}

func (d *Device) WaitForFences(waitForAll bool, ts time.Duration, fences ...*Fence) error {

	f := make([]vk.Fence, len(fences))
	for i := range fences {
		f[i] = fences[i].VKFence
	}

	var wait vk.Bool32
	if waitForAll {
		wait = vk.True
	} else {
		wait = vk.False
	}

	err := vk.Error(vk.WaitForFences(d.VKDevice, uint32(len(fences)), f, wait, uint64(ts.Nanoseconds())))

	if err != nil {
		return err
	}

	return nil

}

func (f *Fence) Destroy() {
	vk.DestroyFence(f.Device.VKDevice, f.VKFence, nil)
}
