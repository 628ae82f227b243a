package vkctx

import (
	"fmt"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// pushAlign is the minimum alignment of offsets handed out by Allocate.
const pushAlign = 4

func makeAlignUp(a uint64, align uint64) uint64 {
	m := a % align
	if m == 0 {
		return a
	}
	a = (a - m) + align
	return a
}

// PushBuffer is a fixed size host visible buffer with an append cursor, for
// data rewritten every frame: transient vertices, uniforms, staging rows.
// Allocate between Begin and End; rewind with Reset once the frame fence
// proves the GPU is done reading. Push buffers do not grow.
type PushBuffer struct {
	Buffer *Buffer
	Memory *DeviceMemory

	size   uint64
	offset uint64
	ptr    unsafe.Pointer
}

// CreatePushBuffer builds a push buffer of the given byte size and usage,
// backed by host visible coherent memory.
func (d *Device) CreatePushBuffer(sizeInBytes uint64, usage vk.BufferUsageFlags) (*PushBuffer, error) {
	buffer, err := d.CreateBufferWithOptions(sizeInBytes, usage, vk.SharingModeExclusive)
	if err != nil {
		return nil, err
	}

	memory, err := d.AllocateForBuffer(buffer, vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit))
	if err != nil {
		buffer.Destroy()
		return nil, err
	}

	if err := buffer.Bind(memory, 0); err != nil {
		buffer.Destroy()
		memory.Destroy()
		return nil, err
	}

	var ret PushBuffer
	ret.Buffer = buffer
	ret.Memory = memory
	ret.size = sizeInBytes

	return &ret, nil
}

// Begin maps the buffer and rewinds the cursor for a new frame of writes.
func (p *PushBuffer) Begin() error {
	ptr, err := p.Memory.Map()
	if err != nil {
		return err
	}
	p.ptr = ptr
	p.offset = 0
	return nil
}

// End unmaps the buffer. Offsets handed out stay valid for the GPU.
func (p *PushBuffer) End() {
	if p.ptr != nil {
		p.Memory.Unmap()
		p.ptr = nil
	}
}

// Reset rewinds the cursor without remapping.
func (p *PushBuffer) Reset() {
	p.offset = 0
}

// Offset returns the current cursor position.
func (p *PushBuffer) Offset() uint64 {
	return p.offset
}

// Size returns the buffer capacity in bytes.
func (p *PushBuffer) Size() uint64 {
	return p.size
}

// Allocate copies data into the buffer at the next 4 byte aligned offset and
// returns that offset.
func (p *PushBuffer) Allocate(data []byte) (uint64, error) {
	return p.AllocateAligned(data, pushAlign)
}

// AllocateAligned is Allocate with a caller chosen alignment, for offsets
// that must honor a device limit such as minUniformBufferOffsetAlignment.
func (p *PushBuffer) AllocateAligned(data []byte, align uint64) (uint64, error) {
	if p.ptr == nil {
		return 0, fmt.Errorf("push buffer is not mapped")
	}

	offset := makeAlignUp(p.offset, align)
	if offset+uint64(len(data)) > p.size {
		return 0, fmt.Errorf("push buffer full: %d of %d bytes used", p.offset, p.size)
	}

	const m = 0x7fffffff
	out := (*[m]byte)(p.ptr)[offset : offset+uint64(len(data))]
	copy(out, data)

	p.offset = offset + uint64(len(data))
	return offset, nil
}

// Destroy queues the buffer and its memory on the delete list so frames
// still in flight finish before the handles die.
func (p *PushBuffer) Destroy(ctx *Context) {
	ctx.Delete().QueueDeleteBuffer(p.Buffer.VKBuffer)
	ctx.Delete().QueueDeleteDeviceMemory(p.Memory.VKDeviceMemory)
	p.Buffer = nil
	p.Memory = nil
}
