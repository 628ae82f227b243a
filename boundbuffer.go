package vkctx

import (
	vk "github.com/vulkan-go/vulkan"
)

// HostBoundBuffer pairs a buffer in host visible memory with the BufferObject
// whose bytes it mirrors.
type HostBoundBuffer struct {
	HostBuffer   *Buffer
	HostMemory   *DeviceMemory
	BufferObject BufferObject
}

// StagedBoundBuffer adds a device local copy that is filled from the host
// buffer with CopyBuffer.
type StagedBoundBuffer struct {
	HostBoundBuffer

	DeviceBuffer *Buffer
	DeviceMemory *DeviceMemory
}

func (d *Device) CreateHostIndexBuffer(bo BufferObject, sharingMode vk.SharingMode) (*HostBoundBuffer, error) {
	buffer, dmemory, err := d.CreateAndBindBufferAndMemory(uint64(len(bo.Bytes())), 0, vk.BufferUsageFlags(vk.BufferUsageIndexBufferBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit), sharingMode)

	if err != nil {
		return nil, err
	}

	hbb := &HostBoundBuffer{
		HostBuffer:   buffer,
		HostMemory:   dmemory,
		BufferObject: bo,
	}

	return hbb, nil
}

func (d *Device) CreateHostVertexBuffer(bo BufferObject, sharingMode vk.SharingMode) (*HostBoundBuffer, error) {
	buffer, dmemory, err := d.CreateAndBindBufferAndMemory(uint64(len(bo.Bytes())), 0, vk.BufferUsageFlags(vk.BufferUsageVertexBufferBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit), sharingMode)

	if err != nil {
		return nil, err
	}

	hbb := &HostBoundBuffer{
		HostBuffer:   buffer,
		HostMemory:   dmemory,
		BufferObject: bo,
	}

	return hbb, nil
}

func (d *Device) CreateAndBindBufferAndMemory(size uint64, offset uint64, usage vk.BufferUsageFlags, mprops vk.MemoryPropertyFlags, sharing vk.SharingMode) (*Buffer, *DeviceMemory, error) {

	buffer, err := d.CreateBufferWithOptions(size, usage, sharing)
	if err != nil {
		return nil, nil, err
	}
	memory, err := d.AllocateForBuffer(buffer, mprops)
	if err != nil {
		buffer.Destroy()
		return nil, nil, err
	}
	if err := buffer.Bind(memory, offset); err != nil {
		buffer.Destroy()
		memory.Destroy()
		return nil, nil, err
	}
	return buffer, memory, nil
}

// usageForBufferObject derives buffer usage bits from the interfaces the
// object implements; plain BufferObjects become uniform buffers.
func usageForBufferObject(bo BufferObject) vk.BufferUsageFlags {
	var usage vk.BufferUsageFlags

	if _, ok := bo.(VertexSource); ok {
		usage |= vk.BufferUsageFlags(vk.BufferUsageVertexBufferBit)
	}
	if _, ok := bo.(IndexSource); ok {
		usage |= vk.BufferUsageFlags(vk.BufferUsageIndexBufferBit)
	}
	if usage == 0 {
		usage = vk.BufferUsageFlags(vk.BufferUsageUniformBufferBit)
	}

	return usage
}

func (d *Device) CreateStagedBoundBuffer(bo BufferObject) (*StagedBoundBuffer, error) {
	s := &StagedBoundBuffer{}

	s.BufferObject = bo

	size := uint64(len(bo.Bytes()))

	buffer, memory, err := d.CreateAndBindBufferAndMemory(size, 0,
		vk.BufferUsageFlags(vk.BufferUsageTransferSrcBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit),
		vk.SharingModeExclusive)

	if err != nil {
		return nil, err
	}

	s.HostBuffer = buffer
	s.HostMemory = memory

	usage := usageForBufferObject(bo) | vk.BufferUsageFlags(vk.BufferUsageTransferDstBit)

	buffer, memory, err = d.CreateAndBindBufferAndMemory(size, 0,
		usage,
		vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit),
		vk.SharingModeExclusive)

	if err != nil {
		s.Destroy()
		return nil, err
	}

	s.DeviceBuffer = buffer
	s.DeviceMemory = memory

	return s, nil
}

func (s *StagedBoundBuffer) Destroy() {
	s.HostBoundBuffer.Destroy()
	if s.DeviceMemory != nil {
		s.DeviceMemory.Destroy()
	}
	if s.DeviceBuffer != nil {
		s.DeviceBuffer.Destroy()
	}
}

func (cb *CommandBuffer) CopyBuffer(s *StagedBoundBuffer) {
	vk.CmdCopyBuffer(cb.VK(), s.HostBuffer.VKBuffer, s.DeviceBuffer.VKBuffer, 1, []vk.BufferCopy{
		{
			SrcOffset: 0,
			DstOffset: 0,
			Size:      vk.DeviceSize(s.HostBuffer.Size),
		},
	})
}

func (d *Device) CreateHostBoundBuffer(bo BufferObject) (*HostBoundBuffer, error) {
	h := &HostBoundBuffer{BufferObject: bo}

	size := uint64(len(bo.Bytes()))

	buffer, memory, err := d.CreateAndBindBufferAndMemory(size, 0,
		usageForBufferObject(bo),
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit),
		vk.SharingModeExclusive)

	if err != nil {
		return nil, err
	}

	h.HostBuffer = buffer
	h.HostMemory = memory

	return h, nil
}

// Sync copies the current bytes of the backing object into the host buffer.
func (h *HostBoundBuffer) Sync() error {
	data := h.BufferObject.Bytes()

	pm, err := h.HostMemory.MapWithSize(len(data))
	if err != nil {
		return err
	}

	const m = 0x7fffffff
	outData := (*[m]byte)(pm)[:len(data)]

	copy(outData, data)

	h.HostMemory.Unmap()

	return nil
}

func (s *HostBoundBuffer) Destroy() {
	if s.HostMemory != nil {
		s.HostMemory.Destroy()
	}
	if s.HostBuffer != nil {
		s.HostBuffer.Destroy()
	}
}
