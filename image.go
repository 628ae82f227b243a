package vkctx

import (
	"image"
	"image/draw"
	"os"
	"unsafe"

	_ "image/jpeg"
	_ "image/png"

	vk "github.com/vulkan-go/vulkan"
)

type Image struct {
	Device   *Device
	VKImage  vk.Image
	VKFormat vk.Format
}

func (d *Image) VKMemoryRequirements() vk.MemoryRequirements {
	var memRequirements vk.MemoryRequirements
	vk.GetImageMemoryRequirements(d.Device.VKDevice, d.VKImage, &memRequirements)
	return memRequirements
}

func (d *Device) CreateImage(extent vk.Extent2D, format vk.Format, tiling vk.ImageTiling, usage vk.ImageUsageFlags) (*Image, error) {
	var imageInfo = vk.ImageCreateInfo{}
	imageInfo.SType = vk.StructureTypeImageCreateInfo
	imageInfo.ImageType = vk.ImageType2d
	imageInfo.Extent.Width = extent.Width
	imageInfo.Extent.Height = extent.Height
	imageInfo.Extent.Depth = 1
	imageInfo.MipLevels = 1
	imageInfo.ArrayLayers = 1
	imageInfo.Format = format
	imageInfo.Tiling = tiling
	imageInfo.InitialLayout = vk.ImageLayoutUndefined
	imageInfo.Usage = usage
	imageInfo.Samples = vk.SampleCount1Bit
	imageInfo.SharingMode = vk.SharingModeExclusive

	var image vk.Image

	if err := checkResult("create image", vk.CreateImage(d.VKDevice, &imageInfo, nil, &image)); err != nil {
		return nil, err
	}

	var ret Image

	ret.Device = d
	ret.VKImage = image
	ret.VKFormat = format

	return &ret, nil
}

// BoundImage is an image bound to its own device memory allocation.
type BoundImage struct {
	Image
	DeviceMemory *DeviceMemory
}

// StagedBoundImage is a device local image together with the host visible
// buffer its contents are uploaded from.
type StagedBoundImage struct {
	BoundImage
	HostBuffer *Buffer
	HostMemory *DeviceMemory
	Width      int
	Height     int
}

type LocalImage struct {
	img *image.RGBA
}

func (l *LocalImage) Bytes() []byte {
	const m = 0x7fffffff
	return (*[m]byte)(unsafe.Pointer(&l.img.Pix[0]))[:len(l.img.Pix)]
}

func LoadImageFromDisk(file string) (*LocalImage, error) {
	imageFile, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer imageFile.Close()

	src, _, err := image.Decode(imageFile)
	if err != nil {
		return nil, err
	}

	b := src.Bounds()
	m := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(m, m.Bounds(), src, b.Min, draw.Src)

	return &LocalImage{m}, nil
}

// StageRGBAImageFromMemory builds a device local sampled image of the given
// dimensions and a host visible source buffer already filled with the RGBA
// pixels at img. Record the upload with RecordUpload before sampling.
func (d *Device) StageRGBAImageFromMemory(img unsafe.Pointer, width, height int) (*StagedBoundImage, error) {

	size := uint64(width * height * 4)

	buffer, memory, err := d.CreateAndBindBufferAndMemory(size, 0,
		vk.BufferUsageFlags(vk.BufferUsageTransferSrcBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit),
		vk.SharingModeExclusive)
	if err != nil {
		return nil, err
	}

	const m = 0x7FFFFFFF
	p := (*[m]byte)(img)[:size]

	if err := memory.MapCopyUnmap(p); err != nil {
		buffer.Destroy()
		memory.Destroy()
		return nil, err
	}

	bi, err := d.CreateBoundImage(
		vk.Extent2D{Width: uint32(width), Height: uint32(height)},
		vk.FormatR8g8b8a8Unorm,
		vk.ImageTilingOptimal,
		vk.ImageUsageFlags(vk.ImageUsageTransferDstBit|vk.ImageUsageSampledBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit))

	if err != nil {
		buffer.Destroy()
		memory.Destroy()
		return nil, err
	}

	si := &StagedBoundImage{
		HostMemory: memory,
		HostBuffer: buffer,
	}
	si.Device = d
	si.VKImage = bi.VKImage
	si.DeviceMemory = bi.DeviceMemory
	si.VKFormat = bi.VKFormat
	si.Width = width
	si.Height = height

	return si, nil
}

func (d *Device) StageImageFromDisk(file string) (*StagedBoundImage, error) {

	img, err := LoadImageFromDisk(file)
	if err != nil {
		return nil, err
	}

	bounds := img.img.Bounds()

	return d.StageRGBAImageFromMemory(unsafe.Pointer(&img.img.Pix[0]), bounds.Dx(), bounds.Dy())
}

// RecordUpload records the layout transitions and the buffer to image copy
// that move the staged pixels into the device local image. After the
// recorded commands execute the image is in ShaderReadOnlyOptimal layout
// and the host buffer may be released.
func (s *StagedBoundImage) RecordUpload(cmd *CommandBuffer) {
	TransitionImageLayout(cmd, s.VKImage, vk.ImageAspectFlags(vk.ImageAspectColorBit),
		vk.ImageLayoutUndefined, vk.ImageLayoutTransferDstOptimal)
	cmd.CopyImage(s)
	TransitionImageLayout(cmd, s.VKImage, vk.ImageAspectFlags(vk.ImageAspectColorBit),
		vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutShaderReadOnlyOptimal)
}

// ReleaseHostBuffer frees the staging buffer and its memory. Only call once
// the upload commands have finished executing.
func (s *StagedBoundImage) ReleaseHostBuffer() {
	if s.HostBuffer != nil {
		s.HostBuffer.Destroy()
		s.HostBuffer = nil
	}
	if s.HostMemory != nil {
		s.HostMemory.Destroy()
		s.HostMemory = nil
	}
}

// Destroy releases the staging resources, the image and its memory.
func (s *StagedBoundImage) Destroy() {
	s.ReleaseHostBuffer()
	s.Image.Destroy()
	if s.DeviceMemory != nil {
		s.DeviceMemory.Destroy()
		s.DeviceMemory = nil
	}
}

func (cb *CommandBuffer) CopyImage(s *StagedBoundImage) {
	vk.CmdCopyBufferToImage(cb.VK(), s.HostBuffer.VKBuffer, s.VKImage, vk.ImageLayoutTransferDstOptimal, 1, []vk.BufferImageCopy{
		{
			BufferOffset:      0,
			BufferRowLength:   0,
			BufferImageHeight: 0,
			ImageSubresource: vk.ImageSubresourceLayers{
				AspectMask:     vk.ImageAspectFlags(vk.ImageAspectColorBit),
				MipLevel:       0,
				BaseArrayLayer: 0,
				LayerCount:     1,
			},
			ImageOffset: vk.Offset3D{},
			ImageExtent: vk.Extent3D{
				Width: uint32(s.Width), Height: uint32(s.Height), Depth: 1,
			},
		},
	})
}

func (d *Device) CreateBoundImage(extent vk.Extent2D, format vk.Format, tiling vk.ImageTiling, usage vk.ImageUsageFlags, props vk.MemoryPropertyFlags) (*BoundImage, error) {
	i, err := d.CreateImage(extent, format, tiling, usage)
	if err != nil {
		return nil, err
	}

	mr := i.VKMemoryRequirements()

	mr.Deref()

	mem, err := d.Allocate(int(mr.Size), mr.MemoryTypeBits, props)
	if err != nil {
		i.Destroy()
		return nil, err
	}

	boundImage := &BoundImage{}

	boundImage.Device = d
	boundImage.VKImage = i.VKImage
	boundImage.DeviceMemory = mem
	boundImage.VKFormat = i.VKFormat

	if err := checkResult("bind image memory", vk.BindImageMemory(d.VKDevice, i.VKImage, mem.VKDeviceMemory, 0)); err != nil {
		i.Destroy()
		mem.Destroy()
		return nil, err
	}

	return boundImage, nil

}

func (i *Image) Destroy() {
	vk.DestroyImage(i.Device.VKDevice, i.VKImage, nil)
}
