package vkctx

import (
	vk "github.com/vulkan-go/vulkan"
)

// BufferObject is anything that can hand its contents over as raw bytes for
// upload into buffer memory.
type BufferObject interface {
	Bytes() []byte
}

// IndexSource supplies index data plus the index width the draw call needs.
type IndexSource interface {
	BufferObject
	IndexType() vk.IndexType
}

// VertexDescriptor describes how vertex data is laid out in memory.
type VertexDescriptor interface {
	GetBindingDescription() vk.VertexInputBindingDescription
	GetAttributeDescriptions() []vk.VertexInputAttributeDescription
}

// VertexSource supplies vertex data along with its layout.
type VertexSource interface {
	BufferObject
	VertexDescriptor
}
