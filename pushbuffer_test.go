package vkctx

import (
	"bytes"
	"testing"
	"unsafe"
)

func TestAlign(t *testing.T) {
	if makeAlignUp(12, 3) != 12 {
		t.Fail()
	}

	if makeAlignUp(10, 3) != 12 {
		t.Fail()
	}

	if makeAlignUp(0, 4) != 0 {
		t.Fail()
	}

	if makeAlignUp(1, 256) != 256 {
		t.Fail()
	}
}

func TestPushBufferCursor(t *testing.T) {
	var backing [256]byte

	p := &PushBuffer{size: uint64(len(backing)), ptr: unsafe.Pointer(&backing[0])}

	off, err := p.Allocate([]byte{1, 2, 3})
	if err != nil || off != 0 {
		t.Errorf("first allocation: offset %d, err %v", off, err)
	}

	off, err = p.Allocate([]byte{4, 5})
	if err != nil || off != 4 {
		t.Errorf("second allocation: offset %d, err %v", off, err)
	}

	off, err = p.AllocateAligned([]byte{6}, 64)
	if err != nil || off != 64 {
		t.Errorf("aligned allocation: offset %d, err %v", off, err)
	}

	if !bytes.Equal(backing[0:3], []byte{1, 2, 3}) || !bytes.Equal(backing[4:6], []byte{4, 5}) || backing[64] != 6 {
		t.Errorf("backing bytes: % x", backing[:66])
	}

	if _, err := p.Allocate(make([]byte, 256)); err == nil {
		t.Error("overflow allocation succeeded")
	}

	p.Reset()
	if p.Offset() != 0 {
		t.Error("reset did not rewind the cursor")
	}
}

func TestPushBufferUnmapped(t *testing.T) {
	p := &PushBuffer{size: 16}
	if _, err := p.Allocate([]byte{1}); err == nil {
		t.Error("allocation from an unmapped buffer succeeded")
	}
}
