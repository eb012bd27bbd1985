package sharedmem

import (
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/conduit/gpu"
)

// Bitmap is one handle to a shared RGBA bitmap
type Bitmap struct {
	manager  *Manager
	segment  *segment
	size     gpu.Size
	byteSize int
	closed   atomic.Bool
}

func (b *Bitmap) ID() gpu.Mailbox {
	return b.segment.id
}

func (b *Bitmap) Size() gpu.Size {
	return b.size
}

// Pixels returns the bitmap's pixels, four bytes per pixel with no row padding
func (b *Bitmap) Pixels() []byte {
	return b.segment.data[:b.byteSize]
}

// Close releases this handle. The memory is unmapped once every handle is closed.
func (b *Bitmap) Close() error {
	if b.closed.Swap(true) {
		return errors.Newf("shared bitmap %s was already closed", b.segment.id)
	}
	return b.manager.releaseSegment(b.segment)
}
