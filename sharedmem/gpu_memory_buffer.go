package sharedmem

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"
	"github.com/vkngwrapper/conduit/gpu"
	"github.com/vkngwrapper/conduit/memutils"
	"golang.org/x/exp/slog"
)

func linearBitsPerPixel(format gputypes.TextureFormat) (int, bool) {
	switch format {
	case gputypes.TextureFormatR8Unorm:
		return 8, true
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
		return 32, true
	}

	return 0, false
}

// GpuMemoryBuffer is a linear pixel buffer in shared memory. Map calls are reference counted
// and the buffer cannot be closed while mapped.
type GpuMemoryBuffer struct {
	manager *Manager
	segment *segment
	size    gputypes.Extent3D
	format  gputypes.TextureFormat
	usage   gputypes.TextureUsage
	stride  int

	mapMutex      sync.Mutex
	mapReferences int
	closed        bool
}

// AllocateGpuMemoryBuffer allocates a single-layer buffer. The usage must allow the buffer
// to be sampled, and only uncompressed 8-bit and 32-bit formats are supported.
func (m *Manager) AllocateGpuMemoryBuffer(size gputypes.Extent3D, format gputypes.TextureFormat, usage gputypes.TextureUsage) (gpu.GpuMemoryBuffer, error) {
	m.logger.Debug("Manager::AllocateGpuMemoryBuffer", slog.String("format", format.String()))

	if size.Width == 0 || size.Height == 0 {
		return nil, errors.Newf("cannot allocate an empty %dx%d buffer", size.Width, size.Height)
	}
	if size.DepthOrArrayLayers > 1 {
		return nil, errors.Newf("only single-layer buffers are supported, but %d layers were requested", size.DepthOrArrayLayers)
	}
	if !usage.Contains(gputypes.TextureUsageTextureBinding) {
		return nil, errors.New("gpu memory buffers must be usable as sampled textures")
	}

	bitsPerPixel, ok := linearBitsPerPixel(format)
	if !ok {
		return nil, errors.Newf("format %s cannot be stored in a gpu memory buffer", format)
	}

	stride, err := memutils.RowStride(int(size.Width), bitsPerPixel, 4)
	if err != nil {
		return nil, err
	}

	seg, err := m.allocateSegment("gmb", stride*int(size.Height))
	if err != nil {
		return nil, err
	}

	return &GpuMemoryBuffer{
		manager: m,
		segment: seg,
		size:    size,
		format:  format,
		usage:   usage,
		stride:  stride,
	}, nil
}

func (b *GpuMemoryBuffer) Size() gputypes.Extent3D {
	return b.size
}

func (b *GpuMemoryBuffer) Format() gputypes.TextureFormat {
	return b.format
}

func (b *GpuMemoryBuffer) Usage() gputypes.TextureUsage {
	return b.usage
}

func (b *GpuMemoryBuffer) Stride() int {
	return b.stride
}

// MapReferences returns the number of outstanding Map calls
func (b *GpuMemoryBuffer) MapReferences() int {
	b.mapMutex.Lock()
	defer b.mapMutex.Unlock()

	return b.mapReferences
}

func (b *GpuMemoryBuffer) Map() ([]byte, error) {
	b.mapMutex.Lock()
	defer b.mapMutex.Unlock()

	if b.closed {
		return nil, errors.New("attempted to map a closed gpu memory buffer")
	}

	b.mapReferences++
	return b.segment.data, nil
}

func (b *GpuMemoryBuffer) Unmap() error {
	b.mapMutex.Lock()
	defer b.mapMutex.Unlock()

	if b.mapReferences == 0 {
		return errors.New("gpu memory buffer has more unmaps than maps")
	}

	b.mapReferences--
	return nil
}

func (b *GpuMemoryBuffer) Close() error {
	b.mapMutex.Lock()
	defer b.mapMutex.Unlock()

	if b.closed {
		return errors.New("gpu memory buffer was already closed")
	}
	if b.mapReferences > 0 {
		return errors.Newf("attempted to close a gpu memory buffer with %d outstanding maps", b.mapReferences)
	}

	b.closed = true
	return b.manager.releaseSegment(b.segment)
}
