// Package sharedmem allocates pixel memory that can be shared with another process: shared bitmaps
// for software compositing and GPU memory buffers that are written by the CPU and sampled by the GPU.
package sharedmem

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/docker/go-units"
	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/conduit/gpu"
	"github.com/vkngwrapper/conduit/memutils"
	"golang.org/x/exp/slog"
)

// segment is one mapping of shared memory. Every handle to it holds a reference, and the
// mapping is released with the last one.
type segment struct {
	id         gpu.Mailbox
	data       []byte
	references int
	unmap      func() error
}

// Manager owns every segment it allocated and resolves ids back to segments
type Manager struct {
	logger *slog.Logger

	mutex          sync.Mutex
	segments       *swiss.Map[gpu.Mailbox, *segment]
	allocatedBytes int
}

var _ gpu.SharedBitmapManager = &Manager{}
var _ gpu.GpuMemoryBufferManager = &Manager{}

func NewManager(logger *slog.Logger) *Manager {
	return &Manager{
		logger:   logger,
		segments: swiss.NewMap[gpu.Mailbox, *segment](16),
	}
}

// AllocatedBytes is the total size of every live segment
func (m *Manager) AllocatedBytes() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.allocatedBytes
}

// SegmentCount is the number of live segments
func (m *Manager) SegmentCount() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.segments.Count()
}

func (m *Manager) allocateSegment(kind string, size int) (*segment, error) {
	id := gpu.NewMailbox()
	data, unmap, err := mapSegment("conduit-"+kind+"-"+id.String(), size)
	if err != nil {
		return nil, err
	}

	seg := &segment{
		id:         id,
		data:       data,
		references: 1,
		unmap:      unmap,
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.segments.Put(id, seg)
	m.allocatedBytes += size

	m.logger.Debug("Manager::allocateSegment",
		slog.String("kind", kind),
		slog.String("size", units.BytesSize(float64(size))),
		slog.String("total", units.BytesSize(float64(m.allocatedBytes))),
	)

	return seg, nil
}

func (m *Manager) acquireSegment(id gpu.Mailbox, required int) (*segment, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	seg, ok := m.segments.Get(id)
	if !ok {
		return nil, errors.Newf("unknown shared memory id %s", id)
	}

	if len(seg.data) < required {
		return nil, errors.Newf("shared memory %s holds %d bytes but %d are required", id, len(seg.data), required)
	}

	seg.references++
	return seg, nil
}

func (m *Manager) releaseSegment(seg *segment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	seg.references--
	if seg.references < 0 {
		panic("shared memory segment released more times than it was acquired")
	}
	if seg.references > 0 {
		return nil
	}

	m.segments.Delete(seg.id)
	m.allocatedBytes -= len(seg.data)
	return seg.unmap()
}

// AllocateSharedBitmap allocates a new RGBA bitmap
func (m *Manager) AllocateSharedBitmap(size gpu.Size) (gpu.SharedBitmap, error) {
	m.logger.Debug("Manager::AllocateSharedBitmap")

	if size.IsEmpty() {
		return nil, errors.Newf("cannot allocate an empty %s bitmap", size)
	}

	byteSize, err := memutils.SizeInBytes(size.Width, size.Height, gpu.FormatRGBA8888.BitsPerPixel())
	if err != nil {
		return nil, err
	}

	seg, err := m.allocateSegment("bitmap", byteSize)
	if err != nil {
		return nil, err
	}

	return &Bitmap{manager: m, segment: seg, size: size, byteSize: byteSize}, nil
}

// GetSharedBitmapFromID opens another handle to a bitmap allocated from this manager. It fails
// if the id is unknown or the bitmap is too small for size.
func (m *Manager) GetSharedBitmapFromID(size gpu.Size, id gpu.Mailbox) (gpu.SharedBitmap, error) {
	m.logger.Debug("Manager::GetSharedBitmapFromID")

	if size.IsEmpty() {
		return nil, errors.Newf("cannot open an empty %s bitmap", size)
	}

	byteSize, err := memutils.SizeInBytes(size.Width, size.Height, gpu.FormatRGBA8888.BitsPerPixel())
	if err != nil {
		return nil, err
	}

	seg, err := m.acquireSegment(id, byteSize)
	if err != nil {
		return nil, err
	}

	return &Bitmap{manager: m, segment: seg, size: size, byteSize: byteSize}, nil
}
