package resources

import (
	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"
	"github.com/vkngwrapper/conduit/gpu"
)

// ScopedReadLockGL holds a read lock on a GPU-backed resource until Release is called
type ScopedReadLockGL struct {
	provider *ResourceProvider
	id       ResourceID

	textureID gpu.TextureID
	target    gpu.TextureTarget
	released  bool
}

// NewScopedReadLockGL read-locks a GPU-backed resource. fence is captured on the resource as in
// LockForRead and may be nil.
func NewScopedReadLockGL(provider *ResourceProvider, id ResourceID, fence *SharedFence) (*ScopedReadLockGL, error) {
	r, err := provider.LockForRead(id, fence)
	if err != nil {
		return nil, err
	}

	lock := &ScopedReadLockGL{
		provider:  provider,
		id:        id,
		textureID: r.TextureID(),
		target:    r.TextureTarget(),
	}
	if lock.textureID == 0 {
		return nil, errors.CombineErrors(
			errors.Wrapf(ErrWrongResourceType, "resource %d has no texture", id),
			provider.UnlockForRead(id),
		)
	}
	return lock, nil
}

func (l *ScopedReadLockGL) TextureID() gpu.TextureID   { return l.textureID }
func (l *ScopedReadLockGL) Target() gpu.TextureTarget { return l.target }

// Release unlocks the resource. Calling Release more than once does nothing.
func (l *ScopedReadLockGL) Release() error {
	if l.released {
		return nil
	}
	l.released = true
	return l.provider.UnlockForRead(l.id)
}

// ScopedSamplerGL is a read lock that also binds the resource's texture for sampling
type ScopedSamplerGL struct {
	*ScopedReadLockGL
}

// NewScopedSamplerGL read-locks a GPU-backed resource and binds it to target with filter
func NewScopedSamplerGL(provider *ResourceProvider, id ResourceID, fence *SharedFence, target gpu.TextureTarget, filter gputypes.FilterMode) (*ScopedSamplerGL, error) {
	lock, err := NewScopedReadLockGL(provider, id, fence)
	if err != nil {
		return nil, err
	}

	err = provider.BindForSampling(id, target, filter)
	if err != nil {
		return nil, errors.CombineErrors(err, lock.Release())
	}
	return &ScopedSamplerGL{ScopedReadLockGL: lock}, nil
}

// ScopedWriteLockGL holds a write lock on an internal texture until Release is called
type ScopedWriteLockGL struct {
	provider  *ResourceProvider
	id        ResourceID
	textureID gpu.TextureID
	released  bool
}

func NewScopedWriteLockGL(provider *ResourceProvider, id ResourceID) (*ScopedWriteLockGL, error) {
	r, err := provider.LockForWrite(id)
	if err != nil {
		return nil, err
	}

	textureID := r.TextureID()
	if r.Type() != ResourceTypeGLTexture {
		return nil, errors.CombineErrors(
			errors.Wrapf(ErrWrongResourceType, "resource %d is a %s", id, r.Type()),
			provider.UnlockForWrite(id),
		)
	}

	return &ScopedWriteLockGL{
		provider:  provider,
		id:        id,
		textureID: textureID,
	}, nil
}

func (l *ScopedWriteLockGL) TextureID() gpu.TextureID { return l.textureID }

func (l *ScopedWriteLockGL) Release() error {
	if l.released {
		return nil
	}
	l.released = true
	return l.provider.UnlockForWrite(l.id)
}

// ScopedReadLockSoftware holds a read lock on a bitmap resource until Release is called
type ScopedReadLockSoftware struct {
	provider *ResourceProvider
	id       ResourceID

	pixels   []byte
	stride   int
	size     gpu.Size
	wrapMode gputypes.AddressMode
	released bool
}

func NewScopedReadLockSoftware(provider *ResourceProvider, id ResourceID) (*ScopedReadLockSoftware, error) {
	r, err := provider.LockForRead(id, nil)
	if err != nil {
		return nil, err
	}

	if r.Type() != ResourceTypeBitmap {
		return nil, errors.CombineErrors(
			errors.Wrapf(ErrWrongResourceType, "resource %d is a %s", id, r.Type()),
			provider.UnlockForRead(id),
		)
	}

	return &ScopedReadLockSoftware{
		provider: provider,
		id:       id,
		pixels:   r.Pixels(),
		stride:   r.Stride(),
		size:     r.Size(),
		wrapMode: r.WrapMode(),
	}, nil
}

// Pixels must not be written
func (l *ScopedReadLockSoftware) Pixels() []byte                 { return l.pixels }
func (l *ScopedReadLockSoftware) Stride() int                    { return l.stride }
func (l *ScopedReadLockSoftware) Size() gpu.Size                 { return l.size }
func (l *ScopedReadLockSoftware) WrapMode() gputypes.AddressMode { return l.wrapMode }

func (l *ScopedReadLockSoftware) Release() error {
	if l.released {
		return nil
	}
	l.released = true
	return l.provider.UnlockForRead(l.id)
}

// ScopedWriteLockSoftware holds a write lock on an internal bitmap until Release is called
type ScopedWriteLockSoftware struct {
	provider *ResourceProvider
	id       ResourceID

	pixels   []byte
	stride   int
	size     gpu.Size
	released bool
}

func NewScopedWriteLockSoftware(provider *ResourceProvider, id ResourceID) (*ScopedWriteLockSoftware, error) {
	r, err := provider.LockForWrite(id)
	if err != nil {
		return nil, err
	}

	if r.Type() != ResourceTypeBitmap {
		return nil, errors.CombineErrors(
			errors.Wrapf(ErrWrongResourceType, "resource %d is a %s", id, r.Type()),
			provider.UnlockForWrite(id),
		)
	}

	return &ScopedWriteLockSoftware{
		provider: provider,
		id:       id,
		pixels:   r.Pixels(),
		stride:   r.Stride(),
		size:     r.Size(),
	}, nil
}

func (l *ScopedWriteLockSoftware) Pixels() []byte { return l.pixels }
func (l *ScopedWriteLockSoftware) Stride() int    { return l.stride }
func (l *ScopedWriteLockSoftware) Size() gpu.Size { return l.size }

func (l *ScopedWriteLockSoftware) Release() error {
	if l.released {
		return nil
	}
	l.released = true
	return l.provider.UnlockForWrite(l.id)
}

// ScopedWriteLockGpuMemoryBuffer holds a mapped GpuMemoryBuffer resource until Release is called
type ScopedWriteLockGpuMemoryBuffer struct {
	provider *ResourceProvider
	id       ResourceID

	pixels   []byte
	stride   int
	released bool
}

func NewScopedWriteLockGpuMemoryBuffer(provider *ResourceProvider, id ResourceID) (*ScopedWriteLockGpuMemoryBuffer, error) {
	pixels, stride, err := provider.LockForWriteToGpuMemoryBuffer(id)
	if err != nil {
		return nil, err
	}

	return &ScopedWriteLockGpuMemoryBuffer{
		provider: provider,
		id:       id,
		pixels:   pixels,
		stride:   stride,
	}, nil
}

// Pixels is only valid until Release
func (l *ScopedWriteLockGpuMemoryBuffer) Pixels() []byte { return l.pixels }
func (l *ScopedWriteLockGpuMemoryBuffer) Stride() int    { return l.stride }

func (l *ScopedWriteLockGpuMemoryBuffer) Release() error {
	if l.released {
		return nil
	}
	l.released = true
	l.pixels = nil
	return l.provider.UnlockForWriteToGpuMemoryBuffer(l.id)
}
