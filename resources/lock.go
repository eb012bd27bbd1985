package resources

import (
	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"
	"github.com/vkngwrapper/conduit/gpu"
	"github.com/vkngwrapper/conduit/memutils"
	"golang.org/x/exp/slog"
)

// LockForRead locks a resource for reading. Any number of readers may hold a resource at once.
// The resource must be allocated, and must be neither write-locked nor exported.
//
// If the resource uses read lock fences and fence is not nil, fence is captured on the resource
// and the resource cannot be written until it has passed. Passing nil captures nothing.
//
// The returned Resource may be inspected until UnlockForRead is called.
func (p *ResourceProvider) LockForRead(id ResourceID, fence *SharedFence) (*Resource, error) {
	var locked *Resource
	err := p.withLock(func() error {
		r, err := p.getResource(id)
		if err != nil {
			return err
		}

		err = p.lockForReadInternal(r, fence)
		if err != nil {
			return err
		}

		p.logger.Debug("ResourceProvider::LockForRead",
			slog.Int("id", int(id)),
			slog.Int("readers", r.lockForReadCount),
		)
		locked = r
		return nil
	})
	return locked, err
}

func (p *ResourceProvider) lockForReadInternal(r *Resource, fence *SharedFence) error {
	if err := r.checkRead(); err != nil {
		return err
	}

	if r.isGpuBacked() {
		p.waitSyncTokenIfNeeded(r)
	}

	switch b := r.backing.(type) {
	case *textureBacking:
		if r.origin == OriginInternal {
			p.lazyCreate(r, b)
		} else if b.textureID == 0 {
			b.textureID = p.textureIDs.NextID()
			p.gl.BindTexture(b.target, b.textureID)
			p.gl.ConsumeTexture(b.target, r.mailbox.Mailbox)
		}
	case *gpuMemoryBufferBacking:
		if b.dirtyImage {
			p.gl.BindTexture(b.target, b.textureID)
			p.bindImageForSampling(b)
		}
	case *bitmapBacking:
	default:
		panic("unknown resource backing")
	}

	if fence != nil && r.readLockFencesEnabled {
		r.setReadLockFence(fence)
	}

	r.lockForReadCount++
	if r.isGpuBacked() {
		r.synchronizationState = SynchronizationStateLocallyUsed
	}

	p.validate(r)
	return nil
}

// UnlockForRead releases one read lock. If the resource was marked for deletion and this was
// its last reader, it is deleted, or returned to its child if it was received from one.
func (p *ResourceProvider) UnlockForRead(id ResourceID) error {
	return p.withLock(func() error {
		r, err := p.getResource(id)
		if err != nil {
			return err
		}

		p.logger.Debug("ResourceProvider::UnlockForRead", slog.Int("id", int(id)))
		return p.unlockForReadInternal(r)
	})
}

func (p *ResourceProvider) unlockForReadInternal(r *Resource) error {
	if err := r.endRead(); err != nil {
		return err
	}
	p.validate(r)

	if !r.markedForDeletion || r.lockForReadCount > 0 || r.exportedCount > 0 {
		return nil
	}

	if r.childID == 0 {
		return p.deleteResourceInternal(r, deleteStyleNormal)
	}

	c, ok := p.children.get(r.childID)
	if !ok {
		panic(errors.AssertionFailedf("resource %d belongs to missing child %d", r.id, r.childID))
	}
	return p.deleteAndReturnUnused(c, deleteStyleNormal, []ResourceID{r.id})
}

func (p *ResourceProvider) readLockFenceHasPassed(r *Resource) bool {
	return r.readLockFence == nil || p.lostContext || r.readLockFence.HasPassed()
}

func (p *ResourceProvider) checkWriteInternal(r *Resource) error {
	if err := r.checkWrite(); err != nil {
		return err
	}
	if p.resourceLost(r) {
		return errors.Wrapf(ErrLost, "resource %d was lost with the context", r.id)
	}
	if !p.readLockFenceHasPassed(r) {
		return errors.Wrapf(ErrReadLockFencePending, "resource %d", r.id)
	}
	return nil
}

// CanLockForWrite returns true if LockForWrite would succeed
func (p *ResourceProvider) CanLockForWrite(id ResourceID) bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	r, ok := p.resources.get(id)
	if !ok {
		return false
	}
	return p.checkWriteInternal(r) == nil
}

// LockForWrite locks an internal resource for writing, committing its memory if this is the
// first write. The resource must not be read-locked, exported or lost, and its read lock fence
// must have passed.
func (p *ResourceProvider) LockForWrite(id ResourceID) (*Resource, error) {
	var locked *Resource
	err := p.withLock(func() error {
		r, err := p.getResource(id)
		if err != nil {
			return err
		}

		err = p.lockForWriteInternal(r)
		if err != nil {
			return err
		}

		p.logger.Debug("ResourceProvider::LockForWrite", slog.Int("id", int(id)))
		locked = r
		return nil
	})
	return locked, err
}

func (p *ResourceProvider) lockForWriteInternal(r *Resource) error {
	if err := p.checkWriteInternal(r); err != nil {
		return err
	}

	if err := p.lazyAllocate(r); err != nil {
		return err
	}

	if r.isGpuBacked() {
		p.waitSyncTokenIfNeeded(r)
	}

	r.lockedForWrite = true
	p.validate(r)
	return nil
}

// UnlockForWrite releases the write lock
func (p *ResourceProvider) UnlockForWrite(id ResourceID) error {
	return p.withLock(func() error {
		r, err := p.getResource(id)
		if err != nil {
			return err
		}

		p.logger.Debug("ResourceProvider::UnlockForWrite", slog.Int("id", int(id)))
		return p.unlockForWriteInternal(r)
	})
}

func (p *ResourceProvider) unlockForWriteInternal(r *Resource) error {
	if b, ok := r.backing.(*gpuMemoryBufferBacking); ok && b.mapped {
		return errors.Wrapf(ErrWrongResourceType, "resource %d is mapped and must be unlocked with UnlockForWriteToGpuMemoryBuffer", r.id)
	}

	if err := r.endWrite(); err != nil {
		return err
	}

	if r.isGpuBacked() {
		r.synchronizationState = SynchronizationStateLocallyUsed
	}

	p.validate(r)
	return nil
}

// LockForWriteToGpuMemoryBuffer locks a GpuMemoryBuffer resource for writing and maps it. The
// returned stride is the number of bytes between rows.
func (p *ResourceProvider) LockForWriteToGpuMemoryBuffer(id ResourceID) ([]byte, int, error) {
	var data []byte
	var stride int

	err := p.withLock(func() error {
		r, err := p.getResource(id)
		if err != nil {
			return err
		}

		b, ok := r.backing.(*gpuMemoryBufferBacking)
		if !ok {
			return errors.Wrapf(ErrWrongResourceType, "resource %d is a %s", id, r.Type())
		}

		err = p.lockForWriteInternal(r)
		if err != nil {
			return err
		}

		data, err = b.buffer.Map()
		if err != nil {
			r.lockedForWrite = false
			return errors.Wrapf(err, "mapping resource %d", id)
		}
		b.mapped = true
		stride = b.buffer.Stride()

		p.logger.Debug("ResourceProvider::LockForWriteToGpuMemoryBuffer",
			slog.Int("id", int(id)),
			slog.Int("stride", stride),
		)
		return nil
	})
	return data, stride, err
}

// UnlockForWriteToGpuMemoryBuffer unmaps the buffer and releases the write lock. The buffer is
// rebound to its texture the next time it is read or sent.
func (p *ResourceProvider) UnlockForWriteToGpuMemoryBuffer(id ResourceID) error {
	return p.withLock(func() error {
		r, err := p.getResource(id)
		if err != nil {
			return err
		}

		b, ok := r.backing.(*gpuMemoryBufferBacking)
		if !ok {
			return errors.Wrapf(ErrWrongResourceType, "resource %d is a %s", id, r.Type())
		}
		if !b.mapped {
			return errors.Wrapf(ErrNotLockedForWrite, "resource %d is not mapped", id)
		}

		p.logger.Debug("ResourceProvider::UnlockForWriteToGpuMemoryBuffer", slog.Int("id", int(id)))

		err = b.buffer.Unmap()
		b.mapped = false
		b.dirtyImage = true
		if endErr := p.unlockForWriteInternal(r); endErr != nil {
			return errors.CombineErrors(err, endErr)
		}
		return err
	})
}

// LazyAllocate commits the resource's memory if it has not been committed yet
func (p *ResourceProvider) LazyAllocate(id ResourceID) error {
	return p.withLock(func() error {
		r, err := p.getResource(id)
		if err != nil {
			return err
		}
		if r.origin != OriginInternal {
			return errors.Wrapf(ErrNotInternal, "resource %d has origin %s", id, r.origin)
		}

		return p.lazyAllocate(r)
	})
}

// lazyCreate generates the texture name of an internal texture and sets its parameters
func (p *ResourceProvider) lazyCreate(r *Resource, b *textureBacking) {
	if r.origin != OriginInternal || b.textureID != 0 {
		return
	}

	b.textureID = p.textureIDs.NextID()
	p.gl.BindTexture(b.target, b.textureID)
	p.gl.TexParameterFilter(b.target, r.filter)
	p.gl.TexParameterWrap(b.target, r.wrapMode)
	p.gl.TexParameterPool(b.target, b.pool)
	if p.useTextureUsageHint && b.hint == gpu.UsageHintFramebuffer {
		p.gl.TexParameterUsageHint(b.target, b.hint)
	}
}

func (p *ResourceProvider) lazyAllocate(r *Resource) error {
	if r.allocated {
		return nil
	}

	switch b := r.backing.(type) {
	case *textureBacking:
		p.lazyCreate(r, b)
		p.gl.BindTexture(b.target, b.textureID)

		if p.useTextureStorage && r.format.SupportsTextureStorage() && b.hint != gpu.UsageHintFramebuffer {
			p.gl.TexStorage2D(b.target, 1, r.format, r.size)
		} else if !r.format.IsCompressed() {
			p.gl.TexImage2D(b.target, r.format, r.size, nil)
		}
	case *bitmapBacking:
		if p.bitmaps != nil {
			bitmap, err := p.bitmaps.AllocateSharedBitmap(r.size)
			if err != nil {
				return errors.Wrapf(err, "allocating bitmap for resource %d", r.id)
			}
			b.bitmap = bitmap
			b.pixels = bitmap.Pixels()
		} else {
			size, err := memutils.SizeInBytes(r.size.Width, r.size.Height, r.format.BitsPerPixel())
			if err != nil {
				return errors.Wrapf(err, "allocating bitmap for resource %d", r.id)
			}
			b.pixels = make([]byte, size)
		}
	case *gpuMemoryBufferBacking:
		format, ok := r.format.TextureFormat()
		if !ok {
			return errors.Wrapf(ErrUnsupportedFormat, "resource %d has format %s", r.id, r.format)
		}

		buffer, err := p.buffers.AllocateGpuMemoryBuffer(r.size.Extent(), format, gputypes.TextureUsageTextureBinding|gputypes.TextureUsageCopySrc)
		if err != nil {
			return errors.Wrapf(err, "allocating gpu memory buffer for resource %d", r.id)
		}

		b.buffer = buffer
		b.textureID = p.textureIDs.NextID()
		p.gl.BindTexture(b.target, b.textureID)
		p.gl.TexParameterFilter(b.target, r.filter)
		p.gl.TexParameterWrap(b.target, r.wrapMode)
		b.imageID = p.gl.CreateImage(buffer, r.size, r.format)
		b.dirtyImage = true
	default:
		panic("unknown resource backing")
	}

	r.allocated = true
	return nil
}

// bindImageForSampling samples the buffer's current contents into the texture bound to its target
func (p *ResourceProvider) bindImageForSampling(b *gpuMemoryBufferBacking) {
	p.gl.ReleaseTexImage(b.target, b.imageID)
	p.gl.BindTexImage(b.target, b.imageID)
	b.dirtyImage = false
}

// WaitSyncTokenIfNeeded makes the command stream wait on a sync token received with the resource
// if it has not already done so
func (p *ResourceProvider) WaitSyncTokenIfNeeded(id ResourceID) error {
	return p.withLock(func() error {
		r, err := p.getResource(id)
		if err != nil {
			return err
		}
		if !r.isGpuBacked() {
			return nil
		}

		p.waitSyncTokenIfNeeded(r)
		return nil
	})
}

func (p *ResourceProvider) waitSyncTokenIfNeeded(r *Resource) {
	if r.synchronizationState != SynchronizationStateNeedsWait {
		return
	}

	if !p.lostContext && r.mailbox.SyncToken.HasData() {
		p.gl.WaitSyncToken(r.mailbox.SyncToken)
	}
	r.synchronizationState = SynchronizationStateSynchronized
}

// BindForSampling binds a read-locked GPU-backed resource to target for sampling with filter.
// A filter different from the resource's current filter is applied to the texture and stays in
// effect until changed again. Resources returned to a child have their original filter restored.
func (p *ResourceProvider) BindForSampling(id ResourceID, target gpu.TextureTarget, filter gputypes.FilterMode) error {
	return p.withLock(func() error {
		r, err := p.getResource(id)
		if err != nil {
			return err
		}
		if r.lockForReadCount == 0 {
			return errors.Wrapf(ErrNotLockedForRead, "resource %d", id)
		}

		textureID := r.TextureID()
		if textureID == 0 {
			return errors.Wrapf(ErrWrongResourceType, "resource %d has no texture", id)
		}

		p.gl.BindTexture(target, textureID)
		if filter != r.filter {
			p.gl.TexParameterFilter(target, filter)
			r.filter = filter
		}

		if b, ok := r.backing.(*gpuMemoryBufferBacking); ok && b.dirtyImage {
			p.bindImageForSampling(b)
		}

		return nil
	})
}

// EnableReadLockFences makes every later read lock capture its fence on the resource
func (p *ResourceProvider) EnableReadLockFences(id ResourceID) error {
	return p.withLock(func() error {
		r, err := p.getResource(id)
		if err != nil {
			return err
		}

		r.readLockFencesEnabled = true
		return nil
	})
}
