package resources

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"
	"github.com/vkngwrapper/conduit/gpu"
	"golang.org/x/exp/slog"
)

type deleteStyle int

const (
	deleteStyleNormal deleteStyle = iota
	deleteStyleForShutdown
)

// TextureMailbox describes a texture produced into a mailbox by another command stream
type TextureMailbox struct {
	Holder       gpu.MailboxHolder
	Size         gpu.Size
	Format       gpu.Format
	AllowOverlay bool
	// NearestFilter samples the texture without filtering
	NearestFilter bool
}

func (p *ResourceProvider) checkSize(size gpu.Size) error {
	if size.IsEmpty() || size.Width > p.maxTextureSize || size.Height > p.maxTextureSize {
		return errors.Wrapf(ErrInvalidSize, "size %s with max texture size %d", size, p.maxTextureSize)
	}
	return nil
}

func (p *ResourceProvider) supportsTextureFormat(format gpu.Format) bool {
	switch format {
	case gpu.FormatBGRA8888:
		return p.caps.TextureFormatBGRA8888
	case gpu.FormatETC1:
		return p.caps.TextureFormatETC1
	}
	return format.IsValid()
}

func (p *ResourceProvider) insertResource(r *Resource) ResourceID {
	r.id = p.nextID
	p.nextID++
	p.resources.insert(r)
	p.validate(r)
	return r.id
}

// CreateResource creates an internal resource of the provider's default type. No memory is
// committed until the resource is first locked for write or LazyAllocate is called.
func (p *ResourceProvider) CreateResource(size gpu.Size, wrap gputypes.AddressMode, hint gpu.UsageHint, format gpu.Format) (ResourceID, error) {
	switch p.defaultType {
	case ResourceTypeGLTexture:
		return p.CreateGLTexture(size, gpu.TextureTarget2D, gpu.TexturePoolUnmanaged, wrap, hint, format)
	case ResourceTypeBitmap:
		if format != gpu.FormatRGBA8888 {
			return 0, errors.Wrapf(ErrUnsupportedFormat, "bitmaps cannot store %s", format)
		}
		return p.CreateBitmap(size, wrap)
	case ResourceTypeGpuMemoryBuffer:
		return p.createGpuMemoryBuffer(size, wrap, format)
	}

	panic("invalid default resource type")
}

// CreateManagedResource creates a texture in the managed pool, which the GPU may evict under
// memory pressure. Software providers create a bitmap.
func (p *ResourceProvider) CreateManagedResource(size gpu.Size, target gpu.TextureTarget, wrap gputypes.AddressMode, hint gpu.UsageHint, format gpu.Format) (ResourceID, error) {
	if p.gl == nil {
		if format != gpu.FormatRGBA8888 {
			return 0, errors.Wrapf(ErrUnsupportedFormat, "bitmaps cannot store %s", format)
		}
		return p.CreateBitmap(size, wrap)
	}
	return p.CreateGLTexture(size, target, gpu.TexturePoolManaged, wrap, hint, format)
}

// CreateGLTexture creates an internal texture resource. The texture name is generated the first
// time the resource is used.
func (p *ResourceProvider) CreateGLTexture(size gpu.Size, target gpu.TextureTarget, pool gpu.TexturePool, wrap gputypes.AddressMode, hint gpu.UsageHint, format gpu.Format) (ResourceID, error) {
	var id ResourceID
	err := p.withLock(func() error {
		if p.gl == nil {
			return errors.Wrap(ErrNoContext, "cannot create a texture")
		}
		if err := p.checkSize(size); err != nil {
			return err
		}
		if !p.supportsTextureFormat(format) {
			return errors.Wrapf(ErrUnsupportedFormat, "textures cannot store %s", format)
		}

		r := newResource(0, OriginInternal, size, format, &textureBacking{
			target: target,
			pool:   pool,
			hint:   hint,
		}, gputypes.FilterModeLinear)
		r.wrapMode = wrap
		id = p.insertResource(r)

		p.logger.Debug("ResourceProvider::CreateGLTexture",
			slog.Int("id", int(id)),
			slog.String("size", size.String()),
			slog.String("format", format.String()),
		)
		return nil
	})
	return id, err
}

// CreateBitmap creates an internal RGBA bitmap resource
func (p *ResourceProvider) CreateBitmap(size gpu.Size, wrap gputypes.AddressMode) (ResourceID, error) {
	var id ResourceID
	err := p.withLock(func() error {
		if err := p.checkSize(size); err != nil {
			return err
		}

		r := newResource(0, OriginInternal, size, gpu.FormatRGBA8888, &bitmapBacking{}, gputypes.FilterModeLinear)
		r.wrapMode = wrap
		id = p.insertResource(r)

		p.logger.Debug("ResourceProvider::CreateBitmap",
			slog.Int("id", int(id)),
			slog.String("size", size.String()),
		)
		return nil
	})
	return id, err
}

func (p *ResourceProvider) createGpuMemoryBuffer(size gpu.Size, wrap gputypes.AddressMode, format gpu.Format) (ResourceID, error) {
	var id ResourceID
	err := p.withLock(func() error {
		if err := p.checkSize(size); err != nil {
			return err
		}
		if _, ok := format.TextureFormat(); !ok || format.IsCompressed() {
			return errors.Wrapf(ErrUnsupportedFormat, "gpu memory buffers cannot store %s", format)
		}

		r := newResource(0, OriginInternal, size, format, &gpuMemoryBufferBacking{
			target: gpu.TextureTarget2D,
		}, gputypes.FilterModeLinear)
		r.wrapMode = wrap
		r.readLockFencesEnabled = true
		id = p.insertResource(r)

		p.logger.Debug("ResourceProvider::createGpuMemoryBuffer",
			slog.Int("id", int(id)),
			slog.String("size", size.String()),
			slog.String("format", format.String()),
		)
		return nil
	})
	return id, err
}

// CreateResourceFromMailbox wraps a texture produced by another command stream. The texture is
// consumed the first time the resource is read. release runs once the resource is deleted, with
// the token the producer must wait on before reusing the texture.
func (p *ResourceProvider) CreateResourceFromMailbox(mailbox TextureMailbox, release *ReleaseCallback, readLockFencesEnabled bool) (ResourceID, error) {
	var id ResourceID
	err := p.withLock(func() error {
		if p.gl == nil {
			return errors.Wrap(ErrNoContext, "cannot wrap a texture mailbox")
		}
		if mailbox.Holder.IsZero() {
			return errors.New("texture mailbox has no name")
		}
		if !mailbox.Format.IsValid() {
			return errors.Wrapf(ErrUnsupportedFormat, "texture mailbox has format %d", mailbox.Format)
		}

		target := mailbox.Holder.Target
		if target == 0 {
			target = gpu.TextureTarget2D
		}

		filter := gputypes.FilterModeLinear
		if mailbox.NearestFilter {
			filter = gputypes.FilterModeNearest
		}

		r := newResource(0, OriginExternal, mailbox.Size, mailbox.Format, &textureBacking{
			target: target,
		}, filter)
		r.allocated = true
		r.mailbox = mailbox.Holder
		r.mailbox.Target = target
		r.release = release
		r.readLockFencesEnabled = readLockFencesEnabled
		r.allowOverlay = mailbox.AllowOverlay
		if r.mailbox.SyncToken.HasData() {
			r.synchronizationState = SynchronizationStateNeedsWait
		}
		id = p.insertResource(r)

		p.logger.Debug("ResourceProvider::CreateResourceFromMailbox",
			slog.Int("id", int(id)),
			slog.String("mailbox", mailbox.Holder.Mailbox.String()),
		)
		return nil
	})
	return id, err
}

// CreateResourceFromSharedBitmap wraps a bitmap owned by another producer. The provider never
// closes the bitmap: release runs once the resource is deleted and the producer may then reuse it.
func (p *ResourceProvider) CreateResourceFromSharedBitmap(size gpu.Size, bitmap gpu.SharedBitmap, release *ReleaseCallback) (ResourceID, error) {
	var id ResourceID
	err := p.withLock(func() error {
		if bitmap == nil {
			return errors.New("shared bitmap is nil")
		}
		if size.IsEmpty() {
			return errors.Wrapf(ErrInvalidSize, "size %s", size)
		}

		r := newResource(0, OriginExternal, size, gpu.FormatRGBA8888, &bitmapBacking{
			bitmap: bitmap,
			pixels: bitmap.Pixels(),
		}, gputypes.FilterModeLinear)
		if len(r.Pixels()) < r.Stride()*size.Height {
			return errors.Newf("shared bitmap holds %d bytes but a %s bitmap needs %d", len(r.Pixels()), size, r.Stride()*size.Height)
		}
		r.allocated = true
		r.mailbox.Mailbox = bitmap.ID()
		r.release = release
		id = p.insertResource(r)

		p.logger.Debug("ResourceProvider::CreateResourceFromSharedBitmap",
			slog.Int("id", int(id)),
			slog.String("size", size.String()),
		)
		return nil
	})
	return id, err
}

// DeleteResource deletes a resource. A resource that is exported or read-locked is marked for
// deletion instead and is deleted once it is returned and unlocked.
func (p *ResourceProvider) DeleteResource(id ResourceID) error {
	return p.withLock(func() error {
		r, err := p.getResource(id)
		if err != nil {
			return err
		}

		switch {
		case r.markedForDeletion:
			return errors.Wrapf(ErrMarkedForDeletion, "resource %d", id)
		case r.importedCount > 0:
			return errors.Wrapf(ErrImported, "resource %d", id)
		case r.lockedForWrite:
			return errors.Wrapf(ErrLockedForWrite, "resource %d", id)
		}

		p.logger.Debug("ResourceProvider::DeleteResource", slog.Int("id", int(id)))

		if r.exportedCount > 0 || r.lockForReadCount > 0 {
			r.markedForDeletion = true
			p.validate(r)
			return nil
		}

		return p.deleteResourceInternal(r, deleteStyleNormal)
	})
}

// deleteResourceInternal frees the resource's backing memory, runs its release callback and
// removes it from the table
func (p *ResourceProvider) deleteResourceInternal(r *Resource, style deleteStyle) error {
	if style == deleteStyleNormal && (r.exportedCount > 0 || r.lockForReadCount > 0) {
		panic(errors.AssertionFailedf("resource %d deleted while in use (read %d, exported %d)", r.id, r.lockForReadCount, r.exportedCount))
	}

	lost := p.resourceLost(r) || (style == deleteStyleForShutdown && r.exportedCount > 0)
	if lost && !r.lost {
		p.logger.LogAttrs(context.Background(), slog.LevelWarn, "resource lost during deletion",
			slog.Int("id", int(r.id)),
			slog.Int("exported", r.exportedCount),
			slog.Bool("contextLost", p.lostContext),
		)
	}

	token := r.mailbox.SyncToken
	var err error

	switch b := r.backing.(type) {
	case *textureBacking:
		p.releasePixelBuffer(b)
		if b.textureID != 0 {
			p.gl.DeleteTextures([]gpu.TextureID{b.textureID})
			b.textureID = 0
			if r.origin == OriginExternal && !lost {
				token = p.gl.InsertSyncToken()
			}
		}
	case *bitmapBacking:
		if b.bitmap != nil && r.origin != OriginExternal {
			err = b.bitmap.Close()
		}
		b.bitmap = nil
		b.pixels = nil
	case *gpuMemoryBufferBacking:
		if b.imageID != 0 {
			p.gl.DestroyImage(b.imageID)
			b.imageID = 0
		}
		if b.textureID != 0 {
			p.gl.DeleteTextures([]gpu.TextureID{b.textureID})
			b.textureID = 0
		}
		if b.buffer != nil {
			if b.mapped {
				err = b.buffer.Unmap()
				b.mapped = false
			}
			err = errors.CombineErrors(err, b.buffer.Close())
			b.buffer = nil
		}
	default:
		panic("unknown resource backing")
	}

	if r.origin == OriginExternal {
		p.postRelease(r, token, lost)
	}

	r.setReadLockFence(nil)
	p.resources.erase(r.id)

	if err != nil {
		p.logger.LogAttrs(context.Background(), slog.LevelError, "error releasing resource memory",
			slog.Int("id", int(r.id)),
			slog.Any("error", err),
		)
	}
	return err
}
