package resources

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/conduit/gpu"
	"golang.org/x/exp/slog"
)

func (p *ResourceProvider) getPixelBufferTexture(id ResourceID) (*Resource, *textureBacking, error) {
	r, err := p.getResource(id)
	if err != nil {
		return nil, nil, err
	}

	b, ok := r.backing.(*textureBacking)
	if !ok {
		return nil, nil, errors.Wrapf(ErrWrongResourceType, "resource %d is a %s", id, r.Type())
	}
	if r.origin != OriginInternal {
		return nil, nil, errors.Wrapf(ErrNotInternal, "resource %d has origin %s", id, r.origin)
	}
	return r, b, nil
}

func pixelBufferStride(r *Resource) int {
	return r.size.Width * r.format.BitsPerPixel() / 8
}

// AcquirePixelBuffer gives an internal texture a staging buffer big enough for all of its pixels
// with tightly packed rows. Acquiring again discards the buffer's contents.
func (p *ResourceProvider) AcquirePixelBuffer(id ResourceID) error {
	return p.withLock(func() error {
		r, b, err := p.getPixelBufferTexture(id)
		if err != nil {
			return err
		}
		if r.format.IsCompressed() {
			return errors.Wrapf(ErrUnsupportedFormat, "cannot stage %s pixels for resource %d", r.format, id)
		}
		if r.lost {
			return errors.Wrapf(ErrLost, "resource %d", id)
		}
		if b.pixelBufferMapped {
			return errors.Wrapf(ErrPixelBufferMapped, "resource %d", id)
		}

		if b.pixelBuffer == 0 {
			b.pixelBuffer = p.bufferIDs.NextID()
		}
		p.gl.BufferData(b.pixelBuffer, pixelBufferStride(r)*r.size.Height)

		p.logger.Debug("ResourceProvider::AcquirePixelBuffer",
			slog.Int("id", int(id)),
			slog.Int("buffer", int(b.pixelBuffer)),
		)
		return nil
	})
}

// MapPixelBuffer returns the staging buffer of a resource and its row stride for the CPU to
// write into. The buffer must be unmapped before SetPixelsFromPixelBuffer.
func (p *ResourceProvider) MapPixelBuffer(id ResourceID) ([]byte, int, error) {
	var data []byte
	var stride int

	err := p.withLock(func() error {
		r, b, err := p.getPixelBufferTexture(id)
		if err != nil {
			return err
		}
		if b.pixelBuffer == 0 {
			return errors.Wrapf(ErrNoPixelBuffer, "resource %d", id)
		}
		if b.pixelBufferMapped {
			return errors.Wrapf(ErrPixelBufferMapped, "resource %d is already mapped", id)
		}

		data = p.gl.MapBuffer(b.pixelBuffer)
		b.pixelBufferMapped = true
		stride = pixelBufferStride(r)
		return nil
	})
	return data, stride, err
}

func (p *ResourceProvider) UnmapPixelBuffer(id ResourceID) error {
	return p.withLock(func() error {
		_, b, err := p.getPixelBufferTexture(id)
		if err != nil {
			return err
		}
		if !b.pixelBufferMapped {
			return errors.Wrapf(ErrPixelBufferMapped, "resource %d is not mapped", id)
		}

		p.gl.UnmapBuffer(b.pixelBuffer)
		b.pixelBufferMapped = false
		return nil
	})
}

// SetPixelsFromPixelBuffer uploads the whole staging buffer into the resource's texture,
// allocating the texture if needed. The resource must be writable.
func (p *ResourceProvider) SetPixelsFromPixelBuffer(id ResourceID) error {
	return p.withLock(func() error {
		r, b, err := p.getPixelBufferTexture(id)
		if err != nil {
			return err
		}
		if b.pixelBuffer == 0 {
			return errors.Wrapf(ErrNoPixelBuffer, "resource %d", id)
		}
		if b.pixelBufferMapped {
			return errors.Wrapf(ErrPixelBufferMapped, "resource %d is still mapped", id)
		}
		if err := p.checkWriteInternal(r); err != nil {
			return err
		}

		if err := p.lazyAllocate(r); err != nil {
			return err
		}
		p.waitSyncTokenIfNeeded(r)

		p.logger.Debug("ResourceProvider::SetPixelsFromPixelBuffer",
			slog.Int("id", int(id)),
			slog.Int("buffer", int(b.pixelBuffer)),
		)

		p.gl.BindTexture(b.target, b.textureID)
		p.gl.TexSubImage2DFromBuffer(b.target, r.format, 0, 0, r.size, b.pixelBuffer)
		r.synchronizationState = SynchronizationStateLocallyUsed

		p.validate(r)
		return nil
	})
}

// ReleasePixelBuffer deletes the staging buffer of a resource. Releasing a resource without one
// does nothing.
func (p *ResourceProvider) ReleasePixelBuffer(id ResourceID) error {
	return p.withLock(func() error {
		_, b, err := p.getPixelBufferTexture(id)
		if err != nil {
			return err
		}

		p.releasePixelBuffer(b)
		return nil
	})
}

func (p *ResourceProvider) releasePixelBuffer(b *textureBacking) {
	if b.pixelBuffer == 0 {
		return
	}

	if b.pixelBufferMapped {
		p.gl.UnmapBuffer(b.pixelBuffer)
		b.pixelBufferMapped = false
	}
	p.gl.DeleteBuffers([]gpu.BufferID{b.pixelBuffer})
	b.pixelBuffer = 0
}
