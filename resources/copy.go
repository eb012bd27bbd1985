package resources

import (
	"image"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/conduit/gpu"
	"golang.org/x/exp/slog"
)

// copyRows copies a size.X by size.Y block of pixels between two row-major buffers
func copyRows(dst []byte, dstStride int, dstAt image.Point, src []byte, srcStride int, srcAt image.Point, size image.Point, bytesPerPixel int) {
	rowBytes := size.X * bytesPerPixel
	for row := 0; row < size.Y; row++ {
		dstOffset := (dstAt.Y+row)*dstStride + dstAt.X*bytesPerPixel
		srcOffset := (srcAt.Y+row)*srcStride + srcAt.X*bytesPerPixel
		copy(dst[dstOffset:dstOffset+rowBytes], src[srcOffset:srcOffset+rowBytes])
	}
}

// SetPixels uploads part of an image into an internal resource. pixels holds the whole of
// imageRect in the resource's format with tightly packed rows. The part of sourceRect that lands
// inside the resource when its origin is placed at destOffset is written.
func (p *ResourceProvider) SetPixels(id ResourceID, pixels []byte, imageRect, sourceRect image.Rectangle, destOffset image.Point) error {
	return p.withLock(func() error {
		r, err := p.getResource(id)
		if err != nil {
			return err
		}
		if err := p.checkWriteInternal(r); err != nil {
			return err
		}
		if r.format.IsCompressed() {
			return errors.Wrapf(ErrUnsupportedFormat, "cannot upload %s pixels into resource %d", r.format, id)
		}
		if !sourceRect.In(imageRect) {
			return errors.Newf("source rect %s is not inside image rect %s", sourceRect, imageRect)
		}

		bytesPerPixel := r.format.BitsPerPixel() / 8
		imageStride := imageRect.Dx() * bytesPerPixel
		if len(pixels) < imageStride*imageRect.Dy() {
			return errors.Newf("image rect %s needs %d bytes but %d were provided", imageRect, imageStride*imageRect.Dy(), len(pixels))
		}

		if err := p.lazyAllocate(r); err != nil {
			return err
		}
		if r.isGpuBacked() {
			p.waitSyncTokenIfNeeded(r)
		}

		dest := image.Rectangle{Min: destOffset, Max: destOffset.Add(sourceRect.Size())}
		clipped := dest.Intersect(image.Rect(0, 0, r.size.Width, r.size.Height))

		p.logger.Debug("ResourceProvider::SetPixels",
			slog.Int("id", int(id)),
			slog.String("rect", clipped.String()),
		)

		if clipped.Empty() {
			return nil
		}

		srcAt := sourceRect.Min.Add(clipped.Min.Sub(dest.Min)).Sub(imageRect.Min)
		size := clipped.Size()

		switch b := r.backing.(type) {
		case *textureBacking:
			packed := make([]byte, size.X*size.Y*bytesPerPixel)
			copyRows(packed, size.X*bytesPerPixel, image.Point{}, pixels, imageStride, srcAt, size, bytesPerPixel)

			p.gl.BindTexture(b.target, b.textureID)
			p.gl.TexSubImage2D(b.target, r.format, clipped.Min.X, clipped.Min.Y, gpu.Size{Width: size.X, Height: size.Y}, packed)
			r.synchronizationState = SynchronizationStateLocallyUsed
		case *bitmapBacking:
			copyRows(b.pixels, r.Stride(), clipped.Min, pixels, imageStride, srcAt, size, bytesPerPixel)
		case *gpuMemoryBufferBacking:
			data, err := b.buffer.Map()
			if err != nil {
				return errors.Wrapf(err, "mapping resource %d", id)
			}
			copyRows(data, b.buffer.Stride(), clipped.Min, pixels, imageStride, srcAt, size, bytesPerPixel)
			if err := b.buffer.Unmap(); err != nil {
				return errors.Wrapf(err, "unmapping resource %d", id)
			}
			b.dirtyImage = true
			r.synchronizationState = SynchronizationStateLocallyUsed
		default:
			panic("unknown resource backing")
		}

		p.validate(r)
		return nil
	})
}

// CopyResource copies the contents of one internal resource into another of the same type, size
// and format. The source cannot be written until the copy has completed on the GPU.
func (p *ResourceProvider) CopyResource(sourceID, destID ResourceID) error {
	return p.withLock(func() error {
		source, err := p.getResource(sourceID)
		if err != nil {
			return err
		}
		dest, err := p.getResource(destID)
		if err != nil {
			return err
		}

		switch {
		case sourceID == destID:
			return errors.Newf("cannot copy resource %d into itself", sourceID)
		case source.Type() != dest.Type():
			return errors.Wrapf(ErrWrongResourceType, "cannot copy a %s into a %s", source.Type(), dest.Type())
		case source.format != dest.format || source.size != dest.size:
			return errors.Newf("cannot copy a %s %s resource into a %s %s resource", source.size, source.format, dest.size, dest.format)
		case source.origin != OriginInternal:
			return errors.Wrapf(ErrNotInternal, "resource %d has origin %s", sourceID, source.origin)
		case source.lockForReadCount > 0:
			return errors.Wrapf(ErrLockedForRead, "resource %d has %d readers", sourceID, source.lockForReadCount)
		}
		if err := source.checkRead(); err != nil {
			return err
		}
		if err := p.checkWriteInternal(dest); err != nil {
			return err
		}

		p.logger.Debug("ResourceProvider::CopyResource",
			slog.Int("source", int(sourceID)),
			slog.Int("dest", int(destID)),
		)

		switch sourceBacking := source.backing.(type) {
		case *textureBacking:
			destBacking := dest.backing.(*textureBacking)
			p.lazyCreate(source, sourceBacking)
			if err := p.lazyAllocate(dest); err != nil {
				return err
			}
			p.waitSyncTokenIfNeeded(source)
			p.waitSyncTokenIfNeeded(dest)

			p.gl.CopyTexture(destBacking.target, sourceBacking.textureID, destBacking.textureID)

			var fence Fence
			if p.caps.SyncQuery {
				fence = NewQueryFence(p.gl)
			} else {
				fence = NewSynchronousFence(p.gl)
			}
			fence.Set()

			shared := NewSharedFence(fence)
			source.setReadLockFence(shared)
			shared.Release()

			source.synchronizationState = SynchronizationStateLocallyUsed
			dest.synchronizationState = SynchronizationStateLocallyUsed
		case *bitmapBacking:
			if err := p.lazyAllocate(dest); err != nil {
				return err
			}
			copy(dest.Pixels(), sourceBacking.pixels)
		case *gpuMemoryBufferBacking:
			return errors.Wrapf(ErrWrongResourceType, "cannot copy gpu memory buffer resource %d", sourceID)
		default:
			panic("unknown resource backing")
		}

		p.validate(source)
		p.validate(dest)
		return nil
	})
}
