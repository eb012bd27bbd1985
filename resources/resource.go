package resources

import (
	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"
	"github.com/vkngwrapper/conduit/gpu"
	"github.com/vkngwrapper/conduit/memutils"
)

// ResourceID names a resource within one provider. Ids are never reused.
type ResourceID uint32

// ChildID names a child registered with a provider
type ChildID int

// ResourceType is the kind of backing store a resource uses
type ResourceType int32

const (
	ResourceTypeGLTexture ResourceType = iota + 1
	ResourceTypeBitmap
	ResourceTypeGpuMemoryBuffer
)

var resourceTypeMapping = map[ResourceType]string{
	ResourceTypeGLTexture:       "ResourceTypeGLTexture",
	ResourceTypeBitmap:          "ResourceTypeBitmap",
	ResourceTypeGpuMemoryBuffer: "ResourceTypeGpuMemoryBuffer",
}

func (t ResourceType) String() string {
	return resourceTypeMapping[t]
}

// Origin describes who owns a resource's backing memory
type Origin int32

const (
	// OriginInternal resources were allocated by this provider
	OriginInternal Origin = iota
	// OriginExternal resources wrap a mailbox or bitmap handed over by another producer
	OriginExternal
	// OriginDelegated resources were received from a child and are returned to it when unused
	OriginDelegated
)

var originMapping = map[Origin]string{
	OriginInternal:  "OriginInternal",
	OriginExternal:  "OriginExternal",
	OriginDelegated: "OriginDelegated",
}

func (o Origin) String() string {
	return originMapping[o]
}

// SynchronizationState tracks whether a sync token must be waited on or produced
type SynchronizationState int32

const (
	// SynchronizationStateSynchronized resources may be used without waiting
	SynchronizationStateSynchronized SynchronizationState = iota
	// SynchronizationStateNeedsWait resources hold a token from another command stream that must be
	// waited on before the memory is touched
	SynchronizationStateNeedsWait
	// SynchronizationStateLocallyUsed resources have commands in this command stream that a consumer
	// must wait on, so a new token is needed before handing them over
	SynchronizationStateLocallyUsed
)

var synchronizationStateMapping = map[SynchronizationState]string{
	SynchronizationStateSynchronized: "SynchronizationStateSynchronized",
	SynchronizationStateNeedsWait:    "SynchronizationStateNeedsWait",
	SynchronizationStateLocallyUsed:  "SynchronizationStateLocallyUsed",
}

func (s SynchronizationState) String() string {
	return synchronizationStateMapping[s]
}

// LockState is the externally visible lock state of a resource
type LockState int32

const (
	LockStateUnlocked LockState = iota
	LockStateReadLocked
	LockStateWriteLocked
	LockStatePendingDeletion
)

var lockStateMapping = map[LockState]string{
	LockStateUnlocked:        "LockStateUnlocked",
	LockStateReadLocked:      "LockStateReadLocked",
	LockStateWriteLocked:     "LockStateWriteLocked",
	LockStatePendingDeletion: "LockStatePendingDeletion",
}

func (s LockState) String() string {
	return lockStateMapping[s]
}

// backing is the storage behind a resource. Exactly one implementation exists per ResourceType.
type backing interface {
	resourceType() ResourceType
}

type textureBacking struct {
	textureID gpu.TextureID
	target    gpu.TextureTarget
	pool      gpu.TexturePool
	hint      gpu.UsageHint

	// pixelBuffer is the staging buffer of an upload started with AcquirePixelBuffer
	pixelBuffer       gpu.BufferID
	pixelBufferMapped bool
}

func (b *textureBacking) resourceType() ResourceType { return ResourceTypeGLTexture }

type bitmapBacking struct {
	// bitmap is nil for heap bitmaps, which cannot be exported
	bitmap gpu.SharedBitmap
	pixels []byte
}

func (b *bitmapBacking) resourceType() ResourceType { return ResourceTypeBitmap }

type gpuMemoryBufferBacking struct {
	buffer     gpu.GpuMemoryBuffer
	imageID    gpu.ImageID
	textureID  gpu.TextureID
	target     gpu.TextureTarget
	dirtyImage bool
	mapped     bool
}

func (b *gpuMemoryBufferBacking) resourceType() ResourceType { return ResourceTypeGpuMemoryBuffer }

// Resource is a single pixel buffer tracked by a ResourceProvider. Its fields are owned by
// the provider and must only be read while the caller holds a lock on the resource.
type Resource struct {
	id      ResourceID
	childID ChildID
	origin  Origin
	size    gpu.Size
	format  gpu.Format
	backing backing

	lockForReadCount  int
	lockedForWrite    bool
	exportedCount     int
	importedCount     int
	markedForDeletion bool

	lost                  bool
	allocated             bool
	readLockFencesEnabled bool
	allowOverlay          bool

	synchronizationState SynchronizationState
	mailbox              gpu.MailboxHolder
	filter               gputypes.FilterMode
	originalFilter       gputypes.FilterMode
	wrapMode             gputypes.AddressMode
	readLockFence        *SharedFence
	release              *ReleaseCallback
}

func newResource(id ResourceID, origin Origin, size gpu.Size, format gpu.Format, b backing, filter gputypes.FilterMode) *Resource {
	return &Resource{
		id:             id,
		origin:         origin,
		size:           size,
		format:         format,
		backing:        b,
		filter:         filter,
		originalFilter: filter,
		wrapMode:       gputypes.AddressModeClampToEdge,
	}
}

func (r *Resource) ID() ResourceID                             { return r.id }
func (r *Resource) ChildID() ChildID                           { return r.childID }
func (r *Resource) Type() ResourceType                         { return r.backing.resourceType() }
func (r *Resource) Origin() Origin                             { return r.origin }
func (r *Resource) Size() gpu.Size                             { return r.size }
func (r *Resource) Format() gpu.Format                         { return r.format }
func (r *Resource) LockForReadCount() int                      { return r.lockForReadCount }
func (r *Resource) IsLockedForWrite() bool                     { return r.lockedForWrite }
func (r *Resource) ExportedCount() int                         { return r.exportedCount }
func (r *Resource) ImportedCount() int                         { return r.importedCount }
func (r *Resource) IsMarkedForDeletion() bool                  { return r.markedForDeletion }
func (r *Resource) IsAllocated() bool                          { return r.allocated }
func (r *Resource) ReadLockFencesEnabled() bool                { return r.readLockFencesEnabled }
func (r *Resource) AllowOverlay() bool                         { return r.allowOverlay }
func (r *Resource) SynchronizationState() SynchronizationState { return r.synchronizationState }
func (r *Resource) Mailbox() gpu.MailboxHolder                 { return r.mailbox }
func (r *Resource) Filter() gputypes.FilterMode                { return r.filter }
func (r *Resource) WrapMode() gputypes.AddressMode             { return r.wrapMode }
func (r *Resource) ReadLockFence() *SharedFence                { return r.readLockFence }

// TextureID returns the texture name of a GPU-backed resource. It is 0 for bitmaps and for
// textures that have not been created or consumed yet.
func (r *Resource) TextureID() gpu.TextureID {
	switch b := r.backing.(type) {
	case *textureBacking:
		return b.textureID
	case *gpuMemoryBufferBacking:
		return b.textureID
	case *bitmapBacking:
		return 0
	}

	panic("unknown resource backing")
}

// TextureTarget returns the binding point of a GPU-backed resource, or 0 for bitmaps
func (r *Resource) TextureTarget() gpu.TextureTarget {
	switch b := r.backing.(type) {
	case *textureBacking:
		return b.target
	case *gpuMemoryBufferBacking:
		return b.target
	case *bitmapBacking:
		return 0
	}

	panic("unknown resource backing")
}

// Pixels returns the memory of a bitmap resource, or nil for GPU-backed resources
func (r *Resource) Pixels() []byte {
	switch b := r.backing.(type) {
	case *bitmapBacking:
		return b.pixels
	case *textureBacking, *gpuMemoryBufferBacking:
		return nil
	}

	panic("unknown resource backing")
}

// Stride returns the number of bytes in one row of a bitmap resource
func (r *Resource) Stride() int {
	stride, err := memutils.RowStride(r.size.Width, r.format.BitsPerPixel(), 4)
	if err != nil {
		panic(err)
	}
	return stride
}

// LockState reports the state of the resource's lock state machine
func (r *Resource) LockState() LockState {
	switch {
	case r.markedForDeletion:
		return LockStatePendingDeletion
	case r.lockedForWrite:
		return LockStateWriteLocked
	case r.lockForReadCount > 0:
		return LockStateReadLocked
	}
	return LockStateUnlocked
}

func (r *Resource) isGpuBacked() bool {
	switch r.backing.(type) {
	case *textureBacking, *gpuMemoryBufferBacking:
		return true
	case *bitmapBacking:
		return false
	}

	panic("unknown resource backing")
}

// byteSize is the amount of memory the resource's pixels occupy once allocated
func (r *Resource) byteSize() int {
	if r.format.IsCompressed() {
		return (r.size.Width + 3) / 4 * ((r.size.Height + 3) / 4) * 8
	}
	return r.size.Width * r.size.Height * r.format.BitsPerPixel() / 8
}

func (r *Resource) checkRead() error {
	switch {
	case r.lockedForWrite:
		return errors.Wrapf(ErrLockedForWrite, "resource %d", r.id)
	case r.exportedCount > 0:
		return errors.Wrapf(ErrExported, "resource %d", r.id)
	case !r.allocated:
		return errors.Wrapf(ErrNotAllocated, "resource %d", r.id)
	}
	return nil
}

func (r *Resource) endRead() error {
	if r.lockForReadCount == 0 {
		return errors.Wrapf(ErrNotLockedForRead, "resource %d", r.id)
	}
	r.lockForReadCount--
	return nil
}

// checkWrite tests every write precondition except the read lock fence, which depends on
// provider state
func (r *Resource) checkWrite() error {
	switch {
	case r.lockedForWrite:
		return errors.Wrapf(ErrLockedForWrite, "resource %d", r.id)
	case r.lockForReadCount > 0:
		return errors.Wrapf(ErrLockedForRead, "resource %d has %d readers", r.id, r.lockForReadCount)
	case r.exportedCount > 0:
		return errors.Wrapf(ErrExported, "resource %d", r.id)
	case r.origin != OriginInternal:
		return errors.Wrapf(ErrNotInternal, "resource %d has origin %s", r.id, r.origin)
	case r.lost:
		return errors.Wrapf(ErrLost, "resource %d", r.id)
	}
	return nil
}

func (r *Resource) endWrite() error {
	if !r.lockedForWrite {
		return errors.Wrapf(ErrNotLockedForWrite, "resource %d", r.id)
	}
	r.lockedForWrite = false
	return nil
}

// acceptReturn takes back count exports. Returning more than was exported means the
// bookkeeping on one side of the boundary is corrupt.
func (r *Resource) acceptReturn(count int, lost bool) {
	if count < 0 || r.exportedCount < count {
		panic(errors.AssertionFailedf("resource %d returned %d times but only exported %d times", r.id, count, r.exportedCount))
	}

	r.exportedCount -= count
	r.lost = r.lost || lost
}

func (r *Resource) setReadLockFence(fence *SharedFence) {
	if r.readLockFence == fence {
		return
	}
	if fence != nil {
		fence.Acquire()
	}
	if r.readLockFence != nil {
		r.readLockFence.Release()
	}
	r.readLockFence = fence
}

// Validate checks the resource's invariants
func (r *Resource) Validate() error {
	if r.lockedForWrite && r.lockForReadCount > 0 {
		return errors.Newf("resource %d is write-locked with %d readers", r.id, r.lockForReadCount)
	}
	if r.lockForReadCount < 0 || r.exportedCount < 0 || r.importedCount < 0 {
		return errors.Newf("resource %d has negative counts (read %d, exported %d, imported %d)",
			r.id, r.lockForReadCount, r.exportedCount, r.importedCount)
	}
	if r.lockedForWrite && r.exportedCount > 0 {
		return errors.Newf("resource %d is write-locked while exported", r.id)
	}
	if (r.origin == OriginDelegated) != (r.childID != 0) {
		return errors.Newf("resource %d has origin %s and child %d", r.id, r.origin, r.childID)
	}
	if r.importedCount > 0 && r.origin != OriginDelegated {
		return errors.Newf("resource %d is imported but has origin %s", r.id, r.origin)
	}

	switch b := r.backing.(type) {
	case *textureBacking:
		if r.lockedForWrite && b.textureID == 0 {
			return errors.Newf("texture resource %d is write-locked without a texture", r.id)
		}
	case *bitmapBacking:
		if r.allocated && b.pixels == nil && !r.lost {
			return errors.Newf("bitmap resource %d is allocated without pixels", r.id)
		}
	case *gpuMemoryBufferBacking:
		if r.allocated && b.buffer == nil {
			return errors.Newf("gpu memory buffer resource %d is allocated without a buffer", r.id)
		}
		if !r.readLockFencesEnabled {
			return errors.Newf("gpu memory buffer resource %d does not use read lock fences", r.id)
		}
	default:
		return errors.Newf("resource %d has an unknown backing", r.id)
	}

	return nil
}
