package resources

import "github.com/cockroachdb/errors"

var (
	// ErrResourceNotFound is returned when an id does not name a live resource
	ErrResourceNotFound = errors.New("resource not found")
	// ErrChildNotFound is returned when an id does not name a live child
	ErrChildNotFound = errors.New("child not found")
	// ErrInvalidSize is returned when creating a resource that is empty or larger than the
	// maximum texture size
	ErrInvalidSize = errors.New("invalid resource size")
	// ErrUnsupportedFormat is returned when the default backing cannot store the requested format
	ErrUnsupportedFormat = errors.New("unsupported resource format")
	// ErrWrongResourceType is returned when an operation is only valid for another backing type
	ErrWrongResourceType = errors.New("operation does not support this resource type")

	// ErrLockedForWrite is returned when a resource is write-locked
	ErrLockedForWrite = errors.New("resource is locked for write")
	// ErrLockedForRead is returned when a resource has outstanding read locks
	ErrLockedForRead = errors.New("resource is locked for read")
	// ErrNotLockedForRead is returned when unlocking a resource that has no read locks
	ErrNotLockedForRead = errors.New("resource is not locked for read")
	// ErrNotLockedForWrite is returned when unlocking a resource that is not write-locked
	ErrNotLockedForWrite = errors.New("resource is not locked for write")
	// ErrExported is returned when a resource is currently exported to a parent
	ErrExported = errors.New("resource is exported")
	// ErrImported is returned when deleting a resource that is still imported from a child
	ErrImported = errors.New("resource is imported from a child")
	// ErrNotAllocated is returned when reading a resource whose backing memory was never allocated
	ErrNotAllocated = errors.New("resource is not allocated")
	// ErrNotInternal is returned when writing a resource whose backing memory is owned elsewhere
	ErrNotInternal = errors.New("resource is not owned by this provider")
	// ErrLost is returned when writing a lost resource
	ErrLost = errors.New("resource is lost")
	// ErrReadLockFencePending is returned when writing a resource whose most recent read may still
	// be in flight on the GPU
	ErrReadLockFencePending = errors.New("read lock fence has not passed")
	// ErrMarkedForDeletion is returned when deleting a resource that is already pending deletion, or
	// when a child declares a resource in use after it was queued for return
	ErrMarkedForDeletion = errors.New("resource is already marked for deletion")
	// ErrNotExportable is returned when transferring a resource that has no cross-process name
	ErrNotExportable = errors.New("resource cannot be exported")
	// ErrNoContext is returned when a GPU operation is requested from a software provider
	ErrNoContext = errors.New("provider has no gpu context")
	// ErrUnknownChildResource is returned when a child declares an id it never sent
	ErrUnknownChildResource = errors.New("child resource was never received")
	// ErrNoPixelBuffer is returned when using a pixel buffer that was never acquired
	ErrNoPixelBuffer = errors.New("resource has no pixel buffer")
	// ErrPixelBufferMapped is returned when a pixel buffer is mapped or unmapped out of turn, or
	// uploaded from while mapped
	ErrPixelBufferMapped = errors.New("pixel buffer mapping is out of order")
)
