package gpu

//go:generate mockgen -source command_interface.go -destination mocks/command_interface.go -package mocks

import "github.com/gogpu/gputypes"

// Capabilities describes the optional features of a GPU context
type Capabilities struct {
	// MaxTextureSize is the largest supported texture dimension
	MaxTextureSize int
	// TextureStorage indicates immutable texture storage is available
	TextureStorage bool
	// TextureUsageHint indicates textures accept a framebuffer usage hint
	TextureUsageHint bool
	// TextureFormatBGRA8888 indicates BGRA textures can be created
	TextureFormatBGRA8888 bool
	// TextureFormatETC1 indicates ETC1 compressed textures can be created
	TextureFormatETC1 bool
	// SyncQuery indicates commands-completed queries are available, so fences can be polled
	SyncQuery bool
	// Image indicates images can be created from GpuMemoryBuffers
	Image bool
}

// CommandInterface is the subset of a GL-like command stream that resources are
// managed through. Calls are only issued from the goroutine currently holding the
// owning provider.
type CommandInterface interface {
	Capabilities() Capabilities

	GenTextures(n int) []TextureID
	DeleteTextures(ids []TextureID)
	GenBuffers(n int) []BufferID
	DeleteBuffers(ids []BufferID)
	// BufferData replaces the storage of a buffer with size zeroed bytes
	BufferData(id BufferID, size int)
	// MapBuffer returns the storage of a buffer for CPU writes until UnmapBuffer is called
	MapBuffer(id BufferID) []byte
	UnmapBuffer(id BufferID)

	BindTexture(target TextureTarget, id TextureID)
	TexParameterFilter(target TextureTarget, filter gputypes.FilterMode)
	TexParameterWrap(target TextureTarget, wrap gputypes.AddressMode)
	TexParameterPool(target TextureTarget, pool TexturePool)
	TexParameterUsageHint(target TextureTarget, hint UsageHint)
	TexStorage2D(target TextureTarget, levels int, format Format, size Size)
	TexImage2D(target TextureTarget, format Format, size Size, pixels []byte)
	TexSubImage2D(target TextureTarget, format Format, x, y int, size Size, pixels []byte)
	// TexSubImage2DFromBuffer is TexSubImage2D reading tightly packed rows from an unmapped buffer
	TexSubImage2DFromBuffer(target TextureTarget, format Format, x, y int, size Size, buffer BufferID)
	CopyTexture(target TextureTarget, source, dest TextureID)

	// GenMailbox returns a fresh mailbox name
	GenMailbox() Mailbox
	// ProduceTexture associates the texture bound to target with the mailbox
	ProduceTexture(target TextureTarget, mailbox Mailbox)
	// ConsumeTexture replaces the texture bound to target with the one associated with the mailbox
	ConsumeTexture(target TextureTarget, mailbox Mailbox)

	// InsertSyncToken inserts a fence into the command stream, flushes it and returns a verified
	// token for the new fence
	InsertSyncToken() SyncToken
	// VerifySyncTokens makes unverified tokens usable by other command streams with a single flush
	VerifySyncTokens(tokens []*SyncToken)
	// WaitSyncToken makes subsequent commands wait until the token has passed
	WaitSyncToken(token SyncToken)

	GenQuery() QueryID
	// BeginQuery starts a commands-completed query
	BeginQuery(id QueryID)
	EndQuery()
	QueryResultAvailable(id QueryID) bool
	DeleteQueries(ids []QueryID)

	CreateImage(buffer GpuMemoryBuffer, size Size, format Format) ImageID
	DestroyImage(id ImageID)
	BindTexImage(target TextureTarget, id ImageID)
	ReleaseTexImage(target TextureTarget, id ImageID)

	ShallowFlush()
	Flush()
	Finish()
}

// SharedBitmap is a block of pixel memory that can be mapped into another process by its id
type SharedBitmap interface {
	ID() Mailbox
	Pixels() []byte
	Close() error
}

// SharedBitmapManager allocates shared bitmaps and resolves ids received from other processes
type SharedBitmapManager interface {
	AllocateSharedBitmap(size Size) (SharedBitmap, error)
	GetSharedBitmapFromID(size Size, id Mailbox) (SharedBitmap, error)
}

// GpuMemoryBuffer is a buffer that can be mapped by the CPU and sampled by the GPU
type GpuMemoryBuffer interface {
	// Map returns the buffer contents. Every Map must be paired with an Unmap.
	Map() ([]byte, error)
	Unmap() error
	// Stride is the number of bytes between rows
	Stride() int
	Format() gputypes.TextureFormat
	Close() error
}

// GpuMemoryBufferManager allocates GpuMemoryBuffers
type GpuMemoryBufferManager interface {
	AllocateGpuMemoryBuffer(size gputypes.Extent3D, format gputypes.TextureFormat, usage gputypes.TextureUsage) (GpuMemoryBuffer, error)
}
