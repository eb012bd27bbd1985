package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/google/uuid"
)

// TextureID is a texture object name in a GPU command stream
type TextureID uint32

// BufferID is a buffer object name in a GPU command stream
type BufferID uint32

// QueryID is a query object name in a GPU command stream
type QueryID uint32

// ImageID names an image created from a GpuMemoryBuffer
type ImageID uint32

// TextureTarget is the binding point a texture is used through
type TextureTarget uint32

const (
	TextureTarget2D TextureTarget = iota + 1
	TextureTargetRectangle
	TextureTargetExternal
)

var textureTargetMapping = map[TextureTarget]string{
	TextureTarget2D:        "TextureTarget2D",
	TextureTargetRectangle: "TextureTargetRectangle",
	TextureTargetExternal:  "TextureTargetExternal",
}

func (t TextureTarget) String() string {
	return textureTargetMapping[t]
}

// TexturePool is a hint to the GPU about which memory pool a texture should live in
type TexturePool int32

const (
	TexturePoolUnmanaged TexturePool = iota
	TexturePoolManaged
)

var texturePoolMapping = map[TexturePool]string{
	TexturePoolUnmanaged: "TexturePoolUnmanaged",
	TexturePoolManaged:   "TexturePoolManaged",
}

func (p TexturePool) String() string {
	return texturePoolMapping[p]
}

// UsageHint describes how a texture will be written
type UsageHint int32

const (
	// UsageHintAsNeeded indicates the texture will be uploaded to or copied into
	UsageHintAsNeeded UsageHint = iota
	// UsageHintFramebuffer indicates the texture will be attached to a framebuffer and rendered into.
	// Immutable storage is never used for these textures.
	UsageHintFramebuffer
)

var usageHintMapping = map[UsageHint]string{
	UsageHintAsNeeded:    "UsageHintAsNeeded",
	UsageHintFramebuffer: "UsageHintFramebuffer",
}

func (h UsageHint) String() string {
	return usageHintMapping[h]
}

// Size is a pair of pixel dimensions
type Size struct {
	Width  int
	Height int
}

// IsEmpty returns true if either dimension is not positive
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Extent converts the size into a single-layer extent
func (s Size) Extent() gputypes.Extent3D {
	return gputypes.NewExtent2D(uint32(s.Width), uint32(s.Height))
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Mailbox is an opaque 16-byte name that identifies a GPU resource across process
// boundaries. Shared bitmaps are identified with the same kind of name.
type Mailbox [16]byte

// NewMailbox generates a random mailbox name
func NewMailbox() Mailbox {
	return Mailbox(uuid.New())
}

// IsZero returns true for the zero name, which never identifies a resource
func (m Mailbox) IsZero() bool {
	return m == Mailbox{}
}

func (m Mailbox) String() string {
	return uuid.UUID(m).String()
}

// SyncToken marks a point in a GPU command stream. A consumer that waits on the
// token is guaranteed to observe every command issued before it.
type SyncToken struct {
	CommandBufferID uint64
	ReleaseCount    uint64
	// Verified is set once the token has been flushed far enough that another
	// command stream may wait on it
	Verified bool
}

// HasData returns false for the empty token, which needs no wait
func (t SyncToken) HasData() bool {
	return t.ReleaseCount != 0
}

func (t SyncToken) String() string {
	if !t.HasData() {
		return "SyncToken(empty)"
	}
	return fmt.Sprintf("SyncToken(%d:%d verified=%t)", t.CommandBufferID, t.ReleaseCount, t.Verified)
}

// MailboxHolder is the mailbox name, the token that must be waited on before the
// mailbox is consumed, and the target the texture must be bound to
type MailboxHolder struct {
	Mailbox   Mailbox
	SyncToken SyncToken
	Target    TextureTarget
}

// IsZero returns true if the holder does not name a mailbox
func (h MailboxHolder) IsZero() bool {
	return h.Mailbox.IsZero()
}
