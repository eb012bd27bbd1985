package resources

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/conduit/gpu"
	"github.com/vkngwrapper/conduit/resources/internal/utils"
	"github.com/vkngwrapper/core/v2/common"
	"golang.org/x/exp/slog"
)

// CreateFlags indicate specific provider behaviors to activate or deactivate
type CreateFlags int32

var providerCreateFlagsMapping = common.NewFlagStringMapping[CreateFlags]()

func (f CreateFlags) Register(str string) {
	providerCreateFlagsMapping.Register(f, str)
}

func (f CreateFlags) String() string {
	return providerCreateFlagsMapping.FlagsToString(f)
}

const (
	// CreateExternallySynchronized ensures that this provider will not be synchronized internally.
	// The consumer must guarantee it is used from only one goroutine at a time.
	CreateExternallySynchronized CreateFlags = 1 << iota
	// CreatePreferGpuMemoryBuffers makes CreateResource back new resources with GpuMemoryBuffers
	// when the context supports images and a GpuMemoryBufferManager was provided
	CreatePreferGpuMemoryBuffers
	// CreateDisableTextureStorage allocates every texture through the mutable upload path even when
	// the context supports immutable storage
	CreateDisableTextureStorage
	// CreateDisableTextureUsageHint never passes the framebuffer usage hint to the context
	CreateDisableTextureUsageHint
)

func init() {
	CreateExternallySynchronized.Register("CreateExternallySynchronized")
	CreatePreferGpuMemoryBuffers.Register("CreatePreferGpuMemoryBuffers")
	CreateDisableTextureStorage.Register("CreateDisableTextureStorage")
	CreateDisableTextureUsageHint.Register("CreateDisableTextureUsageHint")
}

const (
	// softwareMaxTextureSize is the largest bitmap dimension a software provider will create
	softwareMaxTextureSize int = 16 * 1024
)

// CreateOptions contains optional settings when creating a provider
type CreateOptions struct {
	// Flags indicates specific provider behaviors to activate or deactivate
	Flags CreateFlags
	// TextureIDChunkSize is the number of texture names generated at a time. Defaults to 64.
	TextureIDChunkSize int
	// BufferIDChunkSize is the number of buffer names generated at a time. Defaults to 8.
	BufferIDChunkSize int
	// MaxTextureSize, if nonzero, further limits the largest dimension of a created resource
	MaxTextureSize int
	// Dispatcher delivers release callbacks and returns to children. Defaults to InlineDispatcher,
	// which runs them on the calling goroutine once the provider call has finished.
	Dispatcher Dispatcher
}

// New creates a new ResourceProvider
//
// gl - The command stream resources are created in. If nil, the provider only creates bitmaps.
//
// bitmaps - Allocates shared bitmaps. If nil, bitmaps are allocated on the heap and cannot be
// exported, and software resources received from children are rejected.
//
// buffers - Allocates GpuMemoryBuffers. May be nil.
//
// options - Optional parameters: it is valid to leave all the fields blank
func New(logger *slog.Logger, gl gpu.CommandInterface, bitmaps gpu.SharedBitmapManager, buffers gpu.GpuMemoryBufferManager, options CreateOptions) (*ResourceProvider, error) {
	if options.TextureIDChunkSize < 0 || options.BufferIDChunkSize < 0 || options.MaxTextureSize < 0 {
		return nil, errors.New("resources.CreateOptions cannot contain negative sizes")
	}

	provider := &ResourceProvider{
		logger: logger,
		mutex: utils.OptionalMutex{
			UseMutex: options.Flags&CreateExternallySynchronized == 0,
		},
		gl:          gl,
		bitmaps:     bitmaps,
		buffers:     buffers,
		dispatcher:  options.Dispatcher,
		createFlags: options.Flags,
		resources:   newResourceMap(),
		children:    newChildMap(),
		nextID:      1,
		nextChild:   1,
	}

	if provider.dispatcher == nil {
		provider.dispatcher = InlineDispatcher{}
	}

	if gl == nil {
		provider.defaultType = ResourceTypeBitmap
		provider.maxTextureSize = softwareMaxTextureSize
	} else {
		provider.initializeGL(options)
	}

	if options.MaxTextureSize > 0 && options.MaxTextureSize < provider.maxTextureSize {
		provider.maxTextureSize = options.MaxTextureSize
	}

	logger.Debug("ResourceProvider::New",
		slog.String("defaultType", provider.defaultType.String()),
		slog.Int("maxTextureSize", provider.maxTextureSize),
		slog.String("flags", options.Flags.String()),
	)

	return provider, nil
}

func (p *ResourceProvider) initializeGL(options CreateOptions) {
	p.caps = p.gl.Capabilities()
	p.maxTextureSize = p.caps.MaxTextureSize
	p.useTextureStorage = p.caps.TextureStorage && options.Flags&CreateDisableTextureStorage == 0
	p.useTextureUsageHint = p.caps.TextureUsageHint && options.Flags&CreateDisableTextureUsageHint == 0

	p.defaultType = ResourceTypeGLTexture
	if options.Flags&CreatePreferGpuMemoryBuffers != 0 && p.caps.Image && p.buffers != nil {
		p.defaultType = ResourceTypeGpuMemoryBuffer
	}

	textureChunk := options.TextureIDChunkSize
	if textureChunk == 0 {
		textureChunk = defaultTextureIDChunkSize
	}
	bufferChunk := options.BufferIDChunkSize
	if bufferChunk == 0 {
		bufferChunk = defaultBufferIDChunkSize
	}

	p.textureIDs = NewTextureIDAllocator(p.gl, textureChunk)
	p.bufferIDs = NewBufferIDAllocator(p.gl, bufferChunk)
}
