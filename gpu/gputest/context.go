package gputest

import (
	"fmt"

	"github.com/dolthub/swiss"
	"github.com/gogpu/gputypes"
	"github.com/vkngwrapper/conduit/gpu"
)

// Texture is the storage behind a texture name. Consuming a mailbox makes two names
// in two contexts share the same Texture.
type Texture struct {
	Format    gpu.Format
	Size      gpu.Size
	Pixels    []byte
	Filter    gputypes.FilterMode
	Wrap      gputypes.AddressMode
	Pool      gpu.TexturePool
	Hint      gpu.UsageHint
	Immutable bool
}

type buffer struct {
	data   []byte
	mapped bool
}

type query struct {
	pending bool
}

type image struct {
	buffer gpu.GpuMemoryBuffer
	size   gpu.Size
	format gpu.Format
}

// CallStats counts the calls tests want to make assertions about
type CallStats struct {
	GenTextures      int
	GenBuffers       int
	DeletedTextures  int
	DeletedBuffers   int
	InsertSyncTokens int
	VerifySyncTokens int
	Waits            []gpu.SyncToken
	Consumes         int
	Produces         int
	TexStorage       int
	TexImage         int
	TexSubImage      int
	BufferUploads    int
	ImageBinds       int
	Flushes          int
	Finishes         int
}

// Context is a single command stream
type Context struct {
	service         *Service
	caps            gpu.Capabilities
	commandBufferID uint64
	releaseCount    uint64
	lost            bool

	nextName    uint32
	textures    *swiss.Map[gpu.TextureID, *Texture]
	bound       map[gpu.TextureTarget]gpu.TextureID
	buffers     *swiss.Map[gpu.BufferID, *buffer]
	queries     *swiss.Map[gpu.QueryID, *query]
	activeQuery gpu.QueryID
	images      *swiss.Map[gpu.ImageID, *image]

	Stats CallStats
}

var _ gpu.CommandInterface = &Context{}

func (s *Service) NewContext(caps gpu.Capabilities) *Context {
	return &Context{
		service:         s,
		caps:            caps,
		commandBufferID: s.newCommandBuffer(),
		textures:        swiss.NewMap[gpu.TextureID, *Texture](16),
		bound:           make(map[gpu.TextureTarget]gpu.TextureID),
		buffers:         swiss.NewMap[gpu.BufferID, *buffer](8),
		queries:         swiss.NewMap[gpu.QueryID, *query](8),
		images:          swiss.NewMap[gpu.ImageID, *image](8),
	}
}

// LoseContext simulates a lost context. Commands keep being accepted but their tokens
// are meaningless.
func (c *Context) LoseContext() {
	c.lost = true
}

func (c *Context) IsLost() bool {
	return c.lost
}

// Texture returns the storage behind a texture name
func (c *Context) Texture(id gpu.TextureID) (*Texture, bool) {
	texture, ok := c.textures.Get(id)
	if !ok || texture == nil {
		return nil, false
	}
	return texture, true
}

// TextureCount is the number of live texture names
func (c *Context) TextureCount() int {
	return c.textures.Count()
}

// ImageCount is the number of live images
func (c *Context) ImageCount() int {
	return c.images.Count()
}

// QueryCount is the number of live query objects
func (c *Context) QueryCount() int {
	return c.queries.Count()
}

// CompleteQueries marks every pending query as available, as if the GPU caught up
func (c *Context) CompleteQueries() {
	c.queries.Iter(func(id gpu.QueryID, q *query) bool {
		q.pending = false
		return false
	})
}

func (c *Context) nextID() uint32 {
	c.nextName++
	return c.nextName
}

func (c *Context) boundTexture(target gpu.TextureTarget) *Texture {
	id, ok := c.bound[target]
	if !ok || id == 0 {
		panic(fmt.Sprintf("no texture bound to %s", target))
	}

	texture, ok := c.textures.Get(id)
	if !ok {
		panic(fmt.Sprintf("texture %d bound to %s has been deleted", id, target))
	}

	if texture == nil {
		texture = &Texture{}
		c.textures.Put(id, texture)
	}
	return texture
}

func (c *Context) Capabilities() gpu.Capabilities {
	return c.caps
}

func (c *Context) GenTextures(n int) []gpu.TextureID {
	c.Stats.GenTextures++
	ids := make([]gpu.TextureID, n)
	for i := range ids {
		ids[i] = gpu.TextureID(c.nextID())
		c.textures.Put(ids[i], nil)
	}
	return ids
}

func (c *Context) DeleteTextures(ids []gpu.TextureID) {
	for _, id := range ids {
		if !c.textures.Delete(id) {
			panic(fmt.Sprintf("deleting unknown texture %d", id))
		}
		c.Stats.DeletedTextures++

		for target, bound := range c.bound {
			if bound == id {
				delete(c.bound, target)
			}
		}
	}
}

func (c *Context) GenBuffers(n int) []gpu.BufferID {
	c.Stats.GenBuffers++
	ids := make([]gpu.BufferID, n)
	for i := range ids {
		ids[i] = gpu.BufferID(c.nextID())
		c.buffers.Put(ids[i], &buffer{})
	}
	return ids
}

func (c *Context) DeleteBuffers(ids []gpu.BufferID) {
	for _, id := range ids {
		if !c.buffers.Delete(id) {
			panic(fmt.Sprintf("deleting unknown buffer %d", id))
		}
		c.Stats.DeletedBuffers++
	}
}

// Buffer returns the storage behind a buffer name
func (c *Context) Buffer(id gpu.BufferID) ([]byte, bool) {
	b, ok := c.buffers.Get(id)
	if !ok {
		return nil, false
	}
	return b.data, true
}

// BufferCount is the number of live buffer names
func (c *Context) BufferCount() int {
	return c.buffers.Count()
}

func (c *Context) buffer(id gpu.BufferID) *buffer {
	b, ok := c.buffers.Get(id)
	if !ok {
		panic(fmt.Sprintf("unknown buffer %d", id))
	}
	return b
}

func (c *Context) BufferData(id gpu.BufferID, size int) {
	b := c.buffer(id)
	if b.mapped {
		panic(fmt.Sprintf("replacing the storage of mapped buffer %d", id))
	}
	b.data = make([]byte, size)
}

func (c *Context) MapBuffer(id gpu.BufferID) []byte {
	b := c.buffer(id)
	if b.mapped {
		panic(fmt.Sprintf("buffer %d mapped twice", id))
	}
	b.mapped = true
	return b.data
}

func (c *Context) UnmapBuffer(id gpu.BufferID) {
	b := c.buffer(id)
	if !b.mapped {
		panic(fmt.Sprintf("buffer %d is not mapped", id))
	}
	b.mapped = false
}

func (c *Context) BindTexture(target gpu.TextureTarget, id gpu.TextureID) {
	if id != 0 && !c.textures.Has(id) {
		panic(fmt.Sprintf("binding unknown texture %d", id))
	}
	c.bound[target] = id
}

func (c *Context) TexParameterFilter(target gpu.TextureTarget, filter gputypes.FilterMode) {
	c.boundTexture(target).Filter = filter
}

func (c *Context) TexParameterWrap(target gpu.TextureTarget, wrap gputypes.AddressMode) {
	c.boundTexture(target).Wrap = wrap
}

func (c *Context) TexParameterPool(target gpu.TextureTarget, pool gpu.TexturePool) {
	c.boundTexture(target).Pool = pool
}

func (c *Context) TexParameterUsageHint(target gpu.TextureTarget, hint gpu.UsageHint) {
	c.boundTexture(target).Hint = hint
}

func storageBytes(format gpu.Format, size gpu.Size) int {
	return size.Width * size.Height * format.BitsPerPixel() / 8
}

func (c *Context) TexStorage2D(target gpu.TextureTarget, levels int, format gpu.Format, size gpu.Size) {
	texture := c.boundTexture(target)
	if texture.Immutable {
		panic("texture storage is immutable")
	}

	c.Stats.TexStorage++
	texture.Immutable = true
	texture.Format = format
	texture.Size = size
	texture.Pixels = make([]byte, storageBytes(format, size))
}

func (c *Context) TexImage2D(target gpu.TextureTarget, format gpu.Format, size gpu.Size, pixels []byte) {
	texture := c.boundTexture(target)
	if texture.Immutable {
		panic("texture storage is immutable")
	}

	c.Stats.TexImage++
	texture.Format = format
	texture.Size = size
	texture.Pixels = make([]byte, storageBytes(format, size))
	copy(texture.Pixels, pixels)
}

func (c *Context) TexSubImage2D(target gpu.TextureTarget, format gpu.Format, x, y int, size gpu.Size, pixels []byte) {
	texture := c.boundTexture(target)
	if texture.Pixels == nil {
		panic("uploading into a texture without storage")
	}
	if format != texture.Format || format.IsCompressed() {
		panic(fmt.Sprintf("cannot upload %s into a %s texture", format, texture.Format))
	}
	if x < 0 || y < 0 || x+size.Width > texture.Size.Width || y+size.Height > texture.Size.Height {
		panic("sub-image upload out of bounds")
	}

	c.Stats.TexSubImage++
	bytesPerPixel := format.BitsPerPixel() / 8
	rowBytes := size.Width * bytesPerPixel
	for row := 0; row < size.Height; row++ {
		dst := ((y+row)*texture.Size.Width + x) * bytesPerPixel
		copy(texture.Pixels[dst:dst+rowBytes], pixels[row*rowBytes:(row+1)*rowBytes])
	}
}

func (c *Context) TexSubImage2DFromBuffer(target gpu.TextureTarget, format gpu.Format, x, y int, size gpu.Size, buffer gpu.BufferID) {
	b := c.buffer(buffer)
	if b.mapped {
		panic(fmt.Sprintf("uploading from mapped buffer %d", buffer))
	}
	if len(b.data) < storageBytes(format, size) {
		panic(fmt.Sprintf("buffer %d is too small for a %s upload", buffer, size))
	}

	c.Stats.BufferUploads++
	c.TexSubImage2D(target, format, x, y, size, b.data)
}

func (c *Context) CopyTexture(target gpu.TextureTarget, source, dest gpu.TextureID) {
	src, ok := c.Texture(source)
	if !ok {
		panic(fmt.Sprintf("copying from texture %d without storage", source))
	}
	dst, ok := c.Texture(dest)
	if !ok {
		panic(fmt.Sprintf("copying into texture %d without storage", dest))
	}

	dst.Format = src.Format
	dst.Size = src.Size
	dst.Pixels = append(dst.Pixels[:0], src.Pixels...)
}

func (c *Context) GenMailbox() gpu.Mailbox {
	return gpu.NewMailbox()
}

func (c *Context) ProduceTexture(target gpu.TextureTarget, mailbox gpu.Mailbox) {
	c.Stats.Produces++
	c.service.produce(mailbox, c.boundTexture(target))
}

func (c *Context) ConsumeTexture(target gpu.TextureTarget, mailbox gpu.Mailbox) {
	texture, ok := c.service.MailboxTexture(mailbox)
	if !ok {
		panic(fmt.Sprintf("consuming unknown mailbox %s", mailbox))
	}

	id, bound := c.bound[target]
	if !bound || id == 0 {
		panic(fmt.Sprintf("no texture bound to %s", target))
	}

	c.Stats.Consumes++
	c.textures.Put(id, texture)
}

func (c *Context) InsertSyncToken() gpu.SyncToken {
	c.Stats.InsertSyncTokens++
	c.releaseCount++
	return gpu.SyncToken{
		CommandBufferID: c.commandBufferID,
		ReleaseCount:    c.releaseCount,
		Verified:        true,
	}
}

func (c *Context) VerifySyncTokens(tokens []*gpu.SyncToken) {
	c.Stats.VerifySyncTokens++
	for _, token := range tokens {
		token.Verified = true
	}
}

func (c *Context) WaitSyncToken(token gpu.SyncToken) {
	c.Stats.Waits = append(c.Stats.Waits, token)
}

func (c *Context) GenQuery() gpu.QueryID {
	id := gpu.QueryID(c.nextID())
	c.queries.Put(id, &query{})
	return id
}

func (c *Context) BeginQuery(id gpu.QueryID) {
	q, ok := c.queries.Get(id)
	if !ok {
		panic(fmt.Sprintf("beginning unknown query %d", id))
	}
	if c.activeQuery != 0 {
		panic("a query is already active")
	}

	q.pending = true
	c.activeQuery = id
}

func (c *Context) EndQuery() {
	if c.activeQuery == 0 {
		panic("no query is active")
	}
	c.activeQuery = 0
}

func (c *Context) QueryResultAvailable(id gpu.QueryID) bool {
	q, ok := c.queries.Get(id)
	if !ok {
		panic(fmt.Sprintf("polling unknown query %d", id))
	}
	return !q.pending
}

func (c *Context) DeleteQueries(ids []gpu.QueryID) {
	for _, id := range ids {
		c.queries.Delete(id)
	}
}

func (c *Context) CreateImage(buffer gpu.GpuMemoryBuffer, size gpu.Size, format gpu.Format) gpu.ImageID {
	id := gpu.ImageID(c.nextID())
	c.images.Put(id, &image{buffer: buffer, size: size, format: format})
	return id
}

func (c *Context) DestroyImage(id gpu.ImageID) {
	if !c.images.Delete(id) {
		panic(fmt.Sprintf("destroying unknown image %d", id))
	}
}

// BindTexImage samples the buffer contents into the bound texture
func (c *Context) BindTexImage(target gpu.TextureTarget, id gpu.ImageID) {
	img, ok := c.images.Get(id)
	if !ok {
		panic(fmt.Sprintf("binding unknown image %d", id))
	}

	texture := c.boundTexture(target)
	data, err := img.buffer.Map()
	if err != nil {
		panic(err)
	}
	defer func() { _ = img.buffer.Unmap() }()

	c.Stats.ImageBinds++
	bytesPerPixel := img.format.BitsPerPixel() / 8
	rowBytes := img.size.Width * bytesPerPixel
	stride := img.buffer.Stride()

	texture.Format = img.format
	texture.Size = img.size
	texture.Pixels = make([]byte, rowBytes*img.size.Height)
	for row := 0; row < img.size.Height; row++ {
		copy(texture.Pixels[row*rowBytes:(row+1)*rowBytes], data[row*stride:row*stride+rowBytes])
	}
}

func (c *Context) ReleaseTexImage(target gpu.TextureTarget, id gpu.ImageID) {
	if !c.images.Has(id) {
		panic(fmt.Sprintf("releasing unknown image %d", id))
	}
}

func (c *Context) ShallowFlush() {
	c.Stats.Flushes++
}

func (c *Context) Flush() {
	c.Stats.Flushes++
}

// Finish waits for the GPU, so every query becomes available
func (c *Context) Finish() {
	c.Stats.Finishes++
	c.CompleteQueries()
}
