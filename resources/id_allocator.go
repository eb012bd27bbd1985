package resources

import (
	"github.com/vkngwrapper/conduit/gpu"
)

const (
	defaultTextureIDChunkSize int = 64
	defaultBufferIDChunkSize  int = 8
)

// IDAllocator hands out GPU object names. Names are generated chunkSize at a time so that
// most calls to NextID do not touch the command stream.
type IDAllocator[T comparable] struct {
	generate  func(n int) []T
	remove    func(ids []T)
	chunkSize int

	cached []T
	next   int
}

func newIDAllocator[T comparable](generate func(int) []T, remove func([]T), chunkSize int) *IDAllocator[T] {
	if chunkSize < 1 {
		panic("id allocator chunk size must be at least 1")
	}

	return &IDAllocator[T]{
		generate:  generate,
		remove:    remove,
		chunkSize: chunkSize,
	}
}

// NewTextureIDAllocator creates an allocator for texture names
func NewTextureIDAllocator(gl gpu.CommandInterface, chunkSize int) *IDAllocator[gpu.TextureID] {
	return newIDAllocator(gl.GenTextures, gl.DeleteTextures, chunkSize)
}

// NewBufferIDAllocator creates an allocator for buffer names
func NewBufferIDAllocator(gl gpu.CommandInterface, chunkSize int) *IDAllocator[gpu.BufferID] {
	return newIDAllocator(gl.GenBuffers, gl.DeleteBuffers, chunkSize)
}

// NextID returns a name that has never been handed out by this allocator
func (a *IDAllocator[T]) NextID() T {
	if a.next == len(a.cached) {
		a.cached = a.generate(a.chunkSize)
		a.next = 0

		if len(a.cached) == 0 {
			panic("command stream generated no object names")
		}
	}

	id := a.cached[a.next]
	a.next++
	return id
}

// Cached returns the number of names generated but not yet handed out
func (a *IDAllocator[T]) Cached() int {
	return len(a.cached) - a.next
}

// Destroy deletes every name that was generated but never handed out
func (a *IDAllocator[T]) Destroy() {
	if a.next < len(a.cached) {
		a.remove(a.cached[a.next:])
	}

	a.cached = nil
	a.next = 0
}
