package resources

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/conduit/gpu"
	"github.com/vkngwrapper/conduit/gpu/mocks"
	"go.uber.org/mock/gomock"
)

func TestIDAllocatorGeneratesInChunks(t *testing.T) {
	ctrl := gomock.NewController(t)
	gl := mocks.NewMockCommandInterface(ctrl)

	gomock.InOrder(
		gl.EXPECT().GenTextures(3).Return([]gpu.TextureID{10, 11, 12}),
		gl.EXPECT().GenTextures(3).Return([]gpu.TextureID{20, 21, 22}),
		gl.EXPECT().DeleteTextures([]gpu.TextureID{21, 22}),
	)

	allocator := NewTextureIDAllocator(gl, 3)
	require.Equal(t, 0, allocator.Cached())

	var ids []gpu.TextureID
	for i := 0; i < 4; i++ {
		ids = append(ids, allocator.NextID())
	}
	require.Equal(t, []gpu.TextureID{10, 11, 12, 20}, ids)
	require.Equal(t, 2, allocator.Cached())

	allocator.Destroy()
	require.Equal(t, 0, allocator.Cached())

	// Nothing is left to delete
	allocator.Destroy()
}

func TestIDAllocatorDestroyWithoutRemainder(t *testing.T) {
	ctrl := gomock.NewController(t)
	gl := mocks.NewMockCommandInterface(ctrl)
	gl.EXPECT().GenBuffers(2).Return([]gpu.BufferID{1, 2})

	allocator := NewBufferIDAllocator(gl, 2)
	require.Equal(t, gpu.BufferID(1), allocator.NextID())
	require.Equal(t, gpu.BufferID(2), allocator.NextID())

	allocator.Destroy()
}

func TestIDAllocatorPanics(t *testing.T) {
	ctrl := gomock.NewController(t)
	gl := mocks.NewMockCommandInterface(ctrl)
	gl.EXPECT().GenTextures(4).Return(nil)

	require.Panics(t, func() {
		NewTextureIDAllocator(gl, 0)
	})

	allocator := NewTextureIDAllocator(gl, 4)
	require.Panics(t, func() {
		allocator.NextID()
	})
}
