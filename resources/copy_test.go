package resources_test

import (
	"image"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/conduit/gpu"
	"github.com/vkngwrapper/conduit/gpu/gputest"
	"github.com/vkngwrapper/conduit/resources"
)

func rect(x0, y0, x1, y1 int) image.Rectangle {
	return image.Rect(x0, y0, x1, y1)
}

func point(x, y int) image.Point {
	return image.Pt(x, y)
}

// imagePixel is the value of every channel of a pixel in an image built by buildImage
func imagePixel(x, y int) byte {
	return byte(1 + x + 10*y)
}

func buildImage(imageRect image.Rectangle) []byte {
	pixels := make([]byte, 0, imageRect.Dx()*imageRect.Dy()*4)
	for y := 0; y < imageRect.Dy(); y++ {
		for x := 0; x < imageRect.Dx(); x++ {
			value := imagePixel(x, y)
			pixels = append(pixels, value, value, value, value)
		}
	}
	return pixels
}

// expectedUpload computes the contents of a zeroed 4x4 resource after an upload
func expectedUpload(imageRect, sourceRect image.Rectangle, destOffset image.Point) []byte {
	expected := make([]byte, testSize.Width*testSize.Height*4)
	for y := 0; y < testSize.Height; y++ {
		for x := 0; x < testSize.Width; x++ {
			source := image.Pt(x, y).Sub(destOffset).Add(sourceRect.Min)
			if !source.In(sourceRect) {
				continue
			}

			value := imagePixel(source.X-imageRect.Min.X, source.Y-imageRect.Min.Y)
			offset := (y*testSize.Width + x) * 4
			copy(expected[offset:offset+4], []byte{value, value, value, value})
		}
	}
	return expected
}

var uploadCases = []struct {
	name       string
	imageRect  image.Rectangle
	sourceRect image.Rectangle
	destOffset image.Point
}{
	{
		name:       "Whole",
		imageRect:  rect(0, 0, 4, 4),
		sourceRect: rect(0, 0, 4, 4),
		destOffset: point(0, 0),
	},
	{
		name:       "Offset",
		imageRect:  rect(0, 0, 2, 2),
		sourceRect: rect(0, 0, 2, 2),
		destOffset: point(1, 1),
	},
	{
		name:       "ClippedBottomRight",
		imageRect:  rect(0, 0, 2, 2),
		sourceRect: rect(0, 0, 2, 2),
		destOffset: point(3, 3),
	},
	{
		name:       "ClippedTopLeft",
		imageRect:  rect(0, 0, 3, 3),
		sourceRect: rect(0, 0, 3, 3),
		destOffset: point(-1, -2),
	},
	{
		name:       "SourceSubRect",
		imageRect:  rect(0, 0, 3, 2),
		sourceRect: rect(1, 0, 3, 2),
		destOffset: point(0, 1),
	},
	{
		name:       "ImageNotAtOrigin",
		imageRect:  rect(5, 5, 8, 8),
		sourceRect: rect(6, 6, 8, 8),
		destOffset: point(2, 0),
	},
	{
		name:       "OutOfBounds",
		imageRect:  rect(0, 0, 2, 2),
		sourceRect: rect(0, 0, 2, 2),
		destOffset: point(4, 0),
	},
}

func TestSetPixelsBitmap(t *testing.T) {
	for _, testCase := range uploadCases {
		t.Run(testCase.name, func(t *testing.T) {
			provider := readyProvider(t, ProviderSetup{Software: true})
			id := createResource(t, provider)

			err := provider.SetPixels(id, buildImage(testCase.imageRect), testCase.imageRect, testCase.sourceRect, testCase.destOffset)
			require.NoError(t, err)

			r, err := provider.LockForRead(id, nil)
			require.NoError(t, err)
			require.Equal(t, expectedUpload(testCase.imageRect, testCase.sourceRect, testCase.destOffset), r.Pixels())
			require.NoError(t, provider.UnlockForRead(id))
		})
	}
}

func TestSetPixelsGLTexture(t *testing.T) {
	for _, testCase := range uploadCases {
		t.Run(testCase.name, func(t *testing.T) {
			provider := readyProvider(t, ProviderSetup{})
			id := createResource(t, provider)

			err := provider.SetPixels(id, buildImage(testCase.imageRect), testCase.imageRect, testCase.sourceRect, testCase.destOffset)
			require.NoError(t, err)

			r, err := provider.LockForRead(id, nil)
			require.NoError(t, err)
			require.Equal(t, resources.SynchronizationStateLocallyUsed, r.SynchronizationState())

			texture, ok := provider.GL.Texture(r.TextureID())
			require.True(t, ok)
			require.Equal(t, expectedUpload(testCase.imageRect, testCase.sourceRect, testCase.destOffset), texture.Pixels)
			require.NoError(t, provider.UnlockForRead(id))
		})
	}
}

func TestSetPixelsGpuMemoryBuffer(t *testing.T) {
	for _, testCase := range uploadCases {
		t.Run(testCase.name, func(t *testing.T) {
			provider := readyProvider(t, ProviderSetup{
				GpuMemoryBuffers: true,
				Options:          resources.CreateOptions{Flags: resources.CreatePreferGpuMemoryBuffers},
			})
			id := createResource(t, provider)

			err := provider.SetPixels(id, buildImage(testCase.imageRect), testCase.imageRect, testCase.sourceRect, testCase.destOffset)
			require.NoError(t, err)

			r, err := provider.LockForRead(id, nil)
			require.NoError(t, err)

			texture, ok := provider.GL.Texture(r.TextureID())
			require.True(t, ok)
			require.Equal(t, expectedUpload(testCase.imageRect, testCase.sourceRect, testCase.destOffset), texture.Pixels)
			require.NoError(t, provider.UnlockForRead(id))
		})
	}
}

func TestSetPixelsValidation(t *testing.T) {
	provider := readyProvider(t, ProviderSetup{})
	id := createResource(t, provider)

	err := provider.SetPixels(id, buildImage(rect(0, 0, 2, 2)), rect(0, 0, 2, 2), rect(1, 1, 3, 3), point(0, 0))
	require.Error(t, err)

	err = provider.SetPixels(id, make([]byte, 4), rect(0, 0, 2, 2), rect(0, 0, 2, 2), point(0, 0))
	require.Error(t, err)

	etc1, err := provider.CreateResource(testSize, gputypes.AddressModeClampToEdge, gpu.UsageHintAsNeeded, gpu.FormatETC1)
	require.NoError(t, err)
	err = provider.SetPixels(etc1, make([]byte, 64), rect(0, 0, 4, 4), rect(0, 0, 4, 4), point(0, 0))
	require.ErrorIs(t, err, resources.ErrUnsupportedFormat)

	external, err := provider.CreateResourceFromMailbox(resources.TextureMailbox{
		Holder: gpu.MailboxHolder{Mailbox: gpu.NewMailbox()},
		Size:   testSize,
		Format: gpu.FormatRGBA8888,
	}, nil, false)
	require.NoError(t, err)
	err = provider.SetPixels(external, buildImage(rect(0, 0, 4, 4)), rect(0, 0, 4, 4), rect(0, 0, 4, 4), point(0, 0))
	require.ErrorIs(t, err, resources.ErrNotInternal)
}

func TestSetPixelsLuminance(t *testing.T) {
	provider := readyProvider(t, ProviderSetup{})
	id, err := provider.CreateResource(gpu.Size{Width: 3, Height: 2}, gputypes.AddressModeClampToEdge, gpu.UsageHintAsNeeded, gpu.FormatLuminance8)
	require.NoError(t, err)

	require.NoError(t, provider.SetPixels(id, []byte{1, 2, 3, 4}, rect(0, 0, 2, 2), rect(0, 0, 2, 2), point(1, 0)))

	r, err := provider.LockForRead(id, nil)
	require.NoError(t, err)
	texture, ok := provider.GL.Texture(r.TextureID())
	require.True(t, ok)
	require.Equal(t, []byte{0, 1, 2, 0, 3, 4}, texture.Pixels)
	require.NoError(t, provider.UnlockForRead(id))
}

func TestCopyResourceGLTexture(t *testing.T) {
	testCases := []struct {
		name         string
		syncQuery    bool
		pendingFence bool
		finishes     int
	}{
		{name: "QueryFence", syncQuery: true, pendingFence: true},
		{name: "SynchronousFence", syncQuery: false, pendingFence: false, finishes: 1},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			caps := gputest.DefaultCapabilities()
			caps.SyncQuery = testCase.syncQuery
			provider := readyProvider(t, ProviderSetup{Capabilities: &caps})

			source := createResource(t, provider)
			dest := createResource(t, provider)
			pixels := testPixels(testSize, 40)
			writeResource(t, provider, source, pixels)

			require.NoError(t, provider.CopyResource(source, dest))

			r, err := provider.LockForRead(dest, nil)
			require.NoError(t, err)
			texture, ok := provider.GL.Texture(r.TextureID())
			require.True(t, ok)
			require.Equal(t, pixels, texture.Pixels)
			require.NoError(t, provider.UnlockForRead(dest))

			require.Equal(t, !testCase.pendingFence, provider.CanLockForWrite(source))
			require.Equal(t, testCase.finishes, provider.GL.Stats.Finishes)

			provider.Finish()
			require.True(t, provider.CanLockForWrite(source))
		})
	}
}

func TestCopyResourceBitmap(t *testing.T) {
	provider := readyProvider(t, ProviderSetup{Software: true})
	source := createResource(t, provider)
	dest := createResource(t, provider)
	pixels := testPixels(testSize, 90)
	writeResource(t, provider, source, pixels)

	require.NoError(t, provider.CopyResource(source, dest))

	lock, err := resources.NewScopedReadLockSoftware(provider.ResourceProvider, dest)
	require.NoError(t, err)
	require.Equal(t, pixels, lock.Pixels())
	require.NoError(t, lock.Release())
}

func TestCopyResourceValidation(t *testing.T) {
	provider := readyProvider(t, ProviderSetup{})
	source := createResource(t, provider)
	dest := createResource(t, provider)

	require.ErrorIs(t, provider.CopyResource(source, dest), resources.ErrNotAllocated)

	writeResource(t, provider, source, testPixels(testSize, 0))
	require.Error(t, provider.CopyResource(source, source))

	larger, err := provider.CreateResource(gpu.Size{Width: 8, Height: 8}, gputypes.AddressModeClampToEdge, gpu.UsageHintAsNeeded, gpu.FormatRGBA8888)
	require.NoError(t, err)
	require.Error(t, provider.CopyResource(source, larger))

	_, err = provider.LockForRead(source, nil)
	require.NoError(t, err)
	require.ErrorIs(t, provider.CopyResource(source, dest), resources.ErrLockedForRead)
	require.NoError(t, provider.UnlockForRead(source))

	_, err = provider.LockForWrite(dest)
	require.NoError(t, err)
	require.ErrorIs(t, provider.CopyResource(source, dest), resources.ErrLockedForWrite)
	require.NoError(t, provider.UnlockForWrite(dest))

	require.NoError(t, provider.CopyResource(source, dest))
}
