package memutils

import (
	"math"

	cerrors "github.com/cockroachdb/errors"
)

type Number interface {
	~int | ~uint
}

func CheckPow2[T Number](number T, name string) error {
	if number&(number-1) != 0 {
		return cerrors.Wrapf(PowerOfTwoError, "%s is %d", name, number)
	}
	return nil
}

func AlignUp(value int, alignment uint) int {
	return (value + int(alignment) - 1) & int(^(alignment - 1))
}

func checkedMul(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// RowStride returns the number of bytes in one row of pixels, rounded up to alignment,
// which must be a power of two
func RowStride(width, bitsPerPixel int, alignment uint) (int, error) {
	DebugCheckPow2(alignment, "alignment")

	bits, ok := checkedMul(width, bitsPerPixel)
	if !ok || bits > math.MaxInt-7-int(alignment) {
		return 0, cerrors.Wrapf(SizeOverflowError, "width %d at %d bits per pixel", width, bitsPerPixel)
	}

	return AlignUp((bits+7)/8, alignment), nil
}

// SizeInBytes returns the number of bytes needed to store width x height pixels with
// rows aligned to four bytes
func SizeInBytes(width, height, bitsPerPixel int) (int, error) {
	if width < 0 || height < 0 {
		return 0, cerrors.Newf("negative dimensions %dx%d", width, height)
	}

	stride, err := RowStride(width, bitsPerPixel, 4)
	if err != nil {
		return 0, err
	}

	size, ok := checkedMul(stride, height)
	if !ok {
		return 0, cerrors.Wrapf(SizeOverflowError, "%d rows of %d bytes", height, stride)
	}
	return size, nil
}
