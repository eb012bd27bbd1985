package gpu

import "github.com/gogpu/gputypes"

// Format is the channel layout of a resource
type Format int32

const (
	FormatRGBA8888 Format = iota
	FormatRGBA4444
	FormatBGRA8888
	FormatLuminance8
	FormatRGB565
	FormatETC1
)

var formatMapping = map[Format]string{
	FormatRGBA8888:   "FormatRGBA8888",
	FormatRGBA4444:   "FormatRGBA4444",
	FormatBGRA8888:   "FormatBGRA8888",
	FormatLuminance8: "FormatLuminance8",
	FormatRGB565:     "FormatRGB565",
	FormatETC1:       "FormatETC1",
}

func (f Format) String() string {
	return formatMapping[f]
}

// IsValid returns false for values outside the known set of formats
func (f Format) IsValid() bool {
	_, ok := formatMapping[f]
	return ok
}

// BitsPerPixel returns the storage size of one pixel. ETC1 stores 4x4 blocks
// in 8 bytes, so it reports 4.
func (f Format) BitsPerPixel() int {
	switch f {
	case FormatRGBA8888, FormatBGRA8888:
		return 32
	case FormatRGBA4444, FormatRGB565:
		return 16
	case FormatLuminance8:
		return 8
	case FormatETC1:
		return 4
	}

	panic("unknown resource format")
}

// IsCompressed returns true for block-compressed formats, which cannot be allocated
// without pixel data
func (f Format) IsCompressed() bool {
	return f == FormatETC1
}

// SupportsTextureStorage returns true for formats that may be allocated through immutable
// texture storage
func (f Format) SupportsTextureStorage() bool {
	return f == FormatRGBA8888 || f == FormatBGRA8888
}

// TextureFormat maps the format onto a GPU texture format. Packed 16-bit formats have
// no equivalent and return false.
func (f Format) TextureFormat() (gputypes.TextureFormat, bool) {
	switch f {
	case FormatRGBA8888:
		return gputypes.TextureFormatRGBA8Unorm, true
	case FormatBGRA8888:
		return gputypes.TextureFormatBGRA8Unorm, true
	case FormatLuminance8:
		return gputypes.TextureFormatR8Unorm, true
	case FormatETC1:
		// ETC2 decoders accept ETC1 data
		return gputypes.TextureFormatETC2RGB8Unorm, true
	}

	return gputypes.TextureFormatUndefined, false
}
