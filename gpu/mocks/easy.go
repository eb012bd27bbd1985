package mocks

import (
	"github.com/vkngwrapper/conduit/gpu"
	"go.uber.org/mock/gomock"
)

// EasyMockCommandInterface returns a command interface mock that reports the provided
// capabilities any number of times
func EasyMockCommandInterface(ctrl *gomock.Controller, caps gpu.Capabilities) *MockCommandInterface {
	gl := NewMockCommandInterface(ctrl)
	gl.EXPECT().Capabilities().Return(caps).AnyTimes()
	return gl
}

// EasyMockSharedBitmap returns a shared bitmap mock with the provided id and pixels. Close
// may be called any number of times.
func EasyMockSharedBitmap(ctrl *gomock.Controller, id gpu.Mailbox, pixels []byte) *MockSharedBitmap {
	bitmap := NewMockSharedBitmap(ctrl)
	bitmap.EXPECT().ID().Return(id).AnyTimes()
	bitmap.EXPECT().Pixels().Return(pixels).AnyTimes()
	bitmap.EXPECT().Close().Return(nil).AnyTimes()
	return bitmap
}
