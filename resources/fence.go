package resources

import (
	"sync/atomic"

	"github.com/vkngwrapper/conduit/gpu"
)

// Fence marks a point in the command stream that can be tested without blocking
type Fence interface {
	// Set arms the fence at the current end of the command stream
	Set()
	// HasPassed returns true once the GPU has executed every command issued before Set
	HasPassed() bool
	// Wait blocks until HasPassed would return true
	Wait()
	// Destroy releases any GPU objects owned by the fence
	Destroy()
}

// QueryFence polls a commands-completed query. A fence that was never set has not passed.
type QueryFence struct {
	gl    gpu.CommandInterface
	query gpu.QueryID
	set   bool
}

func NewQueryFence(gl gpu.CommandInterface) *QueryFence {
	return &QueryFence{
		gl:    gl,
		query: gl.GenQuery(),
	}
}

func (f *QueryFence) Set() {
	f.gl.BeginQuery(f.query)
	f.gl.EndQuery()
	f.set = true
}

func (f *QueryFence) HasPassed() bool {
	return f.set && f.gl.QueryResultAvailable(f.query)
}

func (f *QueryFence) Wait() {
	if !f.set {
		f.Set()
	}
	if !f.gl.QueryResultAvailable(f.query) {
		f.gl.Finish()
	}
}

func (f *QueryFence) Destroy() {
	f.gl.DeleteQueries([]gpu.QueryID{f.query})
}

// SynchronousFence is used when queries are unavailable. Polling it after Set forces the
// command stream to finish.
type SynchronousFence struct {
	gl           gpu.CommandInterface
	synchronized bool
}

func NewSynchronousFence(gl gpu.CommandInterface) *SynchronousFence {
	return &SynchronousFence{
		gl:           gl,
		synchronized: true,
	}
}

func (f *SynchronousFence) Set() {
	f.synchronized = false
}

func (f *SynchronousFence) HasPassed() bool {
	if !f.synchronized {
		f.Wait()
	}
	return true
}

func (f *SynchronousFence) Wait() {
	f.gl.Finish()
	f.synchronized = true
}

func (f *SynchronousFence) Destroy() {}

// SharedFence is a reference-counted handle to a Fence. One fence is usually shared by every
// resource read during a frame, and it is destroyed when the last holder releases it.
type SharedFence struct {
	fence      Fence
	references atomic.Int32
}

// NewSharedFence wraps fence with a single reference owned by the caller
func NewSharedFence(fence Fence) *SharedFence {
	shared := &SharedFence{fence: fence}
	shared.references.Store(1)
	return shared
}

// Acquire adds a reference and returns the receiver
func (f *SharedFence) Acquire() *SharedFence {
	if f.references.Add(1) <= 1 {
		panic("acquired a shared fence that was already destroyed")
	}
	return f
}

// Release drops a reference, destroying the fence with the last one
func (f *SharedFence) Release() {
	references := f.references.Add(-1)
	if references < 0 {
		panic("shared fence released more times than it was acquired")
	}
	if references == 0 {
		f.fence.Destroy()
	}
}

// References returns the current reference count
func (f *SharedFence) References() int {
	return int(f.references.Load())
}

func (f *SharedFence) Set()            { f.fence.Set() }
func (f *SharedFence) HasPassed() bool { return f.fence.HasPassed() }
func (f *SharedFence) Wait()           { f.fence.Wait() }
