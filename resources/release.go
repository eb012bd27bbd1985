package resources

import (
	"sync"
	"sync/atomic"

	"github.com/vkngwrapper/conduit/gpu"
)

// ReleaseCallback tells the producer of an external resource that the provider is done with it.
// The token must be waited on before the producer reuses the memory, and lost indicates the
// contents can no longer be trusted. A ReleaseCallback runs at most once: running it a second
// time panics.
type ReleaseCallback struct {
	callback func(token gpu.SyncToken, lost bool)
	ran      atomic.Bool
}

func NewReleaseCallback(callback func(token gpu.SyncToken, lost bool)) *ReleaseCallback {
	return &ReleaseCallback{callback: callback}
}

// Run invokes the callback. A nil ReleaseCallback does nothing.
func (c *ReleaseCallback) Run(token gpu.SyncToken, lost bool) {
	if c == nil {
		return
	}
	if c.ran.Swap(true) {
		panic("release callback ran more than once")
	}
	if c.callback != nil {
		c.callback(token, lost)
	}
}

// HasRun returns true once Run has been called
func (c *ReleaseCallback) HasRun() bool {
	return c.ran.Load()
}

// ReturnSink receives batches of resources a parent provider is handing back to a child
type ReturnSink func(returned []ReturnedResource)

// Dispatcher delivers release and return messages. Messages are handed over in the order the
// provider produced them and the dispatcher must preserve that order.
type Dispatcher interface {
	Dispatch(task func())
}

// InlineDispatcher runs every message on the goroutine that produced it, after the provider
// call that produced it has released the provider
type InlineDispatcher struct{}

func (InlineDispatcher) Dispatch(task func()) {
	task()
}

// SerialDispatcher runs messages one at a time on a dedicated goroutine
type SerialDispatcher struct {
	mutex  sync.Mutex
	closed bool
	tasks  chan func()
	done   chan struct{}
}

// NewSerialDispatcher starts a dispatcher that can queue buffer messages before Dispatch blocks
func NewSerialDispatcher(buffer int) *SerialDispatcher {
	d := &SerialDispatcher{
		tasks: make(chan func(), buffer),
		done:  make(chan struct{}),
	}

	go func() {
		defer close(d.done)
		for task := range d.tasks {
			task()
		}
	}()

	return d
}

// Dispatch queues task. Once the dispatcher is closed, task runs on the calling goroutine after
// every queued message has run.
func (d *SerialDispatcher) Dispatch(task func()) {
	d.mutex.Lock()
	if d.closed {
		d.mutex.Unlock()
		<-d.done
		task()
		return
	}

	d.tasks <- task
	d.mutex.Unlock()
}

// Close stops accepting messages and blocks until every queued message has run
func (d *SerialDispatcher) Close() {
	d.mutex.Lock()
	if !d.closed {
		d.closed = true
		close(d.tasks)
	}
	d.mutex.Unlock()

	<-d.done
}

// message is a release or return produced while the provider was locked
type message struct {
	release *ReleaseCallback
	token   gpu.SyncToken
	lost    bool

	sink     ReturnSink
	returned []ReturnedResource
}

func (m message) deliver() {
	if m.sink != nil {
		m.sink(m.returned)
		return
	}
	m.release.Run(m.token, m.lost)
}
