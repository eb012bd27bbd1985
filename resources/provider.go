package resources

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/docker/go-units"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/conduit/gpu"
	"github.com/vkngwrapper/conduit/memutils"
	"github.com/vkngwrapper/conduit/resources/internal/utils"
	"golang.org/x/exp/slog"
)

// ResourceProvider tracks textures, bitmaps and GpuMemoryBuffers, hands them out through read
// and write locks, and moves them between providers with PrepareSendToParent, ReceiveFromChild
// and ReceiveReturnsFromParent.
//
// Every public method may be called from any goroutine unless the provider was created with
// CreateExternallySynchronized. Release callbacks and child return sinks never run while the
// provider is held, so they may call back into it.
type ResourceProvider struct {
	logger *slog.Logger
	mutex  utils.OptionalMutex

	gl      gpu.CommandInterface
	bitmaps gpu.SharedBitmapManager
	buffers gpu.GpuMemoryBufferManager
	caps    gpu.Capabilities

	createFlags         CreateFlags
	defaultType         ResourceType
	maxTextureSize      int
	useTextureStorage   bool
	useTextureUsageHint bool
	lostContext         bool
	destroyed           bool

	textureIDs *IDAllocator[gpu.TextureID]
	bufferIDs  *IDAllocator[gpu.BufferID]

	resources resourceMap
	children  childMap
	nextID    ResourceID
	nextChild ChildID

	dispatcher Dispatcher
	outbox     []message
}

// withLock runs fn while holding the provider, then hands every message fn produced to the
// dispatcher after the provider is released
func (p *ResourceProvider) withLock(fn func() error) error {
	outbox, err := p.runLocked(fn)

	for _, m := range outbox {
		p.dispatcher.Dispatch(m.deliver)
	}

	return err
}

// runLocked releases the provider even if fn panics. Messages produced by a panicking fn are
// dropped.
func (p *ResourceProvider) runLocked(fn func() error) (outbox []message, err error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	defer func() {
		outbox = p.outbox
		p.outbox = nil
	}()

	return nil, fn()
}

func (p *ResourceProvider) postRelease(r *Resource, token gpu.SyncToken, lost bool) {
	if r.release == nil {
		return
	}

	p.outbox = append(p.outbox, message{release: r.release, token: token, lost: lost})
	r.release = nil
}

func (p *ResourceProvider) postReturn(c *child, returned []ReturnedResource) {
	if len(returned) == 0 || c.sink == nil {
		return
	}

	p.outbox = append(p.outbox, message{sink: c.sink, returned: returned})
}

func (p *ResourceProvider) getResource(id ResourceID) (*Resource, error) {
	r, ok := p.resources.get(id)
	if !ok {
		return nil, errors.Wrapf(ErrResourceNotFound, "resource %d", id)
	}
	return r, nil
}

// resourceLost is true for resources marked lost and for every GPU-backed resource once the
// context is gone
func (p *ResourceProvider) resourceLost(r *Resource) bool {
	return r.lost || (r.isGpuBacked() && p.lostContext)
}

func (p *ResourceProvider) validate(r *Resource) {
	memutils.DebugValidate(r)
}

// DefaultResourceType is the backing type CreateResource uses
func (p *ResourceProvider) DefaultResourceType() ResourceType {
	return p.defaultType
}

// MaxTextureSize is the largest dimension of a resource this provider will create
func (p *ResourceProvider) MaxTextureSize() int {
	return p.maxTextureSize
}

// ResourceCount returns the number of live resources, including those pending deletion
func (p *ResourceProvider) ResourceCount() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.resources.count()
}

// ChildCount returns the number of live children
func (p *ResourceProvider) ChildCount() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.children.count()
}

// InUseByConsumer returns true if the resource is read-locked, exported to a parent, or lost.
// Producers must not recycle such a resource.
func (p *ResourceProvider) InUseByConsumer(id ResourceID) (bool, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	r, err := p.getResource(id)
	if err != nil {
		return false, err
	}
	return r.lockForReadCount > 0 || r.exportedCount > 0 || p.resourceLost(r), nil
}

// IsLost returns true if the resource's contents can no longer be trusted
func (p *ResourceProvider) IsLost(id ResourceID) (bool, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	r, err := p.getResource(id)
	if err != nil {
		return false, err
	}
	return p.resourceLost(r), nil
}

// AllowOverlay returns true if the resource may be promoted to a hardware overlay
func (p *ResourceProvider) AllowOverlay(id ResourceID) (bool, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	r, err := p.getResource(id)
	if err != nil {
		return false, err
	}
	return r.allowOverlay, nil
}

func (p *ResourceProvider) GetResourceType(id ResourceID) (ResourceType, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	r, err := p.getResource(id)
	if err != nil {
		return 0, err
	}
	return r.Type(), nil
}

func (p *ResourceProvider) GetResourceSize(id ResourceID) (gpu.Size, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	r, err := p.getResource(id)
	if err != nil {
		return gpu.Size{}, err
	}
	return r.size, nil
}

func (p *ResourceProvider) GetResourceFormat(id ResourceID) (gpu.Format, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	r, err := p.getResource(id)
	if err != nil {
		return 0, err
	}
	return r.format, nil
}

// GetResourceTextureTarget returns the target a GPU-backed resource must be bound to
func (p *ResourceProvider) GetResourceTextureTarget(id ResourceID) (gpu.TextureTarget, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	r, err := p.getResource(id)
	if err != nil {
		return 0, err
	}

	switch b := r.backing.(type) {
	case *textureBacking:
		return b.target, nil
	case *gpuMemoryBufferBacking:
		return b.target, nil
	case *bitmapBacking:
		return 0, errors.Wrapf(ErrWrongResourceType, "resource %d is a bitmap", id)
	}

	panic("unknown resource backing")
}

// Flush submits every pending command. It does nothing for a software provider.
func (p *ResourceProvider) Flush() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.gl != nil {
		p.gl.Flush()
	}
}

// Finish blocks until every pending command has executed. It does nothing for a software provider.
func (p *ResourceProvider) Finish() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.gl != nil {
		p.gl.Finish()
	}
}

// DidLoseContext records that the GPU context is gone. Every GPU-backed resource is lost from now
// on, fences count as passed and sync tokens are no longer waited on.
func (p *ResourceProvider) DidLoseContext() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.logger.LogAttrs(context.Background(), slog.LevelWarn, "ResourceProvider::DidLoseContext",
		slog.Int("resources", p.resources.count()),
	)
	p.lostContext = true
}

// IsContextLost returns true once DidLoseContext has been called
func (p *ResourceProvider) IsContextLost() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.lostContext
}

// Destroy shuts the provider down. Every child has its resources returned as lost, every
// remaining resource is deleted and every external resource's release callback runs with lost
// set if the resource was still exported. The provider cannot be used afterward.
func (p *ResourceProvider) Destroy() error {
	return p.withLock(func() error {
		if p.destroyed {
			return errors.New("resource provider destroyed twice")
		}
		p.destroyed = true

		p.logger.Debug("ResourceProvider::Destroy",
			slog.Int("resources", p.resources.count()),
			slog.Int("children", p.children.count()),
		)

		var errs error
		for _, childID := range p.children.sortedIDs() {
			c, _ := p.children.get(childID)
			errs = errors.CombineErrors(errs, p.destroyChildInternal(c, deleteStyleForShutdown))
		}

		for _, id := range p.resources.sortedIDs() {
			r, _ := p.resources.get(id)
			errs = errors.CombineErrors(errs, p.deleteResourceInternal(r, deleteStyleForShutdown))
		}

		if p.gl != nil {
			p.textureIDs.Destroy()
			p.bufferIDs.Destroy()
			p.gl.Finish()
		}

		return errs
	})
}

// CalculateStatistics adds this provider's resources to stats
func (p *ResourceProvider) CalculateStatistics(stats *memutils.DetailedStatistics) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.calculateStatistics(stats)
}

func (p *ResourceProvider) calculateStatistics(stats *memutils.DetailedStatistics) {
	p.resources.resources.Iter(func(_ ResourceID, r *Resource) bool {
		stats.AddResource(r.byteSize(), r.allocated)

		if r.lockForReadCount > 0 {
			stats.ReadLockedCount++
		}
		if r.lockedForWrite {
			stats.WriteLockedCount++
		}
		if r.exportedCount > 0 {
			stats.ExportedCount++
		}
		if r.importedCount > 0 {
			stats.ImportedCount++
		}
		if p.resourceLost(r) {
			stats.LostCount++
		}
		if r.markedForDeletion {
			stats.PendingDeletion++
		}
		return false
	})
}

// BuildStatsString returns a JSON description of the provider. If detailed is true, every
// resource is listed.
func (p *ResourceProvider) BuildStatsString(detailed bool) string {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	var stats memutils.DetailedStatistics
	stats.Clear()
	p.calculateStatistics(&stats)

	writer := jwriter.NewWriter()
	objState := writer.Object()
	{
		objState.Name("DefaultType").String(p.defaultType.String())
		objState.Name("ContextLost").Bool(p.lostContext)
		objState.Name("Children").Int(p.children.count())

		totalState := objState.Name("Total").Object()
		p.printDetailedStatistics(&totalState, &stats)
		totalState.End()

		if detailed {
			resourcesState := objState.Name("Resources").Array()
			for _, id := range p.resources.sortedIDs() {
				r, _ := p.resources.get(id)
				resourceState := resourcesState.Object()
				p.printResource(&resourceState, r)
				resourceState.End()
			}
			resourcesState.End()
		}
	}
	objState.End()

	return string(writer.Bytes())
}

func (p *ResourceProvider) printDetailedStatistics(objState *jwriter.ObjectState, stats *memutils.DetailedStatistics) {
	objState.Name("ResourceCount").Int(stats.ResourceCount)
	objState.Name("AllocatedCount").Int(stats.AllocatedCount)
	objState.Name("ResourceBytes").Int(stats.ResourceBytes)
	objState.Name("ResourceSize").String(units.BytesSize(float64(stats.ResourceBytes)))
	objState.Name("ReadLocked").Int(stats.ReadLockedCount)
	objState.Name("WriteLocked").Int(stats.WriteLockedCount)
	objState.Name("Exported").Int(stats.ExportedCount)
	objState.Name("Imported").Int(stats.ImportedCount)
	objState.Name("Lost").Int(stats.LostCount)
	objState.Name("PendingDeletion").Int(stats.PendingDeletion)

	if stats.ResourceCount > 0 {
		objState.Name("ResourceSizeMin").Int(stats.ResourceSizeMin)
		objState.Name("ResourceSizeMax").Int(stats.ResourceSizeMax)
	}
}

func (p *ResourceProvider) printResource(objState *jwriter.ObjectState, r *Resource) {
	objState.Name("ID").Int(int(r.id))
	objState.Name("Type").String(r.Type().String())
	objState.Name("Origin").String(r.origin.String())
	objState.Name("Size").String(r.size.String())
	objState.Name("Format").String(r.format.String())
	objState.Name("State").String(r.LockState().String())
	objState.Name("Synchronization").String(r.synchronizationState.String())

	if r.lockForReadCount > 0 {
		objState.Name("ReadLocks").Int(r.lockForReadCount)
	}
	if r.exportedCount > 0 {
		objState.Name("ExportedCount").Int(r.exportedCount)
	}
	if r.importedCount > 0 {
		objState.Name("ImportedCount").Int(r.importedCount)
	}
	if r.childID != 0 {
		objState.Name("Child").Int(int(r.childID))
	}
	if p.resourceLost(r) {
		objState.Name("Lost").Bool(true)
	}
	if !r.mailbox.IsZero() {
		objState.Name("Mailbox").String(r.mailbox.Mailbox.String())
	}
}
