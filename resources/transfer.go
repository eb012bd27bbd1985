package resources

import (
	"context"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"
	"github.com/google/btree"
	"github.com/vkngwrapper/conduit/gpu"
	"golang.org/x/exp/slog"
)

// PrepareSendToParent exports resources to a parent provider. Each exported resource is counted
// until the parent returns it with ReceiveReturnsFromParent, and cannot be locked meanwhile.
//
// Every resource must be allocated and unlocked; if any is not, nothing is exported. Resources
// used by this command stream since their last sync token share a single new token, and any
// unverified tokens are verified together.
func (p *ResourceProvider) PrepareSendToParent(ids []ResourceID) ([]TransferableResource, error) {
	var list []TransferableResource

	err := p.withLock(func() error {
		sources := make([]*Resource, 0, len(ids))
		for _, id := range ids {
			r, err := p.getResource(id)
			if err != nil {
				return err
			}
			if err := p.checkTransfer(r); err != nil {
				return err
			}
			sources = append(sources, r)
		}

		p.logger.Debug("ResourceProvider::PrepareSendToParent", slog.Int("count", len(ids)))

		list = make([]TransferableResource, 0, len(sources))
		var needsToken []int
		for _, r := range sources {
			transferable, needToken := p.transferResource(r)
			if needToken {
				needsToken = append(needsToken, len(list))
			}

			r.exportedCount++
			list = append(list, transferable)
		}

		if len(needsToken) > 0 && !p.lostContext {
			token := p.gl.InsertSyncToken()
			for _, index := range needsToken {
				list[index].MailboxHolder.SyncToken = token
				sources[index].mailbox.SyncToken = token
				sources[index].synchronizationState = SynchronizationStateSynchronized
			}
		}

		var unverified []*gpu.SyncToken
		for i := range list {
			token := &list[i].MailboxHolder.SyncToken
			if token.HasData() && !token.Verified {
				unverified = append(unverified, token)
			}
		}
		if len(unverified) > 0 && !p.lostContext {
			p.gl.VerifySyncTokens(unverified)
			for i, r := range sources {
				if list[i].MailboxHolder.SyncToken.Verified {
					r.mailbox.SyncToken.Verified = true
				}
			}
		}

		for _, r := range sources {
			p.validate(r)
		}
		return nil
	})

	return list, err
}

func (p *ResourceProvider) checkTransfer(r *Resource) error {
	switch {
	case r.lockedForWrite:
		return errors.Wrapf(ErrLockedForWrite, "resource %d", r.id)
	case r.lockForReadCount > 0:
		return errors.Wrapf(ErrLockedForRead, "resource %d has %d readers", r.id, r.lockForReadCount)
	case !r.allocated:
		return errors.Wrapf(ErrNotAllocated, "resource %d", r.id)
	}

	if b, ok := r.backing.(*bitmapBacking); ok && b.bitmap == nil {
		return errors.Wrapf(ErrNotExportable, "bitmap resource %d is not in shared memory", r.id)
	}
	return nil
}

// transferResource describes the resource for its parent, producing a mailbox for it if it does
// not have one. It returns true if the resource needs a new sync token.
func (p *ResourceProvider) transferResource(r *Resource) (TransferableResource, bool) {
	transferable := TransferableResource{
		ID:                    r.id,
		Format:                r.format,
		Filter:                r.filter,
		Size:                  r.size,
		IsOverlayCandidate:    r.allowOverlay,
		IsRepeated:            r.wrapMode == gputypes.AddressModeRepeat,
		ReadLockFencesEnabled: r.readLockFencesEnabled,
	}

	switch b := r.backing.(type) {
	case *bitmapBacking:
		transferable.IsSoftware = true
		transferable.MailboxHolder.Mailbox = b.bitmap.ID()
		return transferable, false
	case *textureBacking:
		if r.mailbox.IsZero() {
			p.lazyCreate(r, b)
			p.gl.BindTexture(b.target, b.textureID)
			p.produceMailbox(r, b.target)
		}
	case *gpuMemoryBufferBacking:
		if r.mailbox.IsZero() || b.dirtyImage {
			p.gl.BindTexture(b.target, b.textureID)
			if b.dirtyImage {
				p.bindImageForSampling(b)
				r.synchronizationState = SynchronizationStateLocallyUsed
			}
		}
		if r.mailbox.IsZero() {
			p.produceMailbox(r, b.target)
		}
	default:
		panic("unknown resource backing")
	}

	transferable.MailboxHolder = r.mailbox
	needToken := r.synchronizationState == SynchronizationStateLocallyUsed || !r.mailbox.SyncToken.HasData()
	return transferable, needToken
}

func (p *ResourceProvider) produceMailbox(r *Resource, target gpu.TextureTarget) {
	r.mailbox = gpu.MailboxHolder{
		Mailbox: p.gl.GenMailbox(),
		Target:  target,
	}
	p.gl.ProduceTexture(target, r.mailbox.Mailbox)
	r.synchronizationState = SynchronizationStateLocallyUsed
}

// ReceiveFromChild imports resources sent by a child. A resource the child already sent and
// has not been returned is counted again rather than imported twice.
//
// Resources this provider cannot use, such as textures received by a software provider, are
// returned to the child immediately as lost.
func (p *ResourceProvider) ReceiveFromChild(childID ChildID, resources []TransferableResource) error {
	return p.withLock(func() error {
		c, err := p.getChild(childID)
		if err != nil {
			return err
		}

		p.logger.Debug("ResourceProvider::ReceiveFromChild",
			slog.Int("child", int(childID)),
			slog.Int("count", len(resources)),
		)

		var rejected []ReturnedResource
		for _, transferable := range resources {
			if localID, ok := c.childToParent.Get(transferable.ID); ok {
				r, _ := p.resources.get(localID)
				r.markedForDeletion = false
				r.importedCount++
				p.validate(r)
				continue
			}

			if reason := p.unsupportedImport(transferable); reason != "" {
				p.logger.LogAttrs(context.Background(), slog.LevelWarn, "rejecting resource from child",
					slog.Int("child", int(childID)),
					slog.Int("id", int(transferable.ID)),
					slog.String("reason", reason),
				)

				returned := transferable.ToReturnedResource()
				returned.Lost = true
				rejected = append(rejected, returned)
				continue
			}

			r := p.importResource(childID, transferable)
			c.add(transferable.ID, p.insertResource(r))
		}

		p.postReturn(c, rejected)
		return nil
	})
}

func (p *ResourceProvider) unsupportedImport(transferable TransferableResource) string {
	switch {
	case !transferable.Format.IsValid():
		return "unknown format"
	case transferable.Size.IsEmpty():
		return "empty size"
	case transferable.IsSoftware && p.bitmaps == nil:
		return "no shared bitmap manager"
	case transferable.IsSoftware && transferable.Format != gpu.FormatRGBA8888:
		return "software resources must be RGBA"
	case !transferable.IsSoftware && p.gl == nil:
		return "no gpu context"
	case !transferable.IsSoftware && transferable.MailboxHolder.IsZero():
		return "texture without a mailbox"
	}
	return ""
}

func (p *ResourceProvider) importResource(childID ChildID, transferable TransferableResource) *Resource {
	filter := transferable.Filter
	if filter == gputypes.FilterModeUndefined {
		filter = gputypes.FilterModeLinear
	}

	var r *Resource
	if transferable.IsSoftware {
		b := &bitmapBacking{}
		r = newResource(0, OriginDelegated, transferable.Size, transferable.Format, b, filter)

		bitmap, err := p.bitmaps.GetSharedBitmapFromID(transferable.Size, transferable.MailboxHolder.Mailbox)
		if err != nil {
			p.logger.LogAttrs(context.Background(), slog.LevelWarn, "child sent an unknown shared bitmap",
				slog.Int("child", int(childID)),
				slog.Int("id", int(transferable.ID)),
				slog.Any("error", err),
			)
			r.lost = true
		} else {
			b.bitmap = bitmap
			b.pixels = bitmap.Pixels()
		}
		r.mailbox.Mailbox = transferable.MailboxHolder.Mailbox
	} else {
		target := transferable.MailboxHolder.Target
		if target == 0 {
			target = gpu.TextureTarget2D
		}

		r = newResource(0, OriginDelegated, transferable.Size, transferable.Format, &textureBacking{
			target: target,
		}, filter)
		r.mailbox = transferable.MailboxHolder
		r.mailbox.Target = target
		if r.mailbox.SyncToken.HasData() {
			r.synchronizationState = SynchronizationStateNeedsWait
		}
	}

	if transferable.IsRepeated {
		r.wrapMode = gputypes.AddressModeRepeat
	}
	r.childID = childID
	r.allocated = true
	r.importedCount = 1
	r.readLockFencesEnabled = transferable.ReadLockFencesEnabled
	r.allowOverlay = transferable.IsOverlayCandidate
	return r
}

// DeclareUsedResourcesFromChild replaces the set of the child's resources that are in use. Every
// other resource received from the child is returned to it, or marked to be returned once it is
// no longer locked or exported. ids are in the child's id space. A resource cannot be declared in
// use again once it is waiting to be returned unless the child sends it again.
func (p *ResourceProvider) DeclareUsedResourcesFromChild(childID ChildID, ids []ResourceID) error {
	return p.withLock(func() error {
		c, err := p.getChild(childID)
		if err != nil {
			return err
		}

		inUse := btree.NewOrderedG[ResourceID](8)
		for _, id := range ids {
			localID, ok := c.childToParent.Get(id)
			if !ok {
				return errors.Wrapf(ErrUnknownChildResource, "child %d resource %d", childID, id)
			}
			if r, ok := p.resources.get(localID); ok && r.markedForDeletion {
				return errors.Wrapf(ErrMarkedForDeletion, "child %d resource %d was already declared unused", childID, id)
			}
			inUse.ReplaceOrInsert(localID)
		}
		c.inUse = inUse

		var unused []ResourceID
		c.parentIDs.Ascend(func(localID ResourceID) bool {
			if !inUse.Has(localID) {
				unused = append(unused, localID)
			}
			return true
		})

		p.logger.Debug("ResourceProvider::DeclareUsedResourcesFromChild",
			slog.Int("child", int(childID)),
			slog.Int("inUse", inUse.Len()),
			slog.Int("unused", len(unused)),
		)

		return p.deleteAndReturnUnused(c, deleteStyleNormal, unused)
	})
}

// ReceiveReturnsFromParent takes back resources exported with PrepareSendToParent. Returns for
// unknown ids are ignored, since the resource may have been lost with its child.
//
// Once every export of a resource has been returned, the returned sync token is waited on before
// the resource is next used, and fence is captured on it if it uses read lock fences. A resource
// that was deleted or declared unused while exported is then deleted or returned to its child.
// Returning more than was exported is fatal.
func (p *ResourceProvider) ReceiveReturnsFromParent(returned []ReturnedResource, fence *SharedFence) error {
	return p.withLock(func() error {
		type pending struct {
			returned ReturnedResource
			resource *Resource
		}

		sorted := make([]pending, 0, len(returned))
		for _, entry := range returned {
			r, ok := p.resources.get(entry.ID)
			if !ok {
				continue
			}
			sorted = append(sorted, pending{returned: entry, resource: r})
		}

		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].resource.childID < sorted[j].resource.childID
		})

		p.logger.Debug("ResourceProvider::ReceiveReturnsFromParent",
			slog.Int("count", len(returned)),
			slog.Int("known", len(sorted)),
		)

		var errs error
		var batchChild *child
		var batch []ResourceID
		queued := make(map[ResourceID]bool)
		flush := func() {
			if batchChild != nil {
				errs = errors.CombineErrors(errs, p.deleteAndReturnUnused(batchChild, deleteStyleNormal, batch))
			}
			batchChild = nil
			batch = nil
		}

		for _, entry := range sorted {
			r := entry.resource
			if _, live := p.resources.get(r.id); !live {
				continue
			}

			r.acceptReturn(entry.returned.Count, entry.returned.Lost)
			if r.exportedCount > 0 {
				p.validate(r)
				continue
			}

			if fence != nil && r.readLockFencesEnabled {
				r.setReadLockFence(fence)
			}

			if entry.returned.SyncToken.HasData() && r.isGpuBacked() {
				r.mailbox.SyncToken = entry.returned.SyncToken
				r.synchronizationState = SynchronizationStateNeedsWait
			}
			p.validate(r)

			if !r.markedForDeletion || r.lockForReadCount > 0 || queued[r.id] {
				continue
			}

			if r.childID == 0 {
				errs = errors.CombineErrors(errs, p.deleteResourceInternal(r, deleteStyleNormal))
				continue
			}

			if batchChild == nil || batchChild.id != r.childID {
				flush()
				c, ok := p.children.get(r.childID)
				if !ok {
					panic(errors.AssertionFailedf("resource %d belongs to missing child %d", r.id, r.childID))
				}
				batchChild = c
			}
			batch = append(batch, r.id)
			queued[r.id] = true
		}
		flush()

		return errs
	})
}

// deleteAndReturnUnused returns resources to the child they were received from and deletes them
// locally. Resources still locked or exported are marked and returned once they are released,
// unless the provider is shutting down, in which case they are returned as lost.
func (p *ResourceProvider) deleteAndReturnUnused(c *child, style deleteStyle, unused []ResourceID) error {
	if len(unused) == 0 && !c.markedForDeletion {
		return nil
	}

	var errs error
	var toReturn []ReturnedResource
	var needsToken []int

	for _, localID := range unused {
		r, ok := p.resources.get(localID)
		if !ok {
			panic(errors.AssertionFailedf("returning missing resource %d to child %d", localID, c.id))
		}

		childResourceID, ok := c.parentToChild.Get(localID)
		if !ok {
			panic(errors.AssertionFailedf("resource %d was not received from child %d", localID, c.id))
		}

		lost := p.resourceLost(r)
		if r.exportedCount > 0 || r.lockForReadCount > 0 {
			if style != deleteStyleForShutdown {
				r.markedForDeletion = true
				p.validate(r)
				continue
			}

			lost = true
			p.logger.LogAttrs(context.Background(), slog.LevelWarn, "returning in-use resource as lost during shutdown",
				slog.Int("child", int(c.id)),
				slog.Int("id", int(localID)),
			)
		}

		if b, ok := r.backing.(*textureBacking); ok && r.filter != r.originalFilter {
			if b.textureID != 0 {
				p.gl.BindTexture(b.target, b.textureID)
				p.gl.TexParameterFilter(b.target, r.originalFilter)
			}
			r.filter = r.originalFilter
		}

		returned := ReturnedResource{
			ID:    childResourceID,
			Count: r.importedCount,
			Lost:  lost,
		}
		if r.isGpuBacked() {
			returned.SyncToken = r.mailbox.SyncToken
			if !lost && (r.synchronizationState == SynchronizationStateLocallyUsed || !returned.SyncToken.HasData()) {
				needsToken = append(needsToken, len(toReturn))
			}
		}
		toReturn = append(toReturn, returned)

		c.remove(localID)
		r.importedCount = 0
		errs = errors.CombineErrors(errs, p.deleteResourceInternal(r, style))
	}

	if len(needsToken) > 0 && !p.lostContext {
		token := p.gl.InsertSyncToken()
		for _, index := range needsToken {
			toReturn[index].SyncToken = token
		}
	}

	p.postReturn(c, toReturn)

	if c.markedForDeletion && c.isEmpty() {
		p.children.erase(c.id)
	}
	return errs
}
