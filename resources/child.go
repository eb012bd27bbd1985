package resources

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/slog"
)

// CreateChild registers a peer that will send resources with ReceiveFromChild. sink receives
// every batch of resources handed back to the child and may be nil.
func (p *ResourceProvider) CreateChild(sink ReturnSink) ChildID {
	var id ChildID
	_ = p.withLock(func() error {
		id = p.nextChild
		p.nextChild++
		p.children.insert(newChild(id, sink))

		p.logger.Debug("ResourceProvider::CreateChild", slog.Int("child", int(id)))
		return nil
	})
	return id
}

func (p *ResourceProvider) getChild(id ChildID) (*child, error) {
	c, ok := p.children.get(id)
	if !ok || c.markedForDeletion {
		return nil, errors.Wrapf(ErrChildNotFound, "child %d", id)
	}
	return c, nil
}

// DestroyChild returns every resource received from the child. Resources that are still locked
// or exported are returned once they are released, and the child is forgotten after the last one.
func (p *ResourceProvider) DestroyChild(id ChildID) error {
	return p.withLock(func() error {
		c, err := p.getChild(id)
		if err != nil {
			return err
		}

		p.logger.Debug("ResourceProvider::DestroyChild",
			slog.Int("child", int(id)),
			slog.Int("resources", c.parentIDs.Len()),
		)
		return p.destroyChildInternal(c, deleteStyleNormal)
	})
}

func (p *ResourceProvider) destroyChildInternal(c *child, style deleteStyle) error {
	c.inUse.Clear(false)
	c.markedForDeletion = true

	return p.deleteAndReturnUnused(c, style, c.sortedParentIDs())
}

// GetChildToParentMap returns the local id of every resource received from the child, keyed by
// the child's id for it
func (p *ResourceProvider) GetChildToParentMap(id ChildID) (map[ResourceID]ResourceID, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	c, err := p.getChild(id)
	if err != nil {
		return nil, err
	}

	result := make(map[ResourceID]ResourceID, c.childToParent.Count())
	c.childToParent.Iter(func(childID, parentID ResourceID) bool {
		result[childID] = parentID
		return false
	})
	return result, nil
}
