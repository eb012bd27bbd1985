package resources

import (
	"sort"

	"github.com/dolthub/swiss"
	"github.com/google/btree"
)

// resourceMap is the provider's resource table. Resources are stored by pointer, so inserting
// or erasing one never moves another.
type resourceMap struct {
	resources *swiss.Map[ResourceID, *Resource]
}

func newResourceMap() resourceMap {
	return resourceMap{resources: swiss.NewMap[ResourceID, *Resource](64)}
}

func (m resourceMap) insert(r *Resource) {
	if m.resources.Has(r.id) {
		panic("resource id inserted twice")
	}
	m.resources.Put(r.id, r)
}

func (m resourceMap) get(id ResourceID) (*Resource, bool) {
	return m.resources.Get(id)
}

func (m resourceMap) erase(id ResourceID) {
	m.resources.Delete(id)
}

func (m resourceMap) count() int {
	return m.resources.Count()
}

// sortedIDs returns every id in ascending order
func (m resourceMap) sortedIDs() []ResourceID {
	ids := make([]ResourceID, 0, m.resources.Count())
	m.resources.Iter(func(id ResourceID, _ *Resource) bool {
		ids = append(ids, id)
		return false
	})
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// child is a peer that sends resources to this provider. Every resource received from it is
// mapped in both directions.
type child struct {
	id                ChildID
	sink              ReturnSink
	childToParent     *swiss.Map[ResourceID, ResourceID]
	parentToChild     *swiss.Map[ResourceID, ResourceID]
	parentIDs         *btree.BTreeG[ResourceID]
	inUse             *btree.BTreeG[ResourceID]
	markedForDeletion bool
}

func newChild(id ChildID, sink ReturnSink) *child {
	return &child{
		id:            id,
		sink:          sink,
		childToParent: swiss.NewMap[ResourceID, ResourceID](16),
		parentToChild: swiss.NewMap[ResourceID, ResourceID](16),
		parentIDs:     btree.NewOrderedG[ResourceID](8),
		inUse:         btree.NewOrderedG[ResourceID](8),
	}
}

func (c *child) add(childID, parentID ResourceID) {
	c.childToParent.Put(childID, parentID)
	c.parentToChild.Put(parentID, childID)
	c.parentIDs.ReplaceOrInsert(parentID)
}

func (c *child) remove(parentID ResourceID) {
	childID, ok := c.parentToChild.Get(parentID)
	if !ok {
		panic("removing a resource that was not received from this child")
	}

	c.childToParent.Delete(childID)
	c.parentToChild.Delete(parentID)
	c.parentIDs.Delete(parentID)
	c.inUse.Delete(parentID)
}

func (c *child) isEmpty() bool {
	return c.parentIDs.Len() == 0
}

// sortedParentIDs returns every local id received from this child in ascending order
func (c *child) sortedParentIDs() []ResourceID {
	ids := make([]ResourceID, 0, c.parentIDs.Len())
	c.parentIDs.Ascend(func(id ResourceID) bool {
		ids = append(ids, id)
		return true
	})
	return ids
}

type childMap struct {
	children *swiss.Map[ChildID, *child]
}

func newChildMap() childMap {
	return childMap{children: swiss.NewMap[ChildID, *child](8)}
}

func (m childMap) insert(c *child) {
	m.children.Put(c.id, c)
}

func (m childMap) get(id ChildID) (*child, bool) {
	return m.children.Get(id)
}

func (m childMap) erase(id ChildID) {
	m.children.Delete(id)
}

func (m childMap) count() int {
	return m.children.Count()
}

func (m childMap) sortedIDs() []ChildID {
	ids := make([]ChildID, 0, m.children.Count())
	m.children.Iter(func(id ChildID, _ *child) bool {
		ids = append(ids, id)
		return false
	})
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
