package resources

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"
	"github.com/vkngwrapper/conduit/gpu"
)

// TransferableResource describes a resource sent from a child provider to its parent. The ID is
// in the sender's id space.
type TransferableResource struct {
	ID                    ResourceID
	Format                gpu.Format
	Filter                gputypes.FilterMode
	Size                  gpu.Size
	MailboxHolder         gpu.MailboxHolder
	IsSoftware            bool
	IsOverlayCandidate    bool
	IsRepeated            bool
	ReadLockFencesEnabled bool
}

// ReturnedResource hands Count references to a resource back to the provider that sent it. The
// ID is in the receiver's id space.
type ReturnedResource struct {
	ID        ResourceID
	SyncToken gpu.SyncToken
	Count     int
	Lost      bool
}

// ToReturnedResource builds the return for a single reference to the resource
func (t TransferableResource) ToReturnedResource() ReturnedResource {
	return ReturnedResource{
		ID:        t.ID,
		SyncToken: t.MailboxHolder.SyncToken,
		Count:     1,
	}
}

// ReturnResources builds a return for every resource in the list
func ReturnResources(list []TransferableResource) []ReturnedResource {
	returned := make([]ReturnedResource, 0, len(list))
	for _, t := range list {
		returned = append(returned, t.ToReturnedResource())
	}
	return returned
}

const (
	syncTokenWireSize            = 17
	transferableResourceWireSize = 41 + syncTokenWireSize
	returnedResourceWireSize     = 9 + syncTokenWireSize

	transferableFlagSoftware         byte = 1 << 0
	transferableFlagOverlayCandidate byte = 1 << 1
	transferableFlagReadLockFences   byte = 1 << 2
	transferableFlagRepeated         byte = 1 << 3
)

func putSyncToken(data []byte, token gpu.SyncToken) {
	binary.LittleEndian.PutUint64(data[0:], token.CommandBufferID)
	binary.LittleEndian.PutUint64(data[8:], token.ReleaseCount)
	data[16] = 0
	if token.Verified {
		data[16] = 1
	}
}

func getSyncToken(data []byte) gpu.SyncToken {
	return gpu.SyncToken{
		CommandBufferID: binary.LittleEndian.Uint64(data[0:]),
		ReleaseCount:    binary.LittleEndian.Uint64(data[8:]),
		Verified:        data[16] != 0,
	}
}

// MarshalBinary encodes the resource in its fixed little-endian wire layout
func (t TransferableResource) MarshalBinary() ([]byte, error) {
	data := make([]byte, transferableResourceWireSize)

	binary.LittleEndian.PutUint32(data[0:], uint32(t.ID))
	binary.LittleEndian.PutUint32(data[4:], uint32(t.Format))
	binary.LittleEndian.PutUint32(data[8:], uint32(t.Filter))
	binary.LittleEndian.PutUint32(data[12:], uint32(t.Size.Width))
	binary.LittleEndian.PutUint32(data[16:], uint32(t.Size.Height))
	copy(data[20:36], t.MailboxHolder.Mailbox[:])
	putSyncToken(data[36:], t.MailboxHolder.SyncToken)
	binary.LittleEndian.PutUint32(data[36+syncTokenWireSize:], uint32(t.MailboxHolder.Target))

	var flags byte
	if t.IsSoftware {
		flags |= transferableFlagSoftware
	}
	if t.IsOverlayCandidate {
		flags |= transferableFlagOverlayCandidate
	}
	if t.ReadLockFencesEnabled {
		flags |= transferableFlagReadLockFences
	}
	if t.IsRepeated {
		flags |= transferableFlagRepeated
	}
	data[40+syncTokenWireSize] = flags

	return data, nil
}

func (t *TransferableResource) UnmarshalBinary(data []byte) error {
	if len(data) != transferableResourceWireSize {
		return errors.Newf("transferable resource must be %d bytes, but received %d", transferableResourceWireSize, len(data))
	}

	t.ID = ResourceID(binary.LittleEndian.Uint32(data[0:]))
	t.Format = gpu.Format(int32(binary.LittleEndian.Uint32(data[4:])))
	t.Filter = gputypes.FilterMode(binary.LittleEndian.Uint32(data[8:]))
	t.Size.Width = int(int32(binary.LittleEndian.Uint32(data[12:])))
	t.Size.Height = int(int32(binary.LittleEndian.Uint32(data[16:])))
	copy(t.MailboxHolder.Mailbox[:], data[20:36])
	t.MailboxHolder.SyncToken = getSyncToken(data[36:])
	t.MailboxHolder.Target = gpu.TextureTarget(binary.LittleEndian.Uint32(data[36+syncTokenWireSize:]))

	flags := data[40+syncTokenWireSize]
	t.IsSoftware = flags&transferableFlagSoftware != 0
	t.IsOverlayCandidate = flags&transferableFlagOverlayCandidate != 0
	t.ReadLockFencesEnabled = flags&transferableFlagReadLockFences != 0
	t.IsRepeated = flags&transferableFlagRepeated != 0

	if !t.Format.IsValid() {
		return errors.Newf("transferable resource %d has unknown format %d", t.ID, t.Format)
	}
	return nil
}

// MarshalBinary encodes the return in its fixed little-endian wire layout
func (r ReturnedResource) MarshalBinary() ([]byte, error) {
	if r.Count < 0 || int64(r.Count) > int64(^uint32(0)>>1) {
		return nil, errors.Newf("returned resource %d has unencodable count %d", r.ID, r.Count)
	}

	data := make([]byte, returnedResourceWireSize)
	binary.LittleEndian.PutUint32(data[0:], uint32(r.ID))
	putSyncToken(data[4:], r.SyncToken)
	binary.LittleEndian.PutUint32(data[4+syncTokenWireSize:], uint32(r.Count))
	if r.Lost {
		data[8+syncTokenWireSize] = 1
	}

	return data, nil
}

func (r *ReturnedResource) UnmarshalBinary(data []byte) error {
	if len(data) != returnedResourceWireSize {
		return errors.Newf("returned resource must be %d bytes, but received %d", returnedResourceWireSize, len(data))
	}

	r.ID = ResourceID(binary.LittleEndian.Uint32(data[0:]))
	r.SyncToken = getSyncToken(data[4:])
	r.Count = int(int32(binary.LittleEndian.Uint32(data[4+syncTokenWireSize:])))
	r.Lost = data[8+syncTokenWireSize] != 0

	if r.Count < 0 {
		return errors.Newf("returned resource %d has negative count %d", r.ID, r.Count)
	}
	return nil
}
