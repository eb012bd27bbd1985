package resources_test

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/conduit/gpu"
	"github.com/vkngwrapper/conduit/gpu/gputest"
	"github.com/vkngwrapper/conduit/resources"
)

type returnRecorder struct {
	batches [][]resources.ReturnedResource
}

func (r *returnRecorder) sink(returned []resources.ReturnedResource) {
	r.batches = append(r.batches, returned)
}

func (r *returnRecorder) all() []resources.ReturnedResource {
	var all []resources.ReturnedResource
	for _, batch := range r.batches {
		all = append(all, batch...)
	}
	return all
}

func (r *returnRecorder) take() []resources.ReturnedResource {
	all := r.all()
	r.batches = nil
	return all
}

func writeResource(t *testing.T, provider *testProvider, id resources.ResourceID, pixels []byte) {
	err := provider.SetPixels(id, pixels, rect(0, 0, testSize.Width, testSize.Height), rect(0, 0, testSize.Width, testSize.Height), point(0, 0))
	require.NoError(t, err)
}

func parentID(t *testing.T, parent *testProvider, childID resources.ChildID, id resources.ResourceID) resources.ResourceID {
	mapping, err := parent.GetChildToParentMap(childID)
	require.NoError(t, err)

	local, ok := mapping[id]
	require.True(t, ok)
	return local
}

func TestTransferRoundTrip(t *testing.T) {
	service := gputest.NewService()
	child := readyProvider(t, ProviderSetup{Service: service})
	parent := readyProvider(t, ProviderSetup{Service: service})

	id := createResource(t, child)
	pixels := testPixels(testSize, 11)
	writeResource(t, child, id, pixels)

	list, err := child.PrepareSendToParent([]resources.ResourceID{id})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, id, list[0].ID)
	require.Equal(t, testSize, list[0].Size)
	require.Equal(t, gpu.FormatRGBA8888, list[0].Format)
	require.False(t, list[0].IsSoftware)
	require.True(t, list[0].MailboxHolder.SyncToken.HasData())
	require.True(t, list[0].MailboxHolder.SyncToken.Verified)
	require.Equal(t, 1, child.GL.Stats.InsertSyncTokens)

	inUse, err := child.InUseByConsumer(id)
	require.NoError(t, err)
	require.True(t, inUse)

	_, err = child.LockForWrite(id)
	require.ErrorIs(t, err, resources.ErrExported)
	_, err = child.LockForRead(id, nil)
	require.ErrorIs(t, err, resources.ErrExported)

	var returns returnRecorder
	childID := parent.CreateChild(returns.sink)
	require.NoError(t, parent.ReceiveFromChild(childID, list))

	local := parentID(t, parent, childID, id)
	size, err := parent.GetResourceSize(local)
	require.NoError(t, err)
	require.Equal(t, testSize, size)
	format, err := parent.GetResourceFormat(local)
	require.NoError(t, err)
	require.Equal(t, gpu.FormatRGBA8888, format)

	r, err := parent.LockForRead(local, nil)
	require.NoError(t, err)
	require.Equal(t, resources.OriginDelegated, r.Origin())
	require.Equal(t, childID, r.ChildID())
	require.Equal(t, []gpu.SyncToken{list[0].MailboxHolder.SyncToken}, parent.GL.Stats.Waits)

	texture, ok := parent.GL.Texture(r.TextureID())
	require.True(t, ok)
	require.Equal(t, pixels, texture.Pixels)
	require.NoError(t, parent.UnlockForRead(local))

	require.NoError(t, parent.DeclareUsedResourcesFromChild(childID, nil))
	require.Equal(t, 0, parent.ResourceCount())

	returned := returns.take()
	require.Len(t, returned, 1)
	require.Equal(t, id, returned[0].ID)
	require.Equal(t, 1, returned[0].Count)
	require.False(t, returned[0].Lost)
	require.True(t, returned[0].SyncToken.HasData())
	require.Equal(t, 1, parent.GL.Stats.InsertSyncTokens)

	require.NoError(t, child.ReceiveReturnsFromParent(returned, nil))

	inUse, err = child.InUseByConsumer(id)
	require.NoError(t, err)
	require.False(t, inUse)

	r, err = child.LockForWrite(id)
	require.NoError(t, err)
	require.Equal(t, returned[0].SyncToken, child.GL.Stats.Waits[len(child.GL.Stats.Waits)-1])
	require.Equal(t, resources.SynchronizationStateSynchronized, r.SynchronizationState())
	require.NoError(t, child.UnlockForWrite(id))

	require.NoError(t, child.DeleteResource(id))
	require.Equal(t, 0, child.ResourceCount())
}

func TestTransferReconstructsSizeAndFormat(t *testing.T) {
	testCases := []struct {
		name   string
		size   gpu.Size
		format gpu.Format
		wrap   gputypes.AddressMode
	}{
		{name: "RGBA", size: gpu.Size{Width: 1, Height: 1}, format: gpu.FormatRGBA8888, wrap: gputypes.AddressModeClampToEdge},
		{name: "BGRA", size: gpu.Size{Width: 17, Height: 3}, format: gpu.FormatBGRA8888, wrap: gputypes.AddressModeRepeat},
		{name: "Luminance", size: gpu.Size{Width: 5, Height: 9}, format: gpu.FormatLuminance8, wrap: gputypes.AddressModeClampToEdge},
		{name: "RGB565", size: gpu.Size{Width: 64, Height: 2}, format: gpu.FormatRGB565, wrap: gputypes.AddressModeRepeat},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			service := gputest.NewService()
			child := readyProvider(t, ProviderSetup{Service: service})
			parent := readyProvider(t, ProviderSetup{Service: service})

			id, err := child.CreateResource(testCase.size, testCase.wrap, gpu.UsageHintAsNeeded, testCase.format)
			require.NoError(t, err)
			require.NoError(t, child.LazyAllocate(id))

			list, err := child.PrepareSendToParent([]resources.ResourceID{id})
			require.NoError(t, err)

			// The list crosses the process boundary in its wire form
			data, err := list[0].MarshalBinary()
			require.NoError(t, err)
			var received resources.TransferableResource
			require.NoError(t, received.UnmarshalBinary(data))
			require.Equal(t, list[0], received)

			childID := parent.CreateChild(nil)
			require.NoError(t, parent.ReceiveFromChild(childID, []resources.TransferableResource{received}))

			local := parentID(t, parent, childID, id)
			size, err := parent.GetResourceSize(local)
			require.NoError(t, err)
			require.Equal(t, testCase.size, size)

			format, err := parent.GetResourceFormat(local)
			require.NoError(t, err)
			require.Equal(t, testCase.format, format)

			r, err := parent.LockForRead(local, nil)
			require.NoError(t, err)
			require.Equal(t, testCase.wrap, r.WrapMode())
			require.NoError(t, parent.UnlockForRead(local))
		})
	}
}

func TestReceiveFromChildTwiceCountsImports(t *testing.T) {
	service := gputest.NewService()
	child := readyProvider(t, ProviderSetup{Service: service})
	parent := readyProvider(t, ProviderSetup{Service: service})

	id := createResource(t, child)
	require.NoError(t, child.LazyAllocate(id))

	first, err := child.PrepareSendToParent([]resources.ResourceID{id})
	require.NoError(t, err)
	second, err := child.PrepareSendToParent([]resources.ResourceID{id})
	require.NoError(t, err)
	require.Equal(t, first, second)

	var returns returnRecorder
	childID := parent.CreateChild(returns.sink)
	require.NoError(t, parent.ReceiveFromChild(childID, first))
	require.NoError(t, parent.ReceiveFromChild(childID, second))

	require.Equal(t, 1, parent.ResourceCount())
	mapping, err := parent.GetChildToParentMap(childID)
	require.NoError(t, err)
	require.Len(t, mapping, 1)

	r, err := parent.LockForRead(mapping[id], nil)
	require.NoError(t, err)
	require.Equal(t, 2, r.ImportedCount())
	require.NoError(t, parent.UnlockForRead(mapping[id]))

	require.NoError(t, parent.DeclareUsedResourcesFromChild(childID, nil))
	returned := returns.take()
	require.Len(t, returned, 1)
	require.Equal(t, 2, returned[0].Count)

	require.NoError(t, child.ReceiveReturnsFromParent(returned, nil))
	inUse, err := child.InUseByConsumer(id)
	require.NoError(t, err)
	require.False(t, inUse)
}

func TestExportCountIsConserved(t *testing.T) {
	provider := readyProvider(t, ProviderSetup{})
	id := createResource(t, provider)
	require.NoError(t, provider.LazyAllocate(id))

	var list []resources.TransferableResource
	for i := 0; i < 3; i++ {
		sent, err := provider.PrepareSendToParent([]resources.ResourceID{id})
		require.NoError(t, err)
		list = append(list, sent...)
	}
	require.Equal(t, 1, provider.GL.Stats.InsertSyncTokens)

	require.NoError(t, provider.DeleteResource(id))
	require.Equal(t, 1, provider.ResourceCount())

	require.NoError(t, provider.ReceiveReturnsFromParent([]resources.ReturnedResource{
		{ID: id, SyncToken: list[0].MailboxHolder.SyncToken, Count: 1},
	}, nil))
	require.Equal(t, 1, provider.ResourceCount())

	require.NoError(t, provider.ReceiveReturnsFromParent([]resources.ReturnedResource{
		{ID: id, SyncToken: list[1].MailboxHolder.SyncToken, Count: 2},
	}, nil))
	require.Equal(t, 0, provider.ResourceCount())

	// Returns for resources that no longer exist are ignored
	require.NoError(t, provider.ReceiveReturnsFromParent([]resources.ReturnedResource{
		{ID: id, Count: 1},
	}, nil))
}

func TestReturningMoreThanExportedPanics(t *testing.T) {
	provider := readyProvider(t, ProviderSetup{})
	id := createResource(t, provider)
	require.NoError(t, provider.LazyAllocate(id))

	_, err := provider.PrepareSendToParent([]resources.ResourceID{id})
	require.NoError(t, err)

	require.Panics(t, func() {
		_ = provider.ReceiveReturnsFromParent([]resources.ReturnedResource{{ID: id, Count: 2}}, nil)
	})

	require.Equal(t, 1, provider.ResourceCount())
	require.NoError(t, provider.ReceiveReturnsFromParent([]resources.ReturnedResource{{ID: id, Count: 1}}, nil))
	require.True(t, provider.CanLockForWrite(id))
}

func TestPrepareSendToParentBatchesSyncTokens(t *testing.T) {
	provider := readyProvider(t, ProviderSetup{})

	var ids []resources.ResourceID
	for i := 0; i < 3; i++ {
		id := createResource(t, provider)
		writeResource(t, provider, id, testPixels(testSize, byte(i)))
		ids = append(ids, id)
	}

	list, err := provider.PrepareSendToParent(ids)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, 1, provider.GL.Stats.InsertSyncTokens)
	require.Equal(t, 0, provider.GL.Stats.VerifySyncTokens)
	require.Equal(t, 3, provider.GL.Stats.Produces)

	for _, transferable := range list {
		require.Equal(t, list[0].MailboxHolder.SyncToken, transferable.MailboxHolder.SyncToken)
	}
	require.NotEqual(t, list[0].MailboxHolder.Mailbox, list[1].MailboxHolder.Mailbox)
}

func TestPrepareSendToParentVerifiesForwardedTokens(t *testing.T) {
	provider := readyProvider(t, ProviderSetup{})

	unverified := gpu.SyncToken{CommandBufferID: 42, ReleaseCount: 7}
	id, err := provider.CreateResourceFromMailbox(resources.TextureMailbox{
		Holder: gpu.MailboxHolder{
			Mailbox:   gpu.NewMailbox(),
			SyncToken: unverified,
		},
		Size:   testSize,
		Format: gpu.FormatRGBA8888,
	}, nil, false)
	require.NoError(t, err)

	list, err := provider.PrepareSendToParent([]resources.ResourceID{id})
	require.NoError(t, err)
	require.Equal(t, 0, provider.GL.Stats.InsertSyncTokens)
	require.Equal(t, 1, provider.GL.Stats.VerifySyncTokens)

	token := list[0].MailboxHolder.SyncToken
	require.Equal(t, unverified.CommandBufferID, token.CommandBufferID)
	require.Equal(t, unverified.ReleaseCount, token.ReleaseCount)
	require.True(t, token.Verified)
	require.Equal(t, gpu.TextureTarget2D, list[0].MailboxHolder.Target)
}

func TestPrepareSendToParentIsAllOrNothing(t *testing.T) {
	provider := readyProvider(t, ProviderSetup{})
	allocated := createResource(t, provider)
	require.NoError(t, provider.LazyAllocate(allocated))
	unallocated := createResource(t, provider)

	_, err := provider.PrepareSendToParent([]resources.ResourceID{allocated, unallocated})
	require.ErrorIs(t, err, resources.ErrNotAllocated)

	inUse, err := provider.InUseByConsumer(allocated)
	require.NoError(t, err)
	require.False(t, inUse)
	require.Equal(t, 0, provider.GL.Stats.Produces)

	_, err = provider.LockForRead(allocated, nil)
	require.NoError(t, err)
	_, err = provider.PrepareSendToParent([]resources.ResourceID{allocated})
	require.ErrorIs(t, err, resources.ErrLockedForRead)
}

func TestHeapBitmapsCannotBeExported(t *testing.T) {
	provider := readyProvider(t, ProviderSetup{Software: true})
	id := createResource(t, provider)
	require.NoError(t, provider.LazyAllocate(id))

	_, err := provider.PrepareSendToParent([]resources.ResourceID{id})
	require.ErrorIs(t, err, resources.ErrNotExportable)
}

func TestSoftwareTransfer(t *testing.T) {
	child := readyProvider(t, ProviderSetup{Software: true, SharedBitmaps: true})
	parent := readyProvider(t, ProviderSetup{Software: true, SharedBitmaps: true, Memory: child.Memory})

	id := createResource(t, child)
	pixels := testPixels(testSize, 5)
	writeResource(t, child, id, pixels)

	list, err := child.PrepareSendToParent([]resources.ResourceID{id})
	require.NoError(t, err)
	require.True(t, list[0].IsSoftware)
	require.False(t, list[0].MailboxHolder.SyncToken.HasData())

	var returns returnRecorder
	childID := parent.CreateChild(returns.sink)
	require.NoError(t, parent.ReceiveFromChild(childID, list))
	require.Equal(t, 1, child.Memory.SegmentCount())

	local := parentID(t, parent, childID, id)
	lock, err := resources.NewScopedReadLockSoftware(parent.ResourceProvider, local)
	require.NoError(t, err)
	require.Equal(t, pixels, lock.Pixels()[:len(pixels)])

	require.NoError(t, parent.DeclareUsedResourcesFromChild(childID, nil))
	require.Empty(t, returns.batches)
	require.NoError(t, lock.Release())

	returned := returns.take()
	require.Len(t, returned, 1)
	require.False(t, returned[0].Lost)
	require.False(t, returned[0].SyncToken.HasData())

	require.NoError(t, child.ReceiveReturnsFromParent(returned, nil))
	require.NoError(t, child.DeleteResource(id))
	require.Equal(t, 0, child.Memory.SegmentCount())
}

func TestReceiveFromChildRejectsUnsupportedResources(t *testing.T) {
	service := gputest.NewService()
	child := readyProvider(t, ProviderSetup{Service: service})
	parent := readyProvider(t, ProviderSetup{Software: true})

	id := createResource(t, child)
	require.NoError(t, child.LazyAllocate(id))
	list, err := child.PrepareSendToParent([]resources.ResourceID{id})
	require.NoError(t, err)

	var returns returnRecorder
	childID := parent.CreateChild(returns.sink)
	require.NoError(t, parent.ReceiveFromChild(childID, list))
	require.Equal(t, 0, parent.ResourceCount())

	returned := returns.take()
	require.Len(t, returned, 1)
	require.Equal(t, id, returned[0].ID)
	require.Equal(t, 1, returned[0].Count)
	require.True(t, returned[0].Lost)

	require.NoError(t, child.ReceiveReturnsFromParent(returned, nil))
	lost, err := child.IsLost(id)
	require.NoError(t, err)
	require.True(t, lost)

	_, err = child.LockForWrite(id)
	require.ErrorIs(t, err, resources.ErrLost)
}

func TestReceiveFromChildMarksUnknownBitmapsLost(t *testing.T) {
	parent := readyProvider(t, ProviderSetup{Software: true, SharedBitmaps: true})
	childID := parent.CreateChild(nil)

	require.NoError(t, parent.ReceiveFromChild(childID, []resources.TransferableResource{{
		ID:            9,
		Format:        gpu.FormatRGBA8888,
		Size:          testSize,
		MailboxHolder: gpu.MailboxHolder{Mailbox: gpu.NewMailbox()},
		IsSoftware:    true,
	}}))

	local := parentID(t, parent, childID, 9)
	lost, err := parent.IsLost(local)
	require.NoError(t, err)
	require.True(t, lost)
}

func TestDeclareUsedResourcesFromChild(t *testing.T) {
	service := gputest.NewService()
	child := readyProvider(t, ProviderSetup{Service: service})
	parent := readyProvider(t, ProviderSetup{Service: service})

	var ids []resources.ResourceID
	for i := 0; i < 3; i++ {
		id := createResource(t, child)
		require.NoError(t, child.LazyAllocate(id))
		ids = append(ids, id)
	}
	list, err := child.PrepareSendToParent(ids)
	require.NoError(t, err)

	var returns returnRecorder
	childID := parent.CreateChild(returns.sink)
	require.NoError(t, parent.ReceiveFromChild(childID, list))
	require.Equal(t, 3, parent.ResourceCount())

	require.ErrorIs(t, parent.DeclareUsedResourcesFromChild(childID, []resources.ResourceID{ids[0], 1000}), resources.ErrUnknownChildResource)
	require.Empty(t, returns.batches)

	require.NoError(t, parent.DeclareUsedResourcesFromChild(childID, []resources.ResourceID{ids[0], ids[2]}))
	returned := returns.take()
	require.Len(t, returned, 1)
	require.Equal(t, ids[1], returned[0].ID)
	require.Equal(t, 2, parent.ResourceCount())

	require.NoError(t, parent.DeclareUsedResourcesFromChild(childID, []resources.ResourceID{ids[0], ids[2]}))
	require.Empty(t, returns.batches)

	require.NoError(t, parent.DeclareUsedResourcesFromChild(childID, nil))
	returned = returns.take()
	require.Len(t, returned, 2)
	require.Equal(t, ids[0], returned[0].ID)
	require.Equal(t, ids[2], returned[1].ID)
	require.Equal(t, 0, parent.ResourceCount())
}

func TestDeclareUsedRejectsResourcesPendingReturn(t *testing.T) {
	service := gputest.NewService()
	child := readyProvider(t, ProviderSetup{Service: service})
	parent := readyProvider(t, ProviderSetup{Service: service})

	id := createResource(t, child)
	writeResource(t, child, id, testPixels(testSize, 0))
	list, err := child.PrepareSendToParent([]resources.ResourceID{id})
	require.NoError(t, err)

	var returns returnRecorder
	childID := parent.CreateChild(returns.sink)
	require.NoError(t, parent.ReceiveFromChild(childID, list))

	local := parentID(t, parent, childID, id)
	_, err = parent.LockForRead(local, nil)
	require.NoError(t, err)

	require.NoError(t, parent.DeclareUsedResourcesFromChild(childID, nil))
	require.Empty(t, returns.batches)

	err = parent.DeclareUsedResourcesFromChild(childID, []resources.ResourceID{id})
	require.ErrorIs(t, err, resources.ErrMarkedForDeletion)

	require.NoError(t, parent.UnlockForRead(local))
	returned := returns.take()
	require.Len(t, returned, 1)
	require.Equal(t, id, returned[0].ID)
	require.Equal(t, 0, parent.ResourceCount())
}

func TestDeclareUsedAfterResendingResource(t *testing.T) {
	service := gputest.NewService()
	child := readyProvider(t, ProviderSetup{Service: service})
	parent := readyProvider(t, ProviderSetup{Service: service})

	id := createResource(t, child)
	writeResource(t, child, id, testPixels(testSize, 0))

	var returns returnRecorder
	childID := parent.CreateChild(returns.sink)
	for i := 0; i < 2; i++ {
		list, err := child.PrepareSendToParent([]resources.ResourceID{id})
		require.NoError(t, err)
		require.NoError(t, parent.ReceiveFromChild(childID, list))
	}

	local := parentID(t, parent, childID, id)
	_, err := parent.LockForRead(local, nil)
	require.NoError(t, err)
	require.NoError(t, parent.DeclareUsedResourcesFromChild(childID, nil))

	list, err := child.PrepareSendToParent([]resources.ResourceID{id})
	require.NoError(t, err)
	require.NoError(t, parent.ReceiveFromChild(childID, list))
	require.NoError(t, parent.DeclareUsedResourcesFromChild(childID, []resources.ResourceID{id}))

	require.NoError(t, parent.UnlockForRead(local))
	require.Empty(t, returns.batches)
	require.Equal(t, 1, parent.ResourceCount())
}

func TestDestroyChildDefersInUseResources(t *testing.T) {
	service := gputest.NewService()
	child := readyProvider(t, ProviderSetup{Service: service})
	parent := readyProvider(t, ProviderSetup{Service: service})

	first := createResource(t, child)
	second := createResource(t, child)
	require.NoError(t, child.LazyAllocate(first))
	require.NoError(t, child.LazyAllocate(second))
	list, err := child.PrepareSendToParent([]resources.ResourceID{first, second})
	require.NoError(t, err)

	var returns returnRecorder
	childID := parent.CreateChild(returns.sink)
	require.NoError(t, parent.ReceiveFromChild(childID, list))

	locked := parentID(t, parent, childID, first)
	_, err = parent.LockForRead(locked, nil)
	require.NoError(t, err)

	require.NoError(t, parent.DestroyChild(childID))
	returned := returns.take()
	require.Len(t, returned, 1)
	require.Equal(t, second, returned[0].ID)
	require.Equal(t, 1, parent.ChildCount())

	require.ErrorIs(t, parent.DestroyChild(childID), resources.ErrChildNotFound)
	require.ErrorIs(t, parent.ReceiveFromChild(childID, list), resources.ErrChildNotFound)

	require.NoError(t, parent.UnlockForRead(locked))
	returned = returns.take()
	require.Len(t, returned, 1)
	require.Equal(t, first, returned[0].ID)
	require.False(t, returned[0].Lost)
	require.True(t, returned[0].SyncToken.HasData())
	require.Equal(t, 0, parent.ChildCount())
	require.Equal(t, 0, parent.ResourceCount())
}

func TestReturnToChildRestoresFilter(t *testing.T) {
	service := gputest.NewService()
	child := readyProvider(t, ProviderSetup{Service: service})
	parent := readyProvider(t, ProviderSetup{Service: service})

	id := createResource(t, child)
	require.NoError(t, child.LazyAllocate(id))
	list, err := child.PrepareSendToParent([]resources.ResourceID{id})
	require.NoError(t, err)

	childID := parent.CreateChild(nil)
	require.NoError(t, parent.ReceiveFromChild(childID, list))
	local := parentID(t, parent, childID, id)

	sampler, err := resources.NewScopedSamplerGL(parent.ResourceProvider, local, nil, gpu.TextureTarget2D, gputypes.FilterModeNearest)
	require.NoError(t, err)

	shared, ok := service.MailboxTexture(list[0].MailboxHolder.Mailbox)
	require.True(t, ok)
	require.Equal(t, gputypes.FilterModeNearest, shared.Filter)
	require.NoError(t, sampler.Release())

	require.NoError(t, parent.DeclareUsedResourcesFromChild(childID, nil))
	require.Equal(t, gputypes.FilterModeLinear, shared.Filter)
}

func TestReadLockFenceCapturedOnReturn(t *testing.T) {
	provider := readyProvider(t, ProviderSetup{})
	id := createResource(t, provider)
	require.NoError(t, provider.LazyAllocate(id))
	require.NoError(t, provider.EnableReadLockFences(id))

	list, err := provider.PrepareSendToParent([]resources.ResourceID{id})
	require.NoError(t, err)
	require.True(t, list[0].ReadLockFencesEnabled)

	fence := resources.NewSharedFence(resources.NewQueryFence(provider.GL))
	fence.Set()
	defer fence.Release()

	require.NoError(t, provider.ReceiveReturnsFromParent(resources.ReturnResources(list), fence))
	require.False(t, provider.CanLockForWrite(id))

	provider.GL.CompleteQueries()
	require.True(t, provider.CanLockForWrite(id))
}

func TestGpuMemoryBufferTransfer(t *testing.T) {
	service := gputest.NewService()
	child := readyProvider(t, ProviderSetup{
		Service:          service,
		GpuMemoryBuffers: true,
		Options:          resources.CreateOptions{Flags: resources.CreatePreferGpuMemoryBuffers},
	})
	parent := readyProvider(t, ProviderSetup{Service: service})

	id := createResource(t, child)
	pixels := testPixels(testSize, 21)

	lock, err := resources.NewScopedWriteLockGpuMemoryBuffer(child.ResourceProvider, id)
	require.NoError(t, err)
	for row := 0; row < testSize.Height; row++ {
		copy(lock.Pixels()[row*lock.Stride():], pixels[row*16:(row+1)*16])
	}
	require.NoError(t, lock.Release())

	list, err := child.PrepareSendToParent([]resources.ResourceID{id})
	require.NoError(t, err)
	require.Equal(t, 1, child.GL.Stats.ImageBinds)
	require.True(t, list[0].ReadLockFencesEnabled)

	childID := parent.CreateChild(nil)
	require.NoError(t, parent.ReceiveFromChild(childID, list))

	read, err := resources.NewScopedReadLockGL(parent.ResourceProvider, parentID(t, parent, childID, id), nil)
	require.NoError(t, err)
	texture, ok := parent.GL.Texture(read.TextureID())
	require.True(t, ok)
	require.Equal(t, pixels, texture.Pixels)
	require.NoError(t, read.Release())
}
