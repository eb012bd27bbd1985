package resources_test

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/conduit/gpu"
	"github.com/vkngwrapper/conduit/gpu/gputest"
	"github.com/vkngwrapper/conduit/resources"
)

type releaseRecord struct {
	calls int
	token gpu.SyncToken
	lost  bool
}

func (r *releaseRecord) callback() *resources.ReleaseCallback {
	return resources.NewReleaseCallback(func(token gpu.SyncToken, lost bool) {
		r.calls++
		r.token = token
		r.lost = lost
	})
}

// produceMailbox creates a texture in a separate context on service and names it with a mailbox
func produceMailbox(t *testing.T, service *gputest.Service) gpu.MailboxHolder {
	producer := service.NewContext(gputest.DefaultCapabilities())
	textureID := producer.GenTextures(1)[0]
	producer.BindTexture(gpu.TextureTarget2D, textureID)
	producer.TexStorage2D(gpu.TextureTarget2D, 1, gpu.FormatRGBA8888, testSize)

	mailbox := producer.GenMailbox()
	producer.ProduceTexture(gpu.TextureTarget2D, mailbox)

	holder := gpu.MailboxHolder{
		Mailbox:   mailbox,
		Target:    gpu.TextureTarget2D,
		SyncToken: producer.InsertSyncToken(),
	}
	require.True(t, holder.SyncToken.HasData())
	return holder
}

func createFromMailbox(t *testing.T, provider *testProvider, holder gpu.MailboxHolder, release *resources.ReleaseCallback) resources.ResourceID {
	id, err := provider.CreateResourceFromMailbox(resources.TextureMailbox{
		Holder: holder,
		Size:   testSize,
		Format: gpu.FormatRGBA8888,
	}, release, false)
	require.NoError(t, err)
	return id
}

func TestExportedMailboxReleasedAsLostOnShutdown(t *testing.T) {
	service := gputest.NewService()
	provider := readyProvider(t, ProviderSetup{Service: service})

	var release releaseRecord
	id := createFromMailbox(t, provider, produceMailbox(t, service), release.callback())

	list, err := provider.PrepareSendToParent([]resources.ResourceID{id})
	require.NoError(t, err)
	require.Len(t, list, 1)

	provider.DidLoseContext()
	require.True(t, provider.IsContextLost())

	require.NoError(t, provider.Destroy())
	require.Equal(t, 1, release.calls)
	require.True(t, release.lost)
	require.Equal(t, 0, provider.ResourceCount())

	require.Error(t, provider.Destroy())
	require.Equal(t, 1, release.calls)
}

func TestDeleteConsumedMailboxInsertsReleaseToken(t *testing.T) {
	service := gputest.NewService()
	provider := readyProvider(t, ProviderSetup{Service: service})

	holder := produceMailbox(t, service)
	var release releaseRecord
	id := createFromMailbox(t, provider, holder, release.callback())

	lock, err := resources.NewScopedReadLockGL(provider.ResourceProvider, id, nil)
	require.NoError(t, err)
	require.Equal(t, []gpu.SyncToken{holder.SyncToken}, provider.GL.Stats.Waits)
	require.Equal(t, 1, provider.GL.Stats.Consumes)
	require.NoError(t, lock.Release())

	require.Equal(t, 0, release.calls)
	require.NoError(t, provider.DeleteResource(id))

	require.Equal(t, 1, release.calls)
	require.False(t, release.lost)
	require.True(t, release.token.HasData())
	require.NotEqual(t, holder.SyncToken, release.token)
	require.Equal(t, 1, provider.GL.Stats.InsertSyncTokens)
}

func TestDeleteUnconsumedMailboxReturnsOriginalToken(t *testing.T) {
	service := gputest.NewService()
	provider := readyProvider(t, ProviderSetup{Service: service})

	holder := produceMailbox(t, service)
	var release releaseRecord
	id := createFromMailbox(t, provider, holder, release.callback())

	require.NoError(t, provider.DeleteResource(id))
	require.Equal(t, 1, release.calls)
	require.False(t, release.lost)
	require.Equal(t, holder.SyncToken, release.token)
	require.Equal(t, 0, provider.GL.Stats.InsertSyncTokens)
}

func TestDeleteMailboxAfterContextLoss(t *testing.T) {
	service := gputest.NewService()
	provider := readyProvider(t, ProviderSetup{Service: service})

	holder := produceMailbox(t, service)
	var release releaseRecord
	id := createFromMailbox(t, provider, holder, release.callback())

	_, err := provider.LockForRead(id, nil)
	require.NoError(t, err)
	require.NoError(t, provider.UnlockForRead(id))

	provider.DidLoseContext()
	require.NoError(t, provider.DeleteResource(id))

	require.Equal(t, 1, release.calls)
	require.True(t, release.lost)
	require.Equal(t, holder.SyncToken, release.token)
	require.Equal(t, 0, provider.GL.Stats.InsertSyncTokens)
}

func TestLostContextSkipsSyncTokenWaits(t *testing.T) {
	service := gputest.NewService()
	provider := readyProvider(t, ProviderSetup{Service: service})
	id := createFromMailbox(t, provider, produceMailbox(t, service), nil)

	provider.DidLoseContext()
	require.NoError(t, provider.WaitSyncTokenIfNeeded(id))
	require.Empty(t, provider.GL.Stats.Waits)

	r, err := provider.LockForRead(id, nil)
	require.NoError(t, err)
	require.Equal(t, resources.SynchronizationStateLocallyUsed, r.SynchronizationState())
	require.Empty(t, provider.GL.Stats.Waits)
	require.NoError(t, provider.UnlockForRead(id))
}

func TestLostContextLosesGpuResources(t *testing.T) {
	service := gputest.NewService()
	provider := readyProvider(t, ProviderSetup{Service: service, SharedBitmaps: true})

	texture := createResource(t, provider)
	writeResource(t, provider, texture, testPixels(testSize, 0))
	bitmap, err := provider.CreateBitmap(testSize, gputypes.AddressModeClampToEdge)
	require.NoError(t, err)
	mailbox := createFromMailbox(t, provider, produceMailbox(t, service), nil)

	for _, id := range []resources.ResourceID{texture, bitmap, mailbox} {
		lost, err := provider.IsLost(id)
		require.NoError(t, err)
		require.False(t, lost)
	}
	require.True(t, provider.CanLockForWrite(texture))

	provider.DidLoseContext()

	for _, id := range []resources.ResourceID{texture, mailbox} {
		lost, err := provider.IsLost(id)
		require.NoError(t, err)
		require.True(t, lost)

		inUse, err := provider.InUseByConsumer(id)
		require.NoError(t, err)
		require.True(t, inUse)
	}
	require.False(t, provider.CanLockForWrite(texture))
	_, err = provider.LockForWrite(texture)
	require.ErrorIs(t, err, resources.ErrLost)

	lost, err := provider.IsLost(bitmap)
	require.NoError(t, err)
	require.False(t, lost)
	require.True(t, provider.CanLockForWrite(bitmap))
}

func TestLostContextReturnsChildResourcesAsLost(t *testing.T) {
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

	parent.DidLoseContext()
	require.NoError(t, parent.DeclareUsedResourcesFromChild(childID, nil))

	returned := returns.take()
	require.Len(t, returned, 1)
	require.Equal(t, id, returned[0].ID)
	require.True(t, returned[0].Lost)
	require.Equal(t, list[0].MailboxHolder.SyncToken, returned[0].SyncToken)

	require.NoError(t, child.ReceiveReturnsFromParent(returned, nil))
	lost, err := child.IsLost(id)
	require.NoError(t, err)
	require.True(t, lost)
}

func TestDestroyReturnsReadLockedChildResourcesAsLost(t *testing.T) {
	service := gputest.NewService()
	child := readyProvider(t, ProviderSetup{Service: service})
	parent := readyProvider(t, ProviderSetup{Service: service})

	ids := []resources.ResourceID{createResource(t, child), createResource(t, child)}
	for _, id := range ids {
		writeResource(t, child, id, testPixels(testSize, 0))
	}
	list, err := child.PrepareSendToParent(ids)
	require.NoError(t, err)

	var returns returnRecorder
	childID := parent.CreateChild(returns.sink)
	require.NoError(t, parent.ReceiveFromChild(childID, list))

	_, err = parent.LockForRead(parentID(t, parent, childID, ids[0]), nil)
	require.NoError(t, err)

	require.NoError(t, parent.Destroy())
	require.Equal(t, 0, parent.ResourceCount())
	require.Equal(t, 0, parent.ChildCount())

	returned := returns.take()
	require.Len(t, returned, 2)
	byID := map[resources.ResourceID]resources.ReturnedResource{}
	for _, r := range returned {
		byID[r.ID] = r
	}
	require.True(t, byID[ids[0]].Lost)
	require.False(t, byID[ids[1]].Lost)
	require.True(t, byID[ids[1]].SyncToken.HasData())
}
