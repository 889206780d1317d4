package netclient_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maidsafe-archive/safe-nfs-go/memnet"
	"github.com/maidsafe-archive/safe-nfs-go/netclient"
	"github.com/maidsafe-archive/safe-nfs-go/netid"
)

func TestSharedDelegatesToWrappedClient(t *testing.T) {
	client, err := memnet.NewClient(memnet.NewNetwork())
	require.NoError(t, err)
	shared := netclient.NewShared(client)

	id, err := netid.NewNetworkName()
	require.NoError(t, err)
	shared.SetUserRootDirectoryID(id)
	assert.Equal(t, id, shared.UserRootDirectoryID())
	assert.Equal(t, client.GetPublicEncryptionKey(), shared.GetPublicEncryptionKey())
}
