package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maidsafe-archive/safe-nfs-go/directory"
	"github.com/maidsafe-archive/safe-nfs-go/file"
	"github.com/maidsafe-archive/safe-nfs-go/memnet"
	"github.com/maidsafe-archive/safe-nfs-go/metadata"
	"github.com/maidsafe-archive/safe-nfs-go/netid"
)

func newClient(t *testing.T) *memnet.Client {
	t.Helper()
	c, err := memnet.NewClient(memnet.NewNetwork())
	require.NoError(t, err)
	return c
}

func newListing(t *testing.T, versioned bool, access netid.AccessLevel) directory.Listing {
	t.Helper()
	m, err := metadata.New("d", netid.VersionedDirTag, versioned, access, nil, metadata.ParentDirKey{})
	require.NoError(t, err)
	return directory.New(m)
}

func TestVersionedCreateGetUpdate(t *testing.T) {
	client := newClient(t)
	l := newListing(t, true, netid.Private)

	require.NoError(t, Create(client, l))

	got, err := Get(client, l.Metadata.Key)
	require.NoError(t, err)
	assert.Equal(t, l.Metadata.Key.ID, got.Metadata.Key.ID)

	f, err := file.New("x.txt", nil)
	require.NoError(t, err)
	l.UpsertFile(f)
	require.NoError(t, Update(client, l))

	versions, err := GetVersions(client, l.Metadata.Key)
	require.NoError(t, err)
	assert.Len(t, versions, 2)

	latest, err := Get(client, l.Metadata.Key)
	require.NoError(t, err)
	assert.Len(t, latest.Files, 1)

	first, err := GetByVersion(client, l.Metadata.Key, versions[0])
	require.NoError(t, err)
	assert.Len(t, first.Files, 0)
}

func TestUnversionedCreateGetUpdate(t *testing.T) {
	client := newClient(t)
	l := newListing(t, false, netid.Public)

	require.NoError(t, Create(client, l))

	got, err := Get(client, l.Metadata.Key)
	require.NoError(t, err)
	assert.Equal(t, l.Metadata.Key.ID, got.Metadata.Key.ID)

	l.Metadata.SetName("renamed")
	require.NoError(t, Update(client, l))

	got, err = Get(client, l.Metadata.Key)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Metadata.Name)
}

func TestGetVersionsRejectsUnversioned(t *testing.T) {
	client := newClient(t)
	l := newListing(t, false, netid.Public)
	require.NoError(t, Create(client, l))

	_, err := GetVersions(client, l.Metadata.Key)
	assert.Error(t, err)
}
