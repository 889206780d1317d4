package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maidsafe-archive/safe-nfs-go/file"
	"github.com/maidsafe-archive/safe-nfs-go/memnet"
	"github.com/maidsafe-archive/safe-nfs-go/metadata"
	"github.com/maidsafe-archive/safe-nfs-go/netid"
)

func newListing(t *testing.T, versioned bool, access netid.AccessLevel) Listing {
	t.Helper()
	m, err := metadata.New("root", netid.VersionedDirTag, versioned, access, nil, metadata.ParentDirKey{})
	require.NoError(t, err)
	return New(m)
}

func TestFindUpsertRemoveFile(t *testing.T) {
	l := newListing(t, true, netid.Private)
	_, ok := l.FindFile("a.txt")
	assert.False(t, ok)

	f, err := file.New("a.txt", nil)
	require.NoError(t, err)
	l.UpsertFile(f)
	got, ok := l.FindFile("a.txt")
	require.True(t, ok)
	assert.Equal(t, f.Metadata.ID, got.Metadata.ID)

	f.Metadata.SetUserMetadata([]byte("v2"))
	l.UpsertFile(f)
	assert.Len(t, l.Files, 1)

	require.NoError(t, l.RemoveFile("a.txt"))
	assert.Len(t, l.Files, 0)

	err = l.RemoveFile("a.txt")
	assert.ErrorContains(t, err, "")
}

func TestFindUpsertRemoveSubDirectory(t *testing.T) {
	l := newListing(t, true, netid.Private)
	child, err := metadata.New("sub", netid.VersionedDirTag, true, netid.Private, nil, metadata.NewParentDirKey(l.Metadata.Key))
	require.NoError(t, err)

	l.UpsertSubDirectory(child)
	got, ok := l.FindSubDirectory("sub")
	require.True(t, ok)
	assert.Equal(t, child.Key.ID, got.Key.ID)

	require.NoError(t, l.RemoveSubDirectory("sub"))
	_, ok = l.FindSubDirectory("sub")
	assert.False(t, ok)
}

func TestUpsertSetsModifiedTime(t *testing.T) {
	l := newListing(t, true, netid.Private)
	f, err := file.New("a.txt", nil)
	require.NoError(t, err)
	f.Metadata.SetModifiedTime(netid.Time{Sec: f.Metadata.ModifiedTime.Sec + 1000})
	l.UpsertFile(f)
	assert.Equal(t, f.Metadata.ModifiedTime, l.Metadata.ModifiedTime)
}

func TestGenerateNonceDeterministicIDPrefix(t *testing.T) {
	id, err := netid.NewNetworkName()
	require.NoError(t, err)
	n1 := GenerateNonce(id)
	n2 := GenerateNonce(id)
	assert.Equal(t, n1, n2)
	assert.Equal(t, id[:NonceSize], n1[:])
}

func TestEncryptDecryptRoundTripPrivate(t *testing.T) {
	net := memnet.NewNetwork()
	client, err := memnet.NewClient(net)
	require.NoError(t, err)

	l := newListing(t, true, netid.Private)
	f, err := file.New("a.txt", []byte("meta"))
	require.NoError(t, err)
	l.UpsertFile(f)

	encoded, err := Encrypt(client, l)
	require.NoError(t, err)

	got, err := Decrypt(client, l.Metadata.Key.ID, netid.Private, encoded)
	require.NoError(t, err)
	assert.Equal(t, l.Metadata.Key.ID, got.Metadata.Key.ID)
	require.Len(t, got.Files, 1)
	assert.Equal(t, "a.txt", got.Files[0].Metadata.Name)
}

func TestEncryptDecryptRoundTripPublic(t *testing.T) {
	net := memnet.NewNetwork()
	client, err := memnet.NewClient(net)
	require.NoError(t, err)

	l := newListing(t, true, netid.Public)

	encoded, err := Encrypt(client, l)
	require.NoError(t, err)

	got, err := Decrypt(client, l.Metadata.Key.ID, netid.Public, encoded)
	require.NoError(t, err)
	assert.Equal(t, l.Metadata.Key.ID, got.Metadata.Key.ID)
}
