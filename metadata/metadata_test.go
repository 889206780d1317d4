package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maidsafe-archive/safe-nfs-go/netid"
	"github.com/maidsafe-archive/safe-nfs-go/wire"
)

func TestNewDirectoryMetadataStampsTimestamps(t *testing.T) {
	m, err := New("docs", netid.VersionedDirTag, true, netid.Private, []byte("tags"), ParentDirKey{})
	require.NoError(t, err)

	assert.Equal(t, "docs", m.Name)
	assert.Equal(t, m.CreatedTime, m.ModifiedTime)
	assert.True(t, m.IsRoot())
	assert.False(t, m.Key.ID.IsZero())
}

func TestDirectoryMetadataRoundTrip(t *testing.T) {
	parent, err := New("root", netid.UnversionedDirTag, false, netid.Public, nil, ParentDirKey{})
	require.NoError(t, err)
	child, err := New("child", netid.VersionedDirTag, true, netid.Private, []byte("meta"), NewParentDirKey(parent.Key))
	require.NoError(t, err)

	var acc wire.Accumulator
	child.Encode(&acc)
	buf, err := acc.Result()
	require.NoError(t, err)

	c := wire.NewConsumer(buf)
	got := DecodeDirectoryMetadata(c)
	require.NoError(t, c.Err())
	assert.True(t, c.Done())

	assert.Equal(t, child.Key, got.Key)
	assert.Equal(t, child.Name, got.Name)
	assert.Equal(t, child.UserMetadata, got.UserMetadata)
	assert.True(t, got.ParentDirKey.Valid)
	assert.Equal(t, parent.Key, got.ParentDirKey.Key)
}

func TestFileMetadataRoundTrip(t *testing.T) {
	f, err := NewFile("report.pdf", []byte("mime:application/pdf"))
	require.NoError(t, err)
	f.SetSize(4096)

	var acc wire.Accumulator
	f.Encode(&acc)
	buf, err := acc.Result()
	require.NoError(t, err)

	c := wire.NewConsumer(buf)
	got := DecodeFileMetadata(c)
	require.NoError(t, c.Err())
	assert.True(t, c.Done())

	assert.Equal(t, f.ID, got.ID)
	assert.Equal(t, f.Name, got.Name)
	assert.EqualValues(t, 4096, got.Size)
	assert.Equal(t, f.UserMetadata, got.UserMetadata)
}

func TestSettersMutateInPlace(t *testing.T) {
	m, err := New("x", netid.VersionedDirTag, true, netid.Private, nil, ParentDirKey{})
	require.NoError(t, err)
	newTime := netid.Time{Sec: m.ModifiedTime.Sec + 10}
	m.SetModifiedTime(newTime)
	m.SetUserMetadata([]byte("new"))
	m.SetName("renamed")

	assert.Equal(t, newTime, m.ModifiedTime)
	assert.Equal(t, []byte("new"), m.UserMetadata)
	assert.Equal(t, "renamed", m.Name)
}
