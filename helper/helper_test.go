package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maidsafe-archive/safe-nfs-go/memnet"
	"github.com/maidsafe-archive/safe-nfs-go/netid"
)

func newHelpers(t *testing.T) (*DirectoryHelper, *FileHelper, *memnet.Client) {
	t.Helper()
	client, err := memnet.NewClient(memnet.NewNetwork())
	require.NoError(t, err)
	dirs := New(client)
	return dirs, NewFileHelper(client, dirs), client
}

func TestUserRootDirectoryBootstrapsOnce(t *testing.T) {
	dirs, _, client := newHelpers(t)
	assert.True(t, client.UserRootDirectoryID().IsZero())

	root, err := dirs.UserRootDirectoryListing()
	require.NoError(t, err)
	assert.False(t, client.UserRootDirectoryID().IsZero())

	again, err := dirs.UserRootDirectoryListing()
	require.NoError(t, err)
	assert.Equal(t, root.Metadata.Key.ID, again.Metadata.Key.ID)
}

func TestCreateSubDirectoryPropagatesToParent(t *testing.T) {
	dirs, _, _ := newHelpers(t)
	root, err := dirs.UserRootDirectoryListing()
	require.NoError(t, err)

	child, grandParent, err := dirs.Create("docs", netid.VersionedDirTag, nil, true, netid.Private, &root)
	require.NoError(t, err)
	assert.Nil(t, grandParent)

	reloaded, err := dirs.Get(root.Metadata.Key)
	require.NoError(t, err)
	_, ok := reloaded.FindSubDirectory("docs")
	assert.True(t, ok)
	assert.Equal(t, child.Metadata.Key.ID, func() netid.NetworkName {
		m, _ := reloaded.FindSubDirectory("docs")
		return m.Key.ID
	}())
}

func TestCreateDuplicateSubDirectoryNameFails(t *testing.T) {
	dirs, _, _ := newHelpers(t)
	root, err := dirs.UserRootDirectoryListing()
	require.NoError(t, err)

	_, _, err = dirs.Create("docs", netid.VersionedDirTag, nil, true, netid.Private, &root)
	require.NoError(t, err)

	root, err = dirs.Get(root.Metadata.Key)
	require.NoError(t, err)
	_, _, err = dirs.Create("docs", netid.VersionedDirTag, nil, true, netid.Private, &root)
	assert.Error(t, err)
}

func TestDeleteSubDirectory(t *testing.T) {
	dirs, _, _ := newHelpers(t)
	root, err := dirs.UserRootDirectoryListing()
	require.NoError(t, err)
	_, _, err = dirs.Create("docs", netid.VersionedDirTag, nil, true, netid.Private, &root)
	require.NoError(t, err)

	root, err = dirs.Get(root.Metadata.Key)
	require.NoError(t, err)
	_, err = dirs.Delete(&root, "docs")
	require.NoError(t, err)

	reloaded, err := dirs.Get(root.Metadata.Key)
	require.NoError(t, err)
	_, ok := reloaded.FindSubDirectory("docs")
	assert.False(t, ok)
}

func TestFileCreateWriteCloseRead(t *testing.T) {
	dirs, files, client := newHelpers(t)
	root, err := dirs.UserRootDirectoryListing()
	require.NoError(t, err)

	w, err := files.Create("a.txt", []byte("mime"), &root)
	require.NoError(t, err)
	require.NoError(t, w.Write([]byte("hello "), 0))
	require.NoError(t, w.Write([]byte("world"), 6))

	updatedParent, grandParent, err := w.Close()
	require.NoError(t, err)
	assert.Nil(t, grandParent)

	got, ok := updatedParent.FindFile("a.txt")
	require.True(t, ok)
	assert.EqualValues(t, 11, got.Metadata.Size)

	reader := NewReader(client, got)
	assert.EqualValues(t, 11, reader.Size())
	data, err := reader.Read(0, 11)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))

	_, err = reader.Read(0, 100)
	assert.Error(t, err)
}

func TestFileCreateDuplicateNameFails(t *testing.T) {
	dirs, files, _ := newHelpers(t)
	root, err := dirs.UserRootDirectoryListing()
	require.NoError(t, err)

	w, err := files.Create("a.txt", nil, &root)
	require.NoError(t, err)
	_, _, err = w.Close()
	require.NoError(t, err)

	root, err = dirs.Get(root.Metadata.Key)
	require.NoError(t, err)
	_, err = files.Create("a.txt", nil, &root)
	assert.Error(t, err)
}

func TestUpdateContentModifyModeCarriesContentForward(t *testing.T) {
	dirs, files, client := newHelpers(t)
	root, err := dirs.UserRootDirectoryListing()
	require.NoError(t, err)

	w, err := files.Create("a.txt", nil, &root)
	require.NoError(t, err)
	require.NoError(t, w.Write([]byte("0123456789"), 0))
	root, _, err = w.Close()
	require.NoError(t, err)

	f, ok := root.FindFile("a.txt")
	require.True(t, ok)

	w2, err := files.UpdateContent(f, Modify, &root)
	require.NoError(t, err)
	require.NoError(t, w2.Write([]byte("X"), 5))
	root, _, err = w2.Close()
	require.NoError(t, err)

	got, ok := root.FindFile("a.txt")
	require.True(t, ok)
	reader := NewReader(client, got)
	data, err := reader.Read(0, 10)
	require.NoError(t, err)
	assert.Equal(t, "01234X6789", string(data))
}

func TestDeleteFile(t *testing.T) {
	dirs, files, _ := newHelpers(t)
	root, err := dirs.UserRootDirectoryListing()
	require.NoError(t, err)
	w, err := files.Create("a.txt", nil, &root)
	require.NoError(t, err)
	root, _, err = w.Close()
	require.NoError(t, err)

	_, err = files.Delete("a.txt", &root)
	require.NoError(t, err)

	reloaded, err := dirs.Get(root.Metadata.Key)
	require.NoError(t, err)
	_, ok := reloaded.FindFile("a.txt")
	assert.False(t, ok)
}

func TestFileVersionsOnUnversionedParentHasAtMostOne(t *testing.T) {
	dirs, files, _ := newHelpers(t)
	root, err := dirs.UserRootDirectoryListing()
	require.NoError(t, err)
	w, err := files.Create("a.txt", nil, &root)
	require.NoError(t, err)
	root, _, err = w.Close()
	require.NoError(t, err)

	f, ok := root.FindFile("a.txt")
	require.True(t, ok)
	versions, err := files.GetVersions(f, root)
	require.NoError(t, err)
	assert.Len(t, versions, 1)
}

func TestConfigurationDirectoryListingBootstraps(t *testing.T) {
	dirs, _, client := newHelpers(t)
	assert.True(t, client.ConfigurationRootDirectoryID().IsZero())

	cfg, err := dirs.ConfigurationDirectoryListing("app-settings")
	require.NoError(t, err)
	assert.False(t, client.ConfigurationRootDirectoryID().IsZero())

	again, err := dirs.ConfigurationDirectoryListing("app-settings")
	require.NoError(t, err)
	assert.Equal(t, cfg.Metadata.Key.ID, again.Metadata.Key.ID)
}
