// Package rest is the thin, validating Container Facade (spec.md §4.6)
// composing DirectoryHelper and FileHelper into the REST-shaped operations
// an application actually calls: input validation, tag mapping, the
// Blob/File normalization, and copy_blob.
//
// Grounded in the teacher's client package, which plays the same role atop
// upspin's dir/store clients: a small validating wrapper, not a place
// where new network logic lives.
package rest

import (
	"golang.org/x/text/unicode/norm"

	"github.com/maidsafe-archive/safe-nfs-go/directory"
	"github.com/maidsafe-archive/safe-nfs-go/errors"
	"github.com/maidsafe-archive/safe-nfs-go/file"
	"github.com/maidsafe-archive/safe-nfs-go/helper"
	"github.com/maidsafe-archive/safe-nfs-go/netclient"
	"github.com/maidsafe-archive/safe-nfs-go/netid"
)

// Blob is the facade-level view of a file: the same fields a caller
// outside this module is expected to see, independent of the core's
// internal File/DataMap split.
type Blob struct {
	ID           netid.NetworkName
	Name         string
	Size         uint64
	CreatedTime  netid.Time
	ModifiedTime netid.Time
	UserMetadata []byte
}

func blobFromFile(f file.File) Blob {
	return Blob{
		ID:           f.Metadata.ID,
		Name:         f.Metadata.Name,
		Size:         f.Metadata.Size,
		CreatedTime:  f.Metadata.CreatedTime,
		ModifiedTime: f.Metadata.ModifiedTime,
		UserMetadata: f.Metadata.UserMetadata,
	}
}

// Container composes the directory and file helpers behind input
// validation and the Blob/File normalization.
type Container struct {
	Client netclient.Client
	Dirs   *helper.DirectoryHelper
	Files  *helper.FileHelper
}

// NewContainer builds a Container over client.
func NewContainer(client netclient.Client) *Container {
	dirs := helper.New(client)
	return &Container{
		Client: client,
		Dirs:   dirs,
		Files:  helper.NewFileHelper(client, dirs),
	}
}

// TagFor maps the versioned axis onto this implementation's reserved tag
// types (spec.md §3, §6): access level does not affect the tag, only
// whether the directory is versioned.
func TagFor(versioned bool) netid.TagType {
	if versioned {
		return netid.VersionedDirTag
	}
	return netid.UnversionedDirTag
}

// normalizeName puts name into Unicode NFC form, so two names that differ
// only in composition (e.g. combining-accent vs precomposed) are treated
// as the same name everywhere name uniqueness is checked.
func normalizeName(name string) string {
	return norm.NFC.String(name)
}

func validateName(op, name string) (string, error) {
	name = normalizeName(name)
	if name == "" {
		return "", errors.E(op, errors.ParameterInvalid, errors.Str("name must not be empty"))
	}
	return name, nil
}

func validateUserMetadata(op string, userMetadata []byte) error {
	if userMetadata != nil && len(userMetadata) == 0 {
		return errors.E(op, errors.ParameterInvalid, errors.Str("user metadata must not be empty when supplied"))
	}
	return nil
}

// CreateDirectory validates name and userMetadata, maps versioned to the
// underlying tag via TagFor, and creates the directory under parent
// (nil for a root-level directory outside the session bootstrap roots).
func (c *Container) CreateDirectory(name string, userMetadata []byte, versioned bool, access netid.AccessLevel, parent *directory.Listing) (directory.Listing, *directory.Listing, error) {
	const op = "rest.Container.CreateDirectory"
	name, err := validateName(op, name)
	if err != nil {
		return directory.Listing{}, nil, err
	}
	if err := validateUserMetadata(op, userMetadata); err != nil {
		return directory.Listing{}, nil, err
	}
	created, grandParent, err := c.Dirs.Create(name, TagFor(versioned), userMetadata, versioned, access, parent)
	if err != nil {
		return directory.Listing{}, nil, errors.E(op, err)
	}
	return created, grandParent, nil
}

// GetDirectory fetches the directory addressed by key.
func (c *Container) GetDirectory(key netid.DirectoryKey) (directory.Listing, error) {
	return c.Dirs.Get(key)
}

// DeleteDirectory removes the sub-directory named name from parent.
func (c *Container) DeleteDirectory(parent *directory.Listing, name string) (*directory.Listing, error) {
	const op = "rest.Container.DeleteDirectory"
	name, err := validateName(op, name)
	if err != nil {
		return nil, err
	}
	grandParent, err := c.Dirs.Delete(parent, name)
	if err != nil {
		return nil, errors.E(op, err)
	}
	return grandParent, nil
}

// CreateFile validates name and userMetadata and returns a Writer ready to
// receive content for a brand-new file under parent.
func (c *Container) CreateFile(name string, userMetadata []byte, parent *directory.Listing) (*helper.Writer, error) {
	const op = "rest.Container.CreateFile"
	name, err := validateName(op, name)
	if err != nil {
		return nil, err
	}
	if err := validateUserMetadata(op, userMetadata); err != nil {
		return nil, err
	}
	w, err := c.Files.Create(name, userMetadata, parent)
	if err != nil {
		return nil, errors.E(op, err)
	}
	return w, nil
}

// UpdateFileContent returns a Writer over an existing file, per mode.
func (c *Container) UpdateFileContent(f file.File, mode helper.Mode, parent *directory.Listing) (*helper.Writer, error) {
	w, err := c.Files.UpdateContent(f, mode, parent)
	if err != nil {
		return nil, errors.E("rest.Container.UpdateFileContent", err)
	}
	return w, nil
}

// UpdateFileMetadata renames and/or restamps f's user metadata.
func (c *Container) UpdateFileMetadata(f file.File, parent *directory.Listing) (*directory.Listing, error) {
	const op = "rest.Container.UpdateFileMetadata"
	name, err := validateName(op, f.Metadata.Name)
	if err != nil {
		return nil, err
	}
	f.Metadata.SetName(name)
	grandParent, err := c.Files.UpdateMetadata(f, parent)
	if err != nil {
		return nil, errors.E(op, err)
	}
	return grandParent, nil
}

// DeleteFile removes the file named name from parent.
func (c *Container) DeleteFile(name string, parent *directory.Listing) (*directory.Listing, error) {
	const op = "rest.Container.DeleteFile"
	name, err := validateName(op, name)
	if err != nil {
		return nil, err
	}
	grandParent, err := c.Files.Delete(name, parent)
	if err != nil {
		return nil, errors.E(op, err)
	}
	return grandParent, nil
}

// GetBlobVersions returns the Blob-normalized version history of f within
// parent.
func (c *Container) GetBlobVersions(f file.File, parent directory.Listing) ([]Blob, error) {
	versions, err := c.Files.GetVersions(f, parent)
	if err != nil {
		return nil, errors.E("rest.Container.GetBlobVersions", err)
	}
	blobs := make([]Blob, len(versions))
	for i, v := range versions {
		blobs[i] = blobFromFile(v)
	}
	return blobs, nil
}

// CopyBlob copies the file named name from source into the directory
// addressed by destinationKey, preserving its id and data map (so both
// directory entries reference the same content-addressed chunks; no
// reference counting is performed, per spec.md §4.6).
func (c *Container) CopyBlob(source directory.Listing, name string, destinationKey netid.DirectoryKey) error {
	const op = "rest.Container.CopyBlob"
	name, err := validateName(op, name)
	if err != nil {
		return err
	}
	if source.Metadata.Key == destinationKey {
		return errors.E(op, errors.DestinationAndSourceAreSame)
	}
	f, ok := source.FindFile(name)
	if !ok {
		return errors.E(op, errors.FileNotFound, errors.Str(errors.Names(source.Metadata.Key.ID.String(), name)))
	}
	dest, err := c.Dirs.Get(destinationKey)
	if err != nil {
		return errors.E(op, err)
	}
	if _, ok := dest.FindFile(name); ok {
		return errors.E(op, errors.FileAlreadyExistsWithSameName, errors.Str(errors.Names(destinationKey.ID.String(), name)))
	}
	dest.UpsertFile(f)
	if _, err := c.Dirs.Update(&dest); err != nil {
		return errors.E(op, err)
	}
	return nil
}
