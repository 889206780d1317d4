// Package helper implements the directory and file lifecycle operations
// (spec.md §4.4, §4.5): DirectoryHelper's create/get/update/delete with
// parent-chain propagation and root bootstrapping, and FileHelper plus its
// Writer/Reader for chunked content I/O.
//
// Grounded in the teacher's dir/inprocess directory-tree mutation logic
// (upsert-then-recursively-persist-ancestors) and client/file.File's
// buffer-then-finalize write pattern.
package helper

import (
	"github.com/maidsafe-archive/safe-nfs-go/directory"
	"github.com/maidsafe-archive/safe-nfs-go/errors"
	"github.com/maidsafe-archive/safe-nfs-go/log"
	"github.com/maidsafe-archive/safe-nfs-go/metadata"
	"github.com/maidsafe-archive/safe-nfs-go/netclient"
	"github.com/maidsafe-archive/safe-nfs-go/netid"
	"github.com/maidsafe-archive/safe-nfs-go/storage"
)

// rootName and configRootName are the bootstrap directories' display
// names; callers never look them up by name, only via the session's
// root-id accessors, so any stable string will do.
const (
	rootName       = "user-root"
	configRootName = "configuration-root"
)

// DirectoryHelper implements the directory lifecycle operations on top of
// the Storage Codec, propagating modified_time up the parent chain on
// every mutation.
type DirectoryHelper struct {
	Client netclient.Client
}

// New wraps client in a DirectoryHelper.
func New(client netclient.Client) *DirectoryHelper {
	return &DirectoryHelper{Client: client}
}

// rootKey reconstructs the DirectoryKey for a bootstrap root from its id
// alone: every root this helper creates is unversioned and private, so
// (tag, versioned, access) are always the same two constants.
func rootKey(id netid.NetworkName) netid.DirectoryKey {
	return netid.DirectoryKey{ID: id, Tag: netid.UnversionedDirTag, Versioned: false, Access: netid.Private}
}

// Create builds a fresh directory named name, persists it, and — if parent
// is supplied — links it into parent's sub-directory list and persists
// that change up the chain. It returns the newly created listing and, if
// parent was supplied, the grandparent snapshot produced by that
// propagation (nil if parent has no parent of its own, or if parent was
// nil).
func (h *DirectoryHelper) Create(name string, tag netid.TagType, userMetadata []byte, versioned bool, access netid.AccessLevel, parent *directory.Listing) (directory.Listing, *directory.Listing, error) {
	const op = "helper.DirectoryHelper.Create"
	if parent != nil {
		if _, ok := parent.FindSubDirectory(name); ok {
			return directory.Listing{}, nil, errors.E(op, errors.DirectoryAlreadyExistsWithSameName, errors.Str(name))
		}
	}

	var parentKey metadata.ParentDirKey
	if parent != nil {
		parentKey = metadata.NewParentDirKey(parent.Metadata.Key)
	}
	m, err := metadata.New(name, tag, versioned, access, userMetadata, parentKey)
	if err != nil {
		return directory.Listing{}, nil, errors.E(op, err)
	}
	created := directory.New(m)
	if err := storage.Create(h.Client, created); err != nil {
		return directory.Listing{}, nil, errors.E(op, err)
	}
	log.Debug.Printf("helper: created directory %q (%s)", name, created.Metadata.Key.ID)

	if parent == nil {
		return created, nil, nil
	}
	parent.UpsertSubDirectory(created.Metadata)
	grandParent, err := h.Update(parent)
	if err != nil {
		return created, nil, errors.E(op, err)
	}
	return created, grandParent, nil
}

// Get fetches and decodes the directory addressed by key.
func (h *DirectoryHelper) Get(key netid.DirectoryKey) (directory.Listing, error) {
	l, err := storage.Get(h.Client, key)
	if err != nil {
		return directory.Listing{}, errors.E("helper.DirectoryHelper.Get", err)
	}
	return l, nil
}

// GetByVersion fetches and decodes a specific historical version.
func (h *DirectoryHelper) GetByVersion(key netid.DirectoryKey, version netid.NetworkName) (directory.Listing, error) {
	l, err := storage.GetByVersion(h.Client, key, version)
	if err != nil {
		return directory.Listing{}, errors.E("helper.DirectoryHelper.GetByVersion", err)
	}
	return l, nil
}

// GetVersions returns the version-name chain of a versioned directory,
// oldest first.
func (h *DirectoryHelper) GetVersions(key netid.DirectoryKey) ([]netid.NetworkName, error) {
	versions, err := storage.GetVersions(h.Client, key)
	if err != nil {
		return nil, errors.E("helper.DirectoryHelper.GetVersions", err)
	}
	return versions, nil
}

// Update re-persists l and, if it has a parent, upserts l's metadata into
// the parent and recursively updates the parent too. It returns l's
// immediate parent (after that propagation), or nil if l is a root.
func (h *DirectoryHelper) Update(l *directory.Listing) (*directory.Listing, error) {
	const op = "helper.DirectoryHelper.Update"
	if err := storage.Update(h.Client, *l); err != nil {
		log.Error.Printf("helper: failed to update directory %s: %v", l.Metadata.Key.ID, err)
		return nil, errors.E(op, err)
	}
	if !l.Metadata.ParentDirKey.Valid {
		return nil, nil
	}
	parent, err := h.Get(l.Metadata.ParentDirKey.Key)
	if err != nil {
		return nil, errors.E(op, err)
	}
	parent.UpsertSubDirectory(l.Metadata)
	if _, err := h.Update(&parent); err != nil {
		return nil, errors.E(op, err)
	}
	return &parent, nil
}

// Delete removes the sub-directory named name from parent and persists
// the change, returning the grandparent snapshot as Update would.
func (h *DirectoryHelper) Delete(parent *directory.Listing, name string) (*directory.Listing, error) {
	const op = "helper.DirectoryHelper.Delete"
	if err := parent.RemoveSubDirectory(name); err != nil {
		return nil, errors.E(op, err)
	}
	parent.Metadata.SetModifiedTime(netid.Now())
	grandParent, err := h.Update(parent)
	if err != nil {
		return nil, errors.E(op, err)
	}
	log.Debug.Printf("helper: deleted directory %q from %s", name, parent.Metadata.Key.ID)
	return grandParent, nil
}

// UserRootDirectoryListing returns the session's user-root directory,
// creating and recording it in the session if this is the first call.
func (h *DirectoryHelper) UserRootDirectoryListing() (directory.Listing, error) {
	const op = "helper.DirectoryHelper.UserRootDirectoryListing"
	id := h.Client.UserRootDirectoryID()
	if !id.IsZero() {
		return h.Get(rootKey(id))
	}
	created, _, err := h.Create(rootName, netid.UnversionedDirTag, nil, false, netid.Private, nil)
	if err != nil {
		return directory.Listing{}, errors.E(op, err)
	}
	h.Client.SetUserRootDirectoryID(created.Metadata.Key.ID)
	return created, nil
}

// ConfigurationDirectoryListing returns the named configuration
// sub-directory under the session's configuration root, creating the root
// and/or the named child if either is missing.
func (h *DirectoryHelper) ConfigurationDirectoryListing(name string) (directory.Listing, error) {
	const op = "helper.DirectoryHelper.ConfigurationDirectoryListing"
	root, err := h.configurationRoot()
	if err != nil {
		return directory.Listing{}, errors.E(op, err)
	}
	if child, ok := root.FindSubDirectory(name); ok {
		return h.Get(child.Key)
	}
	created, _, err := h.Create(name, netid.UnversionedDirTag, nil, false, netid.Private, &root)
	if err != nil {
		return directory.Listing{}, errors.E(op, err)
	}
	return created, nil
}

func (h *DirectoryHelper) configurationRoot() (directory.Listing, error) {
	id := h.Client.ConfigurationRootDirectoryID()
	if !id.IsZero() {
		return h.Get(rootKey(id))
	}
	created, _, err := h.Create(configRootName, netid.UnversionedDirTag, nil, false, netid.Private, nil)
	if err != nil {
		return directory.Listing{}, err
	}
	h.Client.SetConfigurationRootDirectoryID(created.Metadata.Key.ID)
	return created, nil
}
