// Package metadata holds the two metadata records this library persists:
// DirectoryMetadata (one per directory, embedding its DirectoryKey) and
// FileMetadata (one per file, stable across content rewrites). Both are
// grounded in the teacher's upspin.DirEntry: a small, serialization-stable
// value type carrying identity, timestamps and a caller-opaque metadata
// blob, with setters used by higher layers before re-persisting.
package metadata

import (
	"github.com/maidsafe-archive/safe-nfs-go/errors"
	"github.com/maidsafe-archive/safe-nfs-go/netid"
	"github.com/maidsafe-archive/safe-nfs-go/wire"
)

// DirectoryMetadata describes one directory: its key, its name, its
// timestamps, caller-opaque user metadata, and an optional parent key.
// parent_dir_key is the zero value (ParentDirKey.Valid == false) iff this
// is a root directory.
type DirectoryMetadata struct {
	Key          netid.DirectoryKey
	Name         string
	CreatedTime  netid.Time
	ModifiedTime netid.Time
	UserMetadata []byte
	ParentDirKey ParentDirKey
}

// ParentDirKey is an optional DirectoryKey: the Rust "Option<DirectoryKey>"
// of spec.md §3, spelled out as a Go struct so zero value is meaningful.
type ParentDirKey struct {
	Key   netid.DirectoryKey
	Valid bool
}

// NewParentDirKey wraps key as a present parent reference.
func NewParentDirKey(key netid.DirectoryKey) ParentDirKey {
	return ParentDirKey{Key: key, Valid: true}
}

// New builds a fresh DirectoryMetadata with a random id, created_time ==
// modified_time == now. Fails only with RandomnessUnavailable.
func New(name string, tag netid.TagType, versioned bool, access netid.AccessLevel, userMetadata []byte, parent ParentDirKey) (DirectoryMetadata, error) {
	const op = "metadata.New"
	id, err := netid.NewNetworkName()
	if err != nil {
		return DirectoryMetadata{}, errors.E(op, errors.RandomnessUnavailable, err)
	}
	now := netid.Now()
	key := netid.DirectoryKey{ID: id, Tag: tag, Versioned: versioned, Access: access}
	return DirectoryMetadata{
		Key:          key,
		Name:         name,
		CreatedTime:  now,
		ModifiedTime: now,
		UserMetadata: userMetadata,
		ParentDirKey: parent,
	}, nil
}

// SetModifiedTime updates the modified_time field in place.
func (m *DirectoryMetadata) SetModifiedTime(t netid.Time) { m.ModifiedTime = t }

// SetUserMetadata replaces the caller-opaque metadata blob.
func (m *DirectoryMetadata) SetUserMetadata(b []byte) { m.UserMetadata = b }

// SetName renames the directory in place.
func (m *DirectoryMetadata) SetName(name string) { m.Name = name }

// IsRoot reports whether this directory has no parent.
func (m DirectoryMetadata) IsRoot() bool { return !m.ParentDirKey.Valid }

// Encode appends m's schema-stable wire form to acc.
func (m DirectoryMetadata) Encode(acc *wire.Accumulator) {
	m.Key.Encode(acc)
	acc.String(m.Name)
	m.CreatedTime.Encode(acc)
	m.ModifiedTime.Encode(acc)
	acc.Bytes(m.UserMetadata)
	acc.Bool(m.ParentDirKey.Valid)
	if m.ParentDirKey.Valid {
		m.ParentDirKey.Key.Encode(acc)
	}
}

// DecodeDirectoryMetadata reads a DirectoryMetadata written by Encode.
func DecodeDirectoryMetadata(c *wire.Consumer) DirectoryMetadata {
	var m DirectoryMetadata
	m.Key = netid.DecodeDirectoryKey(c)
	m.Name = c.String()
	m.CreatedTime = netid.DecodeTime(c)
	m.ModifiedTime = netid.DecodeTime(c)
	m.UserMetadata = c.Bytes()
	if c.Bool() {
		m.ParentDirKey = NewParentDirKey(netid.DecodeDirectoryKey(c))
	}
	return m
}

// FileMetadata describes one file: a stable id assigned at creation, its
// size as of the last successful Writer.Close, timestamps, name, and
// caller-opaque user metadata.
type FileMetadata struct {
	ID           netid.NetworkName
	Name         string
	Size         uint64
	CreatedTime  netid.Time
	ModifiedTime netid.Time
	UserMetadata []byte
}

// NewFile builds a fresh, zero-size FileMetadata. Fails only with
// RandomnessUnavailable.
func NewFile(name string, userMetadata []byte) (FileMetadata, error) {
	const op = "metadata.NewFile"
	id, err := netid.NewNetworkName()
	if err != nil {
		return FileMetadata{}, errors.E(op, errors.RandomnessUnavailable, err)
	}
	now := netid.Now()
	return FileMetadata{
		ID:           id,
		Name:         name,
		Size:         0,
		CreatedTime:  now,
		ModifiedTime: now,
		UserMetadata: userMetadata,
	}, nil
}

// SetName renames the file in place.
func (m *FileMetadata) SetName(name string) { m.Name = name }

// SetModifiedTime updates the modified_time field in place.
func (m *FileMetadata) SetModifiedTime(t netid.Time) { m.ModifiedTime = t }

// SetUserMetadata replaces the caller-opaque metadata blob.
func (m *FileMetadata) SetUserMetadata(b []byte) { m.UserMetadata = b }

// SetSize records the data-map length observed at the last Writer.Close.
func (m *FileMetadata) SetSize(n uint64) { m.Size = n }

// Encode appends m's schema-stable wire form to acc.
func (m FileMetadata) Encode(acc *wire.Accumulator) {
	m.ID.Encode(acc)
	acc.String(m.Name)
	acc.Uint64(m.Size)
	m.CreatedTime.Encode(acc)
	m.ModifiedTime.Encode(acc)
	acc.Bytes(m.UserMetadata)
}

// DecodeFileMetadata reads a FileMetadata written by Encode.
func DecodeFileMetadata(c *wire.Consumer) FileMetadata {
	var m FileMetadata
	m.ID = netid.DecodeNetworkName(c)
	m.Name = c.String()
	m.Size = c.Uint64()
	m.CreatedTime = netid.DecodeTime(c)
	m.ModifiedTime = netid.DecodeTime(c)
	m.UserMetadata = c.Bytes()
	return m
}
