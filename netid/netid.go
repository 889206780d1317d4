// Package netid defines the identity and key types shared by every layer of
// the NFS client: network names, structured-data tag types, and the
// access-level and directory-key values that locate a directory on the
// network.
package netid

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/maidsafe-archive/safe-nfs-go/errors"
	"github.com/maidsafe-archive/safe-nfs-go/wire"
)

// NameLength is the width of a NetworkName. The spec's Open Question (a)
// leaves a 32-byte legacy form on the table; this implementation settles on
// the 64-byte stable form, see DESIGN.md.
const NameLength = 64

// NetworkName is an opaque, totally-ordered identifier used both as a
// network address and, via GenerateNonce, as nonce-derivation material.
type NetworkName [NameLength]byte

// String renders the name as hex, for logging and error messages.
func (n NetworkName) String() string {
	return hex.EncodeToString(n[:])
}

// IsZero reports whether n is the zero value.
func (n NetworkName) IsZero() bool {
	return n == NetworkName{}
}

// Less gives NetworkName a total order, byte-wise.
func (n NetworkName) Less(other NetworkName) bool {
	for i := range n {
		if n[i] != other[i] {
			return n[i] < other[i]
		}
	}
	return false
}

// NewNetworkName generates a fresh random NetworkName using the platform's
// CSPRNG. It is the only way metadata.New and metadata.NewFile
// obtain a fresh id, and the only operation in this package that can fail.
func NewNetworkName() (NetworkName, error) {
	var n NetworkName
	if _, err := rand.Read(n[:]); err != nil {
		return n, errors.E("netid.NewNetworkName", errors.RandomnessUnavailable, err)
	}
	return n, nil
}

// TagType identifies the structured-data schema a record is encoded with.
type TagType uint64

// ClientBase is the namespace base that all client-specific tags are
// derived from, by convention.
const ClientBase TagType = 100000

// Reserved tag types for directory structured data.
const (
	VersionedDirTag   TagType = ClientBase + 100
	UnversionedDirTag TagType = VersionedDirTag + 1
)

// AccessLevel is the sum type {Private, Public} controlling whether a
// directory's payload is hybrid-encrypted or stored in the clear.
type AccessLevel uint8

const (
	// Private directories are hybrid-encrypted under the owner's keys.
	Private AccessLevel = iota
	// Public directories are stored as plaintext.
	Public
)

func (a AccessLevel) String() string {
	if a == Public {
		return "public"
	}
	return "private"
}

// DirectoryKey uniquely locates a directory on the network and fully
// determines its decoding path. It is immutable once a directory is
// created.
type DirectoryKey struct {
	ID        NetworkName
	Tag       TagType
	Versioned bool
	Access    AccessLevel
}

// NewKey constructs the DirectoryKey for a directory with the given
// versioning and access level, picking VersionedDirTag or UnversionedDirTag
// from versioned.
func NewKey(id NetworkName, versioned bool, access AccessLevel) DirectoryKey {
	tag := UnversionedDirTag
	if versioned {
		tag = VersionedDirTag
	}
	return DirectoryKey{ID: id, Tag: tag, Versioned: versioned, Access: access}
}

// Time is a UTC timestamp, represented as (sec, nsec) on the wire per the
// spec's schema requirement, so that serialization is stable regardless of
// the host's monotonic clock reading.
type Time struct {
	Sec  int64
	Nsec int32
}

// Now returns the current UTC time truncated to the wire's (sec, nsec) form.
func Now() Time {
	return FromStd(time.Now().UTC())
}

// FromStd converts a time.Time to the wire Time form.
func FromStd(t time.Time) Time {
	t = t.UTC()
	return Time{Sec: t.Unix(), Nsec: int32(t.Nanosecond())}
}

// Std converts a wire Time back to a time.Time.
func (t Time) Std() time.Time {
	return time.Unix(t.Sec, int64(t.Nsec)).UTC()
}

// Before reports whether t is strictly earlier than other.
func (t Time) Before(other Time) bool {
	return t.Std().Before(other.Std())
}

// After reports whether t is strictly later than other.
func (t Time) After(other Time) bool {
	return t.Std().After(other.Std())
}

// Encode appends n's raw bytes to acc.
func (n NetworkName) Encode(acc *wire.Accumulator) {
	acc.Bytes(n[:])
}

// DecodeNetworkName reads a NetworkName written by NetworkName.Encode.
func DecodeNetworkName(c *wire.Consumer) NetworkName {
	var n NetworkName
	copy(n[:], c.Bytes())
	return n
}

// Encode appends t's (sec, nsec) pair to acc.
func (t Time) Encode(acc *wire.Accumulator) {
	acc.Int64(t.Sec)
	acc.Int64(int64(t.Nsec))
}

// DecodeTime reads a Time written by Time.Encode.
func DecodeTime(c *wire.Consumer) Time {
	sec := c.Int64()
	nsec := c.Int64()
	return Time{Sec: sec, Nsec: int32(nsec)}
}

// Encode appends k's fields to acc.
func (k DirectoryKey) Encode(acc *wire.Accumulator) {
	k.ID.Encode(acc)
	acc.Uint64(uint64(k.Tag))
	acc.Bool(k.Versioned)
	acc.Byte(byte(k.Access))
}

// DecodeDirectoryKey reads a DirectoryKey written by DirectoryKey.Encode.
func DecodeDirectoryKey(c *wire.Consumer) DirectoryKey {
	id := DecodeNetworkName(c)
	tag := TagType(c.Uint64())
	versioned := c.Bool()
	access := AccessLevel(c.Byte())
	return DirectoryKey{ID: id, Tag: tag, Versioned: versioned, Access: access}
}
