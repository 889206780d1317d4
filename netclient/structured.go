package netclient

import "github.com/maidsafe-archive/safe-nfs-go/netid"

// VersionedStructuredData is the consumed operation set for the "versioned"
// structured-data schema: an append-only list of immutable-data version
// names recorded under (tag, id).
type VersionedStructuredData interface {
	// Create posts a brand-new versioned record whose single version is
	// firstVersion, at structured-data version 0.
	Create(client Client, firstVersion netid.NetworkName, tag netid.TagType, id netid.NetworkName) error
	// AppendVersion appends newVersion to the record's version list.
	AppendVersion(client Client, id netid.NetworkName, tag netid.TagType, newVersion netid.NetworkName) error
	// GetAllVersions returns the full version-name chain, oldest first.
	GetAllVersions(client Client, id netid.NetworkName, tag netid.TagType) ([]netid.NetworkName, error)
}

// UnversionedStructuredData is the consumed operation set for the
// "unversioned" structured-data schema: a single replaceable payload
// recorded under (tag, id).
type UnversionedStructuredData interface {
	// Create posts a brand-new unversioned record at structured-data
	// version 0 holding payload.
	Create(client Client, tag netid.TagType, id netid.NetworkName, payload []byte) error
	// Replace recreates the record at the next structured-data version
	// with the new payload (copy-on-write at the structured-data level).
	Replace(client Client, tag netid.TagType, id netid.NetworkName, payload []byte) error
	// GetData fetches the record's current payload.
	GetData(client Client, tag netid.TagType, id netid.NetworkName) ([]byte, error)
}
