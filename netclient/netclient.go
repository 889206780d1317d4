// Package netclient defines the network-facing collaborators this library
// consumes: the low-level put/get/post client for immutable and structured
// data, the session key accessors used for hybrid encryption, and the
// versioned/unversioned structured-data helpers. None of these are
// implemented here — the real SAFE Network transport, signing and
// key-management layers live outside this module's scope. memnet provides an
// in-memory double of this interface for tests.
package netclient

import "github.com/maidsafe-archive/safe-nfs-go/netid"

// DataKind distinguishes the two network primitives a put/post/get targets.
type DataKind uint8

const (
	Immutable DataKind = iota
	Structured
)

// ResponseGetter represents a pending network response. Dispatch returns
// one immediately after handing the request to the transport; the caller
// polls it to completion *outside* any held lock, per the concurrency model.
type ResponseGetter interface {
	// Wait blocks until the response is available.
	Wait() (Response, error)
}

// Response is the result of a completed put, post or get.
type Response struct {
	// Name is the network name the data was (or will be) stored under.
	// Set on successful Put of immutable data (the content hash) and on
	// Post of structured data (the record's address).
	Name netid.NetworkName
	// Data holds the retrieved bytes for a Get.
	Data []byte
}

// DataRequest parametrizes a Get call.
type DataRequest struct {
	Kind netid.TagType // only meaningful for Structured
	Name netid.NetworkName
	Data DataKind
}

// Data is the payload of a Put or Post call.
type Data struct {
	Kind  DataKind
	Name  netid.NetworkName // for structured data, the record's id
	Tag   netid.TagType     // for structured data, its schema tag
	Bytes []byte
}

// Client is the network client this library consumes: put/get/post of
// immutable and structured data, plus the session's key and hybrid
// encryption accessors. A concrete implementation dials the SAFE Network;
// memnet.Client is an in-memory stand-in used by this module's tests.
type Client interface {
	// Put stores immutable data and returns a getter for its network name.
	Put(data Data) (ResponseGetter, error)
	// Post replaces or appends to a structured-data record.
	Post(data Data) (ResponseGetter, error)
	// Get retrieves immutable or structured data.
	Get(req DataRequest) (ResponseGetter, error)

	// GetPublicSigningKey returns the session's public signing key.
	GetPublicSigningKey() []byte
	// GetSecretSigningKey returns the session's secret signing key.
	GetSecretSigningKey() []byte
	// GetPublicEncryptionKey returns the session's public encryption key.
	GetPublicEncryptionKey() []byte
	// GetSecretEncryptionKey returns the session's secret encryption key.
	GetSecretEncryptionKey() []byte

	// HybridEncrypt wraps plaintext under the session's asymmetric and
	// symmetric envelope, keyed off nonce.
	HybridEncrypt(plaintext []byte, nonce [24]byte) ([]byte, error)
	// HybridDecrypt is the inverse of HybridEncrypt.
	HybridDecrypt(ciphertext []byte, nonce [24]byte) ([]byte, error)

	// UserRootDirectoryID returns the session-wide user root id, or the
	// zero NetworkName if it has not yet been bootstrapped.
	UserRootDirectoryID() netid.NetworkName
	// SetUserRootDirectoryID records the user root id. Idempotent.
	SetUserRootDirectoryID(id netid.NetworkName)
	// ConfigurationRootDirectoryID returns the session-wide configuration
	// root id, or the zero NetworkName if not yet bootstrapped.
	ConfigurationRootDirectoryID() netid.NetworkName
	// SetConfigurationRootDirectoryID records the configuration root id.
	SetConfigurationRootDirectoryID(id netid.NetworkName)
}
