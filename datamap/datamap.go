// Package datamap defines the self-encryption primitive this library
// consumes (per spec.md §6, out of scope: "the self-encryption library
// itself, assumed available as a primitive") and ships a reference chunked
// implementation conformant enough to exercise this module's tests.
//
// The reference implementation is grounded in the teacher's pack/symm
// AES-GCM block packer: content is split into fixed-size chunks, each
// independently encrypted and content-addressed. Unlike the real SAFE
// self-encryptor, chunk keys here are derived from the chunk's own content
// hash (simple convergent encryption) rather than from neighboring chunks'
// hashes; DESIGN.md records this as a deliberate simplification, since the
// real self-encryptor is an external collaborator and only a conformant
// substitute is required here.
package datamap

import "github.com/maidsafe-archive/safe-nfs-go/netid"

// ChunkSize is the fixed plaintext size of every chunk but the last.
const ChunkSize = 1 << 20 // 1 MiB

// Chunk describes one encrypted, content-addressed block of a file.
type Chunk struct {
	Location netid.NetworkName // network name of the ciphertext block
	Key      [32]byte          // content-derived AES-256 key for this chunk
	Offset   int64             // plaintext byte offset of this chunk
	Size     int64             // plaintext size of this chunk
}

// DataMap is the opaque chunk table produced by a self-encryptor's Close.
// A nil/empty Chunks slice represents an empty file.
type DataMap struct {
	Chunks []Chunk
}

// Len returns the total plaintext length described by the map.
func (m DataMap) Len() int64 {
	var n int64
	for _, c := range m.Chunks {
		if end := c.Offset + c.Size; end > n {
			n = end
		}
	}
	return n
}

// Empty reports whether the map describes a zero-length file.
func (m DataMap) Empty() bool {
	return len(m.Chunks) == 0
}

// SelfEncryptor is the consumed primitive: arbitrary-offset writes into a
// growable logical buffer, random-access reads, and a Close that finalizes
// the buffer into chunked, encrypted network blocks.
type SelfEncryptor interface {
	// Write stores data at the given logical offset, extending the
	// logical length if necessary.
	Write(data []byte, offset int64) error
	// Read returns length bytes starting at offset.
	Read(offset int64, length int64) ([]byte, error)
	// Len returns the current logical length.
	Len() int64
	// Close finalizes the encryptor, producing a DataMap. A
	// SelfEncryptor must not be used after Close.
	Close() (DataMap, error)
}
