// Package file defines the File value this library hands back from a
// directory listing: a FileMetadata paired with the DataMap handle that
// locates its encrypted content on the network, in the spirit of the
// teacher's upspin.DirEntry pairing a name with its block list.
package file

import (
	"github.com/maidsafe-archive/safe-nfs-go/datamap"
	"github.com/maidsafe-archive/safe-nfs-go/metadata"
	"github.com/maidsafe-archive/safe-nfs-go/netid"
	"github.com/maidsafe-archive/safe-nfs-go/wire"
)

// File is a file-metadata record plus its data-map handle. A zero-value
// DataMap (Chunks == nil) represents an empty file.
type File struct {
	Metadata metadata.FileMetadata
	DataMap  datamap.DataMap
}

// New pairs freshly created metadata with an empty data map.
func New(name string, userMetadata []byte) (File, error) {
	m, err := metadata.NewFile(name, userMetadata)
	if err != nil {
		return File{}, err
	}
	return File{Metadata: m}, nil
}

// Encode appends f's wire form to acc: its metadata, then its data map's
// chunk table.
func (f File) Encode(acc *wire.Accumulator) {
	f.Metadata.Encode(acc)
	acc.Uint64(uint64(len(f.DataMap.Chunks)))
	for _, c := range f.DataMap.Chunks {
		c.Location.Encode(acc)
		acc.Bytes(c.Key[:])
		acc.Int64(c.Offset)
		acc.Int64(c.Size)
	}
}

// Decode reads a File written by Encode.
func Decode(c *wire.Consumer) File {
	var f File
	f.Metadata = metadata.DecodeFileMetadata(c)
	n := c.Uint64()
	if n == 0 {
		return f
	}
	chunks := make([]datamap.Chunk, n)
	for i := range chunks {
		chunks[i].Location = netid.DecodeNetworkName(c)
		key := c.Bytes()
		copy(chunks[i].Key[:], key)
		chunks[i].Offset = c.Int64()
		chunks[i].Size = c.Int64()
	}
	f.DataMap = datamap.DataMap{Chunks: chunks}
	return f
}
