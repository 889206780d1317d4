// Package directory implements the in-memory DirectoryListing: a
// directory's own metadata plus its child directory and file lists, the
// find/upsert/remove helpers operating on them, and the self-encryption +
// hybrid-encryption pipeline that turns a listing into network bytes and
// back.
//
// Grounded in the teacher's dir/inprocess directory representation (a
// metadata record plus ordered child lists guarded by simple linear scans)
// and pack/ee for the encrypt/decrypt envelope shape.
package directory

import (
	"sort"

	"github.com/maidsafe-archive/safe-nfs-go/datamap"
	"github.com/maidsafe-archive/safe-nfs-go/errors"
	"github.com/maidsafe-archive/safe-nfs-go/file"
	"github.com/maidsafe-archive/safe-nfs-go/metadata"
	"github.com/maidsafe-archive/safe-nfs-go/netclient"
	"github.com/maidsafe-archive/safe-nfs-go/netid"
	"github.com/maidsafe-archive/safe-nfs-go/wire"
)

// NonceSize is the width of the nonce GenerateNonce derives from a
// directory id, matching the nonce parameter of
// netclient.Client.HybridEncrypt/HybridDecrypt.
const NonceSize = 24

// Listing is the in-memory form of a directory: its metadata, its child
// directories' metadata (not full listings — those are separate network
// objects), and its files.
type Listing struct {
	Metadata       metadata.DirectoryMetadata
	SubDirectories []metadata.DirectoryMetadata
	Files          []file.File
}

// New creates an empty listing around freshly built metadata.
func New(m metadata.DirectoryMetadata) Listing {
	return Listing{Metadata: m}
}

// FindFile returns the first file named name, if any.
func (l *Listing) FindFile(name string) (file.File, bool) {
	for _, f := range l.Files {
		if f.Metadata.Name == name {
			return f, true
		}
	}
	return file.File{}, false
}

// FindSubDirectory returns the first sub-directory named name, if any.
func (l *Listing) FindSubDirectory(name string) (metadata.DirectoryMetadata, bool) {
	for _, d := range l.SubDirectories {
		if d.Name == name {
			return d, true
		}
	}
	return metadata.DirectoryMetadata{}, false
}

// UpsertFile replaces the file sharing f's id, or appends it if none
// matches. The listing's modified_time is set to f's.
func (l *Listing) UpsertFile(f file.File) {
	for i, existing := range l.Files {
		if existing.Metadata.ID == f.Metadata.ID {
			l.Files[i] = f
			l.Metadata.SetModifiedTime(f.Metadata.ModifiedTime)
			return
		}
	}
	l.Files = append(l.Files, f)
	l.Metadata.SetModifiedTime(f.Metadata.ModifiedTime)
}

// UpsertSubDirectory replaces the sub-directory sharing m's key.id, or
// appends it if none matches.
func (l *Listing) UpsertSubDirectory(m metadata.DirectoryMetadata) {
	for i, existing := range l.SubDirectories {
		if existing.Key.ID == m.Key.ID {
			l.SubDirectories[i] = m
			l.Metadata.SetModifiedTime(m.ModifiedTime)
			return
		}
	}
	l.SubDirectories = append(l.SubDirectories, m)
	l.Metadata.SetModifiedTime(m.ModifiedTime)
}

// RemoveFile deletes the file named name, failing with FileNotFound if
// absent.
func (l *Listing) RemoveFile(name string) error {
	for i, f := range l.Files {
		if f.Metadata.Name == name {
			l.Files = append(l.Files[:i], l.Files[i+1:]...)
			return nil
		}
	}
	return errors.E("directory.Listing.RemoveFile", errors.FileNotFound, errors.Str(name))
}

// RemoveSubDirectory deletes the sub-directory named name, failing with
// DirectoryNotFound if absent.
func (l *Listing) RemoveSubDirectory(name string) error {
	for i, d := range l.SubDirectories {
		if d.Name == name {
			l.SubDirectories = append(l.SubDirectories[:i], l.SubDirectories[i+1:]...)
			return nil
		}
	}
	return errors.E("directory.Listing.RemoveSubDirectory", errors.DirectoryNotFound, errors.Str(name))
}

// SortedFileNames returns the listing's file names in lexical order, for
// stable directory browsing.
func (l *Listing) SortedFileNames() []string {
	names := make([]string, len(l.Files))
	for i, f := range l.Files {
		names[i] = f.Metadata.Name
	}
	sort.Strings(names)
	return names
}

// GenerateNonce derives a deterministic NonceSize-byte nonce from a
// directory id: the id's first NonceSize bytes, zero-padded if the id is
// shorter.
func GenerateNonce(id netid.NetworkName) [NonceSize]byte {
	var nonce [NonceSize]byte
	copy(nonce[:], id[:])
	return nonce
}

// Encode serializes the listing's metadata, sub-directory list and file
// list to the wire accumulator; it does not encrypt.
func (l Listing) Encode(acc *wire.Accumulator) {
	l.Metadata.Encode(acc)
	acc.Uint64(uint64(len(l.SubDirectories)))
	for _, d := range l.SubDirectories {
		d.Encode(acc)
	}
	acc.Uint64(uint64(len(l.Files)))
	for _, f := range l.Files {
		f.Encode(acc)
	}
}

// Decode reads a Listing written by Encode.
func Decode(c *wire.Consumer) Listing {
	var l Listing
	l.Metadata = metadata.DecodeDirectoryMetadata(c)
	n := c.Uint64()
	l.SubDirectories = make([]metadata.DirectoryMetadata, n)
	for i := range l.SubDirectories {
		l.SubDirectories[i] = metadata.DecodeDirectoryMetadata(c)
	}
	m := c.Uint64()
	l.Files = make([]file.File, m)
	for i := range l.Files {
		l.Files[i] = file.Decode(c)
	}
	return l
}

// Encrypt serializes the listing, self-encrypts the result into a data map,
// serializes the data map, and — for Private directories — hybrid-encrypts
// that serialized map under client's key pair using a nonce derived from
// the listing's own id. Public directories skip the hybrid step and return
// the serialized data map as-is.
func Encrypt(client netclient.Client, l Listing) ([]byte, error) {
	const op = "directory.Encrypt"
	var acc wire.Accumulator
	l.Encode(&acc)
	serialized, err := acc.Result()
	if err != nil {
		return nil, errors.E(op, errors.SerializationFailed, err)
	}

	enc := datamap.NewEncryptor(client)
	if err := enc.Write(serialized, 0); err != nil {
		return nil, errors.E(op, errors.EncryptionFailed, err)
	}
	dm, err := enc.Close()
	if err != nil {
		return nil, errors.E(op, errors.EncryptionFailed, err)
	}

	var mapAcc wire.Accumulator
	encodeDataMap(&mapAcc, dm)
	mapBytes, err := mapAcc.Result()
	if err != nil {
		return nil, errors.E(op, errors.SerializationFailed, err)
	}

	if l.Metadata.Key.Access == netid.Public {
		return mapBytes, nil
	}

	nonce := GenerateNonce(l.Metadata.Key.ID)
	wrapped, err := client.HybridEncrypt(mapBytes, nonce)
	if err != nil {
		return nil, errors.E(op, errors.EncryptionFailed, err)
	}
	return wrapped, nil
}

// Decrypt is the inverse of Encrypt: for Private directories it
// hybrid-decrypts bytes under client's key pair using the nonce derived
// from id, deserializes the resulting data map, reads the listing's
// plaintext back out through the self-encryptor, and deserializes it; for
// Public directories it skips the hybrid step.
func Decrypt(client netclient.Client, id netid.NetworkName, access netid.AccessLevel, bytes []byte) (Listing, error) {
	const op = "directory.Decrypt"
	mapBytes := bytes
	if access == netid.Private {
		nonce := GenerateNonce(id)
		plain, err := client.HybridDecrypt(bytes, nonce)
		if err != nil {
			return Listing{}, errors.E(op, errors.EncryptionFailed, err)
		}
		mapBytes = plain
	}

	dm, err := decodeDataMap(wire.NewConsumer(mapBytes))
	if err != nil {
		return Listing{}, errors.E(op, errors.SerializationFailed, err)
	}

	serialized, err := datamap.ReadDataMap(client, dm, 0, dm.Len())
	if err != nil {
		return Listing{}, errors.E(op, errors.NetworkError, err)
	}

	c := wire.NewConsumer(serialized)
	l := Decode(c)
	if err := c.Err(); err != nil {
		return Listing{}, errors.E(op, errors.SerializationFailed, err)
	}
	return l, nil
}

func encodeDataMap(acc *wire.Accumulator, dm datamap.DataMap) {
	acc.Uint64(uint64(len(dm.Chunks)))
	for _, ch := range dm.Chunks {
		ch.Location.Encode(acc)
		acc.Bytes(ch.Key[:])
		acc.Int64(ch.Offset)
		acc.Int64(ch.Size)
	}
}

func decodeDataMap(c *wire.Consumer) (datamap.DataMap, error) {
	n := c.Uint64()
	chunks := make([]datamap.Chunk, n)
	for i := range chunks {
		chunks[i].Location = netid.DecodeNetworkName(c)
		key := c.Bytes()
		copy(chunks[i].Key[:], key)
		chunks[i].Offset = c.Int64()
		chunks[i].Size = c.Int64()
	}
	if err := c.Err(); err != nil {
		return datamap.DataMap{}, err
	}
	return datamap.DataMap{Chunks: chunks}, nil
}
