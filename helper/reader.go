package helper

import (
	"github.com/maidsafe-archive/safe-nfs-go/datamap"
	"github.com/maidsafe-archive/safe-nfs-go/errors"
	"github.com/maidsafe-archive/safe-nfs-go/file"
	"github.com/maidsafe-archive/safe-nfs-go/netclient"
)

// Reader provides random-access reads over a file's content, backed
// directly by its data map (no buffering beyond what a single Read
// fetches).
type Reader struct {
	client netclient.Client
	file   file.File
}

// NewReader wraps f for reading through client.
func NewReader(client netclient.Client, f file.File) *Reader {
	return &Reader{client: client, file: f}
}

// Size returns the file's total content length.
func (r *Reader) Size() int64 {
	return r.file.DataMap.Len()
}

// Read returns length bytes starting at pos. Fails with
// InvalidRangeSpecified if pos+length exceeds Size.
func (r *Reader) Read(pos, length int64) ([]byte, error) {
	const op = "helper.Reader.Read"
	if pos < 0 || length < 0 || pos+length > r.Size() {
		return nil, errors.E(op, errors.InvalidRangeSpecified)
	}
	data, err := datamap.ReadDataMap(r.client, r.file.DataMap, pos, length)
	if err != nil {
		return nil, errors.E(op, errors.NetworkError, err)
	}
	return data, nil
}
