package storage

import (
	"github.com/maidsafe-archive/safe-nfs-go/errors"
	"github.com/maidsafe-archive/safe-nfs-go/netclient"
	"github.com/maidsafe-archive/safe-nfs-go/netid"
	"github.com/maidsafe-archive/safe-nfs-go/wire"
)

// VersionedStore implements netclient.VersionedStructuredData: the
// version-name chain for a (tag, id) pair is a marshaled list posted
// wholesale on every append, the way the teacher's dir/inprocess keeps one
// growing version slice per path behind its mutex.
type VersionedStore struct{}

var _ netclient.VersionedStructuredData = VersionedStore{}

// Create posts a brand-new versioned record whose single version is
// firstVersion.
func (VersionedStore) Create(client netclient.Client, firstVersion netid.NetworkName, tag netid.TagType, id netid.NetworkName) error {
	const op = "storage.VersionedStore.Create"
	payload := marshalVersionList([]netid.NetworkName{firstVersion})
	return postStructured(client, tag, id, payload, op)
}

// AppendVersion appends newVersion to the record's version list.
func (s VersionedStore) AppendVersion(client netclient.Client, id netid.NetworkName, tag netid.TagType, newVersion netid.NetworkName) error {
	const op = "storage.VersionedStore.AppendVersion"
	existing, err := s.GetAllVersions(client, id, tag)
	if err != nil {
		return errors.E(op, err)
	}
	payload := marshalVersionList(append(existing, newVersion))
	return postStructured(client, tag, id, payload, op)
}

// GetAllVersions returns the full version-name chain, oldest first.
func (VersionedStore) GetAllVersions(client netclient.Client, id netid.NetworkName, tag netid.TagType) ([]netid.NetworkName, error) {
	const op = "storage.VersionedStore.GetAllVersions"
	rg, err := client.Get(netclient.DataRequest{Kind: tag, Name: id, Data: netclient.Structured})
	if err != nil {
		return nil, errors.E(op, errors.NetworkError, err)
	}
	resp, err := rg.Wait()
	if err != nil {
		return nil, errors.E(op, errors.NetworkError, err)
	}
	versions, err := unmarshalVersionList(resp.Data)
	if err != nil {
		return nil, errors.E(op, errors.SerializationFailed, err)
	}
	return versions, nil
}

// UnversionedStore implements netclient.UnversionedStructuredData: the
// record's payload is fully replaced on every post, exactly the shape
// spec.md §4.3 describes for the unversioned branch.
type UnversionedStore struct{}

var _ netclient.UnversionedStructuredData = UnversionedStore{}

// Create posts a brand-new unversioned record holding payload.
func (UnversionedStore) Create(client netclient.Client, tag netid.TagType, id netid.NetworkName, payload []byte) error {
	return postStructured(client, tag, id, payload, "storage.UnversionedStore.Create")
}

// Replace posts payload over the record, replacing its previous payload
// wholesale. No structured-data version number is kept.
func (UnversionedStore) Replace(client netclient.Client, tag netid.TagType, id netid.NetworkName, payload []byte) error {
	return postStructured(client, tag, id, payload, "storage.UnversionedStore.Replace")
}

// GetData fetches the record's current payload.
func (UnversionedStore) GetData(client netclient.Client, tag netid.TagType, id netid.NetworkName) ([]byte, error) {
	const op = "storage.UnversionedStore.GetData"
	rg, err := client.Get(netclient.DataRequest{Kind: tag, Name: id, Data: netclient.Structured})
	if err != nil {
		return nil, errors.E(op, errors.NetworkError, err)
	}
	resp, err := rg.Wait()
	if err != nil {
		return nil, errors.E(op, errors.NetworkError, err)
	}
	return resp.Data, nil
}

func postStructured(client netclient.Client, tag netid.TagType, id netid.NetworkName, payload []byte, op string) error {
	rg, err := client.Post(netclient.Data{Kind: netclient.Structured, Tag: tag, Name: id, Bytes: payload})
	if err != nil {
		return errors.E(op, errors.StructuredDataBuildFailed, err)
	}
	if _, err := rg.Wait(); err != nil {
		return errors.E(op, errors.NetworkError, err)
	}
	return nil
}

func marshalVersionList(versions []netid.NetworkName) []byte {
	var acc wire.Accumulator
	acc.Uint64(uint64(len(versions)))
	for _, v := range versions {
		v.Encode(&acc)
	}
	buf, _ := acc.Result()
	return buf
}

func unmarshalVersionList(buf []byte) ([]netid.NetworkName, error) {
	c := wire.NewConsumer(buf)
	n := c.Uint64()
	versions := make([]netid.NetworkName, n)
	for i := range versions {
		versions[i] = netid.DecodeNetworkName(c)
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	return versions, nil
}
