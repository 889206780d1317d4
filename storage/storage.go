// Package storage implements the Storage Codec (spec.md §4.3): the
// translation between an in-memory directory.Listing and the structured +
// immutable data that represents it on the network, branching on the
// directory's versioned/unversioned and private/public axes.
//
// Grounded in the teacher's store/inprocess (content put/get) and a
// from-scratch versioned-record keeper modeled on how upspin's dir/inprocess
// keeps a per-path version chain, since no single teacher file covers both
// halves of this codec.
package storage

import (
	"github.com/maidsafe-archive/safe-nfs-go/directory"
	"github.com/maidsafe-archive/safe-nfs-go/errors"
	"github.com/maidsafe-archive/safe-nfs-go/netclient"
	"github.com/maidsafe-archive/safe-nfs-go/netid"
)

var (
	versioned   netclient.VersionedStructuredData   = VersionedStore{}
	unversioned netclient.UnversionedStructuredData = UnversionedStore{}
)

// Create persists a brand-new listing: self-encrypt+encode via
// directory.Encrypt, then branch on Versioned to either put the result as
// an immutable block and create a versioned structured-data record (v=0),
// or create an unversioned structured-data record directly holding the
// result.
func Create(client netclient.Client, l directory.Listing) error {
	const op = "storage.Create"
	payload, err := directory.Encrypt(client, l)
	if err != nil {
		return errors.E(op, err)
	}
	key := l.Metadata.Key
	if key.Versioned {
		version, err := putImmutable(client, payload)
		if err != nil {
			return errors.E(op, errors.NetworkError, err)
		}
		if err := versioned.Create(client, version, key.Tag, key.ID); err != nil {
			return errors.E(op, err)
		}
		return nil
	}
	if err := unversioned.Create(client, key.Tag, key.ID, payload); err != nil {
		return errors.E(op, err)
	}
	return nil
}

// Update re-persists an existing listing: versioned directories append a
// new version name to the chain; unversioned directories replace the
// record's payload wholesale.
func Update(client netclient.Client, l directory.Listing) error {
	const op = "storage.Update"
	payload, err := directory.Encrypt(client, l)
	if err != nil {
		return errors.E(op, err)
	}
	key := l.Metadata.Key
	if key.Versioned {
		version, err := putImmutable(client, payload)
		if err != nil {
			return errors.E(op, errors.NetworkError, err)
		}
		if err := versioned.AppendVersion(client, key.ID, key.Tag, version); err != nil {
			return errors.E(op, err)
		}
		return nil
	}
	if err := unversioned.Replace(client, key.Tag, key.ID, payload); err != nil {
		return errors.E(op, err)
	}
	return nil
}

// Get fetches and decodes a directory's current listing.
func Get(client netclient.Client, key netid.DirectoryKey) (directory.Listing, error) {
	const op = "storage.Get"
	if key.Versioned {
		versions, err := versioned.GetAllVersions(client, key.ID, key.Tag)
		if err != nil {
			return directory.Listing{}, errors.E(op, err)
		}
		if len(versions) == 0 {
			return directory.Listing{}, errors.E(op, errors.VersionNotFound)
		}
		return getVersion(client, key, versions[len(versions)-1])
	}
	payload, err := unversioned.GetData(client, key.Tag, key.ID)
	if err != nil {
		return directory.Listing{}, errors.E(op, err)
	}
	return directory.Decrypt(client, key.ID, key.Access, payload)
}

// GetVersions returns the full version-name chain for a versioned
// directory, oldest first. Only meaningful when key.Versioned.
func GetVersions(client netclient.Client, key netid.DirectoryKey) ([]netid.NetworkName, error) {
	const op = "storage.GetVersions"
	if !key.Versioned {
		return nil, errors.E(op, errors.ParameterInvalid, errors.Str("directory is not versioned"))
	}
	versions, err := versioned.GetAllVersions(client, key.ID, key.Tag)
	if err != nil {
		return nil, errors.E(op, err)
	}
	return versions, nil
}

// GetByVersion fetches and decodes a specific historical version of a
// versioned directory.
func GetByVersion(client netclient.Client, key netid.DirectoryKey, version netid.NetworkName) (directory.Listing, error) {
	const op = "storage.GetByVersion"
	if !key.Versioned {
		return directory.Listing{}, errors.E(op, errors.ParameterInvalid, errors.Str("directory is not versioned"))
	}
	return getVersion(client, key, version)
}

func getVersion(client netclient.Client, key netid.DirectoryKey, version netid.NetworkName) (directory.Listing, error) {
	const op = "storage.getVersion"
	payload, err := getImmutable(client, version)
	if err != nil {
		return directory.Listing{}, errors.E(op, errors.NetworkError, err)
	}
	return directory.Decrypt(client, key.ID, key.Access, payload)
}

func putImmutable(client netclient.Client, data []byte) (netid.NetworkName, error) {
	rg, err := client.Put(netclient.Data{Kind: netclient.Immutable, Bytes: data})
	if err != nil {
		return netid.NetworkName{}, err
	}
	resp, err := rg.Wait()
	if err != nil {
		return netid.NetworkName{}, err
	}
	return resp.Name, nil
}

func getImmutable(client netclient.Client, name netid.NetworkName) ([]byte, error) {
	rg, err := client.Get(netclient.DataRequest{Name: name, Data: netclient.Immutable})
	if err != nil {
		return nil, err
	}
	resp, err := rg.Wait()
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}
