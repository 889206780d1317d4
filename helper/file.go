package helper

import (
	"bytes"

	"github.com/maidsafe-archive/safe-nfs-go/datamap"
	"github.com/maidsafe-archive/safe-nfs-go/directory"
	"github.com/maidsafe-archive/safe-nfs-go/errors"
	"github.com/maidsafe-archive/safe-nfs-go/file"
	"github.com/maidsafe-archive/safe-nfs-go/log"
	"github.com/maidsafe-archive/safe-nfs-go/netclient"
	"github.com/maidsafe-archive/safe-nfs-go/netid"
	"github.com/maidsafe-archive/safe-nfs-go/wire"
)

// Mode selects how update_content seeds the self-encryptor.
type Mode int

const (
	// Overwrite starts from an empty data map, discarding prior content.
	Overwrite Mode = iota
	// Modify carries the existing data map forward, permitting in-place
	// edits against the prior content.
	Modify
)

// FileHelper implements the file lifecycle operations: create,
// update_content (via a Writer), update_metadata, delete and get_versions.
type FileHelper struct {
	Client netclient.Client
	Dirs   *DirectoryHelper
}

// NewFileHelper wraps client and dirs in a FileHelper.
func NewFileHelper(client netclient.Client, dirs *DirectoryHelper) *FileHelper {
	return &FileHelper{Client: client, Dirs: dirs}
}

// Create builds a new empty file named name under parent and returns a
// Writer in Overwrite mode ready to receive content. Fails with
// FileAlreadyExistsWithSameName if parent already has a file with that
// name.
func (h *FileHelper) Create(name string, userMetadata []byte, parent *directory.Listing) (*Writer, error) {
	const op = "helper.FileHelper.Create"
	if _, ok := parent.FindFile(name); ok {
		return nil, errors.E(op, errors.FileAlreadyExistsWithSameName, errors.Str(name))
	}
	f, err := file.New(name, userMetadata)
	if err != nil {
		return nil, errors.E(op, err)
	}
	return &Writer{dirs: h.Dirs, parent: parent, file: f, enc: datamap.NewEncryptor(h.Client)}, nil
}

// UpdateContent returns a Writer over f's existing content, seeded per
// mode. f must byte-for-byte match the corresponding entry in parent, or
// this fails with FileDoesNotMatch.
func (h *FileHelper) UpdateContent(f file.File, mode Mode, parent *directory.Listing) (*Writer, error) {
	const op = "helper.FileHelper.UpdateContent"
	existing, ok := parent.FindFile(f.Metadata.Name)
	if ok {
		var want, got wire.Accumulator
		existing.Encode(&want)
		f.Encode(&got)
		wantBytes, errWant := want.Result()
		gotBytes, errGot := got.Result()
		ok = errWant == nil && errGot == nil && bytes.Equal(wantBytes, gotBytes)
	}
	if !ok {
		return nil, errors.E(op, errors.FileDoesNotMatch, errors.Str(f.Metadata.Name))
	}

	var enc *datamap.ChunkedEncryptor
	var err error
	if mode == Modify {
		enc, err = datamap.NewEncryptorFrom(h.Client, f.DataMap)
	} else {
		enc = datamap.NewEncryptor(h.Client)
	}
	if err != nil {
		return nil, errors.E(op, err)
	}
	return &Writer{dirs: h.Dirs, parent: parent, file: f, enc: enc}, nil
}

// UpdateMetadata renames and/or restamps f's user metadata, persisting the
// change into parent. Fails with FileAlreadyExistsWithSameName if the
// rename collides with another file already in parent.
func (h *FileHelper) UpdateMetadata(f file.File, parent *directory.Listing) (*directory.Listing, error) {
	const op = "helper.FileHelper.UpdateMetadata"
	if existing, ok := parent.FindFile(f.Metadata.Name); ok && existing.Metadata.ID != f.Metadata.ID {
		return nil, errors.E(op, errors.FileAlreadyExistsWithSameName, errors.Str(f.Metadata.Name))
	}
	f.Metadata.SetModifiedTime(netid.Now())
	parent.UpsertFile(f)
	grandParent, err := h.Dirs.Update(parent)
	if err != nil {
		return nil, errors.E(op, err)
	}
	return grandParent, nil
}

// Delete removes the file named name from parent and persists the change.
func (h *FileHelper) Delete(name string, parent *directory.Listing) (*directory.Listing, error) {
	const op = "helper.FileHelper.Delete"
	if err := parent.RemoveFile(name); err != nil {
		return nil, errors.E(op, err)
	}
	parent.Metadata.SetModifiedTime(netid.Now())
	grandParent, err := h.Dirs.Update(parent)
	if err != nil {
		return nil, errors.E(op, err)
	}
	log.Debug.Printf("helper: deleted file %q from %s", name, parent.Metadata.Key.ID)
	return grandParent, nil
}

// GetVersions walks parent's version history (oldest to newest) collecting
// each distinct-by-modified-time occurrence of a file named f.Metadata.Name.
// On an unversioned parent, the result has at most one element: f itself,
// if it is still present in parent's current listing.
func (h *FileHelper) GetVersions(f file.File, parent directory.Listing) ([]file.File, error) {
	const op = "helper.FileHelper.GetVersions"
	if !parent.Metadata.Key.Versioned {
		if current, ok := parent.FindFile(f.Metadata.Name); ok {
			return []file.File{current}, nil
		}
		return nil, nil
	}

	versions, err := h.Dirs.GetVersions(parent.Metadata.Key)
	if err != nil {
		return nil, errors.E(op, err)
	}

	var out []file.File
	var lastModified netid.Time
	haveLast := false
	for _, v := range versions {
		listing, err := h.Dirs.GetByVersion(parent.Metadata.Key, v)
		if err != nil {
			return nil, errors.E(op, err)
		}
		match, ok := listing.FindFile(f.Metadata.Name)
		if !ok {
			continue
		}
		if haveLast && match.Metadata.ModifiedTime == lastModified {
			continue
		}
		out = append(out, match)
		lastModified = match.Metadata.ModifiedTime
		haveLast = true
	}
	return out, nil
}
