package helper

import (
	"github.com/maidsafe-archive/safe-nfs-go/datamap"
	"github.com/maidsafe-archive/safe-nfs-go/directory"
	"github.com/maidsafe-archive/safe-nfs-go/errors"
	"github.com/maidsafe-archive/safe-nfs-go/file"
	"github.com/maidsafe-archive/safe-nfs-go/netid"
)

// Writer streams content into a file's self-encryptor at arbitrary
// offsets and, on Close, finalizes the data map and persists the owning
// directory. A Writer is one-shot: Close consumes it.
type Writer struct {
	dirs   *DirectoryHelper
	parent *directory.Listing
	file   file.File
	enc    *datamap.ChunkedEncryptor
	closed bool
}

// Write stores data at the given logical offset, extending the file's
// logical length if necessary.
func (w *Writer) Write(data []byte, position int64) error {
	const op = "helper.Writer.Write"
	if w.closed {
		return errors.E(op, errors.ParameterInvalid, errors.Str("writer already closed"))
	}
	if err := w.enc.Write(data, position); err != nil {
		return errors.E(op, err)
	}
	return nil
}

// Close finalizes the self-encryptor, stamps the file's size and
// modified_time, upserts it into the parent listing, and persists the
// parent via DirectoryHelper.Update. It returns the updated parent and,
// if the parent itself has a parent, the grandparent snapshot.
func (w *Writer) Close() (directory.Listing, *directory.Listing, error) {
	const op = "helper.Writer.Close"
	if w.closed {
		return directory.Listing{}, nil, errors.E(op, errors.ParameterInvalid, errors.Str("writer already closed"))
	}
	w.closed = true

	dm, err := w.enc.Close()
	if err != nil {
		return directory.Listing{}, nil, errors.E(op, err)
	}
	w.file.DataMap = dm
	w.file.Metadata.SetModifiedTime(netid.Now())
	w.file.Metadata.SetSize(uint64(dm.Len()))

	w.parent.UpsertFile(w.file)
	grandParent, err := w.dirs.Update(w.parent)
	if err != nil {
		return directory.Listing{}, nil, errors.E(op, err)
	}
	return *w.parent, grandParent, nil
}
