// Package errors defines the error handling used throughout the NFS client
// library. It follows the same builder pattern across every layer: construct
// an *Error with E, inspecting the types of the arguments to decide which
// field they fill.
package errors

import (
	"bytes"
	"fmt"
	"strings"
)

// Error is the type that implements the error interface. Any field may be
// left at its zero value; Error's Error method prints only set fields.
type Error struct {
	// Name is the directory or file name the operation concerned, if any.
	Name string
	// Op is the operation being performed, usually the method name
	// (Create, Get, Update, ...).
	Op string
	// Kind classifies the error for programmatic handling.
	Kind Kind
	// Err is the underlying error that triggered this one, if any.
	Err error
}

var zeroErr Error

// Separator joins nested errors. Indented onto a new line by default; a
// server may flatten it to make errors fit on one line.
var Separator = ":\n\t"

// Kind classifies an error for callers that need to act differently
// depending on what went wrong (the error taxonomy from the design doc).
type Kind uint8

// Kinds of errors, exactly the taxonomy required of this layer.
const (
	Other                             Kind = iota // Unclassified.
	FileNotFound                                  // Name lookup failed in a listing's file set.
	DirectoryNotFound                             // Name lookup failed in a listing's sub-directory set.
	FileAlreadyExistsWithSameName                 // Create/copy/rename collision on a file name.
	DirectoryAlreadyExistsWithSameName            // Create collision on a directory name.
	FailedToUpdateFile                            // Invariant check during a file upsert failed.
	FailedToUpdateDirectory                       // Invariant check during a directory upsert failed.
	FileDoesNotMatch                              // update_content given a stale File snapshot.
	InvalidRangeSpecified                         // Reader range out of bounds.
	ParameterInvalid                              // Empty name, or empty-but-supplied user metadata.
	DestinationAndSourceAreSame                   // copy-blob attempted onto its own source.
	MetaDataMissingOrCorrupted                    // Required session/parent field missing on load.
	VersionNotFound                               // Requested historical version id unknown.
	NetworkError                                  // Wrapped lower-level client error.
	RandomnessUnavailable                         // The platform's CSPRNG failed.
	SerializationFailed                           // Encoding a listing/data-map failed.
	EncryptionFailed                              // Self-encryption or hybrid encryption failed.
	StructuredDataBuildFailed                     // Structured data exceeded its size cap.
)

func (k Kind) String() string {
	switch k {
	case Other:
		return "other error"
	case FileNotFound:
		return "file not found"
	case DirectoryNotFound:
		return "directory not found"
	case FileAlreadyExistsWithSameName:
		return "file already exists with same name"
	case DirectoryAlreadyExistsWithSameName:
		return "directory already exists with same name"
	case FailedToUpdateFile:
		return "failed to update file"
	case FailedToUpdateDirectory:
		return "failed to update directory"
	case FileDoesNotMatch:
		return "file does not match"
	case InvalidRangeSpecified:
		return "invalid range specified"
	case ParameterInvalid:
		return "parameter invalid"
	case DestinationAndSourceAreSame:
		return "destination and source are same"
	case MetaDataMissingOrCorrupted:
		return "metadata missing or corrupted"
	case VersionNotFound:
		return "version not found"
	case NetworkError:
		return "network error"
	case RandomnessUnavailable:
		return "randomness unavailable"
	case SerializationFailed:
		return "serialization failed"
	case EncryptionFailed:
		return "encryption failed"
	case StructuredDataBuildFailed:
		return "structured data build failed"
	}
	return "unknown error kind"
}

// E builds an error value from its arguments. The type of each argument
// determines its meaning:
//
//	string
//		The operation being performed, unless one was already set,
//		in which case it is treated as the Name.
//	Kind
//		The class of error.
//	error
//		The underlying error that triggered this one.
//
// If more than one argument of a given type is given, only the last is kept.
// If Kind is unset (Other) and the wrapped error is itself an *Error, the
// inner Kind is promoted to the outer error.
func E(args ...interface{}) error {
	if len(args) == 0 {
		return nil
	}
	e := &Error{}
	for _, arg := range args {
		switch arg := arg.(type) {
		case string:
			if e.Op == "" {
				e.Op = arg
			} else {
				e.Name = arg
			}
		case Kind:
			e.Kind = arg
		case *Error:
			cp := *arg
			e.Err = &cp
		case error:
			e.Err = arg
		default:
			return Errorf("errors.E: bad call with argument of type %T: %v", arg, arg)
		}
	}
	prev, ok := e.Err.(*Error)
	if !ok {
		return e
	}
	if prev.Name == e.Name {
		prev.Name = ""
	}
	if prev.Kind == e.Kind {
		prev.Kind = Other
	}
	if e.Kind == Other {
		e.Kind = prev.Kind
		prev.Kind = Other
	}
	return e
}

// pad appends str to the buffer only if it already holds data.
func pad(b *bytes.Buffer, str string) {
	if b.Len() == 0 {
		return
	}
	b.WriteString(str)
}

func (e *Error) Error() string {
	b := new(bytes.Buffer)
	if e.Name != "" {
		b.WriteString(e.Name)
	}
	if e.Op != "" {
		pad(b, ": ")
		b.WriteString(e.Op)
	}
	if e.Kind != Other {
		pad(b, ": ")
		b.WriteString(e.Kind.String())
	}
	if e.Err != nil {
		if prevErr, ok := e.Err.(*Error); ok {
			if *prevErr != zeroErr {
				pad(b, Separator)
				b.WriteString(e.Err.Error())
			}
		} else {
			pad(b, ": ")
			b.WriteString(e.Err.Error())
		}
	}
	if b.Len() == 0 {
		return "no error"
	}
	return b.String()
}

// Is reports whether err is an *Error of the given Kind, looking through
// any chain of wrapped *Error values.
func Is(kind Kind, err error) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	if e.Kind != Other {
		return e.Kind == kind
	}
	if e.Err != nil {
		return Is(kind, e.Err)
	}
	return false
}

// Str returns an error that formats as the given text. It is intended for
// use as the error-typed argument to E.
func Str(text string) error {
	return &errorString{text}
}

type errorString struct {
	s string
}

func (e *errorString) Error() string {
	return e.s
}

// Errorf creates an error according to a format specifier, for use as the
// error-typed argument to E.
func Errorf(format string, args ...interface{}) error {
	return &errorString{fmt.Sprintf(format, args...)}
}

// Names joins multiple names for use as the Str argument to E, for errors
// that need to report more than one name (e.g. copy_blob's source and
// destination).
func Names(names ...string) string {
	return strings.Join(names, " -> ")
}
