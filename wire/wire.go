// Package wire is the hand-rolled binary codec this module uses wherever a
// value must cross the network boundary as a byte string: directory
// metadata, file metadata, directory listings, and version lists.
//
// It is grounded in the teacher's upspin/code.go accumulator/consumer pair
// (varint-length-prefixed fields, a running byte count that bails out past
// a sane size cap) rather than a generated protobuf codec, because no
// .proto/.pb.go files were retrieved alongside the teacher to ground a
// protobuf-based encoder on (see DESIGN.md).
package wire

import (
	"encoding/binary"

	"github.com/maidsafe-archive/safe-nfs-go/errors"
)

// maxSize caps a single marshaled value, mirroring upspin/code.go's
// maxInt32 guard against building an unreasonably large buffer.
const maxSize = 1<<31 - 1

// Accumulator builds a marshaled byte string field by field.
type Accumulator struct {
	buf      []byte
	tmp      [binary.MaxVarintLen64]byte
	overflow bool
}

func (a *Accumulator) grow(n int) bool {
	if a.overflow {
		return false
	}
	if uint64(len(a.buf)+n) > maxSize {
		a.overflow = true
		return false
	}
	return true
}

// Byte appends a single byte.
func (a *Accumulator) Byte(b byte) {
	if !a.grow(1) {
		return
	}
	a.buf = append(a.buf, b)
}

// Bool appends a one-byte boolean.
func (a *Accumulator) Bool(b bool) {
	if b {
		a.Byte(1)
	} else {
		a.Byte(0)
	}
}

// Bytes appends a varint length followed by data.
func (a *Accumulator) Bytes(data []byte) {
	n := binary.PutUvarint(a.tmp[:], uint64(len(data)))
	if !a.grow(n + len(data)) {
		return
	}
	a.buf = append(a.buf, a.tmp[:n]...)
	a.buf = append(a.buf, data...)
}

// String appends a varint length followed by the string's bytes.
func (a *Accumulator) String(s string) { a.Bytes([]byte(s)) }

// Uint64 appends a varint-encoded uint64.
func (a *Accumulator) Uint64(v uint64) {
	n := binary.PutUvarint(a.tmp[:], v)
	if !a.grow(n) {
		return
	}
	a.buf = append(a.buf, a.tmp[:n]...)
}

// Int64 appends a varint-encoded int64.
func (a *Accumulator) Int64(v int64) {
	n := binary.PutVarint(a.tmp[:], v)
	if !a.grow(n) {
		return
	}
	a.buf = append(a.buf, a.tmp[:n]...)
}

// Result returns the accumulated bytes, or StructuredDataBuildFailed if the
// size cap was exceeded.
func (a *Accumulator) Result() ([]byte, error) {
	if a.overflow {
		return nil, errors.E("wire.Accumulator.Result", errors.StructuredDataBuildFailed, errors.Str("marshaled value too large"))
	}
	return a.buf, nil
}

// Consumer unpacks a byte string written by an Accumulator, field by field,
// tracking the first error encountered so callers can chain calls and check
// once at the end.
type Consumer struct {
	buf []byte
	err error
}

// NewConsumer wraps buf for sequential field reads.
func NewConsumer(buf []byte) *Consumer { return &Consumer{buf: buf} }

// Err returns the first error the Consumer encountered, if any.
func (c *Consumer) Err() error { return c.err }

func (c *Consumer) fail() {
	if c.err == nil {
		c.err = errors.E(errors.SerializationFailed, errors.Str("truncated or malformed value"))
	}
}

// Byte unpacks a single byte.
func (c *Consumer) Byte() byte {
	if c.err != nil {
		return 0
	}
	if len(c.buf) == 0 {
		c.fail()
		return 0
	}
	b := c.buf[0]
	c.buf = c.buf[1:]
	return b
}

// Bool unpacks a one-byte boolean.
func (c *Consumer) Bool() bool { return c.Byte() != 0 }

// Bytes unpacks a varint-length-prefixed byte slice.
func (c *Consumer) Bytes() []byte {
	if c.err != nil {
		return nil
	}
	u, n := binary.Uvarint(c.buf)
	if n <= 0 || uint64(len(c.buf[n:])) < u || u > maxSize {
		c.fail()
		return nil
	}
	c.buf = c.buf[n:]
	data := c.buf[:u]
	c.buf = c.buf[u:]
	return data
}

// String unpacks a varint-length-prefixed string.
func (c *Consumer) String() string { return string(c.Bytes()) }

// Uint64 unpacks a varint-encoded uint64.
func (c *Consumer) Uint64() uint64 {
	if c.err != nil {
		return 0
	}
	v, n := binary.Uvarint(c.buf)
	if n <= 0 {
		c.fail()
		return 0
	}
	c.buf = c.buf[n:]
	return v
}

// Int64 unpacks a varint-encoded int64.
func (c *Consumer) Int64() int64 {
	if c.err != nil {
		return 0
	}
	v, n := binary.Varint(c.buf)
	if n <= 0 {
		c.fail()
		return 0
	}
	c.buf = c.buf[n:]
	return v
}

// Done reports whether the buffer is fully consumed and no error occurred;
// callers that expect no trailing bytes should check it after the last field.
func (c *Consumer) Done() bool { return c.err == nil && len(c.buf) == 0 }
