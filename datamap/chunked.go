package datamap

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"

	"golang.org/x/sync/errgroup"

	"github.com/maidsafe-archive/safe-nfs-go/errors"
	"github.com/maidsafe-archive/safe-nfs-go/netclient"
)

// ChunkedEncryptor is the reference SelfEncryptor. It buffers plaintext in
// memory (as the teacher's client/file.File does under the assumption that
// content must be read/written atomically once encrypted) and fans out
// chunk encryption and network Puts concurrently on Close.
type ChunkedEncryptor struct {
	client netclient.Client
	buf    []byte
}

var _ SelfEncryptor = (*ChunkedEncryptor)(nil)

// NewEncryptor creates an empty encryptor backed by client.
func NewEncryptor(client netclient.Client) *ChunkedEncryptor {
	return &ChunkedEncryptor{client: client}
}

// NewEncryptorFrom seeds the encryptor with the plaintext recovered from an
// existing DataMap, supporting the Modify write mode (in-place edits carry
// the prior content forward).
func NewEncryptorFrom(client netclient.Client, m DataMap) (*ChunkedEncryptor, error) {
	e := &ChunkedEncryptor{client: client}
	if m.Empty() {
		return e, nil
	}
	data, err := readChunks(client, m, 0, m.Len())
	if err != nil {
		return nil, err
	}
	e.buf = data
	return e, nil
}

func (e *ChunkedEncryptor) Write(data []byte, offset int64) error {
	const op = "datamap.ChunkedEncryptor.Write"
	if offset < 0 {
		return errors.E(op, errors.ParameterInvalid, errors.Str("negative offset"))
	}
	end := offset + int64(len(data))
	if end > int64(cap(e.buf)) {
		grown := make([]byte, len(e.buf), end)
		copy(grown, e.buf)
		e.buf = grown
	}
	if end > int64(len(e.buf)) {
		e.buf = e.buf[:end]
	}
	copy(e.buf[offset:], data)
	return nil
}

func (e *ChunkedEncryptor) Len() int64 {
	return int64(len(e.buf))
}

func (e *ChunkedEncryptor) Read(offset, length int64) ([]byte, error) {
	const op = "datamap.ChunkedEncryptor.Read"
	if offset < 0 || length < 0 || offset+length > int64(len(e.buf)) {
		return nil, errors.E(op, errors.InvalidRangeSpecified)
	}
	out := make([]byte, length)
	copy(out, e.buf[offset:offset+length])
	return out, nil
}

// Close splits the buffer into fixed-size chunks, encrypts and uploads each
// one concurrently (one errgroup goroutine per chunk, with no limit on how
// many run at once), and returns the resulting DataMap.
func (e *ChunkedEncryptor) Close() (DataMap, error) {
	const op = "datamap.ChunkedEncryptor.Close"
	if len(e.buf) == 0 {
		return DataMap{}, nil
	}

	n := (len(e.buf) + ChunkSize - 1) / ChunkSize
	chunks := make([]Chunk, n)

	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		start := i * ChunkSize
		end := start + ChunkSize
		if end > len(e.buf) {
			end = len(e.buf)
		}
		plaintext := e.buf[start:end]
		g.Go(func() error {
			chunk, err := encryptAndPut(e.client, plaintext, int64(start))
			if err != nil {
				return err
			}
			chunks[i] = chunk
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return DataMap{}, errors.E(op, errors.EncryptionFailed, err)
	}
	return DataMap{Chunks: chunks}, nil
}

func encryptAndPut(client netclient.Client, plaintext []byte, offset int64) (Chunk, error) {
	key := sha256.Sum256(plaintext)
	aead, err := newAEAD(key[:])
	if err != nil {
		return Chunk{}, err
	}
	nonce := key[:aead.NonceSize()]
	ciphertext := aead.Seal(nil, nonce, plaintext, nil)

	rg, err := client.Put(netclient.Data{Kind: netclient.Immutable, Bytes: ciphertext})
	if err != nil {
		return Chunk{}, err
	}
	resp, err := rg.Wait()
	if err != nil {
		return Chunk{}, err
	}
	return Chunk{
		Location: resp.Name,
		Key:      key,
		Offset:   offset,
		Size:     int64(len(plaintext)),
	}, nil
}

func readChunks(client netclient.Client, m DataMap, offset, length int64) ([]byte, error) {
	const op = "datamap.readChunks"
	if offset < 0 || length < 0 || offset+length > m.Len() {
		return nil, errors.E(op, errors.InvalidRangeSpecified)
	}
	out := make([]byte, length)

	var g errgroup.Group
	for _, c := range m.Chunks {
		c := c
		if c.Offset+c.Size <= offset || c.Offset >= offset+length {
			continue
		}
		g.Go(func() error {
			plaintext, err := getAndDecrypt(client, c)
			if err != nil {
				return err
			}
			srcStart := int64(0)
			dstStart := c.Offset - offset
			if dstStart < 0 {
				srcStart = -dstStart
				dstStart = 0
			}
			copy(out[dstStart:], plaintext[srcStart:])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.E(op, errors.NetworkError, err)
	}
	return out, nil
}

func getAndDecrypt(client netclient.Client, c Chunk) ([]byte, error) {
	rg, err := client.Get(netclient.DataRequest{Name: c.Location, Data: netclient.Immutable})
	if err != nil {
		return nil, err
	}
	resp, err := rg.Wait()
	if err != nil {
		return nil, err
	}
	aead, err := newAEAD(c.Key[:])
	if err != nil {
		return nil, err
	}
	nonce := c.Key[:aead.NonceSize()]
	plaintext, err := aead.Open(nil, nonce, resp.Data, nil)
	if err != nil {
		return nil, errors.E("datamap.getAndDecrypt", errors.EncryptionFailed, errors.Str("does not verify"))
	}
	return plaintext, nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Read against a finalized DataMap (used by helper.Reader, which holds a
// DataMap plus a client rather than a live encryptor).
func ReadDataMap(client netclient.Client, m DataMap, offset, length int64) ([]byte, error) {
	return readChunks(client, m, offset, length)
}
