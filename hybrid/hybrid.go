// Package hybrid implements the asymmetric+symmetric envelope encryption
// used to wrap a private directory's serialized data-map before it is placed
// on the network; versioned and unversioned directories both wrap the
// data-map, never the serialized listing itself.
//
// The scheme follows the teacher's pack/ee packer: an ephemeral ECDH
// exchange against the owner's public key produces a shared point, which is
// stretched through HKDF-SHA256 into an AES-256-GCM key. Unlike pack/ee,
// directories here have a single owner (no reader list), so only one
// envelope is produced per call.
package hybrid

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	"math/big"

	"golang.org/x/crypto/hkdf"

	"github.com/maidsafe-archive/safe-nfs-go/errors"
)

const (
	aesKeyLen = 32
	nonceSize = 12
)

// Curve is the elliptic curve used for the owner's hybrid keypair.
var Curve = elliptic.P256()

// KeyPair is the owner's hybrid encryption keypair.
type KeyPair struct {
	Public  ecdsa.PublicKey
	Private []byte // scalar, big-endian
}

// GenerateKeyPair creates a fresh hybrid keypair on Curve.
func GenerateKeyPair() (*KeyPair, error) {
	const op = "hybrid.GenerateKeyPair"
	priv, err := ecdsa.GenerateKey(Curve, rand.Reader)
	if err != nil {
		return nil, errors.E(op, errors.RandomnessUnavailable, err)
	}
	return &KeyPair{Public: priv.PublicKey, Private: priv.D.Bytes()}, nil
}

// Envelope is the wire form of one hybrid-wrapped payload: an ephemeral
// public key, the AES-GCM nonce (derived from the directory's nonce seed by
// deriveNonce), and the AES-GCM ciphertext of the wrapped payload.
type Envelope struct {
	EphemeralX, EphemeralY []byte
	Nonce                  [nonceSize]byte
	Ciphertext             []byte
}

// Encrypt wraps plaintext for pub, deriving the AES-256-GCM key from an
// ephemeral ECDH exchange stretched through HKDF. The AEAD nonce is derived
// deterministically from dirNonce (directory.GenerateNonce's output), not
// drawn at random: stored envelopes must be re-derivable from the directory
// id alone for interoperability, so the nonce cannot depend on anything
// generated fresh per call.
func Encrypt(pub ecdsa.PublicKey, plaintext []byte, dirNonce []byte) (*Envelope, error) {
	const op = "hybrid.Encrypt"
	if !pub.Curve.IsOnCurve(pub.X, pub.Y) {
		return nil, errors.E(op, errors.EncryptionFailed, errors.Str("public key not on curve"))
	}
	ephemeral, err := ecdsa.GenerateKey(pub.Curve, rand.Reader)
	if err != nil {
		return nil, errors.E(op, errors.RandomnessUnavailable, err)
	}
	sx, sy := pub.Curve.ScalarMult(pub.X, pub.Y, ephemeral.D.Bytes())
	shared := elliptic.Marshal(pub.Curve, sx, sy)

	nonce := deriveNonce(dirNonce)

	key, err := deriveKey(shared, dirNonce)
	if err != nil {
		return nil, errors.E(op, errors.EncryptionFailed, err)
	}
	aead, err := newAEAD(key)
	if err != nil {
		return nil, errors.E(op, errors.EncryptionFailed, err)
	}
	ciphertext := aead.Seal(nil, nonce[:], plaintext, nil)

	return &Envelope{
		EphemeralX: ephemeral.X.Bytes(),
		EphemeralY: ephemeral.Y.Bytes(),
		Nonce:      nonce,
		Ciphertext: ciphertext,
	}, nil
}

// deriveNonce deterministically derives the AEAD nonce from the directory's
// nonce seed, so a stored envelope's nonce is always recoverable from the
// directory id alone rather than from call-time randomness.
func deriveNonce(dirNonce []byte) [nonceSize]byte {
	sum := sha256.Sum256(append([]byte("safe-nfs-hybrid-nonce:"), dirNonce...))
	var nonce [nonceSize]byte
	copy(nonce[:], sum[:nonceSize])
	return nonce
}

// Decrypt unwraps env using the owner's private scalar, recovering the
// plaintext Encrypt was given.
func Decrypt(kp *KeyPair, env *Envelope, dirNonce []byte) ([]byte, error) {
	const op = "hybrid.Decrypt"
	ex := new(big.Int).SetBytes(env.EphemeralX)
	ey := new(big.Int).SetBytes(env.EphemeralY)
	if !Curve.IsOnCurve(ex, ey) {
		return nil, errors.E(op, errors.EncryptionFailed, errors.Str("ephemeral key not on curve"))
	}
	sx, sy := Curve.ScalarMult(ex, ey, kp.Private)
	shared := elliptic.Marshal(Curve, sx, sy)

	if env.Nonce != deriveNonce(dirNonce) {
		return nil, errors.E(op, errors.EncryptionFailed, errors.Str("nonce does not match directory id"))
	}

	key, err := deriveKey(shared, dirNonce)
	if err != nil {
		return nil, errors.E(op, errors.EncryptionFailed, err)
	}
	aead, err := newAEAD(key)
	if err != nil {
		return nil, errors.E(op, errors.EncryptionFailed, err)
	}
	plaintext, err := aead.Open(nil, env.Nonce[:], env.Ciphertext, nil)
	if err != nil {
		return nil, errors.E(op, errors.EncryptionFailed, errors.Str("does not verify"))
	}
	return plaintext, nil
}

func deriveKey(shared, dirNonce []byte) ([]byte, error) {
	info := []byte(fmt.Sprintf("safe-nfs-hybrid:%x", dirNonce))
	kdf := hkdf.New(sha256.New, shared, nil, info)
	key := make([]byte, aesKeyLen)
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, err
	}
	return key, nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Marshal encodes the envelope as a varint-length-prefixed byte string, in
// the style of the teacher's upspin/code.go accumulator.
func (env *Envelope) Marshal() []byte {
	var buf []byte
	buf = appendBytes(buf, env.EphemeralX)
	buf = appendBytes(buf, env.EphemeralY)
	buf = appendBytes(buf, env.Nonce[:])
	buf = appendBytes(buf, env.Ciphertext)
	return buf
}

// UnmarshalEnvelope is the inverse of Envelope.Marshal.
func UnmarshalEnvelope(b []byte) (*Envelope, error) {
	const op = "hybrid.UnmarshalEnvelope"
	env := &Envelope{}
	var ex, ey, nonce []byte
	var ok bool
	if ex, b, ok = takeBytes(b); !ok {
		return nil, errors.E(op, errors.SerializationFailed)
	}
	if ey, b, ok = takeBytes(b); !ok {
		return nil, errors.E(op, errors.SerializationFailed)
	}
	if nonce, b, ok = takeBytes(b); !ok {
		return nil, errors.E(op, errors.SerializationFailed)
	}
	if env.Ciphertext, _, ok = takeBytes(b); !ok {
		return nil, errors.E(op, errors.SerializationFailed)
	}
	if len(nonce) != nonceSize {
		return nil, errors.E(op, errors.SerializationFailed, errors.Str("bad nonce length"))
	}
	env.EphemeralX, env.EphemeralY = ex, ey
	copy(env.Nonce[:], nonce)
	return env, nil
}

func appendBytes(buf, data []byte) []byte {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], uint64(len(data)))
	buf = append(buf, tmp[:n]...)
	return append(buf, data...)
}

func takeBytes(buf []byte) (data, rest []byte, ok bool) {
	u, n := binary.Uvarint(buf)
	if n <= 0 || uint64(len(buf[n:])) < u {
		return nil, nil, false
	}
	return buf[n : n+int(u)], buf[n+int(u):], true
}
