// Package memnet is an in-memory double for netclient.Client, store/server
// semantics and the versioned/unversioned structured-data operations. It is
// test/demo scaffolding only: the deployed core speaks to a real SAFE
// Network client through the netclient interfaces, never to this package.
//
// Grounded in the teacher's store/inprocess (content-addressed blob map
// behind a mutex) and dir/inprocess (one shared in-memory database per
// client instance that several "dialed" clients can be built against, so
// tests can open the same network from a second, independent Client value).
package memnet

import (
	"crypto/sha256"
	"sync"

	"github.com/maidsafe-archive/safe-nfs-go/errors"
	"github.com/maidsafe-archive/safe-nfs-go/hybrid"
	"github.com/maidsafe-archive/safe-nfs-go/netclient"
	"github.com/maidsafe-archive/safe-nfs-go/netid"
)

// Network is the shared in-memory backing store: every Client dialed
// against the same Network sees the same blobs and structured-data
// records, the way two upspin dials against dir/inprocess or
// store/inprocess share one database.
type Network struct {
	mu         sync.Mutex
	immutable  map[netid.NetworkName][]byte
	structured map[structuredKey][]byte
}

type structuredKey struct {
	tag netid.TagType
	id  netid.NetworkName
}

// NewNetwork creates an empty shared backing store.
func NewNetwork() *Network {
	return &Network{
		immutable:  make(map[netid.NetworkName][]byte),
		structured: make(map[structuredKey][]byte),
	}
}

// Client is one session's view of a Network: its own hybrid keypair and
// root-id bookkeeping, sharing the Network's blob and structured-data maps
// with every other Client dialed against it.
type Client struct {
	net *Network
	kp  *hybrid.KeyPair

	mu           sync.Mutex
	userRootID   netid.NetworkName
	configRootID netid.NetworkName
}

var _ netclient.Client = (*Client)(nil)

// NewClient creates a fresh session against net, with its own hybrid
// keypair (as if freshly bootstrapped, per spec.md §6's "session/account
// creation" being an out-of-scope external collaborator — this generates
// one inline since that collaborator is not implemented here).
func NewClient(net *Network) (*Client, error) {
	kp, err := hybrid.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	return &Client{net: net, kp: kp}, nil
}

// responseGetter is an already-resolved netclient.ResponseGetter: this
// in-memory double has no real network latency to decouple dispatch from
// waiting, so Wait just returns the stored response.
type responseGetter struct {
	resp netclient.Response
	err  error
}

func (g responseGetter) Wait() (netclient.Response, error) { return g.resp, g.err }

func refOf(data []byte) netid.NetworkName {
	sum := sha256.Sum256(data)
	var n netid.NetworkName
	copy(n[:], sum[:])
	return n
}

func (c *Client) Put(data netclient.Data) (netclient.ResponseGetter, error) {
	const op = "memnet.Client.Put"
	if data.Kind != netclient.Immutable {
		return nil, errors.E(op, errors.ParameterInvalid, errors.Str("Put only accepts immutable data"))
	}
	ref := refOf(data.Bytes)
	c.net.mu.Lock()
	c.net.immutable[ref] = append([]byte(nil), data.Bytes...)
	c.net.mu.Unlock()
	return responseGetter{resp: netclient.Response{Name: ref}}, nil
}

func (c *Client) Post(data netclient.Data) (netclient.ResponseGetter, error) {
	const op = "memnet.Client.Post"
	if data.Kind != netclient.Structured {
		return nil, errors.E(op, errors.ParameterInvalid, errors.Str("Post only accepts structured data"))
	}
	key := structuredKey{tag: data.Tag, id: data.Name}
	c.net.mu.Lock()
	c.net.structured[key] = append([]byte(nil), data.Bytes...)
	c.net.mu.Unlock()
	return responseGetter{resp: netclient.Response{Name: data.Name}}, nil
}

func (c *Client) Get(req netclient.DataRequest) (netclient.ResponseGetter, error) {
	const op = "memnet.Client.Get"
	if req.Data == netclient.Immutable {
		c.net.mu.Lock()
		data, ok := c.net.immutable[req.Name]
		c.net.mu.Unlock()
		if !ok {
			return nil, errors.E(op, errors.NetworkError, errors.Str("no such immutable block"))
		}
		return responseGetter{resp: netclient.Response{Data: append([]byte(nil), data...)}}, nil
	}
	key := structuredKey{tag: req.Kind, id: req.Name}
	c.net.mu.Lock()
	data, ok := c.net.structured[key]
	c.net.mu.Unlock()
	if !ok {
		return nil, errors.E(op, errors.NetworkError, errors.Str("no such structured data"))
	}
	return responseGetter{resp: netclient.Response{Data: append([]byte(nil), data...)}}, nil
}

func (c *Client) GetPublicSigningKey() []byte    { return nil }
func (c *Client) GetSecretSigningKey() []byte    { return nil }
func (c *Client) GetPublicEncryptionKey() []byte { return c.kp.Public.X.Bytes() }
func (c *Client) GetSecretEncryptionKey() []byte { return c.kp.Private }

// KeyPair exposes the session's hybrid keypair, for helpers that need the
// public key to encrypt and the private key to decrypt directly (mirroring
// how a real client would expose GetPublicEncryptionKey/GetSecretEncryptionKey
// but keeping the typed ecdsa.PublicKey around rather than a flattened byte
// form, since hybrid.Encrypt/Decrypt need the curve point, not just X).
func (c *Client) KeyPair() *hybrid.KeyPair { return c.kp }

func (c *Client) HybridEncrypt(plaintext []byte, nonce [24]byte) ([]byte, error) {
	env, err := hybrid.Encrypt(c.kp.Public, plaintext, nonce[:])
	if err != nil {
		return nil, err
	}
	return env.Marshal(), nil
}

func (c *Client) HybridDecrypt(ciphertext []byte, nonce [24]byte) ([]byte, error) {
	env, err := hybrid.UnmarshalEnvelope(ciphertext)
	if err != nil {
		return nil, err
	}
	return hybrid.Decrypt(c.kp, env, nonce[:])
}

func (c *Client) UserRootDirectoryID() netid.NetworkName {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userRootID
}

func (c *Client) SetUserRootDirectoryID(id netid.NetworkName) {
	c.mu.Lock()
	c.userRootID = id
	c.mu.Unlock()
}

func (c *Client) ConfigurationRootDirectoryID() netid.NetworkName {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.configRootID
}

func (c *Client) SetConfigurationRootDirectoryID(id netid.NetworkName) {
	c.mu.Lock()
	c.configRootID = id
	c.mu.Unlock()
}
