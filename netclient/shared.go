package netclient

import (
	"sync"

	"github.com/maidsafe-archive/safe-nfs-go/netid"
)

// Shared wraps a Client so that every Put/Post/Get acquires a single mutex
// for the duration of dispatch only: the lock protects handing the request
// to the transport and obtaining the ResponseGetter, and is released before
// the caller waits for the response. This matches the spec's concurrency
// model (§5) and is grounded in the teacher's bind package, which guards
// dialing a service the same way: lock, dispatch, unlock, then let the
// (potentially slow) call proceed outside the lock.
type Shared struct {
	mu     sync.Mutex
	client Client
}

// NewShared wraps client with the dispatch mutex.
func NewShared(client Client) *Shared {
	return &Shared{client: client}
}

func (s *Shared) Put(data Data) (ResponseGetter, error) {
	s.mu.Lock()
	rg, err := s.client.Put(data)
	s.mu.Unlock()
	return rg, err
}

func (s *Shared) Post(data Data) (ResponseGetter, error) {
	s.mu.Lock()
	rg, err := s.client.Post(data)
	s.mu.Unlock()
	return rg, err
}

func (s *Shared) Get(req DataRequest) (ResponseGetter, error) {
	s.mu.Lock()
	rg, err := s.client.Get(req)
	s.mu.Unlock()
	return rg, err
}

func (s *Shared) GetPublicSigningKey() []byte    { return s.client.GetPublicSigningKey() }
func (s *Shared) GetSecretSigningKey() []byte    { return s.client.GetSecretSigningKey() }
func (s *Shared) GetPublicEncryptionKey() []byte { return s.client.GetPublicEncryptionKey() }
func (s *Shared) GetSecretEncryptionKey() []byte { return s.client.GetSecretEncryptionKey() }

func (s *Shared) HybridEncrypt(plaintext []byte, nonce [24]byte) ([]byte, error) {
	return s.client.HybridEncrypt(plaintext, nonce)
}

func (s *Shared) HybridDecrypt(ciphertext []byte, nonce [24]byte) ([]byte, error) {
	return s.client.HybridDecrypt(ciphertext, nonce)
}

func (s *Shared) UserRootDirectoryID() (id netid.NetworkName) { return s.client.UserRootDirectoryID() }

func (s *Shared) SetUserRootDirectoryID(id netid.NetworkName) {
	s.mu.Lock()
	s.client.SetUserRootDirectoryID(id)
	s.mu.Unlock()
}

func (s *Shared) ConfigurationRootDirectoryID() netid.NetworkName {
	return s.client.ConfigurationRootDirectoryID()
}

func (s *Shared) SetConfigurationRootDirectoryID(id netid.NetworkName) {
	s.mu.Lock()
	s.client.SetConfigurationRootDirectoryID(id)
	s.mu.Unlock()
}

var _ Client = (*Shared)(nil)
