package hybrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	plaintext := []byte("a serialized data-map goes here")
	nonce := []byte("directory-id-nonce")

	env, err := Encrypt(kp.Public, plaintext, nonce)
	require.NoError(t, err)

	got, err := Decrypt(kp, env, nonce)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestDecryptFailsWithWrongKey(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)
	other, err := GenerateKeyPair()
	require.NoError(t, err)

	nonce := []byte("n")
	env, err := Encrypt(kp.Public, []byte("secret"), nonce)
	require.NoError(t, err)

	_, err = Decrypt(other, env, nonce)
	assert.Error(t, err)
}

func TestDecryptFailsWithWrongNonce(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	env, err := Encrypt(kp.Public, []byte("secret"), []byte("nonce-a"))
	require.NoError(t, err)

	_, err = Decrypt(kp, env, []byte("nonce-b"))
	assert.Error(t, err)
}
