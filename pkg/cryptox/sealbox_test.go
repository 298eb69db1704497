package cryptox

import (
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestSealBoxRoundTrip(t *testing.T) {
	t.Parallel()

	box, err := NewSealBox(testKey(t))
	require.NoError(t, err)

	plaintext := []byte("bearer-token-value")
	sealed, err := box.Seal(plaintext)
	require.NoError(t, err)
	require.NotEqual(t, plaintext, sealed)

	opened, err := box.Open(sealed)
	require.NoError(t, err)
	require.Equal(t, plaintext, opened)

	// Fresh nonce per seal: two seals of the same value differ.
	sealed2, err := box.Seal(plaintext)
	require.NoError(t, err)
	require.NotEqual(t, sealed, sealed2)
}

func TestSealBoxRejectsBadInput(t *testing.T) {
	t.Parallel()

	_, err := NewSealBox([]byte("short"))
	require.Error(t, err)

	box, err := NewSealBox(testKey(t))
	require.NoError(t, err)

	_, err = box.Open([]byte("too short"))
	require.ErrorIs(t, err, ErrInvalidSealedData)

	// Tampered ciphertext fails authentication.
	sealed, err := box.Seal([]byte("secret"))
	require.NoError(t, err)
	sealed[len(sealed)-1] ^= 0xff
	_, err = box.Open(sealed)
	require.Error(t, err)

	// A different key cannot open the blob.
	other, err := NewSealBox(testKey(t))
	require.NoError(t, err)
	sealed, err = box.Seal([]byte("secret"))
	require.NoError(t, err)
	_, err = other.Open(sealed)
	require.Error(t, err)
}

func TestLoadOrCreateKey(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cache.key")

	key, err := LoadOrCreateKey(path)
	require.NoError(t, err)
	require.Len(t, key, KeySize)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// Second load returns the same key.
	again, err := LoadOrCreateKey(path)
	require.NoError(t, err)
	require.Equal(t, key, again)

	// A truncated key file is an error, not a silent regeneration.
	require.NoError(t, os.WriteFile(path, []byte("short"), 0o600))
	_, err = LoadOrCreateKey(path)
	require.Error(t, err)
}
