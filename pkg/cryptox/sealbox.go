package cryptox

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the required seal key length in bytes.
const KeySize = chacha20poly1305.KeySize

// ErrInvalidSealedData reports a sealed blob too short to contain a nonce.
var ErrInvalidSealedData = errors.New("cryptox: invalid sealed data")

// SealBox provides authenticated at-rest encryption for small secrets using
// XChaCha20-Poly1305. The sealed format is [24-byte nonce][ciphertext+tag],
// with a random nonce per seal.
type SealBox struct {
	key []byte
}

// NewSealBox creates a SealBox from a 32-byte key.
func NewSealBox(key []byte) (*SealBox, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("cryptox: key must be %d bytes, got %d", KeySize, len(key))
	}
	k := make([]byte, KeySize)
	copy(k, key)
	return &SealBox{key: k}, nil
}

// Seal encrypts plaintext with a fresh random nonce.
func (b *SealBox) Seal(plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(b.key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("cryptox: failed to generate nonce: %w", err)
	}

	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open reverses Seal.
func (b *SealBox) Open(sealed []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(b.key)
	if err != nil {
		return nil, err
	}

	if len(sealed) < chacha20poly1305.NonceSizeX {
		return nil, ErrInvalidSealedData
	}
	nonce, ciphertext := sealed[:chacha20poly1305.NonceSizeX], sealed[chacha20poly1305.NonceSizeX:]

	return aead.Open(nil, nonce, ciphertext, nil)
}

// LoadOrCreateKey reads a raw 32-byte key from path, generating and writing
// one with 0600 permissions on first use.
func LoadOrCreateKey(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		if len(data) != KeySize {
			return nil, fmt.Errorf("cryptox: key file %s must hold %d bytes, got %d", path, KeySize, len(data))
		}
		return data, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("cryptox: failed to read key file: %w", err)
	}

	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("cryptox: failed to generate key: %w", err)
	}
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, fmt.Errorf("cryptox: failed to write key file: %w", err)
	}
	return key, nil
}
