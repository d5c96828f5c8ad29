// Package cryptox seals the persisted access token when the client is
// configured with a local key file. The sealed form is
// "v1." + base64(nonce || AES-GCM ciphertext).
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/dmitrijs2005/admissions/internal/common"
	"golang.org/x/crypto/argon2"
)

const sealedPrefix = "v1."

// ErrNotSealed is returned by Open for values without the sealed prefix.
var ErrNotSealed = errors.New("value is not sealed")

// DeriveKey stretches a local secret into a 32-byte AES key.
func DeriveKey(secret, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, 32)
}

// Sealer encrypts and decrypts short strings with AES-GCM.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer builds a Sealer for a 16, 24 or 32 byte key.
func NewSealer(key []byte) (*Sealer, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Sealer{aead: aead}, nil
}

// Seal encrypts plaintext under a fresh random nonce.
func (s *Sealer) Seal(plaintext string) string {
	nonce := common.GenerateRandByteArray(s.aead.NonceSize())
	out := s.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return sealedPrefix + base64.RawURLEncoding.EncodeToString(out)
}

// Open reverses Seal. Tampered or foreign values fail with
// common.ErrInvalidToken.
func (s *Sealer) Open(sealed string) (string, error) {
	if !strings.HasPrefix(sealed, sealedPrefix) {
		return "", ErrNotSealed
	}
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(sealed, sealedPrefix))
	if err != nil {
		return "", common.ErrInvalidToken
	}
	n := s.aead.NonceSize()
	if len(raw) < n {
		return "", common.ErrInvalidToken
	}
	plaintext, err := s.aead.Open(nil, raw[:n], raw[n:], nil)
	if err != nil {
		return "", common.ErrInvalidToken
	}
	return string(plaintext), nil
}
