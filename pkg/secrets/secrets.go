package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"strings"
)

// SealedPrefix marks strings produced by Cipher.Seal.
const SealedPrefix = "enc:v1:"

// Cipher encrypts values with a key derived from an application key and a
// workspace (tenant) key. It is safe for concurrent use.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher validates both keys and derives the compound AES-256-GCM key.
func NewCipher(appKey, workspaceKey []byte) (*Cipher, error) {
	if err := ValidateKeys(appKey, workspaceKey); err != nil {
		return nil, err
	}

	key, err := deriveKey(appKey, workspaceKey)
	if err != nil {
		return nil, err
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}
	return &Cipher{aead: aead}, nil
}

// EncryptBytes returns nonce + ciphertext + tag.
func (c *Cipher) EncryptBytes(data []byte) ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}
	return c.aead.Seal(nonce, nonce, data, nil), nil
}

// DecryptBytes reverses EncryptBytes.
func (c *Cipher) DecryptBytes(ciphertext []byte) ([]byte, error) {
	nonceSize := c.aead.NonceSize()
	if len(ciphertext) < nonceSize+c.aead.Overhead() {
		return nil, ErrInvalidCiphertext
	}

	nonce, body := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, body, nil)
	if err != nil {
		return nil, errors.Join(ErrDecryptionFailed, err)
	}
	return plaintext, nil
}

// Seal encrypts plaintext into a printable string starting with SealedPrefix.
func (c *Cipher) Seal(plaintext string) (string, error) {
	ciphertext, err := c.EncryptBytes([]byte(plaintext))
	if err != nil {
		return "", err
	}
	return SealedPrefix + base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Open decrypts a string produced by Seal.
func (c *Cipher) Open(sealed string) (string, error) {
	if !IsSealed(sealed) {
		return "", ErrInvalidCiphertext
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(sealed, SealedPrefix))
	if err != nil {
		return "", errors.Join(ErrInvalidCiphertext, err)
	}
	plaintext, err := c.DecryptBytes(raw)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// IsSealed reports whether s carries the SealedPrefix.
func IsSealed(s string) bool {
	return strings.HasPrefix(s, SealedPrefix)
}
