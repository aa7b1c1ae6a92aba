package secrets

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the required size for both app and workspace keys
	KeySize = 32 // 256 bits for AES-256

	// saltInfo is the HKDF info string for credential material encryption
	saltInfo = "datasource-credentials-v1"
)

// Config holds base64 encoded keys loaded from the environment.
type Config struct {
	AppKey       string `env:"DATA_SOURCE_APP_KEY"`
	WorkspaceKey string `env:"DATA_SOURCE_WORKSPACE_KEY"`
}

// Enabled reports whether both keys are set.
func (c Config) Enabled() bool {
	return c.AppKey != "" && c.WorkspaceKey != ""
}

// Cipher decodes the keys and builds a Cipher.
func (c Config) Cipher() (*Cipher, error) {
	appKey, err := ParseKey(c.AppKey)
	if err != nil {
		return nil, errors.Join(ErrInvalidAppKey, err)
	}
	workspaceKey, err := ParseKey(c.WorkspaceKey)
	if err != nil {
		return nil, errors.Join(ErrInvalidWorkspaceKey, err)
	}
	return NewCipher(appKey, workspaceKey)
}

// ValidateKeys checks that both keys are the correct length.
func ValidateKeys(appKey, workspaceKey []byte) error {
	validApp := len(appKey) == KeySize
	validWorkspace := len(workspaceKey) == KeySize

	if !validApp {
		return ErrInvalidAppKey
	}
	if !validWorkspace {
		return ErrInvalidWorkspaceKey
	}
	return nil
}

// ParseKey decodes a standard base64 key.
func ParseKey(encoded string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}
	if len(key) != KeySize {
		return nil, errors.New("decoded key must be 32 bytes")
	}
	return key, nil
}

// EncodeKey is the inverse of ParseKey.
func EncodeKey(key []byte) string {
	return base64.StdEncoding.EncodeToString(key)
}

// deriveKey creates a compound key from app and workspace keys using HKDF.
// The caller must clear the returned key once it is no longer needed.
func deriveKey(appKey, workspaceKey []byte) ([]byte, error) {
	hkdfReader := hkdf.New(sha256.New, appKey, workspaceKey, []byte(saltInfo))

	derivedKey := make([]byte, KeySize)
	if _, err := io.ReadFull(hkdfReader, derivedKey); err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}

	return derivedKey, nil
}

// GenerateKey creates a new random 32-byte key suitable for encryption
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}
