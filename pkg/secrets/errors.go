package secrets

import "errors"

var (
	ErrInvalidAppKey       = errors.New("invalid data source app key: must be 32 bytes")
	ErrInvalidWorkspaceKey = errors.New("invalid data source workspace key: must be 32 bytes")
	ErrKeyDerivationFailed = errors.New("credential key derivation failed")

	ErrEncryptionFailed = errors.New("credential encryption failed")
	ErrDecryptionFailed = errors.New("credential decryption failed")

	// ErrInvalidCiphertext covers values without SealedPrefix, bad base64
	// and payloads shorter than a nonce.
	ErrInvalidCiphertext = errors.New("invalid sealed value")
)
