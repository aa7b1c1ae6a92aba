// Package secrets encrypts credential materials at rest.
//
// A Cipher derives a compound 32-byte key from an application key and a
// workspace (tenant) key with HKDF-SHA-256 and uses it with AES-256-GCM. The
// nonce is prepended to the ciphertext so each value is self-contained.
//
// Seal and Open work on printable strings tagged with SealedPrefix, which
// lets readers tell encrypted values from legacy plaintext ones with
// IsSealed before deciding whether to decrypt.
//
// # Usage
//
//	c, err := secrets.NewCipher(appKey, workspaceKey)
//	sealed, err := c.Seal("s3cret")   // "enc:v1:..."
//	plain, err := c.Open(sealed)
//
// Keys are usually loaded through Config (DATA_SOURCE_APP_KEY and
// DATA_SOURCE_WORKSPACE_KEY, base64) and GenerateKey/EncodeKey produce new
// ones. A value sealed for one workspace cannot be opened with another
// workspace key.
package secrets
