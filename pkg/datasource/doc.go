// Package datasource defines the data source and credential records the
// client pool resolves, their saved object encoding, and the closed set of
// authentication schemes.
//
// A data source saved object (type "data-source") carries a title, an
// endpoint and exactly one reference to a credential saved object (type
// "credential"). DecodeDataSource rejects records with zero or several
// references rather than guessing which one is the credential.
//
// Credential.Authenticator maps the stored "credentialType" tag to a sealed
// variant (NoAuth or BasicAuth); any other tag yields ErrUnsupportedAuthType.
//
// Passwords can be stored encrypted with pkg/secrets: SealCredential and
// EncryptingStore seal on write, WithDecryption opens on read. Credential
// implements slog.LogValuer and never logs its password.
package datasource
