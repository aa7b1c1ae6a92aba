package datasource

import "errors"

var (
	// ErrMalformedRecord is returned when a record cannot be interpreted as a
	// data source or credential: bad attributes, missing endpoint, or a
	// reference list that is not exactly one credential.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrUnsupportedAuthType is returned for credential types without an Authenticator.
	ErrUnsupportedAuthType = errors.New("unsupported data source authentication type")

	// ErrReservedPasswordPrefix is returned when a plaintext password carries
	// the prefix reserved for sealed values.
	ErrReservedPasswordPrefix = errors.New("plaintext password must not start with the sealed prefix")
)
