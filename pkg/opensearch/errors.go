package opensearch

import "errors"

var (
	// ErrConnectionFailed indicates the OpenSearch client could not be created
	// due to configuration or network issues. Use errors.Is() to check.
	ErrConnectionFailed = errors.New("opensearch connection failed")

	// ErrHealthcheckFailed indicates the cluster is unreachable or unhealthy.
	ErrHealthcheckFailed = errors.New("opensearch healthcheck failed")

	// ErrInvalidEndpoint is returned by NewRoot for empty or non-http(s) endpoints.
	ErrInvalidEndpoint = errors.New("opensearch: invalid endpoint")

	// ErrInvalidCACert is returned when CACertFile cannot be read or holds no certificates.
	ErrInvalidCACert = errors.New("opensearch: invalid CA certificate bundle")

	// ErrClientClosed is returned by Close on an already closed root client.
	ErrClientClosed = errors.New("opensearch: client already closed")
)
