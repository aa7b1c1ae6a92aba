package clientpool

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/datasource/pkg/datasource"
)

var (
	// ErrRecordNotFound is the base of both not-found errors below.
	ErrRecordNotFound = errors.New("record not found")

	// ErrDataSourceNotFound is returned when the data source id does not exist.
	ErrDataSourceNotFound = fmt.Errorf("data source %w", ErrRecordNotFound)

	// ErrCredentialNotFound is returned when the referenced credential does not exist.
	ErrCredentialNotFound = fmt.Errorf("credential %w", ErrRecordNotFound)

	// ErrMalformedRecord is returned for records that cannot be interpreted.
	ErrMalformedRecord = datasource.ErrMalformedRecord

	// ErrUnsupportedAuthType is returned for credentials with an unknown scheme.
	ErrUnsupportedAuthType = datasource.ErrUnsupportedAuthType

	// ErrResolutionFailed wraps store failures other than not-found.
	ErrResolutionFailed = errors.New("data source resolution failed")

	// ErrDisposalFailed is logged when an evicted root client fails to close.
	// It is never returned to callers.
	ErrDisposalFailed = errors.New("failed to close client evicted from pool")

	// ErrInvalidRequest is matched by every error returned from Pool.GetClient.
	ErrInvalidRequest = errors.New("invalid data source request")

	// ErrPoolClosed is the cause of requests made after Close.
	ErrPoolClosed = errors.New("data source client pool is closed")

	// ErrNilRoot is returned when a Dialer reports success without a client.
	ErrNilRoot = errors.New("dialer returned a nil root client")

	// ErrInvalidPoolSize and ErrInvalidTTL are returned by Config.Validate.
	ErrInvalidPoolSize = errors.New("client pool size must be at least 1")
	ErrInvalidTTL      = errors.New("client pool ttl must be positive")
)

// RequestError is the only error type returned by Pool.GetClient. It
// matches ErrInvalidRequest and keeps the internal cause for logging only:
// it does not unwrap, so callers cannot branch on internal failure kinds.
type RequestError struct {
	DataSourceID string
	cause        error
}

func newRequestError(dataSourceID string, cause error) *RequestError {
	return &RequestError{DataSourceID: dataSourceID, cause: cause}
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("invalid request for data source %q: %v", e.DataSourceID, e.cause)
}

// Is reports whether target is ErrInvalidRequest.
func (e *RequestError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// Cause returns the internal error for logging.
func (e *RequestError) Cause() error {
	return e.cause
}

// asRequestError normalizes err so the facade never leaks another type.
func asRequestError(dataSourceID string, err error) *RequestError {
	var rerr *RequestError
	if errors.As(err, &rerr) {
		return rerr
	}
	return newRequestError(dataSourceID, err)
}
