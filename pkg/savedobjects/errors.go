package savedobjects

import "errors"

var (
	// ErrNotFound is returned when no record exists for the requested type and id.
	ErrNotFound = errors.New("saved object not found")

	// ErrInvalidObject is returned for records without id/type or with undecodable attributes.
	ErrInvalidObject = errors.New("invalid saved object")

	// ErrStoreFailure wraps driver errors other than not-found.
	ErrStoreFailure = errors.New("saved object store failure")
)
