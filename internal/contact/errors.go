package contact

import "errors"

var (
	// ErrNotFound is returned when a lookup by id matched no record
	ErrNotFound = errors.New("contact message not found")

	// ErrDuplicateReference is returned when the store rejected an insert
	// because the reference id already exists
	ErrDuplicateReference = errors.New("duplicate reference id")

	// ErrInvalidStatus is returned when a status update names a value
	// outside the enumerated set
	ErrInvalidStatus = errors.New("invalid status")
)
