package datatable

import "errors"

// Errors returned by the datatable package.
var (
	// ErrColumnNotFound is returned when a column key is not registered.
	ErrColumnNotFound = errors.New("column not found")

	// ErrDuplicateColumn is returned when two columns share a key or title.
	ErrDuplicateColumn = errors.New("duplicate column")

	// ErrInvalidColumn is returned when a column has no value accessor.
	ErrInvalidColumn = errors.New("invalid column")

	// ErrNothingSelected is returned by bulk actions run with an empty selection.
	ErrNothingSelected = errors.New("no rows selected")

	// ErrNoDeleter is returned when a table was built without a delete boundary.
	ErrNoDeleter = errors.New("table does not support delete")

	// ErrStaleResponse is returned by Load when a newer request superseded it.
	ErrStaleResponse = errors.New("stale response discarded")
)
