package inventory

import "errors"

// Sentinel errors for record operations.
var (
	ErrTypeConversion = errors.New("identifier is not an integer")
	ErrNotFound       = errors.New("record not found")
)
