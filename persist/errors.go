package persist

import "errors"

// Sentinel errors for gateway operations.
var (
	ErrFileAccess      = errors.New("file access failed")
	ErrMissingFile     = errors.New("file does not exist")
	ErrDeserialization = errors.New("invalid inventory data")
)
