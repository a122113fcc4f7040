package report

import (
	"bufio"
	"errors"

	"github.com/tailored-agentic-units/cdinventory/inventory"
	"github.com/tailored-agentic-units/cdinventory/persist"
)

// Kind classifies an error for presentation.
type Kind int

const (
	KindUnexpected Kind = iota
	KindTypeConversion
	KindFileAccess
	KindMissingFile
	KindDeserialization
	KindNotFound
	KindInputTooLong
)

func (k Kind) String() string {
	switch k {
	case KindTypeConversion:
		return "type_conversion"
	case KindFileAccess:
		return "file_access"
	case KindMissingFile:
		return "missing_file"
	case KindDeserialization:
		return "deserialization"
	case KindNotFound:
		return "not_found"
	case KindInputTooLong:
		return "input_too_long"
	default:
		return "unexpected"
	}
}

// Message is the line shown to the user for an error of this kind.
func (k Kind) Message() string {
	switch k {
	case KindTypeConversion:
		return "That is not an integer."
	case KindFileAccess:
		return "Issue with opening file."
	case KindMissingFile:
		return "That file does not exist."
	case KindDeserialization:
		return "The inventory file is not readable. It may be corrupted."
	case KindNotFound:
		return "Could not find this CD!"
	case KindInputTooLong:
		return "That line is too long. Please enter it again."
	default:
		return "That is a general error."
	}
}

// Classify returns the Kind of err based on the sentinel it wraps.
func Classify(err error) Kind {
	switch {
	case errors.Is(err, inventory.ErrTypeConversion):
		return KindTypeConversion
	case errors.Is(err, inventory.ErrNotFound):
		return KindNotFound
	case errors.Is(err, bufio.ErrTooLong):
		return KindInputTooLong
	case errors.Is(err, persist.ErrMissingFile):
		return KindMissingFile
	case errors.Is(err, persist.ErrFileAccess):
		return KindFileAccess
	case errors.Is(err, persist.ErrDeserialization):
		return KindDeserialization
	default:
		return KindUnexpected
	}
}
