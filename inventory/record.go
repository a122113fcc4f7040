package inventory

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is one CD entry. IDs are expected to be unique within a Table but
// nothing enforces it.
type Record struct {
	ID     int
	Title  string
	Artist string
}

func (r Record) String() string {
	return fmt.Sprintf("%d\t%s (by:%s)", r.ID, r.Title, r.Artist)
}

// ParseID converts user input into a record identifier. Surrounding
// whitespace is ignored.
func ParseID(s string) (int, error) {
	trimmed := strings.TrimSpace(s)
	id, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrTypeConversion, trimmed)
	}
	return id, nil
}
