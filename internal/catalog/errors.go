package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCapacityExceeded is returned when a commit is attempted on a full store.
	ErrCapacityExceeded = errors.New("catalog: capacity exceeded")

	// ErrIncompleteRecord is returned when a required field is empty at commit time.
	ErrIncompleteRecord = errors.New("catalog: incomplete record")
)

// IncompleteRecordError names the empty fields of a rejected record.
type IncompleteRecordError struct {
	Missing []string
}

func (e *IncompleteRecordError) Error() string {
	return fmt.Sprintf("%v: missing %s", ErrIncompleteRecord, strings.Join(e.Missing, ", "))
}

func (e *IncompleteRecordError) Is(target error) bool { return target == ErrIncompleteRecord }

// Alert maps a commit error to the title and message shown to the user.
// ok is false for errors that are not part of the commit taxonomy.
func Alert(err error) (title, message string, ok bool) {
	switch {
	case errors.Is(err, ErrCapacityExceeded):
		return "Maximum limit reached", fmt.Sprintf("You can only add up to %d products.", Capacity), true
	case errors.Is(err, ErrIncompleteRecord):
		return "Incomplete information", "Please fill in all fields.", true
	default:
		return "", "", false
	}
}
