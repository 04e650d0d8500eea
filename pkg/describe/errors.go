package describe

import (
	"errors"
	"fmt"
)

// NotFoundError is the entity-level outcome of a get-by-id lookup whose
// target does not exist, distinct from an empty listing.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
