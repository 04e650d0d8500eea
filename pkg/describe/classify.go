package describe

import (
	"errors"

	"github.com/aws/smithy-go"
)

// Classifier reports whether an error belongs to an expected family of
// vendor error codes.
type Classifier func(error) bool

// IsCode reports whether err carries one of the given vendor error codes.
func IsCode(err error, codes ...string) bool {
	var ae smithy.APIError
	if !errors.As(err, &ae) {
		return false
	}
	for _, code := range codes {
		if ae.ErrorCode() == code {
			return true
		}
	}
	return false
}

// AbsenceOf builds a Classifier matching the given codes. Describers use it
// to mark facet lookups whose failure means the feature is simply not
// configured on the resource.
func AbsenceOf(codes ...string) Classifier {
	return func(err error) bool {
		return IsCode(err, codes...)
	}
}
