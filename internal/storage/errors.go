package storage

import (
	"errors"
	"fmt"
)

// ErrLanguageUnknown is returned when switching to a language that is not active.
var ErrLanguageUnknown = errors.New("storage: language is not active")

// NotFoundError is returned when a storage record cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
