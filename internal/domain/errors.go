package domain

import "errors"

// NotFoundError is returned when no prompt version matches an id.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	if e.ID == "" {
		return "prompt version not found"
	}
	return "prompt version " + e.ID + " not found"
}

func IsNotFoundError(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

// ErrAmbiguousID is returned when a partial id matches more than one version.
var ErrAmbiguousID = errors.New("partial id matches more than one prompt version")

// ErrInvalidID is returned for an id prefix that is not made of hex digits and dashes.
var ErrInvalidID = errors.New("version ids contain only hex digits and dashes")
