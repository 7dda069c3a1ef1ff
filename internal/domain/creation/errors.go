package creation

import "errors"

// Domain errors for creations.
var (
	ErrCreationNotFound = errors.New("creation not found")
	ErrInvalidCreation  = errors.New("invalid creation")
	ErrInvalidUser      = errors.New("user id is required")
)
