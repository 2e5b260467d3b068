package teacher

import "errors"

// Teacher domain errors
var (
	ErrTeacherNotFound = errors.New("teacher not found")
	ErrEmailExists     = errors.New("email already registered")
	ErrNIPExists       = errors.New("NIP already registered")
	ErrLocationNotSet  = errors.New("designated location has not been set for this teacher")
)
