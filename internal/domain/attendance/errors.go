package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	ErrSessionCompleted = errors.New("attendance for today is already completed")
	ErrDuplicateCheckIn = errors.New("a check-in for today already exists")
	ErrSessionNotFound  = errors.New("attendance session not found")
)

// OutOfRangeError reports a geofence violation with the measured distance.
type OutOfRangeError struct {
	DistanceMeters float64
	RadiusMeters   float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("you are outside the allowed radius: %.1fm away, allowed %.0fm",
		e.DistanceMeters, e.RadiusMeters)
}
