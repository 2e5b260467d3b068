package teacher

import (
	"time"
)

type Teacher struct {
	ID           string
	NIP          string
	FullName     string
	Email        string
	PasswordHash string
	IsAdmin      bool

	// Designated location; both must be set before attendance is possible.
	Latitude  *float64
	Longitude *float64

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// HasDesignatedLocation reports whether the administrator has configured
// the reference coordinates for this teacher.
func (t Teacher) HasDesignatedLocation() bool {
	return t.Latitude != nil && t.Longitude != nil
}
