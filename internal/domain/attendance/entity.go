package attendance

import (
	"time"
)

// Session is one teacher's attendance record for a single calendar day,
// spanning check-in through check-out. At most one row exists per
// (teacher, date); the schema enforces this with a unique constraint.
type Session struct {
	ID        string
	TeacherID string
	Date      time.Time

	CheckInAt        time.Time
	CheckInLatitude  float64
	CheckInLongitude float64
	CheckInPhoto1URL string
	CheckInPhoto2URL string

	CheckOutAt        *time.Time
	CheckOutLatitude  *float64
	CheckOutLongitude *float64
	CheckOutPhoto1URL *string
	CheckOutPhoto2URL *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	TeacherName *string
}

// State is the lifecycle position of a teacher-day.
type State string

const (
	StateAwaitingCheckIn  State = "awaiting_check_in"
	StateAwaitingCheckOut State = "awaiting_check_out"
	StateCompleted        State = "completed"
)

// Outcome reports which transition a successful submission performed.
type Outcome string

const (
	OutcomeCheckIn  Outcome = "check_in"
	OutcomeCheckOut Outcome = "check_out"
)

// StateOf derives the lifecycle state from a zero-or-one session row.
func StateOf(s *Session) State {
	switch {
	case s == nil:
		return StateAwaitingCheckIn
	case s.CheckOutAt == nil:
		return StateAwaitingCheckOut
	default:
		return StateCompleted
	}
}
