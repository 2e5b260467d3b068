package attendance

import (
	"context"
	"time"
)

// SessionRepository defines data access for attendance sessions.
type SessionRepository interface {
	// GetByTeacherAndDate returns the single permitted session row for a
	// teacher-day, or nil when no row exists.
	GetByTeacherAndDate(ctx context.Context, teacherID string, date time.Time) (*Session, error)

	// Create inserts a new session row. The (teacher_id, date) unique
	// constraint makes a racing duplicate insert fail with
	// ErrDuplicateCheckIn rather than producing two rows.
	Create(ctx context.Context, session Session) (Session, error)

	// Update fills in the check-out half of an open session. The write only
	// lands while the session is still open; a racing check-out that lost
	// gets ErrSessionCompleted instead of overwriting the winner.
	Update(ctx context.Context, session Session) error

	GetByID(ctx context.Context, id string) (Session, error)

	// List retrieves sessions filtered by teacher and/or date range.
	List(ctx context.Context, filter SessionFilter) ([]Session, int64, error)
}
