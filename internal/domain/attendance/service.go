package attendance

import (
	"context"
)

// SessionService is the attendance session manager: it decides which
// transition a submission performs, validates it against the geofence and
// the session lifecycle, and issues the single durable write.
type SessionService interface {
	// Submit processes one check-in/check-out attempt.
	Submit(ctx context.Context, req SubmitRequest) (SubmitResponse, error)

	// GetStatus reports the caller's state for the current calendar day.
	GetStatus(ctx context.Context, teacherID string) (StatusResponse, error)

	// GetSession retrieves a single session with photo references resolved
	// to public URLs.
	GetSession(ctx context.Context, id string) (SessionResponse, error)

	// ListSessions retrieves sessions filtered by teacher and/or date range.
	ListSessions(ctx context.Context, filter SessionFilter) (ListSessionResponse, error)
}
