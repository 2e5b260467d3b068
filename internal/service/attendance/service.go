package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sekolahku/attendance-backend-go/internal/domain/attendance"
	"github.com/sekolahku/attendance-backend-go/internal/domain/teacher"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/geo"
	"github.com/sekolahku/attendance-backend-go/internal/service/file"
)

// GeofenceRadiusMeters is the allowed distance from a teacher's designated
// location. Fixed, applied identically to check-in and check-out.
const GeofenceRadiusMeters = 50.0

type SessionServiceImpl struct {
	attendance.SessionRepository
	teacher.TeacherRepository
	fileService file.FileService
	loc         *time.Location
}

func NewSessionService(
	sessionRepo attendance.SessionRepository,
	teacherRepo teacher.TeacherRepository,
	fileService file.FileService,
	loc *time.Location,
) attendance.SessionService {
	if loc == nil {
		loc = time.UTC
	}
	return &SessionServiceImpl{
		SessionRepository: sessionRepo,
		TeacherRepository: teacherRepo,
		fileService:       fileService,
		loc:               loc,
	}
}

// timePtrToString safely converts a *time.Time to a display string.
func (a *SessionServiceImpl) timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.In(a.loc).Format("2006-01-02 15:04:05")
	return &formatted
}

// workDay maps an instant to the calendar day it belongs to.
func (a *SessionServiceImpl) workDay(now time.Time) time.Time {
	local := now.In(a.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// Submit implements attendance.SessionService.
//
// Validation order is load-bearing: input shape, then session lifecycle, then
// teacher resolution, then geofence. The proof photo pair is stored before
// the teacher lookup so every later rejection carries a cleanup obligation.
func (a *SessionServiceImpl) Submit(ctx context.Context, req attendance.SubmitRequest) (attendance.SubmitResponse, error) {
	if err := req.Validate(); err != nil {
		// Nothing has been written to storage yet.
		return attendance.SubmitResponse{}, err
	}

	nowUTC := time.Now().UTC()
	day := a.workDay(nowUTC)

	existing, err := a.SessionRepository.GetByTeacherAndDate(ctx, req.TeacherID, day)
	if err != nil {
		return attendance.SubmitResponse{}, fmt.Errorf("failed to get session for teacher-day: %w", err)
	}

	state := attendance.StateOf(existing)
	if state == attendance.StateCompleted {
		return attendance.SubmitResponse{}, attendance.ErrSessionCompleted
	}

	phase := attendance.OutcomeCheckIn
	if state == attendance.StateAwaitingCheckOut {
		phase = attendance.OutcomeCheckOut
	}

	refs, err := a.fileService.UploadAttendancePhotoPair(ctx, req.TeacherID, day, string(phase),
		req.Photo1, req.Photo1Header.Filename, req.Photo2, req.Photo2Header.Filename)
	if err != nil {
		return attendance.SubmitResponse{}, fmt.Errorf("failed to store proof photos: %w", err)
	}

	t, err := a.TeacherRepository.GetByID(ctx, req.TeacherID)
	if err != nil {
		a.fileService.DeletePhotoPair(ctx, refs)
		if errors.Is(err, teacher.ErrTeacherNotFound) {
			return attendance.SubmitResponse{}, teacher.ErrTeacherNotFound
		}
		return attendance.SubmitResponse{}, fmt.Errorf("failed to get teacher: %w", err)
	}

	if !t.HasDesignatedLocation() {
		a.fileService.DeletePhotoPair(ctx, refs)
		return attendance.SubmitResponse{}, teacher.ErrLocationNotSet
	}

	distance := geo.Distance(*req.Latitude, *req.Longitude, *t.Latitude, *t.Longitude)
	if distance > GeofenceRadiusMeters {
		a.fileService.DeletePhotoPair(ctx, refs)
		return attendance.SubmitResponse{}, &attendance.OutOfRangeError{
			DistanceMeters: distance,
			RadiusMeters:   GeofenceRadiusMeters,
		}
	}

	switch state {
	case attendance.StateAwaitingCheckIn:
		created, err := a.SessionRepository.Create(ctx, attendance.Session{
			TeacherID:        req.TeacherID,
			Date:             day,
			CheckInAt:        nowUTC,
			CheckInLatitude:  *req.Latitude,
			CheckInLongitude: *req.Longitude,
			CheckInPhoto1URL: refs.Photo1,
			CheckInPhoto2URL: refs.Photo2,
		})
		if err != nil {
			a.fileService.DeletePhotoPair(ctx, refs)
			// The unique constraint turns a racing duplicate check-in into
			// ErrDuplicateCheckIn; a vanished teacher trips the FK.
			if errors.Is(err, attendance.ErrDuplicateCheckIn) || errors.Is(err, teacher.ErrTeacherNotFound) {
				return attendance.SubmitResponse{}, err
			}
			return attendance.SubmitResponse{}, fmt.Errorf("failed to create session: %w", err)
		}
		return attendance.SubmitResponse{
			SessionID:  created.ID,
			Outcome:    attendance.OutcomeCheckIn,
			RecordedAt: *a.timePtrToString(&nowUTC),
		}, nil

	default: // StateAwaitingCheckOut
		session := *existing
		session.CheckOutAt = &nowUTC
		session.CheckOutLatitude = req.Latitude
		session.CheckOutLongitude = req.Longitude
		session.CheckOutPhoto1URL = &refs.Photo1
		session.CheckOutPhoto2URL = &refs.Photo2

		if err := a.SessionRepository.Update(ctx, session); err != nil {
			a.fileService.DeletePhotoPair(ctx, refs)
			// A racing check-out that committed first leaves the conditional
			// update with no row to write.
			if errors.Is(err, attendance.ErrSessionCompleted) || errors.Is(err, attendance.ErrSessionNotFound) {
				return attendance.SubmitResponse{}, err
			}
			return attendance.SubmitResponse{}, fmt.Errorf("failed to update session: %w", err)
		}
		return attendance.SubmitResponse{
			SessionID:  session.ID,
			Outcome:    attendance.OutcomeCheckOut,
			RecordedAt: *a.timePtrToString(&nowUTC),
		}, nil
	}
}

// GetStatus implements attendance.SessionService.
func (a *SessionServiceImpl) GetStatus(ctx context.Context, teacherID string) (attendance.StatusResponse, error) {
	day := a.workDay(time.Now().UTC())

	session, err := a.SessionRepository.GetByTeacherAndDate(ctx, teacherID, day)
	if err != nil {
		return attendance.StatusResponse{}, fmt.Errorf("failed to get session for teacher-day: %w", err)
	}

	resp := attendance.StatusResponse{Status: attendance.StateOf(session)}
	if session != nil {
		resp.CheckInTime = a.timePtrToString(&session.CheckInAt)
		resp.CheckOutTime = a.timePtrToString(session.CheckOutAt)
	}
	return resp, nil
}

// GetSession implements attendance.SessionService.
func (a *SessionServiceImpl) GetSession(ctx context.Context, id string) (attendance.SessionResponse, error) {
	session, err := a.SessionRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrSessionNotFound) {
			return attendance.SessionResponse{}, attendance.ErrSessionNotFound
		}
		return attendance.SessionResponse{}, fmt.Errorf("failed to get session: %w", err)
	}

	return a.mapSessionToResponse(session), nil
}

// ListSessions implements attendance.SessionService.
func (a *SessionServiceImpl) ListSessions(ctx context.Context, filter attendance.SessionFilter) (attendance.ListSessionResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListSessionResponse{}, err
	}
	filter.Normalize()

	sessions, total, err := a.SessionRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListSessionResponse{}, fmt.Errorf("failed to list sessions: %w", err)
	}

	responses := make([]attendance.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		responses = append(responses, a.mapSessionToResponse(s))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return attendance.ListSessionResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Sessions:   responses,
	}, nil
}

func (a *SessionServiceImpl) mapSessionToResponse(s attendance.Session) attendance.SessionResponse {
	resp := attendance.SessionResponse{
		ID:               s.ID,
		TeacherID:        s.TeacherID,
		TeacherName:      s.TeacherName,
		Date:             s.Date.Format("2006-01-02"),
		CheckInTime:      *a.timePtrToString(&s.CheckInAt),
		CheckInLatitude:  s.CheckInLatitude,
		CheckInLongitude: s.CheckInLongitude,
		CheckInPhoto1URL: a.fileService.PublicURL(s.CheckInPhoto1URL),
		CheckInPhoto2URL: a.fileService.PublicURL(s.CheckInPhoto2URL),
		CheckOutTime:     a.timePtrToString(s.CheckOutAt),
		Status:           attendance.StateOf(&s),
	}

	resp.CheckOutLatitude = s.CheckOutLatitude
	resp.CheckOutLongitude = s.CheckOutLongitude
	if s.CheckOutPhoto1URL != nil {
		url := a.fileService.PublicURL(*s.CheckOutPhoto1URL)
		resp.CheckOutPhoto1URL = &url
	}
	if s.CheckOutPhoto2URL != nil {
		url := a.fileService.PublicURL(*s.CheckOutPhoto2URL)
		resp.CheckOutPhoto2URL = &url
	}

	return resp
}
