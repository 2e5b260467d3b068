package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sekolahku/attendance-backend-go/internal/domain/attendance"
	"github.com/sekolahku/attendance-backend-go/internal/domain/teacher"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/database"
)

type sessionRepositoryImpl struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) attendance.SessionRepository {
	return &sessionRepositoryImpl{db: db}
}

// GetByTeacherAndDate implements attendance.SessionRepository.
func (r *sessionRepositoryImpl) GetByTeacherAndDate(ctx context.Context, teacherID string, date time.Time) (*attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, teacher_id, date,
			   check_in_at, check_in_latitude, check_in_longitude,
			   check_in_photo1_url, check_in_photo2_url,
			   check_out_at, check_out_latitude, check_out_longitude,
			   check_out_photo1_url, check_out_photo2_url,
			   created_at, updated_at
		FROM attendance_sessions
		WHERE teacher_id = $1 AND date = $2
		LIMIT 1
	`

	var s attendance.Session
	err := q.QueryRow(ctx, query, teacherID, date).Scan(
		&s.ID, &s.TeacherID, &s.Date,
		&s.CheckInAt, &s.CheckInLatitude, &s.CheckInLongitude,
		&s.CheckInPhoto1URL, &s.CheckInPhoto2URL,
		&s.CheckOutAt, &s.CheckOutLatitude, &s.CheckOutLongitude,
		&s.CheckOutPhoto1URL, &s.CheckOutPhoto2URL,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no session for this teacher-day
		}
		return nil, fmt.Errorf("failed to get session by teacher and date: %w", err)
	}

	return &s, nil
}

// Create implements attendance.SessionRepository.
func (r *sessionRepositoryImpl) Create(ctx context.Context, newSession attendance.Session) (attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_sessions (
			teacher_id, date, check_in_at,
			check_in_latitude, check_in_longitude,
			check_in_photo1_url, check_in_photo2_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newSession.TeacherID,
		newSession.Date,
		newSession.CheckInAt,
		newSession.CheckInLatitude,
		newSession.CheckInLongitude,
		newSession.CheckInPhoto1URL,
		newSession.CheckInPhoto2URL,
	).Scan(&newSession.ID, &newSession.CreatedAt, &newSession.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation on (teacher_id, date)
				return attendance.Session{}, attendance.ErrDuplicateCheckIn
			case "23503": // foreign_key_violation on teacher_id
				return attendance.Session{}, teacher.ErrTeacherNotFound
			}
		}
		return attendance.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	return newSession, nil
}

// Update implements attendance.SessionRepository.
func (r *sessionRepositoryImpl) Update(ctx context.Context, s attendance.Session) error {
	q := GetQuerier(ctx, r.db)

	// The check_out_at IS NULL predicate makes the write conditional on the
	// session still being open, so racing check-outs cannot overwrite a
	// completed session.
	query := `
		UPDATE attendance_sessions
		SET check_out_at = $1, check_out_latitude = $2, check_out_longitude = $3,
			check_out_photo1_url = $4, check_out_photo2_url = $5, updated_at = NOW()
		WHERE id = $6 AND check_out_at IS NULL
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		s.CheckOutAt, s.CheckOutLatitude, s.CheckOutLongitude,
		s.CheckOutPhoto1URL, s.CheckOutPhoto2URL, s.ID,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrSessionCompleted
		}
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}

// GetByID implements attendance.SessionRepository.
func (r *sessionRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.teacher_id, s.date,
			   s.check_in_at, s.check_in_latitude, s.check_in_longitude,
			   s.check_in_photo1_url, s.check_in_photo2_url,
			   s.check_out_at, s.check_out_latitude, s.check_out_longitude,
			   s.check_out_photo1_url, s.check_out_photo2_url,
			   s.created_at, s.updated_at,
			   t.full_name AS teacher_name
		FROM attendance_sessions s
		LEFT JOIN teachers t ON t.id = s.teacher_id
		WHERE s.id = $1
	`

	var s attendance.Session
	err := q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.TeacherID, &s.Date,
		&s.CheckInAt, &s.CheckInLatitude, &s.CheckInLongitude,
		&s.CheckInPhoto1URL, &s.CheckInPhoto2URL,
		&s.CheckOutAt, &s.CheckOutLatitude, &s.CheckOutLongitude,
		&s.CheckOutPhoto1URL, &s.CheckOutPhoto2URL,
		&s.CreatedAt, &s.UpdatedAt,
		&s.TeacherName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Session{}, attendance.ErrSessionNotFound
		}
		return attendance.Session{}, fmt.Errorf("failed to get session by ID: %w", err)
	}

	return s, nil
}

// List implements attendance.SessionRepository.
func (r *sessionRepositoryImpl) List(ctx context.Context, filter attendance.SessionFilter) ([]attendance.Session, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.TeacherID != nil && *filter.TeacherID != "" {
		baseWhere += fmt.Sprintf(" AND s.teacher_id = $%d", argIdx)
		args = append(args, *filter.TeacherID)
		argIdx++
	}
	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND s.date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND s.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND s.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM attendance_sessions s WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT s.id, s.teacher_id, s.date,
			   s.check_in_at, s.check_in_latitude, s.check_in_longitude,
			   s.check_in_photo1_url, s.check_in_photo2_url,
			   s.check_out_at, s.check_out_latitude, s.check_out_longitude,
			   s.check_out_photo1_url, s.check_out_photo2_url,
			   s.created_at, s.updated_at,
			   t.full_name AS teacher_name
		FROM attendance_sessions s
		LEFT JOIN teachers t ON t.id = s.teacher_id
		WHERE `+baseWhere+`
		ORDER BY s.date DESC, s.check_in_at DESC
		LIMIT $%d OFFSET $%d
	`, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []attendance.Session
	for rows.Next() {
		var s attendance.Session
		err := rows.Scan(
			&s.ID, &s.TeacherID, &s.Date,
			&s.CheckInAt, &s.CheckInLatitude, &s.CheckInLongitude,
			&s.CheckInPhoto1URL, &s.CheckInPhoto2URL,
			&s.CheckOutAt, &s.CheckOutLatitude, &s.CheckOutLongitude,
			&s.CheckOutPhoto1URL, &s.CheckOutPhoto2URL,
			&s.CreatedAt, &s.UpdatedAt,
			&s.TeacherName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}
