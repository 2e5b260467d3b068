package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sekolahku/attendance-backend-go/internal/domain/teacher"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/database"
)

type teacherRepositoryImpl struct {
	db *database.DB
}

func NewTeacherRepository(db *database.DB) teacher.TeacherRepository {
	return &teacherRepositoryImpl{db: db}
}

const teacherColumns = `
	id, nip, full_name, email, password_hash, is_admin,
	latitude, longitude, created_at, updated_at, deleted_at
`

func scanTeacher(row pgx.Row) (teacher.Teacher, error) {
	var t teacher.Teacher
	err := row.Scan(
		&t.ID, &t.NIP, &t.FullName, &t.Email, &t.PasswordHash, &t.IsAdmin,
		&t.Latitude, &t.Longitude, &t.CreatedAt, &t.UpdatedAt, &t.DeletedAt,
	)
	return t, err
}

// Create implements teacher.TeacherRepository.
func (r *teacherRepositoryImpl) Create(ctx context.Context, newTeacher teacher.Teacher) (teacher.Teacher, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO teachers (nip, full_name, email, password_hash, is_admin, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + teacherColumns

	created, err := scanTeacher(q.QueryRow(ctx, query,
		newTeacher.NIP, newTeacher.FullName, newTeacher.Email, newTeacher.PasswordHash,
		newTeacher.IsAdmin, newTeacher.Latitude, newTeacher.Longitude,
	))
	if err != nil {
		if constraintErr := mapTeacherConstraintError(err); constraintErr != nil {
			return teacher.Teacher{}, constraintErr
		}
		return teacher.Teacher{}, fmt.Errorf("failed to create teacher: %w", err)
	}

	return created, nil
}

// GetByID implements teacher.TeacherRepository.
func (r *teacherRepositoryImpl) GetByID(ctx context.Context, id string) (teacher.Teacher, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + teacherColumns + ` FROM teachers WHERE id = $1 AND deleted_at IS NULL`

	t, err := scanTeacher(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return teacher.Teacher{}, teacher.ErrTeacherNotFound
		}
		return teacher.Teacher{}, fmt.Errorf("failed to get teacher by ID: %w", err)
	}

	return t, nil
}

// GetByEmail implements teacher.TeacherRepository.
func (r *teacherRepositoryImpl) GetByEmail(ctx context.Context, email string) (teacher.Teacher, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + teacherColumns + ` FROM teachers WHERE email = $1 AND deleted_at IS NULL`

	t, err := scanTeacher(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return teacher.Teacher{}, teacher.ErrTeacherNotFound
		}
		return teacher.Teacher{}, fmt.Errorf("failed to get teacher by email: %w", err)
	}

	return t, nil
}

// List implements teacher.TeacherRepository.
func (r *teacherRepositoryImpl) List(ctx context.Context, filter teacher.TeacherFilter) ([]teacher.Teacher, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "deleted_at IS NULL"
	args := []interface{}{}
	argIdx := 1

	if filter.Name != nil && *filter.Name != "" {
		baseWhere += fmt.Sprintf(" AND full_name ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.Name+"%")
		argIdx++
	}
	if filter.Email != nil && *filter.Email != "" {
		baseWhere += fmt.Sprintf(" AND email = $%d", argIdx)
		args = append(args, *filter.Email)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM teachers WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count teachers: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT "+teacherColumns+" FROM teachers WHERE "+baseWhere+
			" ORDER BY full_name ASC LIMIT $%d OFFSET $%d",
		argIdx, argIdx+1,
	)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list teachers: %w", err)
	}
	defer rows.Close()

	var teachers []teacher.Teacher
	for rows.Next() {
		t, err := scanTeacher(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan teacher: %w", err)
		}
		teachers = append(teachers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return teachers, total, nil
}

// Update implements teacher.TeacherRepository.
func (r *teacherRepositoryImpl) Update(ctx context.Context, t teacher.Teacher) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE teachers
		SET full_name = $1, email = $2, password_hash = $3, is_admin = $4, updated_at = NOW()
		WHERE id = $5 AND deleted_at IS NULL
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, t.FullName, t.Email, t.PasswordHash, t.IsAdmin, t.ID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return teacher.ErrTeacherNotFound
		}
		if constraintErr := mapTeacherConstraintError(err); constraintErr != nil {
			return constraintErr
		}
		return fmt.Errorf("failed to update teacher: %w", err)
	}

	return nil
}

// SetDesignatedLocation implements teacher.TeacherRepository.
func (r *teacherRepositoryImpl) SetDesignatedLocation(ctx context.Context, id string, latitude, longitude float64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE teachers
		SET latitude = $1, longitude = $2, updated_at = NOW()
		WHERE id = $3 AND deleted_at IS NULL
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, latitude, longitude, id).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return teacher.ErrTeacherNotFound
		}
		return fmt.Errorf("failed to set designated location: %w", err)
	}

	return nil
}

// Delete implements teacher.TeacherRepository.
func (r *teacherRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE teachers
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id
	`

	var deletedID string
	err := q.QueryRow(ctx, query, id).Scan(&deletedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return teacher.ErrTeacherNotFound
		}
		return fmt.Errorf("failed to delete teacher: %w", err)
	}

	return nil
}

// mapTeacherConstraintError translates unique violations into domain errors.
func mapTeacherConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}
	switch pgErr.ConstraintName {
	case "teachers_email_key":
		return teacher.ErrEmailExists
	case "teachers_nip_key":
		return teacher.ErrNIPExists
	}
	return nil
}
