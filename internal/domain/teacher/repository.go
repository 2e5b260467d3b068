package teacher

import (
	"context"
)

// TeacherRepository defines data access methods for teacher records.
// The attendance core only ever reads through GetByID; mutation belongs to
// the administrative CRUD surface.
type TeacherRepository interface {
	Create(ctx context.Context, teacher Teacher) (Teacher, error)

	GetByID(ctx context.Context, id string) (Teacher, error)

	// GetByEmail is used by the authentication collaborator.
	GetByEmail(ctx context.Context, email string) (Teacher, error)

	List(ctx context.Context, filter TeacherFilter) ([]Teacher, int64, error)

	Update(ctx context.Context, teacher Teacher) error

	// SetDesignatedLocation updates only the reference coordinates.
	SetDesignatedLocation(ctx context.Context, id string, latitude, longitude float64) error

	// Delete soft deletes a teacher record.
	Delete(ctx context.Context, id string) error
}
