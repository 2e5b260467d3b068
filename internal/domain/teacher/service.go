package teacher

import (
	"context"
)

// TeacherService defines administrative operations on teacher records.
type TeacherService interface {
	Create(ctx context.Context, req CreateTeacherRequest) (TeacherResponse, error)

	Get(ctx context.Context, id string) (TeacherResponse, error)

	List(ctx context.Context, filter TeacherFilter) (ListTeacherResponse, error)

	Update(ctx context.Context, req UpdateTeacherRequest) (TeacherResponse, error)

	// SetDesignatedLocation configures the geofence reference coordinates.
	SetDesignatedLocation(ctx context.Context, req SetLocationRequest) (TeacherResponse, error)

	Delete(ctx context.Context, id string) error
}
