package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sekolahku/attendance-backend-go/internal/domain/attendance"
	"github.com/sekolahku/attendance-backend-go/internal/domain/auth"
	"github.com/sekolahku/attendance-backend-go/internal/domain/teacher"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Field-level validation errors
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Geofence violations carry the measured distance for diagnosability.
	var outOfRange *attendance.OutOfRangeError
	if errors.As(err, &outOfRange) {
		Forbidden(w, outOfRange.Error(), map[string]string{
			"distance_meters": fmt.Sprintf("%.1f", outOfRange.DistanceMeters),
			"radius_meters":   fmt.Sprintf("%.0f", outOfRange.RadiusMeters),
		})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrAdminRequired):
		Forbidden(w, err.Error(), nil)

	// Teacher domain errors
	case errors.Is(err, teacher.ErrTeacherNotFound):
		NotFound(w, "Teacher not found")
	case errors.Is(err, teacher.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, teacher.ErrNIPExists):
		Conflict(w, "NIP already registered")
	case errors.Is(err, teacher.ErrLocationNotSet):
		BadRequest(w, "Designated location has not been set for this teacher", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrSessionCompleted):
		Conflict(w, "Attendance for today is already completed")
	case errors.Is(err, attendance.ErrDuplicateCheckIn):
		Conflict(w, "A check-in for today already exists")
	case errors.Is(err, attendance.ErrSessionNotFound):
		NotFound(w, "Attendance session not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
