package teacher

import (
	"github.com/sekolahku/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// TEACHER DTOs
// ========================================

type CreateTeacherRequest struct {
	NIP       string   `json:"nip"`
	FullName  string   `json:"full_name"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	IsAdmin   bool     `json:"is_admin"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (r *CreateTeacherRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidNIP(r.NIP) {
		errs = append(errs, validator.ValidationError{
			Field:   "nip",
			Message: "nip must be 18 digits",
		})
	}

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "a valid email is required",
		})
	}

	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	errs = append(errs, validateOptionalCoordinates(r.Latitude, r.Longitude)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateTeacherRequest struct {
	ID       string  `json:"-"`
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	IsAdmin  *bool   `json:"is_admin"`
}

func (r *UpdateTeacherRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not be empty",
		})
	}

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "a valid email is required",
		})
	}

	if r.Password != nil && len(*r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SetLocationRequest struct {
	ID        string  `json:"-"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *SetLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TeacherFilter struct {
	Name  *string
	Email *string
	Page  int
	Limit int
}

// Normalize clamps pagination to sane values.
func (f *TeacherFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
}

type TeacherResponse struct {
	ID        string   `json:"id"`
	NIP       string   `json:"nip"`
	FullName  string   `json:"full_name"`
	Email     string   `json:"email"`
	IsAdmin   bool     `json:"is_admin"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

type ListTeacherResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Teachers   []TeacherResponse `json:"teachers"`
}

func validateOptionalCoordinates(lat, lon *float64) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if (lat == nil) != (lon == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "latitude and longitude must be provided together",
		})
		return errs
	}

	if lat != nil && !validator.IsValidLatitude(*lat) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if lon != nil && !validator.IsValidLongitude(*lon) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}
	return errs
}
