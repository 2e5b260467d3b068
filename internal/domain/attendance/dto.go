package attendance

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/sekolahku/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// maxPhotoSize caps each uploaded proof photo.
const maxPhotoSize = 10 << 20 // 10MB

// SubmitRequest carries one check-in/check-out attempt: claimed coordinates
// plus the proof photo pair. Which transition it performs is decided by the
// session state, not by the caller.
type SubmitRequest struct {
	TeacherID string   `json:"-"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	Photo1       multipart.File        `json:"-"`
	Photo1Header *multipart.FileHeader `json:"-"`
	Photo2       multipart.File        `json:"-"`
	Photo2Header *multipart.FileHeader `json:"-"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TeacherID) {
		errs = append(errs, validator.ValidationError{
			Field:   "teacher_id",
			Message: "teacher_id is required",
		})
	}

	if r.Latitude == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude is required",
		})
	} else if !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude is required",
		})
	} else if !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	errs = append(errs, validatePhoto("photo1", r.Photo1, r.Photo1Header)...)
	errs = append(errs, validatePhoto("photo2", r.Photo2, r.Photo2Header)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validatePhoto(field string, file multipart.File, header *multipart.FileHeader) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if file == nil || header == nil {
		errs = append(errs, validator.ValidationError{
			Field:   field,
			Message: "proof photo is required",
		})
		return errs
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		errs = append(errs, validator.ValidationError{
			Field:   field,
			Message: "invalid file type: only jpg, jpeg, png allowed",
		})
	} else if header.Size > maxPhotoSize {
		errs = append(errs, validator.ValidationError{
			Field:   field,
			Message: "proof photo size must not exceed 10MB",
		})
	}

	return errs
}

type SubmitResponse struct {
	SessionID  string  `json:"session_id"`
	Outcome    Outcome `json:"outcome"`
	RecordedAt string  `json:"recorded_at"`
}

type StatusResponse struct {
	Status       State   `json:"status"`
	CheckInTime  *string `json:"check_in_time,omitempty"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
}

type SessionFilter struct {
	TeacherID *string
	Date      *string
	StartDate *string
	EndDate   *string
	Page      int
	Limit     int
}

// Normalize clamps pagination to sane values so callers that skip the HTTP
// layer cannot force a zero or negative page size.
func (f *SessionFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
}

func (f *SessionFilter) Validate() error {
	var errs validator.ValidationErrors

	for field, v := range map[string]*string{
		"date":       f.Date,
		"start_date": f.StartDate,
		"end_date":   f.EndDate,
	} {
		if v != nil && *v != "" {
			if _, ok := validator.IsValidDate(*v); !ok {
				errs = append(errs, validator.ValidationError{
					Field:   field,
					Message: "must be a valid date in YYYY-MM-DD format",
				})
			}
		}
	}

	if f.StartDate != nil && f.EndDate != nil && *f.StartDate != "" && *f.EndDate != "" {
		start, okStart := validator.IsValidDate(*f.StartDate)
		end, okEnd := validator.IsValidDate(*f.EndDate)
		if okStart && okEnd && end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SessionResponse struct {
	ID          string  `json:"id"`
	TeacherID   string  `json:"teacher_id"`
	TeacherName *string `json:"teacher_name,omitempty"`
	Date        string  `json:"date"`

	CheckInTime      string  `json:"check_in_time"`
	CheckInLatitude  float64 `json:"check_in_latitude"`
	CheckInLongitude float64 `json:"check_in_longitude"`
	CheckInPhoto1URL string  `json:"check_in_photo1_url"`
	CheckInPhoto2URL string  `json:"check_in_photo2_url"`

	CheckOutTime      *string  `json:"check_out_time"`
	CheckOutLatitude  *float64 `json:"check_out_latitude"`
	CheckOutLongitude *float64 `json:"check_out_longitude"`
	CheckOutPhoto1URL *string  `json:"check_out_photo1_url"`
	CheckOutPhoto2URL *string  `json:"check_out_photo2_url"`

	Status State `json:"status"`
}

type ListSessionResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Sessions   []SessionResponse `json:"sessions"`
}
