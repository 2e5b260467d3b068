package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekolahku/attendance-backend-go/internal/domain/attendance"
	"github.com/sekolahku/attendance-backend-go/internal/domain/auth"
	"github.com/sekolahku/attendance-backend-go/internal/domain/teacher"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/validator"
)

func TestHandleError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", validator.ValidationErrors{{Field: "latitude", Message: "latitude is required"}}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"session completed", attendance.ErrSessionCompleted, http.StatusConflict, "CONFLICT"},
		{"duplicate check-in", attendance.ErrDuplicateCheckIn, http.StatusConflict, "CONFLICT"},
		{"session not found", attendance.ErrSessionNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"teacher not found", teacher.ErrTeacherNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"location not set", teacher.ErrLocationNotSet, http.StatusBadRequest, "BAD_REQUEST"},
		{"email taken", teacher.ErrEmailExists, http.StatusConflict, "CONFLICT"},
		{"bad credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"admin required", auth.ErrAdminRequired, http.StatusForbidden, "FORBIDDEN"},
		{"unknown", errors.New("pool exhausted"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestHandleError_OutOfRangeCarriesDistance(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, &attendance.OutOfRangeError{DistanceMeters: 87.3, RadiusMeters: 50})

	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "FORBIDDEN", body.Error.Code)
	assert.Equal(t, "87.3", body.Error.Details["distance_meters"])
	assert.Equal(t, "50", body.Error.Details["radius_meters"])
}

func TestHandleError_WrappedDomainErrorStillMaps(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, errors.Join(errors.New("while submitting"), attendance.ErrSessionCompleted))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandleError_ValidationDetailsByField(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, validator.ValidationErrors{
		{Field: "photo1", Message: "proof photo is required"},
		{Field: "photo2", Message: "proof photo is required"},
	})

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Len(t, body.Error.Details, 2)
	assert.Equal(t, "proof photo is required", body.Error.Details["photo1"])
}
