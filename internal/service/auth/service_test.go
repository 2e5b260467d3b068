package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sekolahku/attendance-backend-go/internal/domain/auth"
	"github.com/sekolahku/attendance-backend-go/internal/domain/teacher"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/jwt"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/validator"
)

type stubTeacherRepo struct {
	teacher.TeacherRepository
	byEmail map[string]teacher.Teacher
	byID    map[string]teacher.Teacher
}

func (r *stubTeacherRepo) GetByEmail(ctx context.Context, email string) (teacher.Teacher, error) {
	t, ok := r.byEmail[email]
	if !ok {
		return teacher.Teacher{}, teacher.ErrTeacherNotFound
	}
	return t, nil
}

func (r *stubTeacherRepo) GetByID(ctx context.Context, id string) (teacher.Teacher, error) {
	t, ok := r.byID[id]
	if !ok {
		return teacher.Teacher{}, teacher.ErrTeacherNotFound
	}
	return t, nil
}

func newAuthFixture(t *testing.T, password string) (auth.AuthService, jwt.Service, teacher.Teacher) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	registered := teacher.Teacher{
		ID:           "teacher-1",
		FullName:     "Bu Sari",
		Email:        "sari@sekolah.sch.id",
		PasswordHash: string(hash),
		IsAdmin:      true,
	}
	repo := &stubTeacherRepo{
		byEmail: map[string]teacher.Teacher{registered.Email: registered},
		byID:    map[string]teacher.Teacher{registered.ID: registered},
	}

	jwtService := jwt.NewJWTService("test-secret", "15m", "720h")
	return NewAuthService(repo, jwtService), jwtService, registered
}

func TestLogin_Success(t *testing.T) {
	svc, jwtService, registered := newAuthFixture(t, "rahasia123")

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    registered.Email,
		Password: "rahasia123",
	})
	require.NoError(t, err)

	assert.Equal(t, registered.ID, resp.TeacherID)
	assert.True(t, resp.IsAdmin)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	token, err := jwtService.JWTAuth().Decode(resp.AccessToken)
	require.NoError(t, err)
	tokenType, _ := token.Get("type")
	assert.Equal(t, "access", tokenType)
	teacherID, _ := token.Get("teacher_id")
	assert.Equal(t, registered.ID, teacherID)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, registered := newAuthFixture(t, "rahasia123")

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    registered.Email,
		Password: "salah",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailLooksLikeWrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t, "rahasia123")

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@sekolah.sch.id",
		Password: "rahasia123",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_MissingFields(t *testing.T) {
	svc, _, _ := newAuthFixture(t, "rahasia123")

	_, err := svc.Login(context.Background(), auth.LoginRequest{})

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, validationErrs.ToMap(), "email")
	assert.Contains(t, validationErrs.ToMap(), "password")
}

func TestRefresh_IssuesNewAccessToken(t *testing.T) {
	svc, jwtService, registered := newAuthFixture(t, "rahasia123")

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    registered.Email,
		Password: "rahasia123",
	})
	require.NoError(t, err)

	resp, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	token, err := jwtService.JWTAuth().Decode(resp.AccessToken)
	require.NoError(t, err)
	tokenType, _ := token.Get("type")
	assert.Equal(t, "access", tokenType)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc, _, registered := newAuthFixture(t, "rahasia123")

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    registered.Email,
		Password: "rahasia123",
	})
	require.NoError(t, err)

	// An access token must not pass as a refresh token.
	_, err = svc.Refresh(context.Background(), login.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefresh_RejectsGarbage(t *testing.T) {
	svc, _, _ := newAuthFixture(t, "rahasia123")

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
