package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/sekolahku/attendance-backend-go/internal/domain/auth"
	"github.com/sekolahku/attendance-backend-go/internal/domain/teacher"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	teacher.TeacherRepository
	jwtService jwt.Service
}

func NewAuthService(teacherRepo teacher.TeacherRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		TeacherRepository: teacherRepo,
		jwtService:        jwtService,
	}
}

// Login implements auth.AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	t, err := s.TeacherRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, teacher.ErrTeacherNotFound) {
			// Do not reveal whether the email exists.
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get teacher by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(t.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	accessToken, accessExpiresAt, err := s.jwtService.GenerateAccessToken(t.ID, t.Email, t.IsAdmin)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(t.ID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  accessExpiresAt,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshExpiresAt,
		TeacherID:             t.ID,
		IsAdmin:               t.IsAdmin,
	}, nil
}

// Refresh implements auth.AuthService.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.RefreshResponse, error) {
	token, err := s.jwtService.JWTAuth().Decode(refreshToken)
	if err != nil {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "refresh" {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	teacherIDVal, ok := token.Get("teacher_id")
	if !ok {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}
	teacherID, ok := teacherIDVal.(string)
	if !ok || teacherID == "" {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	t, err := s.TeacherRepository.GetByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, teacher.ErrTeacherNotFound) {
			return auth.RefreshResponse{}, auth.ErrInvalidToken
		}
		return auth.RefreshResponse{}, fmt.Errorf("failed to get teacher: %w", err)
	}

	accessToken, accessExpiresAt, err := s.jwtService.GenerateAccessToken(t.ID, t.Email, t.IsAdmin)
	if err != nil {
		return auth.RefreshResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.RefreshResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresIn: accessExpiresAt,
	}, nil
}
