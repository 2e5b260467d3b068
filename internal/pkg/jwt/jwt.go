package jwt

import (
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	GenerateAccessToken(teacherID string, email string, isAdmin bool) (token string, expiresAt int64, err error)
	GenerateRefreshToken(teacherID string) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
}

type JWTService struct {
	secretKey         string
	accessExpiration  string
	refreshExpiration string
	tokenAuth         *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessExpiration string, refreshExpiration string) Service {
	return &JWTService{
		secretKey:         secretKey,
		accessExpiration:  accessExpiration,
		refreshExpiration: refreshExpiration,
		tokenAuth:         jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(teacherID string, email string, isAdmin bool) (string, int64, error) {
	expDuration, err := time.ParseDuration(j.accessExpiration)
	if err != nil {
		return "", 0, err
	}
	expiresAt := time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"teacher_id": teacherID,
		"email":      email,
		"is_admin":   isAdmin,
		"type":       "access",
		"exp":        expiresAt,
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) GenerateRefreshToken(teacherID string) (string, int64, error) {
	expDuration, err := time.ParseDuration(j.refreshExpiration)
	if err != nil {
		return "", 0, err
	}
	expiresAt := time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"teacher_id": teacherID,
		"type":       "refresh",
		"exp":        expiresAt,
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/api/v1/auth",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
	}
}
