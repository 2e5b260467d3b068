package http

import (
	"encoding/json"
	"net/http"

	"github.com/sekolahku/attendance-backend-go/internal/domain/auth"
	"github.com/sekolahku/attendance-backend-go/internal/handler/http/response"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/jwt"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	jwtService  jwt.Service
	authService auth.AuthService
}

func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService) AuthHandler {
	return &authHandlerImpl{
		jwtService:  jwtService,
		authService: authService,
	}
}

// Login implements AuthHandler.
func (h *authHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, h.jwtService.RefreshTokenCookie(result.RefreshToken, result.RefreshTokenExpiresAt))
	response.Success(w, result)
}

// Refresh implements AuthHandler.
func (h *authHandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	result, err := h.authService.Refresh(r.Context(), cookie.Value)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
