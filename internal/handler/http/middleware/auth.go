package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/sekolahku/attendance-backend-go/internal/domain/auth"
	"github.com/sekolahku/attendance-backend-go/internal/handler/http/response"
)

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			// Only access tokens open the API; refresh tokens are for /auth.
			if tokenType, ok := claims["type"].(string); !ok || tokenType != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// TeacherIDFromContext extracts the authenticated teacher's id from JWT claims.
func TeacherIDFromContext(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", auth.ErrInvalidToken
	}

	teacherID, ok := claims["teacher_id"].(string)
	if !ok || teacherID == "" {
		return "", auth.ErrInvalidToken
	}
	return teacherID, nil
}
