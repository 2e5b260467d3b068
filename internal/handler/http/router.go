package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sekolahku/attendance-backend-go/internal/handler/http/middleware"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	authHandler AuthHandler,
	teacherHandler TeacherHandler,
	attendanceHandler AttendanceHandler,
	appEnv string,
	uploadsDir string,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "sekolahku-attendance"),
		slog.String("version", "v1.0.0"),
		slog.String("env", appEnv),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Method("GET", "/metrics", promhttp.Handler())

	// Public read URLs for stored proof photos.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))

	submitLimiter := middleware.NewTokenBucket(10, 10)

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.With(submitLimiter.Handler).Post("/", attendanceHandler.Submit)
				r.Get("/status", attendanceHandler.GetStatus)
				r.Get("/my", attendanceHandler.GetMySessions)

				// Admin report queries
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", attendanceHandler.List)
					r.Get("/{id}", attendanceHandler.Get)
				})
			})

			r.Route("/teachers", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", teacherHandler.List)
				r.Post("/", teacherHandler.Create)
				r.Get("/{id}", teacherHandler.Get)
				r.Put("/{id}", teacherHandler.Update)
				r.Put("/{id}/location", teacherHandler.SetLocation)
				r.Delete("/{id}", teacherHandler.Delete)
			})
		})
	})

	return r
}
