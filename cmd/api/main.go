package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sekolahku/attendance-backend-go/internal/config"
	appHTTP "github.com/sekolahku/attendance-backend-go/internal/handler/http"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/database"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/jwt"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/storage"
	"github.com/sekolahku/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/sekolahku/attendance-backend-go/internal/service/attendance"
	authService "github.com/sekolahku/attendance-backend-go/internal/service/auth"
	"github.com/sekolahku/attendance-backend-go/internal/service/file"
	teacherService "github.com/sekolahku/attendance-backend-go/internal/service/teacher"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Printf("unknown timezone %q, falling back to UTC", cfg.App.Timezone)
		loc = time.UTC
	}

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			return fmt.Errorf("failed to initialize local storage: %w", err)
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}

	teacherRepo := postgresql.NewTeacherRepository(db)
	sessionRepo := postgresql.NewSessionRepository(db)

	runInTx := func(ctx context.Context, fn func(ctx context.Context) error) error {
		return postgresql.WithTransaction(ctx, db, fn)
	}

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	fileSvc := file.NewFileService(fileStorage)
	authSvc := authService.NewAuthService(teacherRepo, jwtSvc)
	teacherSvc := teacherService.NewTeacherService(teacherRepo, runInTx)
	sessionSvc := attendanceService.NewSessionService(sessionRepo, teacherRepo, fileSvc, loc)

	authHandler := appHTTP.NewAuthHandler(jwtSvc, authSvc)
	teacherHandler := appHTTP.NewTeacherHandler(teacherSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(sessionSvc)

	router := appHTTP.NewRouter(
		jwtSvc,
		authHandler,
		teacherHandler,
		attendanceHandler,
		cfg.App.Env,
		cfg.Storage.BasePath,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("server running at http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	return nil
}
