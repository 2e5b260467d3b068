package file

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/storage"
)

// PhotoPairRefs holds the storage references of one submitted photo pair.
type PhotoPairRefs struct {
	Photo1 string
	Photo2 string
}

type FileService interface {
	// UploadAttendancePhotoPair stores both proof photos for one attempt and
	// returns their references. If the second upload fails the first is
	// removed again so no half-pair is left behind.
	UploadAttendancePhotoPair(ctx context.Context, teacherID string, date time.Time, phase string,
		photo1 io.Reader, photo1Name string, photo2 io.Reader, photo2Name string) (PhotoPairRefs, error)

	// DeletePhotoPair removes both photos of a rejected attempt. Best-effort:
	// failures are logged and never surfaced to the caller, the primary
	// rejection already explains the outcome.
	DeletePhotoPair(ctx context.Context, refs PhotoPairRefs)

	// PublicURL resolves a stored reference to its public read URL.
	PublicURL(ref string) string
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

func (s *fileServiceImpl) UploadAttendancePhotoPair(ctx context.Context, teacherID string, date time.Time, phase string,
	photo1 io.Reader, photo1Name string, photo2 io.Reader, photo2Name string) (PhotoPairRefs, error) {

	ref1, err := s.uploadAttendancePhoto(ctx, teacherID, date, phase, photo1, photo1Name)
	if err != nil {
		return PhotoPairRefs{}, fmt.Errorf("failed to upload first proof photo: %w", err)
	}

	ref2, err := s.uploadAttendancePhoto(ctx, teacherID, date, phase, photo2, photo2Name)
	if err != nil {
		if delErr := s.storage.Delete(ctx, ref1); delErr != nil {
			slog.Error("failed to clean up orphaned proof photo", "ref", ref1, "error", delErr)
		}
		return PhotoPairRefs{}, fmt.Errorf("failed to upload second proof photo: %w", err)
	}

	return PhotoPairRefs{Photo1: ref1, Photo2: ref2}, nil
}

func (s *fileServiceImpl) uploadAttendancePhoto(ctx context.Context, teacherID string, date time.Time, phase string,
	photo io.Reader, filename string) (string, error) {

	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return "", fmt.Errorf("invalid file type: only jpg, jpeg, png allowed")
	}

	contentType := "image/jpeg"
	if ext == ".png" {
		contentType = "image/png"
	}

	// attendance/{date}/{teacherID}-{phase}-{uuid}{ext}
	newFilename := fmt.Sprintf("%s-%s-%s%s", teacherID, phase, uuid.New().String(), ext)
	path := filepath.Join("attendance", date.Format("2006-01-02"), newFilename)

	return s.storage.Upload(ctx, photo, path, contentType)
}

func (s *fileServiceImpl) DeletePhotoPair(ctx context.Context, refs PhotoPairRefs) {
	for _, ref := range []string{refs.Photo1, refs.Photo2} {
		if ref == "" {
			continue
		}
		if err := s.storage.Delete(ctx, ref); err != nil {
			slog.Error("failed to delete proof photo", "ref", ref, "error", err)
		}
	}
}

func (s *fileServiceImpl) PublicURL(ref string) string {
	return s.storage.PublicURL(ref)
}
