package teacher

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/sekolahku/attendance-backend-go/internal/domain/teacher"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/database"
	"golang.org/x/crypto/bcrypt"
)

type TeacherServiceImpl struct {
	teacher.TeacherRepository
	inTx database.TxRunner
}

func NewTeacherService(teacherRepo teacher.TeacherRepository, inTx database.TxRunner) teacher.TeacherService {
	if inTx == nil {
		inTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		}
	}
	return &TeacherServiceImpl{
		TeacherRepository: teacherRepo,
		inTx:              inTx,
	}
}

// Create implements teacher.TeacherService.
func (s *TeacherServiceImpl) Create(ctx context.Context, req teacher.CreateTeacherRequest) (teacher.TeacherResponse, error) {
	if err := req.Validate(); err != nil {
		return teacher.TeacherResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return teacher.TeacherResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.TeacherRepository.Create(ctx, teacher.Teacher{
		NIP:          req.NIP,
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hashed),
		IsAdmin:      req.IsAdmin,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
	})
	if err != nil {
		if errors.Is(err, teacher.ErrEmailExists) || errors.Is(err, teacher.ErrNIPExists) {
			return teacher.TeacherResponse{}, err
		}
		return teacher.TeacherResponse{}, fmt.Errorf("failed to create teacher: %w", err)
	}

	return mapTeacherToResponse(created), nil
}

// Get implements teacher.TeacherService.
func (s *TeacherServiceImpl) Get(ctx context.Context, id string) (teacher.TeacherResponse, error) {
	t, err := s.TeacherRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, teacher.ErrTeacherNotFound) {
			return teacher.TeacherResponse{}, teacher.ErrTeacherNotFound
		}
		return teacher.TeacherResponse{}, fmt.Errorf("failed to get teacher: %w", err)
	}

	return mapTeacherToResponse(t), nil
}

// List implements teacher.TeacherService.
func (s *TeacherServiceImpl) List(ctx context.Context, filter teacher.TeacherFilter) (teacher.ListTeacherResponse, error) {
	filter.Normalize()

	teachers, total, err := s.TeacherRepository.List(ctx, filter)
	if err != nil {
		return teacher.ListTeacherResponse{}, fmt.Errorf("failed to list teachers: %w", err)
	}

	responses := make([]teacher.TeacherResponse, 0, len(teachers))
	for _, t := range teachers {
		responses = append(responses, mapTeacherToResponse(t))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return teacher.ListTeacherResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Teachers:   responses,
	}, nil
}

// Update implements teacher.TeacherService. The read-modify-write runs in a
// transaction so a concurrent update cannot interleave between the read and
// the write.
func (s *TeacherServiceImpl) Update(ctx context.Context, req teacher.UpdateTeacherRequest) (teacher.TeacherResponse, error) {
	if err := req.Validate(); err != nil {
		return teacher.TeacherResponse{}, err
	}

	var updated teacher.Teacher
	err := s.inTx(ctx, func(ctx context.Context) error {
		t, err := s.TeacherRepository.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}

		if req.FullName != nil {
			t.FullName = *req.FullName
		}
		if req.Email != nil {
			t.Email = *req.Email
		}
		if req.IsAdmin != nil {
			t.IsAdmin = *req.IsAdmin
		}
		if req.Password != nil {
			hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
			t.PasswordHash = string(hashed)
		}

		if err := s.TeacherRepository.Update(ctx, t); err != nil {
			return err
		}

		updated, err = s.TeacherRepository.GetByID(ctx, req.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, teacher.ErrTeacherNotFound) || errors.Is(err, teacher.ErrEmailExists) {
			return teacher.TeacherResponse{}, err
		}
		return teacher.TeacherResponse{}, fmt.Errorf("failed to update teacher: %w", err)
	}

	return mapTeacherToResponse(updated), nil
}

// SetDesignatedLocation implements teacher.TeacherService.
func (s *TeacherServiceImpl) SetDesignatedLocation(ctx context.Context, req teacher.SetLocationRequest) (teacher.TeacherResponse, error) {
	if err := req.Validate(); err != nil {
		return teacher.TeacherResponse{}, err
	}

	var updated teacher.Teacher
	err := s.inTx(ctx, func(ctx context.Context) error {
		if err := s.TeacherRepository.SetDesignatedLocation(ctx, req.ID, req.Latitude, req.Longitude); err != nil {
			return err
		}

		var err error
		updated, err = s.TeacherRepository.GetByID(ctx, req.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, teacher.ErrTeacherNotFound) {
			return teacher.TeacherResponse{}, teacher.ErrTeacherNotFound
		}
		return teacher.TeacherResponse{}, fmt.Errorf("failed to set designated location: %w", err)
	}

	return mapTeacherToResponse(updated), nil
}

// Delete implements teacher.TeacherService.
func (s *TeacherServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.TeacherRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, teacher.ErrTeacherNotFound) {
			return teacher.ErrTeacherNotFound
		}
		return fmt.Errorf("failed to delete teacher: %w", err)
	}
	return nil
}

func mapTeacherToResponse(t teacher.Teacher) teacher.TeacherResponse {
	return teacher.TeacherResponse{
		ID:        t.ID,
		NIP:       t.NIP,
		FullName:  t.FullName,
		Email:     t.Email,
		IsAdmin:   t.IsAdmin,
		Latitude:  t.Latitude,
		Longitude: t.Longitude,
		CreatedAt: t.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: t.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
