package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/noah-isme/ingenio-api/internal/models"
	"github.com/noah-isme/ingenio-api/internal/repository"
	appErrors "github.com/noah-isme/ingenio-api/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error)
	FindByID(ctx context.Context, id int64) (*models.Course, error)
	ExistsByNameLevel(ctx context.Context, name, level string, excludeID int64) (bool, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	CountEnrollments(ctx context.Context, id int64) (int, error)
	Delete(ctx context.Context, id int64) error
}

type courseEnrollmentLister interface {
	List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentDetail, error)
}

// CourseRequest holds payload for creating or updating courses.
type CourseRequest struct {
	Name      string           `json:"nombre" validate:"required,max=100"`
	Level     string           `json:"nivel" validate:"required,max=50"`
	BasePrice *decimal.Decimal `json:"precio_base"`
}

// CourseService handles course use-cases.
type CourseService struct {
	repo        courseRepository
	enrollments courseEnrollmentLister
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewCourseService constructs the course service.
func NewCourseService(repo courseRepository, enrollments courseEnrollmentLister, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, enrollments: enrollments, validator: validate, logger: logger}
}

// List returns courses matching the filter.
func (s *CourseService) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error) {
	courses, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list courses")
	}
	return courses, nil
}

// Get returns a single course.
func (s *CourseService) Get(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Internal(err, "failed to load course")
	}
	return course, nil
}

// Create registers a course. (nombre, nivel) must be unique.
func (s *CourseService) Create(ctx context.Context, req CourseRequest) (*models.Course, error) {
	price, err := s.validate(req)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, req.Name, req.Level, 0); err != nil {
		return nil, err
	}
	course := &models.Course{Name: req.Name, Level: req.Level, BasePrice: price}
	if err := s.repo.Create(ctx, course); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "course already exists for this level")
		}
		return nil, appErrors.Internal(err, "failed to create course")
	}
	return course, nil
}

// Update modifies a course, re-checking uniqueness against every other course.
func (s *CourseService) Update(ctx context.Context, id int64, req CourseRequest) (*models.Course, error) {
	price, err := s.validate(req)
	if err != nil {
		return nil, err
	}
	course, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, req.Name, req.Level, id); err != nil {
		return nil, err
	}
	course.Name = req.Name
	course.Level = req.Level
	course.BasePrice = price
	if err := s.repo.Update(ctx, course); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		case errors.Is(err, repository.ErrDuplicate):
			return nil, appErrors.Clone(appErrors.ErrConflict, "course already exists for this level")
		}
		return nil, appErrors.Internal(err, "failed to update course")
	}
	return course, nil
}

// Delete removes a course that has no enrollments.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	count, err := s.repo.CountEnrollments(ctx, id)
	if err != nil {
		return appErrors.Internal(err, "failed to check course enrollments")
	}
	if count > 0 {
		return appErrors.Clone(appErrors.ErrConflict, "course has enrollments")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return appErrors.Clone(appErrors.ErrNotFound, "course not found")
		case errors.Is(err, repository.ErrReferenced):
			return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "course has enrollments")
		}
		return appErrors.Internal(err, "failed to delete course")
	}
	return nil
}

// Enrollments lists enrollments of a course.
func (s *CourseService) Enrollments(ctx context.Context, id int64) ([]models.EnrollmentDetail, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	items, err := s.enrollments.List(ctx, models.EnrollmentFilter{CourseID: id})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list course enrollments")
	}
	return items, nil
}

func (s *CourseService) validate(req CourseRequest) (decimal.Decimal, error) {
	if err := s.validator.Struct(req); err != nil {
		return decimal.Zero, appErrors.Validation(err, "invalid course payload")
	}
	if req.BasePrice == nil {
		return decimal.Zero, nil
	}
	if req.BasePrice.IsNegative() {
		return decimal.Zero, appErrors.Clone(appErrors.ErrValidation, "precio_base must not be negative")
	}
	return *req.BasePrice, nil
}

func (s *CourseService) ensureUnique(ctx context.Context, name, level string, excludeID int64) error {
	exists, err := s.repo.ExistsByNameLevel(ctx, name, level, excludeID)
	if err != nil {
		return appErrors.Internal(err, "failed to validate course")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "course already exists for this level")
	}
	return nil
}
