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

type enrollmentRepository interface {
	List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentDetail, error)
	FindByID(ctx context.Context, id int64) (*models.EnrollmentDetail, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	UpdateStatus(ctx context.Context, id int64, status models.EnrollmentStatus) error
	Delete(ctx context.Context, id int64) error
}

type courseFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Course, error)
}

// CreateEnrollmentRequest enrolls a student into a course. When monto is
// omitted the course base price is charged.
type CreateEnrollmentRequest struct {
	StudentID int64            `json:"alumno_id" validate:"required,gt=0"`
	CourseID  int64            `json:"curso_id" validate:"required,gt=0"`
	Year      int              `json:"anio" validate:"required,min=2000,max=2100"`
	StartDate string           `json:"fecha_inicio" validate:"required,datetime=2006-01-02"`
	Amount    *decimal.Decimal `json:"monto"`
}

// UpdateEnrollmentStatusRequest changes the administrative status.
type UpdateEnrollmentStatusRequest struct {
	Status models.EnrollmentStatus `json:"estado" validate:"required,oneof=ACTIVO INACTIVO FINALIZADO"`
}

// EnrollmentService handles enrollments.
type EnrollmentService struct {
	repo      enrollmentRepository
	students  studentFinder
	courses   courseFinder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService constructs the enrollment service.
func NewEnrollmentService(repo enrollmentRepository, students studentFinder, courses courseFinder, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, students: students, courses: courses, validator: validate, logger: logger}
}

// List returns enrollments with total paid and balance.
func (s *EnrollmentService) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentDetail, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid estado filter")
	}
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list enrollments")
	}
	return items, nil
}

// Get returns one enrollment.
func (s *EnrollmentService) Get(ctx context.Context, id int64) (*models.EnrollmentDetail, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return nil, appErrors.Internal(err, "failed to load enrollment")
	}
	return item, nil
}

// Create enrolls a student as ACTIVO.
func (s *EnrollmentService) Create(ctx context.Context, req CreateEnrollmentRequest) (*models.EnrollmentDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid enrollment payload")
	}
	start, err := parseDate("fecha_inicio", req.StartDate)
	if err != nil {
		return nil, appErrors.Validation(err, "invalid fecha_inicio")
	}
	if _, err := s.students.FindByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Internal(err, "failed to load student")
	}
	course, err := s.courses.FindByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Internal(err, "failed to load course")
	}

	amount := course.BasePrice
	if req.Amount != nil {
		amount = *req.Amount
	}
	if amount.IsNegative() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "monto must not be negative")
	}

	enrollment := &models.Enrollment{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		Year:      req.Year,
		StartDate: start,
		Amount:    amount,
		Status:    models.EnrollmentStatusActive,
	}
	if err := s.repo.Create(ctx, enrollment); err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student or course not found")
		}
		return nil, appErrors.Internal(err, "failed to create enrollment")
	}
	s.logger.Info("enrollment created",
		zap.Int64("enrollment_id", enrollment.ID),
		zap.Int64("student_id", enrollment.StudentID),
		zap.Int64("course_id", enrollment.CourseID))
	return s.Get(ctx, enrollment.ID)
}

// UpdateStatus changes only the administrative status.
func (s *EnrollmentService) UpdateStatus(ctx context.Context, id int64, req UpdateEnrollmentStatusRequest) (*models.EnrollmentDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid estado")
	}
	if err := s.repo.UpdateStatus(ctx, id, req.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return nil, appErrors.Internal(err, "failed to update enrollment")
	}
	return s.Get(ctx, id)
}

// Delete removes an enrollment. Attached line-items are not checked here.
func (s *EnrollmentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		case errors.Is(err, repository.ErrReferenced):
			return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "enrollment is still referenced")
		}
		return appErrors.Internal(err, "failed to delete enrollment")
	}
	return nil
}
