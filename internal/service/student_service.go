package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/ingenio-api/internal/models"
	"github.com/noah-isme/ingenio-api/internal/repository"
	appErrors "github.com/noah-isme/ingenio-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	ExistsByDNI(ctx context.Context, dni string, excludeID int64) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

type studentEnrollmentLister interface {
	List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentDetail, error)
}

type studentGuardianLister interface {
	ListByStudent(ctx context.Context, studentID int64) ([]models.Guardian, error)
}

// StudentRequest holds payload for creating or updating students.
type StudentRequest struct {
	DNI       string `json:"dni" validate:"required,max=20"`
	FirstName string `json:"nombres" validate:"required,max=100"`
	LastName  string `json:"apellidos" validate:"required,max=100"`
	Phone     string `json:"telefono" validate:"omitempty,max=20"`
	Grade     string `json:"grado" validate:"omitempty,max=50"`
}

// StudentService handles student use-cases.
type StudentService struct {
	repo        studentRepository
	enrollments studentEnrollmentLister
	guardians   studentGuardianLister
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, enrollments studentEnrollmentLister, guardians studentGuardianLister, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, enrollments: enrollments, guardians: guardians, validator: validate, logger: logger}
}

// List returns students matching the filter.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	students, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list students")
	}
	return students, nil
}

// Get returns a single student.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Internal(err, "failed to load student")
	}
	return student, nil
}

// Create registers a new student. The DNI must be unique.
func (s *StudentService) Create(ctx context.Context, req StudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid student payload")
	}
	if err := s.ensureUniqueDNI(ctx, req.DNI, 0); err != nil {
		return nil, err
	}
	student := &models.Student{
		DNI:       req.DNI,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Grade:     req.Grade,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "dni already registered")
		}
		return nil, appErrors.Internal(err, "failed to create student")
	}
	return student, nil
}

// Update modifies an existing student record.
func (s *StudentService) Update(ctx context.Context, id int64, req StudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid student payload")
	}
	student, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueDNI(ctx, req.DNI, id); err != nil {
		return nil, err
	}
	student.DNI = req.DNI
	student.FirstName = req.FirstName
	student.LastName = req.LastName
	student.Phone = req.Phone
	student.Grade = req.Grade
	if err := s.repo.Update(ctx, student); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		case errors.Is(err, repository.ErrDuplicate):
			return nil, appErrors.Clone(appErrors.ErrConflict, "dni already registered")
		}
		return nil, appErrors.Internal(err, "failed to update student")
	}
	return student, nil
}

// Delete removes a student that no enrollment references.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		case errors.Is(err, repository.ErrReferenced):
			return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "student has enrollments")
		}
		return appErrors.Internal(err, "failed to delete student")
	}
	s.logger.Info("student deleted", zap.Int64("student_id", id))
	return nil
}

// Enrollments lists the enrollments of a student.
func (s *StudentService) Enrollments(ctx context.Context, id int64) ([]models.EnrollmentDetail, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	items, err := s.enrollments.List(ctx, models.EnrollmentFilter{StudentID: id})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list student enrollments")
	}
	return items, nil
}

// Guardians lists the guardians linked to a student.
func (s *StudentService) Guardians(ctx context.Context, id int64) ([]models.Guardian, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	items, err := s.guardians.ListByStudent(ctx, id)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list student guardians")
	}
	return items, nil
}

func (s *StudentService) ensureUniqueDNI(ctx context.Context, dni string, excludeID int64) error {
	exists, err := s.repo.ExistsByDNI(ctx, dni, excludeID)
	if err != nil {
		return appErrors.Internal(err, "failed to validate dni")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "dni already registered")
	}
	return nil
}
