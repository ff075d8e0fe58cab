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

type guardianRepository interface {
	List(ctx context.Context, filter models.GuardianFilter) ([]models.Guardian, error)
	FindByID(ctx context.Context, id int64) (*models.Guardian, error)
	StudentsFor(ctx context.Context, guardianIDs []int64) ([]models.GuardianStudent, error)
	CreateWithStudent(ctx context.Context, guardian *models.Guardian, studentID int64) error
	Update(ctx context.Context, guardian *models.Guardian) error
	Link(ctx context.Context, guardianID, studentID int64) error
	Unlink(ctx context.Context, guardianID, studentID int64) error
	Delete(ctx context.Context, id int64) error
}

type studentFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Student, error)
}

// CreateGuardianRequest creates a guardian together with its first student link.
type CreateGuardianRequest struct {
	Name      string `json:"nombres" validate:"required,max=150"`
	Phone     string `json:"telefono" validate:"omitempty,max=20"`
	StudentID int64  `json:"alumno_id" validate:"required,gt=0"`
}

// UpdateGuardianRequest changes guardian contact data.
type UpdateGuardianRequest struct {
	Name  string `json:"nombres" validate:"required,max=150"`
	Phone string `json:"telefono" validate:"omitempty,max=20"`
}

// LinkStudentRequest attaches another student to a guardian.
type LinkStudentRequest struct {
	StudentID int64 `json:"alumno_id" validate:"required,gt=0"`
}

// GuardianService handles guardians and their student links.
type GuardianService struct {
	repo      guardianRepository
	students  studentFinder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGuardianService constructs the guardian service.
func NewGuardianService(repo guardianRepository, students studentFinder, validate *validator.Validate, logger *zap.Logger) *GuardianService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GuardianService{repo: repo, students: students, validator: validate, logger: logger}
}

// List returns guardians with their linked students.
func (s *GuardianService) List(ctx context.Context, filter models.GuardianFilter) ([]models.GuardianDetail, error) {
	guardians, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list guardians")
	}
	return s.withStudents(ctx, guardians)
}

// Get returns one guardian with its linked students.
func (s *GuardianService) Get(ctx context.Context, id int64) (*models.GuardianDetail, error) {
	guardian, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	details, err := s.withStudents(ctx, []models.Guardian{*guardian})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// Create inserts the guardian and links it to the given student atomically.
// When the student does not exist nothing is written.
func (s *GuardianService) Create(ctx context.Context, req CreateGuardianRequest) (*models.GuardianDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid guardian payload")
	}
	if err := s.ensureStudent(ctx, req.StudentID); err != nil {
		return nil, err
	}
	guardian := &models.Guardian{Name: req.Name, Phone: req.Phone}
	if err := s.repo.CreateWithStudent(ctx, guardian, req.StudentID); err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Internal(err, "failed to create guardian")
	}
	s.logger.Info("guardian created", zap.Int64("guardian_id", guardian.ID), zap.Int64("student_id", req.StudentID))
	return s.Get(ctx, guardian.ID)
}

// Update changes guardian contact data.
func (s *GuardianService) Update(ctx context.Context, id int64, req UpdateGuardianRequest) (*models.GuardianDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid guardian payload")
	}
	guardian := &models.Guardian{ID: id, Name: req.Name, Phone: req.Phone}
	if err := s.repo.Update(ctx, guardian); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "guardian not found")
		}
		return nil, appErrors.Internal(err, "failed to update guardian")
	}
	return s.Get(ctx, id)
}

// LinkStudent attaches another student to an existing guardian.
func (s *GuardianService) LinkStudent(ctx context.Context, guardianID int64, req LinkStudentRequest) (*models.GuardianDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid link payload")
	}
	if _, err := s.find(ctx, guardianID); err != nil {
		return nil, err
	}
	if err := s.ensureStudent(ctx, req.StudentID); err != nil {
		return nil, err
	}
	if err := s.repo.Link(ctx, guardianID, req.StudentID); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, appErrors.Clone(appErrors.ErrConflict, "student already linked to guardian")
		case errors.Is(err, repository.ErrReferenced):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "guardian or student not found")
		}
		return nil, appErrors.Internal(err, "failed to link student")
	}
	return s.Get(ctx, guardianID)
}

// UnlinkStudent removes a guardian/student link.
func (s *GuardianService) UnlinkStudent(ctx context.Context, guardianID, studentID int64) error {
	if err := s.repo.Unlink(ctx, guardianID, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "link not found")
		}
		return appErrors.Internal(err, "failed to unlink student")
	}
	return nil
}

// Delete removes the guardian and all of its links.
func (s *GuardianService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "guardian not found")
		}
		return appErrors.Internal(err, "failed to delete guardian")
	}
	return nil
}

func (s *GuardianService) find(ctx context.Context, id int64) (*models.Guardian, error) {
	guardian, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "guardian not found")
		}
		return nil, appErrors.Internal(err, "failed to load guardian")
	}
	return guardian, nil
}

func (s *GuardianService) ensureStudent(ctx context.Context, id int64) error {
	if _, err := s.students.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Internal(err, "failed to load student")
	}
	return nil
}

func (s *GuardianService) withStudents(ctx context.Context, guardians []models.Guardian) ([]models.GuardianDetail, error) {
	ids := make([]int64, len(guardians))
	for i, g := range guardians {
		ids[i] = g.ID
	}
	links, err := s.repo.StudentsFor(ctx, ids)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load guardian students")
	}
	byGuardian := make(map[int64][]models.StudentSummary, len(guardians))
	for _, link := range links {
		byGuardian[link.GuardianID] = append(byGuardian[link.GuardianID], link.StudentSummary)
	}
	details := make([]models.GuardianDetail, len(guardians))
	for i, g := range guardians {
		students := byGuardian[g.ID]
		if students == nil {
			students = []models.StudentSummary{}
		}
		details[i] = models.GuardianDetail{Guardian: g, Students: students}
	}
	return details, nil
}
