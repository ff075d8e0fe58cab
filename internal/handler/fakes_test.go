package handler

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/ingenio-api/internal/models"
	"github.com/noah-isme/ingenio-api/internal/service"
	appErrors "github.com/noah-isme/ingenio-api/pkg/errors"
)

var errNotFound = appErrors.Clone(appErrors.ErrNotFound, "not found")

type tokenStub struct{}

func (tokenStub) ValidateToken(token string) (*models.JWTClaims, error) {
	switch token {
	case "admin":
		return &models.JWTClaims{UserID: 1, Username: "admin", Role: models.RoleAdmin}, nil
	case "caja":
		return &models.JWTClaims{UserID: 2, Username: "caja", Role: models.RoleUser}, nil
	}
	return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
}

type studentStub struct {
	lastFilter models.StudentFilter
}

func (s *studentStub) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	s.lastFilter = filter
	return []models.Student{{ID: 1, DNI: "70112233", FirstName: "Ana", LastName: "Quispe"}}, nil
}

func (s *studentStub) Get(ctx context.Context, id int64) (*models.Student, error) {
	if id != 1 {
		return nil, errNotFound
	}
	return &models.Student{ID: 1, DNI: "70112233"}, nil
}

func (s *studentStub) Create(ctx context.Context, req service.StudentRequest) (*models.Student, error) {
	if req.DNI == "70112233" {
		return nil, appErrors.Clone(appErrors.ErrConflict, "dni already registered")
	}
	return &models.Student{ID: 2, DNI: req.DNI, FirstName: req.FirstName, LastName: req.LastName}, nil
}

func (s *studentStub) Update(ctx context.Context, id int64, req service.StudentRequest) (*models.Student, error) {
	return &models.Student{ID: id, DNI: req.DNI}, nil
}

func (s *studentStub) Delete(ctx context.Context, id int64) error { return nil }

func (s *studentStub) Enrollments(ctx context.Context, id int64) ([]models.EnrollmentDetail, error) {
	return []models.EnrollmentDetail{}, nil
}

func (s *studentStub) Guardians(ctx context.Context, id int64) ([]models.Guardian, error) {
	return []models.Guardian{}, nil
}

type courseStub struct{}

func (courseStub) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error) {
	return []models.Course{}, nil
}
func (courseStub) Get(ctx context.Context, id int64) (*models.Course, error) { return nil, errNotFound }
func (courseStub) Create(ctx context.Context, req service.CourseRequest) (*models.Course, error) {
	return &models.Course{ID: 1, Name: req.Name, Level: req.Level}, nil
}
func (courseStub) Update(ctx context.Context, id int64, req service.CourseRequest) (*models.Course, error) {
	return nil, errNotFound
}
func (courseStub) Delete(ctx context.Context, id int64) error {
	return appErrors.Clone(appErrors.ErrConflict, "course has enrollments")
}
func (courseStub) Enrollments(ctx context.Context, id int64) ([]models.EnrollmentDetail, error) {
	return []models.EnrollmentDetail{}, nil
}

type guardianStub struct{}

func (guardianStub) List(ctx context.Context, filter models.GuardianFilter) ([]models.GuardianDetail, error) {
	return []models.GuardianDetail{}, nil
}
func (guardianStub) Get(ctx context.Context, id int64) (*models.GuardianDetail, error) {
	return nil, errNotFound
}
func (guardianStub) Create(ctx context.Context, req service.CreateGuardianRequest) (*models.GuardianDetail, error) {
	return &models.GuardianDetail{
		Guardian: models.Guardian{ID: 1, Name: req.Name},
		Students: []models.StudentSummary{{ID: req.StudentID}},
	}, nil
}
func (guardianStub) Update(ctx context.Context, id int64, req service.UpdateGuardianRequest) (*models.GuardianDetail, error) {
	return nil, errNotFound
}
func (guardianStub) LinkStudent(ctx context.Context, guardianID int64, req service.LinkStudentRequest) (*models.GuardianDetail, error) {
	return nil, appErrors.Clone(appErrors.ErrConflict, "student already linked to guardian")
}
func (guardianStub) UnlinkStudent(ctx context.Context, guardianID, studentID int64) error {
	if studentID != 3 {
		return errNotFound
	}
	return nil
}
func (guardianStub) Delete(ctx context.Context, id int64) error { return nil }

type enrollmentStub struct {
	lastFilter models.EnrollmentFilter
}

func (s *enrollmentStub) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentDetail, error) {
	s.lastFilter = filter
	return []models.EnrollmentDetail{}, nil
}
func (s *enrollmentStub) Get(ctx context.Context, id int64) (*models.EnrollmentDetail, error) {
	return nil, errNotFound
}
func (s *enrollmentStub) Create(ctx context.Context, req service.CreateEnrollmentRequest) (*models.EnrollmentDetail, error) {
	return &models.EnrollmentDetail{Enrollment: models.Enrollment{ID: 1, StudentID: req.StudentID, CourseID: req.CourseID}}, nil
}
func (s *enrollmentStub) UpdateStatus(ctx context.Context, id int64, req service.UpdateEnrollmentStatusRequest) (*models.EnrollmentDetail, error) {
	return &models.EnrollmentDetail{Enrollment: models.Enrollment{ID: id, Status: req.Status}}, nil
}
func (s *enrollmentStub) Delete(ctx context.Context, id int64) error { return nil }

type billingStub struct {
	outstandingCalls int
	lastFeeFilter    models.FeeFilter
}

func (b *billingStub) ListFees(ctx context.Context, filter models.FeeFilter) ([]models.FeeView, error) {
	b.lastFeeFilter = filter
	return []models.FeeView{}, nil
}
func (b *billingStub) ListOutstanding(ctx context.Context, filter models.FeeFilter) ([]models.FeeView, error) {
	b.outstandingCalls++
	return []models.FeeView{{Fee: models.Fee{ID: 4, Status: models.FeeStatusOverdue}, DisplayStatus: models.DisplayStatusPending}}, nil
}
func (b *billingStub) GetFee(ctx context.Context, id int64) (*models.FeeView, error) {
	return nil, errNotFound
}
func (b *billingStub) CreateFee(ctx context.Context, req service.CreateFeeRequest) (*models.Fee, error) {
	return &models.Fee{ID: 1, EnrollmentID: req.EnrollmentID, Period: req.Period, Status: models.FeeStatusPending}, nil
}
func (b *billingStub) DeleteFee(ctx context.Context, id int64) error {
	return appErrors.Clone(appErrors.ErrConflict, "fee has payments")
}
func (b *billingStub) RecordPayment(ctx context.Context, req service.RecordPaymentRequest) (*models.PaymentReceipt, error) {
	if req.BalanceDeadline == nil {
		return nil, service.ErrBalanceDeadlineRequired
	}
	return &models.PaymentReceipt{
		Payment:       models.Payment{ID: 9, FeeID: req.FeeID, Amount: *req.Amount},
		BalanceAfter:  decimal.RequireFromString("50"),
		DisplayStatus: models.DisplayStatusPartial,
	}, nil
}
func (b *billingStub) ListPayments(ctx context.Context, filter models.PaymentFilter) ([]models.PaymentDetail, error) {
	return []models.PaymentDetail{}, nil
}
func (b *billingStub) UpdatePayment(ctx context.Context, id int64, req service.UpdatePaymentRequest) (*models.Payment, error) {
	return nil, errNotFound
}
func (b *billingStub) DeletePayment(ctx context.Context, id int64) error { return nil }

type overdueStub struct {
	calls int
}

func (o *overdueStub) Run(ctx context.Context) (*models.OverdueRun, error) {
	o.calls++
	return &models.OverdueRun{Reclassified: 1, Items: []models.OverdueFee{{ID: 4, Period: "2026-01"}}}, nil
}

type pingStub struct {
	err error
}

func (p pingStub) PingContext(ctx context.Context) error { return p.err }

var errDown = errors.New("connection refused")
