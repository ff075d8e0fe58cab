package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ingenio-api/internal/models"
	"github.com/noah-isme/ingenio-api/internal/service"
	"github.com/noah-isme/ingenio-api/pkg/response"
)

type enrollmentService interface {
	List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentDetail, error)
	Get(ctx context.Context, id int64) (*models.EnrollmentDetail, error)
	Create(ctx context.Context, req service.CreateEnrollmentRequest) (*models.EnrollmentDetail, error)
	UpdateStatus(ctx context.Context, id int64, req service.UpdateEnrollmentStatusRequest) (*models.EnrollmentDetail, error)
	Delete(ctx context.Context, id int64) error
}

// EnrollmentHandler exposes enrollment endpoints.
type EnrollmentHandler struct {
	enrollments enrollmentService
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(enrollments enrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

// List godoc
// @Summary List enrollments with paid total and balance
// @Tags Matriculas
// @Produce json
// @Param estado query string false "ACTIVO, INACTIVO or FINALIZADO"
// @Param buscar query string false "Search by student name or dni"
// @Param alumno_id query int false "Student ID"
// @Param curso_id query int false "Course ID"
// @Success 200 {object} response.ListPayload
// @Router /matriculas [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	filter := models.EnrollmentFilter{
		Status: models.EnrollmentStatus(strings.ToUpper(strings.TrimSpace(c.Query("estado")))),
		Search: search(c),
	}
	var err error
	if filter.StudentID, err = queryID(c, "alumno_id"); err != nil {
		response.Error(c, err)
		return
	}
	if filter.CourseID, err = queryID(c, "curso_id"); err != nil {
		response.Error(c, err)
		return
	}
	items, err := h.enrollments.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, len(items), items)
}

// Get godoc
// @Summary Get enrollment
// @Tags Matriculas
// @Param id path int true "Enrollment ID"
// @Success 200 {object} models.EnrollmentDetail
// @Router /matriculas/{id} [get]
func (h *EnrollmentHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.enrollments.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// Create godoc
// @Summary Enroll a student into a course
// @Tags Matriculas
// @Accept json
// @Produce json
// @Param payload body service.CreateEnrollmentRequest true "Enrollment payload"
// @Success 201 {object} models.EnrollmentDetail
// @Router /matriculas [post]
func (h *EnrollmentHandler) Create(c *gin.Context) {
	var req service.CreateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	item, err := h.enrollments.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// UpdateStatus godoc
// @Summary Change enrollment status
// @Tags Matriculas
// @Accept json
// @Param id path int true "Enrollment ID"
// @Param payload body service.UpdateEnrollmentStatusRequest true "Status payload"
// @Success 200 {object} models.EnrollmentDetail
// @Router /matriculas/{id} [put]
func (h *EnrollmentHandler) UpdateStatus(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.UpdateEnrollmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	item, err := h.enrollments.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// Delete godoc
// @Summary Delete enrollment
// @Tags Matriculas
// @Param id path int true "Enrollment ID"
// @Success 200 {object} map[string]string
// @Router /matriculas/{id} [delete]
func (h *EnrollmentHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.enrollments.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "matricula eliminada")
}
