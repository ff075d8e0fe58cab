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

type studentService interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	Get(ctx context.Context, id int64) (*models.Student, error)
	Create(ctx context.Context, req service.StudentRequest) (*models.Student, error)
	Update(ctx context.Context, id int64, req service.StudentRequest) (*models.Student, error)
	Delete(ctx context.Context, id int64) error
	Enrollments(ctx context.Context, id int64) ([]models.EnrollmentDetail, error)
	Guardians(ctx context.Context, id int64) ([]models.Guardian, error)
}

// StudentHandler exposes student endpoints.
type StudentHandler struct {
	students studentService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students studentService) *StudentHandler {
	return &StudentHandler{students: students}
}

// List godoc
// @Summary List students
// @Tags Alumnos
// @Produce json
// @Param buscar query string false "Search by nombres, apellidos or dni"
// @Param grado query string false "Filter by grade"
// @Success 200 {object} response.ListPayload
// @Router /alumnos [get]
func (h *StudentHandler) List(c *gin.Context) {
	filter := models.StudentFilter{Search: search(c), Grade: strings.TrimSpace(c.Query("grado"))}
	students, err := h.students.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, len(students), students)
}

// Get godoc
// @Summary Get student detail
// @Tags Alumnos
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} models.Student
// @Failure 404 {object} response.ErrorPayload
// @Router /alumnos/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	student, err := h.students.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Create godoc
// @Summary Create student
// @Tags Alumnos
// @Accept json
// @Produce json
// @Param payload body service.StudentRequest true "Student payload"
// @Success 201 {object} models.Student
// @Failure 400 {object} response.ErrorPayload
// @Failure 409 {object} response.ErrorPayload
// @Router /alumnos [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req service.StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	student, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Update godoc
// @Summary Update student
// @Tags Alumnos
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param payload body service.StudentRequest true "Student payload"
// @Success 200 {object} models.Student
// @Router /alumnos/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	student, err := h.students.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Delete godoc
// @Summary Delete student
// @Tags Alumnos
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} map[string]string
// @Failure 409 {object} response.ErrorPayload
// @Router /alumnos/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.students.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "alumno eliminado")
}

// Enrollments godoc
// @Summary List enrollments of a student
// @Tags Alumnos
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.ListPayload
// @Router /alumnos/{id}/matriculas [get]
func (h *StudentHandler) Enrollments(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	items, err := h.students.Enrollments(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, len(items), items)
}

// Guardians godoc
// @Summary List guardians of a student
// @Tags Alumnos
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.ListPayload
// @Router /alumnos/{id}/apoderados [get]
func (h *StudentHandler) Guardians(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	items, err := h.students.Guardians(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, len(items), items)
}
