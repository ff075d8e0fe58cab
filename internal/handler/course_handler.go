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

type courseService interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error)
	Get(ctx context.Context, id int64) (*models.Course, error)
	Create(ctx context.Context, req service.CourseRequest) (*models.Course, error)
	Update(ctx context.Context, id int64, req service.CourseRequest) (*models.Course, error)
	Delete(ctx context.Context, id int64) error
	Enrollments(ctx context.Context, id int64) ([]models.EnrollmentDetail, error)
}

// CourseHandler exposes course endpoints.
type CourseHandler struct {
	courses courseService
}

// NewCourseHandler constructs CourseHandler.
func NewCourseHandler(courses courseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// List godoc
// @Summary List courses
// @Tags Cursos
// @Produce json
// @Param buscar query string false "Search by nombre"
// @Param nivel query string false "Filter by level"
// @Success 200 {object} response.ListPayload
// @Router /cursos [get]
func (h *CourseHandler) List(c *gin.Context) {
	filter := models.CourseFilter{Search: search(c), Level: strings.TrimSpace(c.Query("nivel"))}
	courses, err := h.courses.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, len(courses), courses)
}

// Get godoc
// @Summary Get course
// @Tags Cursos
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} models.Course
// @Router /cursos/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	course, err := h.courses.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course)
}

// Create godoc
// @Summary Create course
// @Tags Cursos
// @Accept json
// @Produce json
// @Param payload body service.CourseRequest true "Course payload"
// @Success 201 {object} models.Course
// @Failure 409 {object} response.ErrorPayload
// @Router /cursos [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var req service.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	course, err := h.courses.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// Update godoc
// @Summary Update course
// @Tags Cursos
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param payload body service.CourseRequest true "Course payload"
// @Success 200 {object} models.Course
// @Router /cursos/{id} [put]
func (h *CourseHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	course, err := h.courses.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course)
}

// Delete godoc
// @Summary Delete course without enrollments
// @Tags Cursos
// @Param id path int true "Course ID"
// @Success 200 {object} map[string]string
// @Failure 409 {object} response.ErrorPayload
// @Router /cursos/{id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.courses.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "curso eliminado")
}

// Enrollments godoc
// @Summary List enrollments of a course
// @Tags Cursos
// @Param id path int true "Course ID"
// @Success 200 {object} response.ListPayload
// @Router /cursos/{id}/matriculas [get]
func (h *CourseHandler) Enrollments(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	items, err := h.courses.Enrollments(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, len(items), items)
}
