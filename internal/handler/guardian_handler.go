package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ingenio-api/internal/models"
	"github.com/noah-isme/ingenio-api/internal/service"
	"github.com/noah-isme/ingenio-api/pkg/response"
)

type guardianService interface {
	List(ctx context.Context, filter models.GuardianFilter) ([]models.GuardianDetail, error)
	Get(ctx context.Context, id int64) (*models.GuardianDetail, error)
	Create(ctx context.Context, req service.CreateGuardianRequest) (*models.GuardianDetail, error)
	Update(ctx context.Context, id int64, req service.UpdateGuardianRequest) (*models.GuardianDetail, error)
	LinkStudent(ctx context.Context, guardianID int64, req service.LinkStudentRequest) (*models.GuardianDetail, error)
	UnlinkStudent(ctx context.Context, guardianID, studentID int64) error
	Delete(ctx context.Context, id int64) error
}

// GuardianHandler exposes guardian endpoints.
type GuardianHandler struct {
	guardians guardianService
}

// NewGuardianHandler constructs GuardianHandler.
func NewGuardianHandler(guardians guardianService) *GuardianHandler {
	return &GuardianHandler{guardians: guardians}
}

// List godoc
// @Summary List guardians with their students
// @Tags Apoderados
// @Produce json
// @Param buscar query string false "Search by nombres"
// @Success 200 {object} response.ListPayload
// @Router /apoderados [get]
func (h *GuardianHandler) List(c *gin.Context) {
	items, err := h.guardians.List(c.Request.Context(), models.GuardianFilter{Search: search(c)})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, len(items), items)
}

// Get godoc
// @Summary Get guardian
// @Tags Apoderados
// @Param id path int true "Guardian ID"
// @Success 200 {object} models.GuardianDetail
// @Router /apoderados/{id} [get]
func (h *GuardianHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.guardians.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// Create godoc
// @Summary Create guardian linked to a student
// @Tags Apoderados
// @Accept json
// @Produce json
// @Param payload body service.CreateGuardianRequest true "Guardian payload"
// @Success 201 {object} models.GuardianDetail
// @Failure 404 {object} response.ErrorPayload
// @Router /apoderados [post]
func (h *GuardianHandler) Create(c *gin.Context) {
	var req service.CreateGuardianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	item, err := h.guardians.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update guardian
// @Tags Apoderados
// @Accept json
// @Param id path int true "Guardian ID"
// @Param payload body service.UpdateGuardianRequest true "Guardian payload"
// @Success 200 {object} models.GuardianDetail
// @Router /apoderados/{id} [put]
func (h *GuardianHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.UpdateGuardianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	item, err := h.guardians.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// LinkStudent godoc
// @Summary Link another student to a guardian
// @Tags Apoderados
// @Accept json
// @Param id path int true "Guardian ID"
// @Param payload body service.LinkStudentRequest true "Student to link"
// @Success 201 {object} models.GuardianDetail
// @Failure 409 {object} response.ErrorPayload
// @Router /apoderados/{id}/alumnos [post]
func (h *GuardianHandler) LinkStudent(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.LinkStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	item, err := h.guardians.LinkStudent(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// UnlinkStudent godoc
// @Summary Remove a guardian/student link
// @Tags Apoderados
// @Param id path int true "Guardian ID"
// @Param alumno_id path int true "Student ID"
// @Success 200 {object} map[string]string
// @Router /apoderados/{id}/alumnos/{alumno_id} [delete]
func (h *GuardianHandler) UnlinkStudent(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	studentID, err := pathID(c, "alumno_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.guardians.UnlinkStudent(c.Request.Context(), id, studentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "vinculo eliminado")
}

// Delete godoc
// @Summary Delete guardian and its links
// @Tags Apoderados
// @Param id path int true "Guardian ID"
// @Success 200 {object} map[string]string
// @Router /apoderados/{id} [delete]
func (h *GuardianHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.guardians.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "apoderado eliminado")
}
