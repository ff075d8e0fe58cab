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

type feeService interface {
	ListFees(ctx context.Context, filter models.FeeFilter) ([]models.FeeView, error)
	ListOutstanding(ctx context.Context, filter models.FeeFilter) ([]models.FeeView, error)
	GetFee(ctx context.Context, id int64) (*models.FeeView, error)
	CreateFee(ctx context.Context, req service.CreateFeeRequest) (*models.Fee, error)
	DeleteFee(ctx context.Context, id int64) error
}

// FeeHandler exposes monthly fee line-item endpoints.
type FeeHandler struct {
	billing feeService
}

// NewFeeHandler constructs FeeHandler.
func NewFeeHandler(billing feeService) *FeeHandler {
	return &FeeHandler{billing: billing}
}

func feeFilter(c *gin.Context) (models.FeeFilter, error) {
	filter := models.FeeFilter{
		Search: search(c),
		Status: models.FeeStatus(strings.ToUpper(strings.TrimSpace(c.Query("estado")))),
	}
	var err error
	filter.EnrollmentID, err = queryID(c, "matricula_id")
	return filter, err
}

// List godoc
// @Summary List fee line-items with payment status
// @Tags Mensualidades
// @Produce json
// @Param buscar query string false "Search by student name or periodo"
// @Param estado query string false "PENDIENTE or VENCIDO"
// @Param matricula_id query int false "Enrollment ID"
// @Success 200 {object} response.ListPayload
// @Router /mensualidades [get]
func (h *FeeHandler) List(c *gin.Context) {
	filter, err := feeFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	items, err := h.billing.ListFees(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, len(items), items)
}

// Outstanding godoc
// @Summary List line-items that still owe money
// @Tags Mensualidades
// @Produce json
// @Success 200 {object} response.ListPayload
// @Router /mensualidades/pendientes [get]
func (h *FeeHandler) Outstanding(c *gin.Context) {
	filter, err := feeFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	items, err := h.billing.ListOutstanding(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, len(items), items)
}

// Get godoc
// @Summary Get fee line-item
// @Tags Mensualidades
// @Param id path int true "Fee ID"
// @Success 200 {object} models.FeeView
// @Router /mensualidades/{id} [get]
func (h *FeeHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.billing.GetFee(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// Create godoc
// @Summary Create fee line-item
// @Tags Mensualidades
// @Accept json
// @Produce json
// @Param payload body service.CreateFeeRequest true "Fee payload"
// @Success 201 {object} models.Fee
// @Router /mensualidades [post]
func (h *FeeHandler) Create(c *gin.Context) {
	var req service.CreateFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	fee, err := h.billing.CreateFee(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, fee)
}

// Delete godoc
// @Summary Delete fee line-item
// @Tags Mensualidades
// @Param id path int true "Fee ID"
// @Success 200 {object} map[string]string
// @Failure 409 {object} response.ErrorPayload
// @Router /mensualidades/{id} [delete]
func (h *FeeHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.billing.DeleteFee(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "mensualidad eliminada")
}
