package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ingenio-api/internal/models"
	"github.com/noah-isme/ingenio-api/internal/service"
	"github.com/noah-isme/ingenio-api/pkg/response"
)

type paymentService interface {
	RecordPayment(ctx context.Context, req service.RecordPaymentRequest) (*models.PaymentReceipt, error)
	ListPayments(ctx context.Context, filter models.PaymentFilter) ([]models.PaymentDetail, error)
	UpdatePayment(ctx context.Context, id int64, req service.UpdatePaymentRequest) (*models.Payment, error)
	DeletePayment(ctx context.Context, id int64) error
}

// PaymentHandler exposes payment endpoints. Every route requires a bearer token.
type PaymentHandler struct {
	billing paymentService
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(billing paymentService) *PaymentHandler {
	return &PaymentHandler{billing: billing}
}

// List godoc
// @Summary List payments
// @Tags Pagos
// @Security BearerAuth
// @Produce json
// @Param buscar query string false "Search by student, course or periodo"
// @Success 200 {object} response.ListPayload
// @Router /pagos [get]
func (h *PaymentHandler) List(c *gin.Context) {
	items, err := h.billing.ListPayments(c.Request.Context(), models.PaymentFilter{Search: search(c)})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, len(items), items)
}

// Record godoc
// @Summary Record a payment against a fee line-item
// @Description A payment that leaves a balance must carry fecha_limite_saldo.
// @Tags Pagos
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body service.RecordPaymentRequest true "Payment payload"
// @Success 201 {object} models.PaymentReceipt
// @Failure 400 {object} response.ErrorPayload
// @Failure 404 {object} response.ErrorPayload
// @Router /pagos [post]
func (h *PaymentHandler) Record(c *gin.Context) {
	var req service.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	receipt, err := h.billing.RecordPayment(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, receipt)
}

// Update godoc
// @Summary Update payment amount and date
// @Tags Pagos
// @Security BearerAuth
// @Accept json
// @Param id path int true "Payment ID"
// @Param payload body service.UpdatePaymentRequest true "Payment payload"
// @Success 200 {object} models.Payment
// @Router /pagos/{id} [put]
func (h *PaymentHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	payment, err := h.billing.UpdatePayment(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payment)
}

// Delete godoc
// @Summary Delete payment
// @Tags Pagos
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Success 200 {object} map[string]string
// @Router /pagos/{id} [delete]
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.billing.DeletePayment(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "pago eliminado")
}
