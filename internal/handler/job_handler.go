package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ingenio-api/internal/models"
	appErrors "github.com/noah-isme/ingenio-api/pkg/errors"
	"github.com/noah-isme/ingenio-api/pkg/response"
)

type overdueRunner interface {
	Run(ctx context.Context) (*models.OverdueRun, error)
}

// JobHandler triggers scheduled jobs on demand.
type JobHandler struct {
	overdue overdueRunner
}

// NewJobHandler constructs JobHandler.
func NewJobHandler(overdue overdueRunner) *JobHandler {
	return &JobHandler{overdue: overdue}
}

// RunOverdue godoc
// @Summary Reclassify past-due fees now
// @Tags Jobs
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.OverdueRun
// @Failure 403 {object} response.ErrorPayload
// @Router /jobs/vencimientos/run [post]
func (h *JobHandler) RunOverdue(c *gin.Context) {
	run, err := h.overdue.Run(c.Request.Context())
	if err != nil {
		response.Error(c, appErrors.Internal(err, "overdue reclassification failed"))
		return
	}
	response.JSON(c, http.StatusOK, run)
}
