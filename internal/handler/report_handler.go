package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ingenio-api/internal/models"
	"github.com/noah-isme/ingenio-api/internal/service"
	"github.com/noah-isme/ingenio-api/pkg/response"
)

type reportService interface {
	OverdueStudents(ctx context.Context) ([]models.OverdueStudent, error)
	Revenue(ctx context.Context, filter models.RevenueFilter) ([]models.RevenuePeriod, error)
	Stats(ctx context.Context) (*models.GeneralStats, error)
	ExportOverdueStudents(ctx context.Context, format service.ReportFormat) (*service.ReportFile, error)
	ExportRevenue(ctx context.Context, filter models.RevenueFilter, format service.ReportFormat) (*service.ReportFile, error)
}

// ReportHandler exposes reporting endpoints.
type ReportHandler struct {
	reports reportService
}

// NewReportHandler constructs handler.
func NewReportHandler(reports reportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// OverdueStudents godoc
// @Summary Students with overdue fees
// @Tags Reportes
// @Produce json,text/csv,application/pdf
// @Param format query string false "csv or pdf to download"
// @Success 200 {object} response.ListPayload
// @Router /reportes/morosos [get]
func (h *ReportHandler) OverdueStudents(c *gin.Context) {
	format, err := service.ParseReportFormat(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if format != service.ReportFormatJSON {
		file, err := h.reports.ExportOverdueStudents(c.Request.Context(), format)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Attachment(c, file.Filename, file.ContentType, file.Body)
		return
	}
	rows, err := h.reports.OverdueStudents(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, len(rows), rows)
}

// Revenue godoc
// @Summary Revenue grouped by month
// @Tags Reportes
// @Produce json,text/csv,application/pdf
// @Param anio query int true "Year"
// @Param mes query int false "Month 1-12"
// @Param format query string false "csv or pdf to download"
// @Success 200 {object} response.ListPayload
// @Failure 400 {object} response.ErrorPayload
// @Router /reportes/ingresos [get]
func (h *ReportHandler) Revenue(c *gin.Context) {
	filter, err := service.ParseRevenueFilter(c.Query("anio"), c.Query("mes"))
	if err != nil {
		response.Error(c, err)
		return
	}
	format, err := service.ParseReportFormat(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if format != service.ReportFormatJSON {
		file, err := h.reports.ExportRevenue(c.Request.Context(), filter, format)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Attachment(c, file.Filename, file.ContentType, file.Body)
		return
	}
	rows, err := h.reports.Revenue(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, len(rows), rows)
}

// Stats godoc
// @Summary Dashboard counters
// @Tags Reportes
// @Produce json
// @Success 200 {object} models.GeneralStats
// @Router /reportes/estadisticas [get]
func (h *ReportHandler) Stats(c *gin.Context) {
	stats, err := h.reports.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}
