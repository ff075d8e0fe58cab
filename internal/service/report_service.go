package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ingenio-api/internal/models"
	appErrors "github.com/noah-isme/ingenio-api/pkg/errors"
	"github.com/noah-isme/ingenio-api/pkg/export"
)

type reportRepository interface {
	OverdueStudents(ctx context.Context) ([]models.OverdueStudent, error)
	Revenue(ctx context.Context, filter models.RevenueFilter) ([]models.RevenuePeriod, error)
	Stats(ctx context.Context, monthStart, monthEnd time.Time) (*models.GeneralStats, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ReportFormat selects a downloadable rendering of a report.
type ReportFormat string

const (
	ReportFormatJSON ReportFormat = ""
	ReportFormatCSV  ReportFormat = "csv"
	ReportFormatPDF  ReportFormat = "pdf"
)

// ParseReportFormat accepts "", "json", "csv" or "pdf".
func ParseReportFormat(raw string) (ReportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "json":
		return ReportFormatJSON, nil
	case "csv":
		return ReportFormatCSV, nil
	case "pdf":
		return ReportFormatPDF, nil
	}
	return "", appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
}

// ReportFile is a rendered report ready to download.
type ReportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ReportService computes read-only aggregates on every call.
type ReportService struct {
	repo   reportRepository
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
	loc    *time.Location
	now    func() time.Time
}

// NewReportService constructs a ReportService.
func NewReportService(repo reportRepository, csv csvRenderer, pdf pdfRenderer, loc *time.Location, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if loc == nil {
		loc = time.Local
	}
	return &ReportService{repo: repo, csv: csv, pdf: pdf, logger: logger, loc: loc, now: time.Now}
}

// WithClock overrides the time source.
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	if now != nil {
		s.now = now
	}
	return s
}

// OverdueStudents returns students holding VENCIDO line-items.
func (s *ReportService) OverdueStudents(ctx context.Context) ([]models.OverdueStudent, error) {
	rows, err := s.repo.OverdueStudents(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to build overdue report")
	}
	return rows, nil
}

// ParseRevenueFilter validates the anio (required) and mes (optional) parameters.
func ParseRevenueFilter(yearRaw, monthRaw string) (models.RevenueFilter, error) {
	var filter models.RevenueFilter
	yearRaw = strings.TrimSpace(yearRaw)
	if yearRaw == "" {
		return filter, appErrors.Clone(appErrors.ErrValidation, "anio is required")
	}
	year, err := strconv.Atoi(yearRaw)
	if err != nil || year < 1900 || year > 9999 {
		return filter, appErrors.Clone(appErrors.ErrValidation, "anio must be a four digit year")
	}
	filter.Year = year
	if monthRaw = strings.TrimSpace(monthRaw); monthRaw != "" {
		month, err := strconv.Atoi(monthRaw)
		if err != nil || month < 1 || month > 12 {
			return filter, appErrors.Clone(appErrors.ErrValidation, "mes must be between 1 and 12")
		}
		filter.Month = month
	}
	return filter, nil
}

// Revenue returns payment totals grouped by month.
func (s *ReportService) Revenue(ctx context.Context, filter models.RevenueFilter) ([]models.RevenuePeriod, error) {
	if filter.Year == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "anio is required")
	}
	rows, err := s.repo.Revenue(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to build revenue report")
	}
	return rows, nil
}

// Stats returns the dashboard counters; revenue covers the current calendar month.
func (s *ReportService) Stats(ctx context.Context) (*models.GeneralStats, error) {
	today := civilDate(s.now(), s.loc)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, s.loc)
	stats, err := s.repo.Stats(ctx, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to build statistics")
	}
	return stats, nil
}

// ExportOverdueStudents renders the overdue report.
func (s *ReportService) ExportOverdueStudents(ctx context.Context, format ReportFormat) (*ReportFile, error) {
	rows, err := s.OverdueStudents(ctx)
	if err != nil {
		return nil, err
	}
	data := export.Dataset{Headers: []string{"dni", "apellidos", "nombres", "telefono", "mensualidades_vencidas", "deuda_total"}}
	for _, row := range rows {
		data.Rows = append(data.Rows, map[string]string{
			"dni":                    row.DNI,
			"apellidos":              row.LastName,
			"nombres":                row.FirstName,
			"telefono":               row.Phone,
			"mensualidades_vencidas": strconv.Itoa(row.OverdueCount),
			"deuda_total":            row.TotalDebt.StringFixed(2),
		})
	}
	return s.render(data, format, "morosos", "Reporte de morosos")
}

// ExportRevenue renders the revenue report.
func (s *ReportService) ExportRevenue(ctx context.Context, filter models.RevenueFilter, format ReportFormat) (*ReportFile, error) {
	rows, err := s.Revenue(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := export.Dataset{Headers: []string{"periodo", "total_pagos", "total_ingresos"}}
	for _, row := range rows {
		data.Rows = append(data.Rows, map[string]string{
			"periodo":        row.Period,
			"total_pagos":    strconv.Itoa(row.PaymentCount),
			"total_ingresos": row.Total.StringFixed(2),
		})
	}
	name := fmt.Sprintf("ingresos_%d", filter.Year)
	title := fmt.Sprintf("Ingresos %d", filter.Year)
	if filter.Month != 0 {
		name = fmt.Sprintf("%s_%02d", name, filter.Month)
		title = fmt.Sprintf("Ingresos %d-%02d", filter.Year, filter.Month)
	}
	return s.render(data, format, name, title)
}

func (s *ReportService) render(data export.Dataset, format ReportFormat, name, title string) (*ReportFile, error) {
	switch format {
	case ReportFormatCSV:
		body, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Internal(err, "failed to render csv")
		}
		return &ReportFile{Filename: name + ".csv", ContentType: "text/csv; charset=utf-8", Body: body}, nil
	case ReportFormatPDF:
		body, err := s.pdf.Render(data, title)
		if err != nil {
			return nil, appErrors.Internal(err, "failed to render pdf")
		}
		return &ReportFile{Filename: name + ".pdf", ContentType: "application/pdf", Body: body}, nil
	}
	return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
}
