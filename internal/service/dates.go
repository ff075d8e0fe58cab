package service

import (
	"fmt"
	"time"

	"github.com/noah-isme/ingenio-api/internal/models"
)

const dateLayout = models.DateLayout

// parseDate reads a YYYY-MM-DD value already checked by the validator.
func parseDate(field, raw string) (models.Date, error) {
	d, err := models.ParseDate(raw)
	if err != nil {
		return models.Date{}, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}

func parseOptionalDate(field string, raw *string) (*models.Date, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	d, err := parseDate(field, *raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// civilDate truncates t to midnight of its calendar day in loc.
func civilDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
