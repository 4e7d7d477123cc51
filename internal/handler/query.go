package handler

import (
	"net/http"
	"time"

	"time-control-api/internal/apperr"
	"time-control-api/internal/models"
	"time-control-api/pkg/clock"
)

const msgBadDate = "La fecha no es válida. El formato esperado es AAAA-MM-DD."

// parsePeriod reads the optional from/to query pair. A half-open request is
// widened to a full period so the storage filter stays a single range check.
func parsePeriod(r *http.Request) (*models.Period, error) {
	fromRaw := r.URL.Query().Get("from")
	toRaw := r.URL.Query().Get("to")
	if fromRaw == "" && toRaw == "" {
		return nil, nil
	}

	period := &models.Period{
		From: time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC),
	}

	if fromRaw != "" {
		from, err := clock.ParseDate(fromRaw)
		if err != nil {
			return nil, apperr.NewValidation(msgBadDate)
		}
		period.From = from
	}
	if toRaw != "" {
		to, err := clock.ParseDate(toRaw)
		if err != nil {
			return nil, apperr.NewValidation(msgBadDate)
		}
		period.To = to
	}

	if period.To.Before(period.From) {
		return nil, apperr.NewValidation(msgBadDate)
	}

	return period, nil
}

// parseDateQuery reads a single required date parameter.
func parseDateQuery(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, apperr.NewValidation(msgBadDate)
	}
	date, err := clock.ParseDate(raw)
	if err != nil {
		return time.Time{}, apperr.NewValidation(msgBadDate)
	}
	return date, nil
}
