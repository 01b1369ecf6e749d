package dto

import (
	"time"

	"github.com/jhoicas/Bizboard-api/internal/domain"
	"github.com/jhoicas/Bizboard-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// ParseDate acepta RFC3339 o YYYY-MM-DD (medianoche UTC). dateOnly indica el segundo formato.
func ParseDate(s string) (t time.Time, dateOnly bool, err error) {
	if t, err = time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), false, nil
	}
	t, err = time.Parse(dateLayout, s)
	return t, true, err
}

// Parse valida el rango. Un endDate YYYY-MM-DD incluye el día completo.
func (q DateRangeQuery) Parse() (repository.DateRange, error) {
	var dr repository.DateRange
	verr := &domain.ValidationError{}
	if q.StartDate != "" {
		t, _, err := ParseDate(q.StartDate)
		if err != nil {
			verr.Add("startDate", "formato inválido (YYYY-MM-DD o RFC3339)", q.StartDate)
		} else {
			dr.Start = &t
		}
	}
	if q.EndDate != "" {
		t, dateOnly, err := ParseDate(q.EndDate)
		if err != nil {
			verr.Add("endDate", "formato inválido (YYYY-MM-DD o RFC3339)", q.EndDate)
		} else {
			if dateOnly {
				t = t.AddDate(0, 0, 1)
			} else {
				t = t.Add(time.Nanosecond)
			}
			dr.End = &t
		}
	}
	if err := verr.OrNil(); err != nil {
		return dr, err
	}
	if dr.Start != nil && dr.End != nil && !dr.Start.Before(*dr.End) {
		return dr, domain.NewValidationError("endDate", "debe ser posterior a startDate", q.EndDate)
	}
	return dr, nil
}
