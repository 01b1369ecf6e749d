// Package period agrupa fechas en cubetas diarias, semanales o mensuales.
package period

import (
	"fmt"
	"time"
)

// Period granularidad de agrupación.
type Period string

const (
	Daily   Period = "daily"
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
)

// Bucketer define una granularidad: unidad de date_trunc en PostgreSQL, truncado en Go y etiqueta.
type Bucketer struct {
	SQLUnit  string
	Truncate func(t time.Time) time.Time
	Label    func(t time.Time) string
}

var bucketers = map[Period]Bucketer{
	Daily: {
		SQLUnit: "day",
		Truncate: func(t time.Time) time.Time {
			t = t.UTC()
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		},
		Label: func(t time.Time) string { return t.UTC().Format("2006-01-02") },
	},
	Weekly: {
		SQLUnit: "week",
		Truncate: func(t time.Time) time.Time {
			t = t.UTC()
			day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			// lunes como inicio de semana ISO
			offset := (int(day.Weekday()) + 6) % 7
			return day.AddDate(0, 0, -offset)
		},
		Label: func(t time.Time) string {
			y, w := t.UTC().ISOWeek()
			return fmt.Sprintf("%04d-W%02d", y, w)
		},
	},
	Monthly: {
		SQLUnit: "month",
		Truncate: func(t time.Time) time.Time {
			t = t.UTC()
			return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		},
		Label: func(t time.Time) string { return t.UTC().Format("2006-01") },
	},
}

// Parse convierte el parámetro de consulta. Vacío equivale a monthly.
func Parse(s string) (Period, error) {
	if s == "" {
		return Monthly, nil
	}
	p := Period(s)
	if _, ok := bucketers[p]; !ok {
		return "", fmt.Errorf("period inválido: %q (daily, weekly, monthly)", s)
	}
	return p, nil
}

// For devuelve el bucketer del periodo. Periodos desconocidos usan monthly.
func For(p Period) Bucketer {
	if b, ok := bucketers[p]; ok {
		return b
	}
	return bucketers[Monthly]
}

// Key trunca t y devuelve inicio de cubeta y etiqueta.
func (b Bucketer) Key(t time.Time) (time.Time, string) {
	start := b.Truncate(t)
	return start, b.Label(start)
}
