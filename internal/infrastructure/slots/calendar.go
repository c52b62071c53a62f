// Package slots calcula las próximas fechas de entrega a partir de una expresión cron.
package slots

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/organic-orders/internal/application/dto"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Calendar genera fechas de entrega. Con "0 0 * * 2,5" son martes y viernes.
type Calendar struct {
	schedule cron.Schedule
	count    int
	loc      *time.Location
	now      func() time.Time
}

// NewCalendar valida la expresión cron. count <= 0 usa 12; now nil usa time.Now.
func NewCalendar(expr string, count int, now func() time.Time) (*Calendar, error) {
	sched, err := cronParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("slots: expresión cron %q: %w", expr, err)
	}
	if count <= 0 {
		count = 12
	}
	if now == nil {
		now = time.Now
	}
	return &Calendar{schedule: sched, count: count, loc: time.UTC, now: now}, nil
}

// Upcoming devuelve las próximas fechas desde mañana, en orden ascendente.
func (c *Calendar) Upcoming() []dto.DeliverySlot {
	dates := c.Dates()
	out := make([]dto.DeliverySlot, 0, len(dates))
	for _, d := range dates {
		out = append(out, dto.DeliverySlot{
			ISO:   d.Format(time.RFC3339),
			Label: d.Format("Mon Jan 02 2006"),
		})
	}
	return out
}

// Dates igual que Upcoming pero como instantes (medianoche UTC con el cron por defecto).
func (c *Calendar) Dates() []time.Time {
	now := c.now().In(c.loc)
	t := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.loc)
	out := make([]time.Time, 0, c.count)
	for len(out) < c.count {
		next := c.schedule.Next(t)
		if next.IsZero() {
			break
		}
		out = append(out, next)
		t = next
	}
	return out
}
