package slots_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/organic-orders/internal/infrastructure/slots"
)

func TestUpcoming_MartesYViernesDesdeManana(t *testing.T) {
	// Martes 13/10/2026 a media tarde: el martes de hoy no se ofrece.
	now := func() time.Time { return time.Date(2026, 10, 13, 15, 4, 0, 0, time.UTC) }
	cal, err := slots.NewCalendar("0 0 * * 2,5", 4, now)
	require.NoError(t, err)

	dates := cal.Dates()
	require.Len(t, dates, 4)
	want := []string{"2026-10-16", "2026-10-20", "2026-10-23", "2026-10-27"}
	for i, d := range dates {
		assert.Equal(t, want[i], d.Format("2006-01-02"))
		wd := d.Weekday()
		assert.True(t, wd == time.Tuesday || wd == time.Friday, wd.String())
	}

	got := cal.Upcoming()
	require.Len(t, got, 4)
	assert.Equal(t, "Fri Oct 16 2026", got[0].Label)
	assert.Equal(t, "2026-10-16T00:00:00Z", got[0].ISO)
}

func TestUpcoming_CantidadPorDefecto(t *testing.T) {
	cal, err := slots.NewCalendar("0 0 * * 2,5", 0, nil)
	require.NoError(t, err)
	assert.Len(t, cal.Upcoming(), 12)
}

func TestNewCalendar_ExpresionInvalida(t *testing.T) {
	_, err := slots.NewCalendar("todos los martes", 3, nil)
	assert.Error(t, err)
}
