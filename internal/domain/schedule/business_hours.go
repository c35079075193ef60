package schedule

import (
	"time"

	"github.com/navalha-app/navalha-api/internal/models"
)

// parseHM ancora um "HH:MM" no dia de date, no fuso de date.
func parseHM(date time.Time, hm string) (time.Time, bool) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	), true
}

// ResolveBusinessDay devolve a janela de funcionamento da barbearia
// para a data (meia-noite no fuso da barbearia). Dia fechado ou sem
// configuração devolve janela vazia.
func ResolveBusinessDay(hours []models.BusinessHours, date time.Time) Interval {
	weekday := int(date.Weekday())

	for _, h := range hours {
		if h.Weekday != weekday {
			continue
		}
		if !h.IsOpen || h.OpenTime == "" || h.CloseTime == "" {
			return Interval{}
		}

		open, ok1 := parseHM(date, h.OpenTime)
		close, ok2 := parseHM(date, h.CloseTime)
		if !ok1 || !ok2 {
			return Interval{}
		}
		return Interval{Start: open, End: close}
	}

	return Interval{}
}
