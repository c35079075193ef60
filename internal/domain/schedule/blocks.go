package schedule

import (
	"time"

	"github.com/navalha-app/navalha-api/internal/models"
)

// BlocksForDay expande os bloqueios aplicáveis ao barbeiro em
// intervalos concretos dentro de [dayStart, dayEnd). A expansão de
// recorrência é determinística: semanal cai no mesmo dia da semana,
// mensal no mesmo dia do mês, anual no mesmo mês/dia, sempre a partir
// da primeira ocorrência e nunca depois de recurring_until.
func BlocksForDay(
	blocks []models.TimeBlock,
	barberID uint,
	dayStart time.Time,
	dayEnd time.Time,
) []Interval {

	day := Interval{Start: dayStart, End: dayEnd}

	var out []Interval
	for _, b := range blocks {
		if !b.Active {
			continue
		}
		if b.BarberID != nil && *b.BarberID != barberID {
			continue
		}

		for _, occ := range occurrencesOn(b, dayStart) {
			clipped := occ.Intersect(day)
			if !clipped.Empty() {
				out = append(out, clipped)
			}
		}
	}
	return out
}

// occurrencesOn devolve o intervalo do bloqueio que toca o dia de
// dayStart, já considerando recorrência. dayStart é meia-noite no fuso
// da barbearia.
func occurrencesOn(b models.TimeBlock, dayStart time.Time) []Interval {
	base := blockInterval(b, dayStart.Location())
	if base.Empty() {
		return nil
	}

	if !b.IsRecurring {
		return []Interval{base}
	}

	// Ocorrências começam na primeira instância, nunca antes.
	if dayStart.Before(startOfDay(base.Start)) {
		return nil
	}
	if b.RecurringUntil != nil && dayStart.After(*b.RecurringUntil) {
		return nil
	}

	if !recursOn(b.RecurringPattern, base.Start, dayStart) {
		return nil
	}

	duration := base.End.Sub(base.Start)
	occStart := time.Date(
		dayStart.Year(), dayStart.Month(), dayStart.Day(),
		base.Start.Hour(), base.Start.Minute(), 0, 0,
		dayStart.Location(),
	)
	if b.AllDay {
		occStart = dayStart
		duration = 24 * time.Hour
	}

	return []Interval{{Start: occStart, End: occStart.Add(duration)}}
}

func recursOn(pattern string, first, day time.Time) bool {
	switch pattern {
	case models.RecurrenceWeekly:
		return day.Weekday() == first.Weekday()
	case models.RecurrenceMonthly:
		return day.Day() == first.Day()
	case models.RecurrenceYearly:
		return day.Month() == first.Month() && day.Day() == first.Day()
	}
	return false
}

// blockInterval materializa o intervalo base do bloqueio. Bloqueio de
// dia inteiro é alargado para as meia-noites que o cercam.
func blockInterval(b models.TimeBlock, loc *time.Location) Interval {
	start := b.StartDateTime.In(loc)
	end := b.EndDateTime.In(loc)

	if b.AllDay {
		start = startOfDay(start)
		end = startOfDay(end).Add(24 * time.Hour)
	}

	return Interval{Start: start, End: end}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
