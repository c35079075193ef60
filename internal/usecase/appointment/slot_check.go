package appointment

import (
	"context"
	"time"

	"github.com/navalha-app/navalha-api/internal/domain/schedule"
	"github.com/navalha-app/navalha-api/internal/httperr"
	"github.com/navalha-app/navalha-api/internal/models"
	"github.com/navalha-app/navalha-api/internal/timezone"
)

var errSlotTaken = httperr.ErrBusiness(
	httperr.KindSlotUnavailable,
	"slot_taken",
	"Horário acabou de ser ocupado. Consulte a disponibilidade novamente.",
)

var errOutsideSchedule = httperr.ErrBusiness(
	httperr.KindSlotUnavailable,
	"outside_schedule",
	"Horário fora da agenda do barbeiro.",
)

// assertSlotBookable refaz, no momento do commit, a mesma composição
// da consulta de disponibilidade. A leitura prévia do cliente é só
// consultiva e pode estar velha; quem decide é esta checagem, rodando
// dentro da transação de criação/remarcação.
func assertSlotBookable(
	ctx context.Context,
	repo schedule.Repository,
	shop *models.Barbershop,
	barberID uint,
	serviceDur time.Duration,
	start time.Time,
	excludeID uint,
) error {

	loc := timezone.Location(shop.Timezone)
	now := timezone.NowIn(shop.Timezone)

	start = start.In(loc)
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	dayEnd := day.AddDate(0, 0, 1)

	hours, err := repo.ListBusinessHours(ctx, shop.ID)
	if err != nil {
		return err
	}
	schedules, err := repo.ListWorkSchedules(ctx, shop.ID, barberID)
	if err != nil {
		return err
	}
	blocks, err := repo.ListTimeBlocks(ctx, shop.ID, barberID, day, dayEnd)
	if err != nil {
		return err
	}

	windows := schedule.ResolveWorkWindows(
		schedules,
		day,
		schedule.ResolveBusinessDay(hours, day),
	)
	windows = schedule.SubtractAll(windows, schedule.BlocksForDay(blocks, barberID, day, dayEnd))

	slotSize := time.Duration(shop.SlotSizeMinutes) * time.Minute
	if slotSize <= 0 {
		slotSize = 30 * time.Minute
	}
	lead := time.Duration(shop.MinAdvanceMinutes) * time.Minute
	if lead <= 0 {
		lead = 60 * time.Minute
	}

	// O início precisa cair na grade de slots vigente (inclui a
	// antecedência mínima de hoje)...
	onGrid := false
	for _, s := range schedule.GenerateSlots(windows, slotSize, now, lead) {
		if s.Equal(start) {
			onGrid = true
			break
		}
	}
	if !onGrid {
		return errOutsideSchedule
	}

	// ...e o serviço inteiro precisa caber numa única janela livre.
	candidate := schedule.Interval{Start: start, End: start.Add(serviceDur)}
	fits := false
	for _, w := range windows {
		if !candidate.Start.Before(w.Start) && !candidate.End.After(w.End) {
			fits = true
			break
		}
	}
	if !fits {
		return errOutsideSchedule
	}

	appointments, err := repo.ListLiveAppointments(ctx, barberID, day, dayEnd)
	if err != nil {
		return err
	}
	for _, ap := range appointments {
		if ap.ID == excludeID {
			continue
		}
		busy := schedule.Interval{Start: ap.ScheduledAt.In(loc), End: ap.EndsAt().In(loc)}
		if candidate.Overlaps(busy) {
			return errSlotTaken
		}
	}

	return nil
}
