package appointment

import (
	"context"
	"time"

	"github.com/navalha-app/navalha-api/internal/domain/schedule"
	"github.com/navalha-app/navalha-api/internal/httperr"
	"github.com/navalha-app/navalha-api/internal/timezone"
)

// MaxRangeDays limita a janela de consulta; a UI de reserva pede no
// máximo 30 dias de uma vez.
const MaxRangeDays = 31

type GetAvailability struct {
	repo schedule.Repository
}

func NewGetAvailability(repo schedule.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute compõe, por data: janela da barbearia ∩ expediente do
// barbeiro − bloqueios → grade de slots → filtro de conflito com a
// duração do serviço. Leitura pura: a garantia definitiva fica com a
// checagem transacional do create/reschedule.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in schedule.AvailabilityInput,
) ([]schedule.DaySlots, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.KindNotFound, "barbershop_not_found", "Barbearia não encontrada.")
	}

	service, err := uc.repo.GetService(ctx, in.BarbershopID, in.ServiceID)
	if err != nil || !service.Active {
		return nil, httperr.ErrBusiness(httperr.KindNotFound, "service_not_found", "Serviço não encontrado.")
	}

	if _, err := uc.repo.GetBarber(ctx, in.BarbershopID, in.BarberID); err != nil {
		return nil, httperr.ErrBusiness(httperr.KindNotFound, "barber_not_found", "Barbeiro não encontrado.")
	}

	loc := timezone.Location(shop.Timezone)
	now := timezone.NowIn(shop.Timezone)

	startDate := in.StartDate
	endDate := in.EndDate
	if startDate.IsZero() {
		startDate = now
	}
	if endDate.IsZero() {
		endDate = startDate.AddDate(0, 0, 29)
	}

	first := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, loc)
	last := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 0, 0, 0, 0, loc)

	if last.Before(first) {
		return nil, httperr.ErrBusiness(httperr.KindValidation, "invalid_date_range", "Período inválido.")
	}
	if last.Sub(first) > MaxRangeDays*24*time.Hour {
		return nil, httperr.ErrBusiness(httperr.KindValidation, "date_range_too_wide", "Período máximo de 31 dias.")
	}

	hours, err := uc.repo.ListBusinessHours(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	schedules, err := uc.repo.ListWorkSchedules(ctx, in.BarbershopID, in.BarberID)
	if err != nil {
		return nil, err
	}

	rangeEnd := last.Add(24 * time.Hour)

	blocks, err := uc.repo.ListTimeBlocks(ctx, in.BarbershopID, in.BarberID, first, rangeEnd)
	if err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListLiveAppointments(ctx, in.BarberID, first, rangeEnd)
	if err != nil {
		return nil, err
	}

	busy := make([]schedule.Interval, 0, len(appointments))
	for _, ap := range appointments {
		busy = append(busy, schedule.Interval{Start: ap.ScheduledAt.In(loc), End: ap.EndsAt().In(loc)})
	}

	slotSize := time.Duration(shop.SlotSizeMinutes) * time.Minute
	if slotSize <= 0 {
		slotSize = 30 * time.Minute
	}
	lead := time.Duration(shop.MinAdvanceMinutes) * time.Minute
	if lead <= 0 {
		lead = 60 * time.Minute
	}
	serviceDur := time.Duration(service.DurationMin) * time.Minute

	var out []schedule.DaySlots
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		dayEnd := day.AddDate(0, 0, 1)

		windows := schedule.ResolveWorkWindows(
			schedules,
			day,
			schedule.ResolveBusinessDay(hours, day),
		)
		windows = schedule.SubtractAll(windows, schedule.BlocksForDay(blocks, in.BarberID, day, dayEnd))

		starts := schedule.FilterConflicts(
			schedule.GenerateSlots(windows, slotSize, now, lead),
			serviceDur,
			busy,
		)

		slots := make([]string, 0, len(starts))
		for _, s := range starts {
			slots = append(slots, s.Format("15:04"))
		}

		out = append(out, schedule.DaySlots{
			Date:  day.Format("2006-01-02"),
			Slots: slots,
		})
	}

	return out, nil
}
