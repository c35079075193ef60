package appointment

import (
	"context"
	"time"

	"github.com/navalha-app/navalha-api/internal/audit"
	"github.com/navalha-app/navalha-api/internal/domain/schedule"
	"github.com/navalha-app/navalha-api/internal/httperr"
	"github.com/navalha-app/navalha-api/internal/models"
	"github.com/navalha-app/navalha-api/internal/notify"
	"github.com/navalha-app/navalha-api/internal/timezone"
)

type RescheduleAppointmentInput struct {
	BarbershopID  uint
	AppointmentID uint

	Date string // YYYY-MM-DD
	Time string // HH:MM

	// Opcional: mover para outro barbeiro da mesma barbearia.
	NewBarberID uint

	ActorUserID *uint
	ActorRole   string
}

type RescheduleAppointment struct {
	repo   schedule.Repository
	audit  *audit.Dispatcher
	notify *notify.Dispatcher
}

func NewRescheduleAppointment(
	repo schedule.Repository,
	auditDisp *audit.Dispatcher,
	notifyDisp *notify.Dispatcher,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:   repo,
		audit:  auditDisp,
		notify: notifyDisp,
	}
}

// Execute valida o novo horário exatamente como a criação, excluindo o
// próprio agendamento da checagem de conflito, e volta o status para
// pending. Em caso de falha nada muda no agendamento original.
func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.KindNotFound, "barbershop_not_found", "Barbearia não encontrada.")
	}

	ap, err := uc.repo.GetAppointment(ctx, in.BarbershopID, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.KindNotFound, "appointment_not_found", "Agendamento não encontrado.")
	}

	if err := assertActorOwns(ap, in.ActorUserID, in.ActorRole); err != nil {
		return nil, err
	}

	if schedule.Status(ap.Status).Terminal() {
		return nil, httperr.ErrBusiness(
			httperr.KindInvalidTransition,
			"appointment_closed",
			"Agendamento encerrado não pode ser remarcado.",
		)
	}

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(shop.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.KindValidation, "invalid_date_or_time", "Data ou hora inválida.")
	}

	now := timezone.NowIn(shop.Timezone)
	if !start.After(now) {
		return nil, httperr.ErrBusiness(httperr.KindValidation, "scheduled_in_past", "Horário precisa estar no futuro.")
	}

	barberID := ap.BarberID
	if in.NewBarberID != 0 && in.NewBarberID != ap.BarberID {
		if _, err := uc.repo.GetBarber(ctx, in.BarbershopID, in.NewBarberID); err != nil {
			return nil, httperr.ErrBusiness(httperr.KindNotFound, "barber_not_found", "Barbeiro não encontrado.")
		}
		barberID = in.NewBarberID
	}

	// A duração continua sendo o snapshot da reserva original.
	serviceDur := time.Duration(ap.DurationMin) * time.Minute

	err = uc.repo.InTx(ctx, func(tx schedule.Repository) error {
		if err := assertSlotBookable(ctx, tx, shop, barberID, serviceDur, start, ap.ID); err != nil {
			return err
		}

		ap.BarberID = barberID
		ap.ScheduledAt = start
		ap.Status = string(schedule.StatusPending)

		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, errSlotTaken
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       in.ActorUserID,
		Action:       "appointment_rescheduled",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	uc.notify.Dispatch(notify.Event{
		BarbershopID:  in.BarbershopID,
		BarberID:      &ap.BarberID,
		ClientID:      &ap.ClientID,
		AppointmentID: &ap.ID,
		Type:          notify.EventAppointmentRescheduled,
		Message:       "Remarcado para " + start.Format("02/01/2006 15:04"),
	})

	return ap, nil
}
