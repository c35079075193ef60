package appointment

import (
	"context"

	"github.com/navalha-app/navalha-api/internal/audit"
	"github.com/navalha-app/navalha-api/internal/domain/schedule"
	"github.com/navalha-app/navalha-api/internal/httperr"
	"github.com/navalha-app/navalha-api/internal/models"
	"github.com/navalha-app/navalha-api/internal/notify"
	"github.com/navalha-app/navalha-api/internal/timezone"
)

type CancelAppointment struct {
	repo   schedule.Repository
	audit  *audit.Dispatcher
	notify *notify.Dispatcher
}

func NewCancelAppointment(
	repo schedule.Repository,
	auditDisp *audit.Dispatcher,
	notifyDisp *notify.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:   repo,
		audit:  auditDisp,
		notify: notifyDisp,
	}
}

// Execute cancela a partir de qualquer status não terminal. Depois que
// o horário do agendamento já passou, só pending ainda pode ser
// cancelado (reserva que nunca aconteceu); cancelamento nunca apaga a
// linha.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	in UpdateStatusInput,
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

	current := schedule.Status(ap.Status)
	if err := schedule.CanTransition(current, schedule.StatusCancelled); err != nil {
		return nil, err
	}

	now := timezone.NowIn(shop.Timezone)
	if ap.EndsAt().Before(now) && current != schedule.StatusPending {
		return nil, httperr.ErrBusiness(
			httperr.KindInvalidTransition,
			"appointment_in_past",
			"Agendamento já realizado não pode ser cancelado.",
		)
	}

	ap.Status = string(schedule.StatusCancelled)
	ap.CancelledAt = &now

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       in.ActorUserID,
		Action:       "appointment_cancelled",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	uc.notify.Dispatch(notify.Event{
		BarbershopID:  in.BarbershopID,
		BarberID:      &ap.BarberID,
		ClientID:      &ap.ClientID,
		AppointmentID: &ap.ID,
		Type:          notify.EventAppointmentStatus,
		Message:       "Agendamento cancelado.",
	})

	return ap, nil
}
