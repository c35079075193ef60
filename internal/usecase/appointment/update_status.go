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

type UpdateStatusInput struct {
	BarbershopID  uint
	AppointmentID uint
	NewStatus     string

	ActorUserID *uint
	ActorRole   string
}

type UpdateStatus struct {
	repo   schedule.Repository
	audit  *audit.Dispatcher
	notify *notify.Dispatcher
}

func NewUpdateStatus(
	repo schedule.Repository,
	auditDisp *audit.Dispatcher,
	notifyDisp *notify.Dispatcher,
) *UpdateStatus {
	return &UpdateStatus{
		repo:   repo,
		audit:  auditDisp,
		notify: notifyDisp,
	}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	in UpdateStatusInput,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.KindNotFound, "barbershop_not_found", "Barbearia não encontrada.")
	}

	next, ok := schedule.ParseStatus(in.NewStatus)
	if !ok {
		return nil, httperr.ErrBusiness(httperr.KindValidation, "invalid_status", "Status desconhecido.")
	}

	ap, err := uc.repo.GetAppointment(ctx, in.BarbershopID, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.KindNotFound, "appointment_not_found", "Agendamento não encontrado.")
	}

	if err := assertActorOwns(ap, in.ActorUserID, in.ActorRole); err != nil {
		return nil, err
	}

	if err := schedule.CanTransition(schedule.Status(ap.Status), next); err != nil {
		return nil, err
	}

	now := timezone.NowIn(shop.Timezone)

	ap.Status = string(next)
	switch next {
	case schedule.StatusCancelled:
		ap.CancelledAt = &now
	case schedule.StatusCompleted:
		ap.CompletedAt = &now
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       in.ActorUserID,
		Action:       "appointment_status_" + string(next),
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	uc.notify.Dispatch(notify.Event{
		BarbershopID:  in.BarbershopID,
		BarberID:      &ap.BarberID,
		ClientID:      &ap.ClientID,
		AppointmentID: &ap.ID,
		Type:          notify.EventAppointmentStatus,
		Message:       "Status: " + string(next),
	})

	return ap, nil
}
