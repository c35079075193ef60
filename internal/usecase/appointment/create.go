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

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BarbershopID uint
	BarberID     uint
	ServiceID    uint

	// Ou um cliente já cadastrado...
	ClientID uint

	// ...ou os dados para get-or-create (fluxo público).
	ClientName  string
	ClientPhone string
	ClientEmail string

	Date  string // YYYY-MM-DD
	Time  string // HH:MM
	Notes string

	ActorUserID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo   schedule.Repository
	audit  *audit.Dispatcher
	notify *notify.Dispatcher
}

func NewCreateAppointment(
	repo schedule.Repository,
	auditDisp *audit.Dispatcher,
	notifyDisp *notify.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:   repo,
		audit:  auditDisp,
		notify: notifyDisp,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Barbearia
	// --------------------------------------------------
	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.KindNotFound, "barbershop_not_found", "Barbearia não encontrada.")
	}

	// --------------------------------------------------
	// 2️⃣ Data / hora no timezone da barbearia
	// --------------------------------------------------
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

	// --------------------------------------------------
	// 3️⃣ Barbeiro + serviço (escopados pela barbearia)
	// --------------------------------------------------
	if _, err := uc.repo.GetBarber(ctx, in.BarbershopID, in.BarberID); err != nil {
		return nil, httperr.ErrBusiness(httperr.KindNotFound, "barber_not_found", "Barbeiro não encontrado.")
	}

	service, err := uc.repo.GetService(ctx, in.BarbershopID, in.ServiceID)
	if err != nil || !service.Active {
		return nil, httperr.ErrBusiness(httperr.KindNotFound, "service_not_found", "Serviço não encontrado.")
	}

	// --------------------------------------------------
	// 4️⃣ Cliente
	// --------------------------------------------------
	client, err := uc.resolveClient(ctx, in)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Checagem de agenda + criação, atômicas
	// --------------------------------------------------
	serviceDur := time.Duration(service.DurationMin) * time.Minute

	ap := &models.Appointment{
		BarbershopID: in.BarbershopID,
		BarberID:     in.BarberID,
		ClientID:     client.ID,
		ServiceID:    service.ID,
		ScheduledAt:  start,
		DurationMin:  service.DurationMin,
		TotalPrice:   service.Price,
		Status:       string(schedule.InitialStatus()),
		Notes:        in.Notes,
	}

	err = uc.repo.InTx(ctx, func(tx schedule.Repository) error {
		if err := assertSlotBookable(ctx, tx, shop, in.BarberID, serviceDur, start, 0); err != nil {
			return err
		}
		return tx.CreateAppointment(ctx, ap)
	})
	if err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, errSlotTaken
		}
		return nil, err
	}

	// --------------------------------------------------
	// 6️⃣ Auditoria + notificação (fire and forget)
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       in.ActorUserID,
		Action:       "appointment_created",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	uc.notify.Dispatch(notify.Event{
		BarbershopID:  in.BarbershopID,
		BarberID:      &ap.BarberID,
		ClientID:      &ap.ClientID,
		AppointmentID: &ap.ID,
		Type:          notify.EventAppointmentCreated,
		Message:       service.Name + " em " + start.Format("02/01/2006 15:04"),
	})

	return ap, nil
}

func (uc *CreateAppointment) resolveClient(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Client, error) {

	if in.ClientID != 0 {
		client, err := uc.repo.GetClient(ctx, in.BarbershopID, in.ClientID)
		if err != nil {
			return nil, httperr.ErrBusiness(httperr.KindNotFound, "client_not_found", "Cliente não encontrado.")
		}
		return client, nil
	}

	if in.ClientName == "" || in.ClientPhone == "" {
		return nil, httperr.ErrBusiness(httperr.KindValidation, "missing_client", "Nome e telefone do cliente são obrigatórios.")
	}

	return uc.repo.GetOrCreateClient(ctx, in.BarbershopID, in.ClientName, in.ClientPhone, in.ClientEmail)
}
