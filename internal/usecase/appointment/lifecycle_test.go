package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navalha-app/navalha-api/internal/domain/schedule"
	"github.com/navalha-app/navalha-api/internal/httperr"
	"github.com/navalha-app/navalha-api/internal/models"
	"github.com/navalha-app/navalha-api/internal/timezone"
)

func seedAppointment(t *testing.T, f *fakeRepo, start time.Time, status schedule.Status) *models.Appointment {
	t.Helper()

	ap := &models.Appointment{
		BarbershopID: testShopID,
		BarberID:     testBarberID,
		ClientID:     testClientID,
		ServiceID:    testServiceID,
		ScheduledAt:  start,
		DurationMin:  30,
		TotalPrice:   50,
		Status:       string(status),
	}
	require.NoError(t, f.CreateAppointment(context.Background(), ap))

	stored, err := f.GetAppointment(context.Background(), testShopID, ap.ID)
	require.NoError(t, err)
	return stored
}

func ownerInput(apID uint, status string) UpdateStatusInput {
	return UpdateStatusInput{
		BarbershopID:  testShopID,
		AppointmentID: apID,
		NewStatus:     status,
		ActorUserID:   uintPtr(1),
		ActorRole:     "owner",
	}
}

// ======================================================
// UpdateStatus
// ======================================================

func TestUpdateStatusHappyPath(t *testing.T) {
	f := newScheduledRepo()
	uc := NewUpdateStatus(f, nil, nil)
	day := nextWeekday(time.Monday)

	ap := seedAppointment(t, f, day.Add(10*time.Hour), schedule.StatusPending)

	got, err := uc.Execute(context.Background(), ownerInput(ap.ID, "confirmed"))
	require.NoError(t, err)
	assert.Equal(t, "confirmed", got.Status)
	assert.Nil(t, got.CancelledAt)
	assert.Nil(t, got.CompletedAt)
}

func TestUpdateStatusFullFlow(t *testing.T) {
	f := newScheduledRepo()
	uc := NewUpdateStatus(f, nil, nil)
	day := nextWeekday(time.Monday)

	ap := seedAppointment(t, f, day.Add(10*time.Hour), schedule.StatusPending)

	for _, next := range []string{"confirmed", "in_progress", "completed"} {
		_, err := uc.Execute(context.Background(), ownerInput(ap.ID, next))
		require.NoError(t, err, next)
	}

	got, err := f.GetAppointment(context.Background(), testShopID, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", got.Status)
	assert.NotNil(t, got.CompletedAt)
}

func TestUpdateStatusInvalidTransitions(t *testing.T) {
	f := newScheduledRepo()
	uc := NewUpdateStatus(f, nil, nil)
	day := nextWeekday(time.Monday)

	t.Run("pulando etapas", func(t *testing.T) {
		ap := seedAppointment(t, f, day.Add(10*time.Hour), schedule.StatusPending)
		_, err := uc.Execute(context.Background(), ownerInput(ap.ID, "completed"))
		assert.True(t, httperr.IsKind(err, httperr.KindInvalidTransition))
	})

	t.Run("estado terminal é definitivo", func(t *testing.T) {
		ap := seedAppointment(t, f, day.Add(11*time.Hour), schedule.StatusCompleted)
		_, err := uc.Execute(context.Background(), ownerInput(ap.ID, "pending"))
		assert.True(t, httperr.IsKind(err, httperr.KindInvalidTransition))

		_, err = uc.Execute(context.Background(), ownerInput(ap.ID, "cancelled"))
		assert.True(t, httperr.IsKind(err, httperr.KindInvalidTransition))
	})

	t.Run("status desconhecido", func(t *testing.T) {
		ap := seedAppointment(t, f, day.Add(12*time.Hour), schedule.StatusPending)
		_, err := uc.Execute(context.Background(), ownerInput(ap.ID, "done"))
		assert.True(t, httperr.IsBusiness(err, "invalid_status"))
	})
}

func TestUpdateStatusAuthz(t *testing.T) {
	f := newScheduledRepo()
	uc := NewUpdateStatus(f, nil, nil)
	day := nextWeekday(time.Monday)

	ap := seedAppointment(t, f, day.Add(10*time.Hour), schedule.StatusPending)

	t.Run("outro barbeiro não mexe", func(t *testing.T) {
		in := ownerInput(ap.ID, "confirmed")
		in.ActorUserID = uintPtr(99)
		in.ActorRole = "barber"

		_, err := uc.Execute(context.Background(), in)
		assert.True(t, httperr.IsKind(err, httperr.KindForbidden))
	})

	t.Run("o próprio barbeiro pode", func(t *testing.T) {
		in := ownerInput(ap.ID, "confirmed")
		in.ActorUserID = uintPtr(testBarberID)
		in.ActorRole = "barber"

		_, err := uc.Execute(context.Background(), in)
		assert.NoError(t, err)
	})
}

// ======================================================
// Cancel
// ======================================================

func TestCancelAppointment(t *testing.T) {
	f := newScheduledRepo()
	uc := NewCancelAppointment(f, nil, nil)
	day := nextWeekday(time.Monday)

	t.Run("futuro confirmado cancela", func(t *testing.T) {
		ap := seedAppointment(t, f, day.Add(10*time.Hour), schedule.StatusConfirmed)

		got, err := uc.Execute(context.Background(), ownerInput(ap.ID, ""))
		require.NoError(t, err)
		assert.Equal(t, string(schedule.StatusCancelled), got.Status)
		assert.NotNil(t, got.CancelledAt)
	})

	t.Run("terminal não cancela de novo", func(t *testing.T) {
		ap := seedAppointment(t, f, day.Add(11*time.Hour), schedule.StatusCancelled)
		_, err := uc.Execute(context.Background(), ownerInput(ap.ID, ""))
		assert.True(t, httperr.IsKind(err, httperr.KindInvalidTransition))
	})
}

func TestCancelPastAppointments(t *testing.T) {
	f := newScheduledRepo()
	uc := NewCancelAppointment(f, nil, nil)

	past := timezone.NowIn("America/Sao_Paulo").AddDate(0, 0, -2)

	t.Run("pending que nunca aconteceu pode cancelar", func(t *testing.T) {
		ap := seedAppointment(t, f, past, schedule.StatusPending)
		got, err := uc.Execute(context.Background(), ownerInput(ap.ID, ""))
		require.NoError(t, err)
		assert.Equal(t, string(schedule.StatusCancelled), got.Status)
	})

	t.Run("confirmado já realizado não cancela", func(t *testing.T) {
		ap := seedAppointment(t, f, past, schedule.StatusConfirmed)
		_, err := uc.Execute(context.Background(), ownerInput(ap.ID, ""))
		assert.True(t, httperr.IsBusiness(err, "appointment_in_past"))
	})
}

// ======================================================
// Reschedule
// ======================================================

func rescheduleInput(apID uint, day time.Time, hm string) RescheduleAppointmentInput {
	return RescheduleAppointmentInput{
		BarbershopID:  testShopID,
		AppointmentID: apID,
		Date:          day.Format("2006-01-02"),
		Time:          hm,
		ActorUserID:   uintPtr(1),
		ActorRole:     "owner",
	}
}

func TestRescheduleAppointment(t *testing.T) {
	f := newScheduledRepo()
	uc := NewRescheduleAppointment(f, nil, nil)
	day := nextWeekday(time.Monday)

	ap := seedAppointment(t, f, day.Add(10*time.Hour), schedule.StatusConfirmed)

	got, err := uc.Execute(context.Background(), rescheduleInput(ap.ID, day, "14:00"))
	require.NoError(t, err)

	assert.True(t, got.ScheduledAt.Equal(day.Add(14*time.Hour)))
	// Remarcação volta para pending e confirma de novo.
	assert.Equal(t, string(schedule.StatusPending), got.Status)
	// O snapshot original de preço e duração permanece.
	assert.Equal(t, 30, got.DurationMin)
	assert.Equal(t, 50.0, got.TotalPrice)
}

func TestRescheduleIgnoresOwnSlot(t *testing.T) {
	f := newScheduledRepo()
	uc := NewRescheduleAppointment(f, nil, nil)
	day := nextWeekday(time.Monday)

	ap := seedAppointment(t, f, day.Add(10*time.Hour), schedule.StatusConfirmed)

	// Mover para o próprio horário não conflita consigo mesmo.
	_, err := uc.Execute(context.Background(), rescheduleInput(ap.ID, day, "10:00"))
	assert.NoError(t, err)
}

func TestRescheduleToUnavailableDay(t *testing.T) {
	f := newScheduledRepo()
	uc := NewRescheduleAppointment(f, nil, nil)
	day := nextWeekday(time.Monday)

	ap := seedAppointment(t, f, day.Add(10*time.Hour), schedule.StatusConfirmed)

	// Terça o barbeiro não tem expediente.
	_, err := uc.Execute(context.Background(), rescheduleInput(ap.ID, day.AddDate(0, 0, 1), "10:00"))
	require.Error(t, err)
	assert.True(t, httperr.IsKind(err, httperr.KindSlotUnavailable))

	// O agendamento original fica intacto.
	stored, err := f.GetAppointment(context.Background(), testShopID, ap.ID)
	require.NoError(t, err)
	assert.True(t, stored.ScheduledAt.Equal(day.Add(10*time.Hour)))
	assert.Equal(t, string(schedule.StatusConfirmed), stored.Status)
}

func TestRescheduleConflict(t *testing.T) {
	f := newScheduledRepo()
	uc := NewRescheduleAppointment(f, nil, nil)
	day := nextWeekday(time.Monday)

	seedAppointment(t, f, day.Add(11*time.Hour), schedule.StatusConfirmed)
	ap := seedAppointment(t, f, day.Add(10*time.Hour), schedule.StatusPending)

	_, err := uc.Execute(context.Background(), rescheduleInput(ap.ID, day, "11:00"))
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))
}

func TestRescheduleClosedAppointment(t *testing.T) {
	f := newScheduledRepo()
	uc := NewRescheduleAppointment(f, nil, nil)
	day := nextWeekday(time.Monday)

	ap := seedAppointment(t, f, day.Add(10*time.Hour), schedule.StatusCompleted)

	_, err := uc.Execute(context.Background(), rescheduleInput(ap.ID, day, "14:00"))
	assert.True(t, httperr.IsBusiness(err, "appointment_closed"))
}

func TestRescheduleToAnotherBarber(t *testing.T) {
	f := newScheduledRepo()
	day := nextWeekday(time.Monday)

	const otherBarber = uint(8)
	f.barbers[otherBarber] = &models.User{
		ID:           otherBarber,
		BarbershopID: testShopID,
		Name:         "Diego",
		Role:         "barber",
	}

	uc := NewRescheduleAppointment(f, nil, nil)
	ap := seedAppointment(t, f, day.Add(10*time.Hour), schedule.StatusPending)

	t.Run("barbeiro sem expediente recusa", func(t *testing.T) {
		in := rescheduleInput(ap.ID, day, "10:00")
		in.NewBarberID = otherBarber
		_, err := uc.Execute(context.Background(), in)
		assert.True(t, httperr.IsKind(err, httperr.KindSlotUnavailable))
	})

	t.Run("com expediente transfere", func(t *testing.T) {
		f.schedules = append(f.schedules, models.WorkSchedule{
			BarbershopID: testShopID,
			BarberID:     otherBarber,
			Weekday:      1,
			StartTime:    "09:00",
			EndTime:      "17:00",
			Active:       true,
		})

		in := rescheduleInput(ap.ID, day, "10:00")
		in.NewBarberID = otherBarber

		got, err := uc.Execute(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, otherBarber, got.BarberID)
	})

	t.Run("barbeiro inexistente", func(t *testing.T) {
		in := rescheduleInput(ap.ID, day, "10:00")
		in.NewBarberID = 999
		_, err := uc.Execute(context.Background(), in)
		assert.True(t, httperr.IsBusiness(err, "barber_not_found"))
	})
}
