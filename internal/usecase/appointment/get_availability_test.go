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

const (
	testShopID    = uint(1)
	testBarberID  = uint(7)
	testServiceID = uint(3)
	testClientID  = uint(5)
)

// newScheduledRepo monta uma barbearia aberta de segunda a sábado
// 09:00–19:00 com um barbeiro escalado nas segundas 09:00–17:00.
func newScheduledRepo() *fakeRepo {
	f := newFakeRepo()

	f.shop = &models.Barbershop{
		ID:                testShopID,
		Name:              "Navalha de Ouro",
		Slug:              "navalha-de-ouro",
		Timezone:          "America/Sao_Paulo",
		SlotSizeMinutes:   30,
		MinAdvanceMinutes: 60,
	}

	f.barbers[testBarberID] = &models.User{
		ID:           testBarberID,
		BarbershopID: testShopID,
		Name:         "Rafael",
		Role:         "barber",
	}

	f.services[testServiceID] = &models.Service{
		ID:           testServiceID,
		BarbershopID: testShopID,
		Name:         "Corte",
		DurationMin:  30,
		Price:        50,
		Active:       true,
	}

	f.clients[testClientID] = &models.Client{
		ID:           testClientID,
		BarbershopID: testShopID,
		Name:         "João",
		Phone:        "11999990000",
	}

	for wd := 1; wd <= 6; wd++ {
		f.hours = append(f.hours, models.BusinessHours{
			BarbershopID: testShopID,
			Weekday:      wd,
			IsOpen:       true,
			OpenTime:     "09:00",
			CloseTime:    "19:00",
		})
	}

	f.schedules = append(f.schedules, models.WorkSchedule{
		BarbershopID: testShopID,
		BarberID:     testBarberID,
		Weekday:      1,
		StartTime:    "09:00",
		EndTime:      "17:00",
		Active:       true,
	})

	return f
}

// nextWeekday devolve a meia-noite da próxima ocorrência do dia da
// semana, pelo menos dois dias à frente, para os testes nunca caírem
// na poda de antecedência do próprio dia.
func nextWeekday(wd time.Weekday) time.Time {
	now := timezone.NowIn("America/Sao_Paulo")
	d := now.AddDate(0, 0, 2)
	for d.Weekday() != wd {
		d = d.AddDate(0, 0, 1)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

func availabilityFor(t *testing.T, f *fakeRepo, day time.Time) []string {
	t.Helper()

	uc := NewGetAvailability(f)
	days, err := uc.Execute(context.Background(), schedule.AvailabilityInput{
		BarbershopID: testShopID,
		BarberID:     testBarberID,
		ServiceID:    testServiceID,
		StartDate:    day,
		EndDate:      day,
	})
	require.NoError(t, err)
	require.Len(t, days, 1)
	require.Equal(t, day.Format("2006-01-02"), days[0].Date)
	return days[0].Slots
}

func TestGetAvailabilityFullMonday(t *testing.T) {
	f := newScheduledRepo()
	day := nextWeekday(time.Monday)

	slots := availabilityFor(t, f, day)

	// 09:00..16:30 em passos de 30min; nada depois de 16:30, porque o
	// slot precisa caber inteiro até as 17:00.
	require.Len(t, slots, 16)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "16:30", slots[len(slots)-1])
	assert.NotContains(t, slots, "17:00")
}

func TestGetAvailabilityLunchBlock(t *testing.T) {
	f := newScheduledRepo()
	day := nextWeekday(time.Monday)

	f.blocks = append(f.blocks, models.TimeBlock{
		BarbershopID:  testShopID,
		BarberID:      uintPtr(testBarberID),
		StartDateTime: day.Add(12 * time.Hour),
		EndDateTime:   day.Add(13 * time.Hour),
		BlockType:     models.BlockTypePersonal,
		Active:        true,
	})

	slots := availabilityFor(t, f, day)

	assert.NotContains(t, slots, "12:00")
	assert.NotContains(t, slots, "12:30")
	assert.Contains(t, slots, "11:30")
	assert.Contains(t, slots, "13:00")
	assert.Len(t, slots, 14)
}

func TestGetAvailabilityShopWideBlock(t *testing.T) {
	f := newScheduledRepo()
	day := nextWeekday(time.Monday)

	// Bloqueio sem barbeiro vale para todos.
	f.blocks = append(f.blocks, models.TimeBlock{
		BarbershopID:  testShopID,
		StartDateTime: day.Add(9 * time.Hour),
		EndDateTime:   day.Add(17 * time.Hour),
		BlockType:     models.BlockTypeMaintenance,
		Active:        true,
	})

	assert.Empty(t, availabilityFor(t, f, day))
}

func TestGetAvailabilityExistingAppointment(t *testing.T) {
	f := newScheduledRepo()
	day := nextWeekday(time.Monday)

	f.appointments = append(f.appointments, &models.Appointment{
		ID:           50,
		BarbershopID: testShopID,
		BarberID:     testBarberID,
		ScheduledAt:  day.Add(10 * time.Hour),
		DurationMin:  30,
		Status:       string(schedule.StatusConfirmed),
	})

	slots := availabilityFor(t, f, day)

	assert.NotContains(t, slots, "10:00")
	assert.Contains(t, slots, "09:30")
	assert.Contains(t, slots, "10:30")
}

func TestGetAvailabilityCancelledFreesSlot(t *testing.T) {
	f := newScheduledRepo()
	day := nextWeekday(time.Monday)

	f.appointments = append(f.appointments, &models.Appointment{
		ID:           50,
		BarbershopID: testShopID,
		BarberID:     testBarberID,
		ScheduledAt:  day.Add(10 * time.Hour),
		DurationMin:  30,
		Status:       string(schedule.StatusCancelled),
	})

	assert.Contains(t, availabilityFor(t, f, day), "10:00")
}

func TestGetAvailabilityDayWithoutScheduleListed(t *testing.T) {
	f := newScheduledRepo()
	day := nextWeekday(time.Monday)
	tuesday := day.AddDate(0, 0, 1)

	uc := NewGetAvailability(f)
	days, err := uc.Execute(context.Background(), schedule.AvailabilityInput{
		BarbershopID: testShopID,
		BarberID:     testBarberID,
		ServiceID:    testServiceID,
		StartDate:    day,
		EndDate:      tuesday,
	})
	require.NoError(t, err)

	// Dia sem expediente aparece com lista vazia, nunca é omitido.
	require.Len(t, days, 2)
	assert.NotEmpty(t, days[0].Slots)
	assert.Equal(t, tuesday.Format("2006-01-02"), days[1].Date)
	assert.Empty(t, days[1].Slots)
	assert.NotNil(t, days[1].Slots)
}

func TestGetAvailabilityIdempotent(t *testing.T) {
	f := newScheduledRepo()
	day := nextWeekday(time.Monday)

	first := availabilityFor(t, f, day)
	second := availabilityFor(t, f, day)
	assert.Equal(t, first, second)
}

func TestGetAvailabilityRangeValidation(t *testing.T) {
	f := newScheduledRepo()
	uc := NewGetAvailability(f)
	day := nextWeekday(time.Monday)

	t.Run("período invertido", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), schedule.AvailabilityInput{
			BarbershopID: testShopID,
			BarberID:     testBarberID,
			ServiceID:    testServiceID,
			StartDate:    day,
			EndDate:      day.AddDate(0, 0, -2),
		})
		assert.True(t, httperr.IsKind(err, httperr.KindValidation))
	})

	t.Run("período largo demais", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), schedule.AvailabilityInput{
			BarbershopID: testShopID,
			BarberID:     testBarberID,
			ServiceID:    testServiceID,
			StartDate:    day,
			EndDate:      day.AddDate(0, 0, 40),
		})
		assert.True(t, httperr.IsBusiness(err, "date_range_too_wide"))
	})
}

func TestGetAvailabilityUnknownEntities(t *testing.T) {
	f := newScheduledRepo()
	uc := NewGetAvailability(f)
	day := nextWeekday(time.Monday)

	t.Run("serviço inexistente", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), schedule.AvailabilityInput{
			BarbershopID: testShopID,
			BarberID:     testBarberID,
			ServiceID:    999,
			StartDate:    day,
			EndDate:      day,
		})
		assert.True(t, httperr.IsBusiness(err, "service_not_found"))
	})

	t.Run("serviço inativo", func(t *testing.T) {
		f.services[testServiceID].Active = false
		defer func() { f.services[testServiceID].Active = true }()

		_, err := uc.Execute(context.Background(), schedule.AvailabilityInput{
			BarbershopID: testShopID,
			BarberID:     testBarberID,
			ServiceID:    testServiceID,
			StartDate:    day,
			EndDate:      day,
		})
		assert.True(t, httperr.IsBusiness(err, "service_not_found"))
	})

	t.Run("barbeiro de outra barbearia", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), schedule.AvailabilityInput{
			BarbershopID: testShopID,
			BarberID:     999,
			ServiceID:    testServiceID,
			StartDate:    day,
			EndDate:      day,
		})
		assert.True(t, httperr.IsBusiness(err, "barber_not_found"))
	})
}
