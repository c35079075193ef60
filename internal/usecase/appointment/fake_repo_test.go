package appointment

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/navalha-app/navalha-api/internal/domain/schedule"
	"github.com/navalha-app/navalha-api/internal/models"
)

var errFakeNotFound = errors.New("not found")

func uintPtr(v uint) *uint { return &v }

// fakeRepo implementa schedule.Repository em memória para os testes de
// caso de uso. InTx roda a função direto: os testes são sequenciais, a
// atomicidade real fica com o repositório GORM.
type fakeRepo struct {
	shop     *models.Barbershop
	barbers  map[uint]*models.User
	services map[uint]*models.Service
	clients  map[uint]*models.Client

	hours     []models.BusinessHours
	schedules []models.WorkSchedule
	blocks    []models.TimeBlock

	appointments []*models.Appointment
	nextID       uint
}

var _ schedule.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		barbers:  map[uint]*models.User{},
		services: map[uint]*models.Service{},
		clients:  map[uint]*models.Client{},
		nextID:   1,
	}
}

func (f *fakeRepo) GetBarbershopByID(_ context.Context, id uint) (*models.Barbershop, error) {
	if f.shop == nil || f.shop.ID != id {
		return nil, errFakeNotFound
	}
	return f.shop, nil
}

func (f *fakeRepo) GetService(_ context.Context, shopID, serviceID uint) (*models.Service, error) {
	s, ok := f.services[serviceID]
	if !ok || s.BarbershopID != shopID {
		return nil, errFakeNotFound
	}
	return s, nil
}

func (f *fakeRepo) GetBarber(_ context.Context, shopID, barberID uint) (*models.User, error) {
	b, ok := f.barbers[barberID]
	if !ok || b.BarbershopID != shopID {
		return nil, errFakeNotFound
	}
	return b, nil
}

func (f *fakeRepo) GetClient(_ context.Context, shopID, clientID uint) (*models.Client, error) {
	c, ok := f.clients[clientID]
	if !ok || c.BarbershopID != shopID {
		return nil, errFakeNotFound
	}
	return c, nil
}

func (f *fakeRepo) GetOrCreateClient(_ context.Context, shopID uint, name, phone, email string) (*models.Client, error) {
	for _, c := range f.clients {
		if c.BarbershopID == shopID && c.Phone == phone {
			return c, nil
		}
	}

	c := &models.Client{
		ID:           f.nextID,
		BarbershopID: shopID,
		Name:         name,
		Phone:        phone,
		Email:        email,
	}
	f.nextID++
	f.clients[c.ID] = c
	return c, nil
}

func (f *fakeRepo) ListBusinessHours(_ context.Context, shopID uint) ([]models.BusinessHours, error) {
	var out []models.BusinessHours
	for _, h := range f.hours {
		if h.BarbershopID == shopID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListWorkSchedules(_ context.Context, shopID, barberID uint) ([]models.WorkSchedule, error) {
	var out []models.WorkSchedule
	for _, w := range f.schedules {
		if w.BarbershopID == shopID && w.BarberID == barberID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListTimeBlocks(_ context.Context, shopID, barberID uint, start, end time.Time) ([]models.TimeBlock, error) {
	var out []models.TimeBlock
	for _, b := range f.blocks {
		if b.BarbershopID != shopID || !b.Active {
			continue
		}
		if b.BarberID != nil && *b.BarberID != barberID {
			continue
		}
		if !b.IsRecurring && (!b.StartDateTime.Before(end) || !b.EndDateTime.After(start)) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeRepo) GetAppointment(_ context.Context, shopID, appointmentID uint) (*models.Appointment, error) {
	for _, ap := range f.appointments {
		if ap.ID == appointmentID && ap.BarbershopID == shopID {
			return ap, nil
		}
	}
	return nil, errFakeNotFound
}

func (f *fakeRepo) ListLiveAppointments(_ context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.BarberID != barberID || !schedule.Status(ap.Status).Live() {
			continue
		}
		if !ap.ScheduledAt.Before(end) || !ap.EndsAt().After(start) {
			continue
		}
		out = append(out, *ap)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledAt.Before(out[j].ScheduledAt)
	})
	return out, nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(_ context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.BarberID != barberID {
			continue
		}
		if !ap.ScheduledAt.Before(end) || !ap.EndsAt().After(start) {
			continue
		}
		out = append(out, *ap)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledAt.Before(out[j].ScheduledAt)
	})
	return out, nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	ap.ID = f.nextID
	f.nextID++
	stored := *ap
	f.appointments = append(f.appointments, &stored)
	return nil
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	for i, cur := range f.appointments {
		if cur.ID == ap.ID {
			stored := *ap
			f.appointments[i] = &stored
			return nil
		}
	}
	return errFakeNotFound
}

func (f *fakeRepo) InTx(_ context.Context, fn func(schedule.Repository) error) error {
	return fn(f)
}
