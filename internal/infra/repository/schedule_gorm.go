package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/navalha-app/navalha-api/internal/cache"
	"github.com/navalha-app/navalha-api/internal/domain/schedule"
	"github.com/navalha-app/navalha-api/internal/models"
)

type ScheduleGormRepository struct {
	db    *gorm.DB
	cache *cache.Cache

	// locking liga SELECT ... FOR UPDATE nas leituras de agendamento;
	// só é verdadeiro no repositório criado dentro de InTx.
	locking bool
}

func NewScheduleGormRepository(db *gorm.DB, c *cache.Cache) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db, cache: c}
}

// --------------------------------------------------
// Barbershop
// --------------------------------------------------

func (r *ScheduleGormRepository) GetBarbershopByID(
	ctx context.Context,
	id uint,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *ScheduleGormRepository) GetService(
	ctx context.Context,
	barbershopID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", serviceID, barbershopID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// People
// --------------------------------------------------

func (r *ScheduleGormRepository) GetBarber(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
) (*models.User, error) {

	var barber models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", barberID, barbershopID).
		First(&barber).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *ScheduleGormRepository) GetClient(
	ctx context.Context,
	barbershopID uint,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", clientID, barbershopID).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ScheduleGormRepository) GetOrCreateClient(
	ctx context.Context,
	barbershopID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND phone = ?", barbershopID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		BarbershopID: barbershopID,
		Name:         name,
		Phone:        phone,
		Email:        email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Scheduling config (read-through cache)
// --------------------------------------------------

func (r *ScheduleGormRepository) ListBusinessHours(
	ctx context.Context,
	barbershopID uint,
) ([]models.BusinessHours, error) {

	key := cache.BusinessHoursKey(barbershopID)

	var hours []models.BusinessHours
	if r.cache.GetJSON(ctx, key, &hours) {
		return hours, nil
	}

	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ?", barbershopID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}

	r.cache.SetJSON(ctx, key, hours)
	return hours, nil
}

func (r *ScheduleGormRepository) ListWorkSchedules(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
) ([]models.WorkSchedule, error) {

	key := cache.WorkSchedulesKey(barbershopID, barberID)

	var entries []models.WorkSchedule
	if r.cache.GetJSON(ctx, key, &entries) {
		return entries, nil
	}

	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND barber_id = ?", barbershopID, barberID).
		Order("weekday ASC, start_time ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	r.cache.SetJSON(ctx, key, entries)
	return entries, nil
}

func (r *ScheduleGormRepository) ListTimeBlocks(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.TimeBlock, error) {

	var blocks []models.TimeBlock
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND active = true", barbershopID).
		Where("barber_id IS NULL OR barber_id = ?", barberID).
		// Recorrentes entram sempre: a expansão decide se caem no
		// período consultado.
		Where("is_recurring = true OR (start_date_time < ? AND end_date_time > ?)", end, start).
		Order("start_date_time ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}

	return blocks, nil
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *ScheduleGormRepository) GetAppointment(
	ctx context.Context,
	barbershopID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", appointmentID, barbershopID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *ScheduleGormRepository) ListLiveAppointments(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).Model(&models.Appointment{})
	if r.locking {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var apps []models.Appointment
	if err := q.
		Where(
			"barber_id = ? AND status NOT IN ('cancelled', 'no_show') AND scheduled_at >= ? AND scheduled_at < ?",
			barberID, start, end,
		).
		Order("scheduled_at ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *ScheduleGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where(
			"barber_id = ? AND scheduled_at >= ? AND scheduled_at < ?",
			barberID,
			start,
			end,
		).
		Order("scheduled_at ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *ScheduleGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *ScheduleGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Transação
// --------------------------------------------------

func (r *ScheduleGormRepository) InTx(
	ctx context.Context,
	fn func(schedule.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Dentro da transação as leituras vão direto ao banco (sem
		// cache) e passam a travar linhas.
		return fn(&ScheduleGormRepository{db: tx, locking: true})
	})
}

// Compile-time check
var _ schedule.Repository = (*ScheduleGormRepository)(nil)
