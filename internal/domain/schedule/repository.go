package schedule

import (
	"context"
	"time"

	"github.com/navalha-app/navalha-api/internal/models"
)

type Repository interface {
	// -------- Barbershop --------
	GetBarbershopByID(
		ctx context.Context,
		id uint,
	) (*models.Barbershop, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		barbershopID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- People --------
	GetBarber(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
	) (*models.User, error)

	GetClient(
		ctx context.Context,
		barbershopID uint,
		clientID uint,
	) (*models.Client, error)

	GetOrCreateClient(
		ctx context.Context,
		barbershopID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Scheduling config --------
	ListBusinessHours(
		ctx context.Context,
		barbershopID uint,
	) ([]models.BusinessHours, error)

	ListWorkSchedules(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
	) ([]models.WorkSchedule, error)

	ListTimeBlocks(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.TimeBlock, error)

	// -------- Appointments --------
	GetAppointment(
		ctx context.Context,
		barbershopID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	// ListLiveAppointments devolve apenas agendamentos que ocupam
	// horário (status fora de cancelled/no_show), ordenados por início.
	ListLiveAppointments(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// InTx roda fn numa transação; leituras de agendamento dentro dela
	// travam as linhas conflitantes (SELECT ... FOR UPDATE).
	InTx(
		ctx context.Context,
		fn func(Repository) error,
	) error
}
