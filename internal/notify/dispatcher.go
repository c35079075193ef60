package notify

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/navalha-app/navalha-api/internal/models"
)

const (
	EventAppointmentCreated     = "appointment_created"
	EventAppointmentRescheduled = "appointment_rescheduled"
	EventAppointmentStatus      = "appointment_status_changed"
)

type Event struct {
	BarbershopID  uint
	BarberID      *uint
	ClientID      *uint
	AppointmentID *uint
	Type          string
	Message       string
}

// Dispatcher grava o feed de notificações em background. Fire and
// forget: falha aqui nunca desfaz a mutação do agendamento.
type Dispatcher struct {
	db    *gorm.DB
	log   *zap.Logger
	queue chan Event
}

func NewDispatcher(db *gorm.DB, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		db:    db,
		log:   log,
		queue: make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		n := models.Notification{
			EventID:       uuid.New(),
			BarbershopID:  ev.BarbershopID,
			BarberID:      ev.BarberID,
			ClientID:      ev.ClientID,
			AppointmentID: ev.AppointmentID,
			Type:          ev.Type,
			Message:       ev.Message,
		}

		if err := d.db.Create(&n).Error; err != nil {
			d.log.Warn("notification write failed",
				zap.String("type", ev.Type),
				zap.Uint("barbershop_id", ev.BarbershopID),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos a notificação (nunca quebrar API)
		d.log.Warn("notification queue full, dropping event",
			zap.String("type", ev.Type),
		)
	}
}
