package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification é uma linha do feed, gravada pelo dispatcher em
// background. Falha ao gravar nunca desfaz o agendamento.
type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EventID uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"event_id"`

	BarbershopID  uint  `gorm:"index" json:"barbershop_id"`
	BarberID      *uint `json:"barber_id"`
	ClientID      *uint `json:"client_id"`
	AppointmentID *uint `json:"appointment_id"`

	Type    string `gorm:"size:50;not null" json:"type"`
	Message string `gorm:"size:255" json:"message"`

	ReadAt *time.Time `json:"read_at"`

	CreatedAt time.Time `json:"created_at"`
}
