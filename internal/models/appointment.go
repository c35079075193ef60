package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PublicCode uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"public_code"`

	BarbershopID uint       `json:"barbershop_id"`
	Barbershop   Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barbershop"`

	BarberID uint `gorm:"index" json:"barber_id"`
	Barber   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	ScheduledAt time.Time `gorm:"index" json:"scheduled_at"`

	// Snapshot do serviço no momento da reserva: edições posteriores
	// do serviço não alteram agendamentos existentes.
	DurationMin int     `json:"duration_min"`
	TotalPrice  float64 `json:"total_price"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) EndsAt() time.Time {
	return a.ScheduledAt.Add(time.Duration(a.DurationMin) * time.Minute)
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.PublicCode == uuid.Nil {
		a.PublicCode = uuid.New()
	}
	return nil
}
