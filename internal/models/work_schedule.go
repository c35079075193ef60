package models

import "time"

// WorkSchedule é o expediente de um barbeiro. Pode haver mais de uma
// linha ativa por dia da semana (turnos quebrados).
type WorkSchedule struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `json:"barbershop_id"`
	BarberID     uint `gorm:"index" json:"barber_id"`

	Weekday int `json:"weekday"`

	StartTime string `gorm:"size:5" json:"start_time"` // HH:MM
	EndTime   string `gorm:"size:5" json:"end_time"`   // HH:MM
	Active    bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
