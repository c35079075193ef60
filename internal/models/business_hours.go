package models

import "time"

// BusinessHours é o horário de funcionamento da barbearia, uma linha
// por dia da semana (0 = domingo).
type BusinessHours struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"index:idx_business_hours_shop_weekday,unique" json:"barbershop_id"`

	Weekday int `gorm:"index:idx_business_hours_shop_weekday,unique" json:"weekday"`

	IsOpen    bool   `json:"is_open"`
	OpenTime  string `gorm:"size:5" json:"open_time"`  // HH:MM
	CloseTime string `gorm:"size:5" json:"close_time"` // HH:MM

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
