package schedule

import "time"

type AvailabilityInput struct {
	BarbershopID uint
	BarberID     uint
	ServiceID    uint
	StartDate    time.Time
	EndDate      time.Time
}

// DaySlots é a disponibilidade de uma data. Dias sem horário livre
// aparecem com Slots vazio, nunca são omitidos.
type DaySlots struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}
