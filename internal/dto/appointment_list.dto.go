package dto

import "time"

type AppointmentListDTO struct {
	ID          uint      `json:"id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	EndsAt      time.Time `json:"ends_at"`
	Status      string    `json:"status"`
	ClientName  string    `json:"client_name"`
	ServiceName string    `json:"service_name"`
	TotalPrice  float64   `json:"total_price"`
}
