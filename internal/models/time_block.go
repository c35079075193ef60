package models

import "time"

const (
	BlockTypeVacation    = "vacation"
	BlockTypeHoliday     = "holiday"
	BlockTypeMaintenance = "maintenance"
	BlockTypePersonal    = "personal"
	BlockTypeOther       = "other"
)

const (
	RecurrenceWeekly  = "weekly"
	RecurrenceMonthly = "monthly"
	RecurrenceYearly  = "yearly"
)

// TimeBlock remove um intervalo da agenda. BarberID nulo = bloqueio da
// barbearia inteira. Nunca é apagado, apenas desativado.
type TimeBlock struct {
	ID           uint  `gorm:"primaryKey" json:"id"`
	BarbershopID uint  `gorm:"index" json:"barbershop_id"`
	BarberID     *uint `gorm:"index" json:"barber_id"`

	Title string `gorm:"size:100" json:"title"`

	StartDateTime time.Time `json:"start_date_time"`
	EndDateTime   time.Time `json:"end_date_time"`
	AllDay        bool      `json:"all_day"`

	BlockType string `gorm:"size:20;default:'other'" json:"block_type"`

	IsRecurring      bool       `json:"is_recurring"`
	RecurringPattern string     `gorm:"size:10" json:"recurring_pattern"`
	RecurringUntil   *time.Time `json:"recurring_until"`

	CreatedBy uint `json:"created_by"`
	Active    bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ValidBlockType(t string) bool {
	switch t {
	case BlockTypeVacation, BlockTypeHoliday, BlockTypeMaintenance, BlockTypePersonal, BlockTypeOther:
		return true
	}
	return false
}

func ValidRecurrence(p string) bool {
	switch p {
	case RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	}
	return false
}
