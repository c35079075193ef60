package cache

import "fmt"

func BusinessHoursKey(barbershopID uint) string {
	return fmt.Sprintf("sched:shop:%d:hours", barbershopID)
}

func WorkSchedulesKey(barbershopID, barberID uint) string {
	return fmt.Sprintf("sched:shop:%d:barber:%d:schedule", barbershopID, barberID)
}
