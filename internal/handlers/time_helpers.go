package handlers

import (
	"time"

	"github.com/navalha-app/navalha-api/internal/models"
)

const defaultTimezone = "America/Sao_Paulo"

// resolve o timezone oficial da barbearia
func locationFromShop(shop *models.Barbershop) *time.Location {
	if shop != nil && shop.Timezone != "" {
		if loc, err := time.LoadLocation(shop.Timezone); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

func parseDate(dateStr string) (time.Time, error) {
	return time.Parse("2006-01-02", dateStr)
}

// validHMRange exige HH:MM bem formados com início antes do fim.
func validHMRange(start, end string) bool {
	s, err1 := time.Parse("15:04", start)
	e, err2 := time.Parse("15:04", end)
	return err1 == nil && err2 == nil && s.Before(e)
}

func parseDateInShop(shop *models.Barbershop, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromShop(shop),
	)
}
