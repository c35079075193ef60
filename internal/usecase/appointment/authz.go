package appointment

import (
	"github.com/navalha-app/navalha-api/internal/httperr"
	"github.com/navalha-app/navalha-api/internal/models"
)

// assertActorOwns: dono/gerente mexe em qualquer agendamento da
// barbearia; barbeiro só nos próprios.
func assertActorOwns(ap *models.Appointment, actorUserID *uint, role string) error {
	if role == "owner" || role == "manager" {
		return nil
	}
	if actorUserID != nil && *actorUserID == ap.BarberID {
		return nil
	}
	return httperr.ErrBusiness(
		httperr.KindForbidden,
		"not_your_appointment",
		"Agendamento pertence a outro barbeiro.",
	)
}
