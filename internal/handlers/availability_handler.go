package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/navalha-app/navalha-api/internal/domain/schedule"
	"github.com/navalha-app/navalha-api/internal/httperr"
	"github.com/navalha-app/navalha-api/internal/middleware"
	ucAppointment "github.com/navalha-app/navalha-api/internal/usecase/appointment"
)

type AvailabilityHandler struct {
	availabilityUC *ucAppointment.GetAvailability
}

func NewAvailabilityHandler(uc *ucAppointment.GetAvailability) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityUC: uc}
}

// Get é a visão autenticada da disponibilidade: sem barber_id a
// consulta é para a própria agenda do usuário logado.
func (h *AvailabilityHandler) Get(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	serviceID, err := strconv.ParseUint(c.Query("service_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}

	barberID := userID
	if s := c.Query("barber_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
			return
		}
		barberID = uint(id)
	}

	in := schedule.AvailabilityInput{
		BarbershopID: barbershopID,
		BarberID:     barberID,
		ServiceID:    uint(serviceID),
	}

	if s := c.Query("start_date"); s != "" {
		start, err := time.Parse("2006-01-02", s)
		if err != nil {
			httperr.BadRequest(c, "invalid_start_date", "Data inicial inválida.")
			return
		}
		in.StartDate = start
	}

	if s := c.Query("end_date"); s != "" {
		end, err := time.Parse("2006-01-02", s)
		if err != nil {
			httperr.BadRequest(c, "invalid_end_date", "Data final inválida.")
			return
		}
		in.EndDate = end
	}

	days, err := h.availabilityUC.Execute(c.Request.Context(), in)
	if err != nil {
		if !httperr.FromBusiness(c, err) {
			httperr.Internal(c, "availability_failed", "Erro ao calcular horários.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": days})
}
