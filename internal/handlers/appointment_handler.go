package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/navalha-app/navalha-api/internal/httperr"
	"github.com/navalha-app/navalha-api/internal/middleware"
	ucAppointment "github.com/navalha-app/navalha-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC     *ucAppointment.CreateAppointment
	statusUC     *ucAppointment.UpdateStatus
	rescheduleUC *ucAppointment.RescheduleAppointment
	cancelUC     *ucAppointment.CancelAppointment
	listDateUC   *ucAppointment.ListAppointmentsByDate
	listMonthUC  *ucAppointment.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	statusUC *ucAppointment.UpdateStatus,
	rescheduleUC *ucAppointment.RescheduleAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	listDateUC *ucAppointment.ListAppointmentsByDate,
	listMonthUC *ucAppointment.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:     createUC,
		statusUC:     statusUC,
		rescheduleUC: rescheduleUC,
		cancelUC:     cancelUC,
		listDateUC:   listDateUC,
		listMonthUC:  listMonthUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BarberID    uint   `json:"barber_id"`
	ClientID    uint   `json:"client_id"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Notes       string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type RescheduleRequest struct {
	Date     string `json:"date" binding:"required"` // YYYY-MM-DD
	Time     string `json:"time" binding:"required"` // HH:mm
	BarberID uint   `json:"barber_id"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	// Sem barber_id o agendamento é para o próprio usuário logado.
	barberID := req.BarberID
	if barberID == 0 {
		barberID = userID
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		BarbershopID: barbershopID,
		BarberID:     barberID,
		ServiceID:    req.ServiceID,
		ClientID:     req.ClientID,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		ClientEmail:  req.ClientEmail,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
		ActorUserID:  &userID,
	})
	if err != nil {
		if !httperr.FromBusiness(c, err) {
			httperr.Internal(c, "failed_to_create_appointment", "Erro ao criar agendamento.")
		}
		return
	}

	c.JSON(201, ap)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.statusUC.Execute(c.Request.Context(), ucAppointment.UpdateStatusInput{
		BarbershopID:  barbershopID,
		AppointmentID: uint(id),
		NewStatus:     req.Status,
		ActorUserID:   &userID,
		ActorRole:     role,
	})
	if err != nil {
		if !httperr.FromBusiness(c, err) {
			httperr.Internal(c, "failed_to_update_status", "Erro ao mudar status.")
		}
		return
	}

	c.JSON(200, ap)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), ucAppointment.RescheduleAppointmentInput{
		BarbershopID:  barbershopID,
		AppointmentID: uint(id),
		Date:          req.Date,
		Time:          req.Time,
		NewBarberID:   req.BarberID,
		ActorUserID:   &userID,
		ActorRole:     role,
	})
	if err != nil {
		if !httperr.FromBusiness(c, err) {
			httperr.Internal(c, "failed_to_reschedule", "Erro ao remarcar agendamento.")
		}
		return
	}

	c.JSON(200, ap)
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), ucAppointment.UpdateStatusInput{
		BarbershopID:  barbershopID,
		AppointmentID: uint(id),
		ActorUserID:   &userID,
		ActorRole:     role,
	})
	if err != nil {
		if !httperr.FromBusiness(c, err) {
			httperr.Internal(c, "failed_to_cancel", "Erro ao cancelar agendamento.")
		}
		return
	}

	c.JSON(200, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	date, err := parseDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	out, err := h.listDateUC.Execute(c.Request.Context(), userID, barbershopID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(200, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	out, err := h.listMonthUC.Execute(c.Request.Context(), userID, barbershopID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(200, gin.H{
		"year":         year,
		"month":        month,
		"appointments": out,
	})
}
