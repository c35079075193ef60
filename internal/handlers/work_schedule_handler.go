package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/navalha-app/navalha-api/internal/cache"
	"github.com/navalha-app/navalha-api/internal/httperr"
	"github.com/navalha-app/navalha-api/internal/middleware"
	"github.com/navalha-app/navalha-api/internal/models"
)

type WorkScheduleHandler struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewWorkScheduleHandler(db *gorm.DB, c *cache.Cache) *WorkScheduleHandler {
	return &WorkScheduleHandler{db: db, cache: c}
}

type WorkShiftConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Active    bool   `json:"active"`
}

type WorkScheduleUpdateRequest struct {
	// Gerente pode editar o expediente de outro barbeiro.
	BarberID uint              `json:"barber_id"`
	Shifts   []WorkShiftConfig `json:"shifts" binding:"required"`
}

// targetBarber resolve de quem é o expediente: o próprio usuário, ou
// outro barbeiro da mesma barbearia quando o ator é dono/gerente.
func (h *WorkScheduleHandler) targetBarber(c *gin.Context, requested uint) (uint, bool) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	if requested == 0 || requested == userID {
		return userID, true
	}

	if role != "owner" && role != "manager" {
		httperr.Forbidden(c, "not_your_schedule", "Expediente pertence a outro barbeiro.")
		return 0, false
	}

	var barber models.User
	if err := h.db.
		Where("id = ? AND barbershop_id = ?", requested, barbershopID).
		First(&barber).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
		return 0, false
	}

	return requested, true
}

func (h *WorkScheduleHandler) Get(c *gin.Context) {
	var requested uint
	if s := c.Query("barber_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
			return
		}
		requested = uint(id)
	}

	barberID, ok := h.targetBarber(c, requested)
	if !ok {
		return
	}

	var shifts []models.WorkSchedule
	if err := h.db.
		Where("barber_id = ?", barberID).
		Order("weekday ASC, start_time ASC").
		Find(&shifts).Error; err != nil {

		httperr.Internal(c, "failed_to_get_work_schedule", "Erro ao buscar expediente.")
		return
	}

	c.JSON(http.StatusOK, shifts)
}

func (h *WorkScheduleHandler) Update(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req WorkScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	barberID, ok := h.targetBarber(c, req.BarberID)
	if !ok {
		return
	}

	for _, s := range req.Shifts {
		if !validHMRange(s.StartTime, s.EndTime) {
			httperr.BadRequest(c, "invalid_shift", "Turno com horário inválido.")
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("barber_id = ?", barberID).
			Delete(&models.WorkSchedule{}).Error; err != nil {
			return err
		}

		var toCreate []models.WorkSchedule
		for _, s := range req.Shifts {
			toCreate = append(toCreate, models.WorkSchedule{
				BarbershopID: barbershopID,
				BarberID:     barberID,
				Weekday:      s.Weekday,
				StartTime:    s.StartTime,
				EndTime:      s.EndTime,
				Active:       s.Active,
			})
		}

		if len(toCreate) == 0 {
			return nil
		}
		return tx.Create(&toCreate).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_work_schedule", "Erro ao salvar expediente.")
		return
	}

	h.cache.Delete(c.Request.Context(), cache.WorkSchedulesKey(barbershopID, barberID))

	userID := c.MustGet(middleware.ContextUserID).(uint)
	writeAudit(h.db, barbershopID, &userID, "work_schedule_updated", "work_schedule", &barberID, req.Shifts)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
