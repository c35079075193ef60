package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/navalha-app/navalha-api/internal/cache"
	"github.com/navalha-app/navalha-api/internal/httperr"
	"github.com/navalha-app/navalha-api/internal/middleware"
	"github.com/navalha-app/navalha-api/internal/models"
)

type BusinessHoursHandler struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewBusinessHoursHandler(db *gorm.DB, c *cache.Cache) *BusinessHoursHandler {
	return &BusinessHoursHandler{db: db, cache: c}
}

type BusinessDayConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	IsOpen    bool   `json:"is_open"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
}

type BusinessHoursUpdateRequest struct {
	Days []BusinessDayConfig `json:"days" binding:"required"`
}

func (h *BusinessHoursHandler) Get(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var hours []models.BusinessHours
	if err := h.db.
		Where("barbershop_id = ?", barbershopID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		httperr.Internal(c, "failed_to_get_business_hours", "Erro ao buscar horário de funcionamento.")
		return
	}

	c.JSON(http.StatusOK, hours)
}

// Update troca a semana inteira de uma vez, como a tela de
// configuração envia. Só o dono/gerente chega aqui (rota protegida).
func (h *BusinessHoursHandler) Update(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	if role != "owner" && role != "manager" {
		httperr.Forbidden(c, "not_manager", "Apenas o gerente altera o horário de funcionamento.")
		return
	}

	var req BusinessHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	for _, d := range req.Days {
		if d.IsOpen && !validHMRange(d.OpenTime, d.CloseTime) {
			httperr.BadRequest(c, "invalid_hours", "Abertura precisa vir antes do fechamento.")
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("barbershop_id = ?", barbershopID).
			Delete(&models.BusinessHours{}).Error; err != nil {
			return err
		}

		var toCreate []models.BusinessHours
		for _, d := range req.Days {
			toCreate = append(toCreate, models.BusinessHours{
				BarbershopID: barbershopID,
				Weekday:      d.Weekday,
				IsOpen:       d.IsOpen,
				OpenTime:     d.OpenTime,
				CloseTime:    d.CloseTime,
			})
		}

		if len(toCreate) == 0 {
			return nil
		}
		return tx.Create(&toCreate).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_business_hours", "Erro ao salvar horário de funcionamento.")
		return
	}

	h.cache.Delete(c.Request.Context(), cache.BusinessHoursKey(barbershopID))

	userID := c.MustGet(middleware.ContextUserID).(uint)
	writeAudit(h.db, barbershopID, &userID, "business_hours_updated", "business_hours", nil, req.Days)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
