package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/navalha-app/navalha-api/internal/httperr"
	"github.com/navalha-app/navalha-api/internal/httpresp"
	"github.com/navalha-app/navalha-api/internal/middleware"
	"github.com/navalha-app/navalha-api/internal/models"
)

type NotificationHandler struct {
	db *gorm.DB
}

func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{db: db}
}

func (h *NotificationHandler) List(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	q := h.db.
		Where("barbershop_id = ?", barbershopID)

	if c.Query("unread") == "true" {
		q = q.Where("read_at IS NULL")
	}

	var notifications []models.Notification
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error; err != nil {

		httperr.Internal(c, "failed_to_list_notifications", "Erro ao listar notificações.")
		return
	}

	httpresp.List(c, notifications)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	id := c.Param("id")

	var n models.Notification
	if err := h.db.
		Where("id = ? AND barbershop_id = ?", id, barbershopID).
		First(&n).Error; err != nil {
		httperr.NotFound(c, "notification_not_found", "Notificação não encontrada.")
		return
	}

	if n.ReadAt == nil {
		now := time.Now()
		n.ReadAt = &now
		if err := h.db.Save(&n).Error; err != nil {
			httperr.Internal(c, "failed_to_mark_read", "Erro ao marcar como lida.")
			return
		}
	}

	c.JSON(http.StatusOK, n)
}
