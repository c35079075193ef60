package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/navalha-app/navalha-api/internal/httperr"
	"github.com/navalha-app/navalha-api/internal/middleware"
	"github.com/navalha-app/navalha-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type TimeBlockHandler struct {
	db *gorm.DB
}

func NewTimeBlockHandler(db *gorm.DB) *TimeBlockHandler {
	return &TimeBlockHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateTimeBlockRequest struct {
	// Nulo = bloqueio da barbearia inteira (só dono/gerente).
	BarberID *uint `json:"barber_id"`

	Title string `json:"title" binding:"required"`

	StartDateTime time.Time `json:"start_date_time" binding:"required"`
	EndDateTime   time.Time `json:"end_date_time" binding:"required"`
	AllDay        bool      `json:"all_day"`

	BlockType string `json:"block_type" binding:"required"`

	IsRecurring      bool       `json:"is_recurring"`
	RecurringPattern string     `json:"recurring_pattern"`
	RecurringUntil   *time.Time `json:"recurring_until"`
}

// ======================================================
// LIST
// ======================================================

func (h *TimeBlockHandler) List(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	q := h.db.
		Where("barbershop_id = ? AND active = true", barbershopID)

	if s := c.Query("barber_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
			return
		}
		q = q.Where("barber_id IS NULL OR barber_id = ?", uint(id))
	}

	var blocks []models.TimeBlock
	if err := q.Order("start_date_time ASC").Find(&blocks).Error; err != nil {
		httperr.Internal(c, "failed_to_list_time_blocks", "Erro ao listar bloqueios.")
		return
	}

	c.JSON(http.StatusOK, blocks)
}

// ======================================================
// CREATE
// ======================================================

func (h *TimeBlockHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	var req CreateTimeBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if !req.StartDateTime.Before(req.EndDateTime) {
		httperr.BadRequest(c, "invalid_block_range", "Início precisa vir antes do fim.")
		return
	}

	if !models.ValidBlockType(req.BlockType) {
		httperr.BadRequest(c, "invalid_block_type", "Tipo de bloqueio desconhecido.")
		return
	}

	if req.IsRecurring && !models.ValidRecurrence(req.RecurringPattern) {
		httperr.BadRequest(c, "invalid_recurrence", "Padrão de recorrência desconhecido.")
		return
	}

	manager := role == "owner" || role == "manager"

	// Bloqueio da barbearia inteira é coisa de gerente; barbeiro cria
	// bloqueio pessoal só para si.
	if req.BarberID == nil && !manager {
		httperr.Forbidden(c, "not_manager", "Apenas o gerente bloqueia a barbearia inteira.")
		return
	}
	if req.BarberID != nil && *req.BarberID != userID && !manager {
		httperr.Forbidden(c, "not_your_block", "Bloqueio pertence a outro barbeiro.")
		return
	}

	if req.BarberID != nil {
		var barber models.User
		if err := h.db.
			Where("id = ? AND barbershop_id = ?", *req.BarberID, barbershopID).
			First(&barber).Error; err != nil {
			httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
			return
		}
	}

	block := models.TimeBlock{
		BarbershopID:     barbershopID,
		BarberID:         req.BarberID,
		Title:            req.Title,
		StartDateTime:    req.StartDateTime,
		EndDateTime:      req.EndDateTime,
		AllDay:           req.AllDay,
		BlockType:        req.BlockType,
		IsRecurring:      req.IsRecurring,
		RecurringPattern: req.RecurringPattern,
		RecurringUntil:   req.RecurringUntil,
		CreatedBy:        userID,
		Active:           true,
	}

	if err := h.db.Create(&block).Error; err != nil {
		httperr.Internal(c, "failed_to_create_time_block", "Erro ao criar bloqueio.")
		return
	}

	writeAudit(h.db, barbershopID, &userID, "time_block_created", "time_block", &block.ID, nil)

	c.JSON(http.StatusCreated, block)
}

// ======================================================
// DELETE (soft)
// ======================================================

// Delete desativa o bloqueio; a linha fica para histórico de
// agendamentos passados.
func (h *TimeBlockHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	id := c.Param("id")

	var block models.TimeBlock
	if err := h.db.
		Where("id = ? AND barbershop_id = ?", id, barbershopID).
		First(&block).Error; err != nil {
		httperr.NotFound(c, "time_block_not_found", "Bloqueio não encontrado.")
		return
	}

	manager := role == "owner" || role == "manager"
	if !manager && (block.BarberID == nil || *block.BarberID != userID) {
		httperr.Forbidden(c, "not_your_block", "Bloqueio pertence a outro barbeiro.")
		return
	}

	block.Active = false
	if err := h.db.Save(&block).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_time_block", "Erro ao remover bloqueio.")
		return
	}

	writeAudit(h.db, barbershopID, &userID, "time_block_removed", "time_block", &block.ID, nil)

	c.JSON(http.StatusOK, block)
}
