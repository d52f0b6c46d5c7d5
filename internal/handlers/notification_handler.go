package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ciadabeleza/salon-scheduler/internal/httperr"
	"github.com/ciadabeleza/salon-scheduler/internal/httpresp"
	"github.com/ciadabeleza/salon-scheduler/internal/middleware"
	"github.com/ciadabeleza/salon-scheduler/internal/models"
	"github.com/ciadabeleza/salon-scheduler/internal/timezone"
)

const (
	notificationDefaultLimit = 20
	notificationMaxLimit     = 100
)

// ======================================================
// HANDLER
// ======================================================

type NotificationHandler struct {
	db *gorm.DB
	tz string
}

func NewNotificationHandler(db *gorm.DB, tz string) *NotificationHandler {
	return &NotificationHandler{db: db, tz: tz}
}

// ======================================================
// LISTING
// ======================================================

// List devolve as notificações do usuário autenticado, mais recentes
// primeiro. `?limit=` controla o tamanho da página.
func (h *NotificationHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	limit := notificationDefaultLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > notificationMaxLimit {
		limit = notificationMaxLimit
	}

	var notifications []models.Notification
	if err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error; err != nil {
		httperr.Internal(c, "failed_to_list_notifications", "Erro ao carregar notificações.")
		return
	}

	httpresp.List(c, notifications)
}

// UnreadCount alimenta o badge do sino.
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	var count int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "failed_to_count_notifications", "Erro ao carregar notificações.")
		return
	}

	httpresp.OK(c, gin.H{"unread": count})
}

// ======================================================
// MARK READ
// ======================================================

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)
	id := c.Param("id")

	now := timezone.NowIn(h.tz)
	res := h.db.WithContext(c.Request.Context()).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{"read": true, "read_at": now})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_mark_read", "Erro ao marcar notificação.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "notification_not_found", "Notificação não encontrada.")
		return
	}

	c.Status(http.StatusNoContent)
}

// MarkAllRead marca cada notificação não lida com uma escrita independente.
// Não há transação: uma falha no meio deixa as anteriores marcadas, e o
// chamador recebe quantas foram.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	var unread []models.Notification
	if err := h.db.WithContext(c.Request.Context()).
		Select("id").
		Where("user_id = ? AND read = ?", userID, false).
		Find(&unread).Error; err != nil {
		httperr.Internal(c, "failed_to_mark_all_read", "Erro ao marcar notificações.")
		return
	}

	now := timezone.NowIn(h.tz)
	marked := 0
	failed := 0
	for _, n := range unread {
		err := h.db.WithContext(c.Request.Context()).
			Model(&models.Notification{}).
			Where("id = ?", n.ID).
			Updates(map[string]any{"read": true, "read_at": now}).Error
		if err != nil {
			failed++
			continue
		}
		marked++
	}

	httpresp.OK(c, gin.H{"marcadas": marked, "falhas": failed})
}
