package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ciadabeleza/salon-scheduler/internal/config"
	"github.com/ciadabeleza/salon-scheduler/internal/httperr"
	"github.com/ciadabeleza/salon-scheduler/internal/httpresp"
	"github.com/ciadabeleza/salon-scheduler/internal/middleware"
	"github.com/ciadabeleza/salon-scheduler/internal/models"
)

// ======================================================
// PUSH SUBSCRIPTIONS
// ======================================================

type SubscriptionHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewSubscriptionHandler(db *gorm.DB, cfg *config.Config) *SubscriptionHandler {
	return &SubscriptionHandler{db: db, config: cfg}
}

type RegisterSubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
	Keys     struct {
		P256DH string `json:"p256dh" binding:"required"`
		Auth   string `json:"auth" binding:"required"`
	} `json:"keys" binding:"required"`
}

// VAPIDKey expõe a chave pública para o navegador assinar a subscription.
func (h *SubscriptionHandler) VAPIDKey(c *gin.Context) {
	if h.config.VAPIDPublicKey == "" {
		httperr.NotFound(c, "push_disabled", "Notificações push desativadas.")
		return
	}
	httpresp.OK(c, gin.H{"publicKey": h.config.VAPIDPublicKey})
}

// Register grava (ou reaproveita) o endpoint do navegador para o usuário
// autenticado. O mesmo endpoint re-registrado troca de dono em vez de duplicar.
func (h *SubscriptionHandler) Register(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	var req RegisterSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	sub := models.PushSubscription{
		UserID:   userID,
		Endpoint: req.Endpoint,
		P256DH:   req.Keys.P256DH,
		Auth:     req.Keys.Auth,
	}

	err := h.db.WithContext(c.Request.Context()).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "p256_dh", "auth"}),
		}).
		Create(&sub).Error
	if err != nil {
		httperr.Internal(c, "failed_to_register_subscription", "Erro ao registrar notificações.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

// Unregister remove o endpoint (logout ou permissão revogada).
func (h *SubscriptionHandler) Unregister(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	var req struct {
		Endpoint string `json:"endpoint" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ? AND endpoint = ?", userID, req.Endpoint).
		Delete(&models.PushSubscription{}).Error; err != nil {
		httperr.Internal(c, "failed_to_unregister_subscription", "Erro ao remover registro.")
		return
	}

	c.Status(http.StatusNoContent)
}
