package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ciadabeleza/salon-scheduler/internal/domain/role"
	"github.com/ciadabeleza/salon-scheduler/internal/httperr"
	"github.com/ciadabeleza/salon-scheduler/internal/httpresp"
	"github.com/ciadabeleza/salon-scheduler/internal/middleware"
	"github.com/ciadabeleza/salon-scheduler/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

// Me devolve o perfil da sessão junto com a superfície de destino; é o que a
// tela consulta ao restaurar uma sessão persistida.
func (h *MeHandler) Me(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.Unauthorized(c, "session_invalid", "Sessão inválida. Entre novamente.")
			return
		}
		httperr.Internal(c, "failed_to_load_profile", "Erro ao carregar perfil.")
		return
	}

	if !user.Active {
		httperr.Forbidden(c, "profile_inactive", "Perfil desativado. Contate o administrador.")
		return
	}

	httpresp.OK(c, gin.H{
		"user":    user,
		"landing": role.LandingFor(user.Role),
	})
}
