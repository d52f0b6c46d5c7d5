package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ciadabeleza/salon-scheduler/internal/audit"
	"github.com/ciadabeleza/salon-scheduler/internal/domain/role"
	"github.com/ciadabeleza/salon-scheduler/internal/httperr"
	"github.com/ciadabeleza/salon-scheduler/internal/httpresp"
	"github.com/ciadabeleza/salon-scheduler/internal/middleware"
	"github.com/ciadabeleza/salon-scheduler/internal/models"
	"github.com/ciadabeleza/salon-scheduler/internal/validators"
)

// ======================================================
// HANDLER (admin)
// ======================================================

type ProfessionalHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewProfessionalHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *ProfessionalHandler {
	return &ProfessionalHandler{db: db, audit: dispatcher}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateProfessionalRequest struct {
	Name     string `json:"nome" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"telefone"`
}

type UpdateProfessionalRequest struct {
	Name     string `json:"nome" binding:"required"`
	Phone    string `json:"telefone"`
	Active   *bool  `json:"ativo"`
	Password string `json:"password"`
}

// ======================================================
// CRUD
// ======================================================

func (h *ProfessionalHandler) List(c *gin.Context) {
	var professionals []models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("role = ?", role.Professional).
		Order("name ASC").
		Find(&professionals).Error; err != nil {
		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
		return
	}

	httpresp.List(c, professionals)
}

func (h *ProfessionalHandler) Create(c *gin.Context) {
	var req CreateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "Domínio de e-mail inválido.")
		return
	}

	var existing models.User
	err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", email).
		First(&existing).Error
	if err == nil {
		httperr.BadRequest(c, "email_already_registered", "Este e-mail já está cadastrado.")
		return
	}
	if err != gorm.ErrRecordNotFound {
		httperr.Internal(c, "failed_to_create_professional", "Erro ao cadastrar profissional.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_create_professional", "Erro ao cadastrar profissional.")
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Role:         role.Professional,
		Active:       true,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_create_professional", "Erro ao cadastrar profissional.")
		return
	}

	h.dispatch(c, "professional_created", user.ID)
	c.JSON(http.StatusCreated, user)
}

func (h *ProfessionalHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req UpdateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("role = ?", role.Professional).
		First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_update_professional", "Erro ao atualizar profissional.")
		return
	}

	user.Name = req.Name
	user.Phone = req.Phone
	if req.Active != nil {
		user.Active = *req.Active
	}
	if req.Password != "" {
		if len(req.Password) < 6 {
			httperr.BadRequest(c, "weak_password", "A senha deve ter pelo menos 6 caracteres.")
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "failed_to_update_professional", "Erro ao atualizar profissional.")
			return
		}
		user.PasswordHash = string(hash)
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_professional", "Erro ao atualizar profissional.")
		return
	}

	h.dispatch(c, "professional_updated", user.ID)
	httpresp.OK(c, user)
}

// Deactivate desliga o perfil sem apagar o histórico de agendamentos que
// referencia o profissional pelo nome.
func (h *ProfessionalHandler) Deactivate(c *gin.Context) {
	id := c.Param("id")

	res := h.db.WithContext(c.Request.Context()).
		Model(&models.User{}).
		Where("id = ? AND role = ?", id, role.Professional).
		Update("active", false)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_deactivate_professional", "Erro ao desativar profissional.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	h.dispatch(c, "professional_deactivated", id)
	c.Status(http.StatusNoContent)
}

func (h *ProfessionalHandler) dispatch(c *gin.Context, action, entityID string) {
	userID := c.MustGet(middleware.ContextUserID).(string)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   action,
		Entity:   "user",
		EntityID: &entityID,
	})
}
