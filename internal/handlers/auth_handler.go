package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ciadabeleza/salon-scheduler/internal/config"
	"github.com/ciadabeleza/salon-scheduler/internal/domain/role"
	"github.com/ciadabeleza/salon-scheduler/internal/httperr"
	"github.com/ciadabeleza/salon-scheduler/internal/models"
)

type AuthHandler struct {
	db       *gorm.DB
	config   *config.Config
	throttle *LoginThrottle
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, throttle *LoginThrottle) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, throttle: throttle}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// Login autentica por e-mail/senha e devolve o token junto com a superfície
// de destino resolvida pelo role (tabela fechada em domain/role).
func (h *AuthHandler) Login(c *gin.Context) {
	h.login(c, "")
}

// LoginProfessional é a porta da área do profissional: credencial válida com
// outro papel é negação de autorização, não de credencial.
func (h *AuthHandler) LoginProfessional(c *gin.Context) {
	h.login(c, role.Professional)
}

func (h *AuthHandler) login(c *gin.Context, requiredRole string) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !h.throttle.Allow(c.Request.Context(), email) {
		httperr.TooManyRequests(c, "too_many_attempts", "Muitas tentativas. Tente novamente mais tarde.")
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			h.throttle.RecordFailure(c.Request.Context(), email)
			httperr.Unauthorized(c, "invalid_credentials", "Email ou senha incorretos.")
			return
		}
		httperr.Internal(c, "internal_error", "Ocorreu um erro ao tentar entrar. Tente novamente.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		h.throttle.RecordFailure(c.Request.Context(), email)
		httperr.Unauthorized(c, "invalid_credentials", "Email ou senha incorretos.")
		return
	}

	// Autenticado mas sem perfil utilizável: estado próprio, não se mistura
	// com credencial inválida.
	if !user.Active {
		httperr.Forbidden(c, "profile_inactive", "Perfil desativado. Contate o administrador.")
		return
	}

	if requiredRole != "" && user.Role != requiredRole {
		httperr.Forbidden(c, "restricted_area", "Acesso restrito para profissionais. Utilize a Área do Profissional.")
		return
	}

	h.throttle.Reset(c.Request.Context(), email)

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Ocorreu um erro ao tentar entrar. Tente novamente.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"nome":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
		"landing": role.LandingFor(user.Role),
		"token":   token,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"name": user.Name,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
