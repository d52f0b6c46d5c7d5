package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ciadabeleza/salon-scheduler/internal/domain/role"
	"github.com/ciadabeleza/salon-scheduler/internal/httperr"
	"github.com/ciadabeleza/salon-scheduler/internal/httpresp"
	"github.com/ciadabeleza/salon-scheduler/internal/models"
	ucAppointment "github.com/ciadabeleza/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// ÁREA PÚBLICA (agendamento sem login)
// ======================================================

type PublicHandler struct {
	db       *gorm.DB
	createUC *ucAppointment.CreateAppointment
}

func NewPublicHandler(db *gorm.DB, createUC *ucAppointment.CreateAppointment) *PublicHandler {
	return &PublicHandler{db: db, createUC: createUC}
}

// PublicProfessional é a projeção exposta no formulário público; nada de
// e-mail ou telefone do profissional.
type PublicProfessional struct {
	ID   string `json:"id"`
	Name string `json:"nome"`
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	var services []models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Where("active = ?", true).
		Order("name ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	httpresp.List(c, services)
}

func (h *PublicHandler) ListProfessionals(c *gin.Context) {
	var users []models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("role = ? AND active = ?", role.Professional, true).
		Order("name ASC").
		Find(&users).Error; err != nil {
		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
		return
	}

	out := make([]PublicProfessional, 0, len(users))
	for _, u := range users {
		out = append(out, PublicProfessional{ID: u.ID, Name: u.Name})
	}

	httpresp.List(c, out)
}

// Book cria o agendamento pendente vindo do formulário público. O pedido
// entra sem autor; a confirmação fica a cargo do profissional.
func (h *PublicHandler) Book(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		ClientEmail:    req.ClientEmail,
		ServiceID:      req.ServiceID,
		ProfessionalID: req.ProfessionalID,
		Date:           req.Date,
		Time:           req.Time,
		Notes:          req.Notes,
	})
	if err != nil {
		writeCreateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       ap.ID,
		"status":   ap.Status,
		"mensagem": "Agendamento recebido! Aguarde a confirmação.",
	})
}
