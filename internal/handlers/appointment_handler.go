package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ciadabeleza/salon-scheduler/internal/httperr"
	"github.com/ciadabeleza/salon-scheduler/internal/middleware"
	ucAppointment "github.com/ciadabeleza/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC    *ucAppointment.CreateAppointment
	acceptUC    *ucAppointment.TransitionAppointment
	startUC     *ucAppointment.TransitionAppointment
	finishUC    *ucAppointment.TransitionAppointment
	cancelUC    *ucAppointment.TransitionAppointment
	deleteUC    *ucAppointment.DeleteAppointment
	listUC      *ucAppointment.ListUpcoming
	dashboardUC *ucAppointment.Dashboard
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	acceptUC *ucAppointment.TransitionAppointment,
	startUC *ucAppointment.TransitionAppointment,
	finishUC *ucAppointment.TransitionAppointment,
	cancelUC *ucAppointment.TransitionAppointment,
	deleteUC *ucAppointment.DeleteAppointment,
	listUC *ucAppointment.ListUpcoming,
	dashboardUC *ucAppointment.Dashboard,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:    createUC,
		acceptUC:    acceptUC,
		startUC:     startUC,
		finishUC:    finishUC,
		cancelUC:    cancelUC,
		deleteUC:    deleteUC,
		listUC:      listUC,
		dashboardUC: dashboardUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientName     string `json:"cliente_nome" binding:"required"`
	ClientPhone    string `json:"cliente_telefone" binding:"required"`
	ClientEmail    string `json:"cliente_email"`
	ServiceID      string `json:"servico_id" binding:"required"`
	ProfessionalID string `json:"profissional_id" binding:"required"`
	Date           string `json:"data" binding:"required"`
	Time           string `json:"hora" binding:"required"`
	Notes          string `json:"observacoes"`
}

// ======================================================
// CREATE (recepção / admin)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

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
		CreatedBy:      userID,
	})
	if err != nil {
		writeCreateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

func writeCreateError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.BadRequest(c, "service_not_found", "Serviço não encontrado.")
	case httperr.IsBusiness(err, "professional_not_found"):
		httperr.BadRequest(c, "professional_not_found", "Profissional não encontrado.")
	case httperr.IsBusiness(err, "professional_inactive"):
		httperr.BadRequest(c, "professional_inactive", "Profissional inativo.")
	default:
		httperr.Internal(c, "failed_to_create_appointment", "Erro ao criar agendamento.")
	}
}

// ======================================================
// UPCOMING (visão do profissional)
// ======================================================

// ListUpcoming devolve a agenda futura do profissional autenticado, já
// filtrada, ordenada e com os agregados. `?by=nome` usa a visão legada que
// casa pelo nome desnormalizado.
func (h *AppointmentHandler) ListUpcoming(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	var (
		list *ucAppointment.UpcomingList
		err  error
	)
	if c.Query("by") == "nome" {
		name := c.MustGet(middleware.ContextUserName).(string)
		if name == "" {
			httperr.BadRequest(c, "missing_profile_name", "Perfil incompleto. Contate o admin.")
			return
		}
		list, err = h.listUC.ByProfessionalName(c.Request.Context(), name)
	} else {
		list, err = h.listUC.ByProfessionalID(c.Request.Context(), userID)
	}

	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao carregar agenda.")
		return
	}

	c.JSON(http.StatusOK, list)
}

// ======================================================
// STATUS TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Accept(c *gin.Context) {
	h.transition(c, h.acceptUC, "Agendamento não pode ser aceito.")
}

func (h *AppointmentHandler) Start(c *gin.Context) {
	h.transition(c, h.startUC, "Atendimento não pode ser iniciado.")
}

func (h *AppointmentHandler) Finish(c *gin.Context) {
	h.transition(c, h.finishUC, "Atendimento não pode ser finalizado.")
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, h.cancelUC, "Agendamento não pode ser cancelado.")
}

func (h *AppointmentHandler) transition(
	c *gin.Context,
	uc *ucAppointment.TransitionAppointment,
	invalidStateMsg string,
) {
	userID := c.MustGet(middleware.ContextUserID).(string)
	id := c.Param("id")

	ap, err := uc.Execute(c.Request.Context(), userID, id)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "appointment_not_found"):
			httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		case httperr.IsBusiness(err, "invalid_state"):
			httperr.BadRequest(c, "invalid_state", invalidStateMsg)
		default:
			httperr.Internal(c, "failed_to_update_status", "Erro ao atualizar status.")
		}
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// DELETE (admin)
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)
	id := c.Param("id")

	if err := h.deleteUC.Execute(c.Request.Context(), userID, id); err != nil {
		if httperr.IsBusiness(err, "appointment_not_found") {
			httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_delete_appointment", "Erro ao excluir agendamento.")
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// DASHBOARD
// ======================================================

func (h *AppointmentHandler) Dashboard(c *gin.Context) {
	data, err := h.dashboardUC.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_load_dashboard", "Erro ao carregar painel.")
		return
	}

	c.JSON(http.StatusOK, data)
}
