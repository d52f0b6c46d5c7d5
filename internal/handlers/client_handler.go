package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ciadabeleza/salon-scheduler/internal/audit"
	"github.com/ciadabeleza/salon-scheduler/internal/httperr"
	"github.com/ciadabeleza/salon-scheduler/internal/httpresp"
	"github.com/ciadabeleza/salon-scheduler/internal/middleware"
	"github.com/ciadabeleza/salon-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type ClientHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewClientHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *ClientHandler {
	return &ClientHandler{db: db, audit: dispatcher}
}

// ======================================================
// REQUESTS
// ======================================================

type ClientRequest struct {
	Name  string `json:"nome" binding:"required"`
	Phone string `json:"telefone" binding:"required"`
	Email string `json:"email"`
}

// ======================================================
// CRUD
// ======================================================

// List devolve os clientes em ordem alfabética. `?busca=` filtra por nome ou
// telefone.
func (h *ClientHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Order("name ASC")

	if search := c.Query("busca"); search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR phone LIKE ?", like, like)
	}

	var clients []models.Client
	if err := q.Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}

	httpresp.List(c, clients)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	// Telefone é o identificador prático do cliente sem login.
	var existing models.Client
	err := h.db.WithContext(c.Request.Context()).
		Where("phone = ?", req.Phone).
		First(&existing).Error
	if err == nil {
		httperr.BadRequest(c, "client_already_exists", "Já existe um cliente com este telefone.")
		return
	}
	if err != gorm.ErrRecordNotFound {
		httperr.Internal(c, "failed_to_create_client", "Erro ao cadastrar cliente.")
		return
	}

	client := models.Client{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_create_client", "Erro ao cadastrar cliente.")
		return
	}

	h.dispatch(c, "client_created", client.ID)
	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var client models.Client
	if err := h.db.WithContext(c.Request.Context()).First(&client, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_update_client", "Erro ao atualizar cliente.")
		return
	}

	client.Name = req.Name
	client.Phone = req.Phone
	client.Email = req.Email

	if err := h.db.WithContext(c.Request.Context()).Save(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Erro ao atualizar cliente.")
		return
	}

	h.dispatch(c, "client_updated", client.ID)
	httpresp.OK(c, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	res := h.db.WithContext(c.Request.Context()).Delete(&models.Client{}, "id = ?", id)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_client", "Erro ao excluir cliente.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return
	}

	h.dispatch(c, "client_deleted", id)
	c.Status(http.StatusNoContent)
}

func (h *ClientHandler) dispatch(c *gin.Context, action, entityID string) {
	userID := c.MustGet(middleware.ContextUserID).(string)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   action,
		Entity:   "client",
		EntityID: &entityID,
	})
}
