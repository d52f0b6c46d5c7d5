package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/ciadabeleza/salon-scheduler/internal/domain/role"
	"github.com/ciadabeleza/salon-scheduler/internal/feed"
	"github.com/ciadabeleza/salon-scheduler/internal/middleware"
	"github.com/ciadabeleza/salon-scheduler/internal/models"
)

const feedWriteWait = 10 * time.Second

// ======================================================
// FEED AO VIVO (websocket)
// ======================================================

type FeedHandler struct {
	hub *feed.Hub

	upgrader websocket.Upgrader
}

func NewFeedHandler(hub *feed.Hub) *FeedHandler {
	return &FeedHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origem já é tratada pelo CORS do gateway.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Stream abre o websocket e repassa o feed da visão do usuário: primeiro o
// snapshot, depois as mudanças. Reconectar substitui a assinatura anterior da
// mesma visão; fechar o socket a libera.
func (h *FeedHandler) Stream(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)
	userRole := c.MustGet(middleware.ContextUserRole).(string)
	userName := c.MustGet(middleware.ContextUserName).(string)

	viewKey := "ws:" + userID
	filter := viewFilter(userRole, userID, userName, c.Query("by"))

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade já respondeu o handshake com erro.
		return
	}
	defer conn.Close()

	sub, err := h.hub.Subscribe(c.Request.Context(), viewKey, filter)
	if err != nil {
		conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "snapshot failed"),
			time.Now().Add(feedWriteWait),
		)
		return
	}
	defer sub.Close()

	// Loop de leitura só para detectar o fechamento do lado do navegador.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case delivery, ok := <-sub.Deliveries():
			if !ok {
				// Assinatura substituída por uma reconexão mais nova.
				return
			}
			conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := conn.WriteJSON(delivery); err != nil {
				log.Printf("feed: erro ao escrever para %q: %v", viewKey, err)
				return
			}
		}
	}
}

// viewFilter devolve a visão do feed para o papel: profissional enxerga só a
// própria agenda (por id, ou por nome na visão legada); admin e recepção
// enxergam tudo.
func viewFilter(userRole, userID, userName, by string) feed.Filter {
	if userRole != role.Professional {
		return nil
	}

	if by == "nome" {
		return func(ap *models.Appointment) bool {
			return ap.ProfessionalName == userName
		}
	}
	return func(ap *models.Appointment) bool {
		return ap.ProfessionalID == userID
	}
}
