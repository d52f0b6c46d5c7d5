package handlers

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ciadabeleza/salon-scheduler/internal/feed"
	"github.com/ciadabeleza/salon-scheduler/internal/middleware"
	"github.com/ciadabeleza/salon-scheduler/internal/models"
)

func feedServer(t *testing.T, hub *feed.Hub, userID, userRole, userName string) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewFeedHandler(hub)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextUserRole, userRole)
		c.Set(middleware.ContextUserName, userName)
	})
	r.GET("/feed", h.Stream)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dialFeed(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/feed"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	return conn
}

func TestFeedStreamSnapshotThenChanges(t *testing.T) {
	loader := func(ctx context.Context) ([]models.Appointment, error) {
		return []models.Appointment{
			{ID: "1", ProfessionalID: "p1"},
			{ID: "2", ProfessionalID: "p2"},
		}, nil
	}
	hub := feed.New(loader, nil)

	srv := feedServer(t, hub, "p1", "profissional", "Julia")
	conn := dialFeed(t, srv)

	// Primeira entrega: snapshot já filtrado para a visão do profissional.
	var first feed.Delivery
	require.NoError(t, conn.ReadJSON(&first))
	assert.True(t, first.Initial)
	require.Len(t, first.Snapshot, 1)
	assert.Equal(t, "1", first.Snapshot[0].ID)

	// Mudança de outro profissional não chega; a própria chega em seguida.
	hub.Publish(feed.Change{Type: feed.ChangeAdded, Record: models.Appointment{ID: "x", ProfessionalID: "p2"}})
	hub.Publish(feed.Change{Type: feed.ChangeModified, Record: models.Appointment{ID: "1", ProfessionalID: "p1", Status: "confirmado"}})

	var second feed.Delivery
	require.NoError(t, conn.ReadJSON(&second))
	assert.False(t, second.Initial)
	require.Len(t, second.Changes, 1)
	assert.Equal(t, feed.ChangeModified, second.Changes[0].Type)
	assert.Equal(t, "1", second.Changes[0].Record.ID)
}

func TestFeedStreamAdminSeesEverything(t *testing.T) {
	loader := func(ctx context.Context) ([]models.Appointment, error) {
		return []models.Appointment{
			{ID: "1", ProfessionalID: "p1"},
			{ID: "2", ProfessionalID: "p2"},
		}, nil
	}
	hub := feed.New(loader, nil)

	srv := feedServer(t, hub, "admin-1", "admin", "Admin")
	conn := dialFeed(t, srv)

	var first feed.Delivery
	require.NoError(t, conn.ReadJSON(&first))
	assert.Len(t, first.Snapshot, 2)
}
