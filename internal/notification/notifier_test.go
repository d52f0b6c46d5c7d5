package notification

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ciadabeleza/salon-scheduler/internal/feed"
	"github.com/ciadabeleza/salon-scheduler/internal/infra/repository"
	"github.com/ciadabeleza/salon-scheduler/internal/models"
)

type mockSender struct {
	mu     sync.Mutex
	sent   []string // endpoints
	status int
}

func (m *mockSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sub.Endpoint)

	status := m.status
	if status == 0 {
		status = http.StatusCreated
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader(nil)),
	}, nil
}

func (m *mockSender) endpoints() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sent...)
}

func setupNotifier(t *testing.T, sender Sender) (*Notifier, *gorm.DB, *feed.Hub) {
	t.Helper()

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Appointment{},
		&models.Notification{},
		&models.PushSubscription{},
	))

	repo := repository.NewAppointmentGormRepository(db)
	hub := feed.New(repo.ListAll, nil)
	repo.SetPublisher(hub)

	n := NewNotifier(db, repo, hub, &webpush.Options{
		Subscriber:      "mailto:teste@exemplo.com",
		VAPIDPublicKey:  "pub",
		VAPIDPrivateKey: "priv",
	}, time.UTC, nil)
	n.sender = sender

	return n, db, hub
}

func scheduled(t time.Time) *time.Time { return &t }

func TestNotifyCreatesNotificationPushesAndMarks(t *testing.T) {
	sender := &mockSender{}
	n, db, _ := setupNotifier(t, sender)

	require.NoError(t, db.Create(&models.PushSubscription{
		UserID:   "prof-1",
		Endpoint: "https://push.example/a",
		P256DH:   "k",
		Auth:     "a",
	}).Error)
	require.NoError(t, db.Create(&models.PushSubscription{
		UserID:   "prof-1",
		Endpoint: "https://push.example/b",
		P256DH:   "k",
		Auth:     "a",
	}).Error)

	ap := models.Appointment{
		ClientName:       "Ana",
		ServiceName:      "Corte",
		ProfessionalID:   "prof-1",
		ProfessionalName: "Julia",
		ScheduledAt:      scheduled(time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)),
		Status:           "pendente",
	}
	require.NoError(t, db.Create(&ap).Error)

	n.notify(context.Background(), &ap)

	var notifs []models.Notification
	require.NoError(t, db.Find(&notifs).Error)
	require.Len(t, notifs, 1)
	assert.Equal(t, "prof-1", notifs[0].UserID)
	assert.Equal(t, "Novo agendamento", notifs[0].Title)
	assert.Contains(t, notifs[0].Body, "Ana")
	assert.Contains(t, notifs[0].Body, "Corte")
	assert.Equal(t, "agendamento", notifs[0].Type)

	// Um push por navegador registrado.
	assert.ElementsMatch(t,
		[]string{"https://push.example/a", "https://push.example/b"},
		sender.endpoints(),
	)

	var reloaded models.Appointment
	require.NoError(t, db.First(&reloaded, "id = ?", ap.ID).Error)
	assert.True(t, reloaded.Notified)
}

func TestNotifyRemovesExpiredSubscription(t *testing.T) {
	sender := &mockSender{status: http.StatusGone}
	n, db, _ := setupNotifier(t, sender)

	require.NoError(t, db.Create(&models.PushSubscription{
		UserID:   "prof-1",
		Endpoint: "https://push.example/expirado",
		P256DH:   "k",
		Auth:     "a",
	}).Error)

	ap := models.Appointment{
		ProfessionalID: "prof-1",
		ScheduledAt:    scheduled(time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)),
		Status:         "pendente",
	}
	require.NoError(t, db.Create(&ap).Error)

	n.notify(context.Background(), &ap)

	var count int64
	require.NoError(t, db.Model(&models.PushSubscription{}).Count(&count).Error)
	assert.Zero(t, count, "endpoint expirado deve ser removido")
}

func TestNotifySkipsPushWithoutVAPIDKey(t *testing.T) {
	sender := &mockSender{}
	n, db, _ := setupNotifier(t, sender)
	n.options = nil

	require.NoError(t, db.Create(&models.PushSubscription{
		UserID:   "prof-1",
		Endpoint: "https://push.example/a",
		P256DH:   "k",
		Auth:     "a",
	}).Error)

	ap := models.Appointment{
		ProfessionalID: "prof-1",
		ScheduledAt:    scheduled(time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)),
		Status:         "pendente",
	}
	require.NoError(t, db.Create(&ap).Error)

	n.notify(context.Background(), &ap)

	assert.Empty(t, sender.endpoints())

	// A notificação interna continua sendo gravada.
	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRunDoesNotNotifyInitialSnapshot(t *testing.T) {
	sender := &mockSender{}
	n, db, hub := setupNotifier(t, sender)

	// Registro que já existia antes da assinatura.
	existing := models.Appointment{
		ID:             "pre-existente",
		ProfessionalID: "prof-1",
		ScheduledAt:    scheduled(time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)),
		Status:         "pendente",
	}
	require.NoError(t, db.Create(&existing).Error)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = n.Run(ctx)
	}()

	fresh := models.Appointment{
		ID:             "novo",
		ProfessionalID: "prof-1",
		ScheduledAt:    scheduled(time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC)),
		Status:         "pendente",
	}
	require.NoError(t, db.Create(&fresh).Error)

	// A assinatura do notifier pode ainda não existir quando o registro foi
	// criado; republica a mudança até a notificação aparecer.
	require.Eventually(t, func() bool {
		hub.Publish(feed.Change{Type: feed.ChangeAdded, Record: fresh})

		var count int64
		db.Model(&models.Notification{}).Where("user_id = ?", "prof-1").Count(&count)
		return count > 0
	}, 2*time.Second, 20*time.Millisecond)

	// O registro pré-existente veio só no snapshot: continua sem notificação e
	// sem flag.
	var reloaded models.Appointment
	require.NoError(t, db.First(&reloaded, "id = ?", "pre-existente").Error)
	assert.False(t, reloaded.Notified)

	cancel()
	<-done
}
