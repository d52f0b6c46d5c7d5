package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	domain "github.com/ciadabeleza/salon-scheduler/internal/domain/appointment"
	"github.com/ciadabeleza/salon-scheduler/internal/feed"
	"github.com/ciadabeleza/salon-scheduler/internal/models"
	"github.com/ciadabeleza/salon-scheduler/internal/observability/metrics"
)

// ======================================================
// NOTIFIER
// ======================================================
//
// Consome o feed de agendamentos e, para cada registro ADICIONADO que esteja
// pendente e ainda não notificado, grava uma notificação para o profissional,
// dispara web push para os navegadores registrados e marca o registro como
// notificado. A entrega inicial (snapshot) nunca notifica: registros que já
// existiam antes da assinatura não são novidade.

// Payload é o corpo enviado ao navegador (title/body/data).
type Payload struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

type Notifier struct {
	db      *gorm.DB
	repo    domain.Repository
	hub     *feed.Hub
	sender  Sender
	options *webpush.Options
	loc     *time.Location
	metrics *metrics.PushMetrics
}

func NewNotifier(
	db *gorm.DB,
	repo domain.Repository,
	hub *feed.Hub,
	options *webpush.Options,
	loc *time.Location,
	m *metrics.PushMetrics,
) *Notifier {
	return &Notifier{
		db:      db,
		repo:    repo,
		hub:     hub,
		sender:  &WebPushSender{},
		options: options,
		loc:     loc,
		metrics: m,
	}
}

func awaitingAndUnnotified(ap *models.Appointment) bool {
	return domain.IsAwaiting(domain.Resolve(ap.Status)) && !ap.Notified
}

// Run assina o feed e processa entregas até o contexto encerrar.
func (n *Notifier) Run(ctx context.Context) error {
	sub, err := n.hub.Subscribe(ctx, "notifier", awaitingAndUnnotified)
	if err != nil {
		return err
	}
	defer sub.Close()

	firstDelivery := true

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case d, ok := <-sub.Deliveries():
			if !ok {
				return nil
			}

			// A primeira entrega é o snapshot da assinatura: só limpa a
			// flag, nunca notifica carga pré-existente.
			if firstDelivery {
				firstDelivery = false
				continue
			}

			for _, c := range d.Changes {
				if c.Type != feed.ChangeAdded {
					continue
				}
				rec := c.Record
				if !awaitingAndUnnotified(&rec) {
					continue
				}
				n.notify(ctx, &rec)
			}
		}
	}
}

func (n *Notifier) notify(ctx context.Context, ap *models.Appointment) {
	rec := domain.Classify(ap, n.loc)

	payload := Payload{
		Title: "Novo agendamento",
		Body: fmt.Sprintf(
			"Cliente: %s\nServiço: %s\nHorário: %s",
			rec.ClientName,
			rec.ServiceName,
			rec.Scheduled.Format("02/01/2006 15:04"),
		),
		Data: map[string]string{"url": "/profissional"},
	}

	data, _ := json.Marshal(payload.Data)
	notif := models.Notification{
		UserID: ap.ProfessionalID,
		Title:  payload.Title,
		Body:   payload.Body,
		Type:   "agendamento",
		Data:   string(data),
	}
	if err := n.db.WithContext(ctx).Create(&notif).Error; err != nil {
		log.Printf("notification: erro ao gravar notificação: %v", err)
	}

	n.push(ctx, ap.ProfessionalID, payload)

	// Marca como notificado em um único campo. Falha aqui não derruba o
	// consumidor; o registro continua candidato se for entregue de novo.
	if err := n.repo.MarkNotified(ctx, ap.ID); err != nil {
		log.Printf("notification: erro ao marcar notificado %s: %v", ap.ID, err)
	}
}

func (n *Notifier) push(ctx context.Context, userID string, payload Payload) {
	if n.options == nil || n.options.VAPIDPrivateKey == "" {
		return
	}

	var subs []models.PushSubscription
	if err := n.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&subs).Error; err != nil {
		log.Printf("notification: erro ao buscar tokens de %s: %v", userID, err)
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return
	}

	for _, s := range subs {
		wpSub := &webpush.Subscription{
			Endpoint: s.Endpoint,
			Keys: webpush.Keys{
				P256dh: s.P256DH,
				Auth:   s.Auth,
			},
		}

		resp, err := n.sender.Send(body, wpSub, n.options)
		if err != nil {
			log.Printf("notification: erro no push para %s: %v", s.Endpoint, err)
			n.metrics.ObserveSent("error")
			continue
		}
		resp.Body.Close()

		if resp.StatusCode == 410 {
			// Endpoint expirado: o navegador cancelou a inscrição.
			n.metrics.ObserveSent("expired")
			if err := n.db.WithContext(ctx).Delete(&s).Error; err != nil {
				log.Printf("notification: erro ao remover token expirado %s: %v", s.Endpoint, err)
			}
			continue
		}

		n.metrics.ObserveSent("ok")
	}
}
