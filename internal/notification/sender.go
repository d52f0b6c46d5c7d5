package notification

import (
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
)

// Sender abstrai o envio de uma notificação web push.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender envia pelo protocolo Web Push com as chaves VAPID
// configuradas.
type WebPushSender struct{}

func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}
