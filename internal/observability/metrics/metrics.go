package metrics

import "github.com/prometheus/client_golang/prometheus"

// FeedMetrics expõe contadores do feed de agendamentos ao vivo.
type FeedMetrics struct {
	deliveriesTotal *prometheus.CounterVec
	droppedTotal    prometheus.Counter
	activeSubs      prometheus.Gauge
}

func NewFeedMetrics(reg prometheus.Registerer) *FeedMetrics {
	m := &FeedMetrics{
		deliveriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "feed",
			Name:      "deliveries_total",
			Help:      "Entregas do feed por tipo (snapshot, added, modified, removed)",
		}, []string{"type"}),
		droppedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "feed",
			Name:      "dropped_total",
			Help:      "Entregas descartadas por assinante lento",
		}),
		activeSubs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "salon",
			Subsystem: "feed",
			Name:      "active_subscriptions",
			Help:      "Assinaturas ativas no hub",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.deliveriesTotal, m.droppedTotal, m.activeSubs)
	return m
}

func (m *FeedMetrics) ObserveDelivery(deliveryType string) {
	if m == nil {
		return
	}
	m.deliveriesTotal.WithLabelValues(deliveryType).Inc()
}

func (m *FeedMetrics) ObserveDropped() {
	if m == nil {
		return
	}
	m.droppedTotal.Inc()
}

func (m *FeedMetrics) SetActiveSubscriptions(n int) {
	if m == nil {
		return
	}
	m.activeSubs.Set(float64(n))
}

// PushMetrics expõe contadores de entrega web push.
type PushMetrics struct {
	sentTotal *prometheus.CounterVec
}

func NewPushMetrics(reg prometheus.Registerer) *PushMetrics {
	m := &PushMetrics{
		sentTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "push",
			Name:      "sent_total",
			Help:      "Notificações push enviadas por resultado",
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.sentTotal)
	return m
}

func (m *PushMetrics) ObserveSent(status string) {
	if m == nil {
		return
	}
	m.sentTotal.WithLabelValues(status).Inc()
}
