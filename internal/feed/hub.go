package feed

import (
	"context"
	"log"
	"sync"

	"github.com/ciadabeleza/salon-scheduler/internal/models"
	"github.com/ciadabeleza/salon-scheduler/internal/observability/metrics"
)

// ======================================================
// LIVE SUBSCRIPTION HUB
// ======================================================
//
// O hub reproduz o contrato do feed do banco de documentos: cada assinatura
// recebe primeiro um snapshot completo do resultado da consulta e depois
// lotes de mudanças, na ordem em que as escritas passaram pelo hub. Não há
// ordem garantida entre assinaturas distintas.

type ChangeType string

const (
	ChangeAdded    ChangeType = "added"
	ChangeModified ChangeType = "modified"
	ChangeRemoved  ChangeType = "removed"
)

type Change struct {
	Type   ChangeType         `json:"type"`
	Record models.Appointment `json:"record"`
}

// Delivery é uma entrega do feed. A primeira de cada assinatura carrega o
// snapshot; as seguintes carregam mudanças.
type Delivery struct {
	Initial  bool                 `json:"initial"`
	Snapshot []models.Appointment `json:"snapshot,omitempty"`
	Changes  []Change             `json:"changes,omitempty"`
}

// Filter decide se um registro pertence à visão da assinatura.
type Filter func(*models.Appointment) bool

// SnapshotLoader carrega o conjunto completo da coleção para o snapshot
// inicial; o filtro da assinatura é aplicado em cima.
type SnapshotLoader func(ctx context.Context) ([]models.Appointment, error)

const subscriberBuffer = 64

type subscriber struct {
	key    string
	filter Filter
	ch     chan Delivery

	// Enquanto o snapshot inicial é carregado a assinatura fica pendente:
	// mudanças publicadas nesse intervalo são retidas aqui e entregues logo
	// após o snapshot, para que nenhuma escrita caia no vão entre a leitura
	// do snapshot e o registro da assinatura.
	pending  bool
	buffered []Change
}

type Hub struct {
	loader  SnapshotLoader
	metrics *metrics.FeedMetrics

	mu   sync.Mutex
	subs map[string]*subscriber
}

func New(loader SnapshotLoader, m *metrics.FeedMetrics) *Hub {
	return &Hub{
		loader:  loader,
		metrics: m,
		subs:    make(map[string]*subscriber),
	}
}

// Subscription é o lado do consumidor de uma assinatura ativa.
type Subscription struct {
	hub  *Hub
	sub  *subscriber
	once sync.Once
}

func (s *Subscription) Deliveries() <-chan Delivery {
	return s.sub.ch
}

// Close libera a assinatura. Idempotente; obrigatório ao trocar de visão ou
// sair dela: assinatura esquecida é callback rodando para sempre.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.release(s.sub)
	})
}

// Subscribe estabelece a assinatura da visão identificada por viewKey e
// entrega o snapshot inicial antes de retornar. Vale "no máximo uma
// assinatura ativa por visão": assinar de novo com a mesma chave libera a
// anterior. A assinatura é registrada ANTES da leitura do snapshot; escritas
// que chegam durante a leitura ficam retidas e são entregues logo depois do
// snapshot, então nenhuma mudança se perde na montagem.
func (h *Hub) Subscribe(ctx context.Context, viewKey string, filter Filter) (*Subscription, error) {
	sub := &subscriber{
		key:     viewKey,
		filter:  filter,
		ch:      make(chan Delivery, subscriberBuffer),
		pending: true,
	}

	h.mu.Lock()
	if prev, ok := h.subs[viewKey]; ok {
		close(prev.ch)
	}
	h.subs[viewKey] = sub
	h.metrics.SetActiveSubscriptions(len(h.subs))
	h.mu.Unlock()

	all, err := h.loader(ctx)
	if err != nil {
		h.release(sub)
		return nil, err
	}

	snapshot := make([]models.Appointment, 0, len(all))
	for i := range all {
		if filter == nil || filter(&all[i]) {
			snapshot = append(snapshot, all[i])
		}
	}

	h.mu.Lock()
	// Só entrega se a assinatura ainda é a corrente; uma reassinatura da
	// mesma visão durante a carga já fechou este canal.
	if h.subs[viewKey] == sub {
		sub.ch <- Delivery{Initial: true, Snapshot: snapshot}
		h.metrics.ObserveDelivery("snapshot")

		for _, c := range sub.buffered {
			h.deliver(sub, c)
		}
		sub.buffered = nil
		sub.pending = false
	}
	h.mu.Unlock()

	return &Subscription{hub: h, sub: sub}, nil
}

func (h *Hub) release(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.subs[sub.key]; ok && current == sub {
		delete(h.subs, sub.key)
		close(sub.ch)
		h.metrics.SetActiveSubscriptions(len(h.subs))
	}
}

// Publish propaga uma mudança para as assinaturas cujo filtro a aceita.
// Assinante com buffer cheio perde a entrega (nunca bloqueia a escrita);
// a perda é registrada e contada. Assinatura ainda pendente de snapshot
// retém a mudança para entrega posterior.
func (h *Hub) Publish(c Change) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, sub := range h.subs {
		if sub.filter != nil && !sub.filter(&c.Record) {
			continue
		}

		if sub.pending {
			if len(sub.buffered) >= subscriberBuffer {
				log.Printf("feed: assinante %q lento, entrega descartada", sub.key)
				h.metrics.ObserveDropped()
				continue
			}
			sub.buffered = append(sub.buffered, c)
			continue
		}

		h.deliver(sub, c)
	}
}

// deliver faz a entrega sem bloquear; chamador segura h.mu.
func (h *Hub) deliver(sub *subscriber, c Change) {
	select {
	case sub.ch <- Delivery{Changes: []Change{c}}:
		h.metrics.ObserveDelivery(string(c.Type))
	default:
		log.Printf("feed: assinante %q lento, entrega descartada", sub.key)
		h.metrics.ObserveDropped()
	}
}
