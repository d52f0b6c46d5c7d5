package appointment

import (
	"time"

	"github.com/ciadabeleza/salon-scheduler/internal/models"
)

// Record é a leitura normalizada de um agendamento: um único instante
// canônico e um status resolvido. Toda leitura passa por Classify uma vez;
// ninguém mais inspeciona os campos brutos.
type Record struct {
	ID               string    `json:"id"`
	ClientName       string    `json:"clienteNome"`
	ServiceName      string    `json:"servicoNome"`
	ProfessionalID   string    `json:"profissionalId"`
	ProfessionalName string    `json:"profissionalNome"`
	Scheduled        time.Time `json:"scheduled"`
	Status           Status    `json:"status"`
	Display          Display   `json:"display"`
	Actions          []Action  `json:"actions"`
	Price            *float64  `json:"valor,omitempty"`
	Notes            string    `json:"observacoes,omitempty"`
	Notified         bool      `json:"notificado"`
	CreatedAt        time.Time `json:"criadoEm"`
	UpdatedAt        time.Time `json:"atualizadoEm"`
}

// Layouts aceitos para o formato string legado, do mais ao menos específico.
var legacyLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Normalize resolve o instante agendado a partir dos três formatos
// históricos, nesta ordem: coluna tipada, epoch em milissegundos, string
// data(+hora). Forma irreconhecível devolve ok=false; o registro fica com
// instante zero e sai das listas futuras, nunca vira erro para o usuário.
func Normalize(m *models.Appointment, loc *time.Location) (time.Time, bool) {
	if m.ScheduledAt != nil && !m.ScheduledAt.IsZero() {
		return m.ScheduledAt.In(loc), true
	}

	if m.RawEpochMS > 0 {
		return time.UnixMilli(m.RawEpochMS).In(loc), true
	}

	raw := m.RawDate
	if m.RawTime != "" {
		raw = m.RawDate + " " + m.RawTime
	}
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range legacyLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Classify produz o Record normalizado de um registro bruto.
func Classify(m *models.Appointment, loc *time.Location) Record {
	scheduled, _ := Normalize(m, loc)
	status := Resolve(m.Status)

	return Record{
		ID:               m.ID,
		ClientName:       m.ClientName,
		ServiceName:      m.ServiceName,
		ProfessionalID:   m.ProfessionalID,
		ProfessionalName: m.ProfessionalName,
		Scheduled:        scheduled,
		Status:           status,
		Display:          DisplayFor(status),
		Actions:          AvailableActions(status),
		Price:            m.Price,
		Notes:            m.Notes,
		Notified:         m.Notified,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// ClassifyAll preserva a ordem de chegada do feed.
func ClassifyAll(ms []models.Appointment, loc *time.Location) []Record {
	out := make([]Record, 0, len(ms))
	for i := range ms {
		out = append(out, Classify(&ms[i], loc))
	}
	return out
}
