package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Agendamento. Nomes de cliente/serviço/profissional são cópias desnormalizadas
// feitas na criação; não há chave estrangeira nem consistência posterior.
type Appointment struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	ClientName       string `gorm:"size:100" json:"clienteNome"`
	ServiceName      string `gorm:"size:100" json:"servicoNome"`
	ProfessionalID   string `gorm:"size:36;index" json:"profissionalId"`
	ProfessionalName string `gorm:"size:100;index" json:"profissionalNome"`

	// O instante agendado existe em três formatos históricos. Registros novos
	// preenchem ScheduledAt; registros legados podem ter só RawEpochMS ou só
	// RawDate/RawTime. A normalização acontece em domain/appointment.Normalize.
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
	RawEpochMS  int64      `json:"rawEpochMs,omitempty"`
	RawDate     string     `gorm:"size:32" json:"data,omitempty"`
	RawTime     string     `gorm:"size:8" json:"hora,omitempty"`

	Status string `gorm:"size:20;default:'pendente'" json:"status"`

	Price    *float64 `json:"valor,omitempty"`
	Notes    string   `gorm:"size:255" json:"observacoes,omitempty"`
	Notified bool     `json:"notificado"`

	CreatedAt time.Time `json:"criadoEm"`
	UpdatedAt time.Time `json:"atualizadoEm"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
