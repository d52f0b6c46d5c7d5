package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Registro de push do navegador (coleção userTokens). Um usuário pode ter
// vários navegadores registrados; endpoints expirados são removidos quando o
// serviço de push responde 410.
type PushSubscription struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	UserID   string `gorm:"size:36;index" json:"userId"`
	Endpoint string `gorm:"size:500;uniqueIndex" json:"endpoint"`
	P256DH   string `gorm:"size:255" json:"p256dh"`
	Auth     string `gorm:"size:255" json:"auth"`

	CreatedAt time.Time `json:"createdAt"`
}

func (p *PushSubscription) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
