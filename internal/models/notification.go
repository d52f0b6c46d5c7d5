package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Notification struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	UserID string `gorm:"size:36;index" json:"userId"`

	Title string `gorm:"size:120" json:"title"`
	Body  string `gorm:"size:500" json:"body"`
	Type  string `gorm:"size:30;default:'info'" json:"type"`

	// Payload livre (ex.: URL de destino), serializado em JSON.
	Data string `gorm:"type:text" json:"data,omitempty"`

	Read   bool       `json:"read"`
	ReadAt *time.Time `json:"readAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
