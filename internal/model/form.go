package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	FormStatusDraft    = "DRAFT"
	FormStatusActive   = "ACTIVE"
	FormStatusInactive = "INACTIVE"
)

type Form struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	UserID      uint           `json:"user_id" gorm:"not null;index"`
	User        User           `json:"-" gorm:"foreignKey:UserID"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description,omitempty"`
	Status      string         `json:"status" gorm:"not null;default:'DRAFT'"` // DRAFT, ACTIVE, INACTIVE
	PublicURL   string         `json:"public_url" gorm:"not null;uniqueIndex"`
	Questions   []Question     `json:"questions,omitempty" gorm:"foreignKey:FormID"`
	Responses   []Response     `json:"responses,omitempty" gorm:"foreignKey:FormID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
