package model

import (
	"time"

	"gorm.io/gorm"
)

type Response struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	FormID      uint           `json:"form_id" gorm:"not null;index"`
	IPAddress   string         `json:"ip_address"`
	UserAgent   string         `json:"user_agent"`
	SubmittedAt time.Time      `json:"submitted_at" gorm:"autoCreateTime"`
	Answers     []Answer       `json:"answers,omitempty" gorm:"foreignKey:ResponseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
