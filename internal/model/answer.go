package model

import (
	"time"

	"gorm.io/gorm"
)

// Answer holds the raw submitted value for one question of one response.
// AnswerText carries free text for TEXT/TEXTAREA, the selected option string
// for MULTIPLE_CHOICE and a stringified 1-5 integer for RATING; the referenced
// Question's type decides how it is interpreted.
type Answer struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	ResponseID uint           `json:"response_id" gorm:"not null;index"`
	QuestionID uint           `json:"question_id" gorm:"not null;index"`
	Question   Question       `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	AnswerText string         `json:"answer_text" gorm:"type:text;not null"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
