package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

const (
	QuestionTypeText           = "TEXT"
	QuestionTypeTextarea       = "TEXTAREA"
	QuestionTypeMultipleChoice = "MULTIPLE_CHOICE"
	QuestionTypeRating         = "RATING"
)

// StringList stores an ordered list of option strings as a JSON column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
}

type Question struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	FormID       uint           `json:"form_id" gorm:"not null;index"`
	QuestionText string         `json:"question_text" gorm:"type:text;not null"`
	QuestionType string         `json:"question_type" gorm:"not null"` // TEXT, TEXTAREA, MULTIPLE_CHOICE, RATING
	IsRequired   bool           `json:"is_required" gorm:"not null;default:false"`
	Options      StringList     `json:"options,omitempty" gorm:"type:jsonb"` // only meaningful for MULTIPLE_CHOICE
	OrderIndex   int            `json:"order_index" gorm:"not null"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
