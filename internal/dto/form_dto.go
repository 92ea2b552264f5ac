package dto

import "time"

// QuestionCreateDTO is used within form create and update payloads.
type QuestionCreateDTO struct {
	QuestionText string   `json:"question_text" binding:"required"`
	QuestionType string   `json:"question_type" binding:"required,oneof=TEXT TEXTAREA MULTIPLE_CHOICE RATING"`
	IsRequired   bool     `json:"is_required"`
	Options      []string `json:"options"`
	OrderIndex   int      `json:"order_index" binding:"min=0"`
}

// FormCreateDTO is the payload for creating a form with all its questions.
type FormCreateDTO struct {
	Title       string              `json:"title" binding:"required,max=255"`
	Description string              `json:"description,omitempty"`
	Questions   []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

// FormUpdateDTO updates form metadata; when Questions is present the form's
// questions are replaced wholesale.
type FormUpdateDTO struct {
	Title       *string             `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string             `json:"description"`
	Status      *string             `json:"status" binding:"omitempty,oneof=DRAFT ACTIVE INACTIVE"`
	Questions   []QuestionCreateDTO `json:"questions" binding:"omitempty,min=1,dive"`
}

type StatusUpdateDTO struct {
	Status string `json:"status" binding:"required,oneof=DRAFT ACTIVE INACTIVE"`
}

type QuestionDTO struct {
	ID           uint     `json:"id"`
	FormID       uint     `json:"form_id"`
	QuestionText string   `json:"question_text"`
	QuestionType string   `json:"question_type"`
	IsRequired   bool     `json:"is_required"`
	Options      []string `json:"options,omitempty"`
	OrderIndex   int      `json:"order_index"`
}

type FormDTO struct {
	ID            uint          `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description,omitempty"`
	Status        string        `json:"status"`
	PublicURL     string        `json:"public_url"`
	Questions     []QuestionDTO `json:"questions,omitempty"`
	ResponseCount int           `json:"response_count"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type FormMessageDTO struct {
	Message string  `json:"message"`
	Form    FormDTO `json:"form"`
}
