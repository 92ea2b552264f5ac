package dto

import "time"

// PublicFormDTO is the anonymous-visitor view of an active form.
type PublicFormDTO struct {
	ID          uint          `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Questions   []QuestionDTO `json:"questions"`
	Author      AuthorDTO     `json:"author"`
	CreatedAt   time.Time     `json:"created_at"`
}

type AuthorDTO struct {
	Name    string  `json:"name"`
	Company *string `json:"company,omitempty"`
}

type SubmitAnswerDTO struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	AnswerText string `json:"answer_text" binding:"required,min=1"`
}

type SubmitRequest struct {
	Answers []SubmitAnswerDTO `json:"answers" binding:"required,min=1,dive"`
}

type SubmitResultDTO struct {
	Message     string    `json:"message"`
	ResponseID  uint      `json:"response_id"`
	SubmittedAt time.Time `json:"submitted_at"`
}
