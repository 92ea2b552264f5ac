package dto

import (
	"time"

	"github.com/formpulse/formpulse/internal/analytics"
)

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type RateLimitedResponse struct {
	Message   string `json:"message"`
	ResetTime int64  `json:"reset_time"` // unix millis
}

// ResponsesQuery carries the listing parameters for the analytics endpoint.
type ResponsesQuery struct {
	Page      int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit     int    `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	Search    string `form:"search"`
	Sentiment string `form:"sentiment,default=all" binding:"omitempty,oneof=all positive neutral negative"`
}

type PaginationDTO struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type FormMetaDTO struct {
	ID             uint       `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	TotalResponses int        `json:"total_responses"`
	LastResponse   *time.Time `json:"last_response"`
}

// FormResponsesDTO is the full analytics listing payload.
type FormResponsesDTO struct {
	Form              FormMetaDTO                   `json:"form"`
	Questions         []QuestionDTO                 `json:"questions"`
	Responses         []analytics.ProcessedResponse `json:"responses"`
	Pagination        PaginationDTO                 `json:"pagination"`
	Analytics         analytics.Analytics           `json:"analytics"`
	QuestionSummaries map[uint]map[string]int       `json:"question_summaries"`
}
