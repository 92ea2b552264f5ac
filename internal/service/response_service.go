package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/formpulse/formpulse/internal/analytics"
	"github.com/formpulse/formpulse/internal/dto"
	"github.com/formpulse/formpulse/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ResponseService exposes the analytics listing over a form's responses.
type ResponseService interface {
	GetFormResponses(userID, formID uint, query dto.ResponsesQuery) (*dto.FormResponsesDTO, error)
}

type responseService struct {
	formRepo repository.FormRepository
}

func NewResponseService(formRepo repository.FormRepository) ResponseService {
	return &responseService{formRepo: formRepo}
}

func (s *responseService) GetFormResponses(userID, formID uint, query dto.ResponsesQuery) (*dto.FormResponsesDTO, error) {
	owned, err := s.formRepo.OwnedBy(formID, userID)
	if err != nil {
		log.Error().Err(err).Uint("formID", formID).Msg("GetFormResponses: ownership check failed")
		return nil, fmt.Errorf("error checking form ownership: %w", err)
	}
	if !owned {
		return nil, ErrFormNotFound
	}

	// one snapshot per request; everything below is computed from it
	form, err := s.formRepo.FindByIDWithResponses(formID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFormNotFound
		}
		log.Error().Err(err).Uint("formID", formID).Msg("GetFormResponses: failed to load snapshot")
		return nil, fmt.Errorf("error fetching form responses: %w", err)
	}

	processed, stats := analytics.Summarize(form.Questions, form.Responses, time.Now())
	summaries := analytics.QuestionSummaries(form.Questions, form.Responses)

	page := paginate(processed, query.Page, query.Limit)
	filtered := filterResponses(page, query.Search, query.Sentiment)

	var questionDTOs []dto.QuestionDTO
	if err := copier.Copy(&questionDTOs, &form.Questions); err != nil {
		return nil, fmt.Errorf("error preparing question list: %w", err)
	}

	meta := dto.FormMetaDTO{
		ID:             form.ID,
		Title:          form.Title,
		Description:    form.Description,
		Status:         form.Status,
		CreatedAt:      form.CreatedAt,
		TotalResponses: len(form.Responses),
	}
	if len(form.Responses) > 0 {
		last := form.Responses[0].SubmittedAt // responses are loaded newest first
		meta.LastResponse = &last
	}

	limit := query.Limit
	if limit <= 0 {
		limit = 50
	}
	return &dto.FormResponsesDTO{
		Form:      meta,
		Questions: questionDTOs,
		Responses: filtered,
		Pagination: dto.PaginationDTO{
			Page:       query.Page,
			Limit:      limit,
			Total:      len(filtered),
			TotalPages: (len(filtered) + limit - 1) / limit,
		},
		Analytics:         stats,
		QuestionSummaries: summaries,
	}, nil
}

// paginate slices one page out of the processed responses. Pagination is
// applied before the search and sentiment filters, matching the listing's
// established behavior.
func paginate(responses []analytics.ProcessedResponse, page, limit int) []analytics.ProcessedResponse {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}
	start := (page - 1) * limit
	if start >= len(responses) {
		return nil
	}
	end := start + limit
	if end > len(responses) {
		end = len(responses)
	}
	return responses[start:end]
}

func filterResponses(responses []analytics.ProcessedResponse, search, sentiment string) []analytics.ProcessedResponse {
	filtered := make([]analytics.ProcessedResponse, 0, len(responses))
	needle := strings.ToLower(search)

	for _, response := range responses {
		if needle != "" && !answersContain(response.Answers, needle) {
			continue
		}
		if sentiment != "" && sentiment != "all" && string(response.Sentiment) != sentiment {
			continue
		}
		filtered = append(filtered, response)
	}
	return filtered
}

func answersContain(answers map[uint]string, needle string) bool {
	for _, text := range answers {
		if strings.Contains(strings.ToLower(text), needle) {
			return true
		}
	}
	return false
}
