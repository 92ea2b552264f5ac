package service

import (
	"errors"
	"fmt"

	"github.com/formpulse/formpulse/internal/dto"
	"github.com/formpulse/formpulse/internal/model"
	"github.com/formpulse/formpulse/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SubmissionService serves the anonymous, public side of a form: fetching it
// by public URL and accepting responses.
type SubmissionService interface {
	GetPublicForm(publicURL string) (*dto.PublicFormDTO, error)
	SubmitResponse(publicURL, clientIP, userAgent string, req dto.SubmitRequest) (*dto.SubmitResultDTO, error)
}

type submissionService struct {
	formRepo     repository.FormRepository
	responseRepo repository.ResponseRepository
}

func NewSubmissionService(formRepo repository.FormRepository, responseRepo repository.ResponseRepository) SubmissionService {
	return &submissionService{formRepo: formRepo, responseRepo: responseRepo}
}

func (s *submissionService) GetPublicForm(publicURL string) (*dto.PublicFormDTO, error) {
	form, err := s.findActiveForm(publicURL)
	if err != nil {
		return nil, err
	}

	var out dto.PublicFormDTO
	if err := copier.Copy(&out, form); err != nil {
		return nil, fmt.Errorf("error preparing public form: %w", err)
	}
	out.Author = dto.AuthorDTO{Name: form.User.Name, Company: form.User.Company}
	return &out, nil
}

func (s *submissionService) SubmitResponse(publicURL, clientIP, userAgent string, req dto.SubmitRequest) (*dto.SubmitResultDTO, error) {
	form, err := s.findActiveForm(publicURL)
	if err != nil {
		return nil, err
	}

	if err := validateSubmission(form.Questions, req.Answers); err != nil {
		return nil, err
	}

	response := model.Response{
		FormID:    form.ID,
		IPAddress: clientIP,
		UserAgent: userAgent,
	}
	for _, answer := range req.Answers {
		response.Answers = append(response.Answers, model.Answer{
			QuestionID: answer.QuestionID,
			AnswerText: answer.AnswerText,
		})
	}

	// all-or-nothing: a failed answer insert must not leave a partial
	// response visible to analytics reads
	if err := s.responseRepo.CreateWithAnswers(&response); err != nil {
		log.Error().Err(err).Uint("formID", form.ID).Msg("SubmitResponse: transaction failed")
		return nil, fmt.Errorf("error saving response: %w", err)
	}

	log.Info().Uint("formID", form.ID).Uint("responseID", response.ID).
		Int("answerCount", len(response.Answers)).Msg("Response submitted")

	return &dto.SubmitResultDTO{
		Message:     "Response submitted successfully",
		ResponseID:  response.ID,
		SubmittedAt: response.SubmittedAt,
	}, nil
}

func (s *submissionService) findActiveForm(publicURL string) (*model.Form, error) {
	form, err := s.formRepo.FindByPublicURL(publicURL, model.FormStatusActive)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFormNotFound
		}
		log.Error().Err(err).Str("publicURL", publicURL).Msg("Public form lookup failed")
		return nil, fmt.Errorf("error fetching form: %w", err)
	}
	return form, nil
}

func validateSubmission(questions []model.Question, answers []dto.SubmitAnswerDTO) error {
	known := make(map[uint]model.Question, len(questions))
	for _, q := range questions {
		known[q.ID] = q
	}

	var details []string
	answered := make(map[uint]bool, len(answers))
	for _, answer := range answers {
		if _, ok := known[answer.QuestionID]; !ok {
			details = append(details, fmt.Sprintf("question %d is not part of this form", answer.QuestionID))
			continue
		}
		answered[answer.QuestionID] = true
	}

	for _, q := range questions {
		if q.IsRequired && !answered[q.ID] {
			details = append(details, fmt.Sprintf("missing required answer: %s", q.QuestionText))
		}
	}

	if len(details) > 0 {
		return newValidationError("Invalid submission data", details...)
	}
	return nil
}
